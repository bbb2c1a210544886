// Package directory registers this service with the external agent directory.
package directory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"quickanswer/internal/gateway"
	"quickanswer/internal/models"
	"quickanswer/internal/validation"
)

const (
	registerPath   = "/register"
	unregisterPath = "/unregister"
	instanceHeader = "X-Agent-Instance"
	requestTimeout = 10 * time.Second
)

// Client registers one agent descriptor with the directory service.
type Client struct {
	http       *resty.Client
	descriptor models.AgentDescriptor
	instanceID string
	logger     *zap.Logger
}

// NewClient creates a directory client for descriptor.
func NewClient(baseURL string, descriptor models.AgentDescriptor, logger *zap.Logger) (*Client, error) {
	if valid, msg := validation.ValidateURL(baseURL); !valid {
		return nil, fmt.Errorf("invalid directory URL: %s", msg)
	}
	if err := validation.Struct(descriptor); err != nil {
		return nil, fmt.Errorf("invalid agent descriptor: %w", err)
	}

	instanceID := uuid.NewString()
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(requestTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader(instanceHeader, instanceID).
		SetRetryCount(0)

	return &Client{
		http:       client,
		descriptor: descriptor,
		instanceID: instanceID,
		logger:     logger,
	}, nil
}

// Descriptor returns the registered descriptor.
func (c *Client) Descriptor() models.AgentDescriptor {
	return c.descriptor
}

// Register announces the agent to the directory.
func (c *Client) Register(ctx context.Context) error {
	if err := c.post(ctx, registerPath); err != nil {
		return fmt.Errorf("failed to register agent: %w", err)
	}
	c.logger.Info("agent registered",
		zap.String("identifier", c.descriptor.Identifier),
		zap.String("instance", c.instanceID),
	)
	return nil
}

// Unregister removes the agent from the directory.
func (c *Client) Unregister(ctx context.Context) error {
	if err := c.post(ctx, unregisterPath); err != nil {
		return fmt.Errorf("failed to unregister agent: %w", err)
	}
	c.logger.Info("agent unregistered", zap.String("identifier", c.descriptor.Identifier))
	return nil
}

func (c *Client) post(ctx context.Context, path string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(c.descriptor).
		Post(path)
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return &gateway.StatusError{Service: "directory", Code: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}
