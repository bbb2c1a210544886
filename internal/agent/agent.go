// Package agent serves questions arriving over the message bus and manages the
// directory registration that makes the bus route them here.
package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"quickanswer/internal/answer"
	"quickanswer/internal/broker"
	"quickanswer/internal/jobs"
	"quickanswer/internal/metrics"
	"quickanswer/internal/models"
	"quickanswer/internal/validation"
)

// Default descriptor values.
const (
	DefaultIdentifier = "general_questions"
	DefaultAgentType  = models.AgentTypeOther
)

// DefaultPurpose describes what this agent answers.
var DefaultPurpose = []string{
	"Answer general questions using LLM",
	"Fallback to real-time API if necessary",
}

var (
	// ErrAlreadyStarted is returned by Start on a running or stopped agent.
	ErrAlreadyStarted = errors.New("agent already started")
)

// Resolver answers one question.
type Resolver interface {
	Resolve(ctx context.Context, question string) answer.Result
}

// Registrar announces the agent to the directory.
type Registrar interface {
	Register(ctx context.Context) error
	Unregister(ctx context.Context) error
}

// MessageBus delivers requests and carries responses.
type MessageBus interface {
	AddConsumer(handler broker.Handler) error
	RemoveConsumer()
	SendMessage(ctx context.Context, resp models.CoTResponse) error
}

type state int

const (
	stateIdle state = iota
	stateRunning
	stateStopped
)

// Agent ties the resolver to the message bus.
type Agent struct {
	identifier string
	resolver   Resolver
	registrar  Registrar
	bus        MessageBus
	logger     *zap.Logger

	heartbeat time.Duration

	mu              sync.Mutex
	state           state
	stopHeartbeat   context.CancelFunc
	heartbeatExited chan struct{}
}

// Option configures an Agent.
type Option func(*Agent)

// WithHeartbeat re-registers the agent every interval while it is running.
// A non-positive interval disables the heartbeat.
func WithHeartbeat(interval time.Duration) Option {
	return func(a *Agent) { a.heartbeat = interval }
}

// New creates an agent answering as identifier.
func New(identifier string, resolver Resolver, registrar Registrar, bus MessageBus, logger *zap.Logger, opts ...Option) *Agent {
	a := &Agent{
		identifier: identifier,
		resolver:   resolver,
		registrar:  registrar,
		bus:        bus,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start registers with the directory and attaches the consumer. If the consumer
// cannot be attached the registration is rolled back.
func (a *Agent) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != stateIdle {
		return ErrAlreadyStarted
	}

	if err := a.registrar.Register(ctx); err != nil {
		return err
	}

	if err := a.bus.AddConsumer(a.Handle); err != nil {
		if uerr := a.registrar.Unregister(ctx); uerr != nil {
			a.logger.Error("failed to roll back registration", zap.Error(uerr))
		}
		return fmt.Errorf("failed to attach consumer: %w", err)
	}

	a.state = stateRunning
	a.startHeartbeat()
	a.logger.Info("agent started", zap.String("identifier", a.identifier))
	return nil
}

// Stop halts the heartbeat, detaches the consumer and unregisters. No
// registration is sent after Stop returns. Only the first call after a
// successful Start does anything; later calls return nil.
func (a *Agent) Stop(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != stateRunning {
		return nil
	}
	a.state = stateStopped

	a.haltHeartbeat()
	a.bus.RemoveConsumer()
	if err := a.registrar.Unregister(ctx); err != nil {
		return err
	}

	a.logger.Info("agent stopped", zap.String("identifier", a.identifier))
	return nil
}

func (a *Agent) startHeartbeat() {
	if a.heartbeat <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	exited := make(chan struct{})
	a.stopHeartbeat = cancel
	a.heartbeatExited = exited

	hb := jobs.NewHeartbeat(a.registrar, a.heartbeat, a.logger.Named("heartbeat"))
	go func() {
		defer close(exited)
		hb.Start(ctx)
	}()
}

// haltHeartbeat cancels the heartbeat and waits for any in-flight beat to return.
func (a *Agent) haltHeartbeat() {
	if a.stopHeartbeat == nil {
		return
	}
	a.stopHeartbeat()
	<-a.heartbeatExited
	a.stopHeartbeat, a.heartbeatExited = nil, nil
}

// Handle resolves one request and publishes the response. Invalid requests are dropped.
func (a *Agent) Handle(ctx context.Context, req models.CoTRequest) {
	if err := validation.Struct(req); err != nil {
		a.logger.Warn("dropping invalid request", zap.Error(err))
		return
	}

	a.logger.Info("request received",
		zap.String("user_identifier", req.UserIdentifier),
		zap.String("prompt_identifier", req.PromptIdentifier),
	)

	result := a.resolver.Resolve(ctx, req.Action)
	metrics.RecordResolution(models.ChannelQueue, result.Outcome, result.Elapsed)

	resp := models.CoTResponse{
		Action:           a.identifier,
		UserIdentifier:   req.UserIdentifier,
		PromptIdentifier: req.PromptIdentifier,
		ActionSuccessful: result.Answered(),
		ActionResponse:   result.Answer,
	}
	if !resp.ActionSuccessful {
		resp.ActionResponse = answer.SentinelNoAnswer
	}

	if err := a.bus.SendMessage(ctx, resp); err != nil {
		a.logger.Error("failed to send response",
			zap.String("prompt_identifier", req.PromptIdentifier),
			zap.Error(err),
		)
	}
}
