// Package broker carries question requests and answers over Redis lists.
package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	redisstore "github.com/gofiber/storage/redis/v3"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"quickanswer/internal/models"
)

const (
	defaultResponseKey  = "agents:responses"
	defaultPollTimeout  = time.Second
	defaultErrorBackoff = time.Second
)

var (
	// ErrConsumerActive is returned when a consumer is already attached.
	ErrConsumerActive = errors.New("broker: consumer already attached")

	// ErrNoClient is returned when the broker is created without a Redis client.
	ErrNoClient = errors.New("broker: redis client is required")
)

// Handler processes one request message.
type Handler func(ctx context.Context, req models.CoTRequest)

// Options controls broker behavior.
type Options struct {
	RequestKey  string
	ResponseKey string
	PollTimeout time.Duration
}

// Broker consumes requests addressed to one agent and publishes responses.
type Broker struct {
	client      redis.UniversalClient
	requestKey  string
	responseKey string
	pollTimeout time.Duration
	logger      *zap.Logger

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	inflight sync.WaitGroup
}

// RequestKey returns the list key requests for agentID are pushed to.
func RequestKey(agentID string) string {
	return "agents:" + agentID + ":requests"
}

// New creates a broker for agentID.
func New(client redis.UniversalClient, agentID string, logger *zap.Logger, opts *Options) (*Broker, error) {
	if client == nil {
		return nil, ErrNoClient
	}
	b := &Broker{
		client:      client,
		requestKey:  RequestKey(agentID),
		responseKey: defaultResponseKey,
		pollTimeout: defaultPollTimeout,
		logger:      logger,
	}
	if opts != nil {
		if opts.RequestKey != "" {
			b.requestKey = opts.RequestKey
		}
		if opts.ResponseKey != "" {
			b.responseKey = opts.ResponseKey
		}
		if opts.PollTimeout > 0 {
			b.pollTimeout = opts.PollTimeout
		}
	}
	return b, nil
}

// Open connects to Redis at redisURL.
func Open(redisURL string) (store *redisstore.Storage, err error) {
	// redisstore.New panics when the initial ping fails.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to connect to redis: %v", r)
		}
	}()
	return redisstore.New(redisstore.Config{URL: redisURL}), nil
}

// AddConsumer starts receiving requests. Each message is handled on its own goroutine.
func (b *Broker) AddConsumer(handler Handler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cancel != nil {
		return ErrConsumerActive
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	b.cancel = cancel
	b.done = done

	go b.consume(ctx, handler, done)

	b.logger.Info("consumer attached", zap.String("queue", b.requestKey))
	return nil
}

// RemoveConsumer stops receiving and waits for in-flight handlers. Safe to call
// when no consumer is attached.
func (b *Broker) RemoveConsumer() {
	b.mu.Lock()
	cancel, done := b.cancel, b.done
	b.cancel, b.done = nil, nil
	b.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	b.inflight.Wait()

	b.logger.Info("consumer detached", zap.String("queue", b.requestKey))
}

// SendMessage publishes a response.
func (b *Broker) SendMessage(ctx context.Context, resp models.CoTResponse) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("broker: marshal response: %w", err)
	}
	if err := b.client.RPush(ctx, b.responseKey, payload).Err(); err != nil {
		return fmt.Errorf("broker: publish response: %w", err)
	}
	return nil
}

// Publish enqueues a request for this broker's agent.
func (b *Broker) Publish(ctx context.Context, req models.CoTRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("broker: marshal request: %w", err)
	}
	if err := b.client.RPush(ctx, b.requestKey, payload).Err(); err != nil {
		return fmt.Errorf("broker: publish request: %w", err)
	}
	return nil
}

func (b *Broker) consume(ctx context.Context, handler Handler, done chan<- struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		values, err := b.client.BLPop(ctx, b.pollTimeout, b.requestKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			b.logger.Error("failed to receive request", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(defaultErrorBackoff):
			}
			continue
		}

		// BLPop returns [key, value].
		if len(values) != 2 {
			continue
		}
		b.dispatch(ctx, handler, values[1])
	}
}

func (b *Broker) dispatch(ctx context.Context, handler Handler, payload string) {
	deliveryID := uuid.NewString()

	var req models.CoTRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		b.logger.Warn("dropping malformed request",
			zap.String("delivery_id", deliveryID),
			zap.Error(err),
		)
		return
	}

	b.logger.Debug("request received",
		zap.String("delivery_id", deliveryID),
		zap.String("prompt_identifier", req.PromptIdentifier),
	)

	b.inflight.Add(1)
	go func() {
		defer b.inflight.Done()
		handler(context.WithoutCancel(ctx), req)
	}()
}
