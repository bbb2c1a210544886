// Package jobs contains background loops started alongside the server.
package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Registrar re-announces the agent to the directory.
type Registrar interface {
	Register(ctx context.Context) error
}

// Heartbeat periodically re-registers the agent so a restarted directory
// learns about it again.
type Heartbeat struct {
	registrar Registrar
	interval  time.Duration
	timeout   time.Duration
	logger    *zap.Logger
}

// NewHeartbeat creates a heartbeat that registers every interval.
func NewHeartbeat(registrar Registrar, interval time.Duration, logger *zap.Logger) *Heartbeat {
	return &Heartbeat{
		registrar: registrar,
		interval:  interval,
		timeout:   10 * time.Second,
		logger:    logger,
	}
}

// Start runs the loop until ctx is cancelled. The initial registration is
// done by the agent itself, so the first beat happens after one interval.
func (h *Heartbeat) Start(ctx context.Context) {
	if h.interval <= 0 {
		return
	}
	h.logger.Info("registration heartbeat started", zap.Duration("interval", h.interval))

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("registration heartbeat stopped")
			return
		case <-ticker.C:
			h.beat(ctx)
		}
	}
}

func (h *Heartbeat) beat(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := h.registrar.Register(ctx); err != nil {
		h.logger.Warn("heartbeat registration failed", zap.Error(err))
	}
}
