package api

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"quickanswer/internal/models"
)

// Pinger checks a backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves GET /healthz.
type HealthHandler struct {
	db     Pinger
	logger *zap.Logger
}

// NewHealthHandler creates a health handler. database may be nil.
func NewHealthHandler(database Pinger, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: database, logger: logger}
}

// Check reports liveness, pinging the database when one is configured.
func (h *HealthHandler) Check(c fiber.Ctx) error {
	if h.db == nil {
		return c.JSON(models.HealthResponse{Status: "ok"})
	}

	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Warn("database ping failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.HealthResponse{
			Status:   "unavailable",
			Database: "unreachable",
		})
	}

	return c.JSON(models.HealthResponse{Status: "ok", Database: "ok"})
}
