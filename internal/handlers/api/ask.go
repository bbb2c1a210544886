package api

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"quickanswer/internal/answer"
	"quickanswer/internal/metrics"
	"quickanswer/internal/models"
	"quickanswer/internal/validation"
)

// ErrQuestionNotProvided is the message returned when the request has no usable question.
const ErrQuestionNotProvided = "Question not provided"

// Resolver answers one question.
type Resolver interface {
	Resolve(ctx context.Context, question string) answer.Result
}

// AskHandler serves POST /ask.
type AskHandler struct {
	resolver Resolver
	logger   *zap.Logger
}

// NewAskHandler creates a new ask handler.
func NewAskHandler(resolver Resolver, logger *zap.Logger) *AskHandler {
	return &AskHandler{resolver: resolver, logger: logger}
}

// Ask resolves the question in the request body. Remote failures surface as
// sentinel answers, so every valid question gets a 200.
func (h *AskHandler) Ask(c fiber.Ctx) error {
	var body models.AskRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, ErrQuestionNotProvided)
	}

	if !validation.ValidateQuestion(body.Question) {
		return jsonError(c, fiber.StatusBadRequest, ErrQuestionNotProvided)
	}

	result := h.resolver.Resolve(c.Context(), body.Question)
	metrics.RecordResolution(models.ChannelHTTP, result.Outcome, result.Elapsed)

	h.logger.Info("question answered",
		zap.String("outcome", result.Outcome),
		zap.Duration("elapsed", result.Elapsed),
	)

	return c.JSON(models.AskResponse{
		Question: body.Question,
		Answer:   result.Answer,
	})
}
