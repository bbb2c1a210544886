package model

import (
	"context"

	"quickanswer/internal/config"
)

// Responder adapts a Generator to question answering using the configured prompt mode.
type Responder struct {
	gen    Generator
	mode   string
	params Params
}

// NewResponder creates a Responder. An unknown mode behaves like plain.
func NewResponder(gen Generator, mode string, params Params) *Responder {
	return &Responder{gen: gen, mode: mode, params: params}
}

// Ask builds the prompt for question and returns the model's answer.
// In structured mode a refusal is reported as ErrRefused.
func (r *Responder) Ask(ctx context.Context, question string) (string, error) {
	if r.mode == config.PromptStructured {
		text, err := r.gen.Generate(ctx, StructuredPrompt(question), r.params)
		if err != nil {
			return "", err
		}
		return ParseStructured(text)
	}
	return r.gen.Generate(ctx, PlainPrompt(question), r.params)
}
