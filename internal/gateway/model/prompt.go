package model

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"quickanswer/internal/gateway"
)

const systemInstruction = "You are a helpful and smart assistant. You accurately provide answer to the provided user query."

// PlainPrompt wraps question in the Llama 3 chat template and asks for a concise answer.
func PlainPrompt(question string) string {
	return fmt.Sprintf(
		`<|begin_of_text|><|start_header_id|>system<|end_header_id|>%s<|eot_id|><|start_header_id|>user<|end_header_id|> Here is the query: "%s". Provide a precise and concise answer.<|eot_id|><|start_header_id|>assistant<|end_header_id|>`,
		systemInstruction, question,
	)
}

// StructuredPrompt asks for a JSON object with an "answer" field, null when the
// model cannot answer.
func StructuredPrompt(question string) string {
	return fmt.Sprintf(
		`<|begin_of_text|><|start_header_id|>system<|end_header_id|>%s Reply only with a JSON object of the form {"answer": "<text>"}. If you cannot answer, reply with {"answer": null}.<|eot_id|><|start_header_id|>user<|end_header_id|> Here is the query: "%s".<|eot_id|><|start_header_id|>assistant<|end_header_id|>`,
		systemInstruction, question,
	)
}

// ParseStructured extracts the answer from a structured reply. Surrounding prose
// or code fences around the JSON object are tolerated.
func ParseStructured(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", fmt.Errorf("%w: no JSON object in reply", gateway.ErrMalformedResponse)
	}
	raw := text[start : end+1]
	if !gjson.Valid(raw) {
		return "", fmt.Errorf("%w: invalid JSON in reply", gateway.ErrMalformedResponse)
	}

	field := gjson.Get(raw, "answer")
	switch field.Type {
	case gjson.Null:
		return "", ErrRefused
	case gjson.String:
		return strings.TrimSpace(field.String()), nil
	default:
		return "", fmt.Errorf("%w: answer is not a string", gateway.ErrMalformedResponse)
	}
}
