package model

import "errors"

var (
	// ErrRefused is returned when a structured reply carries a null or missing answer.
	ErrRefused = errors.New("model refused to answer")

	// ErrMissingCredentials is returned when the configured credential source has nothing to use.
	ErrMissingCredentials = errors.New("model gateway credentials not configured")
)
