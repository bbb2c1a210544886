package db

import "errors"

// Domain-level database error sentinels.
var (
	ErrUnknownOutcome = errors.New("unknown resolution outcome")
	ErrUnknownChannel = errors.New("unknown resolution channel")
)
