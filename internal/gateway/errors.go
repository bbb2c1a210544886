// Package gateway holds what the remote model and search clients share.
package gateway

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse is returned when a remote payload cannot be parsed into the expected shape.
var ErrMalformedResponse = errors.New("malformed response")

// StatusError reports a non-success HTTP status from a remote service.
type StatusError struct {
	Service string
	Code    int
	Body    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Service, e.Code, e.Body)
}

// IsStatusError reports whether err carries a non-success status from a remote service.
func IsStatusError(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr)
}
