package repositories

import (
	"errors"
	"fmt"
)

// ErrUpstream matches every *UpstreamError via errors.Is.
var ErrUpstream = errors.New("upstream provider error")

// UpstreamError is a failed provider call: transport failure, non-2xx status
// or a payload that could not be used. StatusCode is 0 when no response was received.
type UpstreamError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: HTTP error (status %d): %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: HTTP error (status %d)", e.Op, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": upstream provider error"
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func (e *UpstreamError) Is(target error) bool { return target == ErrUpstream }

// InvalidPayloadError reports a provider response missing a required field or
// not decodable at all. It is always delivered wrapped in an *UpstreamError.
type InvalidPayloadError struct {
	Field string
	Err   error
}

func (e *InvalidPayloadError) Error() string {
	if e.Field != "" {
		return "invalid payload: missing field " + e.Field
	}
	return fmt.Sprintf("invalid payload: %v", e.Err)
}

func (e *InvalidPayloadError) Unwrap() error { return e.Err }

func missing(field string) error {
	return &InvalidPayloadError{Field: field}
}
