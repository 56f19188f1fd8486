package saveclient

import (
	"errors"
	"fmt"
)

var (
	// ErrRejected indicates the endpoint answered with a non-2xx status.
	ErrRejected = errors.New("save rejected by server")

	// ErrUnavailable indicates the endpoint could not be reached, or the
	// request was cancelled or timed out before an answer arrived.
	ErrUnavailable = errors.New("save endpoint unavailable")

	// ErrInvalidResponse indicates a 2xx answer whose body is not the
	// expected JSON.
	ErrInvalidResponse = errors.New("invalid save response")
)

// RejectedError carries the server's explanation of a non-2xx answer.
type RejectedError struct {
	StatusCode int
	// Message is the body's "error" field, empty when absent.
	Message string
	Details string
}

func (e *RejectedError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "no error message"
	}
	if e.Details != "" {
		return fmt.Sprintf("save rejected (status %d): %s: %s", e.StatusCode, msg, e.Details)
	}
	return fmt.Sprintf("save rejected (status %d): %s", e.StatusCode, msg)
}

func (e *RejectedError) Unwrap() error {
	return ErrRejected
}
