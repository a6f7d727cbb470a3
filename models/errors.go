package models

import (
	"errors"
	"fmt"
)

// ErrNoCredential means no usable Gemini API key could be resolved. Fatal
// to every core operation, reported once, never retried.
var ErrNoCredential = errors.New("no usable Gemini API key found")

// ErrEmptyWardrobe rejects a recommendation request before any adapter
// call when the wardrobe has zero items.
var ErrEmptyWardrobe = errors.New("wardrobe is empty")

// ErrNoValidItems means the recommendation referenced only ids that do not
// exist in the wardrobe, so there is nothing left to display.
var ErrNoValidItems = errors.New("no valid items recommended")

// SchemaError marks a structurally invalid payload from the remote service.
// The same input likely produces the same malformed shape, so these are
// never retried automatically.
type SchemaError struct {
	Subject string
	Reason  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid %s payload: %s", e.Subject, e.Reason)
}

// TransportError wraps a network or timeout failure talking to the remote
// service after the bounded retry budget is exhausted. Wardrobe state is
// never affected by one.
type TransportError struct {
	Op       string
	Attempts int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts: %v", e.Op, e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
