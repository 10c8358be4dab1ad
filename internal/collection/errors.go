package collection

import (
	"errors"
	"fmt"

	"github.com/lazyvibe/storefront/internal/model"
)

// ErrUnknownKind is returned for a kind with no registered definition.
var ErrUnknownKind = errors.New("unknown collection kind")

// ValidationError reports input rejected before any change was made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PersistenceError reports a failed durable write. The in-memory collection
// already reflects the mutation.
type PersistenceError struct {
	Kind model.Kind
	Key  string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s (key %q): %v", e.Kind, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// DeserializationError reports a stored envelope that could not be read back.
// It never leaves the package; the collection starts empty instead.
type DeserializationError struct {
	Key string
	Err error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("decode envelope %q: %v", e.Key, e.Err)
}

func (e *DeserializationError) Unwrap() error {
	return e.Err
}
