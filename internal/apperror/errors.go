package apperror

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Services wrap these with context via fmt.Errorf("%w"),
// and the HTTP error middleware maps each kind to a status code.
var (
	// ErrEmbeddingProvider marks a failed embedding call. The index guarantees
	// no partial passages were committed when this is returned.
	ErrEmbeddingProvider = errors.New("embedding provider failure")

	// ErrModelProvider marks a failed chat completion call.
	ErrModelProvider = errors.New("model provider failure")

	// ErrUnknownTool marks a model-requested tool that is not in the registry.
	// Surfaced to the user as a fallback message, never a crash.
	ErrUnknownTool = errors.New("unknown tool requested")

	// ErrTimeout marks an external call that exceeded its bounded deadline.
	ErrTimeout = errors.New("external call timed out")

	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("validation failed")
)

func NotFound(resource string, key any) error {
	return fmt.Errorf("%w: %s %v", ErrNotFound, resource, key)
}

func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
