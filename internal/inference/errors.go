package inference

import "errors"

var (
	// ErrInvalidInput marks requests rejected before any model runs.
	ErrInvalidInput = errors.New("invalid input")
	// ErrModelInvocation marks failures of the underlying scoring call.
	ErrModelInvocation = errors.New("model invocation failed")
	// ErrNotLoaded marks calls on a model whose session was never opened or is closed.
	ErrNotLoaded = errors.New("model not loaded")
)
