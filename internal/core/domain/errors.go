package domain

import "errors"

// Domain errors represent configuration and pipeline failures.
// Callers wrap them with context naming the offending field, value or index.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConfig indicates a configuration entry is missing a required field
	// or carries a value of the wrong shape.
	ErrConfig = errors.New("configuration error")

	// ErrProviderNotFound indicates no provider is registered for a type.
	ErrProviderNotFound = errors.New("provider not found")

	// ErrUnsupportedFormat indicates an output format brander cannot produce.
	// Only Markdown documents are supported.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrDetached indicates a non-root document was built without a parent.
	// Detached documents are skipped rather than failing the run.
	ErrDetached = errors.New("detached document")

	// ErrVCSUnavailable indicates the repository URL could not be resolved.
	ErrVCSUnavailable = errors.New("vcs remote unavailable")
)
