package domain

import "errors"

// Domain errors represent misuse of the API surface or adapter failures.
// Malformed document text is NEVER an error: the pipeline degrades to
// low-confidence results instead (see the policy package).
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input to an adapter,
	// such as a nil report passed to a store.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedInput indicates a file type the text extractor cannot
	// handle. Binary PDF decoding happens upstream of this tool.
	ErrUnsupportedInput = errors.New("unsupported input")
)
