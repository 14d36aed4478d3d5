package ingest

import "errors"

// Construction errors.
var (
	// ErrFactRepositoryRequired indicates a nil fact repository was provided.
	ErrFactRepositoryRequired = errors.New("fact repository is required")
	// ErrEmbedderRequired indicates a nil embedder was provided.
	ErrEmbedderRequired = errors.New("embedder is required")
)
