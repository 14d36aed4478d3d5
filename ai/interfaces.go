package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use and must return
// unit-normalized vectors so that dot product equals cosine similarity.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Rewriter turns a raw, fact-concatenated answer into fluent prose via an
// external language model. Implementations must be thread-safe.
//
// Rewriter failures are expected and recoverable: network errors, non-200
// responses, and safety refusals (empty content) all surface as errors and
// callers keep the raw answer.
type Rewriter interface {
	// Rewrite generates a fluent answer for the query grounded in the given
	// facts. Returns an error when the service is unavailable or refuses;
	// never returns an empty string without an error.
	Rewrite(ctx context.Context, query, facts string) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and Rewriter instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Rewriter returns the answer rewrite service.
	// The returned Rewriter is safe for concurrent use.
	Rewriter() Rewriter

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
