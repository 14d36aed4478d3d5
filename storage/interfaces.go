package storage

import (
	"context"

	"github.com/bikemaster2331/pathfinder/core"
)

// FactRepository provides operations for the fact collection: the persistent
// vector index of ingested knowledge items.
// Implementations must be thread-safe and support concurrent access.
type FactRepository interface {
	// Query finds fact records similar to the given vector, optionally
	// restricted by a metadata filter.
	// Returns records with similarity >= minSimilarity, up to limit results,
	// ordered by similarity score (highest first). A nil filter matches
	// every record.
	Query(ctx context.Context, vector []float32, minSimilarity float32, limit int, filter *Filter) ([]*core.SearchResult, error)

	// BulkAdd adds fact records to the collection. Records must already
	// carry IDs and embedding vectors.
	BulkAdd(ctx context.Context, records ...*core.FactRecord) error

	// Count returns the number of fact records in the collection.
	Count(ctx context.Context) (int, error)

	// Wipe removes every fact record and the stored fingerprint.
	// Used by the non-incremental rebuild (delete-then-recreate-then-load).
	Wipe(ctx context.Context) error

	// Fingerprint returns the content hash of the dataset the collection was
	// built from, or "" if none is stored.
	Fingerprint(ctx context.Context) (string, error)

	// SetFingerprint records the content hash of the loaded dataset.
	SetFingerprint(ctx context.Context, fp string) error

	// Close closes the repository and releases resources.
	Close() error
}

// CacheRepository provides operations for the semantic cache collection.
// Implementations must be thread-safe; callers serialize the
// read-then-update sequences that require a consistent top-1 view.
type CacheRepository interface {
	// Nearest returns the single most similar cache entry for the vector,
	// or nil if the collection is empty.
	Nearest(ctx context.Context, vector []float32) (*core.CacheMatch, error)

	// Add stores a new cache entry. Entries are never overwritten on insert;
	// each call creates a distinct record.
	Add(ctx context.Context, entry *core.CacheEntry) error

	// Update replaces an existing entry by ID.
	// Returns ErrNotFound if no entry with that ID exists.
	Update(ctx context.Context, entry *core.CacheEntry) error

	// Count returns the number of cached entries.
	Count(ctx context.Context) (int, error)

	// Close closes the repository and releases resources.
	Close() error
}
