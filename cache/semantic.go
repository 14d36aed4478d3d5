// Copyright 2025 The Pathfinder Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bikemaster2331/pathfinder/ai"
	"github.com/bikemaster2331/pathfinder/core"
	"github.com/bikemaster2331/pathfinder/storage"
)

// SemanticCache indexes answers by query embedding. All operations hold
// one lock: Update must observe a top-1 result consistent with recent
// Set calls, so reads and writes are mutually exclusive per instance.
type SemanticCache struct {
	mu        sync.Mutex
	repo      storage.CacheRepository
	embedder  ai.Embedder
	threshold float32
	logger    *slog.Logger

	// now is swapped in tests to control timestamps.
	now func() time.Time
}

// Option configures a SemanticCache.
type Option func(*SemanticCache)

// WithLogger sets the logger used by the cache.
func WithLogger(logger *slog.Logger) Option {
	return func(c *SemanticCache) { c.logger = logger }
}

// WithThreshold sets the minimum similarity for a hit.
func WithThreshold(threshold float32) Option {
	return func(c *SemanticCache) { c.threshold = threshold }
}

// New creates a semantic cache over the given repository and embedder.
func New(repo storage.CacheRepository, embedder ai.Embedder, opts ...Option) *SemanticCache {
	c := &SemanticCache{
		repo:      repo,
		embedder:  embedder,
		threshold: 0.88,
		logger:    slog.Default().With("component", "cache"),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached entry whose stored query is most similar to the
// given one, or nil when the best match falls below the threshold. An
// empty cache returns nil without touching the embedder.
func (c *SemanticCache) Get(ctx context.Context, query string) (*core.CacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	count, err := c.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count cache entries: %w", err)
	}
	if count == 0 {
		return nil, nil
	}

	match, err := c.nearest(ctx, query)
	if err != nil {
		return nil, err
	}
	if match == nil || match.Score < c.threshold {
		return nil, nil
	}

	c.logger.Debug("cache hit",
		"query", query,
		"cached_query", match.Entry.Query,
		"score", match.Score,
		"revision", match.Entry.Revision.String())
	return match.Entry, nil
}

// Set stores a new entry for the query with revision raw. Inserts never
// overwrite: near-duplicate queries written concurrently each keep their
// own entry, and lookups pick the closest.
func (c *SemanticCache) Set(ctx context.Context, query, answer string, places []core.Place) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	vector, err := c.embedder.EmbedText(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to embed cache query: %w", err)
	}

	now := c.now()
	entry := &core.CacheEntry{
		Id:        core.IDFromContent(fmt.Sprintf("%s:%d", query, now.UnixNano())),
		Query:     query,
		Answer:    answer,
		Places:    places,
		Revision:  core.RevisionRaw,
		Vector:    vector,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := core.ValidateCacheEntry(entry); err != nil {
		return err
	}
	return c.repo.Add(ctx, entry)
}

// Update re-runs the similarity search for the query and, when the top
// match still clears the threshold, replaces its answer and flips the
// revision to enhanced. Returns false when no entry qualifies, which
// happens when the cache is empty or the query now sits between two
// near-duplicate entries.
func (c *SemanticCache) Update(ctx context.Context, query, newAnswer string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	count, err := c.repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count cache entries: %w", err)
	}
	if count == 0 {
		return false, nil
	}

	match, err := c.nearest(ctx, query)
	if err != nil {
		return false, err
	}
	if match == nil || match.Score < c.threshold {
		return false, nil
	}

	entry := match.Entry
	entry.Answer = newAnswer
	entry.Revision = core.RevisionEnhanced
	entry.UpdatedAt = c.now()

	if err := c.repo.Update(ctx, entry); err != nil {
		return false, fmt.Errorf("failed to update cache entry: %w", err)
	}
	c.logger.Debug("cache entry enhanced", "query", query, "cached_query", entry.Query)
	return true, nil
}

// Count returns the number of stored entries.
func (c *SemanticCache) Count(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.repo.Count(ctx)
}

// nearest embeds the query and finds its closest entry. Caller holds mu.
func (c *SemanticCache) nearest(ctx context.Context, query string) (*core.CacheMatch, error) {
	vector, err := c.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed cache query: %w", err)
	}
	match, err := c.repo.Nearest(ctx, vector)
	if err != nil {
		return nil, fmt.Errorf("failed to search cache: %w", err)
	}
	return match, nil
}
