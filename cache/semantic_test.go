package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikemaster2331/pathfinder/ai/mock"
	"github.com/bikemaster2331/pathfinder/core"
	storagebadger "github.com/bikemaster2331/pathfinder/storage/badger"
)

func newTestCache(t *testing.T) (*SemanticCache, *mock.MockEmbedder) {
	t.Helper()
	_, cacheRepo, backend, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	embedder := mock.NewMockEmbedder()
	return New(cacheRepo, embedder), embedder
}

func TestGetEmptyCacheMisses(t *testing.T) {
	c, embedder := newTestCache(t)

	entry, err := c.Get(context.Background(), "where can i surf")
	require.NoError(t, err)
	assert.Nil(t, entry)
	assert.Zero(t, embedder.CallCount(), "empty cache should not touch the embedder")
}

func TestSetThenGetExactQuery(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	places := []core.Place{{Name: "Puraran Beach", Lat: 13.66, Lng: 124.39, Category: "beach", Municipality: "Baras"}}
	require.NoError(t, c.Set(ctx, "where can i surf", "Puraran Beach has great waves.", places))

	entry, err := c.Get(ctx, "where can i surf")
	require.NoError(t, err)
	require.NotNil(t, entry, "identical query embeds identically, similarity is 1.0")
	assert.Equal(t, "Puraran Beach has great waves.", entry.Answer)
	assert.Equal(t, core.RevisionRaw, entry.Revision)
	require.Len(t, entry.Places, 1)
	assert.Equal(t, "Puraran Beach", entry.Places[0].Name)
}

func TestGetUnrelatedQueryMisses(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "where can i surf", "Puraran Beach has great waves.", nil))

	entry, err := c.Get(ctx, "what local dishes should i try")
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestGetParaphraseHit(t *testing.T) {
	c, embedder := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "where can i surf", "Puraran Beach has great waves.", nil))

	// A paraphrase embeds close to the original in production; the mock
	// embedder is forced onto the same vector to simulate that.
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return mock.DeterministicVector("where can i surf", 384), nil
	}

	entry, err := c.Get(ctx, "best spots for surfing?")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "where can i surf", entry.Query)
}

func TestSetAlwaysCreatesNewEntry(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "where can i surf", "first answer", nil))
	require.NoError(t, c.Set(ctx, "where can i surf", "second answer", nil))

	count, err := c.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestUpdateFlipsRevision(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "where can i surf", "raw answer", nil))

	ok, err := c.Update(ctx, "where can i surf", "Polished answer about Puraran.")
	require.NoError(t, err)
	assert.True(t, ok)

	entry, err := c.Get(ctx, "where can i surf")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "Polished answer about Puraran.", entry.Answer)
	assert.Equal(t, core.RevisionEnhanced, entry.Revision)
	assert.True(t, entry.UpdatedAt.After(entry.CreatedAt) || entry.UpdatedAt.Equal(entry.CreatedAt))
}

func TestUpdateEmptyCacheReturnsFalse(t *testing.T) {
	c, _ := newTestCache(t)

	ok, err := c.Update(context.Background(), "where can i surf", "new answer")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateBelowThresholdReturnsFalse(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "where can i surf", "raw answer", nil))

	ok, err := c.Update(ctx, "what local dishes should i try", "unrelated answer")
	require.NoError(t, err)
	assert.False(t, ok)

	entry, err := c.Get(ctx, "where can i surf")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "raw answer", entry.Answer, "miss must not mutate anything")
}

func TestSetTimestamps(t *testing.T) {
	c, _ := newTestCache(t)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "where can i surf", "raw answer", nil))

	entry, err := c.Get(ctx, "where can i surf")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.CreatedAt.Equal(fixed))
}
