package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikemaster2331/pathfinder/core"
	"github.com/bikemaster2331/pathfinder/storage"
)

func newFactFixture(t *testing.T) storage.FactRepository {
	t.Helper()
	facts, _, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return facts
}

// axis returns a unit vector along the given dimension so similarity
// scores in tests are exact.
func axis(dim int) []float32 {
	v := make([]float32, 4)
	v[dim] = 1
	return v
}

func factAt(id core.ID, place string, vector []float32) *core.FactRecord {
	return &core.FactRecord{
		Id:        id,
		Question:  "about " + place,
		Answer:    "answer about " + place,
		PlaceName: place,
		Vector:    vector,
	}
}

func TestQueryOrdersBySimilarity(t *testing.T) {
	facts := newFactFixture(t)
	ctx := context.Background()

	require.NoError(t, facts.BulkAdd(ctx,
		factAt(1, "far", axis(1)),
		factAt(2, "exact", axis(0)),
		factAt(3, "close", []float32{0.8, 0.6, 0, 0}),
	))

	results, err := facts.Query(ctx, axis(0), 0.5, 10, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "exact", results[0].Record.PlaceName)
	assert.Equal(t, "close", results[1].Record.PlaceName)
	assert.InDelta(t, 1.0, float64(results[0].Score), 0.001)
	assert.InDelta(t, 0.8, float64(results[1].Score), 0.001)
}

func TestQueryRespectsThresholdAndLimit(t *testing.T) {
	facts := newFactFixture(t)
	ctx := context.Background()

	require.NoError(t, facts.BulkAdd(ctx,
		factAt(1, "a", axis(0)),
		factAt(2, "b", []float32{0.9, 0.435889894, 0, 0}),
		factAt(3, "c", axis(1)),
	))

	results, err := facts.Query(ctx, axis(0), 0.95, 10, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Record.PlaceName)

	results, err = facts.Query(ctx, axis(0), 0.1, 1, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Record.PlaceName)
}

func TestQueryAppliesFilter(t *testing.T) {
	facts := newFactFixture(t)
	ctx := context.Background()

	puraran := factAt(1, "Puraran Beach", axis(0))
	puraran.Location = "baras"
	twinRock := factAt(2, "Twin Rock Beach", axis(0))
	twinRock.Location = "virac"
	require.NoError(t, facts.BulkAdd(ctx, puraran, twinRock))

	results, err := facts.Query(ctx, axis(0), 0.5, 10, &storage.Filter{Places: []string{"virac"}})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Twin Rock Beach", results[0].Record.PlaceName)
}

func TestQuerySkipsUnembeddedRecords(t *testing.T) {
	facts := newFactFixture(t)
	ctx := context.Background()

	require.NoError(t, facts.BulkAdd(ctx,
		factAt(1, "embedded", axis(0)),
		factAt(2, "pending", nil),
	))

	results, err := facts.Query(ctx, axis(0), 0.0, 10, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "embedded", results[0].Record.PlaceName)
}

func TestBulkAddValidatesRecords(t *testing.T) {
	facts := newFactFixture(t)
	ctx := context.Background()

	err := facts.BulkAdd(ctx, &core.FactRecord{Id: 1, Question: "q"})
	require.Error(t, err)

	err = facts.BulkAdd(ctx, nil)
	assert.ErrorIs(t, err, storage.ErrNilRecord)
}

func TestWipeClearsRecordsAndFingerprint(t *testing.T) {
	facts := newFactFixture(t)
	ctx := context.Background()

	require.NoError(t, facts.BulkAdd(ctx, factAt(1, "a", axis(0))))
	require.NoError(t, facts.SetFingerprint(ctx, "abc123"))

	require.NoError(t, facts.Wipe(ctx))

	count, err := facts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	fp, err := facts.Fingerprint(ctx)
	require.NoError(t, err)
	assert.Empty(t, fp)
}

func TestFingerprintRoundTrip(t *testing.T) {
	facts := newFactFixture(t)
	ctx := context.Background()

	fp, err := facts.Fingerprint(ctx)
	require.NoError(t, err)
	assert.Empty(t, fp)

	require.NoError(t, facts.SetFingerprint(ctx, "abc123"))

	fp, err = facts.Fingerprint(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", fp)
}
