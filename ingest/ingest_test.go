package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikemaster2331/pathfinder/ai/mock"
	storagebadger "github.com/bikemaster2331/pathfinder/storage/badger"
)

const testDataset = `[
  {
    "input": "Where can I surf in Catanduanes?",
    "output": "Puraran Beach in Baras is the surfing capital, famous for the Majestic waves.",
    "title": "Surfing at Puraran",
    "topic": "surfing",
    "place_name": "Puraran Beach",
    "location": "Baras",
    "activities": ["surfing", "beaches"],
    "skill_level": "beginner"
  },
  {
    "input": "What waterfalls can I visit?",
    "output": "Maribina Falls in Bato is the most accessible waterfall, with natural pools.",
    "title": "Maribina Falls",
    "topic": "sights",
    "place_name": "Maribina Falls",
    "location": "Bato",
    "activities": "swimming"
  },
  {
    "input": "Incomplete item without output"
  }
]`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDataset(t *testing.T) {
	path := writeDataset(t, testDataset)

	records, err := LoadDataset(path)
	require.NoError(t, err)
	require.Len(t, records, 2, "items without output are skipped")

	first := records[0]
	assert.Equal(t, "Where can I surf in Catanduanes?", first.Question)
	assert.Equal(t, "Puraran Beach", first.PlaceName)
	assert.Equal(t, []string{"surfing", "beaches"}, []string(first.Activities))
	assert.Equal(t, "beginner", first.SkillLevel)
	assert.NotZero(t, first.Id)

	second := records[1]
	assert.Equal(t, []string{"swimming"}, []string(second.Activities),
		"scalar activities field parses as a single-element list")
	assert.Equal(t, second.Answer, second.Summary, "summary falls back to the answer")
}

func TestLoadDatasetMissingFile(t *testing.T) {
	_, err := LoadDataset(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestFingerprintStableAndContentSensitive(t *testing.T) {
	path := writeDataset(t, testDataset)

	fp1, err := Fingerprint(path)
	require.NoError(t, err)
	fp2, err := Fingerprint(path)
	require.NoError(t, err)
	assert.Equal(t, fp1, fp2)

	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))
	fp3, err := Fingerprint(path)
	require.NoError(t, err)
	assert.NotEqual(t, fp1, fp3)
}

func TestBuildLoadsAndFingerprints(t *testing.T) {
	factRepo, _, backend, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ing, err := NewIngestor(factRepo, mock.NewMockEmbedder())
	require.NoError(t, err)
	defer ing.Release()

	path := writeDataset(t, testDataset)
	ctx := context.Background()

	n, err := ing.Build(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	count, err := factRepo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	needs, err := ing.NeedsRebuild(ctx, path)
	require.NoError(t, err)
	assert.False(t, needs, "fresh build must match the stored fingerprint")
}

func TestNeedsRebuildOnChangedDataset(t *testing.T) {
	factRepo, _, backend, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ing, err := NewIngestor(factRepo, mock.NewMockEmbedder())
	require.NoError(t, err)
	defer ing.Release()

	path := writeDataset(t, testDataset)
	ctx := context.Background()

	needs, err := ing.NeedsRebuild(ctx, path)
	require.NoError(t, err)
	assert.True(t, needs, "empty store has no fingerprint")

	_, err = ing.Build(ctx, path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`[{"input":"q","output":"a"}]`), 0o644))
	needs, err = ing.NeedsRebuild(ctx, path)
	require.NoError(t, err)
	assert.True(t, needs)
}

func TestBuildEmptyDatasetFails(t *testing.T) {
	factRepo, _, backend, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	ing, err := NewIngestor(factRepo, mock.NewMockEmbedder())
	require.NoError(t, err)
	defer ing.Release()

	path := writeDataset(t, `[]`)
	_, err = ing.Build(context.Background(), path)
	assert.Error(t, err)
}

func TestNewIngestorRequiresDependencies(t *testing.T) {
	_, err := NewIngestor(nil, mock.NewMockEmbedder())
	assert.ErrorIs(t, err, ErrFactRepositoryRequired)

	factRepo, _, backend, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()

	_, err = NewIngestor(factRepo, nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}
