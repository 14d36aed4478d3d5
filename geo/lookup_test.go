package geo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikemaster2331/pathfinder/ai/mock"
	"github.com/bikemaster2331/pathfinder/core"
)

func testPlaces() map[string]core.Place {
	return map[string]core.Place{
		"Puraran Beach": {Name: "Puraran Beach", Lat: 13.6633, Lng: 124.3933, Category: "beach", Municipality: "Baras"},
		"Maribina Falls": {Name: "Maribina Falls", Lat: 13.6064, Lng: 124.3042, Category: "waterfall", Municipality: "Bato"},
		"Binurong Point": {Name: "Binurong Point", Lat: 13.6519, Lng: 124.4011, Category: "viewpoint", Municipality: "Baras"},
	}
}

func newTestLookup(t *testing.T, embedder *mock.MockEmbedder) *Lookup {
	t.Helper()
	lookup, err := NewLookup(context.Background(), embedder, testPlaces())
	require.NoError(t, err)
	return lookup
}

func TestResolveExactCaseInsensitive(t *testing.T) {
	lookup := newTestLookup(t, mock.NewMockEmbedder())

	place := lookup.Resolve(context.Background(), "puraran beach")
	require.NotNil(t, place)
	assert.Equal(t, "Puraran Beach", place.Name)
	assert.Equal(t, "Baras", place.Municipality)
}

func TestResolveSemanticTier(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	lookup := newTestLookup(t, embedder)

	// Force the tag embedding onto the cached name vector so the
	// semantic tier fires for a paraphrase.
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return mock.DeterministicVector("Maribina Falls", 384), nil
	}

	place := lookup.Resolve(context.Background(), "the maribina waterfall")
	require.NotNil(t, place)
	assert.Equal(t, "Maribina Falls", place.Name)
}

func TestResolveFuzzyTypo(t *testing.T) {
	lookup := newTestLookup(t, mock.NewMockEmbedder())

	place := lookup.Resolve(context.Background(), "Binurog Point")
	require.NotNil(t, place)
	assert.Equal(t, "Binurong Point", place.Name)
}

func TestResolveUnknownReturnsNil(t *testing.T) {
	lookup := newTestLookup(t, mock.NewMockEmbedder())

	assert.Nil(t, lookup.Resolve(context.Background(), "eiffel tower"))
	assert.Nil(t, lookup.Resolve(context.Background(), ""))
}

func TestResolveEmbeddingFailureFallsThrough(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	lookup := newTestLookup(t, embedder)

	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, assert.AnError
	}

	// Fuzzy tier still resolves the typo without the embedder.
	place := lookup.Resolve(context.Background(), "Puraran Beache")
	require.NotNil(t, place)
	assert.Equal(t, "Puraran Beach", place.Name)
}
