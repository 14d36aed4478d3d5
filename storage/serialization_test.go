package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikemaster2331/pathfinder/core"
)

func TestFactRecordRoundTrip(t *testing.T) {
	record := &core.FactRecord{
		Id:         core.IDFromContent("Where can I surf?"),
		Question:   "Where can I surf?",
		Answer:     "Puraran Beach has the Majestic surf break.",
		Summary:    "Surf at Puraran Beach.",
		Title:      "Puraran Beach",
		Topic:      "Beaches",
		PlaceName:  "Puraran Beach",
		Location:   "baras",
		Budget:     "cheap",
		Activities: []string{"surfing", "swimming"},
		GroupType:  "solo",
		SkillLevel: "beginner",
		Vector:     []float32{0.1, -0.5, 0.3},
		InsertedAt: time.Now().UTC(),
	}

	got, err := UnmarshalFactRecord(MarshalFactRecord(record))
	require.NoError(t, err)

	assert.Equal(t, record.Id, got.Id)
	assert.Equal(t, record.Question, got.Question)
	assert.Equal(t, record.Activities, got.Activities)
	assert.Equal(t, record.Vector, got.Vector)
	// Timestamps round to micros on the wire.
	assert.True(t, got.InsertedAt.Equal(record.InsertedAt.Truncate(time.Microsecond)))
}

func TestFactRecordOptionalFieldsStayEmpty(t *testing.T) {
	record := &core.FactRecord{
		Id:       1,
		Question: "q",
		Answer:   "a",
	}

	got, err := UnmarshalFactRecord(MarshalFactRecord(record))
	require.NoError(t, err)
	assert.Empty(t, got.PlaceName)
	assert.Empty(t, got.Activities)
	assert.Empty(t, got.Vector)
}

func TestCacheEntryRoundTrip(t *testing.T) {
	entry := &core.CacheEntry{
		Id:       core.IDFromContent("where can i surf"),
		Query:    "where can i surf",
		Answer:   "Surf at Puraran Beach.",
		Revision: core.RevisionEnhanced,
		Places: []core.Place{
			{Name: "Puraran Beach", Lat: 13.6633, Lng: 124.3933, Category: "beach", Municipality: "Baras"},
		},
		Vector:    []float32{0.2, 0.4},
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC().Add(time.Minute),
	}

	got, err := UnmarshalCacheEntry(MarshalCacheEntry(entry))
	require.NoError(t, err)

	assert.Equal(t, entry.Query, got.Query)
	assert.Equal(t, entry.Revision, got.Revision)
	assert.Equal(t, entry.Places, got.Places)
	assert.True(t, got.UpdatedAt.Equal(entry.UpdatedAt.Truncate(time.Microsecond)))
}

func TestUnmarshalRejectsTruncatedData(t *testing.T) {
	data := MarshalFactRecord(&core.FactRecord{Id: 1, Question: "q", Answer: "a"})

	_, err := UnmarshalFactRecord(data[:len(data)/2])
	assert.Error(t, err)
}
