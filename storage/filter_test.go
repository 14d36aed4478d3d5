package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bikemaster2331/pathfinder/core"
)

func surfRecord() *core.FactRecord {
	return &core.FactRecord{
		Question:   "Where can I surf?",
		Answer:     "Puraran Beach has the Majestic surf break.",
		PlaceName:  "Puraran Beach",
		Location:   "baras",
		Budget:     "cheap",
		Activities: []string{"surfing", "swimming"},
		GroupType:  "solo",
		SkillLevel: "beginner",
	}
}

func TestFilterEmpty(t *testing.T) {
	var nilFilter *Filter
	assert.True(t, nilFilter.Empty())
	assert.True(t, (&Filter{}).Empty())
	assert.False(t, (&Filter{Budget: "cheap"}).Empty())
	assert.False(t, (&Filter{Places: []string{"Virac"}}).Empty())
}

func TestFilterMatches(t *testing.T) {
	record := surfRecord()

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"zero filter matches everything", Filter{}, true},
		{"place by name", Filter{Places: []string{"puraran beach"}}, true},
		{"place by location", Filter{Places: []string{"Baras"}}, true},
		{"place any-of", Filter{Places: []string{"Virac", "Puraran Beach"}}, true},
		{"place mismatch", Filter{Places: []string{"Virac"}}, false},
		{"activity any-of", Filter{Activities: []string{"diving", "swimming"}}, true},
		{"activity mismatch", Filter{Activities: []string{"diving"}}, false},
		{"budget case-insensitive", Filter{Budget: "CHEAP"}, true},
		{"budget mismatch", Filter{Budget: "expensive"}, false},
		{"group type", Filter{GroupType: "solo"}, true},
		{"skill level", Filter{SkillLevel: "beginner"}, true},
		{"all conditions AND", Filter{Places: []string{"baras"}, Budget: "cheap", SkillLevel: "beginner"}, true},
		{"one failing condition rejects", Filter{Places: []string{"baras"}, Budget: "expensive"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(record))
		})
	}
}

func TestFilterNilMatchesEverything(t *testing.T) {
	var f *Filter
	assert.True(t, f.Matches(surfRecord()))
}
