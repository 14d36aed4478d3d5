package storage

import (
	"strings"

	"github.com/bikemaster2331/pathfinder/core"
)

// Filter restricts fact retrieval by metadata equality. Fields left at their
// zero value are ignored; set fields are combined with AND, and slice fields
// accept any of their values (OR). The zero Filter matches every record.
type Filter struct {
	// Places matches records whose PlaceName or Location equals any of the
	// given tags (case-insensitive).
	Places []string

	// Activities matches records tagged with any of the given activities.
	Activities []string

	Budget     string
	GroupType  string
	SkillLevel string
}

// Empty reports whether the filter has no conditions set.
func (f *Filter) Empty() bool {
	if f == nil {
		return true
	}
	return len(f.Places) == 0 && len(f.Activities) == 0 &&
		f.Budget == "" && f.GroupType == "" && f.SkillLevel == ""
}

// Matches reports whether a record satisfies every set condition.
func (f *Filter) Matches(r *core.FactRecord) bool {
	if f.Empty() {
		return true
	}

	if len(f.Places) > 0 && !matchesPlace(r, f.Places) {
		return false
	}

	if len(f.Activities) > 0 && !matchesAnyActivity(r, f.Activities) {
		return false
	}

	if f.Budget != "" && !strings.EqualFold(r.Budget, f.Budget) {
		return false
	}

	if f.GroupType != "" && !strings.EqualFold(r.GroupType, f.GroupType) {
		return false
	}

	if f.SkillLevel != "" && !strings.EqualFold(r.SkillLevel, f.SkillLevel) {
		return false
	}

	return true
}

func matchesPlace(r *core.FactRecord, places []string) bool {
	for _, p := range places {
		if strings.EqualFold(r.PlaceName, p) || strings.EqualFold(r.Location, p) {
			return true
		}
	}
	return false
}

func matchesAnyActivity(r *core.FactRecord, activities []string) bool {
	for _, want := range activities {
		for _, have := range r.Activities {
			if strings.EqualFold(have, want) {
				return true
			}
		}
	}
	return false
}
