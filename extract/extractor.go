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

package extract

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bikemaster2331/pathfinder/core"
)

// Per-category slot lexicons. Order matters: first matching label wins.
type slotCategory struct {
	label string
	terms []string
}

var budgetTiers = []slotCategory{
	{"cheap", []string{"cheap", "budget", "affordable", "mura", "murang"}},
	{"mid", []string{"mid-range", "moderate", "medium"}},
	{"expensive", []string{"luxury", "expensive", "high-end", "mahal", "premium"}},
}

var skillLevels = []slotCategory{
	{"beginner", []string{"beginner", "first time", "new", "starter", "baguhan"}},
	{"intermediate", []string{"intermediate", "some experience"}},
	{"expert", []string{"expert", "advanced", "pro", "professional", "experienced"}},
}

var groupTypes = []slotCategory{
	{"solo", []string{"solo", "alone", "myself", "ako lang"}},
	{"couple", []string{"couple", "two", "date", "romantic", "dalawa"}},
	{"family", []string{"family", "kids", "children", "pamilya", "bata"}},
	{"group", []string{"group", "friends", "barkada", "grupo"}},
}

var timePeriods = []slotCategory{
	{"morning", []string{"morning", "umaga", "early"}},
	{"afternoon", []string{"afternoon", "hapon"}},
	{"evening", []string{"evening", "night", "gabi", "sunset"}},
	{"weekend", []string{"weekend", "saturday", "sunday"}},
	{"weekday", []string{"weekday", "monday", "tuesday", "wednesday", "thursday", "friday"}},
}

var proximityKinds = []slotCategory{
	{"near", []string{"near", "close to", "around", "malapit"}},
	{"in", []string{"in", "at", "sa"}},
	{"from", []string{"from"}},
}

// Explicit browsing keywords. Word boundaries keep "all" from firing
// inside "falls" or "tall".
var listingKeywordRe = regexp.MustCompile(
	`\b(?:all|list|show me|what are|which|any|options|where can i|where to|places for|places to)\b`)

var listingPlurals = []string{
	"beaches", "hotels", "cafes", "restaurants", "falls", "resorts",
	"waterfalls", "viewpoints", "activities", "coffee shops", "bars",
}

var punctuationRe = regexp.MustCompile(`[^\w\s]`)

// Lexicons holds the static domain vocabulary an extractor matches against.
type Lexicons struct {
	// PlaceNames are the display-cased known place names.
	PlaceNames []string
	// Municipalities are lowercase municipality names.
	Municipalities []string
	// Keywords maps activity topics to their keyword lists.
	Keywords map[string][]string
	// TownHints maps implicit landmark words to the municipality they imply.
	TownHints map[string]string
}

// Extractor pulls an EntityBundle from a query. Stateless per call; all
// lexicon patterns are compiled once at construction.
type Extractor struct {
	lex Lexicons

	sortedPlaces []string // longest first
	cleanedNames map[string]string

	topicRes     []topicPattern
	budgetRe     []labeledPattern
	skillRe      []labeledPattern
	groupRe      []labeledPattern
	timeRe       []labeledPattern
	proximityRe  []labeledPattern
	nearTownRe   *regexp.Regexp
	titleCaser   cases.Caser
}

type topicPattern struct {
	topic string
	re    *regexp.Regexp
}

type labeledPattern struct {
	label string
	re    *regexp.Regexp
}

// NewExtractor compiles the lexicons into an extractor.
func NewExtractor(lex Lexicons) *Extractor {
	e := &Extractor{
		lex:          lex,
		cleanedNames: make(map[string]string, len(lex.PlaceNames)),
		titleCaser:   cases.Title(language.English),
	}

	e.sortedPlaces = append(e.sortedPlaces, lex.PlaceNames...)
	sort.Slice(e.sortedPlaces, func(i, j int) bool {
		if len(e.sortedPlaces[i]) != len(e.sortedPlaces[j]) {
			return len(e.sortedPlaces[i]) > len(e.sortedPlaces[j])
		}
		return e.sortedPlaces[i] < e.sortedPlaces[j]
	})
	for _, name := range e.sortedPlaces {
		e.cleanedNames[name] = cleanText(strings.ToLower(name))
	}

	topics := make([]string, 0, len(lex.Keywords))
	for topic := range lex.Keywords {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	for _, topic := range topics {
		e.topicRes = append(e.topicRes, topicPattern{topic, alternationRe(lex.Keywords[topic])})
	}

	e.budgetRe = compileCategories(budgetTiers)
	e.skillRe = compileCategories(skillLevels)
	e.groupRe = compileCategories(groupTypes)
	e.timeRe = compileCategories(timePeriods)
	e.proximityRe = compileCategories(proximityKinds)

	e.nearTownRe = regexp.MustCompile(
		`\b(?:in|at|around|near)\s+(?:` + strings.Join(escapeAll(lex.Municipalities), "|") + `)\b`)

	return e
}

// Extract analyzes a query and returns its structured slots.
func (e *Extractor) Extract(text string) core.EntityBundle {
	lower := strings.ToLower(text)
	places := e.extractPlaces(lower)

	return core.EntityBundle{
		Places:       places,
		Activities:   e.extractActivities(lower),
		Budget:       firstMatch(e.budgetRe, lower),
		SkillLevel:   firstMatch(e.skillRe, lower),
		GroupType:    firstMatch(e.groupRe, lower),
		TimePeriod:   firstMatch(e.timeRe, lower),
		Proximity:    firstMatch(e.proximityRe, lower),
		InferredTown: e.inferMunicipality(lower),
		IsListing:    e.detectListing(lower, places),
	}
}

// extractPlaces matches known place names longest-first and consumes each
// match so shorter names embedded in longer ones do not double-fire.
// Bare municipality names not already captured are appended afterwards.
func (e *Extractor) extractPlaces(lower string) []string {
	var found []string
	scratch := cleanText(lower)

	for _, place := range e.sortedPlaces {
		cleaned := e.cleanedNames[place]
		if cleaned == "" {
			continue
		}
		if strings.Contains(scratch, cleaned) {
			found = append(found, place)
			scratch = strings.Replace(scratch, cleaned, "", 1)
		}
	}

	for _, muni := range e.lex.Municipalities {
		if strings.Contains(scratch, muni) {
			display := e.titleCaser.String(muni)
			if !slices.Contains(found, display) {
				found = append(found, display)
			}
		}
	}
	return found
}

func (e *Extractor) extractActivities(lower string) []string {
	var found []string
	for _, tp := range e.topicRes {
		if tp.re.MatchString(lower) {
			found = append(found, tp.topic)
		}
	}
	return found
}

// inferMunicipality maps implicit landmark hints to a municipality.
// Returns empty when nothing matches, leaving retrieval unconstrained.
func (e *Extractor) inferMunicipality(lower string) string {
	for hint, town := range e.lex.TownHints {
		if strings.Contains(lower, hint) {
			return town
		}
	}
	return ""
}

// detectListing reports browsing intent from explicit listing keywords,
// bare plural category nouns, or an "in/near <municipality>" phrase with
// no specific spot named.
func (e *Extractor) detectListing(lower string, foundPlaces []string) bool {
	if listingKeywordRe.MatchString(lower) {
		return true
	}

	specificSpots := 0
	for _, p := range foundPlaces {
		if !slices.Contains(e.lex.Municipalities, strings.ToLower(p)) {
			specificSpots++
		}
	}

	for _, plural := range listingPlurals {
		if strings.Contains(lower, plural) && specificSpots == 0 {
			return true
		}
	}

	if specificSpots == 0 && e.nearTownRe.MatchString(lower) {
		return true
	}
	return false
}

// BuildSearchQuery concatenates the extracted slots into a compact
// retrieval query biased toward activities and places.
func BuildSearchQuery(bundle core.EntityBundle) string {
	var parts []string
	parts = append(parts, bundle.Activities...)
	parts = append(parts, bundle.Places...)
	for _, s := range []string{bundle.Budget, bundle.SkillLevel, bundle.GroupType} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(punctuationRe.ReplaceAllString(s, " ")), " ")
}

func compileCategories(categories []slotCategory) []labeledPattern {
	out := make([]labeledPattern, 0, len(categories))
	for _, c := range categories {
		out = append(out, labeledPattern{c.label, alternationRe(c.terms)})
	}
	return out
}

// alternationRe builds a word-boundary alternation over the terms,
// tolerating a trailing plural s.
func alternationRe(terms []string) *regexp.Regexp {
	return regexp.MustCompile(`\b(?:` + strings.Join(escapeAll(terms), "|") + `)s?\b`)
}

func escapeAll(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = regexp.QuoteMeta(t)
	}
	return out
}

func firstMatch(patterns []labeledPattern, lower string) string {
	for _, p := range patterns {
		if p.re.MatchString(lower) {
			return p.label
		}
	}
	return ""
}

