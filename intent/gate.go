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

package intent

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/bikemaster2331/pathfinder/ai"
	"github.com/bikemaster2331/pathfinder/core"
)

var greetings = []string{
	"hi", "hello", "hey", "kumusta", "kamusta", "musta",
	"good morning", "good afternoon", "good evening",
}

var questionWords = map[string]struct{}{
	"what": {}, "where": {}, "how": {}, "when": {}, "who": {}, "why": {}, "which": {},
	"can": {}, "is": {}, "are": {}, "do": {}, "does": {}, "will": {}, "should": {},
	"ano": {}, "saan": {}, "paano": {}, "kailan": {}, "sino": {}, "bakit": {},
	"may": {}, "meron": {}, "pwede": {}, "gusto": {},
}

// Signal weights for confidence scoring. A keyword match dominates,
// question structure helps, a greeting barely counts.
const (
	keywordWeight  = 0.6
	questionWeight = 0.3
	greetingWeight = 0.1

	tourismScoreFloor = 0.5

	// shortInputWords is the word count at or below which the lower
	// semantic threshold applies.
	shortInputWords = 3
)

// Gate classifies utterances as greeting, nonsense, tourism query, or
// unclear. Keyword embeddings are computed once at construction, so
// Classify costs at most one embedding call per query.
type Gate struct {
	embedder ai.Embedder
	logger   *slog.Logger

	keywordThreshold      float64
	keywordThresholdShort float64
	maxConsonantRun       int

	keywordTexts   []string
	keywordTopics  []string
	keywordVectors [][]float32
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithLogger sets the logger used by the gate.
func WithLogger(logger *slog.Logger) GateOption {
	return func(g *Gate) { g.logger = logger }
}

// WithKeywordThresholds sets the semantic match thresholds. The short
// threshold applies to inputs of three words or fewer.
func WithKeywordThresholds(full, short float64) GateOption {
	return func(g *Gate) {
		g.keywordThreshold = full
		g.keywordThresholdShort = short
	}
}

// WithMaxConsonantRun sets the longest consonant run tolerated by the
// gibberish heuristic.
func WithMaxConsonantRun(n int) GateOption {
	return func(g *Gate) { g.maxConsonantRun = n }
}

// NewGate creates a gate and precomputes embeddings for every keyword in
// the lexicon. Topics are flattened in sorted order so the cache layout
// is deterministic. Fails when the embedder is unavailable.
func NewGate(ctx context.Context, embedder ai.Embedder, keywords map[string][]string, opts ...GateOption) (*Gate, error) {
	g := &Gate{
		embedder:              embedder,
		logger:                slog.Default().With("component", "intent"),
		keywordThreshold:      0.82,
		keywordThresholdShort: 0.75,
		maxConsonantRun:       5,
	}
	for _, opt := range opts {
		opt(g)
	}

	topics := make([]string, 0, len(keywords))
	for topic := range keywords {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	for _, topic := range topics {
		for _, kw := range keywords[topic] {
			g.keywordTexts = append(g.keywordTexts, kw)
			g.keywordTopics = append(g.keywordTopics, topic)
		}
	}

	vectors, err := embedder.EmbedTexts(ctx, g.keywordTexts)
	if err != nil {
		return nil, fmt.Errorf("failed to precompute keyword embeddings: %w", err)
	}
	g.keywordVectors = vectors

	g.logger.Debug("cached keyword embeddings", "keywords", len(g.keywordTexts), "topics", len(topics))
	return g, nil
}

// Classify analyzes an utterance and returns its intent. The input is
// normalized internally. Embedding failures during the semantic keyword
// check degrade to "no semantic match" rather than failing the query.
func (g *Gate) Classify(ctx context.Context, text string) core.IntentResult {
	normalized := Normalize(text)
	words := strings.Fields(normalized)

	if len(normalized) < 2 || len(words) == 0 {
		return core.IntentResult{Intent: core.IntentNonsense, Confidence: 0, Reason: "too_short"}
	}
	if isGibberish(normalized, g.maxConsonantRun) {
		return core.IntentResult{Intent: core.IntentNonsense, Confidence: 0, Reason: "gibberish_detected"}
	}

	hasGreeting := containsGreeting(normalized, words)
	hasQuestion := anyQuestionWord(words)
	hasKeyword := g.hasTourismKeyword(ctx, normalized, len(words))

	if hasGreeting && (hasQuestion || hasKeyword) {
		return core.IntentResult{
			Intent:     core.IntentTourismQuery,
			IsValid:    true,
			Confidence: 0.7,
			Reason:     "greeting_with_question",
		}
	}

	score := 0.0
	if hasKeyword {
		score += keywordWeight
	}
	if hasQuestion {
		score += questionWeight
	}
	if hasGreeting {
		score += greetingWeight
	}

	if score >= tourismScoreFloor {
		reason := "has_tourism_keywords"
		if hasKeyword && hasQuestion {
			reason = "clear_tourism_query"
		}
		return core.IntentResult{
			Intent:     core.IntentTourismQuery,
			IsValid:    true,
			Confidence: score,
			Reason:     reason,
		}
	}

	if hasGreeting {
		return core.IntentResult{
			Intent:     core.IntentGreeting,
			IsValid:    true,
			Confidence: 1.0,
			Reason:     "greeting_only",
		}
	}

	// Low confidence passes through; retrieval reports "no information"
	// when the query turns out to be off-domain.
	return core.IntentResult{
		Intent:     core.IntentUnclear,
		IsValid:    true,
		Confidence: score,
		Reason:     "uncertain",
	}
}

// hasTourismKeyword checks exact substring matches first, then falls
// back to semantic similarity against the precomputed keyword cache.
func (g *Gate) hasTourismKeyword(ctx context.Context, normalized string, wordCount int) bool {
	for _, kw := range g.keywordTexts {
		if strings.Contains(normalized, kw) {
			return true
		}
	}

	vector, err := g.embedder.EmbedText(ctx, normalized)
	if err != nil {
		g.logger.Warn("keyword embedding failed, skipping semantic match", "error", err)
		return false
	}

	bestScore := float32(-1)
	bestIdx := -1
	for i, kv := range g.keywordVectors {
		score := dotProduct(vector, kv)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return false
	}

	threshold := g.keywordThreshold
	if wordCount <= shortInputWords {
		threshold = g.keywordThresholdShort
	}
	if float64(bestScore) > threshold {
		g.logger.Debug("semantic keyword match",
			"keyword", g.keywordTexts[bestIdx],
			"topic", g.keywordTopics[bestIdx],
			"score", bestScore)
		return true
	}
	return false
}

// containsGreeting matches single-word greetings per word to keep "hi"
// from firing inside "hiking", and multi-word greetings by substring.
func containsGreeting(text string, words []string) bool {
	for _, g := range greetings {
		if strings.Contains(g, " ") {
			if strings.Contains(text, g) {
				return true
			}
			continue
		}
		for _, w := range words {
			if strings.Trim(w, "?!.,") == g {
				return true
			}
		}
	}
	return false
}

func anyQuestionWord(words []string) bool {
	for _, w := range words {
		if _, ok := questionWords[strings.Trim(w, "?!.,")]; ok {
			return true
		}
	}
	return false
}

func dotProduct(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
