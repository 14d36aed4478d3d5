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

package geo

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/xrash/smetrics"

	"github.com/bikemaster2331/pathfinder/ai"
	"github.com/bikemaster2331/pathfinder/core"
)

// Lookup resolves place names against a fixed gazetteer. Name embeddings
// are computed once at construction; Resolve costs at most one embedding
// call per miss of the exact tier.
type Lookup struct {
	embedder ai.Embedder
	logger   *slog.Logger

	semanticThreshold float32
	fuzzyThreshold    float64

	names   []string // sorted display names
	byLower map[string]core.Place
	vectors [][]float32
}

// LookupOption configures a Lookup.
type LookupOption func(*Lookup)

// WithLogger sets the logger used by the lookup.
func WithLogger(logger *slog.Logger) LookupOption {
	return func(l *Lookup) { l.logger = logger }
}

// WithThresholds sets the semantic and fuzzy acceptance thresholds.
func WithThresholds(semantic float32, fuzzy float64) LookupOption {
	return func(l *Lookup) {
		l.semanticThreshold = semantic
		l.fuzzyThreshold = fuzzy
	}
}

// NewLookup creates a lookup over the known places and precomputes an
// embedding per place name. Fails when the embedder is unavailable.
func NewLookup(ctx context.Context, embedder ai.Embedder, places map[string]core.Place, opts ...LookupOption) (*Lookup, error) {
	l := &Lookup{
		embedder:          embedder,
		logger:            slog.Default().With("component", "geo"),
		semanticThreshold: 0.85,
		fuzzyThreshold:    0.80,
		byLower:           make(map[string]core.Place, len(places)),
	}
	for _, opt := range opts {
		opt(l)
	}

	for name := range places {
		l.names = append(l.names, name)
	}
	sort.Strings(l.names)
	for _, name := range l.names {
		l.byLower[strings.ToLower(name)] = places[name]
	}

	vectors, err := embedder.EmbedTexts(ctx, l.names)
	if err != nil {
		return nil, fmt.Errorf("failed to precompute place name embeddings: %w", err)
	}
	l.vectors = vectors

	return l, nil
}

// Resolve maps a place tag to a known place, or nil when no tier clears
// its threshold. Embedding failures skip the semantic tier and fall
// through to fuzzy matching.
func (l *Lookup) Resolve(ctx context.Context, tag string) *core.Place {
	cleaned := strings.TrimSpace(tag)
	if cleaned == "" {
		return nil
	}

	if place, ok := l.byLower[strings.ToLower(cleaned)]; ok {
		return &place
	}

	if place := l.resolveSemantic(ctx, cleaned); place != nil {
		return place
	}
	return l.resolveFuzzy(cleaned)
}

func (l *Lookup) resolveSemantic(ctx context.Context, tag string) *core.Place {
	vector, err := l.embedder.EmbedText(ctx, tag)
	if err != nil {
		l.logger.Warn("place embedding failed, skipping semantic tier", "tag", tag, "error", err)
		return nil
	}

	bestScore := float32(-1)
	bestIdx := -1
	for i, v := range l.vectors {
		score := dotProduct(vector, v)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestIdx < 0 || bestScore < l.semanticThreshold {
		return nil
	}

	name := l.names[bestIdx]
	l.logger.Debug("semantic place match", "tag", tag, "place", name, "score", bestScore)
	place := l.byLower[strings.ToLower(name)]
	return &place
}

func (l *Lookup) resolveFuzzy(tag string) *core.Place {
	lower := strings.ToLower(tag)
	bestScore := 0.0
	bestName := ""
	for _, name := range l.names {
		score := smetrics.JaroWinkler(lower, strings.ToLower(name), 0.7, 4)
		if score > bestScore {
			bestScore = score
			bestName = name
		}
	}
	if bestName == "" || bestScore < l.fuzzyThreshold {
		return nil
	}

	l.logger.Debug("fuzzy place match", "tag", tag, "place", bestName, "score", bestScore)
	place := l.byLower[strings.ToLower(bestName)]
	return &place
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
