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

package config

import "fmt"

// Config is the root application configuration.
type Config struct {
	Storage   StorageConfig   `mapstructure:"storage"`
	Dataset   DatasetConfig   `mapstructure:"dataset"`
	AI        AIConfig        `mapstructure:"ai"`
	Security  SecurityConfig  `mapstructure:"security"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Retrieval RetrievalConfig `mapstructure:"retrieval"`
	Intent    IntentConfig    `mapstructure:"intent"`
	Geo       GeoConfig       `mapstructure:"geo"`
	Enhancer  EnhancerConfig  `mapstructure:"enhancer"`
	Translate TranslateConfig `mapstructure:"translate"`
	Logging   LoggingConfig   `mapstructure:"logging"`

	// Domain lexicons. Empty values fall back to the built-in
	// Catanduanes defaults in defaults.go.
	Keywords        map[string][]string    `mapstructure:"keywords"`
	Places          map[string]PlaceConfig `mapstructure:"places"`
	Profanity       []string               `mapstructure:"profanity"`
	ProtectedPlaces []string               `mapstructure:"protected_places"`
	Messages        MessagesConfig         `mapstructure:"messages"`
}

// StorageConfig configures the on-disk knowledge and cache store.
type StorageConfig struct {
	Path     string `mapstructure:"path"`
	InMemory bool   `mapstructure:"in_memory"`
}

// DatasetConfig points at the curated fact dataset used for index builds.
type DatasetConfig struct {
	Path string `mapstructure:"path"`
}

// AIConfig configures the OpenAI-compatible embedding and rewrite endpoints.
type AIConfig struct {
	EmbeddingHost  string `mapstructure:"embedding_host"`
	RewriteHost    string `mapstructure:"rewrite_host"`
	EmbeddingModel string `mapstructure:"embedding_model"`
	RewriteModel   string `mapstructure:"rewrite_model"`
	Token          string `mapstructure:"token"`
}

// SecurityConfig groups request admission settings.
type SecurityConfig struct {
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig bounds request admission per sliding window.
type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	PeriodSeconds int `mapstructure:"period_seconds"`
}

// CacheConfig configures the semantic answer cache.
type CacheConfig struct {
	// SimilarityThreshold is the minimum cosine similarity for a cached
	// entry to be treated as authoritative for a query.
	SimilarityThreshold float32 `mapstructure:"similarity_threshold"`
}

// RetrievalConfig sizes and thresholds fact retrieval. Specific queries
// keep fewer, closer results; listing queries keep more, looser ones.
type RetrievalConfig struct {
	MinSimilaritySpecific float32 `mapstructure:"min_similarity_specific"`
	MinSimilarityListing  float32 `mapstructure:"min_similarity_listing"`
	SpecificCandidates    int     `mapstructure:"specific_candidates"`
	ListingCandidates     int     `mapstructure:"listing_candidates"`
	SpecificKeep          int     `mapstructure:"specific_keep"`
	ListingKeep           int     `mapstructure:"listing_keep"`
	MaxPlaces             int     `mapstructure:"max_places"`
}

// IntentConfig tunes the intent gate heuristics.
type IntentConfig struct {
	// KeywordThreshold is the minimum cosine similarity for a semantic
	// keyword match; KeywordThresholdShort applies to inputs of three
	// words or fewer.
	KeywordThreshold      float32 `mapstructure:"keyword_threshold"`
	KeywordThresholdShort float32 `mapstructure:"keyword_threshold_short"`
	MaxConsonantRun       int     `mapstructure:"max_consonant_run"`
}

// GeoConfig tunes place name resolution.
type GeoConfig struct {
	SemanticThreshold float32 `mapstructure:"semantic_threshold"`
	FuzzyThreshold    float64 `mapstructure:"fuzzy_threshold"`
}

// EnhancerConfig configures the background answer rewrite worker.
type EnhancerConfig struct {
	QueueSize      int `mapstructure:"queue_size"`
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// TranslateConfig configures optional query translation.
type TranslateConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// PlaceConfig is one known point of interest.
type PlaceConfig struct {
	Lat          float64 `mapstructure:"lat"`
	Lng          float64 `mapstructure:"lng"`
	Category     string  `mapstructure:"category"`
	Municipality string  `mapstructure:"municipality"`
}

// MessagesConfig holds the canned user-facing responses.
type MessagesConfig struct {
	// RateLimited is a format string taking the wait time in seconds.
	RateLimited string `mapstructure:"rate_limited"`
	Profanity   string `mapstructure:"profanity"`
	Greeting    string `mapstructure:"greeting"`
	Nonsense    string `mapstructure:"nonsense"`
	NoInfo      string `mapstructure:"no_info"`
	Fallback    string `mapstructure:"fallback"`
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Storage.Path == "" && !c.Storage.InMemory {
		return fmt.Errorf("%w: storage.path is required unless storage.in_memory is set", ErrInvalidConfig)
	}
	if c.Security.RateLimit.MaxRequests <= 0 {
		return fmt.Errorf("%w: security.rate_limit.max_requests must be positive", ErrInvalidConfig)
	}
	if c.Security.RateLimit.PeriodSeconds <= 0 {
		return fmt.Errorf("%w: security.rate_limit.period_seconds must be positive", ErrInvalidConfig)
	}
	if c.Cache.SimilarityThreshold <= 0 || c.Cache.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: cache.similarity_threshold must be in (0, 1]", ErrInvalidConfig)
	}
	if c.Retrieval.MinSimilarityListing > c.Retrieval.MinSimilaritySpecific {
		return fmt.Errorf("%w: retrieval.min_similarity_listing must not exceed min_similarity_specific", ErrInvalidConfig)
	}
	if c.Retrieval.SpecificCandidates <= 0 || c.Retrieval.ListingCandidates <= 0 {
		return fmt.Errorf("%w: retrieval candidate counts must be positive", ErrInvalidConfig)
	}
	if c.Enhancer.QueueSize <= 0 {
		return fmt.Errorf("%w: enhancer.queue_size must be positive", ErrInvalidConfig)
	}
	if len(c.Places) == 0 {
		return fmt.Errorf("%w: at least one known place is required", ErrInvalidConfig)
	}
	return nil
}
