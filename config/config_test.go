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

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.NotEmpty(t, cfg.Keywords)
	assert.NotEmpty(t, cfg.Places)
	assert.NotEmpty(t, cfg.Profanity)
	assert.NotEmpty(t, cfg.ProtectedPlaces)
	assert.NotEmpty(t, cfg.Messages.Fallback)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "missing storage path",
			mutate: func(c *Config) { c.Storage.Path = ""; c.Storage.InMemory = false },
			want:   "storage.path",
		},
		{
			name:   "zero rate limit",
			mutate: func(c *Config) { c.Security.RateLimit.MaxRequests = 0 },
			want:   "max_requests",
		},
		{
			name:   "negative rate period",
			mutate: func(c *Config) { c.Security.RateLimit.PeriodSeconds = -1 },
			want:   "period_seconds",
		},
		{
			name:   "cache threshold above one",
			mutate: func(c *Config) { c.Cache.SimilarityThreshold = 1.5 },
			want:   "similarity_threshold",
		},
		{
			name: "inverted retrieval thresholds",
			mutate: func(c *Config) {
				c.Retrieval.MinSimilarityListing = 0.9
				c.Retrieval.MinSimilaritySpecific = 0.5
			},
			want: "min_similarity_listing",
		},
		{
			name:   "zero candidates",
			mutate: func(c *Config) { c.Retrieval.SpecificCandidates = 0 },
			want:   "candidate counts",
		},
		{
			name:   "zero queue",
			mutate: func(c *Config) { c.Enhancer.QueueSize = 0 },
			want:   "queue_size",
		},
		{
			name:   "no places",
			mutate: func(c *Config) { c.Places = nil },
			want:   "place",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	const yaml = `
storage:
  in_memory: true
cache:
  similarity_threshold: 0.92
security:
  rate_limit:
    max_requests: 3
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.True(t, cfg.Storage.InMemory)
	assert.Equal(t, float32(0.92), cfg.Cache.SimilarityThreshold)
	assert.Equal(t, 3, cfg.Security.RateLimit.MaxRequests)

	// Keys the file omits keep their defaults.
	assert.Equal(t, 60, cfg.Security.RateLimit.PeriodSeconds)
	assert.NotEmpty(t, cfg.Places)
	assert.Contains(t, cfg.Places, "Puraran Beach")
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadFromFileRejectsInvalid(t *testing.T) {
	const yaml = `
enhancer:
  queue_size: -5
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	_, err := LoadFromFile(path)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PATHFINDER_AI_TOKEN", "secret")
	t.Setenv("PATHFINDER_STORAGE_PATH", "/tmp/override.db")

	const yaml = `
storage:
  in_memory: true
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.AI.Token)
	assert.Equal(t, "/tmp/override.db", cfg.Storage.Path)
}
