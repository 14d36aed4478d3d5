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

package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/bikemaster2331/pathfinder/ai"
	"github.com/bikemaster2331/pathfinder/core"
	"github.com/bikemaster2331/pathfinder/storage"
)

// embedBatchSize is the number of questions embedded per worker task.
const embedBatchSize = 32

// Ingestor rebuilds the fact collection from a dataset file. Embedding
// runs on a worker pool; everything else is sequential.
type Ingestor struct {
	facts    storage.FactRepository
	embedder ai.Embedder
	pool     *ants.Pool
	logger   *slog.Logger
}

// Option configures an Ingestor.
type Option func(*Ingestor) error

// WithPoolSize sets the embedding worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(ing *Ingestor) error {
		if size < 1 {
			size = 1
		}
		if ing.pool != nil {
			ing.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		ing.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(ing *Ingestor) error {
		if logger == nil {
			logger = slog.Default()
		}
		ing.logger = logger
		return nil
	}
}

// NewIngestor creates an ingestor over the fact repository and embedder.
func NewIngestor(facts storage.FactRepository, embedder ai.Embedder, opts ...Option) (*Ingestor, error) {
	if facts == nil {
		return nil, ErrFactRepositoryRequired
	}
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	ing := &Ingestor{
		facts:    facts,
		embedder: embedder,
		pool:     pool,
		logger:   slog.Default().With("component", "ingest"),
	}
	for _, opt := range opts {
		if err := opt(ing); err != nil {
			ing.Release()
			return nil, err
		}
	}
	return ing, nil
}

// NeedsRebuild reports whether the stored fingerprint differs from the
// dataset file's current content hash.
func (ing *Ingestor) NeedsRebuild(ctx context.Context, datasetPath string) (bool, error) {
	current, err := Fingerprint(datasetPath)
	if err != nil {
		return false, err
	}
	stored, err := ing.facts.Fingerprint(ctx)
	if err != nil {
		return false, err
	}
	return stored != current, nil
}

// Build wipes the fact collection and reloads it from the dataset file.
// Returns the number of records loaded. The fingerprint is written only
// after the full batch lands, so an interrupted build rebuilds next start.
func (ing *Ingestor) Build(ctx context.Context, datasetPath string) (int, error) {
	fingerprint, err := Fingerprint(datasetPath)
	if err != nil {
		return 0, err
	}
	records, err := LoadDataset(datasetPath)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("dataset %s contains no usable records", datasetPath)
	}

	if err := ing.embedAll(ctx, records); err != nil {
		return 0, err
	}

	if err := ing.facts.Wipe(ctx); err != nil {
		return 0, fmt.Errorf("failed to wipe fact collection: %w", err)
	}
	if err := ing.facts.BulkAdd(ctx, records...); err != nil {
		return 0, fmt.Errorf("failed to load fact collection: %w", err)
	}
	if err := ing.facts.SetFingerprint(ctx, fingerprint); err != nil {
		return 0, fmt.Errorf("failed to store dataset fingerprint: %w", err)
	}

	ing.logger.Info("fact collection rebuilt", "records", len(records), "fingerprint", fingerprint)
	return len(records), nil
}

// embedAll fills in record vectors, batching questions across the pool.
// The first error wins; remaining batches still run to completion.
func (ing *Ingestor) embedAll(ctx context.Context, records []*core.FactRecord) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for start := 0; start < len(records); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		wg.Add(1)
		submitErr := ing.pool.Submit(func() {
			defer wg.Done()

			questions := make([]string, len(batch))
			for i, r := range batch {
				questions[i] = r.Question
			}
			vectors, err := ing.embedder.EmbedTexts(ctx, questions)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("failed to embed dataset batch: %w", err)
				}
				mu.Unlock()
				return
			}
			for i, r := range batch {
				r.Vector = vectors[i]
			}
		})
		if submitErr != nil {
			wg.Done()
			return fmt.Errorf("failed to submit embedding batch: %w", submitErr)
		}
	}
	wg.Wait()
	return firstErr
}

// Release releases the worker pool. The ingestor should not be used
// after calling Release.
func (ing *Ingestor) Release() {
	if ing.pool != nil {
		ing.pool.Release()
	}
}
