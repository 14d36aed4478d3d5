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

package enhance

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bikemaster2331/pathfinder/ai"
	"github.com/bikemaster2331/pathfinder/core"
)

// AnswerCache is the slice of the semantic cache the enhancer needs:
// the ability to upgrade an existing entry's answer.
type AnswerCache interface {
	Update(ctx context.Context, query, newAnswer string) (bool, error)
}

// Enhancer consumes enhancement jobs on a single background goroutine.
// The queue is bounded; when it saturates, new jobs are dropped rather
// than blocking the request path. Each job is attempted exactly once.
type Enhancer struct {
	cache    AnswerCache
	rewriter ai.Rewriter
	logger   *slog.Logger

	jobs    chan core.EnhancementJob
	stop    chan struct{}
	done    chan struct{}
	timeout time.Duration

	startOnce sync.Once
	stopOnce  sync.Once
}

// Option configures an Enhancer.
type Option func(*Enhancer)

// WithLogger sets the logger used by the enhancer.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enhancer) { e.logger = logger }
}

// WithQueueSize bounds the job queue.
func WithQueueSize(n int) Option {
	return func(e *Enhancer) { e.jobs = make(chan core.EnhancementJob, n) }
}

// WithTimeout bounds each outbound rewrite call.
func WithTimeout(d time.Duration) Option {
	return func(e *Enhancer) { e.timeout = d }
}

// New creates an enhancer. Call Start to launch the worker.
func New(cache AnswerCache, rewriter ai.Rewriter, opts ...Option) *Enhancer {
	e := &Enhancer{
		cache:    cache,
		rewriter: rewriter,
		logger:   slog.Default().With("component", "enhancer"),
		jobs:     make(chan core.EnhancementJob, 4096),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		timeout:  8 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start launches the worker goroutine. Subsequent calls are no-ops.
func (e *Enhancer) Start() {
	e.startOnce.Do(func() {
		go e.run()
	})
}

// Enqueue submits a job without blocking. Returns false when the queue
// is saturated and the job was dropped.
func (e *Enhancer) Enqueue(query, rawFacts, rawAnswer string) bool {
	job := core.EnhancementJob{
		Query:      query,
		RawFacts:   rawFacts,
		RawAnswer:  rawAnswer,
		EnqueuedAt: time.Now(),
	}
	select {
	case e.jobs <- job:
		return true
	default:
		e.logger.Warn("enhancement queue saturated, dropping job", "query", query)
		return false
	}
}

// Stop signals the worker and waits briefly for it to drain the job in
// flight. Pending queued jobs are abandoned.
func (e *Enhancer) Stop() {
	e.stopOnce.Do(func() {
		close(e.stop)
		select {
		case <-e.done:
		case <-time.After(2 * time.Second):
			e.logger.Warn("enhancer worker did not stop in time")
		}
	})
}

func (e *Enhancer) run() {
	defer close(e.done)
	for {
		select {
		case <-e.stop:
			return
		case job := <-e.jobs:
			e.process(job)
		}
	}
}

// process attempts one rewrite. Failures keep the raw cached answer.
func (e *Enhancer) process(job core.EnhancementJob) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	enhanced, err := e.rewriter.Rewrite(ctx, job.Query, job.RawFacts)
	if err != nil {
		e.logger.Warn("rewrite failed, keeping raw answer", "query", job.Query, "error", err)
		return
	}

	ok, err := e.cache.Update(ctx, job.Query, enhanced)
	if err != nil {
		e.logger.Warn("cache update failed after rewrite", "query", job.Query, "error", err)
		return
	}
	if !ok {
		e.logger.Debug("cached entry no longer matches, discarding rewrite", "query", job.Query)
		return
	}
	e.logger.Debug("answer enhanced",
		"query", job.Query,
		"queued_for", time.Since(job.EnqueuedAt).Round(time.Millisecond))
}
