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

// Package ratelimit provides a sliding-window request limiter.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter admits at most maxRequests calls per sliding window of the
// configured period. It never blocks; rejected callers decide what to do.
// Safe for concurrent use.
type Limiter struct {
	mu          sync.Mutex
	maxRequests int
	period      time.Duration
	admitted    []time.Time

	// now is swapped in tests to control time.
	now func() time.Time
}

// New creates a limiter admitting maxRequests calls per period.
func New(maxRequests int, period time.Duration) *Limiter {
	return &Limiter{
		maxRequests: maxRequests,
		period:      period,
		now:         time.Now,
	}
}

// Allow reports whether the call is admitted. An admitted call consumes
// one slot in the current window.
func (l *Limiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evict(now)

	if len(l.admitted) >= l.maxRequests {
		return false
	}
	l.admitted = append(l.admitted, now)
	return true
}

// RemainingWait returns how long until the oldest admitted call leaves
// the window. Zero when a call would be admitted right now.
func (l *Limiter) RemainingWait() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.evict(now)

	if len(l.admitted) < l.maxRequests {
		return 0
	}
	wait := l.admitted[0].Add(l.period).Sub(now)
	if wait < 0 {
		return 0
	}
	return wait
}

// evict drops timestamps that fell out of the window. Caller holds mu.
func (l *Limiter) evict(now time.Time) {
	cutoff := now.Add(-l.period)
	i := 0
	for i < len(l.admitted) && !l.admitted[i].After(cutoff) {
		i++
	}
	if i > 0 {
		l.admitted = append(l.admitted[:0], l.admitted[i:]...)
	}
}
