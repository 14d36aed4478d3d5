package enhance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bikemaster2331/pathfinder/ai/mock"
)

// recordingCache captures Update calls and signals each one.
type recordingCache struct {
	mu      sync.Mutex
	updates map[string]string
	ok      bool
	err     error
	signal  chan struct{}
}

func newRecordingCache(ok bool) *recordingCache {
	return &recordingCache{
		updates: make(map[string]string),
		ok:      ok,
		signal:  make(chan struct{}, 16),
	}
}

func (c *recordingCache) Update(ctx context.Context, query, newAnswer string) (bool, error) {
	c.mu.Lock()
	c.updates[query] = newAnswer
	c.mu.Unlock()
	c.signal <- struct{}{}
	return c.ok, c.err
}

func (c *recordingCache) get(query string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	answer, ok := c.updates[query]
	return answer, ok
}

func waitSignal(t *testing.T, ch chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for enhancer")
	}
}

func TestEnhancerUpdatesCache(t *testing.T) {
	cache := newRecordingCache(true)
	rewriter := mock.NewMockRewriter()
	rewriter.RewriteFunc = func(ctx context.Context, query, facts string) (string, error) {
		return "fluent: " + facts, nil
	}

	e := New(cache, rewriter)
	e.Start()
	defer e.Stop()

	require.True(t, e.Enqueue("where can i surf", "Puraran Beach facts", "raw answer"))
	waitSignal(t, cache.signal)

	answer, ok := cache.get("where can i surf")
	require.True(t, ok)
	assert.Equal(t, "fluent: Puraran Beach facts", answer)
}

func TestEnhancerRewriteFailureSkipsUpdate(t *testing.T) {
	cache := newRecordingCache(true)
	rewriter := mock.NewMockRewriter()
	rewriter.RewriteFunc = func(ctx context.Context, query, facts string) (string, error) {
		return "", assert.AnError
	}

	e := New(cache, rewriter)
	e.Start()
	defer e.Stop()

	require.True(t, e.Enqueue("where can i surf", "facts", "raw"))

	// Give the worker a moment; the cache must stay untouched.
	time.Sleep(100 * time.Millisecond)
	_, ok := cache.get("where can i surf")
	assert.False(t, ok)
}

func TestEnqueueDropsWhenSaturated(t *testing.T) {
	cache := newRecordingCache(true)
	e := New(cache, mock.NewMockRewriter(), WithQueueSize(1))
	// Worker not started, so the queue fills immediately.

	assert.True(t, e.Enqueue("q1", "f1", "a1"))
	assert.False(t, e.Enqueue("q2", "f2", "a2"))
}

func TestEnhancerStopIsIdempotent(t *testing.T) {
	e := New(newRecordingCache(true), mock.NewMockRewriter())
	e.Start()
	e.Stop()
	e.Stop()
}

func TestEnhancerProcessesSequentially(t *testing.T) {
	cache := newRecordingCache(true)
	rewriter := mock.NewMockRewriter()

	e := New(cache, rewriter)
	e.Start()
	defer e.Stop()

	for _, q := range []string{"q1", "q2", "q3"} {
		require.True(t, e.Enqueue(q, "facts for "+q, "raw"))
	}
	for i := 0; i < 3; i++ {
		waitSignal(t, cache.signal)
	}
	assert.Equal(t, 3, rewriter.CallCount())
}
