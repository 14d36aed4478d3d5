package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(maxRequests int, period time.Duration) (*Limiter, *time.Time) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := New(maxRequests, period)
	l.now = func() time.Time { return current }
	return l, &current
}

func TestLimiterAdmitsUpToMax(t *testing.T) {
	l, _ := newTestLimiter(5, time.Minute)

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow(), "call %d should be admitted", i+1)
	}
	assert.False(t, l.Allow(), "call 6 should be rejected")
}

func TestLimiterWindowSlides(t *testing.T) {
	l, now := newTestLimiter(2, time.Minute)

	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())

	*now = now.Add(61 * time.Second)
	assert.True(t, l.Allow(), "slots should free after the window passes")
}

func TestLimiterPartialEviction(t *testing.T) {
	l, now := newTestLimiter(2, time.Minute)

	assert.True(t, l.Allow())
	*now = now.Add(30 * time.Second)
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())

	// Only the first admission has expired.
	*now = now.Add(31 * time.Second)
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}

func TestRemainingWait(t *testing.T) {
	l, now := newTestLimiter(1, time.Minute)

	assert.Equal(t, time.Duration(0), l.RemainingWait())

	assert.True(t, l.Allow())
	assert.Equal(t, time.Minute, l.RemainingWait())

	*now = now.Add(40 * time.Second)
	assert.Equal(t, 20*time.Second, l.RemainingWait())

	*now = now.Add(21 * time.Second)
	assert.Equal(t, time.Duration(0), l.RemainingWait())
}

func TestLimiterConcurrentAdmission(t *testing.T) {
	l := New(10, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow() {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, admitted)
}
