package mock

import (
	"context"
	"fmt"
)

// MockRewriter is a test double for ai.Rewriter.
// It allows custom behavior injection via a function field.
type MockRewriter struct {
	// RewriteFunc is called by Rewrite if set.
	// If nil, uses default deterministic behavior.
	RewriteFunc func(ctx context.Context, query, facts string) (string, error)

	callCount int
}

// NewMockRewriter creates a mock rewriter with default deterministic behavior.
func NewMockRewriter() *MockRewriter {
	return &MockRewriter{}
}

// Rewrite returns a deterministic "enhanced" rendition of the facts.
func (m *MockRewriter) Rewrite(ctx context.Context, query, facts string) (string, error) {
	m.callCount++

	if m.RewriteFunc != nil {
		return m.RewriteFunc(ctx, query, facts)
	}

	return fmt.Sprintf("enhanced: %s", facts), nil
}

// CallCount returns the number of times Rewrite was called.
func (m *MockRewriter) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected function.
func (m *MockRewriter) Reset() {
	m.callCount = 0
	m.RewriteFunc = nil
}
