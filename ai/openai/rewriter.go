package openai

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/bikemaster2331/pathfinder/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ErrEmptyRewrite is returned when the model produces no usable content,
// which includes safety refusals. Callers keep the raw answer.
var ErrEmptyRewrite = errors.New("rewrite service returned empty content")

// Rewriter implements ai.Rewriter using OpenAI-compatible chat APIs.
type Rewriter struct {
	client llms.Model
	logger *slog.Logger
}

// newRewriter is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newRewriter(config *ai.Config) (*Rewriter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.RewriteHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.RewriteModel),
	)
	if err != nil {
		return nil, err
	}

	return &Rewriter{
		client: client,
		logger: slog.Default().With("component", "openai-rewriter"),
	}, nil
}

// NewRewriter creates a new rewriter using the provided configuration.
//
// Returns ai.Rewriter interface to enforce abstraction.
func NewRewriter(config *ai.Config) (ai.Rewriter, error) {
	return newRewriter(config)
}

// Rewrite generates a fluent answer for the query grounded in the given facts.
// The caller bounds the call with a context deadline; there is no retry here.
func (r *Rewriter) Rewrite(ctx context.Context, query, facts string) (string, error) {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(rewriteSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildRewritePrompt(query, facts)),
			},
		},
	}

	response, err := r.client.GenerateContent(ctx,
		content,
		llms.WithTemperature(0.7),
		llms.WithMaxTokens(600),
	)
	if err != nil {
		r.logger.Debug("rewrite call failed", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		return "", ErrEmptyRewrite
	}

	text := strings.TrimSpace(response.Choices[0].Content)
	if text == "" {
		// Safety refusals surface as empty content.
		return "", ErrEmptyRewrite
	}

	return text, nil
}
