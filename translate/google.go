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

package translate

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"context"
)

const defaultGoogleHost = "https://translate.googleapis.com"

// Google translates via the public gtx endpoint. No API key required;
// the endpoint is rate limited, which is acceptable here because
// translation only runs on cache misses.
type Google struct {
	host   string
	client *http.Client
}

// GoogleOption configures a Google translator.
type GoogleOption func(*Google)

// WithHost overrides the service host, mainly for tests.
func WithHost(host string) GoogleOption {
	return func(g *Google) { g.host = strings.TrimSuffix(host, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) GoogleOption {
	return func(g *Google) { g.client = client }
}

// NewGoogle creates a translator against the public endpoint.
func NewGoogle(opts ...GoogleOption) *Google {
	g := &Google{
		host:   defaultGoogleHost,
		client: &http.Client{Timeout: 5 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Translate detects the source language and translates to English.
func (g *Google) Translate(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	query := url.Values{
		"client": {"gtx"},
		"sl":     {"auto"},
		"tl":     {"en"},
		"dt":     {"t"},
		"q":      {text},
	}
	endpoint := g.host + "/translate_a/single?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build translate request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read translate response: %w", err)
	}
	return parseGtxResponse(body)
}

// parseGtxResponse extracts the translated segments from the gtx array
// format: [[["translated","original",...],...],...].
func parseGtxResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("unexpected translate response: %w", err)
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty translate response")
	}

	var segments [][]json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", fmt.Errorf("unexpected translate segment format: %w", err)
	}

	var sb strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var piece string
		if err := json.Unmarshal(seg[0], &piece); err != nil {
			continue
		}
		sb.WriteString(piece)
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("translate response contained no text")
	}
	return sb.String(), nil
}
