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
	"context"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Protector wraps a Translator and shields known place names from it.
// Each protected name found in the input is replaced by a random marker
// before translation and restored afterwards. Translation failures
// degrade to the original text.
type Protector struct {
	translator Translator
	logger     *slog.Logger

	// patterns are case-insensitive literal matchers, one per protected
	// name, longest name first.
	patterns []protectedName
}

type protectedName struct {
	name string
	re   *regexp.Regexp
}

// NewProtector compiles matchers for the protected names.
func NewProtector(translator Translator, names []string) *Protector {
	p := &Protector{
		translator: translator,
		logger:     slog.Default().With("component", "translate"),
	}

	sorted := append([]string(nil), names...)
	// Longest first so "Twin Rock" wins over any shorter overlap.
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	for _, name := range sorted {
		p.patterns = append(p.patterns, protectedName{
			name: name,
			re:   regexp.MustCompile(`(?i)` + regexp.QuoteMeta(name)),
		})
	}
	return p
}

// Run translates text with place names shielded. Never fails: any
// translation error returns the original input.
func (p *Protector) Run(ctx context.Context, text string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}

	temp := text
	markers := make(map[string]string)

	for _, pn := range p.patterns {
		if pn.re.MatchString(temp) {
			marker := "__PLACE_" + uuid.NewString()[:8] + "__"
			temp = pn.re.ReplaceAllLiteralString(temp, marker)
			markers[marker] = pn.name
		}
	}

	translated, err := p.translator.Translate(ctx, temp)
	if err != nil {
		p.logger.Warn("translation failed, using original text", "error", err)
		translated = temp
	}

	for marker, name := range markers {
		translated = strings.ReplaceAll(translated, marker, name)
	}
	return translated
}
