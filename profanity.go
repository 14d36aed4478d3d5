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

package pathfinder

import (
	"regexp"
	"strings"
)

// profanityFilter matches configured words at word boundaries,
// case-insensitively. An empty word list matches nothing.
type profanityFilter struct {
	re *regexp.Regexp
}

func newProfanityFilter(words []string) *profanityFilter {
	if len(words) == 0 {
		return &profanityFilter{}
	}
	escaped := make([]string, len(words))
	for i, w := range words {
		escaped[i] = regexp.QuoteMeta(strings.ToLower(w))
	}
	return &profanityFilter{
		re: regexp.MustCompile(`\b(?:` + strings.Join(escaped, "|") + `)\b`),
	}
}

func (f *profanityFilter) Contains(text string) bool {
	if f.re == nil {
		return false
	}
	return f.re.MatchString(strings.ToLower(text))
}
