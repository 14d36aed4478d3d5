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

import "context"

// Translator converts text to English. Implementations return an error
// on failure; callers fall back to the original text.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Noop returns the input unchanged. Used when translation is disabled.
type Noop struct{}

// Translate returns text as-is.
func (Noop) Translate(_ context.Context, text string) (string, error) {
	return text, nil
}
