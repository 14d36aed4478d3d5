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


package core

import "fmt"

// ValidateFactRecord validates a FactRecord according to domain rules.
//
// Validation rules:
//   - Question must not be empty
//   - Answer must not be empty
//
// NOT validated (populated at ingestion):
//   - Vector (can be empty until the record is embedded)
//   - ID (derived from content, any value is legal)
//   - Optional tag fields (empty string means "not set")
func ValidateFactRecord(record *FactRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidFactRecord)
	}

	if record.Question == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFactRecord, ErrEmptyQuestion)
	}

	if record.Answer == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFactRecord, ErrEmptyAnswer)
	}

	return nil
}

// ValidateCacheEntry validates a CacheEntry according to domain rules.
//
// Validation rules:
//   - Query must not be empty
//   - Answer must not be empty
//   - Revision must be a valid RevisionState
func ValidateCacheEntry(entry *CacheEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidCacheEntry)
	}

	if entry.Query == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCacheEntry, ErrEmptyQuery)
	}

	if entry.Answer == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCacheEntry, ErrEmptyAnswer)
	}

	if err := ValidateRevisionState(entry.Revision); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCacheEntry, err)
	}

	return nil
}

// ValidateRevisionState validates that a RevisionState has a valid value.
func ValidateRevisionState(state RevisionState) error {
	if state != RevisionRaw && state != RevisionEnhanced {
		return fmt.Errorf("%w: value %d", ErrInvalidRevision, state)
	}
	return nil
}
