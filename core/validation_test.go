package core

import (
	"errors"
	"testing"
)

func TestValidateFactRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *FactRecord
		wantErr error
	}{
		{
			name: "valid record",
			record: &FactRecord{
				Id:       IDFromContent("where can i surf"),
				Question: "Where can I surf?",
				Answer:   "Puraran Beach in Baras is known for its surfing waves.",
			},
			wantErr: nil,
		},
		{
			name: "valid record with empty vector and tags",
			record: &FactRecord{
				Question: "What is the capital?",
				Answer:   "Virac is the capital municipality.",
				Vector:   nil,
			},
			wantErr: nil,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidFactRecord,
		},
		{
			name: "empty question",
			record: &FactRecord{
				Question: "",
				Answer:   "An answer",
			},
			wantErr: ErrEmptyQuestion,
		},
		{
			name: "empty answer",
			record: &FactRecord{
				Question: "A question?",
				Answer:   "",
			},
			wantErr: ErrEmptyAnswer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFactRecord(tt.record)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateFactRecord() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateFactRecord() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCacheEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   *CacheEntry
		wantErr error
	}{
		{
			name: "valid raw entry",
			entry: &CacheEntry{
				Query:    "where can i surf",
				Answer:   "Puraran Beach in Baras is known for its surfing waves.",
				Revision: RevisionRaw,
			},
			wantErr: nil,
		},
		{
			name: "valid enhanced entry with places",
			entry: &CacheEntry{
				Query:    "best waterfalls",
				Answer:   "Maribina Falls is a popular stop near Bato.",
				Revision: RevisionEnhanced,
				Places:   []Place{{Name: "Maribina Falls", Lat: 13.6, Lng: 124.3}},
			},
			wantErr: nil,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantErr: ErrInvalidCacheEntry,
		},
		{
			name: "empty query",
			entry: &CacheEntry{
				Query:    "",
				Answer:   "answer",
				Revision: RevisionRaw,
			},
			wantErr: ErrEmptyQuery,
		},
		{
			name: "empty answer",
			entry: &CacheEntry{
				Query:    "query",
				Answer:   "",
				Revision: RevisionRaw,
			},
			wantErr: ErrEmptyAnswer,
		},
		{
			name: "invalid revision",
			entry: &CacheEntry{
				Query:    "query",
				Answer:   "answer",
				Revision: RevisionState(0),
			},
			wantErr: ErrInvalidRevision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCacheEntry(tt.entry)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateCacheEntry() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCacheEntry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
