package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// RevisionState tracks whether a cached answer is the raw fact concatenation
// or the rewritten prose produced by the background enhancer.
type RevisionState int

const (
	// RevisionRaw marks an answer as the unprocessed fact concatenation.
	RevisionRaw RevisionState = iota + 1
	// RevisionEnhanced marks an answer as rewritten by the enhancement worker.
	RevisionEnhanced
)

// String returns the revision state as a short tag.
func (r RevisionState) String() string {
	switch r {
	case RevisionRaw:
		return "raw"
	case RevisionEnhanced:
		return "enhanced"
	default:
		return "unknown"
	}
}

// FactRecord is one ingested knowledge item. Records are immutable between
// full rebuilds and are owned exclusively by the fact repository.
// Optional tag fields use the empty string for "not set".
type FactRecord struct {
	Id         ID
	Question   string // text used for embedding
	Answer     string // full answer text
	Summary    string // preferred short answer, falls back to Answer when empty
	Title      string
	Topic      string
	PlaceName  string // tag linking to geography, optional
	Location   string // municipality code, optional
	Budget     string
	Activities []string
	GroupType  string
	SkillLevel string
	Vector     []float32 // embedding of Question (populated at ingestion)
	InsertedAt time.Time
}

// Place is a resolved geographic point of interest returned alongside answers.
type Place struct {
	Name         string
	Lat          float64
	Lng          float64
	Category     string
	Municipality string
}

// CacheEntry is a cached (query, answer, places) triple retrieved by vector
// similarity rather than exact key. Entries are mutated in place exactly once,
// when the enhancer transitions Revision from raw to enhanced.
type CacheEntry struct {
	Id        ID
	Query     string
	Answer    string
	Places    []Place
	Revision  RevisionState
	Vector    []float32 // embedding of Query
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EnhancementJob is an ephemeral unit of work for the background enhancer.
// Each job is attempted exactly once; a later identical query re-enqueues
// independently.
type EnhancementJob struct {
	Query      string
	RawFacts   string
	RawAnswer  string
	EnqueuedAt time.Time
}

// Intent classifies a user utterance.
type Intent int

const (
	// IntentGreeting is a salutation with no question attached.
	IntentGreeting Intent = iota + 1
	// IntentNonsense is gibberish or otherwise unprocessable input.
	IntentNonsense
	// IntentTourismQuery is an answerable domain question.
	IntentTourismQuery
	// IntentUnclear is a low-confidence utterance that is passed through to
	// retrieval and relies on "no information found" as the safe outcome.
	IntentUnclear
)

// String returns the intent as a short tag.
func (i Intent) String() string {
	switch i {
	case IntentGreeting:
		return "greeting"
	case IntentNonsense:
		return "nonsense"
	case IntentTourismQuery:
		return "tourism_query"
	case IntentUnclear:
		return "unclear"
	default:
		return "unknown"
	}
}

// IntentResult is the transient output of intent classification.
type IntentResult struct {
	Intent     Intent
	IsValid    bool
	Confidence float64
	Reason     string // short diagnostic tag for observability
}

// EntityBundle holds the structured slots extracted from one query.
// It is consumed immediately by retrieval-filter construction.
// Scalar slots use the empty string for "not detected".
type EntityBundle struct {
	Places       []string
	Activities   []string
	Budget       string
	SkillLevel   string
	GroupType    string
	TimePeriod   string
	Proximity    string
	InferredTown string
	IsListing    bool
}

// SearchResult is a fact record matched by vector similarity search.
type SearchResult struct {
	Record *FactRecord
	Score  float32
}

// CacheMatch is the nearest cache entry found for a query vector.
type CacheMatch struct {
	Entry *CacheEntry
	Score float32
}
