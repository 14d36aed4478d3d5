// Package intent classifies user utterances before retrieval.
//
// The gate combines lexical rules (greeting and interrogative lexicons,
// English and Filipino), a gibberish heuristic, and semantic similarity
// against a precomputed embedding cache of domain keywords. Classification
// short-circuits: trivially invalid input never reaches the embedder.
package intent
