// Package cache implements the semantic answer cache.
//
// Entries are stored under a persistent vector index and retrieved by
// embedding similarity rather than exact key, so paraphrased repeats of
// a question short-circuit the retrieval pipeline. Entries are written
// raw and upgraded in place exactly once when the background enhancer
// delivers a rewritten answer.
package cache
