// Package geo resolves place-name tags to known points of interest.
//
// Resolution is tiered by cost and precision: exact case-insensitive
// lookup first, then semantic similarity against precomputed name
// embeddings for paraphrases, then fuzzy string matching for typos.
// A tag that clears no tier resolves to nil, meaning "no map pin".
package geo
