// Package extract pulls structured slots from a tourism query.
//
// Extraction is pure pattern and lexicon matching over the lowercased
// input. Place names match longest-first with consumption so that
// "Bato Church" never also yields a bare "Bato". Scalar slots (budget,
// skill level, group type, time period, proximity) are word-boundary
// alternations over small per-category lexicons, first match wins.
package extract
