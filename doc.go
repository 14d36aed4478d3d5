// Package pathfinder answers natural-language tourism questions about
// Catanduanes by retrieving facts from a curated knowledge base.
//
// The single entry point is Pipeline.Ask, which runs a query through
// admission (rate limit, profanity), intent classification, a semantic
// answer cache, entity extraction, filtered vector retrieval, and place
// resolution. The raw answer returns immediately; a background worker
// rewrites it into fluent prose afterwards and upgrades the cached copy.
// The pipeline always returns some answer: per-request failures degrade
// to canned responses, and only construction-time failures propagate.
package pathfinder
