// Package ingest builds the fact index from the curated dataset.
//
// The dataset is a JSON array of question/answer items with optional
// filter attributes. Builds are non-incremental: the fact collection is
// wiped, every record is embedded, and the batch is written along with
// a fingerprint of the dataset file. On startup the fingerprint decides
// whether a rebuild is needed at all.
package ingest
