// Package enhance runs the background answer rewrite worker.
//
// The pipeline serves raw fact concatenations immediately and enqueues a
// job here; a single worker goroutine rewrites the answer into fluent
// prose via the language model and upgrades the cached entry in place.
// Enqueue never blocks the request path and rewrite failures are
// dropped, never surfaced to the user.
package enhance
