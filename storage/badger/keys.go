package badger

import (
	"fmt"

	"github.com/bikemaster2331/pathfinder/core"
)

// Key prefixes for the two collections. Facts and cache entries share one
// BadgerDB instance but never share key space.
const (
	factRecordPrefix   = "facrec"
	factFingerprintKey = "facfp"
	cacheEntryPrefix   = "cacrec"
)

// makeFactKey generates a key for a fact record by ID.
func makeFactKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", factRecordPrefix, id))
}

// makeCacheKey generates a key for a cache entry by ID.
func makeCacheKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", cacheEntryPrefix, id))
}
