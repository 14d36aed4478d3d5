package badger

import (
	"context"

	"github.com/bikemaster2331/pathfinder/core"
	"github.com/bikemaster2331/pathfinder/storage"
	"github.com/dgraph-io/badger/v4"
)

// CacheRepository implements storage.CacheRepository for BadgerDB.
type CacheRepository struct {
	backend *Backend
}

var _ storage.CacheRepository = (*CacheRepository)(nil)

// NewCacheRepository creates a new CacheRepository.
func NewCacheRepository(backend *Backend) *CacheRepository {
	return &CacheRepository{backend: backend}
}

// Close is a no-op; the shared backend is closed by its owner.
func (r *CacheRepository) Close() error {
	return nil
}

// Nearest returns the single most similar cache entry, or nil when the
// collection is empty.
func (r *CacheRepository) Nearest(ctx context.Context, vector []float32) (*core.CacheMatch, error) {
	var best *core.CacheMatch

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(cacheEntryPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var entry *core.CacheEntry
			err := iter.Item().Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalCacheEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			if entry == nil || len(entry.Vector) == 0 {
				continue
			}

			similarity := dotProduct(vector, entry.Vector)
			if best == nil || similarity > best.Score {
				best = &core.CacheMatch{Entry: entry, Score: similarity}
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return best, nil
}

// Add stores a new cache entry.
func (r *CacheRepository) Add(ctx context.Context, entry *core.CacheEntry) error {
	if entry == nil {
		return storage.ErrNilRecord
	}
	if err := core.ValidateCacheEntry(entry); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeCacheKey(entry.Id), storage.MarshalCacheEntry(entry)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Update replaces an existing cache entry by ID.
func (r *CacheRepository) Update(ctx context.Context, entry *core.CacheEntry) error {
	if entry == nil {
		return storage.ErrNilRecord
	}
	if err := core.ValidateCacheEntry(entry); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCacheKey(entry.Id)
		if _, err := tx.Get(key); err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		if err := tx.Set(key, storage.MarshalCacheEntry(entry)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Count returns the number of cached entries.
func (r *CacheRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(cacheEntryPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}
