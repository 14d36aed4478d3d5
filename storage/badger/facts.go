package badger

import (
	"context"
	"slices"

	"github.com/bikemaster2331/pathfinder/core"
	"github.com/bikemaster2331/pathfinder/storage"
	"github.com/dgraph-io/badger/v4"
)

// FactRepository implements storage.FactRepository for BadgerDB.
type FactRepository struct {
	backend *Backend
}

var _ storage.FactRepository = (*FactRepository)(nil)

// NewFactRepository creates a new FactRepository.
func NewFactRepository(backend *Backend) *FactRepository {
	return &FactRepository{backend: backend}
}

// Close is a no-op; the shared backend is closed by its owner.
func (r *FactRepository) Close() error {
	return nil
}

// Query finds fact records similar to the given vector.
// The similarity scan is brute force; fact collections are small enough that
// a linear pass beats index maintenance.
func (r *FactRepository) Query(ctx context.Context, vector []float32, minSimilarity float32, limit int, filter *storage.Filter) ([]*core.SearchResult, error) {
	var results []*core.SearchResult

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(factRecordPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			var record *core.FactRecord
			err := item.Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalFactRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			if record == nil || len(record.Vector) == 0 {
				continue
			}

			if filter != nil && !filter.Matches(record) {
				continue
			}

			similarity := dotProduct(vector, record.Vector)
			if similarity >= minSimilarity {
				results = append(results, &core.SearchResult{
					Record: record,
					Score:  similarity,
				})
			}
		}

		return nil
	}, false)

	if err != nil {
		return nil, err
	}

	// Sort by similarity descending
	slices.SortFunc(results, func(a, b *core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// BulkAdd stores fact records in chunks to respect transaction size limits.
func (r *FactRepository) BulkAdd(ctx context.Context, records ...*core.FactRecord) error {
	const chunkSize = 64

	for start := 0; start < len(records); start += chunkSize {
		end := start + chunkSize
		if end > len(records) {
			end = len(records)
		}

		err := r.backend.WithTx(func(tx *badger.Txn) error {
			for _, record := range records[start:end] {
				if record == nil {
					return storage.ErrNilRecord
				}
				if err := core.ValidateFactRecord(record); err != nil {
					return err
				}
				if err := tx.Set(makeFactKey(record.Id), storage.MarshalFactRecord(record)); err != nil {
					return err
				}
			}
			return tx.Commit()
		}, true)
		if err != nil {
			return err
		}
	}

	return nil
}

// Count returns the number of fact records.
func (r *FactRepository) Count(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(factRecordPrefix)
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

// Wipe removes all fact records and the stored fingerprint.
func (r *FactRepository) Wipe(ctx context.Context) error {
	if err := r.backend.dropPrefix([]byte(factRecordPrefix)); err != nil {
		return err
	}
	return r.backend.dropPrefix([]byte(factFingerprintKey))
}

// Fingerprint returns the stored dataset hash, or "" if none is stored.
func (r *FactRepository) Fingerprint(ctx context.Context) (string, error) {
	var fp string
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get([]byte(factFingerprintKey))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			fp = string(val)
			return nil
		})
	}, false)
	return fp, err
}

// SetFingerprint records the dataset hash the collection was built from.
func (r *FactRepository) SetFingerprint(ctx context.Context, fp string) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set([]byte(factFingerprintKey), []byte(fp)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
