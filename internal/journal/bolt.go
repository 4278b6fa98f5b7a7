package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

const bucketName = "journal"

// keyLayout is fixed-width so keys sort by time.
const keyLayout = "2006-01-02T15:04:05.000000000Z07:00"

// BoltStore is an embedded journal file.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the journal file at path and ensures the
// journal bucket exists.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt journal: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketName))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Append writes entries in a single transaction.
func (s *BoltStore) Append(ctx context.Context, entries []Entry) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	conflicts := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		for _, e := range entries {
			key := entryKey(e)
			if b.Get(key) != nil {
				conflicts++
				continue
			}
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("marshal entry %s: %w", e.ID, err)
			}
			if err := b.Put(key, data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return conflicts, nil
}

// ForEach calls fn for every entry in time order.
func (s *BoltStore) ForEach(fn func(Entry) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketName))
		return b.ForEach(func(k, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return fmt.Errorf("decode entry %s: %w", k, err)
			}
			return fn(e)
		})
	})
}

// Close releases the file lock.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func entryKey(e Entry) []byte {
	return []byte(e.At.UTC().Format(keyLayout) + "/" + e.ID.String())
}
