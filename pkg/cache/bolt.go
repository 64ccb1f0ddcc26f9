package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

const boltBucket = "layoutkit"

// BoltCache stores entries in a single bbolt database file. Unlike
// FileCache it holds an exclusive lock on the file while open, so only one
// process can use it at a time.
type BoltCache struct {
	db  *bolt.DB
	now func() time.Time
}

// NewBoltCache opens (or creates) the database at path.
func NewBoltCache(path string) (*BoltCache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltCache{db: db, now: time.Now}, nil
}

// Get retrieves a value. Corrupt and expired entries are reported as misses
// and removed.
func (c *BoltCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var (
		data  []byte
		found bool
		stale bool
	)
	err := c.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(boltBucket)).Get([]byte(key))
		if raw == nil {
			return nil
		}
		e, ok := decodeEntry(raw)
		if !ok || e.expired(c.now()) {
			stale = true
			return nil
		}
		// raw is only valid inside the transaction; decodeEntry copies.
		data, found = e.Data, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	if stale {
		_ = c.Delete(ctx, key)
	}
	return data, found, nil
}

// Set stores a value.
func (c *BoltCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	raw, err := newEntry(data, ttl, c.now()).encode()
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).Put([]byte(key), raw)
	})
}

// Delete removes a value.
func (c *BoltCache) Delete(ctx context.Context, key string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(boltBucket)).Delete([]byte(key))
	})
}

// Clear drops and recreates the bucket.
func (c *BoltCache) Clear(ctx context.Context) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(boltBucket)); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		_, err := tx.CreateBucket([]byte(boltBucket))
		return err
	})
}

// Len returns the number of stored entries, expired ones included.
func (c *BoltCache) Len() (int, error) {
	var n int
	err := c.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(boltBucket)).Stats().KeyN
		return nil
	})
	return n, err
}

// Close releases the database file.
func (c *BoltCache) Close() error {
	return c.db.Close()
}

var (
	_ Cache   = (*BoltCache)(nil)
	_ Clearer = (*BoltCache)(nil)
)
