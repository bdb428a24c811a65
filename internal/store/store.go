package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketKV = []byte("kv")
)

// KVStore implements domain.KeyValueStore using BoltDB.
type KVStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory copy of every value read or written
	cache map[string][]byte
}

// Open opens (or creates) the database at path. An empty path gives a
// memory-only store.
func Open(path string) (*KVStore, error) {
	if path == "" {
		return &KVStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketKV)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &KVStore{db: db, cache: make(map[string][]byte)}, nil
}

// Close releases the database file lock
func (s *KVStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns a copy of the value stored under key
func (s *KVStore) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return cloneBytes(data), true, nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false, nil
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketKV)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			// bolt values are only valid inside the transaction
			data = cloneBytes(v)
		}
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	if data == nil {
		return nil, false, nil
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return cloneBytes(data), true, nil
}

// Set writes value under key. The write is synchronous.
func (s *KVStore) Set(key string, value []byte) error {
	data := cloneBytes(value)

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketKV)
		return b.Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Delete removes key from memory and disk
func (s *KVStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketKV)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// Clear deletes every key
func (s *KVStore) Clear() error {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketKV); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		_, err := tx.CreateBucket(bucketKV)
		return err
	})
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
