package decisioncache

import (
	"context"
	"crypto/sha1"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	bolt "go.etcd.io/bbolt"

	"textchunk/chunker"
	"textchunk/pkg/langdetect"
)

var bucketName = []byte("decisions")

// Cache memoizes boundary-oracle decisions in a bbolt file so that
// re-chunking the same document does not pay for the same classifier
// calls twice. Errors from the wrapped oracle are never cached.
type Cache struct {
	db     *bolt.DB
	oracle chunker.BoundaryOracle
	mu     sync.RWMutex
}

// Open creates or opens the cache database and wraps oracle with it.
func Open(path string, oracle chunker.BoundaryOracle) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory for decision cache: %w", err)
	}

	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open decision cache: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &Cache{db: db, oracle: oracle}, nil
}

// Decide returns the cached decision for this span pair, or consults
// the wrapped oracle and records the result.
func (c *Cache) Decide(ctx context.Context, prior, candidate string, lang langdetect.Lang) (bool, error) {
	key := decisionKey(prior, candidate, lang)

	if cached, ok := c.lookup(key); ok {
		return cached, nil
	}

	newTopic, err := c.oracle.Decide(ctx, prior, candidate, lang)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// A failed write only loses the memo; the decision stands.
	c.db.Update(func(tx *bolt.Tx) error {
		val := []byte("0")
		if newTopic {
			val = []byte("1")
		}
		return tx.Bucket(bucketName).Put(key, val)
	})
	return newTopic, nil
}

func (c *Cache) lookup(key []byte) (bool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var val []byte
	c.db.View(func(tx *bolt.Tx) error {
		val = tx.Bucket(bucketName).Get(key)
		return nil
	})
	if val == nil {
		return false, false
	}
	return val[0] == '1', true
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func decisionKey(prior, candidate string, lang langdetect.Lang) []byte {
	h := sha1.New()
	h.Write([]byte(prior))
	h.Write([]byte{0})
	h.Write([]byte(candidate))
	h.Write([]byte{0})
	h.Write([]byte(lang))
	return h.Sum(nil)
}
