package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"

	"github.com/workaholic/backend/domain"
)

// Store persists notification outcomes in BoltDB. It is an observation
// record only: nothing reads it to suppress repeat sends, so the duplicate
// notification behavior across ticks stays visible rather than hidden.
type Store struct {
	db     *bolt.DB
	bucket []byte
}

// Open initializes the Bolt file and ensures the outcomes bucket exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	bucket := []byte("outcomes")
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, bucket: bucket}, nil
}

// Append records one outcome under a time-ordered key.
func (s *Store) Append(outcome domain.NotificationOutcome) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	if outcome.At.IsZero() {
		outcome.At = time.Now()
	}

	payload, err := json.Marshal(outcome)
	if err != nil {
		return err
	}
	key := []byte(fmt.Sprintf("%020d_%s", outcome.At.UnixNano(), uuid.NewString()))

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put(key, payload)
	})
}

// Recent returns up to limit outcomes, newest first.
func (s *Store) Recent(limit int) ([]domain.NotificationOutcome, error) {
	if s == nil || s.db == nil {
		return nil, bolt.ErrDatabaseNotOpen
	}
	if limit <= 0 {
		limit = 50
	}

	var out []domain.NotificationOutcome
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.Last(); k != nil && len(out) < limit; k, v = c.Prev() {
			var outcome domain.NotificationOutcome
			if err := json.Unmarshal(v, &outcome); err != nil {
				continue
			}
			out = append(out, outcome)
		}
		return nil
	})
	return out, err
}

// Size returns the number of recorded outcomes.
func (s *Store) Size() (int, error) {
	if s == nil || s.db == nil {
		return 0, bolt.ErrDatabaseNotOpen
	}
	var count int
	err := s.db.View(func(tx *bolt.Tx) error {
		count = tx.Bucket(s.bucket).Stats().KeyN
		return nil
	})
	return count, err
}

// Cleanup removes outcomes recorded before the given instant.
func (s *Store) Cleanup(olderThan time.Time) error {
	if s == nil || s.db == nil {
		return bolt.ErrDatabaseNotOpen
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var outcome domain.NotificationOutcome
			if err := json.Unmarshal(v, &outcome); err != nil {
				continue
			}
			if outcome.At.Before(olderThan) {
				if err := c.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// Close closes the Bolt database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
