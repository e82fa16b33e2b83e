// Package store keeps named declaration files in a bbolt database.
package store

import (
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"src.elv.sh/sigbind/pkg/logutil"
)

var logger = logutil.GetLogger("[store] ")

const (
	bucketDecl = "decl"
	bucketRev  = "rev"
)

var initDB = map[string]func(*bolt.Tx) error{
	"initialize declaration table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketDecl))
		return err
	},
	"initialize revision table": func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketRev))
		return err
	},
}

// Store is a registry of declaration files backed by a database file.
type Store struct {
	db *bolt.DB
}

// Open opens the database at path, creating it if needed.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				logger.Error("failed to init db", zap.String("step", name), zap.Error(err))
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	logger.Info("opened store", zap.String("path", path))
	return &Store{db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }
