package store

import (
	"encoding/binary"
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"src.elv.sh/sigbind/pkg/decl"
	"src.elv.sh/sigbind/pkg/diag"
)

// ErrNoDecl is returned when there is no declaration file with a given name.
var ErrNoDecl = errors.New("no such declaration")

// Entry describes a stored declaration file.
type Entry struct {
	Name string
	// Rev increases with every Put to the store.
	Rev int
}

// Put stores the declaration file code under name, replacing any file
// stored under the same name, and returns its revision. The code must load
// without errors.
func (s *Store) Put(name, code string) (int, error) {
	if _, err := decl.Load(diag.Source{Name: name, Code: code}); err != nil {
		return 0, fmt.Errorf("declaration %s: %w", name, err)
	}
	var seq uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketDecl))
		var err error
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		if err := b.Put([]byte(name), []byte(code)); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketRev)).Put([]byte(name), marshalSeq(seq))
	})
	return int(seq), err
}

// Get returns the code stored under name.
func (s *Store) Get(name string) (string, error) {
	var code string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketDecl)).Get([]byte(name))
		if v == nil {
			return ErrNoDecl
		}
		code = string(v)
		return nil
	})
	return code, err
}

// Load loads the declaration file stored under name.
func (s *Store) Load(name string) (*decl.File, error) {
	code, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	return decl.Load(diag.Source{Name: "[store] " + name, Code: code})
}

// List lists the stored declaration files, ordered by name.
func (s *Store) List() ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		revs := tx.Bucket([]byte(bucketRev))
		c := tx.Bucket([]byte(bucketDecl)).Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			entries = append(entries, Entry{string(k), int(unmarshalSeq(revs.Get(k)))})
		}
		return nil
	})
	return entries, err
}

// Delete deletes the declaration file stored under name.
func (s *Store) Delete(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketDecl))
		if b.Get([]byte(name)) == nil {
			return ErrNoDecl
		}
		if err := b.Delete([]byte(name)); err != nil {
			return err
		}
		return tx.Bucket([]byte(bucketRev)).Delete([]byte(name))
	})
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	if len(key) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(key)
}
