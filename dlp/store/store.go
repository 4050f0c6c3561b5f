// Package store keeps baby-step tables in a bbolt database so that large
// tables are computed once per machine instead of once per process.
package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vocdoni/gnark-crypto-she/dlp"
	"github.com/vocdoni/gnark-crypto-she/group"
	"go.etcd.io/bbolt"
)

// ErrNoTable is returned by Get when no table of the requested group and size
// was stored.
var ErrNoTable = errors.New("store: no such table")

var bucketName = []byte("dlp-tables")

// Store is a bbolt database of encoded tables, keyed by group name and size.
type Store struct {
	db *bbolt.DB
}

// Entry describes a stored table.
type Entry struct {
	Group string
	Size  int
	// Len is the length of the encoded table in bytes.
	Len int
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create bucket: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Path() string {
	return s.db.Path()
}

func key(g group.Group, size int) []byte {
	return []byte(g.String() + "/" + strconv.Itoa(size))
}

// Put stores t, replacing any table of the same group and size.
func (s *Store) Put(t *dlp.Table) error {
	buf, err := t.MarshalBinary()
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Put(key(t.Group(), t.Size()), buf)
	})
}

// Get loads the table of g over base with size baby steps.
func (s *Store) Get(g group.Group, base group.Point, size int) (*dlp.Table, error) {
	var buf []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketName).Get(key(g, size))
		if v == nil {
			return nil
		}
		// v is only valid during the transaction
		buf = make([]byte, len(v))
		copy(buf, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if buf == nil {
		return nil, fmt.Errorf("%w: %s/%d", ErrNoTable, g, size)
	}
	return dlp.UnmarshalTable(g, base, buf)
}

// Delete removes the table of g with size baby steps, if any.
func (s *Store) Delete(g group.Group, size int) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).Delete(key(g, size))
	})
}

// List returns the stored tables in key order.
func (s *Store) List() ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketName).ForEach(func(k, v []byte) error {
			i := strings.LastIndexByte(string(k), '/')
			if i < 0 {
				return fmt.Errorf("store: malformed key %q", k)
			}
			size, err := strconv.Atoi(string(k[i+1:]))
			if err != nil {
				return fmt.Errorf("store: malformed key %q: %w", k, err)
			}
			entries = append(entries, Entry{Group: string(k[:i]), Size: size, Len: len(v)})
			return nil
		})
	})
	return entries, err
}
