/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: badger.go
Description: Badger answer store for large query caches.
*/

package cache

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var badgerPrefix = []byte("mq/")

// BadgerStore persists answers in a Badger key-value database
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a Badger database in dir
func NewBadgerStore(dir string) (*BadgerStore, error) {
	if dir == "" {
		return nil, errors.New("badger directory is required")
	}
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open badger cache: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func badgerKey(key string) []byte {
	return append(append([]byte(nil), badgerPrefix...), key...)
}

func (s *BadgerStore) Get(_ context.Context, key string) (int, bool, error) {
	var v int
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("corrupt cache entry for %q", key)
			}
			v = int(int64(binary.BigEndian.Uint64(val)))
			found = true
			return nil
		})
	})
	if err != nil {
		return 0, false, fmt.Errorf("badger get %q: %w", key, err)
	}
	return v, found, nil
}

func (s *BadgerStore) Put(_ context.Context, key string, value int) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(int64(value)))
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(key), buf[:])
	})
	if err != nil {
		return fmt.Errorf("badger put %q: %w", key, err)
	}
	return nil
}

func (s *BadgerStore) Len(context.Context) (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = badgerPrefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
