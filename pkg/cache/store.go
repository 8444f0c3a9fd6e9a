/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: store.go
Description: Persistent and in-memory stores for membership query answers. Keys are
encoded words under a scope that fingerprints the alphabet and the queried system;
values are engine-encoded outputs, so one store serves any output type.
*/

package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Store keeps answers to previously asked queries
type Store interface {
	Get(ctx context.Context, key string) (int, bool, error)
	Put(ctx context.Context, key string, value int) error
	Len(ctx context.Context) (int, error)
	Close() error
}

// Key builds a store key from an encoded word. The empty word maps to "ε".
func Key(encoded []int) string {
	if len(encoded) == 0 {
		return "ε"
	}
	var b strings.Builder
	for i, v := range encoded {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(v))
	}
	return b.String()
}

// Fingerprint hashes parts into a short scope identifier. Part boundaries are
// significant: ("ab", "c") and ("a", "bc") differ.
func Fingerprint(parts ...string) string {
	d := xxhash.New()
	for _, p := range parts {
		d.WriteString(strconv.Itoa(len(p)))
		d.WriteString(":")
		d.WriteString(p)
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

// ScopedKey prefixes Key(encoded) with a scope from Fingerprint
func ScopedKey(scope string, encoded []int) string {
	return scope + "/" + Key(encoded)
}

// NewStore opens a store backend by name
func NewStore(kind, path string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		s, err := NewSQLiteStore(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "badger":
		s, err := NewBadgerStore(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", kind)
	}
}
