/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: cache.go
Description: Caching membership oracle. Answers known queries from a Store and forwards
the rest to the delegate as one batch, preserving their order. Entries are scoped to the
alphabet and, optionally, an identifier of the queried system.
*/

package oracle

import (
	"context"
	"fmt"

	"github.com/kleascm/alfbridge/pkg/cache"
	"github.com/kleascm/alfbridge/pkg/codec"
	"github.com/kleascm/alfbridge/pkg/words"
)

// Cache wraps a delegate oracle with a persistent answer store
type Cache[I comparable, D any] struct {
	delegate MembershipOracle[I, D]
	store    cache.Store
	alphabet *words.Alphabet[I]
	encode   codec.OutputEncoder[D]
	decode   codec.OutputDecoder[D]
	scope    string
}

// NewCache creates a caching oracle. Outputs are stored in their engine encoding.
func NewCache[I comparable, D any](delegate MembershipOracle[I, D], store cache.Store, alphabet *words.Alphabet[I], enc codec.OutputEncoder[D], dec codec.OutputDecoder[D]) *Cache[I, D] {
	c := &Cache[I, D]{
		delegate: delegate,
		store:    store,
		alphabet: alphabet,
		encode:   enc,
		decode:   dec,
	}
	c.scope = c.fingerprint("")
	return c
}

// ForSystem scopes entries to system as well as the alphabet, so one store can
// hold answers for several targets.
func (c *Cache[I, D]) ForSystem(system string) *Cache[I, D] {
	c.scope = c.fingerprint(system)
	return c
}

func (c *Cache[I, D]) fingerprint(system string) string {
	symbols := c.alphabet.Symbols()
	parts := make([]string, 0, len(symbols)+1)
	parts = append(parts, system)
	for _, sym := range symbols {
		parts = append(parts, fmt.Sprintf("%#v", sym))
	}
	return cache.Fingerprint(parts...)
}

// Key returns the store key for w
func (c *Cache[I, D]) Key(w words.Word[I]) (string, error) {
	enc, err := codec.EncodeWord(w, c.alphabet)
	if err != nil {
		return "", err
	}
	return cache.ScopedKey(c.scope, enc), nil
}

// ProcessQueries answers hits from the store and forwards misses
func (c *Cache[I, D]) ProcessQueries(ctx context.Context, queries []*words.Query[I, D]) error {
	misses := make([]*words.Query[I, D], 0, len(queries))
	keys := make([]string, 0, len(queries))

	for _, q := range queries {
		key, err := c.Key(q.Input)
		if err != nil {
			return err
		}
		v, ok, err := c.store.Get(ctx, key)
		if err != nil {
			return err
		}
		if ok {
			out, err := c.decode(v)
			if err != nil {
				return fmt.Errorf("cached answer for %s: %w", q.Input, err)
			}
			q.Answer(out)
			continue
		}
		misses = append(misses, q)
		keys = append(keys, key)
	}

	if len(misses) == 0 {
		return nil
	}
	if err := c.delegate.ProcessQueries(ctx, misses); err != nil {
		return err
	}

	for i, q := range misses {
		out, ok := q.Output()
		if !ok {
			return fmt.Errorf("delegate left query %s unanswered", q.Input)
		}
		v, err := c.encode(out)
		if err != nil {
			return err
		}
		if err := c.store.Put(ctx, keys[i], v); err != nil {
			return err
		}
	}
	return nil
}
