/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: counter.go
Description: Counting oracle wrapper. Tracks queries, batches and total symbols sent to
the wrapped oracle.
*/

package oracle

import (
	"context"
	"sync/atomic"

	"github.com/kleascm/alfbridge/pkg/words"
)

// Counter wraps an oracle and counts what passes through it
type Counter[I comparable, D any] struct {
	delegate MembershipOracle[I, D]
	queries  atomic.Int64
	batches  atomic.Int64
	symbols  atomic.Int64
}

// NewCounter wraps delegate
func NewCounter[I comparable, D any](delegate MembershipOracle[I, D]) *Counter[I, D] {
	return &Counter[I, D]{delegate: delegate}
}

// ProcessQueries counts the batch and forwards it unchanged
func (c *Counter[I, D]) ProcessQueries(ctx context.Context, queries []*words.Query[I, D]) error {
	c.batches.Add(1)
	c.queries.Add(int64(len(queries)))
	for _, q := range queries {
		c.symbols.Add(int64(len(q.Input)))
	}
	return c.delegate.ProcessQueries(ctx, queries)
}

// Queries returns the number of queries seen
func (c *Counter[I, D]) Queries() int64 { return c.queries.Load() }

// Batches returns the number of batches seen
func (c *Counter[I, D]) Batches() int64 { return c.batches.Load() }

// Symbols returns the total length of all queried words
func (c *Counter[I, D]) Symbols() int64 { return c.symbols.Load() }
