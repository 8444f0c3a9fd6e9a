/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: parallel.go
Description: Parallel oracle. Splits a batch into contiguous chunks answered
concurrently by the delegate; answers land in the original query objects, so positional
order is preserved without any reassembly.
*/

package oracle

import (
	"context"

	"github.com/kleascm/alfbridge/pkg/words"
	"golang.org/x/sync/errgroup"
)

// Parallel fans a batch out to a delegate that is safe for concurrent use
type Parallel[I comparable, D any] struct {
	delegate MembershipOracle[I, D]
	workers  int
	minChunk int
}

// NewParallel creates a parallel oracle with the given number of workers.
// Batches smaller than minChunk*2 are answered in one call.
func NewParallel[I comparable, D any](delegate MembershipOracle[I, D], workers, minChunk int) *Parallel[I, D] {
	if workers < 1 {
		workers = 1
	}
	if minChunk < 1 {
		minChunk = 1
	}
	return &Parallel[I, D]{delegate: delegate, workers: workers, minChunk: minChunk}
}

// ProcessQueries answers the batch using up to p.workers concurrent calls
func (p *Parallel[I, D]) ProcessQueries(ctx context.Context, queries []*words.Query[I, D]) error {
	chunks := p.workers
	if limit := len(queries) / p.minChunk; limit < chunks {
		chunks = limit
	}
	if chunks <= 1 {
		return p.delegate.ProcessQueries(ctx, queries)
	}

	g, gctx := errgroup.WithContext(ctx)
	size := (len(queries) + chunks - 1) / chunks
	for start := 0; start < len(queries); start += size {
		end := start + size
		if end > len(queries) {
			end = len(queries)
		}
		chunk := queries[start:end]
		g.Go(func() error {
			return p.delegate.ProcessQueries(gctx, chunk)
		})
	}
	return g.Wait()
}
