/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: oracle.go
Description: Membership oracle contract. Oracles always receive a whole batch of
queries in one call and answer them in place; callers rely on the slice order, never on
query identity.
*/

package oracle

import (
	"context"

	"github.com/kleascm/alfbridge/pkg/words"
)

// MembershipOracle answers batches of membership queries
type MembershipOracle[I comparable, D any] interface {
	ProcessQueries(ctx context.Context, queries []*words.Query[I, D]) error
}

// Func adapts a function to a MembershipOracle
type Func[I comparable, D any] func(ctx context.Context, queries []*words.Query[I, D]) error

func (f Func[I, D]) ProcessQueries(ctx context.Context, queries []*words.Query[I, D]) error {
	return f(ctx, queries)
}

// Answer computes every query with fn, one at a time
func Answer[I comparable, D any](fn func(ctx context.Context, w words.Word[I]) (D, error)) Func[I, D] {
	return func(ctx context.Context, queries []*words.Query[I, D]) error {
		for _, q := range queries {
			out, err := fn(ctx, q.Input)
			if err != nil {
				return err
			}
			q.Answer(out)
		}
		return nil
	}
}
