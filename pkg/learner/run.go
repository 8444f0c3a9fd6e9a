/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: run.go
Description: Query-and-counterexample learning loop. Alternates hypothesis construction with
equivalence checks until the equivalence oracle finds no counterexample.
*/

package learner

import (
	"context"
	"fmt"

	"github.com/kleascm/alfbridge/pkg/words"
)

// EquivalenceOracle searches for a word on which hyp and the system disagree. A nil
// query means none was found.
type EquivalenceOracle[M any, I comparable, D any] interface {
	FindCounterexample(ctx context.Context, hyp M) (*words.Query[I, D], error)
}

// Result summarizes a completed run
type Result[M any] struct {
	Model       M
	Refinements int
	Rounds      int
}

// Run starts learning on a and refines until eq accepts the hypothesis
func Run[M any, I comparable, D any](ctx context.Context, a *Active[M, I, D], eq EquivalenceOracle[M, I, D]) (*Result[M], error) {
	if err := a.StartLearning(ctx); err != nil {
		return nil, err
	}

	refinements := 0
	for {
		hyp, err := a.HypothesisModel()
		if err != nil {
			return nil, err
		}
		ce, err := eq.FindCounterexample(ctx, hyp)
		if err != nil {
			return nil, fmt.Errorf("equivalence check: %w", err)
		}
		if ce == nil {
			return &Result[M]{Model: hyp, Refinements: refinements, Rounds: a.Rounds()}, nil
		}
		if _, err := a.RefineHypothesis(ctx, ce); err != nil {
			return nil, err
		}
		refinements++
	}
}
