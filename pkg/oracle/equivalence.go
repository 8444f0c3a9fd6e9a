/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: equivalence.go
Description: Approximate equivalence checking by random testing. Draws random words,
asks the membership oracle, and reports the first disagreement with the hypothesis.
*/

package oracle

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/kleascm/alfbridge/pkg/automaton"
	"github.com/kleascm/alfbridge/pkg/words"
)

// RandomWords searches for counterexamples among random words
type RandomWords[I comparable] struct {
	oracle    MembershipOracle[I, bool]
	rng       *rand.Rand
	minLength int
	maxLength int
	tests     int
	batchSize int
}

// NewRandomWords creates a random-testing equivalence oracle
func NewRandomWords[I comparable](mq MembershipOracle[I, bool], seed int64, minLength, maxLength, tests int) (*RandomWords[I], error) {
	if minLength < 0 || maxLength < minLength {
		return nil, fmt.Errorf("invalid word length range [%d, %d]", minLength, maxLength)
	}
	if tests <= 0 {
		return nil, fmt.Errorf("test count must be positive, got %d", tests)
	}
	return &RandomWords[I]{
		oracle:    mq,
		rng:       rand.New(rand.NewSource(seed)),
		minLength: minLength,
		maxLength: maxLength,
		tests:     tests,
		batchSize: 64,
	}, nil
}

// FindCounterexample returns an answered query on which hyp disagrees with the oracle,
// or nil when none was found.
func (r *RandomWords[I]) FindCounterexample(ctx context.Context, hyp automaton.Acceptor[I]) (*words.Query[I, bool], error) {
	symbols := hyp.InputAlphabet().Symbols()
	for done := 0; done < r.tests; {
		n := r.batchSize
		if rest := r.tests - done; rest < n {
			n = rest
		}
		batch := make([]*words.Query[I, bool], n)
		for i := range batch {
			batch[i] = words.NewQuery[I, bool](r.randomWord(symbols))
		}
		if err := r.oracle.ProcessQueries(ctx, batch); err != nil {
			return nil, err
		}
		for _, q := range batch {
			out, ok := q.Output()
			if !ok {
				return nil, fmt.Errorf("membership oracle left query %s unanswered", q.Input)
			}
			if hyp.Accepts(q.Input) != out {
				return q, nil
			}
		}
		done += n
	}
	return nil, nil
}

func (r *RandomWords[I]) randomWord(symbols []I) words.Word[I] {
	n := r.minLength
	if r.maxLength > r.minLength {
		n += r.rng.Intn(r.maxLength - r.minLength + 1)
	}
	if len(symbols) == 0 {
		n = 0
	}
	w := make(words.Word[I], n)
	for i := range w {
		w[i] = symbols[r.rng.Intn(len(symbols))]
	}
	return w
}
