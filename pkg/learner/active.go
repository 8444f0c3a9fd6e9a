/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: active.go
Description: Active learning loop. The engine is advanced until it yields a conjecture;
while it cannot, its pending query batch is decoded, answered by the membership oracle
in one call, and the answers are pushed back positionally for that batch. Counterexamples
move the learner from HasHypothesis back to Learning.
*/

package learner

import (
	"context"
	"errors"
	"fmt"

	"github.com/kleascm/alfbridge/pkg/alferr"
	"github.com/kleascm/alfbridge/pkg/codec"
	"github.com/kleascm/alfbridge/pkg/engine"
	"github.com/kleascm/alfbridge/pkg/oracle"
	"github.com/kleascm/alfbridge/pkg/words"
	"github.com/sirupsen/logrus"
)

// ErrNoHypothesis is returned by HypothesisModel before learning has completed once
var ErrNoHypothesis = errors.New("no hypothesis available")

// State is the position of an active learner in its protocol
type State int

const (
	NotStarted State = iota
	Learning
	HasHypothesis
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Learning:
		return "learning"
	case HasHypothesis:
		return "has_hypothesis"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Active is a query-driven learner producing models of type M
type Active[M any, I comparable, D any] struct {
	*core[M, I, D]

	oracle     oracle.MembershipOracle[I, D]
	state      State
	hypothesis M
	rounds     int
}

// NewActive instantiates an active algorithm with the given output encoding and
// conjecture decoding strategies.
func NewActive[M any, I comparable, D any](
	alg engine.AlgorithmID,
	alphabet *words.Alphabet[I],
	mq oracle.MembershipOracle[I, D],
	enc codec.OutputEncoder[D],
	dec ConjectureDecoder[M, I],
	opts ...Option,
) (*Active[M, I, D], error) {
	if mq == nil {
		return nil, &alferr.LearnerInitializationError{
			Algorithm: alg.String(),
			Cause:     errors.New("membership oracle is required"),
		}
	}
	c, err := newCore(alg, engine.ModeActive, alphabet, enc, dec, opts)
	if err != nil {
		return nil, err
	}
	return &Active[M, I, D]{core: c, oracle: mq}, nil
}

// State returns the current protocol state
func (a *Active[M, I, D]) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Rounds returns the number of query/answer round-trips performed so far
func (a *Active[M, I, D]) Rounds() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rounds
}

// StartLearning runs the learn loop until the first hypothesis. It may only be
// called once.
func (a *Active[M, I, D]) StartLearning(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkLive("start learning"); err != nil {
		return err
	}
	if a.state != NotStarted {
		return &alferr.IllegalStateError{Op: "start learning", Reason: "startLearning has already been called"}
	}

	a.state = Learning
	if err := a.learn(ctx); err != nil {
		a.state = NotStarted
		return err
	}
	a.state = HasHypothesis
	return nil
}

// RefineHypothesis submits the input of ce as a counterexample and re-runs the learn
// loop. It always reports true on success; there is no way for the engine to reject a
// counterexample.
func (a *Active[M, I, D]) RefineHypothesis(ctx context.Context, ce *words.Query[I, D]) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkLive("refine hypothesis"); err != nil {
		return false, err
	}
	if a.state != HasHypothesis {
		return false, &alferr.IllegalStateError{
			Op:     "refine hypothesis",
			Reason: "learning has to be started before refineHypothesis may be invoked",
		}
	}
	if ce == nil {
		return false, fmt.Errorf("refine hypothesis: counterexample is nil")
	}

	enc, err := codec.EncodeWord(ce.Input, a.alphabet)
	if err != nil {
		return false, fmt.Errorf("encode counterexample: %w", err)
	}
	if err := a.eng.SubmitCounterexample(a.handle, enc); err != nil {
		return false, a.engineErr("submit counterexample", err)
	}
	a.logger.WithField("length", len(enc)).Info("Counterexample submitted")
	a.reporter.OnCounterexample(a.info(), len(enc))

	a.state = Learning
	err = a.learn(ctx)
	a.state = HasHypothesis
	if err != nil {
		return false, err
	}
	return true, nil
}

// HypothesisModel returns the most recent hypothesis, or ErrNoHypothesis before the
// first one exists.
func (a *Active[M, I, D]) HypothesisModel() (M, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var zero M
	if err := a.checkLive("hypothesis model"); err != nil {
		return zero, err
	}
	if a.state == NotStarted {
		return zero, ErrNoHypothesis
	}
	return a.hypothesis, nil
}

// learn advances the engine until it produces a conjecture. a.mu must be held.
// There is no iteration bound; ctx is checked between rounds.
func (a *Active[M, I, D]) learn(ctx context.Context) error {
	for {
		hyp, ok, err := a.advance()
		if err != nil {
			return err
		}
		if ok {
			a.hypothesis = hyp
			a.logger.WithField("rounds", a.rounds).Info("Conjecture produced")
			a.reporter.OnConjecture(a.info(), a.rounds)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.round(ctx); err != nil {
			return err
		}
	}
}

// round performs one query/answer round-trip for the pending batch
func (a *Active[M, I, D]) round(ctx context.Context) error {
	batch, err := a.eng.FetchQueryBatch(a.handle)
	if err != nil {
		return a.engineErr("fetch query batch", err)
	}
	enc, err := a.eng.DecodeQueryBatch(batch)
	if err != nil {
		return a.engineErr("decode query batch", err)
	}
	inputs, err := codec.DecodeQueryBatch(enc, a.alphabet)
	if err != nil {
		return fmt.Errorf("decode query batch: %w", err)
	}

	queries := make([]*words.Query[I, D], len(inputs))
	for i, w := range inputs {
		queries[i] = words.NewQuery[I, D](w)
	}
	if err := a.oracle.ProcessQueries(ctx, queries); err != nil {
		return fmt.Errorf("membership oracle: %w", err)
	}

	answers, err := codec.EncodeAnswers(queries, a.encodeOutput)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	if err := a.eng.SubmitBatchAnswers(a.handle, batch, answers); err != nil {
		return a.engineErr("submit answers", err)
	}

	a.rounds++
	a.logger.WithFields(logrus.Fields{
		"round":      a.rounds,
		"batch_size": len(queries),
	}).Debug("Query batch answered")
	a.reporter.OnRound(a.info(), a.rounds, len(queries))
	return nil
}
