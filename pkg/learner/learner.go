/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: learner.go
Description: Shared learner core. A core exclusively owns one engine handle for its
whole life, serializes every engine call behind a mutex, and turns conjectures into typed
models through an injected decoder. Dispose releases the handle exactly once; afterwards
every engine-touching operation fails with ErrObjectDisposed.
*/

package learner

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/kleascm/alfbridge/pkg/alferr"
	"github.com/kleascm/alfbridge/pkg/codec"
	"github.com/kleascm/alfbridge/pkg/engine"
	"github.com/kleascm/alfbridge/pkg/words"
	"github.com/sirupsen/logrus"
)

// ConjectureDecoder turns an opaque conjecture into a typed model. It must fail with
// an alferr.DecodingError rather than return a malformed model.
type ConjectureDecoder[M any, I comparable] func(conjecture []byte, alphabet *words.Alphabet[I]) (M, error)

type core[M any, I comparable, D any] struct {
	mu sync.Mutex

	id        string
	algorithm engine.AlgorithmID
	alphabet  *words.Alphabet[I]

	engineCtx *engine.Context
	eng       engine.Engine
	handle    engine.Handle

	encodeOutput codec.OutputEncoder[D]
	decode       ConjectureDecoder[M, I]

	logger   logrus.FieldLogger
	reporter Reporter
}

func newCore[M any, I comparable, D any](
	alg engine.AlgorithmID,
	mode engine.Mode,
	alphabet *words.Alphabet[I],
	enc codec.OutputEncoder[D],
	dec ConjectureDecoder[M, I],
	opts []Option,
) (*core[M, I, D], error) {
	if alphabet == nil || enc == nil || dec == nil {
		return nil, &alferr.LearnerInitializationError{
			Algorithm: alg.String(),
			Cause:     errors.New("alphabet, output encoder and conjecture decoder are required"),
		}
	}
	if alg.Valid() && alg.Mode() != mode {
		return nil, &alferr.LearnerInitializationError{
			Algorithm: alg.String(),
			Cause:     fmt.Errorf("algorithm is %s, not %s", alg.Mode(), mode),
		}
	}

	s := newSettings(opts)
	ectx := s.engineCtx
	if ectx == nil {
		var err error
		if ectx, err = engine.Default(); err != nil {
			return nil, err
		}
	}

	eng, h, err := ectx.Instantiate(alg, alphabet.Size(), s.options)
	if err != nil {
		return nil, err
	}

	id := uuid.New().String()
	c := &core[M, I, D]{
		id:           id,
		algorithm:    alg,
		alphabet:     alphabet,
		engineCtx:    ectx,
		eng:          eng,
		handle:       h,
		encodeOutput: enc,
		decode:       dec,
		logger: s.logger.WithFields(logrus.Fields{
			"learner_id": id,
			"algorithm":  alg.String(),
		}),
		reporter: s.reporter,
	}
	c.logger.WithField("alphabet_size", alphabet.Size()).Debug("Learner created")
	return c, nil
}

// ID returns the learner's session identifier
func (c *core[M, I, D]) ID() string { return c.id }

// Algorithm returns the engine algorithm backing this learner
func (c *core[M, I, D]) Algorithm() engine.AlgorithmID { return c.algorithm }

// InputAlphabet returns the alphabet fixed at construction
func (c *core[M, I, D]) InputAlphabet() *words.Alphabet[I] { return c.alphabet }

// Disposed reports whether the handle has been released
func (c *core[M, I, D]) Disposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle == nil
}

func (c *core[M, I, D]) info() Info {
	return Info{LearnerID: c.id, Algorithm: c.algorithm.String()}
}

// checkLive must be called, with c.mu held, before any engine call
func (c *core[M, I, D]) checkLive(op string) error {
	if c.handle == nil {
		return alferr.Disposed(op)
	}
	return nil
}

// engineErr wraps an engine failure and tells the context if the engine went away
func (c *core[M, I, D]) engineErr(op string, err error) error {
	if errors.Is(err, engine.ErrConnectionLost) {
		c.engineCtx.MarkLost(err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// advance asks the engine for a conjecture; ok is false when none is ready.
// c.mu must be held.
func (c *core[M, I, D]) advance() (model M, ok bool, err error) {
	if err = c.checkLive("advance"); err != nil {
		return model, false, err
	}
	cj, err := c.eng.Advance(c.handle)
	if err != nil {
		return model, false, c.engineErr("advance", err)
	}
	if cj == nil {
		return model, false, nil
	}
	model, err = c.decode(cj, c.alphabet)
	if err != nil {
		return model, false, fmt.Errorf("decode conjecture: %w", err)
	}
	return model, true, nil
}

// Dispose releases the engine-side instance. Only the first call reaches the engine;
// the handle is cleared even if the engine reports an error.
func (c *core[M, I, D]) Dispose() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == nil {
		return nil
	}
	h := c.handle
	c.handle = nil
	if err := c.eng.Dispose(h); err != nil {
		c.logger.WithError(err).Warn("Engine failed to dispose learner")
		return c.engineErr("dispose", err)
	}
	c.logger.Debug("Learner disposed")
	return nil
}

// Close implements io.Closer by disposing the learner
func (c *core[M, I, D]) Close() error {
	return c.Dispose()
}
