/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: passive.go
Description: Passive learning accumulator. Labeled samples are encoded client-side and
pushed to the engine as one batch per call; the model is computed lazily and cached until
the next accepted batch of samples.
*/

package learner

import (
	"errors"
	"fmt"

	"github.com/kleascm/alfbridge/pkg/codec"
	"github.com/kleascm/alfbridge/pkg/engine"
	"github.com/kleascm/alfbridge/pkg/words"
	"github.com/sirupsen/logrus"
)

var (
	// ErrSamplesRejected is returned when the engine refuses a sample batch
	ErrSamplesRejected = errors.New("engine rejected samples")
	// ErrNoConjecture is returned when a passive engine yields no model
	ErrNoConjecture = errors.New("engine produced no conjecture")
)

// Passive is a sample-driven learner producing models of type M
type Passive[M any, I comparable, D any] struct {
	*core[M, I, D]

	model    M
	hasModel bool
	samples  int
}

// NewPassive instantiates a passive algorithm with the given output encoding and
// conjecture decoding strategies.
func NewPassive[M any, I comparable, D any](
	alg engine.AlgorithmID,
	alphabet *words.Alphabet[I],
	enc codec.OutputEncoder[D],
	dec ConjectureDecoder[M, I],
	opts ...Option,
) (*Passive[M, I, D], error) {
	c, err := newCore(alg, engine.ModePassive, alphabet, enc, dec, opts)
	if err != nil {
		return nil, err
	}
	return &Passive[M, I, D]{core: c}, nil
}

// SampleCount returns the number of samples accepted by the engine so far
func (p *Passive[M, I, D]) SampleCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.samples
}

// AddSamples encodes every sample and submits them in one engine call. An empty
// input makes no engine call and keeps the cached model. A failed submission leaves
// the cached model untouched.
func (p *Passive[M, I, D]) AddSamples(samples ...*words.Sample[I, D]) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.checkLive("add samples"); err != nil {
		return err
	}
	if len(samples) == 0 {
		return nil
	}

	inputs, outputs, err := codec.EncodeSamples(samples, p.alphabet, p.encodeOutput)
	if err != nil {
		return fmt.Errorf("encode samples: %w", err)
	}
	ok, err := p.eng.SubmitSamples(p.handle, len(samples), inputs, outputs)
	if err != nil {
		return p.engineErr("submit samples", err)
	}
	if !ok {
		return fmt.Errorf("submit %d samples: %w", len(samples), ErrSamplesRejected)
	}

	var zero M
	p.model, p.hasModel = zero, false
	p.samples += len(samples)

	p.logger.WithFields(logrus.Fields{
		"count": len(samples),
		"total": p.samples,
	}).Debug("Samples submitted")
	p.reporter.OnSamples(p.info(), len(samples))
	return nil
}

// ComputeModel returns the cached model, computing it with one engine advance if
// samples were added since the last call.
func (p *Passive[M, I, D]) ComputeModel() (M, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.checkLive("compute model"); err != nil {
		var zero M
		return zero, err
	}
	if p.hasModel {
		return p.model, nil
	}

	model, ok, err := p.advance()
	if err != nil {
		return model, err
	}
	if !ok {
		return model, ErrNoConjecture
	}
	p.model, p.hasModel = model, true
	p.logger.WithField("samples", p.samples).Info("Model computed")
	p.reporter.OnConjecture(p.info(), 0)
	return model, nil
}
