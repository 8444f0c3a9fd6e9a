/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: enginetest.go
Description: Scripted in-memory engine for tests. Advance results and query batches are
queued up front; every call is recorded so tests can assert exact call sequences,
positional answers, and encoded sample buffers.
*/

package enginetest

import (
	"fmt"
	"sync"

	"github.com/kleascm/alfbridge/pkg/engine"
)

// Op names a recorded engine call
type Op string

const (
	OpInstantiate    Op = "instantiate"
	OpAdvance        Op = "advance"
	OpDispose        Op = "dispose"
	OpFetchBatch     Op = "fetch_batch"
	OpDecodeBatch    Op = "decode_batch"
	OpSubmitAnswers  Op = "submit_answers"
	OpCounterexample Op = "counterexample"
	OpSubmitSamples  Op = "submit_samples"
)

// Instantiation records one InstantiateAlgorithm call
type Instantiation struct {
	Algorithm    engine.AlgorithmID
	AlphabetSize int
	Options      []int
}

// Answer records one SubmitBatchAnswers call
type Answer struct {
	Batch  string
	Values []int
}

// SampleBatch records one SubmitSamples call
type SampleBatch struct {
	Count   int
	Inputs  []int
	Outputs []int
}

// Engine is a scripted engine.Engine
type Engine struct {
	mu sync.Mutex

	advance    [][]byte
	lastResult []byte
	batches    [][]int
	lastBatch  []int
	issued     map[string][]int
	live       map[string]bool
	nextID     int

	// Refuse makes InstantiateAlgorithm return a nil handle
	Refuse bool
	// RejectSamples makes SubmitSamples return false
	RejectSamples bool
	// Errors injects a failure for the given operation
	Errors map[Op]error

	Calls           []Op
	Instantiations  []Instantiation
	Answers         []Answer
	Counterexamples [][]int
	Samples         []SampleBatch
	Disposed        []engine.Handle
	Closed          bool
}

// New returns an empty scripted engine
func New() *Engine {
	return &Engine{
		issued: make(map[string][]int),
		live:   make(map[string]bool),
		Errors: make(map[Op]error),
	}
}

// Loader returns an engine.Loader that always yields e
func (e *Engine) Loader() engine.Loader {
	return func() (engine.Engine, error) { return e, nil }
}

// QueueAdvance appends Advance results; nil means "not ready". Once the queue is
// drained, Advance keeps returning the last result.
func (e *Engine) QueueAdvance(results ...[]byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.advance = append(e.advance, results...)
}

// QueueBatch appends encoded query batches; once drained the last batch repeats
func (e *Engine) QueueBatch(encoded ...[]int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.batches = append(e.batches, encoded...)
}

// Count returns how many times op was called
func (e *Engine) Count(op Op) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, c := range e.Calls {
		if c == op {
			n++
		}
	}
	return n
}

// Live reports whether h is a live handle
func (e *Engine) Live(h engine.Handle) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.live[string(h)]
}

func (e *Engine) record(op Op) error {
	e.Calls = append(e.Calls, op)
	return e.Errors[op]
}

func (e *Engine) checkHandle(h engine.Handle) error {
	if !e.live[string(h)] {
		return fmt.Errorf("unknown or disposed handle %q", h)
	}
	return nil
}

func (e *Engine) InstantiateAlgorithm(alg engine.AlgorithmID, alphabetSize int, opts []int) (engine.Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.record(OpInstantiate); err != nil {
		return nil, err
	}
	e.Instantiations = append(e.Instantiations, Instantiation{alg, alphabetSize, append([]int(nil), opts...)})
	if e.Refuse || alphabetSize <= 0 {
		return nil, nil
	}
	e.nextID++
	h := engine.Handle(fmt.Sprintf("alg-%d", e.nextID))
	e.live[string(h)] = true
	return h, nil
}

func (e *Engine) Advance(h engine.Handle) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.record(OpAdvance); err != nil {
		return nil, err
	}
	if err := e.checkHandle(h); err != nil {
		return nil, err
	}
	if len(e.advance) > 0 {
		e.lastResult = e.advance[0]
		e.advance = e.advance[1:]
	}
	return e.lastResult, nil
}

func (e *Engine) Dispose(h engine.Handle) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.record(OpDispose); err != nil {
		return err
	}
	if err := e.checkHandle(h); err != nil {
		return err
	}
	delete(e.live, string(h))
	e.Disposed = append(e.Disposed, h)
	return nil
}

func (e *Engine) FetchQueryBatch(h engine.Handle) (engine.BatchHandle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.record(OpFetchBatch); err != nil {
		return nil, err
	}
	if err := e.checkHandle(h); err != nil {
		return nil, err
	}
	if len(e.batches) > 0 {
		e.lastBatch = e.batches[0]
		e.batches = e.batches[1:]
	}
	if e.lastBatch == nil {
		return nil, fmt.Errorf("no query batch scripted")
	}
	e.nextID++
	b := fmt.Sprintf("batch-%d", e.nextID)
	e.issued[b] = e.lastBatch
	return engine.BatchHandle(b), nil
}

func (e *Engine) DecodeQueryBatch(b engine.BatchHandle) ([]int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.record(OpDecodeBatch); err != nil {
		return nil, err
	}
	enc, ok := e.issued[string(b)]
	if !ok {
		return nil, fmt.Errorf("unknown batch %q", b)
	}
	return append([]int(nil), enc...), nil
}

func (e *Engine) SubmitBatchAnswers(h engine.Handle, b engine.BatchHandle, answers []int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.record(OpSubmitAnswers); err != nil {
		return err
	}
	if err := e.checkHandle(h); err != nil {
		return err
	}
	if _, ok := e.issued[string(b)]; !ok {
		return fmt.Errorf("unknown batch %q", b)
	}
	delete(e.issued, string(b))
	e.Answers = append(e.Answers, Answer{Batch: string(b), Values: append([]int(nil), answers...)})
	return nil
}

func (e *Engine) SubmitCounterexample(h engine.Handle, word []int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.record(OpCounterexample); err != nil {
		return err
	}
	if err := e.checkHandle(h); err != nil {
		return err
	}
	e.Counterexamples = append(e.Counterexamples, append([]int(nil), word...))
	return nil
}

func (e *Engine) SubmitSamples(h engine.Handle, count int, inputs, outputs []int) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.record(OpSubmitSamples); err != nil {
		return false, err
	}
	if err := e.checkHandle(h); err != nil {
		return false, err
	}
	if e.RejectSamples {
		return false, nil
	}
	e.Samples = append(e.Samples, SampleBatch{
		Count:   count,
		Inputs:  append([]int(nil), inputs...),
		Outputs: append([]int(nil), outputs...),
	})
	return true, nil
}

// Close marks the engine as closed
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Closed = true
	return nil
}
