/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine.go
Description: Boundary contract with the external inference engine. Every call is a
blocking round-trip; a nil conjecture from Advance means more data is needed, and a
nil handle from InstantiateAlgorithm means the engine refused to create the instance.
*/

package engine

import "errors"

// ErrConnectionLost signals that the engine itself went away (not a single handle).
// A Context treats it as engine loss.
var ErrConnectionLost = errors.New("engine connection lost")

// Handle is an opaque capability for one live algorithm instance
type Handle []byte

// BatchHandle identifies one pending query batch inside the engine
type BatchHandle []byte

// Engine is implemented by anything that can host learning algorithms
type Engine interface {
	// InstantiateAlgorithm creates an algorithm instance. A nil handle with a nil
	// error means the engine declined (bad alphabet size, unsupported options).
	InstantiateAlgorithm(alg AlgorithmID, alphabetSize int, opts []int) (Handle, error)

	// Advance attempts to produce a conjecture. nil means not ready yet.
	Advance(h Handle) ([]byte, error)

	// Dispose releases the engine-side instance
	Dispose(h Handle) error

	// FetchQueryBatch returns the batch of queries the instance is waiting on
	FetchQueryBatch(h Handle) (BatchHandle, error)

	// DecodeQueryBatch returns the batch as [count, len_1, idx..., ...]
	DecodeQueryBatch(b BatchHandle) ([]int, error)

	// SubmitBatchAnswers answers the batch positionally
	SubmitBatchAnswers(h Handle, b BatchHandle, answers []int) error

	// SubmitCounterexample feeds an unprefixed counterexample word
	SubmitCounterexample(h Handle, word []int) error

	// SubmitSamples feeds count labeled samples: length-prefixed inputs and
	// one output per sample. false means the engine rejected the batch.
	SubmitSamples(h Handle, count int, inputs, outputs []int) (bool, error)
}

// Closer is implemented by engines that hold process resources (connections)
type Closer interface {
	Close() error
}
