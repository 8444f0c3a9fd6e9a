/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: output.go
Description: Output encodings and batch answer/sample encoding. Each learner kind
plugs in an OutputEncoder; acceptors use true -> 1, false -> 0.
*/

package codec

import (
	"fmt"

	"github.com/kleascm/alfbridge/pkg/alferr"
	"github.com/kleascm/alfbridge/pkg/words"
)

// OutputEncoder maps an oracle output to its engine integer
type OutputEncoder[D any] func(D) (int, error)

// OutputDecoder maps an engine integer back to an output
type OutputDecoder[D any] func(int) (D, error)

// EncodeAcceptor encodes boolean acceptance
func EncodeAcceptor(out bool) (int, error) {
	if out {
		return 1, nil
	}
	return 0, nil
}

// DecodeAcceptor is the inverse of EncodeAcceptor
func DecodeAcceptor(v int) (bool, error) {
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, alferr.Decodingf("acceptor output %d is neither 0 nor 1", v)
	}
}

// EncodeAnswers encodes the outputs of answered queries in the order given.
// An unanswered query is an error; the engine relies on positional correspondence.
func EncodeAnswers[I comparable, D any](queries []*words.Query[I, D], enc OutputEncoder[D]) ([]int, error) {
	answers := make([]int, len(queries))
	for i, q := range queries {
		out, ok := q.Output()
		if !ok {
			return nil, fmt.Errorf("query %d (%s) was not answered by the oracle", i, q.Input)
		}
		v, err := enc(out)
		if err != nil {
			return nil, fmt.Errorf("query %d: %w", i, err)
		}
		answers[i] = v
	}
	return answers, nil
}

// EncodeSamples encodes labeled samples as one length-prefixed input buffer and a
// parallel output buffer. Position i of outputs belongs to the i-th prefixed word.
func EncodeSamples[I comparable, D any](samples []*words.Sample[I, D], alphabet *words.Alphabet[I], enc OutputEncoder[D]) (inputs, outputs []int, err error) {
	total := 0
	for _, s := range samples {
		total += 1 + len(s.Input)
	}

	inputs = make([]int, total)
	outputs = make([]int, len(samples))
	ofs := 0
	for i, s := range samples {
		if ofs, err = EncodePrefixed(s.Input, alphabet, inputs, ofs); err != nil {
			return nil, nil, fmt.Errorf("sample %d: %w", i, err)
		}
		out, ok := s.Output()
		if !ok {
			return nil, nil, fmt.Errorf("sample %d (%s) has no output", i, s.Input)
		}
		if outputs[i], err = enc(out); err != nil {
			return nil, nil, fmt.Errorf("sample %d: %w", i, err)
		}
	}
	return inputs, outputs, nil
}
