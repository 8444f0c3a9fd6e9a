/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: kinds.go
Description: Learner kinds for acceptors. Each kind fixes the output encoding (boolean
acceptance) and the conjecture decoder (DFA, NFA, or whichever the algorithm emits).
*/

package learner

import (
	"fmt"

	"github.com/kleascm/alfbridge/pkg/alferr"
	"github.com/kleascm/alfbridge/pkg/automaton"
	"github.com/kleascm/alfbridge/pkg/codec"
	"github.com/kleascm/alfbridge/pkg/engine"
	"github.com/kleascm/alfbridge/pkg/oracle"
	"github.com/kleascm/alfbridge/pkg/words"
)

// ActiveDFA learns deterministic acceptors from membership queries
type ActiveDFA[I comparable] = Active[*automaton.DFA[I], I, bool]

// ActiveNFA learns nondeterministic acceptors from membership queries
type ActiveNFA[I comparable] = Active[*automaton.NFA[I], I, bool]

// PassiveDFA learns deterministic acceptors from labeled samples
type PassiveDFA[I comparable] = Passive[*automaton.DFA[I], I, bool]

// PassiveNFA learns nondeterministic acceptors from labeled samples
type PassiveNFA[I comparable] = Passive[*automaton.NFA[I], I, bool]

// NewActiveDFA instantiates an active DFA algorithm
func NewActiveDFA[I comparable](alg engine.AlgorithmID, alphabet *words.Alphabet[I], mq oracle.MembershipOracle[I, bool], opts ...Option) (*ActiveDFA[I], error) {
	return NewActive(alg, alphabet, mq, codec.EncodeAcceptor, automaton.DecodeDFA[I], opts...)
}

// NewActiveNFA instantiates an active NFA algorithm
func NewActiveNFA[I comparable](alg engine.AlgorithmID, alphabet *words.Alphabet[I], mq oracle.MembershipOracle[I, bool], opts ...Option) (*ActiveNFA[I], error) {
	return NewActive(alg, alphabet, mq, codec.EncodeAcceptor, automaton.DecodeNFA[I], opts...)
}

// NewPassiveDFA instantiates a passive DFA algorithm
func NewPassiveDFA[I comparable](alg engine.AlgorithmID, alphabet *words.Alphabet[I], opts ...Option) (*PassiveDFA[I], error) {
	return NewPassive(alg, alphabet, codec.EncodeAcceptor, automaton.DecodeDFA[I], opts...)
}

// NewPassiveNFA instantiates a passive NFA algorithm
func NewPassiveNFA[I comparable](alg engine.AlgorithmID, alphabet *words.Alphabet[I], opts ...Option) (*PassiveNFA[I], error) {
	return NewPassive(alg, alphabet, codec.EncodeAcceptor, automaton.DecodeNFA[I], opts...)
}

// AcceptorDecoder returns a decoder producing the automaton kind alg conjectures
func AcceptorDecoder[I comparable](alg engine.AlgorithmID) (ConjectureDecoder[automaton.Acceptor[I], I], error) {
	switch alg.ModelKind() {
	case engine.KindDFA:
		return func(cj []byte, a *words.Alphabet[I]) (automaton.Acceptor[I], error) {
			return automaton.DecodeDFA(cj, a)
		}, nil
	case engine.KindNFA:
		return func(cj []byte, a *words.Alphabet[I]) (automaton.Acceptor[I], error) {
			return automaton.DecodeNFA(cj, a)
		}, nil
	default:
		return nil, fmt.Errorf("algorithm %s produces %q models, which have no acceptor decoder", alg, alg.ModelKind())
	}
}

// NewActiveAcceptor instantiates any active acceptor algorithm, picking the decoder
// from the algorithm's model kind
func NewActiveAcceptor[I comparable](alg engine.AlgorithmID, alphabet *words.Alphabet[I], mq oracle.MembershipOracle[I, bool], opts ...Option) (*Active[automaton.Acceptor[I], I, bool], error) {
	dec, err := AcceptorDecoder[I](alg)
	if err != nil {
		return nil, &alferr.LearnerInitializationError{Algorithm: alg.String(), Cause: err}
	}
	return NewActive(alg, alphabet, mq, codec.EncodeAcceptor, dec, opts...)
}

// NewPassiveAcceptor instantiates any passive acceptor algorithm
func NewPassiveAcceptor[I comparable](alg engine.AlgorithmID, alphabet *words.Alphabet[I], opts ...Option) (*Passive[automaton.Acceptor[I], I, bool], error) {
	dec, err := AcceptorDecoder[I](alg)
	if err != nil {
		return nil, &alferr.LearnerInitializationError{Algorithm: alg.String(), Cause: err}
	}
	return NewPassive(alg, alphabet, codec.EncodeAcceptor, dec, opts...)
}
