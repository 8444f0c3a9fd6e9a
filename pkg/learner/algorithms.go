/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: algorithms.go
Description: Thin per-algorithm constructors.
*/

package learner

import (
	"github.com/kleascm/alfbridge/pkg/engine"
	"github.com/kleascm/alfbridge/pkg/oracle"
	"github.com/kleascm/alfbridge/pkg/words"
)

// NewAngluinSimpleDFA creates an L* learner
func NewAngluinSimpleDFA[I comparable](alphabet *words.Alphabet[I], mq oracle.MembershipOracle[I, bool], opts ...Option) (*ActiveDFA[I], error) {
	return NewActiveDFA(engine.AngluinSimpleDFA, alphabet, mq, opts...)
}

// NewAngluinColDFA creates an L* learner that adds counterexample suffixes as columns
func NewAngluinColDFA[I comparable](alphabet *words.Alphabet[I], mq oracle.MembershipOracle[I, bool], opts ...Option) (*ActiveDFA[I], error) {
	return NewActiveDFA(engine.AngluinColDFA, alphabet, mq, opts...)
}

// NewRivestSchapireDFA creates a Rivest-Schapire learner
func NewRivestSchapireDFA[I comparable](alphabet *words.Alphabet[I], mq oracle.MembershipOracle[I, bool], opts ...Option) (*ActiveDFA[I], error) {
	return NewActiveDFA(engine.RivestSchapireDFA, alphabet, mq, opts...)
}

// NewKearnsVaziraniDFA creates a Kearns-Vazirani learner
func NewKearnsVaziraniDFA[I comparable](alphabet *words.Alphabet[I], mq oracle.MembershipOracle[I, bool], opts ...Option) (*ActiveDFA[I], error) {
	return NewActiveDFA(engine.KearnsVaziraniDFA, alphabet, mq, opts...)
}

// NewNLStar creates an NL* learner
func NewNLStar[I comparable](alphabet *words.Alphabet[I], mq oracle.MembershipOracle[I, bool], opts ...Option) (*ActiveNFA[I], error) {
	return NewActiveNFA(engine.NLStar, alphabet, mq, opts...)
}

// NewRPNI creates an RPNI learner
func NewRPNI[I comparable](alphabet *words.Alphabet[I], opts ...Option) (*PassiveDFA[I], error) {
	return NewPassiveDFA(engine.RPNI, alphabet, opts...)
}

// NewDelete2 creates a DeLeTe2 learner
func NewDelete2[I comparable](alphabet *words.Alphabet[I], opts ...Option) (*PassiveNFA[I], error) {
	return NewPassiveNFA(engine.Delete2, alphabet, opts...)
}

// NewBiermannDFA creates a Biermann learner
func NewBiermannDFA[I comparable](alphabet *words.Alphabet[I], opts ...Option) (*PassiveDFA[I], error) {
	return NewPassiveDFA(engine.BiermannOriginalDFA, alphabet, opts...)
}

// NewBiermannMiniSAT creates a SAT-based Biermann learner
func NewBiermannMiniSAT[I comparable](alphabet *words.Alphabet[I], opts ...Option) (*PassiveDFA[I], error) {
	return NewPassiveDFA(engine.BiermannMiniSAT, alphabet, opts...)
}
