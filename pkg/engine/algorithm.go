/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: algorithm.go
Description: Catalogue of the learning algorithms an engine can host. The numeric value
of each AlgorithmID is the ordinal the engine expects on the wire.
*/

package engine

import (
	"fmt"
	"strings"
)

// AlgorithmID identifies an engine-side learning algorithm
type AlgorithmID int

const (
	// active ("online") algorithms
	AngluinSimpleDFA AlgorithmID = iota
	AngluinColDFA
	RivestSchapireDFA
	KearnsVaziraniDFA
	NLStar
	MVCAAngluinLike

	// passive ("offline") algorithms
	RPNI
	Delete2
	BiermannOriginalDFA
	BiermannMiniSAT
)

// Mode distinguishes query-driven from sample-driven algorithms
type Mode string

const (
	ModeActive  Mode = "active"
	ModePassive Mode = "passive"
)

// ModelKind is the automaton type an algorithm conjectures
type ModelKind string

const (
	KindDFA ModelKind = "dfa"
	KindNFA ModelKind = "nfa"
	KindVCA ModelKind = "vca"
)

type algorithmInfo struct {
	name        string
	mode        Mode
	kind        ModelKind
	description string
}

var algorithms = map[AlgorithmID]algorithmInfo{
	AngluinSimpleDFA:    {"angluin-simple-dfa", ModeActive, KindDFA, "Angluin's L* with row-based counterexample handling"},
	AngluinColDFA:       {"angluin-col-dfa", ModeActive, KindDFA, "L* adding all suffixes of a counterexample as columns"},
	RivestSchapireDFA:   {"rivest-schapire-dfa", ModeActive, KindDFA, "L* with Rivest-Schapire counterexample decomposition"},
	KearnsVaziraniDFA:   {"kearns-vazirani-dfa", ModeActive, KindDFA, "Kearns-Vazirani discrimination tree learner"},
	NLStar:              {"nlstar", ModeActive, KindNFA, "NL*, learns residual finite-state automata"},
	MVCAAngluinLike:     {"mvca-angluin", ModeActive, KindVCA, "Angluin-style learner for visibly one-counter automata"},
	RPNI:                {"rpni", ModePassive, KindDFA, "Regular positive and negative inference by state merging"},
	Delete2:             {"delete2", ModePassive, KindNFA, "DeLeTe2 residual automaton inference"},
	BiermannOriginalDFA: {"biermann-original", ModePassive, KindDFA, "Biermann's minimal consistent DFA search"},
	BiermannMiniSAT:     {"biermann-minisat", ModePassive, KindDFA, "Biermann's method encoded for a SAT solver"},
}

// Algorithms returns every known algorithm in ordinal order
func Algorithms() []AlgorithmID {
	out := make([]AlgorithmID, 0, len(algorithms))
	for id := AngluinSimpleDFA; id <= BiermannMiniSAT; id++ {
		out = append(out, id)
	}
	return out
}

func (a AlgorithmID) String() string {
	if info, ok := algorithms[a]; ok {
		return info.name
	}
	return fmt.Sprintf("algorithm(%d)", int(a))
}

// Mode returns whether the algorithm is active or passive
func (a AlgorithmID) Mode() Mode {
	return algorithms[a].mode
}

// ModelKind returns the automaton type the algorithm produces
func (a AlgorithmID) ModelKind() ModelKind {
	return algorithms[a].kind
}

// Description returns a one-line summary
func (a AlgorithmID) Description() string {
	return algorithms[a].description
}

// Valid reports whether the ID is part of the catalogue
func (a AlgorithmID) Valid() bool {
	_, ok := algorithms[a]
	return ok
}

// ParseAlgorithm resolves an algorithm by its name (case-insensitive)
func ParseAlgorithm(name string) (AlgorithmID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for id, info := range algorithms {
		if info.name == name {
			return id, nil
		}
	}
	return -1, fmt.Errorf("unknown algorithm %q", name)
}
