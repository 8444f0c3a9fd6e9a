/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: automaton.go
Description: Finite acceptors produced by decoding engine conjectures. DFA and NFA are
dense, index-based automata over a words.Alphabet; both implement Acceptor so they can
serve as hypotheses, simulators, or equivalence targets.
*/

package automaton

import (
	"fmt"

	"github.com/kleascm/alfbridge/pkg/words"
)

// Undefined marks a missing DFA transition
const Undefined = -1

// Acceptor is a finite automaton that classifies words
type Acceptor[I comparable] interface {
	Accepts(w words.Word[I]) bool
	InputAlphabet() *words.Alphabet[I]
	Size() int
}

// DFA is a deterministic, possibly partial, finite acceptor
type DFA[I comparable] struct {
	alphabet  *words.Alphabet[I]
	initial   int
	accepting []bool
	succ      []int
}

// NewDFA creates a DFA with numStates states, initial state 0 and no transitions
func NewDFA[I comparable](alphabet *words.Alphabet[I], numStates int) *DFA[I] {
	succ := make([]int, numStates*alphabet.Size())
	for i := range succ {
		succ[i] = Undefined
	}
	return &DFA[I]{
		alphabet:  alphabet,
		accepting: make([]bool, numStates),
		succ:      succ,
	}
}

func (d *DFA[I]) InputAlphabet() *words.Alphabet[I] { return d.alphabet }

func (d *DFA[I]) Size() int { return len(d.accepting) }

// Initial returns the initial state
func (d *DFA[I]) Initial() int { return d.initial }

// SetInitial sets the initial state
func (d *DFA[I]) SetInitial(state int) error {
	if err := d.checkState(state); err != nil {
		return err
	}
	d.initial = state
	return nil
}

// IsAccepting reports whether state is accepting
func (d *DFA[I]) IsAccepting(state int) bool { return d.accepting[state] }

// SetAccepting marks state as accepting or rejecting
func (d *DFA[I]) SetAccepting(state int, accepting bool) error {
	if err := d.checkState(state); err != nil {
		return err
	}
	d.accepting[state] = accepting
	return nil
}

// SetTransition sets the successor of state on sym
func (d *DFA[I]) SetTransition(state int, sym I, target int) error {
	idx, err := d.alphabet.Index(sym)
	if err != nil {
		return err
	}
	if err := d.checkState(state); err != nil {
		return err
	}
	if target != Undefined {
		if err := d.checkState(target); err != nil {
			return err
		}
	}
	d.succ[state*d.alphabet.Size()+idx] = target
	return nil
}

// Successor returns the successor of state on the symbol with index idx
func (d *DFA[I]) Successor(state, idx int) int {
	return d.succ[state*d.alphabet.Size()+idx]
}

// Accepts runs w from the initial state. Undefined transitions reject.
func (d *DFA[I]) Accepts(w words.Word[I]) bool {
	state := d.initial
	for _, sym := range w {
		idx, err := d.alphabet.Index(sym)
		if err != nil {
			return false
		}
		state = d.Successor(state, idx)
		if state == Undefined {
			return false
		}
	}
	return d.accepting[state]
}

func (d *DFA[I]) checkState(state int) error {
	if state < 0 || state >= len(d.accepting) {
		return fmt.Errorf("state %d out of range [0, %d)", state, len(d.accepting))
	}
	return nil
}

// NFA is a nondeterministic finite acceptor without epsilon transitions
type NFA[I comparable] struct {
	alphabet  *words.Alphabet[I]
	initial   []int
	accepting []bool
	succ      [][]int
}

// NewNFA creates an NFA with numStates states and no initial states
func NewNFA[I comparable](alphabet *words.Alphabet[I], numStates int) *NFA[I] {
	return &NFA[I]{
		alphabet:  alphabet,
		accepting: make([]bool, numStates),
		succ:      make([][]int, numStates*alphabet.Size()),
	}
}

func (n *NFA[I]) InputAlphabet() *words.Alphabet[I] { return n.alphabet }

func (n *NFA[I]) Size() int { return len(n.accepting) }

// InitialStates returns the initial states
func (n *NFA[I]) InitialStates() []int { return append([]int(nil), n.initial...) }

// AddInitial marks state as initial
func (n *NFA[I]) AddInitial(state int) error {
	if err := n.checkState(state); err != nil {
		return err
	}
	n.initial = append(n.initial, state)
	return nil
}

// IsAccepting reports whether state is accepting
func (n *NFA[I]) IsAccepting(state int) bool { return n.accepting[state] }

// SetAccepting marks state as accepting or rejecting
func (n *NFA[I]) SetAccepting(state int, accepting bool) error {
	if err := n.checkState(state); err != nil {
		return err
	}
	n.accepting[state] = accepting
	return nil
}

// AddTransition adds target to the successors of state on sym
func (n *NFA[I]) AddTransition(state int, sym I, target int) error {
	idx, err := n.alphabet.Index(sym)
	if err != nil {
		return err
	}
	if err := n.checkState(state); err != nil {
		return err
	}
	if err := n.checkState(target); err != nil {
		return err
	}
	k := state*n.alphabet.Size() + idx
	n.succ[k] = append(n.succ[k], target)
	return nil
}

// Successors returns the successors of state on the symbol with index idx
func (n *NFA[I]) Successors(state, idx int) []int {
	return n.succ[state*n.alphabet.Size()+idx]
}

// Accepts simulates the subset construction on the fly
func (n *NFA[I]) Accepts(w words.Word[I]) bool {
	current := make(map[int]struct{}, len(n.initial))
	for _, s := range n.initial {
		current[s] = struct{}{}
	}
	for _, sym := range w {
		idx, err := n.alphabet.Index(sym)
		if err != nil {
			return false
		}
		next := make(map[int]struct{})
		for s := range current {
			for _, t := range n.Successors(s, idx) {
				next[t] = struct{}{}
			}
		}
		if len(next) == 0 {
			return false
		}
		current = next
	}
	for s := range current {
		if n.accepting[s] {
			return true
		}
	}
	return false
}

func (n *NFA[I]) checkState(state int) error {
	if state < 0 || state >= len(n.accepting) {
		return fmt.Errorf("state %d out of range [0, %d)", state, len(n.accepting))
	}
	return nil
}
