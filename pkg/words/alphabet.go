/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: alphabet.go
Description: Input alphabets for automata learning. An alphabet is an ordered,
duplicate-free set of symbols with a stable bijection between symbols and zero-based
indices. The size is fixed at construction and never changes.
*/

package words

import (
	"fmt"

	"github.com/kleascm/alfbridge/pkg/alferr"
)

// Alphabet is an ordered, immutable set of input symbols
type Alphabet[I comparable] struct {
	symbols []I
	index   map[I]int
}

// NewAlphabet creates an alphabet from the given symbols in order.
// Duplicate symbols are rejected.
func NewAlphabet[I comparable](symbols ...I) (*Alphabet[I], error) {
	a := &Alphabet[I]{
		symbols: make([]I, 0, len(symbols)),
		index:   make(map[I]int, len(symbols)),
	}
	for _, sym := range symbols {
		if _, exists := a.index[sym]; exists {
			return nil, fmt.Errorf("duplicate alphabet symbol %v", sym)
		}
		a.index[sym] = len(a.symbols)
		a.symbols = append(a.symbols, sym)
	}
	return a, nil
}

// MustAlphabet is like NewAlphabet but panics on duplicates
func MustAlphabet[I comparable](symbols ...I) *Alphabet[I] {
	a, err := NewAlphabet(symbols...)
	if err != nil {
		panic(err)
	}
	return a
}

// Size returns the number of symbols
func (a *Alphabet[I]) Size() int {
	return len(a.symbols)
}

// Index returns the zero-based index of a symbol
func (a *Alphabet[I]) Index(sym I) (int, error) {
	idx, ok := a.index[sym]
	if !ok {
		return -1, &alferr.UnknownSymbolError{Index: -1, Size: len(a.symbols), Symbol: sym}
	}
	return idx, nil
}

// Symbol returns the symbol at the given index
func (a *Alphabet[I]) Symbol(idx int) (I, error) {
	if idx < 0 || idx >= len(a.symbols) {
		var zero I
		return zero, &alferr.UnknownSymbolError{Index: idx, Size: len(a.symbols)}
	}
	return a.symbols[idx], nil
}

// Contains reports whether sym belongs to the alphabet
func (a *Alphabet[I]) Contains(sym I) bool {
	_, ok := a.index[sym]
	return ok
}

// Symbols returns a copy of the symbols in index order
func (a *Alphabet[I]) Symbols() []I {
	out := make([]I, len(a.symbols))
	copy(out, a.symbols)
	return out
}
