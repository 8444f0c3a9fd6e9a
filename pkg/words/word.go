/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: word.go
Description: Words over an alphabet and the query/sample pairs exchanged with
membership oracles and passive learners.
*/

package words

import (
	"fmt"
	"strings"
)

// Word is a finite sequence of input symbols
type Word[I comparable] []I

// Epsilon returns the empty word
func Epsilon[I comparable]() Word[I] {
	return Word[I]{}
}

// Len returns the number of symbols in the word
func (w Word[I]) Len() int {
	return len(w)
}

// Concat returns a new word w·other
func (w Word[I]) Concat(other Word[I]) Word[I] {
	out := make(Word[I], 0, len(w)+len(other))
	out = append(out, w...)
	return append(out, other...)
}

// Equal reports symbol-wise equality
func (w Word[I]) Equal(other Word[I]) bool {
	if len(w) != len(other) {
		return false
	}
	for i := range w {
		if w[i] != other[i] {
			return false
		}
	}
	return true
}

func (w Word[I]) String() string {
	if len(w) == 0 {
		return "ε"
	}
	parts := make([]string, len(w))
	for i, sym := range w {
		parts[i] = fmt.Sprint(sym)
	}
	return strings.Join(parts, " ")
}

// FromString splits s into a word of single-rune string symbols
func FromString(s string) Word[string] {
	w := make(Word[string], 0, len(s))
	for _, r := range s {
		w = append(w, string(r))
	}
	return w
}
