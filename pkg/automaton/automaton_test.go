/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: automaton_test.go
Description: Tests for acceptors and the compact automaton format.
*/

package automaton_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/alfbridge/pkg/alferr"
	"github.com/kleascm/alfbridge/pkg/automaton"
	"github.com/kleascm/alfbridge/pkg/words"
)

var ab = words.MustAlphabet("a", "b")

// endsInB accepts words over {a,b} whose last symbol is b
func endsInB(t *testing.T) *automaton.DFA[string] {
	t.Helper()
	d := automaton.NewDFA(ab, 2)
	require.NoError(t, d.SetAccepting(1, true))
	for _, s := range []int{0, 1} {
		require.NoError(t, d.SetTransition(s, "a", 0))
		require.NoError(t, d.SetTransition(s, "b", 1))
	}
	return d
}

// containsAB accepts words containing the factor "ab", nondeterministically
func containsAB(t *testing.T) *automaton.NFA[string] {
	t.Helper()
	n := automaton.NewNFA(ab, 3)
	require.NoError(t, n.AddInitial(0))
	require.NoError(t, n.SetAccepting(2, true))
	require.NoError(t, n.AddTransition(0, "a", 0))
	require.NoError(t, n.AddTransition(0, "b", 0))
	require.NoError(t, n.AddTransition(0, "a", 1))
	require.NoError(t, n.AddTransition(1, "b", 2))
	require.NoError(t, n.AddTransition(2, "a", 2))
	require.NoError(t, n.AddTransition(2, "b", 2))
	return n
}

func TestDFAAccepts(t *testing.T) {
	d := endsInB(t)
	assert.False(t, d.Accepts(words.Epsilon[string]()))
	assert.True(t, d.Accepts(words.FromString("ab")))
	assert.True(t, d.Accepts(words.FromString("bbb")))
	assert.False(t, d.Accepts(words.FromString("ba")))
	assert.False(t, d.Accepts(words.FromString("ac")), "unknown symbols reject")
}

func TestPartialDFARejectsOnUndefined(t *testing.T) {
	d := automaton.NewDFA(ab, 2)
	require.NoError(t, d.SetAccepting(1, true))
	require.NoError(t, d.SetTransition(0, "a", 1))

	assert.True(t, d.Accepts(words.FromString("a")))
	assert.False(t, d.Accepts(words.FromString("b")))
	assert.False(t, d.Accepts(words.FromString("aa")))
}

func TestDFAValidation(t *testing.T) {
	d := automaton.NewDFA(ab, 2)
	assert.Error(t, d.SetInitial(2))
	assert.Error(t, d.SetAccepting(-1, true))
	assert.Error(t, d.SetTransition(0, "a", 5))
	assert.ErrorIs(t, d.SetTransition(0, "c", 1), alferr.ErrUnknownSymbol)
}

func TestNFAAccepts(t *testing.T) {
	n := containsAB(t)
	assert.True(t, n.Accepts(words.FromString("ab")))
	assert.True(t, n.Accepts(words.FromString("bbaba")))
	assert.False(t, n.Accepts(words.FromString("bbaa")))
	assert.False(t, n.Accepts(words.Epsilon[string]()))
}

func TestDFARoundTrip(t *testing.T) {
	d := endsInB(t)
	require.NoError(t, d.SetInitial(1))

	back, err := automaton.DecodeDFA(automaton.EncodeDFA(d), ab)
	require.NoError(t, err)
	assert.Equal(t, d.Size(), back.Size())
	assert.Equal(t, 1, back.Initial())
	for _, w := range []string{"", "a", "b", "ab", "ba", "abab"} {
		assert.Equal(t, d.Accepts(words.FromString(w)), back.Accepts(words.FromString(w)), "word %q", w)
	}
}

func TestNFARoundTrip(t *testing.T) {
	n := containsAB(t)
	back, err := automaton.DecodeNFA(automaton.EncodeNFA(n), ab)
	require.NoError(t, err)
	assert.Equal(t, []int{0}, back.InitialStates())
	for _, w := range []string{"", "a", "ab", "ba", "bab", "aaab"} {
		assert.Equal(t, n.Accepts(words.FromString(w)), back.Accepts(words.FromString(w)), "word %q", w)
	}
}

func TestEncodeAndDecodeDispatch(t *testing.T) {
	data, err := automaton.Encode[string](endsInB(t))
	require.NoError(t, err)
	acc, err := automaton.Decode(data, ab)
	require.NoError(t, err)
	assert.IsType(t, &automaton.DFA[string]{}, acc)

	data, err = automaton.Encode[string](containsAB(t))
	require.NoError(t, err)
	acc, err = automaton.Decode(data, ab)
	require.NoError(t, err)
	assert.IsType(t, &automaton.NFA[string]{}, acc)

	_, err = automaton.Decode([]byte("ALF"), ab)
	assert.ErrorIs(t, err, alferr.ErrDecoding)
}

func TestDecodeMalformed(t *testing.T) {
	good := automaton.EncodeDFA(endsInB(t))

	corrupt := func(mutate func([]byte) []byte) []byte {
		return mutate(append([]byte(nil), good...))
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"bad magic", corrupt(func(b []byte) []byte { b[0] = 'X'; return b })},
		{"bad version", corrupt(func(b []byte) []byte { b[4] = 9; return b })},
		{"nfa kind", corrupt(func(b []byte) []byte { b[5] = 1; return b })},
		{"alphabet mismatch", corrupt(func(b []byte) []byte { b[9] = 3; return b })},
		{"zero states", corrupt(func(b []byte) []byte { b[13] = 0; return b })},
		{"truncated", good[:len(good)-2]},
		{"trailing bytes", append(append([]byte(nil), good...), 0)},
		{"initial out of range", corrupt(func(b []byte) []byte { b[17] = 7; return b })},
		{"accepting flag not boolean", corrupt(func(b []byte) []byte { b[18] = 2; return b })},
		{"target out of range", corrupt(func(b []byte) []byte { b[len(b)-1] = 9; return b })},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := automaton.DecodeDFA(tt.data, ab)
			assert.ErrorIs(t, err, alferr.ErrDecoding)
		})
	}
}

func TestDecodeNFAMalformed(t *testing.T) {
	good := automaton.EncodeNFA(containsAB(t))

	_, err := automaton.DecodeNFA(good[:len(good)-1], ab)
	assert.ErrorIs(t, err, alferr.ErrDecoding)

	_, err = automaton.DecodeNFA(append(append([]byte(nil), good...), 0, 0), ab)
	assert.ErrorIs(t, err, alferr.ErrDecoding)

	_, err = automaton.DecodeNFA(good, words.MustAlphabet("a"))
	assert.ErrorIs(t, err, alferr.ErrDecoding)
}
