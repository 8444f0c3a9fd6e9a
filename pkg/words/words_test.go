/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: words_test.go
Description: Tests for alphabets, words and queries.
*/

package words_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/alfbridge/pkg/alferr"
	"github.com/kleascm/alfbridge/pkg/words"
)

func TestAlphabetIndexing(t *testing.T) {
	a, err := words.NewAlphabet("a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, 3, a.Size())

	for i, sym := range []string{"a", "b", "c"} {
		idx, err := a.Index(sym)
		require.NoError(t, err)
		assert.Equal(t, i, idx)

		got, err := a.Symbol(i)
		require.NoError(t, err)
		assert.Equal(t, sym, got)
	}

	assert.True(t, a.Contains("b"))
	assert.False(t, a.Contains("z"))
}

func TestAlphabetErrors(t *testing.T) {
	_, err := words.NewAlphabet("a", "a")
	assert.Error(t, err)
	assert.Panics(t, func() { words.MustAlphabet(1, 1) })

	a := words.MustAlphabet("a", "b")

	_, err = a.Index("x")
	assert.ErrorIs(t, err, alferr.ErrUnknownSymbol)

	_, err = a.Symbol(2)
	var symErr *alferr.UnknownSymbolError
	require.ErrorAs(t, err, &symErr)
	assert.Equal(t, 2, symErr.Index)
	assert.Equal(t, 2, symErr.Size)

	_, err = a.Symbol(-1)
	assert.ErrorIs(t, err, alferr.ErrUnknownSymbol)
}

func TestSymbolsIsACopy(t *testing.T) {
	a := words.MustAlphabet("a", "b")
	syms := a.Symbols()
	syms[0] = "z"
	assert.Equal(t, []string{"a", "b"}, a.Symbols())
}

func TestWord(t *testing.T) {
	w := words.FromString("ab")
	assert.Equal(t, 2, w.Len())
	assert.Equal(t, "a b", w.String())
	assert.Equal(t, "ε", words.Epsilon[string]().String())

	joined := w.Concat(words.FromString("b"))
	assert.True(t, joined.Equal(words.FromString("abb")))
	assert.Equal(t, 2, w.Len(), "concat must not modify the receiver")
	assert.False(t, w.Equal(words.FromString("ba")))
}

func TestQuery(t *testing.T) {
	q := words.NewQuery[string, bool](words.FromString("ab"))
	assert.False(t, q.Answered())
	_, ok := q.Output()
	assert.False(t, ok)

	q.Answer(true)
	out, ok := q.Output()
	assert.True(t, ok)
	assert.True(t, out)

	s := words.NewAnsweredQuery[string, bool](words.FromString("a"), false)
	assert.True(t, s.Answered())
}
