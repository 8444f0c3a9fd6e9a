/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: codec_test.go
Description: Tests for the word, batch and sample wire codecs.
*/

package codec_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/alfbridge/pkg/alferr"
	"github.com/kleascm/alfbridge/pkg/codec"
	"github.com/kleascm/alfbridge/pkg/words"
)

var ab = words.MustAlphabet("a", "b")

func TestWordRoundTrip(t *testing.T) {
	for _, s := range []string{"", "a", "ab", "bbab", "aaaaaaaab"} {
		w := words.FromString(s)
		enc, err := codec.EncodeWord(w, ab)
		require.NoError(t, err)
		assert.Len(t, enc, w.Len())

		back, err := codec.DecodeWord(enc, ab)
		require.NoError(t, err)
		assert.True(t, w.Equal(back), "word %q", s)
	}
}

func TestEncodeWord(t *testing.T) {
	enc, err := codec.EncodeWord(words.FromString("aab"), ab)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1}, enc)

	_, err = codec.EncodeWord(words.FromString("ac"), ab)
	assert.ErrorIs(t, err, alferr.ErrUnknownSymbol)
}

func TestEncodePrefixed(t *testing.T) {
	store := make([]int, 6)
	ofs, err := codec.EncodePrefixed(words.FromString("ab"), ab, store, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, ofs)
	assert.Equal(t, []int{0, 2, 0, 1, 0, 0}, store)

	ofs, err = codec.EncodePrefixed(words.Epsilon[string](), ab, store, ofs)
	require.NoError(t, err)
	assert.Equal(t, 5, ofs)
	assert.Equal(t, 0, store[4])

	_, err = codec.EncodePrefixed(words.FromString("ab"), ab, store, 4)
	assert.Error(t, err)
}

func TestDecodeQueryBatchOrder(t *testing.T) {
	got, err := codec.DecodeQueryBatch([]int{2, 1, 0, 2, 0, 1}, ab)
	require.NoError(t, err)

	want := []words.Word[string]{words.FromString("a"), words.FromString("ab")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("batch mismatch (-want +got):\n%s", diff)
	}
}

func TestQueryBatchRoundTrip(t *testing.T) {
	batch := []words.Word[string]{
		words.Epsilon[string](),
		words.FromString("b"),
		words.FromString("abba"),
		words.FromString("a"),
	}
	enc, err := codec.EncodeQueryBatch(batch, ab)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 0, 1, 1, 4, 0, 1, 1, 0, 1, 0}, enc)

	got, err := codec.DecodeQueryBatch(enc, ab)
	require.NoError(t, err)
	if diff := cmp.Diff(batch, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeQueryBatchEmptyBatch(t *testing.T) {
	got, err := codec.DecodeQueryBatch([]int{0}, ab)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeQueryBatchMalformed(t *testing.T) {
	tests := []struct {
		name string
		enc  []int
	}{
		{"empty buffer", nil},
		{"negative count", []int{-1}},
		{"count exceeds buffer", []int{3, 0}},
		{"truncated word", []int{1, 3, 0, 1}},
		{"negative length", []int{1, -2}},
		{"trailing values", []int{1, 1, 0, 7}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.DecodeQueryBatch(tt.enc, ab)
			assert.ErrorIs(t, err, alferr.ErrDecoding)
		})
	}

	_, err := codec.DecodeQueryBatch([]int{1, 1, 5}, ab)
	assert.ErrorIs(t, err, alferr.ErrUnknownSymbol)
}

func TestAcceptorOutputs(t *testing.T) {
	v, err := codec.EncodeAcceptor(true)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	v, err = codec.EncodeAcceptor(false)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	b, err := codec.DecodeAcceptor(1)
	require.NoError(t, err)
	assert.True(t, b)
	_, err = codec.DecodeAcceptor(2)
	assert.ErrorIs(t, err, alferr.ErrDecoding)
}

func TestEncodeAnswers(t *testing.T) {
	qs := []*words.Query[string, bool]{
		words.NewAnsweredQuery[string, bool](words.FromString("a"), true),
		words.NewAnsweredQuery[string, bool](words.FromString("ab"), false),
	}
	answers, err := codec.EncodeAnswers(qs, codec.EncodeAcceptor)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, answers)

	qs = append(qs, words.NewQuery[string, bool](words.FromString("b")))
	_, err = codec.EncodeAnswers(qs, codec.EncodeAcceptor)
	assert.Error(t, err)
}

func TestEncodeSamples(t *testing.T) {
	samples := []*words.Sample[string, bool]{
		words.NewAnsweredQuery[string, bool](words.FromString("a"), true),
		words.NewAnsweredQuery[string, bool](words.FromString("ba"), false),
	}
	inputs, outputs, err := codec.EncodeSamples(samples, ab, codec.EncodeAcceptor)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0, 2, 1, 0}, inputs)
	assert.Equal(t, []int{1, 0}, outputs)

	samples = append(samples, words.NewQuery[string, bool](words.FromString("b")))
	_, _, err = codec.EncodeSamples(samples, ab, codec.EncodeAcceptor)
	assert.Error(t, err)
}
