/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: samples_test.go
Description: Tests for the sample file loader.
*/

package samples_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/alfbridge/pkg/samples"
	"github.com/kleascm/alfbridge/pkg/words"
)

func TestDecodeYAML(t *testing.T) {
	set, err := samples.Decode(strings.NewReader(`
alphabet: [a, b]
samples:
  - word: [a]
    accept: true
  - word: [b, a]
    accept: false
  - word: []
    accept: true
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, set.Alphabet.Symbols())
	require.Len(t, set.Samples, 3)

	out, ok := set.Samples[1].Output()
	require.True(t, ok)
	assert.False(t, out)
	assert.True(t, set.Samples[1].Input.Equal(words.Word[string]{"b", "a"}))
	assert.Equal(t, 0, set.Samples[2].Input.Len())
}

func TestDecodeJSONInfersAlphabet(t *testing.T) {
	set, err := samples.Decode(strings.NewReader(
		`{"samples": [{"word": ["x", "y"], "accept": true}, {"word": ["z", "x"], "accept": false}]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, set.Alphabet.Symbols())
}

func TestDecodeRejectsUnknownSymbol(t *testing.T) {
	_, err := samples.Decode(strings.NewReader(`
alphabet: [a]
samples:
  - word: [a, c]
    accept: true
`))
	assert.ErrorContains(t, err, `symbol "c"`)
}

func TestDecodeRejectsDuplicateAlphabet(t *testing.T) {
	_, err := samples.Decode(strings.NewReader(`alphabet: [a, a]`))
	assert.Error(t, err)
}

func TestEncodeLoadRoundTrip(t *testing.T) {
	alphabet := words.MustAlphabet("a", "b")
	set := &samples.Set{
		Alphabet: alphabet,
		Samples: []*words.Sample[string, bool]{
			words.NewAnsweredQuery[string, bool](words.FromString("ab"), true),
			words.NewAnsweredQuery[string, bool](words.FromString("b"), false),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, samples.Encode(&buf, set))

	path := filepath.Join(t.TempDir(), "samples.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	loaded, err := samples.Load(path)
	require.NoError(t, err)
	assert.Equal(t, alphabet.Symbols(), loaded.Alphabet.Symbols())
	require.Len(t, loaded.Samples, 2)
	for i := range set.Samples {
		assert.True(t, set.Samples[i].Input.Equal(loaded.Samples[i].Input))
		want, _ := set.Samples[i].Output()
		got, _ := loaded.Samples[i].Output()
		assert.Equal(t, want, got)
	}
}

func TestEncodeRejectsUnlabeled(t *testing.T) {
	set := &samples.Set{
		Alphabet: words.MustAlphabet("a"),
		Samples:  []*words.Sample[string, bool]{words.NewQuery[string, bool](words.FromString("a"))},
	}
	assert.Error(t, samples.Encode(&bytes.Buffer{}, set))
}
