/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: codec.go
Description: Integer wire encoding for words exchanged with the inference engine.
A single word is a plain sequence of symbol indices; a word embedded in a batch is
length-prefixed as [len, idx_1, ..., idx_len]. Query batches arrive as
[count, len_1, idx..., len_2, idx..., ...]. The codec is pure and keeps no state.
*/

package codec

import (
	"fmt"

	"github.com/kleascm/alfbridge/pkg/alferr"
	"github.com/kleascm/alfbridge/pkg/words"
)

// EncodeWord maps every symbol of w to its alphabet index, without a length prefix.
// This is the form used for counterexamples.
func EncodeWord[I comparable](w words.Word[I], alphabet *words.Alphabet[I]) ([]int, error) {
	enc := make([]int, len(w))
	for i, sym := range w {
		idx, err := alphabet.Index(sym)
		if err != nil {
			return nil, err
		}
		enc[i] = idx
	}
	return enc, nil
}

// EncodePrefixed writes w as [len, idx...] into store starting at ofs and returns
// the offset just past the written data. store must have room for 1+len(w) values.
func EncodePrefixed[I comparable](w words.Word[I], alphabet *words.Alphabet[I], store []int, ofs int) (int, error) {
	if ofs < 0 || ofs+1+len(w) > len(store) {
		return ofs, fmt.Errorf("buffer too small: need %d values at offset %d, have %d", 1+len(w), ofs, len(store))
	}
	store[ofs] = len(w)
	ofs++
	for _, sym := range w {
		idx, err := alphabet.Index(sym)
		if err != nil {
			return ofs, err
		}
		store[ofs] = idx
		ofs++
	}
	return ofs, nil
}

// EncodedLength returns the buffer size needed to length-prefix every word
func EncodedLength[I comparable](ws []words.Word[I]) int {
	n := 0
	for _, w := range ws {
		n += 1 + len(w)
	}
	return n
}

// DecodeWord is the inverse of EncodeWord
func DecodeWord[I comparable](indices []int, alphabet *words.Alphabet[I]) (words.Word[I], error) {
	w := make(words.Word[I], len(indices))
	for i, idx := range indices {
		sym, err := alphabet.Symbol(idx)
		if err != nil {
			return nil, err
		}
		w[i] = sym
	}
	return w, nil
}

// DecodeQueryBatch decodes [count, len_1, idx..., ...] into words in wire order.
// The whole buffer must be consumed.
func DecodeQueryBatch[I comparable](enc []int, alphabet *words.Alphabet[I]) ([]words.Word[I], error) {
	if len(enc) == 0 {
		return nil, alferr.Decodingf("empty query batch")
	}
	p := 0
	count := enc[p]
	p++
	if count < 0 || count > len(enc)-1 {
		return nil, alferr.Decodingf("invalid query count %d for buffer of %d values", count, len(enc))
	}

	out := make([]words.Word[I], 0, count)
	for i := 0; i < count; i++ {
		if p >= len(enc) {
			return nil, alferr.Decodingf("query %d: missing length", i)
		}
		n := enc[p]
		p++
		if n < 0 || p+n > len(enc) {
			return nil, alferr.Decodingf("query %d: length %d exceeds buffer", i, n)
		}
		w, err := DecodeWord(enc[p:p+n], alphabet)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
		p += n
	}

	if p != len(enc) {
		return nil, alferr.Decodingf("%d trailing values after %d queries", len(enc)-p, count)
	}
	return out, nil
}

// EncodeQueryBatch is the inverse of DecodeQueryBatch. Engines produce this format;
// the client side only needs it for tools and test doubles.
func EncodeQueryBatch[I comparable](ws []words.Word[I], alphabet *words.Alphabet[I]) ([]int, error) {
	enc := make([]int, 1+EncodedLength(ws))
	enc[0] = len(ws)
	ofs := 1
	for _, w := range ws {
		var err error
		if ofs, err = EncodePrefixed(w, alphabet, enc, ofs); err != nil {
			return nil, err
		}
	}
	return enc, nil
}
