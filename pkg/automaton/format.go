/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: format.go
Description: Compact binary automaton format used for engine conjectures.

	magic "ALFA" | version u8 | kind u8 (0 DFA, 1 NFA) | alphabetSize u32 | numStates u32
	DFA: initial u32 | accepting[numStates] u8 | succ[numStates*alphabetSize] u32 (0xFFFFFFFF = undefined)
	NFA: numInitial u32 | initial[numInitial] u32 | accepting[numStates] u8 |
	     per (state, symbol): count u32 | targets[count] u32

All integers are big-endian. Decoding never returns a partially built automaton.
*/

package automaton

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/kleascm/alfbridge/pkg/alferr"
	"github.com/kleascm/alfbridge/pkg/words"
)

const (
	formatVersion = 1
	kindDFA       = 0
	kindNFA       = 1
	undefinedWire = 0xFFFFFFFF
)

var magic = [4]byte{'A', 'L', 'F', 'A'}

// EncodeDFA serializes d
func EncodeDFA[I comparable](d *DFA[I]) []byte {
	var buf bytes.Buffer
	writeHeader(&buf, kindDFA, d.alphabet.Size(), d.Size())
	writeU32(&buf, uint32(d.initial))
	for _, acc := range d.accepting {
		buf.WriteByte(boolByte(acc))
	}
	for _, t := range d.succ {
		if t == Undefined {
			writeU32(&buf, undefinedWire)
		} else {
			writeU32(&buf, uint32(t))
		}
	}
	return buf.Bytes()
}

// EncodeNFA serializes n
func EncodeNFA[I comparable](n *NFA[I]) []byte {
	var buf bytes.Buffer
	writeHeader(&buf, kindNFA, n.alphabet.Size(), n.Size())
	writeU32(&buf, uint32(len(n.initial)))
	for _, s := range n.initial {
		writeU32(&buf, uint32(s))
	}
	for _, acc := range n.accepting {
		buf.WriteByte(boolByte(acc))
	}
	for _, targets := range n.succ {
		writeU32(&buf, uint32(len(targets)))
		for _, t := range targets {
			writeU32(&buf, uint32(t))
		}
	}
	return buf.Bytes()
}

// Encode serializes a DFA or NFA
func Encode[I comparable](a Acceptor[I]) ([]byte, error) {
	switch m := a.(type) {
	case *DFA[I]:
		return EncodeDFA(m), nil
	case *NFA[I]:
		return EncodeNFA(m), nil
	default:
		return nil, fmt.Errorf("cannot encode acceptor of type %T", a)
	}
}

// Decode parses a DFA or NFA, dispatching on the kind byte
func Decode[I comparable](data []byte, alphabet *words.Alphabet[I]) (Acceptor[I], error) {
	if len(data) < 6 {
		return nil, alferr.Decodingf("automaton is only %d bytes", len(data))
	}
	switch data[5] {
	case kindDFA:
		d, err := DecodeDFA(data, alphabet)
		if err != nil {
			return nil, err
		}
		return d, nil
	case kindNFA:
		n, err := DecodeNFA(data, alphabet)
		if err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, alferr.Decodingf("unexpected automaton kind %d", data[5])
	}
}

// DecodeDFA parses a DFA conjecture over alphabet
func DecodeDFA[I comparable](data []byte, alphabet *words.Alphabet[I]) (*DFA[I], error) {
	r := &reader{r: bytes.NewReader(data)}
	numStates, err := r.header(kindDFA, alphabet.Size())
	if err != nil {
		return nil, err
	}
	k := alphabet.Size()
	if need := 4 + numStates + 4*numStates*k; r.r.Len() != need {
		return nil, alferr.Decodingf("dfa body is %d bytes, expected %d", r.r.Len(), need)
	}

	d := NewDFA(alphabet, numStates)
	initial := r.state(numStates)
	for s := 0; s < numStates; s++ {
		d.accepting[s] = r.flag()
	}
	for i := range d.succ {
		v := r.u32()
		if v == undefinedWire {
			continue
		}
		if int(v) >= numStates {
			return nil, alferr.Decodingf("transition target %d out of range", v)
		}
		d.succ[i] = int(v)
	}
	if r.err != nil {
		return nil, r.err
	}
	d.initial = initial
	return d, nil
}

// DecodeNFA parses an NFA conjecture over alphabet
func DecodeNFA[I comparable](data []byte, alphabet *words.Alphabet[I]) (*NFA[I], error) {
	r := &reader{r: bytes.NewReader(data)}
	numStates, err := r.header(kindNFA, alphabet.Size())
	if err != nil {
		return nil, err
	}

	n := NewNFA(alphabet, numStates)
	numInitial := int(r.u32())
	if r.err == nil && numInitial > numStates {
		return nil, alferr.Decodingf("%d initial states but only %d states", numInitial, numStates)
	}
	for i := 0; i < numInitial && r.err == nil; i++ {
		n.initial = append(n.initial, r.state(numStates))
	}
	for s := 0; s < numStates && r.err == nil; s++ {
		n.accepting[s] = r.flag()
	}
	for i := range n.succ {
		if r.err != nil {
			break
		}
		count := int(r.u32())
		if count > numStates {
			return nil, alferr.Decodingf("transition fan-out %d exceeds %d states", count, numStates)
		}
		for j := 0; j < count && r.err == nil; j++ {
			n.succ[i] = append(n.succ[i], r.state(numStates))
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	if r.r.Len() != 0 {
		return nil, alferr.Decodingf("%d trailing bytes", r.r.Len())
	}
	return n, nil
}

type reader struct {
	r   *bytes.Reader
	err error
}

func (r *reader) header(kind byte, alphabetSize int) (int, error) {
	var m [4]byte
	if _, err := io.ReadFull(r.r, m[:]); err != nil || m != magic {
		return 0, alferr.Decodingf("bad magic")
	}
	version, _ := r.r.ReadByte()
	if version != formatVersion {
		return 0, alferr.Decodingf("unsupported format version %d", version)
	}
	k, err := r.r.ReadByte()
	if err != nil || k != kind {
		return 0, alferr.Decodingf("unexpected automaton kind %d", k)
	}
	size := int(r.u32())
	numStates := int(r.u32())
	if r.err != nil {
		return 0, r.err
	}
	if size != alphabetSize {
		return 0, alferr.Decodingf("alphabet size %d does not match learner alphabet size %d", size, alphabetSize)
	}
	if numStates == 0 {
		return 0, alferr.Decodingf("automaton has no states")
	}
	if numStates > r.r.Len() {
		return 0, alferr.Decodingf("%d states cannot fit in %d bytes", numStates, r.r.Len())
	}
	return numStates, nil
}

func (r *reader) u32() uint32 {
	if r.err != nil {
		return 0
	}
	var v uint32
	if err := binary.Read(r.r, binary.BigEndian, &v); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			r.err = alferr.Decodingf("truncated automaton")
		} else {
			r.err = &alferr.DecodingError{Reason: "read failed", Cause: err}
		}
		return 0
	}
	return v
}

func (r *reader) state(numStates int) int {
	v := r.u32()
	if r.err == nil && int(v) >= numStates {
		r.err = alferr.Decodingf("state %d out of range", v)
	}
	return int(v)
}

func (r *reader) flag() bool {
	if r.err != nil {
		return false
	}
	b, err := r.r.ReadByte()
	if err != nil {
		r.err = alferr.Decodingf("truncated automaton")
		return false
	}
	if b > 1 {
		r.err = alferr.Decodingf("invalid acceptance flag %d", b)
	}
	return b == 1
}

func writeHeader(buf *bytes.Buffer, kind byte, alphabetSize, numStates int) {
	buf.Write(magic[:])
	buf.WriteByte(formatVersion)
	buf.WriteByte(kind)
	writeU32(buf, uint32(alphabetSize))
	writeU32(buf, uint32(numStates))
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
