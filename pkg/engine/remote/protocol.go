/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: protocol.go
Description: Wire framing for the remote engine dispatcher. Requests are
[op u8][len u32][payload], responses [status u8][len u32][payload], big-endian.
Integer arrays travel as [n u32][v i32 ...] and byte strings as [n u32][bytes].
*/

package remote

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// Op identifies a remote engine call
type Op uint8

const (
	OpInstantiate Op = iota + 1
	OpAdvance
	OpDispose
	OpFetchBatch
	OpDecodeBatch
	OpSubmitAnswers
	OpCounterexample
	OpSubmitSamples
)

// Response status codes
const (
	StatusOK     uint8 = 0
	StatusAbsent uint8 = 1
	StatusError  uint8 = 2
)

// MaxFrame bounds a single payload
const MaxFrame = 64 << 20

var errShortPayload = errors.New("short payload")

// WriteFrame writes one frame with a one-byte tag
func WriteFrame(w io.Writer, tag uint8, payload []byte) error {
	if len(payload) > MaxFrame {
		return fmt.Errorf("frame of %d bytes exceeds limit", len(payload))
	}
	var hdr [5]byte
	hdr[0] = tag
	binary.BigEndian.PutUint32(hdr[1:], uint32(len(payload)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// ReadFrame reads one frame
func ReadFrame(r io.Reader) (uint8, []byte, error) {
	var hdr [5]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, nil, err
	}
	n := binary.BigEndian.Uint32(hdr[1:])
	if n > MaxFrame {
		return 0, nil, fmt.Errorf("frame of %d bytes exceeds limit", n)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, err
	}
	return hdr[0], payload, nil
}

// Writer builds request payloads
type Writer struct {
	buf []byte
}

func (w *Writer) Uint32(v uint32) *Writer {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
	return w
}

func (w *Writer) Bytes(b []byte) *Writer {
	w.Uint32(uint32(len(b)))
	w.buf = append(w.buf, b...)
	return w
}

func (w *Writer) Ints(vs []int) *Writer {
	w.Uint32(uint32(len(vs)))
	for _, v := range vs {
		w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(int32(v)))
	}
	return w
}

func (w *Writer) Payload() []byte { return w.buf }

// Reader consumes payloads produced by Writer
type Reader struct {
	buf []byte
	err error
}

func NewReader(b []byte) *Reader { return &Reader{buf: b} }

func (r *Reader) Uint32() uint32 {
	if r.err != nil {
		return 0
	}
	if len(r.buf) < 4 {
		r.err = errShortPayload
		return 0
	}
	v := binary.BigEndian.Uint32(r.buf)
	r.buf = r.buf[4:]
	return v
}

func (r *Reader) Bytes() []byte {
	n := r.Uint32()
	if r.err != nil {
		return nil
	}
	if uint32(len(r.buf)) < n {
		r.err = errShortPayload
		return nil
	}
	b := append([]byte(nil), r.buf[:n]...)
	r.buf = r.buf[n:]
	return b
}

func (r *Reader) Ints() []int {
	n := r.Uint32()
	if r.err != nil {
		return nil
	}
	if n > math.MaxInt32 || uint64(len(r.buf)) < uint64(n)*4 {
		r.err = errShortPayload
		return nil
	}
	vs := make([]int, n)
	for i := range vs {
		vs[i] = int(int32(binary.BigEndian.Uint32(r.buf)))
		r.buf = r.buf[4:]
	}
	return vs
}

// Err reports the first failure, including unread trailing bytes
func (r *Reader) Err() error {
	if r.err == nil && len(r.buf) > 0 {
		return fmt.Errorf("%d trailing bytes", len(r.buf))
	}
	return r.err
}
