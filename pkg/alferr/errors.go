/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors.go
Description: Error taxonomy shared by the codec, engine, and learner packages. Every
error is a typed value that matches its sentinel through errors.Is, so callers can
branch on the failure class without string matching.
*/

package alferr

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per failure class
var (
	ErrEngineUnavailable = errors.New("inference engine unavailable")
	ErrInitialization    = errors.New("learner initialization failed")
	ErrObjectDisposed    = errors.New("learner has been disposed")
	ErrIllegalState      = errors.New("illegal learner state")
	ErrUnknownSymbol     = errors.New("unknown symbol")
	ErrDecoding          = errors.New("malformed engine data")
)

// EngineUnavailableError reports that the process-wide engine context could not be
// initialized. Cause holds the original load failure, if any. It also matches
// ErrInitialization, since no learner can be constructed while it holds.
type EngineUnavailableError struct {
	Cause error
}

func (e *EngineUnavailableError) Error() string {
	if e.Cause == nil {
		return ErrEngineUnavailable.Error()
	}
	return fmt.Sprintf("%s: %v", ErrEngineUnavailable, e.Cause)
}

func (e *EngineUnavailableError) Unwrap() error { return e.Cause }

func (e *EngineUnavailableError) Is(target error) bool {
	return target == ErrEngineUnavailable || target == ErrInitialization
}

// LearnerInitializationError reports that the engine refused to create an algorithm
// instance, either by returning no handle or by failing the call.
type LearnerInitializationError struct {
	Algorithm string
	Cause     error
}

func (e *LearnerInitializationError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("could not initialize algorithm %s", e.Algorithm)
	}
	return fmt.Sprintf("could not initialize algorithm %s: %v", e.Algorithm, e.Cause)
}

func (e *LearnerInitializationError) Unwrap() error { return e.Cause }

func (e *LearnerInitializationError) Is(target error) bool { return target == ErrInitialization }

// IllegalStateError reports a protocol-order violation such as starting twice
type IllegalStateError struct {
	Op     string
	Reason string
}

func (e *IllegalStateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *IllegalStateError) Is(target error) bool { return target == ErrIllegalState }

// UnknownSymbolError reports a symbol index outside [0, Size) or a symbol that is not
// part of the alphabet.
type UnknownSymbolError struct {
	Index  int
	Size   int
	Symbol any
}

func (e *UnknownSymbolError) Error() string {
	if e.Symbol != nil {
		return fmt.Sprintf("%s %v: not in alphabet", ErrUnknownSymbol, e.Symbol)
	}
	return fmt.Sprintf("%s index %d: alphabet size is %d", ErrUnknownSymbol, e.Index, e.Size)
}

func (e *UnknownSymbolError) Is(target error) bool { return target == ErrUnknownSymbol }

// DecodingError reports corrupt wire data or a corrupt conjecture artifact
type DecodingError struct {
	Reason string
	Cause  error
}

func (e *DecodingError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", ErrDecoding, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %v", ErrDecoding, e.Reason, e.Cause)
}

func (e *DecodingError) Unwrap() error { return e.Cause }

func (e *DecodingError) Is(target error) bool { return target == ErrDecoding }

// Decodingf builds a DecodingError from a format string
func Decodingf(format string, args ...any) error {
	return &DecodingError{Reason: fmt.Sprintf(format, args...)}
}

// Disposed returns ErrObjectDisposed annotated with the attempted operation
func Disposed(op string) error {
	return fmt.Errorf("%s: %w", op, ErrObjectDisposed)
}
