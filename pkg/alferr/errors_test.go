/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: errors_test.go
Description: Tests for the error taxonomy.
*/

package alferr_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kleascm/alfbridge/pkg/alferr"
)

func TestTypedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"engine unavailable", &alferr.EngineUnavailableError{Cause: io.EOF}, alferr.ErrEngineUnavailable},
		{"initialization", &alferr.LearnerInitializationError{Algorithm: "rpni"}, alferr.ErrInitialization},
		{"illegal state", &alferr.IllegalStateError{Op: "start", Reason: "twice"}, alferr.ErrIllegalState},
		{"unknown symbol", &alferr.UnknownSymbolError{Index: 3, Size: 2}, alferr.ErrUnknownSymbol},
		{"decoding", alferr.Decodingf("bad %s", "magic"), alferr.ErrDecoding},
		{"disposed", alferr.Disposed("advance"), alferr.ErrObjectDisposed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestCausesUnwrap(t *testing.T) {
	cause := errors.New("dial refused")
	err := &alferr.EngineUnavailableError{Cause: cause}
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, alferr.ErrInitialization)
	assert.Contains(t, err.Error(), "dial refused")

	err2 := &alferr.LearnerInitializationError{Algorithm: "nlstar", Cause: cause}
	assert.ErrorIs(t, err2, cause)
	assert.Contains(t, err2.Error(), "nlstar")

	err3 := &alferr.DecodingError{Reason: "truncated", Cause: io.ErrUnexpectedEOF}
	assert.ErrorIs(t, err3, io.ErrUnexpectedEOF)
}

func TestDisposedNamesOperation(t *testing.T) {
	assert.Equal(t, "compute model: learner has been disposed", alferr.Disposed("compute model").Error())
}
