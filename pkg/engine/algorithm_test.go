/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: algorithm_test.go
Description: Tests for the algorithm catalogue.
*/

package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/alfbridge/pkg/engine"
)

func TestCatalogueOrdinals(t *testing.T) {
	algs := engine.Algorithms()
	require.Len(t, algs, 10)
	for i, alg := range algs {
		assert.Equal(t, i, int(alg))
		assert.True(t, alg.Valid())
		assert.NotEmpty(t, alg.Description())
	}
	assert.False(t, engine.AlgorithmID(42).Valid())
	assert.Equal(t, "algorithm(42)", engine.AlgorithmID(42).String())
}

func TestModesAndKinds(t *testing.T) {
	tests := []struct {
		alg  engine.AlgorithmID
		mode engine.Mode
		kind engine.ModelKind
	}{
		{engine.AngluinSimpleDFA, engine.ModeActive, engine.KindDFA},
		{engine.KearnsVaziraniDFA, engine.ModeActive, engine.KindDFA},
		{engine.NLStar, engine.ModeActive, engine.KindNFA},
		{engine.MVCAAngluinLike, engine.ModeActive, engine.KindVCA},
		{engine.RPNI, engine.ModePassive, engine.KindDFA},
		{engine.Delete2, engine.ModePassive, engine.KindNFA},
		{engine.BiermannMiniSAT, engine.ModePassive, engine.KindDFA},
	}
	for _, tt := range tests {
		t.Run(tt.alg.String(), func(t *testing.T) {
			assert.Equal(t, tt.mode, tt.alg.Mode())
			assert.Equal(t, tt.kind, tt.alg.ModelKind())
		})
	}
}

func TestParseAlgorithm(t *testing.T) {
	for _, alg := range engine.Algorithms() {
		got, err := engine.ParseAlgorithm(alg.String())
		require.NoError(t, err)
		assert.Equal(t, alg, got)
	}

	got, err := engine.ParseAlgorithm("  RPNI ")
	require.NoError(t, err)
	assert.Equal(t, engine.RPNI, got)

	_, err = engine.ParseAlgorithm("l-sharp")
	assert.Error(t, err)
}
