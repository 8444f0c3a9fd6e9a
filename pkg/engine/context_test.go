/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: context_test.go
Description: Tests for the engine context lifecycle and handle repair.
*/

package engine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/alfbridge/pkg/alferr"
	"github.com/kleascm/alfbridge/pkg/engine"
	"github.com/kleascm/alfbridge/pkg/engine/enginetest"
)

func TestLoadFailureIsRecorded(t *testing.T) {
	cause := errors.New("engine library not found")
	calls := 0
	ctx := engine.NewContext(func() (engine.Engine, error) {
		calls++
		return nil, cause
	})

	assert.False(t, ctx.Available())

	_, err := ctx.Engine()
	assert.ErrorIs(t, err, alferr.ErrEngineUnavailable)
	assert.ErrorIs(t, err, cause)

	_, _, err = ctx.Instantiate(engine.RPNI, 2, nil)
	assert.ErrorIs(t, err, alferr.ErrEngineUnavailable)
	assert.Equal(t, 1, calls, "a failed load is not retried")
}

func TestNilLoader(t *testing.T) {
	ctx := engine.NewContext(nil)
	_, _, err := ctx.Instantiate(engine.RPNI, 2, nil)
	assert.ErrorIs(t, err, alferr.ErrEngineUnavailable)
}

func TestInstantiate(t *testing.T) {
	fake := enginetest.New()
	ctx := engine.NewContext(fake.Loader())
	require.True(t, ctx.Available())

	eng, h, err := ctx.Instantiate(engine.KearnsVaziraniDFA, 3, []int{1, 2})
	require.NoError(t, err)
	assert.Same(t, fake, eng)
	assert.True(t, fake.Live(h))
	require.Len(t, fake.Instantiations, 1)
	assert.Equal(t, enginetest.Instantiation{Algorithm: engine.KearnsVaziraniDFA, AlphabetSize: 3, Options: []int{1, 2}}, fake.Instantiations[0])
}

func TestRefusedInstantiation(t *testing.T) {
	fake := enginetest.New()
	fake.Refuse = true
	ctx := engine.NewContext(fake.Loader())

	_, _, err := ctx.Instantiate(engine.RPNI, 2, nil)
	var initErr *alferr.LearnerInitializationError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, "rpni", initErr.Algorithm)
}

func TestInstantiateErrorIsInitializationFailure(t *testing.T) {
	fake := enginetest.New()
	fake.Errors[enginetest.OpInstantiate] = errors.New("bad options")
	ctx := engine.NewContext(fake.Loader())

	_, _, err := ctx.Instantiate(engine.RPNI, 2, nil)
	assert.ErrorIs(t, err, alferr.ErrInitialization)
	assert.True(t, ctx.Available(), "ordinary failures keep the engine")
}

func TestConnectionLossWithoutRepair(t *testing.T) {
	first := enginetest.New()
	first.Errors[enginetest.OpInstantiate] = engine.ErrConnectionLost
	loads := 0
	ctx := engine.NewContext(func() (engine.Engine, error) {
		loads++
		return first, nil
	})

	_, _, err := ctx.Instantiate(engine.RPNI, 2, nil)
	assert.ErrorIs(t, err, alferr.ErrEngineUnavailable)
	assert.False(t, ctx.Available())
	assert.True(t, first.Closed)
	assert.Equal(t, 1, loads)
}

func TestHandleRepairReloadsOnce(t *testing.T) {
	broken := enginetest.New()
	broken.Errors[enginetest.OpInstantiate] = engine.ErrConnectionLost
	healthy := enginetest.New()

	engines := []*enginetest.Engine{broken, healthy}
	loads := 0
	ctx := engine.NewContext(func() (engine.Engine, error) {
		e := engines[loads]
		loads++
		return e, nil
	}, engine.WithHandleRepair())

	eng, h, err := ctx.Instantiate(engine.RPNI, 2, nil)
	require.NoError(t, err)
	assert.Same(t, healthy, eng)
	assert.True(t, healthy.Live(h))
	assert.Equal(t, 2, loads)
	assert.True(t, broken.Closed)
}

func TestHandleRepairGivesUpAfterOneReload(t *testing.T) {
	loads := 0
	ctx := engine.NewContext(func() (engine.Engine, error) {
		loads++
		e := enginetest.New()
		e.Errors[enginetest.OpInstantiate] = engine.ErrConnectionLost
		return e, nil
	}, engine.WithHandleRepair())

	_, _, err := ctx.Instantiate(engine.RPNI, 2, nil)
	assert.ErrorIs(t, err, alferr.ErrEngineUnavailable)
	assert.Equal(t, 2, loads)
}

func TestMarkLostThenRepair(t *testing.T) {
	loads := 0
	ctx := engine.NewContext(func() (engine.Engine, error) {
		loads++
		return enginetest.New(), nil
	}, engine.WithHandleRepair())

	ctx.MarkLost(engine.ErrConnectionLost)
	assert.False(t, ctx.Available())

	_, _, err := ctx.Instantiate(engine.RPNI, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}

func TestCloseIsIdempotent(t *testing.T) {
	fake := enginetest.New()
	ctx := engine.NewContext(fake.Loader())

	require.NoError(t, ctx.Close())
	require.NoError(t, ctx.Close())
	assert.True(t, fake.Closed)
	assert.False(t, ctx.Available())

	_, _, err := ctx.Instantiate(engine.RPNI, 2, nil)
	assert.ErrorIs(t, err, alferr.ErrEngineUnavailable)
}

func TestDefaultContext(t *testing.T) {
	require.NoError(t, engine.Teardown())

	_, err := engine.Default()
	assert.ErrorIs(t, err, alferr.ErrEngineUnavailable)

	fake := enginetest.New()
	first := engine.Init(fake.Loader())
	second := engine.Init(enginetest.New().Loader())
	assert.Same(t, first, second, "Init keeps an existing context")

	got, err := engine.Default()
	require.NoError(t, err)
	assert.Same(t, first, got)

	require.NoError(t, engine.Teardown())
	assert.True(t, fake.Closed)
	_, err = engine.Default()
	assert.Error(t, err)
}
