/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporter_test.go
Description: Tests for learner reporters and the equivalence-driven run loop.
*/

package learner_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/alfbridge/pkg/automaton"
	"github.com/kleascm/alfbridge/pkg/engine/enginetest"
	"github.com/kleascm/alfbridge/pkg/learner"
	"github.com/kleascm/alfbridge/pkg/words"
)

type recordingReporter struct {
	rounds          []int
	batchSizes      []int
	conjectures     int
	counterexamples []int
	samples         []int
}

func (r *recordingReporter) OnRound(_ learner.Info, round, batchSize int) {
	r.rounds = append(r.rounds, round)
	r.batchSizes = append(r.batchSizes, batchSize)
}

func (r *recordingReporter) OnConjecture(learner.Info, int) { r.conjectures++ }

func (r *recordingReporter) OnCounterexample(_ learner.Info, length int) {
	r.counterexamples = append(r.counterexamples, length)
}

func (r *recordingReporter) OnSamples(_ learner.Info, count int) {
	r.samples = append(r.samples, count)
}

func TestReporterSeesActiveEvents(t *testing.T) {
	f := newFixture(t)
	f.fake.QueueAdvance(nil, nil, conjecture(t, 1))
	f.fake.QueueBatch(batchAandAB)

	rec := &recordingReporter{}
	l := f.active(t, endsInA(), learner.WithReporter(rec))
	require.NoError(t, l.StartLearning(context.Background()))

	f.fake.QueueAdvance(conjecture(t, 2))
	_, err := l.RefineHypothesis(context.Background(), words.NewQuery[string, bool](words.FromString("abb")))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, rec.rounds)
	assert.Equal(t, []int{2, 2}, rec.batchSizes)
	assert.Equal(t, 2, rec.conjectures)
	assert.Equal(t, []int{3}, rec.counterexamples)
}

func TestReporterSeesSamples(t *testing.T) {
	f := newFixture(t)
	rec := &recordingReporter{}
	l := f.passive(t, learner.WithReporter(rec))

	require.NoError(t, l.AddSamples(
		words.NewAnsweredQuery[string, bool](words.FromString("a"), true),
		words.NewAnsweredQuery[string, bool](words.FromString("b"), false),
	))
	assert.Equal(t, []int{2}, rec.samples)
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		total := 0.0
		for _, m := range mf.GetMetric() {
			total += metricValue(m)
		}
		return total
	}
	return 0
}

func metricValue(m *dto.Metric) float64 {
	if c := m.GetCounter(); c != nil {
		return c.GetValue()
	}
	if h := m.GetHistogram(); h != nil {
		return float64(h.GetSampleCount())
	}
	return 0
}

func TestPrometheusReporter(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom, err := learner.NewPrometheusReporter(reg)
	require.NoError(t, err)

	_, err = learner.NewPrometheusReporter(reg)
	assert.Error(t, err, "metrics can only be registered once per registry")

	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	f := newFixture(t)
	f.fake.QueueAdvance(nil, conjecture(t, 1))
	f.fake.QueueBatch(batchAandAB)

	reporter := learner.MultiReporter{prom, learner.NewLoggerReporter(logger)}
	l := f.active(t, endsInA(), learner.WithReporter(reporter))
	require.NoError(t, l.StartLearning(context.Background()))

	assert.Equal(t, 1.0, counterValue(t, reg, "alfbridge_query_rounds_total"))
	assert.Equal(t, 2.0, counterValue(t, reg, "alfbridge_queries_total"))
	assert.Equal(t, 1.0, counterValue(t, reg, "alfbridge_conjectures_total"))
	assert.Equal(t, 1.0, counterValue(t, reg, "alfbridge_batch_size"))
	assert.Contains(t, buf.String(), "Conjecture ready")
}

type scriptedEquivalence struct {
	counterexamples []*words.Query[string, bool]
	checked         []int
	err             error
}

func (s *scriptedEquivalence) FindCounterexample(_ context.Context, hyp *automaton.DFA[string]) (*words.Query[string, bool], error) {
	s.checked = append(s.checked, hyp.Size())
	if s.err != nil {
		return nil, s.err
	}
	if len(s.counterexamples) == 0 {
		return nil, nil
	}
	ce := s.counterexamples[0]
	s.counterexamples = s.counterexamples[1:]
	return ce, nil
}

func TestRunRefinesUntilEquivalent(t *testing.T) {
	f := newFixture(t)
	f.fake.QueueAdvance(conjecture(t, 1), nil, conjecture(t, 2), conjecture(t, 3))
	f.fake.QueueBatch(batchAandAB)

	eq := &scriptedEquivalence{counterexamples: []*words.Query[string, bool]{
		words.NewAnsweredQuery[string, bool](words.FromString("ba"), true),
		words.NewAnsweredQuery[string, bool](words.FromString("b"), false),
	}}

	l := f.active(t, endsInA())
	result, err := learner.Run[*automaton.DFA[string], string, bool](context.Background(), l, eq)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Refinements)
	assert.Equal(t, 1, result.Rounds)
	assert.Equal(t, 3, result.Model.Size())
	assert.Equal(t, []int{1, 2, 3}, eq.checked)
	assert.Equal(t, [][]int{{1, 0}, {1}}, f.fake.Counterexamples)
}

func TestRunPropagatesEquivalenceFailure(t *testing.T) {
	f := newFixture(t)
	f.fake.QueueAdvance(conjecture(t, 1))

	boom := errors.New("oracle offline")
	l := f.active(t, endsInA())
	_, err := learner.Run[*automaton.DFA[string], string, bool](context.Background(), l, &scriptedEquivalence{err: boom})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, f.fake.Count(enginetest.OpCounterexample))
}
