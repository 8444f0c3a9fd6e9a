/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporter.go
Description: Reporter interface and implementations for learner telemetry. Learners
notify reporters of query rounds, conjectures, counterexamples and sample batches;
reporters log them or export them as Prometheus metrics.
*/

package learner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Info identifies the learner an event belongs to
type Info struct {
	LearnerID string
	Algorithm string
}

// Reporter receives learner events. Calls happen synchronously on the learning
// goroutine, so implementations must be quick.
type Reporter interface {
	// OnRound is called after a query batch has been answered
	OnRound(info Info, round, batchSize int)
	// OnConjecture is called when the engine produced a model
	OnConjecture(info Info, rounds int)
	// OnCounterexample is called after a counterexample was submitted
	OnCounterexample(info Info, length int)
	// OnSamples is called after a sample batch was accepted
	OnSamples(info Info, count int)
}

type nopReporter struct{}

func (nopReporter) OnRound(Info, int, int)     {}
func (nopReporter) OnConjecture(Info, int)     {}
func (nopReporter) OnCounterexample(Info, int) {}
func (nopReporter) OnSamples(Info, int)        {}

// LoggerReporter logs learner events
type LoggerReporter struct {
	logger *logrus.Logger
}

// NewLoggerReporter creates a new LoggerReporter
func NewLoggerReporter(logger *logrus.Logger) *LoggerReporter {
	return &LoggerReporter{logger: logger}
}

func (r *LoggerReporter) fields(info Info) logrus.Fields {
	return logrus.Fields{"learner_id": info.LearnerID, "algorithm": info.Algorithm}
}

// OnRound logs an answered batch
func (r *LoggerReporter) OnRound(info Info, round, batchSize int) {
	f := r.fields(info)
	f["round"] = round
	f["batch_size"] = batchSize
	r.logger.WithFields(f).Debug("Query round completed")
}

// OnConjecture logs a new model
func (r *LoggerReporter) OnConjecture(info Info, rounds int) {
	f := r.fields(info)
	f["rounds"] = rounds
	r.logger.WithFields(f).Info("Conjecture ready")
}

// OnCounterexample logs a refinement
func (r *LoggerReporter) OnCounterexample(info Info, length int) {
	f := r.fields(info)
	f["length"] = length
	r.logger.WithFields(f).Info("Counterexample accepted")
}

// OnSamples logs a sample batch
func (r *LoggerReporter) OnSamples(info Info, count int) {
	f := r.fields(info)
	f["count"] = count
	r.logger.WithFields(f).Info("Samples added")
}

// PrometheusReporter exports learner events as Prometheus metrics
type PrometheusReporter struct {
	rounds          *prometheus.CounterVec
	queries         *prometheus.CounterVec
	conjectures     *prometheus.CounterVec
	counterexamples *prometheus.CounterVec
	samples         *prometheus.CounterVec
	batchSize       *prometheus.HistogramVec
}

// NewPrometheusReporter creates the metrics and registers them with reg
func NewPrometheusReporter(reg prometheus.Registerer) (*PrometheusReporter, error) {
	labels := []string{"algorithm"}
	r := &PrometheusReporter{
		rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "alfbridge_query_rounds_total",
			Help: "Query batches answered and pushed back to the engine",
		}, labels),
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "alfbridge_queries_total",
			Help: "Membership queries answered",
		}, labels),
		conjectures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "alfbridge_conjectures_total",
			Help: "Models produced by the engine",
		}, labels),
		counterexamples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "alfbridge_counterexamples_total",
			Help: "Counterexamples submitted",
		}, labels),
		samples: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "alfbridge_samples_total",
			Help: "Labeled samples accepted by the engine",
		}, labels),
		batchSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "alfbridge_batch_size",
			Help:    "Queries per engine batch",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}, labels),
	}

	for _, c := range []prometheus.Collector{r.rounds, r.queries, r.conjectures, r.counterexamples, r.samples, r.batchSize} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// OnRound counts a round and its queries
func (r *PrometheusReporter) OnRound(info Info, round, batchSize int) {
	r.rounds.WithLabelValues(info.Algorithm).Inc()
	r.queries.WithLabelValues(info.Algorithm).Add(float64(batchSize))
	r.batchSize.WithLabelValues(info.Algorithm).Observe(float64(batchSize))
}

// OnConjecture counts a model
func (r *PrometheusReporter) OnConjecture(info Info, rounds int) {
	r.conjectures.WithLabelValues(info.Algorithm).Inc()
}

// OnCounterexample counts a refinement
func (r *PrometheusReporter) OnCounterexample(info Info, length int) {
	r.counterexamples.WithLabelValues(info.Algorithm).Inc()
}

// OnSamples counts accepted samples
func (r *PrometheusReporter) OnSamples(info Info, count int) {
	r.samples.WithLabelValues(info.Algorithm).Add(float64(count))
}

// MultiReporter fans events out to several reporters
type MultiReporter []Reporter

func (m MultiReporter) OnRound(info Info, round, batchSize int) {
	for _, r := range m {
		r.OnRound(info, round, batchSize)
	}
}

func (m MultiReporter) OnConjecture(info Info, rounds int) {
	for _, r := range m {
		r.OnConjecture(info, rounds)
	}
}

func (m MultiReporter) OnCounterexample(info Info, length int) {
	for _, r := range m {
		r.OnCounterexample(info, length)
	}
}

func (m MultiReporter) OnSamples(info Info, count int) {
	for _, r := range m {
		r.OnSamples(info, count)
	}
}
