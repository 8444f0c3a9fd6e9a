/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: options.go
Description: Construction options shared by active and passive learners.
*/

package learner

import (
	"io"

	"github.com/kleascm/alfbridge/pkg/engine"
	"github.com/sirupsen/logrus"
)

// Option configures a learner at construction time
type Option func(*settings)

type settings struct {
	engineCtx *engine.Context
	logger    logrus.FieldLogger
	reporter  Reporter
	options   []int
}

// WithEngine instantiates the algorithm in ectx instead of the default context
func WithEngine(ectx *engine.Context) Option {
	return func(s *settings) { s.engineCtx = ectx }
}

// WithLogger sets the logger; learners log with learner_id and algorithm fields
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithReporter attaches a telemetry reporter
func WithReporter(r Reporter) Option {
	return func(s *settings) { s.reporter = r }
}

// WithEngineOptions passes algorithm-specific integer options to the engine
func WithEngineOptions(opts ...int) Option {
	return func(s *settings) { s.options = append(s.options, opts...) }
}

func newSettings(opts []Option) *settings {
	s := &settings{}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		s.logger = l
	}
	if s.reporter == nil {
		s.reporter = nopReporter{}
	}
	return s
}
