/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: context.go
Description: Process-wide engine context with an explicit init/teardown lifecycle.
A failed load is kept as a typed "unavailable" result instead of being rethrown, and
every learner construction fails with EngineUnavailableError until a new context is
created. Optionally, a context whose engine was lost (as opposed to closed) may reload
it exactly once per instantiation before giving up.
*/

package engine

import (
	"errors"
	"io"
	"sync"

	"github.com/kleascm/alfbridge/pkg/alferr"
	"github.com/sirupsen/logrus"
)

var errContextClosed = errors.New("engine context has been closed")

// Loader loads or connects to an engine
type Loader func() (Engine, error)

// Option configures a Context
type Option func(*Context)

// WithHandleRepair allows one transparent reload of a lost engine per instantiation
func WithHandleRepair() Option {
	return func(c *Context) { c.repair = true }
}

// WithLogger sets the logger used for lifecycle events
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Context) { c.logger = logger }
}

// Context owns the process-wide engine
type Context struct {
	mu     sync.Mutex
	load   Loader
	eng    Engine
	cause  error
	lost   bool
	closed bool
	repair bool
	logger logrus.FieldLogger
}

// NewContext loads the engine immediately. A load failure does not return an error;
// it is recorded and reported by every later call.
func NewContext(load Loader, opts ...Option) *Context {
	c := &Context{load: load, logger: discardLogger()}
	for _, opt := range opts {
		opt(c)
	}
	c.loadLocked()
	return c
}

func (c *Context) loadLocked() {
	if c.load == nil {
		c.cause = errors.New("no engine loader configured")
		return
	}
	eng, err := c.load()
	if err == nil && eng == nil {
		err = errors.New("engine loader returned no engine")
	}
	if err != nil {
		c.eng = nil
		c.cause = err
		c.logger.WithError(err).Error("Could not load inference engine, learners will NOT work")
		return
	}
	c.eng = eng
	c.cause = nil
	c.lost = false
	c.logger.Debug("Inference engine loaded")
}

// Available reports whether the context currently holds an engine
func (c *Context) Available() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eng != nil && !c.closed
}

// Engine returns the loaded engine or an EngineUnavailableError
func (c *Context) Engine() (Engine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, &alferr.EngineUnavailableError{Cause: errContextClosed}
	}
	if c.eng == nil {
		return nil, &alferr.EngineUnavailableError{Cause: c.cause}
	}
	return c.eng, nil
}

// Instantiate creates an algorithm instance and returns the engine that owns it
// together with its handle.
func (c *Context) Instantiate(alg AlgorithmID, alphabetSize int, opts []int) (Engine, Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	repaired := false
	for {
		eng, err := c.engineLocked(&repaired)
		if err != nil {
			return nil, nil, err
		}

		h, err := eng.InstantiateAlgorithm(alg, alphabetSize, opts)
		if errors.Is(err, ErrConnectionLost) {
			c.markLostLocked(err)
			if c.repair && !repaired {
				continue
			}
			return nil, nil, &alferr.EngineUnavailableError{Cause: err}
		}
		if err != nil {
			return nil, nil, &alferr.LearnerInitializationError{Algorithm: alg.String(), Cause: err}
		}
		if h == nil {
			return nil, nil, &alferr.LearnerInitializationError{Algorithm: alg.String()}
		}
		return eng, h, nil
	}
}

func (c *Context) engineLocked(repaired *bool) (Engine, error) {
	if c.closed {
		return nil, &alferr.EngineUnavailableError{Cause: errContextClosed}
	}
	if c.eng != nil {
		return c.eng, nil
	}
	if c.lost && c.repair && !*repaired {
		*repaired = true
		c.logger.Warn("Inference engine was lost, reloading once")
		c.loadLocked()
		if c.eng != nil {
			return c.eng, nil
		}
	}
	return nil, &alferr.EngineUnavailableError{Cause: c.cause}
}

// MarkLost records that the engine stopped responding. Learners call it when an
// engine call fails with ErrConnectionLost.
func (c *Context) MarkLost(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.markLostLocked(err)
}

func (c *Context) markLostLocked(err error) {
	if c.eng == nil || c.closed {
		return
	}
	if closer, ok := c.eng.(Closer); ok {
		closer.Close()
	}
	c.eng = nil
	c.cause = err
	c.lost = true
	c.logger.WithError(err).Warn("Inference engine lost")
}

// Close tears the engine down. Repeated calls are no-ops.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	eng := c.eng
	c.eng = nil
	if closer, ok := eng.(Closer); ok {
		return closer.Close()
	}
	return nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
