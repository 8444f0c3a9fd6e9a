/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: default.go
Description: Package-level default context for programs that want a single engine per
process. Init, Default and Teardown make the lifecycle explicit.
*/

package engine

import (
	"errors"
	"sync"

	"github.com/kleascm/alfbridge/pkg/alferr"
)

var (
	defaultMu  sync.Mutex
	defaultCtx *Context
)

// Init creates the default context. If one already exists it is returned unchanged.
func Init(load Loader, opts ...Option) *Context {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultCtx == nil {
		defaultCtx = NewContext(load, opts...)
	}
	return defaultCtx
}

// Default returns the default context or an EngineUnavailableError if Init has not
// been called.
func Default() (*Context, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultCtx == nil {
		return nil, &alferr.EngineUnavailableError{Cause: errors.New("engine.Init has not been called")}
	}
	return defaultCtx, nil
}

// Teardown closes and forgets the default context
func Teardown() error {
	defaultMu.Lock()
	ctx := defaultCtx
	defaultCtx = nil
	defaultMu.Unlock()
	if ctx == nil {
		return nil
	}
	return ctx.Close()
}
