// Copyright 2026 GridPool Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package vector exposes the vectorized batch pooling engine: kernel taps
// are swept across whole output planes and (batch, channel) planes run on
// worker goroutines. Results are bit-identical to engine/direct.
package vector

import (
	internalvector "github.com/gridpool-ml/gridpool/internal/engine/vector"
	"github.com/gridpool-ml/gridpool/internal/parallel"
	"github.com/gridpool-ml/gridpool/pool"
)

// Engine is the vectorized realization of pool.Engine.
type Engine = internalvector.Engine

// Config controls how planes are spread over goroutines.
type Config = parallel.Config

// Compile-time check that Engine implements pool.Engine.
var _ pool.Engine = (*Engine)(nil)

// New creates a vector engine with machine-default parallelism.
func New() *Engine {
	return internalvector.New()
}

// NewWithConfig creates a vector engine with explicit parallelism.
// Sequential() gives single-goroutine execution for deterministic profiling.
func NewWithConfig(cfg Config) *Engine {
	return internalvector.NewWithConfig(cfg)
}

// Sequential returns a config that runs all planes on the calling
// goroutine.
func Sequential() Config {
	return parallel.Sequential()
}
