// Copyright 2026 GridPool Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package direct exposes the array-indexing pooling engine: one window
// scanned at a time. It is the reference realization the vector engine is
// checked against.
package direct

import (
	internaldirect "github.com/gridpool-ml/gridpool/internal/engine/direct"
	"github.com/gridpool-ml/gridpool/pool"
)

// Engine is the direct realization of pool.Engine.
type Engine = internaldirect.Engine

// Compile-time check that Engine implements pool.Engine.
var _ pool.Engine = (*Engine)(nil)

// New creates a direct engine.
//
// Example:
//
//	pooler := pool.New(direct.New())
//	out, _, err := pooler.MaxPool(in, pool.Square(2), pool.Step(2), pool.Same(), false)
func New() *Engine {
	return internaldirect.New()
}
