package pool

import (
	"time"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gridpool-ml/gridpool/internal/tensor"
)

// Engine computes 2-D max pooling over a [N, C, H, W] tensor.
//
// MaxPool reflect-pads the input by the four amounts in p, slides a
// k.H x k.W window in steps of s over each padded plane and reduces every
// window to its maximum. When withIndices is true it also returns an Int64
// tensor of the same shape as out holding, per output cell, the flat
// row-major offset (in [0, k.H*k.W)) of the selected maximum inside its
// window; otherwise idx is nil and no offset bookkeeping happens at all.
//
// Selection semantics, identical across implementations:
//   - ties go to the first maximum in row-major window scan order;
//   - a NaN poisons the window: the first NaN encountered becomes the
//     result and keeps the recorded index.
//
// The input is borrowed for the duration of the call and never mutated;
// out and idx are freshly allocated. Implementations must be safe for
// concurrent use on distinct inputs.
type Engine interface {
	Name() string
	MaxPool(in *tensor.RawTensor, k Kernel, s Stride, p Padding, withIndices bool) (out, idx *tensor.RawTensor, err error)
}

// Geometry is the resolved spatial arithmetic of one pooling call.
type Geometry struct {
	N, C             int // batch, channels
	H, W             int // input spatial extents
	PaddedH, PaddedW int
	OutH, OutW       int
}

// Planes returns the number of independent (batch, channel) planes.
func (g Geometry) Planes() int {
	return g.N * g.C
}

// Resolve validates a pooling call and computes its geometry. Every error
// the operator can produce is detected here, before any allocation or
// arithmetic on the data.
func Resolve(in *tensor.RawTensor, k Kernel, s Stride, p Padding) (Geometry, error) {
	if !in.DType().IsFloat() {
		return Geometry{}, errors.Wrapf(ErrUnsupportedDType, "%s", in.DType())
	}
	return resolveShape(in.Shape(), k, s, p)
}

func resolveShape(shape tensor.Shape, k Kernel, s Stride, p Padding) (Geometry, error) {
	if shape.Rank() != 4 {
		return Geometry{}, errors.Wrapf(ErrShapeMismatch, "want 4D [N,C,H,W] input, got rank %d", shape.Rank())
	}
	if err := shape.Validate(); err != nil {
		return Geometry{}, errors.Wrapf(ErrInvalidDimension, "input shape %v", shape)
	}
	if k.H <= 0 || k.W <= 0 {
		return Geometry{}, errors.Wrapf(ErrInvalidDimension, "kernel %dx%d must be positive", k.H, k.W)
	}
	if s.H <= 0 || s.W <= 0 {
		return Geometry{}, errors.Wrapf(ErrInvalidDimension, "stride %dx%d must be positive", s.H, s.W)
	}
	if !p.nonNegative() {
		return Geometry{}, errors.Wrapf(ErrInvalidDimension, "padding %+v must be non-negative", p)
	}

	g := Geometry{N: shape[0], C: shape[1], H: shape[2], W: shape[3]}
	if p.Top >= g.H || p.Bottom >= g.H || p.Left >= g.W || p.Right >= g.W {
		return Geometry{}, errors.Wrapf(ErrPaddingTooLarge, "padding %+v on %dx%d input", p, g.H, g.W)
	}

	g.PaddedH = g.H + p.Top + p.Bottom
	g.PaddedW = g.W + p.Left + p.Right
	if k.H > g.PaddedH || k.W > g.PaddedW {
		return Geometry{}, errors.Wrapf(ErrInvalidDimension,
			"kernel %dx%d exceeds padded input %dx%d", k.H, k.W, g.PaddedH, g.PaddedW)
	}

	g.OutH = (g.PaddedH-k.H)/s.H + 1
	g.OutW = (g.PaddedW-k.W)/s.W + 1
	return g, nil
}

// Observer is an optional per-call instrumentation hook. It receives the
// engine name and the wall time of one successful MaxPool call.
type Observer func(engine string, elapsed time.Duration)

// Pooler binds an Engine to a padding policy front door. The engine is
// chosen by the caller at construction time; there is no implicit default
// and no global registry.
type Pooler struct {
	engine  Engine
	observe Observer
}

// Option configures a Pooler.
type Option func(*Pooler)

// WithObserver installs an instrumentation callback. The callback runs
// synchronously after each successful call.
func WithObserver(obs Observer) Option {
	return func(p *Pooler) {
		p.observe = obs
	}
}

// New creates a Pooler that delegates to the given engine.
func New(engine Engine, opts ...Option) *Pooler {
	p := &Pooler{engine: engine}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Engine returns the engine this Pooler delegates to.
func (p *Pooler) Engine() Engine {
	return p.engine
}

// MaxPool derives padding from the mode and runs the engine.
// See Engine.MaxPool for the output contract.
func (p *Pooler) MaxPool(in *tensor.RawTensor, k Kernel, s Stride, m Mode, withIndices bool) (*tensor.RawTensor, *tensor.RawTensor, error) {
	shape := in.Shape()
	if shape.Rank() != 4 {
		return nil, nil, errors.Wrapf(ErrShapeMismatch, "want 4D [N,C,H,W] input, got rank %d", shape.Rank())
	}

	pad, err := ComputePadding(shape[2], shape[3], k, s, m)
	if err != nil {
		return nil, nil, err
	}
	klog.V(2).Infof("maxpool engine=%s in=%v kernel=%dx%d stride=%dx%d mode=%s padding=%+v indices=%t",
		p.engine.Name(), shape, k.H, k.W, s.H, s.W, m, pad, withIndices)

	start := time.Now()
	out, idx, err := p.engine.MaxPool(in, k, s, pad, withIndices)
	if err != nil {
		return nil, nil, err
	}
	if p.observe != nil {
		p.observe(p.engine.Name(), time.Since(start))
	}
	return out, idx, nil
}
