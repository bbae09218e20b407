// Package vector implements max pooling as a tap-ordered batch sweep: one
// pass per kernel tap updates every output cell of a plane, and planes are
// distributed across worker goroutines.
package vector

import (
	"github.com/gridpool-ml/gridpool/internal/parallel"
	"github.com/gridpool-ml/gridpool/internal/pool"
	"github.com/gridpool-ml/gridpool/internal/tensor"
)

// Engine is the vectorized realization of pool.Engine.
//
// Instead of reducing one window at a time, it walks the kernel taps in
// window scan order and folds each tap's strided slice into the whole
// output plane. Because taps are visited in exactly the order the direct
// engine scans a window, the first-max tie-break and the NaN rule come out
// bit-identical. All (batch, channel) planes are independent, so they run
// under internal/parallel with each goroutine owning disjoint output rows.
type Engine struct {
	cfg parallel.Config
}

// New creates a vector engine with machine-default parallelism.
func New() *Engine {
	return &Engine{cfg: parallel.Default()}
}

// NewWithConfig creates a vector engine with explicit parallelism, e.g.
// parallel.Sequential() for deterministic profiling.
func NewWithConfig(cfg parallel.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Name returns the engine name.
func (e *Engine) Name() string {
	return "vector"
}

// MaxPool implements pool.Engine.
func (e *Engine) MaxPool(in *tensor.RawTensor, k pool.Kernel, s pool.Stride, p pool.Padding, withIndices bool) (*tensor.RawTensor, *tensor.RawTensor, error) {
	g, err := pool.Resolve(in, k, s, p)
	if err != nil {
		return nil, nil, err
	}
	padded, err := pool.ReflectPad(in, p)
	if err != nil {
		return nil, nil, err
	}

	out, err := tensor.NewRaw(tensor.Shape{g.N, g.C, g.OutH, g.OutW}, in.DType())
	if err != nil {
		return nil, nil, err
	}

	var idx *tensor.RawTensor
	var idxData []int64
	if withIndices {
		idx, err = tensor.NewRaw(out.Shape(), tensor.Int64)
		if err != nil {
			return nil, nil, err
		}
		idxData = idx.AsInt64()
	}

	planeSize := g.PaddedH * g.PaddedW
	outPlane := g.OutH * g.OutW

	switch in.DType() {
	case tensor.Float32:
		src := padded.AsFloat32()
		dst := out.AsFloat32()
		e.cfg.For(g.Planes(), func(plane int) {
			srcPlane := src[plane*planeSize : (plane+1)*planeSize]
			dstPlane := dst[plane*outPlane : (plane+1)*outPlane]
			if withIndices {
				sweepIdxFloat32(dstPlane, idxData[plane*outPlane:(plane+1)*outPlane], srcPlane, g, k, s)
			} else {
				sweepFloat32(dstPlane, srcPlane, g, k, s)
			}
		})
	case tensor.Float64:
		src := padded.AsFloat64()
		dst := out.AsFloat64()
		e.cfg.For(g.Planes(), func(plane int) {
			srcPlane := src[plane*planeSize : (plane+1)*planeSize]
			dstPlane := dst[plane*outPlane : (plane+1)*outPlane]
			if withIndices {
				sweepIdxFloat64(dstPlane, idxData[plane*outPlane:(plane+1)*outPlane], srcPlane, g, k, s)
			} else {
				sweepFloat64(dstPlane, srcPlane, g, k, s)
			}
		})
	}
	return out, idx, nil
}

// sweepFloat32 folds kernel taps into one output plane. Tap 0 seeds every
// cell; later taps replace a cell only while it is not NaN-locked and the
// tap value is strictly greater (or the first NaN seen).
func sweepFloat32(dst, src []float32, g pool.Geometry, k pool.Kernel, s pool.Stride) {
	// Tap (0,0) seed.
	for oy := 0; oy < g.OutH; oy++ {
		srcRow := src[oy*s.H*g.PaddedW:]
		dstRow := dst[oy*g.OutW:][:g.OutW]
		for ox := 0; ox < g.OutW; ox++ {
			dstRow[ox] = srcRow[ox*s.W]
		}
	}

	for kh := 0; kh < k.H; kh++ {
		for kw := 0; kw < k.W; kw++ {
			if kh == 0 && kw == 0 {
				continue
			}
			for oy := 0; oy < g.OutH; oy++ {
				srcRow := src[(oy*s.H+kh)*g.PaddedW+kw:]
				dstRow := dst[oy*g.OutW:][:g.OutW]
				for ox := 0; ox < g.OutW; ox++ {
					cur := dstRow[ox]
					if cur != cur {
						continue // NaN-locked
					}
					v := srcRow[ox*s.W]
					if v != v || v > cur {
						dstRow[ox] = v
					}
				}
			}
		}
	}
}

func sweepIdxFloat32(dst []float32, dstIdx []int64, src []float32, g pool.Geometry, k pool.Kernel, s pool.Stride) {
	for oy := 0; oy < g.OutH; oy++ {
		srcRow := src[oy*s.H*g.PaddedW:]
		dstRow := dst[oy*g.OutW:][:g.OutW]
		for ox := 0; ox < g.OutW; ox++ {
			dstRow[ox] = srcRow[ox*s.W]
		}
	}
	// Int64 tensors start zeroed, which is exactly "tap 0 selected".

	for kh := 0; kh < k.H; kh++ {
		for kw := 0; kw < k.W; kw++ {
			if kh == 0 && kw == 0 {
				continue
			}
			tap := int64(kh*k.W + kw)
			for oy := 0; oy < g.OutH; oy++ {
				srcRow := src[(oy*s.H+kh)*g.PaddedW+kw:]
				dstRow := dst[oy*g.OutW:][:g.OutW]
				idxRow := dstIdx[oy*g.OutW:][:g.OutW]
				for ox := 0; ox < g.OutW; ox++ {
					cur := dstRow[ox]
					if cur != cur {
						continue
					}
					v := srcRow[ox*s.W]
					if v != v || v > cur {
						dstRow[ox] = v
						idxRow[ox] = tap
					}
				}
			}
		}
	}
}

func sweepFloat64(dst, src []float64, g pool.Geometry, k pool.Kernel, s pool.Stride) {
	for oy := 0; oy < g.OutH; oy++ {
		srcRow := src[oy*s.H*g.PaddedW:]
		dstRow := dst[oy*g.OutW:][:g.OutW]
		for ox := 0; ox < g.OutW; ox++ {
			dstRow[ox] = srcRow[ox*s.W]
		}
	}

	for kh := 0; kh < k.H; kh++ {
		for kw := 0; kw < k.W; kw++ {
			if kh == 0 && kw == 0 {
				continue
			}
			for oy := 0; oy < g.OutH; oy++ {
				srcRow := src[(oy*s.H+kh)*g.PaddedW+kw:]
				dstRow := dst[oy*g.OutW:][:g.OutW]
				for ox := 0; ox < g.OutW; ox++ {
					cur := dstRow[ox]
					if cur != cur {
						continue
					}
					v := srcRow[ox*s.W]
					if v != v || v > cur {
						dstRow[ox] = v
					}
				}
			}
		}
	}
}

func sweepIdxFloat64(dst []float64, dstIdx []int64, src []float64, g pool.Geometry, k pool.Kernel, s pool.Stride) {
	for oy := 0; oy < g.OutH; oy++ {
		srcRow := src[oy*s.H*g.PaddedW:]
		dstRow := dst[oy*g.OutW:][:g.OutW]
		for ox := 0; ox < g.OutW; ox++ {
			dstRow[ox] = srcRow[ox*s.W]
		}
	}

	for kh := 0; kh < k.H; kh++ {
		for kw := 0; kw < k.W; kw++ {
			if kh == 0 && kw == 0 {
				continue
			}
			tap := int64(kh*k.W + kw)
			for oy := 0; oy < g.OutH; oy++ {
				srcRow := src[(oy*s.H+kh)*g.PaddedW+kw:]
				dstRow := dst[oy*g.OutW:][:g.OutW]
				idxRow := dstIdx[oy*g.OutW:][:g.OutW]
				for ox := 0; ox < g.OutW; ox++ {
					cur := dstRow[ox]
					if cur != cur {
						continue
					}
					v := srcRow[ox*s.W]
					if v != v || v > cur {
						dstRow[ox] = v
						idxRow[ox] = tap
					}
				}
			}
		}
	}
}
