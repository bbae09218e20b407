// Package direct implements max pooling as a straightforward window scan,
// one output cell at a time.
package direct

import (
	"github.com/gridpool-ml/gridpool/internal/pool"
	"github.com/gridpool-ml/gridpool/internal/tensor"
)

// Engine is the array-indexing realization of pool.Engine. It is the
// reference the vectorized engine is checked against.
type Engine struct{}

// New creates a direct engine.
func New() *Engine {
	return &Engine{}
}

// Name returns the engine name.
func (e *Engine) Name() string {
	return "direct"
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

	switch in.DType() {
	case tensor.Float32:
		if withIndices {
			maxPoolIdxFloat32(out.AsFloat32(), idxData, padded.AsFloat32(), g, k, s)
		} else {
			maxPoolFloat32(out.AsFloat32(), padded.AsFloat32(), g, k, s)
		}
	case tensor.Float64:
		if withIndices {
			maxPoolIdxFloat64(out.AsFloat64(), idxData, padded.AsFloat64(), g, k, s)
		} else {
			maxPoolFloat64(out.AsFloat64(), padded.AsFloat64(), g, k, s)
		}
	}
	return out, idx, nil
}

// maxPoolFloat32 scans every window and keeps the running maximum.
// A NaN wins over any finite best and is never displaced afterwards, so
// the first NaN in scan order poisons the window.
func maxPoolFloat32(out, padded []float32, g pool.Geometry, k pool.Kernel, s pool.Stride) {
	planeSize := g.PaddedH * g.PaddedW
	outPlane := g.OutH * g.OutW

	for plane := 0; plane < g.Planes(); plane++ {
		src := padded[plane*planeSize : (plane+1)*planeSize]
		dst := out[plane*outPlane : (plane+1)*outPlane]

		for oy := 0; oy < g.OutH; oy++ {
			rowStart := oy * s.H
			dstRow := dst[oy*g.OutW:][:g.OutW]

			for ox := 0; ox < g.OutW; ox++ {
				colStart := ox * s.W

				best := src[rowStart*g.PaddedW+colStart]
				locked := best != best // NaN check
				for kh := 0; kh < k.H; kh++ {
					row := src[(rowStart+kh)*g.PaddedW+colStart:][:k.W]
					for kw := 0; kw < k.W; kw++ {
						v := row[kw]
						if !locked && (v != v || v > best) {
							best = v
							locked = v != v
						}
					}
				}
				dstRow[ox] = best
			}
		}
	}
}

// maxPoolIdxFloat32 additionally records the flat in-window offset of the
// selected maximum, with ties going to the first in row-major scan order.
func maxPoolIdxFloat32(out []float32, outIdx []int64, padded []float32, g pool.Geometry, k pool.Kernel, s pool.Stride) {
	planeSize := g.PaddedH * g.PaddedW
	outPlane := g.OutH * g.OutW

	for plane := 0; plane < g.Planes(); plane++ {
		src := padded[plane*planeSize : (plane+1)*planeSize]
		dst := out[plane*outPlane : (plane+1)*outPlane]
		dstIdx := outIdx[plane*outPlane : (plane+1)*outPlane]

		for oy := 0; oy < g.OutH; oy++ {
			rowStart := oy * s.H
			dstRow := dst[oy*g.OutW:][:g.OutW]
			dstIdxRow := dstIdx[oy*g.OutW:][:g.OutW]

			for ox := 0; ox < g.OutW; ox++ {
				colStart := ox * s.W

				best := src[rowStart*g.PaddedW+colStart]
				bestTap := 0
				locked := best != best
				tap := 0
				for kh := 0; kh < k.H; kh++ {
					row := src[(rowStart+kh)*g.PaddedW+colStart:][:k.W]
					for kw := 0; kw < k.W; kw++ {
						v := row[kw]
						if !locked && (v != v || v > best) {
							best = v
							bestTap = tap
							locked = v != v
						}
						tap++
					}
				}
				dstRow[ox] = best
				dstIdxRow[ox] = int64(bestTap)
			}
		}
	}
}

func maxPoolFloat64(out, padded []float64, g pool.Geometry, k pool.Kernel, s pool.Stride) {
	planeSize := g.PaddedH * g.PaddedW
	outPlane := g.OutH * g.OutW

	for plane := 0; plane < g.Planes(); plane++ {
		src := padded[plane*planeSize : (plane+1)*planeSize]
		dst := out[plane*outPlane : (plane+1)*outPlane]

		for oy := 0; oy < g.OutH; oy++ {
			rowStart := oy * s.H
			dstRow := dst[oy*g.OutW:][:g.OutW]

			for ox := 0; ox < g.OutW; ox++ {
				colStart := ox * s.W

				best := src[rowStart*g.PaddedW+colStart]
				locked := best != best
				for kh := 0; kh < k.H; kh++ {
					row := src[(rowStart+kh)*g.PaddedW+colStart:][:k.W]
					for kw := 0; kw < k.W; kw++ {
						v := row[kw]
						if !locked && (v != v || v > best) {
							best = v
							locked = v != v
						}
					}
				}
				dstRow[ox] = best
			}
		}
	}
}

func maxPoolIdxFloat64(out []float64, outIdx []int64, padded []float64, g pool.Geometry, k pool.Kernel, s pool.Stride) {
	planeSize := g.PaddedH * g.PaddedW
	outPlane := g.OutH * g.OutW

	for plane := 0; plane < g.Planes(); plane++ {
		src := padded[plane*planeSize : (plane+1)*planeSize]
		dst := out[plane*outPlane : (plane+1)*outPlane]
		dstIdx := outIdx[plane*outPlane : (plane+1)*outPlane]

		for oy := 0; oy < g.OutH; oy++ {
			rowStart := oy * s.H
			dstRow := dst[oy*g.OutW:][:g.OutW]
			dstIdxRow := dstIdx[oy*g.OutW:][:g.OutW]

			for ox := 0; ox < g.OutW; ox++ {
				colStart := ox * s.W

				best := src[rowStart*g.PaddedW+colStart]
				bestTap := 0
				locked := best != best
				tap := 0
				for kh := 0; kh < k.H; kh++ {
					row := src[(rowStart+kh)*g.PaddedW+colStart:][:k.W]
					for kw := 0; kw < k.W; kw++ {
						v := row[kw]
						if !locked && (v != v || v > best) {
							best = v
							bestTap = tap
							locked = v != v
						}
						tap++
					}
				}
				dstRow[ox] = best
				dstIdxRow[ox] = int64(bestTap)
			}
		}
	}
}
