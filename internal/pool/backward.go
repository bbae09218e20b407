package pool

import (
	"github.com/pkg/errors"

	"github.com/gridpool-ml/gridpool/internal/tensor"
)

// MaxPoolBackward scatters an output gradient back through a pooling call.
//
// grad is the gradient w.r.t. the pooled output [N, C, outH, outW], indices
// is the IndexMap produced by the matching forward call with withIndices
// true, and inShape/k/s/p describe that call's input and geometry. Each
// output cell routes its gradient to the single window element the forward
// pass selected; positions that fell in the reflected margin fold back
// additively onto their mirrored source pixels.
//
// The result is the gradient w.r.t. the unpadded input, shape inShape.
func MaxPoolBackward(grad, indices *tensor.RawTensor, inShape tensor.Shape, k Kernel, s Stride, p Padding) (*tensor.RawTensor, error) {
	if indices == nil {
		return nil, errors.Wrap(ErrShapeMismatch, "nil index map")
	}
	if indices.DType() != tensor.Int64 {
		return nil, errors.Wrapf(ErrUnsupportedDType, "index map dtype %s, want int64", indices.DType())
	}
	if !grad.DType().IsFloat() {
		return nil, errors.Wrapf(ErrUnsupportedDType, "gradient dtype %s", grad.DType())
	}
	if grad.Shape().Rank() != 4 || !indices.Shape().Equal(grad.Shape()) {
		return nil, errors.Wrapf(ErrShapeMismatch, "gradient %v vs index map %v", grad.Shape(), indices.Shape())
	}

	// Re-derive the forward geometry from the recorded input shape.
	g, err := resolveShape(inShape, k, s, p)
	if err != nil {
		return nil, err
	}
	gradShape := grad.Shape()
	if gradShape[0] != g.N || gradShape[1] != g.C || gradShape[2] != g.OutH || gradShape[3] != g.OutW {
		return nil, errors.Wrapf(ErrShapeMismatch,
			"gradient %v does not match forward output [%d %d %d %d]", gradShape, g.N, g.C, g.OutH, g.OutW)
	}

	taps := k.H * k.W
	idxData := indices.AsInt64()
	for i, off := range idxData {
		if off < 0 || off >= int64(taps) {
			return nil, errors.Wrapf(ErrShapeMismatch,
				"index map entry %d out of range: %d not in [0,%d)", i, off, taps)
		}
	}

	inGrad, err := tensor.NewRaw(inShape, grad.DType())
	if err != nil {
		return nil, err
	}

	switch grad.DType() {
	case tensor.Float32:
		scatterFloat32(inGrad.AsFloat32(), grad.AsFloat32(), idxData, g, k, s, p)
	case tensor.Float64:
		scatterFloat64(inGrad.AsFloat64(), grad.AsFloat64(), idxData, g, k, s, p)
	}
	return inGrad, nil
}

func scatterFloat32(inGrad, grad []float32, idx []int64, g Geometry, k Kernel, s Stride, p Padding) {
	outPlane := g.OutH * g.OutW
	inPlane := g.H * g.W

	for plane := 0; plane < g.Planes(); plane++ {
		dst := inGrad[plane*inPlane : (plane+1)*inPlane]
		src := grad[plane*outPlane : (plane+1)*outPlane]
		srcIdx := idx[plane*outPlane : (plane+1)*outPlane]

		i := 0
		for oy := 0; oy < g.OutH; oy++ {
			for ox := 0; ox < g.OutW; ox++ {
				off := int(srcIdx[i])
				py := oy*s.H + off/k.W
				px := ox*s.W + off%k.W
				y := Mirror(py-p.Top, g.H)
				x := Mirror(px-p.Left, g.W)
				dst[y*g.W+x] += src[i]
				i++
			}
		}
	}
}

func scatterFloat64(inGrad, grad []float64, idx []int64, g Geometry, k Kernel, s Stride, p Padding) {
	outPlane := g.OutH * g.OutW
	inPlane := g.H * g.W

	for plane := 0; plane < g.Planes(); plane++ {
		dst := inGrad[plane*inPlane : (plane+1)*inPlane]
		src := grad[plane*outPlane : (plane+1)*outPlane]
		srcIdx := idx[plane*outPlane : (plane+1)*outPlane]

		i := 0
		for oy := 0; oy < g.OutH; oy++ {
			for ox := 0; ox < g.OutW; ox++ {
				off := int(srcIdx[i])
				py := oy*s.H + off/k.W
				px := ox*s.W + off%k.W
				y := Mirror(py-p.Top, g.H)
				x := Mirror(px-p.Left, g.W)
				dst[y*g.W+x] += src[i]
				i++
			}
		}
	}
}
