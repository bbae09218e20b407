package pool

import (
	"github.com/pkg/errors"

	"github.com/gridpool-ml/gridpool/internal/tensor"
)

// Mirror maps a coordinate relative to the unpadded origin back to its
// source coordinate on an axis of size n, reflecting across the boundary
// without repeating the boundary element:
//
//	i:   -2 -1 | 0 1 2 3 | 4 5
//	src:  2  1 | 0 1 2 3 | 2 1
//
// Valid while the overhang is at most n-1 on either side. The backward
// scatter uses the same map to fold padded positions onto their sources.
func Mirror(i, n int) int {
	if i < 0 {
		return -i
	}
	if i >= n {
		return 2*(n-1) - i
	}
	return i
}

// ReflectPad returns a fresh tensor with the four padding amounts applied
// to the two spatial axes of a [N, C, H, W] input, filling the margin by
// mirroring interior values. The input is never modified.
func ReflectPad(in *tensor.RawTensor, p Padding) (*tensor.RawTensor, error) {
	shape := in.Shape()
	if shape.Rank() != 4 {
		return nil, errors.Wrapf(ErrShapeMismatch, "want 4D [N,C,H,W] input, got rank %d", shape.Rank())
	}
	if !p.nonNegative() {
		return nil, errors.Wrapf(ErrInvalidDimension, "padding %+v must be non-negative", p)
	}

	n, c, h, w := shape[0], shape[1], shape[2], shape[3]
	if p.Top >= h || p.Bottom >= h || p.Left >= w || p.Right >= w {
		return nil, errors.Wrapf(ErrPaddingTooLarge, "padding %+v on %dx%d input", p, h, w)
	}
	if p == (Padding{}) {
		return in.Clone(), nil
	}

	ph := h + p.Top + p.Bottom
	pw := w + p.Left + p.Right
	out, err := tensor.NewRaw(tensor.Shape{n, c, ph, pw}, in.DType())
	if err != nil {
		return nil, err
	}

	switch in.DType() {
	case tensor.Float32:
		reflectPadFloat32(out.AsFloat32(), in.AsFloat32(), n*c, h, w, ph, pw, p.Top, p.Left)
	case tensor.Float64:
		reflectPadFloat64(out.AsFloat64(), in.AsFloat64(), n*c, h, w, ph, pw, p.Top, p.Left)
	default:
		return nil, errors.Wrapf(ErrUnsupportedDType, "%s", in.DType())
	}
	return out, nil
}

func reflectPadFloat32(dst, src []float32, planes, h, w, ph, pw, top, left int) {
	for plane := 0; plane < planes; plane++ {
		srcPlane := src[plane*h*w : (plane+1)*h*w]
		dstPlane := dst[plane*ph*pw : (plane+1)*ph*pw]

		for py := 0; py < ph; py++ {
			srcRow := srcPlane[Mirror(py-top, h)*w:][:w]
			dstRow := dstPlane[py*pw:][:pw]

			for px := 0; px < left; px++ {
				dstRow[px] = srcRow[Mirror(px-left, w)]
			}
			copy(dstRow[left:left+w], srcRow)
			for px := left + w; px < pw; px++ {
				dstRow[px] = srcRow[Mirror(px-left, w)]
			}
		}
	}
}

func reflectPadFloat64(dst, src []float64, planes, h, w, ph, pw, top, left int) {
	for plane := 0; plane < planes; plane++ {
		srcPlane := src[plane*h*w : (plane+1)*h*w]
		dstPlane := dst[plane*ph*pw : (plane+1)*ph*pw]

		for py := 0; py < ph; py++ {
			srcRow := srcPlane[Mirror(py-top, h)*w:][:w]
			dstRow := dstPlane[py*pw:][:pw]

			for px := 0; px < left; px++ {
				dstRow[px] = srcRow[Mirror(px-left, w)]
			}
			copy(dstRow[left:left+w], srcRow)
			for px := left + w; px < pw; px++ {
				dstRow[px] = srcRow[Mirror(px-left, w)]
			}
		}
	}
}
