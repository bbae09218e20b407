package pool_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridpool-ml/gridpool/internal/engine/direct"
	"github.com/gridpool-ml/gridpool/internal/pool"
	"github.com/gridpool-ml/gridpool/internal/tensor"
)

func TestMaxPoolBackward_RoutesToMaxPositions(t *testing.T) {
	in, err := tensor.FromFloat32(tensor.Shape{1, 1, 4, 4}, []float32{
		1, 2, 3, 4,
		5, 6, 7, 8,
		9, 10, 11, 12,
		13, 14, 15, 16,
	})
	require.NoError(t, err)

	k, s := pool.Square(2), pool.Step(2)
	_, idx, err := direct.New().MaxPool(in, k, s, pool.Padding{}, true)
	require.NoError(t, err)

	grad, err := tensor.FromFloat32(tensor.Shape{1, 1, 2, 2}, []float32{10, 20, 30, 40})
	require.NoError(t, err)

	inGrad, err := pool.MaxPoolBackward(grad, idx, in.Shape(), k, s, pool.Padding{})
	require.NoError(t, err)

	// Each window's max is its bottom-right element; everything else
	// receives zero.
	want := []float32{
		0, 0, 0, 0,
		0, 10, 0, 20,
		0, 0, 0, 0,
		0, 30, 0, 40,
	}
	assert.Equal(t, want, inGrad.AsFloat32())
}

func TestMaxPoolBackward_FoldsReflectedSelections(t *testing.T) {
	// 2x2 input, 3x3 kernel, stride 1, SAME: every padded window sees the
	// bottom-right pixel (the global max) either directly or mirrored, so
	// all four output gradients must land on it.
	in, err := tensor.FromFloat64(tensor.Shape{1, 1, 2, 2}, []float64{
		1, 2,
		3, 4,
	})
	require.NoError(t, err)

	k, s := pool.Square(3), pool.Step(1)
	pad, err := pool.ComputePadding(2, 2, k, s, pool.Same())
	require.NoError(t, err)
	require.Equal(t, pool.Padding{Left: 1, Right: 1, Top: 1, Bottom: 1}, pad)

	out, idx, err := direct.New().MaxPool(in, k, s, pad, true)
	require.NoError(t, err)
	for _, v := range out.AsFloat64() {
		require.Equal(t, 4.0, v)
	}

	grad, err := tensor.FromFloat64(tensor.Shape{1, 1, 2, 2}, []float64{1, 1, 1, 1})
	require.NoError(t, err)

	inGrad, err := pool.MaxPoolBackward(grad, idx, in.Shape(), k, s, pad)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 4}, inGrad.AsFloat64())
}

func TestMaxPoolBackward_ConservesGradientMass(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	in, err := tensor.Randn(tensor.Shape{2, 3, 7, 6}, tensor.Float64, rng)
	require.NoError(t, err)

	k, s := pool.Square(3), pool.Step(2)
	pad, err := pool.ComputePadding(7, 6, k, s, pool.Same())
	require.NoError(t, err)

	_, idx, err := direct.New().MaxPool(in, k, s, pad, true)
	require.NoError(t, err)

	grad, err := tensor.Randn(idx.Shape(), tensor.Float64, rng)
	require.NoError(t, err)

	inGrad, err := pool.MaxPoolBackward(grad, idx, in.Shape(), k, s, pad)
	require.NoError(t, err)

	// Scatter only moves gradient, it never creates or drops any.
	var wantSum, gotSum float64
	for _, v := range grad.AsFloat64() {
		wantSum += v
	}
	for _, v := range inGrad.AsFloat64() {
		gotSum += v
	}
	assert.InDelta(t, wantSum, gotSum, 1e-9)
}

func TestMaxPoolBackward_Validation(t *testing.T) {
	inShape := tensor.Shape{1, 1, 4, 4}
	k, s := pool.Square(2), pool.Step(2)

	grad, err := tensor.NewRaw(tensor.Shape{1, 1, 2, 2}, tensor.Float32)
	require.NoError(t, err)
	idx, err := tensor.NewRaw(tensor.Shape{1, 1, 2, 2}, tensor.Int64)
	require.NoError(t, err)

	_, err = pool.MaxPoolBackward(grad, nil, inShape, k, s, pool.Padding{})
	assert.ErrorIs(t, err, pool.ErrShapeMismatch, "nil index map")

	wrongShape, err := tensor.NewRaw(tensor.Shape{1, 1, 2, 3}, tensor.Int64)
	require.NoError(t, err)
	_, err = pool.MaxPoolBackward(grad, wrongShape, inShape, k, s, pool.Padding{})
	assert.ErrorIs(t, err, pool.ErrShapeMismatch, "index map shape")

	floatIdx, err := tensor.NewRaw(tensor.Shape{1, 1, 2, 2}, tensor.Float32)
	require.NoError(t, err)
	_, err = pool.MaxPoolBackward(grad, floatIdx, inShape, k, s, pool.Padding{})
	assert.ErrorIs(t, err, pool.ErrUnsupportedDType, "index map dtype")

	_, err = pool.MaxPoolBackward(grad, idx, inShape, k, s, pool.Padding{})
	assert.NoError(t, err)

	// Geometry that would not have produced this gradient shape.
	_, err = pool.MaxPoolBackward(grad, idx, tensor.Shape{1, 1, 8, 8}, k, s, pool.Padding{})
	assert.ErrorIs(t, err, pool.ErrShapeMismatch, "forward geometry")

	// An offset outside [0, kernel taps).
	idx.AsInt64()[0] = 4
	_, err = pool.MaxPoolBackward(grad, idx, inShape, k, s, pool.Padding{})
	assert.ErrorIs(t, err, pool.ErrShapeMismatch, "offset out of range")
}
