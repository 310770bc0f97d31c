package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestPerspectiveDepthRange(t *testing.T) {
	const near, far = 0.1, 100
	proj := Perspective(mgl32.DegToRad(45), 16.0/9.0, near, far)

	ndcDepth := func(z float32) float32 {
		clip := proj.Mul4x1(mgl32.Vec4{0, 0, -z, 1})
		return clip.Z() / clip.W()
	}
	assert.InDelta(t, 0, ndcDepth(near), 1e-5)
	assert.InDelta(t, 1, ndcDepth(far), 1e-5)
	assert.Greater(t, ndcDepth(10), ndcDepth(1))
}

func TestPerspectiveAspect(t *testing.T) {
	proj := Perspective(mgl32.DegToRad(90), 2, 1, 10)

	assert.InDelta(t, 1, proj[5], 1e-6)
	assert.InDelta(t, 0.5, proj[0], 1e-6)
	assert.Equal(t, float32(-1), proj[11])
	assert.Zero(t, proj[15])
}

func TestNormalMatrix(t *testing.T) {
	assert.Equal(t, mgl32.Ident4(), NormalMatrix(mgl32.Ident4()))
	assert.Equal(t, mgl32.Ident4(), NormalMatrix(mgl32.Mat4{}))

	scale := mgl32.Scale3D(2, 1, 1)
	n := NormalMatrix(scale).Mul4x1(mgl32.Vec4{1, 1, 0, 0})
	assert.InDelta(t, 0.5, n.X(), 1e-6)
	assert.InDelta(t, 1, n.Y(), 1e-6)
}

func TestSliceToBytes(t *testing.T) {
	assert.Nil(t, SliceToBytes([]float32{}))
	assert.Len(t, SliceToBytes([]mgl32.Vec3{{1, 2, 3}, {4, 5, 6}}), 24)
	assert.Equal(t, []byte{1, 0, 0, 0}, SliceToBytes([]uint32{1}))
}
