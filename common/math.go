package common

import (
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SliceToBytes converts any slice to a byte slice for GPU buffer uploads.
// Uses unsafe pointer operations to create a view into the original data.
// WARNING: The returned slice shares memory with the input - do not modify.
//
// Parameters:
//   - data: source slice of any type
//
// Returns:
//   - []byte: byte slice view of the input data, or nil if input is empty
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), int(size)*len(data))
}

// Perspective creates a right-handed perspective projection for WebGPU clip space,
// where depth runs from 0 at the near plane to 1 at the far plane.
// mgl32.Perspective targets OpenGL's [-1, 1] depth range and cannot be used directly.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix
func Perspective(fovY, aspect, near, far float32) mgl32.Mat4 {
	f := 1 / math32.Tan(fovY/2)

	var out mgl32.Mat4
	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1
	out[14] = (near * far) / (near - far)
	return out
}

// NormalMatrix returns the inverse transpose of the model matrix, which carries
// normals into world space under non-uniform scale. A singular model matrix
// yields the identity.
func NormalMatrix(model mgl32.Mat4) mgl32.Mat4 {
	if model.Det() == 0 {
		return mgl32.Ident4()
	}
	return model.Inv().Transpose()
}
