package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphereMinimal(t *testing.T) {
	m := Sphere(1, 3)

	assert.Equal(t, 5, m.VertexCount())
	assert.Equal(t, 6, m.TriangleCount())
	assert.Equal(t, []uint32{
		0, 2, 1, 0, 3, 2, 0, 1, 3,
		4, 1, 2, 4, 2, 3, 4, 3, 1,
	}, m.Indices)
}

func TestSphereCounts(t *testing.T) {
	m := Sphere(3, 4)

	assert.Equal(t, 14, m.VertexCount())
	assert.Equal(t, 24, m.TriangleCount())
	assert.Len(t, m.Normals, 14)
}

func TestSpherePoles(t *testing.T) {
	m := Sphere(5, 8)
	last := m.VertexCount() - 1

	assert.Equal(t, mgl32.Vec3{0, 1, 0}, m.Vertices[0])
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, m.Normals[0])
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, m.Vertices[last])
	assert.Equal(t, mgl32.Vec3{0, -1, 0}, m.Normals[last])

	// no interior ring may coincide with a pole
	for i := 1; i < last; i++ {
		assert.Less(t, m.Vertices[i].Y(), float32(1))
		assert.Greater(t, m.Vertices[i].Y(), float32(-1))
	}
}

func TestSphereRingLatitudes(t *testing.T) {
	const rings, slices = 3, 6
	m := Sphere(rings, slices)

	// phi = π·i/4 puts the rings at y = cos(π/4), 0, -cos(π/4)
	want := []float32{0.70710677, 0, -0.70710677}
	for ring, y := range want {
		for slice := 0; slice < slices; slice++ {
			assert.InDelta(t, y, m.Vertices[1+ring*slices+slice].Y(), 1e-6)
		}
	}
}

func TestSphereNormalsMatchPositions(t *testing.T) {
	m := Sphere(7, 11)

	for i, v := range m.Vertices {
		assert.InDelta(t, 1, v.Len(), 1e-5, "vertex %d off the unit sphere", i)
		assert.True(t, v.ApproxEqualThreshold(m.Normals[i], 1e-6), "vertex %d", i)
	}
}

func TestSphereFirstTriangleWinding(t *testing.T) {
	m := Sphere(4, 6)

	v0, v1, v2 := m.Vertices[m.Indices[0]], m.Vertices[m.Indices[1]], m.Vertices[m.Indices[2]]
	face := v1.Sub(v0).Cross(v2.Sub(v0))
	require.Greater(t, face.Dot(m.Normals[m.Indices[0]]), float32(0))
}
