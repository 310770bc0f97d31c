package geometry

import (
	"encoding/binary"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexFormatFor(t *testing.T) {
	assert.Equal(t, IndexFormatUint16, IndexFormatFor(0))
	assert.Equal(t, IndexFormatUint16, IndexFormatFor(MaxUint16Vertices))
	assert.Equal(t, IndexFormatUint32, IndexFormatFor(MaxUint16Vertices+1))

	assert.Equal(t, 2, IndexFormatUint16.Size())
	assert.Equal(t, 4, IndexFormatUint32.Size())
	assert.Equal(t, "uint16", IndexFormatUint16.String())
	assert.Equal(t, "uint32", IndexFormatUint32.String())
}

func TestFlatStreams(t *testing.T) {
	m := Sphere(2, 3)
	vertices, normals := m.FlatVertices(), m.FlatNormals()

	require.Len(t, vertices, 3*m.VertexCount())
	require.Len(t, normals, 3*m.VertexCount())
	for i, v := range m.Vertices {
		assert.Equal(t, v[:], vertices[i*3:i*3+3])
		assert.Equal(t, m.Normals[i][:], normals[i*3:i*3+3])
	}

	vertices[0] = 99
	assert.NotEqual(t, float32(99), m.Vertices[0][0])
}

func TestIndexBytesUint16(t *testing.T) {
	m := Sphere(1, 3)
	b := m.IndexBytes()

	// 18 indices * 2 bytes = 36, already 4-byte aligned
	require.Len(t, b, 36)
	for i, idx := range m.Indices {
		assert.Equal(t, uint16(idx), binary.LittleEndian.Uint16(b[i*2:]))
	}
}

func TestIndexBytesPadding(t *testing.T) {
	m := &Mesh{
		Vertices: make([]mgl32.Vec3, 3),
		Normals:  make([]mgl32.Vec3, 3),
		Indices:  []uint32{0, 1, 2},
	}
	b := m.IndexBytes()

	assert.Equal(t, []byte{0, 0, 1, 0, 2, 0, 0, 0}, b)
}

func TestIndexBytesUint32(t *testing.T) {
	m := Torus(256, 256)
	require.Equal(t, IndexFormatUint32, m.IndexFormat())

	b := m.IndexBytes()
	require.Len(t, b, 4*len(m.Indices))
	last := len(m.Indices) - 1
	assert.Equal(t, m.Indices[last], binary.LittleEndian.Uint32(b[last*4:]))
}

func TestBounds(t *testing.T) {
	lo, hi := Sphere(9, 16).Bounds()
	assert.InDelta(t, -1, lo.Y(), 1e-6)
	assert.InDelta(t, 1, hi.Y(), 1e-6)

	lo, hi = Torus(16, 8).Bounds()
	outer := TorusMajorRadius + TorusMinorRadius
	assert.InDelta(t, -outer, lo.X(), 1e-5)
	assert.InDelta(t, outer, hi.X(), 1e-5)
	assert.InDelta(t, TorusMinorRadius, hi.Y(), 1e-5)

	lo, hi = (&Mesh{}).Bounds()
	assert.Equal(t, mgl32.Vec3{}, lo)
	assert.Equal(t, mgl32.Vec3{}, hi)
}

func TestBoundingRadius(t *testing.T) {
	assert.InDelta(t, 1, Sphere(4, 4).BoundingRadius(), 1e-6)
	assert.InDelta(t, TorusMajorRadius+TorusMinorRadius, Torus(8, 8).BoundingRadius(), 1e-6)
	assert.Zero(t, (&Mesh{}).BoundingRadius())
}
