// Package geometry generates closed parametric surface meshes (sphere and torus)
// from two tessellation parameters and exposes them as GPU-ready vertex, normal
// and index streams.
//
// Every generated Mesh upholds the same invariants:
//   - len(Normals) == len(Vertices), and normal i belongs to vertex i
//   - every index is < len(Vertices) and len(Indices) is a multiple of 3
//   - every normal has unit length
//   - triangles are wound counter-clockwise when viewed from outside the surface
//   - every undirected edge is shared by exactly two triangles (closed 2-manifold)
package geometry

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxUint16Vertices is the largest vertex count whose indices can all be encoded
// in a 16-bit index buffer. Meshes with more vertices need 32-bit indices.
const MaxUint16Vertices = math.MaxUint16

// IndexFormat is the element width a consumer should use for a mesh's index buffer.
type IndexFormat uint8

const (
	// IndexFormatUint16 encodes each index as a little-endian uint16.
	IndexFormatUint16 IndexFormat = iota
	// IndexFormatUint32 encodes each index as a little-endian uint32.
	IndexFormatUint32
)

// Size returns the width of one index in bytes.
//
// Returns:
//   - int: 2 for IndexFormatUint16, 4 for IndexFormatUint32
func (f IndexFormat) Size() int {
	if f == IndexFormatUint16 {
		return 2
	}
	return 4
}

func (f IndexFormat) String() string {
	switch f {
	case IndexFormatUint16:
		return "uint16"
	case IndexFormatUint32:
		return "uint32"
	default:
		return fmt.Sprintf("IndexFormat(%d)", uint8(f))
	}
}

// IndexFormatFor returns the narrowest index format able to address vertexCount vertices.
//
// Parameters:
//   - vertexCount: the number of vertices the index buffer refers to
//
// Returns:
//   - IndexFormat: IndexFormatUint16 when every index fits in 16 bits, IndexFormatUint32 otherwise
func IndexFormatFor(vertexCount int) IndexFormat {
	if vertexCount <= MaxUint16Vertices {
		return IndexFormatUint16
	}
	return IndexFormatUint32
}

// Mesh is the output of a surface generator: per-vertex positions and normals plus
// a triangle list. A Mesh is built fresh on every generation and is never modified
// by the generator after it is returned.
type Mesh struct {
	// Vertices are the vertex positions in index order.
	Vertices []mgl32.Vec3

	// Normals are the outward unit normals, one per vertex, in the same order as Vertices.
	Normals []mgl32.Vec3

	// Indices name one triangle per consecutive triple, wound counter-clockwise from outside.
	Indices []uint32
}

// newMesh allocates a Mesh with capacity for the given vertex and index counts.
func newMesh(vertexCount, indexCount int) *Mesh {
	return &Mesh{
		Vertices: make([]mgl32.Vec3, 0, vertexCount),
		Normals:  make([]mgl32.Vec3, 0, vertexCount),
		Indices:  make([]uint32, 0, indexCount),
	}
}

func (m *Mesh) addVertex(position, normal mgl32.Vec3) {
	m.Vertices = append(m.Vertices, position)
	m.Normals = append(m.Normals, normal)
}

func (m *Mesh) addTriangle(a, b, c int) {
	m.Indices = append(m.Indices, uint32(a), uint32(b), uint32(c))
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles described by Indices.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// FlatVertices returns the vertex positions as a flat slice with stride 3
// (x0, y0, z0, x1, y1, z1, ...). The returned slice is a copy.
//
// Returns:
//   - []float32: 3 * VertexCount() position components
func (m *Mesh) FlatVertices() []float32 {
	return flatten(m.Vertices)
}

// FlatNormals returns the vertex normals as a flat slice with stride 3, matching
// FlatVertices element for element. The returned slice is a copy.
//
// Returns:
//   - []float32: 3 * VertexCount() normal components
func (m *Mesh) FlatNormals() []float32 {
	return flatten(m.Normals)
}

func flatten(vs []mgl32.Vec3) []float32 {
	out := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}

// IndexFormat reports the narrowest index width that can address every vertex of the mesh.
//
// Returns:
//   - IndexFormat: IndexFormatUint16 for meshes of at most MaxUint16Vertices vertices, IndexFormatUint32 otherwise
func (m *Mesh) IndexFormat() IndexFormat {
	return IndexFormatFor(m.VertexCount())
}

// IndexBytes encodes Indices little-endian using IndexFormat. 16-bit data is zero-padded
// to a multiple of 4 bytes so it can be copied straight into a GPU buffer; the padding is
// never referenced because draw calls use len(Indices).
//
// Returns:
//   - []byte: the encoded index stream
func (m *Mesh) IndexBytes() []byte {
	if m.IndexFormat() == IndexFormatUint32 {
		buf := make([]byte, len(m.Indices)*4)
		for i, idx := range m.Indices {
			binary.LittleEndian.PutUint32(buf[i*4:], idx)
		}
		return buf
	}

	size := len(m.Indices) * 2
	buf := make([]byte, (size+3)&^3)
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(idx))
	}
	return buf
}

// Bounds returns the axis-aligned bounding box of the vertex positions.
// An empty mesh yields two zero vectors.
//
// Returns:
//   - lo: the component-wise minimum position
//   - hi: the component-wise maximum position
func (m *Mesh) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return lo, hi
	}
	lo, hi = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], v[k])
			hi[k] = max(hi[k], v[k])
		}
	}
	return lo, hi
}

// BoundingRadius returns the largest distance from the origin to any vertex.
func (m *Mesh) BoundingRadius() float32 {
	var maxLenSq float32
	for _, v := range m.Vertices {
		if l := v.Dot(v); l > maxLenSq {
			maxLenSq = l
		}
	}
	return float32(math.Sqrt(float64(maxLenSq)))
}
