package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Sphere generates a unit sphere by latitude/longitude sampling with explicit pole vertices.
//
// Vertex 0 is the north pole (0, 1, 0) and the last vertex is the south pole (0, -1, 0).
// Between them lie rings interior latitude rings of slices vertices each, at polar angle
// phi = π·i/(rings+1) for i in 1..rings, so no ring ever touches a pole. On the unit
// sphere every position is its own outward normal.
//
// The caller must pass rings >= 1 and slices >= 3 (see Generate, which clamps).
// Smaller values produce degenerate, non-manifold topology rather than an error.
//
// Parameters:
//   - rings: the number of interior latitude rings
//   - slices: the number of longitude steps around each ring
//
// Returns:
//   - *Mesh: a closed mesh of 2 + rings·slices vertices and 2·rings·slices triangles
func Sphere(rings, slices int) *Mesh {
	m := newMesh(sphereVertexCount(rings, slices), sphereIndexCount(rings, slices))

	north := mgl32.Vec3{0, 1, 0}
	m.addVertex(north, north)

	for ring := 1; ring <= rings; ring++ {
		phi := math32.Pi * float32(ring) / float32(rings+1)
		sinPhi, cosPhi := math32.Sin(phi), math32.Cos(phi)
		for slice := 0; slice < slices; slice++ {
			theta := 2 * math32.Pi * float32(slice) / float32(slices)
			p := mgl32.Vec3{sinPhi * math32.Cos(theta), cosPhi, sinPhi * math32.Sin(theta)}
			m.addVertex(p, p)
		}
	}

	south := mgl32.Vec3{0, -1, 0}
	m.addVertex(south, south)

	// north cap: pole fans out to the first ring
	for slice := 0; slice < slices; slice++ {
		m.addTriangle(0, 1+(slice+1)%slices, 1+slice)
	}

	for ring := 0; ring < rings-1; ring++ {
		for slice := 0; slice < slices; slice++ {
			current := 1 + ring*slices + slice
			next := 1 + ring*slices + (slice+1)%slices
			nextRing := 1 + (ring+1)*slices + slice
			nextRingNext := 1 + (ring+1)*slices + (slice+1)%slices

			m.addTriangle(current, next, nextRing)
			m.addTriangle(next, nextRingNext, nextRing)
		}
	}

	// south cap: last ring fans into the pole
	last := m.VertexCount() - 1
	for slice := 0; slice < slices; slice++ {
		m.addTriangle(last, last-slices+slice, last-slices+(slice+1)%slices)
	}

	return m
}

func sphereVertexCount(rings, slices int) int {
	return 2 + rings*slices
}

func sphereIndexCount(rings, slices int) int {
	return 3 * 2 * rings * slices
}
