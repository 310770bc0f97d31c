package geometry

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// TorusMajorRadius is the distance from the torus center to the centerline of its tube.
	TorusMajorRadius float32 = 1.0

	// TorusMinorRadius is the radius of the torus tube.
	TorusMinorRadius float32 = 0.3
)

// Torus generates a ring torus lying in the XZ plane, periodic in both parametric directions.
//
// Ring i sits at major angle phi = 2π·i/rings around the Y axis and slice j at minor angle
// theta = 2π·j/slices around the tube. Ring rings and slice slices are never emitted: the
// triangulation wraps back to ring 0 and slice 0, so there are no seam duplicates, no poles
// and no caps.
//
// The caller must pass rings >= 3 and slices >= 3 (see Generate, which clamps).
//
// Parameters:
//   - rings: the number of tube cross-sections around the major circle
//   - slices: the number of steps around each tube cross-section
//
// Returns:
//   - *Mesh: a closed mesh of rings·slices vertices and 2·rings·slices triangles
func Torus(rings, slices int) *Mesh {
	m := newMesh(torusVertexCount(rings, slices), torusIndexCount(rings, slices))

	for ring := 0; ring < rings; ring++ {
		phi := 2 * math32.Pi * float32(ring) / float32(rings)
		for slice := 0; slice < slices; slice++ {
			theta := 2 * math32.Pi * float32(slice) / float32(slices)
			m.addVertex(torusPoint(phi, theta))
		}
	}

	for ring := 0; ring < rings; ring++ {
		for slice := 0; slice < slices; slice++ {
			current := ring*slices + slice
			next := ring*slices + (slice+1)%slices
			nextRing := ((ring+1)%rings)*slices + slice
			nextRingNext := ((ring+1)%rings)*slices + (slice+1)%slices

			m.addTriangle(current, next, nextRing)
			m.addTriangle(next, nextRingNext, nextRing)
		}
	}

	return m
}

// torusPoint returns the surface position at (phi, theta) and its outward unit normal.
// The normal points from the nearest centerline point (R·cosφ, 0, R·sinφ) to the position,
// which is exact because every surface point lies at distance r from the centerline.
func torusPoint(phi, theta float32) (position, normal mgl32.Vec3) {
	sinPhi, cosPhi := math32.Sin(phi), math32.Cos(phi)
	tube := TorusMajorRadius + TorusMinorRadius*math32.Cos(theta)

	position = mgl32.Vec3{tube * cosPhi, TorusMinorRadius * math32.Sin(theta), tube * sinPhi}
	center := mgl32.Vec3{TorusMajorRadius * cosPhi, 0, TorusMajorRadius * sinPhi}
	return position, position.Sub(center).Normalize()
}

func torusVertexCount(rings, slices int) int {
	return rings * slices
}

func torusIndexCount(rings, slices int) int {
	return 3 * 2 * rings * slices
}
