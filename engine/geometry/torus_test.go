package geometry

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestTorusMinimal(t *testing.T) {
	m := Torus(3, 3)

	assert.Equal(t, 9, m.VertexCount())
	assert.Equal(t, 18, m.TriangleCount())
	assert.Len(t, m.Normals, 9)
}

func TestTorusHasNoPoles(t *testing.T) {
	m := Torus(3, 3)

	for i, v := range m.Vertices {
		// every vertex sits on the tube, at least R-r from the Y axis
		radial := math32.Hypot(v.X(), v.Z())
		assert.GreaterOrEqual(t, radial, TorusMajorRadius-TorusMinorRadius-1e-6, "vertex %d", i)
	}
}

func TestTorusOnTube(t *testing.T) {
	m := Torus(12, 8)

	for i, v := range m.Vertices {
		radial := math32.Hypot(v.X(), v.Z())
		distance := math32.Hypot(radial-TorusMajorRadius, v.Y())
		assert.InDelta(t, TorusMinorRadius, distance, 1e-5, "vertex %d", i)
	}
}

func TestTorusPeriodicity(t *testing.T) {
	const rings, slices = 5, 4
	m := Torus(rings, slices)

	for slice := 0; slice < slices; slice++ {
		theta := 2 * math32.Pi * float32(slice) / float32(slices)
		// ring index rings would be phi = 2π, which must land back on ring 0
		p, n := torusPoint(2*math32.Pi, theta)
		assert.Less(t, p.Sub(m.Vertices[slice]).Len(), float32(1e-5), "slice %d position", slice)
		assert.Less(t, n.Sub(m.Normals[slice]).Len(), float32(1e-5), "slice %d normal", slice)
	}

	// the last ring's band triangles refer back to ring 0 instead of a seam copy
	lastBand := m.Indices[(rings-1)*slices*6:]
	var wraps bool
	for _, idx := range lastBand {
		if int(idx) < slices {
			wraps = true
		}
		assert.Less(t, int(idx), rings*slices)
	}
	assert.True(t, wraps)
}

func TestTorusOuterEquator(t *testing.T) {
	m := Torus(4, 4)

	// ring 0, slice 0 is the outermost point on the +X axis
	assert.InDelta(t, TorusMajorRadius+TorusMinorRadius, m.Vertices[0].X(), 1e-6)
	assert.InDelta(t, 0, m.Vertices[0].Y(), 1e-6)
	assert.InDelta(t, 1, m.Normals[0].X(), 1e-6)
}
