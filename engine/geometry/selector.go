package geometry

import "fmt"

// Minimum tessellation parameters accepted by the generators. Generate clamps to these.
const (
	// SphereMinRings is the fewest interior rings a sphere can have (caps only).
	SphereMinRings = 1

	// TorusMinRings is the fewest tube cross-sections that keep the torus a 2-manifold.
	TorusMinRings = 3

	// MinSlices is the fewest slices for either surface.
	MinSlices = 3
)

// Clamp raises rings and slices to the minimums of the given surface kind.
// Unknown kinds are clamped as spheres.
//
// Parameters:
//   - kind: the surface kind whose minimums apply
//   - rings: the requested ring count
//   - slices: the requested slice count
//
// Returns:
//   - int: the clamped ring count
//   - int: the clamped slice count
func Clamp(kind Kind, rings, slices int) (int, int) {
	minRings := SphereMinRings
	if kind == KindTorus {
		minRings = TorusMinRings
	}
	return max(rings, minRings), max(slices, MinSlices)
}

// Generate clamps the tessellation parameters for kind and runs the matching generator.
// It holds no state and performs no I/O: the result depends only on its arguments, and
// every call returns a freshly allocated Mesh. Unknown kinds produce a sphere.
//
// Parameters:
//   - kind: the surface to generate
//   - rings: the requested ring count (clamped)
//   - slices: the requested slice count (clamped)
//
// Returns:
//   - *Mesh: the generated mesh
func Generate(kind Kind, rings, slices int) *Mesh {
	rings, slices = Clamp(kind, rings, slices)
	if kind == KindTorus {
		return Torus(rings, slices)
	}
	return Sphere(rings, slices)
}

// VertexCount predicts the vertex count Generate would produce without generating the mesh.
func VertexCount(kind Kind, rings, slices int) int {
	rings, slices = Clamp(kind, rings, slices)
	if kind == KindTorus {
		return torusVertexCount(rings, slices)
	}
	return sphereVertexCount(rings, slices)
}

// IndexCount predicts the index count Generate would produce without generating the mesh.
func IndexCount(kind Kind, rings, slices int) int {
	rings, slices = Clamp(kind, rings, slices)
	if kind == KindTorus {
		return torusIndexCount(rings, slices)
	}
	return sphereIndexCount(rings, slices)
}

// Params is one complete generation request.
type Params struct {
	Kind   Kind
	Rings  int
	Slices int
}

// Clamped returns a copy of p with Rings and Slices raised to the minimums of p.Kind.
func (p Params) Clamped() Params {
	p.Rings, p.Slices = Clamp(p.Kind, p.Rings, p.Slices)
	return p
}

// Generate runs the generator selected by p.Kind with clamped parameters.
func (p Params) Generate() *Mesh {
	return Generate(p.Kind, p.Rings, p.Slices)
}

// VertexCount predicts the vertex count of p.Generate().
func (p Params) VertexCount() int {
	return VertexCount(p.Kind, p.Rings, p.Slices)
}

// IndexFormat predicts the index format of p.Generate().
func (p Params) IndexFormat() IndexFormat {
	return IndexFormatFor(p.VertexCount())
}

func (p Params) String() string {
	return fmt.Sprintf("%s(rings=%d, slices=%d)", p.Kind, p.Rings, p.Slices)
}
