package geometry

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
)

// NormalTolerance is the largest deviation from unit length Inspect accepts for a normal.
const NormalTolerance float32 = 1e-5

// Findings reported by Report.Err. Each is wrapped with the offending count.
var (
	ErrPartialTriangle     = errors.New("index count is not a multiple of 3")
	ErrIndexOutOfRange     = errors.New("index out of range")
	ErrNormalCountMismatch = errors.New("normal count differs from vertex count")
	ErrNonUnitNormal       = errors.New("normal is not unit length")
	ErrDegenerateTriangle  = errors.New("triangle repeats a vertex")
	ErrInvertedTriangle    = errors.New("triangle winding disagrees with vertex normals")
	ErrOpenMesh            = errors.New("edge is used by only one triangle")
	ErrNonManifoldEdge     = errors.New("edge is used by more than two triangles")
	ErrInconsistentWinding = errors.New("directed edge is used by more than one triangle")
)

// Report summarises the structural checks Inspect runs over a mesh.
type Report struct {
	Vertices  int
	Triangles int

	PartialIndices      int
	IndicesOutOfRange   int
	NormalCountMismatch bool
	NonUnitNormals      int
	MaxNormalError      float32
	DegenerateTriangles int
	InvertedTriangles   int
	BoundaryEdges       int
	NonManifoldEdges    int
	MisorientedEdges    int
}

type edge struct{ a, b uint32 }

// Inspect checks m against the invariants every generated mesh upholds: in-range indices,
// one unit normal per vertex, counter-clockwise winding from outside, and closed
// 2-manifold topology with consistent orientation.
//
// A triangle counts as inverted when its geometric normal (b-a)×(c-a) does not point
// into the same half-space as the normal of each of its three vertices.
//
// Parameters:
//   - m: the mesh to inspect
//
// Returns:
//   - Report: the counts of every finding; Report.OK is true when all are zero
func Inspect(m *Mesh) Report {
	r := Report{
		Vertices:            len(m.Vertices),
		Triangles:           len(m.Indices) / 3,
		PartialIndices:      len(m.Indices) % 3,
		NormalCountMismatch: len(m.Normals) != len(m.Vertices),
	}

	for _, n := range m.Normals {
		e := math32.Abs(n.Len() - 1)
		r.MaxNormalError = max(r.MaxNormalError, e)
		if e > NormalTolerance {
			r.NonUnitNormals++
		}
	}

	vertexCount := uint32(len(m.Vertices))
	undirected := make(map[edge]int, len(m.Indices))
	directed := make(map[edge]int, len(m.Indices))

	for t := 0; t < r.Triangles; t++ {
		tri := m.Indices[t*3 : t*3+3]
		inRange := true
		for _, idx := range tri {
			if idx >= vertexCount {
				r.IndicesOutOfRange++
				inRange = false
			}
		}
		if !inRange {
			continue
		}

		a, b, c := tri[0], tri[1], tri[2]
		if a == b || b == c || a == c {
			r.DegenerateTriangles++
			continue
		}

		for _, e := range [3]edge{{a, b}, {b, c}, {c, a}} {
			directed[e]++
			if e.a > e.b {
				e.a, e.b = e.b, e.a
			}
			undirected[e]++
		}

		if r.NormalCountMismatch {
			continue
		}
		face := m.Vertices[b].Sub(m.Vertices[a]).Cross(m.Vertices[c].Sub(m.Vertices[a]))
		for _, idx := range tri {
			if face.Dot(m.Normals[idx]) <= 0 {
				r.InvertedTriangles++
				break
			}
		}
	}
	// indices past the last whole triangle still have to address a vertex
	for _, idx := range m.Indices[r.Triangles*3:] {
		if idx >= vertexCount {
			r.IndicesOutOfRange++
		}
	}

	for _, count := range undirected {
		switch {
		case count == 1:
			r.BoundaryEdges++
		case count > 2:
			r.NonManifoldEdges++
		}
	}
	for _, count := range directed {
		if count > 1 {
			r.MisorientedEdges++
		}
	}

	return r
}

// OK reports whether the inspected mesh passed every check.
func (r Report) OK() bool {
	return r.Err() == nil
}

// Err joins one wrapped sentinel per failed check, or returns nil when the mesh is sound.
//
// Returns:
//   - error: nil, or an error matching each failed check's sentinel under errors.Is
func (r Report) Err() error {
	var errs []error
	add := func(count int, sentinel error) {
		if count > 0 {
			errs = append(errs, fmt.Errorf("%w (%d)", sentinel, count))
		}
	}

	add(r.PartialIndices, ErrPartialTriangle)
	add(r.IndicesOutOfRange, ErrIndexOutOfRange)
	if r.NormalCountMismatch {
		errs = append(errs, ErrNormalCountMismatch)
	}
	add(r.NonUnitNormals, ErrNonUnitNormal)
	add(r.DegenerateTriangles, ErrDegenerateTriangle)
	add(r.InvertedTriangles, ErrInvertedTriangle)
	add(r.BoundaryEdges, ErrOpenMesh)
	add(r.NonManifoldEdges, ErrNonManifoldEdge)
	add(r.MisorientedEdges, ErrInconsistentWinding)

	return errors.Join(errs...)
}

func (r Report) String() string {
	status := "ok"
	if err := r.Err(); err != nil {
		status = err.Error()
	}
	return fmt.Sprintf("%d vertices, %d triangles, max normal error %.2g: %s",
		r.Vertices, r.Triangles, r.MaxNormalError, status)
}
