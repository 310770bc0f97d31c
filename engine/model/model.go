package model

import (
	"github.com/Carmen-Shannon/oxy-surface/common"
	"github.com/Carmen-Shannon/oxy-surface/engine/geometry"
	"github.com/go-gl/mathgl/mgl32"
)

// model is the implementation of the Model interface.
type model struct {
	name           string
	params         geometry.Params
	mesh           *geometry.Mesh
	transform      mgl32.Mat4
	boundingRadius float32

	positionData []byte
	normalData   []byte
	indexData    []byte
	indexCount   int
	indexFormat  geometry.IndexFormat
}

// Model is a GPU-ready surface: one generated mesh packed into position, normal and
// index byte streams, plus the model transform used to draw it.
// A Model is immutable; regenerating the surface produces a new Model.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Params returns the clamped generation parameters the mesh was built from.
	// The zero Params is returned for models built from an explicit mesh.
	//
	// Returns:
	//   - geometry.Params: the generation request
	Params() geometry.Params

	// Mesh returns the CPU-side mesh backing the model.
	//
	// Returns:
	//   - *geometry.Mesh: the mesh (must not be modified)
	Mesh() *geometry.Mesh

	// Transform returns the model matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the model-to-world transform
	Transform() mgl32.Mat4

	// PositionData returns vertex positions packed as float32 triples.
	//
	// Returns:
	//   - []byte: the position stream, PositionStream.Stride() bytes per vertex
	PositionData() []byte

	// NormalData returns vertex normals packed as float32 triples in the same order as PositionData.
	//
	// Returns:
	//   - []byte: the normal stream, NormalStream.Stride() bytes per vertex
	NormalData() []byte

	// IndexData returns the triangle list encoded with IndexFormat.
	//
	// Returns:
	//   - []byte: the index stream, padded to a multiple of 4 bytes
	IndexData() []byte

	// IndexCount returns the number of indices to draw.
	//
	// Returns:
	//   - int: the index count (three per triangle)
	IndexCount() int

	// IndexFormat returns the index width chosen for the mesh's vertex count.
	//
	// Returns:
	//   - geometry.IndexFormat: uint16 or uint32
	IndexFormat() geometry.IndexFormat

	// VertexCount returns the number of vertices.
	VertexCount() int

	// BoundingRadius returns the radius of the origin-centred sphere enclosing the mesh.
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a Model from a mesh or from generation parameters.
// When WithMesh is not supplied the mesh is generated from the (clamped) params,
// so the zero option set yields the minimal sphere.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the packed, GPU-ready model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{
		transform: mgl32.Ident4(),
	}
	for _, option := range options {
		option(m)
	}

	if m.mesh == nil {
		m.params = m.params.Clamped()
		m.mesh = m.params.Generate()
		m.name = common.Coalesce(m.name, m.params.String())
	}
	m.name = common.Coalesce(m.name, "surface")

	m.positionData = common.SliceToBytes(m.mesh.Vertices)
	m.normalData = common.SliceToBytes(m.mesh.Normals)
	m.indexData = m.mesh.IndexBytes()
	m.indexCount = len(m.mesh.Indices)
	m.indexFormat = m.mesh.IndexFormat()
	m.boundingRadius = m.mesh.BoundingRadius()

	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Params() geometry.Params {
	return m.params
}

func (m *model) Mesh() *geometry.Mesh {
	return m.mesh
}

func (m *model) Transform() mgl32.Mat4 {
	return m.transform
}

func (m *model) PositionData() []byte {
	return m.positionData
}

func (m *model) NormalData() []byte {
	return m.normalData
}

func (m *model) IndexData() []byte {
	return m.indexData
}

func (m *model) IndexCount() int {
	return m.indexCount
}

func (m *model) IndexFormat() geometry.IndexFormat {
	return m.indexFormat
}

func (m *model) VertexCount() int {
	return m.mesh.VertexCount()
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}
