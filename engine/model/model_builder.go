package model

import (
	"github.com/Carmen-Shannon/oxy-surface/engine/geometry"
	"github.com/go-gl/mathgl/mgl32"
)

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithName is an option builder that sets the name of the Model.
//
// Parameters:
//   - name: the model identifier
//
// Returns:
//   - ModelBuilderOption: a function that applies the name option to a model
func WithName(name string) ModelBuilderOption {
	return func(m *model) {
		m.name = name
	}
}

// WithParams is an option builder that sets the generation request. The mesh is generated
// through the clamping selector unless WithMesh is also given.
//
// Parameters:
//   - params: the surface kind and tessellation
//
// Returns:
//   - ModelBuilderOption: a function that applies the params option to a model
func WithParams(params geometry.Params) ModelBuilderOption {
	return func(m *model) {
		m.params = params
	}
}

// WithMesh is an option builder that packs an already generated mesh.
//
// Parameters:
//   - mesh: the mesh to pack
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh option to a model
func WithMesh(mesh *geometry.Mesh) ModelBuilderOption {
	return func(m *model) {
		m.mesh = mesh
	}
}

// WithTransform is an option builder that sets the model matrix.
func WithTransform(transform mgl32.Mat4) ModelBuilderOption {
	return func(m *model) {
		m.transform = transform
	}
}
