package scene

import (
	"github.com/Carmen-Shannon/oxy-surface/engine/camera"
	"github.com/Carmen-Shannon/oxy-surface/engine/geometry"
	"github.com/Carmen-Shannon/oxy-surface/engine/light"
	"github.com/Carmen-Shannon/oxy-surface/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithName sets the scene's identifier.
//
// Parameters:
//   - name: the scene name
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithName(name string) SceneBuilderOption {
	return func(s *scene) {
		s.name = name
	}
}

// WithParams sets the initially requested surface parameters.
//
// Parameters:
//   - p: the requested kind, ring and slice counts
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithParams(p geometry.Params) SceneBuilderOption {
	return func(s *scene) {
		s.requested = p
	}
}

// WithCamera sets the camera the scene is viewed through.
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.camera = cam
	}
}

// WithLight sets the point light illuminating the surface.
func WithLight(l light.Light) SceneBuilderOption {
	return func(s *scene) {
		s.light = l
	}
}

// WithRenderer attaches the renderer the initial model is uploaded to.
func WithRenderer(r renderer.Renderer) SceneBuilderOption {
	return func(s *scene) {
		s.renderer = r
	}
}

// WithObjectColor sets the surface albedo.
func WithObjectColor(color mgl32.Vec3) SceneBuilderOption {
	return func(s *scene) {
		s.objectColor = color
	}
}

// WithTransform sets the model matrix applied to every generated surface.
func WithTransform(transform mgl32.Mat4) SceneBuilderOption {
	return func(s *scene) {
		s.transform = transform
	}
}
