// Package scene ties one generated surface to the camera, light and renderer that display it.
package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-surface/common"
	"github.com/Carmen-Shannon/oxy-surface/engine/camera"
	"github.com/Carmen-Shannon/oxy-surface/engine/geometry"
	"github.com/Carmen-Shannon/oxy-surface/engine/light"
	"github.com/Carmen-Shannon/oxy-surface/engine/model"
	"github.com/Carmen-Shannon/oxy-surface/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultObjectColor is the surface albedo used when none is configured.
var DefaultObjectColor = mgl32.Vec3{0.7, 0.7, 0.9}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.Mutex

	name string

	// requested holds the parameters as entered; the model is always built from their clamped form
	requested geometry.Params
	model     model.Model

	camera      camera.Camera
	light       light.Light
	renderer    renderer.Renderer
	objectColor mgl32.Vec3
	transform   mgl32.Mat4

	onRegenerate func(m model.Model)
}

// Scene holds the surface being viewed. Every parameter change rebuilds the mesh through
// the geometry selector, so the displayed model is always generated from clamped parameters,
// and replaces the renderer's buffers wholesale.
// Thread-safe for concurrent access by the input, tick and render goroutines.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Params returns the requested parameters. They may lie below the kind's minimums;
	// Model().Params() holds the clamped values actually generated.
	Params() geometry.Params

	// Model returns the current surface model, or nil before the first Regenerate.
	Model() model.Model

	// SetParams records the requested parameters and regenerates.
	//
	// Parameters:
	//   - p: the requested kind, ring and slice counts
	//
	// Returns:
	//   - error: an error if the renderer could not upload the new mesh
	SetParams(p geometry.Params) error

	// StepRings changes the ring count by delta, starting from the value currently displayed.
	StepRings(delta int) error

	// StepSlices changes the slice count by delta, starting from the value currently displayed.
	StepSlices(delta int) error

	// ToggleKind switches between sphere and torus, keeping the requested ring and slice counts.
	ToggleKind() error

	// Regenerate rebuilds the model from the requested parameters and uploads it.
	//
	// Returns:
	//   - error: an error if the renderer could not upload the new mesh
	Regenerate() error

	// SetRegenerateCallback registers a function called after every successful regeneration.
	SetRegenerateCallback(callback func(m model.Model))

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Light returns the scene's light.
	Light() light.Light

	// Renderer returns the scene's renderer, or nil if none is attached.
	Renderer() renderer.Renderer

	// SetRenderer attaches a renderer and uploads the current model to it.
	//
	// Parameters:
	//   - r: the renderer to draw with
	//
	// Returns:
	//   - error: an error if the current model could not be uploaded
	SetRenderer(r renderer.Renderer) error

	// ObjectColor returns the surface albedo.
	ObjectColor() mgl32.Vec3

	// Update advances the camera controller by deltaTime seconds and refreshes the camera matrices.
	Update(deltaTime float32)

	// Uniform assembles the per-frame scene uniform from the camera, light and surface.
	Uniform() camera.GPUSceneUniform

	// Draw renders one frame of the current model.
	//
	// Returns:
	//   - error: renderer.ErrNoMesh before the first upload, or a frame error
	Draw() error
}

var _ Scene = &scene{}

// NewScene creates a scene and generates its initial model. Without options the scene shows
// a 16×32 sphere under a light at (5, 5, 5), seen by a default orbiting camera.
//
// Parameters:
//   - options: variadic SceneBuilderOption functions to configure the scene
//
// Returns:
//   - Scene: the configured scene
//   - error: an error if a renderer was given and the initial upload failed
func NewScene(options ...SceneBuilderOption) (Scene, error) {
	s := &scene{
		mu:          &sync.Mutex{},
		name:        "surface",
		requested:   geometry.Params{Kind: geometry.KindSphere, Rings: 16, Slices: 32},
		objectColor: DefaultObjectColor,
		transform:   mgl32.Ident4(),
	}

	for _, opt := range options {
		opt(s)
	}

	if s.camera == nil {
		s.camera = camera.NewCamera(camera.WithController(camera.NewOrbitController()))
	}
	if s.light == nil {
		s.light = light.NewLight()
	}

	if err := s.Regenerate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) Params() geometry.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requested
}

func (s *scene) Model() model.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

func (s *scene) SetParams(p geometry.Params) error {
	s.mu.Lock()
	s.requested = p
	s.mu.Unlock()
	return s.Regenerate()
}

func (s *scene) StepRings(delta int) error {
	s.mu.Lock()
	shown := s.requested.Clamped()
	s.requested.Rings = max(shown.Rings+delta, 0)
	s.mu.Unlock()
	return s.Regenerate()
}

func (s *scene) StepSlices(delta int) error {
	s.mu.Lock()
	shown := s.requested.Clamped()
	s.requested.Slices = max(shown.Slices+delta, 0)
	s.mu.Unlock()
	return s.Regenerate()
}

func (s *scene) ToggleKind() error {
	s.mu.Lock()
	s.requested.Kind = geometry.Kinds[common.Wrap(int(s.requested.Kind), 1, len(geometry.Kinds))]
	s.mu.Unlock()
	return s.Regenerate()
}

func (s *scene) Regenerate() error {
	s.mu.Lock()
	m := model.NewModel(
		model.WithParams(s.requested),
		model.WithTransform(s.transform),
	)
	if s.renderer != nil {
		if err := s.renderer.UploadModel(m); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	s.model = m
	callback := s.onRegenerate
	s.mu.Unlock()

	common.Logger().Info("surface regenerated",
		"params", m.Name(),
		"vertices", m.VertexCount(),
		"triangles", m.IndexCount()/3,
		"index_format", m.IndexFormat(),
	)

	if callback != nil {
		callback(m)
	}
	return nil
}

func (s *scene) SetRegenerateCallback(callback func(m model.Model)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRegenerate = callback
}

func (s *scene) Camera() camera.Camera {
	return s.camera
}

func (s *scene) Light() light.Light {
	return s.light
}

func (s *scene) Renderer() renderer.Renderer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer
}

func (s *scene) SetRenderer(r renderer.Renderer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.renderer = r
	if r == nil || s.model == nil {
		return nil
	}
	return r.UploadModel(s.model)
}

func (s *scene) ObjectColor() mgl32.Vec3 {
	return s.objectColor
}

func (s *scene) Update(deltaTime float32) {
	if ctrl := s.camera.Controller(); ctrl != nil {
		ctrl.Advance(deltaTime)
	}
	s.camera.Update()
}

func (s *scene) Uniform() camera.GPUSceneUniform {
	s.mu.Lock()
	transform := s.transform
	s.mu.Unlock()
	return camera.NewSceneUniform(s.camera, transform, s.light.Position(), s.objectColor)
}

func (s *scene) Draw() error {
	r := s.Renderer()
	if r == nil {
		return renderer.ErrNoMesh
	}
	return r.DrawFrame(s.Uniform())
}
