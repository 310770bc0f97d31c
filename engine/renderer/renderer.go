package renderer

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-surface/common"
	"github.com/Carmen-Shannon/oxy-surface/engine/camera"
	"github.com/Carmen-Shannon/oxy-surface/engine/model"
	"github.com/Carmen-Shannon/oxy-surface/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-surface/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/surface.wgsl
var surfaceShaderBody string

// SurfaceShader is the pre-processed lit surface shader together with the binding its
// scene uniform was declared at.
type SurfaceShader struct {
	Source         string
	UniformBinding uint32
}

// SurfaceShaderSource expands the annotations of the lit surface shader: the shared vertex
// input and scene uniform structs followed by the Phong vertex and fragment stages. The
// scene uniform must be declared in bind group 0, the only group the pipeline layout has.
//
// Returns:
//   - SurfaceShader: the expanded source and uniform binding
//   - error: an error if the shader annotations are malformed
func SurfaceShaderSource() (SurfaceShader, error) {
	pp := shader.NewPreProcessor()
	source, err := pp.Process(surfaceShaderBody)
	if err != nil {
		return SurfaceShader{}, fmt.Errorf("surface shader: %w", err)
	}

	decl, ok := pp.Declaration("scene")
	if !ok {
		return SurfaceShader{}, errors.New("surface shader: no scene uniform binding declared")
	}
	if *decl.Group != 0 || *decl.Binding < 0 {
		return SurfaceShader{}, fmt.Errorf("surface shader: scene uniform must use group 0, got @group(%d) @binding(%d)", *decl.Group, *decl.Binding)
	}
	return SurfaceShader{Source: source, UniformBinding: uint32(*decl.Binding)}, nil
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	width, height int
	presentMode   common.PresentMode
	msaa          MSAASampleCount
	uploaded      string

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	clearColor           wgpu.Color
}

// Renderer draws one surface model per frame with a single lit pipeline.
//
// A Renderer must be created, driven and released from the same goroutine: the
// WebGPU backend locks its creating goroutine to the OS thread.
type Renderer interface {
	// UploadModel replaces the GPU buffers with the model's vertex, normal and index streams.
	// The model's index format selects the index buffer format.
	//
	// Parameters:
	//   - m: the model to upload
	//
	// Returns:
	//   - error: an error if buffer creation fails
	UploadModel(m model.Model) error

	// UploadedModel returns the name of the last uploaded model, or "" if none.
	UploadedModel() string

	// DrawFrame writes the scene uniform, draws the uploaded model and presents the frame.
	//
	// Parameters:
	//   - scene: the per-frame matrices, light and material
	//
	// Returns:
	//   - error: ErrNoMesh if no model was uploaded, or a surface acquisition error
	DrawFrame(scene camera.GPUSceneUniform) error

	// Resize reconfigures the surface and its attachments. Zero or negative sizes
	// (a minimized window) are rejected with ErrInvalidSurfaceSize.
	Resize(width, height int) error

	// SetPresentMode reconfigures the surface with the given present mode.
	SetPresentMode(mode common.PresentMode) error

	// PresentMode returns the active present mode.
	PresentMode() common.PresentMode

	// MSAA returns the sample count chosen at creation.
	MSAA() MSAASampleCount

	// Release frees every GPU resource held by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer for the window's surface, configures the surface at the
// window's current size and registers the surface pipeline.
//
// Parameters:
//   - backendType: the type of rendering backend to use
//   - win: the window whose surface descriptor the backend renders into
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the ready renderer
//   - error: an error if the GPU device, surface or pipeline could not be created
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		presentMode: common.PresentModeVSync,
		msaa:        MSAA4x,
		clearColor:  wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1.0},
		width:       win.Width(),
		height:      win.Height(),
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		b, err := newWGPURendererBackend(win.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa, r.clearColor)
		if err != nil {
			return nil, err
		}
		r.backend = b
	}

	r.backend.SetPresentMode(r.presentMode)
	if err := r.backend.ConfigureSurface(r.width, r.height); err != nil {
		r.backend.Release()
		return nil, err
	}

	surfaceShader, err := SurfaceShaderSource()
	if err != nil {
		r.backend.Release()
		return nil, err
	}
	var uniform camera.GPUSceneUniform
	if err := r.backend.RegisterSurfacePipeline(surfaceShader.Source, surfaceShader.UniformBinding, uint64(uniform.Size())); err != nil {
		r.backend.Release()
		return nil, err
	}

	common.Logger().Info("renderer ready",
		"width", r.width, "height", r.height, "present_mode", r.presentMode, "msaa", uint32(r.msaa))
	return r, nil
}

func (r *renderer) UploadModel(m model.Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.backend.UploadMesh(m); err != nil {
		return fmt.Errorf("upload %s: %w", m.Name(), err)
	}
	r.uploaded = m.Name()

	common.Logger().Debug("model uploaded",
		"name", m.Name(), "vertices", m.VertexCount(), "indices", m.IndexCount(), "index_format", m.IndexFormat())
	return nil
}

func (r *renderer) UploadedModel() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.uploaded
}

func (r *renderer) DrawFrame(scene camera.GPUSceneUniform) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.backend.HasMesh() {
		return ErrNoMesh
	}

	r.backend.WriteUniform(scene.Marshal())
	if err := r.backend.BeginFrame(); err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}
	r.backend.DrawMesh()
	if err := r.backend.EndFrame(); err != nil {
		return fmt.Errorf("end frame: %w", err)
	}
	r.backend.Present()
	return nil
}

func (r *renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSurfaceSize, width, height)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.width, r.height = width, height
	return r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode common.PresentMode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.presentMode = mode
	r.backend.SetPresentMode(mode)
	return r.backend.ConfigureSurface(r.width, r.height)
}

func (r *renderer) PresentMode() common.PresentMode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presentMode
}

func (r *renderer) MSAA() MSAASampleCount {
	return r.msaa
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.backend != nil {
		r.backend.Release()
		r.backend = nil
	}
}
