package renderer

import (
	"github.com/Carmen-Shannon/oxy-surface/common"
	"github.com/Carmen-Shannon/oxy-surface/engine/model"
)

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
type MSAASampleCount = common.MSAASampleCount

const (
	MSAAOff = common.MSAAOff
	MSAA4x  = common.MSAA4x
)

// ParseMSAA converts a sample count into an MSAASampleCount. See common.ParseMSAA.
func ParseMSAA(count int) (MSAASampleCount, error) {
	return common.ParseMSAA(count)
}

// RendererBackend is the top-level backend interface for the Renderer.
// It embeds the concrete backend interface for the selected GPU API.
type RendererBackend interface {
	wgpuRendererBackend
}

// wgpuRendererBackend is the WebGPU backend surface used by the renderer.
type wgpuRendererBackend interface {
	// ConfigureSurface (re)creates the swapchain, MSAA and depth targets for the given size.
	ConfigureSurface(width, height int) error

	// SetPresentMode selects the present mode used at the next ConfigureSurface.
	SetPresentMode(mode common.PresentMode)

	// RegisterSurfacePipeline compiles the surface shader and builds the render pipeline
	// together with its scene uniform buffer, bound at uniformBinding of group 0.
	RegisterSurfacePipeline(source string, uniformBinding uint32, uniformSize uint64) error

	// UploadMesh replaces the GPU mesh buffers with the model's streams.
	UploadMesh(m model.Model) error

	// HasMesh reports whether a mesh has been uploaded.
	HasMesh() bool

	// WriteUniform writes the scene uniform bytes.
	WriteUniform(data []byte)

	// BeginFrame acquires the next surface texture and begins the main render pass.
	BeginFrame() error

	// DrawMesh records the indexed draw of the uploaded mesh.
	DrawMesh()

	// EndFrame ends the pass and submits the command buffer.
	EndFrame() error

	// Present presents the acquired surface texture.
	Present()

	// Release frees every GPU resource owned by the backend.
	Release()
}
