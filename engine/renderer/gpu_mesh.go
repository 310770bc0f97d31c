package renderer

import (
	"github.com/Carmen-Shannon/oxy-surface/common"
	"github.com/Carmen-Shannon/oxy-surface/engine/geometry"
	"github.com/cogentcore/webgpu/wgpu"
)

// gpuMesh holds the GPU buffers of one uploaded surface model.
// Vertex buffers are stored in slot order (see model.VertexStreams).
type gpuMesh struct {
	label         string
	vertexBuffers []*wgpu.Buffer
	indexBuffer   *wgpu.Buffer
	indexCount    uint32
	indexFormat   wgpu.IndexFormat
}

// Release frees the mesh buffers. Safe to call on a nil mesh.
func (m *gpuMesh) Release() {
	if m == nil {
		return
	}
	for _, buf := range m.vertexBuffers {
		if buf != nil {
			buf.Release()
		}
	}
	if m.indexBuffer != nil {
		m.indexBuffer.Release()
	}
	m.vertexBuffers = nil
	m.indexBuffer = nil
}

// wgpuIndexFormat maps a mesh index format onto the WebGPU index format.
func wgpuIndexFormat(f geometry.IndexFormat) wgpu.IndexFormat {
	if f == geometry.IndexFormatUint32 {
		return wgpu.IndexFormatUint32
	}
	return wgpu.IndexFormatUint16
}

// wgpuPresentMode maps a present mode onto the WebGPU present mode.
func wgpuPresentMode(mode common.PresentMode) wgpu.PresentMode {
	if mode == common.PresentModeVSync {
		return wgpu.PresentModeFifo
	}
	return wgpu.PresentModeImmediate
}
