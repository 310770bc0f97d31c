package model

import (
	_ "embed"
)

// GPUVertexSource is the canonical WGSL definition of the VertexInput struct for surface pipelines.
// Positions and normals live in two separate vertex buffers, matching VertexStreams.
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// VertexStream describes one tightly packed per-vertex attribute buffer.
type VertexStream struct {
	// Name identifies the stream in logs and buffer labels.
	Name string
	// Location is the shader location the stream binds to.
	Location uint32
	// Components is the number of float32 components per vertex.
	Components int
}

// Stride returns the distance in bytes between consecutive vertices of the stream.
func (s VertexStream) Stride() uint64 {
	return uint64(s.Components) * 4
}

// The two vertex streams every surface model provides, in buffer slot order.
var (
	PositionStream = VertexStream{Name: "position", Location: 0, Components: 3}
	NormalStream   = VertexStream{Name: "normal", Location: 1, Components: 3}

	VertexStreams = []VertexStream{PositionStream, NormalStream}
)
