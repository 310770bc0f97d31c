package camera

import (
	_ "embed"
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-surface/common"
	"github.com/go-gl/mathgl/mgl32"
)

// GPUSceneUniformSource is the canonical WGSL definition of the SceneUniform struct.
// Matches GPUSceneUniform layout exactly (304 bytes).
//
//go:embed assets/scene_uniform.wgsl
var GPUSceneUniformSource string

// GPUSceneUniform is the GPU-aligned representation of the per-frame scene uniform buffer.
// Matches the WGSL SceneUniform struct layout exactly (see GPUSceneUniformSource).
// Size: 304 bytes (WGSL uniform aligned, vec3 fields padded to 16 bytes).
type GPUSceneUniform struct {
	Model         [16]float32 // offset   0: model matrix (mat4x4<f32>)
	View          [16]float32 // offset  64: view matrix (mat4x4<f32>)
	Projection    [16]float32 // offset 128: projection matrix (mat4x4<f32>)
	NormalMatrix  [16]float32 // offset 192: inverse transpose of Model (mat4x4<f32>)
	LightPosition [3]float32  // offset 256: world-space light position (vec3<f32>)
	_pad0         float32
	ViewPosition  [3]float32 // offset 272: world-space eye position (vec3<f32>)
	_pad1         float32
	ObjectColor   [3]float32 // offset 288: surface albedo (vec3<f32>)
	_pad2         float32
}

// Size returns the size of the GPUSceneUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (304)
func (g *GPUSceneUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUSceneUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUSceneUniform) Marshal() []byte {
	buf := make([]byte, g.Size())
	put := func(offset int, values []float32) {
		for i, v := range values {
			binary.LittleEndian.PutUint32(buf[offset+i*4:], math.Float32bits(v))
		}
	}
	put(0, g.Model[:])
	put(64, g.View[:])
	put(128, g.Projection[:])
	put(192, g.NormalMatrix[:])
	put(256, g.LightPosition[:])
	put(272, g.ViewPosition[:])
	put(288, g.ObjectColor[:])
	return buf
}

// NewSceneUniform captures the camera's current matrices and eye position together with
// the model transform and lighting inputs for one frame.
//
// Parameters:
//   - cam: the camera supplying view, projection and eye position
//   - model: the model matrix of the drawn surface
//   - lightPosition: world-space position of the point light
//   - objectColor: the surface albedo
//
// Returns:
//   - GPUSceneUniform: the uniform ready to Marshal
func NewSceneUniform(cam Camera, model mgl32.Mat4, lightPosition, objectColor mgl32.Vec3) GPUSceneUniform {
	return GPUSceneUniform{
		Model:         model,
		View:          cam.ViewMatrix(),
		Projection:    cam.ProjectionMatrix(),
		NormalMatrix:  common.NormalMatrix(model),
		LightPosition: lightPosition,
		ViewPosition:  cam.Position(),
		ObjectColor:   objectColor,
	}
}
