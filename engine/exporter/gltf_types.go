// gltf_types.go contains the subset of the glTF 2.0 JSON schema the exporter writes and reads back.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html
package exporter

// --- glTF Root Structure ---

// gltfDocument represents the root of a glTF JSON document.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-gltf
type gltfDocument struct {
	// Asset contains metadata about the glTF asset.
	Asset gltfAsset `json:"asset"`

	// Scene is the index of the default scene.
	Scene *int `json:"scene,omitempty"`

	// Scenes is an array of scenes.
	Scenes []gltfScene `json:"scenes,omitempty"`

	// Nodes is an array of nodes (transform hierarchy).
	Nodes []gltfNode `json:"nodes,omitempty"`

	// Meshes is an array of meshes.
	Meshes []gltfMesh `json:"meshes,omitempty"`

	// Materials is an array of materials.
	Materials []gltfMaterial `json:"materials,omitempty"`

	// Accessors define how to interpret buffer data.
	Accessors []gltfAccessor `json:"accessors,omitempty"`

	// BufferViews define portions of buffers.
	BufferViews []gltfBufferView `json:"bufferViews,omitempty"`

	// Buffers are raw binary data containers.
	Buffers []gltfBuffer `json:"buffers,omitempty"`
}

// gltfAsset contains metadata about the glTF asset.
type gltfAsset struct {
	// Version is the glTF version (required, must be "2.0").
	Version string `json:"version"`

	// Generator is the tool that generated this asset.
	Generator string `json:"generator,omitempty"`
}

// --- Scene Graph ---

// gltfScene is a set of visual objects to render.
type gltfScene struct {
	Name  string `json:"name,omitempty"`
	Nodes []int  `json:"nodes,omitempty"`
}

// gltfNode is a node in the node hierarchy. The exporter writes a single node per mesh.
type gltfNode struct {
	Name string `json:"name,omitempty"`
	Mesh *int   `json:"mesh,omitempty"`

	// Matrix is a 4x4 transformation matrix (column-major). Omitted for the identity.
	Matrix *[16]float32 `json:"matrix,omitempty"`
}

// --- Mesh Data ---

// gltfMesh is a set of primitives to be rendered.
type gltfMesh struct {
	Name       string          `json:"name,omitempty"`
	Primitives []gltfPrimitive `json:"primitives"`
}

// gltfPrimitive defines geometry for rendering.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-mesh-primitive
type gltfPrimitive struct {
	// Attributes is a map of attribute semantic to accessor index (POSITION, NORMAL).
	Attributes map[string]int `json:"attributes"`

	// Indices is the accessor index for the index buffer.
	Indices *int `json:"indices,omitempty"`

	// Material is the material index.
	Material *int `json:"material,omitempty"`

	// Mode is the primitive topology; absent means TRIANGLES.
	Mode *int `json:"mode,omitempty"`
}

// gltfPrimitiveModeTriangles is the only topology the generators produce.
const gltfPrimitiveModeTriangles = 4

// gltfMaterial carries the surface albedo as a metallic-roughness base color.
type gltfMaterial struct {
	Name                 string                   `json:"name,omitempty"`
	PbrMetallicRoughness *gltfPbrMetallicRoughness `json:"pbrMetallicRoughness,omitempty"`
}

// gltfPbrMetallicRoughness defines the metallic-roughness material model.
type gltfPbrMetallicRoughness struct {
	BaseColorFactor *[4]float32 `json:"baseColorFactor,omitempty"`
	MetallicFactor  *float32    `json:"metallicFactor,omitempty"`
	RoughnessFactor *float32    `json:"roughnessFactor,omitempty"`
}

// --- Buffer Data ---

// gltfAccessor defines how to interpret buffer data.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#reference-accessor
type gltfAccessor struct {
	Name string `json:"name,omitempty"`

	// BufferView is the index of the bufferView.
	BufferView *int `json:"bufferView,omitempty"`

	// ByteOffset is the offset within the bufferView.
	ByteOffset int `json:"byteOffset,omitempty"`

	// ComponentType is the data type of components.
	// 5123=UNSIGNED_SHORT, 5125=UNSIGNED_INT, 5126=FLOAT
	ComponentType int `json:"componentType"`

	// Count is the number of elements.
	Count int `json:"count"`

	// Type is the element type (SCALAR, VEC3).
	Type string `json:"type"`

	// Max and Min bound each component. Required for POSITION.
	Max []float32 `json:"max,omitempty"`
	Min []float32 `json:"min,omitempty"`
}

// ComponentType constants
const (
	gltfComponentTypeUnsignedShort = 5123
	gltfComponentTypeUnsignedInt   = 5125
	gltfComponentTypeFloat         = 5126
)

// AccessorType constants
const (
	gltfAccessorTypeScalar = "SCALAR"
	gltfAccessorTypeVec3   = "VEC3"
)

// gltfBufferView represents a subset of a buffer.
type gltfBufferView struct {
	Name       string `json:"name,omitempty"`
	Buffer     int    `json:"buffer"`
	ByteOffset int    `json:"byteOffset,omitempty"`
	ByteLength int    `json:"byteLength"`

	// Target is the intended GPU buffer type.
	// 34962=ARRAY_BUFFER, 34963=ELEMENT_ARRAY_BUFFER
	Target *int `json:"target,omitempty"`
}

// BufferView target constants
const (
	gltfTargetArrayBuffer        = 34962
	gltfTargetElementArrayBuffer = 34963
)

// gltfBuffer represents binary data. In a GLB the only buffer is the BIN chunk and has no URI.
type gltfBuffer struct {
	URI        string `json:"uri,omitempty"`
	ByteLength int    `json:"byteLength"`
}

// --- GLB Binary Format ---

// gltfGLBHeader is the header of a GLB file (12 bytes).
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
type gltfGLBHeader struct {
	Magic   uint32 // Must be 0x46546C67 ("glTF" in ASCII)
	Version uint32 // Must be 2
	Length  uint32 // Total file length
}

// gltfGLBChunkHeader is the header of a GLB chunk (8 bytes).
type gltfGLBChunkHeader struct {
	ChunkLength uint32
	ChunkType   uint32 // 0x4E4F534A for JSON, 0x004E4942 for BIN
}

// GLB magic number and chunk type constants
const (
	gltfGLBMagic     = 0x46546C67 // "glTF" in little-endian ASCII
	gltfGLBVersion   = 2
	gltfGLBChunkJSON = 0x4E4F534A // "JSON" in little-endian ASCII
	gltfGLBChunkBIN  = 0x004E4942 // "BIN\0" in little-endian ASCII

	gltfGLBHeaderSize      = 12
	gltfGLBChunkHeaderSize = 8
)
