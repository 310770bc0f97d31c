// Package exporter writes generated surfaces as binary glTF 2.0 (GLB) files and reads them back.
package exporter

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Carmen-Shannon/oxy-surface/engine/geometry"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrEmptyMesh is returned when exporting a mesh with no vertices or no triangles.
	ErrEmptyMesh = errors.New("mesh has no vertices or triangles")

	// ErrInvalidGLB is returned when the input is not a well-formed GLB container.
	ErrInvalidGLB = errors.New("invalid GLB")

	// ErrUnsupportedGLB is returned for valid glTF that does not describe a single indexed triangle mesh
	// with float positions and normals.
	ErrUnsupportedGLB = errors.New("unsupported glTF content")
)

// Generator is written into the asset metadata of every exported file.
const Generator = "oxy-surface"

type exportOptions struct {
	baseColor *mgl32.Vec3
	transform mgl32.Mat4
}

// ExportOption configures WriteGLB.
type ExportOption func(*exportOptions)

// WithBaseColor attaches a material whose base color is the given albedo.
func WithBaseColor(color mgl32.Vec3) ExportOption {
	return func(o *exportOptions) {
		o.baseColor = &color
	}
}

// WithTransform sets the node matrix. The identity is omitted from the file.
func WithTransform(transform mgl32.Mat4) ExportOption {
	return func(o *exportOptions) {
		o.transform = transform
	}
}

// WriteGLB writes m as a single-mesh, single-node GLB file.
//
// The BIN chunk holds the positions, the normals and the index stream, in that order, each
// 4-byte aligned. The index accessor uses UNSIGNED_SHORT or UNSIGNED_INT following
// m.IndexFormat(), and the POSITION accessor carries the mesh bounds as min/max.
//
// Parameters:
//   - w: the destination
//   - m: the mesh to export
//   - name: the mesh and node name
//   - options: optional material and transform settings
//
// Returns:
//   - error: ErrEmptyMesh for an empty mesh, or a write error
func WriteGLB(w io.Writer, m *geometry.Mesh, name string, options ...ExportOption) error {
	if m == nil || m.VertexCount() == 0 || m.TriangleCount() == 0 {
		return ErrEmptyMesh
	}

	opts := exportOptions{transform: mgl32.Ident4()}
	for _, opt := range options {
		opt(&opts)
	}

	positions := float32Bytes(m.FlatVertices())
	normals := float32Bytes(m.FlatNormals())
	indices := m.IndexBytes()

	bin := make([]byte, 0, len(positions)+len(normals)+len(indices))
	bin = append(bin, positions...)
	bin = append(bin, normals...)
	bin = append(bin, indices...)

	doc := newDocument(m, name, opts, len(positions), len(normals), len(indices))
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode glTF JSON: %w", err)
	}
	// JSON chunks are padded with spaces, BIN chunks with zeros
	jsonData = pad(jsonData, ' ')
	bin = pad(bin, 0)

	total := gltfGLBHeaderSize + gltfGLBChunkHeaderSize + len(jsonData) + gltfGLBChunkHeaderSize + len(bin)

	var buf bytes.Buffer
	buf.Grow(total)
	header := gltfGLBHeader{Magic: gltfGLBMagic, Version: gltfGLBVersion, Length: uint32(total)}
	if err := binary.Write(&buf, binary.LittleEndian, header); err != nil {
		return err
	}
	for _, chunk := range []struct {
		kind uint32
		data []byte
	}{
		{gltfGLBChunkJSON, jsonData},
		{gltfGLBChunkBIN, bin},
	} {
		ch := gltfGLBChunkHeader{ChunkLength: uint32(len(chunk.data)), ChunkType: chunk.kind}
		if err := binary.Write(&buf, binary.LittleEndian, ch); err != nil {
			return err
		}
		buf.Write(chunk.data)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write GLB: %w", err)
	}
	return nil
}

// newDocument describes the three buffer views of the BIN chunk and the mesh that uses them.
func newDocument(m *geometry.Mesh, name string, opts exportOptions, positionLen, normalLen, indexLen int) gltfDocument {
	lo, hi := m.Bounds()
	zero, one, two := 0, 1, 2
	mode := gltfPrimitiveModeTriangles
	arrayTarget, elementTarget := gltfTargetArrayBuffer, gltfTargetElementArrayBuffer

	indexComponent := gltfComponentTypeUnsignedShort
	if m.IndexFormat() == geometry.IndexFormatUint32 {
		indexComponent = gltfComponentTypeUnsignedInt
	}

	doc := gltfDocument{
		Asset:  gltfAsset{Version: "2.0", Generator: Generator},
		Scene:  &zero,
		Scenes: []gltfScene{{Name: name, Nodes: []int{0}}},
		Nodes:  []gltfNode{{Name: name, Mesh: &zero}},
		Meshes: []gltfMesh{{
			Name: name,
			Primitives: []gltfPrimitive{{
				Attributes: map[string]int{"POSITION": 0, "NORMAL": 1},
				Indices:    &two,
				Mode:       &mode,
			}},
		}},
		Accessors: []gltfAccessor{
			{
				Name: "POSITION", BufferView: &zero, ComponentType: gltfComponentTypeFloat,
				Count: m.VertexCount(), Type: gltfAccessorTypeVec3,
				Min: lo[:], Max: hi[:],
			},
			{
				Name: "NORMAL", BufferView: &one, ComponentType: gltfComponentTypeFloat,
				Count: m.VertexCount(), Type: gltfAccessorTypeVec3,
			},
			{
				Name: "indices", BufferView: &two, ComponentType: indexComponent,
				Count: len(m.Indices), Type: gltfAccessorTypeScalar,
			},
		},
		BufferViews: []gltfBufferView{
			{Name: "positions", Buffer: 0, ByteOffset: 0, ByteLength: positionLen, Target: &arrayTarget},
			{Name: "normals", Buffer: 0, ByteOffset: positionLen, ByteLength: normalLen, Target: &arrayTarget},
			{Name: "indices", Buffer: 0, ByteOffset: positionLen + normalLen, ByteLength: indexLen, Target: &elementTarget},
		},
		Buffers: []gltfBuffer{{ByteLength: positionLen + normalLen + indexLen}},
	}

	if opts.baseColor != nil {
		c := *opts.baseColor
		metallic, roughness := float32(0), float32(0.5)
		doc.Materials = []gltfMaterial{{
			Name: name,
			PbrMetallicRoughness: &gltfPbrMetallicRoughness{
				BaseColorFactor: &[4]float32{c[0], c[1], c[2], 1},
				MetallicFactor:  &metallic,
				RoughnessFactor: &roughness,
			},
		}}
		doc.Meshes[0].Primitives[0].Material = &zero
	}

	if opts.transform != mgl32.Ident4() {
		matrix := [16]float32(opts.transform)
		doc.Nodes[0].Matrix = &matrix
	}

	return doc
}

// ReadGLB parses a GLB file holding one indexed triangle mesh with POSITION and NORMAL attributes,
// such as the files WriteGLB produces.
//
// Parameters:
//   - r: the GLB data
//
// Returns:
//   - *geometry.Mesh: the decoded mesh
//   - string: the mesh name
//   - error: ErrInvalidGLB or ErrUnsupportedGLB wrapped with detail
func ReadGLB(r io.Reader) (*geometry.Mesh, string, error) {
	var header gltfGLBHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, "", fmt.Errorf("%w: failed to read header: %w", ErrInvalidGLB, err)
	}
	if header.Magic != gltfGLBMagic {
		return nil, "", fmt.Errorf("%w: bad magic 0x%08X", ErrInvalidGLB, header.Magic)
	}
	if header.Version != gltfGLBVersion {
		return nil, "", fmt.Errorf("%w: version %d", ErrInvalidGLB, header.Version)
	}

	// header.Length bounds every chunk allocation
	if header.Length < gltfGLBHeaderSize {
		return nil, "", fmt.Errorf("%w: declared length %d is shorter than the header", ErrInvalidGLB, header.Length)
	}
	remaining := uint64(header.Length) - gltfGLBHeaderSize

	var jsonData, binData []byte
	for remaining > 0 {
		var chunkHeader gltfGLBChunkHeader
		if err := binary.Read(r, binary.LittleEndian, &chunkHeader); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, "", fmt.Errorf("%w: failed to read chunk header: %w", ErrInvalidGLB, err)
		}

		if remaining < gltfGLBChunkHeaderSize || uint64(chunkHeader.ChunkLength) > remaining-gltfGLBChunkHeaderSize {
			return nil, "", fmt.Errorf("%w: chunk of %d bytes exceeds the declared file length %d",
				ErrInvalidGLB, chunkHeader.ChunkLength, header.Length)
		}
		remaining -= gltfGLBChunkHeaderSize + uint64(chunkHeader.ChunkLength)

		chunkData := make([]byte, chunkHeader.ChunkLength)
		if _, err := io.ReadFull(r, chunkData); err != nil {
			return nil, "", fmt.Errorf("%w: failed to read chunk data: %w", ErrInvalidGLB, err)
		}

		switch chunkHeader.ChunkType {
		case gltfGLBChunkJSON:
			jsonData = chunkData
		case gltfGLBChunkBIN:
			binData = chunkData
		}
	}
	if jsonData == nil {
		return nil, "", fmt.Errorf("%w: missing JSON chunk", ErrInvalidGLB)
	}

	var doc gltfDocument
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, "", fmt.Errorf("%w: failed to parse glTF JSON: %w", ErrInvalidGLB, err)
	}
	if !strings.HasPrefix(doc.Asset.Version, "2.") {
		return nil, "", fmt.Errorf("%w: asset version %q", ErrInvalidGLB, doc.Asset.Version)
	}

	if len(doc.Meshes) == 0 || len(doc.Meshes[0].Primitives) == 0 {
		return nil, "", fmt.Errorf("%w: no mesh primitive", ErrUnsupportedGLB)
	}
	prim := doc.Meshes[0].Primitives[0]
	if prim.Mode != nil && *prim.Mode != gltfPrimitiveModeTriangles {
		return nil, "", fmt.Errorf("%w: primitive mode %d", ErrUnsupportedGLB, *prim.Mode)
	}
	if prim.Indices == nil {
		return nil, "", fmt.Errorf("%w: primitive is not indexed", ErrUnsupportedGLB)
	}

	rd := accessorReader{doc: &doc, bin: binData}
	m := &geometry.Mesh{}
	var err error
	if m.Vertices, err = rd.vec3(prim.Attributes, "POSITION"); err != nil {
		return nil, "", err
	}
	if m.Normals, err = rd.vec3(prim.Attributes, "NORMAL"); err != nil {
		return nil, "", err
	}
	if m.Indices, err = rd.indices(*prim.Indices); err != nil {
		return nil, "", err
	}
	return m, doc.Meshes[0].Name, nil
}

// accessorReader resolves accessors against the BIN chunk.
type accessorReader struct {
	doc *gltfDocument
	bin []byte
}

// data returns the bytes covered by the accessor, checked against its buffer view.
func (a accessorReader) data(index, elementSize int) (*gltfAccessor, []byte, error) {
	if index < 0 || index >= len(a.doc.Accessors) {
		return nil, nil, fmt.Errorf("%w: accessor %d out of range", ErrUnsupportedGLB, index)
	}
	acc := &a.doc.Accessors[index]
	if acc.BufferView == nil || *acc.BufferView < 0 || *acc.BufferView >= len(a.doc.BufferViews) {
		return nil, nil, fmt.Errorf("%w: accessor %d has no buffer view", ErrUnsupportedGLB, index)
	}
	view := a.doc.BufferViews[*acc.BufferView]
	if view.Buffer != 0 {
		return nil, nil, fmt.Errorf("%w: accessor %d uses external buffer %d", ErrUnsupportedGLB, index, view.Buffer)
	}
	if acc.Count < 0 || acc.ByteOffset < 0 || view.ByteOffset < 0 || view.ByteLength < 0 {
		return nil, nil, fmt.Errorf("%w: accessor %d has a negative count, offset or length", ErrInvalidGLB, index)
	}

	start := view.ByteOffset + acc.ByteOffset
	end := start + acc.Count*elementSize
	if end < start || end > view.ByteOffset+view.ByteLength || end > len(a.bin) {
		return nil, nil, fmt.Errorf("%w: accessor %d exceeds its buffer", ErrInvalidGLB, index)
	}
	return acc, a.bin[start:end], nil
}

func (a accessorReader) vec3(attributes map[string]int, semantic string) ([]mgl32.Vec3, error) {
	index, ok := attributes[semantic]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s attribute", ErrUnsupportedGLB, semantic)
	}
	acc, data, err := a.data(index, 12)
	if err != nil {
		return nil, err
	}
	if acc.Type != gltfAccessorTypeVec3 || acc.ComponentType != gltfComponentTypeFloat {
		return nil, fmt.Errorf("%w: %s accessor is not VEC3 FLOAT: type=%s, componentType=%d",
			ErrUnsupportedGLB, semantic, acc.Type, acc.ComponentType)
	}

	result := make([]mgl32.Vec3, acc.Count)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (a accessorReader) indices(index int) ([]uint32, error) {
	if index < 0 || index >= len(a.doc.Accessors) {
		return nil, fmt.Errorf("%w: accessor %d out of range", ErrUnsupportedGLB, index)
	}

	switch a.doc.Accessors[index].ComponentType {
	case gltfComponentTypeUnsignedShort:
		acc, data, err := a.data(index, 2)
		if err != nil {
			return nil, err
		}
		result := make([]uint32, acc.Count)
		for i := range result {
			result[i] = uint32(binary.LittleEndian.Uint16(data[i*2:]))
		}
		return result, nil
	case gltfComponentTypeUnsignedInt:
		acc, data, err := a.data(index, 4)
		if err != nil {
			return nil, err
		}
		result := make([]uint32, acc.Count)
		if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, result); err != nil {
			return nil, err
		}
		return result, nil
	default:
		return nil, fmt.Errorf("%w: index component type %d", ErrUnsupportedGLB, a.doc.Accessors[index].ComponentType)
	}
}

// float32Bytes encodes v little-endian.
func float32Bytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math32.Float32bits(f))
	}
	return buf
}

// pad extends b with fill up to a multiple of 4 bytes.
func pad(b []byte, fill byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, fill)
	}
	return b
}
