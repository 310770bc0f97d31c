package exporter

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/Carmen-Shannon/oxy-surface/engine/geometry"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// splitGLB returns the decoded JSON document and the BIN chunk of a GLB file.
func splitGLB(t *testing.T, data []byte) (gltfDocument, []byte) {
	t.Helper()
	require.GreaterOrEqual(t, len(data), 28)

	assert.Equal(t, uint32(0x46546C67), binary.LittleEndian.Uint32(data[0:]))
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[4:]))
	assert.Equal(t, uint32(len(data)), binary.LittleEndian.Uint32(data[8:]))

	jsonLen := binary.LittleEndian.Uint32(data[12:])
	assert.Equal(t, uint32(0x4E4F534A), binary.LittleEndian.Uint32(data[16:]))
	assert.Zero(t, jsonLen%4)
	jsonData := data[20 : 20+jsonLen]

	binHeader := data[20+jsonLen:]
	binLen := binary.LittleEndian.Uint32(binHeader)
	assert.Equal(t, uint32(0x004E4942), binary.LittleEndian.Uint32(binHeader[4:]))
	assert.Zero(t, binLen%4)

	var doc gltfDocument
	require.NoError(t, json.Unmarshal(jsonData, &doc))
	return doc, binHeader[8 : 8+binLen]
}

func TestWriteGLBLayout(t *testing.T) {
	m := geometry.Sphere(1, 3)

	var buf bytes.Buffer
	require.NoError(t, WriteGLB(&buf, m, "sphere(rings=1, slices=3)"))
	doc, bin := splitGLB(t, buf.Bytes())

	assert.Equal(t, "2.0", doc.Asset.Version)
	assert.Equal(t, Generator, doc.Asset.Generator)
	require.Len(t, doc.Meshes, 1)
	assert.Equal(t, "sphere(rings=1, slices=3)", doc.Meshes[0].Name)
	assert.Empty(t, doc.Materials)
	assert.Nil(t, doc.Nodes[0].Matrix)

	require.Len(t, doc.Accessors, 3)
	pos, nrm, idx := doc.Accessors[0], doc.Accessors[1], doc.Accessors[2]
	assert.Equal(t, gltfComponentTypeFloat, pos.ComponentType)
	assert.Equal(t, 5, pos.Count)
	// ring vertices sit at theta 0, 120 and 240 degrees on the equator
	assert.InDeltaSlice(t, []float32{-0.5, -1, -0.8660254}, pos.Min, 1e-5)
	assert.InDeltaSlice(t, []float32{1, 1, 0.8660254}, pos.Max, 1e-5)
	assert.Equal(t, 5, nrm.Count)
	assert.Equal(t, gltfComponentTypeUnsignedShort, idx.ComponentType)
	assert.Equal(t, 18, idx.Count)

	// 5 positions + 5 normals of 12 bytes, then 18 uint16 indices in 36 bytes
	assert.Equal(t, 60, doc.BufferViews[1].ByteOffset)
	assert.Equal(t, 120, doc.BufferViews[2].ByteOffset)
	assert.Len(t, bin, 156)
	assert.Equal(t, len(bin), doc.Buffers[0].ByteLength)
}

func TestWriteGLBOptions(t *testing.T) {
	var buf bytes.Buffer
	transform := mgl32.Translate3D(1, 2, 3)
	require.NoError(t, WriteGLB(&buf, geometry.Torus(3, 3), "t",
		WithBaseColor(mgl32.Vec3{0.7, 0.7, 0.9}), WithTransform(transform)))
	doc, _ := splitGLB(t, buf.Bytes())

	require.Len(t, doc.Materials, 1)
	assert.Equal(t, [4]float32{0.7, 0.7, 0.9, 1}, *doc.Materials[0].PbrMetallicRoughness.BaseColorFactor)
	require.NotNil(t, doc.Meshes[0].Primitives[0].Material)
	require.NotNil(t, doc.Nodes[0].Matrix)
	assert.Equal(t, [16]float32(transform), *doc.Nodes[0].Matrix)
}

func TestWriteGLBWideIndices(t *testing.T) {
	m := geometry.Sphere(256, 256)
	require.Equal(t, geometry.IndexFormatUint32, m.IndexFormat())

	var buf bytes.Buffer
	require.NoError(t, WriteGLB(&buf, m, "dense"))
	doc, _ := splitGLB(t, buf.Bytes())
	assert.Equal(t, gltfComponentTypeUnsignedInt, doc.Accessors[2].ComponentType)

	got, _, err := ReadGLB(&buf)
	require.NoError(t, err)
	assert.Equal(t, m.Indices, got.Indices)
}

func TestWriteGLBEmptyMesh(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, WriteGLB(&buf, &geometry.Mesh{}, "empty"), ErrEmptyMesh)
	assert.ErrorIs(t, WriteGLB(&buf, nil, "nil"), ErrEmptyMesh)
	assert.Zero(t, buf.Len())
}

func TestReadGLBRoundTrip(t *testing.T) {
	for _, p := range []geometry.Params{
		{Kind: geometry.KindSphere, Rings: 1, Slices: 3},
		{Kind: geometry.KindSphere, Rings: 7, Slices: 9},
		{Kind: geometry.KindTorus, Rings: 12, Slices: 5},
	} {
		m := p.Generate()

		var buf bytes.Buffer
		require.NoError(t, WriteGLB(&buf, m, p.String()))

		got, name, err := ReadGLB(&buf)
		require.NoError(t, err, p.String())
		assert.Equal(t, p.String(), name)
		assert.Equal(t, m, got, p.String())
		assert.True(t, geometry.Inspect(got).OK())
	}
}

func TestReadGLBRejectsGarbage(t *testing.T) {
	_, _, err := ReadGLB(bytes.NewReader([]byte("not a glb file at all")))
	assert.ErrorIs(t, err, ErrInvalidGLB)

	_, _, err = ReadGLB(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrInvalidGLB)

	var buf bytes.Buffer
	require.NoError(t, WriteGLB(&buf, geometry.Sphere(2, 4), "s"))
	truncated := buf.Bytes()[:buf.Len()-8]
	_, _, err = ReadGLB(bytes.NewReader(truncated))
	assert.ErrorIs(t, err, ErrInvalidGLB)
}

// assembleGLB packs doc and bin into a GLB container with correct lengths.
func assembleGLB(t *testing.T, doc gltfDocument, bin []byte) []byte {
	t.Helper()
	jsonData, err := json.Marshal(doc)
	require.NoError(t, err)
	jsonData = pad(jsonData, ' ')

	var buf bytes.Buffer
	total := gltfGLBHeaderSize + 2*gltfGLBChunkHeaderSize + len(jsonData) + len(bin)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBHeader{Magic: gltfGLBMagic, Version: gltfGLBVersion, Length: uint32(total)}))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(jsonData)), ChunkType: gltfGLBChunkJSON}))
	buf.Write(jsonData)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: uint32(len(bin)), ChunkType: gltfGLBChunkBIN}))
	buf.Write(bin)
	return buf.Bytes()
}

func TestReadGLBRejectsNegativeRanges(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGLB(&buf, geometry.Sphere(1, 3), "s"))
	valid := buf.Bytes()

	tests := []struct {
		name    string
		corrupt func(doc *gltfDocument)
		want    error
	}{
		{"negative count", func(doc *gltfDocument) { doc.Accessors[0].Count = -1 }, ErrInvalidGLB},
		{"negative count with offset", func(doc *gltfDocument) {
			doc.Accessors[0].Count = -1
			doc.Accessors[0].ByteOffset = 24
		}, ErrInvalidGLB},
		{"negative accessor offset", func(doc *gltfDocument) { doc.Accessors[0].ByteOffset = -12 }, ErrInvalidGLB},
		{"negative view offset", func(doc *gltfDocument) { doc.BufferViews[0].ByteOffset = -4 }, ErrInvalidGLB},
		{"negative view length", func(doc *gltfDocument) { doc.BufferViews[0].ByteLength = -1 }, ErrInvalidGLB},
		{"negative index count", func(doc *gltfDocument) { doc.Accessors[len(doc.Accessors)-1].Count = -3 }, ErrInvalidGLB},
		{"negative buffer view index", func(doc *gltfDocument) {
			view := -1
			doc.Accessors[0].BufferView = &view
		}, ErrUnsupportedGLB},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, bin := splitGLB(t, valid)
			tt.corrupt(&doc)

			var err error
			require.NotPanics(t, func() {
				_, _, err = ReadGLB(bytes.NewReader(assembleGLB(t, doc, bin)))
			})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestReadGLBRejectsOversizedChunk(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBHeader{Magic: gltfGLBMagic, Version: gltfGLBVersion, Length: 20}))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBChunkHeader{ChunkLength: 0xFFFFFFFF, ChunkType: gltfGLBChunkJSON}))

	_, _, err := ReadGLB(&buf)
	assert.ErrorIs(t, err, ErrInvalidGLB)
	assert.ErrorContains(t, err, "exceeds the declared file length")

	buf.Reset()
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, gltfGLBHeader{Magic: gltfGLBMagic, Version: gltfGLBVersion, Length: 4}))
	_, _, err = ReadGLB(&buf)
	assert.ErrorIs(t, err, ErrInvalidGLB)
}
