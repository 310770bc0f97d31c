package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name       string
		kind       Kind
		rings      int
		slices     int
		wantRings  int
		wantSlices int
	}{
		{"sphere below minimum", KindSphere, 0, 1, 1, 3},
		{"sphere negative", KindSphere, -4, -9, 1, 3},
		{"sphere untouched", KindSphere, 7, 12, 7, 12},
		{"torus below minimum", KindTorus, 1, 2, 3, 3},
		{"torus rings only", KindTorus, 2, 10, 3, 10},
		{"torus untouched", KindTorus, 24, 16, 24, 16},
		{"unknown kind clamps as sphere", Kind(9), 0, 0, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rings, slices := Clamp(tt.kind, tt.rings, tt.slices)
			assert.Equal(t, tt.wantRings, rings)
			assert.Equal(t, tt.wantSlices, slices)
		})
	}
}

func TestGenerateClampsSphere(t *testing.T) {
	got := Generate(KindSphere, 0, 1)
	assert.Equal(t, Sphere(1, 3), got)
}

func TestGenerateClampsTorus(t *testing.T) {
	got := Generate(KindTorus, 0, 0)
	assert.Equal(t, Torus(3, 3), got)
}

func TestGenerateUnknownKindIsSphere(t *testing.T) {
	assert.Equal(t, Sphere(4, 5), Generate(Kind(42), 4, 5))
}

func TestGenerateReturnsFreshMesh(t *testing.T) {
	a := Generate(KindSphere, 2, 4)
	b := Generate(KindSphere, 2, 4)
	require.Equal(t, a, b)

	a.Vertices[0][0] = 42
	a.Indices[0] = 7
	assert.NotEqual(t, a.Vertices[0], b.Vertices[0])
	assert.NotEqual(t, a.Indices[0], b.Indices[0])
}

func TestPredictedCounts(t *testing.T) {
	for _, kind := range Kinds {
		for _, size := range [][2]int{{0, 0}, {1, 3}, {3, 4}, {9, 17}, {40, 3}} {
			m := Generate(kind, size[0], size[1])
			assert.Equal(t, m.VertexCount(), VertexCount(kind, size[0], size[1]), "%s %v", kind, size)
			assert.Equal(t, len(m.Indices), IndexCount(kind, size[0], size[1]), "%s %v", kind, size)
		}
	}
}

func TestParams(t *testing.T) {
	p := Params{Kind: KindTorus, Rings: 1, Slices: 8}

	assert.Equal(t, Params{Kind: KindTorus, Rings: 3, Slices: 8}, p.Clamped())
	assert.Equal(t, Torus(3, 8), p.Generate())
	assert.Equal(t, 24, p.VertexCount())
	assert.Equal(t, IndexFormatUint16, p.IndexFormat())
	assert.Equal(t, "torus(rings=1, slices=8)", p.String())
}

func TestParamsIndexFormatWidens(t *testing.T) {
	// 2 + 256·256 vertices no longer fit 16-bit indices
	p := Params{Kind: KindSphere, Rings: 256, Slices: 256}
	assert.Equal(t, IndexFormatUint32, p.IndexFormat())

	// 255·257 = 65535 is the largest torus that still fits
	assert.Equal(t, IndexFormatUint16, Params{Kind: KindTorus, Rings: 255, Slices: 257}.IndexFormat())
	assert.Equal(t, IndexFormatUint32, Params{Kind: KindTorus, Rings: 256, Slices: 256}.IndexFormat())
}
