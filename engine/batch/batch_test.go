package batch

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-surface/engine/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid(t *testing.T) {
	grid := Grid(geometry.KindTorus, 4, 5)
	require.Len(t, grid, 2*3)
	assert.Equal(t, geometry.Params{Kind: geometry.KindTorus, Rings: 3, Slices: 3}, grid[0])
	assert.Equal(t, geometry.Params{Kind: geometry.KindTorus, Rings: 3, Slices: 4}, grid[1])
	assert.Equal(t, geometry.Params{Kind: geometry.KindTorus, Rings: 4, Slices: 5}, grid[5])

	sphere := Grid(geometry.KindSphere, 2, 3)
	assert.Equal(t, []geometry.Params{
		{Kind: geometry.KindSphere, Rings: 1, Slices: 3},
		{Kind: geometry.KindSphere, Rings: 2, Slices: 3},
	}, sphere)

	assert.Equal(t, []geometry.Params{{Kind: geometry.KindTorus, Rings: 3, Slices: 3}}, Grid(geometry.KindTorus, 0, -2))
}

func TestSweepPreservesOrder(t *testing.T) {
	params := append(Grid(geometry.KindSphere, 12, 12), Grid(geometry.KindTorus, 12, 12)...)

	results := Sweep(params, 4)
	require.Len(t, results, len(params))
	for i, r := range results {
		assert.Equal(t, params[i], r.Requested)
		assert.Equal(t, params[i].VertexCount(), r.Report.Vertices)
		assert.True(t, r.OK(), "%s: %s", r.Params, r.Report)
	}
	assert.Empty(t, Failures(results))
}

func TestSweepClampsRequests(t *testing.T) {
	results := Sweep([]geometry.Params{
		{Kind: geometry.KindSphere, Rings: 0, Slices: 1},
		{Kind: geometry.KindTorus, Rings: -4, Slices: 2},
	}, 0)

	require.Len(t, results, 2)
	assert.Equal(t, geometry.Params{Kind: geometry.KindSphere, Rings: 1, Slices: 3}, results[0].Params)
	assert.Equal(t, 6, results[0].Report.Triangles)
	assert.Equal(t, geometry.Params{Kind: geometry.KindTorus, Rings: 3, Slices: 3}, results[1].Params)
	assert.Equal(t, 18, results[1].Report.Triangles)
}

func TestSweepIndexFormat(t *testing.T) {
	results := Sweep([]geometry.Params{
		{Kind: geometry.KindTorus, Rings: 255, Slices: 257},
		{Kind: geometry.KindSphere, Rings: 256, Slices: 256},
	}, 2)

	assert.Equal(t, geometry.IndexFormatUint16, results[0].IndexFormat)
	assert.Equal(t, geometry.IndexFormatUint32, results[1].IndexFormat)
}

func TestSweepEmpty(t *testing.T) {
	assert.Empty(t, Sweep(nil, 4))
}

func TestFailures(t *testing.T) {
	results := []Result{
		{Report: geometry.Report{Vertices: 3, Triangles: 1}},
		{Report: geometry.Report{Vertices: 3, Triangles: 1, BoundaryEdges: 3}},
	}
	failed := Failures(results)
	require.Len(t, failed, 1)
	assert.Equal(t, 3, failed[0].Report.BoundaryEdges)
}
