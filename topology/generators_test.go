package topology

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCentroidsAverageCellVertices(t *testing.T) {
	topo, coordset := build2x2QuadGrid()
	m, err := Build(topo, coordset)
	require.NoError(t, err)

	centroidTopo, d2s, s2d := Centroids(m, coordset)
	require.Equal(t, "points", centroidTopo.Child("type").AsString())
	require.Len(t, d2s, 4)
	require.Equal(t, d2s, s2d)
}

func TestSidesConserveCellArea(t *testing.T) {
	topo, coordset := build2x2QuadGrid()
	m, err := Build(topo, coordset)
	require.NoError(t, err)

	sr, err := Sides(m, coordset)
	require.NoError(t, err)

	// Each quad cell has area 1 (unit square); the four sides of
	// each cell must sum back to the cell's own area, and S2D must name
	// exactly 4 distinct parent cells, 4 sides (triangles) each.
	perCell := map[int64]float64{}
	countPerCell := map[int64]int{}
	for i, cell := range sr.S2D {
		perCell[cell] += sr.SimplexVolumes[i]
		countPerCell[cell]++
	}
	require.Len(t, perCell, 4)
	for cell, total := range perCell {
		require.InDelta(t, 1.0, total, 1e-9)
		require.Equal(t, 4, countPerCell[cell])
		require.InDelta(t, 1.0, sr.CellVolumes[cell], 1e-9)
	}

	// Original vertices map back to themselves; the 4 new centroid
	// vertices (one per cell) are marked -1.
	newCount := 0
	for _, id := range sr.OriginalVertexIDs {
		if id == -1 {
			newCount++
		}
	}
	require.Equal(t, 4, newCount)
}

func TestSidesVertexFieldMeanOfNeighbors(t *testing.T) {
	topo, coordset := build2x2QuadGrid()
	m, err := Build(topo, coordset)
	require.NoError(t, err)

	sr, err := Sides(m, coordset)
	require.NoError(t, err)

	values := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}
	mapped, volume, err := MapField(sr, "vertex", false, values)
	require.NoError(t, err)
	require.Nil(t, volume)
	require.Len(t, mapped, len(sr.OriginalVertexIDs))

	for v, orig := range sr.OriginalVertexIDs {
		if orig >= 0 {
			require.Equal(t, values[orig], mapped[v])
		}
	}
	// Each cell's centroid vertex gets the mean of its cell's 4 corners.
	require.Equal(t, []float64{3, 4, 6, 7}, mapped[len(values):])
}

func TestMapFieldElementVolumeDependentScalesBySimplexRatio(t *testing.T) {
	topo, coordset := build2x2QuadGrid()
	m, err := Build(topo, coordset)
	require.NoError(t, err)

	sr, err := Sides(m, coordset)
	require.NoError(t, err)

	cellValues := []float64{10, 20, 30, 40}
	mapped, volume, err := MapField(sr, "element", true, cellValues)
	require.NoError(t, err)
	require.Len(t, mapped, len(sr.S2D))
	require.Len(t, volume, len(sr.S2D))
	for i, cell := range sr.S2D {
		ratio := sr.SimplexVolumes[i] / sr.CellVolumes[cell]
		require.InDelta(t, cellValues[cell]*ratio, mapped[i], 1e-9)
	}
}

func TestMapFieldRejectsVolumeDependentVertexField(t *testing.T) {
	topo, coordset := build2x2QuadGrid()
	m, err := Build(topo, coordset)
	require.NoError(t, err)
	sr, err := Sides(m, coordset)
	require.NoError(t, err)

	_, _, err = MapField(sr, "vertex", true, []float64{1, 2, 3})
	require.Error(t, err)
}

func TestCornersDedupSharedQuads(t *testing.T) {
	topo, coordset := build2x2QuadGrid()
	m, err := Build(topo, coordset)
	require.NoError(t, err)

	cr, err := Corners(m, coordset)
	require.NoError(t, err)
	require.Equal(t, "quad", cr.Topo.Child("elements").Child("shape").AsString())
	// 4 cells x 4 corners each = 16 corner entries in D2S, none deduped
	// away (each (cell,vertex) pair is distinct even where a vertex is
	// shared between cells).
	total := 0
	for _, cs := range cr.D2S {
		total += len(cs)
	}
	require.Equal(t, 16, total)
	require.Equal(t, 16, len(cr.S2D))
}

func TestSides3DTetSubdivisionConservesCellVolume(t *testing.T) {
	topo, coordset := buildUnitHex()
	m, err := Build(topo, coordset)
	require.NoError(t, err)

	sr, err := Sides(m, coordset)
	require.NoError(t, err)
	require.Equal(t, "tet", sr.Topo.Child("elements").Child("shape").AsString())

	// 6 faces x 4 edges per quad face = 24 tets, one per
	// cell-face-line-start/end/face-center/cell-center quadruple, all
	// belonging to the single cell and summing back to its unit volume.
	require.Len(t, sr.SimplexVolumes, 24)
	require.Len(t, sr.S2D, 24)
	for _, cell := range sr.S2D {
		require.Equal(t, int64(0), cell)
	}

	var total float64
	for _, v := range sr.SimplexVolumes {
		total += v
	}
	require.InDelta(t, 1.0, total, 1e-9)
	require.InDelta(t, 1.0, sr.CellVolumes[0], 1e-9)
}

func TestCorners3DHexMedianDual(t *testing.T) {
	topo, coordset := buildUnitHex()
	m, err := Build(topo, coordset)
	require.NoError(t, err)

	cr, err := Corners(m, coordset)
	require.NoError(t, err)
	require.Equal(t, "quad", cr.Topo.Child("elements").Child("shape").AsString())

	// Each of the 8 corner vertices contributes one quad per incident
	// face (3) plus one quad per incident edge (3) = 6 references; a
	// single-cell mesh never dedups the face quads (24 distinct), but
	// each of the cube's 12 edges is visited from both endpoints and
	// collapses to a single shared quad (12 distinct), for 36 unique
	// quads total referenced 48 times.
	total := 0
	for _, cs := range cr.D2S {
		total += len(cs)
	}
	require.Equal(t, 48, total)
	require.Equal(t, 36, len(cr.S2D))
}
