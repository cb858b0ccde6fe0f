package topology

import (
	"testing"

	"github.com/scigolib/meshkit"
	"github.com/scigolib/meshkit/blueprint"
	"github.com/stretchr/testify/require"
)

// build2x2QuadGrid returns a 2x2 quad-cell unstructured topology (the
// same grid as a structured->unstructured quad grid, already
// expressed in unstructured form) with its explicit coordset.
func build2x2QuadGrid() (*meshkit.Node, *meshkit.Node) {
	topo := meshkit.New()
	topo.Path("type").Set("unstructured")
	topo.Path("coordset").Set("coords")
	topo.Path("elements/shape").Set("quad")
	topo.Path("elements/connectivity").Set([]int64{
		0, 1, 4, 3,
		1, 2, 5, 4,
		3, 4, 7, 6,
		4, 5, 8, 7,
	})

	coordset := meshkit.New()
	coordset.Path("type").Set("explicit")
	coordset.Path("values/x").Set([]float64{0, 1, 2, 0, 1, 2, 0, 1, 2})
	coordset.Path("values/y").Set([]float64{0, 0, 0, 1, 1, 1, 2, 2, 2})
	return topo, coordset
}

func TestMetadataBuildQuadCascadeEdgeDedup(t *testing.T) {
	topo, coordset := build2x2QuadGrid()
	m, err := Build(topo, coordset)
	require.NoError(t, err)
	require.Equal(t, 2, m.Dim)

	// 9 points, 4 interior quads sharing edges: the grid has 12 unique
	// edges (3 horizontal rows of 2 each = 6, plus 3 vertical columns of
	// 2 each = 6); the distinct edges are counted directly below.
	require.Equal(t, 9, m.NumEntities(0))
	require.Equal(t, 4, m.NumEntities(2))

	seen := map[[2]int64]bool{}
	for c := 0; c < 4; c++ {
		for _, e := range m.Constituents(2, int64(c)) {
			verts := m.EntityVertices(1, e)
			require.Len(t, verts, 2)
			key := [2]int64{verts[0], verts[1]}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			seen[key] = true
		}
	}
	require.Equal(t, m.NumEntities(1), len(seen))
}

func TestEntityArenaDeduplicatesRegardlessOfOrientation(t *testing.T) {
	a := newEntityArena()
	id1 := a.intern([]int64{3, 7})
	id2 := a.intern([]int64{7, 3})
	require.Equal(t, id1, id2)
	require.Equal(t, 1, a.len())

	id3 := a.intern([]int64{3, 8})
	require.NotEqual(t, id1, id3)
	require.Equal(t, 2, a.len())
}

// buildUnitHex returns a single unstructured hex cell over the unit
// cube, vertices in the canonical order faceDefinitions3D/edgeDefinitions
// assume (bottom face 0-1-2-3, top face 4-5-6-7 directly above).
func buildUnitHex() (*meshkit.Node, *meshkit.Node) {
	topo := meshkit.New()
	topo.Path("type").Set("unstructured")
	topo.Path("coordset").Set("coords")
	topo.Path("elements/shape").Set("hex")
	topo.Path("elements/connectivity").Set([]int64{0, 1, 2, 3, 4, 5, 6, 7})

	coordset := meshkit.New()
	coordset.Path("type").Set("explicit")
	coordset.Path("values/x").Set([]float64{0, 1, 1, 0, 0, 1, 1, 0})
	coordset.Path("values/y").Set([]float64{0, 0, 1, 1, 0, 0, 1, 1})
	coordset.Path("values/z").Set([]float64{0, 0, 0, 0, 1, 1, 1, 1})
	return topo, coordset
}

func TestMetadataBuildHexCascadeFaceDedup(t *testing.T) {
	topo, coordset := buildUnitHex()
	m, err := Build(topo, coordset)
	require.NoError(t, err)
	require.Equal(t, 3, m.Dim)
	require.Equal(t, 8, m.NumEntities(0))
	require.Equal(t, 12, m.NumEntities(1))
	require.Equal(t, 6, m.NumEntities(2))
	require.Equal(t, 1, m.NumEntities(3))

	for fi := int64(0); fi < 6; fi++ {
		verts := m.EntityVertices(2, fi)
		require.Len(t, verts, 4, "face %d should retain its 4-vertex loop", fi)
	}
}

func TestBuildPolyhedralDerivesFacesFromSubelements(t *testing.T) {
	hexTopo, coordset := buildUnitHex()
	poly := blueprint.ToPolyhedral(hexTopo)

	m, err := Build(poly, coordset)
	require.NoError(t, err)
	require.Equal(t, 3, m.Dim)
	require.Equal(t, 6, m.NumEntities(2))
	require.Equal(t, 1, m.NumEntities(3))
	require.Equal(t, 12, m.NumEntities(1))

	for fi := 0; fi < m.NumEntities(2); fi++ {
		require.Len(t, m.EntityVertices(2, int64(fi)), 4)
	}

	centroidTopo, d2s, s2d := Centroids(m, coordset)
	require.Equal(t, "points", centroidTopo.Child("type").AsString())
	require.Equal(t, []int64{0}, d2s)
	require.Equal(t, []int64{0}, s2d)
	cx := centroidTopo.Child("elements") // sanity: centroid topology built without error
	require.NotNil(t, cx)
}

func TestGlobalConstituentsComposesLocalWithDimLE2GE(t *testing.T) {
	topo, coordset := build2x2QuadGrid()
	m, err := Build(topo, coordset)
	require.NoError(t, err)

	for dim := 1; dim <= m.Dim; dim++ {
		for i := 0; i < m.NumEntities(dim); i++ {
			local := m.Constituents(dim, int64(i))
			global := m.GlobalConstituents(dim, int64(i))
			require.Len(t, global, len(local))
			for j, lid := range local {
				require.Equal(t, m.dimLE2GE[dim-1][lid], global[j])
			}
		}
	}
}
