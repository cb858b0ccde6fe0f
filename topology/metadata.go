package topology

import (
	"fmt"

	"github.com/scigolib/meshkit"
)

// Metadata is the derived dimensional cascade of an unstructured
// topology: for each dimension k from 0 (points) up to the topology's
// own dimension D (cells), a deduplicated entity topology plus the
// local (orientation-preserving) and global (deduplicated) adjacency
// between an entity and its immediate constituents one dimension down.
//
// This implementation derives the full cascade for the single-shape
// families {tri, quad, tet, hex} and, in 3D, for polyhedral cells by
// recursing through subelements per §4.4.
type Metadata struct {
	Dim      int
	Coordset *meshkit.Node
	Source   *meshkit.Node

	// DimTopos[k] holds the deduplicated k-dimensional entity topology:
	// DimTopos[0] is points, DimTopos[Dim] is the source cell topology.
	DimTopos []*meshkit.Node

	// localAdj[k] holds, for each element of dimension k, its
	// constituent (k-1)-dimensional entities in discovery order
	// (orientation preserved). localAdj[0] is unused.
	localAdj [][][]int64

	// globalAdj[k] is localAdj[k] with entity ids remapped through
	// dimLE2GE[k-1].
	globalAdj [][][]int64

	// dimLE2GE[k] maps a dimension-k entity's local (first-seen) id to
	// its position in DimTopos[k] — identical by construction here,
	// since DimTopos is itself built in first-seen order, but kept as
	// an explicit map per §4.4's "dim_le2ge_maps[k]".
	dimLE2GE [][]int64

	// faceVerts[id] holds the vertex loop a dimension-2 (3D) entity was
	// interned with, for EntityVertices(2, id).
	faceVerts [][]int64
}

// Build derives the dimensional cascade for an unstructured topology
// over coordset: a fixed single shape (shape ∈ {tri, quad, tet, hex})
// or, in 3D, a polyhedral topology whose subelements block factors each
// cell into faces.
func Build(topo, coordset *meshkit.Node) (*Metadata, error) {
	shape := topo.Child("elements").Child("shape").AsString()
	if shape == "polyhedral" {
		return buildPolyhedral(topo, coordset)
	}
	arity, ok := cellArity[shape]
	if !ok {
		return nil, fmt.Errorf("topology metadata: unsupported shape %q", shape)
	}
	dim := cellDim[shape]
	conn := topo.Child("elements").Child("connectivity").AsInt64Slice()
	nCells := len(conn) / arity

	m := &Metadata{Dim: dim, Coordset: coordset, Source: topo}
	m.DimTopos = make([]*meshkit.Node, dim+1)
	m.localAdj = make([][][]int64, dim+1)
	m.globalAdj = make([][][]int64, dim+1)
	m.dimLE2GE = make([][]int64, dim+1)

	pointCount := countPoints(coordset)
	m.DimTopos[0] = pointsTopology(coordset, pointCount)
	m.dimLE2GE[0] = identity(pointCount)

	cellVerts := make([][]int64, nCells)
	for c := 0; c < nCells; c++ {
		cellVerts[c] = conn[c*arity : (c+1)*arity]
	}

	if dim == 2 {
		edges := newEntityArena()
		cellEdges := make([][]int64, nCells)
		for c, verts := range cellVerts {
			ids := make([]int64, len(edgeDefinitions[shape]))
			for i, e := range edgeDefinitions[shape] {
				ids[i] = edges.intern([]int64{verts[e[0]], verts[e[1]]})
			}
			cellEdges[c] = ids
		}
		m.localAdj[1] = edgeVertexAdjacency(edges)
		m.dimLE2GE[1] = identity(edges.len())
		m.globalAdj[1] = m.localAdj[1]
		m.DimTopos[1] = lineTopology(edges)

		m.localAdj[2] = cellEdges
		m.globalAdj[2] = cellEdges
		m.dimLE2GE[2] = identity(nCells)
		m.DimTopos[2] = topo
		return m, nil
	}

	// dim == 3: points -> edges -> faces -> cells.
	edges := newEntityArena()
	faces := newEntityArena()
	cellFaces := make([][]int64, nCells)
	faceEdges := make(map[int64][]int64)

	for c, verts := range cellVerts {
		faceIDs := make([]int64, len(faceDefinitions3D[shape]))
		for fi, face := range faceDefinitions3D[shape] {
			faceVerts := make([]int64, len(face))
			for i, localIdx := range face {
				faceVerts[i] = verts[localIdx]
			}
			id := faces.intern(faceVerts)
			faceIDs[fi] = id
			if _, seen := faceEdges[id]; !seen {
				edgeIDs := make([]int64, len(faceVerts))
				for i := range faceVerts {
					a, b := faceVerts[i], faceVerts[(i+1)%len(faceVerts)]
					edgeIDs[i] = edges.intern([]int64{a, b})
				}
				faceEdges[id] = edgeIDs
			}
		}
		cellFaces[c] = faceIDs
	}

	finish3D(m, edges, faces, faceEdges, cellFaces, nCells, topo)
	return m, nil
}

// buildPolyhedral derives the cascade for a polyhedral topology: faces
// come directly from subelements (already deduplicated by vertex-set,
// per the converter that produced them), re-interned through the same
// entityArena the fixed-shape path uses so both share EntityVertices/
// Constituents lookup semantics; edges are then discovered by walking
// each distinct face's vertex loop, per §4.4's "For polyhedral cells,
// recurse through subelements to find the face-vertex sets."
func buildPolyhedral(topo, coordset *meshkit.Node) (*Metadata, error) {
	elements := topo.Child("elements")
	cellFaceConn := elements.Child("connectivity").AsInt64Slice()
	cellFaceSizes := elements.Child("sizes").AsInt64Slice()
	cellFaceRefs := sliceByOffsets(cellFaceConn, cellFaceSizes)
	nCells := len(cellFaceSizes)

	sub := topo.Child("subelements")
	if sub == nil {
		return nil, fmt.Errorf("topology metadata: polyhedral topology requires a subelements block")
	}
	subFaceConn := sub.Child("connectivity").AsInt64Slice()
	subFaceSizes := sub.Child("sizes").AsInt64Slice()
	subFaceVerts := sliceByOffsets(subFaceConn, subFaceSizes)

	faces := newEntityArena()
	edges := newEntityArena()
	faceEdges := make(map[int64][]int64)
	subToArena := make([]int64, len(subFaceVerts))
	for i, loop := range subFaceVerts {
		id := faces.intern(loop)
		subToArena[i] = id
		if _, seen := faceEdges[id]; !seen {
			stored := faces.vertsOf(id)
			edgeIDs := make([]int64, len(stored))
			for j := range stored {
				a, b := stored[j], stored[(j+1)%len(stored)]
				edgeIDs[j] = edges.intern([]int64{a, b})
			}
			faceEdges[id] = edgeIDs
		}
	}

	cellFaces := make([][]int64, nCells)
	for c, refs := range cellFaceRefs {
		ids := make([]int64, len(refs))
		for i, r := range refs {
			ids[i] = subToArena[r]
		}
		cellFaces[c] = ids
	}

	m := &Metadata{Dim: 3, Coordset: coordset, Source: topo}
	m.DimTopos = make([]*meshkit.Node, 4)
	m.localAdj = make([][][]int64, 4)
	m.globalAdj = make([][][]int64, 4)
	m.dimLE2GE = make([][]int64, 4)

	pointCount := countPoints(coordset)
	m.DimTopos[0] = pointsTopology(coordset, pointCount)
	m.dimLE2GE[0] = identity(pointCount)

	finish3D(m, edges, faces, faceEdges, cellFaces, nCells, topo)
	return m, nil
}

// finish3D fills in the points->edges->faces->cells cascade shared by
// the fixed-shape {tet,hex} and polyhedral 3D builds, given the cell's
// face adjacency and the face->edge adjacency discovered while walking
// those faces.
func finish3D(m *Metadata, edges, faces *entityArena, faceEdges map[int64][]int64, cellFaces [][]int64, nCells int, topo *meshkit.Node) {
	m.localAdj[1] = edgeVertexAdjacency(edges)
	m.dimLE2GE[1] = identity(edges.len())
	m.globalAdj[1] = m.localAdj[1]
	m.DimTopos[1] = lineTopology(edges)

	faceAdj := make([][]int64, faces.len())
	for id, eids := range faceEdges {
		faceAdj[id] = eids
	}
	m.localAdj[2] = faceAdj
	m.globalAdj[2] = faceAdj
	m.dimLE2GE[2] = identity(faces.len())
	m.DimTopos[2] = faceTopology(faces)

	m.faceVerts = make([][]int64, faces.len())
	for i := 0; i < faces.len(); i++ {
		m.faceVerts[i] = faces.vertsOf(int64(i))
	}

	m.localAdj[3] = cellFaces
	m.globalAdj[3] = cellFaces
	m.dimLE2GE[3] = identity(nCells)
	m.DimTopos[3] = topo
}

// sliceByOffsets splits a flat one-to-many array (conn) into its
// variable-length entries given their sizes, per the one-to-many
// relation convention (values/sizes[/offsets]) GLOSSARY names.
func sliceByOffsets(conn, sizes []int64) [][]int64 {
	out := make([][]int64, len(sizes))
	off := 0
	for i, sz := range sizes {
		out[i] = conn[off : off+int(sz)]
		off += int(sz)
	}
	return out
}

// Constituents returns element i of dimension dim's constituent entity
// ids at dimension dim-1, in the (orientation-preserving) local table.
func (m *Metadata) Constituents(dim int, i int64) []int64 {
	return m.localAdj[dim][i]
}

// GlobalConstituents is the same lookup through the global (deduplicated)
// table.
func (m *Metadata) GlobalConstituents(dim int, i int64) []int64 {
	return m.globalAdj[dim][i]
}

// NumEntities returns the number of distinct dimension-k entities.
func (m *Metadata) NumEntities(dim int) int {
	return len(m.dimLE2GE[dim])
}

// EntityVertices returns dimension-k entity id's underlying vertex set
// (for dim 1, an edge's two points; for dim 2 in 3D, a face's points).
func (m *Metadata) EntityVertices(dim int, id int64) []int64 {
	switch dim {
	case 1:
		return m.edgeArenaVerts(id)
	case 2:
		if m.Dim == 3 {
			return m.faceArenaVerts(id)
		}
	}
	return nil
}

func identity(n int) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = int64(i)
	}
	return out
}

func countPoints(coordset *meshkit.Node) int {
	values := coordset.Child("values")
	if values == nil {
		return 0
	}
	first := values.ChildAt(0)
	return int(first.Dtype().NumElements())
}

func edgeVertexAdjacency(edges *entityArena) [][]int64 {
	out := make([][]int64, edges.len())
	for i := 0; i < edges.len(); i++ {
		out[i] = edges.vertsOf(int64(i))
	}
	return out
}

func pointsTopology(coordset *meshkit.Node, n int) *meshkit.Node {
	out := meshkit.New()
	out.Path("type").Set("points")
	out.Path("elements/shape").Set("point")
	out.Path("elements/connectivity").Set(identity(n))
	return out
}

func lineTopology(edges *entityArena) *meshkit.Node {
	out := meshkit.New()
	out.Path("type").Set("unstructured")
	out.Path("elements/shape").Set("line")
	var conn []int64
	for i := 0; i < edges.len(); i++ {
		conn = append(conn, edges.vertsOf(int64(i))...)
	}
	out.Path("elements/connectivity").Set(conn)
	return out
}

func faceTopology(faces *entityArena) *meshkit.Node {
	out := meshkit.New()
	out.Path("type").Set("unstructured")
	out.Path("elements/shape").Set("polygonal")
	var conn []int64
	var sizes []int64
	for i := 0; i < faces.len(); i++ {
		v := faces.vertsOf(int64(i))
		conn = append(conn, v...)
		sizes = append(sizes, int64(len(v)))
	}
	out.Path("elements/connectivity").Set(conn)
	out.Path("elements/sizes").Set(sizes)
	return out
}

func (m *Metadata) edgeArenaVerts(id int64) []int64 {
	if int(id) >= len(m.localAdj[1]) {
		return nil
	}
	return m.localAdj[1][id]
}

func (m *Metadata) faceArenaVerts(id int64) []int64 {
	if int(id) >= len(m.faceVerts) {
		return nil
	}
	return m.faceVerts[id]
}
