package topology

import (
	"fmt"
	"math"

	"github.com/scigolib/meshkit"
)

// Points returns the pass-through points topology (dim_topos[0]), per
// §4.4's "points/lines/faces: pass-through" rule.
func Points(m *Metadata) *meshkit.Node { return m.DimTopos[0] }

// Lines returns the pass-through edges topology (dim_topos[1]).
func Lines(m *Metadata) *meshkit.Node { return m.DimTopos[1] }

// Faces returns the pass-through dim_topos[2] topology: in a 3D
// topology, the deduplicated faces; in a 2D topology, the cells
// themselves (2D has no separate face dimension below cells).
func Faces(m *Metadata) *meshkit.Node { return m.DimTopos[2] }

// cellVertices returns a cell's own connectivity-order vertex list
// (distinct from face vertex sets, which describe sub-entities).
func cellVertices(m *Metadata, cell int64) []int64 {
	shape := m.Source.Child("elements").Child("shape").AsString()
	arity := cellArity[shape]
	conn := m.Source.Child("elements").Child("connectivity").AsInt64Slice()
	return conn[int(cell)*arity : int(cell)*arity+arity]
}

func coordAt(coordset *meshkit.Node, vertex int64) []float64 {
	values := coordset.Child("values")
	out := make([]float64, values.NumChildren())
	for i, axis := range values.ChildNames() {
		out[i] = values.Child(axis).AsFloat64Slice()[vertex]
	}
	return out
}

func averageCoord(coords [][]float64) []float64 {
	if len(coords) == 0 {
		return nil
	}
	out := make([]float64, len(coords[0]))
	for _, c := range coords {
		for i, v := range c {
			out[i] += v
		}
	}
	for i := range out {
		out[i] /= float64(len(coords))
	}
	return out
}

// cellVertexSets returns, for every cell of a source topology, its full
// (possibly repeating) vertex list: for fixed-shape topologies, the
// connectivity slice sliced by arity; for polyhedral cells, the
// concatenation of every vertex loop of the faces the cell references
// via subelements, per §4.4's "for polyhedral cells, recurse through
// subelements to find the face-vertex sets."
func cellVertexSets(source *meshkit.Node) [][]int64 {
	shape := source.Child("elements").Child("shape").AsString()
	if shape == "polyhedral" {
		return polyhedralCellVerts(source)
	}
	arity := cellArity[shape]
	conn := source.Child("elements").Child("connectivity").AsInt64Slice()
	nCells := len(conn) / arity
	out := make([][]int64, nCells)
	for c := 0; c < nCells; c++ {
		out[c] = conn[c*arity : c*arity+arity]
	}
	return out
}

func polyhedralCellVerts(source *meshkit.Node) [][]int64 {
	elements := source.Child("elements")
	cellFaceConn := elements.Child("connectivity").AsInt64Slice()
	cellFaceSizes := elements.Child("sizes").AsInt64Slice()
	cellFaces := sliceByOffsets(cellFaceConn, cellFaceSizes)

	sub := source.Child("subelements")
	faceConn := sub.Child("connectivity").AsInt64Slice()
	faceSizes := sub.Child("sizes").AsInt64Slice()
	faceVerts := sliceByOffsets(faceConn, faceSizes)

	out := make([][]int64, len(cellFaceSizes))
	for c, faceIDs := range cellFaces {
		var verts []int64
		for _, fid := range faceIDs {
			verts = append(verts, faceVerts[fid]...)
		}
		out[c] = verts
	}
	return out
}

// Centroids returns a points topology with one point per cell, per §4.4.
// Each point's coordinates (the average of the cell's unique vertex
// coordinates) are computed into a local explicit coordset, but that
// coordset is not returned: the returned topology carries only the point
// connectivity. It also returns d2s/s2d, the identity 1:1 maps from cells
// to centroid points (both are the same permutation here, exposed
// separately to match the generators' shared d2s/s2d contract).
func Centroids(m *Metadata, coordset *meshkit.Node) (topo *meshkit.Node, d2s, s2d []int64) {
	cellVerts := cellVertexSets(m.Source)
	nCells := len(cellVerts)

	axes := coordset.Child("values").ChildNames()
	out := make([][]float64, len(axes))
	for i := range out {
		out[i] = make([]float64, nCells)
	}
	for c, verts := range cellVerts {
		seen := map[int64]bool{}
		var coords [][]float64
		for _, v := range verts {
			if seen[v] {
				continue
			}
			seen[v] = true
			coords = append(coords, coordAt(coordset, v))
		}
		avg := averageCoord(coords)
		for i := range axes {
			out[i][c] = avg[i]
		}
	}

	topo = meshkit.New()
	topo.Path("type").Set("points")
	topo.Path("elements/shape").Set("point")
	topo.Path("elements/connectivity").Set(identity(nCells))
	centroidCoords := meshkit.New()
	centroidCoords.Path("type").Set("explicit")
	for i, a := range axes {
		centroidCoords.Path("values/" + a).Set(out[i])
	}

	d2s = identity(nCells)
	s2d = identity(nCells)
	return topo, d2s, s2d
}

// triArea2D returns the (unsigned) area of a 2D triangle.
func triArea2D(a, b, c []float64) float64 {
	return math.Abs((b[0]-a[0])*(c[1]-a[1])-(c[0]-a[0])*(b[1]-a[1])) / 2
}

func tetVolume3D(a, b, c, d []float64) float64 {
	var m [3][3]float64
	for i := 0; i < 3; i++ {
		m[0][i] = b[i] - a[i]
		m[1][i] = c[i] - a[i]
		m[2][i] = d[i] - a[i]
	}
	det := m[0][0]*(m[1][1]*m[2][2]-m[1][2]*m[2][1]) -
		m[0][1]*(m[1][0]*m[2][2]-m[1][2]*m[2][0]) +
		m[0][2]*(m[1][0]*m[2][1]-m[1][1]*m[2][0])
	return math.Abs(det) / 6
}

// SidesResult is the output of Sides: the simplicial subdivision
// topology plus the bookkeeping the field-mapping pass (§4.4.1) needs.
type SidesResult struct {
	Topo              *meshkit.Node
	Coordset          *meshkit.Node
	S2D               []int64 // side index -> parent cell index
	D2S               [][]int64
	OriginalVertexIDs []int64 // per derived vertex; -1 for new (centroid) vertices
	SimplexVolumes    []float64
	CellVolumes       []float64
}

// Sides partitions every cell into simplices: in 2D, triangles
// face-line-start -> face-line-end -> face-center; in 3D, tetrahedra
// cell-face-line-start -> cell-face-line-end -> cell-face-center ->
// cell-center, retaining the cell's original vertex orientation, per
// §4.4.
func Sides(m *Metadata, coordset *meshkit.Node) (*SidesResult, error) {
	shape := m.Source.Child("elements").Child("shape").AsString()
	arity := cellArity[shape]
	conn := m.Source.Child("elements").Child("connectivity").AsInt64Slice()
	nCells := len(conn) / arity

	if m.Dim == 3 {
		return sides3D(shape, arity, conn, nCells, coordset)
	}

	origCoordCount := countPoints(coordset)
	axes := coordset.Child("values").ChildNames()
	axisCoords := make([][]float64, len(axes))
	for i, a := range axes {
		axisCoords[i] = append([]float64(nil), coordset.Child("values").Child(a).AsFloat64Slice()...)
	}

	var sideConn []int64
	var s2d []int64
	d2s := make([][]int64, nCells)
	var origVertexIDs []int64
	for i := 0; i < origCoordCount; i++ {
		origVertexIDs = append(origVertexIDs, int64(i))
	}
	var simplexVolumes []float64
	cellVolumes := make([]float64, nCells)

	nextVertex := int64(origCoordCount)
	for c := 0; c < nCells; c++ {
		verts := conn[c*arity : c*arity+arity]
		var coords [][]float64
		for _, v := range verts {
			coords = append(coords, coordAt(coordset, v))
		}
		center := averageCoord(coords)
		centerID := nextVertex
		nextVertex++
		for i := range axes {
			axisCoords[i] = append(axisCoords[i], center[i])
		}
		origVertexIDs = append(origVertexIDs, -1)

		var cellVol float64
		var sideIDs []int64
		for i := 0; i < len(verts); i++ {
			start := verts[i]
			end := verts[(i+1)%len(verts)]
			sideIdx := int64(len(s2d))
			sideConn = append(sideConn, start, end, centerID)
			s2d = append(s2d, int64(c))
			sideIDs = append(sideIDs, sideIdx)
			area := triArea2D(coordAt(coordset, start), coordAt(coordset, end), center)
			simplexVolumes = append(simplexVolumes, area)
			cellVol += area
		}
		cellVolumes[c] = cellVol
		d2s[c] = sideIDs
	}

	topo := meshkit.New()
	topo.Path("type").Set("unstructured")
	topo.Path("elements/shape").Set("tri")
	topo.Path("elements/connectivity").Set(sideConn)

	newCoordset := meshkit.New()
	newCoordset.Path("type").Set("explicit")
	for i, a := range axes {
		newCoordset.Path("values/" + a).Set(axisCoords[i])
	}

	return &SidesResult{
		Topo:              topo,
		Coordset:          newCoordset,
		S2D:               s2d,
		D2S:               d2s,
		OriginalVertexIDs: origVertexIDs,
		SimplexVolumes:    simplexVolumes,
		CellVolumes:       cellVolumes,
	}, nil
}

// sides3D partitions every 3D cell (tet or hex) into tetrahedra: for
// each face, for each of that face's edges, a tet through the edge's
// two endpoints, the face center, and the cell center — the
// cell-face-line-start -> cell-face-line-end -> cell-face-center ->
// cell-center ordering of §4.4. Face centers are introduced fresh per
// (cell, face) rather than shared across the two cells bordering that
// face, matching the per-cell (not watertight-mesh-wide) nature of a
// side subdivision.
func sides3D(shape string, arity int, conn []int64, nCells int, coordset *meshkit.Node) (*SidesResult, error) {
	faces, ok := faceDefinitions3D[shape]
	if !ok {
		return nil, fmt.Errorf("topology: sides: no 3D face definition for shape %q", shape)
	}

	origCoordCount := countPoints(coordset)
	axes := coordset.Child("values").ChildNames()
	axisCoords := make([][]float64, len(axes))
	for i, a := range axes {
		axisCoords[i] = append([]float64(nil), coordset.Child("values").Child(a).AsFloat64Slice()...)
	}

	var sideConn []int64
	var s2d []int64
	d2s := make([][]int64, nCells)
	var origVertexIDs []int64
	for i := 0; i < origCoordCount; i++ {
		origVertexIDs = append(origVertexIDs, int64(i))
	}
	var simplexVolumes []float64
	cellVolumes := make([]float64, nCells)

	nextVertex := int64(origCoordCount)
	addVertex := func(c []float64) int64 {
		id := nextVertex
		nextVertex++
		for i := range axes {
			axisCoords[i] = append(axisCoords[i], c[i])
		}
		origVertexIDs = append(origVertexIDs, -1)
		return id
	}

	for c := 0; c < nCells; c++ {
		verts := conn[c*arity : c*arity+arity]
		var cellCoords [][]float64
		for _, v := range verts {
			cellCoords = append(cellCoords, coordAt(coordset, v))
		}
		cellCenter := averageCoord(cellCoords)
		cellCenterID := addVertex(cellCenter)

		var cellVol float64
		var sideIDs []int64
		for _, face := range faces {
			faceVertsGlobal := make([]int64, len(face))
			var faceCoords [][]float64
			for i, localIdx := range face {
				faceVertsGlobal[i] = verts[localIdx]
				faceCoords = append(faceCoords, coordAt(coordset, verts[localIdx]))
			}
			faceCenter := averageCoord(faceCoords)
			faceCenterID := addVertex(faceCenter)

			n := len(faceVertsGlobal)
			for i := 0; i < n; i++ {
				start := faceVertsGlobal[i]
				end := faceVertsGlobal[(i+1)%n]
				sideIdx := int64(len(s2d))
				sideConn = append(sideConn, start, end, faceCenterID, cellCenterID)
				s2d = append(s2d, int64(c))
				sideIDs = append(sideIDs, sideIdx)
				vol := tetVolume3D(coordAt(coordset, start), coordAt(coordset, end), faceCenter, cellCenter)
				simplexVolumes = append(simplexVolumes, vol)
				cellVol += vol
			}
		}
		cellVolumes[c] = cellVol
		d2s[c] = sideIDs
	}

	topo := meshkit.New()
	topo.Path("type").Set("unstructured")
	topo.Path("elements/shape").Set("tet")
	topo.Path("elements/connectivity").Set(sideConn)

	newCoordset := meshkit.New()
	newCoordset.Path("type").Set("explicit")
	for i, a := range axes {
		newCoordset.Path("values/" + a).Set(axisCoords[i])
	}

	return &SidesResult{
		Topo:              topo,
		Coordset:          newCoordset,
		S2D:               s2d,
		D2S:               d2s,
		OriginalVertexIDs: origVertexIDs,
		SimplexVolumes:    simplexVolumes,
		CellVolumes:       cellVolumes,
	}, nil
}

// CornersResult is the output of Corners: the new polyhedral (here,
// polygonal) corner topology plus its own coordset (source vertices,
// edge midpoints, face centers, and cell centers) and the s2d/d2s maps.
type CornersResult struct {
	Topo     *meshkit.Node
	Coordset *meshkit.Node
	S2D      []int64 // distinct quad index -> cell that first produced it
	D2S      [][]int64
}

// Corners builds the median dual: for each (cell, vertex) pair, the
// quad faces of its corner cell, deduplicated by vertex-set across
// corners via the shared entityArena, per §4.4. In 2D each corner is a
// single quad {vertex, mid-edge, face-center, mid-other-edge}; in 3D
// (tet or hex cells) that same quad is built once per incident cell
// face, plus one additional {mid-edge, face-center, cell-center,
// other-face-center} quad per incident edge.
func Corners(m *Metadata, coordset *meshkit.Node) (*CornersResult, error) {
	shape := m.Source.Child("elements").Child("shape").AsString()
	arity := cellArity[shape]
	conn := m.Source.Child("elements").Child("connectivity").AsInt64Slice()
	nCells := len(conn) / arity

	if m.Dim == 3 {
		return corners3D(shape, arity, conn, nCells, coordset)
	}

	axes := coordset.Child("values").ChildNames()
	axisCoords := make([][]float64, len(axes))
	for i, a := range axes {
		axisCoords[i] = append([]float64(nil), coordset.Child("values").Child(a).AsFloat64Slice()...)
	}
	nextVertex := int64(countPoints(coordset))
	addCoord := func(c []float64) int64 {
		id := nextVertex
		nextVertex++
		for i := range axes {
			axisCoords[i] = append(axisCoords[i], c[i])
		}
		return id
	}

	midpoints := map[[2]int64]int64{}
	midpointID := func(a, b int64) int64 {
		key := [2]int64{a, b}
		if a > b {
			key = [2]int64{b, a}
		}
		if id, ok := midpoints[key]; ok {
			return id
		}
		mid := averageCoord([][]float64{coordAt(coordset, a), coordAt(coordset, b)})
		return addCoordAndRemember(midpoints, key, mid, addCoord)
	}

	corners := newEntityArena()
	s2d := make([]int64, 0)
	d2s := make([][]int64, nCells)

	for c := 0; c < nCells; c++ {
		verts := conn[c*arity : c*arity+arity]
		var cellVertCoords [][]float64
		for _, v := range verts {
			cellVertCoords = append(cellVertCoords, coordAt(coordset, v))
		}
		center := averageCoord(cellVertCoords)
		centerID := addCoord(center)

		var cellCorners []int64
		for i, v := range verts {
			prev := verts[(i-1+len(verts))%len(verts)]
			next := verts[(i+1)%len(verts)]
			m1 := midpointID(prev, v)
			m2 := midpointID(v, next)
			quad := []int64{v, m2, centerID, m1}
			before := corners.len()
			id := corners.intern(quad)
			if corners.len() > before {
				s2d = append(s2d, int64(c))
			}
			cellCorners = append(cellCorners, id)
		}
		d2s[c] = cellCorners
	}

	topo := meshkit.New()
	topo.Path("type").Set("unstructured")
	topo.Path("elements/shape").Set("quad")
	var finalConn []int64
	for i := 0; i < corners.len(); i++ {
		finalConn = append(finalConn, corners.vertsOf(int64(i))...)
	}
	topo.Path("elements/connectivity").Set(finalConn)

	newCoordset := meshkit.New()
	newCoordset.Path("type").Set("explicit")
	for i, a := range axes {
		newCoordset.Path("values/" + a).Set(axisCoords[i])
	}

	return &CornersResult{Topo: topo, Coordset: newCoordset, S2D: s2d, D2S: d2s}, nil
}

func addCoordAndRemember(midpoints map[[2]int64]int64, key [2]int64, mid []float64, addCoord func([]float64) int64) int64 {
	id := addCoord(mid)
	midpoints[key] = id
	return id
}

// faceNeighbors returns the local vertex indices adjacent to vi within
// face's vertex loop, or ok=false if vi is not on the face.
func faceNeighbors(face []int, vi int) (prevLocal, nextLocal int, ok bool) {
	n := len(face)
	for i, f := range face {
		if f == vi {
			return face[(i-1+n)%n], face[(i+1)%n], true
		}
	}
	return 0, 0, false
}

// edgeFaces returns the (exactly two, for a closed tet/hex cell) local
// face indices whose vertex loop contains both local indices a and b.
func edgeFaces(faces [][]int, a, b int) (f1, f2 int, ok bool) {
	var found []int
	for fi, face := range faces {
		hasA, hasB := false, false
		for _, li := range face {
			hasA = hasA || li == a
			hasB = hasB || li == b
		}
		if hasA && hasB {
			found = append(found, fi)
		}
	}
	if len(found) != 2 {
		return 0, 0, false
	}
	return found[0], found[1], true
}

// corners3D builds the 3D median dual for tet/hex cells: per incident
// face, the same {vertex, mid-edge, face-center, mid-other-edge} quad
// the 2D case builds; per incident edge, an additional {mid-edge,
// face-center, cell-center, other-face-center} quad closing the corner
// polyhedron, per §4.4. Both quad kinds dedup by vertex-set across
// corners via the shared entityArena, exactly as in 2D.
func corners3D(shape string, arity int, conn []int64, nCells int, coordset *meshkit.Node) (*CornersResult, error) {
	faces, ok := faceDefinitions3D[shape]
	if !ok {
		return nil, fmt.Errorf("topology: corners: no 3D face definition for shape %q", shape)
	}
	edges, ok := edgeDefinitions[shape]
	if !ok {
		return nil, fmt.Errorf("topology: corners: no edge definition for shape %q", shape)
	}

	axes := coordset.Child("values").ChildNames()
	axisCoords := make([][]float64, len(axes))
	for i, a := range axes {
		axisCoords[i] = append([]float64(nil), coordset.Child("values").Child(a).AsFloat64Slice()...)
	}
	nextVertex := int64(countPoints(coordset))
	addCoord := func(c []float64) int64 {
		id := nextVertex
		nextVertex++
		for i := range axes {
			axisCoords[i] = append(axisCoords[i], c[i])
		}
		return id
	}

	midpoints := map[[2]int64]int64{}
	midpointID := func(a, b int64) int64 {
		key := [2]int64{a, b}
		if a > b {
			key = [2]int64{b, a}
		}
		if id, ok := midpoints[key]; ok {
			return id
		}
		mid := averageCoord([][]float64{coordAt(coordset, a), coordAt(coordset, b)})
		return addCoordAndRemember(midpoints, key, mid, addCoord)
	}

	corners := newEntityArena()
	s2d := make([]int64, 0)
	d2s := make([][]int64, nCells)

	addQuad := func(c int, quad []int64, into *[]int64) {
		before := corners.len()
		id := corners.intern(quad)
		if corners.len() > before {
			s2d = append(s2d, int64(c))
		}
		*into = append(*into, id)
	}

	for c := 0; c < nCells; c++ {
		verts := conn[c*arity : c*arity+arity]
		var cellCoords [][]float64
		for _, v := range verts {
			cellCoords = append(cellCoords, coordAt(coordset, v))
		}
		cellCenterID := addCoord(averageCoord(cellCoords))

		faceCenterIDs := make([]int64, len(faces))
		for fi, face := range faces {
			var faceCoords [][]float64
			for _, li := range face {
				faceCoords = append(faceCoords, coordAt(coordset, verts[li]))
			}
			faceCenterIDs[fi] = addCoord(averageCoord(faceCoords))
		}

		var allCellQuads []int64
		for vi := 0; vi < arity; vi++ {
			v := verts[vi]
			var vertexQuads []int64
			for fi, face := range faces {
				prevLocal, nextLocal, onFace := faceNeighbors(face, vi)
				if !onFace {
					continue
				}
				mPrev := midpointID(v, verts[prevLocal])
				mNext := midpointID(v, verts[nextLocal])
				addQuad(c, []int64{v, mNext, faceCenterIDs[fi], mPrev}, &vertexQuads)
			}
			for _, e := range edges {
				a, b := e[0], e[1]
				if a != vi && b != vi {
					continue
				}
				other := a
				if a == vi {
					other = b
				}
				mid := midpointID(v, verts[other])
				f1, f2, onEdge := edgeFaces(faces, a, b)
				if !onEdge {
					continue
				}
				addQuad(c, []int64{mid, faceCenterIDs[f1], cellCenterID, faceCenterIDs[f2]}, &vertexQuads)
			}
			allCellQuads = append(allCellQuads, vertexQuads...)
		}
		d2s[c] = allCellQuads
	}

	topo := meshkit.New()
	topo.Path("type").Set("unstructured")
	topo.Path("elements/shape").Set("quad")
	var finalConn []int64
	for i := 0; i < corners.len(); i++ {
		finalConn = append(finalConn, corners.vertsOf(int64(i))...)
	}
	topo.Path("elements/connectivity").Set(finalConn)

	newCoordset := meshkit.New()
	newCoordset.Path("type").Set("explicit")
	for i, a := range axes {
		newCoordset.Path("values/" + a).Set(axisCoords[i])
	}

	return &CornersResult{Topo: topo, Coordset: newCoordset, S2D: s2d, D2S: d2s}, nil
}
