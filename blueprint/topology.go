package blueprint

import (
	"fmt"

	"github.com/scigolib/meshkit"
)

var topologyTypes = map[string]bool{
	"points": true, "uniform": true, "rectilinear": true, "structured": true, "unstructured": true,
}
var unstructuredShapes = map[string]int{
	"point": 1, "line": 2, "tri": 3, "quad": 4, "tet": 4, "hex": 8, "polygonal": -1, "polyhedral": -1,
}

// VerifyTopology checks a topology subtree per §4.2: a recognized
// `type`, a `coordset` reference name, and the element description the
// type requires.
func VerifyTopology(n Node) (bool, *Info) {
	info := newInfo("topology")
	if n == nil || n.IsEmpty() {
		info.fail("topology node is missing")
		return false, info
	}
	typeNode := n.Child("type")
	if typeNode == nil || typeNode.Dtype().Kind() != meshkit.KindChar8 {
		info.fail("topology requires a string 'type'")
		return false, info
	}
	ttype := typeNode.AsString()
	if !topologyTypes[ttype] {
		info.fail("unrecognized topology type %q", ttype)
		return false, info
	}
	coordsetRef := n.Child("coordset")
	if coordsetRef == nil || coordsetRef.Dtype().Kind() != meshkit.KindChar8 {
		info.fail("topology requires a string 'coordset' reference")
		return false, info
	}
	switch ttype {
	case "points":
		return true, info
	case "uniform", "rectilinear":
		return true, info
	case "structured":
		return verifyStructuredTopology(n, info)
	case "unstructured":
		return verifyUnstructuredTopology(n, info)
	}
	return true, info
}

func verifyStructuredTopology(n Node, info *Info) (bool, *Info) {
	elements := n.Child("elements")
	if elements == nil || elements.Child("dims") == nil {
		info.fail("structured topology requires elements/dims")
		return false, info
	}
	return true, info
}

func verifyUnstructuredTopology(n Node, info *Info) (bool, *Info) {
	elements := n.Child("elements")
	if elements == nil {
		info.fail("unstructured topology requires an elements subtree")
		return false, info
	}
	shapeNode := elements.Child("shape")
	if shapeNode == nil || shapeNode.Dtype().Kind() != meshkit.KindChar8 {
		info.fail("unstructured topology requires elements/shape")
		return false, info
	}
	shape := shapeNode.AsString()
	if _, ok := unstructuredShapes[shape]; !ok {
		info.fail("unrecognized element shape %q", shape)
		return false, info
	}
	conn := elements.Child("connectivity")
	if conn == nil || !conn.IsLeaf() || !conn.Dtype().Kind().IsInteger() {
		info.fail("elements/connectivity must be an integer array")
		return false, info
	}
	if shape == "polygonal" || shape == "polyhedral" {
		if elements.Child("sizes") == nil {
			info.fail("%s topology requires elements/sizes", shape)
			return false, info
		}
		if shape == "polyhedral" {
			sub := n.Child("subelements")
			if sub == nil {
				info.fail("polyhedral topology requires a subelements block")
				return false, info
			}
			subShape := sub.Child("shape")
			if subShape == nil || subShape.Dtype().Kind() != meshkit.KindChar8 || subShape.AsString() != "polygonal" {
				info.fail("subelements must have shape polygonal")
				return false, info
			}
		}
	}
	return true, info
}

// localVertexOffsets returns the 2^dim per-axis offsets of a quad/hex
// cell's local vertices in the canonical (right-handed, counter-
// clockwise on the bottom face) order of §4.3: enumerate by binary-
// counted direction bits, then swap the last two vertices of every
// consecutive group of four (each such group is one quad face).
func localVertexOffsets(dim int) [][3]int {
	n := 1 << dim
	offsets := make([][3]int, n)
	for k := 0; k < n; k++ {
		var off [3]int
		for b := 0; b < dim; b++ {
			if k&(1<<uint(b)) != 0 {
				off[b] = 1
			}
		}
		offsets[k] = off
	}
	for g := 0; g+4 <= n; g += 4 {
		offsets[g+2], offsets[g+3] = offsets[g+3], offsets[g+2]
	}
	return offsets
}

// StructuredToUnstructured emits {quad|hex} connectivity from a regular
// i-j-k element grid (elements/dims) over an explicit/rectilinear
// coordset with Vi*Vj[*Vk] vertices, per §4.3's concrete scenario.
func StructuredToUnstructured(topo Node) *meshkit.Node {
	elements := topo.Child("elements")
	dims := elements.Child("dims")
	dim := 2
	var ei, ej, ek int64 = dims.Child("i").AsInt64(), dims.Child("j").AsInt64(), 1
	if dims.HasChild("k") {
		dim = 3
		ek = dims.Child("k").AsInt64()
	}
	vi, vj := ei+1, ej+1
	vk := ek + 1
	offsets := localVertexOffsets(dim)

	shape := "quad"
	if dim == 3 {
		shape = "hex"
	}
	var conn []int64
	for k := int64(0); k < ek; k++ {
		for j := int64(0); j < ej; j++ {
			for i := int64(0); i < ei; i++ {
				for _, off := range offsets {
					vIdx := vertexIndex(i+int64(off[0]), j+int64(off[1]), k+int64(off[2]), vi, vj, vk)
					conn = append(conn, vIdx)
				}
			}
		}
	}

	out := meshkit.New()
	out.Path("type").Set("unstructured")
	out.Path("coordset").Set(topo.Child("coordset").AsString())
	out.Path("elements/shape").Set(shape)
	out.Path("elements/connectivity").Set(conn)
	return out
}

func vertexIndex(i, j, k, vi, vj, _ int64) int64 {
	return k*(vi*vj) + j*vi + i
}

// ToPolygonal rewrites a fixed-shape unstructured topology with
// shape=polygonal and sizes all equal to the source shape's arity, per
// §4.3's conversion table.
func ToPolygonal(topo Node) *meshkit.Node {
	elements := topo.Child("elements")
	shape := elements.Child("shape").AsString()
	arity := unstructuredShapes[shape]
	conn := elements.Child("connectivity").AsInt64Slice()
	nCells := len(conn) / arity

	out := meshkit.New()
	out.Path("type").Set("unstructured")
	out.Path("coordset").Set(topo.Child("coordset").AsString())
	out.Path("elements/shape").Set("polygonal")
	out.Path("elements/connectivity").Set(conn)
	sizes := make([]int64, nCells)
	for i := range sizes {
		sizes[i] = int64(arity)
	}
	out.Path("elements/sizes").Set(sizes)
	return out
}

// faceDefinitions enumerates a cell shape's faces as local vertex index
// tuples, used by ToPolyhedral to factor each cell into its faces.
var faceDefinitions = map[string][][]int{
	"hex": {
		{0, 1, 2, 3}, {4, 7, 6, 5}, {0, 4, 5, 1},
		{1, 5, 6, 2}, {2, 6, 7, 3}, {3, 7, 4, 0},
	},
	"tet": {
		{0, 1, 2}, {0, 3, 1}, {1, 3, 2}, {2, 3, 0},
	},
}

// ToPolyhedral factors each cell of a fixed-shape unstructured topology
// into its faces, deduplicating face vertex-sets across cells, and
// emits a polygonal subelements block, per §4.3's conversion table and
// the concrete "Polyhedral factoring" scenario of §8.
func ToPolyhedral(topo Node) *meshkit.Node {
	elements := topo.Child("elements")
	shape := elements.Child("shape").AsString()
	arity := unstructuredShapes[shape]
	faces := faceDefinitions[shape]
	conn := elements.Child("connectivity").AsInt64Slice()
	nCells := len(conn) / arity

	faceKey := make(map[string]int64)
	var faceConn []int64
	var faceSizes []int64
	var cellFaceConn []int64
	var cellFaceSizes []int64

	for c := 0; c < nCells; c++ {
		cellVerts := conn[c*arity : (c+1)*arity]
		cellFaceSizes = append(cellFaceSizes, int64(len(faces)))
		for _, face := range faces {
			verts := make([]int64, len(face))
			for i, localIdx := range face {
				verts[i] = cellVerts[localIdx]
			}
			key := faceSetKey(verts)
			id, seen := faceKey[key]
			if !seen {
				id = int64(len(faceSizes))
				faceKey[key] = id
				faceSizes = append(faceSizes, int64(len(verts)))
				faceConn = append(faceConn, verts...)
			}
			cellFaceConn = append(cellFaceConn, id)
		}
	}

	out := meshkit.New()
	out.Path("type").Set("unstructured")
	out.Path("coordset").Set(topo.Child("coordset").AsString())
	out.Path("elements/shape").Set("polyhedral")
	out.Path("elements/connectivity").Set(cellFaceConn)
	out.Path("elements/sizes").Set(cellFaceSizes)
	out.Path("subelements/shape").Set("polygonal")
	out.Path("subelements/connectivity").Set(faceConn)
	out.Path("subelements/sizes").Set(faceSizes)
	return out
}

// faceSetKey builds a dedup key from a face's vertex set independent of
// winding or starting vertex, matching TopologyMetadata's "unordered
// vertex-id set" identification rule (§4.4).
func faceSetKey(verts []int64) string {
	sorted := append([]int64(nil), verts...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	return fmt.Sprint(sorted)
}
