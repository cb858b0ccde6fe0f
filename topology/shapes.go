// Package topology implements TopologyMetadata — the dimensional
// cascade (cells<->faces<->edges<->points) derived from an unstructured
// topology, with local (orientation-preserving) and global
// (deduplicated) adjacency tables — and the derived-topology generators
// built on top of it: points, lines, faces, centroids, sides, and
// corners.
package topology

// cellArity and the edge/face local-vertex-index tables below are the
// fixed, finite element catalogs the dimensional cascade needs: for
// each supported shape, how many vertices a cell has, which local pairs
// form its edges (dimension 1), and (in 3D) which local vertex tuples
// form its faces (dimension D-1).
var cellArity = map[string]int{"tri": 3, "quad": 4, "tet": 4, "hex": 8}

var cellDim = map[string]int{"tri": 2, "quad": 2, "tet": 3, "hex": 3}

var edgeDefinitions = map[string][][2]int{
	"tri":  {{0, 1}, {1, 2}, {2, 0}},
	"quad": {{0, 1}, {1, 2}, {2, 3}, {3, 0}},
	"tet":  {{0, 1}, {1, 2}, {2, 0}, {0, 3}, {1, 3}, {2, 3}},
	"hex": {
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	},
}

// faceDefinitions3D mirrors blueprint's cell-to-face factoring table,
// restated here to keep this package independent of blueprint (the
// dimensional cascade is a lower-level concern the converters build on,
// not the reverse).
var faceDefinitions3D = map[string][][]int{
	"hex": {
		{0, 1, 2, 3}, {4, 7, 6, 5}, {0, 4, 5, 1},
		{1, 5, 6, 2}, {2, 6, 7, 3}, {3, 7, 4, 0},
	},
	"tet": {
		{0, 1, 2}, {0, 3, 1}, {1, 3, 2}, {2, 3, 0},
	},
}
