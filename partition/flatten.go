package partition

import (
	"github.com/scigolib/meshkit"
	"github.com/scigolib/meshkit/blueprint"
)

// localCSR is one domain's elements walked into per-element vertex
// lists, in local (domain-relative) vertex numbering, per §4.5 step 2.
type localCSR struct {
	elementVerts [][]int64
	numVertices  int
}

// walkDomain resolves opts.Topology on domain (or the domain's first
// topology if unset) and returns its elements as per-element local
// vertex-id lists, converting a structured topology to its equivalent
// unstructured connectivity first (§4.5: "implicit index math for
// structured families" collapses to the same flat walk once converted).
func walkDomain(domain *meshkit.Node, opts Options) (*localCSR, error) {
	topo, coordset, err := selectTopology(domain, opts.Topology)
	if err != nil {
		return nil, err
	}

	if topo.Child("type").AsString() == "structured" {
		topo = blueprint.StructuredToUnstructured(topo)
	}

	shape := topo.Child("elements").Child("shape").AsString()
	conn := topo.Child("elements").Child("connectivity").AsInt64Slice()

	var elementVerts [][]int64
	if sizesNode := topo.Child("elements").Child("sizes"); sizesNode != nil {
		sizes := sizesNode.AsInt64Slice()
		offset := 0
		for _, sz := range sizes {
			elementVerts = append(elementVerts, conn[offset:offset+int(sz)])
			offset += int(sz)
		}
	} else {
		arity := shapeArity[shape]
		for i := 0; i+arity <= len(conn); i += arity {
			elementVerts = append(elementVerts, conn[i:i+arity])
		}
	}

	numVertices := countDomainVertices(coordset)
	return &localCSR{elementVerts: elementVerts, numVertices: numVertices}, nil
}

var shapeArity = map[string]int{"point": 1, "line": 2, "tri": 3, "quad": 4, "tet": 4, "hex": 8}

func countDomainVertices(coordset *meshkit.Node) int {
	values := coordset.Child("values")
	if values == nil || values.NumChildren() == 0 {
		return 0
	}
	return int(values.ChildAt(0).Dtype().NumElements())
}

func selectTopology(domain *meshkit.Node, name string) (topo, coordset *meshkit.Node, err error) {
	topos := domain.Child("topologies")
	if topos == nil || topos.NumChildren() == 0 {
		return nil, nil, errNoTopology()
	}
	if name == "" {
		name = topos.ChildNames()[0]
	}
	topo, err = topos.Fetch(name)
	if err != nil {
		return nil, nil, err
	}
	coordsetName := topo.Child("coordset").AsString()
	coordset, err = domain.Fetch("coordsets/" + coordsetName)
	if err != nil {
		return nil, nil, err
	}
	return topo, coordset, nil
}

// eldistEptrEind assembles the three flat CSR arrays the external
// partitioner expects (§6), given this worker's local element/vertex
// lists (across its domains) already remapped to global vertex ids, and the
// per-worker element counts needed to build eldist.
func eldistEptrEind(elementsGlobal [][]int64, perWorkerElemCounts []int64) (eldist, eptr, eind []int64) {
	eldist = make([]int64, len(perWorkerElemCounts)+1)
	for i, c := range perWorkerElemCounts {
		eldist[i+1] = eldist[i] + c
	}

	eptr = make([]int64, len(elementsGlobal)+1)
	for i, verts := range elementsGlobal {
		eptr[i+1] = eptr[i] + int64(len(verts))
		eind = append(eind, verts...)
	}
	return eldist, eptr, eind
}
