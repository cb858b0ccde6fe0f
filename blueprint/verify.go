// Package blueprint implements the Mesh Blueprint conventions layer:
// structural verification of coordset/topology/matset/specset/field/
// adjset/nestset/index subtrees, and the coordset/topology conversion
// lattice (uniform -> rectilinear -> structured -> unstructured ->
// polygonal/polyhedral). Verify never panics on malformed mesh data —
// that is exactly what it reports — per the two-channel error model of
// the root meshkit package's ErrorHandler (fatal) versus Info (non-fatal).
package blueprint

import (
	"fmt"
	"strings"
)

// Info is the non-fatal validation result tree populated by Verify: one
// node per inspected subtree, carrying whether it is valid and, when
// not, a human-readable reason. Children are keyed by the same name the
// corresponding Node child was inspected under.
type Info struct {
	Protocol string
	Valid    bool
	Message  string
	Children map[string]*Info
}

func newInfo(protocol string) *Info {
	return &Info{Protocol: protocol, Valid: true}
}

func (i *Info) fail(format string, args ...any) {
	i.Valid = false
	i.Message = fmt.Sprintf(format, args...)
}

func (i *Info) child(name string) *Info {
	if i.Children == nil {
		i.Children = make(map[string]*Info)
	}
	c := &Info{Valid: true}
	i.Children[name] = c
	return c
}

// closedProtocols is the closed set of strings Verify accepts, per §6.
var closedProtocols = map[string]bool{
	"coordset": true, "topology": true, "matset": true, "specset": true,
	"field": true, "adjset": true, "nestset": true, "index": true,
}

// Verify dispatches to the named protocol's checker, or — for a multi-
// domain parent (object or list of single-domain meshes) — recurses
// into each domain when protocol is "" at the tree root; "index" is
// checked by VerifyIndex. An
// empty tree is valid (empty mesh), per §4.2.
func Verify(protocol string, n Node) (bool, *Info) {
	base, suffix, isIndexForm := splitIndexForm(protocol)
	if protocol != "" && !isIndexForm && !closedProtocols[protocol] {
		info := newInfo(protocol)
		info.fail("unrecognized protocol %q", protocol)
		return false, info
	}
	if isIndexForm {
		return verifyIndex(base, suffix, n)
	}
	switch protocol {
	case "coordset":
		return VerifyCoordset(n)
	case "topology":
		return VerifyTopology(n)
	case "matset":
		return VerifyMatset(n)
	case "specset":
		return VerifySpecset(n)
	case "field":
		return VerifyField(n)
	case "adjset":
		return VerifyAdjset(n)
	case "nestset":
		return VerifyNestset(n)
	case "index":
		return VerifyIndex(n)
	case "":
		return VerifyMultiDomain(n)
	default:
		info := newInfo(protocol)
		info.fail("unrecognized protocol %q", protocol)
		return false, info
	}
}

// splitIndexForm recognizes the "<entity>/index" protocol-name form of
// §6 (e.g. "coordset/index").
func splitIndexForm(protocol string) (base, suffix string, ok bool) {
	if !strings.HasSuffix(protocol, "/index") {
		return "", "", false
	}
	base = strings.TrimSuffix(protocol, "/index")
	if !closedProtocols[base] || base == "index" {
		return "", "", false
	}
	return base, "index", true
}

func verifyIndex(base, _ string, n Node) (bool, *Info) {
	info := newInfo(base + "/index")
	if n.NumChildren() == 0 {
		return true, info
	}
	ok := true
	for _, name := range n.ChildNames() {
		child := n.Child(name)
		childOK, childInfo := Verify(base, child)
		info.Children2(name, childInfo)
		if !childOK {
			ok = false
		}
	}
	info.Valid = ok
	return ok, info
}

// Children2 records a pre-built child Info under name (used when the
// child checker already produced its own Info tree, e.g. for index
// forms and multi-domain recursion).
func (i *Info) Children2(name string, child *Info) {
	if i.Children == nil {
		i.Children = make(map[string]*Info)
	}
	i.Children[name] = child
}

// VerifyMultiDomain checks that n is either a single valid mesh domain,
// or an object/list whose every child is a valid single-domain mesh.
// An empty tree is valid (empty mesh), per §4.2.
func VerifyMultiDomain(n Node) (bool, *Info) {
	info := newInfo("multi-domain")
	if n.IsEmpty() {
		return true, info
	}
	if n.HasChild("coordsets") || n.HasChild("topologies") {
		return verifySingleDomain(n)
	}
	if !n.IsObject() && !n.IsList() {
		info.fail("multi-domain root must be object, list, or empty")
		return false, info
	}
	ok := true
	if n.IsObject() {
		for _, name := range n.ChildNames() {
			domOK, domInfo := verifySingleDomain(n.Child(name))
			info.Children2(name, domInfo)
			ok = ok && domOK
		}
	} else {
		for i2 := 0; i2 < n.NumChildren(); i2++ {
			domOK, domInfo := verifySingleDomain(n.ChildAt(i2))
			info.Children2(fmt.Sprintf("%d", i2), domInfo)
			ok = ok && domOK
		}
	}
	info.Valid = ok
	return ok, info
}

func verifySingleDomain(n Node) (bool, *Info) {
	info := newInfo("mesh")
	ok := true
	if coordsets := n.Child("coordsets"); coordsets != nil {
		for _, name := range coordsets.ChildNames() {
			childOK, childInfo := VerifyCoordset(coordsets.Child(name))
			info.Children2("coordsets/"+name, childInfo)
			ok = ok && childOK
		}
	}
	if topologies := n.Child("topologies"); topologies != nil {
		for _, name := range topologies.ChildNames() {
			childOK, childInfo := VerifyTopology(topologies.Child(name))
			info.Children2("topologies/"+name, childInfo)
			ok = ok && childOK
		}
	}
	if fields := n.Child("fields"); fields != nil {
		for _, name := range fields.ChildNames() {
			childOK, childInfo := VerifyField(fields.Child(name))
			info.Children2("fields/"+name, childInfo)
			ok = ok && childOK
		}
	}
	info.Valid = ok
	return ok, info
}

// VerifyIndex checks the top-level "index" protocol: a summary object
// naming the coordset/topology/field/... entries a full mesh tree
// would carry, each itself index-valid.
func VerifyIndex(n Node) (bool, *Info) {
	info := newInfo("index")
	if n.IsEmpty() {
		return true, info
	}
	ok := true
	for _, entity := range []string{"coordset", "topology", "matset", "specset", "field", "adjset", "nestset"} {
		group := n.Child(entity + "s")
		if group == nil {
			continue
		}
		childOK, childInfo := verifyIndex(entity, "index", group)
		info.Children2(entity+"s", childInfo)
		ok = ok && childOK
	}
	info.Valid = ok
	return ok, info
}
