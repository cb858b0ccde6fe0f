package blueprint

import (
	"github.com/google/uuid"
	"github.com/scigolib/meshkit"
)

// VerifyAdjset checks an adjset subtree per §4.2: an `association`
// (vertex|element), a `topology` reference, and a `groups` object whose
// entries each name a `neighbors` rank list and the shared entities
// (`values`, optionally with a one-to-many `sizes`/`offsets`).
func VerifyAdjset(n Node) (bool, *Info) {
	info := newInfo("adjset")
	if n == nil || n.IsEmpty() {
		info.fail("adjset node is missing")
		return false, info
	}
	assoc := n.Child("association")
	if assoc == nil || assoc.Dtype().Kind() != meshkit.KindChar8 || !fieldAssociations[assoc.AsString()] {
		info.fail("adjset requires association 'vertex' or 'element'")
		return false, info
	}
	topoRef := n.Child("topology")
	if topoRef == nil || topoRef.Dtype().Kind() != meshkit.KindChar8 {
		info.fail("adjset requires a string 'topology' reference")
		return false, info
	}
	groups := n.Child("groups")
	if groups == nil || !groups.IsObject() {
		info.fail("adjset requires an object 'groups'")
		return false, info
	}
	for _, name := range groups.ChildNames() {
		g := groups.Child(name)
		neighbors := g.Child("neighbors")
		if neighbors == nil || !neighbors.IsLeaf() || !neighbors.Dtype().Kind().IsInteger() {
			info.fail("groups/%s requires an integer 'neighbors' array", name)
			return false, info
		}
		values := g.Child("values")
		if values == nil || !values.IsLeaf() || !values.Dtype().Kind().IsInteger() {
			info.fail("groups/%s requires an integer 'values' array", name)
			return false, info
		}
	}
	return true, info
}

// DefaultAdjsetGroupName returns name unchanged when the caller supplies
// one, otherwise a fresh UUID-based group name — for callers assembling
// an adjset's groups/<name> subtree for a neighbor pair that has no
// natural name of its own (e.g. a partitioner emitting adjsets for
// domains it just split, before any naming convention exists).
func DefaultAdjsetGroupName(name string) string {
	if name != "" {
		return name
	}
	return "group_" + uuid.New().String()
}
