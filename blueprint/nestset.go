package blueprint

import "github.com/scigolib/meshkit"

// VerifyNestset checks a nestset subtree per §4.2: an `association`, a
// `topology` reference, and a `windows` object of per-domain
// parent/child AMR window descriptors, each with `domain_type` ∈
// {parent, child}, `ratio`, `origin` and `dims` (`domain_id` is not
// checked).
func VerifyNestset(n Node) (bool, *Info) {
	info := newInfo("nestset")
	if n == nil || n.IsEmpty() {
		info.fail("nestset node is missing")
		return false, info
	}
	assoc := n.Child("association")
	if assoc == nil || assoc.Dtype().Kind() != meshkit.KindChar8 || !fieldAssociations[assoc.AsString()] {
		info.fail("nestset requires association 'vertex' or 'element'")
		return false, info
	}
	topoRef := n.Child("topology")
	if topoRef == nil || topoRef.Dtype().Kind() != meshkit.KindChar8 {
		info.fail("nestset requires a string 'topology' reference")
		return false, info
	}
	windows := n.Child("windows")
	if windows == nil || !windows.IsObject() {
		info.fail("nestset requires an object 'windows'")
		return false, info
	}
	for _, name := range windows.ChildNames() {
		w := windows.Child(name)
		domainType := w.Child("domain_type")
		if domainType == nil || domainType.Dtype().Kind() != meshkit.KindChar8 {
			info.fail("windows/%s requires a string 'domain_type'", name)
			return false, info
		}
		t := domainType.AsString()
		if t != "parent" && t != "child" {
			info.fail("windows/%s domain_type must be 'parent' or 'child', got %q", name, t)
			return false, info
		}
		if w.Child("ratio") == nil || w.Child("origin") == nil || w.Child("dims") == nil {
			info.fail("windows/%s requires 'ratio', 'origin', and 'dims'", name)
			return false, info
		}
	}
	return true, info
}
