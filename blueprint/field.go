package blueprint

import "github.com/scigolib/meshkit"

var fieldAssociations = map[string]bool{"vertex": true, "element": true}

// VerifyField checks a field subtree per §4.2: exactly one of
// `association` (vertex|element) XOR `basis` is present, exactly one of
// `topology` XOR `matset` names a sibling reference, and either `values`
// is present with numeric element kind (topology fields) or
// `matset_values` is present (matset fields; its kind is not checked).
func VerifyField(n Node) (bool, *Info) {
	info := newInfo("field")
	if n == nil || n.IsEmpty() {
		info.fail("field node is missing")
		return false, info
	}
	assoc := n.Child("association")
	basis := n.Child("basis")
	if (assoc == nil) == (basis == nil) {
		info.fail("field requires exactly one of 'association' or 'basis'")
		return false, info
	}
	if assoc != nil {
		if assoc.Dtype().Kind() != meshkit.KindChar8 || !fieldAssociations[assoc.AsString()] {
			info.fail("association must be 'vertex' or 'element'")
			return false, info
		}
	}
	topoRef := n.Child("topology")
	matsetRef := n.Child("matset")
	if (topoRef == nil) == (matsetRef == nil) {
		info.fail("field requires exactly one of 'topology' or 'matset'")
		return false, info
	}
	if topoRef != nil {
		values := n.Child("values")
		if values == nil {
			info.fail("field requires 'values' when associated with a topology")
			return false, info
		}
		if !fieldValuesNumeric(values) {
			info.fail("values must be numeric (array or mcarray of arrays)")
			return false, info
		}
	} else {
		if n.Child("matset_values") == nil {
			info.fail("field requires 'matset_values' when associated with a matset")
			return false, info
		}
	}
	return true, info
}

func fieldValuesNumeric(values Node) bool {
	if values.IsLeaf() {
		return values.Dtype().Kind().IsNumeric()
	}
	if values.IsObject() {
		for _, name := range values.ChildNames() {
			c := values.Child(name)
			if !c.IsLeaf() || !c.Dtype().Kind().IsNumeric() {
				return false
			}
		}
		return true
	}
	return false
}
