package blueprint

import "github.com/scigolib/meshkit"

// VerifyMatset checks a matset subtree per §4.2: a `topology` reference
// plus either uni-buffer (`material_ids`/`volume_fractions` interleaved
// per element) or multi-buffer (per-material `volume_fractions/<name>`)
// material data.
func VerifyMatset(n Node) (bool, *Info) {
	info := newInfo("matset")
	if n == nil || n.IsEmpty() {
		info.fail("matset node is missing")
		return false, info
	}
	topoRef := n.Child("topology")
	if topoRef == nil || topoRef.Dtype().Kind() != meshkit.KindChar8 {
		info.fail("matset requires a string 'topology' reference")
		return false, info
	}
	vf := n.Child("volume_fractions")
	if vf == nil {
		info.fail("matset requires volume_fractions")
		return false, info
	}
	if vf.IsLeaf() {
		// Uni-buffer form: a single flat array, sized by element_ids/sizes/offsets.
		if !vf.Dtype().Kind().IsNumeric() {
			info.fail("volume_fractions must be numeric")
			return false, info
		}
		return true, info
	}
	if !vf.IsObject() {
		info.fail("volume_fractions must be a numeric array (uni-buffer) or an object (multi-buffer)")
		return false, info
	}
	for _, name := range vf.ChildNames() {
		child := vf.Child(name)
		if !child.IsLeaf() || !child.Dtype().Kind().IsNumeric() {
			info.fail("volume_fractions/%s must be a numeric array", name)
			return false, info
		}
	}
	return true, info
}

// MaterialNames returns a multi-buffer matset's material names, in the
// order Specset needs to match fraction-array widths against.
func MaterialNames(matset Node) []string {
	vf := matset.Child("volume_fractions")
	if vf == nil || vf.IsLeaf() {
		return nil
	}
	return vf.ChildNames()
}
