package blueprint

import "github.com/scigolib/meshkit"

// VerifySpecset checks a specset subtree per SPEC_FULL.md §4.2.1: a
// string `matset` reference, an object of per-material
// `volume_fractions`, and a `species_names` object whose per-material
// entry length agrees with the corresponding fraction array's width.
// The referenced matset is neither looked up nor verified, and material
// names are not compared against it; VerifySpecsetAgainstMatset does
// that comparison. Fraction sums are a soft convention, not a checked
// invariant.
func VerifySpecset(n Node) (bool, *Info) {
	info := newInfo("specset")
	if n == nil || n.IsEmpty() {
		info.fail("specset node is missing")
		return false, info
	}
	matsetRef := n.Child("matset")
	if matsetRef == nil || matsetRef.Dtype().Kind() != meshkit.KindChar8 {
		info.fail("specset requires a string 'matset' reference")
		return false, info
	}
	vf := n.Child("volume_fractions")
	if vf == nil || !vf.IsObject() {
		info.fail("specset requires an object 'volume_fractions' keyed by material")
		return false, info
	}
	speciesNames := n.Child("species_names")
	if speciesNames == nil || !speciesNames.IsObject() {
		info.fail("specset requires an object 'species_names' keyed by material")
		return false, info
	}
	for _, material := range vf.ChildNames() {
		fractions := vf.Child(material)
		names := speciesNames.Child(material)
		if names == nil {
			info.fail("species_names missing entry for material %q", material)
			return false, info
		}
		width := specsetWidth(fractions)
		if uint64(names.NumChildren()) != width {
			info.fail("species_names/%s has %d names but volume_fractions/%s has width %d", material, names.NumChildren(), material, width)
			return false, info
		}
	}
	return true, info
}

// specsetWidth returns a per-material fraction entry's component count:
// for a single array, 1; for an mcarray-of-mcarray (an object of
// equal-length numeric arrays), the number of components.
func specsetWidth(fractions Node) uint64 {
	if fractions.IsLeaf() {
		return 1
	}
	if fractions.IsObject() {
		return uint64(fractions.NumChildren())
	}
	return 0
}

// VerifySpecsetAgainstMatset additionally checks that every material
// named in volume_fractions also appears in the referenced matset,
// given the caller has already fetched it (Verify itself only checks
// the reference's presence, not cross-protocol agreement, to keep
// single-protocol verification independent of sibling lookup).
func VerifySpecsetAgainstMatset(specset, matset Node) (bool, *Info) {
	info := newInfo("specset")
	materials := make(map[string]bool)
	for _, m := range MaterialNames(matset) {
		materials[m] = true
	}
	vf := specset.Child("volume_fractions")
	for _, material := range vf.ChildNames() {
		if !materials[material] {
			info.fail("volume_fractions names material %q not present in matset", material)
			return false, info
		}
	}
	return true, info
}
