package blueprint

import (
	"github.com/scigolib/meshkit"
)

var coordsetTypes = map[string]bool{"uniform": true, "rectilinear": true, "explicit": true}
var axisNames3 = [][]string{{"x", "y", "z"}, {"r", "z"}, {"r", "theta", "phi"}}

// VerifyCoordset checks a coordset subtree per §4.2: a recognized
// `type`, plus the axis data that type requires.
func VerifyCoordset(n Node) (bool, *Info) {
	info := newInfo("coordset")
	if n == nil || n.IsEmpty() {
		info.fail("coordset node is missing")
		return false, info
	}
	typeNode := n.Child("type")
	if typeNode == nil || typeNode.Dtype().Kind() != meshkit.KindChar8 {
		info.fail("coordset requires a string 'type'")
		return false, info
	}
	ctype := typeNode.AsString()
	if !coordsetTypes[ctype] {
		info.fail("unrecognized coordset type %q", ctype)
		return false, info
	}
	switch ctype {
	case "uniform":
		return verifyUniformCoordset(n, info)
	case "rectilinear":
		return verifyValuesPerAxis(n, info, "rectilinear")
	case "explicit":
		return verifyValuesPerAxis(n, info, "explicit")
	}
	return true, info
}

func verifyUniformCoordset(n Node, info *Info) (bool, *Info) {
	dims := n.Child("dims")
	if dims == nil || dims.NumChildren() == 0 {
		info.fail("uniform coordset requires dims/{i[,j[,k]]}")
		return false, info
	}
	for _, axis := range []string{"i", "j", "k"} {
		if dims.HasChild(axis) && dims.Child(axis).Dtype().NumElements() != 1 {
			info.fail("dims/%s must be a scalar", axis)
			return false, info
		}
	}
	return true, info
}

func verifyValuesPerAxis(n Node, info *Info, kind string) (bool, *Info) {
	values := n.Child("values")
	if values == nil || values.NumChildren() == 0 {
		info.fail("%s coordset requires values/{axis: array}", kind)
		return false, info
	}
	var length uint64
	for i, name := range values.ChildNames() {
		axis := values.Child(name)
		if !axis.IsLeaf() || !axis.Dtype().Kind().IsNumeric() {
			info.fail("values/%s must be a numeric array", name)
			return false, info
		}
		if i == 0 {
			length = axis.Dtype().NumElements()
		} else if kind == "explicit" && axis.Dtype().NumElements() != length {
			info.fail("values/%s length %d disagrees with %s's %d (mcarray components must be equal length)", name, axis.Dtype().NumElements(), values.ChildNames()[0], length)
			return false, info
		}
	}
	return true, info
}

// UniformDims reads an axis count out of a verified uniform coordset's
// dims subtree; ok is false if the axis is absent.
func UniformDims(n Node, axis string) (int64, bool) {
	dims := n.Child("dims")
	if dims == nil || !dims.HasChild(axis) {
		return 0, false
	}
	return dims.Child(axis).AsInt64(), true
}

// axisOrder picks the axis-name convention a uniform coordset's origin
// (or spacing) was declared with, defaulting to Cartesian {x,y,z} — the
// common case — when neither carries an explicit axis key (§3 allows
// {x,y,z}, {r,z}, or {r,theta,phi}).
func axisOrder(n Node) []string {
	dims := n.Child("dims")
	axisCount := 0
	for _, axis := range []string{"i", "j", "k"} {
		if dims.HasChild(axis) {
			axisCount++
		}
	}
	for _, named := range []Node{n.Child("origin"), n.Child("spacing")} {
		if named == nil {
			continue
		}
		for _, candidate := range axisNames3 {
			if originMatchesConvention(named, candidate, axisCount) {
				return candidate[:axisCount]
			}
		}
	}
	return axisNames3[0][:axisCount]
}

func originMatchesConvention(named Node, candidate []string, axisCount int) bool {
	if len(candidate) < axisCount {
		return false
	}
	for i := 0; i < axisCount; i++ {
		key := candidate[i]
		if named.Dtype().Kind() == meshkit.KindChar8 {
			continue
		}
		if named.HasChild(key) {
			continue
		}
		spacingKey := "d" + key
		if named.HasChild(spacingKey) {
			continue
		}
		return false
	}
	return true
}

// UniformToRectilinear materializes per-axis value arrays from a uniform
// coordset: v_a[i] = origin_a + i*spacing_a, per §4.3's conversion table.
func UniformToRectilinear(n Node) *meshkit.Node {
	dims := n.Child("dims")
	axes := axisOrder(n)
	origin := n.Child("origin")
	spacing := n.Child("spacing")

	out := meshkit.New()
	out.Path("type").Set("rectilinear")
	values := out.Path("values")

	dimAxis := []string{"i", "j", "k"}
	for idx, axis := range axes {
		count := dims.Child(dimAxis[idx]).AsInt64()
		var o, s float64 = 0, 1
		if origin != nil && origin.HasChild(axis) {
			o = origin.Child(axis).AsFloat64()
		}
		if spacing != nil {
			spacingKey := "d" + axis
			if spacing.HasChild(spacingKey) {
				s = spacing.Child(spacingKey).AsFloat64()
			}
		}
		vals := make([]float64, count)
		for i := int64(0); i < count; i++ {
			vals[i] = o + float64(i)*s
		}
		values.Path(axis).Set(vals)
	}
	return out
}

// ToExplicit emits the Cartesian product of a uniform or rectilinear
// coordset's axis values in column-major (x fastest) order, one vertex
// tuple per row, per §4.3.
func ToExplicit(n Node) *meshkit.Node {
	rect := n
	if n.Child("type").AsString() == "uniform" {
		rect = UniformToRectilinear(n)
	}
	values := rect.Child("values")
	axes := values.ChildNames()
	counts := make([]int, len(axes))
	axisVals := make([][]float64, len(axes))
	total := 1
	for i, a := range axes {
		axisVals[i] = values.Child(a).AsFloat64Slice()
		counts[i] = len(axisVals[i])
		total *= counts[i]
	}

	out := make([][]float64, len(axes))
	for i := range out {
		out[i] = make([]float64, total)
	}
	for k := 0; k < total; k++ {
		rem := k
		for i := 0; i < len(axes); i++ {
			idx := rem % counts[i]
			rem /= counts[i]
			out[i][k] = axisVals[i][idx]
		}
	}

	result := meshkit.New()
	result.Path("type").Set("explicit")
	resultValues := result.Path("values")
	for i, a := range axes {
		resultValues.Path(a).Set(out[i])
	}
	return result
}
