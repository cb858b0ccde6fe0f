package blueprint

import (
	"testing"

	"github.com/scigolib/meshkit"
	"github.com/stretchr/testify/require"
)

func build3x3RectilinearCoordset() *meshkit.Node {
	n := meshkit.New()
	n.Path("type").Set("rectilinear")
	n.Path("values/x").Set([]float64{0, 1, 2})
	n.Path("values/y").Set([]float64{0, 1, 2})
	return n
}

func buildStructuredTopology() *meshkit.Node {
	n := meshkit.New()
	n.Path("type").Set("structured")
	n.Path("coordset").Set("coords")
	n.Path("elements/dims/i").Set(int64(2))
	n.Path("elements/dims/j").Set(int64(2))
	return n
}

func TestStructuredToUnstructuredQuadGrid(t *testing.T) {
	topo := buildStructuredTopology()
	unstructured := StructuredToUnstructured(topo)

	ok, info := VerifyTopology(unstructured)
	require.True(t, ok, info.Message)
	require.Equal(t, "quad", unstructured.Child("elements").Child("shape").AsString())
	require.Equal(t,
		[]int64{0, 1, 4, 3, 1, 2, 5, 4, 3, 4, 7, 6, 4, 5, 8, 7},
		unstructured.Child("elements").Child("connectivity").AsInt64Slice(),
	)
}

func buildHexTopology() *meshkit.Node {
	n := meshkit.New()
	n.Path("type").Set("unstructured")
	n.Path("coordset").Set("coords")
	n.Path("elements/shape").Set("hex")
	n.Path("elements/connectivity").Set([]int64{0, 1, 2, 3, 4, 5, 6, 7})
	return n
}

func TestPolyhedralFactoringOfSingleHex(t *testing.T) {
	hex := buildHexTopology()
	poly := ToPolyhedral(hex)

	ok, info := VerifyTopology(poly)
	require.True(t, ok, info.Message)
	require.Equal(t, "polyhedral", poly.Child("elements").Child("shape").AsString())
	require.Equal(t, []int64{6}, poly.Child("elements").Child("sizes").AsInt64Slice())
	require.Equal(t, "polygonal", poly.Child("subelements").Child("shape").AsString())
	require.Len(t, poly.Child("subelements").Child("sizes").AsInt64Slice(), 6)
}

func TestVerifyTopologyRejectsUnrecognizedType(t *testing.T) {
	n := meshkit.New()
	n.Path("type").Set("bogus")
	n.Path("coordset").Set("coords")
	ok, info := VerifyTopology(n)
	require.False(t, ok)
	require.NotEmpty(t, info.Message)
}
