package blueprint

import (
	"testing"

	"github.com/scigolib/meshkit"
	"github.com/stretchr/testify/require"
)

func buildUniformCoordset() *meshkit.Node {
	n := meshkit.New()
	n.Path("type").Set("uniform")
	n.Path("dims/i").Set(int64(3))
	n.Path("dims/j").Set(int64(2))
	n.Path("origin/x").Set(0.0)
	n.Path("origin/y").Set(0.0)
	n.Path("spacing/dx").Set(1.0)
	n.Path("spacing/dy").Set(2.0)
	return n
}

func TestVerifyUniformCoordset(t *testing.T) {
	n := buildUniformCoordset()
	ok, info := VerifyCoordset(n)
	require.True(t, ok, info.Message)
}

func TestVerifyIdempotence(t *testing.T) {
	n := buildUniformCoordset()
	ok1, info1 := VerifyCoordset(n)
	ok2, info2 := VerifyCoordset(n)
	require.Equal(t, ok1, ok2)
	require.Equal(t, info1.Valid, info2.Valid)
}

func TestUniformToExplicitCoordinateFidelity(t *testing.T) {
	n := buildUniformCoordset()
	explicit := ToExplicit(n)

	ok, info := VerifyCoordset(explicit)
	require.True(t, ok, info.Message)

	x := explicit.Child("values").Child("x").AsFloat64Slice()
	y := explicit.Child("values").Child("y").AsFloat64Slice()
	require.InDeltaSlice(t, []float64{0, 1, 2, 0, 1, 2}, x, 1e-12)
	require.InDeltaSlice(t, []float64{0, 0, 0, 2, 2, 2}, y, 1e-12)
}

func TestUniformToRectilinearThenVerify(t *testing.T) {
	n := buildUniformCoordset()
	rect := UniformToRectilinear(n)
	ok, info := VerifyCoordset(rect)
	require.True(t, ok, info.Message)
	require.Equal(t, []float64{0, 1, 2}, rect.Child("values").Child("x").AsFloat64Slice())
}
