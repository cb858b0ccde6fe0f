package blueprint

import (
	"testing"

	"github.com/scigolib/meshkit"
	"github.com/stretchr/testify/require"
)

func TestVerifyMultiDomainEmptyTreeIsValid(t *testing.T) {
	ok, _ := VerifyMultiDomain(meshkit.New())
	require.True(t, ok)
}

func TestVerifyRejectsUnrecognizedProtocol(t *testing.T) {
	ok, info := Verify("bogus", meshkit.New())
	require.False(t, ok)
	require.Equal(t, "bogus", info.Protocol)
}

func TestVerifyCoordsetIndexForm(t *testing.T) {
	coordsets := meshkit.New()
	coordsets.Path("main").Path("type").Set("uniform")
	coordsets.Child("main").Path("dims/i").Set(int64(3))

	ok, _ := Verify("coordset/index", coordsets)
	require.True(t, ok)
}
