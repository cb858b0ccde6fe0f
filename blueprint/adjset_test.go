package blueprint

import (
	"testing"

	"github.com/scigolib/meshkit"
	"github.com/stretchr/testify/require"
)

func TestDefaultAdjsetGroupNamePassesThroughSuppliedName(t *testing.T) {
	require.Equal(t, "domain0_domain1", DefaultAdjsetGroupName("domain0_domain1"))
}

func TestDefaultAdjsetGroupNameGeneratesUniqueNamesWhenUnset(t *testing.T) {
	a := DefaultAdjsetGroupName("")
	b := DefaultAdjsetGroupName("")
	require.NotEqual(t, a, b)
	require.Contains(t, a, "group_")
}

func TestVerifyAdjsetAcceptsGeneratedGroupName(t *testing.T) {
	adjset := meshkit.New()
	adjset.Path("association").Set("vertex")
	adjset.Path("topology").Set("mesh")
	group := DefaultAdjsetGroupName("")
	adjset.Path("groups").Path(group).Path("neighbors").Set([]int64{1})
	adjset.Child("groups").Child(group).Path("values").Set([]int64{0, 1, 2})

	ok, _ := VerifyAdjset(adjset)
	require.True(t, ok)
}
