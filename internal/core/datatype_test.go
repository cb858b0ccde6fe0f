package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLeafDefaults(t *testing.T) {
	dt, err := NewLeaf(KindInt32, 4)
	require.NoError(t, err)
	require.Equal(t, uint64(0), dt.Offset())
	require.Equal(t, uint64(4), dt.Stride())
	require.Equal(t, uint64(4), dt.ElementBytes())
	require.Equal(t, uint64(16), mustExtent(t, dt))
}

func TestNewLeafRejectsInteriorKind(t *testing.T) {
	_, err := NewLeaf(KindObject, 1)
	require.Error(t, err)
}

func TestNewLeafStridedRejectsNarrowStride(t *testing.T) {
	_, err := NewLeafStrided(KindFloat64, 1, 0, 4, LittleEndian)
	require.Error(t, err)
}

func TestValidateEmptyLeafOK(t *testing.T) {
	dt, err := NewLeaf(KindInt8, 0)
	require.NoError(t, err)
	require.NoError(t, dt.Validate())
}

func TestKindRoundTripString(t *testing.T) {
	for k := KindEmpty; k <= KindChar8; k++ {
		got, ok := KindFromString(k.String())
		require.True(t, ok)
		require.Equal(t, k, got)
	}
}

func mustExtent(t *testing.T, dt DataType) uint64 {
	t.Helper()
	e, err := dt.Extent()
	require.NoError(t, err)
	return e
}
