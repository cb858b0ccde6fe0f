package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckMultiplyOverflow(t *testing.T) {
	require.NoError(t, CheckMultiplyOverflow(10, 20))
	require.NoError(t, CheckMultiplyOverflow(0, math.MaxUint64))
	require.NoError(t, CheckMultiplyOverflow(0, 0))
	require.Error(t, CheckMultiplyOverflow(math.MaxUint64, 2))
}

func TestSafeMultiply(t *testing.T) {
	v, err := SafeMultiply(6, 7)
	require.NoError(t, err)
	require.Equal(t, uint64(42), v)

	_, err = SafeMultiply(math.MaxUint64, 2)
	require.Error(t, err)
}

func TestSafeAdd(t *testing.T) {
	v, err := SafeAdd(1, 2)
	require.NoError(t, err)
	require.Equal(t, uint64(3), v)

	_, err = SafeAdd(math.MaxUint64, 1)
	require.Error(t, err)
}

func TestLeafExtent(t *testing.T) {
	v, err := LeafExtent(8, 4, 8)
	require.NoError(t, err)
	require.Equal(t, uint64(40), v)

	// Empty leaf: extent is just the offset.
	v, err = LeafExtent(16, 0, 8)
	require.NoError(t, err)
	require.Equal(t, uint64(16), v)

	_, err = LeafExtent(0, math.MaxUint64, 2)
	require.Error(t, err)
}

func TestValidateBufferSize(t *testing.T) {
	require.NoError(t, ValidateBufferSize(100, 200, "leaf"))
	require.Error(t, ValidateBufferSize(300, 200, "leaf"))
}
