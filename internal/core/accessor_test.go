package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestScalarAccessorCoercion establishes the source "conduit_data_accessor"
// scenario from §8: a scalar leaf of every arithmetic kind set to 10 reads
// back as 10 through the int8, uint64 and float64 accessors.
func TestScalarAccessorCoercion(t *testing.T) {
	kinds := []Kind{
		KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64,
		KindFloat32, KindFloat64,
	}
	for _, k := range kinds {
		dt, err := NewLeaf(k, 1)
		require.NoError(t, err)
		buf := make([]byte, dt.ElementBytes())
		require.NoError(t, WriteElement(buf, dt, 0, int64(10)))

		requireReadsTen(t, buf, dt)
	}
}

func requireReadsTen(t *testing.T, buf []byte, dt DataType) {
	t.Helper()
	a8, err := NewAccessor[int8](buf, dt)
	require.NoError(t, err)
	v8, err := a8.At(0)
	require.NoError(t, err)
	require.Equal(t, int8(10), v8)

	aU64, err := NewAccessor[uint64](buf, dt)
	require.NoError(t, err)
	vU64, err := aU64.At(0)
	require.NoError(t, err)
	require.Equal(t, uint64(10), vU64)

	aF64, err := NewAccessor[float64](buf, dt)
	require.NoError(t, err)
	vF64, err := aF64.At(0)
	require.NoError(t, err)
	require.InDelta(t, 10.0, vF64, 1e-12)
}

func TestAccessorOutOfRange(t *testing.T) {
	dt, err := NewLeaf(KindInt32, 2)
	require.NoError(t, err)
	buf := make([]byte, 8)
	a, err := NewAccessor[int32](buf, dt)
	require.NoError(t, err)
	_, err = a.At(2)
	require.Error(t, err)
}

func TestAccessorNarrowingTruncates(t *testing.T) {
	dt, err := NewLeaf(KindInt32, 1)
	require.NoError(t, err)
	buf := make([]byte, 4)
	require.NoError(t, WriteElement(buf, dt, 0, int64(0x1FF))) // 511

	a, err := NewAccessor[int8](buf, dt)
	require.NoError(t, err)
	v, err := a.At(0)
	require.NoError(t, err)
	require.Equal(t, int8(-1), v) // low byte 0xFF kept, truncated
}

func TestAccessorFloatToIntRoundsToNearest(t *testing.T) {
	dt, err := NewLeaf(KindFloat64, 1)
	require.NoError(t, err)
	buf := make([]byte, 8)
	require.NoError(t, WriteElement(buf, dt, 0, 2.6))

	a, err := NewAccessor[int32](buf, dt)
	require.NoError(t, err)
	v, err := a.At(0)
	require.NoError(t, err)
	require.Equal(t, int32(3), v)
}

func TestAccessorSignedUnsignedReinterpretsBits(t *testing.T) {
	dt, err := NewLeaf(KindInt8, 1)
	require.NoError(t, err)
	buf := make([]byte, 1)
	require.NoError(t, WriteElement(buf, dt, 0, int64(-1)))

	a, err := NewAccessor[uint8](buf, dt)
	require.NoError(t, err)
	v, err := a.At(0)
	require.NoError(t, err)
	require.Equal(t, uint8(0xFF), v)
}

func TestAccessorSlice(t *testing.T) {
	dt, err := NewLeaf(KindInt32, 3)
	require.NoError(t, err)
	buf := make([]byte, 12)
	for i := uint64(0); i < 3; i++ {
		require.NoError(t, WriteElement(buf, dt, i, int64(i+1)))
	}
	a, err := NewAccessor[int32](buf, dt)
	require.NoError(t, err)
	require.Equal(t, []int32{1, 2, 3}, a.Slice())
}
