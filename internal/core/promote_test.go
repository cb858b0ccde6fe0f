package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConvertLeafWidensExactly(t *testing.T) {
	srcDT, _ := NewLeaf(KindInt8, 2)
	dstDT, _ := NewLeaf(KindInt64, 2)
	src := make([]byte, 2)
	dst := make([]byte, 16)
	require.NoError(t, WriteElement(src, srcDT, 0, int64(-5)))
	require.NoError(t, WriteElement(src, srcDT, 1, int64(120)))

	require.NoError(t, ConvertLeaf(srcDT, dstDT, src, dst))

	acc, err := NewAccessor[int64](dst, dstDT)
	require.NoError(t, err)
	require.Equal(t, []int64{-5, 120}, acc.Slice())
}

func TestConvertLeafIntToFloatRoundTrip(t *testing.T) {
	srcDT, _ := NewLeaf(KindInt32, 1)
	dstDT, _ := NewLeaf(KindFloat64, 1)
	src := make([]byte, 4)
	dst := make([]byte, 8)
	require.NoError(t, WriteElement(src, srcDT, 0, int64(42)))

	require.NoError(t, ConvertLeaf(srcDT, dstDT, src, dst))

	acc, err := NewAccessor[float64](dst, dstDT)
	require.NoError(t, err)
	v, err := acc.At(0)
	require.NoError(t, err)
	require.InDelta(t, 42.0, v, 1e-12)
}

func TestElementsEqualToleranceAndRelative(t *testing.T) {
	dt, _ := NewLeaf(KindFloat64, 1)
	a := make([]byte, 8)
	b := make([]byte, 8)
	require.NoError(t, WriteElement(a, dt, 0, 100.0))
	require.NoError(t, WriteElement(b, dt, 0, 101.0))

	require.False(t, ElementsEqual(dt.Kind(), a, dt.Endian(), dt.Kind(), b, dt.Endian(), 0, false))
	require.True(t, ElementsEqual(dt.Kind(), a, dt.Endian(), dt.Kind(), b, dt.Endian(), 1.5, false))
	require.True(t, ElementsEqual(dt.Kind(), a, dt.Endian(), dt.Kind(), b, dt.Endian(), 0.02, true))
	require.False(t, ElementsEqual(dt.Kind(), a, dt.Endian(), dt.Kind(), b, dt.Endian(), 0.001, true))
}
