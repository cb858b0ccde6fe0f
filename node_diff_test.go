package meshkit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiffEqualTreesReportNoEntries(t *testing.T) {
	a := New()
	a.Path("x").Set([]float64{1, 2, 3})
	b := New()
	b.Path("x").Set([]float64{1, 2, 3})

	d := a.Diff(b, 0, false)
	require.True(t, d.Equal())
}

func TestDiffValueMismatchIsReported(t *testing.T) {
	a := New()
	a.Path("x").Set([]float64{1, 2, 3})
	b := New()
	b.Path("x").Set([]float64{1, 2, 9})

	d := a.Diff(b, 0, false)
	require.False(t, d.Equal())
	require.Equal(t, "value-mismatch", d.Entries[0].Kind)
}

func TestDiffUnifiedRendersTextualDiff(t *testing.T) {
	a := New()
	a.Path("x").Set(int64(1))
	b := New()
	b.Path("x").Set(int64(2))

	d := a.Diff(b, 0, false)
	require.False(t, d.Equal())

	out := d.Unified(a, b)
	require.Contains(t, out, "want.yaml")
	require.Contains(t, out, "got.yaml")
}
