package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchemaObjectInsertionOrder(t *testing.T) {
	s := NewSchema()
	leaf, _ := NewLeaf(KindInt32, 1)
	require.NoError(t, s.AddChild("b", NewLeafSchema(leaf)))
	require.NoError(t, s.AddChild("a", NewLeafSchema(leaf)))
	require.NoError(t, s.AddChild("c", NewLeafSchema(leaf)))

	require.Equal(t, []string{"b", "a", "c"}, s.ChildNames())
	require.True(t, s.IsObject())
}

func TestSchemaListRejectsNamedChild(t *testing.T) {
	s := NewSchema()
	leaf, _ := NewLeaf(KindInt32, 1)
	require.NoError(t, s.AppendChild(NewLeafSchema(leaf)))
	require.Error(t, s.AddChild("x", NewLeafSchema(leaf)))
}

func TestSchemaObjectRejectsAppend(t *testing.T) {
	s := NewSchema()
	leaf, _ := NewLeaf(KindInt32, 1)
	require.NoError(t, s.AddChild("x", NewLeafSchema(leaf)))
	require.Error(t, s.AppendChild(NewLeafSchema(leaf)))
}

// TestSchemaTotalsMatchExtent is the §8 "schema totals" property: the sum
// of (offset + count*stride) over the deepest leaves equals the declared
// buffer size once compacted.
func TestSchemaTotalsMatchExtent(t *testing.T) {
	s := NewSchema()
	leafA, _ := NewLeaf(KindFloat64, 3)
	leafB, _ := NewLeaf(KindInt32, 2)
	require.NoError(t, s.AddChild("a", NewLeafSchema(leafA)))
	require.NoError(t, s.AddChild("b", NewLeafSchema(leafB)))

	compact, total := s.Compact()
	require.Equal(t, uint64(3*8+2*4), total)

	got, err := compact.TotalBytes()
	require.NoError(t, err)
	require.Equal(t, total, got)
}

func TestSchemaCloneIsIndependent(t *testing.T) {
	s := NewSchema()
	leaf, _ := NewLeaf(KindInt32, 1)
	require.NoError(t, s.AddChild("x", NewLeafSchema(leaf)))

	clone := s.Clone()
	other, _ := NewLeaf(KindInt32, 5)
	require.NoError(t, clone.AddChild("y", NewLeafSchema(other)))

	require.Equal(t, 1, s.NumChildren())
	require.Equal(t, 2, clone.NumChildren())
}
