package meshkit

import (
	"github.com/scigolib/meshkit/internal/core"
)

// ToDataType returns a new, owned Node holding this leaf's values
// converted element-by-element into dstKind, per the promotion table of
// §3/§4.1. It is a fatal error to call this on a non-leaf node.
func (n *Node) ToDataType(dstKind Kind) *Node {
	if !n.IsLeaf() {
		Fatal("node.to_data_type", errNotLeaf(n))
		return nil
	}
	srcDT := n.schema.DataType()
	dstDT, err := core.NewLeaf(dstKind, srcDT.NumElements())
	if err != nil {
		Fatal("node.to_data_type", err)
		return nil
	}
	extent, err := dstDT.Extent()
	if err != nil {
		Fatal("node.to_data_type", err)
		return nil
	}
	dst := make([]byte, extent)
	if err := core.ConvertLeaf(srcDT, dstDT, n.data, dst); err != nil {
		Fatal("node.to_data_type", err)
		return nil
	}
	out := New()
	out.becomeLeaf(dstDT, dst, stateOwned)
	return out
}

// ToInt8Array through ToFloat64Array are the ten fixed-kind convenience
// wrappers over ToDataType, mirroring the Accessor type set.
func (n *Node) ToInt8Array() *Node    { return n.ToDataType(KindInt8) }
func (n *Node) ToInt16Array() *Node   { return n.ToDataType(KindInt16) }
func (n *Node) ToInt32Array() *Node   { return n.ToDataType(KindInt32) }
func (n *Node) ToInt64Array() *Node   { return n.ToDataType(KindInt64) }
func (n *Node) ToUint8Array() *Node   { return n.ToDataType(KindUint8) }
func (n *Node) ToUint16Array() *Node  { return n.ToDataType(KindUint16) }
func (n *Node) ToUint32Array() *Node  { return n.ToDataType(KindUint32) }
func (n *Node) ToUint64Array() *Node  { return n.ToDataType(KindUint64) }
func (n *Node) ToFloat32Array() *Node { return n.ToDataType(KindFloat32) }
func (n *Node) ToFloat64Array() *Node { return n.ToDataType(KindFloat64) }
