package meshkit

import (
	"github.com/scigolib/meshkit/internal/core"
)

// AsAccessor returns a typed, coercing view over a leaf Node's data. It is
// a fatal error (routed through the process-wide handler) to call this on
// a non-leaf node or when the buffer is shorter than the schema declares.
func AsAccessor[T Numeric](n *Node) *core.Accessor[T] {
	if !n.IsLeaf() {
		Fatal("node.as_accessor", errNotLeaf(n))
		return nil
	}
	acc, err := core.NewAccessor[T](n.data, n.schema.DataType())
	if err != nil {
		Fatal("node.as_accessor", err)
		return nil
	}
	return acc
}

// scalarAt reads element 0 of a leaf node through the given accessor type,
// the shared implementation behind every As<Type> convenience getter.
func scalarAt[T Numeric](n *Node) T {
	acc := AsAccessor[T](n)
	if acc == nil {
		var zero T
		return zero
	}
	v, err := acc.At(0)
	if err != nil {
		Fatal("node.as_scalar", err)
		var zero T
		return zero
	}
	return v
}

// AsInt8 reads this leaf's element 0 coerced to int8, per the promotion
// table (§4.1). AsInt16 through AsFloat64 follow the same contract for
// the remaining nine arithmetic types.
func (n *Node) AsInt8() int8       { return scalarAt[int8](n) }
func (n *Node) AsInt16() int16     { return scalarAt[int16](n) }
func (n *Node) AsInt32() int32     { return scalarAt[int32](n) }
func (n *Node) AsInt64() int64     { return scalarAt[int64](n) }
func (n *Node) AsUint8() uint8     { return scalarAt[uint8](n) }
func (n *Node) AsUint16() uint16   { return scalarAt[uint16](n) }
func (n *Node) AsUint32() uint32   { return scalarAt[uint32](n) }
func (n *Node) AsUint64() uint64   { return scalarAt[uint64](n) }
func (n *Node) AsFloat32() float32 { return scalarAt[float32](n) }
func (n *Node) AsFloat64() float64 { return scalarAt[float64](n) }

// AsString returns a char8 leaf's bytes as a string. It is a fatal error
// to call this on a non-char8 leaf.
func (n *Node) AsString() string {
	if !n.IsLeaf() || n.Dtype().Kind() != KindChar8 {
		Fatal("node.as_string", errNotLeaf(n))
		return ""
	}
	dt := n.schema.DataType()
	return string(n.data[dt.Offset() : dt.Offset()+dt.NumElements()])
}

// AsInt8Slice materializes a leaf's elements coerced to []int8.
// AsInt16Slice through AsFloat64Slice follow the same contract.
func (n *Node) AsInt8Slice() []int8       { return sliceOf[int8](n) }
func (n *Node) AsInt16Slice() []int16     { return sliceOf[int16](n) }
func (n *Node) AsInt32Slice() []int32     { return sliceOf[int32](n) }
func (n *Node) AsInt64Slice() []int64     { return sliceOf[int64](n) }
func (n *Node) AsUint8Slice() []uint8     { return sliceOf[uint8](n) }
func (n *Node) AsUint16Slice() []uint16   { return sliceOf[uint16](n) }
func (n *Node) AsUint32Slice() []uint32   { return sliceOf[uint32](n) }
func (n *Node) AsUint64Slice() []uint64   { return sliceOf[uint64](n) }
func (n *Node) AsFloat32Slice() []float32 { return sliceOf[float32](n) }
func (n *Node) AsFloat64Slice() []float64 { return sliceOf[float64](n) }

func sliceOf[T Numeric](n *Node) []T {
	acc := AsAccessor[T](n)
	if acc == nil {
		return nil
	}
	return acc.Slice()
}

func errNotLeaf(n *Node) error {
	return errUnknownKindStr(n.Dtype().Kind().String())
}
