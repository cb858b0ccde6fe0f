package meshkit

import (
	"github.com/scigolib/meshkit/internal/core"
)

// Set assigns a scalar or slice value to this Node, allocating an owned
// buffer sized to hold it and discarding any prior children or data. v
// must be one of the ten numeric scalar/slice forms or a string (encoded
// as a char8 array); any other type is a fatal error per §7.
func (n *Node) Set(v any) {
	dt, encode, err := describeValue(v)
	if err != nil {
		Fatal("node.set", err)
		return
	}
	extent, err := dt.Extent()
	if err != nil {
		Fatal("node.set", err)
		return
	}
	buf := make([]byte, extent)
	encode(buf)
	n.becomeLeaf(dt, buf, stateOwned)
}

// SetExternal aliases the caller-owned slice s directly: no buffer is
// allocated or copied, and the caller remains responsible for s's
// lifetime for as long as this Node (or any Node built by referencing
// it) is in use. A later Set on this Node allocates an owned buffer and
// drops the alias; until then the caller must not reuse s for an
// incompatible layout.
func SetExternal[T Numeric](n *Node, s []T) {
	dt, err := leafDataTypeFor[T](uint64(len(s)))
	if err != nil {
		Fatal("node.set_external", err)
		return
	}
	n.becomeLeaf(dt, bytesOf(s), stateExternal)
}

// SetExternalString aliases a caller-owned byte slice as a char8 leaf,
// the string counterpart of SetExternal.
func SetExternalString(n *Node, s []byte) {
	dt, err := core.NewLeaf(core.KindChar8, uint64(len(s)))
	if err != nil {
		Fatal("node.set_external_string", err)
		return
	}
	n.becomeLeaf(dt, s, stateExternal)
}

// becomeLeaf discards any children and installs dt/data as this Node's
// leaf state, per the "Set always replaces, never merges" rule of §9.
func (n *Node) becomeLeaf(dt DataType, data []byte, state dataState) {
	n.schema.SetLeaf(dt)
	n.state = state
	n.data = data
	n.children = nil
	n.names = nil
	n.index = nil
}

// describeValue builds the DataType and a fill function for any
// supported scalar, slice, or string value, used by Set.
func describeValue(v any) (DataType, func([]byte), error) {
	switch x := v.(type) {
	case int8:
		return scalarDT(core.KindInt8, int64(x))
	case int16:
		return scalarDT(core.KindInt16, int64(x))
	case int32:
		return scalarDT(core.KindInt32, int64(x))
	case int64:
		return scalarDT(core.KindInt64, x)
	case uint8:
		return scalarDT(core.KindUint8, int64(x))
	case uint16:
		return scalarDT(core.KindUint16, int64(x))
	case uint32:
		return scalarDT(core.KindUint32, int64(x))
	case uint64:
		return scalarDT(core.KindUint64, int64(x))
	case float32:
		return scalarDTF(core.KindFloat32, float64(x))
	case float64:
		return scalarDTF(core.KindFloat64, x)
	case []int8:
		return sliceDT(core.KindInt8, x)
	case []int16:
		return sliceDT(core.KindInt16, x)
	case []int32:
		return sliceDT(core.KindInt32, x)
	case []int64:
		return sliceDT(core.KindInt64, x)
	case []uint8:
		return sliceDT(core.KindUint8, x)
	case []uint16:
		return sliceDT(core.KindUint16, x)
	case []uint32:
		return sliceDT(core.KindUint32, x)
	case []uint64:
		return sliceDT(core.KindUint64, x)
	case []float32:
		return sliceDT(core.KindFloat32, x)
	case []float64:
		return sliceDT(core.KindFloat64, x)
	case string:
		dt, err := core.NewLeaf(core.KindChar8, uint64(len(x)))
		if err != nil {
			return DataType{}, nil, err
		}
		return dt, func(buf []byte) { copy(buf, x) }, nil
	default:
		return DataType{}, nil, errUnsupportedSetType(v)
	}
}

func scalarDT(kind core.Kind, v int64) (DataType, func([]byte), error) {
	dt, err := core.NewLeaf(kind, 1)
	if err != nil {
		return DataType{}, nil, err
	}
	return dt, func(buf []byte) { writeScalar(buf, dt, kind, v) }, nil
}

func scalarDTF(kind core.Kind, v float64) (DataType, func([]byte), error) {
	dt, err := core.NewLeaf(kind, 1)
	if err != nil {
		return DataType{}, nil, err
	}
	return dt, func(buf []byte) { writeScalarFloat(buf, dt, kind, v) }, nil
}

func writeScalar(buf []byte, dt DataType, kind core.Kind, v int64) {
	switch kind {
	case core.KindInt8:
		_ = core.WriteElement(buf, dt, 0, int8(v))
	case core.KindInt16:
		_ = core.WriteElement(buf, dt, 0, int16(v))
	case core.KindInt32:
		_ = core.WriteElement(buf, dt, 0, int32(v))
	case core.KindInt64:
		_ = core.WriteElement(buf, dt, 0, v)
	case core.KindUint8:
		_ = core.WriteElement(buf, dt, 0, uint8(v))
	case core.KindUint16:
		_ = core.WriteElement(buf, dt, 0, uint16(v))
	case core.KindUint32:
		_ = core.WriteElement(buf, dt, 0, uint32(v))
	case core.KindUint64:
		_ = core.WriteElement(buf, dt, 0, uint64(v))
	}
}

func writeScalarFloat(buf []byte, dt DataType, kind core.Kind, v float64) {
	switch kind {
	case core.KindFloat32:
		_ = core.WriteElement(buf, dt, 0, float32(v))
	case core.KindFloat64:
		_ = core.WriteElement(buf, dt, 0, v)
	}
}

func sliceDT[T Numeric](kind core.Kind, s []T) (DataType, func([]byte), error) {
	dt, err := core.NewLeaf(kind, uint64(len(s)))
	if err != nil {
		return DataType{}, nil, err
	}
	return dt, func(buf []byte) {
		for i, v := range s {
			_ = core.WriteElement(buf, dt, uint64(i), v)
		}
	}, nil
}

// leafDataTypeFor builds the default (compact) DataType for a leaf of n
// elements whose Go element type is T, used by the generic SetExternal.
func leafDataTypeFor[T Numeric](n uint64) (DataType, error) {
	var zero T
	kind, err := kindOf(zero)
	if err != nil {
		return DataType{}, err
	}
	return core.NewLeaf(kind, n)
}

func kindOf[T Numeric](zero T) (core.Kind, error) {
	switch any(zero).(type) {
	case int8:
		return core.KindInt8, nil
	case int16:
		return core.KindInt16, nil
	case int32:
		return core.KindInt32, nil
	case int64:
		return core.KindInt64, nil
	case uint8:
		return core.KindUint8, nil
	case uint16:
		return core.KindUint16, nil
	case uint32:
		return core.KindUint32, nil
	case uint64:
		return core.KindUint64, nil
	case float32:
		return core.KindFloat32, nil
	case float64:
		return core.KindFloat64, nil
	default:
		return core.KindEmpty, errUnsupportedSetType(zero)
	}
}

func errUnsupportedSetType(v any) error {
	return errUnsupportedType(v)
}
