// Package core implements the DataType/Schema/Accessor kernel: the typed,
// hierarchical, layout-descriptive primitives that the root meshkit package
// assembles into Node trees. Nothing in this package owns a buffer — it is
// pure description and pure byte-level reading, mirroring the
// split between wire-format description (internal/core) and the owning
// runtime object (the root package).
package core

import "github.com/scigolib/meshkit/internal/utils"

// Kind identifies the element type of a leaf, or marks an interior node as
// object, list, or empty.
type Kind uint8

// The closed set of kinds a DataType may describe.
const (
	KindEmpty Kind = iota
	KindObject
	KindList
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindChar8
)

// String returns the canonical lowercase name used in the textual form.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindObject:
		return "object"
	case KindList:
		return "list"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindChar8:
		return "char8"
	default:
		return "unknown"
	}
}

// KindFromString parses the canonical name back into a Kind.
func KindFromString(s string) (Kind, bool) {
	for k := KindEmpty; k <= KindChar8; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return KindEmpty, false
}

// IsNumeric reports whether a kind describes an arithmetic leaf (not
// object, list, empty, or char8).
func (k Kind) IsNumeric() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64,
		KindFloat32, KindFloat64:
		return true
	default:
		return false
	}
}

// IsSigned reports whether a numeric kind is a signed integer or float.
func (k Kind) IsSigned() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64, KindFloat32, KindFloat64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether a kind is one of the floating-point kinds.
func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

// IsInteger reports whether a kind is one of the fixed-width integer kinds.
func (k Kind) IsInteger() bool {
	return k.IsNumeric() && !k.IsFloat()
}

// IsLeaf reports whether a kind carries byte layout (numeric or char8).
func (k Kind) IsLeaf() bool {
	return k.IsNumeric() || k == KindChar8
}

// ElementBytes returns the fixed per-element byte width of a leaf kind, or
// 0 for object/list/empty.
func (k Kind) ElementBytes() uint64 {
	switch k {
	case KindInt8, KindUint8, KindChar8:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat32:
		return 4
	case KindInt64, KindUint64, KindFloat64:
		return 8
	default:
		return 0
	}
}

// Endianness names the byte order a leaf's bytes are encoded in.
type Endianness uint8

// Recognized endiannesses.
const (
	LittleEndian Endianness = iota
	BigEndian
)

// DataType is an immutable value describing a single leaf: element kind,
// element count, byte offset and stride into a (possibly shared) buffer,
// per-element byte size, and endianness. It owns nothing.
type DataType struct {
	kind         Kind
	numElements  uint64
	offset       uint64
	stride       uint64
	elementBytes uint64
	endian       Endianness
}

// Empty returns the DataType for an empty (interior, no-data) node.
func Empty() DataType {
	return DataType{kind: KindEmpty}
}

// Object returns the DataType marking an interior object node.
func Object() DataType {
	return DataType{kind: KindObject}
}

// List returns the DataType marking an interior list node.
func List() DataType {
	return DataType{kind: KindList}
}

// NewLeaf builds a DataType for a leaf of the given kind and element count,
// with default (compact, little-endian) offset and stride: offset 0,
// stride equal to the element byte size.
func NewLeaf(kind Kind, numElements uint64) (DataType, error) {
	if !kind.IsLeaf() {
		return DataType{}, utils.WrapError("new leaf datatype", errNotLeafKind(kind))
	}
	eb := kind.ElementBytes()
	return DataType{
		kind:         kind,
		numElements:  numElements,
		offset:       0,
		stride:       eb,
		elementBytes: eb,
		endian:       LittleEndian,
	}, nil
}

// NewLeafStrided builds a leaf DataType with an explicit offset, stride and
// endianness, e.g. for a component of an mcarray interleaved in a shared
// buffer. Returns an error if stride is narrower than the element size.
func NewLeafStrided(kind Kind, numElements, offset, stride uint64, endian Endianness) (DataType, error) {
	if !kind.IsLeaf() {
		return DataType{}, utils.WrapError("new strided leaf datatype", errNotLeafKind(kind))
	}
	eb := kind.ElementBytes()
	if stride < eb {
		return DataType{}, utils.WrapError("new strided leaf datatype", errStrideTooNarrow(stride, eb))
	}
	return DataType{
		kind:         kind,
		numElements:  numElements,
		offset:       offset,
		stride:       stride,
		elementBytes: eb,
		endian:       endian,
	}, nil
}

// Kind returns the element kind.
func (d DataType) Kind() Kind { return d.kind }

// NumElements returns the element count (0 is a valid empty leaf).
func (d DataType) NumElements() uint64 { return d.numElements }

// Offset returns the byte offset of element 0 within the buffer.
func (d DataType) Offset() uint64 { return d.offset }

// Stride returns the byte distance between consecutive elements.
func (d DataType) Stride() uint64 { return d.stride }

// ElementBytes returns the per-element byte size.
func (d DataType) ElementBytes() uint64 { return d.elementBytes }

// Endian returns the declared byte order.
func (d DataType) Endian() Endianness { return d.endian }

// IsLeaf reports whether this DataType describes a leaf.
func (d DataType) IsLeaf() bool { return d.kind.IsLeaf() }

// IsObject reports whether this DataType marks an interior object node.
func (d DataType) IsObject() bool { return d.kind == KindObject }

// IsList reports whether this DataType marks an interior list node.
func (d DataType) IsList() bool { return d.kind == KindList }

// IsEmpty reports whether this DataType marks an empty (no-data) node.
func (d DataType) IsEmpty() bool { return d.kind == KindEmpty }

// Extent returns the byte position one past the last element this
// DataType reaches: offset + num_elements*stride.
func (d DataType) Extent() (uint64, error) {
	return utils.LeafExtent(d.offset, d.numElements, d.stride)
}

// Validate checks the DataType's own invariants (stride >= element_bytes
// for leaf kinds; interior kinds carry no layout).
func (d DataType) Validate() error {
	if !d.IsLeaf() {
		return nil
	}
	if d.stride < d.elementBytes {
		return errStrideTooNarrow(d.stride, d.elementBytes)
	}
	extent, err := d.Extent()
	if err != nil {
		return err
	}
	return utils.ValidateBufferSize(extent, utils.MaxLeafBytes, "leaf extent")
}

// WithOffset returns a copy of d rebased at a new offset, used when a
// Node's owned buffer is (re)allocated and leaves are repacked.
func (d DataType) WithOffset(offset uint64) DataType {
	d.offset = offset
	return d
}
