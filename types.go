package meshkit

import "github.com/scigolib/meshkit/internal/core"

// DataType, Kind, and Endianness are re-exported from internal/core so
// callers never need to import the internal package directly.
type (
	DataType   = core.DataType
	Kind       = core.Kind
	Endianness = core.Endianness
)

// The closed set of kinds a leaf or interior node may carry.
const (
	KindEmpty   = core.KindEmpty
	KindObject  = core.KindObject
	KindList    = core.KindList
	KindInt8    = core.KindInt8
	KindInt16   = core.KindInt16
	KindInt32   = core.KindInt32
	KindInt64   = core.KindInt64
	KindUint8   = core.KindUint8
	KindUint16  = core.KindUint16
	KindUint32  = core.KindUint32
	KindUint64  = core.KindUint64
	KindFloat32 = core.KindFloat32
	KindFloat64 = core.KindFloat64
	KindChar8   = core.KindChar8
)

// Recognized endiannesses.
const (
	LittleEndian = core.LittleEndian
	BigEndian    = core.BigEndian
)

// Numeric is the set of Go types a typed accessor may coerce into.
type Numeric = core.Numeric
