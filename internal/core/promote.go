package core

import (
	"encoding/binary"
	"math"
)

// Numeric enumerates the Go types an Accessor may coerce into.
type Numeric interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// byteOrder returns the encoding/binary.ByteOrder for an Endianness.
func byteOrder(e Endianness) binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// element is the decoded, width-canonicalized form of one leaf value: an
// integer is sign- or zero-extended (per its source kind) to a 64-bit
// pattern in bits; a float is held in f. signed records whether an
// integer source was signed, needed only when the target is a float (see
// ConvertTo).
type element struct {
	isFloat bool
	signed  bool
	bits    uint64
	f       float64
}

// decodeElement reads one element of the given kind from raw (exactly
// kind.ElementBytes() long) using the declared endianness.
func decodeElement(kind Kind, raw []byte, endian Endianness) element {
	order := byteOrder(endian)
	switch kind {
	case KindInt8:
		return element{signed: true, bits: uint64(int64(int8(raw[0])))}
	case KindInt16:
		return element{signed: true, bits: uint64(int64(int16(order.Uint16(raw))))}
	case KindInt32:
		return element{signed: true, bits: uint64(int64(int32(order.Uint32(raw))))}
	case KindInt64:
		return element{signed: true, bits: order.Uint64(raw)}
	case KindUint8, KindChar8:
		return element{signed: false, bits: uint64(raw[0])}
	case KindUint16:
		return element{signed: false, bits: uint64(order.Uint16(raw))}
	case KindUint32:
		return element{signed: false, bits: uint64(order.Uint32(raw))}
	case KindUint64:
		return element{signed: false, bits: order.Uint64(raw)}
	case KindFloat32:
		return element{isFloat: true, signed: true, f: float64(math.Float32frombits(order.Uint32(raw)))}
	case KindFloat64:
		return element{isFloat: true, signed: true, f: math.Float64frombits(order.Uint64(raw))}
	default:
		return element{}
	}
}

// encodeElement writes an element's value back into raw (exactly
// kind.ElementBytes() long) using the declared endianness. Used by
// to_data_type destination allocation.
func encodeElement(kind Kind, raw []byte, endian Endianness, e element) {
	order := byteOrder(endian)
	switch kind {
	case KindInt8:
		raw[0] = byte(int8(int64(e.bits)))
	case KindInt16:
		order.PutUint16(raw, uint16(int16(int64(e.bits))))
	case KindInt32:
		order.PutUint32(raw, uint32(int32(int64(e.bits))))
	case KindInt64:
		order.PutUint64(raw, e.bits)
	case KindUint8, KindChar8:
		raw[0] = byte(e.bits)
	case KindUint16:
		order.PutUint16(raw, uint16(e.bits))
	case KindUint32:
		order.PutUint32(raw, uint32(e.bits))
	case KindUint64:
		order.PutUint64(raw, e.bits)
	case KindFloat32:
		order.PutUint32(raw, math.Float32bits(float32(e.f)))
	case KindFloat64:
		order.PutUint64(raw, math.Float64bits(e.f))
	}
}

// elementOf packs a Go numeric value of kind-matching static type into an
// element, used when writing a typed scalar/array into a leaf.
func elementOf[T Numeric](v T) element {
	switch x := any(v).(type) {
	case int8:
		return element{signed: true, bits: uint64(int64(x))}
	case int16:
		return element{signed: true, bits: uint64(int64(x))}
	case int32:
		return element{signed: true, bits: uint64(int64(x))}
	case int64:
		return element{signed: true, bits: uint64(x)}
	case uint8:
		return element{signed: false, bits: uint64(x)}
	case uint16:
		return element{signed: false, bits: uint64(x)}
	case uint32:
		return element{signed: false, bits: uint64(x)}
	case uint64:
		return element{signed: false, bits: x}
	case float32:
		return element{isFloat: true, signed: true, f: float64(x)}
	case float64:
		return element{isFloat: true, signed: true, f: x}
	default:
		return element{}
	}
}

// convertElementKind re-expresses a decoded element as if it had been
// decoded with dstKind's signedness/floatness, applying the same
// promotion rules as ConvertTo but working at the kind level (used by
// Node.ToDataType, which converts leaf-to-leaf without a static Go type).
func convertElementKind(dstKind Kind, e element) element {
	if dstKind.IsFloat() {
		if e.isFloat {
			if dstKind == KindFloat32 {
				return element{isFloat: true, signed: true, f: float64(float32(e.f))}
			}
			return element{isFloat: true, signed: true, f: e.f}
		}
		var f float64
		if e.signed {
			f = float64(int64(e.bits))
		} else {
			f = float64(e.bits)
		}
		if dstKind == KindFloat32 {
			f = float64(float32(f))
		}
		return element{isFloat: true, signed: true, f: f}
	}
	// Integer destination.
	var bits uint64
	if e.isFloat {
		bits = uint64(int64(math.Round(e.f)))
	} else {
		bits = e.bits
	}
	switch dstKind {
	case KindInt8:
		bits = uint64(int64(int8(bits)))
	case KindInt16:
		bits = uint64(int64(int16(bits)))
	case KindInt32:
		bits = uint64(int64(int32(bits)))
	case KindInt64:
		// full width, no truncation
	case KindUint8, KindChar8:
		bits = uint64(uint8(bits))
	case KindUint16:
		bits = uint64(uint16(bits))
	case KindUint32:
		bits = uint64(uint32(bits))
	case KindUint64:
		// full width, no truncation
	}
	return element{signed: dstKind.IsSigned(), bits: bits}
}

// ConvertTo coerces a decoded element into the requested arithmetic type T,
// following the promotion table of §3/§4.1: integer widening is exact,
// narrowing truncates, signed<->unsigned reinterprets the bit pattern, and
// integer<->float conversion rounds to nearest.
func ConvertTo[T Numeric](e element) T {
	var zero T
	switch any(zero).(type) {
	case int8:
		if e.isFloat {
			return T(int8(math.Round(e.f)))
		}
		return T(int8(e.bits))
	case int16:
		if e.isFloat {
			return T(int16(math.Round(e.f)))
		}
		return T(int16(e.bits))
	case int32:
		if e.isFloat {
			return T(int32(math.Round(e.f)))
		}
		return T(int32(e.bits))
	case int64:
		if e.isFloat {
			return T(int64(math.Round(e.f)))
		}
		return T(int64(e.bits))
	case uint8:
		if e.isFloat {
			return T(uint8(math.Round(e.f)))
		}
		return T(uint8(e.bits))
	case uint16:
		if e.isFloat {
			return T(uint16(math.Round(e.f)))
		}
		return T(uint16(e.bits))
	case uint32:
		if e.isFloat {
			return T(uint32(math.Round(e.f)))
		}
		return T(uint32(e.bits))
	case uint64:
		if e.isFloat {
			return T(uint64(math.Round(e.f)))
		}
		return T(e.bits)
	case float32:
		if e.isFloat {
			return T(float32(e.f))
		}
		if e.signed {
			return T(float32(int64(e.bits)))
		}
		return T(float32(e.bits))
	case float64:
		if e.isFloat {
			return T(e.f)
		}
		if e.signed {
			return T(float64(int64(e.bits)))
		}
		return T(float64(e.bits))
	default:
		var z T
		return z
	}
}

// ConvertLeaf writes dst's elements as srcDT-decoded-then-converted values
// read from src, implementing Node.ToDataType's leaf walk: for each of
// srcDT's elements, decode under srcDT's kind/endianness, convert to
// dstDT's kind, and encode under dstDT's kind/endianness. srcDT and dstDT
// must have equal NumElements.
func ConvertLeaf(srcDT, dstDT DataType, src, dst []byte) error {
	if srcDT.NumElements() != dstDT.NumElements() {
		return errUnknownKind(dstDT.Kind())
	}
	srcEB := srcDT.ElementBytes()
	dstEB := dstDT.ElementBytes()
	for i := uint64(0); i < srcDT.NumElements(); i++ {
		srcStart := srcDT.Offset() + i*srcDT.Stride()
		dstStart := dstDT.Offset() + i*dstDT.Stride()
		raw := src[srcStart : srcStart+srcEB]
		e := decodeElement(srcDT.Kind(), raw, srcDT.Endian())
		e = convertElementKind(dstDT.Kind(), e)
		encodeElement(dstDT.Kind(), dst[dstStart:dstStart+dstEB], dstDT.Endian(), e)
	}
	return nil
}

// ElementsEqual reports whether two raw leaf elements (each decoded under
// its own kind/endianness) carry the same numeric value, comparing in the
// widest common representation (float64), optionally within an absolute
// or relative tolerance. Used by Node.Diff.
func ElementsEqual(kindA Kind, rawA []byte, endianA Endianness, kindB Kind, rawB []byte, endianB Endianness, tol float64, relative bool) bool {
	a := decodeElement(kindA, rawA, endianA)
	b := decodeElement(kindB, rawB, endianB)
	return equalElements(a, b, tol, relative)
}

func equalElements(a, b element, tol float64, relative bool) bool {
	av := a.asFloat64()
	bv := b.asFloat64()
	if tol == 0 {
		return av == bv
	}
	d := av - bv
	if d < 0 {
		d = -d
	}
	if relative {
		denom := av
		if denom < 0 {
			denom = -denom
		}
		if denom == 0 {
			denom = 1
		}
		return d/denom <= tol
	}
	return d <= tol
}

func (e element) asFloat64() float64 {
	if e.isFloat {
		return e.f
	}
	if e.signed {
		return float64(int64(e.bits))
	}
	return float64(e.bits)
}

// DecodeAsFloat64 decodes one element of kind at raw and widens it to
// float64 for comparison purposes (Node.Diff).
func DecodeAsFloat64(kind Kind, raw []byte, endian Endianness) float64 {
	return decodeElement(kind, raw, endian).asFloat64()
}
