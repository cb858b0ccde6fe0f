package meshkit

import "unsafe"

// bytesOf reinterprets a typed numeric slice as a []byte view over the same
// backing array, with no copy. Grounded on segmentio/parquet-go's
// array.go idiom of reinterpreting a typed slice header via unsafe.Pointer
// rather than looping element-by-element; used by SetExternal to alias a
// caller-owned slice.
func bytesOf[T Numeric](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*elemSize)
}
