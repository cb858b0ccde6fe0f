package core

import "fmt"

func errNotLeafKind(k Kind) error {
	return fmt.Errorf("kind %s is not a leaf kind", k)
}

func errStrideTooNarrow(stride, elementBytes uint64) error {
	return fmt.Errorf("stride %d is narrower than element size %d", stride, elementBytes)
}

func errUnknownKind(k Kind) error {
	return fmt.Errorf("unsupported kind %s for this operation", k)
}

func errIndexOutOfRange(i, n uint64) error {
	return fmt.Errorf("index %d out of range [0,%d)", i, n)
}
