package core

// Accessor is a non-owning, strided, typed view over a leaf. It holds the
// leaf's describing DataType plus the byte slice it reads from (the base
// of the owning or external buffer, NOT pre-sliced to the leaf — offset
// and stride are applied per read). Per §4.1/§9, dispatch on the leaf's
// runtime kind happens once per element read; no converted buffer is ever
// materialized unless the caller explicitly asks.
type Accessor[T Numeric] struct {
	base []byte
	dt   DataType
}

// NewAccessor builds a typed view over dt's layout within base. base must
// be at least as long as dt's extent.
func NewAccessor[T Numeric](base []byte, dt DataType) (*Accessor[T], error) {
	if !dt.IsLeaf() {
		return nil, errUnknownKind(dt.Kind())
	}
	extent, err := dt.Extent()
	if err != nil {
		return nil, err
	}
	if uint64(len(base)) < extent {
		return nil, errIndexOutOfRange(extent-1, uint64(len(base)))
	}
	return &Accessor[T]{base: base, dt: dt}, nil
}

// Len returns the number of elements in the view.
func (a *Accessor[T]) Len() uint64 { return a.dt.NumElements() }

// At reads element i, coercing it into T per the promotion table. Index
// out of range is a fatal condition signaled via panic-free error return;
// callers that want fatal-error semantics should route a
// non-nil error through the process-wide handler (see meshkit.Fatal).
func (a *Accessor[T]) At(i uint64) (T, error) {
	var zero T
	if i >= a.dt.NumElements() {
		return zero, errIndexOutOfRange(i, a.dt.NumElements())
	}
	eb := a.dt.ElementBytes()
	start := a.dt.Offset() + i*a.dt.Stride()
	raw := a.base[start : start+eb]
	e := decodeElement(a.dt.Kind(), raw, a.dt.Endian())
	return ConvertTo[T](e), nil
}

// MustAt is At with the error routed to a panic; used internally once a
// caller has already validated bounds (e.g. a loop over Len()).
func (a *Accessor[T]) MustAt(i uint64) T {
	v, err := a.At(i)
	if err != nil {
		panic(err)
	}
	return v
}

// Slice materializes the full view as a []T, applying ConvertTo to every
// element. This is the explicit "caller asks for a converted buffer" path;
// ConvertTo itself never runs implicitly across a whole leaf.
func (a *Accessor[T]) Slice() []T {
	n := a.dt.NumElements()
	out := make([]T, n)
	for i := uint64(0); i < n; i++ {
		out[i] = a.MustAt(i)
	}
	return out
}

// WriteElement encodes v into element i of the underlying buffer using the
// leaf's declared kind and endianness (reverse of At/ConvertTo), converting
// v to that kind first. Used by Node.Set to populate an owned buffer.
func WriteElement[T Numeric](base []byte, dt DataType, i uint64, v T) error {
	if i >= dt.NumElements() {
		return errIndexOutOfRange(i, dt.NumElements())
	}
	eb := dt.ElementBytes()
	start := dt.Offset() + i*dt.Stride()
	raw := base[start : start+eb]
	encodeElement(dt.Kind(), raw, dt.Endian(), convertElementKind(dt.Kind(), elementOf(v)))
	return nil
}
