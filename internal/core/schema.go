package core

import "github.com/scigolib/meshkit/internal/utils"

// Schema is a node in the schema tree: a DataType plus, for interior
// nodes, either an ordered name->child map (object) or an ordered child
// list. Keys are unique and insertion-ordered per §3/§9.
type Schema struct {
	dt       DataType
	names    []string          // object: insertion order of keys
	index    map[string]int    // object: name -> position in children
	children []*Schema         // object or list children, in order
}

// NewSchema returns an empty schema (kind empty, no children).
func NewSchema() *Schema {
	return &Schema{dt: Empty()}
}

// NewLeafSchema returns a schema wrapping a leaf DataType.
func NewLeafSchema(dt DataType) *Schema {
	return &Schema{dt: dt}
}

// DataType returns this schema node's DataType.
func (s *Schema) DataType() DataType { return s.dt }

// IsObject, IsList, IsLeaf, IsEmpty mirror DataType's predicates.
func (s *Schema) IsObject() bool { return s.dt.IsObject() }
func (s *Schema) IsList() bool   { return s.dt.IsList() }
func (s *Schema) IsLeaf() bool   { return s.dt.IsLeaf() }
func (s *Schema) IsEmpty() bool  { return s.dt.IsEmpty() }

// NumChildren returns the number of children (0 for leaf/empty).
func (s *Schema) NumChildren() int { return len(s.children) }

// ChildAt returns the i'th child in order.
func (s *Schema) ChildAt(i int) *Schema { return s.children[i] }

// ChildNames returns object child names in insertion order (nil for a
// list or leaf schema).
func (s *Schema) ChildNames() []string { return s.names }

// ChildByName returns the named child of an object schema, or nil if not
// present.
func (s *Schema) ChildByName(name string) *Schema {
	if s.index == nil {
		return nil
	}
	i, ok := s.index[name]
	if !ok {
		return nil
	}
	return s.children[i]
}

// IndexOf returns the child position of name in an object schema.
func (s *Schema) IndexOf(name string) (int, bool) {
	if s.index == nil {
		return 0, false
	}
	i, ok := s.index[name]
	return i, ok
}

// HasChild reports whether an object schema has the named child.
func (s *Schema) HasChild(name string) bool {
	if s.index == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

// AddChild appends (object) or sets (object, by name) a named child,
// converting an empty schema into an object on first use. It is an error
// to add a named child to a list schema.
func (s *Schema) AddChild(name string, child *Schema) error {
	if s.dt.IsList() {
		return utils.WrapError("schema add child", errUnknownKind(s.dt.Kind()))
	}
	if s.dt.IsEmpty() {
		s.dt = Object()
		s.index = make(map[string]int)
	}
	if i, ok := s.index[name]; ok {
		s.children[i] = child
		return nil
	}
	s.index[name] = len(s.children)
	s.names = append(s.names, name)
	s.children = append(s.children, child)
	return nil
}

// AppendChild appends a nameless child, converting an empty schema into a
// list on first use. It is an error to append to an object schema.
func (s *Schema) AppendChild(child *Schema) error {
	if s.dt.IsObject() {
		return utils.WrapError("schema append child", errUnknownKind(s.dt.Kind()))
	}
	if s.dt.IsEmpty() {
		s.dt = List()
	}
	s.children = append(s.children, child)
	return nil
}

// SetLeaf turns this schema node into a leaf with the given DataType,
// discarding any prior children.
func (s *Schema) SetLeaf(dt DataType) {
	s.dt = dt
	s.names = nil
	s.index = nil
	s.children = nil
}

// TotalBytes computes the schema's total byte extent: the max over all
// descendant leaves of leaf_offset + leaf_count*leaf_stride, per §3's
// "totals an offset layout for a contiguous buffer."
func (s *Schema) TotalBytes() (uint64, error) {
	if s.IsLeaf() {
		return s.dt.Extent()
	}
	var max uint64
	for _, c := range s.children {
		e, err := c.TotalBytes()
		if err != nil {
			return 0, err
		}
		if e > max {
			max = e
		}
	}
	return max, nil
}

// Compact returns a new schema with identical structure but with every
// leaf's offset/stride repacked contiguously in depth-first child order,
// and reports the resulting total byte size. Used by Node.Compact.
func (s *Schema) Compact() (*Schema, uint64) {
	cursor := uint64(0)
	out := compactWalk(s, &cursor)
	return out, cursor
}

func compactWalk(s *Schema, cursor *uint64) *Schema {
	if s.IsLeaf() {
		dt := s.dt
		eb := dt.ElementBytes()
		dt2 := DataType{}
		if dt.NumElements() > 0 {
			dt2, _ = NewLeafStrided(dt.Kind(), dt.NumElements(), *cursor, eb, dt.Endian())
		} else {
			dt2, _ = NewLeaf(dt.Kind(), 0)
			dt2 = dt2.WithOffset(*cursor)
		}
		*cursor += eb * dt.NumElements()
		return NewLeafSchema(dt2)
	}
	out := NewSchema()
	if s.IsObject() {
		for i, name := range s.names {
			_ = out.AddChild(name, compactWalk(s.children[i], cursor))
		}
	} else if s.IsList() {
		for _, c := range s.children {
			_ = out.AppendChild(compactWalk(c, cursor))
		}
	}
	return out
}

// Clone deep-copies the schema tree (structure only; no buffer).
func (s *Schema) Clone() *Schema {
	if s.IsLeaf() || s.IsEmpty() {
		cp := *s
		return &cp
	}
	out := &Schema{dt: s.dt}
	if s.IsObject() {
		out.index = make(map[string]int, len(s.index))
		for k, v := range s.index {
			out.index[k] = v
		}
		out.names = append([]string(nil), s.names...)
	}
	out.children = make([]*Schema, len(s.children))
	for i, c := range s.children {
		out.children[i] = c.Clone()
	}
	return out
}
