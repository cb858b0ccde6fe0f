package meshkit

import (
	"github.com/mitchellh/copystructure"
	"github.com/scigolib/meshkit/internal/core"
)

// Copy returns a deep copy of this Node and its entire subtree: every
// descendant's schema is cloned, every owned buffer is independently
// copied (so mutating the copy never aliases the original), and every
// external Node's state is kept external over the SAME backing slice
// (external data is caller-owned and is not this Node's to duplicate).
// Plain Go data (index maps, name slices) is duplicated via
// mitchellh/copystructure rather than hand-rolled loops.
func (n *Node) Copy() *Node {
	out := &Node{
		schema: n.schema.Clone(),
		state:  n.state,
	}
	switch n.state {
	case stateOwned:
		cp, err := copystructure.Copy(n.data)
		if err != nil {
			Fatal("node.copy", err)
			return nil
		}
		out.data = cp.([]byte)
	case stateExternal:
		out.data = n.data
	}
	if len(n.names) > 0 {
		cp, err := copystructure.Copy(n.names)
		if err != nil {
			Fatal("node.copy", err)
			return nil
		}
		out.names = cp.([]string)
	}
	if len(n.index) > 0 {
		cp, err := copystructure.Copy(n.index)
		if err != nil {
			Fatal("node.copy", err)
			return nil
		}
		out.index = cp.(map[string]int)
	}
	if len(n.children) > 0 {
		out.children = make([]*Node, len(n.children))
		for i, c := range n.children {
			child := c.Copy()
			child.parent = out
			out.children[i] = child
		}
	}
	return out
}

// Compact returns a copy of this Node's subtree with every leaf's buffer
// repacked into a single freshly allocated contiguous region, in
// depth-first child order, mirroring core.Schema.Compact. An external
// leaf becomes owned in the result, since compaction always allocates.
func (n *Node) Compact() *Node {
	compacted, total := n.schema.Compact()
	buf := make([]byte, total)
	return compactCopyInto(n, compacted, buf)
}

func compactCopyInto(src *Node, schema *core.Schema, buf []byte) *Node {
	out := &Node{schema: schema}
	if schema.IsLeaf() {
		dt := schema.DataType()
		eb := dt.ElementBytes()
		count := dt.NumElements()
		srcDT := src.schema.DataType()
		srcEB := srcDT.ElementBytes()
		for i := uint64(0); i < count; i++ {
			dstStart := dt.Offset() + i*eb
			srcStart := srcDT.Offset() + i*srcDT.Stride()
			copy(buf[dstStart:dstStart+eb], src.data[srcStart:srcStart+srcEB])
		}
		out.state = stateOwned
		out.data = buf
		return out
	}
	out.state = stateInterior
	for i := 0; i < src.NumChildren(); i++ {
		child := compactCopyInto(src.children[i], schema.ChildAt(i), buf)
		child.parent = out
		if src.IsObject() {
			out.names = append(out.names, src.names[i])
			if out.index == nil {
				out.index = make(map[string]int)
			}
			out.index[src.names[i]] = i
		}
		out.children = append(out.children, child)
	}
	return out
}
