package meshkit

import (
	"strings"

	"github.com/scigolib/meshkit/internal/core"
)

// dataState records which of the three states (§2/§9) a Node's data is in.
type dataState uint8

const (
	// stateInterior nodes carry no buffer; their data lives entirely in
	// their children.
	stateInterior dataState = iota
	// stateOwned nodes hold an exclusively-owned buffer this Node
	// allocated and will release when the Node is discarded.
	stateOwned
	// stateExternal nodes alias a buffer the caller owns; the Node never
	// allocates or frees it.
	stateExternal
)

// Node is the self-describing, hierarchical in-memory tree: a Schema
// describing layout plus, for leaves, a byte buffer in exactly one of the
// three data states. An object Node's children are keyed by name in
// insertion order; a list Node's children are positional.
type Node struct {
	schema   *core.Schema
	state    dataState
	data     []byte
	children []*Node
	names    []string
	index    map[string]int
	parent   *Node
}

// New returns an empty Node (kind empty, no data, no children).
func New() *Node {
	return &Node{schema: core.NewSchema(), state: stateInterior}
}

// IsObject, IsList, IsLeaf, IsEmpty mirror the underlying schema's kind.
func (n *Node) IsObject() bool { return n.schema.IsObject() }
func (n *Node) IsList() bool   { return n.schema.IsList() }
func (n *Node) IsLeaf() bool   { return n.schema.IsLeaf() }
func (n *Node) IsEmpty() bool  { return n.schema.IsEmpty() }

// Dtype returns the Node's DataType, describing its kind and, for a leaf,
// its element layout.
func (n *Node) Dtype() DataType { return n.schema.DataType() }

// Schema returns the Node's underlying Schema.
func (n *Node) Schema() *core.Schema { return n.schema }

// NumChildren returns the number of children (0 for a leaf/empty node).
func (n *Node) NumChildren() int { return len(n.children) }

// ChildAt returns the i'th child in insertion/positional order.
func (n *Node) ChildAt(i int) *Node { return n.children[i] }

// ChildNames returns an object node's child names in insertion order, or
// nil for a list or leaf node.
func (n *Node) ChildNames() []string { return n.names }

// HasChild reports whether an object node has the named child.
func (n *Node) HasChild(name string) bool {
	if n.index == nil {
		return false
	}
	_, ok := n.index[name]
	return ok
}

// Child returns the named child of an object node, or nil if absent.
func (n *Node) Child(name string) *Node {
	if n.index == nil {
		return nil
	}
	i, ok := n.index[name]
	if !ok {
		return nil
	}
	return n.children[i]
}

// Parent returns the Node's parent, or nil at the tree root.
func (n *Node) Parent() *Node { return n.parent }

// addChild inserts or replaces a named child, converting an empty node
// into an object on first use. Mirrors core.Schema.AddChild's contract at
// the Node level and keeps the schema tree in lockstep with the Node tree.
func (n *Node) addChild(name string, child *Node) {
	if n.state != stateInterior {
		fatalf("node.add_child", "cannot add named child %q to a leaf node", name)
		return
	}
	if n.schema.IsList() {
		fatalf("node.add_child", "cannot add named child %q to a list node", name)
		return
	}
	if n.index == nil {
		n.index = make(map[string]int)
	}
	child.parent = n
	if i, ok := n.index[name]; ok {
		n.children[i] = child
		_ = n.schema.AddChild(name, child.schema)
		return
	}
	n.index[name] = len(n.children)
	n.names = append(n.names, name)
	n.children = append(n.children, child)
	_ = n.schema.AddChild(name, child.schema)
}

// appendChild appends a nameless child, converting an empty node into a
// list on first use.
func (n *Node) appendChild(child *Node) {
	if n.state != stateInterior {
		fatalf("node.append_child", "cannot append child to a leaf node")
		return
	}
	if n.schema.IsObject() {
		fatalf("node.append_child", "cannot append nameless child to an object node")
		return
	}
	child.parent = n
	n.children = append(n.children, child)
	_ = n.schema.AppendChild(child.schema)
}

// Path navigates (autovivifying intermediate object nodes as it goes) to
// the descendant named by a "/"-separated path, per §3/§9's "fetch or
// create" path semantics. Each segment that does not yet exist is created
// as an empty object child.
func (n *Node) Path(path string) *Node {
	if path == "" {
		return n
	}
	cur := n
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		next := cur.Child(seg)
		if next == nil {
			next = New()
			cur.addChild(seg, next)
		}
		cur = next
	}
	return cur
}

// Fetch navigates a "/"-separated const path without creating anything,
// returning an error if any segment is absent. Per §7 this is the
// non-fatal counterpart to Path/MustFetch.
func (n *Node) Fetch(path string) (*Node, error) {
	if path == "" {
		return n, nil
	}
	cur := n
	for _, seg := range strings.Split(path, "/") {
		if seg == "" {
			continue
		}
		next := cur.Child(seg)
		if next == nil {
			return nil, errPathNotFound(path)
		}
		cur = next
	}
	return cur, nil
}

// MustFetch is Fetch routed through the process-wide fatal-error handler
// on failure, per §7's "const path-fetch on a non-existent path is
// fatal" rule.
func (n *Node) MustFetch(path string) *Node {
	got, err := n.Fetch(path)
	if err != nil {
		Fatal("node.fetch", err)
		return nil
	}
	return got
}

// Remove detaches the named child of an object node, if present.
func (n *Node) Remove(name string) {
	if n.index == nil {
		return
	}
	i, ok := n.index[name]
	if !ok {
		return
	}
	delete(n.index, name)
	n.names = append(n.names[:i], n.names[i+1:]...)
	n.children = append(n.children[:i], n.children[i+1:]...)
	for j := i; j < len(n.names); j++ {
		n.index[n.names[j]] = j
	}
}
