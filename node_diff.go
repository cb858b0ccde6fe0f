package meshkit

import (
	"fmt"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/scigolib/meshkit/internal/core"
)

// DiffEntry records one structural or numeric discrepancy found between
// two Nodes, keyed by the "/"-path at which it was found.
type DiffEntry struct {
	Path string
	Kind string // "missing", "extra", "kind-mismatch", "length-mismatch", "value-mismatch"
	Want string
	Got  string
}

// DiffInfo is the result of comparing two Node trees: the list of
// discrepancies found, in tree-walk order.
type DiffInfo struct {
	Entries []DiffEntry
}

// Equal reports whether the diff found no discrepancies.
func (d *DiffInfo) Equal() bool { return len(d.Entries) == 0 }

// Unified renders the diff as a unified text diff between the two trees'
// canonical YAML forms, via hexops/gotextdiff's Myers implementation —
// useful for human-readable test failure output and CLI reporting.
func (d *DiffInfo) Unified(a, b *Node) string {
	wantText, errA := a.ToYAML()
	gotText, errB := b.ToYAML()
	if errA != nil || errB != nil {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath("want.yaml"), wantText, gotText)
	return fmt.Sprint(gotextdiff.ToUnified("want.yaml", "got.yaml", wantText, edits))
}

// Diff compares this Node's subtree against other's, reporting every
// leaf whose kind, element count, or (within tol) value differs, and
// every child present on one side but absent on the other. tol is an
// absolute tolerance unless relative is true, per §4/§9's comparison
// semantics (the same tolerance rules as core.ElementsEqual).
func (n *Node) Diff(other *Node, tol float64, relative bool) *DiffInfo {
	info := &DiffInfo{}
	diffWalk(n, other, "", tol, relative, info)
	return info
}

func diffWalk(a, b *Node, path string, tol float64, relative bool, info *DiffInfo) {
	if a.Dtype().Kind() != b.Dtype().Kind() {
		info.Entries = append(info.Entries, DiffEntry{
			Path: path, Kind: "kind-mismatch",
			Want: a.Dtype().Kind().String(), Got: b.Dtype().Kind().String(),
		})
		return
	}
	switch {
	case a.IsLeaf():
		diffLeaf(a, b, path, tol, relative, info)
	case a.IsObject():
		for _, name := range a.ChildNames() {
			childPath := joinPath(path, name)
			bc := b.Child(name)
			if bc == nil {
				info.Entries = append(info.Entries, DiffEntry{Path: childPath, Kind: "missing"})
				continue
			}
			diffWalk(a.Child(name), bc, childPath, tol, relative, info)
		}
		for _, name := range b.ChildNames() {
			if !a.HasChild(name) {
				info.Entries = append(info.Entries, DiffEntry{Path: joinPath(path, name), Kind: "extra"})
			}
		}
	case a.IsList():
		n := a.NumChildren()
		if b.NumChildren() < n {
			n = b.NumChildren()
		}
		for i := 0; i < n; i++ {
			diffWalk(a.ChildAt(i), b.ChildAt(i), fmt.Sprintf("%s[%d]", path, i), tol, relative, info)
		}
		if a.NumChildren() != b.NumChildren() {
			info.Entries = append(info.Entries, DiffEntry{
				Path: path, Kind: "length-mismatch",
				Want: fmt.Sprintf("%d", a.NumChildren()), Got: fmt.Sprintf("%d", b.NumChildren()),
			})
		}
	}
}

func diffLeaf(a, b *Node, path string, tol float64, relative bool, info *DiffInfo) {
	aDT, bDT := a.Dtype(), b.Dtype()
	if aDT.NumElements() != bDT.NumElements() {
		info.Entries = append(info.Entries, DiffEntry{
			Path: path, Kind: "length-mismatch",
			Want: fmt.Sprintf("%d", aDT.NumElements()), Got: fmt.Sprintf("%d", bDT.NumElements()),
		})
		return
	}
	if aDT.Kind() == KindChar8 {
		if a.AsString() != b.AsString() {
			info.Entries = append(info.Entries, DiffEntry{Path: path, Kind: "value-mismatch", Want: a.AsString(), Got: b.AsString()})
		}
		return
	}
	for i := uint64(0); i < aDT.NumElements(); i++ {
		aStart := aDT.Offset() + i*aDT.Stride()
		bStart := bDT.Offset() + i*bDT.Stride()
		aRaw := a.data[aStart : aStart+aDT.ElementBytes()]
		bRaw := b.data[bStart : bStart+bDT.ElementBytes()]
		if !core.ElementsEqual(aDT.Kind(), aRaw, aDT.Endian(), bDT.Kind(), bRaw, bDT.Endian(), tol, relative) {
			info.Entries = append(info.Entries, DiffEntry{
				Path: fmt.Sprintf("%s[%d]", path, i), Kind: "value-mismatch",
			})
		}
	}
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return strings.Join([]string{base, name}, "/")
}
