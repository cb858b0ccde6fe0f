// Package main provides a command-line utility that builds a small
// demonstration mesh (a uniform coordset converted through the
// blueprint coordset/topology converters) and pretty-prints its Node
// tree, or re-emits it as canonical JSON.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/scigolib/meshkit"
	"github.com/scigolib/meshkit/blueprint"
)

func main() {
	asJSON := flag.Bool("json", false, "re-emit the demo tree as canonical JSON instead of a summary table")
	dims := flag.Int("dims", 3, "quad grid dimension per axis (dims x dims cells)")
	flag.Parse()

	root := buildDemoMesh(*dims)

	if *asJSON {
		out, err := root.ToJSON()
		if err != nil {
			log.Fatalf("Failed to render JSON: %v", err)
		}
		fmt.Println(out)
		return
	}

	printTree(root)
}

// buildDemoMesh assembles a uniform coordset, converts it to explicit
// form, and converts the equivalent structured topology to unstructured
// quads — the same conversions blueprint.VerifyCoordset/VerifyTopology
// accept — to give the dumper something real to walk.
func buildDemoMesh(dims int) *meshkit.Node {
	coordset := meshkit.New()
	coordset.Path("type").Set("uniform")
	coordset.Path("dims/i").Set(int64(dims + 1))
	coordset.Path("dims/j").Set(int64(dims + 1))
	coordset.Path("origin/x").Set(0.0)
	coordset.Path("origin/y").Set(0.0)
	coordset.Path("spacing/dx").Set(1.0)
	coordset.Path("spacing/dy").Set(1.0)

	explicit := blueprint.ToExplicit(coordset)

	topo := meshkit.New()
	topo.Path("type").Set("structured")
	topo.Path("coordset").Set("coords")
	topo.Path("elements/dims/i").Set(int64(dims))
	topo.Path("elements/dims/j").Set(int64(dims))
	unstructured := blueprint.StructuredToUnstructured(topo)

	root := meshkit.New()
	root.Path("coordsets/coords/type").Set(explicit.Child("type").AsString())
	for _, axis := range explicit.Child("values").ChildNames() {
		root.Path("coordsets/coords/values/" + axis).Set(explicit.Child("values").Child(axis).AsFloat64Slice())
	}
	root.Path("topologies/mesh/type").Set(unstructured.Child("type").AsString())
	root.Path("topologies/mesh/coordset").Set("coords")
	root.Path("topologies/mesh/elements/shape").Set(unstructured.Child("elements").Child("shape").AsString())
	root.Path("topologies/mesh/elements/connectivity").Set(unstructured.Child("elements").Child("connectivity").AsInt64Slice())

	return root
}

func printTree(n *meshkit.Node) {
	t := table.NewWriter()
	t.SetTitle("Node Tree")
	t.AppendHeader(table.Row{"Path", "Kind", "Children", "Elements"})
	walkPrint(t, n, "")
	fmt.Println(t.Render())
}

func walkPrint(t table.Writer, n *meshkit.Node, path string) {
	if path == "" {
		path = "/"
	}
	kind := "object"
	switch {
	case n.IsLeaf():
		kind = n.Dtype().Kind().String()
	case n.IsList():
		kind = "list"
	case n.IsEmpty():
		kind = "empty"
	}

	elems := ""
	if n.IsLeaf() {
		elems = fmt.Sprintf("%d", n.Dtype().NumElements())
	}
	t.AppendRow(table.Row{path, kind, n.NumChildren(), elems})

	names := n.ChildNames()
	for i := 0; i < n.NumChildren(); i++ {
		child := n.ChildAt(i)
		name := fmt.Sprintf("%d", i)
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		childPath := path
		if childPath == "/" {
			childPath += name
		} else {
			childPath += "/" + name
		}
		walkPrint(t, child, childPath)
	}
}
