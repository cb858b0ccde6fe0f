package meshkit

import (
	"bytes"
	"strconv"

	"github.com/scigolib/meshkit/internal/core"
	"github.com/segmentio/encoding/json"
	"gopkg.in/yaml.v3"
)

// ToYAML renders this Node's subtree in the canonical textual form of
// §6: objects as ordered mappings, lists as sequences, leaves as a
// scalar or a flow sequence of numbers. Key order is preserved via
// yaml.Node construction rather than a plain Go map, since a bare
// map[string]any would not round-trip an object node's insertion order.
func (n *Node) ToYAML() (string, error) {
	doc, err := n.toYAMLNode()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (n *Node) toYAMLNode() (*yaml.Node, error) {
	switch {
	case n.IsObject():
		out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, name := range n.ChildNames() {
			keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
			valNode, err := n.Child(name).toYAMLNode()
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, keyNode, valNode)
		}
		return out, nil
	case n.IsList():
		out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for i := 0; i < n.NumChildren(); i++ {
			childNode, err := n.ChildAt(i).toYAMLNode()
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, childNode)
		}
		return out, nil
	case n.IsLeaf():
		return leafToYAMLNode(n)
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "~"}, nil
	}
}

func leafToYAMLNode(n *Node) (*yaml.Node, error) {
	if n.Dtype().Kind() == KindChar8 {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: n.AsString()}, nil
	}
	tag := "!!float"
	if n.Dtype().Kind().IsInteger() {
		tag = "!!int"
	}
	vals, err := leafValues(n)
	if err != nil {
		return nil, err
	}
	if len(vals) == 1 {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: formatLeafValue(tag, vals[0])}, nil
	}
	out := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
	for _, v := range vals {
		out.Content = append(out.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: formatLeafValue(tag, v)})
	}
	return out, nil
}

func formatLeafValue(tag string, v float64) string {
	if tag == "!!int" {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// leafValues widens every element of a numeric leaf to float64 for
// textual rendering, via core.DecodeAsFloat64.
func leafValues(n *Node) ([]float64, error) {
	dt := n.Dtype()
	count := dt.NumElements()
	out := make([]float64, count)
	for i := uint64(0); i < count; i++ {
		start := dt.Offset() + i*dt.Stride()
		raw := n.data[start : start+dt.ElementBytes()]
		out[i] = core.DecodeAsFloat64(dt.Kind(), raw, dt.Endian())
	}
	return out, nil
}

// ToJSON renders this Node's subtree as canonical JSON, the dual form of
// ToYAML, built via the same ordered walk and encoded with
// segmentio/encoding/json for its leaf numeric arrays.
func (n *Node) ToJSON() (string, error) {
	var buf bytes.Buffer
	if err := n.writeJSON(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (n *Node) writeJSON(buf *bytes.Buffer) error {
	switch {
	case n.IsObject():
		buf.WriteByte('{')
		for i, name := range n.ChildNames() {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(name)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := n.Child(name).writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case n.IsList():
		buf.WriteByte('[')
		for i := 0; i < n.NumChildren(); i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := n.ChildAt(i).writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case n.IsLeaf():
		return n.writeLeafJSON(buf)
	default:
		buf.WriteString("null")
		return nil
	}
}

func (n *Node) writeLeafJSON(buf *bytes.Buffer) error {
	if n.Dtype().Kind() == KindChar8 {
		enc, err := json.Marshal(n.AsString())
		if err != nil {
			return err
		}
		buf.Write(enc)
		return nil
	}
	vals, err := leafValues(n)
	if err != nil {
		return err
	}
	if len(vals) == 1 {
		enc, err := json.Marshal(vals[0])
		if err != nil {
			return err
		}
		buf.Write(enc)
		return nil
	}
	enc, err := json.Marshal(vals)
	if err != nil {
		return err
	}
	buf.Write(enc)
	return nil
}

