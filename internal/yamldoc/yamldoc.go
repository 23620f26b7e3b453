// Package yamldoc builds and serializes YAML documents with a fixed,
// review-friendly style: two-space indentation, block collections, a trailing
// newline, and mapping keys emitted in insertion order.
//
// Plain Go maps cannot express key order (and yaml.v3 sorts them on encode),
// so documents are assembled from Map and Seq builders backed by *yaml.Node.
package yamldoc

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Map is an insertion-ordered YAML mapping under construction.
type Map struct {
	node *yaml.Node
	err  error
}

// NewMap creates an empty mapping.
func NewMap() *Map {
	return &Map{node: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
}

// Set appends a key/value pair. Keys are emitted in the order Set was called.
// The first conversion error is remembered and reported by Node or Format.
func (m *Map) Set(key string, value any) *Map {
	if m.err != nil {
		return m
	}
	v, err := ToNode(value)
	if err != nil {
		m.err = fmt.Errorf("key %q: %w", key, err)
		return m
	}
	k := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	m.node.Content = append(m.node.Content, k, v)
	return m
}

// Node returns the underlying yaml node, or the first error from Set.
func (m *Map) Node() (*yaml.Node, error) {
	return m.node, m.err
}

// Len reports the number of key/value pairs set so far.
func (m *Map) Len() int {
	return len(m.node.Content) / 2
}

// Seq is a YAML sequence under construction.
type Seq struct {
	node *yaml.Node
	err  error
}

// NewSeq creates a sequence containing the given values.
func NewSeq(values ...any) *Seq {
	s := &Seq{node: &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}}
	return s.Add(values...)
}

// Add appends values to the sequence.
func (s *Seq) Add(values ...any) *Seq {
	if s.err != nil {
		return s
	}
	for _, v := range values {
		n, err := ToNode(v)
		if err != nil {
			s.err = err
			return s
		}
		s.node.Content = append(s.node.Content, n)
	}
	return s
}

// Node returns the underlying yaml node, or the first error from Add.
func (s *Seq) Node() (*yaml.Node, error) {
	return s.node, s.err
}

// Tagged returns a scalar carrying a custom YAML tag, e.g.
// Tagged("!input", "target_entity") emits `!input target_entity`.
// Home Assistant blueprints rely on such tags to declare inputs.
func Tagged(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Style: yaml.TaggedStyle, Tag: tag, Value: value}
}

// ToNode converts a value to a yaml node. Map and Seq builders pass through
// their ordered nodes; everything else goes through yaml's own encoding.
func ToNode(value any) (*yaml.Node, error) {
	switch v := value.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case *Map:
		return v.Node()
	case *Seq:
		return v.Node()
	case *yaml.Node:
		return v, nil
	default:
		n := &yaml.Node{}
		if err := n.Encode(value); err != nil {
			return nil, fmt.Errorf("encoding %T: %w", value, err)
		}
		return n, nil
	}
}

// Format serializes a value as YAML text with two-space indentation and a
// trailing newline. Parsing the result with yaml.Unmarshal reproduces a
// structure equal to the input for mappings, sequences, strings, numbers,
// booleans, and null.
func Format(value any) (string, error) {
	node, err := ToNode(value)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		enc.Close()
		return "", fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encoding yaml: %w", err)
	}
	return buf.String(), nil
}
