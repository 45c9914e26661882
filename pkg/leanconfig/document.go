// Package leanconfig loads, mutates and persists the hierarchical engine
// configuration document. The document is kept as a yaml.v3 node tree so that
// keys this tool does not recognize, and any comments in the file, survive a
// load/save round-trip unchanged.
package leanconfig

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document is an ordered key/value mapping with string, number, boolean,
// sequence and nested mapping values. A Document is owned by the single
// command invocation that created it; it is not safe for concurrent use.
type Document struct {
	doc *yaml.Node
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{doc: newDocumentNode()}
}

// Parse reads a document from YAML or JSON bytes.
func Parse(data []byte) (*Document, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("parse configuration: %w", err)
	}
	if node.Kind == 0 {
		// Empty file
		return NewDocument(), nil
	}
	if node.Kind != yaml.DocumentNode || len(node.Content) == 0 || node.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse configuration: top-level value must be a mapping")
	}
	return &Document{doc: &node}, nil
}

// Marshal serializes the document, preserving key order, unrecognized keys
// and comments.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.doc); err != nil {
		return nil, fmt.Errorf("serialize configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("serialize configuration: %w", err)
	}
	return buf.Bytes(), nil
}

// Get returns the value stored under a top-level key.
func (d *Document) Get(key string) (any, bool) {
	return mapGet(d.mapping(), key)
}

// GetString returns the string value under a top-level key, or "" when the
// key is absent or not a string.
func (d *Document) GetString(key string) string {
	v, ok := d.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Set stores a value under a top-level key, in memory only.
func (d *Document) Set(key string, value any) error {
	return mapSet(d.mapping(), key, value)
}

// Delete removes a top-level key. It reports whether the key existed.
func (d *Document) Delete(key string) bool {
	return mapDelete(d.mapping(), key)
}

// Has reports whether a top-level key exists.
func (d *Document) Has(key string) bool {
	_, ok := mapLookup(d.mapping(), key)
	return ok
}

// Keys returns the top-level keys in document order.
func (d *Document) Keys() []string {
	return mapKeys(d.mapping())
}

// Section returns a view over the nested mapping stored under key.
func (d *Document) Section(key string) (*Section, bool) {
	node, ok := mapLookup(d.mapping(), key)
	if !ok || node.Kind != yaml.MappingNode {
		return nil, false
	}
	return &Section{node: node}, true
}

// EnsureSection returns the nested mapping under key, creating an empty one
// if the key is absent or holds a non-mapping value.
func (d *Document) EnsureSection(key string) *Section {
	node, ok := mapLookup(d.mapping(), key)
	if !ok || node.Kind != yaml.MappingNode {
		node = newMappingNode()
		replaceOrAppend(d.mapping(), key, node)
	}
	return &Section{node: node}
}

func (d *Document) mapping() *yaml.Node {
	if d.doc == nil {
		d.doc = newDocumentNode()
	}
	return d.doc.Content[0]
}

// Section is a view over a nested mapping inside a Document. Mutations write
// through to the owning document.
type Section struct {
	node *yaml.Node
}

func (s *Section) Get(key string) (any, bool) {
	return mapGet(s.node, key)
}

func (s *Section) GetString(key string) string {
	v, ok := s.Get(key)
	if !ok {
		return ""
	}
	str, _ := v.(string)
	return str
}

func (s *Section) Set(key string, value any) error {
	return mapSet(s.node, key, value)
}

func (s *Section) Has(key string) bool {
	_, ok := mapLookup(s.node, key)
	return ok
}

func (s *Section) Keys() []string {
	return mapKeys(s.node)
}

// Sub returns the nested mapping stored under key within this section.
func (s *Section) Sub(key string) (*Section, bool) {
	node, ok := mapLookup(s.node, key)
	if !ok || node.Kind != yaml.MappingNode {
		return nil, false
	}
	return &Section{node: node}, true
}

// SetSection replaces the mapping under key with a fresh empty mapping and
// returns it.
func (s *Section) SetSection(key string) *Section {
	node := newMappingNode()
	replaceOrAppend(s.node, key, node)
	return &Section{node: node}
}

// ScalarString renders a scalar value (string, boolean, number) the way it
// would appear in the document.
func ScalarString(v any) (string, error) {
	node := &yaml.Node{}
	if err := node.Encode(v); err != nil {
		return "", err
	}
	if node.Kind != yaml.ScalarNode {
		return "", fmt.Errorf("value %T is not a scalar", v)
	}
	return node.Value, nil
}

func newDocumentNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{newMappingNode()}}
}

func newMappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

// mapLookup finds the value node for a key in a mapping node.
func mapLookup(m *yaml.Node, key string) (*yaml.Node, bool) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1], true
		}
	}
	return nil, false
}

func mapGet(m *yaml.Node, key string) (any, bool) {
	node, ok := mapLookup(m, key)
	if !ok {
		return nil, false
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}

func mapSet(m *yaml.Node, key string, value any) error {
	valueNode := &yaml.Node{}
	if err := valueNode.Encode(value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	replaceOrAppend(m, key, valueNode)
	return nil
}

// replaceOrAppend swaps the value node in place when the key exists, so the
// key node and its comments stay untouched.
func replaceOrAppend(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			// Keep any trailing comment attached to the old value.
			value.LineComment = m.Content[i+1].LineComment
			m.Content[i+1] = value
			return
		}
	}
	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	m.Content = append(m.Content, keyNode, value)
}

func mapDelete(m *yaml.Node, key string) bool {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content = append(m.Content[:i], m.Content[i+2:]...)
			return true
		}
	}
	return false
}

func mapKeys(m *yaml.Node) []string {
	keys := make([]string, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		keys = append(keys, m.Content[i].Value)
	}
	return keys
}
