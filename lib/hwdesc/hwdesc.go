//
// (C) Copyright 2025-2026 Intel Corporation.
//
// SPDX-License-Identifier: BSD-2-Clause-Patent
//

// Package hwdesc provides a generic document model for hardware
// description files. A document is an ordered tree of named nodes,
// each carrying an ordered set of string attributes. The on-disk
// format is XML.
package hwdesc

import (
	"strconv"

	"github.com/pkg/errors"
)

// Version is the current hardware description format version.
// Documents declaring a newer version on their root node are
// rejected at load time.
const Version = 1

type (
	// Attribute is a single named value on a description node.
	Attribute struct {
		Name  string
		Value string
	}

	// Node is a single element in a description document.
	Node struct {
		name     string
		attrs    []Attribute
		parent   *Node
		children []*Node
	}

	// Document is a tree of description nodes.
	Document struct {
		root *Node
	}
)

// New returns an empty description document.
func New() *Document {
	return &Document{}
}

// Root returns the document's root node, or nil for an empty document.
func (d *Document) Root() *Node {
	if d == nil {
		return nil
	}
	return d.root
}

// AddNode creates a new node with the given name under the supplied
// parent. A nil parent makes the new node the document root.
func (d *Document) AddNode(parent *Node, name string) *Node {
	node := &Node{name: name, parent: parent}
	if parent == nil {
		d.root = node
		return node
	}
	parent.children = append(parent.children, node)
	return node
}

// FindTag returns the first node with the given name, searching
// depth-first from the root, or nil if no such node exists.
func (d *Document) FindTag(name string) *Node {
	return findTag(d.Root(), func(n *Node) bool {
		return n.name == name
	})
}

// FindTagAttr returns the first node with the given name whose
// attribute attrName has the value attrValue, or nil if no such
// node exists.
func (d *Document) FindTagAttr(name, attrName, attrValue string) *Node {
	return findTag(d.Root(), func(n *Node) bool {
		if n.name != name {
			return false
		}
		val, found := n.Attr(attrName)
		return found && val == attrValue
	})
}

func findTag(n *Node, match func(*Node) bool) *Node {
	if n == nil {
		return nil
	}
	if match(n) {
		return n
	}
	for _, child := range n.children {
		if found := findTag(child, match); found != nil {
			return found
		}
	}
	return nil
}

// Name returns the node's element name.
func (n *Node) Name() string {
	if n == nil {
		return ""
	}
	return n.name
}

// Parent returns the node's parent, or nil for the root node.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Children returns the node's children in document order.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// Child returns the first child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, child := range n.children {
		if child.name == name {
			return child
		}
	}
	return nil
}

// Attr returns the value of the named attribute. The second return
// value distinguishes an absent attribute from an empty one.
func (n *Node) Attr(name string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// IntAttr returns the value of the named attribute parsed as an
// integer. Absent or unparseable attributes are errors; use Attr
// for optional attributes.
func (n *Node) IntAttr(name string) (int, error) {
	val, found := n.Attr(name)
	if !found {
		return 0, errors.Errorf("%s node: missing %q attribute", n.Name(), name)
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, errors.Wrapf(err, "%s node: %q attribute", n.Name(), name)
	}
	return i, nil
}

// Attrs returns the node's attributes in document order.
func (n *Node) Attrs() []Attribute {
	if n == nil {
		return nil
	}
	return n.attrs
}

// SetAttr sets the named attribute, overwriting any existing value.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.attrs {
		if a.Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attribute{Name: name, Value: value})
}

// SetIntAttr sets the named attribute to the decimal representation
// of the given value, overwriting any existing value.
func (n *Node) SetIntAttr(name string, value int) {
	n.SetAttr(name, strconv.Itoa(value))
}

// InitAttr sets the named attribute only if it is not already present.
func (n *Node) InitAttr(name, value string) {
	if _, found := n.Attr(name); found {
		return
	}
	n.SetAttr(name, value)
}

// InitIntAttr sets the named attribute to the decimal representation
// of the given value only if it is not already present.
func (n *Node) InitIntAttr(name string, value int) {
	if _, found := n.Attr(name); found {
		return
	}
	n.SetIntAttr(name, value)
}
