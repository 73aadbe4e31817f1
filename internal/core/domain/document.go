package domain

import (
	"fmt"
	"path/filepath"
)

// DocumentTypeRoot is the provider type of root documents.
const DocumentTypeRoot = "root"

// DocumentContext is a node in the document tree.
//
// Only root documents may be built without a parent. Any other node built
// without one is detached: it belongs to no tree and produces no output.
type DocumentContext struct {
	Context

	parent   *DocumentContext
	children []*DocumentContext
	title    string
	explicit bool

	root bool
	file File
}

// NewDocumentContext creates a non-root node. The title comes from the
// entry's "title" field.
func NewDocumentContext(typ string, data Data, parent *DocumentContext, cfg *Config) *DocumentContext {
	d := &DocumentContext{
		Context: newContext(typ, data, cfg),
		parent:  parent,
	}
	d.title = d.data.String("title")
	d.explicit = d.title != ""
	return d
}

// NewRootDocumentContext creates a root document bound to its output file.
// The title defaults to the output file's base name.
func NewRootDocumentContext(data Data, file File, cfg *Config) *DocumentContext {
	d := &DocumentContext{
		Context: newContext(DocumentTypeRoot, data, cfg),
		root:    true,
		file:    file,
	}
	d.title = d.data.String("title")
	d.explicit = d.title != ""
	if d.title == "" {
		d.title = filepath.Base(file.Path())
	}
	return d
}

// IsRoot reports whether the node is a root document.
func (d *DocumentContext) IsRoot() bool {
	return d.root
}

// IsDetached reports whether a non-root node has no parent.
func (d *DocumentContext) IsDetached() bool {
	return !d.root && d.parent == nil
}

// Parent returns the parent node, nil for roots and detached nodes.
func (d *DocumentContext) Parent() *DocumentContext {
	return d.parent
}

// Root walks up to the root document. Detached nodes return nil.
func (d *DocumentContext) Root() *DocumentContext {
	n := d
	for n.parent != nil {
		n = n.parent
	}
	if !n.root {
		return nil
	}
	return n
}

// Depth returns the number of ancestors; roots have depth 0.
func (d *DocumentContext) Depth() int {
	depth := 0
	for n := d.parent; n != nil; n = n.parent {
		depth++
	}
	return depth
}

// Title returns the resolved title, possibly empty.
func (d *DocumentContext) Title() string {
	return d.title
}

// HasExplicitTitle reports whether the title was configured rather than
// derived.
func (d *DocumentContext) HasExplicitTitle() bool {
	return d.explicit
}

// SetTitle overrides the resolved title. Providers use it to derive titles
// from content.
func (d *DocumentContext) SetTitle(title string) {
	d.title = title
}

// File returns the output file of a root document.
func (d *DocumentContext) File() (File, bool) {
	return d.file, d.root
}

// Sections returns the raw "sections" entries of this node.
func (d *DocumentContext) Sections() ([]any, error) {
	return d.data.List("sections")
}

// Children returns the child nodes in document order.
func (d *DocumentContext) Children() []*DocumentContext {
	out := make([]*DocumentContext, len(d.children))
	copy(out, d.children)
	return out
}

// AddChild appends a node built with d as its parent.
func (d *DocumentContext) AddChild(child *DocumentContext) error {
	if child == nil {
		return fmt.Errorf("%w: nil child", ErrInvalidInput)
	}
	if child.parent != d {
		return fmt.Errorf("%w: %s node was built for a different parent", ErrInvalidInput, child.typ)
	}
	d.children = append(d.children, child)
	return nil
}

// RemoveChild detaches child and its subtree from d.
func (d *DocumentContext) RemoveChild(child *DocumentContext) bool {
	for i, c := range d.children {
		if c == child {
			d.children = append(d.children[:i], d.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Walk visits d and its descendants depth first, in document order.
func (d *DocumentContext) Walk(fn func(*DocumentContext)) {
	fn(d)
	for _, c := range d.children {
		c.Walk(fn)
	}
}
