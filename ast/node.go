// Package ast defines the abstract syntax tree for template source.
//
// The tree is produced by the parser and is immutable afterwards. Every
// node carries a token.Span whose Source field is the literal substring
// of the original template it was parsed from.
//
// Node hierarchy:
//
//	Node (interface)
//	├── Root - document root
//	├── Element - tags, components, slots, templates
//	│   └── props: Attribute | Directive
//	├── Text - decoded character data
//	├── Interpolation - {{ expression }}
//	├── Comment - <!-- ... -->
//	└── SimpleExpression - raw expression content
package ast

import "github.com/kolkov/uvue/token"

// Namespace identifies the markup namespace of an element.
type Namespace int

// Supported namespaces. The default namespace resolver always returns
// NamespaceHTML; embedders provide SVG/MathML resolution.
const (
	NamespaceHTML Namespace = iota
	NamespaceSVG
	NamespaceMathML
)

// TagType classifies how an element tag compiles.
type TagType int

// Tag classifications.
const (
	// TagElement is a plain platform element.
	TagElement TagType = iota
	// TagComponent is a user component (uppercase or dash in the name).
	TagComponent
	// TagSlot is the <slot> outlet.
	TagSlot
	// TagTemplate is the <template> container.
	TagTemplate
)

// Node is the interface implemented by all AST nodes.
type Node interface {
	// Span returns the source range covered by this node.
	Span() token.Span

	nodeMark() // marker method to prevent external implementations
}

// Base provides the span common to all nodes.
// Embedded in concrete node types.
type Base struct {
	Loc token.Span
}

// Span returns the source range covered by this node.
func (b *Base) Span() token.Span { return b.Loc }

func (b *Base) nodeMark() {}

// Root is the document root produced by a parse.
type Root struct {
	Base
	Children []Node

	// Slots filled by downstream transform passes.
	Imports     []string
	Statements  []string
	Hoists      []Node
	CodegenNode any
}

// Element is a tag with props and children.
type Element struct {
	Base
	NS          Namespace
	Tag         string
	TagType     TagType
	Props       []Node // *Attribute or *Directive
	SelfClosing bool
	Children    []Node
	CodegenNode any
}

// Attribute is a static name/value prop. Value is nil for bare
// attributes.
type Attribute struct {
	Base
	Name  string
	Value *Text
}

// Directive is a v-, :, @ or # prop. Arg and Exp may be nil.
type Directive struct {
	Base
	Name      string
	Arg       *SimpleExpression
	Exp       *SimpleExpression
	Modifiers []string
}

// Text is character data with entities fully decoded.
type Text struct {
	Base
	Content string
	IsEmpty bool
}

// Interpolation is a {{ expression }} region.
type Interpolation struct {
	Base
	Content *SimpleExpression
}

// Comment holds the raw content between <!-- and -->.
type Comment struct {
	Base
	Content string
}

// SimpleExpression is raw expression content. IsStatic marks contents
// that are compile-time constant (static directive arguments).
type SimpleExpression struct {
	Base
	Content  string
	IsStatic bool
}
