// Package parser implements the template parser: a recursive-descent,
// error-recovering driver over a source cursor producing an ast.Root.
package parser

import (
	"github.com/kolkov/uvue/ast"
	"github.com/kolkov/uvue/diag"
)

// TextMode governs what the parser recognizes in character data:
// tags and interpolations (DATA), entities without tags (RCDATA),
// nothing (RAWTEXT), CDATA terminators (CDATA), or attribute-value
// entity rules (AttributeValue).
type TextMode int

// Text modes.
const (
	ModeData TextMode = iota
	ModeRCData
	ModeRawText
	ModeCData
	ModeAttributeValue
)

// Options holds configuration for a parse.
// The zero value (and a nil *Options) means defaults.
type Options struct {
	// Delimiters is the open/close pair for interpolation.
	// Default: {{ and }}.
	Delimiters [2]string

	// KeepEmptyText retains whitespace-only text nodes.
	// By default they are dropped.
	KeepEmptyText bool

	// GetNamespace resolves the namespace of a tag given its parent.
	// Default: always ast.NamespaceHTML.
	GetNamespace func(tag string, parent *ast.Element) ast.Namespace

	// GetTextMode selects the text mode for an element's children.
	// Default: always ModeData.
	GetTextMode func(tag string, ns ast.Namespace) TextMode

	// IsVoidTag reports whether a tag has no children and no end tag.
	// Default: always false.
	IsVoidTag func(tag string) bool

	// NamedCharacterReferences maps entity names (with any trailing ';')
	// to replacement strings. Default: DefaultNamedReferences.
	NamedCharacterReferences map[string]string

	// OnError receives every diagnostic. Default: diag.DefaultSink.
	OnError diag.Sink
}

// DefaultNamedReferences is the minimal built-in entity table.
// Embedders inject the full HTML table. The semicolon-less legacy
// forms resolve too, with a missing-semicolon diagnostic.
var DefaultNamedReferences = map[string]string{
	"gt;":   ">",
	"gt":    ">",
	"lt;":   "<",
	"lt":    "<",
	"amp;":  "&",
	"amp":   "&",
	"apos;": "'",
	"quot;": `"`,
	"quot":  `"`,
}

// normalized returns a copy of o with every unset knob filled in.
func (o *Options) normalized() *Options {
	norm := Options{}
	if o != nil {
		norm = *o
	}
	if norm.Delimiters[0] == "" {
		norm.Delimiters[0] = "{{"
	}
	if norm.Delimiters[1] == "" {
		norm.Delimiters[1] = "}}"
	}
	if norm.GetNamespace == nil {
		norm.GetNamespace = func(string, *ast.Element) ast.Namespace {
			return ast.NamespaceHTML
		}
	}
	if norm.GetTextMode == nil {
		norm.GetTextMode = func(string, ast.Namespace) TextMode {
			return ModeData
		}
	}
	if norm.IsVoidTag == nil {
		norm.IsVoidTag = func(string) bool { return false }
	}
	if norm.NamedCharacterReferences == nil {
		norm.NamedCharacterReferences = DefaultNamedReferences
	}
	if norm.OnError == nil {
		norm.OnError = diag.DefaultSink
	}
	return &norm
}
