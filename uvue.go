package uvue

import (
	"github.com/kolkov/uvue/ast"
	"github.com/kolkov/uvue/parser"
)

// Version is the uvue version string.
const Version = "0.1.0"

// Parse parses a template into an AST.
// This is a convenience wrapper over parser.Parse; nil options mean
// defaults. The parser never fails: problems are reported through
// opts.OnError and the tree is always produced.
func Parse(source string, opts *parser.Options) *ast.Root {
	return parser.Parse(source, opts)
}
