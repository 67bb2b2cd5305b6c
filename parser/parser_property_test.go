//go:build property
// +build property

package parser_test

import (
	"testing"

	"github.com/kolkov/uvue/ast"
	"github.com/kolkov/uvue/token"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestParserProperties tests invariant properties of the parser.
func TestParserProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property 1: plain text with no markup parses to a single text
	// node carrying the input verbatim.
	properties.Property("plain text round-trips", prop.ForAll(
		func(s string) bool {
			root, _ := parse(s, nil)
			if len(root.Children) != 1 {
				return false
			}
			text, ok := root.Children[0].(*ast.Text)
			return ok && text.Content == s && text.Loc.Source == s
		},
		gen.RegexMatch(`^[a-z0-9]+( [a-z0-9]+)*$`),
	))

	// Property 2: every node's span slices back to its source, for
	// arbitrary well-formed wrappers around random text.
	properties.Property("span source invariant", prop.ForAll(
		func(body, attr string) bool {
			src := `<div class="` + attr + `"><span>` + body + `</span></div>`
			root, _ := parse(src, nil)
			ok := true
			ast.Walk(root, func(n ast.Node) bool {
				span := n.Span()
				if span.Start.Offset > span.End.Offset ||
					span.End.Offset > len(src) ||
					src[span.Start.Offset:span.End.Offset] != span.Source {
					ok = false
					return false
				}
				return true
			})
			return ok
		},
		gen.RegexMatch(`^[a-z0-9 ]*$`),
		gen.RegexMatch(`^[a-z0-9 -]*$`),
	))

	// Property 3: no element ever holds two adjacent text children.
	properties.Property("no adjacent text siblings", prop.ForAll(
		func(parts []string) bool {
			src := ""
			for i, p := range parts {
				if i%2 == 0 {
					src += p
				} else {
					src += "{{" + p + "}}"
				}
			}
			root, _ := parse(src, nil)
			ok := true
			ast.Walk(root, func(n ast.Node) bool {
				var children []ast.Node
				switch v := n.(type) {
				case *ast.Root:
					children = v.Children
				case *ast.Element:
					children = v.Children
				default:
					return true
				}
				for i := 1; i < len(children); i++ {
					_, a := children[i-1].(*ast.Text)
					_, b := children[i].(*ast.Text)
					if a && b {
						ok = false
					}
				}
				return true
			})
			return ok
		},
		gen.SliceOf(gen.RegexMatch(`^[a-z0-9 ]+$`)),
	))

	// Property 4: position arithmetic is associative: advancing over a
	// concatenation equals advancing over the pieces in order.
	properties.Property("position advance splits", prop.ForAll(
		func(a, b string) bool {
			start := token.Position{Line: 1, Column: 1}
			whole := start.Advance(a+b, len(a)+len(b))
			split := start.Advance(a+b, len(a)).Advance(b, len(b))
			return whole == split
		},
		gen.RegexMatch(`^[a-z\n ]*$`),
		gen.RegexMatch(`^[a-z\n ]*$`),
	))

	properties.TestingRun(t)
}
