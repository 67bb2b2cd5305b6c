package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer provides pretty-printing for AST nodes.
// It outputs a human-readable representation suitable for debugging.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes a pretty-printed representation of the node to the writer.
func (p *Printer) Print(node Node) error {
	p.printNode(node)
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) printNode(node Node) {
	if node == nil {
		return
	}
	pad := strings.Repeat("  ", p.indent)
	switch n := node.(type) {
	case *Root:
		p.printf("%sRoot %s\n", pad, n.Loc)
		p.printChildren(n.Children)
	case *Element:
		self := ""
		if n.SelfClosing {
			self = " self-closing"
		}
		p.printf("%sElement <%s> %s%s %s\n", pad, n.Tag, tagTypeName(n.TagType), self, n.Loc)
		p.indent++
		for _, prop := range n.Props {
			p.printNode(prop)
		}
		p.indent--
		p.printChildren(n.Children)
	case *Attribute:
		if n.Value != nil {
			p.printf("%sAttribute %s=%q %s\n", pad, n.Name, n.Value.Content, n.Loc)
		} else {
			p.printf("%sAttribute %s %s\n", pad, n.Name, n.Loc)
		}
	case *Directive:
		p.printf("%sDirective v-%s", pad, n.Name)
		if n.Arg != nil {
			p.printf(":%s", n.Arg.Content)
		}
		if len(n.Modifiers) > 0 {
			p.printf(".%s", strings.Join(n.Modifiers, "."))
		}
		if n.Exp != nil {
			p.printf("=%q", n.Exp.Content)
		}
		p.printf(" %s\n", n.Loc)
	case *Text:
		p.printf("%sText %q %s\n", pad, n.Content, n.Loc)
	case *Interpolation:
		p.printf("%sInterpolation {{%s}} %s\n", pad, n.Content.Content, n.Loc)
	case *Comment:
		p.printf("%sComment %q %s\n", pad, n.Content, n.Loc)
	case *SimpleExpression:
		p.printf("%sExpression %q static=%v %s\n", pad, n.Content, n.IsStatic, n.Loc)
	}
}

func (p *Printer) printChildren(children []Node) {
	p.indent++
	for _, c := range children {
		p.printNode(c)
	}
	p.indent--
}

func tagTypeName(t TagType) string {
	switch t {
	case TagComponent:
		return "component"
	case TagSlot:
		return "slot"
	case TagTemplate:
		return "template"
	default:
		return "element"
	}
}
