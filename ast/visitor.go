package ast

// Visitor defines the generic visitor pattern for AST traversal.
// Type parameter T is the return type of visit methods.
type Visitor[T any] interface {
	VisitRoot(*Root) T
	VisitElement(*Element) T
	VisitAttribute(*Attribute) T
	VisitDirective(*Directive) T
	VisitText(*Text) T
	VisitInterpolation(*Interpolation) T
	VisitComment(*Comment) T
	VisitSimpleExpression(*SimpleExpression) T
}

// Accept dispatches node to the matching visit method.
func Accept[T any](v Visitor[T], node Node) T {
	switch n := node.(type) {
	case *Root:
		return v.VisitRoot(n)
	case *Element:
		return v.VisitElement(n)
	case *Attribute:
		return v.VisitAttribute(n)
	case *Directive:
		return v.VisitDirective(n)
	case *Text:
		return v.VisitText(n)
	case *Interpolation:
		return v.VisitInterpolation(n)
	case *Comment:
		return v.VisitComment(n)
	case *SimpleExpression:
		return v.VisitSimpleExpression(n)
	default:
		var zero T
		return zero
	}
}

// Walk traverses the tree in depth-first order.
// For each node, it calls fn(node). If fn returns false,
// the children of that node are not visited.
//
// Example: Count all interpolations
//
//	count := 0
//	ast.Walk(root, func(n ast.Node) bool {
//	    if _, ok := n.(*ast.Interpolation); ok {
//	        count++
//	    }
//	    return true // continue traversal
//	})
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *Root:
		for _, c := range n.Children {
			Walk(c, fn)
		}
	case *Element:
		for _, p := range n.Props {
			Walk(p, fn)
		}
		for _, c := range n.Children {
			Walk(c, fn)
		}
	case *Attribute:
		if n.Value != nil {
			Walk(n.Value, fn)
		}
	case *Directive:
		if n.Arg != nil {
			Walk(n.Arg, fn)
		}
		if n.Exp != nil {
			Walk(n.Exp, fn)
		}
	case *Interpolation:
		if n.Content != nil {
			Walk(n.Content, fn)
		}
	case *Text, *Comment, *SimpleExpression:
		// no children
	}
}

// Inspect traverses the tree with parent tracking.
// For each node, it calls fn(node, parent). The parent is nil for the
// root node. If fn returns false, the children of that node are not
// visited.
//
// Example: Find directive arguments
//
//	ast.Inspect(root, func(n, parent ast.Node) bool {
//	    if exp, ok := n.(*ast.SimpleExpression); ok {
//	        if _, inDir := parent.(*ast.Directive); inDir {
//	            fmt.Println("directive expression:", exp.Content)
//	        }
//	    }
//	    return true
//	})
func Inspect(node Node, fn func(node, parent Node) bool) {
	inspect(node, nil, fn)
}

func inspect(node, parent Node, fn func(node, parent Node) bool) {
	if node == nil || !fn(node, parent) {
		return
	}
	switch n := node.(type) {
	case *Root:
		for _, c := range n.Children {
			inspect(c, n, fn)
		}
	case *Element:
		for _, p := range n.Props {
			inspect(p, n, fn)
		}
		for _, c := range n.Children {
			inspect(c, n, fn)
		}
	case *Attribute:
		if n.Value != nil {
			inspect(n.Value, n, fn)
		}
	case *Directive:
		if n.Arg != nil {
			inspect(n.Arg, n, fn)
		}
		if n.Exp != nil {
			inspect(n.Exp, n, fn)
		}
	case *Interpolation:
		if n.Content != nil {
			inspect(n.Content, n, fn)
		}
	case *Text, *Comment, *SimpleExpression:
		// no children
	}
}
