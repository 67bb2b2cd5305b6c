// Package uvue provides the core of a front-end template toolkit:
// an error-recovering parser for an HTML-superset template language and
// a dependency-tracking reactivity engine.
//
// # Parsing
//
// Parse consumes a template and produces an annotated syntax tree with
// precise source locations. It never fails hard; diagnostics are routed
// through the options sink and parsing recovers locally:
//
//	root := uvue.Parse(`<div id="app">{{ msg }}</div>`, nil)
//
// With options:
//
//	var diags diag.List
//	root := uvue.Parse(src, &parser.Options{
//	    Delimiters: [2]string{"[[", "]]"},
//	    OnError:    diags.Sink(),
//	})
//
// # Reactivity
//
// Observed containers record reads made inside effects and re-run them
// on writes:
//
//	state := reactive.MakeReactive(map[string]any{"count": 0}).(*reactive.Object)
//	reactive.NewEffect(func() {
//	    fmt.Println("count is", state.Get("count"))
//	}, nil)
//	state.Set("count", 1) // effect re-runs
//
// See the parser, ast, diag and reactive packages for the full surface.
package uvue
