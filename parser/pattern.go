package parser

import "github.com/coregx/coregex"

// Compiled once at package level, the way the AWK runtime compiles its
// field and record patterns.
var (
	// tagOpenPattern matches "<tag" or "</tag"; tag names start with an
	// ASCII letter and run until whitespace, '/' or '>'.
	tagOpenPattern = coregex.MustCompile(`(?i)^</?([a-z][^\t\r\n\f />]*)`)

	// componentNamePattern: any uppercase letter or '-' marks a
	// component tag.
	componentNamePattern = coregex.MustCompile(`[A-Z-]`)

	// attrNamePattern matches an attribute name.
	attrNamePattern = coregex.MustCompile(`^[^\t\r\n\f />][^\t\r\n\f />=]*`)

	// badAttrNameChar flags characters that are illegal inside an
	// attribute name.
	badAttrNameChar = coregex.MustCompile(`["'<]`)

	// unquotedValuePattern matches an unquoted attribute value.
	unquotedValuePattern = coregex.MustCompile(`^[^\t\r\n\f >]+`)

	// badUnquotedValueChar flags characters that are illegal inside an
	// unquoted attribute value.
	badUnquotedValueChar = coregex.MustCompile("[\"'<=`]")

	// directiveNamePattern recognizes props that parse as directives.
	directiveNamePattern = coregex.MustCompile(`^(v-|:|@|#)`)

	// directivePattern decomposes a directive prop name into directive
	// name, argument and dotted modifiers.
	directivePattern = coregex.MustCompile(`(?i)(?:^v-([a-z0-9-]+))?(?:(?::|^@|^#)([^.]+))?(.+)?$`)

	// commentEndPattern finds a comment close, legal or incorrectly
	// closed with "--!>".
	commentEndPattern = coregex.MustCompile(`--(!)?>`)
)
