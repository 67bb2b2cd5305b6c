// Package lexer provides the character-level machinery under the template
// parser: a mutable cursor over an immutable source buffer and the HTML
// character reference decoder.
package lexer

import (
	"strings"

	"github.com/kolkov/uvue/token"
)

// Cursor tracks a mutable position (offset, line, column) over an
// immutable source buffer. Offsets are byte offsets, columns are rune
// columns. The cursor never moves backwards.
type Cursor struct {
	original string
	pos      token.Position
}

// NewCursor creates a cursor at the start of source.
func NewCursor(source string) *Cursor {
	return &Cursor{
		original: source,
		pos:      token.Position{Offset: 0, Line: 1, Column: 1},
	}
}

// Original returns the full source buffer.
func (c *Cursor) Original() string {
	return c.original
}

// Source returns the remaining unconsumed source.
func (c *Cursor) Source() string {
	return c.original[c.pos.Offset:]
}

// Len returns the number of unconsumed bytes.
func (c *Cursor) Len() int {
	return len(c.original) - c.pos.Offset
}

// EOF returns true when the cursor has consumed the entire buffer.
func (c *Cursor) EOF() bool {
	return c.pos.Offset >= len(c.original)
}

// Pos returns a snapshot of the current position.
func (c *Cursor) Pos() token.Position {
	return c.pos
}

// PeekAt returns the byte at index i of the remaining source, or 0 past
// the end.
func (c *Cursor) PeekAt(i int) byte {
	if c.pos.Offset+i >= len(c.original) {
		return 0
	}
	return c.original[c.pos.Offset+i]
}

// StartsWith reports whether the remaining source begins with s.
func (c *Cursor) StartsWith(s string) bool {
	return strings.HasPrefix(c.Source(), s)
}

// Advance consumes n bytes from the head of the remaining source,
// updating offset, line and column. A "\n" that completes a "\r\n"
// split across two Advance calls is not counted as a second break.
func (c *Cursor) Advance(n int) {
	if n <= 0 {
		return
	}
	if n > c.Len() {
		n = c.Len()
	}
	rest := c.Source()
	if rest[0] == '\n' && c.pos.Offset > 0 && c.original[c.pos.Offset-1] == '\r' {
		c.pos.Offset++
		rest = rest[1:]
		n--
	}
	c.pos = c.pos.Advance(rest, n)
}

// SkipWhitespace consumes a run of HTML whitespace (tab, CR, LF, form
// feed, space) and returns the number of bytes skipped.
func (c *Cursor) SkipWhitespace() int {
	n := 0
	for {
		switch c.PeekAt(n) {
		case '\t', '\r', '\n', '\f', ' ':
			n++
		default:
			c.Advance(n)
			return n
		}
	}
}

// Span returns a span from start to end, carrying the covered substring.
func (c *Cursor) Span(start, end token.Position) token.Span {
	return token.Span{
		Start:  start,
		End:    end,
		Source: c.original[start.Offset:end.Offset],
	}
}

// SpanFrom returns a span from start to the current position.
func (c *Cursor) SpanFrom(start token.Position) token.Span {
	return c.Span(start, c.pos)
}
