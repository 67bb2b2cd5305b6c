package lexer

import (
	"strconv"
	"strings"

	"github.com/kolkov/uvue/diag"
)

// Decoder decodes named and numeric HTML character references.
//
// The named reference table is caller-injected: it maps entity names
// (including any trailing ';') to replacement strings. The longest name
// wins at each '&'.
type Decoder struct {
	table   map[string]string
	maxName int
}

// NewDecoder creates a decoder over the given named reference table.
func NewDecoder(table map[string]string) *Decoder {
	maxName := 0
	for name := range table {
		if len(name) > maxName {
			maxName = len(name)
		}
	}
	return &Decoder{table: table, maxName: maxName}
}

// win1252 remaps C1 control codepoints in numeric character references
// per the HTML spec.
var win1252 = map[rune]rune{
	0x80: 0x20AC, 0x82: 0x201A, 0x83: 0x0192, 0x84: 0x201E,
	0x85: 0x2026, 0x86: 0x2020, 0x87: 0x2021, 0x88: 0x02C6,
	0x89: 0x2030, 0x8A: 0x0160, 0x8B: 0x2039, 0x8C: 0x0152,
	0x8E: 0x017D, 0x91: 0x2018, 0x92: 0x2019, 0x93: 0x201C,
	0x94: 0x201D, 0x95: 0x2022, 0x96: 0x2013, 0x97: 0x2014,
	0x98: 0x02DC, 0x99: 0x2122, 0x9A: 0x0161, 0x9B: 0x203A,
	0x9C: 0x0153, 0x9E: 0x017E, 0x9F: 0x0178,
}

func isEntityStart(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isLegacyNext(b byte) bool {
	return b == '=' || b >= '0' && b <= '9' ||
		b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

// Decode consumes length bytes from the cursor and returns the text with
// all character references decoded. asAttr enables the legacy rule that
// keeps a semicolon-less named reference literal when followed by
// [=A-Za-z0-9] inside an attribute value. Diagnostics are reported through
// emit with an offset relative to the current cursor position.
func (d *Decoder) Decode(c *Cursor, length int, asAttr bool, emit func(code diag.Code, offset int)) string {
	rawText := c.Source()[:length]
	if !strings.Contains(rawText, "&") {
		c.Advance(length)
		return rawText
	}

	var b strings.Builder
	end := c.Pos().Offset + length
	for c.Pos().Offset < end {
		src := c.Source()
		bound := end - c.Pos().Offset
		i := strings.IndexByte(src[:bound], '&')
		if i == -1 {
			b.WriteString(src[:bound])
			c.Advance(bound)
			break
		}
		b.WriteString(src[:i])
		c.Advance(i)
		src = c.Source()[:bound-i]

		if len(src) > 1 && src[1] == '#' {
			d.decodeNumeric(c, src, &b, emit)
		} else if len(src) > 1 && isEntityStart(src[1]) {
			d.decodeNamed(c, src, asAttr, &b, emit)
		} else {
			// Lone '&'; keep it literal.
			b.WriteByte('&')
			c.Advance(1)
		}
	}
	return b.String()
}

func (d *Decoder) decodeNamed(c *Cursor, src string, asAttr bool, b *strings.Builder, emit func(diag.Code, int)) {
	var name, value string
	maxLen := d.maxName
	if maxLen > len(src)-1 {
		maxLen = len(src) - 1
	}
	for l := maxLen; value == "" && l > 0; l-- {
		name = src[1 : 1+l]
		value = d.table[name]
	}
	if value == "" {
		emit(diag.UNKNOWN_NAMED_CHARACTER_REFERENCE, 0)
		b.WriteByte('&')
		b.WriteString(name)
		c.Advance(1 + len(name))
		return
	}
	semi := strings.HasSuffix(name, ";")
	if asAttr && !semi && 1+len(name) < len(src) && isLegacyNext(src[1+len(name)]) {
		// Legacy attribute rule: &name stays literal when followed by
		// an alphanumeric or '='.
		b.WriteByte('&')
		b.WriteString(name)
		c.Advance(1 + len(name))
		return
	}
	b.WriteString(value)
	c.Advance(1 + len(name))
	if !semi {
		emit(diag.MISSING_SEMICOLON_AFTER_CHARACTER_REFERENCE, 0)
	}
}

func (d *Decoder) decodeNumeric(c *Cursor, src string, b *strings.Builder, emit func(diag.Code, int)) {
	hex := len(src) > 2 && (src[2] == 'x' || src[2] == 'X')
	headLen := 2
	if hex {
		headLen = 3
	}
	digits := 0
	for headLen+digits < len(src) && isDigit(src[headLen+digits], hex) {
		digits++
	}
	if digits == 0 {
		emit(diag.ABSENCE_OF_DIGITS_IN_NUMERIC_CHARACTER_REFERENCE, 0)
		b.WriteString(src[:headLen])
		c.Advance(headLen)
		return
	}

	base := 10
	if hex {
		base = 16
	}
	cp, err := strconv.ParseInt(src[headLen:headLen+digits], base, 64)
	if err != nil {
		// Overflow; treat as out of range.
		cp = 0x110000
	}

	switch {
	case cp == 0:
		emit(diag.NULL_CHARACTER_REFERENCE, 0)
		cp = 0xFFFD
	case cp > 0x10FFFF:
		emit(diag.CHARACTER_REFERENCE_OUTSIDE_UNICODE_RANGE, 0)
		cp = 0xFFFD
	case cp >= 0xD800 && cp <= 0xDFFF:
		emit(diag.SURROGATE_CHARACTER_REFERENCE, 0)
		cp = 0xFFFD
	case cp >= 0xFDD0 && cp <= 0xFDEF || cp&0xFFFE == 0xFFFE:
		// Noncharacter; no substitution.
		emit(diag.NONCHARACTER_CHARACTER_REFERENCE, 0)
	case cp >= 0x01 && cp <= 0x08 || cp == 0x0B ||
		cp >= 0x0D && cp <= 0x1F || cp >= 0x7F && cp <= 0x9F:
		emit(diag.CONTROL_CHARACTER_REFERENCE, 0)
		if remapped, ok := win1252[rune(cp)]; ok {
			cp = int64(remapped)
		}
	}
	b.WriteRune(rune(cp))

	consumed := headLen + digits
	semi := consumed < len(src) && src[consumed] == ';'
	if semi {
		consumed++
	}
	c.Advance(consumed)
	if !semi {
		emit(diag.MISSING_SEMICOLON_AFTER_CHARACTER_REFERENCE, 0)
	}
}

func isDigit(b byte, hex bool) bool {
	if b >= '0' && b <= '9' {
		return true
	}
	if !hex {
		return false
	}
	return b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'
}
