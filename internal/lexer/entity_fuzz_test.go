package lexer_test

import (
	"testing"
	"unicode/utf8"

	"github.com/kolkov/uvue/diag"
	"github.com/kolkov/uvue/internal/lexer"
)

// FuzzDecode tests the entity decoder with random inputs: it must
// never panic, must consume exactly the supplied length, and must
// never emit invalid UTF-8 for valid input.
func FuzzDecode(f *testing.F) {
	seeds := []string{
		// Plain text
		"",
		"no entities here",

		// Named references
		"a &amp; b",
		"a &amp b",
		"&amp;lt;&gt;",
		"&zzz;",
		"a & b",
		"&",
		"&a",
		"&gt&gt;&gt",

		// Legacy attribute rule shapes
		"x=1&amp=2",
		"href=?a&ampb",
		"&quot=&quot;",

		// Numeric references
		"&#65;",
		"&#x41;",
		"&#X41;",
		"&#65",
		"&#;",
		"&#",
		"&#x;",
		"&#0;",
		"&#x110000;",
		"&#99999999999999999999;",
		"&#xD800;",
		"&#xFDD0;",
		"&#xFFFE;",

		// Windows-1252 remap range
		"&#128;",
		"&#x80;&#x82;&#x8E;&#x9F;",
		"&#x81;",
		"&#1;",

		// Mixed and adjacent
		"&amp;&#65;&lt;&#x26;",
		"&&&&",
		"&#&#x&amp",
	}
	for _, seed := range seeds {
		f.Add(seed, false)
		f.Add(seed, true)
	}

	f.Fuzz(func(t *testing.T, src string, asAttr bool) {
		c := lexer.NewCursor(src)
		d := lexer.NewDecoder(testRefs)
		out := d.Decode(c, len(src), asAttr, func(diag.Code, int) {})

		if got := c.Pos().Offset; got != len(src) {
			t.Errorf("decoder consumed %d of %d bytes", got, len(src))
		}
		if utf8.ValidString(src) && !utf8.ValidString(out) {
			t.Errorf("Decode(%q) produced invalid UTF-8 %q", src, out)
		}
	})
}
