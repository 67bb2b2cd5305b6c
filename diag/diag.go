// Package diag defines template parse diagnostics.
//
// The parser never fails hard: every problem is reported as a Diagnostic
// through a caller-supplied Sink and parsing continues with a local
// recovery. Codes mirror the WHATWG HTML parse error set; codes prefixed
// X_ are template-language extensions.
package diag

import (
	"fmt"

	"github.com/kolkov/uvue/internal/warn"
	"github.com/kolkov/uvue/token"
)

// Code identifies a parse error condition.
type Code int

// Parse error codes.
const (
	ABRUPT_CLOSING_OF_EMPTY_COMMENT Code = iota
	ABSENCE_OF_DIGITS_IN_NUMERIC_CHARACTER_REFERENCE
	CDATA_IN_HTML_CONTENT
	CHARACTER_REFERENCE_OUTSIDE_UNICODE_RANGE
	CONTROL_CHARACTER_REFERENCE
	DUPLICATE_ATTRIBUTE
	END_TAG_WITH_ATTRIBUTES
	END_TAG_WITH_TRAILING_SOLIDUS
	EOF_BEFORE_TAG_NAME
	EOF_IN_CDATA
	EOF_IN_COMMENT
	EOF_IN_SCRIPT_HTML_COMMENT_LIKE_TEXT
	EOF_IN_TAG
	INCORRECTLY_CLOSED_COMMENT
	INCORRECTLY_OPENED_COMMENT
	INVALID_FIRST_CHARACTER_OF_TAG_NAME
	MISSING_ATTRIBUTE_VALUE
	MISSING_END_TAG_NAME
	MISSING_SEMICOLON_AFTER_CHARACTER_REFERENCE
	MISSING_WHITESPACE_BETWEEN_ATTRIBUTES
	NESTED_COMMENT
	NONCHARACTER_CHARACTER_REFERENCE
	NULL_CHARACTER_REFERENCE
	SURROGATE_CHARACTER_REFERENCE
	UNEXPECTED_CHARACTER_IN_ATTRIBUTE_NAME
	UNEXPECTED_CHARACTER_IN_UNQUOTED_ATTRIBUTE_VALUE
	UNEXPECTED_EQUALS_SIGN_BEFORE_ATTRIBUTE_NAME
	UNEXPECTED_QUESTION_MARK_INSTEAD_OF_TAG_NAME
	UNEXPECTED_SOLIDUS_IN_TAG
	UNKNOWN_NAMED_CHARACTER_REFERENCE

	X_INVALID_END_TAG
	X_MISSING_END_TAG
	X_MISSING_INTERPOLATION_END
	X_MISSING_DYNAMIC_DIRECTIVE_ARGUMENT_END
)

var messages = map[Code]string{
	ABRUPT_CLOSING_OF_EMPTY_COMMENT:                  "abrupt closing of empty comment",
	ABSENCE_OF_DIGITS_IN_NUMERIC_CHARACTER_REFERENCE: "absence of digits in numeric character reference",
	CDATA_IN_HTML_CONTENT:                            "CDATA section is allowed only in XML context",
	CHARACTER_REFERENCE_OUTSIDE_UNICODE_RANGE:        "character reference outside unicode range",
	CONTROL_CHARACTER_REFERENCE:                      "control character reference",
	DUPLICATE_ATTRIBUTE:                              "duplicate attribute",
	END_TAG_WITH_ATTRIBUTES:                          "end tag cannot have attributes",
	END_TAG_WITH_TRAILING_SOLIDUS:                    "illegal '/' in end tag",
	EOF_BEFORE_TAG_NAME:                              "unexpected EOF before tag name",
	EOF_IN_CDATA:                                     "unexpected EOF in CDATA section",
	EOF_IN_COMMENT:                                   "unexpected EOF in comment",
	EOF_IN_SCRIPT_HTML_COMMENT_LIKE_TEXT:             "unexpected EOF in script",
	EOF_IN_TAG:                                       "unexpected EOF in tag",
	INCORRECTLY_CLOSED_COMMENT:                       "incorrectly closed comment",
	INCORRECTLY_OPENED_COMMENT:                       "incorrectly opened comment",
	INVALID_FIRST_CHARACTER_OF_TAG_NAME:              "illegal tag name; use &lt; to print '<'",
	MISSING_ATTRIBUTE_VALUE:                          "attribute value is expected",
	MISSING_END_TAG_NAME:                             "end tag name is expected",
	MISSING_SEMICOLON_AFTER_CHARACTER_REFERENCE:      "semicolon is expected after character reference",
	MISSING_WHITESPACE_BETWEEN_ATTRIBUTES:            "whitespace is expected between attributes",
	NESTED_COMMENT:                                   "unexpected '<!--' in comment",
	NONCHARACTER_CHARACTER_REFERENCE:                 "noncharacter character reference",
	NULL_CHARACTER_REFERENCE:                         "null character reference",
	SURROGATE_CHARACTER_REFERENCE:                    "surrogate character reference",
	UNEXPECTED_CHARACTER_IN_ATTRIBUTE_NAME:           "unexpected character in attribute name",
	UNEXPECTED_CHARACTER_IN_UNQUOTED_ATTRIBUTE_VALUE: "unexpected character in unquoted attribute value",
	UNEXPECTED_EQUALS_SIGN_BEFORE_ATTRIBUTE_NAME:     "unexpected '=' before attribute name",
	UNEXPECTED_QUESTION_MARK_INSTEAD_OF_TAG_NAME:     "'<?' is allowed only in XML context",
	UNEXPECTED_SOLIDUS_IN_TAG:                        "unexpected '/' in tag",
	UNKNOWN_NAMED_CHARACTER_REFERENCE:                "unknown named character reference",

	X_INVALID_END_TAG:                        "invalid end tag",
	X_MISSING_END_TAG:                        "missing end tag",
	X_MISSING_INTERPOLATION_END:              "interpolation is missing end delimiter",
	X_MISSING_DYNAMIC_DIRECTIVE_ARGUMENT_END: "dynamic directive argument is missing end bracket",
}

// Message returns the human-readable description of the code.
func (c Code) Message() string {
	if msg, ok := messages[c]; ok {
		return msg
	}
	return fmt.Sprintf("parse error (%d)", int(c))
}

// Diagnostic is a parse error with a source span.
// It implements the error interface.
type Diagnostic struct {
	Code Code
	Span token.Span
}

// Error returns a formatted message with position information.
func (d *Diagnostic) Error() string {
	if d.Span.Start.IsValid() {
		return fmt.Sprintf("%s: %s", d.Span.Start, d.Code.Message())
	}
	return d.Code.Message()
}

// Sink receives diagnostics as the parser emits them.
type Sink func(*Diagnostic)

// DefaultSink logs diagnostics as warnings. It is used when the caller
// supplies no sink.
func DefaultSink(d *Diagnostic) {
	warn.Warnf("template parse error: %s", d.Error())
}

// List collects diagnostics for later inspection.
type List []*Diagnostic

// Sink returns a Sink that appends to the list.
func (l *List) Sink() Sink {
	return func(d *Diagnostic) { *l = append(*l, d) }
}

// Error returns a combined error message for all diagnostics.
func (l List) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
	}
}

// Err returns the list as an error if it is non-empty, nil otherwise.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
