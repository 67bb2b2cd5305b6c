package parser

import (
	"strings"

	"github.com/kolkov/uvue/ast"
	"github.com/kolkov/uvue/diag"
	"github.com/kolkov/uvue/internal/lexer"
	"github.com/kolkov/uvue/token"
)

type tagKind int

const (
	tagStart tagKind = iota
	tagEnd
)

type parser struct {
	opts  *Options
	cur   *lexer.Cursor
	dec   *lexer.Decoder
	stack []*ast.Element
}

// Parse parses a template into an AST. It never fails: problems are
// reported through opts.OnError and parsing recovers locally.
func Parse(source string, opts *Options) *ast.Root {
	p := &parser{
		opts: opts.normalized(),
	}
	p.cur = lexer.NewCursor(source)
	p.dec = lexer.NewDecoder(p.opts.NamedCharacterReferences)

	start := p.cur.Pos()
	children := p.parseChildren(ModeData)
	return &ast.Root{
		Base:       ast.Base{Loc: p.cur.SpanFrom(start)},
		Children:   children,
		Imports:    []string{},
		Statements: []string{},
	}
}

func (p *parser) emitError(code diag.Code, offset int) {
	pos := p.cur.Pos()
	pos.Offset += offset
	pos.Column += offset
	p.opts.OnError(&diag.Diagnostic{
		Code: code,
		Span: token.Span{Start: pos, End: pos},
	})
}

func (p *parser) parent() *ast.Element {
	if len(p.stack) == 0 {
		return nil
	}
	return p.stack[len(p.stack)-1]
}

func (p *parser) parseChildren(mode TextMode) []ast.Node {
	ns := ast.NamespaceHTML
	if parent := p.parent(); parent != nil {
		ns = parent.NS
	}

	var nodes []ast.Node
	for !p.isEnd(mode) {
		s := p.cur.Source()
		var node ast.Node
		var group []ast.Node

		if p.cur.StartsWith(p.opts.Delimiters[0]) {
			node = p.parseInterpolation(mode)
		} else if mode == ModeData && s[0] == '<' {
			if len(s) == 1 {
				p.emitError(diag.EOF_BEFORE_TAG_NAME, 1)
			} else if s[1] == '!' {
				switch {
				case strings.HasPrefix(s, "<!--"):
					node = p.parseComment()
				case strings.HasPrefix(s, "<!DOCTYPE"):
					// DOCTYPE is preserved as a bogus comment.
					node = p.parseBogusComment()
				case strings.HasPrefix(s, "<![CDATA["):
					if ns != ast.NamespaceHTML {
						group = p.parseCDATA()
					} else {
						p.emitError(diag.CDATA_IN_HTML_CONTENT, 0)
						node = p.parseBogusComment()
					}
				default:
					p.emitError(diag.INCORRECTLY_OPENED_COMMENT, 0)
					node = p.parseBogusComment()
				}
			} else if s[1] == '/' {
				switch {
				case len(s) == 2:
					p.emitError(diag.EOF_BEFORE_TAG_NAME, 2)
				case s[2] == '>':
					p.emitError(diag.MISSING_END_TAG_NAME, 2)
					p.cur.Advance(3)
					continue
				case isASCIILetter(s[2]):
					p.emitError(diag.X_INVALID_END_TAG, 0)
					p.parseTag(tagEnd)
					continue
				default:
					p.emitError(diag.INVALID_FIRST_CHARACTER_OF_TAG_NAME, 2)
					node = p.parseBogusComment()
				}
			} else if isASCIILetter(s[1]) {
				node = p.parseElement()
			} else if s[1] == '?' {
				p.emitError(diag.UNEXPECTED_QUESTION_MARK_INSTEAD_OF_TAG_NAME, 1)
				node = p.parseBogusComment()
			} else {
				p.emitError(diag.INVALID_FIRST_CHARACTER_OF_TAG_NAME, 1)
			}
		}

		if group != nil {
			for _, n := range group {
				nodes = p.pushNode(nodes, n)
			}
			continue
		}
		if node == nil {
			node = p.parseText(mode)
		}
		nodes = p.pushNode(nodes, node)
	}
	return nodes
}

// pushNode appends a node, dropping whitespace-only text and merging a
// text node into a directly adjacent previous text sibling.
func (p *parser) pushNode(nodes []ast.Node, node ast.Node) []ast.Node {
	text, ok := node.(*ast.Text)
	if !ok {
		return append(nodes, node)
	}
	if !p.opts.KeepEmptyText && text.IsEmpty {
		return nodes
	}
	if len(nodes) > 0 {
		if prev, ok := nodes[len(nodes)-1].(*ast.Text); ok &&
			prev.Loc.End.Offset == text.Loc.Start.Offset {
			prev.Content += text.Content
			prev.IsEmpty = strings.TrimSpace(prev.Content) == ""
			prev.Loc = p.cur.Span(prev.Loc.Start, text.Loc.End)
			return nodes
		}
	}
	return append(nodes, node)
}

func (p *parser) isEnd(mode TextMode) bool {
	s := p.cur.Source()
	switch mode {
	case ModeData:
		if strings.HasPrefix(s, "</") {
			for i := len(p.stack) - 1; i >= 0; i-- {
				if startsWithEndTagOpen(s, p.stack[i].Tag) {
					return true
				}
			}
		}
	case ModeRCData, ModeRawText:
		if parent := p.parent(); parent != nil &&
			startsWithEndTagOpen(s, parent.Tag) {
			return true
		}
	case ModeCData:
		if strings.HasPrefix(s, "]]>") {
			return true
		}
	}
	return len(s) == 0
}

// startsWithEndTagOpen reports whether source begins with the end tag of
// tag: "</", a case-insensitive match of the name, then whitespace, '/'
// or '>' (EOS counts as '>').
func startsWithEndTagOpen(source, tag string) bool {
	if !strings.HasPrefix(source, "</") {
		return false
	}
	if len(source) < 2+len(tag) ||
		!strings.EqualFold(source[2:2+len(tag)], tag) {
		return false
	}
	if len(source) == 2+len(tag) {
		return true
	}
	switch source[2+len(tag)] {
	case '\t', '\r', '\n', '\f', ' ', '/', '>':
		return true
	}
	return false
}

func (p *parser) parseElement() *ast.Element {
	element := p.parseTag(tagStart)
	if element.SelfClosing || p.opts.IsVoidTag(element.Tag) {
		return element
	}

	p.stack = append(p.stack, element)
	mode := p.opts.GetTextMode(element.Tag, element.NS)
	children := p.parseChildren(mode)
	p.stack = p.stack[:len(p.stack)-1]
	element.Children = children

	if startsWithEndTagOpen(p.cur.Source(), element.Tag) {
		p.parseTag(tagEnd)
	} else {
		p.emitError(diag.X_MISSING_END_TAG, 0)
		if p.cur.EOF() && strings.EqualFold(element.Tag, "script") {
			if len(children) > 0 &&
				strings.HasPrefix(children[0].Span().Source, "<!--") {
				p.emitError(diag.EOF_IN_SCRIPT_HTML_COMMENT_LIKE_TEXT, 0)
			}
		}
	}

	element.Loc = p.cur.SpanFrom(element.Loc.Start)
	return element
}

func (p *parser) parseTag(kind tagKind) *ast.Element {
	start := p.cur.Pos()
	m := tagOpenPattern.FindStringSubmatch(p.cur.Source())
	tag := m[1]
	ns := p.opts.GetNamespace(tag, p.parent())

	tagType := ast.TagElement
	switch {
	case tag == "slot":
		tagType = ast.TagSlot
	case tag == "template":
		tagType = ast.TagTemplate
	case componentNamePattern.MatchString(tag):
		tagType = ast.TagComponent
	}

	p.cur.Advance(len(m[0]))
	p.cur.SkipWhitespace()

	// Attributes.
	var props []ast.Node
	seen := make(map[string]bool)
	for p.cur.Len() > 0 && !p.cur.StartsWith(">") && !p.cur.StartsWith("/>") {
		if p.cur.StartsWith("/") {
			p.emitError(diag.UNEXPECTED_SOLIDUS_IN_TAG, 0)
			p.cur.Advance(1)
			p.cur.SkipWhitespace()
			continue
		}
		if kind == tagEnd {
			p.emitError(diag.END_TAG_WITH_ATTRIBUTES, 0)
		}
		attr := p.parseAttribute(seen)
		if kind == tagStart {
			props = append(props, attr)
		}
		if c := p.cur.PeekAt(0); c != 0 && !isTagSpace(c) && c != '/' && c != '>' {
			p.emitError(diag.MISSING_WHITESPACE_BETWEEN_ATTRIBUTES, 0)
		}
		p.cur.SkipWhitespace()
	}

	selfClosing := false
	if p.cur.EOF() {
		p.emitError(diag.EOF_IN_TAG, 0)
	} else {
		selfClosing = p.cur.StartsWith("/>")
		if kind == tagEnd && selfClosing {
			p.emitError(diag.END_TAG_WITH_TRAILING_SOLIDUS, 0)
		}
		if selfClosing {
			p.cur.Advance(2)
		} else {
			p.cur.Advance(1)
		}
	}

	return &ast.Element{
		Base:        ast.Base{Loc: p.cur.SpanFrom(start)},
		NS:          ns,
		Tag:         tag,
		TagType:     tagType,
		Props:       props,
		SelfClosing: selfClosing,
	}
}

// attrValue is the raw result of parse_attribute_value.
type attrValue struct {
	content string
	quoted  bool
	loc     token.Span
}

func (p *parser) parseAttribute(seen map[string]bool) ast.Node {
	start := p.cur.Pos()
	name := attrNamePattern.FindString(p.cur.Source())

	if seen[name] {
		p.emitError(diag.DUPLICATE_ATTRIBUTE, 0)
	}
	seen[name] = true

	if name[0] == '=' {
		p.emitError(diag.UNEXPECTED_EQUALS_SIGN_BEFORE_ATTRIBUTE_NAME, 0)
	}
	for _, loc := range badAttrNameChar.FindAllStringIndex(name, -1) {
		p.emitError(diag.UNEXPECTED_CHARACTER_IN_ATTRIBUTE_NAME, loc[0])
	}
	p.cur.Advance(len(name))

	var value *attrValue
	if p.peekPastSpacesIsEquals() {
		p.cur.SkipWhitespace()
		p.cur.Advance(1)
		p.cur.SkipWhitespace()
		value = p.parseAttributeValue()
		if value == nil {
			p.emitError(diag.MISSING_ATTRIBUTE_VALUE, 0)
		}
	}
	loc := p.cur.SpanFrom(start)

	if directiveNamePattern.MatchString(name) {
		return p.buildDirective(name, value, start, loc)
	}

	attr := &ast.Attribute{
		Base: ast.Base{Loc: loc},
		Name: name,
	}
	if value != nil {
		attr.Value = &ast.Text{
			Base:    ast.Base{Loc: value.loc},
			Content: value.content,
			IsEmpty: strings.TrimSpace(value.content) == "",
		}
	}
	return attr
}

// buildDirective turns a v-, :, @ or # prop into a Directive node.
func (p *parser) buildDirective(name string, value *attrValue, start token.Position, loc token.Span) *ast.Directive {
	m := directivePattern.FindStringSubmatch(name)

	dirName := m[1]
	if dirName == "" {
		switch name[0] {
		case ':':
			dirName = "bind"
		case '@':
			dirName = "on"
		default:
			dirName = "slot"
		}
	}
	dirName = strings.ToLower(dirName)

	var arg *ast.SimpleExpression
	if m[2] != "" {
		rawArg := m[2]
		startOffset := strings.Index(name, rawArg)
		argStart := start.Advance(p.cur.Original()[start.Offset:], startOffset)
		argEnd := start.Advance(p.cur.Original()[start.Offset:], startOffset+len(rawArg))

		content := rawArg
		isStatic := true
		if strings.HasPrefix(content, "[") {
			isStatic = false
			if strings.HasSuffix(content, "]") {
				content = content[1 : len(content)-1]
			} else {
				p.emitError(diag.X_MISSING_DYNAMIC_DIRECTIVE_ARGUMENT_END, 0)
				content = content[1:]
			}
		}
		arg = &ast.SimpleExpression{
			Base:     ast.Base{Loc: p.cur.Span(argStart, argEnd)},
			Content:  content,
			IsStatic: isStatic,
		}
	}

	var exp *ast.SimpleExpression
	if value != nil {
		vloc := value.loc
		if value.quoted {
			// Point the expression at the quoted content only; an
			// unterminated value has no closing quote to trim.
			inner := vloc.Source[1:]
			if n := len(inner); n > 0 && inner[n-1] == vloc.Source[0] {
				inner = inner[:n-1]
			}
			vloc.Start.Offset++
			vloc.Start.Column++
			vloc.End = vloc.Start.Advance(inner, len(inner))
			vloc.Source = inner
		}
		exp = &ast.SimpleExpression{
			Base:     ast.Base{Loc: vloc},
			Content:  value.content,
			IsStatic: false,
		}
	}

	var modifiers []string
	if m[3] != "" {
		modifiers = strings.Split(m[3][1:], ".")
	}

	return &ast.Directive{
		Base:      ast.Base{Loc: loc},
		Name:      dirName,
		Arg:       arg,
		Exp:       exp,
		Modifiers: modifiers,
	}
}

// peekPastSpacesIsEquals reports whether the remaining source matches
// optional whitespace followed by '='.
func (p *parser) peekPastSpacesIsEquals() bool {
	i := 0
	for {
		switch p.cur.PeekAt(i) {
		case '\t', '\r', '\n', '\f', ' ':
			i++
		case '=':
			return true
		default:
			return false
		}
	}
}

func (p *parser) parseAttributeValue() *attrValue {
	start := p.cur.Pos()
	quote := p.cur.PeekAt(0)

	if quote == '"' || quote == '\'' {
		p.cur.Advance(1)
		var content string
		endIndex := strings.IndexByte(p.cur.Source(), quote)
		if endIndex == -1 {
			// Unterminated; tolerate and take the remainder.
			content = p.parseTextData(p.cur.Len(), ModeAttributeValue)
		} else {
			content = p.parseTextData(endIndex, ModeAttributeValue)
			p.cur.Advance(1)
		}
		return &attrValue{content: content, quoted: true, loc: p.cur.SpanFrom(start)}
	}

	raw := unquotedValuePattern.FindString(p.cur.Source())
	if raw == "" {
		return nil
	}
	for _, loc := range badUnquotedValueChar.FindAllStringIndex(raw, -1) {
		p.emitError(diag.UNEXPECTED_CHARACTER_IN_UNQUOTED_ATTRIBUTE_VALUE, loc[0])
	}
	content := p.parseTextData(len(raw), ModeAttributeValue)
	return &attrValue{content: content, quoted: false, loc: p.cur.SpanFrom(start)}
}

func (p *parser) parseInterpolation(mode TextMode) ast.Node {
	open, close := p.opts.Delimiters[0], p.opts.Delimiters[1]
	closeIndex := strings.Index(p.cur.Source()[len(open):], close)
	if closeIndex == -1 {
		p.emitError(diag.X_MISSING_INTERPOLATION_END, 0)
		return nil
	}
	closeIndex += len(open)

	start := p.cur.Pos()
	p.cur.Advance(len(open))
	innerBase := p.cur.Pos()

	rawContentLength := closeIndex - len(open)
	rawContent := p.cur.Source()[:rawContentLength]
	preTrim := p.parseTextData(rawContentLength, mode)
	content := strings.TrimSpace(preTrim)

	startOffset := strings.Index(preTrim, content)
	innerStart := innerBase
	if startOffset > 0 {
		innerStart = innerBase.Advance(rawContent, startOffset)
	}
	endOffset := rawContentLength - (len(preTrim) - len(content) - startOffset)
	innerEnd := innerBase.Advance(rawContent, endOffset)

	p.cur.Advance(len(close))

	return &ast.Interpolation{
		Base: ast.Base{Loc: p.cur.SpanFrom(start)},
		Content: &ast.SimpleExpression{
			Base:     ast.Base{Loc: p.cur.Span(innerStart, innerEnd)},
			Content:  content,
			IsStatic: false,
		},
	}
}

func (p *parser) parseComment() *ast.Comment {
	start := p.cur.Pos()
	src := p.cur.Source()
	var content string

	m := commentEndPattern.FindStringSubmatchIndex(src)
	if m == nil {
		content = src[4:]
		p.cur.Advance(len(src))
		p.emitError(diag.EOF_IN_COMMENT, 0)
	} else {
		if m[0] <= 3 {
			p.emitError(diag.ABRUPT_CLOSING_OF_EMPTY_COMMENT, 0)
		}
		if m[2] != -1 {
			p.emitError(diag.INCORRECTLY_CLOSED_COMMENT, 0)
		}
		if m[0] > 4 {
			content = src[4:m[0]]
		}

		// Flag comment openers nested inside the comment body.
		s := src[:m[0]]
		prevIndex := 1
		for {
			nested := strings.Index(s[prevIndex:], "<!--")
			if nested == -1 {
				break
			}
			nested += prevIndex
			p.cur.Advance(nested - prevIndex + 1)
			if nested+4 < len(s) {
				p.emitError(diag.NESTED_COMMENT, 0)
			}
			prevIndex = nested + 1
		}
		p.cur.Advance(m[1] - prevIndex + 1)
	}

	return &ast.Comment{
		Base:    ast.Base{Loc: p.cur.SpanFrom(start)},
		Content: content,
	}
}

// parseBogusComment consumes "<!..." or "<?..." through '>' and keeps
// the content as a comment node.
func (p *parser) parseBogusComment() *ast.Comment {
	start := p.cur.Pos()
	src := p.cur.Source()
	contentStart := 2
	if src[1] == '?' {
		contentStart = 1
	}

	var content string
	closeIndex := strings.IndexByte(src, '>')
	if closeIndex == -1 {
		content = src[contentStart:]
		p.cur.Advance(len(src))
	} else {
		content = src[contentStart:closeIndex]
		p.cur.Advance(closeIndex + 1)
	}

	return &ast.Comment{
		Base:    ast.Base{Loc: p.cur.SpanFrom(start)},
		Content: content,
	}
}

func (p *parser) parseCDATA() []ast.Node {
	p.cur.Advance(len("<![CDATA["))
	nodes := p.parseChildren(ModeCData)
	if p.cur.EOF() {
		p.emitError(diag.EOF_IN_CDATA, 0)
	} else {
		p.cur.Advance(len("]]>"))
	}
	return nodes
}

func (p *parser) parseText(mode TextMode) *ast.Text {
	endTokens := []string{"<", p.opts.Delimiters[0]}
	if mode == ModeCData {
		endTokens = append(endTokens, "]]>")
	}

	src := p.cur.Source()
	endIndex := len(src)
	for _, tok := range endTokens {
		// Skip index 0 so a leading boundary char is consumed as text.
		if index := strings.Index(src[1:], tok); index != -1 && index+1 < endIndex {
			endIndex = index + 1
		}
	}

	start := p.cur.Pos()
	content := p.parseTextData(endIndex, mode)
	return &ast.Text{
		Base:    ast.Base{Loc: p.cur.SpanFrom(start)},
		Content: content,
		IsEmpty: strings.TrimSpace(content) == "",
	}
}

// parseTextData consumes length bytes, decoding character references in
// DATA, RCDATA and attribute-value modes.
func (p *parser) parseTextData(length int, mode TextMode) string {
	if mode == ModeRawText || mode == ModeCData {
		raw := p.cur.Source()[:length]
		p.cur.Advance(length)
		return raw
	}
	return p.dec.Decode(p.cur, length, mode == ModeAttributeValue, p.emitError)
}

func isASCIILetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func isTagSpace(b byte) bool {
	switch b {
	case '\t', '\r', '\n', '\f', ' ':
		return true
	}
	return false
}
