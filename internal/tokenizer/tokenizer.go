/*
Copyright 2016 Google Inc. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package tokenizer turns Python source text into the token stream consumed
// by the parser: byte ranges, attached comments, synthetic Indent/Dedent
// tokens and split f-string tokens.
package tokenizer

import (
	"math/big"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/go-pyparser/ast"
)

const tabSize = 8

type indentInfo struct {
	tab1Spaces     int
	tab8Spaces     int
	isSpacePresent bool
	isTabPresent   bool
	// phantom levels come from a dedent that matched no enclosing level.
	phantom bool
}

// lineRestart records the first line inside brackets that starts at or left
// of outerIndent. If the outermost bracket is never closed, lexing resumes
// there as a new logical line.
type lineRestart struct {
	pos      int
	tokens   int
	comments []Comment

	crCount, lfCount, crlfCount int
}

type replacementField struct {
	parenDepth   int
	inFormatSpec bool
}

type fstringContext struct {
	startIndex int // index of the FStringStart token
	flags      ast.StringFlags
	quote      byte
	quoteLen   int
	parenDepth int // paren depth when the f-string started
	fields     []replacementField
}

func (c *fstringContext) inLiteral() bool {
	return len(c.fields) == 0 || c.fields[len(c.fields)-1].inFormatSpec
}

// Output is the result of tokenizing a range of text.
type Output struct {
	Tokens Tokens
	// PredominantEndOfLine is "\n", "\r\n" or "\r".
	PredominantEndOfLine string
}

type tokenizer struct {
	text        string
	pos         int
	end         int
	interactive bool

	tokens     Tokens
	comments   []Comment
	parenDepth int
	indents    []indentInfo
	lineStart  bool
	fstrings   []*fstringContext

	// parenLineStart is set between a newline inside brackets and the next
	// token.
	parenLineStart bool

	// outerIndent is the indentation of the logical line that opened the
	// outermost bracket; trackRestart is set while that bracket is open.
	outerIndent  int
	trackRestart bool
	restart      *lineRestart

	crCount, lfCount, crlfCount int
}

// Tokenize lexes text[start:start+length]. Token offsets are relative to the
// whole of text. initialParenDepth > 0 suppresses NEWLINE and indentation
// tokens, which is how multi-line annotation strings are re-lexed.
func Tokenize(text string, start, length, initialParenDepth int, interactive bool) *Output {
	if start < 0 {
		start = 0
	}
	end := start + length
	if end > len(text) || length < 0 {
		end = len(text)
	}
	t := &tokenizer{
		text:        text,
		pos:         start,
		end:         end,
		interactive: interactive,
		parenDepth:  initialParenDepth,
		lineStart:   true,
	}
	t.run()

	eol := "\n"
	if t.crlfCount > t.lfCount && t.crlfCount >= t.crCount {
		eol = "\r\n"
	} else if t.crCount > t.lfCount && t.crCount > t.crlfCount {
		eol = "\r"
	}
	return &Output{Tokens: t.tokens, PredominantEndOfLine: eol}
}

// TokenizeString is a convenience wrapper for whole-text tokenization.
func TokenizeString(text string) *Output {
	return Tokenize(text, 0, len(text), 0, false)
}

func (t *tokenizer) activeFString() *fstringContext {
	if len(t.fstrings) == 0 {
		return nil
	}
	return t.fstrings[len(t.fstrings)-1]
}

func (t *tokenizer) peekByte(offset int) byte {
	if t.pos+offset >= t.end || t.pos+offset < 0 {
		return 0
	}
	return t.text[t.pos+offset]
}

func (t *tokenizer) push(tok Token) {
	if t.parenLineStart && t.trackRestart && t.restart == nil && len(t.fstrings) == 0 &&
		!tok.Kind.IsCloseBracket() && t.lineIndent(tok.Start) <= t.outerIndent {
		t.restart = &lineRestart{
			pos:       tok.Start,
			tokens:    len(t.tokens),
			comments:  t.comments,
			crCount:   t.crCount,
			lfCount:   t.lfCount,
			crlfCount: t.crlfCount,
		}
	}
	tok.Comments = t.comments
	t.comments = nil
	t.parenLineStart = false
	t.tokens = append(t.tokens, tok)
}

func (t *tokenizer) pushSimple(kind Kind, length int) {
	t.push(Token{Kind: kind, Start: t.pos, Length: length})
	t.pos += length
}

func (t *tokenizer) lastKind() Kind {
	if len(t.tokens) == 0 {
		return Invalid
	}
	return t.tokens[len(t.tokens)-1].Kind
}

func (t *tokenizer) run() {
	for {
		if fs := t.activeFString(); fs != nil && fs.inLiteral() {
			t.scanFStringMiddle(fs)
			continue
		}
		if t.lineStart && t.parenDepth == 0 {
			t.lineStart = false
			t.readIndentation()
		}
		if t.pos >= t.end {
			if t.parenDepth > 0 && t.resumeAtRestart() {
				continue
			}
			break
		}
		t.next()
	}

	for len(t.fstrings) > 0 {
		t.terminateFString(false)
	}
	if len(t.tokens) > 0 && t.lastKind() != NewLine && t.lastKind() != Dedent {
		t.push(Token{Kind: NewLine, Start: t.end, NewLineType: Implied})
	}
	if len(t.indents) > 0 {
		t.pos = t.end
		t.setIndent(0, 0, false, false)
	}
	t.push(Token{Kind: EndOfStream, Start: t.end})
}

// readIndentation measures the leading whitespace of a logical line and
// emits Indent/Dedent tokens. Blank and comment-only lines are left alone.
func (t *tokenizer) readIndentation() {
	tab1Spaces, tab8Spaces := 0, 0
	isSpacePresent, isTabPresent := false, false
	for t.pos < t.end {
		c := t.text[t.pos]
		if c == ' ' {
			tab1Spaces++
			tab8Spaces++
			isSpacePresent = true
		} else if c == '\t' {
			tab1Spaces++
			tab8Spaces += tabSize - tab8Spaces%tabSize
			isTabPresent = true
		} else if c == '\f' {
			tab1Spaces = 0
			tab8Spaces = 0
		} else {
			break
		}
		t.pos++
	}
	if t.pos >= t.end {
		return
	}
	switch t.text[t.pos] {
	case '#', '\n', '\r':
		return
	case '\\':
		if c := t.peekByte(1); c == '\n' || c == '\r' {
			return
		}
	case '%', '!':
		if t.interactive {
			t.skipMagicLine()
			return
		}
	}
	t.setIndent(tab1Spaces, tab8Spaces, isSpacePresent, isTabPresent)
}

func (t *tokenizer) skipMagicLine() {
	start := t.pos
	for t.pos < t.end && t.text[t.pos] != '\n' && t.text[t.pos] != '\r' {
		t.pos++
	}
	t.comments = append(t.comments, Comment{Start: start, Length: t.pos - start, Value: t.text[start:t.pos]})
}

func (t *tokenizer) setIndent(tab1Spaces, tab8Spaces int, isSpacePresent, isTabPresent bool) {
	info := indentInfo{tab1Spaces: tab1Spaces, tab8Spaces: tab8Spaces, isSpacePresent: isSpacePresent, isTabPresent: isTabPresent}
	if len(t.indents) == 0 {
		if tab8Spaces > 0 {
			t.indents = append(t.indents, info)
			t.push(Token{Kind: Indent, Start: t.pos, IndentAmount: tab8Spaces})
		}
		return
	}

	prev := t.indents[len(t.indents)-1]
	mixed := (prev.isSpacePresent && isTabPresent) || (prev.isTabPresent && isSpacePresent)
	if prev.tab8Spaces < tab8Spaces {
		// Tabs vs spaces ambiguity is recorded for the parser to report.
		ambiguous := mixed && prev.tab1Spaces >= tab1Spaces
		t.indents = append(t.indents, info)
		t.push(Token{Kind: Indent, Start: t.pos, IndentAmount: tab8Spaces, IsIndentAmbiguous: ambiguous})
		return
	}

	ambiguous := mixed && prev.tab1Spaces < tab1Spaces
	var points []int
	for len(t.indents) > 0 && t.indents[len(t.indents)-1].tab8Spaces > tab8Spaces {
		top := t.indents[len(t.indents)-1]
		t.indents = t.indents[:len(t.indents)-1]
		below := 0
		if len(t.indents) > 0 {
			below = t.indents[len(t.indents)-1].tab8Spaces
		}
		if top.phantom {
			if len(points) > 0 {
				points[len(points)-1] = below
			}
			continue
		}
		points = append(points, below)
	}
	for i, point := range points {
		last := i == len(points)-1
		matches := !last || point == tab8Spaces
		amount := point
		if last {
			amount = tab8Spaces
		}
		t.push(Token{
			Kind:              Dedent,
			Start:             t.pos,
			IndentAmount:      amount,
			MatchesIndent:     matches,
			IsDedentAmbiguous: ambiguous,
		})
	}
	if tab8Spaces > 0 && (len(t.indents) == 0 || t.indents[len(t.indents)-1].tab8Spaces < tab8Spaces) {
		// The line sits between two levels. Track it so that the lines that
		// follow it do not produce further indentation tokens.
		info.phantom = true
		t.indents = append(t.indents, info)
	}
}

func (t *tokenizer) newLine(length int, kind NewLineType) {
	switch kind {
	case CarriageReturn:
		t.crCount++
	case LineFeed:
		t.lfCount++
	case CarriageReturnLineFeed:
		t.crlfCount++
	}
	if t.parenDepth == 0 && len(t.tokens) > 0 && t.lastKind() != NewLine && t.lastKind() != Indent {
		t.push(Token{Kind: NewLine, Start: t.pos, Length: length, NewLineType: kind})
	}
	t.pos += length
	if t.parenDepth == 0 {
		t.lineStart = true
	} else {
		t.parenLineStart = true
	}
}

// statementKeywords cannot appear inside an expression. One of them at the
// start of a line inside brackets means a bracket was left open.
var statementKeywords = map[KeywordType]bool{
	KwAssert:   true,
	KwBreak:    true,
	KwClass:    true,
	KwContinue: true,
	KwDef:      true,
	KwDel:      true,
	KwElif:     true,
	KwExcept:   true,
	KwFinally:  true,
	KwGlobal:   true,
	KwImport:   true,
	KwNonlocal: true,
	KwPass:     true,
	KwRaise:    true,
	KwReturn:   true,
	KwTry:      true,
	KwWhile:    true,
	KwWith:     true,
}

// restartLine abandons the open brackets and treats the line holding the
// token at start as a new logical line.
func (t *tokenizer) restartLine(start int) {
	t.parenDepth = 0
	t.parenLineStart = false
	t.trackRestart = false
	t.restart = nil
	if t.lastKind() != NewLine {
		t.push(Token{Kind: NewLine, Start: start, NewLineType: Implied})
	}
	tab1Spaces, tab8Spaces, isSpacePresent, isTabPresent := t.measureIndent(start)
	saved := t.pos
	t.pos = start
	t.setIndent(tab1Spaces, tab8Spaces, isSpacePresent, isTabPresent)
	t.pos = saved
}

// resumeAtRestart drops everything lexed since the recorded restart line and
// lexes that line again outside of any bracket.
func (t *tokenizer) resumeAtRestart() bool {
	r := t.restart
	if r == nil {
		return false
	}
	t.tokens = t.tokens[:r.tokens]
	t.comments = r.comments
	t.crCount, t.lfCount, t.crlfCount = r.crCount, r.lfCount, r.crlfCount
	t.fstrings = nil
	t.pos = r.pos
	t.restartLine(r.pos)
	return true
}

// measureIndent returns the indentation of the whitespace that precedes start
// on its line.
func (t *tokenizer) measureIndent(start int) (tab1Spaces, tab8Spaces int, isSpacePresent, isTabPresent bool) {
	lineStart := start
	for lineStart > 0 {
		c := t.text[lineStart-1]
		if c != ' ' && c != '\t' && c != '\f' {
			break
		}
		lineStart--
	}
	for _, c := range t.text[lineStart:start] {
		switch c {
		case ' ':
			tab1Spaces++
			tab8Spaces++
			isSpacePresent = true
		case '\t':
			tab1Spaces++
			tab8Spaces += tabSize - tab8Spaces%tabSize
			isTabPresent = true
		default:
			tab1Spaces, tab8Spaces = 0, 0
		}
	}
	return
}

func (t *tokenizer) lineIndent(start int) int {
	_, tab8Spaces, _, _ := t.measureIndent(start)
	return tab8Spaces
}

func (t *tokenizer) currentIndent() int {
	if len(t.indents) == 0 {
		return 0
	}
	return t.indents[len(t.indents)-1].tab8Spaces
}

func (t *tokenizer) openBracket(kind Kind) {
	if t.parenDepth == 0 && len(t.fstrings) == 0 {
		t.outerIndent = t.currentIndent()
		t.trackRestart = true
		t.restart = nil
	}
	t.parenDepth++
	t.pushSimple(kind, 1)
}

func (t *tokenizer) closeBracket(kind Kind) {
	if t.parenDepth > 0 {
		t.parenDepth--
	}
	if t.parenDepth == 0 {
		t.trackRestart = false
		t.restart = nil
	}
	t.pushSimple(kind, 1)
}

func (t *tokenizer) next() {
	if fs := t.activeFString(); fs != nil && t.atFStringEnd(fs) &&
		fs.fields[len(fs.fields)-1].parenDepth == t.parenDepth {
		// The closing quote ends the f-string even inside an unclosed field.
		fs.fields = nil
		t.terminateFString(true)
		return
	}
	c := t.text[t.pos]
	switch c {
	case ' ', '\t', '\f':
		t.pos++
	case '\r':
		if t.peekByte(1) == '\n' {
			t.newLine(2, CarriageReturnLineFeed)
		} else {
			t.newLine(1, CarriageReturn)
		}
	case '\n':
		t.newLine(1, LineFeed)
	case '\\':
		if t.peekByte(1) == '\r' && t.peekByte(2) == '\n' {
			t.pos += 3
		} else if t.peekByte(1) == '\n' || t.peekByte(1) == '\r' {
			t.pos += 2
		} else {
			t.pushSimple(Invalid, 1)
		}
	case '#':
		start := t.pos + 1
		t.pos++
		for t.pos < t.end && t.text[t.pos] != '\n' && t.text[t.pos] != '\r' {
			t.pos++
		}
		t.comments = append(t.comments, Comment{Start: start, Length: t.pos - start, Value: t.text[start:t.pos]})
	case '(':
		t.openBracket(OpenParenthesis)
	case ')':
		t.closeBracket(CloseParenthesis)
	case '[':
		t.openBracket(OpenBracket)
	case ']':
		t.closeBracket(CloseBracket)
	case '{':
		t.openBracket(OpenCurlyBrace)
	case '}':
		if fs := t.activeFString(); fs != nil && len(fs.fields) > 0 && fs.fields[len(fs.fields)-1].parenDepth == t.parenDepth {
			fs.fields = fs.fields[:len(fs.fields)-1]
		}
		t.closeBracket(CloseCurlyBrace)
	case ',':
		t.pushSimple(Comma, 1)
	case ';':
		t.pushSimple(Semicolon, 1)
	case '`':
		t.pushSimple(Backtick, 1)
	case ':':
		if fs := t.activeFString(); fs != nil && len(fs.fields) > 0 && fs.fields[len(fs.fields)-1].parenDepth == t.parenDepth {
			fs.fields[len(fs.fields)-1].inFormatSpec = true
			t.pushSimple(Colon, 1)
			return
		}
		if t.peekByte(1) == '=' {
			t.push(Token{Kind: Operator, Start: t.pos, Length: 2, Operator: ast.OpWalrus})
			t.pos += 2
			return
		}
		t.pushSimple(Colon, 1)
	case '.':
		if t.peekByte(1) == '.' && t.peekByte(2) == '.' {
			t.pushSimple(Ellipsis, 3)
			return
		}
		if isDecimalChar(t.peekByte(1)) {
			t.lexNumber()
			return
		}
		t.pushSimple(Dot, 1)
	case '!':
		if t.peekByte(1) == '=' {
			t.push(Token{Kind: Operator, Start: t.pos, Length: 2, Operator: ast.OpNotEquals})
			t.pos += 2
			return
		}
		t.pushSimple(ExclamationMark, 1)
	case '-':
		if t.peekByte(1) == '>' {
			t.pushSimple(Arrow, 2)
			return
		}
		t.lexOperator()
	case '"', '\'':
		t.lexString(0, 0)
	default:
		if isDecimalChar(c) {
			t.lexNumber()
			return
		}
		if n := t.stringPrefixLength(); n > 0 {
			t.lexString(n, prefixFlags(t.text[t.pos:t.pos+n]))
			return
		}
		if t.lexIdentifier() {
			return
		}
		if t.lexOperator() {
			return
		}
		_, w := utf8.DecodeRuneInString(t.text[t.pos:t.end])
		t.pushSimple(Invalid, w)
	}
}

//////////////////////////////////////////////////////////////////////////////
// Identifiers and keywords

func isIdentifierStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r > 0x7f && (unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)))
}

func isIdentifierChar(r rune) bool {
	return isIdentifierStart(r) || (r >= '0' && r <= '9') ||
		(r > 0x7f && (unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc, unicode.Pc)))
}

func (t *tokenizer) lexIdentifier() bool {
	start := t.pos
	r, w := utf8.DecodeRuneInString(t.text[t.pos:t.end])
	if !isIdentifierStart(r) {
		return false
	}
	t.pos += w
	for t.pos < t.end {
		r, w = utf8.DecodeRuneInString(t.text[t.pos:t.end])
		if !isIdentifierChar(r) {
			break
		}
		t.pos += w
	}
	value := t.text[start:t.pos]
	if kw, ok := Keywords[value]; ok {
		if statementKeywords[kw] && t.parenLineStart && t.parenDepth > 0 && len(t.fstrings) == 0 {
			if t.resumeAtRestart() {
				return true
			}
			t.restartLine(start)
		}
		t.push(Token{Kind: Keyword, Start: start, Length: t.pos - start, Keyword: kw, Value: value})
	} else {
		t.push(Token{Kind: Identifier, Start: start, Length: t.pos - start, Value: value})
	}
	return true
}

//////////////////////////////////////////////////////////////////////////////
// Operators

var operatorSpellings = func() []string {
	var ops []string
	for s := range ast.OperatorMap {
		if s != ":=" && s != "!=" {
			ops = append(ops, s)
		}
	}
	return ops
}()

func (t *tokenizer) lexOperator() bool {
	best := ""
	rest := t.text[t.pos:t.end]
	for _, s := range operatorSpellings {
		if len(s) > len(best) && strings.HasPrefix(rest, s) {
			best = s
		}
	}
	if best == "" {
		return false
	}
	t.push(Token{Kind: Operator, Start: t.pos, Length: len(best), Operator: ast.OperatorMap[best]})
	t.pos += len(best)
	return true
}

//////////////////////////////////////////////////////////////////////////////
// Numbers

func isDecimalChar(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexChar(c byte) bool {
	return isDecimalChar(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (t *tokenizer) scanDigits(valid func(byte) bool) bool {
	seen := false
	for t.pos < t.end {
		c := t.text[t.pos]
		if valid(c) {
			seen = true
		} else if c != '_' || !valid(t.peekByte(1)) {
			break
		}
		t.pos++
	}
	return seen
}

// lexNumber consumes an integer, float or imaginary literal. The caller
// guarantees a digit or a "." followed by a digit.
func (t *tokenizer) lexNumber() {
	start := t.pos
	isInteger := true
	base := 10

	if t.text[t.pos] == '0' && t.pos+1 < t.end {
		switch t.text[t.pos+1] {
		case 'x', 'X':
			base = 16
		case 'b', 'B':
			base = 2
		case 'o', 'O':
			base = 8
		}
	}

	if base != 10 {
		t.pos += 2
		var valid func(byte) bool
		switch base {
		case 16:
			valid = isHexChar
		case 2:
			valid = func(c byte) bool { return c == '0' || c == '1' }
		default:
			valid = func(c byte) bool { return c >= '0' && c <= '7' }
		}
		if !t.scanDigits(valid) {
			t.pos = start + 1
			base = 10
		}
	}

	if base == 10 {
		t.scanDigits(isDecimalChar)
		if t.pos < t.end && t.text[t.pos] == '.' {
			isInteger = false
			t.pos++
			t.scanDigits(isDecimalChar)
		}
		if c := t.peekByte(0); c == 'e' || c == 'E' {
			save := t.pos
			t.pos++
			if c := t.peekByte(0); c == '+' || c == '-' {
				t.pos++
			}
			if t.scanDigits(isDecimalChar) {
				isInteger = false
			} else {
				t.pos = save
			}
		}
	}

	isImaginary := false
	if c := t.peekByte(0); base == 10 && (c == 'j' || c == 'J') {
		isImaginary = true
		t.pos++
	}

	text := t.text[start:t.pos]
	tok := Token{Kind: Number, Start: start, Length: t.pos - start, Value: text, IsImaginary: isImaginary}
	digits := strings.ReplaceAll(strings.TrimRight(text, "jJ"), "_", "")
	if isInteger && !isImaginary {
		v := new(big.Int)
		var ok bool
		if base == 10 {
			trimmed := strings.TrimLeft(digits, "0")
			if trimmed == "" {
				trimmed = "0"
			}
			_, ok = v.SetString(trimmed, 10)
		} else {
			_, ok = v.SetString(digits[2:], base)
		}
		if ok {
			tok.IsInteger = true
			tok.IntValue = v
			tok.NumberValue, _ = new(big.Float).SetInt(v).Float64()
		}
	} else {
		tok.NumberValue, _ = strconv.ParseFloat(digits, 64)
	}
	t.push(tok)
}

//////////////////////////////////////////////////////////////////////////////
// Strings

// stringPrefixLength returns the length of a string prefix (r, b, u, f and
// their two-letter combinations) at the cursor when a quote follows it.
func (t *tokenizer) stringPrefixLength() int {
	for n := 1; n <= 2; n++ {
		q := t.peekByte(n)
		if q != '"' && q != '\'' {
			continue
		}
		prefix := strings.ToLower(t.text[t.pos : t.pos+n])
		switch prefix {
		case "r", "b", "u", "f", "rb", "br", "fr", "rf":
			return n
		}
		return 0
	}
	return 0
}

func prefixFlags(prefix string) ast.StringFlags {
	var flags ast.StringFlags
	for _, c := range strings.ToLower(prefix) {
		switch c {
		case 'r':
			flags |= ast.StringRaw
		case 'b':
			flags |= ast.StringBytes
		case 'u':
			flags |= ast.StringUnicode
		case 'f':
			flags |= ast.StringFormat
		}
	}
	return flags
}

func (t *tokenizer) lexString(prefixLen int, flags ast.StringFlags) {
	start := t.pos
	t.pos += prefixLen
	quote := t.text[t.pos]
	quoteLen := 1
	if t.peekByte(1) == quote && t.peekByte(2) == quote {
		quoteLen = 3
		flags |= ast.StringTriplicate
	}
	if quote == '"' {
		flags |= ast.StringDoubleQuote
	} else {
		flags |= ast.StringSingleQuote
	}
	t.pos += quoteLen

	if flags.Has(ast.StringFormat) {
		t.push(Token{
			Kind:            FStringStart,
			Start:           start,
			Length:          t.pos - start,
			StringFlags:     flags,
			PrefixLength:    prefixLen,
			QuoteMarkLength: quoteLen,
		})
		t.fstrings = append(t.fstrings, &fstringContext{
			startIndex: len(t.tokens) - 1,
			flags:      flags,
			quote:      quote,
			quoteLen:   quoteLen,
			parenDepth: t.parenDepth,
		})
		return
	}

	contentStart := t.pos
	contentEnd := -1
	for t.pos < t.end {
		c := t.text[t.pos]
		if c == '\\' {
			t.pos++
			if t.pos < t.end && t.text[t.pos] == '\r' && t.peekByte(1) == '\n' {
				t.pos++
			}
			t.pos++
			continue
		}
		if (c == '\n' || c == '\r') && quoteLen == 1 {
			break
		}
		if c == quote && (quoteLen == 1 || (t.peekByte(1) == quote && t.peekByte(2) == quote)) {
			contentEnd = t.pos
			t.pos += quoteLen
			break
		}
		t.pos++
	}
	if t.pos > t.end {
		t.pos = t.end
	}
	if contentEnd < 0 {
		flags |= ast.StringUnterminated
		contentEnd = t.pos
	}
	t.push(Token{
		Kind:            String,
		Start:           start,
		Length:          t.pos - start,
		StringFlags:     flags,
		PrefixLength:    prefixLen,
		QuoteMarkLength: quoteLen,
		EscapedValue:    t.text[contentStart:contentEnd],
	})
}

func (t *tokenizer) atFStringEnd(fs *fstringContext) bool {
	if t.peekByte(0) != fs.quote {
		return false
	}
	return fs.quoteLen == 1 || (t.peekByte(1) == fs.quote && t.peekByte(2) == fs.quote)
}

// terminateFString pops the active f-string. When closed is false the
// string ran off the end of its line or the input.
func (t *tokenizer) terminateFString(closed bool) {
	fs := t.activeFString()
	t.fstrings = t.fstrings[:len(t.fstrings)-1]
	t.parenDepth = fs.parenDepth
	if closed {
		t.push(Token{
			Kind:            FStringEnd,
			Start:           t.pos,
			Length:          fs.quoteLen,
			StringFlags:     fs.flags,
			QuoteMarkLength: fs.quoteLen,
		})
		t.pos += fs.quoteLen
		return
	}
	t.tokens[fs.startIndex].StringFlags |= ast.StringUnterminated
}

// scanFStringMiddle consumes literal f-string text up to the next
// replacement field, closing brace or closing quote.
func (t *tokenizer) scanFStringMiddle(fs *fstringContext) {
	inFormatSpec := len(fs.fields) > 0
	start := t.pos
	var value strings.Builder
	isRaw := fs.flags.Has(ast.StringRaw)

	emitMiddle := func() {
		if t.pos > start {
			t.push(Token{
				Kind:         FStringMiddle,
				Start:        start,
				Length:       t.pos - start,
				StringFlags:  fs.flags,
				Value:        value.String(),
				EscapedValue: t.text[start:t.pos],
			})
		}
	}

	for t.pos < t.end {
		c := t.text[t.pos]
		switch {
		case t.atFStringEnd(fs):
			emitMiddle()
			t.terminateFString(true)
			return
		case c == '\\':
			value.WriteByte(c)
			t.pos++
			if n := t.peekByte(0); !isRaw && n != 0 && n != '{' && n != '}' {
				value.WriteByte(n)
				t.pos++
			}
		case (c == '\n' || c == '\r') && fs.quoteLen == 1:
			emitMiddle()
			t.terminateFString(false)
			return
		case c == '{':
			if !inFormatSpec && t.peekByte(1) == '{' {
				value.WriteByte('{')
				t.pos += 2
				continue
			}
			emitMiddle()
			t.parenDepth++
			t.pushSimple(OpenCurlyBrace, 1)
			fs.fields = append(fs.fields, replacementField{parenDepth: t.parenDepth})
			return
		case c == '}':
			if !inFormatSpec && t.peekByte(1) == '}' {
				value.WriteByte('}')
				t.pos += 2
				continue
			}
			emitMiddle()
			if inFormatSpec {
				fs.fields = fs.fields[:len(fs.fields)-1]
				if t.parenDepth > 0 {
					t.parenDepth--
				}
			}
			t.pushSimple(CloseCurlyBrace, 1)
			return
		default:
			value.WriteByte(c)
			t.pos++
		}
	}
	emitMiddle()
	t.terminateFString(false)
}
