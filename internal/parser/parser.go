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

// Package parser turns Python source into the syntax tree of package ast.
//
// The parser never fails. Syntax problems are returned as diagnostics and the
// affected region of the tree is represented by ast.Error nodes.
package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/go-pyparser/ast"
	"github.com/google/go-pyparser/internal/tokenizer"
)

// PythonVersion is a target language version. It only decides which
// version-gated diagnostics are reported; the tree shape never depends on it.
type PythonVersion struct {
	Major int
	Minor int
}

var (
	Python3_3  = PythonVersion{3, 3}
	Python3_5  = PythonVersion{3, 5}
	Python3_6  = PythonVersion{3, 6}
	Python3_7  = PythonVersion{3, 7}
	Python3_8  = PythonVersion{3, 8}
	Python3_9  = PythonVersion{3, 9}
	Python3_10 = PythonVersion{3, 10}
	Python3_11 = PythonVersion{3, 11}
	Python3_12 = PythonVersion{3, 12}
	Python3_13 = PythonVersion{3, 13}
	Python3_14 = PythonVersion{3, 14}

	LatestPythonVersion = Python3_13
)

// Less reports whether v predates other.
func (v PythonVersion) Less(other PythonVersion) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	return v.Minor < other.Minor
}

func (v PythonVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// ParsePythonVersion accepts "3", "3.12" or "3.12.1".
func ParsePythonVersion(s string) (PythonVersion, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ".", 3)
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return PythonVersion{}, fmt.Errorf("invalid Python version %q: %w", s, err)
	}
	v := PythonVersion{Major: major}
	if len(parts) > 1 {
		if v.Minor, err = strconv.Atoi(parts[1]); err != nil {
			return PythonVersion{}, fmt.Errorf("invalid Python version %q: %w", s, err)
		}
	}
	if v.Major != 3 || v.Minor < 0 {
		return PythonVersion{}, fmt.Errorf("unsupported Python version %q", s)
	}
	return v, nil
}

// Options control a parse.
type Options struct {
	PythonVersion PythonVersion
	IsStubFile    bool
	// SkipFunctionAndClassBody leaves def and class suites empty. The
	// tokens of the body are only scanned to find its end.
	SkipFunctionAndClassBody bool
	// Interactive is notebook mode: "%" and "!" magic lines are skipped and
	// "await" is accepted at the top level.
	Interactive                         bool
	ReportInvalidStringEscapeSequence   bool
	ReportErrorsForParsedStringContents bool
	// IDs defaults to ast.DefaultIDs.
	IDs *ast.IDSource
}

func DefaultOptions() Options {
	return Options{PythonVersion: LatestPythonVersion}
}

// ModuleImport describes one imported module.
type ModuleImport struct {
	NameNode    *ast.ModuleName
	NameParts   []string
	LeadingDots int
	// ImportedSymbols lists the names taken by "from m import a, b". It is
	// empty for "import m" and nil for a wildcard import.
	ImportedSymbols []string
}

// Results is everything produced by ParseFile.
type Results struct {
	Text        string
	Module      *ast.Module
	Diagnostics []Diagnostic

	Imports                []ModuleImport
	FutureImports          []string
	ContainsWildcardImport bool
	// TypingSymbolAliases maps local names to the typing symbols they stand
	// for, e.g. "L" -> "Literal" after "from typing import Literal as L".
	TypingSymbolAliases map[string]string

	Tokens               tokenizer.Tokens
	Lines                ast.LineIndex
	PredominantEndOfLine string
}

type ParseTextMode int

const (
	ModeExpression ParseTextMode = iota
	ModeVariableAnnotation
	ModeFunctionAnnotation
)

// ExpressionResults is the result of ParseTextExpression. Expr is nil when a
// function annotation could not be parsed at all.
type ExpressionResults struct {
	Expr        ast.Node
	Diagnostics []Diagnostic
	Tokens      tokenizer.Tokens
}

// ---------------------------------------------------------------------------

type parser struct {
	t     tokenizer.Tokens
	currT int

	text string
	opts Options
	ids  *ast.IDSource

	diagnostics         []Diagnostic
	areErrorsSuppressed bool

	isInLoop                bool
	isInFunction            bool
	isInAsync               bool
	isInFinally             bool
	isParsingTypeAnnotation bool
	isParsingQuotedText     bool
	disallowWalrus          bool

	// Open f-strings, innermost last.
	fstrings []*tokenizer.Token

	futureImports          []string
	imports                []ModuleImport
	containsWildcardImport bool
	typingImportAliases    []string
	typingSymbolAliases    map[string]string
}

func makeParser(text string, t tokenizer.Tokens, opts Options) *parser {
	if opts.PythonVersion == (PythonVersion{}) {
		opts.PythonVersion = LatestPythonVersion
	}
	ids := opts.IDs
	if ids == nil {
		ids = ast.DefaultIDs
		opts.IDs = ids
	}
	return &parser{
		t:                   t,
		text:                text,
		opts:                opts,
		ids:                 ids,
		typingSymbolAliases: map[string]string{},
	}
}

// ParseFile parses a whole module.
func ParseFile(text string, opts Options) *Results {
	out := tokenizer.Tokenize(text, 0, len(text), 0, opts.Interactive)
	p := makeParser(text, out.Tokens, opts)
	module := p.parseModule()
	return &Results{
		Text:                   text,
		Module:                 module,
		Diagnostics:            p.diagnostics,
		Imports:                p.imports,
		FutureImports:          p.futureImports,
		ContainsWildcardImport: p.containsWildcardImport,
		TypingSymbolAliases:    p.typingSymbolAliases,
		Tokens:                 out.Tokens,
		Lines:                  ast.MakeLineIndex(text),
		PredominantEndOfLine:   out.PredominantEndOfLine,
	}
}

// ParseTextExpression parses text[start:start+length] as a single expression,
// type annotation or function signature comment. Node ranges are offsets
// into the whole of text. A fresh parser is used, so nothing is shared with
// an enclosing parse except the id source in opts.
func ParseTextExpression(text string, start, length int, opts Options, mode ParseTextMode,
	initialParenDepth int, typingSymbolAliases map[string]string) *ExpressionResults {

	out := tokenizer.Tokenize(text, start, length, initialParenDepth, false)
	p := makeParser(text, out.Tokens, opts)
	for name, symbol := range typingSymbolAliases {
		p.typingSymbolAliases[name] = symbol
	}

	var expr ast.Node
	switch mode {
	case ModeVariableAnnotation:
		p.isParsingQuotedText = true
		expr = p.parseTypeAnnotation(false)
	case ModeFunctionAnnotation:
		p.isParsingQuotedText = true
		if fa := p.parseFunctionTypeAnnotation(); fa != nil {
			expr = fa
		}
	default:
		expr = p.parseTestOrStarListAsExpression(false, true, ast.ErrMissingExpression, ExpectedExpr)
	}

	p.consumeTokenIfKind(tokenizer.NewLine)
	if !p.atEOF() {
		p.addDiagnostic(UnexpectedExprSymbol, p.peek().Range())
	}
	return &ExpressionResults{Expr: expr, Diagnostics: p.diagnostics, Tokens: out.Tokens}
}

func (p *parser) parseModule() *ast.Module {
	module := &ast.Module{NodeBase: p.base(ast.MakeRange(0, len(p.text)))}
	for !p.atEOF() {
		tok := p.peek()
		switch tok.Kind {
		case tokenizer.NewLine:
			p.pop()
			continue
		case tokenizer.Indent:
			p.pop()
			p.reportUnexpectedIndent(tok)
			continue
		case tokenizer.Dedent:
			p.pop()
			if !tok.MatchesIndent {
				p.addDiagnostic(InconsistentIndent, tok.Range())
			}
			continue
		}

		before := p.currT
		if stmt := p.parseStatement(); stmt != nil {
			module.Statements = append(module.Statements, stmt)
		} else {
			p.skipLine()
		}
		if p.currT == before {
			p.pop()
		}
	}
	return link(module)
}

// ---------------------------------------------------------------------------
// Token cursor. None of these can fail; reading past the end keeps
// returning the end-of-stream token.

func (p *parser) peekToken(k int) *tokenizer.Token {
	i := p.currT + k
	if i < 0 {
		i = 0
	}
	if i >= len(p.t) {
		i = len(p.t) - 1
	}
	return &p.t[i]
}

func (p *parser) peek() *tokenizer.Token {
	return p.peekToken(0)
}

func (p *parser) peekKind() tokenizer.Kind {
	return p.peek().Kind
}

// peekKeyword returns KwNone unless the next token is a keyword.
func (p *parser) peekKeyword() tokenizer.KeywordType {
	if t := p.peek(); t.Kind == tokenizer.Keyword {
		return t.Keyword
	}
	return tokenizer.KwNone
}

// peekOperator returns OpNone unless the next token is an operator.
func (p *parser) peekOperator() ast.Operator {
	if t := p.peek(); t.Kind == tokenizer.Operator {
		return t.Operator
	}
	return ast.OpNone
}

func (p *parser) pop() *tokenizer.Token {
	t := p.peek()
	if !p.atEOF() {
		p.currT++
	}
	return t
}

func (p *parser) atEOF() bool {
	return p.peekKind() == tokenizer.EndOfStream
}

func (p *parser) consumeTokenIfKind(k tokenizer.Kind) bool {
	if p.peekKind() == k {
		p.pop()
		return true
	}
	return false
}

func (p *parser) consumeTokenIfKeyword(k tokenizer.KeywordType) bool {
	if p.peekKeyword() == k {
		p.pop()
		return true
	}
	return false
}

func (p *parser) consumeTokenIfOperator(op ast.Operator) bool {
	if p.peekOperator() == op {
		p.pop()
		return true
	}
	return false
}

// consumeTokensUntilKind skips tokens up to, but not including, the first
// token of one of the given kinds. It returns false if the end of the stream
// was reached first.
func (p *parser) consumeTokensUntilKind(kinds ...tokenizer.Kind) bool {
	for {
		k := p.peekKind()
		for _, stop := range kinds {
			if k == stop {
				return true
			}
		}
		if k == tokenizer.EndOfStream {
			return false
		}
		p.pop()
	}
}

func (p *parser) skipLine() {
	p.consumeTokensUntilKind(tokenizer.NewLine)
	p.consumeTokenIfKind(tokenizer.NewLine)
}

// getTokenIfIdentifier accepts identifiers, soft keywords and (with a
// diagnostic) invalid characters as a name.
func (p *parser) getTokenIfIdentifier() *tokenizer.Token {
	t := p.peek()
	switch t.Kind {
	case tokenizer.Identifier:
		return p.pop()
	case tokenizer.Invalid:
		p.pop()
		p.addDiagnostic(InvalidIdentifierChar, t.Range())
		return t
	case tokenizer.Keyword:
		if t.Keyword.IsSoft() {
			return p.pop()
		}
	}
	return nil
}

func (p *parser) tokenText(t *tokenizer.Token) string {
	return p.text[t.Start:t.End()]
}

// prevEnd is the end offset of the last consumed token.
func (p *parser) prevEnd() int {
	if p.currT == 0 {
		return p.peek().Start
	}
	return p.peekToken(-1).End()
}

// emptyRangeAtPeek is a zero-length range where the next token starts.
func (p *parser) emptyRangeAtPeek() ast.Range {
	return ast.Range{Start: p.peek().Start}
}

// ---------------------------------------------------------------------------
// Diagnostics

func (p *parser) addDiagnostic(kind DiagnosticKind, r ast.Range, args ...interface{}) {
	p.addDiagnosticWithSeverity(SeverityError, kind, r, args...)
}

func (p *parser) addWarning(kind DiagnosticKind, r ast.Range, args ...interface{}) {
	p.addDiagnosticWithSeverity(SeverityWarning, kind, r, args...)
}

func (p *parser) addDiagnosticWithSeverity(sev Severity, kind DiagnosticKind, r ast.Range, args ...interface{}) {
	if p.areErrorsSuppressed {
		return
	}
	p.diagnostics = append(p.diagnostics, Diagnostic{Kind: kind, Severity: sev, Range: r, Args: args})
}

// suppressErrors runs fn without recording diagnostics. The caller saves and
// restores the cursor.
func (p *parser) suppressErrors(fn func()) {
	was := p.areErrorsSuppressed
	p.areErrorsSuppressed = true
	fn()
	p.areErrorsSuppressed = was
}

// versionBelow reports whether the target version predates v. Stub files are
// never version gated.
func (p *parser) versionBelow(v PythonVersion) bool {
	return !p.opts.IsStubFile && p.opts.PythonVersion.Less(v)
}

func (p *parser) reportUnexpectedIndent(t *tokenizer.Token) {
	if t.IsIndentAmbiguous {
		p.addDiagnostic(InconsistentTabs, t.Range())
	} else {
		p.addDiagnostic(UnexpectedIndent, t.Range())
	}
}

// handleExpressionParseError reports kind at target (the next token when
// nil) and skips to the end of the line or one of the extra stop kinds. The
// returned error node covers the next token and child.
func (p *parser) handleExpressionParseError(category ast.ErrorCategory, kind DiagnosticKind,
	target *tokenizer.Token, child ast.Node, stops ...tokenizer.Kind) *ast.Error {

	if target == nil {
		target = p.peek()
	}
	p.addDiagnostic(kind, target.Range())
	errNode := &ast.Error{NodeBase: p.base(p.peek().Range()), Category: category}
	if child != nil {
		errNode.Child = child
		ast.ExtendRange(errNode, child.Range())
	}
	p.consumeTokensUntilKind(append([]tokenizer.Kind{tokenizer.NewLine}, stops...)...)
	return link(errNode)
}

// ---------------------------------------------------------------------------
// Node construction

func (p *parser) base(r ast.Range) ast.NodeBase {
	return ast.NewNodeBase(p.ids, r)
}

// link attaches the children of a completed node.
func link[T ast.Node](n T) T {
	ast.Link(n)
	return n
}

func (p *parser) makeName(t *tokenizer.Token) *ast.Name {
	value := t.Value
	if t.Kind == tokenizer.Invalid {
		value = p.tokenText(t)
	}
	return link(&ast.Name{NodeBase: p.base(t.Range()), Value: value})
}

// guardDepth replaces n with an error node once its subtree reaches the depth
// ceiling. The subtree is dropped so that nothing above it can grow deeper.
func (p *parser) guardDepth(n ast.Node) ast.Node {
	if n.MaxChildDepth() < ast.MaxChildNodeDepth {
		return n
	}
	p.addDiagnostic(MaxParseDepthExceeded, n.Range())
	return link(&ast.Error{NodeBase: p.base(n.Range()), Category: ast.ErrMaxDepthExceeded})
}

// ---------------------------------------------------------------------------
// Type comments

var (
	typeCommentRegexp = regexp.MustCompile(`^(\s*#\s*type:\s*)([^\r\n]*)`)
	typeIgnoreRegexp  = regexp.MustCompile(`^ignore(\s|\[|$)`)
)

// typeAnnotationCommentToken looks for a "# type:" comment between the last
// consumed token and the next one and returns a synthesized string token
// over its text.
func (p *parser) typeAnnotationCommentToken() *tokenizer.Token {
	if p.currT == 0 {
		return nil
	}
	prev, next := p.peekToken(-1), p.peek()
	if prev.End() >= next.Start {
		return nil
	}
	gap := p.text[prev.End():next.Start]
	m := typeCommentRegexp.FindStringSubmatchIndex(gap)
	if m == nil {
		return nil
	}
	typeString := gap[m[4]:m[5]]
	if typeIgnoreRegexp.MatchString(strings.TrimSpace(typeString)) {
		return nil
	}
	return &tokenizer.Token{
		Kind:         tokenizer.String,
		Start:        prev.End() + m[4],
		Length:       len(typeString),
		Value:        typeString,
		EscapedValue: typeString,
	}
}

// parseTypeAnnotationComment parses a trailing "# type:" comment as a
// variable annotation.
func (p *parser) parseTypeAnnotationComment() ast.Node {
	tok := p.typeAnnotationCommentToken()
	if tok == nil {
		return nil
	}
	res := ParseTextExpression(p.text, tok.Start, tok.Length, p.opts, ModeVariableAnnotation, 0, p.typingSymbolAliases)
	for _, d := range res.Diagnostics {
		p.addDiagnosticWithSeverity(d.Severity, d.Kind, tok.Range(), d.Args...)
	}
	return res.Expr
}

func (p *parser) parseFunctionTypeAnnotationComment(tok *tokenizer.Token, fn *ast.Function) {
	res := ParseTextExpression(p.text, tok.Start, tok.Length, p.opts, ModeFunctionAnnotation, 0, p.typingSymbolAliases)
	for _, d := range res.Diagnostics {
		p.addDiagnosticWithSeverity(d.Severity, d.Kind, tok.Range(), d.Args...)
	}
	if fa, ok := res.Expr.(*ast.FunctionAnnotation); ok {
		fn.FunctionAnnotationComment = fa
		ast.ExtendRange(fn, fa.Range())
	}
}

func (p *parser) makeTypeCommentString(tok *tokenizer.Token) *ast.String {
	return link(&ast.String{NodeBase: p.base(tok.Range()), Value: tok.Value})
}

// isTypingAnnotation reports whether expr names the typing symbol name,
// either through an alias imported from typing or as typing.name.
func (p *parser) isTypingAnnotation(expr ast.Node, name string) bool {
	switch e := expr.(type) {
	case *ast.Name:
		return p.typingSymbolAliases[e.Value] == name
	case *ast.MemberAccess:
		base, ok := e.LeftExpr.(*ast.Name)
		if !ok || e.Member.Value != name {
			return false
		}
		for _, alias := range p.typingImportAliases {
			if alias == base.Value {
				return true
			}
		}
	}
	return false
}
