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

package parser

import (
	"strings"

	"github.com/google/go-pyparser/ast"
	"github.com/google/go-pyparser/internal/tokenizer"
)

// STRING+
func (p *parser) parseStringList() ast.Node {
	list := &ast.StringList{NodeBase: p.base(p.peek().Range())}
	for {
		t := p.peek()
		if t.Kind == tokenizer.String {
			p.pop()
			list.Strings = append(list.Strings, p.makeStringNode(t))
		} else if t.Kind == tokenizer.FStringStart {
			p.pop()
			list.Strings = append(list.Strings, p.parseFormatString(t))
		} else {
			break
		}
	}
	ast.ExtendRange(list, list.Strings[len(list.Strings)-1].Range())

	if p.isParsingTypeAnnotation {
		p.parseStringAnnotation(list)
	}
	return link(list)
}

// parseStringAnnotation re-parses the contents of a lone string literal as a
// forward reference type annotation.
func (p *parser) parseStringAnnotation(list *ast.StringList) {
	if len(list.Strings) > 1 {
		p.addDiagnostic(AnnotationSpansStrings, list.Range())
		return
	}
	if _, isFormat := list.Strings[0].(*ast.FormatString); isFormat {
		p.addDiagnostic(AnnotationFormatString, list.Range())
		return
	}

	str := list.Strings[0].(*ast.String)
	tok := p.peekToken(-1)
	switch {
	case str.Flags.Has(ast.StringUnterminated):
		return
	case str.Flags.Has(ast.StringBytes):
		p.addDiagnostic(AnnotationBytesString, list.Range())
		return
	case str.Flags.Has(ast.StringRaw):
		return
	case str.Value != tok.EscapedValue:
		p.addDiagnostic(AnnotationStringEscape, list.Range())
		return
	}

	initialParenDepth := 0
	if str.Flags.Has(ast.StringTriplicate) {
		initialParenDepth = 1
	}
	start := tok.Start + tok.PrefixLength + tok.QuoteMarkLength
	res := ParseTextExpression(p.text, start, len(tok.EscapedValue), p.opts, ModeVariableAnnotation,
		initialParenDepth, p.typingSymbolAliases)

	if len(res.Diagnostics) > 0 && !p.opts.ReportErrorsForParsedStringContents {
		return
	}
	for _, d := range res.Diagnostics {
		p.addDiagnosticWithSeverity(d.Severity, d.Kind, list.Range(), d.Args...)
	}
	if res.Expr != nil {
		list.Annotation = res.Expr
	}
}

func (p *parser) makeStringNode(t *tokenizer.Token) *ast.String {
	p.checkNestedQuote(t)
	res := tokenizer.Unescape(t.EscapedValue, t.StringFlags)
	p.reportStringTokenErrors(t, res.NonASCIIInBytes)
	p.reportUnsupportedEscapes(t.Start+t.PrefixLength+t.QuoteMarkLength, res.Errors)
	return link(&ast.String{
		NodeBase:          p.base(t.Range()),
		Flags:             t.StringFlags,
		Value:             res.Value,
		HasUnescapeErrors: len(res.Errors) > 0,
	})
}

func (p *parser) reportStringTokenErrors(t *tokenizer.Token, nonASCIIInBytes bool) {
	if t.StringFlags.Has(ast.StringUnterminated) {
		p.addDiagnostic(UnterminatedString, t.Range())
	}
	if nonASCIIInBytes {
		p.addDiagnostic(StringNonASCIIBytes, t.Range())
	}
	if t.StringFlags.Has(ast.StringFormat) {
		if t.StringFlags.Has(ast.StringBytes) {
			p.addDiagnostic(FormatStringBytes, t.Range())
		}
		if t.StringFlags.Has(ast.StringUnicode) {
			p.addDiagnostic(FormatStringUnicode, t.Range())
		}
	}
}

func (p *parser) reportUnsupportedEscapes(contentStart int, errs []tokenizer.UnescapeError) {
	if !p.opts.ReportInvalidStringEscapeSequence {
		return
	}
	for _, e := range errs {
		if e.Kind == tokenizer.InvalidEscapeSequence {
			p.addWarning(StringUnsupportedEscape, ast.Range{Start: contentStart + e.Offset, Length: e.Length})
		}
	}
}

// checkNestedQuote reports a string inside an f-string replacement field
// that reuses the enclosing quote character, which older versions reject.
func (p *parser) checkNestedQuote(t *tokenizer.Token) {
	if len(p.fstrings) == 0 || !p.versionBelow(Python3_12) {
		return
	}
	quote := func(f ast.StringFlags) ast.StringFlags {
		return f & (ast.StringSingleQuote | ast.StringDoubleQuote)
	}
	if outer := p.fstrings[len(p.fstrings)-1]; quote(outer.StringFlags) == quote(t.StringFlags) {
		p.addDiagnostic(FormatStringNestedQuote, t.Range())
	}
}

// ---------------------------------------------------------------------------
// f-strings

// fstring: FSTRING_START fstring_middle* FSTRING_END
func (p *parser) parseFormatString(start *tokenizer.Token) *ast.FormatString {
	p.checkNestedQuote(start)
	p.reportStringTokenErrors(start, false)

	n := &ast.FormatString{NodeBase: p.base(start.Range()), Flags: start.StringFlags}
	p.fstrings = append(p.fstrings, start)
	defer func() { p.fstrings = p.fstrings[:len(p.fstrings)-1] }()

	for {
		next := p.peek()
		if next.Kind == tokenizer.FStringEnd {
			p.pop()
			ast.ExtendRange(n, next.Range())
			break
		}
		if next.Kind == tokenizer.FStringMiddle {
			p.pop()
			n.Middles = append(n.Middles, p.formatStringMiddle(next))
			ast.ExtendRange(n, next.Range())
			continue
		}
		if next.Kind == tokenizer.OpenCurlyBrace {
			ok := p.parseReplacementField(n, 0)
			ast.ExtendRange(n, ast.MakeRange(n.Range().Start, p.prevEnd()))
			if !ok {
				if p.consumeTokensUntilKind(tokenizer.FStringEnd, tokenizer.NewLine) && p.peekKind() == tokenizer.FStringEnd {
					p.pop()
				}
				ast.ExtendRange(n, ast.MakeRange(n.Range().Start, p.prevEnd()))
				break
			}
			continue
		}

		// The string ran to the end of the line, or a stray '}' appeared.
		if next.Kind == tokenizer.CloseCurlyBrace {
			p.addDiagnostic(FormatStringBrace, next.Range())
			if p.consumeTokensUntilKind(tokenizer.FStringEnd, tokenizer.NewLine) && p.peekKind() == tokenizer.FStringEnd {
				p.pop()
			}
			ast.ExtendRange(n, ast.MakeRange(n.Range().Start, p.prevEnd()))
		} else if !start.StringFlags.Has(ast.StringUnterminated) {
			p.addDiagnostic(UnterminatedString, next.Range())
		}
		break
	}
	return link(n)
}

func (p *parser) formatStringMiddle(t *tokenizer.Token) string {
	res := tokenizer.Unescape(t.Value, t.StringFlags)
	if p.opts.ReportInvalidStringEscapeSequence && len(res.Errors) > 0 {
		// Offsets are reported against the source text, where doubled
		// braces have not been collapsed.
		src := tokenizer.Unescape(t.EscapedValue, t.StringFlags)
		p.reportUnsupportedEscapes(t.Start, src.Errors)
	}
	return res.Value
}

// replacement_field: '{' (yield_expr | star_expressions) ['='] ['!' NAME]
//                    [':' fstring_format_spec*] '}'
//
// Expressions inside a format spec are collected in FormatExprs. Returns
// false after reporting an error the caller must recover from.
func (p *parser) parseReplacementField(n *ast.FormatString, nestingDepth int) bool {
	open := p.pop()

	switch next := p.peek(); {
	case next.Kind == tokenizer.CloseCurlyBrace, next.Kind == tokenizer.Colon,
		next.Kind == tokenizer.ExclamationMark, next.IsOperator(ast.OpAssign):
		p.addDiagnostic(FormatStringEmptyExpression, ast.MakeRange(open.Start, next.End()))
		if next.Kind != tokenizer.CloseCurlyBrace {
			return false
		}
		p.pop()
		return true
	}

	expr := p.tryParseYieldExpression()
	if expr == nil {
		expr = p.parseTestOrStarListAsExpression(true, true, ast.ErrMissingExpression, ExpectedExpr)
	}
	if nestingDepth == 0 {
		n.FieldExprs = append(n.FieldExprs, expr)
	} else {
		n.FormatExprs = append(n.FormatExprs, expr)
	}
	if isError(expr) {
		return false
	}
	if r := expr.Range(); p.versionBelow(Python3_12) && strings.ContainsRune(p.text[r.Start:r.End()], '\\') {
		p.addDiagnostic(FormatStringBackslash, r)
	}

	next := p.peek()
	if next.IsOperator(ast.OpAssign) {
		p.pop()
		next = p.peek()
	}

	if next.Kind == tokenizer.ExclamationMark {
		p.pop()
		next = p.peek()
		if next.Kind != tokenizer.Identifier || !isConversion(next.Value) {
			p.addDiagnostic(FormatStringExpectedConversion, next.Range())
			return false
		}
		p.pop()
		next = p.peek()
	}

	if next.Kind == tokenizer.Colon {
		p.pop()
		if !p.parseFormatSpec(n, nestingDepth) {
			return false
		}
		next = p.peek()
	}

	if next.Kind != tokenizer.CloseCurlyBrace {
		p.addDiagnostic(FormatStringUnterminated, next.Range())
		return false
	}
	p.pop()
	return true
}

// isConversion reports whether s is one of the "!r", "!s" or "!a" conversions.
func isConversion(s string) bool {
	return s == "r" || s == "s" || s == "a"
}

// parseFormatSpec consumes the literal text and nested replacement fields
// after ':' in a replacement field.
func (p *parser) parseFormatSpec(n *ast.FormatString, nestingDepth int) bool {
	for {
		switch next := p.peek(); next.Kind {
		case tokenizer.FStringMiddle:
			p.pop()
			if p.opts.ReportInvalidStringEscapeSequence {
				p.formatStringMiddle(next)
			}
		case tokenizer.OpenCurlyBrace:
			if nestingDepth == 1 {
				p.addDiagnostic(FormatStringNestedFormatSpecifier, next.Range())
			}
			if !p.parseReplacementField(n, nestingDepth+1) {
				return false
			}
		default:
			return true
		}
	}
}
