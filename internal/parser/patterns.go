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
	"fmt"
	"strings"

	"github.com/google/go-pyparser/ast"
	"github.com/google/go-pyparser/internal/tokenizer"
)

// case_block: "case" patterns [guard] ':' block
func (p *parser) parseCaseStatement() *ast.Case {
	caseTok := p.peek()
	if !p.consumeTokenIfKeyword(tokenizer.KwCase) {
		p.addDiagnostic(ExpectedCase, caseTok.Range())
		return nil
	}

	var pattern ast.Node
	res, entries := p.parsePatternSequence()
	switch {
	case res.parseError != nil:
		pattern = res.parseError
	case len(entries) == 0:
		p.addDiagnostic(ExpectedPatternExpr, p.peek().Range())
		pattern = link(&ast.Error{NodeBase: p.base(caseTok.Range()), Category: ast.ErrMissingPattern})
	case len(entries) == 1 && !res.trailingComma && !isStarPattern(entries[0]):
		pattern = entries[0]
	default:
		pattern = p.makePatternSequence(entries[0].Range(), entries)
	}

	if !isError(pattern) {
		p.reportDuplicateCaptureTargets(pattern, map[string]bool{}, map[string]bool{})
	}

	n := &ast.Case{
		NodeBase:      p.base(caseTok.Range()),
		Pattern:       pattern,
		IsIrrefutable: isPatternIrrefutable(pattern),
	}
	ast.ExtendRange(n, pattern.Range())
	if p.consumeTokenIfKeyword(tokenizer.KwIf) {
		n.Guard = p.parseTestExpression(true)
		ast.ExtendRange(n, n.Guard.Range())
	}
	n.Suite = p.parseSuite(p.isInFunction, false, nil)
	ast.ExtendRange(n, n.Suite.Range())
	return link(n)
}

// isStarPattern reports whether as is a lone "*name".
func isStarPattern(as *ast.PatternAs) bool {
	if len(as.OrPatterns) != 1 {
		return false
	}
	c, ok := as.OrPatterns[0].(*ast.PatternCapture)
	return ok && c.IsStar
}

func isPatternIrrefutable(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.PatternCapture:
		return true
	case *ast.PatternAs:
		for _, or := range n.OrPatterns {
			if isPatternIrrefutable(or) {
				return true
			}
		}
	}
	return false
}

// patterns: open_sequence_pattern | pattern
func (p *parser) parsePatternSequence() (exprListResult, []*ast.PatternAs) {
	res := p.parseExpressionListGeneric(func() ast.Node { return p.parsePatternAs() }, p.isNextTokenNeverExpression, nil)
	entries := make([]*ast.PatternAs, 0, len(res.list))
	var stars []*ast.PatternAs
	for _, e := range res.list {
		as := e.(*ast.PatternAs)
		entries = append(entries, as)
		if isStarPattern(as) {
			stars = append(stars, as)
		}
	}
	if len(stars) > 1 {
		p.addDiagnostic(DuplicateStarPattern, stars[1].OrPatterns[0].Range())
	}
	return res, entries
}

func (p *parser) makePatternSequence(r ast.Range, entries []*ast.PatternAs) *ast.PatternSequence {
	seq := &ast.PatternSequence{NodeBase: p.base(r), StarEntryIndex: -1}
	for i, e := range entries {
		if isStarPattern(e) && seq.StarEntryIndex < 0 {
			seq.StarEntryIndex = i
		}
		seq.Entries = append(seq.Entries, e)
		ast.ExtendRange(seq, e.Range())
	}
	return link(seq)
}

// as_pattern: or_pattern ['as' NAME]
// or_pattern: closed_pattern ('|' closed_pattern)*
func (p *parser) parsePatternAs() *ast.PatternAs {
	var orPatterns ast.Nodes
	for {
		orPatterns = append(orPatterns, p.parsePatternAtom())
		if !p.consumeTokenIfOperator(ast.OpBitwiseOr) {
			break
		}
	}

	if len(orPatterns) > 1 {
		for _, or := range orPatterns {
			if c, ok := or.(*ast.PatternCapture); ok && c.IsStar {
				p.addDiagnostic(StarPatternInOrPattern, c.Range())
			}
		}
	}

	n := &ast.PatternAs{NodeBase: p.base(orPatterns[0].Range()), OrPatterns: orPatterns}
	ast.ExtendRange(n, orPatterns[len(orPatterns)-1].Range())

	if p.consumeTokenIfKeyword(tokenizer.KwAs) {
		if id := p.getTokenIfIdentifier(); id != nil {
			n.Target = p.makeName(id)
			ast.ExtendRange(n, n.Target.Range())
		} else {
			p.addDiagnostic(ExpectedNameAfterAs, p.peek().Range())
		}
	}

	if n.Target != nil && isStarPattern(n) {
		p.addDiagnostic(StarPatternInAsPattern, orPatterns[0].Range())
	}

	for _, or := range orPatterns[:len(orPatterns)-1] {
		if isPatternIrrefutable(or) {
			p.addDiagnostic(OrPatternIrrefutable, or.Range())
		}
	}

	if len(orPatterns) > 1 {
		var all targetNames
		for _, or := range orPatterns {
			all.collect(or)
		}
		for _, or := range orPatterns {
			var local targetNames
			local.collect(or)
			if len(local.order) == len(all.order) {
				continue
			}
			var missing []string
			for _, name := range all.order {
				if !local.seen[name] {
					missing = append(missing, fmt.Sprintf("%q", name))
				}
			}
			p.addDiagnostic(OrPatternMissingName, or.Range(), strings.Join(missing, ", "))
		}
	}

	return link(n)
}

// targetNames is the set of capture names bound by a pattern, in the order
// they first appear.
type targetNames struct {
	seen  map[string]bool
	order []string
}

func (t *targetNames) add(name string) {
	if t.seen == nil {
		t.seen = map[string]bool{}
	}
	if !t.seen[name] {
		t.seen[name] = true
		t.order = append(t.order, name)
	}
}

func (t *targetNames) collect(n ast.Node) {
	switch n := n.(type) {
	case *ast.PatternSequence:
		for _, e := range n.Entries {
			t.collect(e)
		}
	case *ast.PatternClass:
		for _, arg := range n.Arguments {
			t.collect(arg.Pattern)
		}
	case *ast.PatternAs:
		if n.Target != nil {
			t.add(n.Target.Value)
		}
		for _, or := range n.OrPatterns {
			t.collect(or)
		}
	case *ast.PatternCapture:
		if !n.IsWildcard {
			t.add(n.Target.Value)
		}
	case *ast.PatternMapping:
		for _, e := range n.Entries {
			switch e := e.(type) {
			case *ast.PatternMappingExpandEntry:
				t.add(e.Target.Value)
			case *ast.PatternMappingKeyEntry:
				t.collect(e.Key)
				t.collect(e.Value)
			}
		}
	}
}

// reportDuplicateCaptureTargets reports a name bound twice in one case
// pattern. Alternatives of an or-pattern each see the names bound so far but
// not each other's.
func (p *parser) reportDuplicateCaptureTargets(n ast.Node, global, local map[string]bool) {
	report := func(name *ast.Name) {
		if global[name.Value] || local[name.Value] {
			p.addDiagnostic(DuplicateCapturePatternTarget, name.Range(), name.Value)
		} else {
			local[name.Value] = true
		}
	}

	switch n := n.(type) {
	case *ast.PatternSequence:
		for _, e := range n.Entries {
			p.reportDuplicateCaptureTargets(e, global, local)
		}
	case *ast.PatternClass:
		for _, arg := range n.Arguments {
			p.reportDuplicateCaptureTargets(arg.Pattern, global, local)
		}
	case *ast.PatternAs:
		var combined []*ast.Name
		combinedSeen := map[string]bool{}
		for _, or := range n.OrPatterns {
			orLocal := map[string]bool{}
			p.reportDuplicateCaptureTargets(or, local, orLocal)
			for _, name := range patternCaptureNames(or) {
				if orLocal[name.Value] && !combinedSeen[name.Value] {
					combinedSeen[name.Value] = true
					combined = append(combined, name)
				}
			}
		}
		for _, name := range combined {
			report(name)
		}
		if n.Target != nil {
			report(n.Target)
		}
	case *ast.PatternCapture:
		if !n.IsWildcard {
			report(n.Target)
		}
	case *ast.PatternMapping:
		for _, e := range n.Entries {
			switch e := e.(type) {
			case *ast.PatternMappingExpandEntry:
				report(e.Target)
			case *ast.PatternMappingKeyEntry:
				p.reportDuplicateCaptureTargets(e.Key, global, local)
				p.reportDuplicateCaptureTargets(e.Value, global, local)
			}
		}
	}
}

// patternCaptureNames lists the name nodes bound inside n in source order.
func patternCaptureNames(n ast.Node) []*ast.Name {
	var names []*ast.Name
	ast.Walk(n, func(c ast.Node) bool {
		switch c := c.(type) {
		case *ast.PatternCapture:
			if !c.IsWildcard {
				names = append(names, c.Target)
			}
			return false
		case *ast.PatternAs:
			// The target follows the alternatives in source order.
			for _, or := range c.OrPatterns {
				names = append(names, patternCaptureNames(or)...)
			}
			if c.Target != nil {
				names = append(names, c.Target)
			}
			return false
		case *ast.PatternMappingExpandEntry:
			names = append(names, c.Target)
			return false
		case *ast.PatternLiteral, *ast.PatternValue:
			return false
		case *ast.PatternClass:
			for _, arg := range c.Arguments {
				names = append(names, patternCaptureNames(arg.Pattern)...)
			}
			return false
		}
		return true
	})
	return names
}

// closed_pattern: literal_pattern | capture_pattern | wildcard_pattern |
//     value_pattern | group_pattern | sequence_pattern | mapping_pattern |
//     class_pattern
func (p *parser) parsePatternAtom() ast.Node {
	if lit := p.parsePatternLiteral(); lit != nil {
		return lit
	}

	if capOrValue := p.parsePatternCaptureOrValue(); capOrValue != nil {
		openParen := p.peek()
		if isError(capOrValue) || !p.consumeTokenIfKind(tokenizer.OpenParenthesis) {
			return capOrValue
		}
		var className ast.Node
		switch c := capOrValue.(type) {
		case *ast.PatternCapture:
			className = c.Target
		case *ast.PatternValue:
			className = c.Expr
		}
		cls := &ast.PatternClass{NodeBase: p.base(className.Range()), ClassName: className}
		cls.Arguments = p.parseClassPatternArgList()
		if closeParen := p.peek(); p.consumeTokenIfKind(tokenizer.CloseParenthesis) {
			ast.ExtendRange(cls, closeParen.Range())
		} else {
			p.addDiagnostic(ExpectedCloseParen, openParen.Range())
			p.consumeTokensUntilKind(tokenizer.NewLine)
			ast.ExtendRange(cls, ast.MakeRange(openParen.Start, p.prevEnd()))
		}
		return p.guardDepth(link(cls))
	}

	next := p.peek()
	if next.IsOperator(ast.OpMultiply) {
		star := p.pop()
		id := p.getTokenIfIdentifier()
		if id == nil {
			p.addDiagnostic(ExpectedIdentifier, p.peek().Range())
			return link(&ast.Error{NodeBase: p.base(star.Range()), Category: ast.ErrMissingExpression})
		}
		name := p.makeName(id)
		c := &ast.PatternCapture{
			NodeBase:   p.base(star.Range()),
			Target:     name,
			IsStar:     true,
			IsWildcard: name.Value == "_",
		}
		ast.ExtendRange(c, name.Range())
		return link(c)
	}

	switch next.Kind {
	case tokenizer.OpenParenthesis, tokenizer.OpenBracket:
		open := p.pop()
		closeKind, closeDiag := tokenizer.CloseParenthesis, ExpectedCloseParen
		if open.Kind == tokenizer.OpenBracket {
			closeKind, closeDiag = tokenizer.CloseBracket, ExpectedCloseBracket
		}
		res, entries := p.parsePatternSequence()
		if res.parseError != nil {
			return res.parseError
		}
		end := p.peek()
		closed := p.consumeTokenIfKind(closeKind)
		if !closed {
			p.addDiagnostic(closeDiag, open.Range())
			p.consumeTokensUntilKind(tokenizer.NewLine, tokenizer.Colon, closeKind)
		}

		// A lone parenthesized pattern is a group, not a sequence.
		if open.Kind == tokenizer.OpenParenthesis && len(entries) == 1 && !res.trailingComma && !isStarPattern(entries[0]) {
			as := entries[0]
			ast.ExtendRange(as, open.Range())
			if closed {
				ast.ExtendRange(as, end.Range())
			}
			return as
		}

		seq := p.makePatternSequence(open.Range(), entries)
		if closed {
			ast.ExtendRange(seq, end.Range())
		}
		return p.guardDepth(seq)

	case tokenizer.OpenCurlyBrace:
		open := p.pop()
		mapping := p.parsePatternMapping(open)
		if end := p.peek(); p.consumeTokenIfKind(tokenizer.CloseCurlyBrace) {
			if !isError(mapping) {
				ast.ExtendRange(mapping, end.Range())
			}
		} else {
			p.addDiagnostic(ExpectedCloseBrace, open.Range())
			p.consumeTokensUntilKind(tokenizer.NewLine, tokenizer.Colon, tokenizer.CloseCurlyBrace)
		}
		return p.guardDepth(mapping)
	}

	return p.handleExpressionParseError(ast.ErrMissingPattern, ExpectedPatternExpr, nil, nil, tokenizer.Colon)
}

// literal_pattern: signed_number | complex_number | strings | 'None' |
//     'True' | 'False'
func (p *parser) parsePatternLiteral() ast.Node {
	next := p.peek()
	switch {
	case next.Kind == tokenizer.Number, next.IsOperator(ast.OpSubtract):
		return p.parsePatternLiteralNumber()

	case next.Kind == tokenizer.String, next.Kind == tokenizer.FStringStart:
		strs := p.parseAtom()
		if list, ok := strs.(*ast.StringList); ok {
			for _, s := range list.Strings {
				if _, isFormat := s.(*ast.FormatString); isFormat {
					p.addDiagnostic(FormatStringInPattern, s.Range())
				}
			}
		}
		return p.makePatternLiteral(strs)

	case next.Kind == tokenizer.Keyword:
		switch next.Keyword {
		case tokenizer.KwFalse, tokenizer.KwTrue, tokenizer.KwNoneConst:
			return p.makePatternLiteral(p.parseAtom())
		}
	}
	return nil
}

// parsePatternLiteralNumber accepts a signed real number or a complex
// literal of the form "real +/- imag".
func (p *parser) parsePatternLiteralNumber() ast.Node {
	expr := p.parseArithmeticExpression()

	var real, imag ast.Node
	if bin, ok := expr.(*ast.BinaryOperation); ok {
		if bin.Operator == ast.OpAdd || bin.Operator == ast.OpSubtract {
			real, imag = bin.Left, bin.Right
		}
	} else {
		real = expr
	}

	if real != nil {
		real = stripNegation(real)
		num, ok := real.(*ast.Number)
		if !ok || (imag != nil && num.IsImaginary) {
			p.addDiagnostic(ExpectedComplexNumberLiteral, expr.Range())
			imag = nil
		}
	}
	if imag != nil {
		imag = stripNegation(imag)
		if num, ok := imag.(*ast.Number); !ok || !num.IsImaginary {
			p.addDiagnostic(ExpectedComplexNumberLiteral, expr.Range())
		}
	}
	return p.makePatternLiteral(expr)
}

func stripNegation(n ast.Node) ast.Node {
	if u, ok := n.(*ast.UnaryOperation); ok && u.Operator == ast.OpSubtract {
		return u.Expr
	}
	return n
}

func (p *parser) makePatternLiteral(expr ast.Node) ast.Node {
	if isError(expr) {
		return expr
	}
	return link(&ast.PatternLiteral{NodeBase: p.base(expr.Range()), Expr: expr})
}

// capture_pattern: NAME
// value_pattern: NAME ('.' NAME)+
//
// Returns nil when the next token cannot start a name.
func (p *parser) parsePatternCaptureOrValue() ast.Node {
	id := p.getTokenIfIdentifier()
	if id == nil {
		return nil
	}

	var nameOrMember ast.Node = p.makeName(id)
	for p.peekKind() == tokenizer.Dot {
		p.pop()
		id := p.getTokenIfIdentifier()
		if id == nil {
			p.addDiagnostic(ExpectedIdentifier, p.peek().Range())
			break
		}
		member := p.makeName(id)
		m := &ast.MemberAccess{NodeBase: p.base(nameOrMember.Range()), LeftExpr: nameOrMember, Member: member}
		ast.ExtendRange(m, member.Range())
		nameOrMember = p.guardDepth(link(m))
	}

	switch n := nameOrMember.(type) {
	case *ast.MemberAccess:
		return link(&ast.PatternValue{NodeBase: p.base(n.Range()), Expr: n})
	case *ast.Name:
		return link(&ast.PatternCapture{NodeBase: p.base(n.Range()), Target: n, IsWildcard: n.Value == "_"})
	}
	return nameOrMember
}

// class_pattern arguments: positional patterns then keyword patterns.
func (p *parser) parseClassPatternArgList() []*ast.PatternClassArgument {
	var args []*ast.PatternClassArgument
	sawKeyword := false
	for {
		switch p.peekKind() {
		case tokenizer.CloseParenthesis, tokenizer.NewLine, tokenizer.EndOfStream:
			return args
		}
		arg := p.parseClassPatternArgument()
		if arg.Name != nil {
			sawKeyword = true
		} else if sawKeyword {
			p.addDiagnostic(PositionalPatternAfterKeyword, arg.Range())
		}
		args = append(args, arg)
		if !p.consumeTokenIfKind(tokenizer.Comma) {
			return args
		}
	}
}

func (p *parser) parseClassPatternArgument() *ast.PatternClassArgument {
	var name *ast.Name
	if second := p.peekToken(1); second.IsOperator(ast.OpAssign) {
		if id := p.getTokenIfIdentifier(); id != nil {
			name = p.makeName(id)
			p.pop()
		}
	}
	pattern := p.parsePatternAs()
	arg := &ast.PatternClassArgument{NodeBase: p.base(pattern.Range()), Pattern: pattern}
	if name != nil {
		arg.Name = name
		ast.ExtendRange(arg, name.Range())
	}
	return link(arg)
}

// mapping_pattern: '{' [items_pattern] '}'
func (p *parser) parsePatternMapping(open *tokenizer.Token) ast.Node {
	res := p.parseExpressionListGeneric(p.parsePatternMappingItem, p.isNextTokenNeverExpression, nil)
	if len(res.list) == 0 && res.parseError != nil {
		return res.parseError
	}

	var expands ast.Nodes
	for _, e := range res.list {
		if _, ok := e.(*ast.PatternMappingExpandEntry); ok {
			expands = append(expands, e)
		}
	}
	if len(expands) > 1 {
		p.addDiagnostic(DuplicateStarStarPattern, expands[1].Range())
	}

	m := &ast.PatternMapping{NodeBase: p.base(open.Range()), Entries: res.list}
	if len(res.list) > 0 {
		ast.ExtendRange(m, res.list[len(res.list)-1].Range())
	}
	return link(m)
}

// key_value_pattern: (literal_pattern | value_pattern) ':' pattern
// double_star_pattern: '**' NAME
func (p *parser) parsePatternMappingItem() ast.Node {
	if doubleStar := p.peek(); p.consumeTokenIfOperator(ast.OpPower) {
		id := p.getTokenIfIdentifier()
		if id == nil {
			p.addDiagnostic(ExpectedIdentifier, p.peek().Range())
			return link(&ast.Error{NodeBase: p.base(p.emptyRangeAtPeek()), Category: ast.ErrMissingPattern})
		}
		name := p.makeName(id)
		if name.Value == "_" {
			p.addDiagnostic(StarStarWildcardNotAllowed, name.Range())
		}
		e := &ast.PatternMappingExpandEntry{NodeBase: p.base(doubleStar.Range()), Target: name}
		ast.ExtendRange(e, name.Range())
		return link(e)
	}

	key := p.parsePatternLiteral()
	if key == nil {
		switch c := p.parsePatternCaptureOrValue().(type) {
		case nil:
		case *ast.PatternValue:
			key = c
		default:
			p.addDiagnostic(ExpectedPatternValue, c.Range())
			key = link(&ast.Error{NodeBase: p.base(c.Range()), Category: ast.ErrMissingPattern, Child: c})
		}
	}
	if key == nil {
		p.addDiagnostic(ExpectedPatternExpr, p.peek().Range())
		key = link(&ast.Error{NodeBase: p.base(p.emptyRangeAtPeek()), Category: ast.ErrMissingPattern})
	}

	var value ast.Node
	if !p.consumeTokenIfKind(tokenizer.Colon) {
		p.addDiagnostic(ExpectedColon, p.peek().Range())
		value = link(&ast.Error{NodeBase: p.base(ast.Range{Start: key.Range().End()}), Category: ast.ErrMissingPattern})
	} else {
		value = p.parsePatternAs()
	}

	e := &ast.PatternMappingKeyEntry{NodeBase: p.base(key.Range()), Key: key, Value: value}
	ast.ExtendRange(e, value.Range())
	return link(e)
}
