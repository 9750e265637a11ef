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
	"github.com/google/go-pyparser/ast"
	"github.com/google/go-pyparser/internal/tokenizer"
)

var keywordConstants = map[tokenizer.KeywordType]ast.ConstantKind{
	tokenizer.KwNoneConst: ast.ConstNone,
	tokenizer.KwTrue:      ast.ConstTrue,
	tokenizer.KwFalse:     ast.ConstFalse,
	tokenizer.KwDebug:     ast.ConstDebug,
}

// atom: '(' [yield_expr|testlist_comp] ')' | '[' [testlist_comp] ']' |
//       '{' [dictorsetmaker] '}' | NAME | NUMBER | STRING+ | '...' |
//       'None' | 'True' | 'False' | '__debug__'
func (p *parser) parseAtom() ast.Node {
	t := p.peek()
	switch t.Kind {
	case tokenizer.Ellipsis:
		p.pop()
		return link(&ast.Constant{NodeBase: p.base(t.Range()), Value: ast.ConstEllipsis})
	case tokenizer.Number:
		p.pop()
		return link(&ast.Number{
			NodeBase:    p.base(t.Range()),
			IsInteger:   t.IsInteger,
			IsImaginary: t.IsImaginary,
			Value:       t.NumberValue,
			IntValue:    t.IntValue,
		})
	case tokenizer.Identifier:
		p.pop()
		return p.makeName(t)
	case tokenizer.String, tokenizer.FStringStart:
		return p.guardDepth(p.parseStringList())
	case tokenizer.Backtick:
		p.pop()
		// Python 2 repr syntax; parse the contents for better recovery.
		p.addDiagnostic(BacktickNotSupported, t.Range())
		expr := p.parseTestOrStarListAsExpression(true, true, ast.ErrMissingExpression, ExpectedExpr)
		p.consumeTokenIfKind(tokenizer.Backtick)
		return expr
	case tokenizer.OpenParenthesis:
		expr := p.parseTupleAtom()
		switch n := expr.(type) {
		case *ast.UnaryOperation:
			n.HasParentheses = true
		case *ast.BinaryOperation:
			n.HasParentheses = true
		case *ast.Await:
			n.HasParentheses = true
		case *ast.StringList:
			n.HasParentheses = true
		case *ast.Comprehension:
			n.HasParentheses = true
		case *ast.AssignmentExpression:
			n.HasParentheses = true
		}
		return p.guardDepth(expr)
	case tokenizer.OpenBracket:
		return p.guardDepth(p.parseListAtom())
	case tokenizer.OpenCurlyBrace:
		return p.guardDepth(p.parseDictionaryOrSetAtom())
	case tokenizer.Keyword:
		if c, ok := keywordConstants[t.Keyword]; ok {
			p.pop()
			return link(&ast.Constant{NodeBase: p.base(t.Range()), Value: c})
		}
		if id := p.getTokenIfIdentifier(); id != nil {
			return p.makeName(id)
		}
	}
	return p.handleExpressionParseError(ast.ErrMissingExpression, ExpectedExpr, nil, nil)
}

// parseTupleAtom parses a parenthesized expression, tuple, generator or
// yield. Only tuples take the parentheses into their range.
func (p *parser) parseTupleAtom() ast.Node {
	openParen := p.pop()

	if y := p.tryParseYieldExpression(); y != nil {
		if p.peekKind() != tokenizer.CloseParenthesis {
			return p.handleExpressionParseError(ast.ErrMissingTupleCloseParen, ExpectedCloseParen, openParen, y)
		}
		p.pop()
		return y
	}

	res := p.parseTestListWithComprehension(true)
	expr := p.makeExpressionOrTuple(res, true)
	tuple, isTuple := expr.(*ast.Tuple)
	if isTuple {
		ast.ExtendRange(tuple, openParen.Range())
	}

	closeParen := p.peek()
	if !p.consumeTokenIfKind(tokenizer.CloseParenthesis) {
		child := expr
		if res.parseError != nil {
			child = res.parseError
		}
		return p.handleExpressionParseError(ast.ErrMissingTupleCloseParen, ExpectedCloseParen, openParen, child)
	}
	if isTuple {
		ast.ExtendRange(tuple, closeParen.Range())
	}
	return expr
}

// parseListAtom parses a list display or list comprehension.
func (p *parser) parseListAtom() ast.Node {
	openBracket := p.pop()
	res := p.parseTestListWithComprehension(false)

	makeList := func(closeBracket *tokenizer.Token) *ast.List {
		n := &ast.List{NodeBase: p.base(openBracket.Range()), Entries: res.list}
		for _, e := range res.list {
			ast.ExtendRange(n, e.Range())
		}
		if closeBracket != nil {
			ast.ExtendRange(n, closeBracket.Range())
		}
		return link(n)
	}

	closeBracket := p.peek()
	if !p.consumeTokenIfKind(tokenizer.CloseBracket) {
		var child ast.Node
		if res.parseError != nil {
			child = res.parseError
		} else {
			child = makeList(nil)
		}
		return p.handleExpressionParseError(ast.ErrMissingListCloseBracket, ExpectedCloseBracket, openBracket, child)
	}
	return makeList(closeBracket)
}

// testlist_comp: (namedexpr_test|star_expr) ( comp_for | (',' (namedexpr_test|star_expr))* [','] )
func (p *parser) parseTestListWithComprehension(isGenerator bool) exprListResult {
	sawComprehension := false
	return p.parseExpressionListGeneric(func() ast.Node {
		expr := p.parseTestOrStarExpression(true)
		if comp := p.tryParseComprehension(expr, isGenerator); comp != nil {
			sawComprehension = true
			return comp
		}
		return expr
	}, p.isNextTokenNeverExpression, func() bool { return sawComprehension })
}

// dictorsetmaker: ( ((test ':' test | '**' expr) (comp_for | (',' (test ':' test | '**' expr))* [','])) |
//                   ((test | star_expr) (comp_for | (',' (test | star_expr))* [','])) )
func (p *parser) parseDictionaryOrSetAtom() ast.Node {
	openBrace := p.pop()

	var dictEntries, setEntries ast.Nodes
	isDictionary, isSet, sawComprehension := false, false, false
	for p.peekKind() != tokenizer.CloseCurlyBrace {
		var key, value, expand ast.Node
		doubleStar := p.peek()
		if p.consumeTokenIfOperator(ast.OpPower) {
			expand = p.parseExpression(false)
		} else {
			key = p.parseTestOrStarExpression(true)
			walrusAllowed := !p.versionBelow(Python3_10)
			if p.consumeTokenIfKind(tokenizer.Colon) {
				value = p.parseTestExpression(false)
				walrusAllowed = false
			}
			if ae, ok := key.(*ast.AssignmentExpression); ok && !walrusAllowed && !ae.HasParentheses {
				p.addDiagnostic(WalrusNotAllowed, ae.WalrusRange)
			}
		}

		switch {
		case key != nil && value != nil:
			if _, ok := key.(*ast.Unpack); ok {
				p.addDiagnostic(UnpackIllegalHere, key.Range())
			}
			if isSet {
				p.addDiagnostic(KeyValueInSet, value.Range())
				break
			}
			entry := &ast.DictionaryKeyEntry{NodeBase: p.base(key.Range()), Key: key, Value: value}
			ast.ExtendRange(entry, value.Range())
			var n ast.Node = link(entry)
			if comp := p.tryParseComprehension(n, false); comp != nil {
				n = comp
				sawComprehension = true
			}
			dictEntries = append(dictEntries, n)
			isDictionary = true
		case expand != nil:
			if p.versionBelow(Python3_5) {
				p.addDiagnostic(DictUnpackIllegal, doubleStar.Range())
			}
			if isSet {
				p.addDiagnostic(UnpackIllegalHere, expand.Range())
				break
			}
			entry := &ast.DictionaryExpandEntry{NodeBase: p.base(doubleStar.Range()), Expr: expand}
			ast.ExtendRange(entry, expand.Range())
			var n ast.Node = link(entry)
			if comp := p.tryParseComprehension(n, false); comp != nil {
				n = comp
				sawComprehension = true
			}
			dictEntries = append(dictEntries, n)
			isDictionary = true
		default:
			if isDictionary {
				// Keep the key and mark the missing value just after it.
				missing := link(&ast.Error{NodeBase: p.base(ast.Range{Start: key.Range().End()}), Category: ast.ErrMissingDictValue})
				entry := &ast.DictionaryKeyEntry{NodeBase: p.base(key.Range()), Key: key, Value: missing}
				dictEntries = append(dictEntries, link(entry))
				p.addDiagnostic(DictKeyValuePairs, key.Range())
				break
			}
			if comp := p.tryParseComprehension(key, false); comp != nil {
				key = comp
				sawComprehension = true
			}
			setEntries = append(setEntries, key)
			isSet = true
		}

		if sawComprehension || p.peekKind() != tokenizer.Comma {
			break
		}
		p.pop()
	}

	closeBrace := p.peek()
	closed := p.consumeTokenIfKind(tokenizer.CloseCurlyBrace)
	if !closed {
		p.addDiagnostic(ExpectedCloseBrace, openBrace.Range())
	}

	var n ast.Node
	var entries ast.Nodes
	if isSet {
		set := &ast.Set{NodeBase: p.base(openBrace.Range()), Entries: setEntries}
		n, entries = set, setEntries
	} else {
		dict := &ast.Dictionary{NodeBase: p.base(openBrace.Range()), Entries: dictEntries}
		n, entries = dict, dictEntries
	}
	for _, e := range entries {
		ast.ExtendRange(n, e.Range())
	}
	if closed {
		ast.ExtendRange(n, closeBrace.Range())
	}
	return link(n)
}

// ---------------------------------------------------------------------------
// Comprehensions

// tryParseComprehension returns nil unless a "for" clause follows target.
func (p *parser) tryParseComprehension(target ast.Node, isGenerator bool) ast.Node {
	compFor := p.tryParseCompFor(isGenerator)
	if compFor == nil {
		return nil
	}

	switch target.(type) {
	case *ast.Unpack:
		p.addDiagnostic(UnpackIllegalInComprehension, target.Range())
	case *ast.DictionaryExpandEntry:
		p.addDiagnostic(DictExpandIllegalInComprehension, target.Range())
	}

	n := &ast.Comprehension{NodeBase: p.base(target.Range()), Expr: target, IsGenerator: isGenerator}
	n.ForIfNodes = append(n.ForIfNodes, compFor)
	for {
		var next ast.Node
		if f := p.tryParseCompFor(isGenerator); f != nil {
			next = f
		} else if i := p.tryParseCompIf(); i != nil {
			next = i
		} else {
			break
		}
		n.ForIfNodes = append(n.ForIfNodes, next)
	}
	ast.ExtendRange(n, n.ForIfNodes[len(n.ForIfNodes)-1].Range())
	return p.guardDepth(link(n))
}

// comp_for: ['async'] 'for' exprlist 'in' or_test
func (p *parser) tryParseCompFor(isGenerator bool) *ast.ComprehensionFor {
	var asyncTok *tokenizer.Token
	switch p.peekKeyword() {
	case tokenizer.KwAsync:
		if !p.peekToken(1).IsKeyword(tokenizer.KwFor) {
			return nil
		}
		asyncTok = p.pop()
		if !p.isInAsync && !isGenerator && !(p.opts.Interactive && !p.isInFunction) {
			p.addDiagnostic(AsyncNotInAsyncFunction, asyncTok.Range())
		}
	case tokenizer.KwFor:
	default:
		return nil
	}

	forTok := p.pop()
	target := p.parseExpressionListAsPossibleTuple(ast.ErrMissingExpression, ExpectedExpr, forTok)
	var iterable ast.Node
	if !p.consumeTokenIfKeyword(tokenizer.KwIn) {
		iterable = p.handleExpressionParseError(ast.ErrMissingIn, ExpectedIn, nil, nil)
	} else {
		iterable = p.withoutWalrus(p.parseOrTest)
	}

	start := forTok
	if asyncTok != nil {
		start = asyncTok
	}
	n := &ast.ComprehensionFor{NodeBase: p.base(start.Range()), Target: target, Iterable: iterable}
	if asyncTok != nil {
		n.IsAsync = true
		n.AsyncRange = asyncTok.Range()
	}
	ast.ExtendRange(n, target.Range())
	ast.ExtendRange(n, iterable.Range())
	return link(n)
}

// comp_if: 'if' test_nocond
func (p *parser) tryParseCompIf() *ast.ComprehensionIf {
	ifTok := p.peek()
	if !p.consumeTokenIfKeyword(tokenizer.KwIf) {
		return nil
	}
	var test ast.Node
	if p.peekKeyword() == tokenizer.KwLambda {
		test = p.parseLambdaExpression(false)
	} else {
		test = p.parseAssignmentExpression(true)
	}
	n := &ast.ComprehensionIf{NodeBase: p.base(ifTok.Range()), Test: test}
	ast.ExtendRange(n, test.Range())
	return link(n)
}

// ---------------------------------------------------------------------------

// yield_expr: 'yield' [yield_arg]
// yield_arg: 'from' test | testlist_star_expr
func (p *parser) tryParseYieldExpression() ast.Node {
	yieldTok := p.peek()
	if !p.consumeTokenIfKeyword(tokenizer.KwYield) {
		return nil
	}
	if !p.isInFunction {
		p.addDiagnostic(YieldOutsideFunction, yieldTok.Range())
	}

	if fromTok := p.peek(); p.consumeTokenIfKeyword(tokenizer.KwFrom) {
		if p.isInAsync {
			p.addDiagnostic(YieldFromInAsync, fromTok.Range())
		}
		expr := p.parseTestExpression(false)
		n := &ast.YieldFrom{NodeBase: p.base(yieldTok.Range()), Expr: expr}
		ast.ExtendRange(n, expr.Range())
		return p.guardDepth(link(n))
	}

	n := &ast.Yield{NodeBase: p.base(yieldTok.Range())}
	if !p.isNextTokenNeverExpression() {
		expr := p.parseTestOrStarListAsExpression(false, true, ast.ErrMissingExpression, ExpectedExpr)
		p.reportStarTupleElement(expr)
		n.Expr = expr
		ast.ExtendRange(n, expr.Range())
	}
	return p.guardDepth(link(n))
}
