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

// parseSuite parses ':' followed by an indented block or a statement on the
// same line. The suite range starts at the colon. postColon runs right after
// the colon and again after the newline, where type comments may appear.
func (p *parser) parseSuite(isFunction, skipBody bool, postColon func()) *ast.Suite {
	colon := p.peek()
	suite := &ast.Suite{NodeBase: p.base(colon.Range())}

	if !p.consumeTokenIfKind(tokenizer.Colon) {
		p.addDiagnostic(ExpectedColon, colon.Range())
		if p.consumeTokensUntilKind(tokenizer.NewLine, tokenizer.Colon) {
			if p.peekKind() == tokenizer.Colon {
				p.pop()
			} else if p.peekToken(1).Kind != tokenizer.Indent {
				// No block follows; give up on this one.
				p.pop()
				return link(suite)
			}
		}
		if p.atEOF() {
			return link(suite)
		}
	}

	if skipBody {
		p.skipSuiteBody()
		ast.ExtendRange(suite, p.peekToken(-1).Range())
		return link(suite)
	}

	if postColon != nil {
		postColon()
	}

	wasInFunction := p.isInFunction
	p.isInFunction = isFunction
	defer func() { p.isInFunction = wasInFunction }()

	if !p.consumeTokenIfKind(tokenizer.NewLine) {
		if stmt := p.parseStatement(); stmt != nil {
			suite.Statements = append(suite.Statements, stmt)
			ast.ExtendRange(suite, stmt.Range())
		}
		return link(suite)
	}

	if postColon != nil {
		postColon()
	}

	indent := p.peek()
	if !p.consumeTokenIfKind(tokenizer.Indent) {
		p.addDiagnostic(ExpectedIndentedBlock, p.peek().Range())
		return link(suite)
	}
	if indent.IsIndentAmbiguous {
		p.addDiagnostic(InconsistentTabs, indent.Range())
	}
	bodyIndent := indent.IndentAmount

	for {
		next := p.peek()
		switch next.Kind {
		case tokenizer.NewLine:
			p.pop()
			continue
		case tokenizer.Indent:
			p.pop()
			p.reportUnexpectedIndent(next)
			continue
		case tokenizer.Dedent:
			if next.IsDedentAmbiguous {
				p.addDiagnostic(InconsistentTabs, next.Range())
			} else if !next.MatchesIndent {
				p.addDiagnostic(InconsistentIndent, next.Range())
			}
			if next.IndentAmount >= bodyIndent {
				// Back to a level inside this block.
				p.pop()
				continue
			}
			// An empty suite leaves the dedent for the enclosing blocks.
			if len(suite.Statements) > 0 {
				p.pop()
			} else {
				ast.ExtendRange(suite, next.Range())
			}
			return link(suite)
		case tokenizer.EndOfStream:
			return link(suite)
		}

		if stmt := p.parseStatement(); stmt != nil {
			suite.Statements = append(suite.Statements, stmt)
			ast.ExtendRange(suite, stmt.Range())
		} else {
			p.consumeTokensUntilKind(tokenizer.NewLine)
		}
	}
}

// skipSuiteBody consumes a block without building nodes for it.
func (p *parser) skipSuiteBody() {
	if !p.consumeTokenIfKind(tokenizer.NewLine) {
		p.suppressErrors(func() { p.parseStatement() })
		return
	}
	if p.peekKind() != tokenizer.Indent {
		return
	}
	depth := 0
	for !p.atEOF() {
		t := p.pop()
		switch t.Kind {
		case tokenizer.Indent:
			depth++
		case tokenizer.Dedent:
			if t.IsDedentAmbiguous {
				p.addDiagnostic(InconsistentTabs, t.Range())
			}
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

// parseLoopSuite parses the body of a for or while loop and returns any type
// comment found after its colon.
func (p *parser) parseLoopSuite() (*ast.Suite, *tokenizer.Token) {
	wasInLoop, wasInFinally := p.isInLoop, p.isInFinally
	p.isInLoop = true
	p.isInFinally = false

	var typeComment *tokenizer.Token
	suite := p.parseSuite(p.isInFunction, false, func() {
		if typeComment == nil {
			typeComment = p.typeAnnotationCommentToken()
		}
	})

	p.isInLoop, p.isInFinally = wasInLoop, wasInFinally
	return suite, typeComment
}

// if_stmt: 'if' test_suite ('elif' test_suite)* ['else' suite]
func (p *parser) parseIfStatement(keyword tokenizer.KeywordType) *ast.If {
	ifTok := p.pop()
	test := p.parseTestExpression(true)
	suite := p.parseSuite(p.isInFunction, false, nil)
	n := &ast.If{NodeBase: p.base(ifTok.Range()), Test: test, IfSuite: suite, IsElif: keyword == tokenizer.KwElif}
	ast.ExtendRange(n, suite.Range())

	if p.consumeTokenIfKeyword(tokenizer.KwElse) {
		elseSuite := p.parseSuite(p.isInFunction, false, nil)
		n.ElseSuite = elseSuite
		ast.ExtendRange(n, elseSuite.Range())
	} else if p.peekKeyword() == tokenizer.KwElif {
		elif := p.parseIfStatement(tokenizer.KwElif)
		n.ElseSuite = elif
		ast.ExtendRange(n, elif.Range())
	}
	return link(n)
}

// while_stmt: 'while' test suite ['else' suite]
func (p *parser) parseWhileStatement() ast.Node {
	whileTok := p.pop()
	test := p.parseTestExpression(true)
	suite, _ := p.parseLoopSuite()
	n := &ast.While{NodeBase: p.base(whileTok.Range()), Test: test, WhileSuite: suite}
	ast.ExtendRange(n, suite.Range())
	if p.consumeTokenIfKeyword(tokenizer.KwElse) {
		n.ElseSuite = p.parseSuite(p.isInFunction, false, nil)
		ast.ExtendRange(n, n.ElseSuite.Range())
	}
	return link(n)
}

func (p *parser) checkAsync(asyncTok *tokenizer.Token) {
	if asyncTok != nil && !p.isInAsync && !(p.opts.Interactive && !p.isInFunction) {
		p.addDiagnostic(AsyncNotInAsyncFunction, asyncTok.Range())
	}
}

// for_stmt: [async] 'for' exprlist 'in' testlist suite ['else' suite]
func (p *parser) parseForStatement(asyncTok *tokenizer.Token) ast.Node {
	forTok := p.pop()
	p.checkAsync(asyncTok)

	target := p.parseExpressionListAsPossibleTuple(ast.ErrMissingExpression, ExpectedExpr, forTok)
	n := &ast.For{NodeBase: p.base(forTok.Range()), Target: target}
	if asyncTok != nil {
		n.IsAsync = true
		n.AsyncRange = asyncTok.Range()
		ast.ExtendRange(n, asyncTok.Range())
	}
	ast.ExtendRange(n, target.Range())

	if !p.consumeTokenIfKeyword(tokenizer.KwIn) {
		n.Iterable = p.handleExpressionParseError(ast.ErrMissingIn, ExpectedIn, nil, nil)
		n.ForSuite = link(&ast.Suite{NodeBase: p.base(p.emptyRangeAtPeek())})
	} else {
		n.Iterable = p.parseTestOrStarListAsExpression(false, true, ast.ErrMissingExpression, ExpectedInExpr)
		if p.versionBelow(Python3_9) {
			if tuple, ok := n.Iterable.(*ast.Tuple); ok && !tuple.EnclosedInParens {
				for _, e := range tuple.Exprs {
					if _, ok := e.(*ast.Unpack); ok {
						p.addDiagnostic(UnpackIllegalHere, e.Range())
						break
					}
				}
			}
		}

		var typeComment *tokenizer.Token
		n.ForSuite, typeComment = p.parseLoopSuite()
		if typeComment != nil {
			n.TypeComment = p.makeTypeCommentString(typeComment)
		}
		if p.consumeTokenIfKeyword(tokenizer.KwElse) {
			n.ElseSuite = p.parseSuite(p.isInFunction, false, nil)
		}
	}

	ast.ExtendRange(n, n.Iterable.Range())
	ast.ExtendRange(n, n.ForSuite.Range())
	if n.ElseSuite != nil {
		ast.ExtendRange(n, n.ElseSuite.Range())
	}
	return link(n)
}

// try_stmt: 'try' suite (except_clause suite)+ ['else' suite] ['finally' suite]
func (p *parser) parseTryStatement() ast.Node {
	tryTok := p.pop()
	trySuite := p.parseSuite(p.isInFunction, false, nil)
	n := &ast.Try{NodeBase: p.base(tryTok.Range()), TrySuite: trySuite}
	ast.ExtendRange(n, trySuite.Range())

	sawStandardExcept, sawExceptGroup := false, false
	for {
		exceptTok := p.peek()
		if !p.consumeTokenIfKeyword(tokenizer.KwExcept) {
			break
		}

		except := &ast.Except{NodeBase: p.base(exceptTok.Range())}
		if star := p.peek(); star.IsOperator(ast.OpMultiply) {
			p.pop()
			if p.versionBelow(Python3_11) {
				p.addDiagnostic(ExceptionGroupIncompatible, star.Range())
			}
			except.IsExceptGroup = true
			if sawStandardExcept {
				p.addDiagnostic(ExceptGroupMismatch, star.Range())
			}
			sawExceptGroup = true
		} else {
			if sawExceptGroup {
				p.addDiagnostic(ExceptGroupMismatch, exceptTok.Range())
			}
			sawStandardExcept = true
		}

		if p.peekKind() != tokenizer.Colon {
			except.TypeExpr = p.parseExceptType()
			ast.ExtendRange(except, except.TypeExpr.Range())
			if p.consumeTokenIfKeyword(tokenizer.KwAs) {
				if nameTok := p.getTokenIfIdentifier(); nameTok != nil {
					except.Name = p.makeName(nameTok)
					ast.ExtendRange(except, except.Name.Range())
				} else {
					p.addDiagnostic(ExpectedNameAfterAs, p.peek().Range())
				}
			}
		} else if except.IsExceptGroup {
			p.addDiagnostic(ExceptGroupRequiresType, p.peek().Range())
		}

		except.ExceptSuite = p.parseSuite(p.isInFunction, false, nil)
		ast.ExtendRange(except, except.ExceptSuite.Range())
		n.ExceptClauses = append(n.ExceptClauses, link(except))
		ast.ExtendRange(n, except.Range())
	}

	if len(n.ExceptClauses) > 0 && p.consumeTokenIfKeyword(tokenizer.KwElse) {
		n.ElseSuite = p.parseSuite(p.isInFunction, false, nil)
		ast.ExtendRange(n, n.ElseSuite.Range())
	}

	if p.consumeTokenIfKeyword(tokenizer.KwFinally) {
		wasInFinally := p.isInFinally
		p.isInFinally = true
		n.FinallySuite = p.parseSuite(p.isInFunction, false, nil)
		p.isInFinally = wasInFinally
		ast.ExtendRange(n, n.FinallySuite.Range())
	}

	if len(n.ExceptClauses) == 0 && n.FinallySuite == nil {
		p.addDiagnostic(ExpectedExceptOrFinally, p.peek().Range())
	}
	return link(n)
}

// parseExceptType accepts "except A, B:" as a tuple of exception types.
func (p *parser) parseExceptType() ast.Node {
	first := p.parseTestExpression(true)
	if p.peekKind() != tokenizer.Comma {
		return first
	}
	tuple := &ast.Tuple{NodeBase: p.base(first.Range()), Exprs: ast.Nodes{first}}
	for p.consumeTokenIfKind(tokenizer.Comma) {
		if p.peekKind() == tokenizer.Colon || p.peekKeyword() == tokenizer.KwAs {
			break
		}
		e := p.parseTestExpression(true)
		tuple.Exprs = append(tuple.Exprs, e)
		ast.ExtendRange(tuple, e.Range())
	}
	if p.versionBelow(Python3_14) || p.peekKeyword() == tokenizer.KwAs {
		p.addDiagnostic(ExceptRequiresParens, tuple.Range())
	}
	return link(tuple)
}

// with_stmt: [async] 'with' with_item (',' with_item)* suite
func (p *parser) parseWithStatement(asyncTok *tokenizer.Token) ast.Node {
	withTok := p.pop()
	p.checkAsync(asyncTok)

	// "with (a, b):" is ambiguous between a tuple and parenthesized items.
	// Look ahead with errors suppressed to decide.
	isParenthesized := false
	if p.peekKind() == tokenizer.OpenParenthesis {
		saved := p.currT
		p.suppressErrors(func() {
			p.pop()
			items := p.parseWithItems()
			if p.peekKind() == tokenizer.CloseParenthesis && p.peekToken(1).Kind == tokenizer.Colon {
				isParenthesized = len(items) != 1 || items[0].Target != nil
			}
		})
		p.currT = saved
	}

	openParen := p.peek()
	if isParenthesized {
		p.pop()
		if p.versionBelow(Python3_9) {
			p.addDiagnostic(ParenthesizedContextManagerIllegal, openParen.Range())
		}
	}
	items := p.parseWithItems()
	if isParenthesized && !p.consumeTokenIfKind(tokenizer.CloseParenthesis) {
		p.addDiagnostic(ExpectedCloseParen, openParen.Range())
	}

	var typeComment *tokenizer.Token
	suite := p.parseSuite(p.isInFunction, false, func() {
		if typeComment == nil {
			typeComment = p.typeAnnotationCommentToken()
		}
	})

	n := &ast.With{NodeBase: p.base(withTok.Range()), WithItems: items, Suite: suite}
	if asyncTok != nil {
		n.IsAsync = true
		n.AsyncRange = asyncTok.Range()
		ast.ExtendRange(n, asyncTok.Range())
	}
	if typeComment != nil {
		n.TypeComment = p.makeTypeCommentString(typeComment)
	}
	ast.ExtendRange(n, suite.Range())
	return link(n)
}

func (p *parser) parseWithItems() []*ast.WithItem {
	var items []*ast.WithItem
	for {
		expr := p.parseTestExpression(true)
		item := &ast.WithItem{NodeBase: p.base(expr.Range()), Expr: expr}
		if p.consumeTokenIfKeyword(tokenizer.KwAs) {
			item.Target = p.parseExpression(false)
			ast.ExtendRange(item, item.Target.Range())
		}
		items = append(items, link(item))
		if !p.consumeTokenIfKind(tokenizer.Comma) || p.peekKind() == tokenizer.CloseParenthesis {
			break
		}
	}
	return items
}

// ---------------------------------------------------------------------------
// Definitions

func (p *parser) parseAsyncStatement() ast.Node {
	asyncTok := p.pop()
	switch p.peekKeyword() {
	case tokenizer.KwDef:
		return p.parseFunctionDef(asyncTok, nil)
	case tokenizer.KwWith:
		return p.parseWithStatement(asyncTok)
	case tokenizer.KwFor:
		return p.parseForStatement(asyncTok)
	}
	p.addDiagnostic(ExpectedAfterAsync, p.peek().Range())
	return nil
}

// decorated: decorator+ (classdef | funcdef | async_funcdef)
func (p *parser) parseDecorated() ast.Node {
	var decorators []*ast.Decorator
	for p.peekOperator() == ast.OpMatrixMultiply {
		decorators = append(decorators, p.parseDecorator())
	}

	switch next := p.peek(); {
	case next.IsKeyword(tokenizer.KwAsync) && p.peekToken(1).IsKeyword(tokenizer.KwDef):
		asyncTok := p.pop()
		return p.parseFunctionDef(asyncTok, decorators)
	case next.IsKeyword(tokenizer.KwDef):
		return p.parseFunctionDef(nil, decorators)
	case next.IsKeyword(tokenizer.KwClass):
		return p.parseClassDef(decorators)
	}

	p.addDiagnostic(ExpectedAfterDecorator, p.peek().Range())
	return p.decoratedError(ast.ErrMissingExpression, decorators[0].Range(), nil, decorators)
}

func (p *parser) decoratedError(category ast.ErrorCategory, r ast.Range, child ast.Node, decorators []*ast.Decorator) *ast.Error {
	n := &ast.Error{NodeBase: p.base(r), Category: category, Decorators: decorators}
	if child != nil {
		n.Child = child
		ast.ExtendRange(n, child.Range())
	}
	for _, d := range decorators {
		ast.ExtendRange(n, d.Range())
	}
	return link(n)
}

// decorator: '@' namedexpr_test NEWLINE
func (p *parser) parseDecorator() *ast.Decorator {
	atTok := p.pop()
	n := &ast.Decorator{NodeBase: p.base(atTok.Range())}
	if p.peekKind() == tokenizer.NewLine {
		n.Expr = p.handleExpressionParseError(ast.ErrMissingDecoratorCallName, ExpectedExpr, nil, nil)
	} else {
		n.Expr = p.parseTestExpression(true)
	}
	ast.ExtendRange(n, n.Expr.Range())

	if !p.consumeTokenIfKind(tokenizer.NewLine) {
		p.addDiagnostic(ExpectedDecoratorNewline, p.peek().Range())
		p.skipLine()
	}
	return link(n)
}

// funcdef: 'def' NAME [type_params] parameters ['->' test] ':' suite
func (p *parser) parseFunctionDef(asyncTok *tokenizer.Token, decorators []*ast.Decorator) ast.Node {
	defTok := p.pop()
	nameTok := p.getTokenIfIdentifier()
	if nameTok == nil {
		p.addDiagnostic(ExpectedFunctionName, defTok.Range())
		return p.decoratedError(ast.ErrMissingFunctionParameterList, defTok.Range(), nil, decorators)
	}

	var typeParams *ast.TypeParameterList
	if p.peekKind() == tokenizer.OpenBracket {
		typeParams = p.parseTypeParameterList()
		if p.versionBelow(Python3_12) {
			p.addDiagnostic(TypeParameterSyntaxIllegal, typeParams.Range())
		}
	}

	openParen := p.peek()
	if !p.consumeTokenIfKind(tokenizer.OpenParenthesis) {
		p.addDiagnostic(ExpectedOpenParen, p.peek().Range())
		name := p.makeName(nameTok)
		return p.decoratedError(ast.ErrMissingFunctionParameterList, defTok.Range(), name, decorators)
	}

	params := p.parseVarArgsList(tokenizer.CloseParenthesis, true)
	if !p.consumeTokenIfKind(tokenizer.CloseParenthesis) {
		p.addDiagnostic(ExpectedCloseParen, openParen.Range())
		p.consumeTokensUntilKind(tokenizer.Colon, tokenizer.NewLine)
	}

	var returnType ast.Node
	if p.consumeTokenIfKind(tokenizer.Arrow) {
		returnType = p.parseTypeAnnotation(false)
	}

	wasInLoop, wasInAsync := p.isInLoop, p.isInAsync
	p.isInLoop = false
	p.isInAsync = asyncTok != nil

	var typeComment *tokenizer.Token
	suite := p.parseSuite(true, p.opts.SkipFunctionAndClassBody, func() {
		if typeComment == nil {
			typeComment = p.typeAnnotationCommentToken()
		}
	})

	p.isInLoop, p.isInAsync = wasInLoop, wasInAsync

	fn := &ast.Function{
		NodeBase:       p.base(defTok.Range()),
		Decorators:     decorators,
		IsAsync:        asyncTok != nil,
		Name:           p.makeName(nameTok),
		TypeParameters: typeParams,
		Parameters:     params,
		Suite:          suite,
	}
	if returnType != nil {
		fn.ReturnAnnotation = returnType
	}
	if asyncTok != nil {
		ast.ExtendRange(fn, asyncTok.Range())
	}
	for _, d := range decorators {
		ast.ExtendRange(fn, d.Range())
	}
	ast.ExtendRange(fn, suite.Range())
	link(fn)

	if typeComment != nil {
		p.parseFunctionTypeAnnotationComment(typeComment, fn)
		link(fn)
	}
	return fn
}

// classdef: 'class' NAME [type_params] ['(' [arglist] ')'] suite
func (p *parser) parseClassDef(decorators []*ast.Decorator) ast.Node {
	classTok := p.pop()

	var name *ast.Name
	if nameTok := p.getTokenIfIdentifier(); nameTok != nil {
		name = p.makeName(nameTok)
	} else {
		p.addDiagnostic(ExpectedClassName, p.peek().Range())
		name = link(&ast.Name{NodeBase: p.base(p.emptyRangeAtPeek())})
	}

	var typeParams *ast.TypeParameterList
	if p.peekKind() == tokenizer.OpenBracket {
		typeParams = p.parseTypeParameterList()
		if p.versionBelow(Python3_12) {
			p.addDiagnostic(TypeParameterSyntaxIllegal, typeParams.Range())
		}
	}

	var args []*ast.Argument
	if openParen := p.peek(); p.consumeTokenIfKind(tokenizer.OpenParenthesis) {
		args, _ = p.parseArgList()
		if !p.consumeTokenIfKind(tokenizer.CloseParenthesis) {
			p.addDiagnostic(ExpectedCloseParen, openParen.Range())
		}
	}

	suite := p.parseSuite(false, p.opts.SkipFunctionAndClassBody, nil)

	n := &ast.Class{
		NodeBase:       p.base(classTok.Range()),
		Decorators:     decorators,
		Name:           name,
		TypeParameters: typeParams,
		Arguments:      args,
		Suite:          suite,
	}
	for _, d := range decorators {
		ast.ExtendRange(n, d.Range())
	}
	ast.ExtendRange(n, suite.Range())
	return link(n)
}

// ---------------------------------------------------------------------------
// Match

// tryParseMatchStatement returns nil when "match" is used as a name. The
// subject is parsed speculatively; a colon after it decides.
func (p *parser) tryParseMatchStatement() ast.Node {
	switch p.peekToken(1).Kind {
	case tokenizer.Colon, tokenizer.Semicolon, tokenizer.Comma, tokenizer.Dot,
		tokenizer.NewLine, tokenizer.EndOfStream:
		return nil
	}

	looksLikeMatch := false
	saved := p.currT
	p.suppressErrors(func() {
		p.pop()
		subject := p.parseTestOrStarListAsExpression(true, true, ast.ErrMissingPatternSubject, ExpectedPatternSubjectExpr)
		_, isErr := subject.(*ast.Error)
		looksLikeMatch = !isErr && p.peekKind() == tokenizer.Colon
	})
	p.currT = saved
	if !looksLikeMatch {
		return nil
	}

	matchTok := p.pop()
	subject := p.parseTestOrStarListAsExpression(true, true, ast.ErrMissingPatternSubject, ExpectedPatternSubjectExpr)
	n := &ast.Match{NodeBase: p.base(matchTok.Range()), Subject: subject}
	ast.ExtendRange(n, subject.Range())

	if colon := p.peek(); p.consumeTokenIfKind(tokenizer.Colon) {
		ast.ExtendRange(n, colon.Range())
	} else {
		p.addDiagnostic(ExpectedColon, colon.Range())
		p.consumeTokensUntilKind(tokenizer.NewLine)
	}

	if !p.consumeTokenIfKind(tokenizer.NewLine) {
		p.addDiagnostic(ExpectedNewline, p.peek().Range())
	} else {
		indent := p.peek()
		if !p.consumeTokenIfKind(tokenizer.Indent) {
			p.addDiagnostic(ExpectedIndentedBlock, p.peek().Range())
		} else {
			if indent.IsIndentAmbiguous {
				p.addDiagnostic(InconsistentTabs, indent.Range())
			}
			p.parseCaseBlock(n)
		}
	}

	if len(n.Cases) == 0 {
		p.addDiagnostic(ExpectedCase, matchTok.Range())
	}
	if p.versionBelow(Python3_10) {
		p.addDiagnostic(MatchIncompatible, matchTok.Range())
	}

	// Only the last case may match unconditionally.
	for i, c := range n.Cases {
		if i < len(n.Cases)-1 && c.Guard == nil && c.IsIrrefutable {
			p.addDiagnostic(CasePatternIsIrrefutable, c.Pattern.Range())
		}
	}
	return link(n)
}

func (p *parser) parseCaseBlock(n *ast.Match) {
	for {
		if next := p.peek(); next.Kind == tokenizer.Indent {
			p.pop()
			p.reportUnexpectedIndent(next)
		}

		if c := p.parseCaseStatement(); c != nil {
			n.Cases = append(n.Cases, c)
			ast.ExtendRange(n, c.Range())
		} else if p.consumeTokensUntilKind(tokenizer.NewLine, tokenizer.Colon) {
			p.pop()
		}

		if dedent := p.peek(); p.consumeTokenIfKind(tokenizer.Dedent) {
			if dedent.IsDedentAmbiguous {
				p.addDiagnostic(InconsistentTabs, dedent.Range())
			} else if !dedent.MatchesIndent {
				p.addDiagnostic(InconsistentIndent, dedent.Range())
			}
			return
		}
		if p.atEOF() {
			return
		}
	}
}
