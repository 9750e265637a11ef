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

// Every expression parse function returns a non-nil node. Failures are
// returned as *ast.Error.

// isError reports whether n is an error node that ends the construct being
// parsed. A depth error replaces a complete subtree, so parsing carries on
// after it.
func isError(n ast.Node) bool {
	e, ok := n.(*ast.Error)
	return ok && e.Category != ast.ErrMaxDepthExceeded
}

// isNextTokenNeverExpression reports whether the next token cannot start an
// expression.
func (p *parser) isNextTokenNeverExpression() bool {
	t := p.peek()
	switch t.Kind {
	case tokenizer.Keyword:
		switch t.Keyword {
		case tokenizer.KwFor, tokenizer.KwIn, tokenizer.KwIf:
			return true
		}
	case tokenizer.Operator:
		return t.Operator == ast.OpAssign || t.Operator.IsAugmentedAssignment()
	case tokenizer.Indent, tokenizer.Dedent, tokenizer.NewLine, tokenizer.EndOfStream,
		tokenizer.Semicolon, tokenizer.CloseParenthesis, tokenizer.CloseBracket,
		tokenizer.CloseCurlyBrace, tokenizer.Comma, tokenizer.Colon:
		return true
	}
	return false
}

type exprListResult struct {
	list          ast.Nodes
	trailingComma bool
	parseError    ast.Node
}

// parseExpressionListGeneric parses comma-separated entries until terminal
// reports true, an entry fails, or finalEntry asks to stop.
func (p *parser) parseExpressionListGeneric(parse func() ast.Node, terminal, finalEntry func() bool) exprListResult {
	var res exprListResult
	for {
		if terminal() {
			break
		}
		expr := parse()
		if isError(expr) {
			res.parseError = expr
			break
		}
		res.list = append(res.list, expr)
		if finalEntry != nil && finalEntry() {
			break
		}
		if !p.consumeTokenIfKind(tokenizer.Comma) {
			res.trailingComma = false
			break
		}
		res.trailingComma = true
	}
	return res
}

// makeExpressionOrTuple returns a lone expression as is. An empty tuple
// starts at the previous token, which is the open parenthesis.
func (p *parser) makeExpressionOrTuple(res exprListResult, enclosedInParens bool) ast.Node {
	if len(res.list) == 1 && !res.trailingComma {
		return res.list[0]
	}
	r := p.peekToken(-1).Range()
	if len(res.list) > 0 {
		r = res.list[0].Range()
	}
	tuple := &ast.Tuple{NodeBase: p.base(r), Exprs: res.list, EnclosedInParens: enclosedInParens}
	if len(res.list) > 0 {
		ast.ExtendRange(tuple, res.list[len(res.list)-1].Range())
	}
	return link(tuple)
}

// exprlist: (expr|star_expr) (',' (expr|star_expr))* [',']
func (p *parser) parseExpressionList(allowStar bool) exprListResult {
	return p.parseExpressionListGeneric(func() ast.Node { return p.parseExpression(allowStar) },
		p.isNextTokenNeverExpression, nil)
}

func (p *parser) parseExpressionListAsPossibleTuple(category ast.ErrorCategory, kind DiagnosticKind, errTok *tokenizer.Token) ast.Node {
	if p.isNextTokenNeverExpression() {
		p.addDiagnostic(kind, errTok.Range())
		return link(&ast.Error{NodeBase: p.base(errTok.Range()), Category: category})
	}
	res := p.parseExpressionList(true)
	if res.parseError != nil {
		return res.parseError
	}
	return p.makeExpressionOrTuple(res, false)
}

// testlist_star_expr: (test|star_expr) (',' (test|star_expr))* [',']
func (p *parser) parseTestOrStarListAsExpression(allowWalrus, allowMultipleUnpack bool,
	category ast.ErrorCategory, kind DiagnosticKind) ast.Node {

	if p.isNextTokenNeverExpression() {
		return p.handleExpressionParseError(category, kind, nil, nil)
	}
	res := p.parseExpressionListGeneric(func() ast.Node { return p.parseTestOrStarExpression(allowWalrus) },
		p.isNextTokenNeverExpression, nil)
	if res.parseError != nil {
		return res.parseError
	}
	if !allowMultipleUnpack {
		sawStar := false
		for _, e := range res.list {
			if _, ok := e.(*ast.Unpack); ok {
				if sawStar {
					p.addDiagnostic(DuplicateUnpack, e.Range())
					break
				}
				sawStar = true
			}
		}
	}
	return p.makeExpressionOrTuple(res, false)
}

func (p *parser) parseTestOrStarExpression(allowWalrus bool) ast.Node {
	if p.peekOperator() == ast.OpMultiply {
		return p.parseExpression(true)
	}
	return p.parseTestExpression(allowWalrus)
}

// expr: ['*'] bitwise_or
func (p *parser) parseExpression(allowUnpack bool) ast.Node {
	start := p.peek()
	if allowUnpack && p.consumeTokenIfOperator(ast.OpMultiply) {
		expr := p.parseExpression(false)
		n := &ast.Unpack{NodeBase: p.base(start.Range()), Expr: expr}
		ast.ExtendRange(n, expr.Range())
		return p.guardDepth(link(n))
	}
	return p.parseBitwiseOrExpression()
}

// test: or_test ['if' or_test 'else' test] | lambdef
func (p *parser) parseTestExpression(allowWalrus bool) ast.Node {
	if p.peekKeyword() == tokenizer.KwLambda {
		return p.parseLambdaExpression(true)
	}

	ifExpr := p.parseAssignmentExpression(!allowWalrus)
	if isError(ifExpr) || !p.consumeTokenIfKeyword(tokenizer.KwIf) {
		return ifExpr
	}

	testExpr := p.parseOrTest()
	if isError(testExpr) {
		return testExpr
	}

	var elseExpr ast.Node
	if p.consumeTokenIfKeyword(tokenizer.KwElse) {
		elseExpr = p.parseTestExpression(true)
	} else {
		elseExpr = p.handleExpressionParseError(ast.ErrMissingElse, ExpectedElse, nil, nil)
	}
	n := &ast.Ternary{NodeBase: p.base(ifExpr.Range()), IfExpr: ifExpr, TestExpr: testExpr, ElseExpr: elseExpr}
	ast.ExtendRange(n, elseExpr.Range())
	return p.guardDepth(link(n))
}

// namedexpr_test: NAME ':=' test
func (p *parser) parseAssignmentExpression(disallow bool) ast.Node {
	left := p.parseOrTest()
	name, ok := left.(*ast.Name)
	if !ok {
		return left
	}
	walrus := p.peek()
	if !p.consumeTokenIfOperator(ast.OpWalrus) {
		return left
	}
	if disallow || p.disallowWalrus || p.isParsingTypeAnnotation {
		p.addDiagnostic(WalrusNotAllowed, walrus.Range())
	}
	if p.versionBelow(Python3_8) {
		p.addDiagnostic(WalrusIllegal, walrus.Range())
	}
	right := p.parseTestExpression(false)
	n := &ast.AssignmentExpression{NodeBase: p.base(name.Range()), Name: name, WalrusRange: walrus.Range(), Right: right}
	ast.ExtendRange(n, right.Range())
	return p.guardDepth(link(n))
}

// withoutWalrus runs fn with assignment expressions reported as errors.
func (p *parser) withoutWalrus(fn func() ast.Node) ast.Node {
	was := p.disallowWalrus
	p.disallowWalrus = true
	n := fn()
	p.disallowWalrus = was
	return n
}

// ---------------------------------------------------------------------------
// Operators

func (p *parser) makeBinary(left ast.Node, op ast.Operator, opRange ast.Range, right ast.Node) ast.Node {
	n := &ast.BinaryOperation{NodeBase: p.base(left.Range()), Left: left, Operator: op, OperatorRange: opRange, Right: right}
	ast.ExtendRange(n, right.Range())
	return p.guardDepth(link(n))
}

func (p *parser) makeUnary(opTok *tokenizer.Token, op ast.Operator, expr ast.Node) ast.Node {
	n := &ast.UnaryOperation{NodeBase: p.base(opTok.Range()), Operator: op, OperatorRange: opTok.Range(), Expr: expr}
	ast.ExtendRange(n, expr.Range())
	return p.guardDepth(link(n))
}

// parseLeftAssociative parses operand (op operand)*. match maps the next
// token to an operator.
func (p *parser) parseLeftAssociative(operand func() ast.Node, match func(*tokenizer.Token) (ast.Operator, bool)) ast.Node {
	left := operand()
	if isError(left) {
		return left
	}
	for {
		opTok := p.peek()
		op, ok := match(opTok)
		if !ok {
			return left
		}
		p.pop()
		right := operand()
		left = p.makeBinary(left, op, opTok.Range(), right)
		if isError(right) {
			return left
		}
	}
}

func keywordOperator(kw tokenizer.KeywordType, op ast.Operator) func(*tokenizer.Token) (ast.Operator, bool) {
	return func(t *tokenizer.Token) (ast.Operator, bool) {
		return op, t.IsKeyword(kw)
	}
}

func operators(ops ...ast.Operator) func(*tokenizer.Token) (ast.Operator, bool) {
	return func(t *tokenizer.Token) (ast.Operator, bool) {
		if t.Kind != tokenizer.Operator {
			return ast.OpNone, false
		}
		for _, op := range ops {
			if t.Operator == op {
				return op, true
			}
		}
		return ast.OpNone, false
	}
}

// or_test: and_test ('or' and_test)*
func (p *parser) parseOrTest() ast.Node {
	return p.parseLeftAssociative(p.parseAndTest, keywordOperator(tokenizer.KwOr, ast.OpOr))
}

// and_test: not_test ('and' not_test)*
func (p *parser) parseAndTest() ast.Node {
	return p.parseLeftAssociative(p.parseNotTest, keywordOperator(tokenizer.KwAnd, ast.OpAnd))
}

// not_test: 'not' not_test | comparison
func (p *parser) parseNotTest() ast.Node {
	notTok := p.peek()
	if p.consumeTokenIfKeyword(tokenizer.KwNot) {
		return p.makeUnary(notTok, ast.OpNot, p.parseNotTest())
	}
	return p.parseComparison()
}

func isComparisonOperator(op ast.Operator) bool {
	switch op {
	case ast.OpEquals, ast.OpNotEquals, ast.OpLessThan, ast.OpLessThanOrEqual,
		ast.OpGreaterThan, ast.OpGreaterThanOrEqual, ast.OpLessOrGreaterThan:
		return true
	}
	return false
}

// comparison: expr (comp_op expr)*
//
// Chains nest to the right: "a < b < c" is a < (b < c).
func (p *parser) parseComparison() ast.Node {
	left := p.parseBitwiseOrExpression()
	if isError(left) {
		return left
	}

	opTok := p.peek()
	opRange := opTok.Range()
	var op ast.Operator
	switch {
	case opTok.Kind == tokenizer.Operator && isComparisonOperator(opTok.Operator):
		p.pop()
		op = opTok.Operator
		if op == ast.OpLessOrGreaterThan {
			p.addDiagnostic(OperatorLessOrGreaterDeprecated, opRange)
			op = ast.OpNotEquals
		}
	case opTok.IsKeyword(tokenizer.KwIn):
		p.pop()
		op = ast.OpIn
	case opTok.IsKeyword(tokenizer.KwIs):
		p.pop()
		op = ast.OpIs
		if not := p.peek(); not.IsKeyword(tokenizer.KwNot) {
			p.pop()
			op = ast.OpIsNot
			opRange = opRange.Extend(not.Range())
		}
	case opTok.IsKeyword(tokenizer.KwNot) && p.peekToken(1).IsKeyword(tokenizer.KwIn):
		p.pop()
		in := p.pop()
		op = ast.OpNotIn
		opRange = opRange.Extend(in.Range())
	default:
		return left
	}

	right := p.parseComparison()
	return p.makeBinary(left, op, opRange, right)
}

// bitwise_or: xor_expr ('|' xor_expr)*
func (p *parser) parseBitwiseOrExpression() ast.Node {
	return p.parseLeftAssociative(p.parseBitwiseXorExpression, operators(ast.OpBitwiseOr))
}

func (p *parser) parseBitwiseXorExpression() ast.Node {
	return p.parseLeftAssociative(p.parseBitwiseAndExpression, operators(ast.OpBitwiseXor))
}

func (p *parser) parseBitwiseAndExpression() ast.Node {
	return p.parseLeftAssociative(p.parseShiftExpression, operators(ast.OpBitwiseAnd))
}

func (p *parser) parseShiftExpression() ast.Node {
	return p.parseLeftAssociative(p.parseArithmeticExpression, operators(ast.OpLeftShift, ast.OpRightShift))
}

func (p *parser) parseArithmeticExpression() ast.Node {
	return p.parseLeftAssociative(p.parseArithmeticTerm, operators(ast.OpAdd, ast.OpSubtract))
}

func (p *parser) parseArithmeticTerm() ast.Node {
	return p.parseLeftAssociative(p.parseArithmeticFactor,
		operators(ast.OpMultiply, ast.OpMatrixMultiply, ast.OpDivide, ast.OpMod, ast.OpFloorDivide))
}

// factor: ('+'|'-'|'~') factor | power
// power: atom_expr ['**' factor]
func (p *parser) parseArithmeticFactor() ast.Node {
	t := p.peek()
	if t.Kind == tokenizer.Operator {
		switch t.Operator {
		case ast.OpAdd, ast.OpSubtract, ast.OpBitwiseInvert:
			p.pop()
			return p.makeUnary(t, t.Operator, p.parseArithmeticFactor())
		}
	}

	left := p.parseAtomExpression()
	if isError(left) {
		return left
	}
	powTok := p.peek()
	if p.consumeTokenIfOperator(ast.OpPower) {
		return p.makeBinary(left, ast.OpPower, powTok.Range(), p.parseArithmeticFactor())
	}
	return left
}

// ---------------------------------------------------------------------------
// Trailers

// atom_expr: ['await'] atom trailer*
func (p *parser) parseAtomExpression() ast.Node {
	var awaitTok *tokenizer.Token
	if p.peekKeyword() == tokenizer.KwAwait && !p.isParsingTypeAnnotation {
		awaitTok = p.pop()
		if !p.isInAsync && !(p.opts.Interactive && !p.isInFunction) {
			p.addDiagnostic(AwaitNotInAsyncFunction, awaitTok.Range())
		}
	}

	expr := p.parseAtom()
	if isError(expr) {
		return expr
	}

loop:
	for {
		start := p.peek()
		switch start.Kind {
		case tokenizer.OpenParenthesis:
			p.pop()
			call, terminated := p.parseCallTrailer(expr, start)
			if !terminated {
				return call
			}
			expr = p.guardDepth(call)
		case tokenizer.OpenBracket:
			p.pop()
			expr = p.guardDepth(p.parseIndexTrailer(expr, start))
		case tokenizer.Dot:
			p.pop()
			memberTok := p.getTokenIfIdentifier()
			if memberTok == nil {
				return p.handleExpressionParseError(ast.ErrMissingMemberAccessName, ExpectedMemberName, start, expr,
					tokenizer.NewLine)
			}
			member := p.makeName(memberTok)
			n := &ast.MemberAccess{NodeBase: p.base(expr.Range()), LeftExpr: expr, Member: member}
			ast.ExtendRange(n, member.Range())
			expr = p.guardDepth(link(n))
		default:
			break loop
		}
	}

	if awaitTok != nil {
		n := &ast.Await{NodeBase: p.base(awaitTok.Range()), Expr: expr}
		ast.ExtendRange(n, expr.Range())
		return p.guardDepth(link(n))
	}
	return expr
}

// parseCallTrailer parses the arguments after "(". An unclosed call is
// returned wrapped in an error node.
func (p *parser) parseCallTrailer(left ast.Node, openParen *tokenizer.Token) (ast.Node, bool) {
	// Calls are not type expressions, but their arguments may contain them
	// in constructs like Annotated.
	wasParsingTypeAnnotation := p.isParsingTypeAnnotation
	p.isParsingTypeAnnotation = false
	args, trailingComma := p.parseArgList()
	p.isParsingTypeAnnotation = wasParsingTypeAnnotation

	call := &ast.Call{NodeBase: p.base(left.Range()), LeftExpr: left, Arguments: args, TrailingComma: trailingComma}
	for _, arg := range args {
		ast.ExtendRange(call, arg.Range())
	}
	if len(args) > 1 || trailingComma {
		for _, arg := range args {
			if comp, ok := arg.ValueExpr.(*ast.Comprehension); ok && !comp.HasParentheses {
				p.addDiagnostic(GeneratorNotParenthesized, comp.Range())
			}
		}
	}

	closeParen := p.peek()
	if !p.consumeTokenIfKind(tokenizer.CloseParenthesis) {
		p.addDiagnostic(ExpectedCloseParen, openParen.Range())
		p.consumeTokensUntilKind(tokenizer.NewLine)
		link(call)
		errNode := &ast.Error{NodeBase: p.base(call.Range()), Category: ast.ErrMissingCallCloseParen, Child: call}
		ast.ExtendRange(errNode, ast.Range{Start: p.peek().Start})
		return link(errNode), false
	}
	ast.ExtendRange(call, closeParen.Range())
	return link(call), true
}

func (p *parser) parseIndexTrailer(left ast.Node, openBracket *tokenizer.Token) ast.Node {
	// Literal[...] and Annotated[...] take arguments that are not types.
	wasParsingTypeAnnotation := p.isParsingTypeAnnotation
	if p.isTypingAnnotation(left, "Literal") || p.isTypingAnnotation(left, "Annotated") {
		p.isParsingTypeAnnotation = false
	}
	items, trailingComma := p.parseSubscriptList()
	p.isParsingTypeAnnotation = wasParsingTypeAnnotation

	n := &ast.Index{NodeBase: p.base(left.Range()), LeftExpr: left, Items: items, TrailingComma: trailingComma}
	for _, item := range items {
		ast.ExtendRange(n, item.Range())
	}
	closeBracket := p.peek()
	if p.consumeTokenIfKind(tokenizer.CloseBracket) {
		ast.ExtendRange(n, closeBracket.Range())
	} else {
		// The index node stays usable; only the rest of the line is lost.
		p.addDiagnostic(ExpectedCloseBracket, openBracket.Range())
		p.consumeTokensUntilKind(tokenizer.NewLine)
	}
	return link(n)
}

// subscriptlist: subscript (',' subscript)* [',']
func (p *parser) parseSubscriptList() ([]*ast.Argument, bool) {
	var items []*ast.Argument
	sawKeyword, trailingComma := false, false
	for {
		first := p.peek()
		if first.Kind != tokenizer.Colon && p.isNextTokenNeverExpression() {
			break
		}

		category := ast.ArgSimple
		if p.consumeTokenIfOperator(ast.OpMultiply) {
			category = ast.ArgUnpackedList
		} else if p.consumeTokenIfOperator(ast.OpPower) {
			category = ast.ArgUnpackedDictionary
		}

		startIndex := p.currT
		value := p.parsePossibleSlice()
		var name *ast.Name
		if category == ast.ArgSimple {
			if p.consumeTokenIfOperator(ast.OpAssign) {
				nameExpr := value
				value = p.parsePossibleSlice()
				if n, ok := nameExpr.(*ast.Name); ok {
					name = n
				} else {
					p.addDiagnostic(ExpectedParamName, nameExpr.Range())
				}
			} else if _, ok := value.(*ast.Name); ok && p.peekOperator() == ast.OpWalrus {
				p.currT = startIndex
				value = p.parseTestExpression(true)
				if p.versionBelow(Python3_10) {
					p.addDiagnostic(AssignmentExprInSubscriptIllegal, value.Range())
				}
			}
		}

		arg := &ast.Argument{NodeBase: p.base(first.Range()), Category: category, ValueExpr: value}
		if name != nil {
			arg.Name = name
		}
		ast.ExtendRange(arg, value.Range())
		link(arg)

		if name != nil {
			sawKeyword = true
			p.addDiagnostic(KeywordSubscriptIllegal, name.Range())
		} else if sawKeyword && category == ast.ArgSimple {
			p.addDiagnostic(PositionArgAfterNamedArg, arg.Range())
		}
		switch category {
		case ast.ArgUnpackedList:
			if !p.opts.IsStubFile && !p.isParsingQuotedText && p.versionBelow(Python3_11) {
				p.addDiagnostic(UnpackedSubscriptIllegal, arg.Range())
			}
		case ast.ArgUnpackedDictionary:
			p.addDiagnostic(UnpackedDictSubscriptIllegal, arg.Range())
		}
		items = append(items, arg)

		if !p.consumeTokenIfKind(tokenizer.Comma) {
			trailingComma = false
			break
		}
		trailingComma = true
	}

	if len(items) == 0 {
		errNode := p.handleExpressionParseError(ast.ErrMissingIndexOrSlice, ExpectedSliceIndex, nil, nil,
			tokenizer.CloseBracket)
		arg := &ast.Argument{NodeBase: p.base(errNode.Range()), ValueExpr: errNode}
		items = append(items, link(arg))
	}
	return items, trailingComma
}

// subscript: test | [test] ':' [test] [':' [test]]
func (p *parser) parsePossibleSlice() ast.Node {
	first := p.peek()
	var parts [3]ast.Node
	sawColon := false
	for i := 0; i < 3; i++ {
		k := p.peekKind()
		if k == tokenizer.CloseBracket || k == tokenizer.Comma {
			break
		}
		if k != tokenizer.Colon {
			allowWalrus := p.opts.IsStubFile || !p.opts.PythonVersion.Less(Python3_10)
			parts[i] = p.parseTestExpression(allowWalrus)
		}
		if !p.consumeTokenIfKind(tokenizer.Colon) {
			break
		}
		sawColon = true
	}

	if !sawColon {
		if parts[0] != nil {
			return parts[0]
		}
		p.addDiagnostic(ExpectedSliceIndex, p.peek().Range())
		return link(&ast.Error{NodeBase: p.base(p.peek().Range()), Category: ast.ErrMissingIndexOrSlice})
	}

	n := &ast.Slice{NodeBase: p.base(ast.MakeRange(first.Start, p.prevEnd()))}
	if parts[0] != nil {
		n.Start = parts[0]
	}
	if parts[1] != nil {
		n.End = parts[1]
	}
	if parts[2] != nil {
		n.Step = parts[2]
	}
	return link(n)
}

// parseTypeAnnotation parses an expression in a type context. With
// allowUnpack, "*Ts" is accepted.
func (p *parser) parseTypeAnnotation(allowUnpack bool) ast.Node {
	wasParsingTypeAnnotation := p.isParsingTypeAnnotation
	p.isParsingTypeAnnotation = true
	defer func() { p.isParsingTypeAnnotation = wasParsingTypeAnnotation }()

	start := p.peek()
	isUnpack := p.consumeTokenIfOperator(ast.OpMultiply)
	if isUnpack {
		if !allowUnpack {
			p.addDiagnostic(UnpackIllegalHere, start.Range())
		} else if p.versionBelow(Python3_11) && !p.isParsingQuotedText {
			p.addDiagnostic(UnpackedSubscriptIllegal, start.Range())
		}
	}

	result := p.parseTestExpression(false)
	if isUnpack {
		n := &ast.Unpack{NodeBase: p.base(start.Range()), Expr: result}
		ast.ExtendRange(n, result.Range())
		result = link(n)
	}
	return result
}
