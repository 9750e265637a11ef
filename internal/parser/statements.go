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

	"github.com/google/go-pyparser/ast"
	"github.com/google/go-pyparser/internal/tokenizer"
)

// Symbols from typing whose aliases change how the parser treats the
// expressions that use them.
var typingSymbolsOfInterest = map[string]bool{
	"Literal":   true,
	"TypeAlias": true,
	"Annotated": true,
}

// parseStatement returns nil when nothing could be parsed. The caller skips
// to the next line in that case.
func (p *parser) parseStatement() ast.Node {
	if t := p.peek(); t.Kind == tokenizer.Invalid {
		p.pop()
		p.addDiagnostic(InvalidToken, t.Range(), p.invalidTokenText(t))
		p.consumeTokensUntilKind(tokenizer.NewLine)
		return nil
	}

	switch p.peekKeyword() {
	case tokenizer.KwIf:
		return p.parseIfStatement(tokenizer.KwIf)
	case tokenizer.KwWhile:
		return p.parseWhileStatement()
	case tokenizer.KwFor:
		return p.parseForStatement(nil)
	case tokenizer.KwTry:
		return p.parseTryStatement()
	case tokenizer.KwWith:
		return p.parseWithStatement(nil)
	case tokenizer.KwDef:
		return p.parseFunctionDef(nil, nil)
	case tokenizer.KwClass:
		return p.parseClassDef(nil)
	case tokenizer.KwAsync:
		return p.parseAsyncStatement()
	case tokenizer.KwMatch:
		if m := p.tryParseMatchStatement(); m != nil {
			return m
		}
	}

	if p.peekOperator() == ast.OpMatrixMultiply {
		return p.parseDecorated()
	}
	return p.parseStatementList()
}

// invalidTokenText renders the first character of an invalid token as an
// escape, since it is often unprintable.
func (p *parser) invalidTokenText(t *tokenizer.Token) string {
	r := []rune(p.tokenText(t))
	if len(r) == 0 {
		return ""
	}
	return fmt.Sprintf("\\u%04x", r[0])
}

// statement_list: small_statement (';' small_statement)* [';'] NEWLINE
func (p *parser) parseStatementList() ast.Node {
	list := &ast.StatementList{NodeBase: p.base(p.emptyRangeAtPeek())}
	for {
		if t := p.peek(); t.Kind == tokenizer.Invalid {
			p.pop()
			p.addDiagnostic(InvalidToken, t.Range(), p.invalidTokenText(t))
			p.consumeTokensUntilKind(tokenizer.NewLine)
			break
		}

		stmt := p.parseSmallStatement()
		list.Statements = append(list.Statements, stmt)
		ast.ExtendRange(list, stmt.Range())
		if _, isErr := stmt.(*ast.Error); isErr {
			break
		}

		if !p.consumeTokenIfKind(tokenizer.Semicolon) {
			break
		}
		if k := p.peekKind(); k == tokenizer.NewLine || k == tokenizer.EndOfStream {
			break
		}
	}

	if !p.consumeTokenIfKind(tokenizer.NewLine) {
		p.addDiagnostic(StatementNotDelimited, p.peek().Range())
	}
	return link(list)
}

func (p *parser) parseSmallStatement() ast.Node {
	switch p.peekKeyword() {
	case tokenizer.KwPass:
		t := p.pop()
		return link(&ast.Pass{NodeBase: p.base(t.Range())})
	case tokenizer.KwBreak:
		t := p.pop()
		if !p.isInLoop {
			p.addDiagnostic(BreakOutsideLoop, t.Range())
		}
		return link(&ast.Break{NodeBase: p.base(t.Range())})
	case tokenizer.KwContinue:
		t := p.pop()
		if !p.isInLoop {
			p.addDiagnostic(ContinueOutsideLoop, t.Range())
		} else if p.isInFinally && p.versionBelow(Python3_8) {
			p.addDiagnostic(ContinueInFinally, t.Range())
		}
		return link(&ast.Continue{NodeBase: p.base(t.Range())})
	case tokenizer.KwReturn:
		return p.parseReturnStatement()
	case tokenizer.KwFrom:
		return p.parseFromStatement()
	case tokenizer.KwImport:
		return p.parseImportStatement()
	case tokenizer.KwGlobal:
		return p.parseGlobalStatement()
	case tokenizer.KwNonlocal:
		return p.parseNonlocalStatement()
	case tokenizer.KwRaise:
		return p.parseRaiseStatement()
	case tokenizer.KwAssert:
		return p.parseAssertStatement()
	case tokenizer.KwDel:
		return p.parseDelStatement()
	case tokenizer.KwType:
		// "type" is only a statement when followed by a name and then "["
		// or "=".
		next1, next2 := p.peekToken(1), p.peekToken(2)
		isName := next1.Kind == tokenizer.Identifier ||
			(next1.Kind == tokenizer.Keyword && next1.Keyword.IsSoft())
		if isName && (next2.Kind == tokenizer.OpenBracket || next2.IsOperator(ast.OpAssign)) {
			return p.parseTypeAliasStatement()
		}
	}
	return p.parseExpressionStatement()
}

func (p *parser) parseReturnStatement() ast.Node {
	t := p.pop()
	n := &ast.Return{NodeBase: p.base(t.Range())}
	if !p.isInFunction {
		p.addDiagnostic(ReturnOutsideFunction, t.Range())
	}
	if !p.isNextTokenNeverExpression() {
		expr := p.parseTestOrStarListAsExpression(true, true, ast.ErrMissingExpression, ExpectedExpr)
		p.reportStarTupleElement(expr)
		n.Expr = expr
		ast.ExtendRange(n, expr.Range())
	}
	return link(n)
}

// reportStarTupleElement flags "*x" in an unparenthesized tuple, which
// needs 3.8 in return and assignment values.
func (p *parser) reportStarTupleElement(expr ast.Node) {
	if !p.versionBelow(Python3_8) {
		return
	}
	tuple, ok := expr.(*ast.Tuple)
	if !ok || tuple.EnclosedInParens {
		return
	}
	for _, e := range tuple.Exprs {
		if _, ok := e.(*ast.Unpack); ok {
			p.addDiagnostic(UnpackTuplesIllegal, e.Range())
			return
		}
	}
}

func (p *parser) parseTypeAliasStatement() ast.Node {
	typeTok := p.pop()
	if p.versionBelow(Python3_12) {
		p.addDiagnostic(TypeAliasStatementIllegal, typeTok.Range())
	}
	name := p.makeName(p.getTokenIfIdentifier())
	n := &ast.TypeAlias{NodeBase: p.base(typeTok.Range()), Name: name}
	ast.ExtendRange(n, name.Range())

	if p.peekKind() == tokenizer.OpenBracket {
		n.TypeParameters = p.parseTypeParameterList()
		ast.ExtendRange(n, n.TypeParameters.Range())
	}
	if !p.consumeTokenIfOperator(ast.OpAssign) {
		p.addDiagnostic(ExpectedEquals, p.peek().Range())
	}

	wasParsingTypeAnnotation := p.isParsingTypeAnnotation
	p.isParsingTypeAnnotation = true
	n.Expr = p.parseTestExpression(false)
	p.isParsingTypeAnnotation = wasParsingTypeAnnotation

	ast.ExtendRange(n, n.Expr.Range())
	return link(n)
}

// ---------------------------------------------------------------------------
// Imports

// parseDottedModuleName parses "..a.b". With allowJustDots, "from . import x"
// is accepted without a name.
func (p *parser) parseDottedModuleName(allowJustDots bool) *ast.ModuleName {
	n := &ast.ModuleName{NodeBase: p.base(p.emptyRangeAtPeek())}
	for {
		t := p.peek()
		if t.Kind == tokenizer.Ellipsis {
			n.LeadingDots += 3
		} else if t.Kind == tokenizer.Dot {
			n.LeadingDots++
		} else {
			break
		}
		p.pop()
		ast.ExtendRange(n, t.Range())
	}

	for {
		id := p.getTokenIfIdentifier()
		if id == nil {
			if !allowJustDots || n.LeadingDots == 0 || len(n.NameParts) > 0 {
				p.addDiagnostic(ExpectedModuleName, p.peek().Range())
				n.HasTrailingDot = true
			}
			break
		}
		name := p.makeName(id)
		n.NameParts = append(n.NameParts, name)
		ast.ExtendRange(n, name.Range())

		dot := p.peek()
		if !p.consumeTokenIfKind(tokenizer.Dot) {
			break
		}
		ast.ExtendRange(n, dot.Range())
	}
	return link(n)
}

func moduleNameParts(n *ast.ModuleName) []string {
	parts := make([]string, len(n.NameParts))
	for i, name := range n.NameParts {
		parts[i] = name.Value
	}
	return parts
}

func isTypingModule(n *ast.ModuleName) bool {
	if n.LeadingDots != 0 || len(n.NameParts) != 1 {
		return false
	}
	v := n.NameParts[0].Value
	return v == "typing" || v == "typing_extensions"
}

// import_stmt: 'import' dotted_as_names
func (p *parser) parseImportStatement() ast.Node {
	importTok := p.pop()
	n := &ast.Import{NodeBase: p.base(importTok.Range())}
	for {
		module := p.parseDottedModuleName(false)
		as := &ast.ImportAs{NodeBase: p.base(module.Range()), Module: module}
		if module.LeadingDots > 0 {
			p.addDiagnostic(RelativeImportNotAllowed, module.Range())
		}
		if p.consumeTokenIfKeyword(tokenizer.KwAs) {
			if aliasTok := p.getTokenIfIdentifier(); aliasTok != nil {
				as.Alias = p.makeName(aliasTok)
				ast.ExtendRange(as, as.Alias.Range())
			} else {
				p.addDiagnostic(ExpectedNameAfterAs, p.peek().Range())
			}
		}
		n.List = append(n.List, link(as))
		ast.ExtendRange(n, as.Range())

		if isTypingModule(module) {
			alias := module.NameParts[0].Value
			if as.Alias != nil {
				alias = as.Alias.Value
			}
			p.typingImportAliases = append(p.typingImportAliases, alias)
		}
		p.imports = append(p.imports, ModuleImport{
			NameNode:        module,
			NameParts:       moduleNameParts(module),
			LeadingDots:     module.LeadingDots,
			ImportedSymbols: []string{},
		})

		if !p.consumeTokenIfKind(tokenizer.Comma) {
			break
		}
	}
	return link(n)
}

// from_import: 'from' dotted_name 'import' ('*' | import_as_names | '(' import_as_names ')')
func (p *parser) parseFromStatement() ast.Node {
	fromTok := p.pop()
	module := p.parseDottedModuleName(true)
	n := &ast.ImportFrom{NodeBase: p.base(fromTok.Range()), Module: module}
	ast.ExtendRange(n, module.Range())

	parts := moduleNameParts(module)
	isFuture := module.LeadingDots == 0 && len(parts) == 1 && parts[0] == "__future__"
	isTyping := isTypingModule(module)

	importTok := p.peek()
	if !p.consumeTokenIfKeyword(tokenizer.KwImport) {
		p.addDiagnostic(ExpectedImport, p.peek().Range())
		if !module.HasTrailingDot {
			n.MissingImport = true
		}
	} else {
		ast.ExtendRange(n, importTok.Range())
		if star := p.peek(); star.IsOperator(ast.OpMultiply) {
			p.pop()
			ast.ExtendRange(n, star.Range())
			n.IsWildcardImport = true
			n.WildcardRange = star.Range()
			p.containsWildcardImport = true
			if p.isInFunction {
				p.addDiagnostic(WildcardInFunction, star.Range())
			}
		} else {
			p.parseImportFromList(n, isTyping)
		}
	}

	imp := ModuleImport{NameNode: module, NameParts: parts, LeadingDots: module.LeadingDots}
	if !n.IsWildcardImport {
		imp.ImportedSymbols = make([]string, 0, len(n.Imports))
		for _, as := range n.Imports {
			imp.ImportedSymbols = append(imp.ImportedSymbols, as.Name.Value)
		}
	}
	p.imports = append(p.imports, imp)
	if isFuture {
		for _, as := range n.Imports {
			p.futureImports = append(p.futureImports, as.Name.Value)
		}
	}
	return link(n)
}

func (p *parser) parseImportFromList(n *ast.ImportFrom, isTyping bool) {
	openParen := p.peek()
	inParens := p.consumeTokenIfKind(tokenizer.OpenParenthesis)
	if inParens {
		ast.ExtendRange(n, openParen.Range())
	}

	var trailingComma *tokenizer.Token
	for {
		nameTok := p.getTokenIfIdentifier()
		if nameTok == nil {
			break
		}
		trailingComma = nil
		name := p.makeName(nameTok)
		as := &ast.ImportFromAs{NodeBase: p.base(name.Range()), Name: name}
		if p.consumeTokenIfKeyword(tokenizer.KwAs) {
			if aliasTok := p.getTokenIfIdentifier(); aliasTok != nil {
				as.Alias = p.makeName(aliasTok)
				ast.ExtendRange(as, as.Alias.Range())
			} else {
				p.addDiagnostic(ExpectedNameAfterAs, p.peek().Range())
			}
		}
		n.Imports = append(n.Imports, link(as))
		ast.ExtendRange(n, as.Range())

		if isTyping && typingSymbolsOfInterest[name.Value] {
			local := name.Value
			if as.Alias != nil {
				local = as.Alias.Value
			}
			p.typingSymbolAliases[local] = name.Value
		}

		comma := p.peek()
		if !p.consumeTokenIfKind(tokenizer.Comma) {
			break
		}
		trailingComma = comma
	}

	if len(n.Imports) == 0 {
		p.addDiagnostic(ExpectedImportSymbols, p.peek().Range())
	}

	if inParens {
		n.UsesParens = true
		closeParen := p.peek()
		if p.consumeTokenIfKind(tokenizer.CloseParenthesis) {
			ast.ExtendRange(n, closeParen.Range())
		} else {
			p.addDiagnostic(ExpectedCloseParen, openParen.Range())
		}
	} else if trailingComma != nil {
		p.addDiagnostic(TrailingCommaInFromImport, trailingComma.Range())
	}
}

// ---------------------------------------------------------------------------

func (p *parser) parseNameList() []*ast.Name {
	var names []*ast.Name
	for {
		t := p.getTokenIfIdentifier()
		if t == nil {
			p.addDiagnostic(ExpectedIdentifier, p.peek().Range())
			break
		}
		names = append(names, p.makeName(t))
		if !p.consumeTokenIfKind(tokenizer.Comma) {
			break
		}
	}
	return names
}

func (p *parser) parseGlobalStatement() ast.Node {
	t := p.pop()
	n := &ast.Global{NodeBase: p.base(t.Range()), Names: p.parseNameList()}
	for _, name := range n.Names {
		ast.ExtendRange(n, name.Range())
	}
	return link(n)
}

func (p *parser) parseNonlocalStatement() ast.Node {
	t := p.pop()
	n := &ast.Nonlocal{NodeBase: p.base(t.Range()), Names: p.parseNameList()}
	for _, name := range n.Names {
		ast.ExtendRange(n, name.Range())
	}
	return link(n)
}

// del_stmt: 'del' del_list
func (p *parser) parseDelStatement() ast.Node {
	t := p.pop()
	n := &ast.Del{NodeBase: p.base(t.Range())}
	res := p.parseExpressionList(true)
	if res.parseError == nil && len(res.list) == 0 {
		p.addDiagnostic(ExpectedDelExpr, p.peek().Range())
	}
	n.Targets = res.list
	if res.parseError != nil {
		n.Targets = append(n.Targets, res.parseError)
	}
	for _, target := range n.Targets {
		ast.ExtendRange(n, target.Range())
	}
	return link(n)
}

// raise_stmt: 'raise' [test ['from' test]]
func (p *parser) parseRaiseStatement() ast.Node {
	t := p.pop()
	n := &ast.Raise{NodeBase: p.base(t.Range())}
	if !p.isNextTokenNeverExpression() {
		n.Expr = p.parseTestExpression(true)
		ast.ExtendRange(n, n.Expr.Range())
		if p.consumeTokenIfKeyword(tokenizer.KwFrom) {
			n.FromExpr = p.parseTestExpression(true)
			ast.ExtendRange(n, n.FromExpr.Range())
		}
	}
	return link(n)
}

// assert_stmt: 'assert' test [',' test]
func (p *parser) parseAssertStatement() ast.Node {
	t := p.pop()
	n := &ast.Assert{NodeBase: p.base(t.Range())}
	n.Test = p.parseTestExpression(false)
	ast.ExtendRange(n, n.Test.Range())
	if p.consumeTokenIfKind(tokenizer.Comma) {
		n.Message = p.parseTestExpression(false)
		ast.ExtendRange(n, n.Message.Range())
	}
	return link(n)
}

// ---------------------------------------------------------------------------
// Expression statements and assignments

func (p *parser) parseExpressionStatement() ast.Node {
	left := p.tryParseYieldExpression()
	if left == nil {
		left = p.parseTestOrStarListAsExpression(false, false, ast.ErrMissingExpression, ExpectedExpr)
	}
	if _, isErr := left.(*ast.Error); isErr {
		return left
	}

	if colon := p.peek(); colon.Kind == tokenizer.Colon {
		p.pop()
		annotation := p.parseTypeAnnotation(false)
		if p.versionBelow(Python3_6) {
			p.addDiagnostic(VarAnnotationIllegal, annotation.Range())
		}
		typed := &ast.TypeAnnotation{NodeBase: p.base(left.Range()), ValueExpr: left, Annotation: annotation}
		ast.ExtendRange(typed, annotation.Range())
		left = link(typed)

		if !p.consumeTokenIfOperator(ast.OpAssign) {
			return left
		}

		// The value of an explicit TypeAlias is itself a type expression.
		isTypeAlias := p.isTypingAnnotation(annotation, "TypeAlias")
		right := p.tryParseYieldExpression()
		if right == nil {
			wasParsingTypeAnnotation := p.isParsingTypeAnnotation
			if isTypeAlias {
				p.isParsingTypeAnnotation = true
			}
			right = p.parseTestOrStarListAsExpression(false, true, ast.ErrMissingExpression, ExpectedAssignRightHandExpr)
			p.isParsingTypeAnnotation = wasParsingTypeAnnotation
		}
		n := &ast.Assignment{NodeBase: p.base(left.Range()), Left: left, Right: right}
		ast.ExtendRange(n, right.Range())
		return link(n)
	}

	if p.peekOperator() == ast.OpAssign {
		return p.parseChainAssignments(left)
	}

	if op := p.peekOperator(); op.IsAugmentedAssignment() {
		p.pop()
		right := p.tryParseYieldExpression()
		if right == nil {
			right = p.parseTestOrStarListAsExpression(false, true, ast.ErrMissingExpression, ExpectedBinaryRightHandExpr)
		}
		n := &ast.AugmentedAssignment{NodeBase: p.base(left.Range()), Left: left, Operator: op, Right: right}
		ast.ExtendRange(n, right.Range())
		link(n)
		// The destination is a separate node so that it can carry the
		// result of the operation.
		dest := ast.Clone(left, p.ids)
		ast.SetParent(dest, n)
		n.DestExpr = dest
		return n
	}

	return left
}

// parseChainAssignments handles "a = b = value". The innermost assignment
// binds the first target and each later target wraps the previous node.
func (p *parser) parseChainAssignments(left ast.Node) ast.Node {
	targets := ast.Nodes{left}
	var right ast.Node
	for {
		p.pop()
		right = p.tryParseYieldExpression()
		if right == nil {
			right = p.parseTestOrStarListAsExpression(false, true, ast.ErrMissingExpression, ExpectedAssignRightHandExpr)
		}
		if _, isErr := right.(*ast.Error); isErr {
			break
		}
		if p.peekOperator() != ast.OpAssign {
			p.reportStarTupleElement(right)
			break
		}
		targets = append(targets, right)
	}

	n := &ast.Assignment{NodeBase: p.base(targets[0].Range()), Left: targets[0], Right: right}
	ast.ExtendRange(n, right.Range())
	if comment := p.parseTypeAnnotationComment(); comment != nil {
		if len(targets) > 1 {
			n.ChainedTypeAnnotationComment = comment
		} else {
			n.TypeAnnotationComment = comment
			ast.ExtendRange(n, comment.Range())
		}
	}
	link(n)

	var result ast.Node = n
	for _, target := range targets[1:] {
		outer := &ast.Assignment{NodeBase: p.base(target.Range()), Left: target, Right: result}
		ast.ExtendRange(outer, result.Range())
		result = link(outer)
	}
	return result
}
