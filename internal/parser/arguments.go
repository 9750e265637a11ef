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

// arglist: argument (',' argument)* [',']
func (p *parser) parseArgList() ([]*ast.Argument, bool) {
	var args []*ast.Argument
	sawKeyword, sawUnpackedDict, trailingComma := false, false, false
	for {
		switch p.peekKind() {
		case tokenizer.CloseParenthesis, tokenizer.NewLine, tokenizer.EndOfStream:
			return args, trailingComma
		}

		trailingComma = false
		arg := p.parseArgument()
		switch {
		case arg.Name != nil:
			sawKeyword = true
		case arg.Category == ast.ArgUnpackedDictionary:
			sawUnpackedDict = true
		case sawUnpackedDict:
			p.addDiagnostic(PositionArgAfterUnpackedDictArg, arg.Range())
		case sawKeyword && arg.Category == ast.ArgSimple:
			p.addDiagnostic(PositionArgAfterNamedArg, arg.Range())
		}
		args = append(args, arg)

		if !p.consumeTokenIfKind(tokenizer.Comma) {
			return args, trailingComma
		}
		trailingComma = true
	}
}

// argument: test [comp_for] | test '=' test | '**' test | '*' test
func (p *parser) parseArgument() *ast.Argument {
	first := p.peek()
	category := ast.ArgSimple
	if p.consumeTokenIfOperator(ast.OpMultiply) {
		category = ast.ArgUnpackedList
	} else if p.consumeTokenIfOperator(ast.OpPower) {
		category = ast.ArgUnpackedDictionary
	}

	value := p.parseTestExpression(true)
	var name *ast.Name
	if category == ast.ArgSimple {
		if p.consumeTokenIfOperator(ast.OpAssign) {
			nameExpr := value
			if p.isNextTokenNeverExpression() {
				p.addDiagnostic(ExpectedExpr, p.peek().Range())
				value = link(&ast.Error{NodeBase: p.base(p.emptyRangeAtPeek()), Category: ast.ErrMissingKeywordArgValue})
			} else {
				value = p.parseTestExpression(false)
			}
			if n, ok := nameExpr.(*ast.Name); ok {
				name = n
			} else {
				p.addDiagnostic(ExpectedParamName, nameExpr.Range())
			}
		} else if comp := p.tryParseComprehension(value, true); comp != nil {
			value = comp
		}
	}

	arg := &ast.Argument{NodeBase: p.base(first.Range()), Category: category, ValueExpr: value}
	if name != nil {
		arg.Name = name
	}
	ast.ExtendRange(arg, value.Range())
	return link(arg)
}

// ---------------------------------------------------------------------------
// Parameters

// parseVarArgsList parses parameters up to terminator, which is not
// consumed. Annotations are only accepted for def, not lambda.
func (p *parser) parseVarArgsList(terminator tokenizer.Kind, allowAnnotations bool) []*ast.Parameter {
	seen := map[string]bool{}
	var params []*ast.Parameter
	var (
		sawDefault, reportedNonDefault    bool
		sawKeywordOnlySeparator, sawArgs  bool
		sawPositionOnlySeparator, sawKw   bool
		sawKeywordOnlyParamAfterSeparator bool
	)

	for p.peekKind() != terminator {
		param := p.parseParameter(allowAnnotations)
		if param == nil {
			p.consumeTokensUntilKind(terminator, tokenizer.NewLine)
			break
		}

		if param.Name != nil {
			if name := param.Name.Value; seen[name] {
				p.addDiagnostic(DuplicateParam, param.Name.Range(), name)
			} else {
				seen[name] = true
			}
		} else if param.Category == ast.ParamSimple && len(params) == 0 {
			p.addDiagnostic(PositionOnlyFirstParam, param.Range())
		}

		switch param.Category {
		case ast.ParamSimple:
			if param.Name == nil {
				switch {
				case sawPositionOnlySeparator:
					p.addDiagnostic(DuplicatePositionOnly, param.Range())
				case sawKeywordOnlySeparator, sawArgs:
					p.addDiagnostic(PositionOnlyAfterArgs, param.Range())
				}
				sawPositionOnlySeparator = true
				break
			}
			if sawKeywordOnlySeparator {
				sawKeywordOnlyParamAfterSeparator = true
			}
			if param.DefaultValue != nil {
				sawDefault = true
			} else if sawDefault && !sawKeywordOnlySeparator && !sawArgs && !reportedNonDefault {
				p.addDiagnostic(NonDefaultAfterDefault, param.Range())
				reportedNonDefault = true
			}
		case ast.ParamArgsList:
			if param.Name == nil {
				if sawKeywordOnlySeparator || sawArgs {
					p.addDiagnostic(DuplicateArgsParam, param.Range())
				}
				sawKeywordOnlySeparator = true
			} else {
				if sawKeywordOnlySeparator || sawArgs {
					p.addDiagnostic(DuplicateArgsParam, param.Range())
				}
				sawArgs = true
			}
		}

		if param.Category == ast.ParamKwargsDict {
			if sawKw {
				p.addDiagnostic(DuplicateKwargsParam, param.Range())
			}
			sawKw = true
			// "*" needs at least one named parameter after it.
			if sawKeywordOnlySeparator && !sawKeywordOnlyParamAfterSeparator {
				p.addDiagnostic(BareStarNotFollowed, param.Range())
			}
		} else if sawKw {
			p.addDiagnostic(ParamAfterKwargsParam, param.Range())
		}
		params = append(params, param)

		foundComma := p.consumeTokenIfKind(tokenizer.Comma)
		if allowAnnotations && param.TypeAnnotation == nil {
			if comment := p.parseTypeAnnotationComment(); comment != nil {
				param.TypeAnnotationComment = comment
				link(param)
			}
		}
		if !foundComma {
			break
		}
	}

	if n := len(params); n > 0 {
		last := params[n-1]
		if last.Category == ast.ParamArgsList && last.Name == nil {
			p.addDiagnostic(BareStarNotFollowed, last.Range())
		}
	}
	return params
}

// parseParameter returns nil when no parameter could be parsed.
func (p *parser) parseParameter(allowAnnotations bool) *ast.Parameter {
	first := p.peek()
	starCount := 0
	if p.consumeTokenIfOperator(ast.OpMultiply) {
		starCount = 1
	} else if p.consumeTokenIfOperator(ast.OpPower) {
		starCount = 2
	}

	nameTok := p.getTokenIfIdentifier()
	if nameTok == nil {
		if starCount == 1 {
			return link(&ast.Parameter{NodeBase: p.base(first.Range()), Category: ast.ParamArgsList})
		}
		if starCount == 0 && p.consumeTokenIfOperator(ast.OpDivide) {
			if p.versionBelow(Python3_8) {
				p.addDiagnostic(PositionOnlyIncompatible, first.Range())
			}
			return link(&ast.Parameter{NodeBase: p.base(first.Range()), Category: ast.ParamSimple})
		}
		if open := p.peek(); open.Kind == tokenizer.OpenParenthesis {
			// Python 2 tuple parameters.
			p.pop()
			if p.consumeTokensUntilKind(tokenizer.CloseParenthesis) {
				p.pop()
			}
			p.addDiagnostic(SublistParamsIncompatible, open.Range())
		} else {
			p.addDiagnostic(ExpectedParamName, p.peek().Range())
		}
		return nil
	}

	param := &ast.Parameter{NodeBase: p.base(first.Range()), Name: p.makeName(nameTok)}
	switch starCount {
	case 1:
		param.Category = ast.ParamArgsList
	case 2:
		param.Category = ast.ParamKwargsDict
	}
	ast.ExtendRange(param, param.Name.Range())

	if allowAnnotations && p.consumeTokenIfKind(tokenizer.Colon) {
		param.TypeAnnotation = p.parseTypeAnnotation(param.Category == ast.ParamArgsList)
		ast.ExtendRange(param, param.TypeAnnotation.Range())
	}
	if p.consumeTokenIfOperator(ast.OpAssign) {
		param.DefaultValue = p.parseTestExpression(false)
		ast.ExtendRange(param, param.DefaultValue.Range())
		if starCount > 0 {
			p.addDiagnostic(DefaultValueNotAllowed, param.DefaultValue.Range())
		}
	}
	return link(param)
}

// lambdef: 'lambda' [varargslist] ':' test
//
// Without allowConditional the body may not be a conditional expression.
func (p *parser) parseLambdaExpression(allowConditional bool) ast.Node {
	lambdaTok := p.pop()
	params := p.parseVarArgsList(tokenizer.Colon, false)
	if !p.consumeTokenIfKind(tokenizer.Colon) {
		p.addDiagnostic(ExpectedColon, p.peek().Range())
	}

	wasInFunction := p.isInFunction
	p.isInFunction = true
	var body ast.Node
	switch {
	case allowConditional:
		body = p.parseTestExpression(false)
	case p.peekKeyword() == tokenizer.KwLambda:
		body = p.parseLambdaExpression(false)
	default:
		body = p.parseOrTest()
	}
	p.isInFunction = wasInFunction

	n := &ast.Lambda{NodeBase: p.base(lambdaTok.Range()), Parameters: params, Expr: body}
	ast.ExtendRange(n, body.Range())
	return p.guardDepth(link(n))
}

// ---------------------------------------------------------------------------
// Type parameters

// type_params: '[' type_param (',' type_param)* [','] ']'
func (p *parser) parseTypeParameterList() *ast.TypeParameterList {
	openBracket := p.pop()
	n := &ast.TypeParameterList{NodeBase: p.base(openBracket.Range())}
	for {
		if p.peekKind() == tokenizer.CloseBracket {
			if len(n.Parameters) == 0 {
				p.addDiagnostic(TypeParametersMissing, p.peek().Range())
			}
			break
		}
		param := p.parseTypeParameter()
		if param == nil {
			break
		}
		n.Parameters = append(n.Parameters, param)
		ast.ExtendRange(n, param.Range())
		if !p.consumeTokenIfKind(tokenizer.Comma) {
			break
		}
	}

	closeBracket := p.peek()
	if p.consumeTokenIfKind(tokenizer.CloseBracket) {
		ast.ExtendRange(n, closeBracket.Range())
	} else {
		p.addDiagnostic(ExpectedCloseBracket, closeBracket.Range())
		p.consumeTokensUntilKind(tokenizer.NewLine, tokenizer.CloseBracket, tokenizer.Colon)
	}
	return link(n)
}

// type_param: ['*' | '**'] NAME [':' expr] ['=' expr]
func (p *parser) parseTypeParameter() *ast.TypeParameter {
	first := p.peek()
	category := ast.TypeVar
	if p.consumeTokenIfOperator(ast.OpMultiply) {
		category = ast.TypeVarTuple
	} else if p.consumeTokenIfOperator(ast.OpPower) {
		category = ast.ParamSpec
	}

	nameTok := p.getTokenIfIdentifier()
	if nameTok == nil {
		p.addDiagnostic(ExpectedTypeParameterName, p.peek().Range())
		return nil
	}
	n := &ast.TypeParameter{NodeBase: p.base(first.Range()), Name: p.makeName(nameTok), Category: category}
	ast.ExtendRange(n, n.Name.Range())

	if p.consumeTokenIfKind(tokenizer.Colon) {
		n.BoundExpr = p.parseTestExpression(false)
		ast.ExtendRange(n, n.BoundExpr.Range())
		if category != ast.TypeVar {
			p.addDiagnostic(TypeParameterBoundNotAllowed, n.BoundExpr.Range())
		}
	}
	if p.consumeTokenIfOperator(ast.OpAssign) {
		n.DefaultExpr = p.parseExpression(category == ast.TypeVarTuple)
		ast.ExtendRange(n, n.DefaultExpr.Range())
		if p.versionBelow(Python3_13) {
			p.addDiagnostic(TypeVarDefaultIllegal, n.DefaultExpr.Range())
		}
	}
	return link(n)
}

// parseFunctionTypeAnnotation parses a signature comment of the form
// "(int, str) -> bool". It returns nil if there is no "(" or no "->".
func (p *parser) parseFunctionTypeAnnotation() *ast.FunctionAnnotation {
	openParen := p.peek()
	if !p.consumeTokenIfKind(tokenizer.OpenParenthesis) {
		p.addDiagnostic(ExpectedOpenParen, p.peek().Range())
		return nil
	}

	var params ast.Nodes
	for {
		k := p.peekKind()
		if k == tokenizer.CloseParenthesis || k == tokenizer.NewLine || k == tokenizer.EndOfStream {
			break
		}
		// Star markers are accepted and not checked against the signature.
		if !p.consumeTokenIfOperator(ast.OpMultiply) {
			p.consumeTokenIfOperator(ast.OpPower)
		}
		params = append(params, p.parseTypeAnnotation(false))
		if !p.consumeTokenIfKind(tokenizer.Comma) {
			break
		}
	}

	if !p.consumeTokenIfKind(tokenizer.CloseParenthesis) {
		p.addDiagnostic(ExpectedCloseParen, openParen.Range())
		p.consumeTokensUntilKind(tokenizer.Colon)
	}
	if !p.consumeTokenIfKind(tokenizer.Arrow) {
		p.addDiagnostic(ExpectedArrow, p.peek().Range())
		return nil
	}
	ret := p.parseTypeAnnotation(false)

	n := &ast.FunctionAnnotation{NodeBase: p.base(openParen.Range()), ReturnTypeAnnotation: ret}
	if len(params) == 1 {
		if c, ok := params[0].(*ast.Constant); ok && c.Value == ast.ConstEllipsis {
			n.IsParamListEllipsis = true
			params = nil
		}
	}
	n.ParamTypeAnnotations = params
	ast.ExtendRange(n, ret.Range())
	return link(n)
}
