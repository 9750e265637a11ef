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
)

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// DiagnosticKind identifies a syntax problem. The message text is only a
// default rendering.
type DiagnosticKind int

const (
	// Lexical
	InvalidToken DiagnosticKind = iota
	InvalidIdentifierChar
	UnterminatedString
	StringUnsupportedEscape
	StringNonASCIIBytes
	BacktickNotSupported
	OperatorLessOrGreaterDeprecated

	// Layout
	UnexpectedIndent
	UnexpectedUnindent
	InconsistentTabs
	InconsistentIndent
	ExpectedIndentedBlock
	StatementNotDelimited
	ExpectedNewline
	MaxParseDepthExceeded

	// Missing tokens
	ExpectedExpr
	ExpectedAssignRightHandExpr
	ExpectedBinaryRightHandExpr
	ExpectedColon
	ExpectedOpenParen
	ExpectedCloseParen
	ExpectedCloseBracket
	ExpectedCloseBrace
	ExpectedIdentifier
	ExpectedMemberName
	ExpectedFunctionName
	ExpectedClassName
	ExpectedParamName
	ExpectedTypeParameterName
	ExpectedNameAfterAs
	ExpectedImport
	ExpectedImportSymbols
	ExpectedModuleName
	ExpectedIn
	ExpectedInExpr
	ExpectedElse
	ExpectedEquals
	ExpectedArrow
	ExpectedSliceIndex
	ExpectedDelExpr
	ExpectedAfterDecorator
	ExpectedDecoratorNewline
	ExpectedAfterAsync
	ExpectedExceptOrFinally
	ExpectedCase
	ExpectedPatternExpr
	ExpectedPatternSubjectExpr
	ExpectedPatternValue
	ExpectedComplexNumberLiteral

	// Structural rules
	DictKeyValuePairs
	KeyValueInSet
	DictExpandIllegalInComprehension
	UnpackIllegalInComprehension
	UnpackIllegalHere
	DuplicateParam
	NonDefaultAfterDefault
	DuplicateArgsParam
	DuplicateKwargsParam
	ParamAfterKwargsParam
	DuplicatePositionOnly
	PositionOnlyAfterArgs
	PositionOnlyFirstParam
	BareStarNotFollowed
	DefaultValueNotAllowed
	SublistParamsIncompatible
	PositionArgAfterNamedArg
	PositionArgAfterUnpackedDictArg
	KeywordSubscriptIllegal
	UnpackedDictSubscriptIllegal
	ReturnOutsideFunction
	BreakOutsideLoop
	ContinueOutsideLoop
	ContinueInFinally
	YieldOutsideFunction
	YieldFromInAsync
	AwaitNotInAsyncFunction
	AsyncNotInAsyncFunction
	WalrusNotAllowed
	TrailingCommaInFromImport
	RelativeImportNotAllowed
	WildcardInFunction
	ExceptGroupMismatch
	ExceptGroupRequiresType
	ExceptRequiresParens
	TypeParameterBoundNotAllowed
	DuplicateStarPattern
	DuplicateStarStarPattern
	StarPatternInOrPattern
	StarPatternInAsPattern
	StarStarWildcardNotAllowed
	OrPatternIrrefutable
	OrPatternMissingName
	CasePatternIsIrrefutable
	DuplicateCapturePatternTarget
	PositionalPatternAfterKeyword
	FormatStringInPattern
	GeneratorNotParenthesized
	TypeParametersMissing
	UnexpectedExprSymbol
	DuplicateUnpack

	// Strings
	FormatStringUnterminated
	FormatStringBrace
	FormatStringExpectedConversion
	FormatStringNestedFormatSpecifier
	FormatStringEmptyExpression
	FormatStringBytes
	FormatStringUnicode
	AnnotationSpansStrings
	AnnotationFormatString
	AnnotationStringEscape
	AnnotationBytesString

	// Version gates
	PositionOnlyIncompatible
	WalrusIllegal
	ParenthesizedContextManagerIllegal
	MatchIncompatible
	ExceptionGroupIncompatible
	TypeParameterSyntaxIllegal
	TypeAliasStatementIllegal
	TypeVarDefaultIllegal
	UnpackedSubscriptIllegal
	UnpackTuplesIllegal
	AssignmentExprInSubscriptIllegal
	FormatStringNestedQuote
	FormatStringBackslash
	VarAnnotationIllegal
	DictUnpackIllegal
)

var diagnosticMessages = map[DiagnosticKind]string{
	InvalidToken:                    "Invalid character in source: %s",
	InvalidIdentifierChar:           "Invalid character in identifier",
	UnterminatedString:              "String literal is unterminated",
	StringUnsupportedEscape:         "Unsupported escape sequence in string literal",
	StringNonASCIIBytes:             "Non-ASCII character not allowed in bytes string literal",
	BacktickNotSupported:            "Surrounding backticks are not supported in Python 3.x; use repr instead",
	OperatorLessOrGreaterDeprecated: "Operator \"<>\" is not supported in Python 3; use \"!=\" instead",

	UnexpectedIndent:      "Unexpected indentation",
	UnexpectedUnindent:    "Unindent not expected",
	InconsistentTabs:      "Inconsistent use of tabs in indentation",
	InconsistentIndent:    "Unindent amount does not match previous indent",
	ExpectedIndentedBlock: "Expected indented block",
	StatementNotDelimited: "Statements must be separated by newlines or semicolons",
	ExpectedNewline:       "Expected newline",
	MaxParseDepthExceeded: "Maximum parse depth exceeded; break expression into smaller sub-expressions",

	ExpectedExpr:                 "Expected expression",
	ExpectedAssignRightHandExpr:  "Expected expression to the right of \"=\"",
	ExpectedBinaryRightHandExpr:  "Expected expression to the right of operator",
	ExpectedColon:                "Expected \":\"",
	ExpectedOpenParen:            "Expected \"(\"",
	ExpectedCloseParen:           "\"(\" was not closed",
	ExpectedCloseBracket:         "\"[\" was not closed",
	ExpectedCloseBrace:           "\"{\" was not closed",
	ExpectedIdentifier:           "Expected identifier",
	ExpectedMemberName:           "Expected attribute name after \".\"",
	ExpectedFunctionName:         "Expected function name after \"def\"",
	ExpectedClassName:            "Expected class name",
	ExpectedParamName:            "Expected parameter name",
	ExpectedTypeParameterName:    "Expected type parameter name",
	ExpectedNameAfterAs:          "Expected symbol name after \"as\"",
	ExpectedImport:               "Expected \"import\"",
	ExpectedImportSymbols:        "Expected one or more symbol names after \"import\"",
	ExpectedModuleName:           "Expected module name",
	ExpectedIn:                   "Expected \"in\"",
	ExpectedInExpr:               "Expected expression after \"in\"",
	ExpectedElse:                 "Expected \"else\"",
	ExpectedEquals:               "Expected \"=\"",
	ExpectedArrow:                "Expected \"->\" followed by return type annotation",
	ExpectedSliceIndex:           "Expected index or slice expression",
	ExpectedDelExpr:              "Expected expression after \"del\"",
	ExpectedAfterDecorator:       "Expected function or class declaration after decorator",
	ExpectedDecoratorNewline:     "Expected new line at end of decorator",
	ExpectedAfterAsync:           "Expected \"def\", \"with\" or \"for\" to follow \"async\"",
	ExpectedExceptOrFinally:      "Try statement must have at least one except or finally clause",
	ExpectedCase:                 "Expected \"case\" statement",
	ExpectedPatternExpr:          "Expected pattern expression",
	ExpectedPatternSubjectExpr:   "Expected pattern subject expression",
	ExpectedPatternValue:         "Expected pattern value expression of the form \"a.b\"",
	ExpectedComplexNumberLiteral: "Expected complex number literal for pattern matching",

	DictKeyValuePairs:                "Dictionary entries must contain key/value pairs",
	KeyValueInSet:                    "Key/value pairs are not allowed within a set",
	DictExpandIllegalInComprehension: "Dictionary expansion not allowed in comprehension",
	UnpackIllegalInComprehension:     "Unpack operation not allowed in comprehension",
	UnpackIllegalHere:                "Unpack operation not allowed in this context",
	DuplicateParam:                   "Duplicate parameter %q",
	NonDefaultAfterDefault:           "Non-default argument follows default argument",
	DuplicateArgsParam:               "Only one \"*\" parameter allowed",
	DuplicateKwargsParam:             "Only one \"**\" parameter allowed",
	ParamAfterKwargsParam:            "Parameter cannot follow \"**\" parameter",
	DuplicatePositionOnly:            "Only one \"/\" parameter allowed",
	PositionOnlyAfterArgs:            "Position-only parameter separator not allowed after \"*\" parameter",
	PositionOnlyFirstParam:           "Position-only parameter separator not allowed as first parameter",
	BareStarNotFollowed:              "Named parameter must follow bare \"*\"",
	DefaultValueNotAllowed:           "Parameter with \"*\" or \"**\" cannot have default value",
	SublistParamsIncompatible:        "Sublist parameters are not supported in Python 3.x",
	PositionArgAfterNamedArg:         "Positional argument cannot appear after keyword arguments",
	PositionArgAfterUnpackedDictArg:  "Positional argument cannot appear after keyword argument unpacking",
	KeywordSubscriptIllegal:          "Keyword arguments within subscripts are not supported",
	UnpackedDictSubscriptIllegal:     "Dictionary unpack operator in subscript is not allowed",
	ReturnOutsideFunction:            "\"return\" can be used only within a function",
	BreakOutsideLoop:                 "\"break\" can be used only within a loop",
	ContinueOutsideLoop:              "\"continue\" can be used only within a loop",
	ContinueInFinally:                "\"continue\" cannot be used within a finally clause",
	YieldOutsideFunction:             "\"yield\" not allowed outside of a function or lambda",
	YieldFromInAsync:                 "\"yield from\" not allowed in an async function",
	AwaitNotInAsyncFunction:          "\"await\" allowed only within async function",
	AsyncNotInAsyncFunction:          "Use of \"async\" not allowed outside of async function",
	WalrusNotAllowed:                 "Operator \":=\" is not allowed in this context without surrounding parentheses",
	TrailingCommaInFromImport:        "Trailing comma not allowed without surrounding parentheses",
	RelativeImportNotAllowed:         "Relative imports cannot be used with \"import .a\" form; use \"from . import a\" instead",
	WildcardInFunction:               "Wildcard import not allowed within a class or function",
	ExceptGroupMismatch:              "Try statement cannot include both \"except\" and \"except*\"",
	ExceptGroupRequiresType:          "Exception group syntax (\"except*\") requires an exception type",
	ExceptRequiresParens:             "Multiple exception types must be parenthesized prior to Python 3.14",
	TypeParameterBoundNotAllowed:     "Bound or constraint cannot be used with a variadic type parameter or ParamSpec",
	DuplicateStarPattern:             "Only one \"*\" pattern allowed in a pattern sequence",
	DuplicateStarStarPattern:         "Only one \"**\" entry allowed",
	StarPatternInOrPattern:           "Star pattern cannot be ORed within other patterns",
	StarPatternInAsPattern:           "Star pattern cannot be used with \"as\" target",
	StarStarWildcardNotAllowed:       "** cannot be used with wildcard \"_\"",
	OrPatternIrrefutable:             "Irrefutable pattern allowed only as the last subpattern in an \"or\" pattern",
	OrPatternMissingName:             "All subpatterns within an \"or\" pattern must target the same names; missing names: %s",
	CasePatternIsIrrefutable:         "Irrefutable pattern is allowed only for the last case statement",
	DuplicateCapturePatternTarget:    "Capture target %q cannot appear more than once within the same pattern",
	PositionalPatternAfterKeyword:    "Positional patterns must appear before keyword patterns",
	FormatStringInPattern:            "Format string not allowed in pattern",
	GeneratorNotParenthesized:        "Generator expressions must be parenthesized if not sole argument",
	TypeParametersMissing:            "At least one type parameter must be specified",
	UnexpectedExprSymbol:             "Unexpected token at end of expression",
	DuplicateUnpack:                  "Only one unpack operation allowed in list",

	FormatStringUnterminated:          "Unterminated expression in f-string; expecting \"}\"",
	FormatStringBrace:                 "Single close brace not allowed within f-string literal; use double close brace",
	FormatStringExpectedConversion:    "Expected a conversion specifier after \"!\" in f-string",
	FormatStringNestedFormatSpecifier: "Expressions nested too deeply within format string specifier",
	FormatStringEmptyExpression:       "Empty expression not allowed within f-string",
	FormatStringBytes:                 "Format string literals (f-strings) cannot be binary",
	FormatStringUnicode:               "Format string literals (f-strings) cannot be unicode",
	AnnotationSpansStrings:            "Type expression cannot span multiple string literals",
	AnnotationFormatString:            "Type expressions cannot use format string literals (f-strings)",
	AnnotationStringEscape:            "Type expressions cannot contain escape characters",
	AnnotationBytesString:             "Type expressions cannot use bytes string literals",

	PositionOnlyIncompatible:           "Position-only parameter separator requires Python 3.8 or newer",
	WalrusIllegal:                      "Operator \":=\" requires Python 3.8 or newer",
	ParenthesizedContextManagerIllegal: "Parentheses within \"with\" statement requires Python 3.9 or newer",
	MatchIncompatible:                  "Match statements require Python 3.10 or newer",
	ExceptionGroupIncompatible:         "Exception group syntax (\"except*\") requires Python 3.11 or newer",
	TypeParameterSyntaxIllegal:         "Type parameter syntax requires Python 3.12 or newer",
	TypeAliasStatementIllegal:          "Type alias statement requires Python 3.12 or newer",
	TypeVarDefaultIllegal:              "Type parameter default types require Python 3.13 or newer",
	UnpackedSubscriptIllegal:           "Unpack operator in subscript requires Python 3.11 or newer",
	UnpackTuplesIllegal:                "Unpack operation not allowed in tuples prior to Python 3.8",
	AssignmentExprInSubscriptIllegal:   "Assignment expressions within a subscript are supported only in Python 3.10 and newer",
	FormatStringNestedQuote:            "Strings nested within an f-string cannot use the same quote character as the f-string prior to Python 3.12",
	FormatStringBackslash:              "Escape sequence (backslash) not allowed in expression portion of f-string prior to Python 3.12",
	VarAnnotationIllegal:               "Type annotations for variables requires Python 3.6 or newer",
	DictUnpackIllegal:                  "Dictionary unpack requires Python 3.5 or newer",
}

// Diagnostic is a syntax problem found while parsing.
type Diagnostic struct {
	Kind     DiagnosticKind
	Severity Severity
	Range    ast.Range
	// Args fill the placeholders of the message, if it has any.
	Args []interface{}
}

// Message renders the default English text of the diagnostic.
func (d Diagnostic) Message() string {
	msg, ok := diagnosticMessages[d.Kind]
	if !ok {
		return fmt.Sprintf("syntax error %d", int(d.Kind))
	}
	if len(d.Args) > 0 {
		return fmt.Sprintf(msg, d.Args...)
	}
	return msg
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%v: %s", d.Range, d.Message())
}
