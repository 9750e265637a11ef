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

package tokenizer

import (
	"fmt"
	"math/big"

	"github.com/google/go-pyparser/ast"
)

//////////////////////////////////////////////////////////////////////////////
// Token

type Kind int

const (
	Invalid Kind = iota

	// A special token that holds the trailing comments of the file.
	EndOfStream

	// Layout
	NewLine
	Indent
	Dedent

	// Literals
	String
	FStringStart
	FStringMiddle
	FStringEnd
	Number
	Identifier
	Keyword
	Operator

	// Symbols
	Colon
	Semicolon
	Comma
	OpenParenthesis
	CloseParenthesis
	OpenBracket
	CloseBracket
	OpenCurlyBrace
	CloseCurlyBrace
	ExclamationMark
	Dot
	Ellipsis
	Arrow
	Backtick
)

var kindStrings = []string{
	Invalid:          "INVALID",
	EndOfStream:      "end of file",
	NewLine:          "NEWLINE",
	Indent:           "INDENT",
	Dedent:           "DEDENT",
	String:           "STRING",
	FStringStart:     "FSTRING_START",
	FStringMiddle:    "FSTRING_MIDDLE",
	FStringEnd:       "FSTRING_END",
	Number:           "NUMBER",
	Identifier:       "IDENTIFIER",
	Keyword:          "KEYWORD",
	Operator:         "OPERATOR",
	Colon:            "\":\"",
	Semicolon:        "\";\"",
	Comma:            "\",\"",
	OpenParenthesis:  "\"(\"",
	CloseParenthesis: "\")\"",
	OpenBracket:      "\"[\"",
	CloseBracket:     "\"]\"",
	OpenCurlyBrace:   "\"{\"",
	CloseCurlyBrace:  "\"}\"",
	ExclamationMark:  "\"!\"",
	Dot:              "\".\"",
	Ellipsis:         "\"...\"",
	Arrow:            "\"->\"",
	Backtick:         "\"`\"",
}

func (k Kind) String() string {
	return kindStrings[k]
}

func (k Kind) IsCloseBracket() bool {
	return k == CloseParenthesis || k == CloseBracket || k == CloseCurlyBrace
}

// KeywordType identifies a reserved or soft keyword.
type KeywordType int

const (
	KwNone KeywordType = iota
	KwAnd
	KwAs
	KwAssert
	KwAsync
	KwAwait
	KwBreak
	KwCase
	KwClass
	KwContinue
	KwDebug
	KwDef
	KwDel
	KwElif
	KwElse
	KwExcept
	KwFalse
	KwFinally
	KwFor
	KwFrom
	KwGlobal
	KwIf
	KwImport
	KwIn
	KwIs
	KwLambda
	KwMatch
	KwNoneConst
	KwNonlocal
	KwNot
	KwOr
	KwPass
	KwRaise
	KwReturn
	KwTrue
	KwTry
	KwType
	KwWhile
	KwWith
	KwYield
)

// Keywords maps the spelling of every keyword to its type.
var Keywords = map[string]KeywordType{
	"and":       KwAnd,
	"as":        KwAs,
	"assert":    KwAssert,
	"async":     KwAsync,
	"await":     KwAwait,
	"break":     KwBreak,
	"case":      KwCase,
	"class":     KwClass,
	"continue":  KwContinue,
	"__debug__": KwDebug,
	"def":       KwDef,
	"del":       KwDel,
	"elif":      KwElif,
	"else":      KwElse,
	"except":    KwExcept,
	"False":     KwFalse,
	"finally":   KwFinally,
	"for":       KwFor,
	"from":      KwFrom,
	"global":    KwGlobal,
	"if":        KwIf,
	"import":    KwImport,
	"in":        KwIn,
	"is":        KwIs,
	"lambda":    KwLambda,
	"match":     KwMatch,
	"None":      KwNoneConst,
	"nonlocal":  KwNonlocal,
	"not":       KwNot,
	"or":        KwOr,
	"pass":      KwPass,
	"raise":     KwRaise,
	"return":    KwReturn,
	"True":      KwTrue,
	"try":       KwTry,
	"type":      KwType,
	"while":     KwWhile,
	"with":      KwWith,
	"yield":     KwYield,
}

// IsSoft reports whether the keyword can also be used as an identifier.
func (k KeywordType) IsSoft() bool {
	switch k {
	case KwDebug, KwMatch, KwCase, KwType:
		return true
	}
	return false
}

type NewLineType int

const (
	CarriageReturn NewLineType = iota
	LineFeed
	CarriageReturnLineFeed
	Implied
)

// Comment is a "#" comment. Start points just past the "#".
type Comment struct {
	Start  int
	Length int
	Value  string
}

type Token struct {
	Kind   Kind
	Start  int
	Length int

	// Comments that precede this token.
	Comments []Comment

	Keyword  KeywordType
	Operator ast.Operator

	// Value is the identifier or keyword spelling, the number text, or the
	// brace-unescaped text of an f-string middle.
	Value string

	// Numbers
	IsInteger   bool
	IsImaginary bool
	NumberValue float64
	IntValue    *big.Int

	// Strings and f-string start/middle/end
	StringFlags     ast.StringFlags
	PrefixLength    int
	QuoteMarkLength int
	EscapedValue    string

	// Indent and Dedent
	IndentAmount      int
	IsIndentAmbiguous bool
	MatchesIndent     bool
	IsDedentAmbiguous bool

	NewLineType NewLineType
}

type Tokens []Token

func (t *Token) Range() ast.Range {
	return ast.Range{Start: t.Start, Length: t.Length}
}

func (t *Token) End() int {
	return t.Start + t.Length
}

func (t *Token) IsKeyword(k KeywordType) bool {
	return t.Kind == Keyword && t.Keyword == k
}

func (t *Token) IsOperator(op ast.Operator) bool {
	return t.Kind == Operator && t.Operator == op
}

func (t *Token) String() string {
	switch t.Kind {
	case EndOfStream, NewLine, Indent, Dedent:
		return t.Kind.String()
	case Operator:
		return fmt.Sprintf("%q", t.Operator.String())
	case Identifier, Keyword, Number:
		return fmt.Sprintf("(%v, %q)", t.Kind, t.Value)
	case String, FStringMiddle:
		return fmt.Sprintf("(%v, %q)", t.Kind, t.EscapedValue)
	}
	return t.Kind.String()
}
