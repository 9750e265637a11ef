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
	"testing"

	"github.com/google/go-pyparser/ast"
	"github.com/kr/pretty"
)

func kinds(tokens Tokens) []Kind {
	var ks []Kind
	for _, t := range tokens {
		ks = append(ks, t.Kind)
	}
	return ks
}

func kindsEqual(k1, k2 []Kind) bool {
	if len(k1) != len(k2) {
		return false
	}
	for i := range k1 {
		if k1[i] != k2[i] {
			return false
		}
	}
	return true
}

func singleTest(t *testing.T, input string, expected []Kind) Tokens {
	t.Helper()
	testKinds := append([]Kind(nil), expected...)
	if len(testKinds) == 0 || testKinds[len(testKinds)-1] != EndOfStream {
		testKinds = append(testKinds, EndOfStream)
	}
	out := TokenizeString(input)
	if got := kinds(out.Tokens); !kindsEqual(got, testKinds) {
		t.Errorf("%q: got\n\t%v\nexpected\n\t%v", input, got, testKinds)
	}
	return out.Tokens
}

func TestEmpty(t *testing.T) {
	singleTest(t, "", nil)
}

func TestWhitespace(t *testing.T) {
	singleTest(t, "  \t\n\r\r\n", nil)
}

func TestSimpleStatement(t *testing.T) {
	tokens := singleTest(t, "x = 1\n", []Kind{Identifier, Operator, Number, NewLine})
	if !tokens[1].IsOperator(ast.OpAssign) {
		t.Errorf("expected assignment operator, got %v", tokens[1].String())
	}
	if tokens[3].Start != 5 || tokens[3].Length != 1 || tokens[3].NewLineType != LineFeed {
		t.Errorf("bad newline token: %# v", pretty.Formatter(tokens[3]))
	}
}

func TestImpliedNewLine(t *testing.T) {
	tokens := singleTest(t, "pass", []Kind{Keyword, NewLine})
	if tokens[1].NewLineType != Implied || tokens[1].Length != 0 || tokens[1].Start != 4 {
		t.Errorf("bad implied newline: %# v", pretty.Formatter(tokens[1]))
	}
}

func TestIndentDedent(t *testing.T) {
	tokens := singleTest(t, "if x:\n    y\n", []Kind{
		Keyword, Identifier, Colon, NewLine, Indent, Identifier, NewLine, Dedent,
	})
	if tokens[4].IndentAmount != 4 || tokens[4].Length != 0 || tokens[4].Start != 10 {
		t.Errorf("bad indent: %# v", pretty.Formatter(tokens[4]))
	}
	if !tokens[7].MatchesIndent {
		t.Errorf("final dedent should match")
	}
}

func TestNestedDedent(t *testing.T) {
	tokens := singleTest(t, "if a:\n  if b:\n    c\nd\n", []Kind{
		Keyword, Identifier, Colon, NewLine,
		Indent, Keyword, Identifier, Colon, NewLine,
		Indent, Identifier, NewLine,
		Dedent, Dedent, Identifier, NewLine,
	})
	if tokens[12].IndentAmount != 2 || tokens[13].IndentAmount != 0 {
		t.Errorf("dedent amounts: %d %d", tokens[12].IndentAmount, tokens[13].IndentAmount)
	}
	if !tokens[12].MatchesIndent || !tokens[13].MatchesIndent {
		t.Errorf("dedents should match")
	}
}

func TestInconsistentDedent(t *testing.T) {
	tokens := singleTest(t, "if a:\n    b\n  c\n", []Kind{
		Keyword, Identifier, Colon, NewLine,
		Indent, Identifier, NewLine,
		Dedent, Identifier, NewLine,
	})
	if tokens[7].MatchesIndent {
		t.Errorf("dedent to column 2 should not match an enclosing level")
	}
}

func TestBlankAndCommentLinesKeepIndent(t *testing.T) {
	singleTest(t, "if a:\n    b\n\n# note\n    c\n", []Kind{
		Keyword, Identifier, Colon, NewLine,
		Indent, Identifier, NewLine, Identifier, NewLine, Dedent,
	})
}

func TestParensSuppressNewLines(t *testing.T) {
	singleTest(t, "(1,\n 2)\n", []Kind{
		OpenParenthesis, Number, Comma, Number, CloseParenthesis, NewLine,
	})
}

func TestUnclosedBracketBeforeStatement(t *testing.T) {
	singleTest(t, "x = (\nassert x\n", []Kind{
		Identifier, Operator, OpenParenthesis, NewLine, Keyword, Identifier, NewLine,
	})
}

func TestUnclosedBracketRestartsAtOuterIndent(t *testing.T) {
	tokens := singleTest(t, "x = (\ny = 2\n", []Kind{
		Identifier, Operator, OpenParenthesis, NewLine, Identifier, Operator, Number, NewLine,
	})
	if tokens[3].NewLineType != Implied || tokens[3].Start != 6 {
		t.Errorf("bad restart newline: %# v", pretty.Formatter(tokens[3]))
	}

	singleTest(t, "def f():\n    x = (\n    y = 2\nz = 3\n", []Kind{
		Keyword, Identifier, OpenParenthesis, CloseParenthesis, Colon, NewLine,
		Indent, Identifier, Operator, OpenParenthesis, NewLine,
		Identifier, Operator, Number, NewLine,
		Dedent, Identifier, Operator, Number, NewLine,
	})

	// A later statement keyword goes back to the first line that could
	// have started a statement.
	singleTest(t, "x = (\nif y:\n    pass\n", []Kind{
		Identifier, Operator, OpenParenthesis, NewLine,
		Keyword, Identifier, Colon, NewLine, Indent, Keyword, NewLine, Dedent,
	})

	// Lines indented past the opening line stay inside the bracket.
	singleTest(t, "x = (\n    y\n", []Kind{
		Identifier, Operator, OpenParenthesis, Identifier, NewLine,
	})
}

func TestClosedBracketsAtOuterIndent(t *testing.T) {
	singleTest(t, "x = [\n1,\n]\ny\n", []Kind{
		Identifier, Operator, OpenBracket, Number, Comma, CloseBracket, NewLine,
		Identifier, NewLine,
	})
	singleTest(t, "f(\na)(\nb)\n", []Kind{
		Identifier, OpenParenthesis, Identifier, CloseParenthesis,
		OpenParenthesis, Identifier, CloseParenthesis, NewLine,
	})
}

func TestLineContinuation(t *testing.T) {
	singleTest(t, "x = \\\n  1\n", []Kind{Identifier, Operator, Number, NewLine})
}

func TestInitialParenDepth(t *testing.T) {
	text := "List[\n  int]"
	out := Tokenize(text, 0, len(text), 1, false)
	expected := []Kind{Identifier, OpenBracket, Identifier, CloseBracket, NewLine, EndOfStream}
	if got := kinds(out.Tokens); !kindsEqual(got, expected) {
		t.Errorf("got %v expected %v", got, expected)
	}
}

func TestSubrangeOffsets(t *testing.T) {
	text := "x: 'List[int]'"
	out := Tokenize(text, 4, 9, 0, false)
	if out.Tokens[0].Start != 4 || out.Tokens[0].Value != "List" {
		t.Errorf("got %# v", pretty.Formatter(out.Tokens[0]))
	}
	if out.Tokens[2].Start != 9 {
		t.Errorf("int should start at 9, got %d", out.Tokens[2].Start)
	}
}

func TestComments(t *testing.T) {
	tokens := singleTest(t, "# hi\nx  # trailing\n", []Kind{Identifier, NewLine})
	if len(tokens[0].Comments) != 1 || tokens[0].Comments[0].Value != " hi" || tokens[0].Comments[0].Start != 1 {
		t.Errorf("leading comment: %# v", pretty.Formatter(tokens[0].Comments))
	}
	if len(tokens[1].Comments) != 1 || tokens[1].Comments[0].Value != " trailing" {
		t.Errorf("trailing comment: %# v", pretty.Formatter(tokens[1].Comments))
	}
}

func TestInteractiveMagic(t *testing.T) {
	text := "%matplotlib inline\nx\n"
	out := Tokenize(text, 0, len(text), 0, true)
	expected := []Kind{Identifier, NewLine, EndOfStream}
	if got := kinds(out.Tokens); !kindsEqual(got, expected) {
		t.Errorf("got %v expected %v", got, expected)
	}
}

func TestKeywords(t *testing.T) {
	tokens := singleTest(t, "match None __debug__ spam", []Kind{Keyword, Keyword, Keyword, Identifier, NewLine})
	if tokens[0].Keyword != KwMatch || !tokens[0].Keyword.IsSoft() {
		t.Errorf("match should be a soft keyword")
	}
	if tokens[1].Keyword != KwNoneConst || tokens[1].Keyword.IsSoft() {
		t.Errorf("None should be a hard keyword")
	}
}

func TestUnicodeIdentifier(t *testing.T) {
	tokens := singleTest(t, "café = 1", []Kind{Identifier, Operator, Number, NewLine})
	if tokens[0].Value != "café" {
		t.Errorf("got %q", tokens[0].Value)
	}
}

func TestOperators(t *testing.T) {
	cases := []struct {
		input string
		op    ast.Operator
	}{
		{"//=", ast.OpFloorDivideEqual},
		{"**", ast.OpPower},
		{"**=", ast.OpPowerEqual},
		{"<<=", ast.OpLeftShiftEqual},
		{"<>", ast.OpLessOrGreaterThan},
		{"!=", ast.OpNotEquals},
		{":=", ast.OpWalrus},
		{"@", ast.OpMatrixMultiply},
		{"~", ast.OpBitwiseInvert},
		{"-", ast.OpSubtract},
	}
	for _, c := range cases {
		out := TokenizeString(c.input)
		tok := out.Tokens[0]
		if !tok.IsOperator(c.op) || tok.Length != len(c.input) {
			t.Errorf("%q: got %v", c.input, tok.String())
		}
	}
}

func TestPunctuation(t *testing.T) {
	singleTest(t, "-> ... . ! ` :", []Kind{Arrow, Ellipsis, Dot, ExclamationMark, Backtick, Colon, NewLine})
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		input     string
		isInteger bool
		imaginary bool
		value     float64
		intValue  string
	}{
		{"0", true, false, 0, "0"},
		{"1_000", true, false, 1000, "1000"},
		{"0x_ff", true, false, 255, "255"},
		{"0o17", true, false, 15, "15"},
		{"0b101", true, false, 5, "5"},
		{"1.5e3", false, false, 1500, ""},
		{".5", false, false, 0.5, ""},
		{"3j", false, true, 3, ""},
		{"123456789012345678901234567890", true, false, 123456789012345678901234567890, "123456789012345678901234567890"},
	}
	for _, c := range cases {
		out := TokenizeString(c.input)
		tok := out.Tokens[0]
		if tok.Kind != Number || tok.Length != len(c.input) {
			t.Errorf("%q: got %v length %d", c.input, tok.Kind, tok.Length)
			continue
		}
		if tok.IsInteger != c.isInteger || tok.IsImaginary != c.imaginary || tok.NumberValue != c.value {
			t.Errorf("%q: got %# v", c.input, pretty.Formatter(tok))
		}
		if c.intValue != "" && (tok.IntValue == nil || tok.IntValue.String() != c.intValue) {
			t.Errorf("%q: int value %v", c.input, tok.IntValue)
		}
	}
}

func TestStrings(t *testing.T) {
	cases := []struct {
		input   string
		flags   ast.StringFlags
		escaped string
		prefix  int
	}{
		{`'abc'`, ast.StringSingleQuote, "abc", 0},
		{`"a\"b"`, ast.StringDoubleQuote, `a\"b`, 0},
		{"\"\"\"a\nb\"\"\"", ast.StringDoubleQuote | ast.StringTriplicate, "a\nb", 0},
		{`rb'x'`, ast.StringSingleQuote | ast.StringRaw | ast.StringBytes, "x", 2},
		{`U"x"`, ast.StringDoubleQuote | ast.StringUnicode, "x", 1},
		{`'abc`, ast.StringSingleQuote | ast.StringUnterminated, "abc", 0},
	}
	for _, c := range cases {
		out := TokenizeString(c.input)
		tok := out.Tokens[0]
		if tok.Kind != String || tok.StringFlags != c.flags || tok.EscapedValue != c.escaped || tok.PrefixLength != c.prefix {
			t.Errorf("%q: got %# v", c.input, pretty.Formatter(tok))
		}
		if tok.Length != len(c.input) {
			t.Errorf("%q: length %d", c.input, tok.Length)
		}
	}
}

func TestUnterminatedStringStopsAtNewLine(t *testing.T) {
	singleTest(t, "'abc\nx\n", []Kind{String, NewLine, Identifier, NewLine})
}

func TestFString(t *testing.T) {
	tokens := singleTest(t, `f"a{b!r:>{w}}c"`, []Kind{
		FStringStart, FStringMiddle, OpenCurlyBrace, Identifier, ExclamationMark, Identifier, Colon,
		FStringMiddle, OpenCurlyBrace, Identifier, CloseCurlyBrace, CloseCurlyBrace,
		FStringMiddle, FStringEnd, NewLine,
	})
	if tokens[1].Value != "a" || tokens[7].Value != ">" || tokens[12].Value != "c" {
		t.Errorf("middles: %q %q %q", tokens[1].Value, tokens[7].Value, tokens[12].Value)
	}
	if tokens[13].Start != 14 || tokens[13].Length != 1 {
		t.Errorf("bad end token: %# v", pretty.Formatter(tokens[13]))
	}
}

func TestFStringDoubledBraces(t *testing.T) {
	tokens := singleTest(t, `f'{{x}}'`, []Kind{FStringStart, FStringMiddle, FStringEnd, NewLine})
	if tokens[1].Value != "{x}" || tokens[1].EscapedValue != "{{x}}" {
		t.Errorf("got %q / %q", tokens[1].Value, tokens[1].EscapedValue)
	}
}

func TestFStringUnterminated(t *testing.T) {
	tokens := singleTest(t, "f'abc\nx\n", []Kind{FStringStart, FStringMiddle, NewLine, Identifier, NewLine})
	if !tokens[0].StringFlags.Has(ast.StringUnterminated) {
		t.Errorf("f-string start should be flagged unterminated")
	}
}

func TestFStringQuoteClosesOpenField(t *testing.T) {
	singleTest(t, `f"{x"`, []Kind{FStringStart, OpenCurlyBrace, Identifier, FStringEnd, NewLine})
}

func TestPredominantEndOfLine(t *testing.T) {
	out := TokenizeString("a\r\nb\r\nc\n")
	if out.PredominantEndOfLine != "\r\n" {
		t.Errorf("got %q", out.PredominantEndOfLine)
	}
}

func TestInvalidCharacter(t *testing.T) {
	singleTest(t, "a $ b", []Kind{Identifier, Invalid, Identifier, NewLine})
}

func TestUnescape(t *testing.T) {
	cases := []struct {
		escaped string
		flags   ast.StringFlags
		value   string
		errors  int
	}{
		{`a\nb`, 0, "a\nb", 0},
		{`\x41\101`, 0, "AA", 0},
		{`\u00e9`, 0, "é", 0},
		{`\u00e9`, ast.StringBytes, `\u00e9`, 0},
		{`\q`, 0, `\q`, 1},
		{`\q`, ast.StringRaw, `\q`, 0},
		{"a\\\nb", 0, "ab", 0},
		{`\N{DASH}`, 0, `\N{DASH}`, 0},
		{`\xZ`, 0, `\xZ`, 1},
	}
	for _, c := range cases {
		res := Unescape(c.escaped, c.flags)
		if res.Value != c.value || len(res.Errors) != c.errors {
			t.Errorf("%q: got %# v", c.escaped, pretty.Formatter(res))
		}
	}
}
