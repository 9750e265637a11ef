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
	"testing"
)

func hasDiagnostic(diags []Diagnostic, kind DiagnosticKind) bool {
	for _, d := range diags {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

type diagnosticTest struct {
	name    string
	input   string
	version PythonVersion
	kind    DiagnosticKind
}

var diagnosticTests = []diagnosticTest{
	{name: "duplicate param", input: "def f(a, a): pass\n", kind: DuplicateParam},
	{name: "non-default after default", input: "def f(a=1, b): pass\n", kind: NonDefaultAfterDefault},
	{name: "break outside loop", input: "break\n", kind: BreakOutsideLoop},
	{name: "continue outside loop", input: "continue\n", kind: ContinueOutsideLoop},
	{name: "return outside function", input: "return 1\n", kind: ReturnOutsideFunction},
	{name: "yield outside function", input: "yield 1\n", kind: YieldOutsideFunction},
	{name: "await at module level", input: "await x\n", kind: AwaitNotInAsyncFunction},
	{name: "await in sync function", input: "def f():\n    await x\n", kind: AwaitNotInAsyncFunction},
	{name: "walrus statement", input: "x := 1\n", kind: WalrusNotAllowed},
	{name: "missing colon", input: "if x\n    pass\n", kind: ExpectedColon},
	{name: "missing block", input: "if x:\npass\n", kind: ExpectedIndentedBlock},
	{name: "unexpected indent", input: "  x = 1\n", kind: UnexpectedIndent},
	{name: "not delimited", input: "x = 1 y = 2\n", kind: StatementNotDelimited},
	{name: "unterminated string", input: "x = 'abc\n", kind: UnterminatedString},
	{name: "bare generator argument", input: "f(x for x in y, 1)\n", kind: GeneratorNotParenthesized},
	{name: "positional after keyword", input: "f(a=1, b)\n", kind: PositionArgAfterNamedArg},
	{name: "from import trailing comma", input: "from m import a,\n", kind: TrailingCommaInFromImport},
	{name: "wildcard in function", input: "def f():\n    from m import *\n", kind: WildcardInFunction},
	{name: "from without import", input: "from m\n", kind: ExpectedImport},
	{name: "less or greater", input: "a <> b\n", kind: OperatorLessOrGreaterDeprecated},
	{name: "missing dict value", input: "{1: 2, 3}\n", kind: DictKeyValuePairs},
	{name: "key value in set", input: "{1, 2: 3}\n", kind: KeyValueInSet},
	{name: "unclosed call", input: "f(a\n", kind: ExpectedCloseParen},
	{name: "unclosed subscript", input: "a[1\n", kind: ExpectedCloseBracket},
	{name: "duplicate unpack", input: "*a, *b = c\n", kind: DuplicateUnpack},

	// Version gates.
	{name: "dict unpack", input: "{**a}\n", version: Python3_3, kind: DictUnpackIllegal},
	{name: "position only", input: "def f(a, /): pass\n", version: Python3_7, kind: PositionOnlyIncompatible},
	{name: "walrus", input: "(x := 1)\n", version: Python3_7, kind: WalrusIllegal},
	{name: "parenthesized with", input: "with (a as b, c as d):\n    pass\n", version: Python3_8, kind: ParenthesizedContextManagerIllegal},
	{name: "match", input: "match x:\n    case 1:\n        pass\n", version: Python3_9, kind: MatchIncompatible},
	{name: "except star", input: "try:\n    pass\nexcept* E:\n    pass\n", version: Python3_10, kind: ExceptionGroupIncompatible},
	{name: "type alias", input: "type X = int\n", version: Python3_11, kind: TypeAliasStatementIllegal},
	{name: "type parameters", input: "def f[T](): pass\n", version: Python3_11, kind: TypeParameterSyntaxIllegal},
	{name: "variable annotation", input: "x: int = 1\n", version: Python3_5, kind: VarAnnotationIllegal},
	{name: "nested f-string quote", input: "f'{x['a']}'\n", version: Python3_11, kind: FormatStringNestedQuote},
	{name: "f-string backslash", input: "f'{\"\\n\".join(a)}'\n", version: Python3_11, kind: FormatStringBackslash},

	// f-strings
	{name: "empty f-string field", input: "f'{}'\n", kind: FormatStringEmptyExpression},
	{name: "single close brace", input: "f'}'\n", kind: FormatStringBrace},
	{name: "missing conversion", input: "f'{x!}'\n", kind: FormatStringExpectedConversion},
	{name: "unknown conversion", input: "f'{x!z}'\n", kind: FormatStringExpectedConversion},
	{name: "long conversion", input: "f'{x!rr}'\n", kind: FormatStringExpectedConversion},
	{name: "unterminated field", input: "f'{x'\n", kind: FormatStringUnterminated},
	{name: "nested format spec", input: "f'{a:{b:{c}}}'\n", kind: FormatStringNestedFormatSpecifier},
	{name: "non-ASCII bytes", input: "b'\u00e9'\n", kind: StringNonASCIIBytes},

	// String annotations
	{name: "annotation spans strings", input: "x: 'a' 'b'\n", kind: AnnotationSpansStrings},
	{name: "annotation f-string", input: "x: f'int'\n", kind: AnnotationFormatString},
	{name: "annotation escape", input: "x: 'in\\x74'\n", kind: AnnotationStringEscape},
	{name: "annotation bytes", input: "x: b'int'\n", kind: AnnotationBytesString},

	// Patterns
	{name: "duplicate star pattern", input: "match x:\n    case [*a, *b]:\n        pass\n", kind: DuplicateStarPattern},
	{name: "irrefutable or alternative", input: "match x:\n    case a | 1:\n        pass\n", kind: OrPatternIrrefutable},
	{name: "or pattern names", input: "match x:\n    case [a] | [b]:\n        pass\n", kind: OrPatternMissingName},
	{name: "irrefutable case", input: "match x:\n    case a:\n        pass\n    case 1:\n        pass\n", kind: CasePatternIsIrrefutable},
	{name: "duplicate capture", input: "match x:\n    case [a, a]:\n        pass\n", kind: DuplicateCapturePatternTarget},
	{name: "star star wildcard", input: "match x:\n    case {**_}:\n        pass\n", kind: StarStarWildcardNotAllowed},
	{name: "duplicate star star", input: "match x:\n    case {**a, **b}:\n        pass\n", kind: DuplicateStarStarPattern},
	{name: "f-string pattern", input: "match x:\n    case f'x':\n        pass\n", kind: FormatStringInPattern},
	{name: "positional class pattern", input: "match x:\n    case C(a=1, 2):\n        pass\n", kind: PositionalPatternAfterKeyword},
	{name: "star in or", input: "match x:\n    case [*a | b]:\n        pass\n", kind: StarPatternInOrPattern},
	{name: "star with as", input: "match x:\n    case [*a as b]:\n        pass\n", kind: StarPatternInAsPattern},
	{name: "mapping key capture", input: "match x:\n    case {a: 1}:\n        pass\n", kind: ExpectedPatternValue},
	{name: "complex literal", input: "match x:\n    case 1 + 2:\n        pass\n", kind: ExpectedComplexNumberLiteral},
}

func TestDiagnostics(t *testing.T) {
	for _, test := range diagnosticTests {
		t.Run(test.name, func(t *testing.T) {
			opts := DefaultOptions()
			if test.version != (PythonVersion{}) {
				opts.PythonVersion = test.version
			}
			res := parseAndValidate(t, test.input, opts)
			if !hasDiagnostic(res.Diagnostics, test.kind) {
				t.Errorf("%q: expected %q, got %v", test.input, diagnosticMessages[test.kind], res.Diagnostics)
			}
		})
	}
}

// Every version gated input must be accepted by the latest version.
func TestVersionGatesLiftOnLatest(t *testing.T) {
	for _, test := range diagnosticTests {
		if test.version == (PythonVersion{}) {
			continue
		}
		res := parseAndValidate(t, test.input, DefaultOptions())
		if len(res.Diagnostics) != 0 {
			t.Errorf("%s: %q: unexpected diagnostics %v", test.name, test.input, res.Diagnostics)
		}
	}
}

func TestStubFilesAreNotVersionGated(t *testing.T) {
	opts := DefaultOptions()
	opts.PythonVersion = Python3_7
	opts.IsStubFile = true
	res := parseAndValidate(t, "def f(a, /): ...\n", opts)
	if hasDiagnostic(res.Diagnostics, PositionOnlyIncompatible) {
		t.Errorf("stub file should not be version gated: %v", res.Diagnostics)
	}
}

func TestOrPatternMissingNameMessage(t *testing.T) {
	res := parseAndValidate(t, "match x:\n    case [a] | [b]:\n        pass\n", DefaultOptions())
	var messages []string
	for _, d := range res.Diagnostics {
		if d.Kind == OrPatternMissingName {
			messages = append(messages, d.Message())
		}
	}
	if len(messages) != 2 {
		t.Fatalf("expected one diagnostic per alternative, got %v", res.Diagnostics)
	}
	if !strings.HasSuffix(messages[0], `"b"`) || !strings.HasSuffix(messages[1], `"a"`) {
		t.Errorf("missing names not listed: %q", messages)
	}
}

func TestPatternsWithoutDiagnostics(t *testing.T) {
	inputs := []string{
		"match x:\n    case [a] | [a]:\n        pass\n",
		"match x:\n    case a if a > 0:\n        pass\n    case 1:\n        pass\n",
		"match x:\n    case (a, b):\n        pass\n    case (a):\n        pass\n",
		"match x:\n    case {'a': a, 'b': b}:\n        pass\n",
		"match x, y:\n    case a, b:\n        pass\n",
	}
	for _, input := range inputs {
		res := parseAndValidate(t, input, DefaultOptions())
		if len(res.Diagnostics) != 0 {
			t.Errorf("%q: unexpected diagnostics %v", input, res.Diagnostics)
		}
	}
}

func TestUnsupportedEscapeWarning(t *testing.T) {
	input := "x = '\\d'\n"
	res := parseAndValidate(t, input, DefaultOptions())
	if hasDiagnostic(res.Diagnostics, StringUnsupportedEscape) {
		t.Errorf("escape warnings are off by default: %v", res.Diagnostics)
	}

	opts := DefaultOptions()
	opts.ReportInvalidStringEscapeSequence = true
	res = parseAndValidate(t, input, opts)
	if len(res.Diagnostics) != 1 || res.Diagnostics[0].Kind != StringUnsupportedEscape {
		t.Fatalf("expected one escape warning, got %v", res.Diagnostics)
	}
	d := res.Diagnostics[0]
	if d.Severity != SeverityWarning || d.Range.Start != strings.Index(input, "\\") {
		t.Errorf("bad warning %v (%v)", d, d.Severity)
	}
}

func TestParsedStringContentErrors(t *testing.T) {
	input := "x: 'List[' = 1\n"
	res := parseAndValidate(t, input, DefaultOptions())
	if len(res.Diagnostics) != 0 {
		t.Errorf("nested errors are dropped by default: %v", res.Diagnostics)
	}

	opts := DefaultOptions()
	opts.ReportErrorsForParsedStringContents = true
	res = parseAndValidate(t, input, opts)
	if len(res.Diagnostics) == 0 {
		t.Fatalf("expected nested parse errors")
	}
	start := strings.Index(input, "'")
	for _, d := range res.Diagnostics {
		if d.Range.Start != start || d.Range.Length != len("'List['") {
			t.Errorf("nested diagnostic %v should cover the string", d)
		}
	}
}
