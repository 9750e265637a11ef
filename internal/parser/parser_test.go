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
	"testing"

	"github.com/google/go-pyparser/ast"
	"github.com/kr/pretty"
)

var validPrograms = []string{
	"",
	"x = 1\n",
	"a, b = b, a\n",
	"x: int = 3\n",
	"x += 1\n",
	"a = b = c\n",
	"s = f'{a!r} {b!s} {c!a}'\n",
	"a = 1; b = 2\n",
	"a = 1;\n",
	"x = (1,)\n",
	"x = ()\n",
	"x = [\n1,\n]\n",
	"f(\na,\n)(\nb)\n",
	"1j\n",
	"0x1f\n",

	"def f(a, b=1, *args, c, d=2, **kw) -> int:\n    return a\n",
	"def f(a, /, b):\n    pass\n",
	"def f(*, a):\n    pass\n",
	"def f(a=1, *args, b):\n    pass\n",
	"async def f():\n    await g()\n    async for x in y:\n        pass\n    async with a as b:\n        pass\n",
	"class C(B, metaclass=M):\n    x = 1\n",
	"@dec\n@dec2(1)\ndef f(): pass\n",
	"def g():\n    x = yield 1\n    yield from y\n",
	"def f():\n    global x\n    x = 1\n",
	"def f():\n    x = 1\n    def g():\n        nonlocal x\n        x = 2\n",

	"if a:\n    pass\nelif b:\n    pass\nelse:\n    pass\n",
	"while x:\n    break\nelse:\n    pass\n",
	"for i in range(10):\n    continue\n",
	"try:\n    pass\nexcept ValueError as e:\n    raise\nexcept (A, B):\n    pass\nelse:\n    pass\nfinally:\n    pass\n",
	"try:\n    pass\nexcept* E:\n    pass\n",
	"with open(f) as a, open(g) as b:\n    pass\n",
	"with (open(f) as a, open(g) as b):\n    pass\n",
	"if (n := len(a)) > 10: pass\n",

	"import os.path as p\n",
	"from . import x\n",
	"from ..a import (b, c as d)\n",
	"del a, b[0]\n",
	"assert x, 'msg'\n",
	"raise E from e\n",

	"lambda x, *y, **z: x\n",
	"[x for x in y if x]\n",
	"{k: v for k, v in d.items()}\n",
	"{1, 2}\n",
	"(x for x in y)\n",
	"a[1:2, ::3]\n",
	"f(*a, **k)\n",
	"print(*a, sep='')\n",
	"x if y else z\n",
	"not a and b or c\n",
	"a < b <= c != d\n",
	"a is not b\n",
	"a not in b\n",
	"-x ** 2\n",
	"(y := 10)\n",

	"'a' 'b'\n",
	"b'x'\n",
	"'''doc'''\n",
	"print(f'{x!r:>{width}} {y=}')\n",
	"f'{{literal}}'\n",
	"x: 'List[int]' = []\n",

	"type Point[T] = tuple[T, T]\n",
	"def f[T: int, *Ts, **P](x: T) -> T: ...\n",
	"class C[T]: pass\n",

	"match x:\n" +
		"    case 1 | 2:\n        pass\n" +
		"    case [a, *rest]:\n        pass\n" +
		"    case {'k': v, **kw}:\n        pass\n" +
		"    case Point(x=0, y=yy):\n        pass\n" +
		"    case str() as s:\n        pass\n" +
		"    case -1 + 2j:\n        pass\n" +
		"    case a.b.c:\n        pass\n" +
		"    case {}:\n        pass\n" +
		"    case _:\n        pass\n",
}

func parseAndValidate(t *testing.T, text string, opts Options) *Results {
	t.Helper()
	res := ParseFile(text, opts)
	for _, v := range ast.Validate(res.Module) {
		t.Errorf("%q: %v", text, v)
	}
	return res
}

func TestParser(t *testing.T) {
	for _, s := range validPrograms {
		res := parseAndValidate(t, s, DefaultOptions())
		if len(res.Diagnostics) != 0 {
			t.Errorf("Unexpected diagnostics\n  input: %q\n  diagnostics: %v", s, res.Diagnostics)
		}
		if false {
			t.Logf("input: %v\nast: %# v\n", s, pretty.Formatter(res.Module))
		}
	}
}

// firstStatement unwraps the statement list around a simple statement.
func firstStatement(res *Results) ast.Node {
	if len(res.Module.Statements) == 0 {
		return nil
	}
	s := res.Module.Statements[0]
	if list, ok := s.(*ast.StatementList); ok && len(list.Statements) > 0 {
		return list.Statements[0]
	}
	return s
}

func TestModuleRange(t *testing.T) {
	text := "x = 1\ny = 2\n"
	res := parseAndValidate(t, text, DefaultOptions())
	if r := res.Module.Range(); r.Start != 0 || r.Length != len(text) {
		t.Errorf("module range %v does not cover the text", r)
	}
	if len(res.Module.Statements) != 2 {
		t.Errorf("expected 2 statements, got %d", len(res.Module.Statements))
	}
}

func TestChainedAssignment(t *testing.T) {
	res := parseAndValidate(t, "a = b = 1\n", DefaultOptions())
	outer, ok := firstStatement(res).(*ast.Assignment)
	if !ok {
		t.Fatalf("expected assignment, got %# v", pretty.Formatter(firstStatement(res)))
	}
	inner, ok := outer.Right.(*ast.Assignment)
	if !ok {
		t.Fatalf("expected nested assignment, got %v", outer.Right.Kind())
	}
	if name, ok := outer.Left.(*ast.Name); !ok || name.Value != "b" {
		t.Errorf("outer target should be the last one written, got %v", outer.Left)
	}
	if name, ok := inner.Left.(*ast.Name); !ok || name.Value != "a" {
		t.Errorf("inner target should be the first one written, got %v", inner.Left)
	}
}

func TestNodeIDsAreUnique(t *testing.T) {
	res := parseAndValidate(t, "def f(a):\n    return [a for a in b if a]\n", DefaultOptions())
	seen := map[int64]bool{}
	ast.Walk(res.Module, func(n ast.Node) bool {
		if seen[n.ID()] {
			t.Errorf("duplicate id %d on %v", n.ID(), n.Kind())
		}
		seen[n.ID()] = true
		return true
	})
}

func TestImports(t *testing.T) {
	text := "from __future__ import annotations\n" +
		"import os.path, sys as system\n" +
		"from ..pkg import a, b as c\n" +
		"from m import *\n" +
		"from typing import Literal as L, TypeAlias\n"
	res := parseAndValidate(t, text, DefaultOptions())
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics %v", res.Diagnostics)
	}

	type imp struct {
		NameParts       []string
		LeadingDots     int
		ImportedSymbols []string
	}
	var got []imp
	for _, i := range res.Imports {
		got = append(got, imp{i.NameParts, i.LeadingDots, i.ImportedSymbols})
	}
	expected := []imp{
		{[]string{"__future__"}, 0, []string{"annotations"}},
		{[]string{"os", "path"}, 0, []string{}},
		{[]string{"sys"}, 0, []string{}},
		{[]string{"pkg"}, 2, []string{"a", "b"}},
		{[]string{"m"}, 0, nil},
		{[]string{"typing"}, 0, []string{"Literal", "TypeAlias"}},
	}
	if diff := pretty.Diff(got, expected); len(diff) > 0 {
		t.Errorf("imports differ:\n%v", diff)
	}

	if diff := pretty.Diff(res.FutureImports, []string{"annotations"}); len(diff) > 0 {
		t.Errorf("future imports differ: %v", diff)
	}
	if !res.ContainsWildcardImport {
		t.Errorf("wildcard import not recorded")
	}
	if res.TypingSymbolAliases["L"] != "Literal" {
		t.Errorf("typing alias not recorded: %v", res.TypingSymbolAliases)
	}
}

func TestTypingModuleAlias(t *testing.T) {
	res := parseAndValidate(t, "import typing as t\nx: t.Literal['a'] = 'a'\n", DefaultOptions())
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics %v", res.Diagnostics)
	}
	stmt := firstStatementAt(res, 1)
	assign, ok := stmt.(*ast.Assignment)
	if !ok {
		t.Fatalf("expected assignment, got %v", stmt.Kind())
	}
	ann, ok := assign.Left.(*ast.TypeAnnotation)
	if !ok {
		t.Fatalf("expected annotated target, got %v", assign.Left.Kind())
	}
	index, ok := ann.Annotation.(*ast.Index)
	if !ok {
		t.Fatalf("expected subscript annotation, got %v", ann.Annotation.Kind())
	}
	// Literal contents are values, not forward references.
	if list, ok := index.Items[0].ValueExpr.(*ast.StringList); !ok || list.Annotation != nil {
		t.Errorf("Literal argument should stay a plain string: %# v", pretty.Formatter(index.Items[0].ValueExpr))
	}
}

func firstStatementAt(res *Results, i int) ast.Node {
	s := res.Module.Statements[i]
	if list, ok := s.(*ast.StatementList); ok {
		return list.Statements[0]
	}
	return s
}

func TestParseTextExpression(t *testing.T) {
	text := "a + b"
	res := ParseTextExpression(text, 0, len(text), DefaultOptions(), ModeExpression, 0, nil)
	if len(res.Diagnostics) != 0 {
		t.Errorf("unexpected diagnostics %v", res.Diagnostics)
	}
	if _, ok := res.Expr.(*ast.BinaryOperation); !ok {
		t.Errorf("expected binary operation, got %# v", pretty.Formatter(res.Expr))
	}

	text = "a b"
	res = ParseTextExpression(text, 0, len(text), DefaultOptions(), ModeExpression, 0, nil)
	if !hasDiagnostic(res.Diagnostics, UnexpectedExprSymbol) {
		t.Errorf("expected trailing token diagnostic, got %v", res.Diagnostics)
	}
}

func TestParsePythonVersion(t *testing.T) {
	tests := []struct {
		in       string
		expected PythonVersion
		err      bool
	}{
		{"3.8", Python3_8, false},
		{"3.12", Python3_12, false},
		{"2.7", PythonVersion{}, true},
		{"three", PythonVersion{}, true},
	}
	for _, test := range tests {
		v, err := ParsePythonVersion(test.in)
		if (err != nil) != test.err {
			t.Errorf("%q: error %v, expected error: %v", test.in, err, test.err)
			continue
		}
		if err == nil && v != test.expected {
			t.Errorf("%q: got %v, expected %v", test.in, v, test.expected)
		}
	}
}

func TestAugmentedAssignmentDestination(t *testing.T) {
	res := parseAndValidate(t, "a.b[c] += 1\n", DefaultOptions())
	aug, ok := firstStatementAt(res, 0).(*ast.AugmentedAssignment)
	if !ok {
		t.Fatalf("expected augmented assignment, got %v", firstStatementAt(res, 0).Kind())
	}
	if aug.DestExpr.Parent() != aug || aug.DestExpr.Range() != aug.Left.Range() {
		t.Errorf("destination parent %v range %v", aug.DestExpr.Parent(), aug.DestExpr.Range())
	}

	left := map[ast.Node]bool{}
	ast.Walk(aug.Left, func(n ast.Node) bool {
		left[n] = true
		return true
	})
	dest := map[ast.Node]bool{}
	ast.Walk(aug.DestExpr, func(n ast.Node) bool {
		dest[n] = true
		return true
	})
	if len(dest) != len(left) {
		t.Errorf("destination has %d nodes, left has %d", len(dest), len(left))
	}
	for n := range dest {
		if left[n] {
			t.Errorf("%v is shared between left and destination", n.Kind())
		}
		if n != aug.DestExpr && !dest[n.Parent()] {
			t.Errorf("%v parent is outside the destination", n.Kind())
		}
	}
}
