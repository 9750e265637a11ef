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
)

func TestSkipFunctionAndClassBody(t *testing.T) {
	text := "def f(a):\n    x = a\n    return x\n" +
		"class C:\n    def m(self):\n        pass\n" +
		"def g(): return 1\n" +
		"y = 1\n"
	opts := DefaultOptions()
	opts.SkipFunctionAndClassBody = true
	res := parseAndValidate(t, text, opts)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics %v", res.Diagnostics)
	}
	stmts := res.Module.Statements
	if len(stmts) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(stmts))
	}
	for _, s := range stmts[:3] {
		var suite *ast.Suite
		switch n := s.(type) {
		case *ast.Function:
			suite = n.Suite
		case *ast.Class:
			suite = n.Suite
		default:
			t.Fatalf("unexpected %v", s.Kind())
		}
		if len(suite.Statements) != 0 {
			t.Errorf("%v body was not skipped", s.Kind())
		}
	}
	if _, ok := firstStatementAt(res, 3).(*ast.Assignment); !ok {
		t.Errorf("statement after skipped bodies is %v", firstStatementAt(res, 3).Kind())
	}

	// Without the option the bodies are parsed.
	res = parseAndValidate(t, text, DefaultOptions())
	if fn := res.Module.Statements[0].(*ast.Function); len(fn.Suite.Statements) != 2 {
		t.Errorf("expected 2 body statements, got %d", len(fn.Suite.Statements))
	}
}

func TestInteractive(t *testing.T) {
	text := "%matplotlib inline\n" +
		"import os\n" +
		"!ls -la\n" +
		"await f()\n" +
		"async for x in y:\n    pass\n" +
		"async with a as b:\n    pass\n" +
		"[x async for x in y]\n"
	opts := DefaultOptions()
	opts.Interactive = true
	res := parseAndValidate(t, text, opts)
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics %v", res.Diagnostics)
	}
	kinds := []ast.Kind{ast.KindImport, ast.KindAwait, ast.KindFor, ast.KindWith, ast.KindComprehension}
	if len(res.Module.Statements) != len(kinds) {
		t.Fatalf("expected %d statements, got %d", len(kinds), len(res.Module.Statements))
	}
	for i, k := range kinds {
		got := firstStatementAt(res, i)
		if list, ok := got.(*ast.List); ok && len(list.Entries) == 1 {
			got = list.Entries[0]
		}
		if got.Kind() != k {
			t.Errorf("statement %d: got %v, expected %v", i, got.Kind(), k)
		}
	}

	// Inside a function the usual rules apply.
	res = parseAndValidate(t, "def f():\n    await g()\n", opts)
	if !hasDiagnostic(res.Diagnostics, AwaitNotInAsyncFunction) {
		t.Errorf("expected await diagnostic, got %v", res.Diagnostics)
	}

	res = parseAndValidate(t, text, DefaultOptions())
	for _, kind := range []DiagnosticKind{AwaitNotInAsyncFunction, AsyncNotInAsyncFunction} {
		if !hasDiagnostic(res.Diagnostics, kind) {
			t.Errorf("expected %q outside notebook mode, got %v", diagnosticMessages[kind], res.Diagnostics)
		}
	}
}
