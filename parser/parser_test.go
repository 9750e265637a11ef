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

func TestParse(t *testing.T) {
	res := Parse("def f(x):\n    return x + 1\n", DefaultOptions())
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics %v", res.Diagnostics)
	}
	if v := ast.Validate(res.Module); len(v) != 0 {
		t.Errorf("invalid tree: %v", v)
	}
	if len(res.Module.Statements) != 1 || res.Module.Statements[0].Kind() != ast.KindFunction {
		t.Errorf("expected a single function, got %v", res.Module.Statements)
	}
}

func TestParseExpression(t *testing.T) {
	res := ParseExpression("a.b[c]", DefaultOptions())
	if len(res.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics %v", res.Diagnostics)
	}
	if res.Expr == nil || res.Expr.Kind() != ast.KindIndex {
		t.Errorf("expected a subscript, got %v", res.Expr)
	}
}

func TestAncestors(t *testing.T) {
	res := Parse("class C:\n    def m(self):\n        return self\n", DefaultOptions())
	var target ast.Node
	ast.Walk(res.Module, func(n ast.Node) bool {
		if name, ok := n.(*ast.Name); ok && name.Value == "self" && name.Parent().Kind() == ast.KindReturn {
			target = n
		}
		return true
	})
	if target == nil {
		t.Fatalf("name not found")
	}
	chain := Ancestors(target)
	if chain[len(chain)-1] != res.Module {
		t.Errorf("chain should end at the module")
	}
	var kinds []ast.Kind
	for _, n := range chain {
		if k := n.Kind(); k == ast.KindFunction || k == ast.KindClass {
			kinds = append(kinds, k)
		}
	}
	if len(kinds) != 2 || kinds[0] != ast.KindFunction || kinds[1] != ast.KindClass {
		t.Errorf("got %v", kinds)
	}
	if len(Children(res.Module)) != 1 {
		t.Errorf("module should have one child")
	}
}
