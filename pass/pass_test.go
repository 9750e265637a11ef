/*
Copyright 2019 Google Inc. All rights reserved.

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

package pass

import (
	"testing"

	"github.com/google/go-pyparser/ast"
	"github.com/google/go-pyparser/parser"
	"github.com/kr/pretty"
)

type nameCollector struct {
	Base
	names []string
}

func (c *nameCollector) Name(p Pass, node *ast.Name, ctx Context) {
	c.names = append(c.names, node.Value)
}

func TestBaseVisitsEveryName(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"def f(a=b):\n    return a.c + g(k=v)\n", []string{"f", "a", "b", "a", "c", "g", "k", "v"}},
		{"[x for x in y if z]\n", []string{"x", "y", "z", "x"}},
		{"import a.b as c\n", []string{"a", "b", "c"}},
		{"class C(B):\n    global n\n", []string{"C", "B", "n"}},
		{"lambda q: q\n", []string{"q", "q"}},
	}
	for _, test := range tests {
		res := parser.Parse(test.input, parser.DefaultOptions())
		c := &nameCollector{}
		c.File(c, res.Module)
		if diff := pretty.Diff(c.names, test.expected); len(diff) > 0 {
			t.Errorf("%q: names differ: %v\n%v", test.input, diff, c.names)
		}
	}
}

type scopeDepth struct {
	Base
	depths map[string]int
}

func (s *scopeDepth) BaseContext(Pass) Context {
	return 0
}

func (s *scopeDepth) Function(p Pass, node *ast.Function, ctx Context) {
	s.Base.Function(p, node, ctx.(int)+1)
}

func (s *scopeDepth) Name(p Pass, node *ast.Name, ctx Context) {
	s.depths[node.Value] = ctx.(int)
}

func TestContextFollowsOverrides(t *testing.T) {
	res := parser.Parse("x\ndef f():\n    y\n    def g():\n        z\n", parser.DefaultOptions())
	s := &scopeDepth{depths: map[string]int{}}
	s.File(s, res.Module)
	expected := map[string]int{"x": 0, "f": 1, "y": 1, "g": 2, "z": 2}
	if diff := pretty.Diff(s.depths, expected); len(diff) > 0 {
		t.Errorf("depths differ: %v", diff)
	}
}
