/*
Copyright 2017 Google Inc. All rights reserved.

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

package dump

import (
	"strings"
	"testing"

	"github.com/google/go-pyparser/ast"
	"github.com/google/go-pyparser/internal/parser"
	"sigs.k8s.io/yaml"
)

func countNodes(n ast.Node) int {
	count := 0
	ast.Walk(n, func(ast.Node) bool {
		count++
		return true
	})
	return count
}

func TestTree(t *testing.T) {
	text := "x = a + 1\n"
	res := parser.ParseFile(text, parser.DefaultOptions())
	out := TreeString(res.Module)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != countNodes(res.Module) {
		t.Errorf("expected one line per node, got:\n%s", out)
	}
	if !strings.HasPrefix(lines[0], "Module [0,10)") {
		t.Errorf("bad first line %q", lines[0])
	}
	for _, expected := range []string{
		`Name [0,1) Value="x"`,
		`Name [4,5) Value="a"`,
		"Operator=+",
		"Number [8,9) IsInteger=true",
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("missing %q in:\n%s", expected, out)
		}
	}
	for _, line := range lines[1:] {
		if !strings.HasPrefix(line, "  ") {
			t.Errorf("child line %q is not indented", line)
		}
	}
}

func TestYAML(t *testing.T) {
	res := parser.ParseFile("def f(a):\n    return a\n", parser.DefaultOptions())
	data, err := YAML(res.Module)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatalf("%v\n%s", err, data)
	}
	if m["kind"] != "Module" {
		t.Errorf("root kind is %v", m["kind"])
	}
	children, ok := m["children"].([]interface{})
	if !ok || len(children) != 1 {
		t.Fatalf("expected one statement:\n%s", data)
	}
	fn := children[0].(map[string]interface{})
	if fn["kind"] != "Function" {
		t.Errorf("statement kind is %v", fn["kind"])
	}
	if !strings.Contains(string(data), "Value: f") {
		t.Errorf("function name missing:\n%s", data)
	}
}
