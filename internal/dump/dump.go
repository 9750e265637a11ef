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

// Package dump prints syntax trees, one node per line or as YAML.
package dump

import (
	"io"
	"reflect"
	"strings"

	"github.com/google/go-pyparser/ast"
	"sigs.k8s.io/yaml"
)

type attribute struct {
	name  string
	value reflect.Value
}

// attributes returns the non-zero scalar fields of n in declaration order.
func attributes(n ast.Node) []attribute {
	v := reflect.ValueOf(n).Elem()
	t := v.Type()
	var out []attribute
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous {
			continue
		}
		fv := deInterface(v.Field(i))
		if fv.IsZero() || !isAttribute(fv) {
			continue
		}
		out = append(out, attribute{name: f.Name, value: fv})
	}
	return out
}

// Tree writes n and its descendants, indenting each child below its parent:
//
//	Assignment [0,5)
//	  Name [0,1) Value="x"
func Tree(w io.Writer, n ast.Node) {
	printTree(w, n, 0)
}

func printTree(w io.Writer, n ast.Node, depth int) {
	mustWrite(w, []byte(strings.Repeat("  ", depth)))
	mustWrite(w, []byte(n.Kind().String()+" "+n.Range().String()))
	for _, a := range attributes(n) {
		mustWrite(w, []byte(" "+a.name+"="))
		printAttribute(w, a.value)
	}
	mustWrite(w, []byte("\n"))
	for _, child := range ast.Children(n) {
		printTree(w, child, depth+1)
	}
}

// TreeString returns the output of Tree as a string.
func TreeString(n ast.Node) string {
	var b strings.Builder
	Tree(&b, n)
	return b.String()
}

// Map converts n into nested maps with "kind", "range" and "children" keys
// plus one key per attribute.
func Map(n ast.Node) map[string]interface{} {
	r := n.Range()
	m := map[string]interface{}{
		"kind":  n.Kind().String(),
		"range": []int{r.Start, r.End()},
	}
	for _, a := range attributes(n) {
		m[a.name] = attributeValue(a.value)
	}
	var children []interface{}
	for _, child := range ast.Children(n) {
		children = append(children, Map(child))
	}
	if len(children) > 0 {
		m["children"] = children
	}
	return m
}

// YAML renders the tree under n as a YAML document.
func YAML(n ast.Node) ([]byte, error) {
	return yaml.Marshal(Map(n))
}
