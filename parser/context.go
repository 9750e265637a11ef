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
	"github.com/google/go-pyparser/ast"
)

// Children returns all children of a node in source order.
func Children(node ast.Node) []ast.Node {
	return ast.Children(node)
}

// Ancestors returns the chain of parents of node, innermost first.
func Ancestors(node ast.Node) []ast.Node {
	var out []ast.Node
	for cur := node.Parent(); cur != nil; cur = cur.Parent() {
		out = append(out, cur)
	}
	return out
}
