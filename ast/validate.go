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

package ast

import "fmt"

// Violation describes a broken tree invariant.
type Violation struct {
	Node Node
	Msg  string
}

func (v Violation) Error() string {
	return fmt.Sprintf("%v #%d %v: %s", v.Node.Kind(), v.Node.ID(), v.Node.Range(), v.Msg)
}

// outOfRangeChild reports whether child of parent is allowed to lie outside
// the parent's range or out of order with its siblings.
func outOfRangeChild(parent, child Node) bool {
	switch p := parent.(type) {
	case *Assignment:
		// Comment annotations follow the value; in a chain the nested
		// assignment holds the earlier target. The other comment-derived
		// annotations below sit inside the suite that follows the colon.
		if child == p.TypeAnnotationComment || child == p.ChainedTypeAnnotationComment {
			return true
		}
		if _, ok := p.Right.(*Assignment); ok && child == p.Right {
			return true
		}
	case *Parameter:
		return child == p.TypeAnnotationComment
	case *Function:
		return child == p.FunctionAnnotationComment
	case *For:
		return child == p.TypeComment
	case *With:
		return child == p.TypeComment
	case *StringList:
		return child == p.Annotation
	}
	return false
}

// Validate checks parent links, range containment and sibling order for every
// node under root, and the depth ceiling for every node that is not a
// statement. Statement nesting follows indentation and the parser does not
// bound it. Expressions never contain statements, so an expression that is
// too deep is reported at the expression itself.
func Validate(root Node) []Violation {
	var violations []Violation
	report := func(n Node, format string, args ...interface{}) {
		violations = append(violations, Violation{Node: n, Msg: fmt.Sprintf(format, args...)})
	}
	Walk(root, func(n Node) bool {
		if !n.Kind().IsStatement() && n.MaxChildDepth() > MaxChildNodeDepth {
			report(n, "depth %d exceeds %d", n.MaxChildDepth(), MaxChildNodeDepth)
		}
		prevEnd := n.Range().Start
		for _, child := range Children(n) {
			if child.Parent() != n {
				report(child, "parent is not %v #%d", n.Kind(), n.ID())
			}
			if outOfRangeChild(n, child) {
				continue
			}
			if !n.Range().Contains(child.Range()) {
				report(child, "not contained in parent range %v", n.Range())
			}
			if child.Range().Start < prevEnd {
				report(child, "overlaps previous sibling ending at %d", prevEnd)
			}
			if child.Range().End() > prevEnd {
				prevEnd = child.Range().End()
			}
		}
		return true
	})
	return violations
}
