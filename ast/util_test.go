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

package ast

import (
	"testing"
)

func makeAssignment(ids *IDSource) (*Assignment, *Name, *Number) {
	x := &Name{NodeBase: NewNodeBase(ids, Range{Start: 0, Length: 1}), Value: "x"}
	one := &Number{NodeBase: NewNodeBase(ids, Range{Start: 4, Length: 1}), IsInteger: true, Value: 1}
	a := &Assignment{NodeBase: NewNodeBase(ids, Range{Start: 0, Length: 5}), Left: x, Right: one}
	return a, x, one
}

func TestLink(t *testing.T) {
	a, x, one := makeAssignment(&IDSource{})
	Link(a)
	if x.Parent() != a || one.Parent() != a {
		t.Errorf("children not attached")
	}
	if a.MaxChildDepth() != 1 || x.MaxChildDepth() != 0 {
		t.Errorf("depths %d %d", a.MaxChildDepth(), x.MaxChildDepth())
	}
	if v := Validate(a); len(v) != 0 {
		t.Errorf("unexpected violations %v", v)
	}
}

func TestValidate(t *testing.T) {
	a, _, one := makeAssignment(&IDSource{})
	if v := Validate(a); len(v) != 2 {
		t.Errorf("unlinked children should be reported, got %v", v)
	}

	Link(a)
	SetRange(one, Range{Start: 10, Length: 1})
	if v := Validate(a); len(v) != 1 || v[0].Node != one {
		t.Errorf("child outside its parent should be reported, got %v", v)
	}
}

func TestValidateDepth(t *testing.T) {
	ids := &IDSource{}
	const n = MaxChildNodeDepth + 10

	// Statements may nest to any depth.
	var stmt Node = &Pass{NodeBase: NewNodeBase(ids, Range{Start: n, Length: 4})}
	for i := n - 1; i >= 0; i-- {
		stmt = Link(&Suite{NodeBase: NewNodeBase(ids, Range{Start: i, Length: 2*(n-i) + 4}), Statements: Nodes{stmt}})
	}
	if v := Validate(stmt); len(v) != 0 {
		t.Errorf("deep statements should be allowed, got %d violations", len(v))
	}

	var expr Node = &Name{NodeBase: NewNodeBase(ids, Range{Start: n, Length: 1}), Value: "x"}
	for i := n - 1; i >= 0; i-- {
		expr = Link(&UnaryOperation{NodeBase: NewNodeBase(ids, Range{Start: i, Length: n - i + 1}), Operator: OpSubtract, Expr: expr})
	}
	v := Validate(expr)
	if len(v) != n-MaxChildNodeDepth {
		t.Errorf("expected %d violations, got %d", n-MaxChildNodeDepth, len(v))
	}
	for _, violation := range v {
		if violation.Node.Kind().IsStatement() {
			t.Errorf("unexpected statement violation %v", violation)
		}
	}

	wrapped := Link(&Suite{NodeBase: NewNodeBase(ids, Range{Start: 0, Length: n + 1}), Statements: Nodes{expr}})
	if got := len(Validate(wrapped)); got != len(v) {
		t.Errorf("wrapping in a statement changed the violations: %d, expected %d", got, len(v))
	}
}

func TestValidateSiblingOrder(t *testing.T) {
	ids := &IDSource{}
	first := &Name{NodeBase: NewNodeBase(ids, Range{Start: 2, Length: 1}), Value: "b"}
	second := &Name{NodeBase: NewNodeBase(ids, Range{Start: 0, Length: 1}), Value: "a"}
	tuple := &Tuple{NodeBase: NewNodeBase(ids, Range{Start: 0, Length: 3}), Exprs: Nodes{first, second}}
	Link(tuple)
	if v := Validate(tuple); len(v) != 1 || v[0].Node != second {
		t.Errorf("overlapping siblings should be reported, got %v", v)
	}
}

func TestIDSource(t *testing.T) {
	ids := &IDSource{}
	a, x, one := makeAssignment(ids)
	if a.ID() == x.ID() || x.ID() == one.ID() || a.ID() == one.ID() {
		t.Errorf("ids are not unique: %d %d %d", a.ID(), x.ID(), one.ID())
	}
	c := Clone(x, ids)
	if c.ID() == x.ID() || c.(*Name).Value != "x" || c.Range() != x.Range() {
		t.Errorf("bad clone %#v", c)
	}
}

func TestClone(t *testing.T) {
	ids := &IDSource{}
	_, x, one := makeAssignment(ids)
	aug := &AugmentedAssignment{NodeBase: NewNodeBase(ids, Range{Start: 0, Length: 5}), Left: x, Operator: OpAddEqual, Right: one}
	Link(aug)
	aug.DestExpr = Clone(x, ids)
	SetParent(aug.DestExpr, aug)

	c := Clone(aug, ids).(*AugmentedAssignment)
	if c.Parent() != nil {
		t.Errorf("clone root should have no parent")
	}
	seen := map[int64]bool{}
	for _, n := range []Node{aug, x, one, aug.DestExpr} {
		seen[n.ID()] = true
	}
	Walk(c, func(n Node) bool {
		if seen[n.ID()] {
			t.Errorf("%v shares id %d with the original", n.Kind(), n.ID())
		}
		if n != Node(c) && n.Parent() != c {
			t.Errorf("%v parent is %v, expected the clone", n.Kind(), n.Parent())
		}
		return true
	})
	if c.Left == Node(x) || c.Right == Node(one) {
		t.Errorf("children are shared with the original")
	}
	if c.DestExpr == aug.DestExpr || c.DestExpr.Parent() != c {
		t.Errorf("destination not copied: %v", c.DestExpr)
	}
	if x.Parent() != aug || one.Parent() != aug {
		t.Errorf("original children were re-parented")
	}
	if c.MaxChildDepth() != 1 || c.Range() != aug.Range() {
		t.Errorf("depth %d range %v", c.MaxChildDepth(), c.Range())
	}
	if v := Validate(c); len(v) != 0 {
		t.Errorf("unexpected violations %v", v)
	}
}

func TestEnclosingFunctionAndClass(t *testing.T) {
	ids := &IDSource{}
	name := func(v string) *Name {
		return &Name{NodeBase: NewNodeBase(ids, Range{}), Value: v}
	}
	suite := func(stmts ...Node) *Suite {
		return Link(&Suite{NodeBase: NewNodeBase(ids, Range{}), Statements: stmts}).(*Suite)
	}

	// def outer():
	//     class C:
	//         def m(self):
	//             x = 1
	a, x, _ := makeAssignment(ids)
	Link(a)
	method := Link(&Function{NodeBase: NewNodeBase(ids, Range{}), Name: name("m"), Suite: suite(a)}).(*Function)
	class := Link(&Class{NodeBase: NewNodeBase(ids, Range{}), Name: name("C"), Suite: suite(method)}).(*Class)
	outer := Link(&Function{NodeBase: NewNodeBase(ids, Range{}), Name: name("outer"), Suite: suite(class)}).(*Function)

	tests := []struct {
		name  string
		node  Node
		fn    *Function
		class *Class
	}{
		{"statement in method", a, method, nil},
		{"expression in method", x, method, nil},
		{"method", method, nil, class},
		{"class in function", class, outer, nil},
		{"top level", outer, nil, nil},
	}
	for _, test := range tests {
		if got := EnclosingFunction(test.node); got != test.fn {
			t.Errorf("%s: EnclosingFunction got %v expected %v", test.name, got, test.fn)
		}
		if got := EnclosingClass(test.node); got != test.class {
			t.Errorf("%s: EnclosingClass got %v expected %v", test.name, got, test.class)
		}
	}
}

func TestWalk(t *testing.T) {
	a, x, one := makeAssignment(&IDSource{})
	Link(a)
	var order []Node
	Walk(a, func(n Node) bool {
		order = append(order, n)
		return true
	})
	if len(order) != 3 || order[0] != a || order[1] != x || order[2] != one {
		t.Errorf("pre-order expected, got %v", order)
	}

	visited := 0
	Walk(a, func(n Node) bool {
		visited++
		return false
	})
	if visited != 1 {
		t.Errorf("returning false should skip children, visited %d", visited)
	}
}

func TestRange(t *testing.T) {
	if r := MakeRange(5, 3); r.Start != 5 || r.Length != 0 {
		t.Errorf("inverted range %v", r)
	}
	r := Range{Start: 2, Length: 3}
	if !r.Contains(Range{Start: 3, Length: 2}) || r.Contains(Range{Start: 3, Length: 3}) {
		t.Errorf("Contains is wrong")
	}
	if e := r.Extend(Range{Start: 0, Length: 1}); e != (Range{Start: 0, Length: 5}) {
		t.Errorf("Extend gave %v", e)
	}
	if r.String() != "[2,5)" {
		t.Errorf("String gave %s", r.String())
	}
}

func TestLineIndex(t *testing.T) {
	li := MakeLineIndex("a\nbc\r\nd\re")
	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{1, 1, 2},
		{2, 2, 1},
		{3, 2, 2},
		{6, 3, 1},
		{8, 4, 1},
	}
	for _, test := range tests {
		loc := li.Location(test.offset)
		if loc.Line != test.line || loc.Column != test.column {
			t.Errorf("offset %d: got %v, expected %d:%d", test.offset, loc.String(), test.line, test.column)
		}
	}

	lr := li.LocationRange("f.py", Range{Start: 2, Length: 2})
	if lr.String() != "f.py:2:1-3" {
		t.Errorf("got %s", lr.String())
	}
	lr = li.LocationRange("f.py", Range{Start: 0, Length: 3})
	if lr.String() != "f.py:(1:1)-(2:2)" {
		t.Errorf("got %s", lr.String())
	}
}
