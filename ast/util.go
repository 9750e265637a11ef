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
	"fmt"
	"reflect"
	"sort"
)

func appendChild[T Node](c Nodes, n T) Nodes {
	var zero T
	if Node(n) == Node(zero) {
		return c
	}
	return append(c, n)
}

func appendChildren[T Node](c Nodes, list []T) Nodes {
	for _, n := range list {
		c = appendChild(c, n)
	}
	return c
}

// Children returns the direct children of a node in source order.
func Children(node Node) Nodes {
	var c Nodes
	switch n := node.(type) {
	case *Module:
		c = appendChildren(c, n.Statements)
	case *Suite:
		c = appendChildren(c, n.Statements)
	case *StatementList:
		c = appendChildren(c, n.Statements)
	case *Error:
		c = appendChildren(c, n.Decorators)
		c = appendChild(c, n.Child)

	case *If:
		c = appendChild(c, n.Test)
		c = appendChild(c, n.IfSuite)
		c = appendChild(c, n.ElseSuite)
	case *While:
		c = appendChild(c, n.Test)
		c = appendChild(c, n.WhileSuite)
		c = appendChild(c, n.ElseSuite)
	case *For:
		c = appendChild(c, n.Target)
		c = appendChild(c, n.Iterable)
		c = appendChild(c, n.TypeComment)
		c = appendChild(c, n.ForSuite)
		c = appendChild(c, n.ElseSuite)
	case *Try:
		c = appendChild(c, n.TrySuite)
		c = appendChildren(c, n.ExceptClauses)
		c = appendChild(c, n.ElseSuite)
		c = appendChild(c, n.FinallySuite)
	case *Except:
		c = appendChild(c, n.TypeExpr)
		c = appendChild(c, n.Name)
		c = appendChild(c, n.ExceptSuite)
	case *With:
		c = appendChildren(c, n.WithItems)
		c = appendChild(c, n.TypeComment)
		c = appendChild(c, n.Suite)
	case *WithItem:
		c = appendChild(c, n.Expr)
		c = appendChild(c, n.Target)
	case *Decorator:
		c = appendChild(c, n.Expr)
	case *Function:
		c = appendChildren(c, n.Decorators)
		c = appendChild(c, n.Name)
		c = appendChild(c, n.TypeParameters)
		c = appendChildren(c, n.Parameters)
		c = appendChild(c, n.ReturnAnnotation)
		c = appendChild(c, n.FunctionAnnotationComment)
		c = appendChild(c, n.Suite)
	case *Parameter:
		c = appendChild(c, n.Name)
		c = appendChild(c, n.TypeAnnotation)
		c = appendChild(c, n.DefaultValue)
		c = appendChild(c, n.TypeAnnotationComment)
	case *Class:
		c = appendChildren(c, n.Decorators)
		c = appendChild(c, n.Name)
		c = appendChild(c, n.TypeParameters)
		c = appendChildren(c, n.Arguments)
		c = appendChild(c, n.Suite)
	case *TypeParameter:
		c = appendChild(c, n.Name)
		c = appendChild(c, n.BoundExpr)
		c = appendChild(c, n.DefaultExpr)
	case *TypeParameterList:
		c = appendChildren(c, n.Parameters)
	case *TypeAlias:
		c = appendChild(c, n.Name)
		c = appendChild(c, n.TypeParameters)
		c = appendChild(c, n.Expr)
	case *Match:
		c = appendChild(c, n.Subject)
		c = appendChildren(c, n.Cases)
	case *Case:
		c = appendChild(c, n.Pattern)
		c = appendChild(c, n.Guard)
		c = appendChild(c, n.Suite)

	case *Assignment:
		c = appendChild(c, n.Left)
		c = appendChild(c, n.Right)
		c = appendChild(c, n.TypeAnnotationComment)
		c = appendChild(c, n.ChainedTypeAnnotationComment)
	case *AugmentedAssignment:
		c = appendChild(c, n.Left)
		c = appendChild(c, n.Right)
	case *TypeAnnotation:
		c = appendChild(c, n.ValueExpr)
		c = appendChild(c, n.Annotation)
	case *Assert:
		c = appendChild(c, n.Test)
		c = appendChild(c, n.Message)
	case *Del:
		c = appendChildren(c, n.Targets)
	case *Pass, *Break, *Continue:
	case *Return:
		c = appendChild(c, n.Expr)
	case *Raise:
		c = appendChild(c, n.Expr)
		c = appendChild(c, n.FromExpr)
	case *Global:
		c = appendChildren(c, n.Names)
	case *Nonlocal:
		c = appendChildren(c, n.Names)
	case *ModuleName:
		c = appendChildren(c, n.NameParts)
	case *Import:
		c = appendChildren(c, n.List)
	case *ImportAs:
		c = appendChild(c, n.Module)
		c = appendChild(c, n.Alias)
	case *ImportFrom:
		c = appendChild(c, n.Module)
		c = appendChildren(c, n.Imports)
	case *ImportFromAs:
		c = appendChild(c, n.Name)
		c = appendChild(c, n.Alias)

	case *UnaryOperation:
		c = appendChild(c, n.Expr)
	case *BinaryOperation:
		c = appendChild(c, n.Left)
		c = appendChild(c, n.Right)
	case *AssignmentExpression:
		c = appendChild(c, n.Name)
		c = appendChild(c, n.Right)
	case *Await:
		c = appendChild(c, n.Expr)
	case *Ternary:
		c = appendChild(c, n.IfExpr)
		c = appendChild(c, n.TestExpr)
		c = appendChild(c, n.ElseExpr)
	case *Unpack:
		c = appendChild(c, n.Expr)
	case *Tuple:
		c = appendChildren(c, n.Exprs)
	case *Comprehension:
		c = appendChild(c, n.Expr)
		c = appendChildren(c, n.ForIfNodes)
	case *ComprehensionFor:
		c = appendChild(c, n.Target)
		c = appendChild(c, n.Iterable)
	case *ComprehensionIf:
		c = appendChild(c, n.Test)
	case *Index:
		c = appendChild(c, n.LeftExpr)
		c = appendChildren(c, n.Items)
	case *Slice:
		c = appendChild(c, n.Start)
		c = appendChild(c, n.End)
		c = appendChild(c, n.Step)
	case *Yield:
		c = appendChild(c, n.Expr)
	case *YieldFrom:
		c = appendChild(c, n.Expr)
	case *MemberAccess:
		c = appendChild(c, n.LeftExpr)
		c = appendChild(c, n.Member)
	case *Lambda:
		c = appendChildren(c, n.Parameters)
		c = appendChild(c, n.Expr)
	case *Name, *Constant, *Number, *String:
	case *FormatString:
		c = appendChildren(c, n.FieldExprs)
		c = appendChildren(c, n.FormatExprs)
		sort.SliceStable(c, func(i, j int) bool { return c[i].Range().Start < c[j].Range().Start })
	case *StringList:
		c = appendChildren(c, n.Strings)
		c = appendChild(c, n.Annotation)
	case *Dictionary:
		c = appendChildren(c, n.Entries)
	case *DictionaryKeyEntry:
		c = appendChild(c, n.Key)
		c = appendChild(c, n.Value)
	case *DictionaryExpandEntry:
		c = appendChild(c, n.Expr)
	case *Set:
		c = appendChildren(c, n.Entries)
	case *List:
		c = appendChildren(c, n.Entries)
	case *Argument:
		c = appendChild(c, n.Name)
		c = appendChild(c, n.ValueExpr)
	case *Call:
		c = appendChild(c, n.LeftExpr)
		c = appendChildren(c, n.Arguments)
	case *FunctionAnnotation:
		c = appendChildren(c, n.ParamTypeAnnotations)
		c = appendChild(c, n.ReturnTypeAnnotation)

	case *PatternSequence:
		c = appendChildren(c, n.Entries)
	case *PatternAs:
		c = appendChildren(c, n.OrPatterns)
		c = appendChild(c, n.Target)
	case *PatternLiteral:
		c = appendChild(c, n.Expr)
	case *PatternClass:
		c = appendChild(c, n.ClassName)
		c = appendChildren(c, n.Arguments)
	case *PatternClassArgument:
		c = appendChild(c, n.Name)
		c = appendChild(c, n.Pattern)
	case *PatternCapture:
		c = appendChild(c, n.Target)
	case *PatternMapping:
		c = appendChildren(c, n.Entries)
	case *PatternMappingKeyEntry:
		c = appendChild(c, n.Key)
		c = appendChild(c, n.Value)
	case *PatternMappingExpandEntry:
		c = appendChild(c, n.Target)
	case *PatternValue:
		c = appendChild(c, n.Expr)
	default:
		panic(fmt.Sprintf("Children: unexpected node type %T", node))
	}
	return c
}

// Link attaches the direct children of n to it and recomputes the cached
// depth. It must be called again after children are added or replaced.
func Link(n Node) Node {
	depth := 0
	for _, child := range Children(n) {
		child.nodeBase().parent = n
		if d := child.MaxChildDepth() + 1; d > depth {
			depth = d
		}
	}
	n.nodeBase().maxChildDepth = depth
	return n
}

// SetParent assigns a back-pointer for a node that is referenced by parent
// without being one of its children (for example AugmentedAssignment.DestExpr).
func SetParent(n, parent Node) {
	n.nodeBase().parent = parent
}

// ExtendRange widens the range of n to cover r.
func ExtendRange(n Node, r Range) {
	b := n.nodeBase()
	b.rng = b.rng.Extend(r)
}

// SetRange replaces the range of n.
func SetRange(n Node, r Range) {
	n.nodeBase().rng = r
}

var nodeType = reflect.TypeOf((*Node)(nil)).Elem()

// Clone copies n and all of its descendants. Every copy gets a fresh id and
// the copied children point at their copied parents. The root of the copy
// has no parent.
func Clone(n Node, ids *IDSource) Node {
	if ids == nil {
		ids = DefaultIDs
	}
	return cloneNode(n, ids)
}

func cloneNode(n Node, ids *IDSource) Node {
	v := reflect.ValueOf(n)
	clone := reflect.New(v.Type().Elem())
	elem := clone.Elem()
	elem.Set(v.Elem())
	for i := 0; i < elem.NumField(); i++ {
		f := elem.Field(i)
		if !f.CanSet() {
			continue
		}
		switch {
		case f.Type().Implements(nodeType):
			if !f.IsNil() {
				f.Set(reflect.ValueOf(cloneNode(f.Interface().(Node), ids)))
			}
		case f.Kind() == reflect.Slice && f.Type().Elem().Implements(nodeType) && !f.IsNil():
			list := reflect.MakeSlice(f.Type(), f.Len(), f.Len())
			for j := 0; j < f.Len(); j++ {
				if e := f.Index(j); !e.IsNil() {
					list.Index(j).Set(reflect.ValueOf(cloneNode(e.Interface().(Node), ids)))
				}
			}
			f.Set(list)
		}
	}
	c := clone.Interface().(Node)
	b := c.nodeBase()
	b.id = ids.Next()
	b.parent = nil
	if a, ok := c.(*AugmentedAssignment); ok && a.DestExpr != nil {
		SetParent(a.DestExpr, a)
	}
	return Link(c)
}

// Walk visits n and its descendants in pre-order. Returning false from visit
// skips the children of that node. Walk uses an explicit stack.
func Walk(n Node, visit func(Node) bool) {
	stack := Nodes{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visit(cur) {
			continue
		}
		children := Children(cur)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

// EnclosingFunction returns the closest function containing n, stopping at
// class boundaries.
func EnclosingFunction(n Node) *Function {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		switch p := cur.(type) {
		case *Function:
			return p
		case *Class:
			return nil
		}
	}
	return nil
}

// EnclosingClass returns the closest class containing n, stopping at function
// boundaries.
func EnclosingClass(n Node) *Class {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		switch p := cur.(type) {
		case *Class:
			return p
		case *Function:
			return nil
		}
	}
	return nil
}
