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
	"github.com/google/go-pyparser/ast"
)

// Context can be used to provide context when visting child nodes.
type Context interface{}

// Pass is an interface for a pass that walks the tree in some way. Node
// kinds without a method of their own go through Other.
type Pass interface {
	Module(Pass, *ast.Module, Context)
	Suite(Pass, *ast.Suite, Context)
	Function(Pass, *ast.Function, Context)
	Parameters(Pass, []*ast.Parameter, Context)
	Lambda(Pass, *ast.Lambda, Context)
	Class(Pass, *ast.Class, Context)
	Comprehension(Pass, *ast.Comprehension, Context)
	Assignment(Pass, *ast.Assignment, Context)
	Global(Pass, *ast.Global, Context)
	Nonlocal(Pass, *ast.Nonlocal, Context)
	Import(Pass, *ast.Import, Context)
	ImportFrom(Pass, *ast.ImportFrom, Context)
	MemberAccess(Pass, *ast.MemberAccess, Context)
	Argument(Pass, *ast.Argument, Context)
	Name(Pass, *ast.Name, Context)
	Error(Pass, *ast.Error, Context)
	Other(Pass, ast.Node, Context)

	Visit(Pass, ast.Node, Context)
	BaseContext(Pass) Context
	File(Pass, *ast.Module)
}

// Base implements basic traversal so other passes can extend it.
type Base struct {
}

func visitChildren(p Pass, node ast.Node, ctx Context) {
	for _, child := range ast.Children(node) {
		p.Visit(p, child, ctx)
	}
}

// Module traverses the top level statements
func (*Base) Module(p Pass, node *ast.Module, ctx Context) {
	for _, stmt := range node.Statements {
		p.Visit(p, stmt, ctx)
	}
}

// Suite traverses the statements of a block
func (*Base) Suite(p Pass, node *ast.Suite, ctx Context) {
	for _, stmt := range node.Statements {
		p.Visit(p, stmt, ctx)
	}
}

// Function traverses decorators, the signature and the body, in that order
func (*Base) Function(p Pass, node *ast.Function, ctx Context) {
	for _, d := range node.Decorators {
		p.Visit(p, d, ctx)
	}
	p.Visit(p, node.Name, ctx)
	if node.TypeParameters != nil {
		p.Visit(p, node.TypeParameters, ctx)
	}
	p.Parameters(p, node.Parameters, ctx)
	if node.ReturnAnnotation != nil {
		p.Visit(p, node.ReturnAnnotation, ctx)
	}
	if node.FunctionAnnotationComment != nil {
		p.Visit(p, node.FunctionAnnotationComment, ctx)
	}
	p.Visit(p, node.Suite, ctx)
}

// Parameters traverses the list of parameters
func (*Base) Parameters(p Pass, params []*ast.Parameter, ctx Context) {
	for _, param := range params {
		p.Visit(p, param, ctx)
	}
}

func (*Base) Lambda(p Pass, node *ast.Lambda, ctx Context) {
	p.Parameters(p, node.Parameters, ctx)
	p.Visit(p, node.Expr, ctx)
}

func (*Base) Class(p Pass, node *ast.Class, ctx Context) {
	for _, d := range node.Decorators {
		p.Visit(p, d, ctx)
	}
	p.Visit(p, node.Name, ctx)
	if node.TypeParameters != nil {
		p.Visit(p, node.TypeParameters, ctx)
	}
	for _, arg := range node.Arguments {
		p.Visit(p, arg, ctx)
	}
	p.Visit(p, node.Suite, ctx)
}

// Comprehension traverses the for/if clauses before the element expression,
// which is the order of evaluation.
func (*Base) Comprehension(p Pass, node *ast.Comprehension, ctx Context) {
	for _, n := range node.ForIfNodes {
		p.Visit(p, n, ctx)
	}
	p.Visit(p, node.Expr, ctx)
}

func (*Base) Assignment(p Pass, node *ast.Assignment, ctx Context) {
	visitChildren(p, node, ctx)
}

// Global cannot descend any further than its names
func (*Base) Global(p Pass, node *ast.Global, ctx Context) {
	for _, n := range node.Names {
		p.Visit(p, n, ctx)
	}
}

// Nonlocal cannot descend any further than its names
func (*Base) Nonlocal(p Pass, node *ast.Nonlocal, ctx Context) {
	for _, n := range node.Names {
		p.Visit(p, n, ctx)
	}
}

func (*Base) Import(p Pass, node *ast.Import, ctx Context) {
	visitChildren(p, node, ctx)
}

func (*Base) ImportFrom(p Pass, node *ast.ImportFrom, ctx Context) {
	visitChildren(p, node, ctx)
}

func (*Base) MemberAccess(p Pass, node *ast.MemberAccess, ctx Context) {
	p.Visit(p, node.LeftExpr, ctx)
	p.Visit(p, node.Member, ctx)
}

func (*Base) Argument(p Pass, node *ast.Argument, ctx Context) {
	if node.Name != nil {
		p.Visit(p, node.Name, ctx)
	}
	p.Visit(p, node.ValueExpr, ctx)
}

// Name cannot descend any further
func (*Base) Name(p Pass, node *ast.Name, ctx Context) {
}

// Error traverses whatever was parsed before the problem
func (*Base) Error(p Pass, node *ast.Error, ctx Context) {
	visitChildren(p, node, ctx)
}

// Other traverses the children of any remaining node kind
func (*Base) Other(p Pass, node ast.Node, ctx Context) {
	visitChildren(p, node, ctx)
}

// Visit traverses into an arbitrary node type
func (*Base) Visit(p Pass, node ast.Node, ctx Context) {
	switch node := node.(type) {
	case *ast.Module:
		p.Module(p, node, ctx)
	case *ast.Suite:
		p.Suite(p, node, ctx)
	case *ast.Function:
		p.Function(p, node, ctx)
	case *ast.Lambda:
		p.Lambda(p, node, ctx)
	case *ast.Class:
		p.Class(p, node, ctx)
	case *ast.Comprehension:
		p.Comprehension(p, node, ctx)
	case *ast.Assignment:
		p.Assignment(p, node, ctx)
	case *ast.Global:
		p.Global(p, node, ctx)
	case *ast.Nonlocal:
		p.Nonlocal(p, node, ctx)
	case *ast.Import:
		p.Import(p, node, ctx)
	case *ast.ImportFrom:
		p.ImportFrom(p, node, ctx)
	case *ast.MemberAccess:
		p.MemberAccess(p, node, ctx)
	case *ast.Argument:
		p.Argument(p, node, ctx)
	case *ast.Name:
		p.Name(p, node, ctx)
	case *ast.Error:
		p.Error(p, node, ctx)
	default:
		p.Other(p, node, ctx)
	}
}

// BaseContext just returns nil.
func (*Base) BaseContext(Pass) Context {
	return nil
}

// File processes a whole Python module
func (*Base) File(p Pass, node *ast.Module) {
	p.Visit(p, node, p.BaseContext(p))
}
