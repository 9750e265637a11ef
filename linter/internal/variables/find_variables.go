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

// Package variables binds the local variables and imports of a module and
// finds the places they are read.
package variables

import (
	"github.com/google/go-pyparser/ast"
	"github.com/google/go-pyparser/linter/internal/common"
	"github.com/google/go-pyparser/pass"
)

type scopeKind int

const (
	moduleScope scopeKind = iota
	classScope
	functionScope
)

type scope struct {
	parent *scope
	kind   scopeKind
	vars   []*common.Variable
	byName map[string]*common.Variable

	// Every read of a name in this scope or a nested one, in visiting order.
	reads     map[string][]ast.Node
	readOrder []string

	// Names declared global or nonlocal.
	outer map[string]bool
}

func newScope(parent *scope, kind scopeKind) *scope {
	return &scope{
		parent: parent,
		kind:   kind,
		byName: map[string]*common.Variable{},
		reads:  map[string][]ast.Node{},
		outer:  map[string]bool{},
	}
}

func (s *scope) declare(name *ast.Name, bindNode ast.Node, kind common.VariableKind) {
	if s.outer[name.Value] {
		return
	}
	if _, ok := s.byName[name.Value]; ok {
		return
	}
	v := &common.Variable{
		Name:         name.Value,
		BindNode:     bindNode,
		VariableKind: kind,
		Range:        name.Range(),
	}
	s.vars = append(s.vars, v)
	s.byName[name.Value] = v
}

func (s *scope) addReads(name string, reads ...ast.Node) {
	if _, ok := s.reads[name]; !ok {
		s.readOrder = append(s.readOrder, name)
	}
	s.reads[name] = append(s.reads[name], reads...)
}

// resolveTo is the scope the free names of s are looked up in. A class body
// is not visible from the functions nested in it.
func (s *scope) resolveTo() *scope {
	p := s.parent
	if s.kind == functionScope {
		for p != nil && p.kind == classScope {
			p = p.parent
		}
	}
	return p
}

// close resolves the reads of the scope against its variables and forwards
// the remaining ones to the enclosing scope.
func (s *scope) close(info *common.VariableInfo) {
	for _, v := range s.vars {
		v.Occurences = s.reads[v.Name]
		for _, occ := range v.Occurences {
			info.VarAt[occ] = v
		}
		info.Variables = append(info.Variables, v)
	}
	target := s.resolveTo()
	if target == nil {
		return
	}
	for _, name := range s.readOrder {
		if _, bound := s.byName[name]; bound {
			continue
		}
		target.addReads(name, s.reads[name]...)
	}
}

type finder struct {
	pass.Base
	info *common.VariableInfo
}

// FindVariables binds every variable of the module and records where it is
// read.
func FindVariables(module *ast.Module) *common.VariableInfo {
	info := &common.VariableInfo{VarAt: map[ast.Node]*common.Variable{}}
	f := &finder{info: info}
	root := newScope(nil, moduleScope)
	f.Visit(f, module, root)
	root.close(info)
	return info
}

func (f *finder) Function(p pass.Pass, node *ast.Function, ctx pass.Context) {
	outer := ctx.(*scope)
	for _, d := range node.Decorators {
		p.Visit(p, d, outer)
	}
	if node.TypeParameters != nil {
		p.Visit(p, node.TypeParameters, outer)
	}
	p.Parameters(p, node.Parameters, outer)
	if node.ReturnAnnotation != nil {
		p.Visit(p, node.ReturnAnnotation, outer)
	}
	if node.FunctionAnnotationComment != nil {
		p.Visit(p, node.FunctionAnnotationComment, outer)
	}

	inner := newScope(outer, functionScope)
	declareParams(node.Parameters, inner)
	if node.Suite != nil {
		p.Visit(p, node.Suite, inner)
	}
	inner.close(f.info)
}

// Parameters visits annotations and defaults, which are evaluated in the
// enclosing scope. The names are bound by the caller.
func (f *finder) Parameters(p pass.Pass, params []*ast.Parameter, ctx pass.Context) {
	for _, param := range params {
		if param.TypeAnnotation != nil {
			p.Visit(p, param.TypeAnnotation, ctx)
		}
		if param.TypeAnnotationComment != nil {
			p.Visit(p, param.TypeAnnotationComment, ctx)
		}
		if param.DefaultValue != nil {
			p.Visit(p, param.DefaultValue, ctx)
		}
	}
}

func declareParams(params []*ast.Parameter, s *scope) {
	for _, param := range params {
		if param.Name != nil {
			s.declare(param.Name, param, common.VarParam)
		}
	}
}

func (f *finder) Lambda(p pass.Pass, node *ast.Lambda, ctx pass.Context) {
	outer := ctx.(*scope)
	p.Parameters(p, node.Parameters, outer)
	inner := newScope(outer, functionScope)
	declareParams(node.Parameters, inner)
	p.Visit(p, node.Expr, inner)
	inner.close(f.info)
}

func (f *finder) Class(p pass.Pass, node *ast.Class, ctx pass.Context) {
	outer := ctx.(*scope)
	for _, d := range node.Decorators {
		p.Visit(p, d, outer)
	}
	if node.TypeParameters != nil {
		p.Visit(p, node.TypeParameters, outer)
	}
	for _, arg := range node.Arguments {
		p.Visit(p, arg, outer)
	}
	inner := newScope(outer, classScope)
	if node.Suite != nil {
		p.Visit(p, node.Suite, inner)
	}
	inner.close(f.info)
}

func (f *finder) Assignment(p pass.Pass, node *ast.Assignment, ctx pass.Context) {
	s := ctx.(*scope)
	f.bindTarget(p, node.Left, node, s)
	p.Visit(p, node.Right, s)
	if node.TypeAnnotationComment != nil {
		p.Visit(p, node.TypeAnnotationComment, s)
	}
	if node.ChainedTypeAnnotationComment != nil {
		p.Visit(p, node.ChainedTypeAnnotationComment, s)
	}
}

// bindTarget declares the names written by an assignment. Only function
// locals are tracked; other targets are visited as reads.
func (f *finder) bindTarget(p pass.Pass, target, bindNode ast.Node, s *scope) {
	switch t := target.(type) {
	case *ast.Name:
		if s.kind == moduleScope && t.Value == "__all__" {
			f.info.DeclaresAll = true
		}
		if s.kind == functionScope {
			s.declare(t, bindNode, common.VarRegular)
		}
	case *ast.TypeAnnotation:
		f.bindTarget(p, t.ValueExpr, bindNode, s)
		p.Visit(p, t.Annotation, s)
	case *ast.Tuple:
		for _, e := range t.Exprs {
			f.bindTarget(p, e, bindNode, s)
		}
	case *ast.List:
		for _, e := range t.Entries {
			f.bindTarget(p, e, bindNode, s)
		}
	case *ast.Unpack:
		f.bindTarget(p, t.Expr, bindNode, s)
	default:
		p.Visit(p, target, s)
	}
}

func (f *finder) Global(p pass.Pass, node *ast.Global, ctx pass.Context) {
	s := ctx.(*scope)
	for _, n := range node.Names {
		s.outer[n.Value] = true
	}
}

func (f *finder) Nonlocal(p pass.Pass, node *ast.Nonlocal, ctx pass.Context) {
	s := ctx.(*scope)
	for _, n := range node.Names {
		s.outer[n.Value] = true
	}
}

func (f *finder) Import(p pass.Pass, node *ast.Import, ctx pass.Context) {
	s := ctx.(*scope)
	if s.kind == classScope {
		return
	}
	for _, imp := range node.List {
		if imp.Module == nil || len(imp.Module.NameParts) == 0 {
			continue
		}
		name := imp.Module.NameParts[0]
		if imp.Alias != nil {
			// "import a as a" is an explicit re-export.
			if len(imp.Module.NameParts) == 1 && imp.Alias.Value == name.Value {
				continue
			}
			name = imp.Alias
		}
		s.declare(name, imp, common.VarImport)
	}
}

func isFutureImport(m *ast.ModuleName) bool {
	return m != nil && m.LeadingDots == 0 && len(m.NameParts) == 1 && m.NameParts[0].Value == "__future__"
}

func (f *finder) ImportFrom(p pass.Pass, node *ast.ImportFrom, ctx pass.Context) {
	s := ctx.(*scope)
	if s.kind == classScope || node.IsWildcardImport || isFutureImport(node.Module) {
		return
	}
	for _, imp := range node.Imports {
		if imp.Name == nil {
			continue
		}
		name := imp.Name
		if imp.Alias != nil {
			if imp.Alias.Value == imp.Name.Value {
				continue
			}
			name = imp.Alias
		}
		s.declare(name, imp, common.VarImport)
	}
}

// MemberAccess only reads the object, the member is an attribute name.
func (f *finder) MemberAccess(p pass.Pass, node *ast.MemberAccess, ctx pass.Context) {
	p.Visit(p, node.LeftExpr, ctx)
}

// Argument skips keyword names.
func (f *finder) Argument(p pass.Pass, node *ast.Argument, ctx pass.Context) {
	if node.ValueExpr != nil {
		p.Visit(p, node.ValueExpr, ctx)
	}
}

func (f *finder) Name(p pass.Pass, node *ast.Name, ctx pass.Context) {
	ctx.(*scope).addReads(node.Value, node)
}
