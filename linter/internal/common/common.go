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

package common

import (
	"github.com/google/go-pyparser/ast"
)

// VariableKind allows distinguishing various kinds of variables.
type VariableKind int

const (
	// VarRegular is a local variable bound by an assignment.
	VarRegular VariableKind = iota
	// VarParam is a function or lambda parameter.
	VarParam
	// VarImport is a name bound by an import statement.
	VarImport
)

// Variable is a representation of a variable somewhere in the code.
type Variable struct {
	Name         string
	BindNode     ast.Node
	Occurences   []ast.Node
	VariableKind VariableKind
	Range        ast.Range
}

// VariableInfo holds information about a variables from one file
type VariableInfo struct {
	Variables []*Variable

	// Variable information at every use site.
	// More precisely it maps every read *ast.Name to the variable.
	VarAt map[ast.Node]*Variable

	// DeclaresAll is set when the module assigns __all__.
	DeclaresAll bool
}
