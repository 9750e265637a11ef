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

// Package parser is the public entry point for parsing Python source.
package parser

import (
	"github.com/google/go-pyparser/internal/parser"
)

type (
	Options           = parser.Options
	Results           = parser.Results
	ExpressionResults = parser.ExpressionResults
	ModuleImport      = parser.ModuleImport
	PythonVersion     = parser.PythonVersion
	Diagnostic        = parser.Diagnostic
	DiagnosticKind    = parser.DiagnosticKind
	Severity          = parser.Severity
	ParseTextMode     = parser.ParseTextMode
)

const (
	SeverityError   = parser.SeverityError
	SeverityWarning = parser.SeverityWarning

	ModeExpression         = parser.ModeExpression
	ModeVariableAnnotation = parser.ModeVariableAnnotation
	ModeFunctionAnnotation = parser.ModeFunctionAnnotation
)

// Diagnostics reported when the text ends inside an open construct.
const (
	ExpectedCloseParen    = parser.ExpectedCloseParen
	ExpectedCloseBracket  = parser.ExpectedCloseBracket
	ExpectedCloseBrace    = parser.ExpectedCloseBrace
	ExpectedIndentedBlock = parser.ExpectedIndentedBlock
	UnterminatedString    = parser.UnterminatedString
)

// LatestPythonVersion is the version assumed by DefaultOptions.
var LatestPythonVersion = parser.LatestPythonVersion

func DefaultOptions() Options {
	return parser.DefaultOptions()
}

func ParsePythonVersion(s string) (PythonVersion, error) {
	return parser.ParsePythonVersion(s)
}

// Parse parses a whole module. It never fails; problems are reported in
// Results.Diagnostics and the tree always covers the whole text.
func Parse(text string, opts Options) *Results {
	return parser.ParseFile(text, opts)
}

// ParseExpression parses text as a single expression.
func ParseExpression(text string, opts Options) *ExpressionResults {
	return parser.ParseTextExpression(text, 0, len(text), opts, parser.ModeExpression, 0, nil)
}

func ParseTextExpression(text string, start, length int, opts Options, mode ParseTextMode,
	initialParenDepth int, typingSymbolAliases map[string]string) *ExpressionResults {
	return parser.ParseTextExpression(text, start, length, opts, mode, initialParenDepth, typingSymbolAliases)
}
