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

// Package linter reports syntax diagnostics together with unused variables
// and imports.
package linter

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/go-pyparser/ast"
	"github.com/google/go-pyparser/linter/internal/common"
	"github.com/google/go-pyparser/linter/internal/utils"
	"github.com/google/go-pyparser/linter/internal/variables"
	"github.com/google/go-pyparser/parser"
)

// ColorFormatter has the signature of (*color.Color).Fprintf.
type ColorFormatter func(w io.Writer, format string, a ...interface{}) (n int, err error)

// ErrorWriter encapsulates a writer and an information about whether there was at least one error written.
type ErrorWriter struct {
	ErrorsFound bool
	Writer      io.Writer

	FileName string
	// Lines defaults to the line index of the linted text.
	Lines ast.LineIndex
	// Colorize, if set, renders the severity label.
	Colorize ColorFormatter
}

func (e *ErrorWriter) writeError(severity parser.Severity, r ast.Range, msg string) {
	e.ErrorsFound = true
	loc := e.Lines.LocationRange(e.FileName, r)
	var label strings.Builder
	if e.Colorize != nil {
		e.Colorize(&label, "%s", severity.String())
	} else {
		label.WriteString(severity.String())
	}
	fmt.Fprintf(e.Writer, "%s %s: %s\n", loc.String(), label.String(), msg)
}

// WriteDiagnostics writes syntax diagnostics ordered by position. Lines must
// be set.
func (e *ErrorWriter) WriteDiagnostics(diags []parser.Diagnostic) {
	diags = append([]parser.Diagnostic(nil), diags...)
	sort.SliceStable(diags, func(i, j int) bool { return diags[i].Range.Start < diags[j].Range.Start })
	for _, d := range diags {
		e.writeError(d.Severity, d.Range, d.Message())
	}
}

// Lint writes the syntax diagnostics of res followed by the problems found
// by the checks, each group ordered by position.
func Lint(res *parser.Results, opts parser.Options, e *ErrorWriter) {
	if e.Lines == nil {
		e.Lines = res.Lines
	}
	e.WriteDiagnostics(res.Diagnostics)

	ec := utils.ErrCollector{}
	checkUnused(variables.FindVariables(res.Module), e.FileName, opts, &ec)
	sort.SliceStable(ec.Errs, func(i, j int) bool { return ec.Errs[i].Range.Start < ec.Errs[j].Range.Start })
	for _, p := range ec.Errs {
		e.writeError(parser.SeverityWarning, p.Range, p.Msg)
	}
}

func checkUnused(info *common.VariableInfo, fileName string, opts parser.Options, ec *utils.ErrCollector) {
	// Stubs and packages import names to re-export them.
	reportImports := !opts.IsStubFile && !info.DeclaresAll && filepath.Base(fileName) != "__init__.py"
	for _, v := range info.Variables {
		if len(v.Occurences) > 0 || strings.HasPrefix(v.Name, "_") {
			continue
		}
		switch v.VariableKind {
		case common.VarRegular:
			ec.StaticErr("Unused variable: "+v.Name, v.Range)
		case common.VarImport:
			if reportImports {
				ec.StaticErr("Unused import: "+v.Name, v.Range)
			}
		}
	}
}

// LintSnippet checks a single file and writes the problems to output. It
// returns true if anything was written.
func LintSnippet(output io.Writer, fileName, code string, opts parser.Options) bool {
	res := parser.Parse(code, opts)
	e := &ErrorWriter{Writer: output, FileName: fileName, Lines: res.Lines}
	Lint(res, opts, e)
	return e.ErrorsFound
}
