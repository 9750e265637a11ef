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

package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/google/go-pyparser/ast"
	"github.com/google/go-pyparser/internal/dump"
	"github.com/google/go-pyparser/linter"
	"github.com/google/go-pyparser/parser"
)

var (
	dumpFormat     string
	dumpExpression bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump <filename>",
	Short: "Print the syntax tree of a file",
	Long: `Print the syntax tree of a file, one node per line or as YAML.

Syntax diagnostics are written to stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVar(&dumpFormat, "format", "", "output format: text or yaml")
	dumpCmd.Flags().BoolVarP(&dumpExpression, "expression", "e", false, "parse the input as a single expression")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	cfg, opts, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format := cfg.Output.Format
	if cmd.Flags().Changed("format") {
		format = dumpFormat
	}
	if format != "text" && format != "yaml" {
		return fmt.Errorf("unknown output format %q", format)
	}

	text, err := readInput(args[0])
	if err != nil {
		return err
	}
	var root ast.Node
	var diags []parser.Diagnostic
	if dumpExpression {
		res := parser.ParseExpression(text, opts)
		root, diags = res.Expr, res.Diagnostics
	} else {
		res := parser.Parse(text, opts)
		root, diags = res.Module, res.Diagnostics
	}

	if root != nil {
		if format == "yaml" {
			data, err := dump.YAML(root)
			if err != nil {
				return err
			}
			os.Stdout.Write(data)
		} else {
			dump.Tree(os.Stdout, root)
		}
	}

	e := &linter.ErrorWriter{
		Writer:   os.Stderr,
		FileName: args[0],
		Lines:    ast.MakeLineIndex(text),
		Colorize: color.New(color.FgRed).Fprintf,
	}
	e.WriteDiagnostics(diags)
	if e.ErrorsFound {
		return errProblemsFound
	}
	return nil
}
