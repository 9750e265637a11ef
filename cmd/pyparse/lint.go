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
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/google/go-pyparser/linter"
	"github.com/google/go-pyparser/parser"
)

var lintCmd = &cobra.Command{
	Use:   "lint <filename>...",
	Short: "Report syntax errors, unused variables and unused imports",
	Long: `Report syntax errors, unused variables and unused imports.

<filename> can be - (stdin). Files ending in .pyi are parsed as stubs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)
}

func runLint(cmd *cobra.Command, args []string) error {
	_, opts, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	errorsFound := false
	for _, fileName := range args {
		text, err := readInput(fileName)
		if err != nil {
			return err
		}
		fileOpts := opts
		if strings.HasSuffix(fileName, ".pyi") {
			fileOpts.IsStubFile = true
		}
		e := &linter.ErrorWriter{
			Writer:   os.Stderr,
			FileName: fileName,
			Colorize: color.New(color.FgRed).Fprintf,
		}
		linter.Lint(parser.Parse(text, fileOpts), fileOpts, e)
		errorsFound = errorsFound || e.ErrorsFound
	}
	if errorsFound {
		return errProblemsFound
	}
	return nil
}
