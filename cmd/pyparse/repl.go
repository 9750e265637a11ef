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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/google/go-pyparser/internal/dump"
	"github.com/google/go-pyparser/linter"
	"github.com/google/go-pyparser/parser"
)

const (
	historyFile = ".pyparse_history"
	promptMain  = ">>> "
	promptCont  = "... "
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Parse statements interactively and print their trees",
	Long: `Parse statements interactively and print their trees.

Input is read until it forms a complete statement: open brackets, strings
and blocks continue on the next line, and a block ends with an empty line.
Type :quit or press Ctrl+D to leave.`,
	Args: cobra.NoArgs,
	RunE: runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	_, opts, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	red := color.New(color.FgRed).Fprintf
	for {
		code, ok := readByParseProbe(ln, opts)
		if !ok {
			fmt.Println()
			break
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		ln.AppendHistory(code)
		if strings.TrimSpace(code) == ":quit" {
			break
		}

		res := parser.Parse(code+"\n", opts)
		dump.Tree(os.Stdout, res.Module)
		e := &linter.ErrorWriter{Writer: os.Stdout, FileName: "<stdin>", Lines: res.Lines, Colorize: red}
		e.WriteDiagnostics(res.Diagnostics)
	}

	if f, err := os.Create(histPath); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
	return nil
}

// readByParseProbe reads one or more lines until the parser accepts the
// buffer as a complete statement or reports a problem that more input would
// not fix.
func readByParseProbe(ln *liner.State, opts parser.Options) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C aborts the current input.
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if !looksIncomplete(src, parser.Parse(src+"\n", opts)) {
			return src, true
		}
	}
}

// looksIncomplete reports whether src stops inside a bracket, a string or a
// block. An empty line after the first one always completes the input.
func looksIncomplete(src string, res *parser.Results) bool {
	lines := strings.Split(src, "\n")
	last := strings.TrimRight(lines[len(lines)-1], " \t")
	if strings.HasSuffix(last, ":") || strings.HasSuffix(last, "\\") {
		return true
	}
	// An empty line ends continued input; a block stays open until then.
	if len(lines) > 1 {
		if last == "" {
			return false
		}
		if strings.HasSuffix(strings.TrimRight(lines[0], " \t"), ":") {
			return true
		}
	}
	for _, d := range res.Diagnostics {
		switch d.Kind {
		case parser.ExpectedCloseParen, parser.ExpectedCloseBracket, parser.ExpectedCloseBrace,
			parser.ExpectedIndentedBlock:
			return true
		case parser.UnterminatedString:
			if strings.Count(src, `"""`)%2 == 1 || strings.Count(src, "'''")%2 == 1 {
				return true
			}
		}
	}
	return false
}
