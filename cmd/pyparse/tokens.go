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
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/google/go-pyparser/ast"
	"github.com/google/go-pyparser/internal/tokenizer"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <filename>",
	Short: "Print the token stream of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	_, opts, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	text, err := readInput(args[0])
	if err != nil {
		return err
	}
	out := tokenizer.Tokenize(text, 0, len(text), 0, opts.Interactive)
	lines := ast.MakeLineIndex(text)
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for i := range out.Tokens {
		t := &out.Tokens[i]
		loc := lines.Location(t.Start)
		fmt.Fprintf(w, "%-9s %s\n", loc.String(), t.String())
	}
	return nil
}
