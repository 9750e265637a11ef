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

// Command pyparse parses Python files and prints their syntax trees, tokens
// and problems.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/google/go-pyparser/internal/config"
	"github.com/google/go-pyparser/parser"
)

var (
	cfgFile       string
	pythonVersion string
	stubFile      bool
	interactive   bool
	reportEscapes bool
	noColor       bool
)

// errProblemsFound makes the process exit with status 2.
var errProblemsFound = errors.New("problems found")

var rootCmd = &cobra.Command{
	Use:   "pyparse",
	Short: "Parse Python source and inspect the result",
	Long: `pyparse parses Python source files into concrete syntax trees.

Options are read from pyparse.toml (or the file named by PYPARSE_CONFIG),
then from PYPARSE_PYTHON_VERSION, PYPARSE_STUB, PYPARSE_INTERACTIVE and
PYPARSE_FORMAT, then from the command line.

Exit code:
  0 – If the file was checked no problems were found.
  1 – If errors occured which prevented checking (e.g. specified file is missing).
  2 – If problems were found.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./pyparse.toml)")
	flags.StringVar(&pythonVersion, "python-version", "", "target Python version, e.g. 3.12")
	flags.BoolVar(&stubFile, "stub", false, "parse as a stub file")
	flags.BoolVar(&interactive, "interactive", false, "notebook mode: skip magic lines, allow top-level await")
	flags.BoolVar(&reportEscapes, "report-escapes", false, "warn about unsupported escape sequences")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
}

// loadConfig merges the config file, the environment and the flags.
func loadConfig(cmd *cobra.Command) (*config.Config, parser.Options, error) {
	var cfg *config.Config
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.Find()
	}
	if err != nil {
		return nil, parser.Options{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("python-version") {
		cfg.Parse.PythonVersion = pythonVersion
	}
	if flags.Changed("stub") {
		cfg.Parse.StubFile = stubFile
	}
	if flags.Changed("interactive") {
		cfg.Parse.Interactive = interactive
	}
	if flags.Changed("report-escapes") {
		cfg.Parse.ReportEscapes = reportEscapes
	}
	if flags.Changed("no-color") {
		cfg.Output.NoColor = noColor
	}
	color.NoColor = color.NoColor || cfg.Output.NoColor
	opts, err := cfg.ParseOptions()
	if err != nil {
		return nil, parser.Options{}, err
	}
	return cfg, opts, nil
}

// readInput reads a file, or stdin for "-".
func readInput(fileName string) (string, error) {
	var data []byte
	var err error
	if fileName == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(fileName)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func die(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
	os.Exit(1)
}

func main() {
	err := rootCmd.Execute()
	if errors.Is(err, errProblemsFound) {
		fmt.Fprintf(os.Stderr, "Problems found!\n")
		os.Exit(2)
	}
	if err != nil {
		die(err)
	}
}
