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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-pyparser/internal/parser"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pyparse.toml")
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[parse]
python_version = "3.9"
stub_file = true
report_invalid_string_escapes = true

[output]
format = "yaml"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	opts, err := cfg.ParseOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.PythonVersion != parser.Python3_9 || !opts.IsStubFile || !opts.ReportInvalidStringEscapeSequence {
		t.Errorf("options not taken from the file: %+v", opts)
	}
	if opts.Interactive || opts.SkipFunctionAndClassBody {
		t.Errorf("unset options should stay off: %+v", opts)
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("format is %q", cfg.Output.Format)
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Parse.PythonVersion != parser.LatestPythonVersion.String() || cfg.Output.Format != "text" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvPythonVersion, "3.11")
	t.Setenv(EnvInteractive, "true")
	t.Setenv(EnvStub, "false")
	cfg, err := Load(writeConfig(t, "[parse]\npython_version = \"3.8\"\nstub_file = true\n"))
	if err != nil {
		t.Fatal(err)
	}
	opts, err := cfg.ParseOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.PythonVersion != parser.Python3_11 || !opts.Interactive || opts.IsStubFile {
		t.Errorf("environment not applied: %+v", opts)
	}
}

func TestInvalidConfig(t *testing.T) {
	tests := []string{
		"[parse]\npython_version = \"2.7\"\n",
		"[output]\nformat = \"xml\"\n",
		"[parse\n",
	}
	for _, content := range tests {
		if _, err := Load(writeConfig(t, content)); err == nil {
			t.Errorf("%q: expected an error", content)
		}
	}
}

func TestFindWithoutFile(t *testing.T) {
	t.Setenv(EnvConfig, "")
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)
	cfg, err := Find()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}
