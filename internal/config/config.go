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

// Package config loads parse options from a TOML file and the environment.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/xyproto/env/v2"

	"github.com/google/go-pyparser/parser"
)

// Environment variables that override the file.
const (
	EnvConfig        = "PYPARSE_CONFIG"
	EnvPythonVersion = "PYPARSE_PYTHON_VERSION"
	EnvStub          = "PYPARSE_STUB"
	EnvInteractive   = "PYPARSE_INTERACTIVE"
	EnvFormat        = "PYPARSE_FORMAT"
)

// DefaultPath is read by Find when EnvConfig is not set.
const DefaultPath = "pyparse.toml"

// Config holds the complete tool configuration
type Config struct {
	Parse  ParseConfig  `toml:"parse"`
	Output OutputConfig `toml:"output"`
}

// ParseConfig mirrors parser.Options
type ParseConfig struct {
	PythonVersion             string `toml:"python_version"`
	StubFile                  bool   `toml:"stub_file"`
	SkipBodies                bool   `toml:"skip_function_and_class_body"`
	Interactive               bool   `toml:"interactive"`
	ReportEscapes             bool   `toml:"report_invalid_string_escapes"`
	ReportStringContentErrors bool   `toml:"report_parsed_string_content_errors"`
}

// OutputConfig holds CLI output settings
type OutputConfig struct {
	// Format is "text" or "yaml".
	Format  string `toml:"format"`
	NoColor bool   `toml:"no_color"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg
}

// Load loads configuration from a TOML file, then applies environment
// overrides.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Find loads the file named by PYPARSE_CONFIG, or pyparse.toml in the
// working directory if there is one. Without a file it returns Default.
func Find() (*Config, error) {
	if path := env.Str(EnvConfig); path != "" {
		return Load(path)
	}
	if _, err := os.Stat(DefaultPath); err == nil {
		return Load(DefaultPath)
	}
	cfg := Default()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Parse.PythonVersion == "" {
		c.Parse.PythonVersion = parser.LatestPythonVersion.String()
	}
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
}

func (c *Config) applyEnv() {
	c.Parse.PythonVersion = env.Str(EnvPythonVersion, c.Parse.PythonVersion)
	c.Output.Format = env.Str(EnvFormat, c.Output.Format)
	if env.Has(EnvStub) {
		c.Parse.StubFile = env.Bool(EnvStub)
	}
	if env.Has(EnvInteractive) {
		c.Parse.Interactive = env.Bool(EnvInteractive)
	}
}

func (c *Config) validate() error {
	if _, err := parser.ParsePythonVersion(c.Parse.PythonVersion); err != nil {
		return err
	}
	switch c.Output.Format {
	case "text", "yaml":
		return nil
	}
	return fmt.Errorf("unknown output format %q", c.Output.Format)
}

// ParseOptions converts the configuration into parser options.
func (c *Config) ParseOptions() (parser.Options, error) {
	opts := parser.DefaultOptions()
	v, err := parser.ParsePythonVersion(c.Parse.PythonVersion)
	if err != nil {
		return opts, err
	}
	opts.PythonVersion = v
	opts.IsStubFile = c.Parse.StubFile
	opts.SkipFunctionAndClassBody = c.Parse.SkipBodies
	opts.Interactive = c.Parse.Interactive
	opts.ReportInvalidStringEscapeSequence = c.Parse.ReportEscapes
	opts.ReportErrorsForParsedStringContents = c.Parse.ReportStringContentErrors
	return opts, nil
}
