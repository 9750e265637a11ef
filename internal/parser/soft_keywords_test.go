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

package parser

import (
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

type softKeywordCase struct {
	Name        string `yaml:"name"`
	Source      string `yaml:"source"`
	Version     string `yaml:"version"`
	Kind        string `yaml:"kind"`
	Diagnostics int    `yaml:"diagnostics"`
}

func loadSoftKeywordCases(t *testing.T) []softKeywordCase {
	t.Helper()
	data, err := os.ReadFile("testdata/soft_keywords.yaml")
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}
	var cases []softKeywordCase
	if err := yaml.Unmarshal(data, &cases); err != nil {
		t.Fatalf("decoding manifest: %v", err)
	}
	return cases
}

func TestSoftKeywords(t *testing.T) {
	for _, c := range loadSoftKeywordCases(t) {
		t.Run(c.Name, func(t *testing.T) {
			opts := DefaultOptions()
			if c.Version != "" {
				v, err := ParsePythonVersion(c.Version)
				if err != nil {
					t.Fatal(err)
				}
				opts.PythonVersion = v
			}
			res := parseAndValidate(t, c.Source, opts)
			if len(res.Diagnostics) != c.Diagnostics {
				t.Errorf("%q: expected %d diagnostics, got %v", c.Source, c.Diagnostics, res.Diagnostics)
			}
			stmt := firstStatement(res)
			if stmt == nil {
				t.Fatalf("%q: no statement", c.Source)
			}
			if got := stmt.Kind().String(); got != c.Kind {
				t.Errorf("%q: got %s, expected %s", c.Source, got, c.Kind)
			}
		})
	}
}
