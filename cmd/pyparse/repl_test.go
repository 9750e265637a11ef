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
	"testing"

	"github.com/google/go-pyparser/parser"
)

func TestLooksIncomplete(t *testing.T) {
	tests := []struct {
		src        string
		incomplete bool
	}{
		{"x = 1", false},
		{"f(a,", true},
		{"f(a,\n  b)", false},
		{"x = [1,\n2", true},
		{"d = {", true},
		{"if x:", true},
		{"if x:\n    pass", true},
		{"if x:\n    pass\n", false},
		{"s = '''abc", true},
		{"s = 'abc", false},
		{"x = 1 + \\", true},
		{"x = (1,\n", false},
		{"x = )", false},
	}
	for _, test := range tests {
		res := parser.Parse(test.src+"\n", parser.DefaultOptions())
		if got := looksIncomplete(test.src, res); got != test.incomplete {
			t.Errorf("%q: got %v, expected %v (%v)", test.src, got, test.incomplete, res.Diagnostics)
		}
	}
}
