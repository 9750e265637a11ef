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

package utils

import (
	"github.com/google/go-pyparser/ast"
)

// Problem is a finding of the linter.
type Problem struct {
	Msg   string
	Range ast.Range
}

// ErrCollector is a struct for accumulating warnings from the linter.
// It is slightly more convenient and more clear than passing pointers to slices around.
type ErrCollector struct {
	Errs []Problem
}

// Collect adds a problem to the list
func (ec *ErrCollector) Collect(p Problem) {
	ec.Errs = append(ec.Errs, p)
}

// StaticErr constructs a problem from msg and r and adds it to the list.
func (ec *ErrCollector) StaticErr(msg string, r ast.Range) {
	ec.Collect(Problem{Msg: msg, Range: r})
}
