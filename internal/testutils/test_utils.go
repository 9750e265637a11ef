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

// Package testutils provides general testing utilities.
package testutils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff produces a pretty diff of two files
func Diff(a, b string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	return dmp.DiffPrettyText(diffs)
}

// CompareWithGolden check if a file is the same as golden file.
// If it is not it produces a pretty diff. A missing final newline is
// called out since the pretty diff does not show it.
func CompareWithGolden(result string, golden []byte) (string, bool) {
	if bytes.Equal(golden, []byte(result)) {
		return "", false
	}
	diff := Diff(result, string(golden))
	if strings.HasSuffix(result, "\n") != bytes.HasSuffix(golden, []byte("\n")) {
		diff += "\n(final newline differs)"
	}
	return diff, true
}

// UpdateGoldenFile updates a golden file with new contents if the new contents
// are actually different from what is already there. It returns whether or not
// the overwrite was performed (i.e. the desired content was different than actual).
func UpdateGoldenFile(path string, content []byte, mode os.FileMode) (changed bool, err error) {
	old, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}
	if err == nil && bytes.Equal(old, content) {
		return false, nil
	}
	if err := os.WriteFile(path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}

// GoldenInputs lists the files in dir with extension ext (".py"), skipping
// escaped names, together with the golden file path for each one, formed by
// replacing ext with goldenExt.
func GoldenInputs(dir, ext, goldenExt string) (inputs, goldens []string, err error) {
	match, err := filepath.Glob(filepath.Join(dir, "*"+ext))
	if err != nil {
		return nil, nil, err
	}
	for _, input := range match {
		if strings.ContainsRune(input, '%') {
			continue
		}
		inputs = append(inputs, input)
		goldens = append(goldens, strings.TrimSuffix(input, ext)+goldenExt)
	}
	return inputs, goldens, nil
}
