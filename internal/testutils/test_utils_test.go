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

package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCompareWithGolden(t *testing.T) {
	if _, differ := CompareWithGolden("a\n", []byte("a\n")); differ {
		t.Errorf("equal contents reported as different")
	}
	diff, differ := CompareWithGolden("a", []byte("a\n"))
	if !differ {
		t.Fatalf("missing newline not detected")
	}
	if !strings.Contains(diff, "final newline") {
		t.Errorf("diff does not mention the newline: %q", diff)
	}
}

func TestUpdateGoldenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.golden")
	changed, err := UpdateGoldenFile(path, []byte("one"), 0666)
	if err != nil || !changed {
		t.Fatalf("creating golden: changed=%v err=%v", changed, err)
	}
	changed, err = UpdateGoldenFile(path, []byte("one"), 0666)
	if err != nil || changed {
		t.Errorf("rewriting same content: changed=%v err=%v", changed, err)
	}
	changed, err = UpdateGoldenFile(path, []byte("two"), 0666)
	if err != nil || !changed {
		t.Errorf("updating golden: changed=%v err=%v", changed, err)
	}
	if data, _ := os.ReadFile(path); string(data) != "two" {
		t.Errorf("golden holds %q", data)
	}
}

func TestGoldenInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.py", "b%2f.py", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0666); err != nil {
			t.Fatal(err)
		}
	}
	inputs, goldens, err := GoldenInputs(dir, ".py", ".dump.golden")
	if err != nil {
		t.Fatal(err)
	}
	if len(inputs) != 1 || filepath.Base(inputs[0]) != "a.py" || filepath.Base(goldens[0]) != "a.dump.golden" {
		t.Errorf("got %v %v", inputs, goldens)
	}
}
