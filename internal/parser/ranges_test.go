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
	"strings"
	"testing"

	"github.com/google/go-pyparser/ast"
	"github.com/google/go-pyparser/internal/tokenizer"
)

var rangeRoundTripPrograms = []string{
	"x = foo(bar, 1.5) + baz[2]\n",
	"x: 'Dict[str, int]' = {}\n",
	"def f() -> '''\n    List[int]\n''': pass\n",
	"x = []  # type: List[int]\n",
	"def f(a, b):  # type: (int, str) -> bool\n    pass\n",
	"for i in items:  # type: int\n    pass\n",
	"print(f'{name!r:>{width}} and {value=}')\n",
	"\u00e9 = '\u00fc' + na\u00efve\n",
	"s = '\u00e9' + b'x' + r'\\d' + \"\"\"doc\"\"\"\n",
	"match p:\n    case Point(x=0, y=yy) | [1, *rest]:\n        pass\n",
	"type Alias[T] = list[T]\n",
	"x = {'k': v for k, v in items if v > 0x1f}\n",
	"async def g():\n    return [await h(n) for n in range(10)]\n",
}

// stringBody strips the prefix and quotes of a string literal. Type comments
// carry no quotes.
func stringBody(s string, flags ast.StringFlags) string {
	if !flags.Has(ast.StringSingleQuote | ast.StringDoubleQuote) {
		return s
	}
	s = strings.TrimLeft(s, "rRbBuUfF")
	quote := 1
	if flags.Has(ast.StringTriplicate) {
		quote = 3
	}
	if len(s) < 2*quote {
		return ""
	}
	return s[quote : len(s)-quote]
}

func TestLeafRangesRoundTrip(t *testing.T) {
	for _, text := range rangeRoundTripPrograms {
		res := parseAndValidate(t, text, DefaultOptions())
		if len(res.Diagnostics) != 0 {
			t.Errorf("%q: unexpected diagnostics %v", text, res.Diagnostics)
			continue
		}
		leaves := 0
		ast.Walk(res.Module, func(n ast.Node) bool {
			r := n.Range()
			if r.Start < 0 || r.End() > len(text) {
				t.Errorf("%q: %v range %v outside the text", text, n.Kind(), r)
				return false
			}
			src := text[r.Start:r.End()]
			switch n := n.(type) {
			case *ast.Name:
				leaves++
				if src != n.Value {
					t.Errorf("%q: name %q covers %q", text, n.Value, src)
				}
			case *ast.Number:
				leaves++
				toks := tokenizer.TokenizeString(src).Tokens
				if toks[0].Kind != tokenizer.Number || toks[0].Length != len(src) {
					t.Errorf("%q: number covers %q", text, src)
				}
			case *ast.String:
				leaves++
				if strings.Contains(src, "\\") && !n.Flags.Has(ast.StringRaw) {
					break
				}
				if body := stringBody(src, n.Flags); body != n.Value {
					t.Errorf("%q: string %q covers %q", text, n.Value, src)
				}
			}
			return true
		})
		if leaves == 0 {
			t.Errorf("%q: no leaves found", text)
		}
	}
}
