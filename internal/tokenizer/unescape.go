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

package tokenizer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/go-pyparser/ast"
)

type UnescapeErrorKind int

const (
	InvalidEscapeSequence UnescapeErrorKind = iota
)

// UnescapeError locates a bad escape. Offset is relative to the start of the
// escaped text.
type UnescapeError struct {
	Offset int
	Length int
	Kind   UnescapeErrorKind
}

type UnescapeResult struct {
	Value           string
	Errors          []UnescapeError
	NonASCIIInBytes bool
}

// Unescape decodes the backslash escapes in escaped according to flags. Raw
// strings are returned as they are. Unknown escapes are kept verbatim and
// reported.
func Unescape(escaped string, flags ast.StringFlags) UnescapeResult {
	var res UnescapeResult
	isBytes := flags.Has(ast.StringBytes)
	if isBytes {
		for i := 0; i < len(escaped); i++ {
			if escaped[i] > 0x7f {
				res.NonASCIIInBytes = true
				break
			}
		}
	}
	if flags.Has(ast.StringRaw) || !strings.Contains(escaped, "\\") {
		res.Value = escaped
		return res
	}

	var b strings.Builder
	i := 0
	for i < len(escaped) {
		c := escaped[i]
		if c != '\\' || i+1 >= len(escaped) {
			b.WriteByte(c)
			i++
			continue
		}
		start := i
		n := escaped[i+1]
		i += 2
		switch n {
		case '\\', '\'', '"':
			b.WriteByte(n)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case '\n':
		case '\r':
			if i < len(escaped) && escaped[i] == '\n' {
				i++
			}
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i - 1
			for j < len(escaped) && j < i+2 && escaped[j] >= '0' && escaped[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(escaped[i-1:j], 8, 32)
			writeCode(&b, rune(v), isBytes)
			i = j
		case 'x':
			if v, ok := hexDigits(escaped, i, 2); ok {
				writeCode(&b, rune(v), isBytes)
				i += 2
			} else {
				res.Errors = append(res.Errors, UnescapeError{Offset: start, Length: 2})
				b.WriteString(escaped[start:i])
			}
		case 'u', 'U':
			count := 4
			if n == 'U' {
				count = 8
			}
			if isBytes {
				b.WriteString(escaped[start:i])
				break
			}
			if v, ok := hexDigits(escaped, i, count); ok && utf8.ValidRune(rune(v)) {
				b.WriteRune(rune(v))
				i += count
			} else {
				res.Errors = append(res.Errors, UnescapeError{Offset: start, Length: 2})
				b.WriteString(escaped[start:i])
			}
		case 'N':
			end := -1
			if !isBytes && i < len(escaped) && escaped[i] == '{' {
				end = strings.IndexByte(escaped[i:], '}')
			}
			if end > 1 {
				// Character names are not resolved; the escape is kept.
				b.WriteString(escaped[start : i+end+1])
				i += end + 1
			} else {
				res.Errors = append(res.Errors, UnescapeError{Offset: start, Length: 2})
				b.WriteString(escaped[start:i])
			}
		default:
			res.Errors = append(res.Errors, UnescapeError{Offset: start, Length: 2})
			b.WriteString(escaped[start:i])
		}
	}
	res.Value = b.String()
	return res
}

func hexDigits(s string, at, count int) (uint64, bool) {
	if at+count > len(s) {
		return 0, false
	}
	v, err := strconv.ParseUint(s[at:at+count], 16, 32)
	return v, err == nil
}

func writeCode(b *strings.Builder, r rune, isBytes bool) {
	if isBytes || r < utf8.RuneSelf {
		b.WriteByte(byte(r))
		return
	}
	b.WriteRune(r)
}
