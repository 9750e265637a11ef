/*
Copyright 2017 Google Inc. All rights reserved.

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

package ast

import (
	"fmt"
	"sort"
)

//////////////////////////////////////////////////////////////////////////////
// Range

// Range is a half-open byte range [Start, Start+Length) of the source text.
type Range struct {
	Start  int
	Length int
}

// MakeRange returns the range covering [start, end).
func MakeRange(start, end int) Range {
	if end < start {
		end = start
	}
	return Range{Start: start, Length: end - start}
}

// End returns the offset one past the last byte of the range.
func (r Range) End() int {
	return r.Start + r.Length
}

// Contains reports whether other lies entirely within r.
func (r Range) Contains(other Range) bool {
	return other.Start >= r.Start && other.End() <= r.End()
}

// Extend returns the smallest range covering both r and other.
func (r Range) Extend(other Range) Range {
	start, end := r.Start, r.End()
	if other.Start < start {
		start = other.Start
	}
	if other.End() > end {
		end = other.End()
	}
	return MakeRange(start, end)
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d)", r.Start, r.End())
}

//////////////////////////////////////////////////////////////////////////////
// Location

// Location represents a single location in an (unspecified) file.
type Location struct {
	Line   int
	Column int
}

// IsSet returns if this Location has been set.
func (l *Location) IsSet() bool {
	return l.Line != 0
}

func (l *Location) String() string {
	return fmt.Sprintf("%v:%v", l.Line, l.Column)
}

//////////////////////////////////////////////////////////////////////////////
// LocationRange

// LocationRange represents a range of a source file.
type LocationRange struct {
	FileName string
	Begin    Location
	End      Location
}

// IsSet returns if this LocationRange has been set.
func (lr *LocationRange) IsSet() bool {
	return lr.Begin.IsSet()
}

func (lr *LocationRange) String() string {
	if !lr.IsSet() {
		return lr.FileName
	}

	var filePrefix string
	if len(lr.FileName) > 0 {
		filePrefix = lr.FileName + ":"
	}
	if lr.Begin.Line == lr.End.Line {
		if lr.Begin.Column == lr.End.Column {
			return fmt.Sprintf("%s%v", filePrefix, lr.Begin.String())
		}
		return fmt.Sprintf("%s%v-%v", filePrefix, lr.Begin.String(), lr.End.Column)
	}

	return fmt.Sprintf("%s(%v)-(%v)", filePrefix, lr.Begin.String(), lr.End.String())
}

//////////////////////////////////////////////////////////////////////////////
// LineIndex

// LineIndex holds the start offset of every line and converts byte offsets
// to 1-based line/column locations.
type LineIndex []int

// MakeLineIndex scans text for line breaks (\n, \r\n and lone \r).
func MakeLineIndex(text string) LineIndex {
	lines := LineIndex{0}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			lines = append(lines, i+1)
		case '\n':
			lines = append(lines, i+1)
		}
	}
	return lines
}

// Location converts a byte offset.
func (li LineIndex) Location(offset int) Location {
	if len(li) == 0 {
		return Location{Line: 1, Column: offset + 1}
	}
	line := sort.Search(len(li), func(i int) bool { return li[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return Location{Line: line + 1, Column: offset - li[line] + 1}
}

// LocationRange converts a byte range.
func (li LineIndex) LocationRange(fileName string, r Range) LocationRange {
	return LocationRange{FileName: fileName, Begin: li.Location(r.Start), End: li.Location(r.End())}
}
