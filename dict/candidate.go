// Copyright 2026 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//   This file is part of LEMMAD.
//
//  LEMMAD is free software: you can redistribute it and/or modify
//  it under the terms of the GNU General Public License as published by
//  the Free Software Foundation, either version 3 of the License, or
//  (at your option) any later version.
//
//  LEMMAD is distributed in the hope that it will be useful,
//  but WITHOUT ANY WARRANTY; without even the implied warranty of
//  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//  GNU General Public License for more details.
//
//  You should have received a copy of the GNU General Public License
//  along with LEMMAD.  If not, see <https://www.gnu.org/licenses/>.

package dict

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// NoClass marks a candidate lemma without a POS class
	NoClass = -1

	tagSeparator = "$"
)

// Candidate is a lemma candidate for a word, optionally tagged
// with an index of a configured POS class.
type Candidate struct {
	Value string
	Class int
}

func (c Candidate) IsTagged() bool {
	return c.Class != NoClass
}

// Encode returns the candidate in its textual form,
// i.e. `value$classIdx` for tagged candidates and just
// `value` for untagged ones.
func (c Candidate) Encode() string {
	if !c.IsTagged() {
		return c.Value
	}
	return c.Value + tagSeparator + strconv.Itoa(c.Class)
}

// Len returns the length of the candidate's value in characters
func (c Candidate) Len() int {
	return utf8.RuneCountInString(c.Value)
}

func (c Candidate) String() string {
	return c.Encode()
}

// ParseCandidate is the inverse of Candidate.Encode. A value
// without a trailing `$<digits>` is considered untagged.
func ParseCandidate(s string) Candidate {
	value, class, ok := splitTag(s)
	if !ok {
		return Candidate{Value: s, Class: NoClass}
	}
	return Candidate{Value: value, Class: class}
}

// StripTag removes a trailing `$<digits>` suffix (if any).
func StripTag(s string) string {
	value, _, ok := splitTag(s)
	if !ok {
		return s
	}
	return value
}

func splitTag(s string) (string, int, bool) {
	idx := strings.LastIndex(s, tagSeparator)
	if idx < 0 || idx == len(s)-1 {
		return "", 0, false
	}
	digits := s[idx+1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return "", 0, false
		}
	}
	class, err := strconv.Atoi(digits)
	if err != nil {
		return "", 0, false
	}
	return s[:idx], class, true
}
