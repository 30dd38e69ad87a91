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

package analysis

import (
	"unicode"
	"unicode/utf8"
)

// WhitespaceTokenizer splits text on Unicode white space
type WhitespaceTokenizer struct {
	text  string
	pos   int
	token Token
}

func (wt *WhitespaceTokenizer) Next() (bool, error) {
	start := -1
	for wt.pos < len(wt.text) {
		r, size := utf8.DecodeRuneInString(wt.text[wt.pos:])
		if unicode.IsSpace(r) {
			if start >= 0 {
				break
			}

		} else if start < 0 {
			start = wt.pos
		}
		wt.pos += size
	}
	if start < 0 {
		return false, nil
	}
	wt.token = Token{
		Term:    wt.text[start:wt.pos],
		PosIncr: 1,
		Start:   start,
		End:     wt.pos,
		Type:    TypeWord,
	}
	return true, nil
}

func (wt *WhitespaceTokenizer) Token() *Token {
	return &wt.token
}

func (wt *WhitespaceTokenizer) Reset() error {
	wt.pos = 0
	wt.token = Token{}
	return nil
}

// SetText replaces the tokenized text and resets the tokenizer
func (wt *WhitespaceTokenizer) SetText(text string) {
	wt.text = text
	wt.Reset()
}

func NewWhitespaceTokenizer(text string) *WhitespaceTokenizer {
	return &WhitespaceTokenizer{text: text}
}

// ---------------------------

// SingleTokenizer emits the whole input as a single token
// (even an empty one).
type SingleTokenizer struct {
	text  string
	done  bool
	token Token
}

func (st *SingleTokenizer) Next() (bool, error) {
	if st.done {
		return false, nil
	}
	st.done = true
	st.token = Token{Term: st.text, PosIncr: 1, End: len(st.text), Type: TypeWord}
	return true, nil
}

func (st *SingleTokenizer) Token() *Token {
	return &st.token
}

func (st *SingleTokenizer) Reset() error {
	st.done = false
	st.token = Token{}
	return nil
}

func NewSingleTokenizer(text string) *SingleTokenizer {
	return &SingleTokenizer{text: text}
}
