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

import "strings"

// KeywordMarker marks tokens found in a provided set as keywords
// so they are protected from any further normalization.
type KeywordMarker struct {
	input    TokenStream
	keywords map[string]struct{}
}

func (km *KeywordMarker) Next() (bool, error) {
	ok, err := km.input.Next()
	if !ok || err != nil {
		return ok, err
	}
	tok := km.input.Token()
	if _, found := km.keywords[tok.Term]; found {
		tok.Keyword = true
	}
	return true, nil
}

func (km *KeywordMarker) Token() *Token {
	return km.input.Token()
}

func (km *KeywordMarker) Reset() error {
	return km.input.Reset()
}

func NewKeywordMarker(input TokenStream, keywords []string) *KeywordMarker {
	kw := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		kw[k] = struct{}{}
	}
	return &KeywordMarker{input: input, keywords: kw}
}

// ---------------------------

// LowerCaseFilter lowercases terms of non-keyword tokens
type LowerCaseFilter struct {
	input TokenStream
}

func (lc *LowerCaseFilter) Next() (bool, error) {
	ok, err := lc.input.Next()
	if !ok || err != nil {
		return ok, err
	}
	tok := lc.input.Token()
	if !tok.Keyword {
		tok.Term = strings.ToLower(tok.Term)
	}
	return true, nil
}

func (lc *LowerCaseFilter) Token() *Token {
	return lc.input.Token()
}

func (lc *LowerCaseFilter) Reset() error {
	return lc.input.Reset()
}

func NewLowerCaseFilter(input TokenStream) *LowerCaseFilter {
	return &LowerCaseFilter{input: input}
}
