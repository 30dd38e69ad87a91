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

// Package analysis contains a minimal pull-based token stream
// model and the dictionary lemmatization filter working on it.
package analysis

const (
	TypeWord = "word"
)

// Token holds attributes of the current token of a stream.
// A copy of a Token value serves as a captured attribute state
// which can be restored later.
type Token struct {
	Term string `json:"term"`

	// PosIncr is a distance from the previous token's position.
	// Zero means the token is an alternative of the previous one.
	PosIncr int `json:"posIncr"`

	// Start and End are byte offsets in the original text
	Start int `json:"start"`
	End   int `json:"end"`

	// Keyword marks tokens which must not be modified by
	// normalizing filters.
	Keyword bool   `json:"keyword,omitempty"`
	Type    string `json:"type,omitempty"`
}

// TokenStream is a pull-based stream of tokens. All the filters of
// a chain share the Token instance of the chain's source, i.e. Token()
// returns the same pointer during the whole life of a stream.
type TokenStream interface {

	// Next advances the stream to the next token. It returns false
	// once the stream is exhausted.
	Next() (bool, error)

	Token() *Token

	// Reset prepares the stream for a new pass.
	Reset() error
}

// Collect reads all the remaining tokens of a stream
func Collect(ts TokenStream) ([]Token, error) {
	ans := make([]Token, 0, 16)
	for {
		ok, err := ts.Next()
		if err != nil {
			return ans, err
		}
		if !ok {
			return ans, nil
		}
		ans = append(ans, *ts.Token())
	}
}

// Terms returns just the terms of provided tokens
func Terms(tokens []Token) []string {
	ans := make([]string, len(tokens))
	for i, t := range tokens {
		ans[i] = t.Term
	}
	return ans
}

// PosIncrements returns just the position increments of provided tokens
func PosIncrements(tokens []Token) []int {
	ans := make([]int, len(tokens))
	for i, t := range tokens {
		ans[i] = t.PosIncr
	}
	return ans
}
