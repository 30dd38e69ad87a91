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
	"lemmad/stemmer"
)

type filterState int

const (
	stateIdle filterState = iota
	stateDraining
)

// Lexicon provides lemmas of a word form in a stable order
type Lexicon interface {
	Lookup(word string) ([]string, bool)
}

// FilterStats summarizes what a LemmaFilter did with its input
type FilterStats struct {
	Tokens     int `json:"tokens"`
	Keywords   int `json:"keywords"`
	Hits       int `json:"hits"`
	Expansions int `json:"expansions"`
	Fallbacks  int `json:"fallbacks"`
}

// Add accumulates other stats into the current ones
func (fs *FilterStats) Add(other FilterStats) {
	fs.Tokens += other.Tokens
	fs.Keywords += other.Keywords
	fs.Hits += other.Hits
	fs.Expansions += other.Expansions
	fs.Fallbacks += other.Fallbacks
}

// LemmaFilter replaces terms with their lemmas found in a lexicon.
// In case a word has more than one lemma, the first one replaces
// the original term and the others are emitted as following tokens
// sharing the same position (PosIncr == 0) and all the other
// attributes of the original token.
// Keyword tokens are passed unchanged. Words missing in the lexicon
// are optionally normalized by a fallback stemmer.
//
// A filter instance is not safe for concurrent use but any number
// of filters may share a single lexicon.
type LemmaFilter struct {
	input    TokenStream
	lexicon  Lexicon
	fallback stemmer.Normalizer
	state    filterState

	// current is a snapshot of the token the pending
	// lemmas belong to
	current Token
	pending []string
	stats   FilterStats
}

func (lf *LemmaFilter) Next() (bool, error) {
	if lf.state == stateDraining {
		lemma := lf.pending[0]
		lf.pending = lf.pending[1:]
		if len(lf.pending) == 0 {
			lf.state = stateIdle
		}
		tok := lf.input.Token()
		*tok = lf.current
		tok.Term = lemma
		tok.PosIncr = 0
		lf.stats.Expansions++
		return true, nil
	}

	ok, err := lf.input.Next()
	if !ok || err != nil {
		return ok, err
	}
	tok := lf.input.Token()
	lf.stats.Tokens++
	if tok.Keyword {
		lf.stats.Keywords++
		return true, nil
	}
	lemmas, found := lf.lexicon.Lookup(tok.Term)
	if found && len(lemmas) > 0 {
		lf.stats.Hits++
		tok.Term = lemmas[0]
		if len(lemmas) > 1 {
			lf.current = *tok
			lf.pending = append(lf.pending[:0], lemmas[1:]...)
			lf.state = stateDraining
		}
		return true, nil
	}
	if lf.fallback != nil {
		stemmed, err := lf.fallback.Stem(tok.Term)
		if err != nil {
			return false, err
		}
		if stemmed != "" {
			tok.Term = stemmed
			lf.stats.Fallbacks++
		}
	}
	return true, nil
}

func (lf *LemmaFilter) Token() *Token {
	return lf.input.Token()
}

// Reset discards any pending lemmas and resets the input stream.
// Accumulated statistics are kept.
func (lf *LemmaFilter) Reset() error {
	lf.pending = lf.pending[:0]
	lf.current = Token{}
	lf.state = stateIdle
	return lf.input.Reset()
}

// Draining tells whether there are still lemmas of the last
// dictionary word to be emitted.
func (lf *LemmaFilter) Draining() bool {
	return lf.state == stateDraining
}

func (lf *LemmaFilter) Stats() FilterStats {
	return lf.stats
}

// NewLemmaFilter creates a new filter. The fallback may be nil
// in which case words missing in the lexicon pass unchanged.
func NewLemmaFilter(input TokenStream, lexicon Lexicon, fallback stemmer.Normalizer) *LemmaFilter {
	return &LemmaFilter{
		input:    input,
		lexicon:  lexicon,
		fallback: fallback,
	}
}
