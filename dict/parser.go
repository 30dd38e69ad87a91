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
	"strings"
	"unicode/utf8"
)

// SkipReason describes why a dictionary line did not
// produce an entry.
type SkipReason int

const (
	SkipNone SkipReason = iota
	SkipNotEntry
	SkipTooShort
	SkipBadWord
	SkipNoClass
)

func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "none"
	case SkipNotEntry:
		return "notEntry"
	case SkipTooShort:
		return "tooShort"
	case SkipBadWord:
		return "badWord"
	case SkipNoClass:
		return "noClass"
	default:
		return "unknown"
	}
}

// Entry is an accepted dictionary line
type Entry struct {
	Word  string
	Lemma Candidate
}

// Parser turns raw dictionary lines into entries.
// It is stateless and safe for concurrent use.
type Parser struct {
	wordCol   int
	lemmaCol  int
	posCol    int
	classes   []string
	minLength int
}

func NewParser(conf *Conf) *Parser {
	return &Parser{
		wordCol:   conf.WordColumn,
		lemmaCol:  conf.LemmaColumn,
		posCol:    conf.POSColumn,
		classes:   conf.POSClasses,
		minLength: conf.MinLength,
	}
}

func (p *Parser) ParseLine(line string) (Entry, bool) {
	entry, reason := p.parse(line)
	return entry, reason == SkipNone
}

func (p *Parser) parse(line string) (Entry, SkipReason) {
	cols := strings.Split(line, "\t")
	trimmed := strings.TrimSpace(line)
	if len(cols) < 2 || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "*") {
		return Entry{}, SkipNotEntry
	}
	if p.wordCol >= len(cols) || p.lemmaCol >= len(cols) {
		return Entry{}, SkipNotEntry
	}
	word := cols[p.wordCol]
	if utf8.RuneCountInString(word) <= p.minLength {
		return Entry{}, SkipTooShort
	}
	// words containing spaces or hyphens interfere with tokenizers
	if strings.ContainsAny(word, " -") {
		return Entry{}, SkipBadWord
	}
	if len(p.classes) == 0 {
		return Entry{Word: word, Lemma: Candidate{Value: cols[p.lemmaCol], Class: NoClass}}, SkipNone
	}
	if p.posCol >= len(cols) {
		return Entry{}, SkipNoClass
	}
	posText := cols[p.posCol]
	for i, cls := range p.classes {
		if strings.Contains(posText, cls) {
			return Entry{Word: word, Lemma: Candidate{Value: cols[p.lemmaCol], Class: i}}, SkipNone
		}
	}
	return Entry{}, SkipNoClass
}
