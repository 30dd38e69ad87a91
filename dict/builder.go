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
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
)

const (
	maxLineLength = 1024 * 1024
)

var (
	ErrBuilderFinished = errors.New("dictionary builder already finished")
)

// LoadStats summarizes a dictionary load
type LoadStats struct {
	Lines    int `json:"lines"`
	Accepted int `json:"accepted"`
	NotEntry int `json:"notEntry"`
	TooShort int `json:"tooShort"`
	BadWord  int `json:"badWord"`
	NoClass  int `json:"noClass"`
	Words    int `json:"words"`
	Entries  int `json:"entries"`
}

func (ls *LoadStats) countSkipped(reason SkipReason) {
	switch reason {
	case SkipNotEntry:
		ls.NotEntry++
	case SkipTooShort:
		ls.TooShort++
	case SkipBadWord:
		ls.BadWord++
	case SkipNoClass:
		ls.NoClass++
	}
}

// Builder accumulates dictionary entries and produces
// a Table. A Builder can produce only a single table.
type Builder struct {
	parser   *Parser
	reducer  *Reducer
	store    Store
	stats    LoadStats
	finished bool
}

// Add inserts an accepted entry. Identical candidates
// of the same word are stored only once.
func (b *Builder) Add(entry Entry) error {
	if b.finished {
		return ErrBuilderFinished
	}
	lemmas, _, err := b.store.Get(entry.Word)
	if err != nil {
		return fmt.Errorf("failed to add entry %s: %w", entry.Word, err)
	}
	if slices.Contains(lemmas, entry.Lemma) {
		return nil
	}
	if err := b.store.Put(entry.Word, append(lemmas, entry.Lemma)); err != nil {
		return fmt.Errorf("failed to add entry %s: %w", entry.Word, err)
	}
	return nil
}

// AddLine parses a raw dictionary line and adds it in case
// it is a valid entry. Invalid lines are silently ignored.
func (b *Builder) AddLine(line string) error {
	if b.finished {
		return ErrBuilderFinished
	}
	entry, reason := b.parser.parse(line)
	if reason != SkipNone {
		b.skipLine(reason)
		return nil
	}
	b.stats.Lines++
	b.stats.Accepted++
	return b.Add(entry)
}

// AddReader adds all lines of an already decoded text stream.
// Lines longer than maxLineLength are counted as non-entries.
func (b *Builder) AddReader(r io.Reader) error {
	br := bufio.NewReaderSize(r, 64*1024)
	var line []byte
	tooLong := false
	for {
		frag, isPrefix, err := br.ReadLine()
		if err == io.EOF {
			return nil

		} else if err != nil {
			return err
		}
		if !tooLong {
			line = append(line, frag...)
			if len(line) > maxLineLength {
				tooLong = true
				line = line[:0]
			}
		}
		if isPrefix {
			continue
		}
		if tooLong {
			b.skipLine(SkipNotEntry)
			tooLong = false
			continue
		}
		if err := b.AddLine(string(line)); err != nil {
			return err
		}
		line = line[:0]
	}
}

func (b *Builder) skipLine(reason SkipReason) {
	b.stats.Lines++
	b.stats.countSkipped(reason)
}

func (b *Builder) Stats() LoadStats {
	return b.stats
}

// Build reduces the accumulated entries into a Table and
// clears the underlying store.
func (b *Builder) Build() (*Table, error) {
	if b.finished {
		return nil, ErrBuilderFinished
	}
	b.finished = true
	numWords, err := b.store.Len()
	if err != nil {
		return nil, fmt.Errorf("failed to build table: %w", err)
	}
	b.stats.Words = numWords
	entries := make(map[string][]string, numWords)
	err = b.store.ForEach(func(word string, lemmas []Candidate) error {
		if ans := b.reducer.Reduce(word, lemmas); ans != nil {
			entries[word] = ans
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build table: %w", err)
	}
	if err := b.store.Clear(); err != nil {
		return nil, fmt.Errorf("failed to clear dictionary store: %w", err)
	}
	b.stats.Entries = len(entries)
	return newTable(entries), nil
}

func NewBuilder(conf *Conf, store Store) *Builder {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Builder{
		parser:  NewParser(conf),
		reducer: NewReducer(conf),
		store:   store,
	}
}
