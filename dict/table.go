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
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Table is a finalized, read-only `word -> lemmas` mapping.
// Once created, it is never modified and it can be shared
// by any number of goroutines without locking.
type Table struct {
	entries map[string][]string
	words   []string
	buildID string
	builtAt time.Time
}

// Lookup returns lemmas of a word in their emission order.
// The returned slice is shared and must not be modified.
func (t *Table) Lookup(word string) ([]string, bool) {
	v, ok := t.entries[word]
	return v, ok
}

func (t *Table) Len() int {
	return len(t.entries)
}

// BuildID uniquely identifies a single table build
func (t *Table) BuildID() string {
	return t.buildID
}

func (t *Table) BuiltAt() time.Time {
	return t.builtAt
}

// ForEach visits all entries ordered by word. Returning false
// from fn stops the iteration.
func (t *Table) ForEach(fn func(word string, lemmas []string) bool) {
	for _, w := range t.words {
		if !fn(w, t.entries[w]) {
			return
		}
	}
}

// WordsWithPrefix returns sorted words starting with prefix.
// The returned slice is shared and must not be modified.
func (t *Table) WordsWithPrefix(prefix string) []string {
	start, _ := slices.BinarySearch(t.words, prefix)
	rest := t.words[start:]
	end := sort.Search(len(rest), func(i int) bool {
		return !strings.HasPrefix(rest[i], prefix)
	})
	return rest[:end:end]
}

func newTable(entries map[string][]string) *Table {
	words := make([]string, 0, len(entries))
	for w := range entries {
		words = append(words, w)
	}
	slices.Sort(words)
	return &Table{
		entries: entries,
		words:   words,
		buildID: uuid.New().String(),
		builtAt: time.Now(),
	}
}

// NewTable creates a table from an existing mapping. The mapping
// is copied and entries with no lemmas are dropped.
func NewTable(entries map[string][]string) *Table {
	cp := make(map[string][]string, len(entries))
	for word, lemmas := range entries {
		if len(lemmas) == 0 {
			continue
		}
		cp[word] = slices.Clone(lemmas)
	}
	return newTable(cp)
}

// RestoreTable recreates a previously built table (e.g. from a cache)
// keeping its original identity.
func RestoreTable(entries map[string][]string, buildID string, builtAt time.Time) *Table {
	t := NewTable(entries)
	t.buildID = buildID
	t.builtAt = builtAt
	return t
}
