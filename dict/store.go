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

// Store holds the intermediate `word -> candidate lemmas` mapping
// while dictionaries are being loaded.
//
// Implementations must iterate words in their first-insertion order
// so the resulting table does not depend on hashing.
type Store interface {
	Get(word string) ([]Candidate, bool, error)
	Put(word string, lemmas []Candidate) error
	Len() (int, error)
	ForEach(fn func(word string, lemmas []Candidate) error) error
	Clear() error
}

type storeItem struct {
	word   string
	lemmas []Candidate
}

// MemoryStore is an in-process Store
type MemoryStore struct {
	index map[string]int
	items []storeItem
}

func (ms *MemoryStore) Get(word string) ([]Candidate, bool, error) {
	idx, ok := ms.index[word]
	if !ok {
		return nil, false, nil
	}
	return ms.items[idx].lemmas, true, nil
}

func (ms *MemoryStore) Put(word string, lemmas []Candidate) error {
	idx, ok := ms.index[word]
	if ok {
		ms.items[idx].lemmas = lemmas
		return nil
	}
	ms.index[word] = len(ms.items)
	ms.items = append(ms.items, storeItem{word: word, lemmas: lemmas})
	return nil
}

func (ms *MemoryStore) Len() (int, error) {
	return len(ms.items), nil
}

func (ms *MemoryStore) ForEach(fn func(word string, lemmas []Candidate) error) error {
	for _, item := range ms.items {
		if err := fn(item.word, item.lemmas); err != nil {
			return err
		}
	}
	return nil
}

func (ms *MemoryStore) Clear() error {
	ms.index = make(map[string]int)
	ms.items = nil
	return nil
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		index: make(map[string]int),
	}
}
