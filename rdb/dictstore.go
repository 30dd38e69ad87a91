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

package rdb

import (
	"errors"
	"fmt"

	"lemmad/dict"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	forEachBatchSize = 500
)

type storedCandidate struct {
	Value string `json:"v"`
	Class int    `json:"c"`
}

func encodeCandidates(cands []dict.Candidate) (string, error) {
	tmp := make([]storedCandidate, len(cands))
	for i, c := range cands {
		tmp[i] = storedCandidate{Value: c.Value, Class: c.Class}
	}
	return sonic.MarshalString(tmp)
}

func decodeCandidates(data string) ([]dict.Candidate, error) {
	var tmp []storedCandidate
	if err := sonic.UnmarshalString(data, &tmp); err != nil {
		return nil, err
	}
	ans := make([]dict.Candidate, len(tmp))
	for i, c := range tmp {
		ans[i] = dict.Candidate{Value: c.Value, Class: c.Class}
	}
	return ans, nil
}

// DictStore is a dict.Store keeping accumulated dictionary entries
// in Redis. Candidates of a word are stored in a hash, the insertion
// order of words is kept in a separate list.
type DictStore struct {
	adapter  *Adapter
	hashKey  string
	orderKey string
}

func (ds *DictStore) Get(word string) ([]dict.Candidate, bool, error) {
	data, err := ds.adapter.c.HGet(ds.adapter.ctx, ds.hashKey, word).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get entry %s: %w", word, err)
	}
	ans, err := decodeCandidates(data)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode entry %s: %w", word, err)
	}
	return ans, true, nil
}

func (ds *DictStore) Put(word string, lemmas []dict.Candidate) error {
	data, err := encodeCandidates(lemmas)
	if err != nil {
		return fmt.Errorf("failed to encode entry %s: %w", word, err)
	}
	added, err := ds.adapter.c.HSet(ds.adapter.ctx, ds.hashKey, word, data).Result()
	if err != nil {
		return fmt.Errorf("failed to store entry %s: %w", word, err)
	}
	if added > 0 {
		if err := ds.adapter.c.RPush(ds.adapter.ctx, ds.orderKey, word).Err(); err != nil {
			return fmt.Errorf("failed to store entry %s: %w", word, err)
		}
	}
	return nil
}

func (ds *DictStore) Len() (int, error) {
	ans, err := ds.adapter.c.HLen(ds.adapter.ctx, ds.hashKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get number of entries: %w", err)
	}
	return int(ans), nil
}

func (ds *DictStore) ForEach(fn func(word string, lemmas []dict.Candidate) error) error {
	for start := int64(0); ; start += forEachBatchSize {
		words, err := ds.adapter.c.LRange(
			ds.adapter.ctx, ds.orderKey, start, start+forEachBatchSize-1).Result()
		if err != nil {
			return fmt.Errorf("failed to read entries: %w", err)
		}
		if len(words) == 0 {
			return nil
		}
		values, err := ds.adapter.c.HMGet(ds.adapter.ctx, ds.hashKey, words...).Result()
		if err != nil {
			return fmt.Errorf("failed to read entries: %w", err)
		}
		for i, word := range words {
			data, ok := values[i].(string)
			if !ok {
				return fmt.Errorf("inconsistent store - missing entry %s", word)
			}
			lemmas, err := decodeCandidates(data)
			if err != nil {
				return fmt.Errorf("failed to decode entry %s: %w", word, err)
			}
			if err := fn(word, lemmas); err != nil {
				return err
			}
		}
		if len(words) < forEachBatchSize {
			return nil
		}
	}
}

func (ds *DictStore) Clear() error {
	if err := ds.adapter.c.Del(ds.adapter.ctx, ds.hashKey, ds.orderKey).Err(); err != nil {
		return fmt.Errorf("failed to clear dictionary store: %w", err)
	}
	return nil
}

// NewDictStore creates a new empty store. Each store
// uses its own keys so concurrent loads do not interfere.
func (a *Adapter) NewDictStore() *DictStore {
	id := uuid.New().String()
	return &DictStore{
		adapter:  a,
		hashKey:  a.key("acc", id, "entries"),
		orderKey: a.key("acc", id, "order"),
	}
}
