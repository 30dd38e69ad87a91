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
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"lemmad/dict"

	"github.com/bytedance/sonic"
	"github.com/klauspost/compress/gzip"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type cachedTable struct {
	BuildID string              `json:"buildId"`
	BuiltAt time.Time           `json:"builtAt"`
	Entries map[string][]string `json:"entries"`
}

// TableKey creates a cache key for a table built from conf.
// The key covers both the configuration and the current state
// (size and modification time) of all the dictionary sources.
func (a *Adapter) TableKey(conf *dict.Conf) (string, error) {
	confData, err := sonic.Marshal(conf)
	if err != nil {
		return "", fmt.Errorf("failed to create table key: %w", err)
	}
	h := sha1.New()
	h.Write(confData)
	for _, path := range conf.Dictionaries {
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("failed to create table key: %w", err)
		}
		fmt.Fprintf(h, "\n%s\t%d\t%d", path, info.Size(), info.ModTime().UnixNano())
	}
	return a.key("table", hex.EncodeToString(h.Sum(nil))), nil
}

// LoadTable returns a cached table. The second return value
// is false in case there is no such table.
func (a *Adapter) LoadTable(key string) (*dict.Table, bool, error) {
	data, err := a.c.Get(a.ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load cached table: %w", err)
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("failed to load cached table: %w", err)
	}
	defer zr.Close()
	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load cached table: %w", err)
	}
	var ct cachedTable
	if err := sonic.Unmarshal(raw, &ct); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached table: %w", err)
	}
	return dict.RestoreTable(ct.Entries, ct.BuildID, ct.BuiltAt), true, nil
}

// StoreTable stores a table under key using configured expiration
func (a *Adapter) StoreTable(key string, table *dict.Table) error {
	ct := cachedTable{
		BuildID: table.BuildID(),
		BuiltAt: table.BuiltAt(),
		Entries: make(map[string][]string, table.Len()),
	}
	table.ForEach(func(word string, lemmas []string) bool {
		ct.Entries[word] = lemmas
		return true
	})
	data, err := sonic.Marshal(ct)
	if err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}
	if err := a.c.Set(a.ctx, key, buf.Bytes(), a.tableTTL).Err(); err != nil {
		return fmt.Errorf("failed to store table: %w", err)
	}
	return nil
}

// CachedTable returns a table for conf from the cache or builds
// a new one using build and stores it. Cache failures are only
// logged, build errors are returned.
func (a *Adapter) CachedTable(conf *dict.Conf, build func() (*dict.Table, error)) (*dict.Table, error) {
	key, err := a.TableKey(conf)
	if err != nil {
		log.Warn().Err(err).Msg("cannot use table cache")
		return build()
	}
	table, ok, err := a.LoadTable(key)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to read table cache")

	} else if ok {
		log.Info().
			Str("key", key).
			Str("buildId", table.BuildID()).
			Int("entries", table.Len()).
			Msg("using cached dictionary table")
		return table, nil
	}
	table, err = build()
	if err != nil {
		return nil, err
	}
	if err := a.StoreTable(key, table); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to write table cache")
	}
	return table, nil
}
