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

// Package lemmatizer ties a dictionary table and an optional
// fallback stemmer together and creates lemmatization filters.
package lemmatizer

import (
	"lemmad/analysis"
	"lemmad/dict"
	"lemmad/stemmer"

	"github.com/rs/zerolog/log"
)

// TableCache provides finished dictionary tables. In case
// a table is not available, the cache calls build.
type TableCache interface {
	CachedTable(conf *dict.Conf, build func() (*dict.Table, error)) (*dict.Table, error)
}

// Factory creates LemmaFilter instances sharing a single immutable
// dictionary table. A Factory is safe for concurrent use.
type Factory struct {
	conf      Conf
	table     *dict.Table
	fallback  stemmer.Factory
	loadStats dict.LoadStats
}

// Create wraps an input token stream with a new lemmatization filter.
// Each filter gets its own fallback stemmer instance.
func (f *Factory) Create(input analysis.TokenStream) *analysis.LemmaFilter {
	var fallback stemmer.Normalizer
	if f.fallback != nil {
		fallback = f.fallback.New()
	}
	return analysis.NewLemmaFilter(input, f.table, fallback)
}

func (f *Factory) Table() *dict.Table {
	return f.table
}

func (f *Factory) Conf() Conf {
	return f.conf
}

// FallbackName returns the name of the fallback stemmer
// or an empty string if there is none.
func (f *Factory) FallbackName() string {
	if f.fallback == nil {
		return ""
	}
	return f.fallback.Name()
}

// LoadStats returns statistics of the dictionary loading.
// For factories created from an existing table, the stats
// are empty.
func (f *Factory) LoadStats() dict.LoadStats {
	return f.loadStats
}

func newFallback(conf *Conf) (stemmer.Factory, error) {
	if conf.Fallback == nil {
		return nil, nil
	}
	return stemmer.NewFactory(conf.Fallback.Name, conf.Fallback.Params)
}

// New creates a factory from an already built table
func New(conf Conf, table *dict.Table) (*Factory, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	fallback, err := newFallback(&conf)
	if err != nil {
		return nil, err
	}
	return &Factory{conf: conf, table: table, fallback: fallback}, nil
}

// Load validates the configuration, reads all the dictionaries
// and creates a factory. A nil store means the entries are
// accumulated in memory.
func Load(conf Conf, store dict.Store) (*Factory, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	fallback, err := newFallback(&conf)
	if err != nil {
		return nil, err
	}
	table, stats, err := dict.Load(&conf.Conf, store)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("buildId", table.BuildID()).
		Str("fallback", conf.fallbackName()).
		Msg("lemmatizer ready")
	return &Factory{
		conf:      conf,
		table:     table,
		fallback:  fallback,
		loadStats: stats,
	}, nil
}

// LoadCached works like Load but it first tries to obtain
// the table from a cache.
func LoadCached(conf Conf, store dict.Store, cache TableCache) (*Factory, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	fallback, err := newFallback(&conf)
	if err != nil {
		return nil, err
	}
	var stats dict.LoadStats
	table, err := cache.CachedTable(&conf.Conf, func() (*dict.Table, error) {
		table, loadStats, err := dict.Load(&conf.Conf, store)
		stats = loadStats
		return table, err
	})
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("buildId", table.BuildID()).
		Str("fallback", conf.fallbackName()).
		Msg("lemmatizer ready")
	return &Factory{
		conf:      conf,
		table:     table,
		fallback:  fallback,
		loadStats: stats,
	}, nil
}

func (conf *Conf) fallbackName() string {
	if conf.Fallback == nil {
		return "none"
	}
	return conf.Fallback.Name
}
