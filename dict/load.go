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
	"io"
	"time"

	"lemmad/merror"

	"github.com/rs/zerolog/log"
)

// Load reads all the dictionaries specified in conf and builds
// a new Table. In case of any I/O or store error, no table is
// returned. A nil store means an in-memory accumulation.
func Load(conf *Conf, store Store) (*Table, LoadStats, error) {
	if err := conf.Validate(); err != nil {
		return nil, LoadStats{}, err
	}
	enc, err := ResolveCharset(conf.Charset)
	if err != nil {
		return nil, LoadStats{}, merror.NewConfigError("unsupported charset `%s`", conf.Charset)
	}
	t0 := time.Now()
	builder := NewBuilder(conf, store)
	for _, path := range conf.Dictionaries {
		err := ReadSource(path, enc, func(name string, r io.Reader) error {
			log.Debug().Str("source", name).Msg("reading dictionary source")
			return builder.AddReader(r)
		})
		if err != nil {
			if store != nil {
				if err := store.Clear(); err != nil {
					log.Error().Err(err).Msg("failed to clear dictionary store after failed load")
				}
			}
			return nil, builder.Stats(), merror.LoadError{Source: path, Err: err}
		}
	}
	stats := builder.Stats()
	log.Info().
		Int("lines", stats.Lines).
		Int("accepted", stats.Accepted).
		Int("notEntry", stats.NotEntry).
		Int("tooShort", stats.TooShort).
		Int("badWord", stats.BadWord).
		Int("noClass", stats.NoClass).
		Msg("dictionary entries have been added")

	table, err := builder.Build()
	if err != nil {
		return nil, builder.Stats(), merror.LoadError{Err: err}
	}
	stats = builder.Stats()
	log.Info().
		Int("words", stats.Words).
		Int("entries", stats.Entries).
		Str("buildId", table.BuildID()).
		Dur("duration", time.Since(t0)).
		Msg("dictionary entries after compression")
	return table, stats, nil
}
