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
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultHost      = "localhost"
	DefaultPort      = 6379
	DefaultKeyPrefix = "lemmad"
)

type Conf struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	DB        int    `json:"db"`
	Password  string `json:"password"`
	KeyPrefix string `json:"keyPrefix"`

	// AccumulateEntries makes dictionary loading store raw
	// entries in Redis instead of the process memory.
	AccumulateEntries bool `json:"accumulateEntries"`

	// CacheTables enables caching of finished dictionary tables
	CacheTables bool `json:"cacheTables"`

	// TableCacheTTLSecs specifies expiration of cached tables.
	// Zero means no expiration.
	TableCacheTTLSecs int `json:"tableCacheTtlSecs"`
}

func (conf *Conf) TableCacheTTL() time.Duration {
	return time.Duration(conf.TableCacheTTLSecs) * time.Second
}

func (conf *Conf) ValidateAndDefaults() error {
	if conf.Host == "" {
		conf.Host = DefaultHost
		log.Warn().Str("host", conf.Host).Msg("Redis host not specified, using default")
	}
	if conf.Port == 0 {
		conf.Port = DefaultPort
		log.Warn().Int("port", conf.Port).Msg("Redis port not specified, using default")
	}
	if conf.KeyPrefix == "" {
		conf.KeyPrefix = DefaultKeyPrefix
		log.Warn().Str("keyPrefix", conf.KeyPrefix).Msg("Redis key prefix not specified, using default")
	}
	if conf.TableCacheTTLSecs < 0 {
		return fmt.Errorf("invalid tableCacheTtlSecs: %d", conf.TableCacheTTLSecs)
	}
	return nil
}
