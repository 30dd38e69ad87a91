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
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type Adapter struct {
	ctx       context.Context
	c         *redis.Client
	keyPrefix string
	tableTTL  time.Duration
}

func (a *Adapter) key(parts ...string) string {
	return a.keyPrefix + ":" + strings.Join(parts, ":")
}

// TestConnection pings the server repeatedly until it responds
// or the timeout is reached.
func (a *Adapter) TestConnection(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(a.ctx, timeout)
	defer cancel()
	for {
		err := a.c.Ping(ctx).Err()
		if err == nil {
			log.Info().Str("address", a.c.Options().Addr).Msg("Redis connection OK")
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("failed to connect to Redis at %s: %w", a.c.Options().Addr, err)
		case <-time.After(500 * time.Millisecond):
			log.Warn().Err(err).Msg("Redis not available yet, retrying")
		}
	}
}

func (a *Adapter) Close() error {
	return a.c.Close()
}

func NewAdapter(conf *Conf) *Adapter {
	prefix := conf.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Adapter{
		c: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", conf.Host, conf.Port),
			Password: conf.Password,
			DB:       conf.DB,
		}),
		ctx:       context.Background(),
		keyPrefix: prefix,
		tableTTL:  conf.TableCacheTTL(),
	}
}
