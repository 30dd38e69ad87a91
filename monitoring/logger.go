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

package monitoring

import (
	"context"
	"errors"
	"sync"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/rs/zerolog/log"
)

const (
	recentLogSize = 100
)

var (
	ErrEndpointNotFound = errors.New("endpoint not found")
)

// RequestLogger keeps total usage of API endpoints and a limited
// log of recent requests. All the records are also passed to
// a StatusWriter.
type RequestLogger struct {
	usage        EndpointsUsage
	dataLock     sync.RWMutex
	recentLog    *collections.CircularList[RequestLog]
	statusWriter StatusWriter
}

func (w *RequestLogger) Log(rec RequestLog) {
	w.dataLock.Lock()
	entry := w.usage[rec.Endpoint]
	entry.add(rec)
	w.usage[rec.Endpoint] = entry
	w.recentLog.Append(rec)
	w.dataLock.Unlock()
	log.Debug().
		Str("endpoint", rec.Endpoint).
		Int("tokens", rec.Stats.Tokens).
		Int("hits", rec.Stats.Hits).
		Dur("duration", rec.TimeSpent()).
		Msg("request processed")
	w.statusWriter.Write(rec)
}

func (w *RequestLogger) TotalUsage() Usage {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	return w.usage.Sum()
}

func (w *RequestLogger) TotalEndpointUsage(endpoint string) (Usage, error) {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	ans, ok := w.usage[endpoint]
	if !ok {
		return ans, ErrEndpointNotFound
	}
	return ans, nil
}

func (w *RequestLogger) RecentUsage() Usage {
	var ans Usage
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	w.recentLog.ForEach(func(i int, item RequestLog) bool {
		ans.add(item)
		return true
	})
	return ans
}

func (w *RequestLogger) RecentEndpointUsage(endpoint string) (Usage, error) {
	var ans Usage
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	w.recentLog.ForEach(func(i int, item RequestLog) bool {
		if item.Endpoint == endpoint {
			ans.add(item)
		}
		return true
	})
	if ans.NumRequests == 0 {
		return ans, ErrEndpointNotFound
	}
	return ans, nil
}

func (w *RequestLogger) RecentRecords() []RequestLog {
	w.dataLock.RLock()
	defer w.dataLock.RUnlock()
	ans := make([]RequestLog, 0, w.recentLog.Len())
	w.recentLog.ForEach(func(i int, item RequestLog) bool {
		ans = append(ans, item)
		return true
	})
	return ans
}

func (w *RequestLogger) Start(ctx context.Context) {
	log.Info().Msg("starting request logger")
}

func (w *RequestLogger) Stop(ctx context.Context) error {
	log.Info().
		Int("numRequests", w.TotalUsage().NumRequests).
		Msg("shutting down request logger")
	return nil
}

func NewRequestLogger(statusWriter StatusWriter) *RequestLogger {
	if statusWriter == nil {
		statusWriter = &NullStatusWriter{}
	}
	return &RequestLogger{
		usage:        make(EndpointsUsage),
		recentLog:    collections.NewCircularList[RequestLog](recentLogSize),
		statusWriter: statusWriter,
	}
}
