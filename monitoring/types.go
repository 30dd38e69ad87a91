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
	"time"

	"lemmad/analysis"

	"github.com/bytedance/sonic"
)

// RequestLog describes a single processed API request
type RequestLog struct {
	Endpoint string               `json:"endpoint"`
	Stats    analysis.FilterStats `json:"stats"`
	Begin    time.Time            `json:"begin"`
	End      time.Time            `json:"end"`
	Error    string               `json:"error,omitempty"`
}

func (rl RequestLog) TimeSpent() time.Duration {
	return rl.End.Sub(rl.Begin)
}

func (rl RequestLog) HasError() bool {
	return rl.Error != ""
}

// StatusWriter is a destination of request logs
type StatusWriter interface {
	Write(rec RequestLog)
}

type NullStatusWriter struct{}

func (n *NullStatusWriter) Write(rec RequestLog) {}

// ---

// Usage summarizes a number of processed requests
type Usage struct {
	NumRequests   int
	NumErrors     int
	TotalTimeSecs float64
	Tokens        analysis.FilterStats
	FirstUpdate   time.Time
	LastUpdate    time.Time
}

func (u *Usage) add(rec RequestLog) {
	if u.NumRequests == 0 {
		u.FirstUpdate = rec.Begin
	}
	u.NumRequests++
	if rec.HasError() {
		u.NumErrors++
	}
	u.TotalTimeSecs += rec.TimeSpent().Seconds()
	u.Tokens.Add(rec.Stats)
	u.LastUpdate = rec.End
}

// TotalSpan returns time span covered by the usage info
func (u Usage) TotalSpan() time.Duration {
	return u.LastUpdate.Sub(u.FirstUpdate)
}

func (u Usage) AvgRequestSecs() float64 {
	if u.NumRequests == 0 {
		return 0
	}
	return u.TotalTimeSecs / float64(u.NumRequests)
}

// HitRatio returns a ratio of tokens found in the dictionary
// to all the non-keyword tokens.
func (u Usage) HitRatio() float64 {
	total := u.Tokens.Tokens - u.Tokens.Keywords
	if total <= 0 {
		return 0
	}
	return float64(u.Tokens.Hits) / float64(total)
}

func (u Usage) MarshalJSON() ([]byte, error) {
	var t0, t1 *time.Time
	if !u.FirstUpdate.IsZero() {
		t0 = &u.FirstUpdate
	}
	if !u.LastUpdate.IsZero() {
		t1 = &u.LastUpdate
	}
	return sonic.Marshal(
		struct {
			NumRequests    int                  `json:"numRequests"`
			NumErrors      int                  `json:"numErrors"`
			TotalTimeSecs  float64              `json:"totalTimeSecs"`
			AvgRequestSecs float64              `json:"avgRequestSecs"`
			Tokens         analysis.FilterStats `json:"tokens"`
			HitRatio       float64              `json:"hitRatio"`
			FirstUpdate    *time.Time           `json:"firstUpdate,omitempty"`
			LastUpdate     *time.Time           `json:"lastUpdate,omitempty"`
		}{
			NumRequests:    u.NumRequests,
			NumErrors:      u.NumErrors,
			TotalTimeSecs:  u.TotalTimeSecs,
			AvgRequestSecs: u.AvgRequestSecs(),
			Tokens:         u.Tokens,
			HitRatio:       u.HitRatio(),
			FirstUpdate:    t0,
			LastUpdate:     t1,
		},
	)
}

// EndpointsUsage maps endpoint names to their usage
type EndpointsUsage map[string]Usage

func (eu EndpointsUsage) Sum() Usage {
	var ans Usage
	for _, v := range eu {
		if v.NumRequests == 0 {
			continue
		}
		if ans.FirstUpdate.IsZero() || v.FirstUpdate.Before(ans.FirstUpdate) {
			ans.FirstUpdate = v.FirstUpdate
		}
		if v.LastUpdate.After(ans.LastUpdate) {
			ans.LastUpdate = v.LastUpdate
		}
		ans.NumRequests += v.NumRequests
		ans.NumErrors += v.NumErrors
		ans.TotalTimeSecs += v.TotalTimeSecs
		ans.Tokens.Add(v.Tokens)
	}
	return ans
}
