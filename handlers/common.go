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

package handlers

import (
	"sync"
	"sync/atomic"
	"time"

	"lemmad/analysis"
	"lemmad/lemmatizer"
	"lemmad/monitoring"
)

const (
	EndpointLookup    = "lookup"
	EndpointLemmatize = "lemmatize"
	EndpointReload    = "reload"
)

// Loader creates a new lemmatizer factory from the current
// configuration and dictionaries.
type Loader func() (*lemmatizer.Factory, error)

// AnalysisConf configures the token stream chain the lemmatizer
// is applied to.
type AnalysisConf struct {

	// Keywords are always passed unchanged
	Keywords []string

	LowercaseInput bool

	// MaxTextLength is a max. size of a processed text in bytes
	MaxTextLength int
}

type Actions struct {
	factory    atomic.Pointer[lemmatizer.Factory]
	loader     Loader
	reloadLock sync.Mutex
	analysis   AnalysisConf
	reqLogger  *monitoring.RequestLogger
}

// Factory returns currently active lemmatizer factory
func (a *Actions) Factory() *lemmatizer.Factory {
	return a.factory.Load()
}

func (a *Actions) newStream(
	fact *lemmatizer.Factory,
	text string,
	keywords []string,
) *analysis.LemmaFilter {
	var ts analysis.TokenStream = analysis.NewWhitespaceTokenizer(text)
	allKeywords := append(append([]string{}, a.analysis.Keywords...), keywords...)
	if len(allKeywords) > 0 {
		ts = analysis.NewKeywordMarker(ts, allKeywords)
	}
	if a.analysis.LowercaseInput {
		ts = analysis.NewLowerCaseFilter(ts)
	}
	return fact.Create(ts)
}

func (a *Actions) logRequest(endpoint string, t0 time.Time, stats analysis.FilterStats, err error) {
	rec := monitoring.RequestLog{
		Endpoint: endpoint,
		Stats:    stats,
		Begin:    t0,
		End:      time.Now(),
	}
	if err != nil {
		rec.Error = err.Error()
	}
	a.reqLogger.Log(rec)
}
