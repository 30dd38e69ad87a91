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
	"net/http"
	"time"

	"lemmad/analysis"
	"lemmad/dict"
	"lemmad/lemmatizer"

	"github.com/czcorpus/cnc-gokit/unireq"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	dfltEntriesPageSize = 100
	maxEntriesPageSize  = 1000
)

type DictionaryInfo struct {
	BuildID   string          `json:"buildId"`
	BuiltAt   time.Time       `json:"builtAt"`
	Entries   int             `json:"entries"`
	Fallback  string          `json:"fallback,omitempty"`
	LoadStats dict.LoadStats  `json:"loadStats"`
	Conf      lemmatizer.Conf `json:"conf"`
}

func newDictionaryInfo(fact *lemmatizer.Factory) DictionaryInfo {
	return DictionaryInfo{
		BuildID:   fact.Table().BuildID(),
		BuiltAt:   fact.Table().BuiltAt(),
		Entries:   fact.Table().Len(),
		Fallback:  fact.FallbackName(),
		LoadStats: fact.LoadStats(),
		Conf:      fact.Conf(),
	}
}

type DictionaryEntry struct {
	Word   string   `json:"word"`
	Lemmas []string `json:"lemmas"`
}

type EntriesResponse struct {
	Total   int               `json:"total"`
	Offset  int               `json:"offset"`
	Entries []DictionaryEntry `json:"entries"`
}

func (a *Actions) DictionaryInfo(ctx *gin.Context) {
	uniresp.WriteJSONResponse(ctx.Writer, newDictionaryInfo(a.Factory()))
}

// DictionaryEntries lists dictionary entries sorted by words.
// Optionally, only words with a specified prefix are listed.
func (a *Actions) DictionaryEntries(ctx *gin.Context) {
	offset, ok := unireq.GetURLIntArgOrFail(ctx, "offset", 0)
	if !ok {
		return
	}
	limit, ok := unireq.GetURLIntArgOrFail(ctx, "limit", dfltEntriesPageSize)
	if !ok {
		return
	}
	if offset < 0 || limit < 1 || limit > maxEntriesPageSize {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionError("invalid offset or limit (max. limit is %d)", maxEntriesPageSize),
			http.StatusBadRequest,
		)
		return
	}
	table := a.Factory().Table()
	words := table.WordsWithPrefix(ctx.Query("prefix"))
	ans := EntriesResponse{Offset: offset, Total: len(words)}
	words = words[min(offset, len(words)):min(offset+limit, len(words))]
	ans.Entries = make([]DictionaryEntry, len(words))
	for i, word := range words {
		lemmas, _ := table.Lookup(word)
		ans.Entries[i] = DictionaryEntry{Word: word, Lemmas: lemmas}
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

// Reload loads all the dictionaries again and replaces the active
// lemmatizer. Requests already in progress finish with the previous
// one. In case of an error, the previous lemmatizer stays active.
func (a *Actions) Reload(ctx *gin.Context) {
	if !a.reloadLock.TryLock() {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionError("dictionary reload already in progress"),
			http.StatusConflict,
		)
		return
	}
	defer a.reloadLock.Unlock()
	t0 := time.Now()
	fact, err := a.loader()
	if err != nil {
		log.Error().Err(err).Msg("failed to reload dictionaries, keeping the previous ones")
		a.logRequest(EndpointReload, t0, analysis.FilterStats{}, err)
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionErrorFrom(err), http.StatusInternalServerError)
		return
	}
	prev := a.factory.Swap(fact)
	log.Info().
		Str("previousBuildId", prev.Table().BuildID()).
		Str("buildId", fact.Table().BuildID()).
		Msg("dictionaries reloaded")
	a.logRequest(EndpointReload, t0, analysis.FilterStats{}, nil)
	uniresp.WriteJSONResponse(ctx.Writer, newDictionaryInfo(fact))
}
