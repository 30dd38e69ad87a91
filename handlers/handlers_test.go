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
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lemmad/dict"
	"lemmad/lemmatizer"
	"lemmad/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConf(fallback string) lemmatizer.Conf {
	conf := lemmatizer.Conf{Conf: dict.DefaultConf()}
	conf.Dictionaries = []string{"test.txt"}
	conf.LemmaColumn = 0
	conf.WordColumn = 1
	if fallback != "" {
		conf.Fallback = &lemmatizer.FallbackConf{Name: fallback}
	}
	return conf
}

func testFactory(t *testing.T, fallback string, entries map[string][]string) *lemmatizer.Factory {
	fact, err := lemmatizer.New(testConf(fallback), dict.NewTable(entries))
	require.NoError(t, err)
	return fact
}

var testEntries = map[string][]string{
	"sykler": {"sykle", "sykkel"},
	"bücher": {"buch"},
	"eldre":  {"gammel"},
	"dager":  {"dag"},
}

func newTestRouter(actions *Actions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/lookup/:word", actions.Lookup)
	engine.GET("/lemmatize", actions.Lemmatize)
	engine.POST("/lemmatize", actions.Lemmatize)
	engine.GET("/dictionary", actions.DictionaryInfo)
	engine.GET("/dictionary/entries", actions.DictionaryEntries)
	engine.POST("/tools/reload", actions.Reload)
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, req *http.Request, out any) int {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w.Code
}

func TestLookup(t *testing.T) {
	reqLogger := monitoring.NewRequestLogger(nil)
	actions := NewActions(testFactory(t, "en-minimal", testEntries), nil, AnalysisConf{}, reqLogger)
	engine := newTestRouter(actions)

	var resp LookupResponse
	code := doRequest(t, engine, httptest.NewRequest(http.MethodGet, "/lookup/sykler", nil), &resp)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Found)
	assert.Equal(t, []string{"sykle", "sykkel"}, resp.Lemmas)
	assert.Equal(t, actions.Factory().Table().BuildID(), resp.BuildID)

	resp = LookupResponse{}
	code = doRequest(t, engine, httptest.NewRequest(http.MethodGet, "/lookup/houses", nil), &resp)
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, resp.Found)
	assert.Empty(t, resp.Lemmas)
	assert.Equal(t, "house", resp.Fallback)

	usage, err := reqLogger.TotalEndpointUsage(EndpointLookup)
	require.NoError(t, err)
	assert.Equal(t, 2, usage.NumRequests)
	assert.Equal(t, 1, usage.Tokens.Hits)
	assert.Equal(t, 1, usage.Tokens.Fallbacks)
}

func TestLookupWithoutFallback(t *testing.T) {
	actions := NewActions(testFactory(t, "", testEntries), nil, AnalysisConf{}, nil)
	engine := newTestRouter(actions)
	var resp LookupResponse
	code := doRequest(t, engine, httptest.NewRequest(http.MethodGet, "/lookup/houses", nil), &resp)
	assert.Equal(t, http.StatusOK, code)
	assert.False(t, resp.Found)
	assert.Equal(t, "", resp.Fallback)
}

func TestLemmatizeGET(t *testing.T) {
	actions := NewActions(testFactory(t, "", testEntries), nil, AnalysisConf{MaxTextLength: 100}, nil)
	engine := newTestRouter(actions)
	var resp LemmatizeResponse
	code := doRequest(
		t, engine, httptest.NewRequest(http.MethodGet, "/lemmatize?text=mange+sykler&keyword=eldre", nil), &resp)
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Tokens, 3)
	assert.Equal(t, "mange", resp.Tokens[0].Term)
	assert.Equal(t, "sykle", resp.Tokens[1].Term)
	assert.Equal(t, "sykkel", resp.Tokens[2].Term)
	assert.Equal(t, 0, resp.Tokens[2].PosIncr)
	assert.Equal(t, 6, resp.Tokens[2].Start)
	assert.Equal(t, 1, resp.Stats.Expansions)
}

func TestLemmatizePOST(t *testing.T) {
	actions := NewActions(
		testFactory(t, "", testEntries),
		nil,
		AnalysisConf{MaxTextLength: 100, LowercaseInput: true, Keywords: []string{"Eldre"}},
		nil,
	)
	engine := newTestRouter(actions)

	req := httptest.NewRequest(
		http.MethodPost, "/lemmatize", strings.NewReader(`{"text": "Eldre Bücher dager", "keywords": ["dager"]}`))
	req.Header.Set("Content-Type", "application/json")
	var resp LemmatizeResponse
	code := doRequest(t, engine, req, &resp)
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Tokens, 3)
	assert.Equal(t, "Eldre", resp.Tokens[0].Term)
	assert.True(t, resp.Tokens[0].Keyword)
	assert.Equal(t, "buch", resp.Tokens[1].Term)
	assert.Equal(t, "dager", resp.Tokens[2].Term)
	assert.Equal(t, 2, resp.Stats.Keywords)

	req = httptest.NewRequest(http.MethodPost, "/lemmatize", strings.NewReader("eldre\tsykler"))
	req.Header.Set("Content-Type", "text/plain")
	resp = LemmatizeResponse{}
	code = doRequest(t, engine, req, &resp)
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Tokens, 3)
	assert.Equal(t, "gammel", resp.Tokens[0].Term)
}

func TestLemmatizeErrors(t *testing.T) {
	actions := NewActions(testFactory(t, "", testEntries), nil, AnalysisConf{MaxTextLength: 10}, nil)
	engine := newTestRouter(actions)

	req := httptest.NewRequest(http.MethodPost, "/lemmatize", strings.NewReader(strings.Repeat("sykler ", 10)))
	code := doRequest(t, engine, req, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, code)

	req = httptest.NewRequest(http.MethodPost, "/lemmatize", strings.NewReader(`{"text": `))
	req.Header.Set("Content-Type", "application/json")
	code = doRequest(t, engine, req, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestDictionaryInfoAndEntries(t *testing.T) {
	actions := NewActions(testFactory(t, "nb", testEntries), nil, AnalysisConf{}, nil)
	engine := newTestRouter(actions)

	var info DictionaryInfo
	code := doRequest(t, engine, httptest.NewRequest(http.MethodGet, "/dictionary", nil), &info)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 4, info.Entries)
	assert.Equal(t, "nb", info.Fallback)
	assert.Equal(t, 1, info.Conf.WordColumn)

	var entries EntriesResponse
	code = doRequest(
		t, engine, httptest.NewRequest(http.MethodGet, "/dictionary/entries?offset=1&limit=2", nil), &entries)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 4, entries.Total)
	assert.Equal(t, []DictionaryEntry{
		{Word: "dager", Lemmas: []string{"dag"}},
		{Word: "eldre", Lemmas: []string{"gammel"}},
	}, entries.Entries)

	entries = EntriesResponse{}
	code = doRequest(
		t, engine, httptest.NewRequest(http.MethodGet, "/dictionary/entries?prefix=syk", nil), &entries)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, entries.Total)
	assert.Equal(t, "sykler", entries.Entries[0].Word)

	entries = EntriesResponse{}
	code = doRequest(
		t, engine, httptest.NewRequest(http.MethodGet, "/dictionary/entries?offset=10", nil), &entries)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 4, entries.Total)
	assert.Empty(t, entries.Entries)

	code = doRequest(
		t, engine, httptest.NewRequest(http.MethodGet, "/dictionary/entries?limit=0", nil), nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestReload(t *testing.T) {
	var loaderErr error
	loader := func() (*lemmatizer.Factory, error) {
		if loaderErr != nil {
			return nil, loaderErr
		}
		return lemmatizer.New(testConf(""), dict.NewTable(map[string][]string{"mice": {"mouse"}}))
	}
	actions := NewActions(testFactory(t, "", testEntries), loader, AnalysisConf{}, nil)
	engine := newTestRouter(actions)
	oldID := actions.Factory().Table().BuildID()

	loaderErr = errors.New("dictionary unavailable")
	code := doRequest(t, engine, httptest.NewRequest(http.MethodPost, "/tools/reload", nil), nil)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, oldID, actions.Factory().Table().BuildID())

	loaderErr = nil
	var info DictionaryInfo
	code = doRequest(t, engine, httptest.NewRequest(http.MethodPost, "/tools/reload", nil), &info)
	assert.Equal(t, http.StatusOK, code)
	assert.NotEqual(t, oldID, info.BuildID)
	assert.Equal(t, info.BuildID, actions.Factory().Table().BuildID())

	var resp LookupResponse
	doRequest(t, engine, httptest.NewRequest(http.MethodGet, "/lookup/mice", nil), &resp)
	assert.Equal(t, []string{"mouse"}, resp.Lemmas)
}
