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

package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lemmad/cnf"
	"lemmad/dict"
	"lemmad/lemmatizer"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFactory(t *testing.T) *lemmatizer.Factory {
	conf := lemmatizer.Conf{Conf: dict.DefaultConf()}
	conf.Dictionaries = []string{"test.txt"}
	conf.LemmaColumn = 0
	conf.WordColumn = 1
	fact, err := lemmatizer.New(conf, dict.NewTable(map[string][]string{
		"sykler": {"sykle", "sykkel"},
		"eldre":  {"gammel"},
	}))
	require.NoError(t, err)
	return fact
}

func TestLemmatizeLines(t *testing.T) {
	var out bytes.Buffer
	stats, err := lemmatizeLines(
		testFactory(t), []string{"eldre"}, true, strings.NewReader("Sykler eldre\nbiler\n"), &out)
	require.NoError(t, err)
	assert.Equal(t,
		"sykle\t1\t0\t6\nsykkel\t0\t0\t6\neldre\t1\t7\t12\n\nbiler\t1\t0\t5\n\n",
		out.String(),
	)
	assert.Equal(t, 3, stats.Tokens)
	assert.Equal(t, 1, stats.Keywords)
	assert.Equal(t, 1, stats.Expansions)
}

func TestLookupWords(t *testing.T) {
	var out bytes.Buffer
	lookupWords(testFactory(t), []string{"sykler", "biler"}, &out)
	assert.Equal(t, "sykler\tsykle,sykkel\nbiler\t-\n", out.String())
}

func TestAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	conf := &cnf.Conf{AuthHeaderName: "X-Api-Key", AuthTokens: []string{"secret"}}
	engine := gin.New()
	engine.POST("/tools/reload", AuthRequired(conf), func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/tools/reload", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/tools/reload", nil)
	req.Header.Set("X-Api-Key", "secret")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	conf := &cnf.Conf{CorsAllowedOrigins: []string{"https://example.org"}}
	engine := gin.New()
	engine.Use(CORSMiddleware(conf))
	engine.GET("/", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://example.org")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, "https://example.org", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://other.org")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
