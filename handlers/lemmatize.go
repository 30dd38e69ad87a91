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
	"fmt"
	"io"
	"net/http"
	"time"

	"lemmad/analysis"
	"lemmad/merror"

	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type LookupResponse struct {
	Word     string   `json:"word"`
	Found    bool     `json:"found"`
	Lemmas   []string `json:"lemmas"`
	Fallback string   `json:"fallback,omitempty"`
	BuildID  string   `json:"buildId"`
}

type LemmatizeResponse struct {
	Tokens  []analysis.Token     `json:"tokens"`
	Stats   analysis.FilterStats `json:"stats"`
	BuildID string               `json:"buildId"`
}

type lemmatizeArgs struct {
	Text     string   `json:"text"`
	Keywords []string `json:"keywords"`
}

// Lookup returns lemmas of a single word form. In case the word is not
// in the dictionary, the result of the fallback stemmer (if any) is
// returned instead.
func (a *Actions) Lookup(ctx *gin.Context) {
	t0 := time.Now()
	word := ctx.Param("word")
	fact := a.Factory()
	filter := fact.Create(analysis.NewSingleTokenizer(word))
	tokens, err := analysis.Collect(filter)
	a.logRequest(EndpointLookup, t0, filter.Stats(), err)
	if err != nil {
		log.Error().Err(err).Str("word", word).Msg("failed to lemmatize word")
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionErrorFrom(err), http.StatusInternalServerError)
		return
	}
	ans := LookupResponse{
		Word:    word,
		Found:   filter.Stats().Hits > 0,
		Lemmas:  []string{},
		BuildID: fact.Table().BuildID(),
	}
	if ans.Found {
		ans.Lemmas = analysis.Terms(tokens)

	} else if len(tokens) > 0 && tokens[0].Term != word {
		ans.Fallback = tokens[0].Term
	}
	uniresp.WriteJSONResponse(ctx.Writer, ans)
}

func (a *Actions) readLemmatizeArgs(ctx *gin.Context) (lemmatizeArgs, error) {
	var args lemmatizeArgs
	if ctx.Request.Method != http.MethodPost {
		args.Text = ctx.Query("text")
		args.Keywords = ctx.QueryArray("keyword")
		return args, nil
	}
	if ctx.ContentType() == gin.MIMEJSON {
		if err := ctx.ShouldBindJSON(&args); err != nil {
			return args, merror.InputError{Msg: fmt.Sprintf("invalid request body: %s", err)}
		}
		return args, nil
	}
	body, err := io.ReadAll(io.LimitReader(ctx.Request.Body, int64(a.analysis.MaxTextLength)+1))
	if err != nil {
		return args, merror.InputError{Msg: fmt.Sprintf("failed to read request body: %s", err)}
	}
	args.Text = string(body)
	args.Keywords = ctx.QueryArray("keyword")
	return args, nil
}

// Lemmatize splits a text into tokens and lemmatizes them. The text
// can be passed via the `text` URL argument, as a raw POST body or as
// a JSON object `{"text": "...", "keywords": [...]}`.
func (a *Actions) Lemmatize(ctx *gin.Context) {
	t0 := time.Now()
	args, err := a.readLemmatizeArgs(ctx)
	if err != nil {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionErrorFrom(err), http.StatusBadRequest)
		return
	}
	if a.analysis.MaxTextLength > 0 && len(args.Text) > a.analysis.MaxTextLength {
		uniresp.WriteJSONErrorResponse(
			ctx.Writer,
			uniresp.NewActionError("text too long (max. %d bytes)", a.analysis.MaxTextLength),
			http.StatusRequestEntityTooLarge,
		)
		return
	}
	fact := a.Factory()
	filter := a.newStream(fact, args.Text, args.Keywords)
	tokens, err := analysis.Collect(filter)
	a.logRequest(EndpointLemmatize, t0, filter.Stats(), err)
	if err != nil {
		log.Error().Err(err).Msg("failed to lemmatize text")
		uniresp.WriteJSONErrorResponse(
			ctx.Writer, uniresp.NewActionErrorFrom(err), http.StatusInternalServerError)
		return
	}
	uniresp.WriteJSONResponse(
		ctx.Writer,
		LemmatizeResponse{
			Tokens:  tokens,
			Stats:   filter.Stats(),
			BuildID: fact.Table().BuildID(),
		},
	)
}
