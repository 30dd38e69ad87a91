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
	"bufio"
	"fmt"
	"io"
	"strings"

	"lemmad/analysis"
	"lemmad/cnf"
	"lemmad/lemmatizer"

	"github.com/rs/zerolog/log"
)

func loadFactoryOrFail(conf *cnf.Conf) *lemmatizer.Factory {
	fact, err := newLoader(conf, connectRedis(conf))()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionaries")
	}
	return fact
}

// lemmatizeLines writes a token per line in the form
// `term<TAB>position increment<TAB>start<TAB>end`. Input lines
// are separated by an empty line.
func lemmatizeLines(fact *lemmatizer.Factory, keywords []string, lowercase bool, in io.Reader, out io.Writer) (analysis.FilterStats, error) {
	var stats analysis.FilterStats
	w := bufio.NewWriter(out)
	defer w.Flush()
	tokenizer := analysis.NewWhitespaceTokenizer("")
	var ts analysis.TokenStream = tokenizer
	if len(keywords) > 0 {
		ts = analysis.NewKeywordMarker(ts, keywords)
	}
	if lowercase {
		ts = analysis.NewLowerCaseFilter(ts)
	}
	filter := fact.Create(ts)
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	for sc.Scan() {
		tokenizer.SetText(sc.Text())
		if err := filter.Reset(); err != nil {
			return stats, err
		}
		tokens, err := analysis.Collect(filter)
		if err != nil {
			return filter.Stats(), err
		}
		for _, tok := range tokens {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\n", tok.Term, tok.PosIncr, tok.Start, tok.End)
		}
		fmt.Fprintln(w)
	}
	return filter.Stats(), sc.Err()
}

func runLemmatize(conf *cnf.Conf, in io.Reader, out io.Writer) {
	fact := loadFactoryOrFail(conf)
	stats, err := lemmatizeLines(fact, conf.Keywords, conf.LowercaseInput, in, out)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to lemmatize input")
	}
	log.Info().
		Int("tokens", stats.Tokens).
		Int("hits", stats.Hits).
		Int("expansions", stats.Expansions).
		Int("fallbacks", stats.Fallbacks).
		Msg("lemmatization finished")
}

// lookupWords writes `word<TAB>lemma1,lemma2,...` for each word.
// Words not found in the dictionary have `-` instead of lemmas.
func lookupWords(fact *lemmatizer.Factory, words []string, out io.Writer) {
	for _, word := range words {
		lemmas, ok := fact.Table().Lookup(word)
		if ok {
			fmt.Fprintf(out, "%s\t%s\n", word, strings.Join(lemmas, ","))

		} else {
			fmt.Fprintf(out, "%s\t-\n", word)
		}
	}
}

func runLookup(conf *cnf.Conf, words []string, out io.Writer) {
	if len(words) == 0 {
		log.Fatal().Msg("no words to look up")
	}
	lookupWords(loadFactoryOrFail(conf), words, out)
}
