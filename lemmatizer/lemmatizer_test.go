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

package lemmatizer

import (
	"encoding/json"
	"strings"
	"testing"

	"lemmad/analysis"
	"lemmad/dict"
	"lemmad/merror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDictionary = "testdata/dictionary.txt"

func factoryFromArgs(t *testing.T, args ...string) *Factory {
	require.Equal(t, 0, len(args)%2)
	m := map[string]string{"dictionaries": testDictionary}
	for i := 0; i < len(args); i += 2 {
		m[args[i]] = args[i+1]
	}
	conf, err := ConfFromArgs(m)
	require.NoError(t, err)
	fact, err := Load(conf, nil)
	require.NoError(t, err)
	return fact
}

func lemmatize(t *testing.T, fact *Factory, text string) []analysis.Token {
	tokens, err := analysis.Collect(fact.Create(analysis.NewWhitespaceTokenizer(text)))
	require.NoError(t, err)
	return tokens
}

func TestLemmatizerWithIrregularLemmas(t *testing.T) {
	fact := factoryFromArgs(t, "lemmaPos", "0", "wordPos", "1")
	tokens := lemmatize(t, fact, "bücher eldre")
	assert.Equal(t, []string{"buch", "gammel"}, analysis.Terms(tokens))
}

func TestLemmatizerWithMultipleLemmas(t *testing.T) {
	fact := factoryFromArgs(t, "lemmaPos", "0", "wordPos", "1")
	tokens := lemmatize(t, fact, "sykler")
	assert.Equal(t, []string{"sykle", "sykkel"}, analysis.Terms(tokens))
	assert.Equal(t, []int{1, 0}, analysis.PosIncrements(tokens))
}

func TestLemmatizerUsingPOSTags(t *testing.T) {
	fact := factoryFromArgs(t,
		"lemmaPos", "0", "wordPos", "1", "wordClassPos", "2",
		"storePosTag", "true", "wordClasses", "noun,verb")
	tokens := lemmatize(t, fact, "sykler")
	assert.Equal(t, []string{"sykle$1", "sykkel$0"}, analysis.Terms(tokens))
	assert.Equal(t, []int{1, 0}, analysis.PosIncrements(tokens))
}

func TestLemmatizerUsingReduction(t *testing.T) {
	fact := factoryFromArgs(t,
		"lemmaPos", "0", "wordPos", "1", "wordClassPos", "2",
		"reduceTo", "noun", "wordClasses", "noun,verb")
	tokens := lemmatize(t, fact, "sykler")
	assert.Equal(t, []string{"sykkel"}, analysis.Terms(tokens))
}

func TestLemmatizerWithFallback(t *testing.T) {
	fact := factoryFromArgs(t, "lemmaPos", "0", "wordPos", "1", "stemFallbackLang", "identity")
	tokens := lemmatize(t, fact, "katze")
	assert.Equal(t, []string{"katze"}, analysis.Terms(tokens))
	assert.Equal(t, "identity", fact.FallbackName())

	fact = factoryFromArgs(t, "lemmaPos", "0", "wordPos", "1", "stemFallbackLang", "en-minimal")
	tokens = lemmatize(t, fact, "eldre houses")
	assert.Equal(t, []string{"gammel", "house"}, analysis.Terms(tokens))
}

func TestLemmatizerEnglishFallbackIsMinimal(t *testing.T) {
	fact := factoryFromArgs(t, "lemmaPos", "0", "wordPos", "1", "stemFallbackLang", "en")
	tokens := lemmatize(t, fact, "running ponies cats")
	assert.Equal(t, []string{"running", "poni", "cat"}, analysis.Terms(tokens))

	fact = factoryFromArgs(t, "lemmaPos", "0", "wordPos", "1", "stemFallbackLang", "en-snowball")
	tokens = lemmatize(t, fact, "running")
	assert.Equal(t, []string{"run"}, analysis.Terms(tokens))
}

func TestLemmatizerShortWordsNeverPresent(t *testing.T) {
	fact := factoryFromArgs(t, "lemmaPos", "0", "wordPos", "1", "minLength", "3")
	_, ok := fact.Table().Lookup("abc")
	assert.False(t, ok)
	_, ok = fact.Table().Lookup("eier")
	assert.True(t, ok)

	fact = factoryFromArgs(t, "lemmaPos", "0", "wordPos", "1", "minLength", "4")
	_, ok = fact.Table().Lookup("eier")
	assert.False(t, ok)
}

func TestFiltersHaveOwnFallbackInstances(t *testing.T) {
	fact := factoryFromArgs(t, "lemmaPos", "0", "wordPos", "1", "stemFallbackLang", "de")
	text := strings.Repeat("katzen hunde ", 50)
	results := make(chan []string, 4)
	for i := 0; i < 4; i++ {
		go func() {
			tokens, err := analysis.Collect(fact.Create(analysis.NewWhitespaceTokenizer(text)))
			if err != nil {
				results <- nil
				return
			}
			results <- analysis.Terms(tokens)
		}()
	}
	first := <-results
	assert.Len(t, first, 100)
	for i := 1; i < 4; i++ {
		assert.Equal(t, first, <-results)
	}
}

func TestBogusArguments(t *testing.T) {
	_, err := ConfFromArgs(map[string]string{
		"dictionaries": testDictionary,
		"lemmaPos":     "0",
		"wordPos":      "1",
		"bogusArg":     "bogusValue",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown parameters")
	assert.Contains(t, err.Error(), "bogusArg")
}

func TestArgumentErrors(t *testing.T) {
	cases := []map[string]string{
		{"lemmaPos": "0", "wordPos": "1"},
		{"dictionaries": testDictionary, "wordPos": "1"},
		{"dictionaries": testDictionary, "lemmaPos": "0"},
		{"dictionaries": testDictionary, "lemmaPos": "x", "wordPos": "1"},
		{"dictionaries": testDictionary, "lemmaPos": "0", "wordPos": "1", "storePosTag": "maybe"},
		{"dictionaries": testDictionary, "lemmaPos": "0", "wordPos": "1", "stemFallbackLang": "xx"},
		{"dictionaries": testDictionary, "lemmaPos": "0", "wordPos": "1", "wordClasses": "noun"},
		{"dictionaries": testDictionary, "lemmaPos": "0", "wordPos": "1", "wordClassPos": "2",
			"wordClasses": "noun", "reduceTo": "adj"},
	}
	for _, args := range cases {
		_, err := ConfFromArgs(args)
		var cerr merror.ConfigError
		assert.ErrorAs(t, err, &cerr, "args: %v", args)
	}
}

func TestFallbackParams(t *testing.T) {
	conf, err := ConfFromArgs(map[string]string{
		"dictionaries":               testDictionary,
		"lemmaPos":                   "0",
		"wordPos":                    "1",
		"stemFallbackLang":           "en-snowball",
		"stemFallback.stemStopWords": "true",
	})
	require.NoError(t, err)
	assert.Equal(t, &FallbackConf{Name: "en-snowball", Params: map[string]string{"stemStopWords": "true"}}, conf.Fallback)

	_, err = ConfFromArgs(map[string]string{
		"dictionaries":               testDictionary,
		"lemmaPos":                   "0",
		"wordPos":                    "1",
		"stemFallback.stemStopWords": "true",
	})
	assert.ErrorContains(t, err, "Unknown parameters")
}

func TestConfFromArgsLists(t *testing.T) {
	conf, err := ConfFromArgs(map[string]string{
		"dictionaries": "a.txt, b.txt.gz",
		"lemmaPos":     "0",
		"wordPos":      "1",
		"wordClassPos": "2",
		"wordClasses":  "noun,verb",
		"reduceTo":     "verb",
		"charset":      "ISO-8859-1",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt", "b.txt.gz"}, conf.Dictionaries)
	assert.Equal(t, []string{"noun", "verb"}, conf.POSClasses)
	assert.Equal(t, []string{"verb"}, conf.ReduceTo)
	assert.Equal(t, "ISO-8859-1", conf.Charset)
	assert.Equal(t, dict.DfltMinLength, conf.MinLength)
	assert.Nil(t, conf.Fallback)
}

func TestConfJSON(t *testing.T) {
	var conf Conf
	err := json.Unmarshal([]byte(`{
		"dictionaries": ["testdata/dictionary.txt"],
		"wordColumn": 1,
		"lemmaColumn": 0,
		"fallback": {"name": "nb"}
	}`), &conf)
	require.NoError(t, err)
	assert.Equal(t, 1, conf.WordColumn)
	assert.Equal(t, dict.NoColumn, conf.POSColumn)
	assert.Equal(t, dict.DfltMinLength, conf.MinLength)
	assert.Equal(t, "nb", conf.Fallback.Name)
	assert.NoError(t, conf.Validate())

	err = json.Unmarshal([]byte(`{"dictionaries": [], "fallback": {"name": "nb", "lang": "x"}}`), &conf)
	assert.Error(t, err)
	err = json.Unmarshal([]byte(`{"dictionaries": [], "wordCol": 1}`), &conf)
	assert.Error(t, err)
}

func TestLoadFailsOnMissingSource(t *testing.T) {
	conf, err := ConfFromArgs(map[string]string{
		"dictionaries": "testdata/missing.txt",
		"lemmaPos":     "0",
		"wordPos":      "1",
	})
	require.NoError(t, err)
	fact, err := Load(conf, nil)
	assert.Nil(t, fact)
	var lerr merror.LoadError
	assert.ErrorAs(t, err, &lerr)
}

func TestNewFromTable(t *testing.T) {
	conf, err := ConfFromArgs(map[string]string{
		"dictionaries": testDictionary,
		"lemmaPos":     "0",
		"wordPos":      "1",
	})
	require.NoError(t, err)
	fact, err := New(conf, dict.NewTable(map[string][]string{"mice": {"mouse"}}))
	require.NoError(t, err)
	tokens := lemmatize(t, fact, "mice sykler")
	assert.Equal(t, []string{"mouse", "sykler"}, analysis.Terms(tokens))
	assert.Equal(t, dict.LoadStats{}, fact.LoadStats())
}

type memoryTableCache struct {
	tables map[string]*dict.Table
	builds int
}

func (mc *memoryTableCache) CachedTable(conf *dict.Conf, build func() (*dict.Table, error)) (*dict.Table, error) {
	key := conf.String()
	if t, ok := mc.tables[key]; ok {
		return t, nil
	}
	mc.builds++
	t, err := build()
	if err != nil {
		return nil, err
	}
	mc.tables[key] = t
	return t, nil
}

func TestLoadCached(t *testing.T) {
	conf, err := ConfFromArgs(map[string]string{
		"dictionaries": testDictionary,
		"lemmaPos":     "0",
		"wordPos":      "1",
	})
	require.NoError(t, err)
	cache := &memoryTableCache{tables: make(map[string]*dict.Table)}
	fact1, err := LoadCached(conf, nil, cache)
	require.NoError(t, err)
	assert.Equal(t, 18, fact1.LoadStats().Lines)
	fact2, err := LoadCached(conf, nil, cache)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.builds)
	assert.Equal(t, fact1.Table().BuildID(), fact2.Table().BuildID())
	tokens := lemmatize(t, fact2, "sykler")
	assert.Equal(t, []string{"sykle", "sykkel"}, analysis.Terms(tokens))
}
