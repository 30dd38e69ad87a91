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

package stemmer

import (
	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/danish"
	"github.com/blevesearch/snowballstem/dutch"
	"github.com/blevesearch/snowballstem/finnish"
	"github.com/blevesearch/snowballstem/german"
	"github.com/blevesearch/snowballstem/italian"
	"github.com/blevesearch/snowballstem/norwegian"
	"github.com/blevesearch/snowballstem/portuguese"
	"github.com/kljensen/snowball"
	porterstemmer "github.com/reiver/go-porterstemmer"
)

const (
	paramStemStopWords = "stemStopWords"
)

// snowballLanguages maps names to stemmers of the kljensen/snowball package
var snowballLanguages = map[string]string{
	"en-snowball": "english",
	"es-snowball": "spanish",
	"fr-snowball": "french",
	"ru-snowball": "russian",
	"sv-snowball": "swedish",
	"hu-snowball": "hungarian",
}

// envLanguages maps names to env-based snowball programs
var envLanguages = map[string]func(env *snowballstem.Env) bool{
	"de-snowball": german.Stem,
	"nl-snowball": dutch.Stem,
	"no-snowball": norwegian.Stem,
	"da-snowball": danish.Stem,
	"fi-snowball": finnish.Stem,
	"it-snowball": italian.Stem,
	"pt-snowball": portuguese.Stem,
}

func newSnowballFactory(name string, params map[string]string) (Factory, error) {
	if err := checkParams(name, params, paramStemStopWords); err != nil {
		return nil, err
	}
	stemStopWords, err := boolParam(name, params, paramStemStopWords, false)
	if err != nil {
		return nil, err
	}
	lang := snowballLanguages[name]
	return &statelessFactory{
		name: name,
		normalizer: funcStemmer(func(word string) (string, error) {
			return snowball.Stem(word, lang, stemStopWords)
		}),
	}, nil
}

// ----------------------

// envStemmer wraps a snowball program working on a mutable
// environment. The environment is reset before each word.
type envStemmer struct {
	env  *snowballstem.Env
	stem func(env *snowballstem.Env) bool
}

func (s *envStemmer) Stem(word string) (string, error) {
	s.env.SetCurrent(word)
	s.stem(s.env)
	return s.env.Current(), nil
}

type envFactory struct {
	name string
	stem func(env *snowballstem.Env) bool
}

func (f *envFactory) Name() string {
	return f.name
}

func (f *envFactory) New() Normalizer {
	return &envStemmer{
		env:  snowballstem.NewEnv(""),
		stem: f.stem,
	}
}

func newEnvFactory(name string, params map[string]string) (Factory, error) {
	if err := checkParams(name, params); err != nil {
		return nil, err
	}
	return &envFactory{name: name, stem: envLanguages[name]}, nil
}

// ----------------------

func newPorterFactory(name string, params map[string]string) (Factory, error) {
	if err := checkParams(name, params); err != nil {
		return nil, err
	}
	return &statelessFactory{
		name: name,
		normalizer: funcStemmer(func(word string) (string, error) {
			return porterstemmer.StemString(word), nil
		}),
	}, nil
}
