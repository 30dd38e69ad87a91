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

// Package stemmer provides algorithmic word normalizers used
// as a fallback for words missing in a lemma dictionary.
package stemmer

import (
	"slices"
	"strconv"

	"lemmad/merror"
)

const (
	IdentityName = "identity"
)

// Normalizer turns a word into its normalized form. An implementation
// may keep internal state so a single instance must not be shared
// by concurrently processed token streams.
type Normalizer interface {
	Stem(word string) (string, error)
}

// Factory produces normalizers of a single kind. A Factory is safe
// for concurrent use.
type Factory interface {
	Name() string
	New() Normalizer
}

type constructor func(name string, params map[string]string) (Factory, error)

var registry = map[string]constructor{
	IdentityName: newIdentityFactory,
	"porter":     newPorterFactory,
	"golem-en":   newGolemFactory,
}

func init() {
	for code := range lengthLanguages {
		registry[code] = newLengthFactory
	}
	for code := range snowballLanguages {
		registry[code] = newSnowballFactory
	}
	for code := range envLanguages {
		registry[code] = newEnvFactory
	}
}

// NewFactory creates a factory for a normalizer identified by name.
// Unknown names and unsupported parameters are reported as merror.ConfigError.
func NewFactory(name string, params map[string]string) (Factory, error) {
	cons, ok := registry[name]
	if !ok {
		return nil, merror.NewConfigError("unsupported fallback stemmer `%s`", name)
	}
	return cons(name, params)
}

// Names returns all supported normalizer names sorted
func Names() []string {
	ans := make([]string, 0, len(registry))
	for k := range registry {
		ans = append(ans, k)
	}
	slices.Sort(ans)
	return ans
}

func checkParams(name string, params map[string]string, allowed ...string) error {
	for k := range params {
		if !slices.Contains(allowed, k) {
			return merror.NewConfigError("unknown parameter `%s` for fallback stemmer `%s`", k, name)
		}
	}
	return nil
}

func boolParam(name string, params map[string]string, key string, dflt bool) (bool, error) {
	v, ok := params[key]
	if !ok {
		return dflt, nil
	}
	ans, err := strconv.ParseBool(v)
	if err != nil {
		return false, merror.NewConfigError("invalid value `%s` of `%s` for fallback stemmer `%s`", v, key, name)
	}
	return ans, nil
}

// ----------------------

// funcStemmer adapts a stateless `word -> word` function
type funcStemmer func(word string) (string, error)

func (fn funcStemmer) Stem(word string) (string, error) {
	return fn(word)
}

// statelessFactory shares a single stateless normalizer
type statelessFactory struct {
	name       string
	normalizer Normalizer
}

func (f *statelessFactory) Name() string {
	return f.name
}

func (f *statelessFactory) New() Normalizer {
	return f.normalizer
}

func newIdentityFactory(name string, params map[string]string) (Factory, error) {
	if err := checkParams(name, params); err != nil {
		return nil, err
	}
	return &statelessFactory{
		name: name,
		normalizer: funcStemmer(func(word string) (string, error) {
			return word, nil
		}),
	}, nil
}
