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
	"fmt"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

func newGolemFactory(name string, params map[string]string) (Factory, error) {
	if err := checkParams(name, params); err != nil {
		return nil, err
	}
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize golem lemmatizer: %w", err)
	}
	// golem's lookup is read-only so a single instance can be shared
	return &statelessFactory{
		name: name,
		normalizer: funcStemmer(func(word string) (string, error) {
			return lemmatizer.Lemma(word), nil
		}),
	}, nil
}
