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

// lengthStemmer adapts stemmers which inspect a character buffer
// and return the length of the stem. The result is always a prefix
// of the original word; changes made to the buffer are discarded.
type lengthStemmer struct {
	buf  []rune
	stem func(s []rune) int
}

func (ls *lengthStemmer) Stem(word string) (string, error) {
	ls.buf = append(ls.buf[:0], []rune(word)...)
	n := ls.stem(ls.buf)
	if n <= 0 || n >= len(ls.buf) {
		return word, nil
	}
	return string([]rune(word)[:n]), nil
}

type lengthFactory struct {
	name string
	stem func(s []rune) int
}

func (f *lengthFactory) Name() string {
	return f.name
}

func (f *lengthFactory) New() Normalizer {
	return &lengthStemmer{stem: f.stem}
}

// lengthLanguages maps codes to light and minimal stemmers
var lengthLanguages = map[string]func(s []rune) int{
	"en":         englishMinimalStem,
	"en-minimal": englishMinimalStem,
	"de":         germanMinimalStem,
	"no":         norwegianMinimalStem(true),
	"nb":         norwegianMinimalStem(false),
	"nn":         norwegianMinimalStem(true),
	"se":         swedishLightStem,
	"sv":         swedishLightStem,
}

func newLengthFactory(name string, params map[string]string) (Factory, error) {
	if err := checkParams(name, params); err != nil {
		return nil, err
	}
	return &lengthFactory{name: name, stem: lengthLanguages[name]}, nil
}

func endsWith(s []rune, suffix string) bool {
	sfx := []rune(suffix)
	if len(sfx) > len(s) {
		return false
	}
	for i, c := range sfx {
		if s[len(s)-len(sfx)+i] != c {
			return false
		}
	}
	return true
}

func endsWithAny(s []rune, suffixes ...string) bool {
	for _, sfx := range suffixes {
		if endsWith(s, sfx) {
			return true
		}
	}
	return false
}

// englishMinimalStem removes plural endings only
// (e.g. "cats" -> "cat", "ponies" -> "poni").
func englishMinimalStem(s []rune) int {
	n := len(s)
	if n < 3 || s[n-1] != 's' {
		return n
	}
	switch s[n-2] {
	case 'u', 's':
		return n
	case 'e':
		if n > 3 && s[n-3] == 'i' && s[n-4] != 'a' && s[n-4] != 'e' {
			s[n-3] = 'y'
			return n - 2
		}
		if s[n-3] == 'i' || s[n-3] == 'a' || s[n-3] == 'o' || s[n-3] == 'e' {
			return n
		}
	}
	return n - 1
}

// germanMinimalStem removes plural and case endings
// of words longer than four characters.
func germanMinimalStem(s []rune) int {
	n := len(s)
	if n < 5 {
		return n
	}
	for i, c := range s {
		switch c {
		case 'ä':
			s[i] = 'a'
		case 'ö':
			s[i] = 'o'
		case 'ü':
			s[i] = 'u'
		}
	}
	if n > 6 && endsWith(s, "nen") {
		return n - 3
	}
	if n > 5 {
		switch s[n-1] {
		case 'n', 's', 'r':
			if s[n-2] == 'e' {
				return n - 2
			}
		case 'e':
			if s[n-2] == 's' {
				return n - 2
			}
		}
	}
	switch s[n-1] {
	case 'n', 'e', 's', 'r':
		return n - 1
	}
	return n
}

// norwegianMinimalStem removes the genitive and the most common
// noun inflections. Nynorsk adds the -ane and -ar plurals.
func norwegianMinimalStem(nynorsk bool) func(s []rune) int {
	return func(s []rune) int {
		n := len(s)
		if n > 4 && s[n-1] == 's' {
			n--
		}
		w := s[:n]
		if n > 5 && (endsWith(w, "ene") || (nynorsk && endsWith(w, "ane"))) {
			return n - 3
		}
		if n > 4 && (endsWithAny(w, "er", "en", "et") || (nynorsk && endsWith(w, "ar"))) {
			return n - 2
		}
		if n > 3 {
			switch w[n-1] {
			case 'a', 'e':
				return n - 1
			}
		}
		return n
	}
}

// swedishLightStem removes common inflectional and derivational suffixes.
func swedishLightStem(s []rune) int {
	n := len(s)
	if n > 4 && s[n-1] == 's' {
		n--
	}
	w := s[:n]
	if n > 7 && endsWithAny(w, "elser", "heten") {
		return n - 5
	}
	if n > 6 && endsWithAny(w, "arne", "erna", "ande", "else", "aste", "orna", "aren") {
		return n - 4
	}
	if n > 5 && endsWithAny(w, "are", "ast", "het") {
		return n - 3
	}
	if n > 4 && endsWithAny(w, "ar", "er", "or", "en", "at", "te", "et") {
		return n - 2
	}
	if n > 3 {
		switch w[n-1] {
		case 't', 'a', 'e', 'n':
			return n - 1
		}
	}
	return n
}
