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
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"lemmad/dict"
	"lemmad/merror"
	"lemmad/stemmer"
)

const (
	argDictionaries      = "dictionaries"
	argCharset           = "charset"
	argMinLength         = "minLength"
	argLemmaPos          = "lemmaPos"
	argWordPos           = "wordPos"
	argWordClassPos      = "wordClassPos"
	argWordClasses       = "wordClasses"
	argReduceTo          = "reduceTo"
	argStorePosTag       = "storePosTag"
	argStemFallbackLang  = "stemFallbackLang"
	argStemFallbackParam = "stemFallback."
)

// FallbackConf selects a stemmer used for words
// missing in the dictionary.
type FallbackConf struct {
	Name   string            `json:"name"`
	Params map[string]string `json:"params,omitempty"`
}

// Conf is a complete lemmatizer configuration. In JSON, the
// dictionary options and the `fallback` object share a single
// level.
type Conf struct {
	dict.Conf
	Fallback *FallbackConf `json:"fallback,omitempty"`
}

func (conf *Conf) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return merror.NewConfigError("invalid lemmatizer configuration: %s", err)
	}
	var fallback *FallbackConf
	if v, ok := raw["fallback"]; ok {
		delete(raw, "fallback")
		if !bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			fallback = new(FallbackConf)
			dec := json.NewDecoder(bytes.NewReader(v))
			dec.DisallowUnknownFields()
			if err := dec.Decode(fallback); err != nil {
				return merror.NewConfigError("invalid fallback configuration: %s", err)
			}
		}
	}
	rest, err := json.Marshal(raw)
	if err != nil {
		return merror.NewConfigError("invalid lemmatizer configuration: %s", err)
	}
	var dconf dict.Conf
	if err := dconf.UnmarshalJSON(rest); err != nil {
		return err
	}
	conf.Conf = dconf
	conf.Fallback = fallback
	return nil
}

// Validate checks both the dictionary part and
// the fallback stemmer selection.
func (conf *Conf) Validate() error {
	if err := conf.Conf.Validate(); err != nil {
		return err
	}
	if conf.Fallback != nil {
		if _, err := stemmer.NewFactory(conf.Fallback.Name, conf.Fallback.Params); err != nil {
			return err
		}
	}
	return nil
}

func (conf *Conf) String() string {
	if conf.Fallback == nil {
		return fmt.Sprintf("lemmatizer.Conf{%s, fallback: none}", conf.Conf.String())
	}
	return fmt.Sprintf("lemmatizer.Conf{%s, fallback: %s}", conf.Conf.String(), conf.Fallback.Name)
}

// ---------------------------

func splitList(v string) []string {
	items := strings.Split(v, ",")
	ans := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			ans = append(ans, item)
		}
	}
	return ans
}

// flatArgs consumes arguments one by one so the unused ones can be
// reported at the end.
type flatArgs map[string]string

func (fa flatArgs) str(key, dflt string) string {
	v, ok := fa[key]
	if !ok {
		return dflt
	}
	delete(fa, key)
	return v
}

func (fa flatArgs) integer(key string, dflt int) (int, error) {
	v, ok := fa[key]
	if !ok {
		return dflt, nil
	}
	delete(fa, key)
	ans, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, merror.NewConfigError("parameter %s must be an integer, got `%s`", key, v)
	}
	return ans, nil
}

func (fa flatArgs) boolean(key string, dflt bool) (bool, error) {
	v, ok := fa[key]
	if !ok {
		return dflt, nil
	}
	delete(fa, key)
	ans, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, merror.NewConfigError("parameter %s must be a boolean, got `%s`", key, v)
	}
	return ans, nil
}

// ConfFromArgs creates a validated configuration from flat
// string arguments (e.g. `wordPos=1`). Fallback stemmer parameters
// are passed as `stemFallback.<param>`. Any argument not recognized
// is reported as an error.
func ConfFromArgs(args map[string]string) (Conf, error) {
	fa := flatArgs(maps.Clone(args))
	if fa == nil {
		fa = make(flatArgs)
	}
	var conf Conf
	var err error
	dicts, ok := fa[argDictionaries]
	if !ok {
		return conf, merror.NewConfigError("missing required parameter %s", argDictionaries)
	}
	delete(fa, argDictionaries)
	conf.Conf = dict.DefaultConf()
	conf.Dictionaries = splitList(dicts)
	conf.Charset = fa.str(argCharset, dict.DfltCharset)
	if conf.MinLength, err = fa.integer(argMinLength, dict.DfltMinLength); err != nil {
		return conf, err
	}
	if conf.LemmaColumn, err = fa.integer(argLemmaPos, dict.NoColumn); err != nil {
		return conf, err
	}
	if conf.WordColumn, err = fa.integer(argWordPos, dict.NoColumn); err != nil {
		return conf, err
	}
	if conf.POSColumn, err = fa.integer(argWordClassPos, dict.NoColumn); err != nil {
		return conf, err
	}
	if v, ok := fa[argWordClasses]; ok {
		conf.POSClasses = splitList(fa.str(argWordClasses, v))
	}
	if v, ok := fa[argReduceTo]; ok {
		conf.ReduceTo = splitList(fa.str(argReduceTo, v))
	}
	if conf.StorePOSTag, err = fa.boolean(argStorePosTag, false); err != nil {
		return conf, err
	}
	if lang, ok := fa[argStemFallbackLang]; ok {
		delete(fa, argStemFallbackLang)
		conf.Fallback = &FallbackConf{Name: strings.TrimSpace(lang)}
	}
	for k, v := range fa {
		if !strings.HasPrefix(k, argStemFallbackParam) || conf.Fallback == nil {
			continue
		}
		if conf.Fallback.Params == nil {
			conf.Fallback.Params = make(map[string]string)
		}
		conf.Fallback.Params[strings.TrimPrefix(k, argStemFallbackParam)] = v
		delete(fa, k)
	}
	if len(fa) > 0 {
		unknown := slices.Sorted(maps.Keys(fa))
		return conf, merror.NewConfigError("Unknown parameters: %s", strings.Join(unknown, ", "))
	}
	if err := conf.Validate(); err != nil {
		return conf, err
	}
	return conf, nil
}
