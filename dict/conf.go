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

package dict

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"lemmad/merror"

	"github.com/czcorpus/cnc-gokit/fs"
)

const (
	DfltMinLength = 3
	DfltCharset   = "UTF-8"
	NoColumn      = -1
)

// Conf specifies how dictionary sources are parsed and
// reduced into a lookup table.
type Conf struct {

	// Dictionaries lists the dictionary sources. They are read
	// in the listed order as if they were a single stream.
	Dictionaries []string `json:"dictionaries"`

	// Charset is an IANA name of the sources' encoding
	Charset string `json:"charset"`

	WordColumn  int `json:"wordColumn"`
	LemmaColumn int `json:"lemmaColumn"`
	POSColumn   int `json:"posColumn"`

	// POSClasses enables class filtering. The order of the classes
	// also defines class indices used in tagged lemmas.
	POSClasses []string `json:"posClasses"`

	// ReduceTo is a priority list of classes a word with multiple
	// lemmas is reduced to.
	ReduceTo []string `json:"reduceTo"`

	// MinLength is a strict lower bound of a dictionary word length
	// (in characters).
	MinLength int `json:"minLength"`

	// StorePOSTag keeps the `$classIdx` suffix in the produced lemmas
	StorePOSTag bool `json:"storePosTag"`
}

// DefaultConf returns a configuration with all optional
// values set to defaults and the required columns unset.
func DefaultConf() Conf {
	return Conf{
		Charset:     DfltCharset,
		WordColumn:  NoColumn,
		LemmaColumn: NoColumn,
		POSColumn:   NoColumn,
		MinLength:   DfltMinLength,
	}
}

// UnmarshalJSON decodes the configuration strictly - unknown keys
// are reported as errors. Missing keys keep their default values.
func (conf *Conf) UnmarshalJSON(data []byte) error {
	type rawConf Conf
	tmp := rawConf(DefaultConf())
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&tmp); err != nil {
		return merror.NewConfigError("invalid dictionary configuration: %s", err)
	}
	*conf = Conf(tmp)
	return nil
}

func (conf *Conf) ReductionActive() bool {
	return len(conf.ReduceTo) > 0
}

// ClassIndex returns an index of a POS class or -1 if
// the class is not configured.
func (conf *Conf) ClassIndex(name string) int {
	return slices.Index(conf.POSClasses, name)
}

// ReductionTargets returns class indices of ReduceTo items.
// The method expects a validated configuration.
func (conf *Conf) ReductionTargets() []int {
	ans := make([]int, len(conf.ReduceTo))
	for i, v := range conf.ReduceTo {
		ans[i] = conf.ClassIndex(v)
	}
	return ans
}

// Validate checks the configuration without touching
// the dictionary sources.
func (conf *Conf) Validate() error {
	if len(conf.Dictionaries) == 0 {
		return merror.NewConfigError("no dictionaries specified")
	}
	if conf.WordColumn < 0 {
		return merror.NewConfigError("word column not properly set")
	}
	if conf.LemmaColumn < 0 {
		return merror.NewConfigError("lemma column not properly set")
	}
	if conf.MinLength < 0 {
		return merror.NewConfigError("minLength must be >= 0")
	}
	if _, err := ResolveCharset(conf.Charset); err != nil {
		return merror.NewConfigError("unsupported charset `%s`", conf.Charset)
	}
	for i, cls := range conf.POSClasses {
		if strings.TrimSpace(cls) == "" {
			return merror.NewConfigError("empty POS class name at position %d", i)
		}
	}
	if len(conf.POSClasses) > 0 && conf.POSColumn < 0 {
		return merror.NewConfigError("POS classes require a POS column")
	}
	if conf.StorePOSTag && (conf.POSColumn < 0 || len(conf.POSClasses) == 0) {
		return merror.NewConfigError("storing POS tags requires both a POS column and POS classes")
	}
	for _, target := range conf.ReduceTo {
		if conf.ClassIndex(target) < 0 {
			return merror.NewConfigError("reduction target `%s` is not among POS classes", target)
		}
	}
	return nil
}

// ValidateSources checks that all the configured dictionaries
// are existing files.
func (conf *Conf) ValidateSources() error {
	for _, path := range conf.Dictionaries {
		isFile, err := fs.IsFile(path)
		if err != nil {
			return merror.NewConfigError("failed to check dictionary %s: %s", path, err)
		}
		if !isFile {
			return merror.NewConfigError("dictionary %s not found", path)
		}
	}
	return nil
}

func (conf *Conf) String() string {
	return fmt.Sprintf(
		"dict.Conf{word: %d, lemma: %d, pos: %d, classes: %v, reduceTo: %v, minLength: %d, storePosTag: %t}",
		conf.WordColumn, conf.LemmaColumn, conf.POSColumn, conf.POSClasses, conf.ReduceTo,
		conf.MinLength, conf.StorePOSTag,
	)
}
