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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"lemmad/merror"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func loadTable(t *testing.T, conf *Conf) *Table {
	table, _, err := Load(conf, nil)
	require.NoError(t, err)
	return table
}

func assertLookup(t *testing.T, table *Table, word string, expected ...string) {
	lemmas, ok := table.Lookup(word)
	if len(expected) == 0 {
		assert.False(t, ok, "expected no entry for %s, got %v", word, lemmas)
		return
	}
	assert.True(t, ok, "expected an entry for %s", word)
	assert.Equal(t, expected, lemmas)
}

func TestLoadWithoutClasses(t *testing.T) {
	table, stats, err := Load(plainConf(), nil)
	require.NoError(t, err)
	assertLookup(t, table, "sykler", "sykle", "sykkel")
	assertLookup(t, table, "bücher", "buch")
	assertLookup(t, table, "eldre", "gammel")
	assertLookup(t, table, "fragen", "frage")
	assertLookup(t, table, "kort", "korte")
	assertLookup(t, table, "abc")
	assertLookup(t, table, "norsk-engelsk")
	assertLookup(t, table, "to ord")
	assert.Equal(t, 18, stats.Lines)
	assert.Equal(t, 12, stats.Accepted)
	assert.Equal(t, 9, stats.Words)
	assert.Equal(t, 9, stats.Entries)
	assert.Equal(t, 9, table.Len())
}

func TestLoadWithClasses(t *testing.T) {
	table := loadTable(t, classConf("noun", "verb"))
	assertLookup(t, table, "sykler", "sykle", "sykkel")
	assertLookup(t, table, "eldre")
	assertLookup(t, table, "fragen", "frage")
	assertLookup(t, table, "kort", "korte")
	assert.Equal(t, 8, table.Len())
}

func TestLoadStoringTags(t *testing.T) {
	conf := classConf("noun", "verb")
	conf.StorePOSTag = true
	table := loadTable(t, conf)
	assertLookup(t, table, "sykler", "sykle$1", "sykkel$0")
	assertLookup(t, table, "fragen", "fragen$1", "frage$0")
	assertLookup(t, table, "kort", "korte$1")
}

func TestLoadWithReduction(t *testing.T) {
	conf := classConf("noun", "verb")
	conf.ReduceTo = []string{"noun"}
	table := loadTable(t, conf)
	assertLookup(t, table, "sykler", "sykkel")
	assertLookup(t, table, "fragen", "frage")
	assertLookup(t, table, "kort", "korte")

	conf = classConf("noun", "verb")
	conf.ReduceTo = []string{"verb", "noun"}
	table = loadTable(t, conf)
	assertLookup(t, table, "sykler", "sykle")
	assertLookup(t, table, "fragen", "frage")
}

func TestLoadIsDeterministic(t *testing.T) {
	t1 := loadTable(t, plainConf())
	t2 := loadTable(t, plainConf())
	t1.ForEach(func(word string, lemmas []string) bool {
		other, ok := t2.Lookup(word)
		assert.True(t, ok)
		assert.Equal(t, lemmas, other)
		return true
	})
	assert.Equal(t, t1.Len(), t2.Len())
}

func TestLoadMissingSource(t *testing.T) {
	conf := plainConf()
	conf.Dictionaries = []string{"testdata/dictionary.txt", "testdata/missing.txt"}
	table, _, err := Load(conf, nil)
	assert.Nil(t, table)
	var loadErr merror.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "testdata/missing.txt", loadErr.Source)
}

func TestLoadInvalidConf(t *testing.T) {
	conf := plainConf()
	conf.WordColumn = NoColumn
	_, _, err := Load(conf, nil)
	var confErr merror.ConfigError
	assert.True(t, errors.As(err, &confErr))
}

func TestLoadGzipSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.txt.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("sykle\tsykler\nsykkel\tsykler\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	conf := plainConf()
	conf.Dictionaries = []string{path}
	assertLookup(t, loadTable(t, conf), "sykler", "sykle", "sykkel")
}

func TestLoadZipSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	_, err = zw.Create("data/")
	require.NoError(t, err)
	w, err := zw.Create("data/verbs.txt")
	require.NoError(t, err)
	// no trailing newline - the next entry must not be glued to this line
	_, err = w.Write([]byte("sykle\tsykler"))
	require.NoError(t, err)
	w, err = zw.Create("data/nouns.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("sykkel\tsykler\nkatze\tkatzen\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	conf := plainConf()
	conf.Dictionaries = []string{path}
	table := loadTable(t, conf)
	assertLookup(t, table, "sykler", "sykle", "sykkel")
	assertLookup(t, table, "katzen", "katze")
}

func TestLoadLatin1Source(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dict-latin1.txt")
	data, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte("buch\tbücher\nhaus\thäuser\n"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	conf := plainConf()
	conf.Dictionaries = []string{path}
	conf.Charset = "ISO-8859-1"
	table := loadTable(t, conf)
	assertLookup(t, table, "bücher", "buch")
	assertLookup(t, table, "häuser", "haus")
}
