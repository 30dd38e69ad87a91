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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// ResolveCharset finds a decoder for an IANA charset name.
// For UTF-8 (and an empty name), nil encoding is returned
// as no decoding is needed.
func ResolveCharset(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("charset %s not supported", name)
	}
	return enc, nil
}

func decoded(r io.Reader, enc encoding.Encoding) io.Reader {
	if enc == nil {
		return r
	}
	return transform.NewReader(r, enc.NewDecoder())
}

// ReadSource opens a dictionary file and passes its decoded contents to fn.
// Files ending with `.gz` are gunzipped, files ending with `.zip` are
// treated as archives and fn is called once per each regular file
// inside in the archive order.
func ReadSource(path string, enc encoding.Encoding, fn func(name string, r io.Reader) error) error {
	if strings.HasSuffix(path, ".zip") {
		return readZipSource(path, enc, fn)
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer gz.Close()
		return fn(path, decoded(gz, enc))
	}
	return fn(path, decoded(f, enc))
}

func readZipSource(path string, enc encoding.Encoding, fn func(name string, r io.Reader) error) error {
	arch, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("failed to open zip archive: %w", err)
	}
	defer arch.Close()
	for _, item := range arch.File {
		if item.FileInfo().IsDir() {
			continue
		}
		if err := readZipItem(path, item, enc, fn); err != nil {
			return err
		}
	}
	return nil
}

func readZipItem(path string, item *zip.File, enc encoding.Encoding, fn func(name string, r io.Reader) error) error {
	rc, err := item.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s in archive: %w", item.Name, err)
	}
	defer rc.Close()
	return fn(path+":"+item.Name, decoded(rc, enc))
}
