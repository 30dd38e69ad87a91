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

package merror

import (
	"encoding/json"
	"fmt"
)

// ConfigError reports an invalid or incomplete configuration.
// It is always detected before anything is loaded.
type ConfigError struct {
	Msg string
}

func (err ConfigError) Error() string {
	return err.Msg
}

func (err ConfigError) MarshalJSON() ([]byte, error) {
	if err.Msg != "" {
		return json.Marshal(err.Msg)
	}
	return json.Marshal(nil)
}

func NewConfigError(format string, args ...any) ConfigError {
	return ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// ----------------------------

// LoadError wraps an I/O or store failure which aborted
// a dictionary load.
type LoadError struct {
	Source string
	Err    error
}

func (err LoadError) Error() string {
	if err.Source != "" {
		return fmt.Sprintf("failed to load dictionary %s: %s", err.Source, err.Err)
	}
	return fmt.Sprintf("failed to load dictionary: %s", err.Err)
}

func (err LoadError) Unwrap() error {
	return err.Err
}

func (err LoadError) MarshalJSON() ([]byte, error) {
	return json.Marshal(err.Error())
}

// ----------------------------

type InputError struct {
	Msg string
}

func (err InputError) Error() string {
	return err.Msg
}

func (err InputError) MarshalJSON() ([]byte, error) {
	if err.Msg != "" {
		return json.Marshal(err.Msg)
	}
	return json.Marshal(nil)
}

// ----------------------------

type InternalError struct {
	Msg string
}

func (err InternalError) Error() string {
	return err.Msg
}

func (err InternalError) MarshalJSON() ([]byte, error) {
	if err.Msg != "" {
		return json.Marshal(err.Msg)
	}
	return json.Marshal(nil)
}

// -----------------

func PanicValueToErr(v any) (err error) {
	switch tr := v.(type) {
	case error:
		err = fmt.Errorf("recovered panic: %w", tr)
	case string:
		err = fmt.Errorf("recovered panic: %s", tr)
	default:
		err = fmt.Errorf("recovered panic from an error of type %T", v)
	}
	return
}
