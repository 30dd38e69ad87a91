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

package cnf

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"lemmad/lemmatizer"
	"lemmad/rdb"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/hltscl"
	"github.com/rs/zerolog/log"
)

const (
	dfltServerReadTimeoutSecs  = 10
	dfltServerWriteTimeoutSecs = 30
	dfltListenAddress          = "127.0.0.1"
	dfltListenPort             = 8089
	dfltTimeZone               = "Europe/Prague"
	dfltAuthHeaderName         = "X-Api-Key"
	dfltMaxTextLength          = 1024 * 1024
	dfltLogLevel               = "info"
)

// Conf is a global configuration of the app
type Conf struct {
	ListenAddress          string              `json:"listenAddress"`
	PublicURL              string              `json:"publicUrl"`
	ListenPort             int                 `json:"listenPort"`
	ServerReadTimeoutSecs  int                 `json:"serverReadTimeoutSecs"`
	ServerWriteTimeoutSecs int                 `json:"serverWriteTimeoutSecs"`
	CorsAllowedOrigins     []string            `json:"corsAllowedOrigins"`
	Lemmatizer             *lemmatizer.Conf    `json:"lemmatizer"`
	Keywords               []string            `json:"keywords"`
	LowercaseInput         bool                `json:"lowercaseInput"`
	MaxTextLength          int                 `json:"maxTextLength"`
	Redis                  *rdb.Conf           `json:"redis"`
	TimescaleDB            *hltscl.PgConf      `json:"timescaleDb"`
	Logging                logging.LoggingConf `json:"logging"`
	TimeZone               string              `json:"timeZone"`
	AuthHeaderName         string              `json:"authHeaderName"`
	AuthTokens             []string            `json:"authTokens"`

	srcPath string
}

func (conf *Conf) IsDebugMode() bool {
	return conf.Logging.Level.IsDebugMode()
}

func (conf *Conf) TimezoneLocation() *time.Location {
	// we can ignore the error here as we always call c.Validate()
	// first (which also tries to load the location and report possible
	// error)
	loc, _ := time.LoadLocation(conf.TimeZone)
	return loc
}

// GetSourcePath returns an absolute path of a file
// the config was loaded from.
func (conf *Conf) GetSourcePath() string {
	if filepath.IsAbs(conf.srcPath) {
		return conf.srcPath
	}
	var cwd string
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "[failed to get working dir]"
	}
	return filepath.Join(cwd, conf.srcPath)
}

// resolveDictionaryPaths makes relative dictionary paths
// relative to the directory of the config file.
func (conf *Conf) resolveDictionaryPaths() {
	if conf.Lemmatizer == nil || conf.srcPath == "" {
		return
	}
	confDir := filepath.Dir(conf.GetSourcePath())
	for i, path := range conf.Lemmatizer.Dictionaries {
		if !filepath.IsAbs(path) {
			conf.Lemmatizer.Dictionaries[i] = filepath.Join(confDir, path)
		}
	}
}

func loadConfig(path string) (*Conf, error) {
	if path == "" {
		return nil, errors.New("path not specified")
	}
	rawData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var conf Conf
	conf.srcPath = path
	if err := json.Unmarshal(rawData, &conf); err != nil {
		return nil, err
	}
	conf.resolveDictionaryPaths()
	return &conf, nil
}

func LoadConfig(path string) *Conf {
	conf, err := loadConfig(path)
	if err != nil {
		log.Fatal().Err(err).Msg("Cannot load config")
	}
	return conf
}

func validateAndDefaults(conf *Conf) error {
	if conf.Logging.Level == "" {
		conf.Logging.Level = dfltLogLevel
		log.Warn().Msgf("logging.level not specified, using default: %s", dfltLogLevel)
	}
	if !conf.Logging.Level.IsValid() {
		return fmt.Errorf("invalid logging level `%s`", conf.Logging.Level)
	}
	if conf.ListenAddress == "" {
		conf.ListenAddress = dfltListenAddress
		log.Warn().Msgf("listenAddress not specified, using default: %s", dfltListenAddress)
	}
	if conf.ListenPort == 0 {
		conf.ListenPort = dfltListenPort
		log.Warn().Msgf("listenPort not specified, using default: %d", dfltListenPort)
	}
	if conf.ServerReadTimeoutSecs == 0 {
		conf.ServerReadTimeoutSecs = dfltServerReadTimeoutSecs
		log.Warn().Msgf(
			"serverReadTimeoutSecs not specified, using default: %d",
			dfltServerReadTimeoutSecs,
		)
	}
	if conf.ServerWriteTimeoutSecs == 0 {
		conf.ServerWriteTimeoutSecs = dfltServerWriteTimeoutSecs
		log.Warn().Msgf(
			"serverWriteTimeoutSecs not specified, using default: %d",
			dfltServerWriteTimeoutSecs,
		)
	}
	if conf.PublicURL == "" {
		conf.PublicURL = fmt.Sprintf("http://%s:%d", conf.ListenAddress, conf.ListenPort)
		log.Warn().Str("address", conf.PublicURL).Msg("publicUrl not set, using listenAddress")
	}
	if conf.MaxTextLength <= 0 {
		conf.MaxTextLength = dfltMaxTextLength
		log.Warn().Msgf("maxTextLength not specified, using default: %d", dfltMaxTextLength)
	}
	if conf.AuthHeaderName == "" {
		conf.AuthHeaderName = dfltAuthHeaderName
		log.Warn().
			Str("authHeaderName", dfltAuthHeaderName).
			Msg("auth header name not specified, using default")
	}
	if len(conf.AuthTokens) == 0 {
		log.Warn().Msg("no auth tokens specified, the reload action will be disabled")
	}
	if conf.Lemmatizer == nil {
		return errors.New("missing `lemmatizer` section")
	}
	if err := conf.Lemmatizer.Validate(); err != nil {
		return fmt.Errorf("invalid `lemmatizer` section: %w", err)
	}
	if err := conf.Lemmatizer.ValidateSources(); err != nil {
		return fmt.Errorf("invalid `lemmatizer` section: %w", err)
	}
	if conf.Redis != nil {
		if err := conf.Redis.ValidateAndDefaults(); err != nil {
			return fmt.Errorf("invalid `redis` section: %w", err)
		}
	}
	if conf.TimeZone == "" {
		conf.TimeZone = dfltTimeZone
		log.Warn().
			Str("timeZone", dfltTimeZone).
			Msg("time zone not specified, using default")
	}
	if _, err := time.LoadLocation(conf.TimeZone); err != nil {
		return fmt.Errorf("invalid time zone: %w", err)
	}
	return nil
}

func ValidateAndDefaults(conf *Conf) {
	if err := validateAndDefaults(conf); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
}
