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

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/czcorpus/cnc-gokit/collections"
	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"lemmad/cnf"
	"lemmad/dict"
	"lemmad/general"
	"lemmad/lemmatizer"
	"lemmad/rdb"
)

const (
	redisConnectionTestTimeout = 30 * time.Second
)

var (
	version   string
	buildDate string
	gitCommit string
)

type service interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
}

func getRequestOrigin(ctx *gin.Context) string {
	currOrigin, ok := ctx.Request.Header["Origin"]
	if ok {
		return currOrigin[0]
	}
	return ""
}

func additionalLogEvents() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		logging.AddLogEvent(ctx, "userAgent", ctx.Request.UserAgent())
		if word := ctx.Param("word"); word != "" {
			logging.AddLogEvent(ctx, "word", word)
		}
		ctx.Next()
	}
}

func CORSMiddleware(conf *cnf.Conf) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var allowedOrigin string
		currOrigin := getRequestOrigin(ctx)
		for _, origin := range conf.CorsAllowedOrigins {
			if currOrigin == origin || origin == "*" {
				allowedOrigin = currOrigin
				break
			}
		}
		if allowedOrigin != "" {
			ctx.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			ctx.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			ctx.Writer.Header().Set(
				"Access-Control-Allow-Headers",
				"Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With",
			)
			ctx.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		}

		if ctx.Request.Method == "OPTIONS" {
			ctx.AbortWithStatus(204)
			return
		}
		ctx.Next()
	}
}

func AuthRequired(conf *cnf.Conf) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if len(conf.AuthTokens) == 0 || !collections.SliceContains(conf.AuthTokens, ctx.GetHeader(conf.AuthHeaderName)) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		ctx.Next()
	}
}

// newLoader creates a function loading a lemmatizer according
// to the configuration. With Redis configured, the raw entries
// may be accumulated there and the finished tables can be cached.
func newLoader(conf *cnf.Conf, radapter *rdb.Adapter) func() (*lemmatizer.Factory, error) {
	return func() (*lemmatizer.Factory, error) {
		if radapter == nil {
			return lemmatizer.Load(*conf.Lemmatizer, nil)
		}
		var store dict.Store
		if conf.Redis.AccumulateEntries {
			store = radapter.NewDictStore()
		}
		if conf.Redis.CacheTables {
			return lemmatizer.LoadCached(*conf.Lemmatizer, store, radapter)
		}
		return lemmatizer.Load(*conf.Lemmatizer, store)
	}
}

func connectRedis(conf *cnf.Conf) *rdb.Adapter {
	if conf.Redis == nil {
		return nil
	}
	radapter := rdb.NewAdapter(conf.Redis)
	if err := radapter.TestConnection(redisConnectionTestTimeout); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	return radapter
}

func main() {
	version := general.VersionInfo{
		Version:   general.CleanVersionInfo(version),
		BuildDate: general.CleanVersionInfo(buildDate),
		GitCommit: general.CleanVersionInfo(gitCommit),
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "LEMMAD - a dictionary based lemmatization service\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n\t%s [options] server [config.json]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] lemmatize [config.json] < text.txt\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] lookup [config.json] word1 [word2 ...]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] test [config.json]\n\t", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "%s [options] version\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	noRedis := flag.Bool("no-redis", false, "do not use Redis even if configured")
	flag.Parse()
	action := flag.Arg(0)
	if action == "version" {
		fmt.Println(version.String())
		return
	}
	conf := cnf.LoadConfig(flag.Arg(1))
	if *noRedis {
		conf.Redis = nil
	}

	if action == "test" {
		cnf.ValidateAndDefaults(conf)
		log.Info().Msg("config OK")
		return
	}

	cnf.ValidateAndDefaults(conf)
	if action == "server" {
		logging.SetupLogging(conf.Logging)

	} else {
		// CLI actions write results to stdout so logs go to stderr
		logging.SetupLogging(logging.LoggingConf{Level: conf.Logging.Level})
	}

	switch action {
	case "server":
		log.Info().Msg("Starting LEMMAD")
		runApiServer(conf, version)
	case "lemmatize":
		runLemmatize(conf, os.Stdin, os.Stdout)
	case "lookup":
		var words []string
		if flag.NArg() > 2 {
			words = flag.Args()[2:]
		}
		runLookup(conf, words, os.Stdout)
	default:
		log.Fatal().Msgf("Unknown action %s", action)
	}
}
