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
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"lemmad/cnf"
	"lemmad/general"
	"lemmad/handlers"
	"lemmad/monitoring"
	monitoringActions "lemmad/monitoring/handlers"
	"lemmad/stemmer"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type apiServer struct {
	server    *http.Server
	conf      *cnf.Conf
	version   general.VersionInfo
	actions   *handlers.Actions
	reqLogger *monitoring.RequestLogger
}

func mkServerInfo(conf *cnf.Conf, version general.VersionInfo) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		uniresp.WriteJSONResponse(
			ctx.Writer,
			map[string]any{
				"name":      "LEMMAD",
				"version":   version,
				"publicUrl": conf.PublicURL,
				"stemmers":  stemmer.Names(),
			},
		)
	}
}

func (api *apiServer) Start(ctx context.Context) {
	if !api.conf.IsDebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(additionalLogEvents())
	engine.Use(logging.GinMiddleware())
	engine.Use(uniresp.AlwaysJSONContentType())
	engine.Use(CORSMiddleware(api.conf))
	engine.NoMethod(uniresp.NoMethodHandler)
	engine.NoRoute(uniresp.NotFoundHandler)

	protected := engine.Group("/tools").Use(AuthRequired(api.conf))

	engine.GET("/", mkServerInfo(api.conf, api.version))

	engine.GET(
		"/lookup/:word", api.actions.Lookup)

	engine.GET(
		"/lemmatize", api.actions.Lemmatize)

	engine.POST(
		"/lemmatize", api.actions.Lemmatize)

	engine.GET(
		"/dictionary", api.actions.DictionaryInfo)

	engine.GET(
		"/dictionary/entries", api.actions.DictionaryEntries)

	if len(api.conf.AuthTokens) > 0 {
		protected.POST(
			"/reload", api.actions.Reload)

	} else {
		log.Warn().Msg("no auth tokens configured, endpoint /tools/reload will be disabled")
	}

	monActions := monitoringActions.NewActions(api.reqLogger)

	engine.GET(
		"/monitoring/usage", monActions.Usage)

	engine.GET(
		"/monitoring/usage/:endpoint", monActions.EndpointUsage)

	engine.GET(
		"/monitoring/recent", monActions.RecentRecords)

	log.Info().Msgf("starting to listen at %s:%d", api.conf.ListenAddress, api.conf.ListenPort)
	api.server = &http.Server{
		Handler:      engine,
		Addr:         fmt.Sprintf("%s:%d", api.conf.ListenAddress, api.conf.ListenPort),
		WriteTimeout: time.Duration(api.conf.ServerWriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(api.conf.ServerReadTimeoutSecs) * time.Second,
	}
	go func() {
		if err := api.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()
}

func (s *apiServer) Stop(ctx context.Context) error {
	log.Warn().Msg("shutting down LEMMAD HTTP API server")
	return s.server.Shutdown(ctx)
}

func runApiServer(
	conf *cnf.Conf,
	version general.VersionInfo,
) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	radapter := connectRedis(conf)
	if radapter != nil {
		defer radapter.Close()
	}
	loader := newLoader(conf, radapter)
	factory, err := loader()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load dictionaries")
		return
	}

	services := make([]service, 0, 3)
	var statusWriter monitoring.StatusWriter = &monitoring.NullStatusWriter{}
	if conf.TimescaleDB != nil {
		tsWriter, err := monitoring.NewTimescaleDBWriter(ctx, *conf.TimescaleDB, conf.TimezoneLocation())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize TimescaleDB writer")
			return
		}
		statusWriter = tsWriter
		services = append(services, tsWriter)

	} else {
		log.Info().Msg("TimescaleDB not configured, request statistics will be kept in memory only")
	}
	reqLogger := monitoring.NewRequestLogger(statusWriter)
	actions := handlers.NewActions(
		factory,
		loader,
		handlers.AnalysisConf{
			Keywords:       conf.Keywords,
			LowercaseInput: conf.LowercaseInput,
			MaxTextLength:  conf.MaxTextLength,
		},
		reqLogger,
	)
	server := newAPIServer(conf, version, actions, reqLogger)
	services = append(services, reqLogger, server)
	for _, m := range services {
		m.Start(ctx)
	}
	<-ctx.Done()
	log.Warn().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	for _, s := range services {
		wg.Add(1)
		go func(srv service) {
			defer wg.Done()
			if err := srv.Stop(shutdownCtx); err != nil {
				log.Error().Err(err).Type("service", srv).Msg("Error shutting down service")
			}
		}(s)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info().Msg("Graceful shutdown completed")
	case <-shutdownCtx.Done():
		log.Warn().Msg("Shutdown timed out")
	}
}

func newAPIServer(
	conf *cnf.Conf,
	version general.VersionInfo,
	actions *handlers.Actions,
	reqLogger *monitoring.RequestLogger,
) *apiServer {
	return &apiServer{
		conf:      conf,
		version:   version,
		actions:   actions,
		reqLogger: reqLogger,
	}
}
