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

package monitoring

import (
	"context"
	"time"

	"github.com/czcorpus/hltscl"
	"github.com/rs/zerolog/log"
)

/*
Expected tables:

create table lemmad_requests (
  "time" timestamp with time zone NOT NULL,
  num_tokens int,
  num_hits int,
  num_expansions int,
  num_fallbacks int,
  num_errors int,
  duration_secs float
);
select create_hypertable('lemmad_requests', 'time');

create table lemmad_endpoints (
	"time" timestamp with time zone NOT NULL,
	endpoint text,
	num_calls int
);
select create_hypertable('lemmad_endpoints', 'time');

*/

const (
	requestsTable  = "lemmad_requests"
	endpointsTable = "lemmad_endpoints"
)

type TimescaleDBWriter struct {
	tableWriter   *hltscl.TableWriter
	opsDataCh     chan<- hltscl.Entry
	errCh         <-chan hltscl.WriteError
	epTableWriter *hltscl.TableWriter
	epDataCh      chan<- hltscl.Entry
	epErrCh       <-chan hltscl.WriteError
	location      *time.Location
}

func (sw *TimescaleDBWriter) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("about to close StatusWriter")
				return
			case err := <-sw.errCh:
				log.Error().
					Err(err.Err).
					Str("entry", err.Entry.String()).
					Str("table", requestsTable).
					Msg("error writing data to TimescaleDB")
			case err := <-sw.epErrCh:
				log.Error().
					Err(err.Err).
					Str("entry", err.Entry.String()).
					Str("table", endpointsTable).
					Msg("error writing data to TimescaleDB")
			}
		}
	}()
}

func (sw *TimescaleDBWriter) Stop(ctx context.Context) error {
	log.Warn().Msg("stopping StatusWriter")
	return nil
}

func (sw *TimescaleDBWriter) Write(item RequestLog) {
	if sw.tableWriter == nil {
		return
	}
	var numErr int
	if item.HasError() {
		numErr++
	}
	sw.opsDataCh <- *sw.tableWriter.NewEntry(item.End.In(sw.location)).
		Int("num_tokens", item.Stats.Tokens).
		Int("num_hits", item.Stats.Hits).
		Int("num_expansions", item.Stats.Expansions).
		Int("num_fallbacks", item.Stats.Fallbacks).
		Int("num_errors", numErr).
		Float("duration_secs", item.TimeSpent().Seconds())

	sw.epDataCh <- *sw.epTableWriter.NewEntry(item.End.In(sw.location)).
		Str("endpoint", item.Endpoint).
		Int("num_calls", 1)
}

func NewTimescaleDBWriter(
	ctx context.Context,
	conf hltscl.PgConf,
	tz *time.Location,
) (*TimescaleDBWriter, error) {

	conn, err := hltscl.CreatePool(conf)
	if err != nil {
		return nil, err
	}
	twriter := hltscl.NewTableWriter(conn, requestsTable, "time", tz)
	opsDataCh, errCh := twriter.Activate(
		ctx,
		hltscl.WithTimeout(20*time.Second),
	)

	epwriter := hltscl.NewTableWriter(conn, endpointsTable, "time", tz)
	epDataCh, epErrCh := epwriter.Activate(
		ctx,
		hltscl.WithTimeout(20*time.Second),
	)

	return &TimescaleDBWriter{
		tableWriter:   twriter,
		opsDataCh:     opsDataCh,
		errCh:         errCh,
		epTableWriter: epwriter,
		epDataCh:      epDataCh,
		epErrCh:       epErrCh,
		location:      tz,
	}, nil
}
