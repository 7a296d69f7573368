//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Copyright (C) 2025 Aaron Mathis aaron.mathis@gmail.com
//
// This file is part of DataProc.
//
// DataProc is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// DataProc is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with DataProc. If not, see https://www.gnu.org/licenses/.

// Package metrics records per-run counters for the processor and writes them
// in the Prometheus text format for node_exporter's textfile collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics holds all Prometheus metrics for a run. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	registry *prometheus.Registry

	Loads            *prometheus.CounterVec
	Exports          *prometheus.CounterVec
	RecordsProcessed prometheus.Counter
	RecordsDropped   prometheus.Counter
	LastRunTimestamp prometheus.Gauge
}

// New creates a Metrics set on its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Loads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dataproc_loads_total",
				Help: "Dataset load attempts by format and result",
			},
			[]string{"format", "result"},
		),
		Exports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dataproc_exports_total",
				Help: "Dataset export attempts by format and result",
			},
			[]string{"format", "result"},
		),
		RecordsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "dataproc_records_processed_total",
			Help: "Records examined by the processing step",
		}),
		RecordsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "dataproc_records_dropped_total",
			Help: "Records removed by the processing step",
		}),
		LastRunTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dataproc_last_run_timestamp_seconds",
			Help: "Unix time the last export finished",
		}),
	}
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordLoad counts a load attempt.
func (m *Metrics) RecordLoad(format string, err error) {
	if m == nil {
		return
	}
	m.Loads.WithLabelValues(format, result(err)).Inc()
}

// RecordExport counts an export attempt and stamps the run time on success.
func (m *Metrics) RecordExport(format string, err error) {
	if m == nil {
		return
	}
	m.Exports.WithLabelValues(format, result(err)).Inc()
	if err == nil {
		m.LastRunTimestamp.SetToCurrentTime()
	}
}

// RecordProcess counts records examined and dropped by one processing pass.
func (m *Metrics) RecordProcess(processed, dropped int) {
	if m == nil {
		return
	}
	m.RecordsProcessed.Add(float64(processed))
	m.RecordsDropped.Add(float64(dropped))
}

// WriteTextfile writes the current values to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}

func result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
