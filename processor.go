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

package dataproc

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/aaronlmathis/dataproc/config"
	"github.com/aaronlmathis/dataproc/core"
	"github.com/aaronlmathis/dataproc/filter"
	"github.com/aaronlmathis/dataproc/logging"
	"github.com/aaronlmathis/dataproc/metrics"
	"github.com/aaronlmathis/dataproc/readers"
	"github.com/aaronlmathis/dataproc/storage"
	"github.com/aaronlmathis/dataproc/writers"
)

// Package dataproc provides a small load, process, export pipeline.
//
// A Processor reads one document, optionally removes incomplete records, and
// writes the result. Calls are expected in that order:
//
//   p, err := dataproc.NewFromConfigFile("config.json", dataproc.WithLogger(logger))
//   if err != nil { return err }
//   if err := p.Load(ctx, "in.json"); err != nil { return err }
//   if _, err := p.Process(ctx); err != nil { return err }
//   if err := p.Export(ctx, "out.json"); err != nil { return err }
//
// Every failure is logged where it happens and returned as a *core.ProcessorError.

// ProcessorStats holds counters for a Processor's lifetime.
type ProcessorStats struct {
	Loads          int64
	LoadFailures   int64
	RecordsIn      int64
	RecordsKept    int64
	RecordsDropped int64
	Exports        int64
	ExportFailures int64
	BytesWritten   int64
	LastLoadTime   time.Time
	LastExportTime time.Time
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *logging.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithStore sets the storage used to open sources and destinations.
// The default is the local filesystem.
func WithStore(store storage.Store) Option {
	return func(p *Processor) {
		if store != nil {
			p.store = store
		}
	}
}

// WithMetrics records load, process and export counters on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Processor) {
		p.metrics = m
	}
}

// WithReader registers the decoder for a format, replacing any existing one.
func WithReader(format core.Format, reader core.DatasetReader) Option {
	return func(p *Processor) {
		p.readers[format] = reader
	}
}

// WithWriter registers the encoder for a format, replacing any existing one.
func WithWriter(format core.Format, writer core.DatasetWriter) Option {
	return func(p *Processor) {
		p.writers[format] = writer
	}
}

// WithFilter adds a record filter applied by Process to sequence datasets,
// after the incomplete-record filter when that is enabled.
func WithFilter(f core.Filter) Option {
	return func(p *Processor) {
		p.filters = append(p.filters, f)
	}
}

// Processor owns a configuration, the current dataset and the processed flag.
// It is not safe for concurrent use.
type Processor struct {
	cfg       *config.Config
	logger    *logging.Logger
	store     storage.Store
	metrics   *metrics.Metrics
	readers   map[core.Format]core.DatasetReader
	writers   map[core.Format]core.DatasetWriter
	filters   []core.Filter
	data      core.Dataset
	processed bool
	stats     ProcessorStats
}

// New creates a Processor for cfg. A nil cfg uses config.Default().
func New(cfg *config.Config, opts ...Option) *Processor {
	p := newProcessor(opts)
	if cfg == nil {
		cfg = config.Default()
	}
	p.setConfig(cfg)
	return p
}

// NewFromConfigFile creates a Processor from the configuration document at
// path. A missing document yields the defaults; a malformed one is an error.
func NewFromConfigFile(path string, opts ...Option) (*Processor, error) {
	p := newProcessor(opts)
	cfg, err := config.Load(path, p.logger)
	if err != nil {
		p.logger.Error("Failed to load config", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	p.setConfig(cfg)
	return p, nil
}

func newProcessor(opts []Option) *Processor {
	p := &Processor{
		logger: logging.NewNop(),
		store:  storage.NewLocal(),
		readers: map[core.Format]core.DatasetReader{
			core.FormatJSON: readers.NewJSONReader(),
			core.FormatCSV:  readers.NewCSVReader(),
		},
		writers: map[core.Format]core.DatasetWriter{
			core.FormatJSON: writers.NewJSONWriter(),
		},
		filters: make([]core.Filter, 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Processor) setConfig(cfg *config.Config) {
	p.cfg = cfg
	p.logger.Debug("Processor configured",
		zap.String("input_format", cfg.InputFormat),
		zap.String("output_format", cfg.OutputFormat),
		zap.Bool("validate", cfg.Validate),
		zap.Bool("remove_incomplete", cfg.RemoveIncomplete),
	)
}

// Load reads the dataset at source, choosing the decoder by suffix. The
// processed flag is cleared whether or not the load succeeds. On failure the
// previous dataset is kept.
func (p *Processor) Load(ctx context.Context, source string) error {
	p.processed = false
	p.stats.Loads++
	p.stats.LastLoadTime = time.Now()

	format := core.FormatFromPath(source)
	err := p.load(ctx, source, format)
	p.metrics.RecordLoad(format.String(), err)
	if err != nil {
		p.stats.LoadFailures++
		p.logger.Error("Failed to load data",
			zap.String("source", source),
			zap.Stringer("format", format),
			zap.Error(err),
		)
		return &core.ProcessorError{Op: "load", Path: source, Err: err}
	}

	p.logger.Info("Successfully loaded data", zap.String("source", source), zap.Stringer("format", format))
	return nil
}

func (p *Processor) load(ctx context.Context, source string, format core.Format) error {
	reader, ok := p.readers[format]
	if !ok {
		return core.ErrUnsupportedFormat
	}

	src := &lazySource{ctx: ctx, store: p.store, location: source}
	data, err := reader.ReadDataset(ctx, src)
	closeErr := src.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return closeErr
	}

	p.data = data
	return nil
}

// Process applies the configured filters and stores the result as the
// current dataset, which it also returns. Filtering only touches sequence
// datasets; anything else passes through. Without a loaded dataset it
// returns core.ErrNoData.
func (p *Processor) Process(ctx context.Context) (core.Dataset, error) {
	if p.data == nil {
		p.logger.Error("No data loaded, call Load first")
		return nil, &core.ProcessorError{Op: "process", Err: core.ErrNoData}
	}

	result := p.data
	filters := p.activeFilters()

	if seq, ok := core.Records(result); ok && len(filters) > 0 {
		kept, err := applyFilters(ctx, seq, filters)
		if err != nil {
			p.logger.Error("Failed to process data", zap.Error(err))
			return nil, &core.ProcessorError{Op: "process", Err: err}
		}

		dropped := len(seq) - len(kept)
		p.stats.RecordsIn += int64(len(seq))
		p.stats.RecordsKept += int64(len(kept))
		p.stats.RecordsDropped += int64(dropped)
		p.metrics.RecordProcess(len(seq), dropped)
		p.logger.Debug("Filtered records", zap.Int("kept", len(kept)), zap.Int("dropped", dropped))

		result = kept
	}

	p.data = result
	p.processed = true
	p.logger.Info("Data processing completed")
	return result, nil
}

func (p *Processor) activeFilters() []core.Filter {
	filters := make([]core.Filter, 0, len(p.filters)+1)
	if p.cfg.RemoveIncomplete {
		filters = append(filters, filter.Complete())
	}
	return append(filters, p.filters...)
}

// applyFilters keeps the elements of seq that every filter includes, in order.
// Elements that are not records are kept untouched.
func applyFilters(ctx context.Context, seq []interface{}, filters []core.Filter) ([]interface{}, error) {
	kept := make([]interface{}, 0, len(seq))

	for _, item := range seq {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		record, ok := core.AsRecord(item)
		if !ok {
			kept = append(kept, item)
			continue
		}

		include := true
		for _, f := range filters {
			var err error
			include, err = f.ShouldInclude(ctx, record)
			if err != nil {
				return nil, err
			}
			if !include {
				break
			}
		}
		if include {
			kept = append(kept, item)
		}
	}

	return kept, nil
}

// Export writes the current dataset to destination, choosing the encoder by
// suffix. If Process has not run since the last Load it is run first; its
// error is logged and otherwise ignored.
func (p *Processor) Export(ctx context.Context, destination string) error {
	if !p.processed {
		p.logger.Warn("Data has not been processed, running Process first")
		_, _ = p.Process(ctx)
	}

	p.stats.Exports++
	format := core.FormatFromPath(destination)
	n, err := p.export(ctx, destination, format)
	p.stats.BytesWritten += n
	p.metrics.RecordExport(format.String(), err)
	if err != nil {
		p.stats.ExportFailures++
		p.logger.Error("Failed to export data",
			zap.String("destination", destination),
			zap.Stringer("format", format),
			zap.Error(err),
		)
		return &core.ProcessorError{Op: "export", Path: destination, Err: err}
	}

	p.stats.LastExportTime = time.Now()
	p.logger.Info("Successfully exported data", zap.String("destination", destination), zap.Int64("bytes", n))
	return nil
}

func (p *Processor) export(ctx context.Context, destination string, format core.Format) (int64, error) {
	writer, ok := p.writers[format]
	if !ok {
		return 0, core.ErrUnsupportedFormat
	}

	w, err := p.store.Create(ctx, destination)
	if err != nil {
		return 0, err
	}

	cw := &countingWriter{w: w}
	writeErr := writer.WriteDataset(ctx, cw, p.data)
	closeErr := w.Close()
	if writeErr != nil {
		return cw.n, writeErr
	}
	return cw.n, closeErr
}

// Run loads source, processes it and exports to destination, stopping at the
// first failure.
func (p *Processor) Run(ctx context.Context, source, destination string) error {
	if err := p.Load(ctx, source); err != nil {
		return err
	}
	if _, err := p.Process(ctx); err != nil {
		return err
	}
	return p.Export(ctx, destination)
}

// Data returns the current dataset, or nil if nothing is loaded.
func (p *Processor) Data() core.Dataset {
	return p.data
}

// Processed reports whether Process has completed since the last Load.
func (p *Processor) Processed() bool {
	return p.processed
}

// Config returns the configuration the processor was built with.
func (p *Processor) Config() *config.Config {
	return p.cfg
}

// Stats returns the processor's counters.
func (p *Processor) Stats() ProcessorStats {
	return p.stats
}
