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

package writers

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/aaronlmathis/dataproc/core"
)

// JSONWriterError wraps JSON-specific write errors with context.
type JSONWriterError struct {
	Op  string
	Err error
}

func (e *JSONWriterError) Error() string {
	return fmt.Sprintf("json writer %s: %v", e.Op, e.Err)
}

func (e *JSONWriterError) Unwrap() error {
	return e.Err
}

// JSONWriterStats holds JSON write statistics.
type JSONWriterStats struct {
	DocumentsWritten int64
	RecordsWritten   int64
	BytesWritten     int64
	WriteDuration    time.Duration
	LastWriteTime    time.Time
	NullValueCounts  map[string]int64
}

// JSONWriterOptions configures JSON output.
type JSONWriterOptions struct {
	Indent          int  // spaces per nesting level; 0 writes compact output
	SortKeys        bool // emit object keys in sorted order
	EscapeHTML      bool
	TrailingNewline bool
}

// WriterOptionJSON is a functional option.
type WriterOptionJSON func(*JSONWriterOptions)

func WithJSONIndent(spaces int) WriterOptionJSON {
	return func(opts *JSONWriterOptions) {
		opts.Indent = spaces
	}
}

func WithSortKeys(sortKeys bool) WriterOptionJSON {
	return func(opts *JSONWriterOptions) {
		opts.SortKeys = sortKeys
	}
}

func WithEscapeHTML(escape bool) WriterOptionJSON {
	return func(opts *JSONWriterOptions) {
		opts.EscapeHTML = escape
	}
}

func WithTrailingNewline(newline bool) WriterOptionJSON {
	return func(opts *JSONWriterOptions) {
		opts.TrailingNewline = newline
	}
}

// JSONWriter implements core.DatasetWriter for whole JSON documents.
type JSONWriter struct {
	api     sonic.API
	options JSONWriterOptions
	stats   JSONWriterStats
	mu      sync.Mutex
}

// NewJSONWriter creates a JSON writer. The default layout is two-space
// indentation with sorted keys and no trailing newline.
func NewJSONWriter(opts ...WriterOptionJSON) *JSONWriter {
	options := JSONWriterOptions{
		Indent:   2,
		SortKeys: true,
	}

	for _, opt := range opts {
		opt(&options)
	}

	return &JSONWriter{
		api: sonic.Config{
			SortMapKeys: options.SortKeys,
			EscapeHTML:  options.EscapeHTML,
		}.Froze(),
		options: options,
		stats:   JSONWriterStats{NullValueCounts: make(map[string]int64)},
	}
}

// WriteDataset implements the core.DatasetWriter interface.
func (j *JSONWriter) WriteDataset(ctx context.Context, w io.Writer, d core.Dataset) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	select {
	case <-ctx.Done():
		return &JSONWriterError{Op: "write", Err: ctx.Err()}
	default:
	}

	start := time.Now()

	data, err := j.marshal(d)
	if err != nil {
		return &JSONWriterError{Op: "marshal", Err: err}
	}
	if j.options.TrailingNewline {
		data = append(data, '\n')
	}

	n, err := w.Write(data)
	j.stats.BytesWritten += int64(n)
	if err != nil {
		return &JSONWriterError{Op: "write", Err: err}
	}

	j.stats.DocumentsWritten++
	j.trackRecords(d)
	j.stats.LastWriteTime = time.Now()
	j.stats.WriteDuration += time.Since(start)

	return nil
}

func (j *JSONWriter) marshal(d core.Dataset) ([]byte, error) {
	if j.options.Indent <= 0 {
		return j.api.Marshal(d)
	}
	return j.api.MarshalIndent(d, "", strings.Repeat(" ", j.options.Indent))
}

// trackRecords counts records and per-field nulls when d is a sequence.
func (j *JSONWriter) trackRecords(d core.Dataset) {
	seq, ok := core.Records(d)
	if !ok {
		return
	}
	for _, item := range seq {
		record, ok := core.AsRecord(item)
		if !ok {
			continue
		}
		j.stats.RecordsWritten++
		for key, value := range record {
			if value == nil {
				j.stats.NullValueCounts[key]++
			}
		}
	}
}

// Stats returns a copy of the current write statistics.
func (j *JSONWriter) Stats() JSONWriterStats {
	j.mu.Lock()
	defer j.mu.Unlock()

	nullCounts := make(map[string]int64, len(j.stats.NullValueCounts))
	for k, v := range j.stats.NullValueCounts {
		nullCounts[k] = v
	}
	stats := j.stats
	stats.NullValueCounts = nullCounts
	return stats
}
