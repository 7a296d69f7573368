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

package readers

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"

	"github.com/aaronlmathis/dataproc/core"
)

// JSONReaderError wraps structured error information for the JSON reader.
type JSONReaderError struct {
	Op  string
	Err error
}

func (e *JSONReaderError) Error() string {
	return fmt.Sprintf("json reader %s: %v", e.Op, e.Err)
}

func (e *JSONReaderError) Unwrap() error {
	return e.Err
}

// JSONReaderStats holds statistics about the JSON reader.
type JSONReaderStats struct {
	DocumentsRead int64
	BytesRead     int64
	ReadDuration  time.Duration
	LastReadTime  time.Time
}

// JSONReaderOptions configures the JSON reader.
type JSONReaderOptions struct {
	// UseNumber decodes numbers as json.Number so they re-encode unchanged.
	UseNumber bool
}

// ReaderOptionJSON allows functional customization of JSONReader.
type ReaderOptionJSON func(*JSONReaderOptions)

func WithJSONUseNumber(useNumber bool) ReaderOptionJSON {
	return func(o *JSONReaderOptions) { o.UseNumber = useNumber }
}

// JSONReader implements core.DatasetReader for whole JSON documents.
type JSONReader struct {
	api   sonic.API
	stats JSONReaderStats
	opts  JSONReaderOptions
}

// NewJSONReader creates a JSONReader with default or overridden options.
func NewJSONReader(options ...ReaderOptionJSON) *JSONReader {
	opts := JSONReaderOptions{UseNumber: true}
	for _, opt := range options {
		opt(&opts)
	}

	return &JSONReader{
		api: sonic.Config{
			UseNumber:      opts.UseNumber,
			ValidateString: true,
		}.Froze(),
		opts: opts,
	}
}

// ReadDataset implements the core.DatasetReader interface.
// The whole stream must hold exactly one JSON value with valid UTF-8 strings.
func (j *JSONReader) ReadDataset(ctx context.Context, r io.Reader) (core.Dataset, error) {
	start := time.Now()

	select {
	case <-ctx.Done():
		return nil, &JSONReaderError{Op: "read", Err: ctx.Err()}
	default:
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &JSONReaderError{Op: "read", Err: err}
	}

	var doc interface{}
	if err := j.api.Unmarshal(data, &doc); err != nil {
		return nil, &JSONReaderError{Op: "decode", Err: err}
	}

	j.stats.DocumentsRead++
	j.stats.BytesRead += int64(len(data))
	j.stats.LastReadTime = time.Now()
	j.stats.ReadDuration += time.Since(start)

	return doc, nil
}

// Stats returns JSON reader stats.
func (j *JSONReader) Stats() JSONReaderStats {
	return j.stats
}
