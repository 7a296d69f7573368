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

	"github.com/aaronlmathis/dataproc/core"
)

// CSVReaderError wraps structured error information for the CSV reader.
type CSVReaderError struct {
	Op  string
	Err error
}

func (e *CSVReaderError) Error() string {
	return fmt.Sprintf("csv reader %s: %v", e.Op, e.Err)
}

func (e *CSVReaderError) Unwrap() error {
	return e.Err
}

// CSVReader reserves the CSV slot in the format table. Every read fails with
// core.ErrNotImplemented.
type CSVReader struct{}

// NewCSVReader creates a CSVReader.
func NewCSVReader() *CSVReader {
	return &CSVReader{}
}

// ReadDataset implements the core.DatasetReader interface.
func (c *CSVReader) ReadDataset(ctx context.Context, r io.Reader) (core.Dataset, error) {
	return nil, &CSVReaderError{Op: "read", Err: core.ErrNotImplemented}
}
