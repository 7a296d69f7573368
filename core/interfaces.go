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

package core

import (
	"context"
	"io"
)

// Package core defines the core interfaces for DataProc.
//
// Each supported file format is handled by a pair of strategies: a DatasetReader
// that decodes a whole document and a DatasetWriter that encodes one.

// DatasetReader decodes a complete dataset from a byte stream.
// Implementations exist per Format (see readers).
type DatasetReader interface {
	// ReadDataset decodes the document read from r.
	ReadDataset(ctx context.Context, r io.Reader) (Dataset, error)
}

// DatasetWriter encodes a complete dataset to a byte stream.
// Implementations exist per Format (see writers).
type DatasetWriter interface {
	// WriteDataset encodes d and writes it to w.
	WriteDataset(ctx context.Context, w io.Writer, d Dataset) error
}

// Filter defines the interface for record filtering.
// Filters determine whether a record should be kept in the processed dataset.
type Filter interface {
	// ShouldInclude returns true if the record should be kept.
	ShouldInclude(ctx context.Context, record Record) (bool, error)
}
