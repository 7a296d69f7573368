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

import "context"

// Package core defines the shared types for DataProc.
//
// This file contains the dataset and record types and the filter function adapter.

// Record represents a single element of a sequence dataset.
// Each record is a map from field names to values, supporting heterogeneous data.
type Record map[string]interface{}

// Dataset is an untyped decoded document. It is either a sequence
// ([]interface{}) whose elements are usually records, or any other JSON value.
// A nil Dataset means nothing has been loaded.
type Dataset interface{}

// Records returns the dataset as a sequence and reports whether it is one.
func Records(d Dataset) ([]interface{}, bool) {
	seq, ok := d.([]interface{})
	return seq, ok
}

// AsRecord returns v as a Record if it is a JSON object.
func AsRecord(v interface{}) (Record, bool) {
	switch r := v.(type) {
	case map[string]interface{}:
		return Record(r), true
	case Record:
		return r, true
	default:
		return nil, false
	}
}

// FilterFunc is a function adapter for the Filter interface.
// Allows ordinary functions to be used as Filters.
type FilterFunc func(ctx context.Context, record Record) (bool, error)

// ShouldInclude implements the Filter interface for FilterFunc.
func (f FilterFunc) ShouldInclude(ctx context.Context, record Record) (bool, error) {
	return f(ctx, record)
}
