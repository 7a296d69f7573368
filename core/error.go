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
	"errors"
	"fmt"
)

// Package core defines the error types for DataProc.
//
// Controller operations report failures as *ProcessorError values that wrap
// one of the sentinels below or the underlying I/O or decode error.

var (
	// ErrUnsupportedFormat is returned when no strategy exists for a location's suffix.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrNotImplemented is returned by format strategies that are recognised but not built.
	ErrNotImplemented = errors.New("not implemented")
	// ErrNoData is returned by Process when nothing has been loaded.
	ErrNoData = errors.New("no data loaded")
)

// ProcessorError wraps structured error information for controller operations.
type ProcessorError struct {
	Op   string // "load", "process" or "export"
	Path string // source or destination, empty for process
	Err  error
}

func (e *ProcessorError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("processor %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("processor %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ProcessorError) Unwrap() error {
	return e.Err
}
