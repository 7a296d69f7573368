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
	"io"

	"github.com/aaronlmathis/dataproc/storage"
)

// lazySource opens its location on the first Read, so decoders that never
// read (such as the CSV placeholder) never touch storage.
type lazySource struct {
	ctx      context.Context
	store    storage.Store
	location string
	rc       io.ReadCloser
	err      error
}

func (s *lazySource) Read(p []byte) (int, error) {
	if s.rc == nil && s.err == nil {
		s.rc, s.err = s.store.Open(s.ctx, s.location)
	}
	if s.err != nil {
		return 0, s.err
	}
	return s.rc.Read(p)
}

func (s *lazySource) Close() error {
	if s.rc == nil {
		return nil
	}
	return s.rc.Close()
}

// countingWriter tracks bytes passed through to w.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
