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

// Package storage opens data locations as byte streams.
//
// A location is either a local filesystem path or an s3://bucket/key URI. The
// Router picks the backing Store by scheme; format selection stays with the
// caller and is based on the location's suffix.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoS3Store is returned by Router when an s3:// location is used but no S3 store is configured.
var ErrNoS3Store = errors.New("no s3 store configured")

// Store opens locations for reading and writing.
type Store interface {
	// Open returns a reader for an existing location. Missing locations
	// yield an error matching fs.ErrNotExist.
	Open(ctx context.Context, location string) (io.ReadCloser, error)
	// Create returns a writer that replaces the location's content. Data is
	// only guaranteed to be stored once Close returns nil.
	Create(ctx context.Context, location string) (io.WriteCloser, error)
}

// StorageError provides structured error information for storage operations.
type StorageError struct {
	Op       string // "open" or "create"
	Location string
	Err      error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Location, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Local implements Store on the local filesystem.
type Local struct{}

// NewLocal creates a local filesystem store.
func NewLocal() *Local {
	return &Local{}
}

// Open implements Store.
func (l *Local) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, &StorageError{Op: "open", Location: location, Err: err}
	}
	f, err := os.Open(location)
	if err != nil {
		return nil, &StorageError{Op: "open", Location: location, Err: err}
	}
	return f, nil
}

// Create implements Store. An existing file is truncated.
func (l *Local) Create(ctx context.Context, location string) (io.WriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, &StorageError{Op: "create", Location: location, Err: err}
	}
	f, err := os.Create(location)
	if err != nil {
		return nil, &StorageError{Op: "create", Location: location, Err: err}
	}
	return f, nil
}

// Router dispatches s3:// locations to an S3 store and everything else to a local store.
type Router struct {
	local Store
	s3    Store
}

// NewRouter creates a Router. s3 may be nil, in which case s3:// locations fail with ErrNoS3Store.
func NewRouter(local, s3 Store) *Router {
	if local == nil {
		local = NewLocal()
	}
	return &Router{local: local, s3: s3}
}

// IsS3 reports whether location uses the s3:// scheme.
func IsS3(location string) bool {
	return strings.HasPrefix(location, s3Scheme)
}

func (r *Router) route(op, location string) (Store, error) {
	if !IsS3(location) {
		return r.local, nil
	}
	if r.s3 == nil {
		return nil, &StorageError{Op: op, Location: location, Err: ErrNoS3Store}
	}
	return r.s3, nil
}

// Open implements Store.
func (r *Router) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	store, err := r.route("open", location)
	if err != nil {
		return nil, err
	}
	return store.Open(ctx, location)
}

// Create implements Store.
func (r *Router) Create(ctx context.Context, location string) (io.WriteCloser, error) {
	store, err := r.route("create", location)
	if err != nil {
		return nil, err
	}
	return store.Create(ctx, location)
}
