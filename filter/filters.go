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

package filter

import (
	"context"
	"reflect"

	"github.com/aaronlmathis/dataproc/core"
)

// Package filter provides reusable, composable record filtering functions for DataProc.
//
// All functions return core.Filter implementations for use by the processor.

// Complete creates a filter that excludes records holding any falsy field value.
// A record with no fields is kept.
func Complete() core.Filter {
	return core.FilterFunc(func(ctx context.Context, record core.Record) (bool, error) {
		for _, value := range record {
			if IsFalsy(value) {
				return false, nil
			}
		}
		return true, nil
	})
}

// NotNull creates a filter that excludes records where the specified field is missing or falsy
func NotNull(field string) core.Filter {
	return core.FilterFunc(func(ctx context.Context, record core.Record) (bool, error) {
		value, exists := record[field]
		if !exists {
			return false, nil
		}
		return !IsFalsy(value), nil
	})
}

// Equals creates a filter that includes records where the field equals the specified value
func Equals(field string, expectedValue interface{}) core.Filter {
	return core.FilterFunc(func(ctx context.Context, record core.Record) (bool, error) {
		value, exists := record[field]
		if !exists {
			return false, nil
		}
		return reflect.DeepEqual(value, expectedValue), nil
	})
}

// And creates a filter that requires all provided filters to pass
func And(filters ...core.Filter) core.Filter {
	return core.FilterFunc(func(ctx context.Context, record core.Record) (bool, error) {
		for _, filter := range filters {
			include, err := filter.ShouldInclude(ctx, record)
			if err != nil {
				return false, err
			}
			if !include {
				return false, nil
			}
		}
		return true, nil
	})
}

// Or creates a filter that requires at least one of the provided filters to pass
func Or(filters ...core.Filter) core.Filter {
	return core.FilterFunc(func(ctx context.Context, record core.Record) (bool, error) {
		for _, filter := range filters {
			include, err := filter.ShouldInclude(ctx, record)
			if err != nil {
				return false, err
			}
			if include {
				return true, nil
			}
		}
		return false, nil
	})
}

// Not creates a filter that negates the provided filter
func Not(filter core.Filter) core.Filter {
	return core.FilterFunc(func(ctx context.Context, record core.Record) (bool, error) {
		include, err := filter.ShouldInclude(ctx, record)
		if err != nil {
			return false, err
		}
		return !include, nil
	})
}

// Custom creates a filter using a user-provided predicate function
func Custom(predicate func(core.Record) bool) core.Filter {
	return core.FilterFunc(func(ctx context.Context, record core.Record) (bool, error) {
		return predicate(record), nil
	})
}
