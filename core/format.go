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

import "strings"

// Format identifies the encoding of a data location.
type Format int

const (
	// FormatUnknown is any location whose suffix is not recognised.
	FormatUnknown Format = iota
	// FormatJSON is a single JSON document (".json").
	FormatJSON
	// FormatCSV is a comma-separated file (".csv"). Recognised, not implemented.
	FormatCSV
)

var formatSuffixes = []struct {
	suffix string
	format Format
}{
	{".json", FormatJSON},
	{".csv", FormatCSV},
}

// FormatFromPath selects a Format by the exact, case-sensitive suffix of path.
func FormatFromPath(path string) Format {
	for _, fs := range formatSuffixes {
		if strings.HasSuffix(path, fs.suffix) {
			return fs.format
		}
	}
	return FormatUnknown
}

// String returns the lowercase format name.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	default:
		return "unknown"
	}
}
