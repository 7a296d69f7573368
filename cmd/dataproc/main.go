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

// Command dataproc loads a JSON dataset, filters it and exports the result.
//
// Usage:
//
//	dataproc [flags] <input_file> <output_file>
package main

import (
	"os"

	"github.com/aaronlmathis/dataproc/cli"
)

func main() {
	os.Exit(cli.Execute())
}
