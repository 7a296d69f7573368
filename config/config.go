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

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"github.com/aaronlmathis/dataproc/logging"
)

// DefaultPath is the configuration document read when none is named.
const DefaultPath = "config.json"

// Config holds the pipeline options. Keys absent from the document keep their
// zero value. A Config is not modified after Load returns.
type Config struct {
	// InputFormat is informational; the source suffix selects the decoder.
	InputFormat string `json:"input_format" yaml:"input_format" toml:"input_format"`
	// OutputFormat is informational; the destination suffix selects the encoder.
	OutputFormat string `json:"output_format" yaml:"output_format" toml:"output_format"`
	// Validate is carried through but no validation step consumes it.
	Validate bool `json:"validate" yaml:"validate" toml:"validate"`
	// RemoveIncomplete drops records holding any falsy field value.
	RemoveIncomplete bool `json:"remove_incomplete" yaml:"remove_incomplete" toml:"remove_incomplete"`
}

// Default returns the configuration used when no document is found.
func Default() *Config {
	return &Config{
		InputFormat:  "json",
		OutputFormat: "json",
		Validate:     true,
	}
}

// Load reads the configuration document at path. A missing file is logged as a
// warning and yields Default(). Unreadable or malformed documents are errors.
// The decoder is picked by suffix: .yaml/.yml, .toml, otherwise JSON.
func Load(path string, logger *logging.Logger) (*Config, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Config file not found, using defaults", zap.String("path", path))
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	logger.Debug("Loaded config",
		zap.String("path", path),
		zap.String("input_format", cfg.InputFormat),
		zap.String("output_format", cfg.OutputFormat),
		zap.Bool("validate", cfg.Validate),
		zap.Bool("remove_incomplete", cfg.RemoveIncomplete),
	)
	return cfg, nil
}

// Parse decodes a configuration document. ext selects the syntax the same way
// Load does.
func Parse(data []byte, ext string) (*Config, error) {
	var cfg Config
	var err error

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		err = sonic.ConfigStd.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
