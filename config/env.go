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
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable read by LoadEnv.
const EnvPrefix = "DATAPROC"

// Env holds process settings taken from the environment. Command-line flags
// override these.
type Env struct {
	ConfigPath      string `envconfig:"CONFIG" default:"config.json"`
	LogLevel        string `envconfig:"LOG_LEVEL" default:"info"`
	LogDevelopment  bool   `envconfig:"LOG_DEV" default:"false"`
	LogFile         string `envconfig:"LOG_FILE"`
	MetricsTextfile string `envconfig:"METRICS_TEXTFILE"`

	S3Region          string `envconfig:"S3_REGION"`
	S3Profile         string `envconfig:"S3_PROFILE"`
	S3Endpoint        string `envconfig:"S3_ENDPOINT"`
	S3PathStyle       bool   `envconfig:"S3_PATH_STYLE" default:"false"`
	S3AccessKeyID     string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3SessionToken    string `envconfig:"S3_SESSION_TOKEN"`
}

// LoadEnv loads process settings from DATAPROC_* environment variables.
func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}
	return &env, nil
}

// DefaultEnv returns the settings used when the environment is empty.
func DefaultEnv() *Env {
	return &Env{
		ConfigPath: DefaultPath,
		LogLevel:   "info",
	}
}
