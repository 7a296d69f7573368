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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvDefaults(t *testing.T) {
	env, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, DefaultPath, env.ConfigPath)
	assert.Equal(t, "info", env.LogLevel)
	assert.False(t, env.LogDevelopment)
	assert.Empty(t, env.LogFile)
	assert.Empty(t, env.MetricsTextfile)
	assert.False(t, env.S3PathStyle)
}

func TestLoadEnvWithEnvironmentVariables(t *testing.T) {
	envVars := map[string]string{
		"DATAPROC_CONFIG":           "pipeline.yaml",
		"DATAPROC_LOG_LEVEL":        "debug",
		"DATAPROC_LOG_DEV":          "true",
		"DATAPROC_LOG_FILE":         "/var/log/dataproc.log",
		"DATAPROC_METRICS_TEXTFILE": "/var/lib/node_exporter/dataproc.prom",
		"DATAPROC_S3_REGION":        "eu-west-1",
		"DATAPROC_S3_ENDPOINT":      "http://localhost:9000",
		"DATAPROC_S3_PATH_STYLE":    "true",
	}
	for key, value := range envVars {
		t.Setenv(key, value)
	}

	env, err := LoadEnv()
	require.NoError(t, err)

	assert.Equal(t, "pipeline.yaml", env.ConfigPath)
	assert.Equal(t, "debug", env.LogLevel)
	assert.True(t, env.LogDevelopment)
	assert.Equal(t, "/var/log/dataproc.log", env.LogFile)
	assert.Equal(t, "/var/lib/node_exporter/dataproc.prom", env.MetricsTextfile)
	assert.Equal(t, "eu-west-1", env.S3Region)
	assert.Equal(t, "http://localhost:9000", env.S3Endpoint)
	assert.True(t, env.S3PathStyle)
}

func TestLoadEnvInvalidBool(t *testing.T) {
	t.Setenv("DATAPROC_LOG_DEV", "sometimes")

	_, err := LoadEnv()
	assert.Error(t, err)
}
