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

// Package cli provides the command-line interface for DataProc.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/aaronlmathis/dataproc"
	"github.com/aaronlmathis/dataproc/config"
	"github.com/aaronlmathis/dataproc/logging"
	"github.com/aaronlmathis/dataproc/metrics"
	"github.com/aaronlmathis/dataproc/storage"
)

var errUsage = errors.New("input and output files are required")

// reportedError marks a failure whose message was already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }

// options holds flag values. Defaults come from the environment.
type options struct {
	configPath      string
	logLevel        string
	logDev          bool
	logFile         string
	metricsTextfile string
	s3Region        string
	s3Profile       string
	s3Endpoint      string
	s3PathStyle     bool
}

// NewRootCommand builds the dataproc command with flag defaults taken from env.
func NewRootCommand(env *config.Env) *cobra.Command {
	if env == nil {
		env = config.DefaultEnv()
	}
	opts := options{}

	cmd := &cobra.Command{
		Use:   "dataproc [flags] <input_file> <output_file>",
		Short: "Load a JSON dataset, optionally drop incomplete records, and export it.",
		Long: `dataproc reads a JSON document, applies the filters enabled in the ` +
			`pipeline configuration and writes the result as indented JSON. ` +
			`Locations may be local paths or s3://bucket/key URIs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				_ = cmd.Usage()
				return errUsage
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts, env, args[0], args[1])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", env.ConfigPath, "Pipeline configuration file (.json, .yaml, .toml)")
	flags.StringVar(&opts.logLevel, "log-level", env.LogLevel, "Log level: debug, info, warn, error")
	flags.BoolVar(&opts.logDev, "log-dev", env.LogDevelopment, "Development logging (colour, caller)")
	flags.StringVar(&opts.logFile, "log-file", env.LogFile, "Append logs to this file instead of stderr")
	flags.StringVar(&opts.metricsTextfile, "metrics-textfile", env.MetricsTextfile, "Write run metrics to this file in Prometheus text format")
	flags.StringVar(&opts.s3Region, "s3-region", env.S3Region, "AWS region for s3:// locations")
	flags.StringVar(&opts.s3Profile, "s3-profile", env.S3Profile, "AWS shared config profile for s3:// locations")
	flags.StringVar(&opts.s3Endpoint, "s3-endpoint", env.S3Endpoint, "Custom S3-compatible endpoint URL")
	flags.BoolVar(&opts.s3PathStyle, "s3-path-style", env.S3PathStyle, "Use path-style S3 addressing")

	return cmd
}

// Execute runs the command with os.Args and returns the process exit code.
func Execute() int {
	return ExecuteArgs(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

// ExecuteArgs runs the command with explicit arguments and streams. It returns
// 0 on success and 1 on any failure, including missing arguments.
func ExecuteArgs(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(stderr, "Error: failed to read .env: %v\n", err)
		return 1
	}

	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// cobra reads os.Args when given nil.
	if args == nil {
		args = []string{}
	}

	cmd := NewRootCommand(env)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		var reported *reportedError
		if !errors.Is(err, errUsage) && !errors.As(err, &reported) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func run(ctx context.Context, stdout, stderr io.Writer, opts options, env *config.Env, input, output string) error {
	logger, err := newLogger(opts, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger, _ = logger.WithRunID()

	store, err := newStore(ctx, opts, env, input, output)
	if err != nil {
		return err
	}

	var m *metrics.Metrics
	if opts.metricsTextfile != "" {
		m = metrics.New()
		defer func() {
			if err := m.WriteTextfile(opts.metricsTextfile); err != nil {
				logger.Error("Failed to write metrics", zap.String("path", opts.metricsTextfile), zap.Error(err))
			}
		}()
	}

	p, err := dataproc.NewFromConfigFile(opts.configPath,
		dataproc.WithLogger(logger),
		dataproc.WithStore(store),
		dataproc.WithMetrics(m),
	)
	if err != nil {
		return err
	}

	if err := p.Load(ctx, input); err != nil {
		fmt.Fprintf(stdout, "Failed to load data from %s\n", input)
		return &reportedError{err: err}
	}

	// A failed Process is logged; Export retries it and writes what is held.
	_, _ = p.Process(ctx)

	if err := p.Export(ctx, output); err != nil {
		fmt.Fprintf(stdout, "Failed to export to %s\n", output)
		return &reportedError{err: err}
	}

	fmt.Fprintf(stdout, "Successfully processed %s and saved to %s\n", input, output)
	return nil
}

// newLogger logs to the --log-file path when one is set and to stderr otherwise.
func newLogger(opts options, stderr io.Writer) (*logging.Logger, error) {
	cfg := logging.DefaultConfig()
	cfg.Level = opts.logLevel
	cfg.Development = opts.logDev

	if opts.logFile == "" {
		logger, err := logging.NewForWriter(cfg, stderr)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.logLevel, err)
		}
		return logger, nil
	}

	cfg.OutputPaths = []string{opts.logFile}
	logger, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger for %s: %w", opts.logFile, err)
	}
	return logger, nil
}

// newStore returns a local store, adding an S3 store only when a location needs one.
func newStore(ctx context.Context, opts options, env *config.Env, locations ...string) (storage.Store, error) {
	needS3 := false
	for _, loc := range locations {
		if storage.IsS3(loc) {
			needS3 = true
			break
		}
	}
	if !needS3 {
		return storage.NewRouter(storage.NewLocal(), nil), nil
	}

	s3Store, err := storage.NewS3(ctx,
		storage.WithS3Region(opts.s3Region),
		storage.WithS3Profile(opts.s3Profile),
		storage.WithS3Endpoint(opts.s3Endpoint),
		storage.WithS3PathStyle(opts.s3PathStyle),
		storage.WithS3Credentials(aws.Credentials{
			AccessKeyID:     env.S3AccessKeyID,
			SecretAccessKey: env.S3SecretAccessKey,
			SessionToken:    env.S3SessionToken,
		}),
	)
	if err != nil {
		return nil, err
	}
	return storage.NewRouter(storage.NewLocal(), s3Store), nil
}
