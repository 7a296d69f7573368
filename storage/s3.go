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

package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

const s3Scheme = "s3://"

// S3API is the subset of the S3 client used by S3.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options configures the S3 client.
type S3Options struct {
	Region         string          // AWS region
	Profile        string          // AWS shared config profile
	Credentials    aws.Credentials // Explicit credentials, used when AccessKeyID is set
	EndpointURL    string          // Custom endpoint for S3-compatible services
	ForcePathStyle bool            // Use path-style addressing
}

// OptionS3 represents a configuration function for S3Options.
type OptionS3 func(*S3Options)

func WithS3Region(region string) OptionS3 {
	return func(o *S3Options) { o.Region = region }
}

func WithS3Profile(profile string) OptionS3 {
	return func(o *S3Options) { o.Profile = profile }
}

func WithS3Credentials(creds aws.Credentials) OptionS3 {
	return func(o *S3Options) { o.Credentials = creds }
}

func WithS3Endpoint(endpoint string) OptionS3 {
	return func(o *S3Options) { o.EndpointURL = endpoint }
}

func WithS3PathStyle(pathStyle bool) OptionS3 {
	return func(o *S3Options) { o.ForcePathStyle = pathStyle }
}

// S3 implements Store for s3://bucket/key locations.
type S3 struct {
	client S3API
}

// NewS3 creates an S3 store from the default AWS configuration chain
// adjusted by options.
func NewS3(ctx context.Context, options ...OptionS3) (*S3, error) {
	var opts S3Options
	for _, option := range options {
		option(&opts)
	}

	cfg, err := createAWSConfig(ctx, opts)
	if err != nil {
		return nil, &StorageError{Op: "create_aws_config", Err: err}
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.EndpointURL != "" {
			o.BaseEndpoint = aws.String(opts.EndpointURL)
		}
		o.UsePathStyle = opts.ForcePathStyle
	})

	return NewS3WithClient(client), nil
}

// NewS3WithClient creates an S3 store around an existing client.
func NewS3WithClient(client S3API) *S3 {
	return &S3{client: client}
}

// ParseS3Location splits s3://bucket/key into its parts.
func ParseS3Location(location string) (bucket, key string, err error) {
	if !IsS3(location) {
		return "", "", fmt.Errorf("not an s3 location: %q", location)
	}
	rest := strings.TrimPrefix(location, s3Scheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 location must be s3://bucket/key: %q", location)
	}
	return bucket, key, nil
}

// Open implements Store.
func (s *S3) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3Location(location)
	if err != nil {
		return nil, &StorageError{Op: "open", Location: location, Err: err}
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			err = fmt.Errorf("%w: %v", fs.ErrNotExist, err)
		}
		return nil, &StorageError{Op: "open", Location: location, Err: err}
	}
	return out.Body, nil
}

// Create implements Store. Content is buffered and uploaded on Close.
func (s *S3) Create(ctx context.Context, location string) (io.WriteCloser, error) {
	bucket, key, err := ParseS3Location(location)
	if err != nil {
		return nil, &StorageError{Op: "create", Location: location, Err: err}
	}
	return &s3Object{
		ctx:      ctx,
		client:   s.client,
		bucket:   bucket,
		key:      key,
		location: location,
	}, nil
}

// s3Object buffers writes for a single PutObject.
type s3Object struct {
	ctx      context.Context
	client   S3API
	bucket   string
	key      string
	location string
	buf      bytes.Buffer
	closed   bool
}

func (o *s3Object) Write(p []byte) (int, error) {
	if o.closed {
		return 0, &StorageError{Op: "write", Location: o.location, Err: fs.ErrClosed}
	}
	return o.buf.Write(p)
}

func (o *s3Object) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true

	_, err := o.client.PutObject(o.ctx, &s3.PutObjectInput{
		Bucket:        aws.String(o.bucket),
		Key:           aws.String(o.key),
		Body:          bytes.NewReader(o.buf.Bytes()),
		ContentLength: aws.Int64(int64(o.buf.Len())),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return &StorageError{Op: "put_object", Location: o.location, Err: err}
	}
	return nil
}

// createAWSConfig creates AWS configuration from options
func createAWSConfig(ctx context.Context, opts S3Options) (aws.Config, error) {
	configOpts := []func(*config.LoadOptions) error{}

	if opts.Region != "" {
		configOpts = append(configOpts, config.WithRegion(opts.Region))
	}

	if opts.Profile != "" {
		configOpts = append(configOpts, config.WithSharedConfigProfile(opts.Profile))
	}

	cfg, err := config.LoadDefaultConfig(ctx, configOpts...)
	if err != nil {
		return aws.Config{}, err
	}

	if opts.Credentials.AccessKeyID != "" {
		cfg.Credentials = aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				opts.Credentials.AccessKeyID,
				opts.Credentials.SecretAccessKey,
				opts.Credentials.SessionToken,
			),
		)
	}

	return cfg, nil
}
