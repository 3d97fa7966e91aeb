// s3.go
//
// A scalable, high performance scene directory and analytics service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of scenedir.
// scenedir is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// scenedir is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with scenedir.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

// Package blob stores scene images in an S3-compatible bucket and hands out
// public and presigned URLs for them.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/localnerve/scenedir/internal/types"
)

// unassignedSegment stands in for an empty building or level in a blob key.
const unassignedSegment = "Unassigned"

// Options configures a Store.
type Options struct {
	Bucket        string
	Region        string
	Endpoint      string // optional, for local S3-compatible backends
	PublicBaseURL string // optional, derived from bucket+region when empty
	AccessKey     string
	SecretKey     string
	PresignTTL    time.Duration
}

// Store is a scene image bucket.
type Store struct {
	client        *s3.Client
	uploader      *manager.Uploader
	presigner     *s3.PresignClient
	bucket        string
	publicBaseURL string
	presignTTL    time.Duration
}

// New builds a Store against the configured bucket. A non-empty Endpoint
// switches to path-style addressing so local backends like MinIO resolve.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("blob bucket is required")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load blob store config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	publicBase := opts.PublicBaseURL
	if publicBase == "" {
		if opts.Endpoint != "" {
			publicBase = strings.TrimRight(opts.Endpoint, "/") + "/" + opts.Bucket
		} else {
			publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, opts.Region)
		}
	}

	return &Store{
		client:        client,
		uploader:      manager.NewUploader(client),
		presigner:     s3.NewPresignClient(client),
		bucket:        opts.Bucket,
		publicBaseURL: strings.TrimRight(publicBase, "/"),
		presignTTL:    opts.PresignTTL,
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet. Intended for
// local S3-compatible backends; production buckets are provisioned elsewhere.
func (s *Store) EnsureBucket(ctx context.Context) error {
	_, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		var owned *s3types.BucketAlreadyOwnedByYou
		var exists *s3types.BucketAlreadyExists
		if errors.As(err, &owned) || errors.As(err, &exists) {
			return nil
		}
		return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// BuildKey produces a fresh object key for a scene image,
// {building}/{level}/{uuid}{ext}. Empty segments fall back to Unassigned.
func BuildKey(building, level, filename string) string {
	b := normalizeSegment(building)
	l := normalizeSegment(level)
	ext := strings.ToLower(path.Ext(filename))
	return b + "/" + l + "/" + uuid.NewString() + ext
}

// Upload streams body into the bucket under key and returns the public URL.
func (s *Store) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if contentType == "" {
		contentType = guessContentType(key)
	}
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload blob %s: %w", key, err)
	}
	return s.publicBaseURL + "/" + key, nil
}

// Delete removes key from the bucket. A missing object counts as success,
// any other failure is non-fatal since deletion is a cleanup side effect.
func (s *Store) Delete(ctx context.Context, key string) types.Result {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *s3types.NoSuchKey
		if errors.As(err, &notFound) {
			return types.OK()
		}
		return types.NonFatal(fmt.Errorf("failed to delete blob %s: %w", key, err))
	}
	return types.OK()
}

// PresignDownload issues a time-limited download URL for key that forces a
// browser save dialog with the given filename.
func (s *Store) PresignDownload(ctx context.Context, key, filename string) (string, error) {
	disposition := fmt.Sprintf("attachment; filename=%q", filename)
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(s.bucket),
		Key:                        aws.String(key),
		ResponseContentDisposition: aws.String(disposition),
	}, s3.WithPresignExpires(s.presignTTL))
	if err != nil {
		return "", fmt.Errorf("failed to presign blob %s: %w", key, err)
	}
	return req.URL, nil
}

// TryParseKey extracts the object key from one of this store's public URLs.
// Foreign URLs return false, those blobs are not ours to delete.
func (s *Store) TryParseKey(publicURL string) (string, bool) {
	prefix := s.publicBaseURL + "/"
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(publicURL, prefix)
	if key == "" {
		return "", false
	}
	return key, true
}

func normalizeSegment(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return unassignedSegment
	}
	return strings.ReplaceAll(s, "/", "-")
}

func guessContentType(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
