// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package objectstore moves uploaded media to S3-compatible storage.

Domain services see only the [Uploader] interface and persist the URL it
returns; they never hold file bytes beyond the request that carried them.
*/
package objectstore

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/pkg/uuid"
)

// Uploader stores a blob under key and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

// Config describes the target bucket.
type Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	PublicBaseURL string
}

// # S3

// S3Uploader implements [Uploader] with the aws-sdk-go-v2 multipart manager.
type S3Uploader struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	baseURL  string
}

// NewS3Uploader configures an uploader targeting the provided object store.
func NewS3Uploader(ctx context.Context, cfg Config) (*S3Uploader, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("objectstore: bucket is required")
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("objectstore: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(options *s3.Options) {
		options.UsePathStyle = true
		if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
			options.BaseEndpoint = aws.String(endpoint)
		}
	})

	uploader := manager.NewUploader(client, func(u *manager.Uploader) {
		u.PartSize = 8 * 1024 * 1024
		u.LeavePartsOnError = false
	})

	baseURL := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if baseURL == "" && cfg.Endpoint != "" {
		baseURL = strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}

	return &S3Uploader{client: client, uploader: uploader, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

// Upload sends body to the bucket as a public-read object.
func (store *S3Uploader) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	key = strings.TrimLeft(key, "/")
	if key == "" {
		return "", fmt.Errorf("objectstore: empty key")
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(store.bucket),
		Key:    aws.String(key),
		Body:   body,
		ACL:    s3types.ObjectCannedACLPublicRead,
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := store.uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("objectstore: upload %s: %w", key, err)
	}

	return PublicURL(store.baseURL, key), nil
}

// Ping issues HeadBucket; /ready uses it to report storage reachability.
func (store *S3Uploader) Ping(ctx context.Context) error {
	if _, err := store.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(store.bucket)}); err != nil {
		return fmt.Errorf("objectstore: head bucket %s: %w", store.bucket, err)
	}
	return nil
}

// # Disabled

// Disabled rejects every upload. It stands in when no bucket is configured so
// that the rest of the API still serves.
type Disabled struct{}

// Upload always fails with 503.
func (Disabled) Upload(context.Context, string, io.Reader, string) (string, error) {
	return "", apperr.ServiceUnavailable("Media storage is not configured")
}

// # Helpers

// PublicURL joins a base URL and key. An empty base yields the bare key.
func PublicURL(baseURL, key string) string {
	if baseURL == "" {
		return key
	}
	return baseURL + "/" + key
}

// Key builds a collision-free object key under prefix that keeps the
// original file extension, e.g. "videos/0190...-....mp4".
func Key(prefix, filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	return path.Join(prefix, uuid.New()+ext)
}

// File is an upload in transit, detached from the transport that carried it.
type File struct {
	Body        io.Reader
	Name        string
	ContentType string
}

// Put uploads file under a fresh key below prefix. A nil file yields "".
func Put(ctx context.Context, uploader Uploader, prefix string, file *File) (string, error) {
	if file == nil {
		return "", nil
	}
	return uploader.Upload(ctx, Key(prefix, file.Name), file.Body, file.ContentType)
}
