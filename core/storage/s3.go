// Package storage archives scheduling run reports to S3-compatible object
// storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"meeting-scheduler/core/config"
	"meeting-scheduler/core/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Archive interface {
	Put(ctx context.Context, key string, contentType string, body []byte) error
	// Key joins parts under the configured prefix.
	Key(parts ...string) string
}

// objectPutter is the part of *s3.Client the archive uses.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Archive struct {
	client objectPutter
	bucket string
	prefix string
}

var _ Archive = (*S3Archive)(nil)

func NewS3Archive(cfg config.StorageConfig) *S3Archive {
	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.UsePathStyle,
	}
	if cfg.AccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return &S3Archive{
		client: s3.New(opts),
		bucket: cfg.Bucket,
		prefix: cfg.Prefix,
	}
}

func (a *S3Archive) Key(parts ...string) string {
	return path.Join(append([]string{a.prefix}, parts...)...)
}

func (a *S3Archive) Put(ctx context.Context, key string, contentType string, body []byte) error {
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(a.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
	})
	if err != nil {
		logger.Error("S3Archive:Put", "bucket", a.bucket, "key", key, "error", err)
		return fmt.Errorf("put s3://%s/%s: %w", a.bucket, key, err)
	}
	logger.Info("S3Archive:Put:Success", "bucket", a.bucket, "key", key, "bytes", len(body))
	return nil
}

// NoopArchive is used when archiving is disabled.
type NoopArchive struct{}

func (NoopArchive) Put(context.Context, string, string, []byte) error { return nil }

func (NoopArchive) Key(parts ...string) string { return path.Join(parts...) }

// New returns the archive selected by cfg.
func New(cfg config.StorageConfig) Archive {
	if !cfg.Enabled {
		return NoopArchive{}
	}
	return NewS3Archive(cfg)
}
