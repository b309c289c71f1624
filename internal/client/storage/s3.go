// Package storage uploads case images straight to an S3-compatible bucket,
// bypassing the backend upload endpoint.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/casekeeper/internal/client/models"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	now = time.Now
)

var ErrNotConfigured = errors.New("s3 upload backend is not configured")

// S3Config is the subset of client settings the uploader needs.
type S3Config struct {
	Bucket        string
	Region        string
	BaseEndpoint  string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

// S3Uploader stores images as objects and reports their public URLs.
type S3Uploader struct {
	cfg    S3Config
	client *s3.Client
}

func NewS3Uploader(ctx context.Context, cfg S3Config) (*S3Uploader, error) {
	if cfg.Bucket == "" || cfg.PublicBaseURL == "" {
		return nil, ErrNotConfigured
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Uploader{cfg: cfg, client: client}, nil
}

// ObjectKey builds a date-partitioned key keeping the file extension.
func ObjectKey(name string) string {
	d := now().UTC()
	ext := strings.ToLower(path.Ext(name))
	return fmt.Sprintf("cases/%d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.NewString(), ext)
}

// UploadImages puts every file and returns {key, public URL} pairs in the
// same order. A failure aborts the batch; objects already written are left
// in the bucket.
func (u *S3Uploader) UploadImages(ctx context.Context, files []models.ImageFile) ([]models.UploadedImage, error) {
	out := make([]models.UploadedImage, 0, len(files))
	for _, f := range files {
		key := ObjectKey(f.Name)
		_, err := putObject(u.client, ctx, &s3.PutObjectInput{
			Bucket:        aws.String(u.cfg.Bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(f.Data),
			ContentType:   aws.String(f.ContentType),
			ContentLength: aws.Int64(int64(len(f.Data))),
		})
		if err != nil {
			return nil, fmt.Errorf("put %s: %w", f.Name, err)
		}
		out = append(out, models.UploadedImage{
			ID:  models.StringID(key),
			URL: strings.TrimRight(u.cfg.PublicBaseURL, "/") + "/" + key,
		})
	}
	return out, nil
}
