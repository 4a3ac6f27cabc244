// Package media stores moment images in an S3 compatible bucket (AWS or
// MinIO) and hands out short-lived presigned GET URLs for them.
//
// Stored images are referenced as s3://bucket/key in Moment.ImageURI.
package media

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const uriScheme = "s3://"

var ErrNotStored = errors.New("image is not in object storage")

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

type Config struct {
	Region       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
	Bucket       string
	PresignTTL   time.Duration
}

type S3ImageStore struct {
	cfg Config
	now func() time.Time
}

func NewS3ImageStore(cfg Config) *S3ImageStore {
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = 15 * time.Minute
	}
	return &S3ImageStore{cfg: cfg, now: time.Now}
}

// Enabled reports whether a bucket is configured.
func (s *S3ImageStore) Enabled() bool {
	return s != nil && s.cfg.Bucket != ""
}

// StorageKey builds a unique object key for an image taken at t.
func StorageKey(t time.Time, ext string) string {
	return fmt.Sprintf("moments/%d/%d/%d/%v%s", t.Year(), t.Month(), t.Day(), uuid.New(), strings.ToLower(ext))
}

// URI returns the reference stored on a moment for bucket/key.
func URI(bucket, key string) string {
	return uriScheme + bucket + "/" + key
}

// ParseURI splits an s3://bucket/key reference.
func ParseURI(uri string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(uri, uriScheme)
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

func (s *S3ImageStore) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Upload copies the local file at path into the bucket and returns its URI.
func (s *S3ImageStore) Upload(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	c, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	ext := filepath.Ext(path)
	key := StorageKey(s.now(), ext)
	in := &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
		Body:   f,
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		in.ContentType = aws.String(ct)
	}

	if _, err := putObject(c, ctx, in); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return URI(s.cfg.Bucket, key), nil
}

// PresignGet returns a temporary HTTP URL for an s3:// image reference.
// Any other reference yields ErrNotStored.
func (s *S3ImageStore) PresignGet(ctx context.Context, uri string) (string, error) {
	bucket, key, ok := ParseURI(uri)
	if !ok {
		return "", ErrNotStored
	}

	c, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	req, err := presignGetObject(newS3PresignClient(c), ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.cfg.PresignTTL))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}
	return req.URL, nil
}
