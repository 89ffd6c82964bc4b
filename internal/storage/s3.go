package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// S3Options describes where images live and how they are addressed publicly.
type S3Options struct {
	Bucket    string
	KeyPrefix string
	Region    string
	Endpoint  string
	// PublicBaseURL overrides the derived object URL, e.g. a CDN in front of the bucket.
	PublicBaseURL string
}

// S3Service stores header images in Amazon S3 (or compatible APIs).
type S3Service struct {
	client   *s3.Client
	uploader *manager.Uploader
	opts     S3Options
	baseURL  string
}

func NewS3Service(client *s3.Client, opts S3Options) *S3Service {
	opts.KeyPrefix = strings.Trim(opts.KeyPrefix, "/")
	return &S3Service{
		client:   client,
		uploader: manager.NewUploader(client),
		opts:     opts,
		baseURL:  publicBaseURL(opts),
	}
}

func (s *S3Service) PutImage(ctx context.Context, body io.Reader) (string, error) {
	if s.opts.Bucket == "" {
		return "", fmt.Errorf("storage bucket is required")
	}

	data, err := io.ReadAll(io.LimitReader(body, MaxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxImageBytes {
		return "", ErrTooLarge
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", ErrNotImage
	}

	key := objectKey(s.opts.KeyPrefix, uuid.NewString()+mtype.Extension())
	_, err = s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.opts.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mtype.String()),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return s.baseURL + "/" + key, nil
}

func (s *S3Service) DeleteImage(ctx context.Context, url string) error {
	key, ok := s.keyForURL(url)
	if !ok {
		return nil
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

func (s *S3Service) keyForURL(url string) (string, bool) {
	prefix := s.baseURL + "/"
	if s.opts.KeyPrefix != "" {
		prefix += s.opts.KeyPrefix + "/"
	}
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	name := strings.TrimPrefix(url, prefix)
	if name == "" || strings.Contains(name, "/") {
		return "", false
	}
	return objectKey(s.opts.KeyPrefix, name), true
}

var _ Service = (*S3Service)(nil)

func objectKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "/" + name
}

func publicBaseURL(opts S3Options) string {
	switch {
	case opts.PublicBaseURL != "":
		return strings.TrimRight(opts.PublicBaseURL, "/")
	case opts.Endpoint != "":
		// path style addressing, matching the client configuration for custom endpoints
		return strings.TrimRight(opts.Endpoint, "/") + "/" + opts.Bucket
	default:
		region := opts.Region
		if region == "" {
			region = "us-east-1"
		}
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", opts.Bucket, region)
	}
}
