package s3storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// StorageInterface is the object-storage contract: fire-and-forget uploads
// plus a public URL for anything uploaded. A failed upload leaves no state
// behind; records only reference objects after a successful put.
type StorageInterface interface {
	Upload(ctx context.Context, path string, body io.Reader, contentType string) error
	PublicURL(path string) string
}

type s3Storage struct {
	client *s3.Client
	bucket string
	region string
}

func InitStorage() (StorageInterface, error) {
	bucket := os.Getenv("ASSETS_BUCKET")
	if bucket == "" {
		return nil, errors.New("ASSETS_BUCKET must be set")
	}

	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		return nil, err
	}

	return &s3Storage{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: cfg.Region,
	}, nil
}

func (s *s3Storage) Upload(ctx context.Context, path string, body io.Reader, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(path),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	return err
}

func (s *s3Storage) PublicURL(path string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, path)
}
