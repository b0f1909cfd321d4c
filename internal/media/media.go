// Package media stores uploaded images in an S3-compatible bucket and hands
// back the URL posts and comments reference them by.
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"greenpatch/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MaxImageSize caps a single upload.
const MaxImageSize = 10 << 20

var ErrUnsupportedType = errors.New("unsupported image type")

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/heic": ".heic",
}

// Uploader stores an image and returns its public reference.
type Uploader interface {
	Upload(ctx context.Context, contentType string, r io.Reader, size int64) (string, error)
}

// Store uploads into a single bucket.
type Store struct {
	client   *minio.Client
	bucket   string
	endpoint string
	secure   bool
}

func NewStore(cfg *config.MediaConfig) (*Store, error) {
	if !cfg.Enabled() {
		return nil, errors.New("media storage is not configured")
	}
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "http://"), "https://")
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create media client: %v", err)
	}
	return &Store{client: client, bucket: cfg.Bucket, endpoint: endpoint, secure: cfg.Secure}, nil
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !exists {
		log.Printf("Media: creating bucket %s", s.bucket)
		return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (s *Store) Upload(ctx context.Context, contentType string, r io.Reader, size int64) (string, error) {
	key, err := objectKey(contentType)
	if err != nil {
		return "", err
	}
	if size > MaxImageSize {
		return "", fmt.Errorf("image too large: %d bytes", size)
	}
	_, err = s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}
	return objectURL(s.secure, s.endpoint, s.bucket, key), nil
}

func objectKey(contentType string) (string, error) {
	ext, ok := extensions[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, contentType)
	}
	return path.Join("images", uuid.NewString()+ext), nil
}

func objectURL(secure bool, endpoint, bucket, key string) string {
	scheme := "http"
	if secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, endpoint, bucket, key)
}
