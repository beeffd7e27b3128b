package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrDisabled is returned when no MinIO endpoint is configured.
var ErrDisabled = fmt.Errorf("storage service not configured")

type Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Bucket          string
	// PublicURL is the base that stored object keys are appended to.
	PublicURL string
}

// Client stores uploaded images in one MinIO bucket.
type Client struct {
	mc      *minio.Client
	cfg     Config
	enabled bool
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return &Client{cfg: cfg}, nil
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}
	if cfg.PublicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		cfg.PublicURL = scheme + "://" + cfg.Endpoint + "/" + cfg.Bucket
	}
	return &Client{mc: mc, cfg: cfg, enabled: true}, nil
}

// EnsureBucket creates the bucket if it does not exist.
func (c *Client) EnsureBucket(ctx context.Context) error {
	if !c.enabled {
		return ErrDisabled
	}
	exists, err := c.mc.BucketExists(ctx, c.cfg.Bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return c.mc.MakeBucket(ctx, c.cfg.Bucket, minio.MakeBucketOptions{})
}

// Upload stores the file under a random key and returns its public URL.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error) {
	if !c.enabled {
		return "", ErrDisabled
	}
	if err := c.EnsureBucket(ctx); err != nil {
		return "", err
	}
	key := ObjectKey(filename)
	if _, err := c.mc.PutObject(ctx, c.cfg.Bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}
	return strings.TrimRight(c.cfg.PublicURL, "/") + "/" + key, nil
}

// ObjectKey keeps the file extension and replaces the name with a uuid.
func ObjectKey(filename string) string {
	return "profile-pics/" + uuid.NewString() + strings.ToLower(path.Ext(filename))
}
