package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Driver abstrai onde os comprovantes de lancamento ficam guardados.
// Upload devolve o caminho interno e a URL publica usada em receipt_link.
type Driver interface {
	Upload(ctx context.Context, file io.Reader, path string) (storagePath string, publicURL string, err error)
	Delete(ctx context.Context, path string) error
	GetReader(ctx context.Context, path string) (io.ReadCloser, error)
	GetPublicURL(path string) string
}

// Config selects and configures the storage backend
type Config struct {
	Driver string // local, s3, r2

	// Local
	UploadsPath string

	// AWS S3
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	AWSBucket          string

	// Cloudflare R2
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2AccountID       string
	R2Bucket          string
	R2PublicURL       string
}

// NewDriver creates a storage driver based on configuration
func NewDriver(cfg *Config) (Driver, error) {
	switch cfg.Driver {
	case "local", "":
		uploadsPath := cfg.UploadsPath
		if uploadsPath == "" {
			uploadsPath = "./uploads"
		}
		return NewLocalStorage(uploadsPath), nil
	case "s3":
		return NewS3Storage(cfg)
	case "r2":
		return NewR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}

// contentType resolve o MIME dos tipos de comprovante aceitos
func contentType(path string) string {
	switch {
	case strings.HasSuffix(path, ".jpg"), strings.HasSuffix(path, ".jpeg"):
		return "image/jpeg"
	case strings.HasSuffix(path, ".png"):
		return "image/png"
	case strings.HasSuffix(path, ".webp"):
		return "image/webp"
	case strings.HasSuffix(path, ".pdf"):
		return "application/pdf"
	}
	return "application/octet-stream"
}
