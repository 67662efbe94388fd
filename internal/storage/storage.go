package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Backend abstracts the object store holding file payloads. The service never
// branches on the concrete implementation.
type Backend interface {
	// Upload stores the payload under key and returns its public URL.
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Download returns the payload stored under key.
	Download(ctx context.Context, key string) ([]byte, error)

	// Delete removes the payload. Deleting a missing key is not an error —
	// cleanup relies on this to stay idempotent.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a payload is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// URL returns the public URL for key without touching the store.
	URL(key string) string
}

type BackendType string

const (
	BackendTypeLocal BackendType = "local"
	BackendTypeS3    BackendType = "s3"
)

type BackendConfig struct {
	Type BackendType

	// Local backend
	LocalPath string
	LocalURL  string

	// S3 backend (Minio or AWS)
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string
	S3PathStyle bool
}

// NewBackend creates the configured backend implementation.
func NewBackend(ctx context.Context, cfg BackendConfig) (Backend, error) {
	switch cfg.Type {
	case BackendTypeLocal:
		return NewLocalBackend(cfg.LocalPath, cfg.LocalURL)
	case BackendTypeS3:
		return NewS3Backend(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend type: %s", cfg.Type)
	}
}

// NewBackendFromEnv builds a backend from environment variables.
// STORAGE_TYPE selects the implementation; local is the dev default.
func NewBackendFromEnv(ctx context.Context) (Backend, error) {
	backendType := os.Getenv("STORAGE_TYPE")
	if backendType == "" {
		backendType = "local"
	}

	cfg := BackendConfig{Type: BackendType(backendType)}

	switch cfg.Type {
	case BackendTypeLocal:
		cfg.LocalPath = os.Getenv("STORAGE_LOCAL_PATH")
		if cfg.LocalPath == "" {
			cfg.LocalPath = "./storage/files"
		}
		cfg.LocalURL = os.Getenv("STORAGE_LOCAL_URL")
		if cfg.LocalURL == "" {
			cfg.LocalURL = "/static/files"
		}

	case BackendTypeS3:
		cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
		cfg.S3Region = os.Getenv("S3_REGION")
		if cfg.S3Region == "" {
			cfg.S3Region = "us-east-1"
		}
		cfg.S3Bucket = os.Getenv("S3_BUCKET")
		cfg.S3AccessKey = os.Getenv("S3_ACCESS_KEY")
		cfg.S3SecretKey = os.Getenv("S3_SECRET_KEY")
		cfg.S3PublicURL = os.Getenv("S3_PUBLIC_URL")
		cfg.S3PathStyle = parseBool(os.Getenv("S3_PATH_STYLE"), true)

		if cfg.S3Bucket == "" {
			return nil, errors.New("S3_BUCKET is required for S3 storage")
		}
		if cfg.S3PublicURL == "" {
			return nil, errors.New("S3_PUBLIC_URL is required for S3 storage")
		}

	default:
		return nil, fmt.Errorf("unknown storage backend type: %s", backendType)
	}

	return NewBackend(ctx, cfg)
}

func parseBool(raw string, fallback bool) bool {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "true", "1":
		return true
	case "false", "0":
		return false
	default:
		return fallback
	}
}
