// Package gcs stores transcripts in Google Cloud Storage.
package gcs

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
	"github.com/Ingenimax/agentchat-go/pkg/multitenancy"
	"github.com/Ingenimax/agentchat-go/pkg/transcript"
)

func init() {
	// Register the GCS store factory
	transcript.NewGCSStore = New
}

// Store implements TranscriptStore for Google Cloud Storage
type Store struct {
	client          *storage.Client
	bucket          string
	prefix          string
	credentialsFile string
	credentialsJSON string
}

// Option represents an option for configuring the GCS store
type Option func(*Store)

// WithBucket sets the bucket name
func WithBucket(bucket string) Option {
	return func(s *Store) {
		s.bucket = bucket
	}
}

// WithPrefix sets the object prefix within the bucket
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = strings.TrimSuffix(prefix, "/")
	}
}

// WithCredentialsFile sets the path to a service account JSON file
func WithCredentialsFile(path string) Option {
	return func(s *Store) {
		s.credentialsFile = path
	}
}

// WithCredentialsJSON sets the service account JSON content, raw or
// base64 encoded. Takes precedence over WithCredentialsFile.
func WithCredentialsJSON(creds string) Option {
	return func(s *Store) {
		s.credentialsJSON = creds
	}
}

// New creates a GCS store
func New(cfg transcript.GCSConfig) (interfaces.TranscriptStore, error) {
	return NewWithOptions(
		WithBucket(cfg.Bucket),
		WithPrefix(cfg.Prefix),
		WithCredentialsFile(cfg.CredentialsFile),
		WithCredentialsJSON(cfg.CredentialsJSON),
	)
}

// NewWithOptions creates a GCS store with functional options
func NewWithOptions(options ...Option) (*Store, error) {
	s := &Store{}
	for _, opt := range options {
		opt(s)
	}
	if s.bucket == "" {
		return nil, fmt.Errorf("GCS bucket name is required")
	}

	var opts []option.ClientOption
	if s.credentialsJSON != "" {
		//nolint:staticcheck // SA1019: WithCredentialsJSON is deprecated but needed for programmatic credentials
		opts = append(opts, option.WithCredentialsJSON([]byte(parseCredentialsJSON(s.credentialsJSON))))
	} else if s.credentialsFile != "" {
		//nolint:staticcheck // SA1019: WithCredentialsFile is deprecated but needed for file-based credentials
		opts = append(opts, option.WithCredentialsFile(s.credentialsFile))
	}

	client, err := storage.NewClient(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}
	s.client = client
	return s, nil
}

// Save writes one <sessionID>.json object and returns its gs:// URI.
// An org in the context scopes the object into a per-org prefix.
func (s *Store) Save(ctx context.Context, sessionID string, data []byte) (string, error) {
	objectPath := s.prefix
	if orgID, err := multitenancy.GetOrgID(ctx); err == nil && orgID != "" {
		objectPath = joinPath(objectPath, sanitizePath(orgID))
	}
	objectPath = joinPath(objectPath, sanitizePath(sessionID)+".json")

	obj := s.client.Bucket(s.bucket).Object(objectPath)
	wc := obj.NewWriter(ctx)
	wc.ContentType = "application/json"

	if _, err := wc.Write(data); err != nil {
		return "", fmt.Errorf("failed to write to GCS: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close GCS writer: %w", err)
	}
	return fmt.Sprintf("gs://%s/%s", s.bucket, objectPath), nil
}

// sanitizePath removes potentially dangerous characters from path components
func sanitizePath(s string) string {
	s = strings.ReplaceAll(s, "..", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}

// joinPath joins object path components with forward slashes
func joinPath(base, path string) string {
	if base == "" {
		return path
	}
	if path == "" {
		return base
	}
	return base + "/" + path
}

// parseCredentialsJSON parses credentials that may be base64 encoded or raw JSON
func parseCredentialsJSON(creds string) string {
	if decoded, err := base64.StdEncoding.DecodeString(creds); err == nil {
		if len(decoded) > 0 && decoded[0] == '{' {
			return string(decoded)
		}
	}
	return creds
}

var _ interfaces.TranscriptStore = (*Store)(nil)
