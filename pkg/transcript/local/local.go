// Package local stores transcripts on the local filesystem.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
	"github.com/Ingenimax/agentchat-go/pkg/multitenancy"
	"github.com/Ingenimax/agentchat-go/pkg/transcript"
)

func init() {
	// Register the local store factory
	transcript.NewLocalStore = New
}

// DefaultPath is the base directory used when none is configured
const DefaultPath = "./transcripts"

// Store implements TranscriptStore for the local filesystem
type Store struct {
	basePath string
}

// Option represents an option for configuring the local store
type Option func(*Store)

// WithPath sets the base directory for transcripts
func WithPath(path string) Option {
	return func(s *Store) {
		s.basePath = path
	}
}

// New creates a local filesystem store
func New(cfg transcript.LocalConfig) (interfaces.TranscriptStore, error) {
	return NewWithOptions(WithPath(cfg.Path))
}

// NewWithOptions creates a local store with functional options
func NewWithOptions(options ...Option) (*Store, error) {
	s := &Store{}
	for _, opt := range options {
		opt(s)
	}
	if s.basePath == "" {
		s.basePath = DefaultPath
	}

	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create transcript directory: %w", err)
	}
	return s, nil
}

// Save writes one <sessionID>.json file and returns its path. An org
// in the context scopes the file into a per-org subdirectory.
func (s *Store) Save(ctx context.Context, sessionID string, data []byte) (string, error) {
	dirPath := s.basePath
	if orgID, err := multitenancy.GetOrgID(ctx); err == nil && orgID != "" {
		dirPath = filepath.Join(dirPath, sanitizePath(orgID))
		if err := os.MkdirAll(dirPath, 0755); err != nil {
			return "", fmt.Errorf("failed to create transcript directory: %w", err)
		}
	}

	filePath := filepath.Join(dirPath, sanitizePath(sessionID)+".json")
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write transcript file: %w", err)
	}
	return filePath, nil
}

// sanitizePath removes potentially dangerous characters from path components
func sanitizePath(s string) string {
	s = strings.ReplaceAll(s, "..", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}

var _ interfaces.TranscriptStore = (*Store)(nil)
