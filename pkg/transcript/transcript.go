// Package transcript persists finished conversation transcripts.
package transcript

import (
	"fmt"

	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
)

// Config contains configuration for transcript stores
type Config struct {
	// Type is the store type ("local", "gcs")
	Type string

	// Local store configuration
	Local LocalConfig

	// GCS store configuration
	GCS GCSConfig
}

// LocalConfig contains configuration for the filesystem store
type LocalConfig struct {
	// Path is the base directory for transcripts
	Path string
}

// GCSConfig contains configuration for Google Cloud Storage
type GCSConfig struct {
	// Bucket is the GCS bucket name
	Bucket string

	// Prefix is the object prefix within the bucket
	Prefix string

	// CredentialsFile is the path to the service account JSON file
	// (optional). If empty, uses Application Default Credentials.
	CredentialsFile string

	// CredentialsJSON is the service account JSON content (optional).
	// Can be raw JSON or base64 encoded. Takes precedence over
	// CredentialsFile.
	CredentialsJSON string
}

// New creates a transcript store from configuration
func New(cfg Config) (interfaces.TranscriptStore, error) {
	switch cfg.Type {
	case "local", "":
		if NewLocalStore == nil {
			return nil, fmt.Errorf("transcript/local store is not linked into this binary")
		}
		return NewLocalStore(cfg.Local)
	case "gcs":
		if NewGCSStore == nil {
			return nil, fmt.Errorf("transcript/gcs store is not linked into this binary")
		}
		return NewGCSStore(cfg.GCS)
	default:
		return nil, fmt.Errorf("unknown transcript store type: %q", cfg.Type)
	}
}

// NewLocalStore creates a filesystem store.
// Registered by the local subpackage.
var NewLocalStore func(cfg LocalConfig) (interfaces.TranscriptStore, error)

// NewGCSStore creates a GCS store.
// Registered by the gcs subpackage.
var NewGCSStore func(cfg GCSConfig) (interfaces.TranscriptStore, error)
