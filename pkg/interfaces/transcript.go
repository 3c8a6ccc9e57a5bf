package interfaces

import "context"

// TranscriptStore persists finished conversations
type TranscriptStore interface {
	// Save writes the serialized transcript for a session and returns
	// a location (path, URL) callers can log or surface
	Save(ctx context.Context, sessionID string, data []byte) (string, error)
}
