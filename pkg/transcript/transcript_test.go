package transcript_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ingenimax/agentchat-go/pkg/transcript"
	_ "github.com/Ingenimax/agentchat-go/pkg/transcript/local"
)

func TestNewLocal(t *testing.T) {
	store, err := transcript.New(transcript.Config{
		Type:  "local",
		Local: transcript.LocalConfig{Path: t.TempDir()},
	})
	require.NoError(t, err)

	location, err := store.Save(context.Background(), "session-1", []byte(`{}`))
	require.NoError(t, err)
	assert.NotEmpty(t, location)
}

func TestNewDefaultsToLocal(t *testing.T) {
	store, err := transcript.New(transcript.Config{
		Local: transcript.LocalConfig{Path: t.TempDir()},
	})
	require.NoError(t, err)
	assert.NotNil(t, store)
}

func TestNewUnknownType(t *testing.T) {
	_, err := transcript.New(transcript.Config{Type: "s3"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transcript store type")
}
