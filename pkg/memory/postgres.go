package memory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/Ingenimax/agentchat-go/pkg/interfaces"
)

// PostgresMemory stores conversations in a messages table, one row per
// message, ordered by insertion sequence
type PostgresMemory struct {
	db                    *sql.DB
	defaultConversationID string
}

// PostgresMemoryOption represents an option for configuring PostgresMemory
type PostgresMemoryOption func(*PostgresMemory)

// WithPostgresConversationID pins the conversation used when the
// context carries none
func WithPostgresConversationID(conversationID string) PostgresMemoryOption {
	return func(m *PostgresMemory) {
		m.defaultConversationID = conversationID
	}
}

// NewPostgresMemory creates a conversation store on an existing
// database handle
func NewPostgresMemory(db *sql.DB, options ...PostgresMemoryOption) *PostgresMemory {
	m := &PostgresMemory{db: db}
	for _, option := range options {
		option(m)
	}
	if m.defaultConversationID == "" {
		m.defaultConversationID = uuid.New().String()
	}
	return m
}

// EnsureSchema creates the messages table and its index when missing
func (m *PostgresMemory) EnsureSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS messages (
	seq             BIGSERIAL PRIMARY KEY,
	conversation_id TEXT NOT NULL,
	sender          TEXT NOT NULL,
	role            TEXT NOT NULL,
	content         TEXT NOT NULL,
	metadata        JSONB,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS messages_conversation_seq_idx
	ON messages (conversation_id, seq);`

	if _, err := m.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create messages schema: %w", err)
	}
	return nil
}

// AddMessage inserts a message row for the conversation
func (m *PostgresMemory) AddMessage(ctx context.Context, message interfaces.Message) error {
	var metadata []byte
	if message.Metadata != nil {
		var err error
		metadata, err = json.Marshal(message.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode message metadata: %w", err)
		}
	}

	_, err := m.db.ExecContext(ctx,
		`INSERT INTO messages (conversation_id, sender, role, content, metadata)
		 VALUES ($1, $2, $3, $4, $5)`,
		m.conversationID(ctx), message.Sender, string(message.Role), message.Content, metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// GetMessages returns the conversation's messages ordered by sequence
func (m *PostgresMemory) GetMessages(ctx context.Context, options ...interfaces.GetMessagesOption) ([]interfaces.Message, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT sender, role, content, metadata
		 FROM messages
		 WHERE conversation_id = $1
		 ORDER BY seq`,
		m.conversationID(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []interfaces.Message
	for rows.Next() {
		var message interfaces.Message
		var role string
		var metadata []byte
		if err := rows.Scan(&message.Sender, &role, &message.Content, &metadata); err != nil {
			return nil, fmt.Errorf("failed to scan message row: %w", err)
		}
		message.Role = interfaces.MessageRole(role)
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &message.Metadata); err != nil {
				return nil, fmt.Errorf("failed to decode message metadata: %w", err)
			}
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate message rows: %w", err)
	}
	return filterMessages(messages, options...), nil
}

// Clear deletes the conversation's messages
func (m *PostgresMemory) Clear(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx,
		`DELETE FROM messages WHERE conversation_id = $1`,
		m.conversationID(ctx),
	); err != nil {
		return fmt.Errorf("failed to clear conversation: %w", err)
	}
	return nil
}

func (m *PostgresMemory) conversationID(ctx context.Context) string {
	if id, ok := GetConversationID(ctx); ok {
		return id
	}
	return m.defaultConversationID
}

var _ interfaces.Memory = (*PostgresMemory)(nil)
