package conversation

import "context"

// Store persists conversations for the lifetime of a session. All state
// is ephemeral; implementations are expected to expire entries rather
// than keep them across sessions.
type Store interface {
	Get(ctx context.Context, id string) (Conversation, bool, error)
	Save(ctx context.Context, conv Conversation) error
	Delete(ctx context.Context, id string) error
}
