package convstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/outdoor-planner/internal/domain/conversation"
)

// ValkeyStore keeps conversations in a Valkey-compatible database so a
// restart of the service does not drop live chats mid-dialogue. Entries
// expire with the session TTL; nothing survives beyond it.
type ValkeyStore struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// NewValkeyStore constructs a store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string, ttl time.Duration) *ValkeyStore {
	if prefix == "" {
		prefix = "conv"
	}
	return &ValkeyStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *ValkeyStore) Get(ctx context.Context, id string) (conversation.Conversation, bool, error) {
	cmd := s.client.B().Get().Key(s.key(id)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return conversation.Conversation{}, false, nil
		}
		return conversation.Conversation{}, false, err
	}
	var conv conversation.Conversation
	if err := json.Unmarshal([]byte(payload), &conv); err != nil {
		return conversation.Conversation{}, false, err
	}
	return conv, true, nil
}

func (s *ValkeyStore) Save(ctx context.Context, conv conversation.Conversation) error {
	payload, err := json.Marshal(conv)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.key(conv.ID)).Value(string(payload))
	var cmd valkey.Completed
	if s.ttl > 0 {
		ttl := s.ttl
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) Delete(ctx context.Context, id string) error {
	return s.client.Do(ctx, s.client.B().Del().Key(s.key(id)).Build()).Error()
}

func (s *ValkeyStore) key(id string) string {
	return s.prefix + ":" + id
}

var _ conversation.Store = (*ValkeyStore)(nil)
