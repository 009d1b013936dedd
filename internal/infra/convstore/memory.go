package convstore

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/yanqian/outdoor-planner/internal/domain/conversation"
)

type convRecord struct {
	payload   conversation.Conversation
	expiresAt time.Time
}

// MemoryStore keeps conversations in process memory. It is the default
// backend and the one used by tests.
type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[string]convRecord
	ttl           time.Duration
	clock         clockwork.Clock
}

// NewMemoryStore constructs a store backed by process memory. A zero ttl
// disables expiry.
func NewMemoryStore(ttl time.Duration, clock clockwork.Clock) *MemoryStore {
	return &MemoryStore{
		conversations: make(map[string]convRecord),
		ttl:           ttl,
		clock:         clock,
	}
}

// Get implements conversation.Store.
func (s *MemoryStore) Get(_ context.Context, id string) (conversation.Conversation, bool, error) {
	s.mu.RLock()
	record, ok := s.conversations[id]
	s.mu.RUnlock()
	if !ok {
		return conversation.Conversation{}, false, nil
	}
	if !record.expiresAt.IsZero() && record.expiresAt.Before(s.clock.Now()) {
		s.mu.Lock()
		delete(s.conversations, id)
		s.mu.Unlock()
		return conversation.Conversation{}, false, nil
	}
	return record.payload, true, nil
}

// Save stores the conversation, refreshing its expiry.
func (s *MemoryStore) Save(_ context.Context, conv conversation.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if s.ttl > 0 {
		exp = s.clock.Now().Add(s.ttl)
	}
	s.conversations[conv.ID] = convRecord{payload: conv, expiresAt: exp}
	return nil
}

// Delete removes the conversation.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conversations, id)
	return nil
}

var _ conversation.Store = (*MemoryStore)(nil)
