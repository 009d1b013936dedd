package convstore

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/outdoor-planner/internal/domain/conversation"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(0, clockwork.NewFakeClock())
	conv := conversation.Conversation{
		ID:       "c1",
		State:    conversation.State{Stage: conversation.StageAwaitingLocation},
		Messages: []conversation.Message{{ID: "m1", Text: "hi", Sender: conversation.SenderBot}},
	}

	require.NoError(t, store.Save(context.Background(), conv))

	got, ok, err := store.Get(context.Background(), "c1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, conv, got)

	require.NoError(t, store.Delete(context.Background(), "c1"))
	_, ok, err = store.Get(context.Background(), "c1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	store := NewMemoryStore(time.Hour, clock)

	require.NoError(t, store.Save(context.Background(), conversation.Conversation{ID: "c1"}))

	_, ok, err := store.Get(context.Background(), "c1")
	require.NoError(t, err)
	require.True(t, ok)

	clock.Advance(2 * time.Hour)

	_, ok, err = store.Get(context.Background(), "c1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryStoreMissing(t *testing.T) {
	store := NewMemoryStore(0, clockwork.NewFakeClock())
	_, ok, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	require.False(t, ok)
}
