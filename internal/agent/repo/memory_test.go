package repo

import (
	"context"
	"fmt"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryAppendAndLoad(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository(20)

	h, err := r.LoadHistory(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, h.Messages, "unseen session yields empty history")

	require.NoError(t, r.AddMessage(ctx, "s1", schema.UserMessage("hello")))
	require.NoError(t, r.AddMessage(ctx, "s1", schema.AssistantMessage("hi, how can I help?", nil)))

	h, err = r.LoadHistory(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, h.Messages, 2)
	assert.Equal(t, schema.User, h.Messages[0].Role)
	assert.Equal(t, "hello", h.Messages[0].Content)
	assert.Equal(t, schema.Assistant, h.Messages[1].Role)

	n, err := r.GetMessageCount(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMemoryRepositoryTrimsToMaxHistory(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository(4)

	for i := 0; i < 10; i++ {
		require.NoError(t, r.AddMessage(ctx, "s1", schema.UserMessage(fmt.Sprintf("msg-%d", i))))
	}

	h, err := r.LoadHistory(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, h.Messages, 4)
	// the oldest messages are dropped first
	assert.Equal(t, "msg-6", h.Messages[0].Content)
	assert.Equal(t, "msg-9", h.Messages[3].Content)
}

func TestMemoryRepositorySessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository(20)

	require.NoError(t, r.AddMessage(ctx, "alice", schema.UserMessage("from alice")))
	require.NoError(t, r.AddMessage(ctx, "bob", schema.UserMessage("from bob")))

	h, err := r.LoadHistory(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, h.Messages, 1)
	assert.Equal(t, "from alice", h.Messages[0].Content)

	require.NoError(t, r.ClearHistory(ctx, "alice"))

	n, err := r.GetMessageCount(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = r.GetMessageCount(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestMemoryRepositoryLoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryConversationRepository(20)

	require.NoError(t, r.AddMessage(ctx, "s1", schema.UserMessage("original")))

	h, err := r.LoadHistory(ctx, "s1")
	require.NoError(t, err)
	h.Messages = append(h.Messages, schema.UserMessage("rogue append"))

	n, err := r.GetMessageCount(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "mutating a loaded history must not touch the store")
}
