package repo

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/schema"

	"github.com/hrms-agent/server/internal/agent/model"
)

// MemoryConversationRepository keeps session histories in a process-local
// map. It is the default backend when no Redis URL is configured; histories
// live for the lifetime of the process.
type MemoryConversationRepository struct {
	mu         sync.RWMutex
	maxHistory int
	sessions   map[string][]*schema.Message
}

func NewMemoryConversationRepository(maxHistory int) *MemoryConversationRepository {
	return &MemoryConversationRepository{
		maxHistory: maxHistory,
		sessions:   make(map[string][]*schema.Message),
	}
}

func (r *MemoryConversationRepository) AddMessage(_ context.Context, sessionID string, message *schema.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs := append(r.sessions[sessionID], message)
	if r.maxHistory > 0 && len(msgs) > r.maxHistory {
		msgs = msgs[len(msgs)-r.maxHistory:]
	}
	r.sessions[sessionID] = msgs
	return nil
}

func (r *MemoryConversationRepository) LoadHistory(_ context.Context, sessionID string) (*model.ConversationHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs := make([]*schema.Message, len(r.sessions[sessionID]))
	copy(msgs, r.sessions[sessionID])
	return &model.ConversationHistory{SessionID: sessionID, Messages: msgs}, nil
}

func (r *MemoryConversationRepository) ClearHistory(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}

func (r *MemoryConversationRepository) GetMessageCount(_ context.Context, sessionID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions[sessionID]), nil
}

var _ model.ConversationRepository = (*MemoryConversationRepository)(nil)
