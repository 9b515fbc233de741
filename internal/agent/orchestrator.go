// Package agent drives one chat turn end to end: the FAQ and query-cache
// short circuits, the bounded tool-calling loop against the completion
// service, and the post-turn cache write-or-invalidate policy.
package agent

import (
	"context"
	"fmt"
	"sync"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/schema"
	"github.com/google/uuid"

	"github.com/hrms-agent/server/internal/agent/dispatch"
	"github.com/hrms-agent/server/internal/agent/llm"
	"github.com/hrms-agent/server/internal/agent/model"
	"github.com/hrms-agent/server/internal/agent/prompts"
	"github.com/hrms-agent/server/internal/agent/tools"
	"github.com/hrms-agent/server/internal/cache"
	"github.com/hrms-agent/server/internal/faq"
	logx "github.com/hrms-agent/server/pkg/logger"
)

// FallbackReply is returned verbatim when the tool round budget runs out
// before the model produces a final answer.
const FallbackReply = "I'm sorry, I wasn't able to complete your request. " +
	"Please try rephrasing or simplifying your question."

type Orchestrator struct {
	chat          llm.ChatModel
	pricing       model.Pricing
	dispatcher    *dispatch.Dispatcher
	conversations model.ConversationRepository
	queryCache    cache.QueryCache
	maxRounds     int
	locks         *sessionLocks
	handlers      []einocb.Handler
}

func NewOrchestrator(
	chat llm.ChatModel,
	modelName string,
	dispatcher *dispatch.Dispatcher,
	conversations model.ConversationRepository,
	queryCache cache.QueryCache,
	config model.AgentConfig,
	handlers ...einocb.Handler,
) *Orchestrator {
	maxRounds := config.MaxToolRounds
	if maxRounds <= 0 {
		maxRounds = 8
	}
	return &Orchestrator{
		chat:          chat,
		pricing:       model.ResolvePricing(modelName),
		dispatcher:    dispatcher,
		conversations: conversations,
		queryCache:    queryCache,
		maxRounds:     maxRounds,
		locks:         newSessionLocks(),
		handlers:      handlers,
	}
}

// RunTurn processes one inbound chat message and returns the assistant's
// reply. FAQ and cache hits return without touching session history or the
// model; everything else goes through the tool-calling loop. A completion
// service failure aborts the turn and propagates to the caller.
func (o *Orchestrator) RunTurn(ctx context.Context, req model.TurnRequest) (*model.TurnResult, error) {
	if req.User == nil {
		return nil, fmt.Errorf("turn for session %s has no authenticated user", req.SessionID)
	}
	turnID := uuid.NewString()

	if answer, ok := faq.Match(req.Query); ok {
		logx.Info().Str("turn_id", turnID).Str("session_id", req.SessionID).Msg("FAQ hit")
		return &model.TurnResult{TurnID: turnID, Reply: answer, Source: model.SourceFAQ}, nil
	}

	// Cache backend failures degrade to a miss.
	if entry, ok, err := o.queryCache.Get(ctx, req.Query); err != nil {
		logx.Warn().Err(err).Str("session_id", req.SessionID).Msg("Query cache lookup failed")
	} else if ok {
		logx.Info().Str("turn_id", turnID).Str("session_id", req.SessionID).Msg("Cache hit")
		return &model.TurnResult{TurnID: turnID, Reply: entry.Reply, Source: model.SourceCache}, nil
	}

	// Turns for the same session must not interleave on history.
	unlock := o.locks.acquire(req.SessionID)
	defer unlock()

	if len(o.handlers) > 0 {
		ctx = einocb.InitCallbacks(ctx, &einocb.RunInfo{Name: "hrms-agent"}, o.handlers...)
	}

	if err := o.conversations.AddMessage(ctx, req.SessionID, schema.UserMessage(req.Query)); err != nil {
		return nil, fmt.Errorf("append user message: %w", err)
	}
	history, err := o.conversations.LoadHistory(ctx, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	systemPrompt, err := prompts.RenderSystemPrompt(ctx, req.User)
	if err != nil {
		return nil, err
	}

	messages := make([]*schema.Message, 0, len(history.Messages)+1)
	messages = append(messages, schema.SystemMessage(systemPrompt))
	messages = append(messages, history.Messages...)

	var (
		finalReply string
		source     = model.SourceFallback
		wroteData  bool
		rounds     int
		costUSD    float64
	)

	for round := 0; round < o.maxRounds; round++ {
		out, err := o.chat.Generate(ctx, messages)
		if err != nil {
			return nil, fmt.Errorf("completion request: %w", err)
		}
		rounds++
		costUSD += o.roundCost(out)

		if len(out.ToolCalls) == 0 {
			finalReply = out.Content
			source = model.SourceModel
			break
		}

		// The model's own tool-call request becomes part of the transcript.
		messages = append(messages, out)

		for _, call := range out.ToolCalls {
			name := call.Function.Name
			logx.Info().
				Str("tool", name).
				Str("turn_id", turnID).
				Str("session_id", req.SessionID).
				Msg("Tool call")

			// Requested intent counts, even when the call is denied or fails.
			if tools.IsWriteTool(name) {
				wroteData = true
			}

			result := o.dispatcher.Execute(ctx, req.User, name, call.Function.Arguments)
			messages = append(messages, schema.ToolMessage(result, call.ID))
		}
	}

	if source == model.SourceFallback {
		finalReply = FallbackReply
		logx.Warn().
			Str("turn_id", turnID).
			Str("session_id", req.SessionID).
			Int("rounds", rounds).
			Msg("Tool round budget exhausted")
	}

	if err := o.conversations.AddMessage(ctx, req.SessionID, schema.AssistantMessage(finalReply, nil)); err != nil {
		return nil, fmt.Errorf("append assistant message: %w", err)
	}

	if wroteData {
		if removed, err := o.queryCache.InvalidateAll(ctx); err != nil {
			logx.Warn().Err(err).Str("session_id", req.SessionID).Msg("Cache invalidation failed")
		} else {
			logx.Info().
				Int("removed", removed).
				Str("turn_id", turnID).
				Str("session_id", req.SessionID).
				Msg("Cache invalidated due to write operation")
		}
	} else if err := o.queryCache.Set(ctx, req.Query, finalReply, "", nil); err != nil {
		logx.Warn().Err(err).Str("session_id", req.SessionID).Msg("Cache write failed")
	}

	return &model.TurnResult{
		TurnID:    turnID,
		Reply:     finalReply,
		Source:    source,
		Rounds:    rounds,
		WroteData: wroteData,
		CostUSD:   costUSD,
	}, nil
}

func (o *Orchestrator) roundCost(out *schema.Message) float64 {
	if out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return 0
	}
	_, _, total := model.ComputeCost(out.ResponseMeta.Usage, o.pricing)
	return total
}

// sessionLocks serializes turns per session id. Locks are created on first
// use and live for the process lifetime, like the sessions they guard.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sync.Mutex)}
}

func (s *sessionLocks) acquire(sessionID string) func() {
	s.mu.Lock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}
