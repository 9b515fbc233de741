package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/hrms-agent/server/internal/agent"
	"github.com/hrms-agent/server/internal/agent/dispatch"
	"github.com/hrms-agent/server/internal/agent/llm"
	"github.com/hrms-agent/server/internal/agent/model"
	"github.com/hrms-agent/server/internal/agent/observers"
	"github.com/hrms-agent/server/internal/agent/repo"
	"github.com/hrms-agent/server/internal/agent/tools"
	"github.com/hrms-agent/server/internal/audit"
	"github.com/hrms-agent/server/internal/cache"
	"github.com/hrms-agent/server/internal/core"
	"github.com/hrms-agent/server/internal/hr"
	logx "github.com/hrms-agent/server/pkg/logger"
	pkgredis "github.com/hrms-agent/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the HRMS agent,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// Agent configs
	Agent     model.AgentConfig
	ChatModel model.ChatModelConfig
	Audit     model.AuditConfig
}

func main() {
	fmt.Println("Starting HRMS agent demo...")
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	cacheTTL, err := time.ParseDuration(envCfg.Agent.CacheTTL)
	if err != nil {
		log.Fatalf("Invalid AGENT_CACHE_TTL '%s': %v", envCfg.Agent.CacheTTL, err)
	}
	conversationTTL, err := time.ParseDuration(envCfg.Agent.ConversationTTL)
	if err != nil {
		log.Fatalf("Invalid AGENT_CONVERSATION_TTL '%s': %v", envCfg.Agent.ConversationTTL, err)
	}

	// ====================================================
	// Backends: Redis when configured, in-memory otherwise
	var (
		queryCache    cache.QueryCache
		conversations model.ConversationRepository
	)
	if envCfg.Redis.Enabled() {
		rdb, err := envCfg.Redis.New()
		if err != nil {
			log.Fatalf("Failed to initialise Redis client: %v", err)
		}
		defer rdb.Close()
		fmt.Println("Connected to Redis successfully")

		queryCache = cache.NewRedisQueryCache(rdb, cacheTTL)
		conversations = repo.NewRedisConversationRepository(rdb, conversationTTL, envCfg.Agent.MaxHistory)
	} else {
		fmt.Println("Redis not configured, using in-memory backends")
		queryCache = cache.NewMemoryQueryCache(cacheTTL)
		conversations = repo.NewMemoryConversationRepository(envCfg.Agent.MaxHistory)
	}

	var recorder audit.Recorder
	var sqliteRecorder *audit.SQLiteRecorder
	if envCfg.Audit.DBPath != "" {
		sqliteRecorder, err = audit.NewSQLiteRecorder(envCfg.Audit.DBPath)
		if err != nil {
			log.Fatalf("Failed to open audit database: %v", err)
		}
		defer sqliteRecorder.Close()
		recorder = sqliteRecorder
	} else {
		recorder = audit.NewLogRecorder()
	}

	// ====================================================
	// HR domain services with the demo data set
	store := hr.NewStore()
	if err := store.Seed(ctx); err != nil {
		log.Fatalf("Failed to seed HR data: %v", err)
	}

	registry := tools.NewRegistry(store.Services())
	toolInfos, err := registry.Infos(ctx)
	if err != nil {
		log.Fatalf("Failed to describe tools: %v", err)
	}

	modelName := envCfg.ChatModel.Model
	if strings.EqualFold(envCfg.ChatModel.Provider, llm.ProviderGemini) {
		modelName = envCfg.ChatModel.GeminiModel
	}

	chatModel, modelName, err := llm.NewChatModel(ctx, llm.Config{
		Provider:    envCfg.ChatModel.Provider,
		Model:       modelName,
		APIKey:      envCfg.ChatModel.APIKey,
		BaseURL:     envCfg.ChatModel.BaseURL,
		Temperature: envCfg.Agent.Temperature,
	}, toolInfos)
	if err != nil {
		log.Fatalf("Failed to create chat model: %v", err)
	}

	orchestrator := agent.NewOrchestrator(
		chatModel,
		modelName,
		dispatch.NewDispatcher(registry, recorder),
		conversations,
		queryCache,
		envCfg.Agent,
		observers.NewTurnCallbacks(),
	)

	// ====================================================
	// Scripted turns covering every reply source
	priya, err := store.FindByEmail(ctx, "priya.hr@company.com")
	if err != nil {
		log.Fatalf("Failed to load demo user: %v", err)
	}
	anita, err := store.FindByEmail(ctx, "anita.d@company.com")
	if err != nil {
		log.Fatalf("Failed to load demo user: %v", err)
	}

	demoTurns := []struct {
		description string
		sessionID   string
		user        *hr.User
		query       string
	}{
		{
			description: "FAQ short-circuit, no model call",
			sessionID:   "demo-anita",
			user:        anita,
			query:       "What is the leave policy?",
		},
		{
			description: "Employee lookup via tool call",
			sessionID:   "demo-priya",
			user:        priya,
			query:       "Who is EMP004 and which department do they work in?",
		},
		{
			description: "Identical query served from the cache",
			sessionID:   "demo-priya",
			user:        priya,
			query:       "Who is EMP004 and which department do they work in?",
		},
		{
			description: "Leave application (write, invalidates cache)",
			sessionID:   "demo-anita",
			user:        anita,
			query:       "Apply casual leave for EMP004 from 2026-09-01 to 2026-09-02, reason family function.",
		},
		{
			description: "Payroll question after invalidation",
			sessionID:   "demo-priya",
			user:        priya,
			query:       "Show the June 2026 payroll for EMP005.",
		},
	}

	for i, turn := range demoTurns {
		fmt.Printf("\n🚀 Turn %d: %s\n", i+1, turn.description)
		fmt.Printf("User: %s (%s)\n", turn.user.Name, turn.user.Role)
		fmt.Printf("Query: %q\n", turn.query)
		fmt.Println("Processing...")

		result, err := orchestrator.RunTurn(ctx, model.TurnRequest{
			SessionID: turn.sessionID,
			Query:     turn.query,
			User:      turn.user,
		})
		if err != nil {
			log.Fatalf("Turn %d failed: %v", i+1, err)
		}

		fmt.Printf("✅ Reply (source=%s rounds=%d wrote=%t cost=$%.6f):\n%s\n",
			result.Source, result.Rounds, result.WroteData, result.CostUSD, result.Reply)
		fmt.Println("─────────────────────────────────────────────")

		// slight delay between turns for readability
		time.Sleep(500 * time.Millisecond)
	}

	if sqliteRecorder != nil {
		entries, err := sqliteRecorder.Recent(ctx, 10)
		if err != nil {
			log.Fatalf("Failed to read audit entries: %v", err)
		}
		fmt.Printf("\n📋 Audit trail (%d recent entries):\n", len(entries))
		for _, e := range entries {
			fmt.Printf("  %s  %s by %s on %s\n",
				e.CreatedAt.Format(time.RFC3339), e.Action, e.PerformedBy, e.Target)
		}
	}

	fmt.Println("\n🎉 Demo completed successfully!")
}
