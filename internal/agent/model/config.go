package model

// AgentConfig bounds one orchestration turn and the stores behind it.
// TTL values are duration strings parsed at startup.
type AgentConfig struct {
	MaxToolRounds   int     `envconfig:"AGENT_MAX_TOOL_ROUNDS" default:"8"`
	MaxHistory      int     `envconfig:"AGENT_MAX_HISTORY" default:"20"`
	Temperature     float32 `envconfig:"AGENT_TEMPERATURE" default:"0.3"`
	CacheTTL        string  `envconfig:"AGENT_CACHE_TTL" default:"300s"`
	ConversationTTL string  `envconfig:"AGENT_CONVERSATION_TTL" default:"24h"`
}

// ChatModelConfig selects the completion-service provider and model.
type ChatModelConfig struct {
	Provider    string `envconfig:"CHAT_MODEL_PROVIDER" default:"openai"`
	Model       string `envconfig:"CHAT_MODEL" default:"gpt-4o-mini"`
	APIKey      string `envconfig:"CHAT_MODEL_API_KEY" required:"true"`
	BaseURL     string `envconfig:"CHAT_MODEL_BASE_URL"`
	GeminiModel string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
}

// AuditConfig selects where audit entries are persisted. An empty path
// downgrades auditing to structured-log output only.
type AuditConfig struct {
	DBPath string `envconfig:"AUDIT_DB_PATH" default:"data/audit.db"`
}
