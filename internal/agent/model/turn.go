package model

import (
	"github.com/hrms-agent/server/internal/hr"
)

// TurnSource identifies which layer produced the final reply.
type TurnSource string

const (
	SourceFAQ      TurnSource = "faq"
	SourceCache    TurnSource = "cache"
	SourceModel    TurnSource = "model"
	SourceFallback TurnSource = "fallback"
)

// TurnRequest is one inbound chat turn.
type TurnRequest struct {
	SessionID string   `json:"session_id"`
	Query     string   `json:"query"`
	User      *hr.User `json:"-"`
}

// TurnResult is the outcome of one orchestrated turn.
type TurnResult struct {
	TurnID    string     `json:"turn_id"`
	Reply     string     `json:"reply"`
	Source    TurnSource `json:"source"`
	Rounds    int        `json:"rounds"`
	WroteData bool       `json:"wrote_data"`
	CostUSD   float64    `json:"cost_usd"`
}
