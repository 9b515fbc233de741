// Package audit records every successful HR mutation: who did what to whom,
// with an argument snapshot.
package audit

import (
	"context"
	"time"

	logx "github.com/hrms-agent/server/pkg/logger"
)

// Entry is one immutable audit record.
type Entry struct {
	ID          string         `json:"id"`
	Action      string         `json:"action"`
	PerformedBy string         `json:"performed_by"`
	Target      string         `json:"target,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Recorder persists audit entries. Callers treat Record as fire-and-forget;
// a failed write is logged, never surfaced to the user.
type Recorder interface {
	Record(ctx context.Context, action, performedBy, target string, details map[string]any) error
}

// LogRecorder writes audit entries to the structured log only. It is the
// fallback when no audit database path is configured.
type LogRecorder struct{}

func NewLogRecorder() *LogRecorder {
	return &LogRecorder{}
}

func (l *LogRecorder) Record(_ context.Context, action, performedBy, target string, details map[string]any) error {
	logx.Info().
		Str("action", action).
		Str("performed_by", performedBy).
		Str("target", target).
		Interface("details", details).
		Msg("audit")
	return nil
}

var _ Recorder = (*LogRecorder)(nil)
