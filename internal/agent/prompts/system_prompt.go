// Package prompts renders the role-aware system prompt sent on every turn.
// The prompt is synthesized fresh from the caller's identity and never
// stored in session history.
package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/hrms-agent/server/internal/hr"
)

//go:embed template/system_prompt.txt
var coreSystemPrompt string

// RenderSystemPrompt renders the system prompt for the given user and
// triggers prompt callbacks.
func RenderSystemPrompt(ctx context.Context, user *hr.User) (string, error) {
	empCode := user.EmpCode
	if empCode == "" {
		empCode = "not linked"
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(coreSystemPrompt),
	)
	vars := map[string]any{
		"UserName":  user.Name,
		"UserEmail": user.Email,
		"UserRole":  string(user.Role),
		"EmpCode":   empCode,
		"Today":     time.Now().UTC().Format("2006-01-02"),
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("system prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("system prompt render: empty result")
	}
	return msgs[0].Content, nil
}
