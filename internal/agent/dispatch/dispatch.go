// Package dispatch executes tool calls requested by the completion service:
// it gates each call on the acting user's role, sanitizes model-produced
// arguments, shapes every failure into an {"error": ...} payload the model
// can read, and records an audit entry for successful writes.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hrms-agent/server/internal/agent/tools"
	"github.com/hrms-agent/server/internal/audit"
	"github.com/hrms-agent/server/internal/hr"
	logx "github.com/hrms-agent/server/pkg/logger"
)

type Dispatcher struct {
	registry *tools.Registry
	recorder audit.Recorder
}

func NewDispatcher(registry *tools.Registry, recorder audit.Recorder) *Dispatcher {
	return &Dispatcher{registry: registry, recorder: recorder}
}

// Execute runs one tool call for the acting user and returns the JSON payload
// for the tool result message. Denials, unknown tools, and handler failures
// all come back as {"error": ...} so the loop never aborts on a bad call.
func (d *Dispatcher) Execute(ctx context.Context, user *hr.User, name, arguments string) string {
	perm, ok := tools.RequiredPermission[name]
	if !ok {
		logx.Warn().Str("tool", name).Msg("unknown tool requested")
		return errorJSON(fmt.Sprintf("Unknown tool: %s", name))
	}

	if user == nil {
		return errorJSON("Access denied. No authenticated user for this turn.")
	}
	if !user.Role.Has(perm) {
		return errorJSON(fmt.Sprintf("Access denied. Your role '%s' does not have '%s' permission.", user.Role, perm))
	}

	tl, ok := d.registry.Get(name)
	if !ok {
		return errorJSON(fmt.Sprintf("Unknown tool: %s", name))
	}

	arguments = sanitizeArguments(arguments)
	result, err := tl.InvokableRun(hr.WithUser(ctx, user), arguments)
	if err != nil {
		logx.Error().Err(err).Str("tool", name).Msg("tool execution failed")
		return errorJSON(err.Error())
	}

	if tools.IsWriteTool(name) && !hasErrorKey(result) {
		d.recordAudit(ctx, user, name, arguments)
	}
	return result
}

func (d *Dispatcher) recordAudit(ctx context.Context, user *hr.User, name, arguments string) {
	if d.recorder == nil {
		return
	}
	var details map[string]any
	_ = json.Unmarshal([]byte(arguments), &details)

	action := name
	if name == tools.ToolApproveOrRejectLeave {
		action = "approve_reject_leave"
	}
	if err := d.recorder.Record(ctx, action, user.Email, auditTarget(name, details), details); err != nil {
		logx.Warn().Err(err).Str("action", action).Msg("failed to record audit entry")
	}
}

// auditTarget picks the record the write acted on.
func auditTarget(name string, args map[string]any) string {
	switch name {
	case tools.ToolSetHRPolicy:
		return "hr_policy"
	case tools.ToolAssignRole:
		return stringArg(args, "email")
	case tools.ToolReviewUpdateRequest:
		return stringArg(args, "request_id")
	default:
		return stringArg(args, "emp_code")
	}
}

func stringArg(args map[string]any, key string) string {
	if s, ok := args[key].(string); ok {
		return s
	}
	return ""
}

// sanitizeArguments trims model-produced string arguments in place. Best
// effort; non-JSON input passes through untouched and empty input becomes an
// empty object.
func sanitizeArguments(arguments string) string {
	if strings.TrimSpace(arguments) == "" {
		return "{}"
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(arguments), &m); err != nil {
		return arguments
	}
	for k, v := range m {
		if s, ok := v.(string); ok {
			m[k] = strings.TrimSpace(s)
		}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return arguments
	}
	return string(b)
}

func hasErrorKey(result string) bool {
	var m map[string]any
	if err := json.Unmarshal([]byte(result), &m); err != nil {
		return false
	}
	_, ok := m["error"]
	return ok
}

func errorJSON(msg string) string {
	b, _ := json.Marshal(map[string]string{"error": msg})
	return string(b)
}
