package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/hrms-agent/server/internal/hr"
)

// ===================================
// Submit Update Request Tool
// ===================================

type SubmitUpdateRequestInput struct {
	EmpCode string            `json:"emp_code"`
	Fields  map[string]string `json:"fields"`
	Reason  string            `json:"reason"`
}

type SubmitUpdateRequestOutput struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	RequestID string            `json:"request_id"`
	Fields    map[string]string `json:"fields_requested,omitempty"`
}

func createSubmitUpdateRequestTool(req hr.RequestService) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSubmitUpdateRequest,
			Desc: "Employee submits a request to update their own profile fields. Allowed fields: name, email, department, designation, manager_name. The request goes to HR for approval. Employee must provide the fields they want to change and a reason.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"emp_code": {
					Type:     "string",
					Desc:     "Employee code of the requester.",
					Required: true,
				},
				"fields": {
					Type:     "object",
					Desc:     "Fields to update. Keys are field names, values are new desired values. e.g. {\"designation\": \"Senior Engineer\", \"department\": \"Product\"}",
					Required: true,
				},
				"reason": {
					Type:     "string",
					Desc:     "Reason for the change request.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *SubmitUpdateRequestInput) (*SubmitUpdateRequestOutput, error) {
			submitted, err := req.SubmitRequest(ctx, in.EmpCode, in.Fields, in.Reason)
			if err != nil {
				return nil, err
			}
			return &SubmitUpdateRequestOutput{
				Success:   true,
				Message:   fmt.Sprintf("Update request submitted for %s. Request is pending HR/manager approval.", submitted.EmpCode),
				RequestID: submitted.RequestID,
				Fields:    submitted.Fields,
			}, nil
		},
	)
}

// ===================================
// List Update Requests Tool
// ===================================

type ListUpdateRequestsInput struct {
	Status  string `json:"status,omitempty"`
	EmpCode string `json:"emp_code,omitempty"`
}

type ListUpdateRequestsOutput struct {
	Message        string              `json:"message,omitempty"`
	UpdateRequests []*hr.UpdateRequest `json:"update_requests,omitempty"`
	Total          int                 `json:"total,omitempty"`
}

func createListUpdateRequestsTool(req hr.RequestService) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolListUpdateRequests,
			Desc: "List employee profile update requests. HR/managers see all; employees see only their own. Can filter by status (pending, approved, rejected) and emp_code.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"status": {
					Type: "string",
					Desc: "Filter by status: pending, approved, rejected. Optional.",
				},
				"emp_code": {
					Type: "string",
					Desc: "Filter by employee code. Optional.",
				},
			}),
		},
		func(ctx context.Context, in *ListUpdateRequestsInput) (*ListUpdateRequestsOutput, error) {
			requests, err := req.ListRequests(ctx, in.Status, in.EmpCode)
			if err != nil {
				return nil, err
			}
			if len(requests) == 0 {
				return &ListUpdateRequestsOutput{Message: "No update requests found."}, nil
			}
			return &ListUpdateRequestsOutput{
				UpdateRequests: requests,
				Total:          len(requests),
			}, nil
		},
	)
}

// ===================================
// Review Update Request Tool
// ===================================

type ReviewUpdateRequestInput struct {
	RequestID string `json:"request_id"`
	Action    string `json:"action"`
	Comment   string `json:"comment,omitempty"`
}

type ReviewUpdateRequestOutput struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func createReviewUpdateRequestTool(req hr.RequestService) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolReviewUpdateRequest,
			Desc: "Approve or reject an employee's profile update request. Only HR admin and super admin can do this. On approval, changes are automatically applied to the employee record.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"request_id": {
					Type:     "string",
					Desc:     "The update request ID to review.",
					Required: true,
				},
				"action": {
					Type:     "string",
					Desc:     "'approve' or 'reject'.",
					Required: true,
				},
				"comment": {
					Type: "string",
					Desc: "Optional review comment.",
				},
			}),
		},
		func(ctx context.Context, in *ReviewUpdateRequestInput) (*ReviewUpdateRequestOutput, error) {
			reviewed, err := req.ReviewRequest(ctx, in.RequestID, in.Action, actorEmail(ctx), in.Comment)
			if errors.Is(err, hr.ErrNotFound) {
				return &ReviewUpdateRequestOutput{
					Error: fmt.Sprintf("Update request '%s' not found.", in.RequestID),
				}, nil
			}
			if err != nil {
				return nil, err
			}
			if reviewed.Status == "rejected" {
				comment := reviewed.Comment
				if comment == "" {
					comment = "No comment"
				}
				return &ReviewUpdateRequestOutput{
					Success: true,
					Message: fmt.Sprintf("Request rejected for %s. Comment: %s.", reviewed.EmpCode, comment),
				}, nil
			}
			return &ReviewUpdateRequestOutput{
				Success: true,
				Message: fmt.Sprintf("Request approved. Changes applied to %s: %s.", reviewed.EmpCode, describeFields(reviewed.Fields)),
			}, nil
		},
	)
}

func describeFields(fields map[string]string) string {
	parts := make([]string, 0, len(fields))
	for field, value := range fields {
		parts = append(parts, fmt.Sprintf("%s → %s", field, value))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
