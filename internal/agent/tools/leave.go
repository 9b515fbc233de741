package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/hrms-agent/server/internal/hr"
)

// ===================================
// Leave Records Tool
// ===================================

type GetLeaveRecordsInput struct {
	EmpCode string `json:"emp_code"`
	Status  string `json:"status,omitempty"`
}

type GetLeaveRecordsOutput struct {
	Message      string            `json:"message,omitempty"`
	LeaveRecords []*hr.LeaveRecord `json:"leave_records,omitempty"`
}

func createGetLeaveRecordsTool(leave hr.LeaveService) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGetLeaveRecords,
			Desc: "Get leave records for an employee by emp_code. Optionally filter by status.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"emp_code": {
					Type:     "string",
					Desc:     "Employee code.",
					Required: true,
				},
				"status": {
					Type: "string",
					Desc: "Filter by leave status: pending, approved, rejected. Optional.",
				},
			}),
		},
		func(ctx context.Context, in *GetLeaveRecordsInput) (*GetLeaveRecordsOutput, error) {
			records, err := leave.Records(ctx, in.EmpCode, in.Status)
			if err != nil {
				return nil, err
			}
			if len(records) == 0 {
				return &GetLeaveRecordsOutput{
					Message: fmt.Sprintf("No leave records for %s.", in.EmpCode),
				}, nil
			}
			return &GetLeaveRecordsOutput{LeaveRecords: records}, nil
		},
	)
}

// ===================================
// Apply Leave Tool
// ===================================

type ApplyLeaveInput struct {
	EmpCode   string `json:"emp_code"`
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason"`
}

type ApplyLeaveOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func createApplyLeaveTool(leave hr.LeaveService) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolApplyLeave,
			Desc: "Apply for leave on behalf of an employee.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"emp_code": {Type: "string", Required: true},
				"leave_type": {
					Type:     "string",
					Desc:     "casual, sick, or earned.",
					Required: true,
				},
				"start_date": {
					Type:     "string",
					Desc:     "Start date YYYY-MM-DD.",
					Required: true,
				},
				"end_date": {
					Type:     "string",
					Desc:     "End date YYYY-MM-DD.",
					Required: true,
				},
				"reason": {
					Type:     "string",
					Desc:     "Reason for leave.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *ApplyLeaveInput) (*ApplyLeaveOutput, error) {
			_, err := leave.Apply(ctx, hr.LeaveRequest{
				EmpCode:   in.EmpCode,
				LeaveType: in.LeaveType,
				StartDate: in.StartDate,
				EndDate:   in.EndDate,
				Reason:    in.Reason,
			})
			if err != nil {
				return nil, err
			}
			return &ApplyLeaveOutput{
				Success: true,
				Message: fmt.Sprintf("Leave applied for %s from %s to %s.", in.EmpCode, in.StartDate, in.EndDate),
			}, nil
		},
	)
}

// ===================================
// Approve / Reject Leave Tool
// ===================================

type ApproveOrRejectLeaveInput struct {
	EmpCode   string `json:"emp_code"`
	StartDate string `json:"start_date"`
	Action    string `json:"action"`
}

type ApproveOrRejectLeaveOutput struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func createApproveOrRejectLeaveTool(leave hr.LeaveService) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolApproveOrRejectLeave,
			Desc: "Approve or reject a pending leave request. Only managers and HR can use this.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"emp_code": {
					Type:     "string",
					Desc:     "Employee code whose leave to action.",
					Required: true,
				},
				"start_date": {
					Type:     "string",
					Desc:     "Start date of the leave YYYY-MM-DD.",
					Required: true,
				},
				"action": {
					Type:     "string",
					Desc:     "'approve' or 'reject'.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *ApproveOrRejectLeaveInput) (*ApproveOrRejectLeaveOutput, error) {
			rec, err := leave.ApproveOrReject(ctx, in.EmpCode, in.StartDate, in.Action, actorEmail(ctx))
			if errors.Is(err, hr.ErrNotFound) {
				return &ApproveOrRejectLeaveOutput{
					Error: fmt.Sprintf("No pending leave found for %s starting %s.", in.EmpCode, in.StartDate),
				}, nil
			}
			if err != nil {
				return nil, err
			}
			return &ApproveOrRejectLeaveOutput{
				Success: true,
				Message: fmt.Sprintf("Leave for %s starting %s has been %s.", in.EmpCode, in.StartDate, rec.Status),
			}, nil
		},
	)
}
