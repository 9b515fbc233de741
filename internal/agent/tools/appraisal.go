package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/hrms-agent/server/internal/hr"
	logx "github.com/hrms-agent/server/pkg/logger"
)

// ===================================
// Initiate Appraisal Tool
// ===================================

type InitiateAppraisalInput struct {
	EmpCode         string `json:"emp_code"`
	AppraisalCycle  string `json:"appraisal_cycle"`
	ManagerFeedback string `json:"manager_feedback,omitempty"`
}

type InitiateAppraisalOutput struct {
	Success   bool          `json:"success"`
	Message   string        `json:"message"`
	Appraisal *hr.Appraisal `json:"appraisal"`
}

func createInitiateAppraisalTool(appr hr.AppraisalService) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolInitiateAppraisal,
			Desc: "Start an appraisal for an employee in a given cycle (e.g. 'FY2025-26', 'H1-2025'). Only HR admin and super admin can initiate.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"emp_code": {
					Type:     "string",
					Desc:     "Employee code to appraise.",
					Required: true,
				},
				"appraisal_cycle": {
					Type:     "string",
					Desc:     "Appraisal cycle label, e.g. 'FY2025-26', 'H1-2025'.",
					Required: true,
				},
				"manager_feedback": {
					Type: "string",
					Desc: "Optional initial manager feedback.",
				},
			}),
		},
		func(ctx context.Context, in *InitiateAppraisalInput) (*InitiateAppraisalOutput, error) {
			started, err := appr.InitiateAppraisal(ctx, in.EmpCode, in.AppraisalCycle, actorEmail(ctx), in.ManagerFeedback)
			if err != nil {
				return nil, err
			}
			return &InitiateAppraisalOutput{
				Success:   true,
				Message:   fmt.Sprintf("Appraisal initiated for %s, cycle '%s'. Use complete_appraisal to finalize with rating and salary revision.", started.EmpCode, started.Cycle),
				Appraisal: started,
			}, nil
		},
	)
}

// ===================================
// Complete Appraisal Tool
// ===================================

type CompleteAppraisalInput struct {
	EmpCode         string  `json:"emp_code"`
	AppraisalCycle  string  `json:"appraisal_cycle"`
	Rating          float64 `json:"rating"`
	HikePct         float64 `json:"hike_pct,omitempty"`
	NewSalary       float64 `json:"new_salary,omitempty"`
	NewDesignation  string  `json:"new_designation,omitempty"`
	ManagerFeedback string  `json:"manager_feedback,omitempty"`
	HRComments      string  `json:"hr_comments,omitempty"`
	EffectiveDate   string  `json:"effective_date,omitempty"`
}

type CompleteAppraisalOutput struct {
	Success   bool          `json:"success"`
	Message   string        `json:"message"`
	Appraisal *hr.Appraisal `json:"appraisal"`
}

func createCompleteAppraisalTool(appr hr.AppraisalService, pay hr.PayrollService) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolCompleteAppraisal,
			Desc: "Finalize an appraisal with rating and optional salary revision. Rating is 1-5 scale. Provide either hike_pct or new_salary for salary revision. On completion: employee salary and designation are auto-updated and a new payroll is generated.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"emp_code": {
					Type:     "string",
					Desc:     "Employee code.",
					Required: true,
				},
				"appraisal_cycle": {
					Type:     "string",
					Desc:     "Cycle to finalize.",
					Required: true,
				},
				"rating": {
					Type:     "number",
					Desc:     "Performance rating 1.0 to 5.0.",
					Required: true,
				},
				"hike_pct": {
					Type: "number",
					Desc: "Percentage salary hike, e.g. 15 for 15%. Optional if new_salary given.",
				},
				"new_salary": {
					Type: "number",
					Desc: "New annual CTC in INR. Optional if hike_pct given.",
				},
				"new_designation": {
					Type: "string",
					Desc: "New designation after appraisal. Optional.",
				},
				"manager_feedback": {
					Type: "string",
					Desc: "Manager feedback. Optional.",
				},
				"hr_comments": {
					Type: "string",
					Desc: "HR comments. Optional.",
				},
				"effective_date": {
					Type: "string",
					Desc: "Effective date YYYY-MM-DD. Defaults to today.",
				},
			}),
		},
		func(ctx context.Context, in *CompleteAppraisalInput) (*CompleteAppraisalOutput, error) {
			completed, err := appr.CompleteAppraisal(ctx, hr.CompleteAppraisalInput{
				EmpCode:         in.EmpCode,
				Cycle:           in.AppraisalCycle,
				Rating:          in.Rating,
				HikePct:         in.HikePct,
				NewSalary:       in.NewSalary,
				NewDesignation:  in.NewDesignation,
				ManagerFeedback: in.ManagerFeedback,
				HRComments:      in.HRComments,
				EffectiveDate:   in.EffectiveDate,
				CompletedBy:     actorEmail(ctx),
			})
			if err != nil {
				return nil, err
			}

			hike := completed.HikePct
			if hike == 0 && completed.OldSalary > 0 {
				hike = (completed.NewSalary - completed.OldSalary) / completed.OldSalary * 100
			}
			msg := fmt.Sprintf("Appraisal completed for %s. Rating: %.1f. Salary: ₹%s → ₹%s (%+.1f%%).",
				completed.EmpCode, completed.Rating, formatINR(completed.OldSalary), formatINR(completed.NewSalary), hike)
			if completed.NewDesignation != "" {
				msg += fmt.Sprintf(" New designation: %s.", completed.NewDesignation)
			}

			// Regenerate the current month's payroll against the revised
			// salary. Failure is reported, not fatal.
			month := time.Now().UTC().Format("2006-01")
			slip, perr := pay.CreateFromCTC(ctx, completed.EmpCode, completed.NewSalary, month)
			if perr != nil {
				logx.Warn().Err(perr).Str("emp_code", completed.EmpCode).Msg("auto payroll generation failed")
				msg += " (Auto-payroll generation failed; can be done manually.)"
			} else {
				msg += fmt.Sprintf(" New payroll for %s created with net pay ₹%s.", month, formatINR(slip.NetPay))
			}

			return &CompleteAppraisalOutput{
				Success:   true,
				Message:   msg,
				Appraisal: completed,
			}, nil
		},
	)
}

// ===================================
// Appraisal History Tool
// ===================================

type GetAppraisalHistoryInput struct {
	EmpCode string `json:"emp_code,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

type GetAppraisalHistoryOutput struct {
	Message    string          `json:"message,omitempty"`
	Appraisals []*hr.Appraisal `json:"appraisals,omitempty"`
	Total      int             `json:"total,omitempty"`
}

func createGetAppraisalHistoryTool(appr hr.AppraisalService) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGetAppraisalHistory,
			Desc: "View appraisal history. Shows past appraisals with ratings, salary changes, feedback. Can filter by emp_code. Returns most recent first.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"emp_code": {
					Type: "string",
					Desc: "Filter by employee code. Optional; omit to view all.",
				},
				"limit": {
					Type: "integer",
					Desc: "Max results. Default 20.",
				},
			}),
		},
		func(ctx context.Context, in *GetAppraisalHistoryInput) (*GetAppraisalHistoryOutput, error) {
			history, err := appr.AppraisalHistory(ctx, in.EmpCode, in.Limit)
			if err != nil {
				return nil, err
			}
			if len(history) == 0 {
				return &GetAppraisalHistoryOutput{Message: "No appraisal records found."}, nil
			}
			return &GetAppraisalHistoryOutput{
				Appraisals: history,
				Total:      len(history),
			}, nil
		},
	)
}
