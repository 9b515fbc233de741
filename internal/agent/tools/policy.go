package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/hrms-agent/server/internal/hr"
)

// ===================================
// Set HR Policy Tool
// ===================================

type SetHRPolicyInput struct {
	State        string   `json:"state"`
	IsMetro      *bool    `json:"is_metro,omitempty"`
	TaxRegime    *string  `json:"tax_regime,omitempty"`
	BasicPct     *float64 `json:"basic_pct,omitempty"`
	HRAPct       *float64 `json:"hra_pct,omitempty"`
	CasualLeave  *int     `json:"casual_leave,omitempty"`
	SickLeave    *int     `json:"sick_leave,omitempty"`
	EarnedLeave  *int     `json:"earned_leave,omitempty"`
	ChangeReason string   `json:"change_reason,omitempty"`
}

type SetHRPolicyOutput struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Version int        `json:"version"`
	Policy  *hr.Policy `json:"policy"`
}

func createSetHRPolicyTool(pol hr.PolicyService) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSetHRPolicy,
			Desc: "Configure the active HR policy. ALL fields are optional except state. Covers: salary breakup (basic%, HRA%), annual leave credits (CL, SL, EL), and the company default tax regime. Omitted fields carry forward from the previous version. Only HR admin and super admin can use this. Every change is versioned and audited.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"state": {
					Type:     "string",
					Desc:     "Indian state for labour law compliance, e.g. maharashtra, karnataka, delhi, tamil_nadu.",
					Required: true,
				},
				"is_metro": {
					Type: "boolean",
					Desc: "Whether the office is in a metro city (affects HRA). Optional.",
				},
				"tax_regime": {
					Type: "string",
					Desc: "'new' or 'old'. Optional.",
				},
				"basic_pct": {
					Type: "number",
					Desc: "Basic salary % of CTC. Default 40.",
				},
				"hra_pct": {
					Type: "number",
					Desc: "HRA % of CTC. Default 20.",
				},
				"casual_leave": {
					Type: "integer",
					Desc: "Annual casual leaves.",
				},
				"sick_leave": {
					Type: "integer",
					Desc: "Annual sick leaves.",
				},
				"earned_leave": {
					Type: "integer",
					Desc: "Annual earned/privilege leaves.",
				},
				"change_reason": {
					Type: "string",
					Desc: "Reason for this policy change (for audit trail). Always provide this.",
				},
			}),
		},
		func(ctx context.Context, in *SetHRPolicyInput) (*SetHRPolicyOutput, error) {
			prev, _ := pol.ActivePolicy(ctx)
			next, err := pol.SetPolicy(ctx, hr.PolicyChange{
				State:        in.State,
				IsMetro:      in.IsMetro,
				TaxRegime:    in.TaxRegime,
				BasicPct:     in.BasicPct,
				HRAPct:       in.HRAPct,
				CasualLeave:  in.CasualLeave,
				SickLeave:    in.SickLeave,
				EarnedLeave:  in.EarnedLeave,
				ChangeReason: in.ChangeReason,
				CreatedBy:    actorEmail(ctx),
			})
			if err != nil {
				return nil, err
			}
			return &SetHRPolicyOutput{
				Success: true,
				Message: fmt.Sprintf("HR Policy v%d set for %s (metro=%t, regime=%s). Changes: %s",
					next.Version, titleCase(next.State), next.IsMetro, next.TaxRegime, policyChanges(prev, next)),
				Version: next.Version,
				Policy:  next,
			}, nil
		},
	)
}

// ===================================
// Get HR Policy Tool
// ===================================

type GetHRPolicyInput struct{}

type TaxSlabView struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Rate float64 `json:"rate"`
}

type RegimeView struct {
	StandardDeduction float64       `json:"standard_deduction"`
	TaxSlabs          []TaxSlabView `json:"tax_slabs"`
}

type TaxConfigView struct {
	CompanyDefaultRegime string     `json:"company_default_regime"`
	NewRegime            RegimeView `json:"new_regime"`
	OldRegime            RegimeView `json:"old_regime"`
	CessPct              float64    `json:"cess_pct"`
}

type GetHRPolicyOutput struct {
	Version       int                    `json:"version"`
	State         string                 `json:"state"`
	IsMetro       bool                   `json:"is_metro"`
	SalaryBreakup hr.SalaryBreakupConfig `json:"salary_breakup"`
	LeavePolicy   hr.LeaveQuota          `json:"leave_policy"`
	TaxConfig     TaxConfigView          `json:"tax_config"`
}

func createGetHRPolicyTool(pol hr.PolicyService) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name:        ToolGetHRPolicy,
			Desc:        "View the current active HR policy: salary breakup, leave credits, tax regime config with slabs, standard deductions, cess%, and version.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		func(ctx context.Context, in *GetHRPolicyInput) (*GetHRPolicyOutput, error) {
			policy, err := pol.ActivePolicy(ctx)
			if err != nil {
				return nil, err
			}
			return &GetHRPolicyOutput{
				Version:       policy.Version,
				State:         titleCase(policy.State),
				IsMetro:       policy.IsMetro,
				SalaryBreakup: policy.Breakup,
				LeavePolicy:   policy.Leave,
				TaxConfig: TaxConfigView{
					CompanyDefaultRegime: policy.TaxRegime,
					NewRegime: RegimeView{
						StandardDeduction: policy.StandardDeduction,
						TaxSlabs:          slabViews(policy.NewRegimeSlabs),
					},
					OldRegime: RegimeView{
						StandardDeduction: policy.OldRegimeDeduction,
						TaxSlabs:          slabViews(policy.OldRegimeSlabs),
					},
					CessPct: policy.CessPct,
				},
			}, nil
		},
	)
}

// ===================================
// HR Policy History Tool
// ===================================

type GetHRPolicyHistoryInput struct {
	Limit int `json:"limit,omitempty"`
}

type GetHRPolicyHistoryOutput struct {
	Message       string       `json:"message,omitempty"`
	PolicyHistory []*hr.Policy `json:"policy_history,omitempty"`
	TotalVersions int          `json:"total_versions,omitempty"`
}

func createGetHRPolicyHistoryTool(pol hr.PolicyService) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGetHRPolicyHistory,
			Desc: "View the change history of the HR policy: who changed what and when. Shows past policy versions, newest first. Useful for auditing policy changes.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"limit": {
					Type: "integer",
					Desc: "Max number of history entries to return. Default 10.",
				},
			}),
		},
		func(ctx context.Context, in *GetHRPolicyHistoryInput) (*GetHRPolicyHistoryOutput, error) {
			history, err := pol.PolicyHistory(ctx, in.Limit)
			if err != nil {
				return nil, err
			}
			if len(history) == 0 {
				return &GetHRPolicyHistoryOutput{
					Message: "No policy history found. Set an HR policy first.",
				}, nil
			}
			return &GetHRPolicyHistoryOutput{
				PolicyHistory: history,
				TotalVersions: len(history),
			}, nil
		},
	)
}

func slabViews(slabs []hr.TaxSlab) []TaxSlabView {
	views := make([]TaxSlabView, 0, len(slabs))
	for _, s := range slabs {
		views = append(views, TaxSlabView{Min: s.MinIncome, Max: s.MaxIncome, Rate: s.RatePct})
	}
	return views
}

// policyChanges summarises field-level differences between two policy
// versions as "field: old→new" pairs.
func policyChanges(prev, next *hr.Policy) string {
	if prev == nil {
		return "No field changes"
	}
	var changes []string
	diff := func(field, oldVal, newVal string) {
		if oldVal != newVal {
			changes = append(changes, fmt.Sprintf("%s: %s→%s", field, oldVal, newVal))
		}
	}
	diff("state", prev.State, next.State)
	diff("is_metro", strconv.FormatBool(prev.IsMetro), strconv.FormatBool(next.IsMetro))
	diff("tax_regime", prev.TaxRegime, next.TaxRegime)
	diff("basic_pct", formatNum(prev.Breakup.BasicPct), formatNum(next.Breakup.BasicPct))
	diff("hra_pct", formatNum(prev.Breakup.HRAPct), formatNum(next.Breakup.HRAPct))
	diff("casual_leave", strconv.Itoa(prev.Leave.CasualLeave), strconv.Itoa(next.Leave.CasualLeave))
	diff("sick_leave", strconv.Itoa(prev.Leave.SickLeave), strconv.Itoa(next.Leave.SickLeave))
	diff("earned_leave", strconv.Itoa(prev.Leave.EarnedLeave), strconv.Itoa(next.Leave.EarnedLeave))
	if len(changes) == 0 {
		return "No field changes"
	}
	return strings.Join(changes, ", ")
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
