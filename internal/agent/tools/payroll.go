package tools

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/hrms-agent/server/internal/hr"
)

// ===================================
// Payroll Tool
// ===================================

type GetPayrollInput struct {
	EmpCode string `json:"emp_code"`
	Month   string `json:"month,omitempty"`
}

type GetPayrollOutput struct {
	Message string            `json:"message,omitempty"`
	Payroll []*hr.PayrollSlip `json:"payroll,omitempty"`
}

func createGetPayrollTool(pay hr.PayrollService) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGetPayroll,
			Desc: "Get payroll / salary slip details for an employee. If month is omitted, returns ALL payroll records for that employee.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"emp_code": {
					Type:     "string",
					Desc:     "Employee code, e.g. EMP001.",
					Required: true,
				},
				"month": {
					Type: "string",
					Desc: "Month YYYY-MM, e.g. 2026-01. Optional; omit to get all months.",
				},
			}),
		},
		func(ctx context.Context, in *GetPayrollInput) (*GetPayrollOutput, error) {
			slips, err := pay.Slips(ctx, in.EmpCode, in.Month)
			if err != nil {
				return nil, err
			}
			if len(slips) == 0 {
				return &GetPayrollOutput{
					Message: fmt.Sprintf("No payroll records for %s.", in.EmpCode),
				}, nil
			}
			return &GetPayrollOutput{Payroll: slips}, nil
		},
	)
}

// ===================================
// Salary Breakup Tool
// ===================================

type ComputeSalaryBreakupInput struct {
	AnnualCTC float64 `json:"annual_ctc"`
	TaxRegime string  `json:"tax_regime,omitempty"`
}

func createComputeSalaryBreakupTool(pol hr.PolicyService) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolComputeSalaryBreakup,
			Desc: "Compute detailed salary breakup from annual CTC using the active HR policy. Shows monthly and yearly: basic, HRA, PF, ESI, professional tax, TDS, special allowance, gross, deductions, and net take-home pay. Optionally specify tax_regime ('new' or 'old') to see TDS under a specific regime.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"annual_ctc": {
					Type:     "number",
					Desc:     "Annual CTC in INR, e.g. 1200000.",
					Required: true,
				},
				"tax_regime": {
					Type: "string",
					Desc: "'new' or 'old'. Optional; defaults to the company default regime.",
				},
			}),
		},
		func(ctx context.Context, in *ComputeSalaryBreakupInput) (*hr.SalaryBreakup, error) {
			return pol.ComputeBreakup(ctx, in.AnnualCTC, in.TaxRegime)
		},
	)
}

// ===================================
// Employee Tax Regime Tool
// ===================================

type SetEmployeeTaxRegimeInput struct {
	EmpCode   string `json:"emp_code"`
	TaxRegime string `json:"tax_regime"`
}

type SetEmployeeTaxRegimeOutput struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func createSetEmployeeTaxRegimeTool(dir hr.Directory) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSetEmployeeTaxRegime,
			Desc: "Set an employee's chosen income tax regime ('new' or 'old'). This determines which tax slabs are used for TDS calculation in their salary/payroll. Employees can choose based on which regime gives them lower tax liability.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"emp_code": {
					Type:     "string",
					Desc:     "Employee code.",
					Required: true,
				},
				"tax_regime": {
					Type:     "string",
					Desc:     "'new' or 'old'.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *SetEmployeeTaxRegimeInput) (*SetEmployeeTaxRegimeOutput, error) {
			regime := strings.ToLower(strings.TrimSpace(in.TaxRegime))
			emp, err := dir.SetTaxRegime(ctx, in.EmpCode, regime)
			if errors.Is(err, hr.ErrNotFound) {
				return &SetEmployeeTaxRegimeOutput{
					Error: fmt.Sprintf("Employee %s not found.", in.EmpCode),
				}, nil
			}
			if err != nil {
				return &SetEmployeeTaxRegimeOutput{
					Error: "tax_regime must be 'new' or 'old'.",
				}, nil
			}
			return &SetEmployeeTaxRegimeOutput{
				Success: true,
				Message: fmt.Sprintf("Tax regime for %s (%s) set to '%s'. TDS will be calculated using %s regime slabs.", emp.Name, emp.EmpCode, regime, regime),
			}, nil
		},
	)
}

// formatINR renders a rupee amount rounded to the nearest whole rupee with
// comma grouping, e.g. 98614.5 -> "98,615".
func formatINR(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return sign + s
}
