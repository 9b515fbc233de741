package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrms-agent/server/internal/hr"
)

func runTool(t *testing.T, reg *Registry, ctx context.Context, name, args string) map[string]any {
	t.Helper()
	tl, ok := reg.Get(name)
	require.True(t, ok, "tool %s not registered", name)

	raw, err := tl.InvokableRun(ctx, args)
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &result))
	return result
}

func adminContext() context.Context {
	return hr.WithUser(context.Background(), &hr.User{
		Email:   "admin@hrms.com",
		Name:    "System Admin",
		Role:    hr.RoleSuperAdmin,
		EmpCode: "EMP001",
	})
}

func TestLookupEmployee(t *testing.T) {
	reg, _ := newTestRegistry(t)

	result := runTool(t, reg, adminContext(), ToolLookupEmployee, `{"query": "EMP004"}`)
	assert.Equal(t, "Anita Desai", result["name"])
	assert.Equal(t, "Engineering", result["department"])

	tl, _ := reg.Get(ToolLookupEmployee)
	_, err := tl.InvokableRun(adminContext(), `{"query": "EMP999"}`)
	assert.Error(t, err)
}

func TestListByDepartmentEmpty(t *testing.T) {
	reg, _ := newTestRegistry(t)

	result := runTool(t, reg, adminContext(), ToolListByDepartment, `{"department": "Legal"}`)
	assert.Equal(t, "No employees in 'Legal'.", result["message"])
	assert.NotContains(t, result, "employees")
}

func TestListAllEmployeesPagination(t *testing.T) {
	reg, _ := newTestRegistry(t)

	result := runTool(t, reg, adminContext(), ToolListAllEmployees, `{"page": 1, "page_size": 4}`)
	employees := result["employees"].([]any)
	assert.Len(t, employees, 4)

	pagination := result["pagination"].(map[string]any)
	assert.EqualValues(t, 1, pagination["page"])
	assert.EqualValues(t, 4, pagination["page_size"])
	assert.EqualValues(t, 6, pagination["total_employees"])
	assert.EqualValues(t, 2, pagination["total_pages"])
}

func TestCompanyStatsCountsActiveOnly(t *testing.T) {
	reg, store := newTestRegistry(t)

	ctx := adminContext()
	_, err := store.InitiateResignation(ctx, "EMP006", "2026-09-30", "relocation")
	require.NoError(t, err)

	result := runTool(t, reg, ctx, ToolGetCompanyStats, `{}`)
	assert.EqualValues(t, 5, result["total_employees"])

	breakdown := result["department_breakdown"].(map[string]any)
	assert.NotContains(t, breakdown, "Finance")
	assert.Greater(t, result["average_salary"].(float64), 0.0)
}

func TestAddEmployeeComposite(t *testing.T) {
	reg, store := newTestRegistry(t)
	ctx := adminContext()

	result := runTool(t, reg, ctx, ToolAddEmployee, `{
		"emp_code": "EMP010",
		"name": "Kiran Rao",
		"email": "kiran.r@company.com",
		"department": "Engineering",
		"designation": "Software Engineer",
		"date_of_joining": "2026-08-01",
		"salary": 1500000
	}`)

	msg := result["message"].(string)
	assert.Contains(t, msg, "Employee EMP010 (Kiran Rao) added successfully.")
	assert.Contains(t, msg, "Payroll created for")
	assert.Contains(t, msg, "Leave credits: CL=12, SL=12, EL=15.")
	assert.Contains(t, result, "payroll")
	assert.Contains(t, result, "leave_credits")
	assert.NotContains(t, result, "payroll_warning")
	assert.NotContains(t, result, "leave_warning")

	slips, err := store.Slips(ctx, "EMP010", "")
	require.NoError(t, err)
	assert.Len(t, slips, 1)

	credits, err := store.Records(ctx, "EMP010", "credit")
	require.NoError(t, err)
	assert.Len(t, credits, 3)
}

func TestAssignRole(t *testing.T) {
	reg, store := newTestRegistry(t)
	ctx := adminContext()

	result := runTool(t, reg, ctx, ToolAssignRole, `{"email": "anita.d@company.com", "role": "manager"}`)
	assert.Equal(t, "Role updated to 'manager' for anita.d@company.com.", result["message"])

	u, err := store.FindByEmail(ctx, "anita.d@company.com")
	require.NoError(t, err)
	assert.Equal(t, hr.RoleManager, u.Role)

	result = runTool(t, reg, ctx, ToolAssignRole, `{"email": "ghost@company.com", "role": "manager"}`)
	assert.Equal(t, "User with email 'ghost@company.com' not found.", result["error"])
}

func TestApproveLeaveWithoutPending(t *testing.T) {
	reg, _ := newTestRegistry(t)

	result := runTool(t, reg, adminContext(), ToolApproveOrRejectLeave,
		`{"emp_code": "EMP004", "start_date": "2031-01-01", "action": "approve"}`)
	assert.Equal(t, "No pending leave found for EMP004 starting 2031-01-01.", result["error"])
}

func TestApplyThenApproveLeave(t *testing.T) {
	reg, store := newTestRegistry(t)
	ctx := adminContext()

	result := runTool(t, reg, ctx, ToolApplyLeave, `{
		"emp_code": "EMP004",
		"leave_type": "casual",
		"start_date": "2026-09-01",
		"end_date": "2026-09-02",
		"reason": "family function"
	}`)
	assert.Equal(t, "Leave applied for EMP004 from 2026-09-01 to 2026-09-02.", result["message"])

	result = runTool(t, reg, ctx, ToolApproveOrRejectLeave,
		`{"emp_code": "EMP004", "start_date": "2026-09-01", "action": "approve"}`)
	assert.Equal(t, "Leave for EMP004 starting 2026-09-01 has been approved.", result["message"])

	records, err := store.Records(ctx, "EMP004", "approved")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "admin@hrms.com", records[0].ApprovedBy)
}

func TestSetEmployeeTaxRegime(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := adminContext()

	result := runTool(t, reg, ctx, ToolSetEmployeeTaxRegime, `{"emp_code": "EMP004", "tax_regime": "old"}`)
	assert.Equal(t, true, result["success"])
	assert.Equal(t, "Tax regime for Anita Desai (EMP004) set to 'old'. TDS will be calculated using old regime slabs.", result["message"])

	result = runTool(t, reg, ctx, ToolSetEmployeeTaxRegime, `{"emp_code": "EMP004", "tax_regime": "flat"}`)
	assert.Equal(t, "tax_regime must be 'new' or 'old'.", result["error"])

	result = runTool(t, reg, ctx, ToolSetEmployeeTaxRegime, `{"emp_code": "EMP999", "tax_regime": "old"}`)
	assert.Equal(t, "Employee EMP999 not found.", result["error"])
}

func TestSetHRPolicyVersionsAndDiff(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := adminContext()

	result := runTool(t, reg, ctx, ToolSetHRPolicy, `{
		"state": "maharashtra",
		"casual_leave": 10,
		"change_reason": "state relocation"
	}`)
	assert.Equal(t, true, result["success"])
	assert.EqualValues(t, 2, result["version"])

	msg := result["message"].(string)
	assert.Contains(t, msg, "HR Policy v2 set for Maharashtra (metro=true, regime=new).")
	assert.Contains(t, msg, "state: karnataka→maharashtra")
	assert.Contains(t, msg, "casual_leave: 12→10")

	policy := result["policy"].(map[string]any)
	assert.Equal(t, "maharashtra", policy["state"])
	assert.Equal(t, "admin@hrms.com", policy["created_by"])
}

func TestGetHRPolicyShape(t *testing.T) {
	reg, _ := newTestRegistry(t)

	result := runTool(t, reg, adminContext(), ToolGetHRPolicy, `{}`)
	assert.EqualValues(t, 1, result["version"])
	assert.Equal(t, "Karnataka", result["state"])

	breakup := result["salary_breakup"].(map[string]any)
	assert.EqualValues(t, 40, breakup["basic_pct"])

	taxConfig := result["tax_config"].(map[string]any)
	assert.Equal(t, "new", taxConfig["company_default_regime"])
	newRegime := taxConfig["new_regime"].(map[string]any)
	assert.NotEmpty(t, newRegime["tax_slabs"])
}

func TestPolicyHistoryWrapper(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := adminContext()

	runTool(t, reg, ctx, ToolSetHRPolicy, `{"state": "karnataka", "sick_leave": 10}`)

	result := runTool(t, reg, ctx, ToolGetHRPolicyHistory, `{"limit": 5}`)
	history := result["policy_history"].([]any)
	assert.Len(t, history, 2)
	assert.EqualValues(t, 2, result["total_versions"])

	// newest version first
	first := history[0].(map[string]any)
	assert.EqualValues(t, 2, first["version"])
}

func TestUpdateRequestLifecycle(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := adminContext()

	result := runTool(t, reg, ctx, ToolSubmitUpdateRequest, `{
		"emp_code": "EMP004",
		"fields": {"designation": "Senior Engineer"},
		"reason": "promotion cycle"
	}`)
	assert.Equal(t, true, result["success"])
	requestID := result["request_id"].(string)
	require.NotEmpty(t, requestID)

	result = runTool(t, reg, ctx, ToolListUpdateRequests, `{"status": "pending"}`)
	assert.EqualValues(t, 1, result["total"])

	result = runTool(t, reg, ctx, ToolReviewUpdateRequest,
		`{"request_id": "`+requestID+`", "action": "approve"}`)
	assert.Equal(t, true, result["success"])
	assert.Contains(t, result["message"], "Request approved. Changes applied to EMP004")

	lookup := runTool(t, reg, ctx, ToolLookupEmployee, `{"query": "EMP004"}`)
	assert.Equal(t, "Senior Engineer", lookup["designation"])

	result = runTool(t, reg, ctx, ToolReviewUpdateRequest, `{"request_id": "REQ999", "action": "approve"}`)
	assert.Equal(t, "Update request 'REQ999' not found.", result["error"])
}

func TestAppraisalLifecycle(t *testing.T) {
	reg, store := newTestRegistry(t)
	ctx := adminContext()

	result := runTool(t, reg, ctx, ToolGetAppraisalHistory, `{}`)
	assert.Equal(t, "No appraisal records found.", result["message"])

	result = runTool(t, reg, ctx, ToolInitiateAppraisal,
		`{"emp_code": "EMP005", "appraisal_cycle": "FY2026-27"}`)
	assert.Equal(t, true, result["success"])
	assert.Contains(t, result["message"], "Appraisal initiated for EMP005, cycle 'FY2026-27'.")

	result = runTool(t, reg, ctx, ToolCompleteAppraisal, `{
		"emp_code": "EMP005",
		"appraisal_cycle": "FY2026-27",
		"rating": 4.5,
		"hike_pct": 12,
		"new_designation": "Senior Software Engineer"
	}`)
	assert.Equal(t, true, result["success"])
	msg := result["message"].(string)
	assert.Contains(t, msg, "Appraisal completed for EMP005.")
	assert.Contains(t, msg, "Rating: 4.5.")
	assert.Contains(t, msg, "New designation: Senior Software Engineer.")
	assert.Contains(t, msg, "New payroll for")

	emp, err := store.Lookup(ctx, "EMP005")
	require.NoError(t, err)
	assert.Equal(t, "Senior Software Engineer", emp.Designation)
	assert.EqualValues(t, 1400000, emp.Salary)

	result = runTool(t, reg, ctx, ToolGetAppraisalHistory, `{"emp_code": "EMP005"}`)
	assert.EqualValues(t, 1, result["total"])
}

func TestComputeSalaryBreakup(t *testing.T) {
	reg, _ := newTestRegistry(t)

	result := runTool(t, reg, adminContext(), ToolComputeSalaryBreakup, `{"annual_ctc": 1200000}`)
	assert.EqualValues(t, 1200000, result["annual_ctc"])
	assert.Equal(t, "new", result["tax_regime"])
	assert.EqualValues(t, 40000, result["basic_monthly"])
	assert.Greater(t, result["net_take_home_monthly"].(float64), 0.0)
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "0", formatINR(0))
	assert.Equal(t, "950", formatINR(950))
	assert.Equal(t, "98,615", formatINR(98614.5))
	assert.Equal(t, "1,500,000", formatINR(1500000))
	assert.Equal(t, "-12,000", formatINR(-12000))
}
