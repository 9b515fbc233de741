// Package tools defines the HR tool catalog exposed to the completion
// service: one schema-described, typed handler per operation, plus the
// static permission matrix and write-set classification the dispatcher
// enforces.
package tools

import (
	"context"
	"fmt"
	"sort"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/hrms-agent/server/internal/hr"
)

// Tool names as sent to and requested by the completion service.
const (
	ToolLookupEmployee       = "lookup_employee"
	ToolListByDepartment     = "list_employees_by_department"
	ToolGetLeaveRecords      = "get_leave_records"
	ToolApplyLeave           = "apply_leave"
	ToolApproveOrRejectLeave = "approve_or_reject_leave"
	ToolGetAttendance        = "get_attendance"
	ToolGetPayroll           = "get_payroll"
	ToolListAllEmployees     = "list_all_employees"
	ToolGetCompanyStats      = "get_company_stats"
	ToolAddEmployee          = "add_employee"
	ToolUpdateEmployee       = "update_employee"
	ToolInitiateResignation  = "initiate_resignation"
	ToolAssignRole           = "assign_role"
	ToolSetHRPolicy          = "set_hr_policy"
	ToolGetHRPolicy          = "get_hr_policy"
	ToolGetHRPolicyHistory   = "get_hr_policy_history"
	ToolComputeSalaryBreakup = "compute_salary_breakup"
	ToolSetEmployeeTaxRegime = "set_employee_tax_regime"
	ToolSubmitUpdateRequest  = "submit_update_request"
	ToolListUpdateRequests   = "list_update_requests"
	ToolReviewUpdateRequest  = "review_update_request"
	ToolInitiateAppraisal    = "initiate_appraisal"
	ToolCompleteAppraisal    = "complete_appraisal"
	ToolGetAppraisalHistory  = "get_appraisal_history"
)

// RequiredPermission maps each tool to the permission it requires. Every
// catalog tool must appear here; the dispatcher refuses names it cannot
// resolve.
var RequiredPermission = map[string]hr.Permission{
	ToolLookupEmployee:       hr.PermViewEmployee,
	ToolListByDepartment:     hr.PermViewEmployee,
	ToolListAllEmployees:     hr.PermViewAllData,
	ToolGetLeaveRecords:      hr.PermViewLeave,
	ToolApplyLeave:           hr.PermApplyLeave,
	ToolApproveOrRejectLeave: hr.PermApproveLeave,
	ToolGetAttendance:        hr.PermViewAttendance,
	ToolGetPayroll:           hr.PermViewPayroll,
	ToolGetCompanyStats:      hr.PermViewEmployee,
	ToolAddEmployee:          hr.PermManageEmployee,
	ToolUpdateEmployee:       hr.PermManageEmployee,
	ToolInitiateResignation:  hr.PermManageEmployee,
	ToolAssignRole:           hr.PermManageRoles,
	ToolSetHRPolicy:          hr.PermManageEmployee,
	ToolGetHRPolicy:          hr.PermViewEmployee,
	ToolGetHRPolicyHistory:   hr.PermViewEmployee,
	ToolComputeSalaryBreakup: hr.PermViewPayroll,
	// any authenticated user can set their own regime or submit a request
	ToolSetEmployeeTaxRegime: hr.PermApplyLeave,
	ToolSubmitUpdateRequest:  hr.PermApplyLeave,
	ToolListUpdateRequests:   hr.PermViewEmployee,
	ToolReviewUpdateRequest:  hr.PermManageEmployee,
	ToolInitiateAppraisal:    hr.PermManageEmployee,
	ToolCompleteAppraisal:    hr.PermManageEmployee,
	ToolGetAppraisalHistory:  hr.PermViewEmployee,
}

// WriteTools is the set of tools that mutate HR data. A requested write,
// even a denied or failed one, triggers cache invalidation for the turn.
var WriteTools = map[string]struct{}{
	ToolApplyLeave:           {},
	ToolApproveOrRejectLeave: {},
	ToolAddEmployee:          {},
	ToolUpdateEmployee:       {},
	ToolInitiateResignation:  {},
	ToolAssignRole:           {},
	ToolSetHRPolicy:          {},
	ToolSetEmployeeTaxRegime: {},
	ToolSubmitUpdateRequest:  {},
	ToolReviewUpdateRequest:  {},
	ToolInitiateAppraisal:    {},
	ToolCompleteAppraisal:    {},
}

// IsWriteTool reports whether the tool mutates HR data.
func IsWriteTool(name string) bool {
	_, ok := WriteTools[name]
	return ok
}

// Registry holds the instantiated tool catalog keyed by name.
type Registry struct {
	tools map[string]tool.InvokableTool
}

// NewRegistry builds every catalog tool against the given domain services.
func NewRegistry(svcs hr.Services) *Registry {
	return &Registry{tools: map[string]tool.InvokableTool{
		ToolLookupEmployee:       createLookupEmployeeTool(svcs.Directory),
		ToolListByDepartment:     createListByDepartmentTool(svcs.Directory),
		ToolListAllEmployees:     createListAllEmployeesTool(svcs.Directory),
		ToolGetCompanyStats:      createGetCompanyStatsTool(svcs.Directory),
		ToolAddEmployee:          createAddEmployeeTool(svcs.Directory, svcs.Payroll, svcs.Policy, svcs.Leave),
		ToolUpdateEmployee:       createUpdateEmployeeTool(svcs.Directory),
		ToolInitiateResignation:  createInitiateResignationTool(svcs.Directory),
		ToolAssignRole:           createAssignRoleTool(svcs.Accounts),
		ToolGetLeaveRecords:      createGetLeaveRecordsTool(svcs.Leave),
		ToolApplyLeave:           createApplyLeaveTool(svcs.Leave),
		ToolApproveOrRejectLeave: createApproveOrRejectLeaveTool(svcs.Leave),
		ToolGetAttendance:        createGetAttendanceTool(svcs.Attendance),
		ToolGetPayroll:           createGetPayrollTool(svcs.Payroll),
		ToolSetHRPolicy:          createSetHRPolicyTool(svcs.Policy),
		ToolGetHRPolicy:          createGetHRPolicyTool(svcs.Policy),
		ToolGetHRPolicyHistory:   createGetHRPolicyHistoryTool(svcs.Policy),
		ToolComputeSalaryBreakup: createComputeSalaryBreakupTool(svcs.Policy),
		ToolSetEmployeeTaxRegime: createSetEmployeeTaxRegimeTool(svcs.Directory),
		ToolSubmitUpdateRequest:  createSubmitUpdateRequestTool(svcs.Requests),
		ToolListUpdateRequests:   createListUpdateRequestsTool(svcs.Requests),
		ToolReviewUpdateRequest:  createReviewUpdateRequestTool(svcs.Requests),
		ToolInitiateAppraisal:    createInitiateAppraisalTool(svcs.Appraisals),
		ToolCompleteAppraisal:    createCompleteAppraisalTool(svcs.Appraisals, svcs.Payroll),
		ToolGetAppraisalHistory:  createGetAppraisalHistoryTool(svcs.Appraisals),
	}}
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (tool.InvokableTool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns every registered tool name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Infos collects the schema for every registered tool, in name order, for
// binding to the completion service.
func (r *Registry) Infos(ctx context.Context) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(r.tools))
	for _, name := range r.Names() {
		info, err := r.tools[name].Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info for %s: %w", name, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// actorEmail resolves the acting user's email for approved_by / created_by
// style fields. Falls back to "system" when no user is attached.
func actorEmail(ctx context.Context) string {
	if u, ok := hr.UserFromContext(ctx); ok {
		return u.Email
	}
	return "system"
}
