package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/hrms-agent/server/internal/hr"
	logx "github.com/hrms-agent/server/pkg/logger"
)

// ===================================
// Lookup Employee Tool
// ===================================

type LookupEmployeeInput struct {
	Query string `json:"query"`
}

func createLookupEmployeeTool(dir hr.Directory) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolLookupEmployee,
			Desc: "Look up an employee by emp_code or name. Returns employee profile.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     "string",
					Desc:     "Employee code (e.g. EMP001) or partial name to search.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *LookupEmployeeInput) (*hr.Employee, error) {
			return dir.Lookup(ctx, in.Query)
		},
	)
}

// ===================================
// List Employees By Department Tool
// ===================================

type ListByDepartmentInput struct {
	Department string `json:"department"`
}

type ListByDepartmentOutput struct {
	Message   string         `json:"message,omitempty"`
	Employees []*hr.Employee `json:"employees,omitempty"`
}

func createListByDepartmentTool(dir hr.Directory) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolListByDepartment,
			Desc: "List all employees in a given department.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"department": {
					Type:     "string",
					Desc:     "Department name, e.g. Engineering, HR, Finance.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *ListByDepartmentInput) (*ListByDepartmentOutput, error) {
			emps, err := dir.ListByDepartment(ctx, in.Department)
			if err != nil {
				return nil, err
			}
			if len(emps) == 0 {
				return &ListByDepartmentOutput{
					Message: fmt.Sprintf("No employees in '%s'.", in.Department),
				}, nil
			}
			return &ListByDepartmentOutput{Employees: emps}, nil
		},
	)
}

// ===================================
// List All Employees Tool
// ===================================

type ListAllEmployeesInput struct {
	Page     int    `json:"page,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
	Search   string `json:"search,omitempty"`
}

type Pagination struct {
	Page           int `json:"page"`
	PageSize       int `json:"page_size"`
	TotalEmployees int `json:"total_employees"`
	TotalPages     int `json:"total_pages"`
}

type ListAllEmployeesOutput struct {
	Employees  []*hr.Employee `json:"employees"`
	Pagination Pagination     `json:"pagination"`
}

func createListAllEmployeesTool(dir hr.Directory) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolListAllEmployees,
			Desc: "List all active employees with pagination and optional search. HR admin, manager, and super admin only. Returns a page of employees and pagination metadata (total, page count). Use search to filter by name, emp_code, department, or designation.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"page": {
					Type: "integer",
					Desc: "Page number (1-based). Default 1.",
				},
				"page_size": {
					Type: "integer",
					Desc: "Number of employees per page. Default 10, max 25.",
				},
				"search": {
					Type: "string",
					Desc: "Optional search term to filter by name, emp_code, department, or designation.",
				},
			}),
		},
		func(ctx context.Context, in *ListAllEmployeesInput) (*ListAllEmployeesOutput, error) {
			page := in.Page
			if page < 1 {
				page = 1
			}
			size := in.PageSize
			if size < 1 {
				size = 10
			}
			if size > 25 {
				size = 25
			}
			result, err := dir.ListAll(ctx, page, size, in.Search)
			if err != nil {
				return nil, err
			}
			totalPages := 1
			if result.Total > 0 {
				totalPages = (result.Total + result.PageSize - 1) / result.PageSize
			}
			out := &ListAllEmployeesOutput{
				Employees: result.Employees,
				Pagination: Pagination{
					Page:           result.Page,
					PageSize:       result.PageSize,
					TotalEmployees: result.Total,
					TotalPages:     totalPages,
				},
			}
			if out.Employees == nil {
				out.Employees = []*hr.Employee{}
			}
			return out, nil
		},
	)
}

// ===================================
// Company Stats Tool
// ===================================

type GetCompanyStatsInput struct{}

type GetCompanyStatsOutput struct {
	TotalEmployees      int            `json:"total_employees"`
	DepartmentBreakdown map[string]int `json:"department_breakdown"`
	AverageSalary       float64        `json:"average_salary"`
}

func createGetCompanyStatsTool(dir hr.Directory) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name:        ToolGetCompanyStats,
			Desc:        "Get overall company HR statistics: total employees, department breakdown, average salary.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{}),
		},
		func(ctx context.Context, in *GetCompanyStatsInput) (*GetCompanyStatsOutput, error) {
			stats, err := dir.Stats(ctx)
			if err != nil {
				return nil, err
			}
			// total_employees counts active staff only
			return &GetCompanyStatsOutput{
				TotalEmployees:      stats.Active,
				DepartmentBreakdown: stats.Departments,
				AverageSalary:       stats.AverageSalary,
			}, nil
		},
	)
}

// ===================================
// Add Employee Tool
// ===================================

type AddEmployeeInput struct {
	EmpCode       string  `json:"emp_code"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Department    string  `json:"department"`
	Designation   string  `json:"designation"`
	DateOfJoining string  `json:"date_of_joining"`
	Salary        float64 `json:"salary"`
	ManagerName   string  `json:"manager_name,omitempty"`
	Phone         string  `json:"phone,omitempty"`
	Gender        string  `json:"gender,omitempty"`
}

type AddEmployeeOutput struct {
	Success        bool            `json:"success"`
	Message        string          `json:"message"`
	Payroll        *hr.PayrollSlip `json:"payroll,omitempty"`
	PayrollWarning string          `json:"payroll_warning,omitempty"`
	LeaveCredits   *hr.LeaveQuota  `json:"leave_credits,omitempty"`
	LeaveWarning   string          `json:"leave_warning,omitempty"`
}

func createAddEmployeeTool(dir hr.Directory, pay hr.PayrollService, pol hr.PolicyService, leave hr.LeaveService) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolAddEmployee,
			Desc: "Add a new employee to the system. Only HR admin and super admin can use this. Automatically generates salary breakup (basic, HRA, PF, ESI, TDS, etc.) from CTC using active HR policy, creates a payroll record for the current month, and credits annual leaves.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"emp_code": {
					Type:     "string",
					Desc:     "Unique employee code, e.g. EMP006.",
					Required: true,
				},
				"name":        {Type: "string", Required: true},
				"email":       {Type: "string", Required: true},
				"department":  {Type: "string", Required: true},
				"designation": {Type: "string", Required: true},
				"date_of_joining": {
					Type:     "string",
					Desc:     "YYYY-MM-DD.",
					Required: true,
				},
				"salary": {
					Type:     "number",
					Desc:     "Annual CTC in INR.",
					Required: true,
				},
				"manager_name": {Type: "string", Desc: "Optional manager name."},
				"phone":        {Type: "string", Desc: "Mobile / phone number. Optional."},
				"gender":       {Type: "string", Desc: "male, female, or other. Optional."},
			}),
		},
		func(ctx context.Context, in *AddEmployeeInput) (*AddEmployeeOutput, error) {
			emp, err := dir.Add(ctx, &hr.Employee{
				EmpCode:       in.EmpCode,
				Name:          in.Name,
				Email:         in.Email,
				Department:    in.Department,
				Designation:   in.Designation,
				DateOfJoining: in.DateOfJoining,
				Salary:        in.Salary,
				ManagerName:   in.ManagerName,
				Phone:         in.Phone,
				Gender:        in.Gender,
			})
			if err != nil {
				return nil, err
			}

			out := &AddEmployeeOutput{
				Success: true,
				Message: fmt.Sprintf("Employee %s (%s) added successfully.", in.EmpCode, in.Name),
			}

			// Auto-generate the current month's payroll from CTC using
			// the active policy. Failure is reported, not fatal.
			month := time.Now().UTC().Format("2006-01")
			slip, perr := pay.CreateFromCTC(ctx, emp.EmpCode, in.Salary, month)
			if perr != nil {
				logx.Warn().Err(perr).Str("emp_code", emp.EmpCode).Msg("auto payroll generation failed")
				out.PayrollWarning = "Auto-payroll generation failed: " + perr.Error()
			} else {
				out.Payroll = slip
				out.Message += fmt.Sprintf(" Payroll created for %s with net pay ₹%s.", month, formatINR(slip.NetPay))
			}

			// Auto-credit annual leaves from the active policy.
			quota, lerr := pol.LeaveCredits(ctx)
			if lerr == nil {
				for _, c := range []struct {
					leaveType string
					days      int
				}{
					{"casual", quota.CasualLeave},
					{"sick", quota.SickLeave},
					{"earned", quota.EarnedLeave},
				} {
					reason := fmt.Sprintf("Annual %s leave credit (%d days) as per HR policy", c.leaveType, c.days)
					if _, cerr := leave.Credit(ctx, emp.EmpCode, c.leaveType, float64(c.days), reason); cerr != nil {
						lerr = cerr
						break
					}
				}
			}
			if lerr != nil {
				logx.Warn().Err(lerr).Str("emp_code", emp.EmpCode).Msg("auto leave credit failed")
				out.LeaveWarning = "Auto-leave-credit failed: " + lerr.Error()
			} else {
				out.Message += fmt.Sprintf(" Leave credits: CL=%d, SL=%d, EL=%d.", quota.CasualLeave, quota.SickLeave, quota.EarnedLeave)
				out.LeaveCredits = &quota
			}
			return out, nil
		},
	)
}

// ===================================
// Update Employee Tool
// ===================================

type UpdateEmployeeInput struct {
	EmpCode     string   `json:"emp_code"`
	Department  *string  `json:"department,omitempty"`
	Designation *string  `json:"designation,omitempty"`
	Salary      *float64 `json:"salary,omitempty"`
	ManagerName *string  `json:"manager_name,omitempty"`
}

type UpdateEmployeeOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func createUpdateEmployeeTool(dir hr.Directory) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolUpdateEmployee,
			Desc: "Update an existing employee's details. Only HR admin and super admin.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"emp_code":     {Type: "string", Required: true},
				"department":   {Type: "string", Desc: "New department. Optional."},
				"designation":  {Type: "string", Desc: "New designation. Optional."},
				"salary":       {Type: "number", Desc: "New salary. Optional."},
				"manager_name": {Type: "string", Desc: "New manager. Optional."},
			}),
		},
		func(ctx context.Context, in *UpdateEmployeeInput) (*UpdateEmployeeOutput, error) {
			_, err := dir.Update(ctx, in.EmpCode, hr.EmployeeUpdate{
				Department:  in.Department,
				Designation: in.Designation,
				Salary:      in.Salary,
				ManagerName: in.ManagerName,
			})
			if err != nil {
				return nil, err
			}
			return &UpdateEmployeeOutput{
				Success: true,
				Message: fmt.Sprintf("Employee %s updated successfully.", in.EmpCode),
			}, nil
		},
	)
}

// ===================================
// Initiate Resignation Tool
// ===================================

type InitiateResignationInput struct {
	EmpCode         string `json:"emp_code"`
	ResignationDate string `json:"resignation_date"`
	Reason          string `json:"reason"`
}

type InitiateResignationOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func createInitiateResignationTool(dir hr.Directory) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolInitiateResignation,
			Desc: "Initiate resignation process for an employee. Only HR admin and super admin.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"emp_code": {Type: "string", Required: true},
				"resignation_date": {
					Type:     "string",
					Desc:     "YYYY-MM-DD.",
					Required: true,
				},
				"reason": {Type: "string", Required: true},
			}),
		},
		func(ctx context.Context, in *InitiateResignationInput) (*InitiateResignationOutput, error) {
			if _, err := dir.InitiateResignation(ctx, in.EmpCode, in.ResignationDate, in.Reason); err != nil {
				return nil, err
			}
			return &InitiateResignationOutput{
				Success: true,
				Message: fmt.Sprintf("Resignation initiated for %s. Status: resigned. Reason: %s.", in.EmpCode, in.Reason),
			}, nil
		},
	)
}

// ===================================
// Assign Role Tool
// ===================================

type AssignRoleInput struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AssignRoleOutput struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func createAssignRoleTool(accounts hr.Accounts) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolAssignRole,
			Desc: "Assign or change a user's role. Only super admin can use this.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"email": {
					Type:     "string",
					Desc:     "User email to update.",
					Required: true,
				},
				"role": {
					Type:     "string",
					Desc:     "New role: super_admin, hr_admin, manager, or employee.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *AssignRoleInput) (*AssignRoleOutput, error) {
			role := hr.Role(strings.ToLower(strings.TrimSpace(in.Role)))
			u, err := accounts.AssignRole(ctx, in.Email, role)
			if errors.Is(err, hr.ErrNotFound) {
				return &AssignRoleOutput{
					Error: fmt.Sprintf("User with email '%s' not found.", in.Email),
				}, nil
			}
			if err != nil {
				return nil, err
			}
			return &AssignRoleOutput{
				Message: fmt.Sprintf("Role updated to '%s' for %s.", u.Role, in.Email),
			}, nil
		},
	)
}
