package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/hrms-agent/server/internal/hr"
)

// ===================================
// Attendance Tool
// ===================================

type GetAttendanceInput struct {
	EmpCode string `json:"emp_code"`
	Date    string `json:"date,omitempty"`
}

type GetAttendanceOutput struct {
	Message    string                 `json:"message,omitempty"`
	Attendance []*hr.AttendanceRecord `json:"attendance,omitempty"`
}

func createGetAttendanceTool(att hr.AttendanceService) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGetAttendance,
			Desc: "Get attendance records for an employee, optionally for a specific date.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"emp_code": {Type: "string", Required: true},
				"date": {
					Type: "string",
					Desc: "Date YYYY-MM-DD. Optional.",
				},
			}),
		},
		func(ctx context.Context, in *GetAttendanceInput) (*GetAttendanceOutput, error) {
			records, err := att.Attendance(ctx, in.EmpCode, in.Date)
			if err != nil {
				return nil, err
			}
			if len(records) == 0 {
				return &GetAttendanceOutput{
					Message: fmt.Sprintf("No attendance records for %s.", in.EmpCode),
				}, nil
			}
			return &GetAttendanceOutput{Attendance: records}, nil
		},
	)
}
