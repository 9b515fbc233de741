package hr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitiateAppraisalGuards(t *testing.T) {
	s, ctx := seededStore(t)

	_, err := s.InitiateAppraisal(ctx, "EMP005", "  ", "rahul.m@company.com", "")
	assert.ErrorContains(t, err, "appraisal_cycle is required")

	_, err = s.InitiateAppraisal(ctx, "EMP999", "FY2026-27", "rahul.m@company.com", "")
	assert.ErrorIs(t, err, ErrNotFound)

	appr, err := s.InitiateAppraisal(ctx, "emp005", "FY2026-27", "rahul.m@company.com", "strong year")
	require.NoError(t, err)
	assert.Equal(t, "EMP005", appr.EmpCode)
	assert.Equal(t, "in_progress", appr.Status)
	assert.Equal(t, "strong year", appr.ManagerFeedback)

	// one open cycle per employee
	_, err = s.InitiateAppraisal(ctx, "EMP005", "fy2026-27", "rahul.m@company.com", "")
	assert.ErrorContains(t, err, "already in progress")
}

func TestCompleteAppraisalAppliesHike(t *testing.T) {
	s, ctx := seededStore(t)

	_, err := s.InitiateAppraisal(ctx, "EMP005", "FY2026-27", "rahul.m@company.com", "")
	require.NoError(t, err)

	appr, err := s.CompleteAppraisal(ctx, CompleteAppraisalInput{
		EmpCode:        "EMP005",
		Cycle:          "FY2026-27",
		Rating:         4.5,
		HikePct:        12,
		NewDesignation: "Senior Software Engineer",
		CompletedBy:    "priya.hr@company.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "completed", appr.Status)
	assert.Equal(t, 1250000.0, appr.OldSalary)
	assert.Equal(t, 1400000.0, appr.NewSalary)
	assert.NotEmpty(t, appr.EffectiveDate)

	emp, err := s.Lookup(ctx, "EMP005")
	require.NoError(t, err)
	assert.Equal(t, 1400000.0, emp.Salary)
	assert.Equal(t, "Senior Software Engineer", emp.Designation)
}

func TestCompleteAppraisalExplicitSalaryWinsOverHike(t *testing.T) {
	s, ctx := seededStore(t)

	_, err := s.InitiateAppraisal(ctx, "EMP004", "FY2026-27", "rahul.m@company.com", "")
	require.NoError(t, err)

	appr, err := s.CompleteAppraisal(ctx, CompleteAppraisalInput{
		EmpCode:   "EMP004",
		Cycle:     "FY2026-27",
		Rating:    4,
		HikePct:   10,
		NewSalary: 1575000,
	})
	require.NoError(t, err)
	assert.Equal(t, 1575000.0, appr.NewSalary)
}

func TestCompleteAppraisalGuards(t *testing.T) {
	s, ctx := seededStore(t)

	_, err := s.CompleteAppraisal(ctx, CompleteAppraisalInput{EmpCode: "EMP005", Cycle: "FY2026-27", Rating: 5.5})
	assert.ErrorContains(t, err, "between 1.0 and 5.0")

	_, err = s.CompleteAppraisal(ctx, CompleteAppraisalInput{EmpCode: "EMP005", Cycle: "FY2026-27", Rating: 3})
	assert.ErrorContains(t, err, "initiate one first")

	_, err = s.InitiateAppraisal(ctx, "EMP005", "FY2026-27", "rahul.m@company.com", "")
	require.NoError(t, err)
	_, err = s.CompleteAppraisal(ctx, CompleteAppraisalInput{EmpCode: "EMP005", Cycle: "FY2026-27", Rating: 3})
	require.NoError(t, err)

	_, err = s.CompleteAppraisal(ctx, CompleteAppraisalInput{EmpCode: "EMP005", Cycle: "FY2026-27", Rating: 3})
	assert.ErrorContains(t, err, "already completed")
}

func TestAppraisalHistoryFilterAndOrder(t *testing.T) {
	s, ctx := seededStore(t)

	for _, cycle := range []string{"FY2024-25", "FY2025-26"} {
		_, err := s.InitiateAppraisal(ctx, "EMP004", cycle, "rahul.m@company.com", "")
		require.NoError(t, err)
		_, err = s.CompleteAppraisal(ctx, CompleteAppraisalInput{EmpCode: "EMP004", Cycle: cycle, Rating: 4})
		require.NoError(t, err)
	}
	_, err := s.InitiateAppraisal(ctx, "EMP005", "FY2025-26", "rahul.m@company.com", "")
	require.NoError(t, err)

	all, err := s.AppraisalHistory(ctx, "", 20)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := s.AppraisalHistory(ctx, "emp004", 20)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	// newest first
	assert.Equal(t, "FY2025-26", mine[0].Cycle)
	assert.Equal(t, "FY2024-25", mine[1].Cycle)

	one, err := s.AppraisalHistory(ctx, "EMP004", 1)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "FY2025-26", one[0].Cycle)
}
