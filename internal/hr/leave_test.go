package hr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyLeaveValidation(t *testing.T) {
	s, ctx := seededStore(t)

	_, err := s.Apply(ctx, LeaveRequest{EmpCode: "EMP004", LeaveType: "sabbatical", StartDate: "2026-09-01", EndDate: "2026-09-02"})
	assert.ErrorContains(t, err, "casual, sick, or earned")

	_, err = s.Apply(ctx, LeaveRequest{EmpCode: "EMP004", LeaveType: "casual", StartDate: "Sep 1", EndDate: "2026-09-02"})
	assert.ErrorContains(t, err, "start_date")

	_, err = s.Apply(ctx, LeaveRequest{EmpCode: "EMP004", LeaveType: "casual", StartDate: "2026-09-05", EndDate: "2026-09-01"})
	assert.ErrorContains(t, err, "before start_date")

	_, err = s.Apply(ctx, LeaveRequest{EmpCode: "EMP999", LeaveType: "casual", StartDate: "2026-09-01", EndDate: "2026-09-02"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplyLeaveCountsInclusiveDays(t *testing.T) {
	s, ctx := seededStore(t)

	rec, err := s.Apply(ctx, LeaveRequest{
		EmpCode: "emp004", LeaveType: "CASUAL",
		StartDate: "2026-09-01", EndDate: "2026-09-03",
		Reason: "family function",
	})
	require.NoError(t, err)
	assert.Equal(t, "EMP004", rec.EmpCode)
	assert.Equal(t, "casual", rec.LeaveType)
	assert.Equal(t, 3.0, rec.Days)
	assert.Equal(t, "pending", rec.Status)
}

func TestPendingLeaveConsumesBalance(t *testing.T) {
	s, ctx := seededStore(t)

	// seeded casual quota is 12 days; a pending 10-day application leaves 2
	_, err := s.Apply(ctx, LeaveRequest{
		EmpCode: "EMP004", LeaveType: "casual",
		StartDate: "2026-09-01", EndDate: "2026-09-10",
	})
	require.NoError(t, err)

	_, err = s.Apply(ctx, LeaveRequest{
		EmpCode: "EMP004", LeaveType: "casual",
		StartDate: "2026-10-01", EndDate: "2026-10-03",
	})
	assert.ErrorContains(t, err, "insufficient casual leave balance")
	assert.ErrorContains(t, err, "available 2.0, requested 3.0")

	// a different leave type has its own balance
	_, err = s.Apply(ctx, LeaveRequest{
		EmpCode: "EMP004", LeaveType: "sick",
		StartDate: "2026-10-01", EndDate: "2026-10-03",
	})
	assert.NoError(t, err)
}

func TestRejectionRestoresBalance(t *testing.T) {
	s, ctx := seededStore(t)

	_, err := s.Apply(ctx, LeaveRequest{
		EmpCode: "EMP004", LeaveType: "casual",
		StartDate: "2026-09-01", EndDate: "2026-09-12",
	})
	require.NoError(t, err)

	rec, err := s.ApproveOrReject(ctx, "EMP004", "2026-09-01", "reject", "rahul.m@company.com")
	require.NoError(t, err)
	assert.Equal(t, "rejected", rec.Status)
	assert.Equal(t, "rahul.m@company.com", rec.ApprovedBy)

	// the full quota is available again
	_, err = s.Apply(ctx, LeaveRequest{
		EmpCode: "EMP004", LeaveType: "casual",
		StartDate: "2026-10-01", EndDate: "2026-10-12",
	})
	assert.NoError(t, err)
}

func TestApproveOrReject(t *testing.T) {
	s, ctx := seededStore(t)

	_, err := s.ApproveOrReject(ctx, "EMP004", "2026-09-01", "defer", "x")
	assert.ErrorContains(t, err, "'approve' or 'reject'")

	_, err = s.ApproveOrReject(ctx, "EMP004", "2026-09-01", "approve", "x")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Apply(ctx, LeaveRequest{
		EmpCode: "EMP004", LeaveType: "earned",
		StartDate: "2026-09-01", EndDate: "2026-09-05",
	})
	require.NoError(t, err)

	rec, err := s.ApproveOrReject(ctx, "emp004", "2026-09-01", "APPROVE", "priya.hr@company.com")
	require.NoError(t, err)
	assert.Equal(t, "approved", rec.Status)

	// already reviewed; nothing pending remains for that start date
	_, err = s.ApproveOrReject(ctx, "EMP004", "2026-09-01", "approve", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecordsFilterByStatus(t *testing.T) {
	s, ctx := seededStore(t)

	_, err := s.Apply(ctx, LeaveRequest{
		EmpCode: "EMP005", LeaveType: "casual",
		StartDate: "2026-09-01", EndDate: "2026-09-02",
	})
	require.NoError(t, err)

	pending, err := s.Records(ctx, "emp005", "PENDING")
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	credits, err := s.Records(ctx, "EMP005", "credit")
	require.NoError(t, err)
	assert.Len(t, credits, 3)

	all, err := s.Records(ctx, "EMP005", "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	none, err := s.Records(ctx, "EMP005", "approved")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCreditAddsAllowance(t *testing.T) {
	s, ctx := seededStore(t)

	rec, err := s.Credit(ctx, "emp006", "earned", 5, "service award")
	require.NoError(t, err)
	assert.Equal(t, "EMP006", rec.EmpCode)
	assert.Equal(t, "credit", rec.Status)
	assert.Equal(t, 5.0, rec.DaysCredited)

	_, err = s.Credit(ctx, "EMP006", "unpaid", 5, "nope")
	assert.ErrorContains(t, err, "casual, sick, or earned")
}
