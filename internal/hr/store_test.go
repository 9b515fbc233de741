package hr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore(t *testing.T) (*Store, context.Context) {
	t.Helper()
	s := NewStore()
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx))
	return s, ctx
}

func TestSeedLoadsDemoData(t *testing.T) {
	s, ctx := seededStore(t)

	page, err := s.ListAll(ctx, 1, 25, "")
	require.NoError(t, err)
	assert.Equal(t, 6, page.Total)

	for _, email := range []string{
		"admin@hrms.com", "priya.hr@company.com", "rahul.m@company.com",
		"anita.d@company.com", "vikram.s@company.com",
	} {
		_, err := s.FindByEmail(ctx, email)
		assert.NoError(t, err, "seed user %s missing", email)
	}

	admin, err := s.FindByEmail(ctx, "admin@hrms.com")
	require.NoError(t, err)
	assert.Equal(t, RoleSuperAdmin, admin.Role)

	// every employee gets the three annual credits from the v1 policy
	credits, err := s.Records(ctx, "EMP004", "credit")
	require.NoError(t, err)
	require.Len(t, credits, 3)
	byType := map[string]float64{}
	for _, c := range credits {
		byType[c.LeaveType] = c.DaysCredited
	}
	assert.Equal(t, 12.0, byType["casual"])
	assert.Equal(t, 12.0, byType["sick"])
	assert.Equal(t, 15.0, byType["earned"])

	// two months of payroll per employee
	slips, err := s.Slips(ctx, "EMP006", "")
	require.NoError(t, err)
	assert.Len(t, slips, 2)

	att, err := s.Attendance(ctx, "EMP004", "")
	require.NoError(t, err)
	assert.NotEmpty(t, att)

	policy, err := s.ActivePolicy(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, policy.Version)
}

func TestAttendanceFilters(t *testing.T) {
	s, ctx := seededStore(t)

	all, err := s.Attendance(ctx, "emp004", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	day, err := s.Attendance(ctx, "EMP004", "2026-08-21")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, "09:05", day[0].CheckIn)
	assert.Equal(t, "present", day[0].Status)

	none, err := s.Attendance(ctx, "EMP004", "2001-01-01")
	require.NoError(t, err)
	assert.Empty(t, none)

	wfh, err := s.Attendance(ctx, "EMP005", "2026-08-21")
	require.NoError(t, err)
	require.Len(t, wfh, 1)
	assert.Equal(t, "wfh", wfh[0].Status)
	assert.Empty(t, wfh[0].CheckIn)
}

func TestPayrollSlipFilters(t *testing.T) {
	s, ctx := seededStore(t)

	all, err := s.Slips(ctx, "EMP004", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	june, err := s.Slips(ctx, "emp004", "2026-06")
	require.NoError(t, err)
	require.Len(t, june, 1)
	assert.Equal(t, "2026-06", june[0].Month)
	assert.Greater(t, june[0].NetPay, 0.0)
	assert.InDelta(t, june[0].BasicPay+june[0].HRA+june[0].Allowances+1250+1600, june[0].GrossPay, 0.01)
}

func TestCreateFromCTCReplacesExistingMonth(t *testing.T) {
	s, ctx := seededStore(t)

	first, err := s.CreateFromCTC(ctx, "EMP004", 1400000, "2026-08")
	require.NoError(t, err)

	// rerun with a different CTC replaces the row instead of duplicating it
	second, err := s.CreateFromCTC(ctx, "EMP004", 2000000, "2026-08")
	require.NoError(t, err)
	assert.Greater(t, second.GrossPay, first.GrossPay)

	slips, err := s.Slips(ctx, "EMP004", "2026-08")
	require.NoError(t, err)
	require.Len(t, slips, 1)
	assert.Equal(t, second.NetPay, slips[0].NetPay)
}

func TestCreateFromCTCRejectsBadMonth(t *testing.T) {
	s, ctx := seededStore(t)

	_, err := s.CreateFromCTC(ctx, "EMP004", 1400000, "August 2026")
	assert.ErrorContains(t, err, "expected YYYY-MM")
}

func TestServicesBundleIsBackedByStore(t *testing.T) {
	s, ctx := seededStore(t)
	svc := s.Services()

	emp, err := svc.Directory.Lookup(ctx, "EMP004")
	require.NoError(t, err)
	assert.Equal(t, "Anita Desai", emp.Name)

	quota, err := svc.Policy.LeaveCredits(ctx)
	require.NoError(t, err)
	assert.Equal(t, 12, quota.CasualLeave)
}
