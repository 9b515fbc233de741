package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrms-agent/server/internal/hr"
)

func newTestRegistry(t *testing.T) (*Registry, *hr.Store) {
	t.Helper()
	store := hr.NewStore()
	require.NoError(t, store.Seed(context.Background()))
	return NewRegistry(store.Services()), store
}

func TestRegistryCoversPermissionMatrix(t *testing.T) {
	reg, _ := newTestRegistry(t)

	names := reg.Names()
	assert.Len(t, names, len(RequiredPermission))

	for name := range RequiredPermission {
		_, ok := reg.Get(name)
		assert.True(t, ok, "no tool registered for %s", name)
	}
	for _, name := range names {
		_, ok := RequiredPermission[name]
		assert.True(t, ok, "tool %s has no permission mapping", name)
	}
}

func TestWriteToolClassification(t *testing.T) {
	for name := range WriteTools {
		_, ok := RequiredPermission[name]
		assert.True(t, ok, "write tool %s is not in the catalog", name)
		assert.True(t, IsWriteTool(name))
	}
	assert.Len(t, WriteTools, 12)

	for _, name := range []string{
		ToolLookupEmployee,
		ToolListByDepartment,
		ToolListAllEmployees,
		ToolGetLeaveRecords,
		ToolGetAttendance,
		ToolGetPayroll,
		ToolGetCompanyStats,
		ToolGetHRPolicy,
		ToolGetHRPolicyHistory,
		ToolComputeSalaryBreakup,
		ToolListUpdateRequests,
		ToolGetAppraisalHistory,
	} {
		assert.False(t, IsWriteTool(name), "%s must not be a write tool", name)
	}
}

func TestPermissionAssignments(t *testing.T) {
	assert.Equal(t, hr.PermViewAllData, RequiredPermission[ToolListAllEmployees])
	assert.Equal(t, hr.PermApproveLeave, RequiredPermission[ToolApproveOrRejectLeave])
	assert.Equal(t, hr.PermManageRoles, RequiredPermission[ToolAssignRole])
	assert.Equal(t, hr.PermManageEmployee, RequiredPermission[ToolSetHRPolicy])
	// any authenticated user may choose their own regime
	assert.Equal(t, hr.PermApplyLeave, RequiredPermission[ToolSetEmployeeTaxRegime])
	assert.Equal(t, hr.PermApplyLeave, RequiredPermission[ToolSubmitUpdateRequest])
}

func TestInfosMatchRegisteredNames(t *testing.T) {
	reg, _ := newTestRegistry(t)

	infos, err := reg.Infos(context.Background())
	require.NoError(t, err)
	require.Len(t, infos, len(RequiredPermission))

	names := reg.Names()
	for i, info := range infos {
		assert.Equal(t, names[i], info.Name)
		assert.NotEmpty(t, info.Desc, "tool %s has no description", info.Name)
	}
}
