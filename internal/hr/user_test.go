package hr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolePermissionMatrix(t *testing.T) {
	allPerms := []Permission{
		PermViewEmployee, PermViewAllData, PermViewLeave, PermApplyLeave,
		PermApproveLeave, PermViewAttendance, PermViewPayroll,
		PermManageEmployee, PermManageRoles, PermViewOwnData,
	}

	tests := []struct {
		role    Role
		granted int
		denied  []Permission
	}{
		{RoleSuperAdmin, 10, nil},
		{RoleHRAdmin, 9, []Permission{PermManageRoles}},
		{RoleManager, 7, []Permission{PermViewAllData, PermManageEmployee, PermManageRoles}},
		{RoleEmployee, 6, []Permission{PermViewAllData, PermApproveLeave, PermManageEmployee, PermManageRoles}},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Len(t, tt.role.Permissions(), tt.granted)
			for _, p := range tt.denied {
				assert.False(t, tt.role.Has(p), "%s must not have %s", tt.role, p)
			}
			denied := map[Permission]struct{}{}
			for _, p := range tt.denied {
				denied[p] = struct{}{}
			}
			for _, p := range allPerms {
				if _, skip := denied[p]; skip {
					continue
				}
				assert.True(t, tt.role.Has(p), "%s must have %s", tt.role, p)
			}
		})
	}
}

func TestUnknownRoleGrantsNothing(t *testing.T) {
	ghost := Role("contractor")
	assert.False(t, ghost.Valid())
	assert.False(t, ghost.Has(PermViewEmployee))
	assert.Empty(t, ghost.Permissions())
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleEmployee, RoleManager, RoleHRAdmin, RoleSuperAdmin} {
		assert.True(t, r.Valid())
	}
	assert.False(t, Role("").Valid())
	assert.False(t, Role("admin").Valid())
}

func TestUserContextRoundTrip(t *testing.T) {
	u := &User{Email: "anita.d@company.com", Name: "Anita Desai", Role: RoleEmployee, EmpCode: "EMP004"}

	ctx := WithUser(context.Background(), u)
	got, ok := UserFromContext(ctx)
	require.True(t, ok)
	assert.Same(t, u, got)

	_, ok = UserFromContext(context.Background())
	assert.False(t, ok)
}
