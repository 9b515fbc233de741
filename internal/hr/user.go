package hr

import "context"

// Role is an access level assigned to a user account.
type Role string

const (
	RoleEmployee   Role = "employee"
	RoleManager    Role = "manager"
	RoleHRAdmin    Role = "hr_admin"
	RoleSuperAdmin Role = "super_admin"
)

// Valid reports whether the role is one of the known levels.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleHRAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// Permission is a named capability checked before tool dispatch.
type Permission string

const (
	PermViewEmployee   Permission = "view_employee"
	PermViewAllData    Permission = "view_all_data"
	PermViewLeave      Permission = "view_leave"
	PermApplyLeave     Permission = "apply_leave"
	PermApproveLeave   Permission = "approve_leave"
	PermViewAttendance Permission = "view_attendance"
	PermViewPayroll    Permission = "view_payroll"
	PermManageEmployee Permission = "manage_employee"
	PermManageRoles    Permission = "manage_roles"
	PermViewOwnData    Permission = "view_own_data"
)

// rolePermissions is the static role → granted-permission matrix. Unknown
// roles grant nothing.
var rolePermissions = map[Role]map[Permission]struct{}{
	RoleSuperAdmin: permSet(
		PermViewEmployee, PermViewLeave, PermApplyLeave, PermApproveLeave,
		PermViewPayroll, PermViewAttendance, PermManageEmployee,
		PermManageRoles, PermViewOwnData, PermViewAllData,
	),
	RoleHRAdmin: permSet(
		PermViewEmployee, PermViewLeave, PermApplyLeave, PermApproveLeave,
		PermViewPayroll, PermViewAttendance, PermManageEmployee,
		PermViewOwnData, PermViewAllData,
	),
	RoleManager: permSet(
		PermViewEmployee, PermViewLeave, PermApplyLeave, PermApproveLeave,
		PermViewPayroll, PermViewAttendance, PermViewOwnData,
	),
	RoleEmployee: permSet(
		PermViewEmployee, PermViewLeave, PermApplyLeave,
		PermViewAttendance, PermViewPayroll, PermViewOwnData,
	),
}

func permSet(perms ...Permission) map[Permission]struct{} {
	s := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		s[p] = struct{}{}
	}
	return s
}

// Has reports whether the role's granted set contains the permission.
func (r Role) Has(p Permission) bool {
	_, ok := rolePermissions[r][p]
	return ok
}

// Permissions returns the role's granted set. The returned map is shared;
// callers must not mutate it.
func (r Role) Permissions() map[Permission]struct{} {
	return rolePermissions[r]
}

// User is the authenticated caller identity attached to every turn.
type User struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Role    Role   `json:"role"`
	EmpCode string `json:"emp_code"`
}

type userCtxKey struct{}

// WithUser attaches the acting user to the context for downstream tool
// handlers.
func WithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext returns the acting user, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(*User)
	return u, ok
}
