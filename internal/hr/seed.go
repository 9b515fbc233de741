package hr

import (
	"context"
	"strings"
)

// Seed loads the demo data set: five user accounts, six employees across four
// departments, annual leave credits, and a few months of attendance and
// payroll. Idempotent over a fresh store only; call once at boot.
func (s *Store) Seed(ctx context.Context) error {
	users := []*User{
		{Email: "admin@hrms.com", Name: "System Admin", Role: RoleSuperAdmin, EmpCode: "EMP001"},
		{Email: "priya.hr@company.com", Name: "Priya Sharma", Role: RoleHRAdmin, EmpCode: "EMP002"},
		{Email: "rahul.m@company.com", Name: "Rahul Mehta", Role: RoleManager, EmpCode: "EMP003"},
		{Email: "anita.d@company.com", Name: "Anita Desai", Role: RoleEmployee, EmpCode: "EMP004"},
		{Email: "vikram.s@company.com", Name: "Vikram Singh", Role: RoleEmployee, EmpCode: "EMP005"},
	}
	employees := []*Employee{
		{EmpCode: "EMP001", Name: "System Admin", Email: "admin@hrms.com", Department: "IT", Designation: "CTO", DateOfJoining: "2020-01-15", Salary: 4200000, Phone: "9876543210", Gender: "male"},
		{EmpCode: "EMP002", Name: "Priya Sharma", Email: "priya.hr@company.com", Department: "HR", Designation: "HR Manager", DateOfJoining: "2021-03-01", Salary: 1900000, ManagerName: "System Admin", Phone: "9876543211", Gender: "female"},
		{EmpCode: "EMP003", Name: "Rahul Mehta", Email: "rahul.m@company.com", Department: "Engineering", Designation: "Engineering Manager", DateOfJoining: "2021-06-15", Salary: 2800000, ManagerName: "System Admin", Phone: "9876543212", Gender: "male"},
		{EmpCode: "EMP004", Name: "Anita Desai", Email: "anita.d@company.com", Department: "Engineering", Designation: "Software Engineer", DateOfJoining: "2022-02-01", Salary: 1400000, ManagerName: "Rahul Mehta", Phone: "9876543213", Gender: "female"},
		{EmpCode: "EMP005", Name: "Vikram Singh", Email: "vikram.s@company.com", Department: "Engineering", Designation: "Software Engineer", DateOfJoining: "2022-08-16", Salary: 1250000, ManagerName: "Rahul Mehta", Phone: "9876543214", Gender: "male"},
		{EmpCode: "EMP006", Name: "Meera Nair", Email: "meera.n@company.com", Department: "Finance", Designation: "Accountant", DateOfJoining: "2023-01-09", Salary: 950000, ManagerName: "System Admin", Phone: "9876543215", Gender: "female"},
	}

	s.mu.Lock()
	for _, u := range users {
		cp := *u
		s.users[strings.ToLower(u.Email)] = &cp
	}
	s.mu.Unlock()
	for _, emp := range employees {
		if _, err := s.Add(ctx, emp); err != nil {
			return err
		}
	}

	// Annual leave credits per the active policy.
	quota, err := s.LeaveCredits(ctx)
	if err != nil {
		return err
	}
	for _, emp := range employees {
		for lt, days := range map[string]int{
			"casual": quota.CasualLeave,
			"sick":   quota.SickLeave,
			"earned": quota.EarnedLeave,
		} {
			if _, err := s.Credit(ctx, emp.EmpCode, lt, float64(days), "annual credit"); err != nil {
				return err
			}
		}
	}

	// A little recent history so read tools return data out of the box.
	s.mu.Lock()
	s.attendance = append(s.attendance,
		&AttendanceRecord{EmpCode: "EMP004", Date: "2026-08-21", CheckIn: "09:05", CheckOut: "18:10", Status: "present"},
		&AttendanceRecord{EmpCode: "EMP004", Date: "2026-08-22", CheckIn: "09:12", CheckOut: "18:02", Status: "present"},
		&AttendanceRecord{EmpCode: "EMP005", Date: "2026-08-21", Status: "wfh"},
	)
	s.mu.Unlock()

	for _, emp := range employees {
		for _, month := range []string{"2026-06", "2026-07"} {
			if _, err := s.CreateFromCTC(ctx, emp.EmpCode, emp.Salary, month); err != nil {
				return err
			}
		}
	}
	return nil
}
