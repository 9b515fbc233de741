package hr

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Employee is an HR master record. Dates are YYYY-MM-DD strings as exchanged
// with the assistant.
type Employee struct {
	EmpCode        string  `json:"emp_code"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Department     string  `json:"department"`
	Designation    string  `json:"designation"`
	DateOfJoining  string  `json:"date_of_joining"`
	Salary         float64 `json:"salary"`
	ManagerName    string  `json:"manager_name,omitempty"`
	Phone          string  `json:"phone,omitempty"`
	Gender         string  `json:"gender,omitempty"`
	Status         string  `json:"status"`
	TaxRegime      string  `json:"tax_regime"`
	LastWorkingDay string  `json:"last_working_day,omitempty"`
}

// EmployeeUpdate carries optional field overrides for Update. Nil pointers
// leave the field untouched.
type EmployeeUpdate struct {
	Department  *string
	Designation *string
	Salary      *float64
	ManagerName *string
}

// EmployeePage is one page of a paginated listing.
type EmployeePage struct {
	Employees []*Employee `json:"employees"`
	Page      int         `json:"page"`
	PageSize  int         `json:"page_size"`
	Total     int         `json:"total"`
}

// CompanyStats is an aggregate head-count view over active employees.
type CompanyStats struct {
	TotalEmployees int            `json:"total_employees"`
	Active         int            `json:"active"`
	Resigned       int            `json:"resigned"`
	Departments    map[string]int `json:"departments"`
	AverageSalary  float64        `json:"average_salary"`
}

// Directory exposes employee master-data operations to the tool layer.
type Directory interface {
	Lookup(ctx context.Context, query string) (*Employee, error)
	ListByDepartment(ctx context.Context, department string) ([]*Employee, error)
	ListAll(ctx context.Context, page, pageSize int, search string) (*EmployeePage, error)
	Stats(ctx context.Context) (*CompanyStats, error)
	Add(ctx context.Context, emp *Employee) (*Employee, error)
	Update(ctx context.Context, empCode string, upd EmployeeUpdate) (*Employee, error)
	InitiateResignation(ctx context.Context, empCode, lastWorkingDay, reason string) (*Employee, error)
	SetTaxRegime(ctx context.Context, empCode, regime string) (*Employee, error)
}

// Accounts exposes user-account operations (role assignment).
type Accounts interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	AssignRole(ctx context.Context, email string, role Role) (*User, error)
}

func (s *Store) Lookup(ctx context.Context, query string) (*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("lookup query is empty")
	}
	if emp, ok := s.employees[strings.ToUpper(q)]; ok {
		return cloneEmployee(emp), nil
	}
	ql := strings.ToLower(q)
	for _, emp := range s.employees {
		if strings.Contains(strings.ToLower(emp.Name), ql) || strings.EqualFold(emp.Email, q) {
			return cloneEmployee(emp), nil
		}
	}
	return nil, fmt.Errorf("employee %q %w", query, ErrNotFound)
}

func (s *Store) ListByDepartment(ctx context.Context, department string) ([]*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Employee
	for _, emp := range s.employees {
		if strings.EqualFold(emp.Department, department) {
			out = append(out, cloneEmployee(emp))
		}
	}
	sortEmployees(out)
	return out, nil
}

func (s *Store) ListAll(ctx context.Context, page, pageSize int, search string) (*EmployeePage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 25 {
		pageSize = 25
	}

	var all []*Employee
	sl := strings.ToLower(strings.TrimSpace(search))
	for _, emp := range s.employees {
		if sl != "" &&
			!strings.Contains(strings.ToLower(emp.Name), sl) &&
			!strings.Contains(strings.ToLower(emp.Department), sl) &&
			!strings.Contains(strings.ToLower(emp.Designation), sl) {
			continue
		}
		all = append(all, cloneEmployee(emp))
	}
	sortEmployees(all)

	total := len(all)
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return &EmployeePage{
		Employees: all[start:end],
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
	}, nil
}

func (s *Store) Stats(ctx context.Context) (*CompanyStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &CompanyStats{Departments: map[string]int{}}
	var salarySum float64
	for _, emp := range s.employees {
		stats.TotalEmployees++
		if emp.Status == "resigned" {
			stats.Resigned++
			continue
		}
		stats.Active++
		stats.Departments[emp.Department]++
		salarySum += emp.Salary
	}
	if stats.Active > 0 {
		stats.AverageSalary = math.Round(salarySum / float64(stats.Active))
	}
	return stats, nil
}

func (s *Store) Add(ctx context.Context, emp *Employee) (*Employee, error) {
	if emp == nil {
		return nil, fmt.Errorf("employee is nil")
	}
	code := strings.ToUpper(strings.TrimSpace(emp.EmpCode))
	if code == "" || emp.Name == "" || emp.Email == "" {
		return nil, fmt.Errorf("emp_code, name and email are required")
	}
	if _, err := time.Parse("2006-01-02", emp.DateOfJoining); err != nil {
		return nil, fmt.Errorf("invalid date_of_joining %q, expected YYYY-MM-DD", emp.DateOfJoining)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.employees[code]; exists {
		return nil, fmt.Errorf("employee %s already exists", code)
	}
	stored := cloneEmployee(emp)
	stored.EmpCode = code
	if stored.Status == "" {
		stored.Status = "active"
	}
	if stored.TaxRegime == "" {
		stored.TaxRegime = "new"
	}
	s.employees[code] = stored
	return cloneEmployee(stored), nil
}

func (s *Store) Update(ctx context.Context, empCode string, upd EmployeeUpdate) (*Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	emp, ok := s.employees[strings.ToUpper(strings.TrimSpace(empCode))]
	if !ok {
		return nil, fmt.Errorf("employee %q %w", empCode, ErrNotFound)
	}
	if upd.Department != nil {
		emp.Department = *upd.Department
	}
	if upd.Designation != nil {
		emp.Designation = *upd.Designation
	}
	if upd.Salary != nil {
		emp.Salary = *upd.Salary
	}
	if upd.ManagerName != nil {
		emp.ManagerName = *upd.ManagerName
	}
	return cloneEmployee(emp), nil
}

func (s *Store) InitiateResignation(ctx context.Context, empCode, lastWorkingDay, reason string) (*Employee, error) {
	if _, err := time.Parse("2006-01-02", lastWorkingDay); err != nil {
		return nil, fmt.Errorf("invalid resignation_date %q, expected YYYY-MM-DD", lastWorkingDay)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	emp, ok := s.employees[strings.ToUpper(strings.TrimSpace(empCode))]
	if !ok {
		return nil, fmt.Errorf("employee %q %w", empCode, ErrNotFound)
	}
	if emp.Status == "resigned" {
		return nil, fmt.Errorf("employee %s has already resigned", emp.EmpCode)
	}
	emp.Status = "resigned"
	emp.LastWorkingDay = lastWorkingDay
	return cloneEmployee(emp), nil
}

func (s *Store) SetTaxRegime(ctx context.Context, empCode, regime string) (*Employee, error) {
	regime = strings.ToLower(strings.TrimSpace(regime))
	if regime != "new" && regime != "old" {
		return nil, fmt.Errorf("tax_regime must be 'new' or 'old'")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	emp, ok := s.employees[strings.ToUpper(strings.TrimSpace(empCode))]
	if !ok {
		return nil, fmt.Errorf("employee %q %w", empCode, ErrNotFound)
	}
	emp.TaxRegime = regime
	return cloneEmployee(emp), nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, fmt.Errorf("user %q %w", email, ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (s *Store) AssignRole(ctx context.Context, email string, role Role) (*User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", role)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, fmt.Errorf("user %q %w", email, ErrNotFound)
	}
	u.Role = role
	cp := *u
	return &cp, nil
}

func cloneEmployee(e *Employee) *Employee {
	cp := *e
	return &cp
}

func sortEmployees(emps []*Employee) {
	sort.Slice(emps, func(i, j int) bool { return emps[i].EmpCode < emps[j].EmpCode })
}
