package hr

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Appraisal is one performance review cycle for an employee.
type Appraisal struct {
	EmpCode         string  `json:"emp_code"`
	Cycle           string  `json:"appraisal_cycle"`
	Status          string  `json:"status"`
	Rating          float64 `json:"rating,omitempty"`
	HikePct         float64 `json:"hike_pct,omitempty"`
	OldSalary       float64 `json:"old_salary,omitempty"`
	NewSalary       float64 `json:"new_salary,omitempty"`
	NewDesignation  string  `json:"new_designation,omitempty"`
	ManagerFeedback string  `json:"manager_feedback,omitempty"`
	HRComments      string  `json:"hr_comments,omitempty"`
	InitiatedBy     string  `json:"initiated_by"`
	CompletedBy     string  `json:"completed_by,omitempty"`
	EffectiveDate   string  `json:"effective_date,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// CompleteAppraisalInput finalizes a cycle. Exactly one of HikePct or
// NewSalary is needed to change compensation; both zero leaves salary as is.
type CompleteAppraisalInput struct {
	EmpCode         string
	Cycle           string
	Rating          float64
	HikePct         float64
	NewSalary       float64
	NewDesignation  string
	ManagerFeedback string
	HRComments      string
	EffectiveDate   string
	CompletedBy     string
}

// AppraisalService exposes the appraisal workflow to the tool layer.
type AppraisalService interface {
	InitiateAppraisal(ctx context.Context, empCode, cycle, initiatedBy, managerFeedback string) (*Appraisal, error)
	CompleteAppraisal(ctx context.Context, in CompleteAppraisalInput) (*Appraisal, error)
	AppraisalHistory(ctx context.Context, empCode string, limit int) ([]*Appraisal, error)
}

func (s *Store) InitiateAppraisal(ctx context.Context, empCode, cycle, initiatedBy, managerFeedback string) (*Appraisal, error) {
	cycle = strings.TrimSpace(cycle)
	if cycle == "" {
		return nil, fmt.Errorf("appraisal_cycle is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code := strings.ToUpper(strings.TrimSpace(empCode))
	if _, ok := s.employees[code]; !ok {
		return nil, fmt.Errorf("employee %q %w", empCode, ErrNotFound)
	}
	for _, a := range s.appraisals {
		if a.EmpCode == code && strings.EqualFold(a.Cycle, cycle) && a.Status == "in_progress" {
			return nil, fmt.Errorf("appraisal for %s cycle %s is already in progress", code, cycle)
		}
	}

	appr := &Appraisal{
		EmpCode:         code,
		Cycle:           cycle,
		Status:          "in_progress",
		ManagerFeedback: managerFeedback,
		InitiatedBy:     initiatedBy,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}
	s.appraisals = append(s.appraisals, appr)
	cp := *appr
	return &cp, nil
}

func (s *Store) CompleteAppraisal(ctx context.Context, in CompleteAppraisalInput) (*Appraisal, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1.0 and 5.0")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code := strings.ToUpper(strings.TrimSpace(in.EmpCode))
	emp, ok := s.employees[code]
	if !ok {
		return nil, fmt.Errorf("employee %q %w", in.EmpCode, ErrNotFound)
	}

	for _, appr := range s.appraisals {
		if appr.EmpCode != code || !strings.EqualFold(appr.Cycle, in.Cycle) {
			continue
		}
		if appr.Status != "in_progress" {
			return nil, fmt.Errorf("appraisal for %s cycle %s is already %s", code, in.Cycle, appr.Status)
		}

		appr.Status = "completed"
		appr.Rating = in.Rating
		appr.OldSalary = emp.Salary
		appr.NewSalary = emp.Salary
		if in.NewSalary > 0 {
			appr.NewSalary = in.NewSalary
		} else if in.HikePct > 0 {
			appr.NewSalary = round2(emp.Salary * (1 + in.HikePct/100))
		}
		appr.HikePct = in.HikePct
		appr.NewDesignation = in.NewDesignation
		if in.ManagerFeedback != "" {
			appr.ManagerFeedback = in.ManagerFeedback
		}
		appr.HRComments = in.HRComments
		appr.CompletedBy = in.CompletedBy
		appr.EffectiveDate = in.EffectiveDate
		if appr.EffectiveDate == "" {
			appr.EffectiveDate = time.Now().UTC().Format("2006-01-02")
		}

		// Apply the outcome to the employee record.
		emp.Salary = appr.NewSalary
		if in.NewDesignation != "" {
			emp.Designation = in.NewDesignation
		}

		cp := *appr
		return &cp, nil
	}
	return nil, fmt.Errorf("no appraisal for %s cycle %s; initiate one first", code, in.Cycle)
}

func (s *Store) AppraisalHistory(ctx context.Context, empCode string, limit int) ([]*Appraisal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	code := strings.ToUpper(strings.TrimSpace(empCode))
	out := make([]*Appraisal, 0, limit)
	for i := len(s.appraisals) - 1; i >= 0 && len(out) < limit; i-- {
		appr := s.appraisals[i]
		if code != "" && appr.EmpCode != code {
			continue
		}
		cp := *appr
		out = append(out, &cp)
	}
	return out, nil
}
