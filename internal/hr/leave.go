package hr

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Leave types accepted by the leave service.
var leaveTypes = map[string]struct{}{
	"casual": {},
	"sick":   {},
	"earned": {},
}

// LeaveRecord is one leave application or annual credit row. Status is one of
// pending, approved, rejected, or credit (an allowance grant).
type LeaveRecord struct {
	EmpCode      string  `json:"emp_code"`
	LeaveType    string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Days         float64 `json:"days"`
	Status       string  `json:"status"`
	Reason       string  `json:"reason,omitempty"`
	ApprovedBy   string  `json:"approved_by,omitempty"`
	DaysCredited float64 `json:"days_credited,omitempty"`
}

// LeaveRequest is the input for a new leave application.
type LeaveRequest struct {
	EmpCode   string
	LeaveType string
	StartDate string
	EndDate   string
	Reason    string
}

// LeaveService exposes leave operations to the tool layer.
type LeaveService interface {
	Records(ctx context.Context, empCode, status string) ([]*LeaveRecord, error)
	Apply(ctx context.Context, req LeaveRequest) (*LeaveRecord, error)
	ApproveOrReject(ctx context.Context, empCode, startDate, action, approvedBy string) (*LeaveRecord, error)
	Credit(ctx context.Context, empCode, leaveType string, days float64, reason string) (*LeaveRecord, error)
}

func (s *Store) Records(ctx context.Context, empCode, status string) ([]*LeaveRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	code := strings.ToUpper(strings.TrimSpace(empCode))
	var out []*LeaveRecord
	for _, rec := range s.leaves {
		if rec.EmpCode != code {
			continue
		}
		if status != "" && !strings.EqualFold(rec.Status, status) {
			continue
		}
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Store) Apply(ctx context.Context, req LeaveRequest) (*LeaveRecord, error) {
	lt := strings.ToLower(strings.TrimSpace(req.LeaveType))
	if _, ok := leaveTypes[lt]; !ok {
		return nil, fmt.Errorf("leave_type must be casual, sick, or earned")
	}
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date %q, expected YYYY-MM-DD", req.StartDate)
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end_date %q, expected YYYY-MM-DD", req.EndDate)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end_date is before start_date")
	}
	days := end.Sub(start).Hours()/24 + 1

	s.mu.Lock()
	defer s.mu.Unlock()

	code := strings.ToUpper(strings.TrimSpace(req.EmpCode))
	if _, ok := s.employees[code]; !ok {
		return nil, fmt.Errorf("employee %q %w", req.EmpCode, ErrNotFound)
	}

	available := s.balanceLocked(code, lt)
	if days > available {
		return nil, fmt.Errorf("insufficient %s leave balance: available %.1f, requested %.1f", lt, available, days)
	}

	rec := &LeaveRecord{
		EmpCode:   code,
		LeaveType: lt,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Days:      days,
		Status:    "pending",
		Reason:    req.Reason,
	}
	s.leaves = append(s.leaves, rec)
	cp := *rec
	return &cp, nil
}

func (s *Store) ApproveOrReject(ctx context.Context, empCode, startDate, action, approvedBy string) (*LeaveRecord, error) {
	act := strings.ToLower(strings.TrimSpace(action))
	if act != "approve" && act != "reject" {
		return nil, fmt.Errorf("action must be 'approve' or 'reject'")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code := strings.ToUpper(strings.TrimSpace(empCode))
	for _, rec := range s.leaves {
		if rec.EmpCode == code && rec.StartDate == startDate && rec.Status == "pending" {
			if act == "approve" {
				rec.Status = "approved"
			} else {
				rec.Status = "rejected"
			}
			rec.ApprovedBy = approvedBy
			cp := *rec
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("pending leave for %s starting %s %w", code, startDate, ErrNotFound)
}

func (s *Store) Credit(ctx context.Context, empCode, leaveType string, days float64, reason string) (*LeaveRecord, error) {
	lt := strings.ToLower(strings.TrimSpace(leaveType))
	if _, ok := leaveTypes[lt]; !ok {
		return nil, fmt.Errorf("leave_type must be casual, sick, or earned")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := time.Now().UTC().Format("2006-01-02")
	rec := &LeaveRecord{
		EmpCode:      strings.ToUpper(strings.TrimSpace(empCode)),
		LeaveType:    lt,
		StartDate:    today,
		EndDate:      today,
		Status:       "credit",
		Reason:       reason,
		DaysCredited: days,
	}
	s.leaves = append(s.leaves, rec)
	cp := *rec
	return &cp, nil
}

// balanceLocked computes credited minus consumed days for one leave type.
// Pending applications count as consumed so a second application cannot
// overdraw the balance before the first is reviewed. Caller holds s.mu.
func (s *Store) balanceLocked(empCode, leaveType string) float64 {
	var bal float64
	for _, rec := range s.leaves {
		if rec.EmpCode != empCode || rec.LeaveType != leaveType {
			continue
		}
		switch rec.Status {
		case "credit":
			bal += rec.DaysCredited
		case "approved", "pending":
			bal -= rec.Days
		}
	}
	return bal
}
