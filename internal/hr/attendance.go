package hr

import (
	"context"
	"strings"
)

// AttendanceRecord is one day's attendance row.
type AttendanceRecord struct {
	EmpCode  string `json:"emp_code"`
	Date     string `json:"date"`
	CheckIn  string `json:"check_in,omitempty"`
	CheckOut string `json:"check_out,omitempty"`
	Status   string `json:"status"`
}

// AttendanceService exposes attendance lookups to the tool layer.
type AttendanceService interface {
	Attendance(ctx context.Context, empCode, date string) ([]*AttendanceRecord, error)
}

func (s *Store) Attendance(ctx context.Context, empCode, date string) ([]*AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	code := strings.ToUpper(strings.TrimSpace(empCode))
	var out []*AttendanceRecord
	for _, rec := range s.attendance {
		if rec.EmpCode != code {
			continue
		}
		if date != "" && rec.Date != date {
			continue
		}
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}
