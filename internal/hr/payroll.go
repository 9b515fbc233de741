package hr

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// PayrollSlip is one month's computed payroll row.
type PayrollSlip struct {
	EmpCode         string  `json:"emp_code"`
	Month           string  `json:"month"`
	BasicPay        float64 `json:"basic_pay"`
	HRA             float64 `json:"hra"`
	Allowances      float64 `json:"allowances"`
	GrossPay        float64 `json:"gross_pay"`
	PFDeduction     float64 `json:"pf_deduction"`
	ESIDeduction    float64 `json:"esi_deduction,omitempty"`
	ProfessionalTax float64 `json:"professional_tax"`
	TDS             float64 `json:"tds"`
	NetPay          float64 `json:"net_pay"`
}

// PayrollService exposes payroll reads and the auto-generation step used by
// the add-employee composite.
type PayrollService interface {
	Slips(ctx context.Context, empCode, month string) ([]*PayrollSlip, error)
	CreateFromCTC(ctx context.Context, empCode string, annualCTC float64, month string) (*PayrollSlip, error)
}

func (s *Store) Slips(ctx context.Context, empCode, month string) ([]*PayrollSlip, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	code := strings.ToUpper(strings.TrimSpace(empCode))
	var out []*PayrollSlip
	for _, slip := range s.payroll {
		if slip.EmpCode != code {
			continue
		}
		if month != "" && slip.Month != month {
			continue
		}
		cp := *slip
		out = append(out, &cp)
	}
	return out, nil
}

// CreateFromCTC derives a month's slip from the active policy's salary
// breakup. One slip per (employee, month); re-running replaces the row.
func (s *Store) CreateFromCTC(ctx context.Context, empCode string, annualCTC float64, month string) (*PayrollSlip, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, fmt.Errorf("invalid month %q, expected YYYY-MM", month)
	}

	breakup, err := s.ComputeBreakup(ctx, annualCTC, "")
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code := strings.ToUpper(strings.TrimSpace(empCode))
	slip := &PayrollSlip{
		EmpCode:         code,
		Month:           month,
		BasicPay:        breakup.BasicMonthly,
		HRA:             breakup.HRAMonthly,
		Allowances:      breakup.SpecialMonthly,
		GrossPay:        breakup.GrossMonthly,
		PFDeduction:     breakup.PFEmployee,
		ESIDeduction:    breakup.ESIEmployee,
		ProfessionalTax: breakup.ProfessionalTax,
		TDS:             breakup.TDSMonthly,
		NetPay:          breakup.NetMonthly,
	}
	for i, existing := range s.payroll {
		if existing.EmpCode == code && existing.Month == month {
			s.payroll[i] = slip
			cp := *slip
			return &cp, nil
		}
	}
	s.payroll = append(s.payroll, slip)
	cp := *slip
	return &cp, nil
}
