package hr

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

// SalaryBreakupConfig holds salary component percentages of CTC and fixed
// monthly amounts.
type SalaryBreakupConfig struct {
	BasicPct            float64 `json:"basic_pct"`
	HRAPct              float64 `json:"hra_pct"`
	PFEmployeePct       float64 `json:"pf_employee_pct"`
	PFEmployerPct       float64 `json:"pf_employer_pct"`
	ESIEmployeePct      float64 `json:"esi_employee_pct"`
	ESIEmployerPct      float64 `json:"esi_employer_pct"`
	ESIThreshold        float64 `json:"esi_threshold"`
	GratuityPct         float64 `json:"gratuity_pct"`
	ProfessionalTax     float64 `json:"professional_tax"`
	MedicalAllowance    float64 `json:"medical_allowance"`
	ConveyanceAllowance float64 `json:"conveyance_allowance"`
}

// LeaveQuota holds annual leave credits per employee.
type LeaveQuota struct {
	CasualLeave     int `json:"casual_leave"`
	SickLeave       int `json:"sick_leave"`
	EarnedLeave     int `json:"earned_leave"`
	MaternityLeave  int `json:"maternity_leave"`
	PaternityLeave  int `json:"paternity_leave"`
	CompensatoryOff int `json:"compensatory_off"`
	PublicHolidays  int `json:"public_holidays"`
}

// TaxSlab is one progressive income-tax band. MaxIncome -1 means unbounded.
type TaxSlab struct {
	MinIncome float64 `json:"min_income"`
	MaxIncome float64 `json:"max_income"`
	RatePct   float64 `json:"rate_pct"`
}

// Policy is one versioned HR policy document. Only the newest version is
// active; older versions remain as history.
type Policy struct {
	Version            int                 `json:"version"`
	State              string              `json:"state"`
	IsMetro            bool                `json:"is_metro"`
	TaxRegime          string              `json:"tax_regime"`
	Breakup            SalaryBreakupConfig `json:"salary_breakup"`
	Leave              LeaveQuota          `json:"leave_policy"`
	StandardDeduction  float64             `json:"standard_deduction"`
	OldRegimeDeduction float64             `json:"old_regime_standard_deduction"`
	CessPct            float64             `json:"cess_pct"`
	NewRegimeSlabs     []TaxSlab           `json:"tax_slabs"`
	OldRegimeSlabs     []TaxSlab           `json:"old_regime_tax_slabs"`
	ChangeReason       string              `json:"change_reason,omitempty"`
	CreatedBy          string              `json:"created_by,omitempty"`
	CreatedAt          string              `json:"created_at"`
}

// PolicyChange carries optional overrides for Set. Unset fields carry forward
// from the previous active policy.
type PolicyChange struct {
	State        string
	IsMetro      *bool
	TaxRegime    *string
	BasicPct     *float64
	HRAPct       *float64
	CasualLeave  *int
	SickLeave    *int
	EarnedLeave  *int
	ChangeReason string
	CreatedBy    string
}

// SalaryBreakup is the computed monthly/annual split for one CTC.
type SalaryBreakup struct {
	AnnualCTC       float64 `json:"annual_ctc"`
	TaxRegime       string  `json:"tax_regime"`
	BasicMonthly    float64 `json:"basic_monthly"`
	HRAMonthly      float64 `json:"hra_monthly"`
	SpecialMonthly  float64 `json:"special_allowance_monthly"`
	GrossMonthly    float64 `json:"gross_monthly"`
	PFEmployee      float64 `json:"pf_employee_monthly"`
	ESIEmployee     float64 `json:"esi_employee_monthly"`
	ProfessionalTax float64 `json:"professional_tax_monthly"`
	TDSMonthly      float64 `json:"tds_monthly"`
	NetMonthly      float64 `json:"net_take_home_monthly"`
	NetAnnual       float64 `json:"net_take_home_annual"`
}

// PolicyService exposes policy reads, versioned writes, and salary math to
// the tool layer and the payroll composite.
type PolicyService interface {
	ActivePolicy(ctx context.Context) (*Policy, error)
	SetPolicy(ctx context.Context, change PolicyChange) (*Policy, error)
	PolicyHistory(ctx context.Context, limit int) ([]*Policy, error)
	ComputeBreakup(ctx context.Context, annualCTC float64, taxRegime string) (*SalaryBreakup, error)
	LeaveCredits(ctx context.Context) (LeaveQuota, error)
}

// defaultPolicy is the version-1 document installed on first boot.
func defaultPolicy() *Policy {
	return &Policy{
		Version:   1,
		State:     "karnataka",
		IsMetro:   true,
		TaxRegime: "new",
		Breakup: SalaryBreakupConfig{
			BasicPct:            40,
			HRAPct:              20,
			PFEmployeePct:       12,
			PFEmployerPct:       12,
			ESIEmployeePct:      0.75,
			ESIEmployerPct:      3.25,
			ESIThreshold:        21000,
			GratuityPct:         4.81,
			ProfessionalTax:     200,
			MedicalAllowance:    1250,
			ConveyanceAllowance: 1600,
		},
		Leave: LeaveQuota{
			CasualLeave:    12,
			SickLeave:      12,
			EarnedLeave:    15,
			MaternityLeave: 182,
			PaternityLeave: 15,
			PublicHolidays: 10,
		},
		StandardDeduction:  75000,
		OldRegimeDeduction: 50000,
		CessPct:            4,
		NewRegimeSlabs: []TaxSlab{
			{0, 400000, 0},
			{400000, 800000, 5},
			{800000, 1200000, 10},
			{1200000, 1600000, 15},
			{1600000, 2000000, 20},
			{2000000, 2400000, 25},
			{2400000, -1, 30},
		},
		OldRegimeSlabs: []TaxSlab{
			{0, 250000, 0},
			{250000, 500000, 5},
			{500000, 1000000, 20},
			{1000000, -1, 30},
		},
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

func (s *Store) ActivePolicy(ctx context.Context) (*Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.policies) == 0 {
		return nil, fmt.Errorf("hr policy %w", ErrNotFound)
	}
	return clonePolicy(s.policies[len(s.policies)-1]), nil
}

func (s *Store) SetPolicy(ctx context.Context, change PolicyChange) (*Policy, error) {
	state := strings.ToLower(strings.TrimSpace(change.State))
	if state == "" {
		return nil, fmt.Errorf("state is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Carry everything forward from the previous active version; apply only
	// the provided overrides.
	prev := defaultPolicy()
	if len(s.policies) > 0 {
		prev = s.policies[len(s.policies)-1]
	}
	next := clonePolicy(prev)
	next.Version++
	next.State = state
	next.ChangeReason = change.ChangeReason
	next.CreatedBy = change.CreatedBy
	next.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	if change.IsMetro != nil {
		next.IsMetro = *change.IsMetro
	}
	if change.TaxRegime != nil {
		next.TaxRegime = strings.ToLower(*change.TaxRegime)
	}
	if change.BasicPct != nil {
		next.Breakup.BasicPct = *change.BasicPct
	}
	if change.HRAPct != nil {
		next.Breakup.HRAPct = *change.HRAPct
	}
	if change.CasualLeave != nil {
		next.Leave.CasualLeave = *change.CasualLeave
	}
	if change.SickLeave != nil {
		next.Leave.SickLeave = *change.SickLeave
	}
	if change.EarnedLeave != nil {
		next.Leave.EarnedLeave = *change.EarnedLeave
	}

	s.policies = append(s.policies, next)
	return clonePolicy(next), nil
}

func (s *Store) PolicyHistory(ctx context.Context, limit int) ([]*Policy, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}
	out := make([]*Policy, 0, limit)
	for i := len(s.policies) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, clonePolicy(s.policies[i]))
	}
	return out, nil
}

func (s *Store) LeaveCredits(ctx context.Context) (LeaveQuota, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.policies) == 0 {
		return LeaveQuota{}, fmt.Errorf("hr policy %w", ErrNotFound)
	}
	return s.policies[len(s.policies)-1].Leave, nil
}

func (s *Store) ComputeBreakup(ctx context.Context, annualCTC float64, taxRegime string) (*SalaryBreakup, error) {
	if annualCTC <= 0 {
		return nil, fmt.Errorf("annual_ctc must be positive")
	}

	s.mu.RLock()
	if len(s.policies) == 0 {
		s.mu.RUnlock()
		return nil, fmt.Errorf("hr policy %w", ErrNotFound)
	}
	policy := clonePolicy(s.policies[len(s.policies)-1])
	s.mu.RUnlock()

	regime := strings.ToLower(strings.TrimSpace(taxRegime))
	if regime == "" {
		regime = policy.TaxRegime
	}
	if regime != "new" && regime != "old" {
		return nil, fmt.Errorf("tax_regime must be 'new' or 'old'")
	}

	b := policy.Breakup
	basicAnnual := annualCTC * b.BasicPct / 100
	hraAnnual := annualCTC * b.HRAPct / 100

	// PF contributions apply to basic capped at 15000/month.
	pfBasisMonthly := math.Min(basicAnnual/12, 15000)
	pfEmployeeAnnual := pfBasisMonthly * b.PFEmployeePct / 100 * 12
	pfEmployerAnnual := pfBasisMonthly * b.PFEmployerPct / 100 * 12
	gratuityAnnual := basicAnnual * b.GratuityPct / 100

	monthlyGross := annualCTC / 12
	var esiEmployeeAnnual, esiEmployerAnnual float64
	if monthlyGross < b.ESIThreshold {
		esiEmployeeAnnual = monthlyGross * b.ESIEmployeePct / 100 * 12
		esiEmployerAnnual = monthlyGross * b.ESIEmployerPct / 100 * 12
	}

	medicalAnnual := b.MedicalAllowance * 12
	conveyanceAnnual := b.ConveyanceAllowance * 12
	employerCosts := basicAnnual + hraAnnual + pfEmployerAnnual + gratuityAnnual +
		esiEmployerAnnual + medicalAnnual + conveyanceAnnual
	specialAnnual := math.Max(0, annualCTC-employerCosts)

	grossAnnual := basicAnnual + hraAnnual + specialAnnual + medicalAnnual + conveyanceAnnual
	ptAnnual := b.ProfessionalTax * 12

	tdsAnnual := computeTDS(grossAnnual, pfEmployeeAnnual, policy, regime)

	netAnnual := grossAnnual - pfEmployeeAnnual - esiEmployeeAnnual - ptAnnual - tdsAnnual

	return &SalaryBreakup{
		AnnualCTC:       annualCTC,
		TaxRegime:       regime,
		BasicMonthly:    round2(basicAnnual / 12),
		HRAMonthly:      round2(hraAnnual / 12),
		SpecialMonthly:  round2(specialAnnual / 12),
		GrossMonthly:    round2(grossAnnual / 12),
		PFEmployee:      round2(pfEmployeeAnnual / 12),
		ESIEmployee:     round2(esiEmployeeAnnual / 12),
		ProfessionalTax: round2(ptAnnual / 12),
		TDSMonthly:      round2(tdsAnnual / 12),
		NetMonthly:      round2(netAnnual / 12),
		NetAnnual:       round2(netAnnual),
	}, nil
}

// computeTDS walks the progressive slab table for the chosen regime. The old
// regime additionally deducts the employee PF contribution (80C style).
func computeTDS(grossAnnual, pfEmployeeAnnual float64, policy *Policy, regime string) float64 {
	slabs := policy.NewRegimeSlabs
	deduction := policy.StandardDeduction
	if regime == "old" {
		slabs = policy.OldRegimeSlabs
		deduction = policy.OldRegimeDeduction + pfEmployeeAnnual
	}

	taxable := math.Max(0, grossAnnual-deduction)

	// rebate u/s 87A
	if regime == "new" && taxable <= 1200000 {
		return 0
	}
	if regime == "old" && taxable <= 500000 {
		return 0
	}

	var tax float64
	for _, slab := range slabs {
		if taxable <= slab.MinIncome {
			break
		}
		upper := slab.MaxIncome
		if upper < 0 || taxable < upper {
			upper = taxable
		}
		tax += (upper - slab.MinIncome) * slab.RatePct / 100
	}
	return math.Round(tax * (1 + policy.CessPct/100))
}

func clonePolicy(p *Policy) *Policy {
	cp := *p
	cp.NewRegimeSlabs = append([]TaxSlab(nil), p.NewRegimeSlabs...)
	cp.OldRegimeSlabs = append([]TaxSlab(nil), p.OldRegimeSlabs...)
	return &cp
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
