package hr

import (
	"errors"
	"sync"
)

// ErrNotFound marks lookups against records that do not exist. Service
// errors wrap it so callers can test with errors.Is.
var ErrNotFound = errors.New("not found")

// Services bundles the domain collaborators the tool layer depends on.
// Interfaces are satisfied by *Store in-process; a deployment backed by real
// systems swaps individual fields.
type Services struct {
	Directory  Directory
	Accounts   Accounts
	Leave      LeaveService
	Attendance AttendanceService
	Payroll    PayrollService
	Policy     PolicyService
	Requests   RequestService
	Appraisals AppraisalService
}

// Store is the in-memory implementation of every domain collaborator. All
// methods are safe for concurrent use through one RWMutex; tool handlers are
// the only writers.
type Store struct {
	mu sync.RWMutex

	users      map[string]*User     // keyed by lowercase email
	employees  map[string]*Employee // keyed by uppercase emp code
	leaves     []*LeaveRecord
	attendance []*AttendanceRecord
	payroll    []*PayrollSlip
	policies   []*Policy // append-only, last entry is active
	requests   []*UpdateRequest
	appraisals []*Appraisal
	requestSeq int
}

// NewStore returns an empty store with the version-1 policy installed.
func NewStore() *Store {
	return &Store{
		users:     map[string]*User{},
		employees: map[string]*Employee{},
		policies:  []*Policy{defaultPolicy()},
	}
}

// Services exposes the store behind the collaborator interfaces.
func (s *Store) Services() Services {
	return Services{
		Directory:  s,
		Accounts:   s,
		Leave:      s,
		Attendance: s,
		Payroll:    s,
		Policy:     s,
		Requests:   s,
		Appraisals: s,
	}
}

var (
	_ Directory         = (*Store)(nil)
	_ Accounts          = (*Store)(nil)
	_ LeaveService      = (*Store)(nil)
	_ AttendanceService = (*Store)(nil)
	_ PayrollService    = (*Store)(nil)
	_ PolicyService     = (*Store)(nil)
	_ RequestService    = (*Store)(nil)
	_ AppraisalService  = (*Store)(nil)
)
