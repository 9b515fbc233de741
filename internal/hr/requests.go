package hr

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Fields an employee may request to change on their own profile.
var updatableFields = map[string]struct{}{
	"name":         {},
	"email":        {},
	"department":   {},
	"designation":  {},
	"manager_name": {},
}

// UpdateRequest is an employee-submitted profile change awaiting HR review.
type UpdateRequest struct {
	RequestID  string            `json:"request_id"`
	EmpCode    string            `json:"emp_code"`
	Fields     map[string]string `json:"fields"`
	Reason     string            `json:"reason"`
	Status     string            `json:"status"`
	ReviewedBy string            `json:"reviewed_by,omitempty"`
	Comment    string            `json:"comment,omitempty"`
	CreatedAt  string            `json:"created_at"`
}

// RequestService exposes the self-service update workflow to the tool layer.
type RequestService interface {
	SubmitRequest(ctx context.Context, empCode string, fields map[string]string, reason string) (*UpdateRequest, error)
	ListRequests(ctx context.Context, status, empCode string) ([]*UpdateRequest, error)
	ReviewRequest(ctx context.Context, requestID, action, reviewer, comment string) (*UpdateRequest, error)
}

func (s *Store) SubmitRequest(ctx context.Context, empCode string, fields map[string]string, reason string) (*UpdateRequest, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("fields is empty; provide at least one field to change")
	}
	for field := range fields {
		if _, ok := updatableFields[field]; !ok {
			return nil, fmt.Errorf("field %q cannot be changed via update request", field)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	code := strings.ToUpper(strings.TrimSpace(empCode))
	if _, ok := s.employees[code]; !ok {
		return nil, fmt.Errorf("employee %q %w", empCode, ErrNotFound)
	}

	s.requestSeq++
	req := &UpdateRequest{
		RequestID: fmt.Sprintf("REQ%03d", s.requestSeq),
		EmpCode:   code,
		Fields:    cloneFields(fields),
		Reason:    reason,
		Status:    "pending",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	s.requests = append(s.requests, req)
	return cloneRequest(req), nil
}

func (s *Store) ListRequests(ctx context.Context, status, empCode string) ([]*UpdateRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	code := strings.ToUpper(strings.TrimSpace(empCode))
	var out []*UpdateRequest
	for _, req := range s.requests {
		if status != "" && !strings.EqualFold(req.Status, status) {
			continue
		}
		if code != "" && req.EmpCode != code {
			continue
		}
		out = append(out, cloneRequest(req))
	}
	return out, nil
}

// ReviewRequest approves or rejects a pending request. Approval applies the
// requested fields to the employee record in the same step.
func (s *Store) ReviewRequest(ctx context.Context, requestID, action, reviewer, comment string) (*UpdateRequest, error) {
	act := strings.ToLower(strings.TrimSpace(action))
	if act != "approve" && act != "reject" {
		return nil, fmt.Errorf("action must be 'approve' or 'reject'")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, req := range s.requests {
		if !strings.EqualFold(req.RequestID, requestID) {
			continue
		}
		if req.Status != "pending" {
			return nil, fmt.Errorf("request %s is already %s", req.RequestID, req.Status)
		}
		req.ReviewedBy = reviewer
		req.Comment = comment
		if act == "reject" {
			req.Status = "rejected"
			return cloneRequest(req), nil
		}
		req.Status = "approved"
		if emp, ok := s.employees[req.EmpCode]; ok {
			applyRequestFields(emp, req.Fields)
		}
		return cloneRequest(req), nil
	}
	return nil, fmt.Errorf("update request %q %w", requestID, ErrNotFound)
}

func applyRequestFields(emp *Employee, fields map[string]string) {
	for field, value := range fields {
		switch field {
		case "name":
			emp.Name = value
		case "email":
			emp.Email = value
		case "department":
			emp.Department = value
		case "designation":
			emp.Designation = value
		case "manager_name":
			emp.ManagerName = value
		}
	}
}

func cloneFields(fields map[string]string) map[string]string {
	cp := make(map[string]string, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return cp
}

func cloneRequest(req *UpdateRequest) *UpdateRequest {
	cp := *req
	cp.Fields = cloneFields(req.Fields)
	return &cp
}
