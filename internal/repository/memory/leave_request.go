package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/leave"
)

type LeaveRequestRepository struct {
	mu        sync.RWMutex
	byID      map[string]leave.Request
	employees *EmployeeRepository
}

func NewLeaveRequestRepository(employees *EmployeeRepository) *LeaveRequestRepository {
	return &LeaveRequestRepository{
		byID:      make(map[string]leave.Request),
		employees: employees,
	}
}

// Create implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) Create(ctx context.Context, req leave.Request) (leave.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now
	r.byID[req.ID] = req

	return req, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) GetByID(ctx context.Context, id string) (leave.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.byID[id]
	if !ok {
		return leave.Request{}, leave.ErrLeaveRequestNotFound
	}
	return r.withEmployee(ctx, req), nil
}

// Update implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) Update(ctx context.Context, req leave.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[req.ID]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}

	existing.Status = req.Status
	existing.ApprovedBy = req.ApprovedBy
	existing.DecidedAt = req.DecidedAt
	existing.UpdatedAt = time.Now().UTC()
	r.byID[req.ID] = existing

	return nil
}

// Delete implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	delete(r.byID, id)

	return nil
}

// List implements leave.LeaveRequestRepository.
func (r *LeaveRequestRepository) List(ctx context.Context, filter leave.ListFilter) ([]leave.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var requests []leave.Request
	for _, req := range r.byID {
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		requests = append(requests, r.withEmployee(ctx, req))
	}

	sort.Slice(requests, func(i, j int) bool {
		return requests[i].SubmittedAt.After(requests[j].SubmittedAt)
	})

	return requests, nil
}

func (r *LeaveRequestRepository) withEmployee(ctx context.Context, req leave.Request) leave.Request {
	emp, err := r.employees.GetByID(ctx, req.EmployeeID)
	if err == nil {
		req.EmployeeName = &emp.FullName
		req.EmployeeCode = &emp.Code
	}
	return req
}
