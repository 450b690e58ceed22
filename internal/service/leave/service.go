package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-hq/attendance-backend-go/internal/domain/employee"
	"github.com/attendly-hq/attendance-backend-go/internal/domain/leave"
	"github.com/google/uuid"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	AttendanceService attendance.AttendanceService

	tx  leave.Transactor
	now func() time.Time
}

func NewLeaveService(
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceService attendance.AttendanceService,
	tx leave.Transactor,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRepo,
		EmployeeRepository:     employeeRepo,
		AttendanceService:      attendanceService,
		tx:                     tx,
		now:                    time.Now,
	}
}

// Submit implements leave.LeaveService. Every request starts Pending and has
// no effect on the attendance ledger until approved.
func (s *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.RequestResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if emp.Deactivated {
		return leave.RequestResponse{}, employee.ErrEmployeeNotFound
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	start = attendance.NormalizeDate(start)
	end = attendance.NormalizeDate(end)

	request := leave.Request{
		ID:          uuid.NewString(),
		EmployeeID:  emp.ID,
		Type:        leave.LeaveType(req.Type),
		StartDate:   start,
		EndDate:     end,
		TotalDays:   leave.InclusiveDays(start, end),
		Reason:      req.Reason,
		Status:      leave.RequestStatusPending,
		SubmittedAt: s.now().UTC(),
	}

	created, err := s.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	created.EmployeeName = &emp.FullName
	created.EmployeeCode = &emp.Code
	return leave.ToResponse(created), nil
}

// Approve implements leave.LeaveService. The status flip and the ON_LEAVE
// synthesis commit as one transaction; dates that already hold a record are
// skipped and reported, never overwritten.
func (s *LeaveServiceImpl) Approve(ctx context.Context, req leave.ApproveLeaveRequest) (leave.ApprovalResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ApprovalResponse{}, err
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.ApprovalResponse{}, err
	}
	if request.Status != leave.RequestStatusPending {
		return leave.ApprovalResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	decidedAt := s.now().UTC()
	request.Status = leave.RequestStatusApproved
	request.ApprovedBy = &req.ApprovedBy
	request.DecidedAt = &decidedAt

	var synthesis attendance.SynthesisResult
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.LeaveRequestRepository.Update(ctx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		synthesis, err = s.AttendanceService.SynthesizeOnLeave(ctx, request.EmployeeID, request.StartDate, request.EndDate)
		if err != nil {
			return fmt.Errorf("failed to synthesize on-leave attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.ApprovalResponse{}, err
	}

	return leave.ApprovalResponse{
		Request:   leave.ToResponse(request),
		Synthesis: synthesis,
	}, nil
}

// Get implements leave.LeaveService.
func (s *LeaveServiceImpl) Get(ctx context.Context, id string) (leave.RequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	return leave.ToResponse(request), nil
}

// Reject implements leave.LeaveService. Rejection is terminal and leaves the
// attendance ledger untouched.
func (s *LeaveServiceImpl) Reject(ctx context.Context, id string) (leave.RequestResponse, error) {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.RequestResponse{}, err
	}
	if request.Status != leave.RequestStatusPending {
		return leave.RequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	decidedAt := s.now().UTC()
	request.Status = leave.RequestStatusRejected
	request.DecidedAt = &decidedAt

	if err := s.LeaveRequestRepository.Update(ctx, request); err != nil {
		return leave.RequestResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	return leave.ToResponse(request), nil
}

// Delete implements leave.LeaveService. Only Pending requests may be
// withdrawn; processed requests are part of the decision history.
func (s *LeaveServiceImpl) Delete(ctx context.Context, id string) error {
	request, err := s.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if request.Status != leave.RequestStatusPending {
		return leave.ErrLeaveRequestAlreadyProcessed
	}

	if err := s.LeaveRequestRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	return nil
}

// List implements leave.LeaveService.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.ListFilter) ([]leave.RequestResponse, error) {
	requests, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.RequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, leave.ToResponse(request))
	}
	return responses, nil
}
