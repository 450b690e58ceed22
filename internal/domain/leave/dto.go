package leave

import (
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-hq/attendance-backend-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	EmployeeCode string `json:"employee_code"`
	Type         string `json:"leave_type"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Reason       string `json:"reason"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code is required",
		})
	} else if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_code",
			Message: "employee_code must be in format EMP001",
		})
	}

	if !validator.IsInSlice(r.Type, LeaveTypes()) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of Sick Leave, Annual Leave, Personal Leave, Unpaid Leave, Maternity Leave",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in format YYYY-MM-DD",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in format YYYY-MM-DD",
		})
	}
	if startOK && endOK && start.After(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must not be after end_date",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if len(r.Reason) > 300 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 300 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApproveLeaveRequest struct {
	ID         string `json:"-"`
	ApprovedBy string `json:"approved_by"`
}

func (r *ApproveLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ApprovedBy) {
		errs = append(errs, validator.ValidationError{
			Field:   "approved_by",
			Message: "approved_by is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListFilter struct {
	Status *RequestStatus
}

type RequestResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeCode string  `json:"employee_code,omitempty"`
	EmployeeName string  `json:"employee_name,omitempty"`
	Type         string  `json:"leave_type"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	TotalDays    int     `json:"total_days"`
	Reason       string  `json:"reason"`
	Status       string  `json:"status"`
	ApprovedBy   *string `json:"approved_by"`
	DecidedAt    *string `json:"decided_at"`
	SubmittedAt  string  `json:"submitted_at"`
}

// ApprovalResponse is the approve result: the updated request plus the
// per-date outcome of the ON_LEAVE synthesis.
type ApprovalResponse struct {
	Request   RequestResponse            `json:"request"`
	Synthesis attendance.SynthesisResult `json:"synthesis"`
}

func ToResponse(req Request) RequestResponse {
	resp := RequestResponse{
		ID:          req.ID,
		EmployeeID:  req.EmployeeID,
		Type:        string(req.Type),
		StartDate:   req.StartDate.Format("2006-01-02"),
		EndDate:     req.EndDate.Format("2006-01-02"),
		TotalDays:   req.TotalDays,
		Reason:      req.Reason,
		Status:      string(req.Status),
		ApprovedBy:  req.ApprovedBy,
		SubmittedAt: req.SubmittedAt.Format(time.RFC3339),
	}
	if req.DecidedAt != nil {
		decided := req.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &decided
	}
	if req.EmployeeCode != nil {
		resp.EmployeeCode = *req.EmployeeCode
	}
	if req.EmployeeName != nil {
		resp.EmployeeName = *req.EmployeeName
	}
	return resp
}
