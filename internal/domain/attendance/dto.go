package attendance

import (
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	EmployeeCode string  `json:"employee_code"`
	At           *string `json:"at,omitempty"`
}

func (r *CheckInRequest) Validate() error {
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

	if r.At != nil {
		if _, ok := validator.IsValidDateTime(*r.At); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "at",
				Message: "at must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AtTime returns the requested timestamp, or the zero time when absent.
func (r *CheckInRequest) AtTime() time.Time {
	if r.At == nil {
		return time.Time{}
	}
	t, _ := validator.IsValidDateTime(*r.At)
	return t
}

type CheckOutRequest struct {
	EmployeeCode string  `json:"employee_code"`
	At           *string `json:"at,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	in := CheckInRequest{EmployeeCode: r.EmployeeCode, At: r.At}
	return in.Validate()
}

func (r *CheckOutRequest) AtTime() time.Time {
	in := CheckInRequest{EmployeeCode: r.EmployeeCode, At: r.At}
	return in.AtTime()
}

type MarkAbsentRequest struct {
	EmployeeCode string `json:"employee_code"`
	Date         string `json:"date"`
}

func (r *MarkAbsentRequest) Validate() error {
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

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in format YYYY-MM-DD",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListFilter struct {
	EmployeeCode *string
	DateFrom     *time.Time
	DateTo       *time.Time
	Status       *Status
}

type RecordResponse struct {
	ID           string   `json:"id"`
	EmployeeID   string   `json:"employee_id"`
	EmployeeCode string   `json:"employee_code,omitempty"`
	EmployeeName string   `json:"employee_name,omitempty"`
	Date         string   `json:"date"`
	CheckIn      *string  `json:"check_in_time"`
	CheckOut     *string  `json:"check_out_time"`
	Status       string   `json:"status"`
	WorkingHours *float64 `json:"working_hours"`
}

// SynthesisResult reports which dates of a leave range were materialized as
// ON_LEAVE records and which were skipped because a record already existed.
type SynthesisResult struct {
	Applied []string `json:"applied_dates"`
	Skipped []string `json:"skipped_dates"`
}

func ToResponse(rec Record) RecordResponse {
	resp := RecordResponse{
		ID:           rec.ID,
		EmployeeID:   rec.EmployeeID,
		Date:         rec.Date.Format("2006-01-02"),
		CheckIn:      timePtrToString(rec.CheckIn),
		CheckOut:     timePtrToString(rec.CheckOut),
		Status:       string(rec.Status),
		WorkingHours: rec.WorkingHours,
	}
	if rec.EmployeeCode != nil {
		resp.EmployeeCode = *rec.EmployeeCode
	}
	if rec.EmployeeName != nil {
		resp.EmployeeName = *rec.EmployeeName
	}
	return resp
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format(time.RFC3339)
	return &format
}
