package response

import (
	"errors"
	"net/http"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-hq/attendance-backend-go/internal/domain/employee"
	"github.com/attendly-hq/attendance-backend-go/internal/domain/leave"
	"github.com/attendly-hq/attendance-backend-go/internal/domain/report"
	"github.com/attendly-hq/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmployeeAlreadyDeactivated):
		Conflict(w, "Employee already deactivated")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Employee already checked in on this date")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Employee already checked out on this date")
	case errors.Is(err, attendance.ErrRecordExists):
		Conflict(w, "Attendance record already exists for this date")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		NotFound(w, "No open check-in found for this date")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		ValidationError(w, map[string]string{
			"at": "check-out time must be after check-in time",
		})

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	// Report domain errors
	case errors.Is(err, report.ErrInvalidDateRange):
		ValidationError(w, map[string]string{
			"date_from": "date_from must not be after date_to",
		})
	case errors.Is(err, report.ErrUnknownDepartment):
		ValidationError(w, map[string]string{
			"department": "department is not a known department",
		})

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
