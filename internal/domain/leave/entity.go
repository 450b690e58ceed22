package leave

import "time"

type LeaveType string

const (
	LeaveTypeSick      LeaveType = "Sick Leave"
	LeaveTypeAnnual    LeaveType = "Annual Leave"
	LeaveTypePersonal  LeaveType = "Personal Leave"
	LeaveTypeUnpaid    LeaveType = "Unpaid Leave"
	LeaveTypeMaternity LeaveType = "Maternity Leave"
)

// LeaveTypes lists the closed set of leave types.
func LeaveTypes() []string {
	return []string{
		string(LeaveTypeSick),
		string(LeaveTypeAnnual),
		string(LeaveTypePersonal),
		string(LeaveTypeUnpaid),
		string(LeaveTypeMaternity),
	}
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "Pending"
	RequestStatusApproved RequestStatus = "Approved"
	RequestStatusRejected RequestStatus = "Rejected"
)

// Request is a leave request. Pending requests may be approved, rejected or
// deleted; Approved and Rejected are terminal.
type Request struct {
	ID         string
	EmployeeID string
	Type       LeaveType
	StartDate  time.Time
	EndDate    time.Time
	TotalDays  int
	Reason     string
	Status     RequestStatus

	ApprovedBy *string
	DecidedAt  *time.Time

	SubmittedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined for responses
	EmployeeName *string
	EmployeeCode *string
}

// InclusiveDays counts the calendar days in [start, end], both ends included.
func InclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}
