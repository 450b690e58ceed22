package attendance

import "time"

// Record is the attendance ledger entry for one employee on one calendar day.
// There is at most one record per (employee, date); the date is stored at
// midnight UTC and carries no time-of-day information.
type Record struct {
	ID           string
	EmployeeID   string
	Date         time.Time
	CheckIn      *time.Time
	CheckOut     *time.Time
	Status       Status
	WorkingHours *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joined for responses
	EmployeeName *string
	EmployeeCode *string
}

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusLate    Status = "LATE"
	StatusAbsent  Status = "ABSENT"
	StatusOnLeave Status = "ON_LEAVE"
	StatusOnDuty  Status = "ON_DUTY"
)

// Statuses lists the closed set of record statuses.
func Statuses() []string {
	return []string{
		string(StatusPresent),
		string(StatusLate),
		string(StatusAbsent),
		string(StatusOnLeave),
		string(StatusOnDuty),
	}
}

// NormalizeDate truncates a timestamp to its calendar day at midnight UTC.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
