package report

import "time"

// EmployeeRef identifies an employee in report listings.
type EmployeeRef struct {
	Code     string `json:"employee_code"`
	FullName string `json:"full_name"`
}

// DailySummary partitions every active employee on a date into exactly one
// attendance category. For past dates the counts sum to TotalActive;
// for the current date employees without a record yet are not classified.
type DailySummary struct {
	Date        string `json:"date"`
	TotalActive int    `json:"total_active"`

	Present int `json:"present"`
	Late    int `json:"late"`
	Absent  int `json:"absent"`
	OnLeave int `json:"on_leave"`
	OnDuty  int `json:"on_duty"`

	PresentEmployees []EmployeeRef `json:"present_employees"`
	LateEmployees    []EmployeeRef `json:"late_employees"`
	AbsentEmployees  []EmployeeRef `json:"absent_employees"`
	OnLeaveEmployees []EmployeeRef `json:"on_leave_employees"`
	OnDutyEmployees  []EmployeeRef `json:"on_duty_employees"`
}

type DepartmentStats struct {
	Department        string  `json:"department"`
	DateFrom          string  `json:"date_from"`
	DateTo            string  `json:"date_to"`
	TotalEmployees    int     `json:"total_employees"`
	AvgAttendanceRate float64 `json:"avg_attendance_rate"`
	TotalLate         int     `json:"total_late"`
	TotalAbsent       int     `json:"total_absent"`
}

type RankingEntry struct {
	Rank           int     `json:"rank"`
	EmployeeCode   string  `json:"employee_code"`
	EmployeeName   string  `json:"employee_name"`
	AttendanceRate float64 `json:"attendance_rate"`
	LateCount      int     `json:"late_count"`
	WorkingDays    int     `json:"working_days"`
}

type PunctualityRanking struct {
	DateFrom    string         `json:"date_from"`
	DateTo      string         `json:"date_to"`
	TotalRanked int            `json:"total_ranked"`
	Rankings    []RankingEntry `json:"rankings"`
}

// MonthlySummary aggregates one employee's ledger over a calendar month.
// LATE days count toward PresentDays; working days without any record count
// as absent.
type MonthlySummary struct {
	EmployeeCode   string  `json:"employee_code"`
	EmployeeName   string  `json:"employee_name"`
	Year           int     `json:"year"`
	Month          int     `json:"month"`
	WorkingDays    int     `json:"working_days"`
	PresentDays    int     `json:"present_days"`
	LateDays       int     `json:"late_days"`
	AbsentDays     int     `json:"absent_days"`
	LeaveDays      int     `json:"leave_days"`
	TotalHours     float64 `json:"total_hours"`
	AvgCheckInTime *string `json:"avg_check_in_time"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// MonthlyCSVRow is one line of the monthly attendance export.
type MonthlyCSVRow struct {
	EmployeeCode string
	EmployeeName string
	Date         string
	CheckIn      string
	CheckOut     string
	Hours        string
	Status       string
}

type DateRange struct {
	From time.Time
	To   time.Time
}
