package report

import (
	"context"
	"testing"
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-hq/attendance-backend-go/internal/domain/employee"
	"github.com/attendly-hq/attendance-backend-go/internal/domain/report"
	"github.com/attendly-hq/attendance-backend-go/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReportService(t *testing.T, excludeWeekends bool) (*ReportServiceImpl, *memory.Store) {
	store := memory.NewStore()
	svc := NewReportService(store.Attendance, store.Employees, excludeWeekends).(*ReportServiceImpl)
	// Pin the clock so past/current date classification is deterministic.
	svc.now = func() time.Time {
		return time.Date(2025, 12, 2, 12, 0, 0, 0, time.UTC)
	}
	return svc, store
}

func seedEmployee(t *testing.T, store *memory.Store, code string, dept employee.Department) employee.Employee {
	emp, err := store.Employees.Create(context.Background(), employee.Employee{
		ID:         uuid.NewString(),
		Code:       code,
		FullName:   "Test Employee " + code,
		Email:      code + "@example.com",
		Department: dept,
		Position:   "Engineer",
		HireDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return emp
}

func seedRecord(t *testing.T, store *memory.Store, employeeID string, date time.Time, status attendance.Status) {
	_, err := store.Attendance.Create(context.Background(), attendance.Record{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Date:       date,
		Status:     status,
	})
	require.NoError(t, err)
}

func day(d int) time.Time {
	return time.Date(2025, 12, d, 0, 0, 0, 0, time.UTC)
}

func TestDailySummary_PastDatePartitionsEveryEmployee(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestReportService(t, false)

	e1 := seedEmployee(t, store, "EMP001", employee.DepartmentIT)
	e2 := seedEmployee(t, store, "EMP002", employee.DepartmentIT)
	e3 := seedEmployee(t, store, "EMP003", employee.DepartmentHR)
	seedEmployee(t, store, "EMP004", employee.DepartmentHR)

	seedRecord(t, store, e1.ID, day(1), attendance.StatusPresent)
	seedRecord(t, store, e2.ID, day(1), attendance.StatusLate)
	seedRecord(t, store, e3.ID, day(1), attendance.StatusOnLeave)
	// EMP004 has no record on a past date and counts as absent.

	summary, err := svc.DailySummary(ctx, day(1))
	require.NoError(t, err)

	assert.Equal(t, "2025-12-01", summary.Date)
	assert.Equal(t, 4, summary.TotalActive)
	assert.Equal(t, 1, summary.Present)
	assert.Equal(t, 1, summary.Late)
	assert.Equal(t, 1, summary.OnLeave)
	assert.Equal(t, 1, summary.Absent)
	assert.Equal(t, 0, summary.OnDuty)

	// Counts partition the whole active headcount.
	total := summary.Present + summary.Late + summary.Absent + summary.OnLeave + summary.OnDuty
	assert.Equal(t, summary.TotalActive, total)

	require.Len(t, summary.AbsentEmployees, 1)
	assert.Equal(t, "EMP004", summary.AbsentEmployees[0].Code)
	require.Len(t, summary.LateEmployees, 1)
	assert.Equal(t, "EMP002", summary.LateEmployees[0].Code)
}

func TestDailySummary_CurrentDateLeavesUnrecordedUnclassified(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestReportService(t, false)

	e1 := seedEmployee(t, store, "EMP001", employee.DepartmentIT)
	seedEmployee(t, store, "EMP002", employee.DepartmentIT)

	seedRecord(t, store, e1.ID, day(2), attendance.StatusPresent)

	summary, err := svc.DailySummary(ctx, day(2))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalActive)
	assert.Equal(t, 1, summary.Present)
	// EMP002 has not checked in yet today and is not presumed absent.
	assert.Equal(t, 0, summary.Absent)
	assert.Empty(t, summary.AbsentEmployees)
}

func TestDailySummary_ExcludesDeactivatedEmployees(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestReportService(t, false)

	seedEmployee(t, store, "EMP001", employee.DepartmentIT)
	former := seedEmployee(t, store, "EMP002", employee.DepartmentIT)
	former.Deactivated = true
	require.NoError(t, store.Employees.Update(ctx, former))

	summary, err := svc.DailySummary(ctx, day(1))
	require.NoError(t, err)

	assert.Equal(t, 1, summary.TotalActive)
	require.Len(t, summary.AbsentEmployees, 1)
	assert.Equal(t, "EMP001", summary.AbsentEmployees[0].Code)
}

func TestDepartmentStats(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestReportService(t, false)

	e1 := seedEmployee(t, store, "EMP001", employee.DepartmentIT)
	e2 := seedEmployee(t, store, "EMP002", employee.DepartmentIT)
	other := seedEmployee(t, store, "EMP003", employee.DepartmentHR)

	// Two-day range. EMP001 is late both days, EMP002 attends one day and
	// misses the other, EMP003 is in another department and must not leak in.
	seedRecord(t, store, e1.ID, day(1), attendance.StatusLate)
	seedRecord(t, store, e1.ID, day(2), attendance.StatusLate)
	seedRecord(t, store, e2.ID, day(1), attendance.StatusPresent)
	seedRecord(t, store, e2.ID, day(2), attendance.StatusAbsent)
	seedRecord(t, store, other.ID, day(1), attendance.StatusPresent)

	rng := report.DateRange{From: day(1), To: day(2)}
	stats, err := svc.DepartmentStats(ctx, "IT", rng)
	require.NoError(t, err)

	assert.Equal(t, "IT", stats.Department)
	assert.Equal(t, "2025-12-01", stats.DateFrom)
	assert.Equal(t, "2025-12-02", stats.DateTo)
	assert.Equal(t, 2, stats.TotalEmployees)
	// EMP001 rate 100, EMP002 rate 50, mean 75.
	assert.Equal(t, 75.0, stats.AvgAttendanceRate)
	assert.Equal(t, 2, stats.TotalLate)
	assert.Equal(t, 1, stats.TotalAbsent)
}

func TestDepartmentStats_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestReportService(t, false)

	_, err := svc.DepartmentStats(ctx, "IT", report.DateRange{From: day(2), To: day(1)})
	assert.ErrorIs(t, err, report.ErrInvalidDateRange)

	_, err = svc.DepartmentStats(ctx, "Legal", report.DateRange{From: day(1), To: day(2)})
	assert.ErrorIs(t, err, report.ErrUnknownDepartment)
}

func TestDepartmentStats_EmptyDepartment(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestReportService(t, false)

	stats, err := svc.DepartmentStats(ctx, "Sales", report.DateRange{From: day(1), To: day(2)})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalEmployees)
	assert.Equal(t, 0.0, stats.AvgAttendanceRate)
}

func TestPunctualityRanking_TotalOrder(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestReportService(t, false)

	e1 := seedEmployee(t, store, "EMP001", employee.DepartmentIT)
	e2 := seedEmployee(t, store, "EMP002", employee.DepartmentIT)
	e3 := seedEmployee(t, store, "EMP003", employee.DepartmentHR)
	e4 := seedEmployee(t, store, "EMP004", employee.DepartmentHR)

	// Two-day range. EMP002 attends both days on time, EMP001 attends both
	// days late, EMP003 and EMP004 each attend one day (tie broken by code).
	seedRecord(t, store, e1.ID, day(1), attendance.StatusLate)
	seedRecord(t, store, e1.ID, day(2), attendance.StatusLate)
	seedRecord(t, store, e2.ID, day(1), attendance.StatusPresent)
	seedRecord(t, store, e2.ID, day(2), attendance.StatusPresent)
	seedRecord(t, store, e3.ID, day(1), attendance.StatusPresent)
	seedRecord(t, store, e4.ID, day(2), attendance.StatusPresent)

	rng := report.DateRange{From: day(1), To: day(2)}
	ranking, err := svc.PunctualityRanking(ctx, rng, 10)
	require.NoError(t, err)

	require.Len(t, ranking.Rankings, 4)
	assert.Equal(t, 4, ranking.TotalRanked)

	codes := []string{}
	for _, entry := range ranking.Rankings {
		codes = append(codes, entry.EmployeeCode)
	}
	assert.Equal(t, []string{"EMP002", "EMP001", "EMP003", "EMP004"}, codes)

	assert.Equal(t, 1, ranking.Rankings[0].Rank)
	assert.Equal(t, 100.0, ranking.Rankings[0].AttendanceRate)
	assert.Equal(t, 0, ranking.Rankings[0].LateCount)

	assert.Equal(t, 2, ranking.Rankings[1].Rank)
	assert.Equal(t, 100.0, ranking.Rankings[1].AttendanceRate)
	assert.Equal(t, 2, ranking.Rankings[1].LateCount)

	assert.Equal(t, 50.0, ranking.Rankings[2].AttendanceRate)
	assert.Equal(t, 2, ranking.Rankings[2].WorkingDays)
}

func TestPunctualityRanking_LimitClamped(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestReportService(t, false)

	seedEmployee(t, store, "EMP001", employee.DepartmentIT)
	seedEmployee(t, store, "EMP002", employee.DepartmentIT)
	seedEmployee(t, store, "EMP003", employee.DepartmentIT)

	rng := report.DateRange{From: day(1), To: day(2)}

	ranking, err := svc.PunctualityRanking(ctx, rng, 0)
	require.NoError(t, err)
	assert.Len(t, ranking.Rankings, 1)

	ranking, err = svc.PunctualityRanking(ctx, rng, 2)
	require.NoError(t, err)
	assert.Len(t, ranking.Rankings, 2)
	assert.Equal(t, 2, ranking.TotalRanked)

	ranking, err = svc.PunctualityRanking(ctx, rng, 500)
	require.NoError(t, err)
	assert.Len(t, ranking.Rankings, 3)
}

func TestPunctualityRanking_InvalidRange(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestReportService(t, false)

	_, err := svc.PunctualityRanking(ctx, report.DateRange{From: day(2), To: day(1)}, 10)
	assert.ErrorIs(t, err, report.ErrInvalidDateRange)
}

func at(d time.Time, hour, min int) *time.Time {
	ts := time.Date(d.Year(), d.Month(), d.Day(), hour, min, 0, 0, time.UTC)
	return &ts
}

func floatPtr(f float64) *float64 { return &f }

func seedTimedRecord(t *testing.T, store *memory.Store, employeeID string, date time.Time, status attendance.Status, checkIn, checkOut *time.Time, hours *float64) {
	_, err := store.Attendance.Create(context.Background(), attendance.Record{
		ID:           uuid.NewString(),
		EmployeeID:   employeeID,
		Date:         date,
		Status:       status,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		WorkingHours: hours,
	})
	require.NoError(t, err)
}

func TestMonthlySummary(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestReportService(t, true)

	emp := seedEmployee(t, store, "EMP001", employee.DepartmentIT)

	// December 2025 has 23 weekdays. Four of them carry records, the
	// remaining nineteen count as absences alongside the explicit one.
	seedTimedRecord(t, store, emp.ID, day(1), attendance.StatusPresent, at(day(1), 8, 30), at(day(1), 17, 0), floatPtr(8))
	seedTimedRecord(t, store, emp.ID, day(2), attendance.StatusLate, at(day(2), 9, 30), at(day(2), 17, 30), floatPtr(7.5))
	seedRecord(t, store, emp.ID, day(3), attendance.StatusOnLeave)
	seedRecord(t, store, emp.ID, day(4), attendance.StatusAbsent)

	summary, err := svc.MonthlySummary(ctx, "EMP001", 2025, time.December)
	require.NoError(t, err)

	assert.Equal(t, "EMP001", summary.EmployeeCode)
	assert.Equal(t, 2025, summary.Year)
	assert.Equal(t, 12, summary.Month)
	assert.Equal(t, 23, summary.WorkingDays)
	assert.Equal(t, 2, summary.PresentDays)
	assert.Equal(t, 1, summary.LateDays)
	assert.Equal(t, 20, summary.AbsentDays)
	assert.Equal(t, 1, summary.LeaveDays)
	assert.Equal(t, 15.5, summary.TotalHours)
	require.NotNil(t, summary.AvgCheckInTime)
	assert.Equal(t, "09:00:00", *summary.AvgCheckInTime)
	assert.Equal(t, 8.7, summary.AttendanceRate)
}

func TestMonthlySummary_WeekendRecordsIgnored(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestReportService(t, true)

	emp := seedEmployee(t, store, "EMP001", employee.DepartmentIT)
	// 2025-12-06 is a Saturday; the record must not land in any bucket.
	seedRecord(t, store, emp.ID, day(6), attendance.StatusPresent)

	summary, err := svc.MonthlySummary(ctx, "EMP001", 2025, time.December)
	require.NoError(t, err)
	assert.Equal(t, 23, summary.WorkingDays)
	assert.Equal(t, 0, summary.PresentDays)
	assert.Equal(t, 23, summary.AbsentDays)
}

func TestMonthlySummary_UnknownEmployee(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestReportService(t, false)

	_, err := svc.MonthlySummary(ctx, "EMP999", 2025, time.December)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestMonthlyRecords(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestReportService(t, false)

	e1 := seedEmployee(t, store, "EMP001", employee.DepartmentIT)
	e2 := seedEmployee(t, store, "EMP002", employee.DepartmentHR)

	seedTimedRecord(t, store, e2.ID, day(1), attendance.StatusPresent, at(day(1), 8, 45), at(day(1), 17, 15), floatPtr(8.5))
	seedTimedRecord(t, store, e1.ID, day(2), attendance.StatusLate, at(day(2), 9, 20), nil, nil)
	seedTimedRecord(t, store, e1.ID, day(1), attendance.StatusPresent, at(day(1), 8, 0), at(day(1), 16, 0), floatPtr(8))
	// A record outside the month must not appear.
	seedRecord(t, store, e1.ID, time.Date(2025, 11, 28, 0, 0, 0, 0, time.UTC), attendance.StatusPresent)

	rows, err := svc.MonthlyRecords(ctx, 2025, time.December)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Rows group by employee code, dates ascending within an employee.
	assert.Equal(t, report.MonthlyCSVRow{
		EmployeeCode: "EMP001",
		EmployeeName: "Test Employee EMP001",
		Date:         "2025-12-01",
		CheckIn:      "08:00",
		CheckOut:     "16:00",
		Hours:        "8.00",
		Status:       "PRESENT",
	}, rows[0])

	assert.Equal(t, "EMP001", rows[1].EmployeeCode)
	assert.Equal(t, "2025-12-02", rows[1].Date)
	assert.Equal(t, "09:20", rows[1].CheckIn)
	assert.Empty(t, rows[1].CheckOut)
	assert.Empty(t, rows[1].Hours)
	assert.Equal(t, "LATE", rows[1].Status)

	assert.Equal(t, "EMP002", rows[2].EmployeeCode)
	assert.Equal(t, "8.50", rows[2].Hours)
}

func TestPunctualityRanking_WeekendRecordsDoNotInflateRate(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestReportService(t, true)

	emp := seedEmployee(t, store, "EMP001", employee.DepartmentIT)

	// Present every day of 2025-12-01 (Mon) through 2025-12-07 (Sun). Only
	// the five weekdays may count, so the rate caps at 100.
	for d := 1; d <= 7; d++ {
		seedRecord(t, store, emp.ID, day(d), attendance.StatusPresent)
	}

	rng := report.DateRange{From: day(1), To: day(7)}
	ranking, err := svc.PunctualityRanking(ctx, rng, 10)
	require.NoError(t, err)

	require.Len(t, ranking.Rankings, 1)
	assert.Equal(t, 5, ranking.Rankings[0].WorkingDays)
	assert.Equal(t, 100.0, ranking.Rankings[0].AttendanceRate)
}

func TestWorkingDays_ExcludeWeekends(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestReportService(t, true)

	emp := seedEmployee(t, store, "EMP001", employee.DepartmentIT)

	// 2025-12-01 (Mon) through 2025-12-07 (Sun): five working days.
	for d := 1; d <= 5; d++ {
		seedRecord(t, store, emp.ID, day(d), attendance.StatusPresent)
	}

	rng := report.DateRange{From: day(1), To: day(7)}
	ranking, err := svc.PunctualityRanking(ctx, rng, 10)
	require.NoError(t, err)

	require.Len(t, ranking.Rankings, 1)
	assert.Equal(t, 5, ranking.Rankings[0].WorkingDays)
	assert.Equal(t, 100.0, ranking.Rankings[0].AttendanceRate)
}
