package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-hq/attendance-backend-go/internal/domain/employee"
	"github.com/attendly-hq/attendance-backend-go/internal/domain/report"
	"github.com/attendly-hq/attendance-backend-go/internal/pkg/validator"
)

const (
	minRankingLimit = 1
	maxRankingLimit = 50
)

type ReportServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository

	excludeWeekends bool
	now             func() time.Time
}

func NewReportService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	excludeWeekends bool,
) report.ReportService {
	return &ReportServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		excludeWeekends:      excludeWeekends,
		now:                  time.Now,
	}
}

// DailySummary implements report.ReportService. Every active employee lands
// in exactly one category; for past dates an employee without a record counts
// as ABSENT, for the current or a future date they stay unclassified but are
// still part of the active headcount.
func (s *ReportServiceImpl) DailySummary(ctx context.Context, date time.Time) (report.DailySummary, error) {
	date = attendance.NormalizeDate(date)

	employees, err := s.EmployeeRepository.List(ctx, employee.ListEmployeesFilter{ActiveOnly: true})
	if err != nil {
		return report.DailySummary{}, fmt.Errorf("failed to list employees: %w", err)
	}

	records, err := s.AttendanceRepository.ListByDate(ctx, date)
	if err != nil {
		return report.DailySummary{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	recordByEmployee := make(map[string]attendance.Record, len(records))
	for _, rec := range records {
		recordByEmployee[rec.EmployeeID] = rec
	}

	summary := report.DailySummary{
		Date:             date.Format("2006-01-02"),
		TotalActive:      len(employees),
		PresentEmployees: []report.EmployeeRef{},
		LateEmployees:    []report.EmployeeRef{},
		AbsentEmployees:  []report.EmployeeRef{},
		OnLeaveEmployees: []report.EmployeeRef{},
		OnDutyEmployees:  []report.EmployeeRef{},
	}

	today := attendance.NormalizeDate(s.now().UTC())
	for _, emp := range employees {
		var status attendance.Status
		if rec, ok := recordByEmployee[emp.ID]; ok {
			status = rec.Status
		} else if date.Before(today) {
			status = attendance.StatusAbsent
		} else {
			continue
		}

		ref := report.EmployeeRef{Code: emp.Code, FullName: emp.FullName}
		switch status {
		case attendance.StatusPresent:
			summary.Present++
			summary.PresentEmployees = append(summary.PresentEmployees, ref)
		case attendance.StatusLate:
			summary.Late++
			summary.LateEmployees = append(summary.LateEmployees, ref)
		case attendance.StatusAbsent:
			summary.Absent++
			summary.AbsentEmployees = append(summary.AbsentEmployees, ref)
		case attendance.StatusOnLeave:
			summary.OnLeave++
			summary.OnLeaveEmployees = append(summary.OnLeaveEmployees, ref)
		case attendance.StatusOnDuty:
			summary.OnDuty++
			summary.OnDutyEmployees = append(summary.OnDutyEmployees, ref)
		}
	}

	return summary, nil
}

// DepartmentStats implements report.ReportService. The attendance rate of an
// employee is (PRESENT + LATE days) / working days in the range, and the
// department figure is the mean over its active employees.
func (s *ReportServiceImpl) DepartmentStats(ctx context.Context, department string, rng report.DateRange) (report.DepartmentStats, error) {
	if err := validateRange(rng); err != nil {
		return report.DepartmentStats{}, err
	}
	if !validator.IsInSlice(department, employee.Departments()) {
		return report.DepartmentStats{}, report.ErrUnknownDepartment
	}

	from := attendance.NormalizeDate(rng.From)
	to := attendance.NormalizeDate(rng.To)

	employees, err := s.EmployeeRepository.List(ctx, employee.ListEmployeesFilter{
		Department: &department,
		ActiveOnly: true,
	})
	if err != nil {
		return report.DepartmentStats{}, fmt.Errorf("failed to list employees: %w", err)
	}

	tallies, err := s.tallyRange(ctx, employees, from, to)
	if err != nil {
		return report.DepartmentStats{}, err
	}

	days := s.workingDays(from, to)
	stats := report.DepartmentStats{
		Department:     department,
		DateFrom:       from.Format("2006-01-02"),
		DateTo:         to.Format("2006-01-02"),
		TotalEmployees: len(employees),
	}

	var rateSum float64
	for _, emp := range employees {
		t := tallies[emp.ID]
		stats.TotalLate += t.late
		stats.TotalAbsent += t.absent
		rateSum += rate(t.attended, days)
	}
	if len(employees) > 0 {
		stats.AvgAttendanceRate = round2(rateSum / float64(len(employees)))
	}

	return stats, nil
}

// PunctualityRanking implements report.ReportService. Ties on attendance rate
// break on fewer late days, then on employee code.
func (s *ReportServiceImpl) PunctualityRanking(ctx context.Context, rng report.DateRange, limit int) (report.PunctualityRanking, error) {
	if err := validateRange(rng); err != nil {
		return report.PunctualityRanking{}, err
	}
	if limit < minRankingLimit {
		limit = minRankingLimit
	}
	if limit > maxRankingLimit {
		limit = maxRankingLimit
	}

	from := attendance.NormalizeDate(rng.From)
	to := attendance.NormalizeDate(rng.To)

	employees, err := s.EmployeeRepository.List(ctx, employee.ListEmployeesFilter{ActiveOnly: true})
	if err != nil {
		return report.PunctualityRanking{}, fmt.Errorf("failed to list employees: %w", err)
	}

	tallies, err := s.tallyRange(ctx, employees, from, to)
	if err != nil {
		return report.PunctualityRanking{}, err
	}

	days := s.workingDays(from, to)
	entries := make([]report.RankingEntry, 0, len(employees))
	for _, emp := range employees {
		t := tallies[emp.ID]
		entries = append(entries, report.RankingEntry{
			EmployeeCode:   emp.Code,
			EmployeeName:   emp.FullName,
			AttendanceRate: round2(rate(t.attended, days)),
			LateCount:      t.late,
			WorkingDays:    days,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].AttendanceRate != entries[j].AttendanceRate {
			return entries[i].AttendanceRate > entries[j].AttendanceRate
		}
		if entries[i].LateCount != entries[j].LateCount {
			return entries[i].LateCount < entries[j].LateCount
		}
		return entries[i].EmployeeCode < entries[j].EmployeeCode
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}

	return report.PunctualityRanking{
		DateFrom:    from.Format("2006-01-02"),
		DateTo:      to.Format("2006-01-02"),
		TotalRanked: len(entries),
		Rankings:    entries,
	}, nil
}

// MonthlySummary implements report.ReportService. Every counted day lands in
// exactly one bucket; a working day with no record is an absence. LATE days
// also count toward PresentDays, matching the attendance-rate numerator.
func (s *ReportServiceImpl) MonthlySummary(ctx context.Context, employeeCode string, year int, month time.Month) (report.MonthlySummary, error) {
	emp, err := s.EmployeeRepository.GetByCode(ctx, employeeCode)
	if err != nil {
		return report.MonthlySummary{}, err
	}

	from, to := monthRange(year, month)
	records, err := s.AttendanceRepository.ListByDateRange(ctx, from, to)
	if err != nil {
		return report.MonthlySummary{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	byDate := make(map[string]attendance.Record)
	for _, rec := range records {
		if rec.EmployeeID == emp.ID {
			byDate[rec.Date.Format("2006-01-02")] = rec
		}
	}

	summary := report.MonthlySummary{
		EmployeeCode: emp.Code,
		EmployeeName: emp.FullName,
		Year:         year,
		Month:        int(month),
	}

	var totalHours float64
	var checkInSeconds, checkIns int
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if s.excludedDay(d) {
			continue
		}
		summary.WorkingDays++

		rec, ok := byDate[d.Format("2006-01-02")]
		if !ok {
			summary.AbsentDays++
			continue
		}

		switch rec.Status {
		case attendance.StatusPresent, attendance.StatusOnDuty:
			summary.PresentDays++
		case attendance.StatusLate:
			summary.PresentDays++
			summary.LateDays++
		case attendance.StatusAbsent:
			summary.AbsentDays++
		case attendance.StatusOnLeave:
			summary.LeaveDays++
		}

		if rec.WorkingHours != nil {
			totalHours += *rec.WorkingHours
		}
		if rec.CheckIn != nil {
			checkInSeconds += rec.CheckIn.Hour()*3600 + rec.CheckIn.Minute()*60 + rec.CheckIn.Second()
			checkIns++
		}
	}

	summary.TotalHours = round2(totalHours)
	summary.AttendanceRate = round2(rate(summary.PresentDays, summary.WorkingDays))
	if checkIns > 0 {
		avg := checkInSeconds / checkIns
		formatted := fmt.Sprintf("%02d:%02d:%02d", avg/3600, (avg%3600)/60, avg%60)
		summary.AvgCheckInTime = &formatted
	}

	return summary, nil
}

// MonthlyRecords implements report.ReportService.
func (s *ReportServiceImpl) MonthlyRecords(ctx context.Context, year int, month time.Month) ([]report.MonthlyCSVRow, error) {
	employees, err := s.EmployeeRepository.List(ctx, employee.ListEmployeesFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	from, to := monthRange(year, month)
	records, err := s.AttendanceRepository.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	byEmployee := make(map[string][]attendance.Record)
	for _, rec := range records {
		byEmployee[rec.EmployeeID] = append(byEmployee[rec.EmployeeID], rec)
	}

	rows := make([]report.MonthlyCSVRow, 0, len(records))
	for _, emp := range employees {
		for _, rec := range byEmployee[emp.ID] {
			row := report.MonthlyCSVRow{
				EmployeeCode: emp.Code,
				EmployeeName: emp.FullName,
				Date:         rec.Date.Format("2006-01-02"),
				Status:       string(rec.Status),
			}
			if rec.CheckIn != nil {
				row.CheckIn = rec.CheckIn.Format("15:04")
			}
			if rec.CheckOut != nil {
				row.CheckOut = rec.CheckOut.Format("15:04")
			}
			if rec.WorkingHours != nil {
				row.Hours = strconv.FormatFloat(*rec.WorkingHours, 'f', 2, 64)
			}
			rows = append(rows, row)
		}
	}

	return rows, nil
}

type tally struct {
	attended int
	late     int
	absent   int
}

func (s *ReportServiceImpl) tallyRange(ctx context.Context, employees []employee.Employee, from, to time.Time) (map[string]tally, error) {
	records, err := s.AttendanceRepository.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	known := make(map[string]struct{}, len(employees))
	for _, emp := range employees {
		known[emp.ID] = struct{}{}
	}

	tallies := make(map[string]tally, len(employees))
	for _, rec := range records {
		if _, ok := known[rec.EmployeeID]; !ok {
			continue
		}
		// Records on excluded days must not inflate the rate past 100.
		if s.excludedDay(rec.Date) {
			continue
		}
		t := tallies[rec.EmployeeID]
		switch rec.Status {
		case attendance.StatusPresent:
			t.attended++
		case attendance.StatusLate:
			t.attended++
			t.late++
		case attendance.StatusAbsent:
			t.absent++
		}
		tallies[rec.EmployeeID] = t
	}

	return tallies, nil
}

func (s *ReportServiceImpl) workingDays(from, to time.Time) int {
	days := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if s.excludedDay(d) {
			continue
		}
		days++
	}
	return days
}

func (s *ReportServiceImpl) excludedDay(d time.Time) bool {
	if !s.excludeWeekends {
		return false
	}
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func monthRange(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, -1)
}

func validateRange(rng report.DateRange) error {
	if rng.From.After(rng.To) {
		return report.ErrInvalidDateRange
	}
	return nil
}

func rate(attended, days int) float64 {
	if days == 0 {
		return 0
	}
	return float64(attended) / float64(days) * 100
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
