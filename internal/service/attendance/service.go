package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/attendance"
	"github.com/attendly-hq/attendance-backend-go/internal/domain/employee"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository

	// cutoffSeconds is the check-in time-of-day boundary (seconds after
	// midnight) distinguishing PRESENT from LATE.
	cutoffSeconds int
	now           func() time.Time
}

// NewAttendanceService builds the ledger service. cutoff is a "HH:MM"
// time-of-day; check-ins strictly after it are LATE.
func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	cutoff string,
) (attendance.AttendanceService, error) {
	t, err := time.Parse("15:04", cutoff)
	if err != nil {
		return nil, fmt.Errorf("invalid attendance cutoff %q: %w", cutoff, err)
	}

	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		cutoffSeconds:        t.Hour()*3600 + t.Minute()*60,
		now:                  time.Now,
	}, nil
}

// CheckIn implements attendance.AttendanceService. Status is decided here
// and never revised at check-out.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := s.activeEmployee(ctx, req.EmployeeCode)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	at := req.AtTime()
	if at.IsZero() {
		at = s.now().UTC()
	}

	status := attendance.StatusPresent
	if s.isLate(at) {
		status = attendance.StatusLate
	}

	rec := attendance.Record{
		ID:         uuid.NewString(),
		EmployeeID: emp.ID,
		Date:       attendance.NormalizeDate(at),
		CheckIn:    &at,
		Status:     status,
	}

	created, err := s.AttendanceRepository.Create(ctx, rec)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordExists) {
			return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	created.EmployeeName = &emp.FullName
	created.EmployeeCode = &emp.Code
	return attendance.ToResponse(created), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := s.activeEmployee(ctx, req.EmployeeCode)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	at := req.AtTime()
	if at.IsZero() {
		at = s.now().UTC()
	}

	rec, err := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, attendance.NormalizeDate(at))
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", err)
	}
	if rec == nil || rec.CheckIn == nil {
		return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
	}
	if rec.CheckOut != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}
	if !at.After(*rec.CheckIn) {
		return attendance.RecordResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}

	hours := roundHours(at.Sub(*rec.CheckIn))
	rec.CheckOut = &at
	rec.WorkingHours = &hours

	if err := s.AttendanceRepository.Update(ctx, *rec); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	rec.EmployeeName = &emp.FullName
	rec.EmployeeCode = &emp.Code
	return attendance.ToResponse(*rec), nil
}

// MarkAbsent implements attendance.AttendanceService. Marking an employee
// absent is an explicit administrative action; an existing ABSENT record is
// returned unchanged, any other existing record is a conflict.
func (s *AttendanceServiceImpl) MarkAbsent(ctx context.Context, req attendance.MarkAbsentRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := s.activeEmployee(ctx, req.EmployeeCode)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	date = attendance.NormalizeDate(date)

	rec := attendance.Record{
		ID:         uuid.NewString(),
		EmployeeID: emp.ID,
		Date:       date,
		Status:     attendance.StatusAbsent,
	}

	created, err := s.AttendanceRepository.Create(ctx, rec)
	if err != nil {
		if !errors.Is(err, attendance.ErrRecordExists) {
			return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
		}

		existing, getErr := s.AttendanceRepository.GetByEmployeeAndDate(ctx, emp.ID, date)
		if getErr != nil {
			return attendance.RecordResponse{}, fmt.Errorf("failed to get attendance record: %w", getErr)
		}
		if existing == nil || existing.Status != attendance.StatusAbsent {
			return attendance.RecordResponse{}, attendance.ErrRecordExists
		}
		created = *existing
	}

	created.EmployeeName = &emp.FullName
	created.EmployeeCode = &emp.Code
	return attendance.ToResponse(created), nil
}

// SynthesizeOnLeave implements attendance.AttendanceService. Each date is an
// independent conditional insert: a date that already has any record is
// skipped and reported, never overwritten.
func (s *AttendanceServiceImpl) SynthesizeOnLeave(ctx context.Context, employeeID string, start, end time.Time) (attendance.SynthesisResult, error) {
	result := attendance.SynthesisResult{
		Applied: []string{},
		Skipped: []string{},
	}

	last := attendance.NormalizeDate(end)
	for d := attendance.NormalizeDate(start); !d.After(last); d = d.AddDate(0, 0, 1) {
		rec := attendance.Record{
			ID:         uuid.NewString(),
			EmployeeID: employeeID,
			Date:       d,
			Status:     attendance.StatusOnLeave,
		}

		_, err := s.AttendanceRepository.Create(ctx, rec)
		if err != nil {
			if errors.Is(err, attendance.ErrRecordExists) {
				result.Skipped = append(result.Skipped, d.Format("2006-01-02"))
				continue
			}
			return result, fmt.Errorf("failed to synthesize on-leave record for %s: %w", d.Format("2006-01-02"), err)
		}
		result.Applied = append(result.Applied, d.Format("2006-01-02"))
	}

	return result, nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.RecordResponse, error) {
	records, err := s.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToResponse(rec))
	}
	return responses, nil
}

func (s *AttendanceServiceImpl) activeEmployee(ctx context.Context, code string) (employee.Employee, error) {
	emp, err := s.EmployeeRepository.GetByCode(ctx, code)
	if err != nil {
		return employee.Employee{}, err
	}
	if emp.Deactivated {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *AttendanceServiceImpl) isLate(at time.Time) bool {
	secondsOfDay := at.Hour()*3600 + at.Minute()*60 + at.Second()
	return secondsOfDay > s.cutoffSeconds
}

func roundHours(d time.Duration) float64 {
	return math.Round(d.Hours()*100) / 100
}
