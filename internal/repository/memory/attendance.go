package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/attendance"
)

type AttendanceRepository struct {
	mu        sync.RWMutex
	byID      map[string]attendance.Record
	byKey     map[string]string
	keys      keyedMutex
	employees *EmployeeRepository
}

func NewAttendanceRepository(employees *EmployeeRepository) *AttendanceRepository {
	return &AttendanceRepository{
		byID:      make(map[string]attendance.Record),
		byKey:     make(map[string]string),
		employees: employees,
	}
}

func recordKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

// Create implements attendance.AttendanceRepository. The per-key mutex makes
// the exists-check-then-insert atomic for one (employee, date) while leaving
// other keys uncontended.
func (r *AttendanceRepository) Create(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	key := recordKey(rec.EmployeeID, rec.Date)
	lock := r.keys.get(key)
	lock.Lock()
	defer lock.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byKey[key]; exists {
		return attendance.Record{}, attendance.ErrRecordExists
	}

	now := time.Now().UTC()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	r.byID[rec.ID] = rec
	r.byKey[key] = rec.ID

	return rec, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *AttendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byKey[recordKey(employeeID, date)]
	if !ok {
		return nil, nil
	}
	rec := r.byID[id]
	return &rec, nil
}

// Update implements attendance.AttendanceRepository.
func (r *AttendanceRepository) Update(ctx context.Context, rec attendance.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[rec.ID]
	if !ok {
		return attendance.ErrRecordNotFound
	}

	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = time.Now().UTC()
	r.byID[rec.ID] = rec

	return nil
}

// ListByDate implements attendance.AttendanceRepository.
func (r *AttendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	return r.ListByDateRange(ctx, date, date)
}

// ListByDateRange implements attendance.AttendanceRepository.
func (r *AttendanceRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []attendance.Record
	for _, rec := range r.byID {
		if rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}
		records = append(records, r.withEmployee(ctx, rec))
	}

	sortRecords(records)
	return records, nil
}

// List implements attendance.AttendanceRepository.
func (r *AttendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var records []attendance.Record
	for _, rec := range r.byID {
		joined := r.withEmployee(ctx, rec)
		if filter.EmployeeCode != nil && *filter.EmployeeCode != "" {
			if joined.EmployeeCode == nil || *joined.EmployeeCode != *filter.EmployeeCode {
				continue
			}
		}
		if filter.DateFrom != nil && rec.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && rec.Date.After(*filter.DateTo) {
			continue
		}
		if filter.Status != nil && rec.Status != *filter.Status {
			continue
		}
		records = append(records, joined)
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.After(records[j].Date)
		}
		return codeOf(records[i]) < codeOf(records[j])
	})
	return records, nil
}

func (r *AttendanceRepository) withEmployee(ctx context.Context, rec attendance.Record) attendance.Record {
	emp, err := r.employees.GetByID(ctx, rec.EmployeeID)
	if err == nil {
		rec.EmployeeName = &emp.FullName
		rec.EmployeeCode = &emp.Code
	}
	return rec
}

func sortRecords(records []attendance.Record) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return codeOf(records[i]) < codeOf(records[j])
	})
}

func codeOf(rec attendance.Record) string {
	if rec.EmployeeCode == nil {
		return ""
	}
	return *rec.EmployeeCode
}
