package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for the attendance ledger.
// Create is a conditional insert keyed on (employee, date): implementations
// must guarantee that of two concurrent Create calls for the same key exactly
// one succeeds and the other returns ErrRecordExists, without serializing
// writes to unrelated keys.
type AttendanceRepository interface {
	// Create inserts a record if none exists for (employee, date).
	// Returns ErrRecordExists otherwise.
	Create(ctx context.Context, rec Record) (Record, error)

	// GetByEmployeeAndDate retrieves the record for an employee on a date.
	// Returns (nil, nil) when no record exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Record, error)

	// Update persists check-out and status fields of an existing record.
	Update(ctx context.Context, rec Record) error

	// ListByDate retrieves all records for a single date.
	ListByDate(ctx context.Context, date time.Time) ([]Record, error)

	// ListByDateRange retrieves all records with date in [from, to].
	ListByDateRange(ctx context.Context, from, to time.Time) ([]Record, error)

	// List retrieves records matching the filter, joined with employee
	// name/code, ordered by date descending.
	List(ctx context.Context, filter ListFilter) ([]Record, error)
}
