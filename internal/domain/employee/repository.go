package employee

import "context"

// EmployeeRepository defines data access methods for employee records.
type EmployeeRepository interface {
	// Create inserts a new employee. Returns ErrEmployeeCodeExists when the
	// code is already taken.
	Create(ctx context.Context, emp Employee) (Employee, error)

	// GetByCode retrieves an employee by its canonical EMPnnn code.
	GetByCode(ctx context.Context, code string) (Employee, error)

	// GetByID retrieves an employee by internal ID.
	GetByID(ctx context.Context, id string) (Employee, error)

	// Update persists mutable fields of an existing employee.
	Update(ctx context.Context, emp Employee) error

	// List retrieves employees matching the filter.
	List(ctx context.Context, filter ListEmployeesFilter) ([]Employee, error)
}
