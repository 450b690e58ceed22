package leave

import "context"

// LeaveRequestRepository defines data access methods for leave requests.
type LeaveRequestRepository interface {
	// Create inserts a new request.
	Create(ctx context.Context, req Request) (Request, error)

	// GetByID retrieves a request by ID, joined with employee name/code.
	GetByID(ctx context.Context, id string) (Request, error)

	// Update persists status and decision metadata of an existing request.
	Update(ctx context.Context, req Request) error

	// Delete removes a request. Callers enforce the Pending-only rule.
	Delete(ctx context.Context, id string) error

	// List retrieves requests matching the filter, joined with employee
	// name/code, newest submission first.
	List(ctx context.Context, filter ListFilter) ([]Request, error)
}

// Transactor runs fn inside a single storage transaction. Repository calls
// made with the context it passes to fn join that transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
