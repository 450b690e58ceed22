// Package memory provides in-process implementations of the repository
// interfaces. A Store owns all data; tests get deterministic isolation by
// creating a fresh Store per test.
package memory

import (
	"context"
	"sync"
)

type Store struct {
	Employees     *EmployeeRepository
	Attendance    *AttendanceRepository
	LeaveRequests *LeaveRequestRepository
}

func NewStore() *Store {
	employees := NewEmployeeRepository()
	return &Store{
		Employees:     employees,
		Attendance:    NewAttendanceRepository(employees),
		LeaveRequests: NewLeaveRequestRepository(employees),
	}
}

// Transactor satisfies leave.Transactor without real transactions; the
// in-process store applies every write immediately.
type Transactor struct{}

func (Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// keyedMutex hands out one mutex per key so that writes to the same
// (employee, date) are serialized without blocking unrelated keys.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) get(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	return lock
}
