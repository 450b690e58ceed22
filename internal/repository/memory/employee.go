package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/attendly-hq/attendance-backend-go/internal/domain/employee"
)

type EmployeeRepository struct {
	mu     sync.RWMutex
	byID   map[string]employee.Employee
	byCode map[string]string
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{
		byID:   make(map[string]employee.Employee),
		byCode: make(map[string]string),
	}
}

// Create implements employee.EmployeeRepository.
func (r *EmployeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byCode[emp.Code]; exists {
		return employee.Employee{}, employee.ErrEmployeeCodeExists
	}

	now := time.Now().UTC()
	emp.CreatedAt = now
	emp.UpdatedAt = now
	r.byID[emp.ID] = emp
	r.byCode[emp.Code] = emp.ID

	return emp, nil
}

// GetByCode implements employee.EmployeeRepository.
func (r *EmployeeRepository) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCode[code]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return r.byID[id], nil
}

// GetByID implements employee.EmployeeRepository.
func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emp, ok := r.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

// Update implements employee.EmployeeRepository.
func (r *EmployeeRepository) Update(ctx context.Context, emp employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.byID[emp.ID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}

	emp.Code = existing.Code
	emp.CreatedAt = existing.CreatedAt
	emp.UpdatedAt = time.Now().UTC()
	r.byID[emp.ID] = emp

	return nil
}

// List implements employee.EmployeeRepository.
func (r *EmployeeRepository) List(ctx context.Context, filter employee.ListEmployeesFilter) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var employees []employee.Employee
	for _, emp := range r.byID {
		if filter.Department != nil && *filter.Department != "" && string(emp.Department) != *filter.Department {
			continue
		}
		if filter.ActiveOnly && emp.Deactivated {
			continue
		}
		employees = append(employees, emp)
	}

	sort.Slice(employees, func(i, j int) bool {
		return employees[i].Code < employees[j].Code
	})

	return employees, nil
}
