package employee

import "time"

type Employee struct {
	ID          string
	Code        string
	FullName    string
	Email       string
	Department  Department
	Position    string
	HireDate    time.Time
	Deactivated bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Department string

const (
	DepartmentIT         Department = "IT"
	DepartmentHR         Department = "HR"
	DepartmentFinance    Department = "Finance"
	DepartmentOperations Department = "Operations"
	DepartmentSales      Department = "Sales"
	DepartmentMarketing  Department = "Marketing"
)

// Departments lists the closed set of valid departments.
func Departments() []string {
	return []string{
		string(DepartmentIT),
		string(DepartmentHR),
		string(DepartmentFinance),
		string(DepartmentOperations),
		string(DepartmentSales),
		string(DepartmentMarketing),
	}
}
