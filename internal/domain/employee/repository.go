package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	IsManagerOf(ctx context.Context, managerEmployeeID, employeeID string) (bool, error)
}
