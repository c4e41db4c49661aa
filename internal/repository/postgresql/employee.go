package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/peoplepulse/perform-backend-go/internal/domain/employee"
	"github.com/peoplepulse/perform-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, company_id, manager_id, name, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID,
		&e.UserID,
		&e.CompanyID,
		&e.ManagerID,
		&e.Name,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, company_id, manager_id, name, created_at, updated_at
		FROM employees
		WHERE user_id = $1
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, userID).Scan(
		&e.ID,
		&e.UserID,
		&e.CompanyID,
		&e.ManagerID,
		&e.Name,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by user: %w", err)
	}

	return e, nil
}

// IsManagerOf reports whether the employee row lists the given manager.
func (r *employeeRepository) IsManagerOf(ctx context.Context, managerEmployeeID, employeeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM employees
			WHERE id = $1 AND manager_id = $2
		)
	`

	var isManager bool
	if err := q.QueryRow(ctx, query, employeeID, managerEmployeeID).Scan(&isManager); err != nil {
		return false, fmt.Errorf("failed to check manager relationship: %w", err)
	}

	return isManager, nil
}
