package employee

import "time"

// Employee is the slim employee reference used for ownership checks.
type Employee struct {
	ID        string
	UserID    string
	CompanyID string
	ManagerID *string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
