package user

type Role string

const (
	RoleOwner    Role = "owner"    // Company owner / HR - full access
	RoleManager  Role = "manager"  // Sets KPIs and submits manager reviews
	RoleEmployee Role = "employee" // Acknowledges KPIs and submits self-ratings
)

// IsOwner checks if the role is company owner
func (r Role) IsOwner() bool {
	return r == RoleOwner
}

// IsManager checks if the role is manager or owner
func (r Role) IsManager() bool {
	return r == RoleManager || r == RoleOwner
}
