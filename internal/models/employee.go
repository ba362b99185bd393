package models

import "time"

// Employee roles. Role governs whether aggregate (all-ticket) or personal
// (assigned-only) figures are shown; it does not change the allocation
// arithmetic.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// Employee is a staff member who can be assigned to tickets.
type Employee struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidRole reports whether r is a known employee role.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleManager || r == RoleEmployee
}

// CanViewAggregates reports whether the role may see business-wide figures
// rather than only its own assigned tickets.
func (e *Employee) CanViewAggregates() bool {
	return e.Role == RoleAdmin || e.Role == RoleManager
}
