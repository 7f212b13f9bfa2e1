package models

const (
	RoleTraveler   = "TRAVELER"
	RoleManager    = "MANAGER"
	RoleSupervisor = "SUPERVISOR"
)

// User mirrors the users table minus the password hash.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Status   string `json:"status"`
}

// IsStaff reports whether the role may use the admin dashboards and scanner.
func IsStaff(role string) bool {
	return role == RoleManager || role == RoleSupervisor
}
