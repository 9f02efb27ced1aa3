package domain

import "strings"

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleEmployee Role = "EMPLOYEE"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole normalizes a role string from a token claim or request payload.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleCustomer:
		return RoleCustomer, true
	case RoleEmployee:
		return RoleEmployee, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Principal is the authenticated caller. It is built once from the verified
// token and passed explicitly into every service call; nothing in the core
// reads identity from ambient state.
type Principal struct {
	ID    int64
	Email string
	Role  Role
}

// IsStaff reports whether the principal may perform employee/admin actions.
func (p Principal) IsStaff() bool {
	return p.Role == RoleEmployee || p.Role == RoleAdmin
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
