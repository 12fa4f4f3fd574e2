package domain

// Role is the closed set of principal roles. Unknown values are rejected at
// the boundary instead of silently accepted.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleUser    Role = "user"
)

// ParseRole maps a stored or transmitted role string onto the closed enum.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleManager, RoleUser:
		return Role(s), nil
	}
	return "", ErrInvalidRole
}

// Actor is the request principal, supplied by the authentication collaborator
// on every call. The core never reads it from ambient state.
type Actor struct {
	ID   int64
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
