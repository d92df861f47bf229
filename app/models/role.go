package models

// Role is the closed set of account roles carried in tokens.
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// ParseRole maps a raw claim or column value onto a known role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleClient:
		return RoleClient, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

func (r Role) String() string { return string(r) }

// IsAdmin reports whether r grants admin access.
func (r Role) IsAdmin() bool { return r == RoleAdmin }
