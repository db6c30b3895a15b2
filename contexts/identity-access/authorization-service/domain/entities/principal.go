package entities

// Role is the closed set of account tiers. Exactly one per user, immutable
// after creation.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleProfessor Role = "professor"
	RoleStudent   Role = "student"
)

// Valid reports whether the role is one of the three known tiers.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProfessor, RoleStudent:
		return true
	default:
		return false
	}
}

// Principal is the authenticated identity acting for the current request.
// It is derived from a verified token plus a user record and is never
// persisted; it lives only for the request it was resolved in.
type Principal struct {
	UserID string
	Email  string
	Role   Role
}
