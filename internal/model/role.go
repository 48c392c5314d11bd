package model

// Role is a closed set. Adding a role means extending the switch in Can,
// which the exhaustive default makes a deliberate, reviewable change.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// Permission identifies one gated operation class.
type Permission string

const (
	PermProductWrite  Permission = "product:write"  // create + update
	PermProductDelete Permission = "product:delete" // soft delete
	PermUserManage    Permission = "user:manage"    // provision, update, deactivate identities
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// Can reports whether the role may perform the given operation class.
// Unknown roles are denied everything.
func (r Role) Can(p Permission) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleManager:
		switch p {
		case PermProductWrite:
			return true
		case PermProductDelete, PermUserManage:
			return false
		}
		return false
	case RoleStaff:
		return false
	default:
		return false
	}
}
