package rbac

// Console role names. Keep these stable; they are part of the session contract.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

func IsAdmin(role string) bool { return role == RoleAdmin }
