package entities

// Role is the closed set of account roles.
type Role string

const (
	RoleSuperAdmin  Role = "super_admin"
	RoleGPAdmin     Role = "gp_admin"
	RoleMobileUser  Role = "mobile_user"
	RolePillarAdmin Role = "pillar_admin"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleGPAdmin, RoleMobileUser, RolePillarAdmin:
		return true
	}
	return false
}

// RequiresGramPanchayat reports whether accounts with this role must be
// attached to a gram panchayat. Only super admins operate across tenants.
func (r Role) RequiresGramPanchayat() bool {
	switch r {
	case RoleSuperAdmin:
		return false
	case RoleGPAdmin, RoleMobileUser, RolePillarAdmin:
		return true
	}
	return false
}
