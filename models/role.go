package models

// Role is the coarse access level of an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Permission names checked by api.Can.
const (
	PermPlaceBets        = "bets:place"
	PermReadBets         = "bets:read"
	PermReadCompanies    = "companies:read"
	PermManageCompanies  = "admin:companies:manage"
	PermResolveCompanies = "admin:companies:resolve"
	PermSettleBets       = "admin:bets:settle"
	PermRecalculate      = "admin:stakes:recalculate"
)

var rolePermissions = map[Role][]string{
	RoleUser: {
		PermPlaceBets,
		PermReadBets,
		PermReadCompanies,
	},
	RoleAdmin: {
		PermPlaceBets,
		PermReadBets,
		PermReadCompanies,
		PermManageCompanies,
		PermResolveCompanies,
		PermSettleBets,
		PermRecalculate,
	},
}

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Permissions returns the permission names granted to r.
func (r Role) Permissions() []string {
	perms := rolePermissions[r]
	out := make([]string, len(perms))
	copy(out, perms)
	return out
}
