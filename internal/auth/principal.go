package auth

// Role names recognized by the marketplace.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// Principal is the authenticated identity and role extracted from a
// validated token. It is passed explicitly through the call chain instead
// of living in request-scoped globals.
type Principal struct {
	UserID string
	Role   string
}

// IsAdmin reports whether the principal carries the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanManageListings reports whether the principal may create or modify
// catalog listings.
func (p Principal) CanManageListings() bool {
	return p.Role == RoleSeller || p.Role == RoleAdmin
}
