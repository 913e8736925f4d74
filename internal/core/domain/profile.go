package domain

// SecurityProfile is the reduced identity carried by a bearer token.
type SecurityProfile struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// IsAdmin reports whether the profile has the admin role.
func (p SecurityProfile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
