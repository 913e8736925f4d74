package service

import "github.com/playlistify/music-api/internal/core/domain"

// RoleGate implements ports.Authorizer with a plain role-membership check.
type RoleGate struct{}

func NewRoleGate() RoleGate {
	return RoleGate{}
}

// Authorize allows the call iff profile.Role is one of allowedRoles.
func (RoleGate) Authorize(profile domain.SecurityProfile, allowedRoles ...string) error {
	for _, role := range allowedRoles {
		if profile.Role == role {
			return nil
		}
	}
	return domain.ErrForbidden
}

// authorizeOwner lets admins and the record's owner modify it.
func authorizeOwner(profile domain.SecurityProfile, owner string) error {
	if profile.IsAdmin() || (profile.ID != "" && profile.ID == owner) {
		return nil
	}
	return domain.ErrForbidden
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// page clamps list pagination parameters.
func page(limit, skip int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if skip < 0 {
		skip = 0
	}
	return limit, skip
}
