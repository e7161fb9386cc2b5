package jwtx

import "slices"

// Principal is the authenticated identity attached to a request: the
// subject (username) plus the set of role strings granted to it. It is
// reconstructed from a bearer credential on every request and never
// persisted.
type Principal struct {
	Subject string
	Roles   []string
}

// HasRole reports whether the principal carries the given role.
func (p Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

// HasAnyRole reports whether the principal carries at least one of the
// given roles.
func (p Principal) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if p.HasRole(r) {
			return true
		}
	}
	return false
}
