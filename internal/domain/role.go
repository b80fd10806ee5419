package domain

import "time"

type Role string

const (
	RoleUser           Role = "USER"
	RolePolice         Role = "POLICE"
	RoleAdmin          Role = "ADMIN"
	RoleAdministration Role = "ADMINISTRACION"
)

func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleUser, RolePolice, RoleAdmin, RoleAdministration:
		return r, true
	}
	return "", false
}

type RoleSet []Role

func (rs RoleSet) Has(role Role) bool {
	for _, r := range rs {
		if r == role {
			return true
		}
	}
	return false
}

func (rs RoleSet) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if rs.Has(r) {
			return true
		}
	}
	return false
}

// Privileged reports whether the set may mutate fines outside the officer window.
func (rs RoleSet) Privileged() bool {
	return rs.HasAny(RoleAdmin, RoleAdministration)
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID    string
	TaxID string
	Name  string
	Roles RoleSet
}

type MutationDecision int

const (
	MutationAllowed MutationDecision = iota
	MutationWindowExpired
	MutationRoleDenied
)

// CanMutate decides whether roles may change a fine whose officer window closes
// at deadline, evaluated at now.
func CanMutate(roles RoleSet, now, deadline time.Time) MutationDecision {
	switch {
	case roles.Privileged():
		return MutationAllowed
	case roles.Has(RolePolice):
		if now.After(deadline) {
			return MutationWindowExpired
		}
		return MutationAllowed
	default:
		return MutationRoleDenied
	}
}

// RoutesToDelete reports whether a delete request is honoured as a permanent
// delete rather than ignored in favour of the field patch.
func RoutesToDelete(roles RoleSet, now, deadline time.Time) bool {
	return roles.Privileged() || now.After(deadline)
}

// CanIssue reports whether roles may issue new fines.
func CanIssue(roles RoleSet) bool {
	return roles.HasAny(RolePolice, RoleAdmin, RoleAdministration)
}
