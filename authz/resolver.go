// Package authz implements the portal's permission resolution rules.
//
// Authorization data lives on the user record: a set of admin flags plus
// either a single role or a list of roles, each carrying permission names.
// The resolver is a pure function of the user object; it performs no I/O
// and is shared by the web handlers, the navigation filter and the client.
//
// Resolution rules:
//   - a nil user denies everything (fail closed)
//   - is_super_admin short-circuits every check to true
//   - the multi-role list takes precedence; the single role is a fallback
//     used only when the list is absent or empty
//   - effective permissions are the union across all held roles,
//     deduplicated by name
//   - unknown permission names yield false, never an error
package authz

import (
	"github.com/silsila-idreesia/portal/internal/db/models"
)

// Permissions returns the effective permission name set for a user.
// It returns an empty set for a nil user.
func Permissions(u *models.User) map[string]struct{} {
	set := make(map[string]struct{})
	if u == nil {
		return set
	}

	roles := u.Roles
	if len(roles) == 0 && u.Role != nil {
		roles = []models.Role{*u.Role}
	}

	for _, role := range roles {
		for _, perm := range role.Permissions {
			set[perm.Name] = struct{}{}
		}
	}

	return set
}

// HasPermission reports whether the user holds at least one of the given
// permission names (logical OR). Super admins always pass.
func HasPermission(u *models.User, names ...string) bool {
	if u == nil {
		return false
	}

	if u.IsSuperAdmin {
		return true
	}

	set := Permissions(u)
	for _, name := range names {
		if _, ok := set[name]; ok {
			return true
		}
	}

	return false
}

// HasAllPermissions reports whether the user holds every one of the given
// permission names. Super admins always pass. An empty list is always held.
func HasAllPermissions(u *models.User, names []string) bool {
	if u == nil {
		return false
	}

	if u.IsSuperAdmin {
		return true
	}

	set := Permissions(u)
	for _, name := range names {
		if _, ok := set[name]; !ok {
			return false
		}
	}

	return true
}

// IsSuperAdmin reports whether the user bypasses all permission checks.
func IsSuperAdmin(u *models.User) bool {
	return u != nil && u.IsSuperAdmin
}

// IsZoneAdmin reports whether the user administers a zone.
func IsZoneAdmin(u *models.User) bool {
	return u != nil && u.IsZoneAdmin
}

// IsMehfilAdmin reports whether the user administers a mehfil.
func IsMehfilAdmin(u *models.User) bool {
	return u != nil && u.IsMehfilAdmin
}

// IsRegionAdmin reports whether the user administers a region.
func IsRegionAdmin(u *models.User) bool {
	return u != nil && (u.IsRegionAdmin || u.IsAllRegionAdmin)
}

// IsAdmin reports whether the user holds any administrator flag.
func IsAdmin(u *models.User) bool {
	return IsSuperAdmin(u) || IsZoneAdmin(u) || IsMehfilAdmin(u) || IsRegionAdmin(u)
}
