package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/silsila-idreesia/portal/internal/db/models"
)

func roleWith(name string, perms ...string) models.Role {
	role := models.Role{Name: name}
	for _, p := range perms {
		role.Permissions = append(role.Permissions, models.Permission{Name: p})
	}

	return role
}

func TestPermissionsUnionAcrossRoles(t *testing.T) {
	r1 := roleWith("r1", "a")
	r2 := roleWith("r2", "b")

	user := &models.User{Roles: []models.Role{r1, r2}}

	assert.True(t, HasPermission(user, "a"))
	assert.True(t, HasPermission(user, "b"))
	assert.True(t, HasAllPermissions(user, []string{"a", "b"}))
	assert.False(t, HasPermission(user, "c"))
}

func TestPermissionsDeduplicated(t *testing.T) {
	r1 := roleWith("r1", "a", "b")
	r2 := roleWith("r2", "b")

	user := &models.User{Roles: []models.Role{r1, r2}}

	assert.Len(t, Permissions(user), 2)
}

func TestMultiRoleTakesPrecedenceOverSingleRole(t *testing.T) {
	single := roleWith("single", "only-from-single")
	multi := roleWith("multi", "only-from-multi")

	user := &models.User{
		Role:  &single,
		Roles: []models.Role{multi},
	}

	assert.True(t, HasPermission(user, "only-from-multi"))
	assert.False(t, HasPermission(user, "only-from-single"))
}

func TestSingleRoleFallbackWhenRolesEmpty(t *testing.T) {
	single := roleWith("single", "x")

	user := &models.User{Role: &single}

	assert.True(t, HasPermission(user, "x"))

	user.Roles = []models.Role{}
	assert.True(t, HasPermission(user, "x"), "empty roles list falls back to single role")
}

func TestSuperAdminOverride(t *testing.T) {
	user := &models.User{IsSuperAdmin: true}

	assert.True(t, HasPermission(user, "anything-undefined"))
	assert.True(t, HasAllPermissions(user, []string{"a", "b", "c"}))
	assert.Empty(t, Permissions(user), "override does not fabricate permission entries")
}

func TestNilUserFailsClosed(t *testing.T) {
	assert.False(t, HasPermission(nil, "x"))
	assert.False(t, HasAllPermissions(nil, []string{"x"}))
	assert.Empty(t, Permissions(nil))
}

func TestHasPermissionAnySemantics(t *testing.T) {
	user := &models.User{Roles: []models.Role{roleWith("r", "b")}}

	assert.True(t, HasPermission(user, "a", "b"), "any of the listed names suffices")
	assert.False(t, HasAllPermissions(user, []string{"a", "b"}))
}

func TestHasAllPermissionsEmptyList(t *testing.T) {
	user := &models.User{}

	assert.True(t, HasAllPermissions(user, nil))
}

func TestDerivedAdminFlags(t *testing.T) {
	assert.False(t, IsAdmin(nil))
	assert.False(t, IsAdmin(&models.User{}))
	assert.True(t, IsAdmin(&models.User{IsSuperAdmin: true}))
	assert.True(t, IsAdmin(&models.User{IsZoneAdmin: true}))
	assert.True(t, IsAdmin(&models.User{IsMehfilAdmin: true}))
	assert.True(t, IsAdmin(&models.User{IsRegionAdmin: true}))
	assert.True(t, IsRegionAdmin(&models.User{IsAllRegionAdmin: true}))
	assert.False(t, IsSuperAdmin(&models.User{IsZoneAdmin: true}))
}
