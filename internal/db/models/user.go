package models

import (
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// AuthSource represents the authentication source for a user account.
type AuthSource string

const (
	// AuthSourceLocal indicates the user authenticates with a local database password.
	AuthSourceLocal AuthSource = "local"
	// AuthSourceOIDC indicates the user authenticates via OpenID Connect (OIDC).
	AuthSourceOIDC AuthSource = "oidc"
)

// User represents an administrative account of the portal.
// Authorization is resolved from the admin flags plus the permission names
// carried by the assigned role or roles: the multi-role list takes precedence
// and the single role is only a fallback when the list is absent or empty.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey" json:"id"`
	// Active indicates whether the account can log in.
	Active bool `json:"active"`
	// Name is the user's display name.
	Name string `gorm:"size:100;not null" json:"name"`
	// Email is the unique login email address.
	Email string `gorm:"unique;size:255;not null" json:"email"`
	// Password is the Argon2id hashed password. Never serialized.
	Password string `gorm:"size:255" json:"-"`
	// IsSuperAdmin bypasses every permission check.
	IsSuperAdmin bool `gorm:"column:is_super_admin" json:"is_super_admin"`
	// IsZoneAdmin marks zone level administrators.
	IsZoneAdmin bool `gorm:"column:is_zone_admin" json:"is_zone_admin"`
	// IsMehfilAdmin marks mehfil level administrators.
	IsMehfilAdmin bool `gorm:"column:is_mehfil_admin" json:"is_mehfil_admin"`
	// IsRegionAdmin marks region level administrators.
	IsRegionAdmin bool `gorm:"column:is_region_admin" json:"is_region_admin"`
	// IsAllRegionAdmin marks administrators spanning every region.
	IsAllRegionAdmin bool `gorm:"column:is_all_region_admin" json:"is_all_region_admin"`
	// RoleID is the optional single role assignment.
	RoleID *uint `gorm:"column:role_id" json:"role_id,omitempty"`
	// Role is the single assigned role, used only when Roles is empty.
	Role *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	// Roles is the multi-role assignment. Effective permissions are the
	// union of permission names across all held roles.
	Roles []Role `gorm:"many2many:user_roles" json:"roles,omitempty"`
	// AuthSource indicates how this user authenticates (local or oidc).
	AuthSource AuthSource `gorm:"type:varchar(20);not null;default:'local'" json:"auth_source"`
	// ExternalID is the subject claim for OIDC users.
	ExternalID string `gorm:"size:255" json:"-"`
	// ZoneID restricts zone administrators to one zone.
	ZoneID *uint64 `gorm:"column:zone_id" json:"zone_id,omitempty"`
	// MehfilDirectoryID restricts mehfil administrators to one mehfil.
	MehfilDirectoryID *uint64 `gorm:"column:mehfil_directory_id" json:"mehfil_directory_id,omitempty"`
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
// This function should be used when creating or updating user passwords.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the user's stored hashed password.
// It uses constant-time comparison to prevent timing attacks.
func (u *User) VerifyPassword(password string) bool {
	match, err := argon2id.ComparePasswordAndHash(password, u.Password)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}
