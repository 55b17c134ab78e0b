package models

import "time"

// Role represents a named permission bundle in the RBAC system.
// A user may hold one role directly or a list of roles; the effective
// permission set is the union across all held roles.
type Role struct {
	// ID is the unique identifier for the role.
	ID uint `gorm:"primaryKey" json:"id"`
	// Name is the unique name of the role (e.g., "zone secretary").
	Name string `gorm:"unique;size:100;not null" json:"name"`
	// Guard names the authentication guard the role belongs to.
	Guard string `gorm:"size:50;not null;default:'api'" json:"guard"`
	// IsSystem indicates if this is a system role that cannot be deleted.
	IsSystem bool `gorm:"default:false" json:"is_system"`
	// Permissions are the permission records assigned to this role.
	Permissions []Permission `gorm:"many2many:role_permissions" json:"permissions,omitempty"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the timestamp when the role was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the database table name for the Role model.
func (Role) TableName() string {
	return "roles"
}
