package models

import "time"

// Permission represents a specific permission in the authorization system.
// Identity and equality are by Name, a string token such as "view karkuns".
type Permission struct {
	// ID is the unique identifier for the permission.
	ID uint `gorm:"primaryKey" json:"id"`
	// Name is the unique permission token checked by the resolver.
	Name string `gorm:"unique;size:100;not null" json:"name"`
	// Guard names the authentication guard the permission belongs to.
	Guard string `gorm:"size:50;not null;default:'api'" json:"guard"`
	// CreatedAt is the timestamp when the permission was created (managed by GORM).
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is the timestamp when the permission was last updated (managed by GORM).
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the database table name for the Permission model.
func (Permission) TableName() string {
	return "permissions"
}
