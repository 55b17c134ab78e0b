package models

import "time"

// MehfilDirectory is the directory entry of a mehfil meeting location.
type MehfilDirectory struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	NameEn    string `gorm:"size:255;not null" json:"name_en"`
	NameUr    string `gorm:"size:255" json:"name_ur"`
	AddressEn string `gorm:"size:500" json:"address_en"`
	AddressUr string `gorm:"size:500" json:"address_ur"`
	// Timing is the weekly gathering time as free text.
	Timing    string    `gorm:"size:255" json:"timing"`
	ZoneID    uint64    `gorm:"column:zone_id;not null;index" json:"zone_id"`
	Zone      *Zone     `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the database table name for the MehfilDirectory model.
func (MehfilDirectory) TableName() string {
	return "mehfil_directories"
}
