package models

import "time"

// NewEhad is a newly recorded pledge.
type NewEhad struct {
	ID                uint64           `gorm:"primaryKey" json:"id"`
	NameEn            string           `gorm:"size:255;not null" json:"name_en"`
	NameUr            string           `gorm:"size:255" json:"name_ur"`
	Phone             string           `gorm:"size:50" json:"phone"`
	AddressEn         string           `gorm:"size:500" json:"address_en"`
	AddressUr         string           `gorm:"size:500" json:"address_ur"`
	EhadDate          time.Time        `gorm:"column:ehad_date" json:"ehad_date"`
	ZoneID            uint64           `gorm:"column:zone_id;not null;index" json:"zone_id"`
	Zone              *Zone            `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`
	MehfilDirectoryID uint64           `gorm:"column:mehfil_directory_id;index" json:"mehfil_directory_id"`
	MehfilDirectory   *MehfilDirectory `gorm:"foreignKey:MehfilDirectoryID" json:"mehfil_directory,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// TableName specifies the database table name for the NewEhad model.
func (NewEhad) TableName() string {
	return "new_ehads"
}
