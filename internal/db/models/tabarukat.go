package models

import "time"

// Tabarukat is a blessed-item / memorabilia record.
type Tabarukat struct {
	ID                uint64           `gorm:"primaryKey" json:"id"`
	TitleEn           string           `gorm:"size:255;not null" json:"title_en"`
	TitleUr           string           `gorm:"size:255" json:"title_ur"`
	DetailEn          string           `gorm:"size:1000" json:"detail_en"`
	DetailUr          string           `gorm:"size:1000" json:"detail_ur"`
	ImageURL          string           `gorm:"size:500" json:"image_url"`
	ZoneID            uint64           `gorm:"column:zone_id;index" json:"zone_id"`
	Zone              *Zone            `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`
	MehfilDirectoryID uint64           `gorm:"column:mehfil_directory_id;index" json:"mehfil_directory_id"`
	MehfilDirectory   *MehfilDirectory `gorm:"foreignKey:MehfilDirectoryID" json:"mehfil_directory,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// TableName specifies the database table name for the Tabarukat model.
func (Tabarukat) TableName() string {
	return "tabarukats"
}
