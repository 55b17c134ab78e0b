package models

import "time"

// MehfilReport is the periodic activity report of one mehfil.
type MehfilReport struct {
	ID                uint64           `gorm:"primaryKey" json:"id"`
	ReportDate        time.Time        `gorm:"column:report_date;not null" json:"report_date"`
	KarkunsPresent    int              `gorm:"column:karkuns_present" json:"karkuns_present"`
	MehfilsHeld       int              `gorm:"column:mehfils_held" json:"mehfils_held"`
	NewEhadCount      int              `gorm:"column:new_ehad_count" json:"new_ehad_count"`
	RemarksEn         string           `gorm:"size:1000" json:"remarks_en"`
	RemarksUr         string           `gorm:"size:1000" json:"remarks_ur"`
	ZoneID            uint64           `gorm:"column:zone_id;not null;index" json:"zone_id"`
	Zone              *Zone            `gorm:"foreignKey:ZoneID" json:"zone,omitempty"`
	MehfilDirectoryID uint64           `gorm:"column:mehfil_directory_id;not null;index" json:"mehfil_directory_id"`
	MehfilDirectory   *MehfilDirectory `gorm:"foreignKey:MehfilDirectoryID" json:"mehfil_directory,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// TableName specifies the database table name for the MehfilReport model.
func (MehfilReport) TableName() string {
	return "mehfil_reports"
}
