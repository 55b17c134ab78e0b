package models

import "time"

// Zone is an administrative grouping that mehfils and karkuns belong to.
type Zone struct {
	ID      uint64 `gorm:"primaryKey" json:"id"`
	TitleEn string `gorm:"size:255;not null" json:"title_en"`
	TitleUr string `gorm:"size:255" json:"title_ur"`
	// CityEn and CityUr name the city the zone covers.
	CityEn    string    `gorm:"size:100" json:"city_en"`
	CityUr    string    `gorm:"size:100" json:"city_ur"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the database table name for the Zone model.
func (Zone) TableName() string {
	return "zones"
}
