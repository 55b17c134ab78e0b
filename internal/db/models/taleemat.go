package models

import "time"

// Taleemat is a teaching/lesson content item, typically audio.
type Taleemat struct {
	ID      uint64 `gorm:"primaryKey" json:"id"`
	TitleEn string `gorm:"size:255;not null" json:"title_en"`
	TitleUr string `gorm:"size:255" json:"title_ur"`
	// Category groups lessons on the public site (e.g. "dars", "bayan").
	Category    string     `gorm:"size:100;index" json:"category"`
	AudioURL    string     `gorm:"size:500" json:"audio_url"`
	Published   bool       `gorm:"default:false" json:"published"`
	PublishedAt *time.Time `gorm:"column:published_at" json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName specifies the database table name for the Taleemat model.
func (Taleemat) TableName() string {
	return "taleemats"
}
