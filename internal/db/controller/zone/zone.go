// Package zone provides CRUD operations for managing zones.
package zone

import (
	"errors"

	"gorm.io/gorm"

	"github.com/silsila-idreesia/portal/internal/db/models"
)

const (
	titleQueryPattern = "title_en = ?"
)

var (
	// ErrZoneNotFound is returned when a zone is not found.
	ErrZoneNotFound = errors.New("zone not found")
	// ErrZoneTitleEmpty is returned when attempting to create/update a zone without an English title.
	ErrZoneTitleEmpty = errors.New("zone title cannot be empty")
	// ErrZoneAlreadyExists is returned when attempting to create a zone whose English title is taken.
	ErrZoneAlreadyExists = errors.New("zone already exists")
	// ErrZoneHasMehfils is returned when deleting a zone that still has mehfil directory entries.
	ErrZoneHasMehfils = errors.New("zone still has mehfil directory entries")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a zone by its English title.
func Get(db *gorm.DB, titleEn string) (*models.Zone, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if titleEn == "" {
		return nil, ErrZoneTitleEmpty
	}

	var zone models.Zone
	result := db.Where(titleQueryPattern, titleEn).First(&zone)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, result.Error
	}

	return &zone, nil
}

// GetByID retrieves a zone by its ID.
func GetByID(db *gorm.DB, id uint64) (*models.Zone, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var zone models.Zone
	result := db.First(&zone, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, result.Error
	}

	return &zone, nil
}

// GetAll retrieves all zones from the database.
func GetAll(db *gorm.DB) ([]models.Zone, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var zones []models.Zone
	result := db.Find(&zones)
	if result.Error != nil {
		return nil, result.Error
	}

	return zones, nil
}

// Create creates a new zone in the database.
func Create(db *gorm.DB, zone *models.Zone) (*models.Zone, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if zone.TitleEn == "" {
		return nil, ErrZoneTitleEmpty
	}

	// Check if zone already exists
	var existing models.Zone
	result := db.Where(titleQueryPattern, zone.TitleEn).First(&existing)
	if result.Error == nil {
		return nil, ErrZoneAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	result = db.Create(zone)
	if result.Error != nil {
		return nil, result.Error
	}

	return zone, nil
}

// Update updates an existing zone by ID.
func Update(db *gorm.DB, id uint64, updated *models.Zone) (*models.Zone, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if updated.TitleEn == "" {
		return nil, ErrZoneTitleEmpty
	}

	var zone models.Zone
	result := db.First(&zone, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, result.Error
	}

	zone.TitleEn = updated.TitleEn
	zone.TitleUr = updated.TitleUr
	zone.CityEn = updated.CityEn
	zone.CityUr = updated.CityUr

	result = db.Save(&zone)
	if result.Error != nil {
		return nil, result.Error
	}

	return &zone, nil
}

// Delete deletes a zone by ID. Zones that still have mehfil directory
// entries cannot be deleted.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	var mehfils int64
	result := db.Model(&models.MehfilDirectory{}).Where("zone_id = ?", id).Count(&mehfils)
	if result.Error != nil {
		return result.Error
	}
	if mehfils > 0 {
		return ErrZoneHasMehfils
	}

	result = db.Delete(&models.Zone{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrZoneNotFound
	}

	return nil
}
