package zone

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/silsila-idreesia/portal/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	// Migrate the schema
	err = db.AutoMigrate(&models.Zone{}, &models.MehfilDirectory{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

// seedZones inserts test data into the database.
func seedZones(t *testing.T, db *gorm.DB, zones []models.Zone) {
	t.Helper()
	for _, zone := range zones {
		err := db.Create(&zone).Error
		require.NoError(t, err, "failed to seed test data")
	}
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		titleEn       string
		seedData      []models.Zone
		expectedError error
		expectedCity  string
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			titleEn:       "Central",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty title",
			dbParam:       db,
			titleEn:       "",
			expectedError: ErrZoneTitleEmpty,
		},
		{
			name:          "zone not found",
			dbParam:       db,
			titleEn:       "nonexistent",
			expectedError: ErrZoneNotFound,
		},
		{
			name:    "successful get",
			dbParam: db,
			titleEn: "Central",
			seedData: []models.Zone{
				{TitleEn: "Central", TitleUr: "مرکزی", CityEn: "Lahore", CityUr: "لاہور"},
			},
			expectedCity: "Lahore",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Clean database for each test
			if tc.dbParam != nil {
				tc.dbParam.Exec("DELETE FROM zones")
			}

			if tc.seedData != nil {
				seedZones(t, tc.dbParam, tc.seedData)
			}

			zone, err := Get(tc.dbParam, tc.titleEn)

			if tc.expectedError != nil {
				require.Error(t, err)
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, zone)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, zone)
				assert.Equal(t, tc.titleEn, zone.TitleEn)
				assert.Equal(t, tc.expectedCity, zone.CityEn)
			}
		})
	}
}

func TestGetByID(t *testing.T) {
	db := setupTestDB(t)

	t.Run("nil database", func(t *testing.T) {
		zone, err := GetByID(nil, 1)
		require.ErrorIs(t, err, ErrDBNil)
		assert.Nil(t, zone)
	})

	t.Run("zone not found", func(t *testing.T) {
		zone, err := GetByID(db, 999)
		require.ErrorIs(t, err, ErrZoneNotFound)
		assert.Nil(t, zone)
	})

	t.Run("successful get", func(t *testing.T) {
		seedZones(t, db, []models.Zone{{TitleEn: "North", CityEn: "Islamabad"}})

		var seeded models.Zone
		require.NoError(t, db.Where("title_en = ?", "North").First(&seeded).Error)

		zone, err := GetByID(db, seeded.ID)
		require.NoError(t, err)
		assert.Equal(t, "North", zone.TitleEn)
	})
}

func TestGetAll(t *testing.T) {
	db := setupTestDB(t)

	t.Run("nil database", func(t *testing.T) {
		zones, err := GetAll(nil)
		require.ErrorIs(t, err, ErrDBNil)
		assert.Nil(t, zones)
	})

	t.Run("empty database", func(t *testing.T) {
		zones, err := GetAll(db)
		require.NoError(t, err)
		assert.Empty(t, zones)
	})

	t.Run("multiple zones", func(t *testing.T) {
		seedZones(t, db, []models.Zone{
			{TitleEn: "Central", CityEn: "Lahore"},
			{TitleEn: "North", CityEn: "Islamabad"},
			{TitleEn: "South", CityEn: "Karachi"},
		})

		zones, err := GetAll(db)
		require.NoError(t, err)
		assert.Len(t, zones, 3)
	})
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	t.Run("nil database", func(t *testing.T) {
		zone, err := Create(nil, &models.Zone{TitleEn: "Central"})
		require.ErrorIs(t, err, ErrDBNil)
		assert.Nil(t, zone)
	})

	t.Run("empty title", func(t *testing.T) {
		zone, err := Create(db, &models.Zone{TitleUr: "مرکزی"})
		require.ErrorIs(t, err, ErrZoneTitleEmpty)
		assert.Nil(t, zone)
	})

	t.Run("successful create", func(t *testing.T) {
		zone, err := Create(db, &models.Zone{TitleEn: "Central", CityEn: "Lahore"})
		require.NoError(t, err)
		assert.NotZero(t, zone.ID)
	})

	t.Run("duplicate title", func(t *testing.T) {
		zone, err := Create(db, &models.Zone{TitleEn: "Central"})
		require.ErrorIs(t, err, ErrZoneAlreadyExists)
		assert.Nil(t, zone)
	})
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)

	t.Run("nil database", func(t *testing.T) {
		zone, err := Update(nil, 1, &models.Zone{TitleEn: "Central"})
		require.ErrorIs(t, err, ErrDBNil)
		assert.Nil(t, zone)
	})

	t.Run("empty title", func(t *testing.T) {
		zone, err := Update(db, 1, &models.Zone{})
		require.ErrorIs(t, err, ErrZoneTitleEmpty)
		assert.Nil(t, zone)
	})

	t.Run("zone not found", func(t *testing.T) {
		zone, err := Update(db, 999, &models.Zone{TitleEn: "Central"})
		require.ErrorIs(t, err, ErrZoneNotFound)
		assert.Nil(t, zone)
	})

	t.Run("successful update", func(t *testing.T) {
		created, err := Create(db, &models.Zone{TitleEn: "Central", CityEn: "Lahore"})
		require.NoError(t, err)

		updated, err := Update(db, created.ID, &models.Zone{
			TitleEn: "Central Zone",
			TitleUr: "مرکزی زون",
			CityEn:  "Lahore",
			CityUr:  "لاہور",
		})
		require.NoError(t, err)
		assert.Equal(t, "Central Zone", updated.TitleEn)
		assert.Equal(t, "مرکزی زون", updated.TitleUr)
	})
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)

	t.Run("nil database", func(t *testing.T) {
		require.ErrorIs(t, Delete(nil, 1), ErrDBNil)
	})

	t.Run("zone not found", func(t *testing.T) {
		require.ErrorIs(t, Delete(db, 999), ErrZoneNotFound)
	})

	t.Run("zone with mehfils", func(t *testing.T) {
		created, err := Create(db, &models.Zone{TitleEn: "Occupied"})
		require.NoError(t, err)

		mehfil := models.MehfilDirectory{NameEn: "Mehfil A", ZoneID: created.ID}
		require.NoError(t, db.Create(&mehfil).Error)

		require.ErrorIs(t, Delete(db, created.ID), ErrZoneHasMehfils)
	})

	t.Run("successful delete", func(t *testing.T) {
		created, err := Create(db, &models.Zone{TitleEn: "Empty"})
		require.NoError(t, err)

		require.NoError(t, Delete(db, created.ID))

		_, err = GetByID(db, created.ID)
		require.ErrorIs(t, err, ErrZoneNotFound)
	})
}
