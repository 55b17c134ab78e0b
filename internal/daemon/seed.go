package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/silsila-idreesia/portal/internal/auth"
	"github.com/silsila-idreesia/portal/internal/config"
	"github.com/silsila-idreesia/portal/internal/db/models"
)

const adminRoleName = "administrator"

// seed materializes the permission catalog, the administrator role and,
// on an empty database, the initial super admin account.
func seed(_ *config.Config, db *gorm.DB) {
	authService := auth.NewService(db)

	if err := authService.EnsurePermissions(auth.All()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed permissions")
		return
	}

	var adminRole models.Role

	err := db.Where("name = ?", adminRoleName).
		FirstOrCreate(&adminRole, models.Role{
			Name:     adminRoleName,
			Guard:    "api",
			IsSystem: true,
		}).Error
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed administrator role")
		return
	}

	if err := authService.SyncRolePermissions(adminRole.ID, auth.All()); err != nil {
		log.Fatal().Err(err).Msg("failed to attach administrator permissions")
		return
	}

	var count int64
	db.Model(&models.User{}).Count(&count)

	if count == 0 {
		admin := models.User{
			Active:       true,
			Name:         "Administrator",
			Email:        "admin@localhost",
			Password:     models.HashPassword("changeme"),
			IsSuperAdmin: true,
			AuthSource:   models.AuthSourceLocal,
			RoleID:       &adminRole.ID,
		}

		if err := db.Create(&admin).Error; err != nil {
			log.Fatal().Err(err).Msg("failed to seed admin user")
			return
		}

		log.Warn().Str("email", admin.Email).
			Msg("created initial admin account with default password, change it immediately")
	}
}
