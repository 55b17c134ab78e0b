// Package me exposes the authenticated user's own profile.
package me

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/silsila-idreesia/portal/internal/auth"
	"github.com/silsila-idreesia/portal/internal/config"
	"github.com/silsila-idreesia/portal/internal/web/handler"
)

// Path is the profile endpoint path.
const Path = handler.APIPath + "/me"

// ChangePasswordRequest is the change password payload.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// Service is the profile handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	provider *auth.LocalProvider
}

// Handler is the profile handler.
var Handler = Service{}

// Init initializes the profile handler behind the authentication middleware.
func (s *Service) Init(router fiber.Router, cfg *config.Config, db *gorm.DB) {
	if router == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.provider = auth.NewLocalProvider(db)

	router.Get(Path, s.Get)
	router.Post(Path+"/password", s.ChangePassword)
}

// Get returns the authenticated user with roles and permissions.
func (s *Service) Get(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return handler.Message(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	return c.JSON(fiber.Map{"data": user})
}

// ChangePassword changes the caller's own password.
func (s *Service) ChangePassword(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return handler.Message(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	req := new(ChangePasswordRequest)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if req.OldPassword == "" || len(req.NewPassword) < 8 {
		return handler.ValidationError(c, "New password must be at least 8 characters")
	}

	if err := s.provider.ChangePassword(user.ID, req.OldPassword, req.NewPassword); err != nil {
		if errors.Is(err, auth.ErrInvalidOldPassword) {
			return handler.Message(c, fiber.StatusForbidden, "Old password is incorrect")
		}

		log.Error().Err(err).Uint64("user_id", user.ID).Msg("Failed to change password")

		return handler.ServerError(c)
	}

	return handler.Message(c, fiber.StatusOK, "Password changed")
}
