// Package user provides handlers for managing portal users (CRUD) in the admin area.
package user

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/silsila-idreesia/portal/internal/auth"
	"github.com/silsila-idreesia/portal/internal/config"
	"github.com/silsila-idreesia/portal/internal/db/models"
	"github.com/silsila-idreesia/portal/internal/web/handler"
	"github.com/silsila-idreesia/portal/internal/web/handler/resource"
)

// Path is the base path for user management.
const Path = handler.APIPath + "/admin/users"

// Request is the create/update payload for a user.
type Request struct {
	Name             string  `json:"name"     validate:"required,max=100"`
	Email            string  `json:"email"    validate:"required,email"`
	Password         string  `json:"password" validate:"omitempty,min=8"`
	Active           *bool   `json:"active"`
	IsSuperAdmin     bool    `json:"is_super_admin"`
	IsZoneAdmin      bool    `json:"is_zone_admin"`
	IsMehfilAdmin    bool    `json:"is_mehfil_admin"`
	IsRegionAdmin    bool    `json:"is_region_admin"`
	IsAllRegionAdmin bool    `json:"is_all_region_admin"`
	RoleID           *uint   `json:"role_id"`
	RoleIDs          []uint  `json:"role_ids"`
	ZoneID           *uint64 `json:"zone_id"`
	MehfilID         *uint64 `json:"mehfil_directory_id"`
}

// Service provides CRUD operations for users.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
	provider    *auth.LocalProvider
	validator   *validator.Validate
	spec        resource.ListSpec[models.User]
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes behind the authentication middleware.
func (s *Service) Init(router fiber.Router, cfg *config.Config, db *gorm.DB, authService *auth.Service) {
	if router == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.authService = authService
	s.provider = auth.NewLocalProvider(db)
	s.validator = validator.New()
	s.spec = resource.ListSpec[models.User]{
		Searchable:  []string{"name", "email"},
		Sortable:    map[string]string{"name": "name", "email": "email", "created_at": "created_at"},
		DefaultSort: "name",
		Filterable:  map[string]string{"active": "active", "zone_id": "zone_id"},
		Preloads:    []string{"Role", "Roles"},
	}

	router.Get(Path, auth.RequirePermission(auth.PermViewUsers), s.List)
	router.Get(Path+"/:id", auth.RequirePermission(auth.PermViewUsers), s.Get)
	router.Post(Path, auth.RequirePermission(auth.PermManageUsers), s.Create)
	router.Put(Path+"/:id", auth.RequirePermission(auth.PermManageUsers), s.Update)
	router.Post(Path+"/:id/activate", auth.RequirePermission(auth.PermManageUsers), s.Activate)
	router.Post(Path+"/:id/deactivate", auth.RequirePermission(auth.PermManageUsers), s.Deactivate)
	router.Delete(Path+"/:id", auth.RequirePermission(auth.PermManageUsers), s.Delete)
}

// List returns a page of users.
func (s *Service) List(c *fiber.Ctx) error {
	env, err := s.spec.List(s.db, handler.ListParams(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		return handler.ServerError(c)
	}

	return c.JSON(env)
}

// Get returns a single user with role and permission data.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid user id")
	}

	record, err := s.authService.LoadUser(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.NotFound(c, "User not found")
		}

		log.Error().Err(err).Uint64("user_id", id).Msg("Failed to load user")

		return handler.ServerError(c)
	}

	return c.JSON(fiber.Map{"data": record})
}

// Create creates a user with an initial password and role assignments.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil || req.Password == "" {
		return handler.ValidationError(c, "Name, email and a password of at least 8 characters are required")
	}

	record, err := s.provider.CreateUser(req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailExists) {
			return handler.Conflict(c, "A user with this email already exists")
		}

		log.Error().Err(err).Msg("Failed to create user")

		return handler.ServerError(c)
	}

	s.applyFlags(record, req)

	if err := s.db.Save(record).Error; err != nil {
		log.Error().Err(err).Uint64("user_id", record.ID).Msg("Failed to store user flags")
		return handler.ServerError(c)
	}

	if len(req.RoleIDs) > 0 {
		if err := s.authService.SyncUserRoles(record.ID, req.RoleIDs); err != nil {
			log.Error().Err(err).Uint64("user_id", record.ID).Msg("Failed to assign roles")
			return handler.ServerError(c)
		}
	}

	record, err = s.authService.LoadUser(record.ID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to reload user")
		return handler.ServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": record})
}

// Update updates a user's profile, flags and role assignments. A non-empty
// password resets the password.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid user id")
	}

	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, "Name and email are required")
	}

	var record models.User

	err = s.db.First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.NotFound(c, "User not found")
		}

		log.Error().Err(err).Uint64("user_id", id).Msg("Failed to load user")

		return handler.ServerError(c)
	}

	record.Name = req.Name
	record.Email = req.Email
	s.applyFlags(&record, req)

	if req.Password != "" {
		record.Password = models.HashPassword(req.Password)
	}

	if err := s.db.Save(&record).Error; err != nil {
		log.Error().Err(err).Uint64("user_id", id).Msg("Failed to update user")
		return handler.ServerError(c)
	}

	if req.RoleIDs != nil {
		if err := s.authService.SyncUserRoles(record.ID, req.RoleIDs); err != nil {
			log.Error().Err(err).Uint64("user_id", id).Msg("Failed to sync roles")
			return handler.ServerError(c)
		}
	}

	reloaded, err := s.authService.LoadUser(record.ID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to reload user")
		return handler.ServerError(c)
	}

	return c.JSON(fiber.Map{"data": reloaded})
}

// Activate enables a user account.
func (s *Service) Activate(c *fiber.Ctx) error {
	return s.setActive(c, true, "User activated")
}

// Deactivate disables a user account. Outstanding tokens keep verifying
// the active flag on every request, so access ends immediately.
func (s *Service) Deactivate(c *fiber.Ctx) error {
	return s.setActive(c, false, "User deactivated")
}

// Delete deletes a user. The caller cannot delete their own account.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid user id")
	}

	if current := auth.CurrentUser(c); current != nil && current.ID == id {
		return handler.Conflict(c, "You cannot delete your own account")
	}

	result := s.db.Delete(&models.User{}, id)
	if result.Error != nil {
		log.Error().Err(result.Error).Uint64("user_id", id).Msg("Failed to delete user")
		return handler.ServerError(c)
	}

	if result.RowsAffected == 0 {
		return handler.NotFound(c, "User not found")
	}

	return handler.Message(c, fiber.StatusOK, "User deleted")
}

func (s *Service) setActive(c *fiber.Ctx, active bool, message string) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid user id")
	}

	result := s.db.Model(&models.User{}).Where("id = ?", id).Update("active", active)
	if result.Error != nil {
		log.Error().Err(result.Error).Uint64("user_id", id).Msg("Failed to change user state")
		return handler.ServerError(c)
	}

	if result.RowsAffected == 0 {
		return handler.NotFound(c, "User not found")
	}

	return handler.Message(c, fiber.StatusOK, message)
}

func (s *Service) applyFlags(record *models.User, req *Request) {
	if req.Active != nil {
		record.Active = *req.Active
	}

	record.IsSuperAdmin = req.IsSuperAdmin
	record.IsZoneAdmin = req.IsZoneAdmin
	record.IsMehfilAdmin = req.IsMehfilAdmin
	record.IsRegionAdmin = req.IsRegionAdmin
	record.IsAllRegionAdmin = req.IsAllRegionAdmin
	record.RoleID = req.RoleID
	record.ZoneID = req.ZoneID
	record.MehfilDirectoryID = req.MehfilID
}
