// Package role provides handlers for managing roles and their permission
// sets in the admin area.
package role

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

// Path is the base path for role management.
const Path = handler.APIPath + "/admin/roles"

// Request is the create/update payload for a role.
type Request struct {
	Name        string   `json:"name" validate:"required,max=255"`
	Permissions []string `json:"permissions"`
}

// Service provides CRUD operations for roles.
type Service struct {
	handler.Service
	cfg         *config.Config
	db          *gorm.DB
	authService *auth.Service
	validator   *validator.Validate
	spec        resource.ListSpec[models.Role]
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
	s.validator = validator.New()
	s.spec = resource.ListSpec[models.Role]{
		Searchable:  []string{"name"},
		Sortable:    map[string]string{"name": "name", "created_at": "created_at"},
		DefaultSort: "name",
		Preloads:    []string{"Permissions"},
	}

	router.Get(Path, auth.RequirePermission(auth.PermViewRoles), s.List)
	router.Get(Path+"/permissions", auth.RequirePermission(auth.PermViewRoles), s.Catalog)
	router.Get(Path+"/:id", auth.RequirePermission(auth.PermViewRoles), s.Get)
	router.Post(Path, auth.RequirePermission(auth.PermManageRoles), s.Create)
	router.Put(Path+"/:id", auth.RequirePermission(auth.PermManageRoles), s.Update)
	router.Delete(Path+"/:id", auth.RequirePermission(auth.PermManageRoles), s.Delete)
}

// List returns a page of roles with their permissions.
func (s *Service) List(c *fiber.Ctx) error {
	env, err := s.spec.List(s.db, handler.ListParams(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list roles")
		return handler.ServerError(c)
	}

	return c.JSON(env)
}

// Catalog returns every permission token available for assignment.
func (s *Service) Catalog(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": auth.All()})
}

// Get returns a single role with its permissions.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid role id")
	}

	var record models.Role

	err = s.db.Preload("Permissions").First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.NotFound(c, "Role not found")
		}

		log.Error().Err(err).Uint64("role_id", id).Msg("Failed to load role")

		return handler.ServerError(c)
	}

	return c.JSON(fiber.Map{"data": record})
}

// Create creates a role and attaches the named permissions.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, "Role name is required")
	}

	var existing models.Role
	if err := s.db.Where("name = ?", req.Name).First(&existing).Error; err == nil {
		return handler.Conflict(c, "A role with this name already exists")
	}

	record := models.Role{Name: req.Name, Guard: "api"}

	if err := s.db.Create(&record).Error; err != nil {
		log.Error().Err(err).Msg("Failed to create role")
		return handler.ServerError(c)
	}

	if len(req.Permissions) > 0 {
		if err := s.authService.SyncRolePermissions(record.ID, req.Permissions); err != nil {
			log.Error().Err(err).Uint("role_id", record.ID).Msg("Failed to attach permissions")
			return handler.ServerError(c)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": s.reload(record.ID)})
}

// Update renames a role and replaces its permission set. System roles
// cannot be renamed.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid role id")
	}

	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, "Role name is required")
	}

	var record models.Role

	err = s.db.First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.NotFound(c, "Role not found")
		}

		log.Error().Err(err).Uint64("role_id", id).Msg("Failed to load role")

		return handler.ServerError(c)
	}

	if record.IsSystem && record.Name != req.Name {
		return handler.Conflict(c, "System roles cannot be renamed")
	}

	record.Name = req.Name

	if err := s.db.Save(&record).Error; err != nil {
		log.Error().Err(err).Uint64("role_id", id).Msg("Failed to update role")
		return handler.ServerError(c)
	}

	if req.Permissions != nil {
		if err := s.authService.SyncRolePermissions(record.ID, req.Permissions); err != nil {
			log.Error().Err(err).Uint("role_id", record.ID).Msg("Failed to sync permissions")
			return handler.ServerError(c)
		}
	}

	return c.JSON(fiber.Map{"data": s.reload(record.ID)})
}

// Delete deletes a role. System roles and roles still assigned to users
// are rejected.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid role id")
	}

	var record models.Role

	err = s.db.First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.NotFound(c, "Role not found")
		}

		log.Error().Err(err).Uint64("role_id", id).Msg("Failed to load role")

		return handler.ServerError(c)
	}

	if record.IsSystem {
		return handler.Conflict(c, "System roles cannot be deleted")
	}

	var assigned int64
	if err := s.db.Model(&models.UserRole{}).Where("role_id = ?", record.ID).Count(&assigned).Error; err != nil {
		log.Error().Err(err).Uint64("role_id", id).Msg("Failed to count role assignments")
		return handler.ServerError(c)
	}

	if assigned > 0 {
		return handler.Conflict(c, "Role is still assigned to users")
	}

	if err := s.db.Delete(&record).Error; err != nil {
		log.Error().Err(err).Uint64("role_id", id).Msg("Failed to delete role")
		return handler.ServerError(c)
	}

	return handler.Message(c, fiber.StatusOK, "Role deleted")
}

func (s *Service) reload(id uint) *models.Role {
	var record models.Role
	if err := s.db.Preload("Permissions").First(&record, id).Error; err != nil {
		return nil
	}

	return &record
}
