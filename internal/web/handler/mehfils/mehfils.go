// Package mehfils provides the mehfil directory collection endpoints.
package mehfils

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

// Path is the base path of the mehfil directory collection.
const Path = handler.APIPath + "/mehfils"

// Request is the create/update payload for a mehfil directory entry.
type Request struct {
	NameEn    string `json:"name_en"    validate:"required,max=255"`
	NameUr    string `json:"name_ur"    validate:"max=255"`
	AddressEn string `json:"address_en" validate:"max=500"`
	AddressUr string `json:"address_ur" validate:"max=500"`
	Timing    string `json:"timing"     validate:"max=255"`
	ZoneID    uint64 `json:"zone_id"    validate:"required"`
}

// Service provides CRUD operations for mehfil directory entries.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
	spec      resource.ListSpec[models.MehfilDirectory]
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes behind the authentication middleware.
func (s *Service) Init(router fiber.Router, cfg *config.Config, db *gorm.DB) {
	if router == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.validator = validator.New()
	s.spec = resource.ListSpec[models.MehfilDirectory]{
		Searchable:  []string{"name_en", "name_ur", "address_en", "address_ur"},
		Sortable:    map[string]string{"name": "name_en", "timing": "timing", "created_at": "created_at"},
		DefaultSort: "name",
		// zone_id is the parent filter driving the zone to mehfil cascade
		Filterable: map[string]string{"zone_id": "zone_id"},
		Preloads:   []string{"Zone"},
	}

	router.Get(Path, auth.RequirePermission(auth.PermViewMehfils), s.List)
	router.Get(Path+"/:id", auth.RequirePermission(auth.PermViewMehfils), s.Get)
	router.Post(Path, auth.RequirePermission(auth.PermManageMehfils), s.Create)
	router.Put(Path+"/:id", auth.RequirePermission(auth.PermManageMehfils), s.Update)
	router.Delete(Path+"/:id", auth.RequirePermission(auth.PermManageMehfils), s.Delete)
}

// List returns a page of mehfil directory entries.
func (s *Service) List(c *fiber.Ctx) error {
	env, err := s.spec.List(s.db, handler.ListParams(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list mehfils")
		return handler.ServerError(c)
	}

	return c.JSON(env)
}

// Get returns a single mehfil directory entry.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid mehfil id")
	}

	var record models.MehfilDirectory

	err = s.db.Preload("Zone").First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.NotFound(c, "Mehfil not found")
		}

		log.Error().Err(err).Uint64("mehfil_id", id).Msg("Failed to load mehfil")

		return handler.ServerError(c)
	}

	return c.JSON(fiber.Map{"data": record})
}

// Create creates a mehfil directory entry. The referenced zone must exist.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, "English name and zone are required")
	}

	if err := s.zoneExists(req.ZoneID); err != nil {
		return handler.ValidationError(c, "Zone does not exist")
	}

	record := models.MehfilDirectory{
		NameEn:    req.NameEn,
		NameUr:    req.NameUr,
		AddressEn: req.AddressEn,
		AddressUr: req.AddressUr,
		Timing:    req.Timing,
		ZoneID:    req.ZoneID,
	}

	if err := s.db.Create(&record).Error; err != nil {
		log.Error().Err(err).Msg("Failed to create mehfil")
		return handler.ServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": record})
}

// Update updates a mehfil directory entry.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid mehfil id")
	}

	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, "English name and zone are required")
	}

	var record models.MehfilDirectory

	err = s.db.First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.NotFound(c, "Mehfil not found")
		}

		log.Error().Err(err).Uint64("mehfil_id", id).Msg("Failed to load mehfil")

		return handler.ServerError(c)
	}

	if err := s.zoneExists(req.ZoneID); err != nil {
		return handler.ValidationError(c, "Zone does not exist")
	}

	record.NameEn = req.NameEn
	record.NameUr = req.NameUr
	record.AddressEn = req.AddressEn
	record.AddressUr = req.AddressUr
	record.Timing = req.Timing
	record.ZoneID = req.ZoneID

	if err := s.db.Save(&record).Error; err != nil {
		log.Error().Err(err).Uint64("mehfil_id", id).Msg("Failed to update mehfil")
		return handler.ServerError(c)
	}

	return c.JSON(fiber.Map{"data": record})
}

// Delete deletes a mehfil directory entry.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid mehfil id")
	}

	result := s.db.Delete(&models.MehfilDirectory{}, id)
	if result.Error != nil {
		log.Error().Err(result.Error).Uint64("mehfil_id", id).Msg("Failed to delete mehfil")
		return handler.ServerError(c)
	}

	if result.RowsAffected == 0 {
		return handler.NotFound(c, "Mehfil not found")
	}

	return handler.Message(c, fiber.StatusOK, "Mehfil deleted")
}

func (s *Service) zoneExists(zoneID uint64) error {
	var count int64
	if err := s.db.Model(&models.Zone{}).Where("id = ?", zoneID).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
