// Package zones provides the zone collection endpoints.
package zones

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/silsila-idreesia/portal/internal/auth"
	"github.com/silsila-idreesia/portal/internal/config"
	"github.com/silsila-idreesia/portal/internal/db/controller/zone"
	"github.com/silsila-idreesia/portal/internal/db/models"
	"github.com/silsila-idreesia/portal/internal/web/handler"
	"github.com/silsila-idreesia/portal/internal/web/handler/resource"
)

// Path is the base path of the zone collection.
const Path = handler.APIPath + "/zones"

// Request is the create/update payload for a zone.
type Request struct {
	TitleEn string `json:"title_en" validate:"required,max=255"`
	TitleUr string `json:"title_ur" validate:"max=255"`
	CityEn  string `json:"city_en"  validate:"max=100"`
	CityUr  string `json:"city_ur"  validate:"max=100"`
}

// Service provides CRUD operations for zones.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
	spec      resource.ListSpec[models.Zone]
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
	s.spec = resource.ListSpec[models.Zone]{
		Searchable:  []string{"title_en", "title_ur", "city_en", "city_ur"},
		Sortable:    map[string]string{"title": "title_en", "city": "city_en", "created_at": "created_at"},
		DefaultSort: "title",
	}

	router.Get(Path, auth.RequirePermission(auth.PermViewZones), s.List)
	router.Get(Path+"/:id", auth.RequirePermission(auth.PermViewZones), s.Get)
	router.Post(Path, auth.RequirePermission(auth.PermManageZones), s.Create)
	router.Put(Path+"/:id", auth.RequirePermission(auth.PermManageZones), s.Update)
	router.Delete(Path+"/:id", auth.RequirePermission(auth.PermManageZones), s.Delete)
}

// List returns a page of zones.
func (s *Service) List(c *fiber.Ctx) error {
	env, err := s.spec.List(s.db, handler.ListParams(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list zones")
		return handler.ServerError(c)
	}

	return c.JSON(env)
}

// Get returns a single zone.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid zone id")
	}

	record, err := zone.GetByID(s.db, id)
	if err != nil {
		if errors.Is(err, zone.ErrZoneNotFound) {
			return handler.NotFound(c, "Zone not found")
		}

		log.Error().Err(err).Uint64("zone_id", id).Msg("Failed to load zone")

		return handler.ServerError(c)
	}

	return c.JSON(fiber.Map{"data": record})
}

// Create creates a zone.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, "English title is required")
	}

	record, err := zone.Create(s.db, &models.Zone{
		TitleEn: req.TitleEn,
		TitleUr: req.TitleUr,
		CityEn:  req.CityEn,
		CityUr:  req.CityUr,
	})
	if err != nil {
		if errors.Is(err, zone.ErrZoneAlreadyExists) {
			return handler.Conflict(c, "A zone with this title already exists")
		}

		log.Error().Err(err).Msg("Failed to create zone")

		return handler.ServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": record})
}

// Update updates a zone.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid zone id")
	}

	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, "English title is required")
	}

	record, err := zone.Update(s.db, id, &models.Zone{
		TitleEn: req.TitleEn,
		TitleUr: req.TitleUr,
		CityEn:  req.CityEn,
		CityUr:  req.CityUr,
	})
	if err != nil {
		if errors.Is(err, zone.ErrZoneNotFound) {
			return handler.NotFound(c, "Zone not found")
		}

		log.Error().Err(err).Uint64("zone_id", id).Msg("Failed to update zone")

		return handler.ServerError(c)
	}

	return c.JSON(fiber.Map{"data": record})
}

// Delete deletes a zone. Zones that still have mehfil directory entries
// are rejected so dependent records never dangle.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid zone id")
	}

	if err := zone.Delete(s.db, id); err != nil {
		switch {
		case errors.Is(err, zone.ErrZoneNotFound):
			return handler.NotFound(c, "Zone not found")
		case errors.Is(err, zone.ErrZoneHasMehfils):
			return handler.Conflict(c, "Zone still has mehfil directory entries")
		default:
			log.Error().Err(err).Uint64("zone_id", id).Msg("Failed to delete zone")
			return handler.ServerError(c)
		}
	}

	return handler.Message(c, fiber.StatusOK, "Zone deleted")
}
