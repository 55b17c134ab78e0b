// Package tabarukat provides the tabarukat collection endpoints.
package tabarukat

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

// Path is the base path of the tabarukat collection.
const Path = handler.APIPath + "/tabarukats"

// Request is the create/update payload for a tabarukat.
type Request struct {
	TitleEn           string `json:"title_en"  validate:"required,max=255"`
	TitleUr           string `json:"title_ur"  validate:"max=255"`
	DetailEn          string `json:"detail_en" validate:"max=1000"`
	DetailUr          string `json:"detail_ur" validate:"max=1000"`
	ImageURL          string `json:"image_url" validate:"omitempty,url,max=500"`
	ZoneID            uint64 `json:"zone_id"`
	MehfilDirectoryID uint64 `json:"mehfil_directory_id"`
}

// Service provides CRUD operations for tabarukats.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
	spec      resource.ListSpec[models.Tabarukat]
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
	s.spec = resource.ListSpec[models.Tabarukat]{
		Searchable:  []string{"title_en", "title_ur", "detail_en"},
		Sortable:    map[string]string{"title": "title_en", "created_at": "created_at"},
		DefaultSort: "title",
		Filterable: map[string]string{
			"zone_id":             "zone_id",
			"mehfil_directory_id": "mehfil_directory_id",
		},
		Preloads: []string{"Zone", "MehfilDirectory"},
	}

	router.Get(Path, auth.RequirePermission(auth.PermViewTabarukats), s.List)
	router.Get(Path+"/:id", auth.RequirePermission(auth.PermViewTabarukats), s.Get)
	router.Post(Path, auth.RequirePermission(auth.PermManageTabarukats), s.Create)
	router.Put(Path+"/:id", auth.RequirePermission(auth.PermManageTabarukats), s.Update)
	router.Delete(Path+"/:id", auth.RequirePermission(auth.PermManageTabarukats), s.Delete)
}

// List returns a page of tabarukats.
func (s *Service) List(c *fiber.Ctx) error {
	env, err := s.spec.List(s.db, handler.ListParams(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tabarukats")
		return handler.ServerError(c)
	}

	return c.JSON(env)
}

// Get returns a single tabarukat.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid tabarukat id")
	}

	var record models.Tabarukat

	err = s.db.Preload("Zone").Preload("MehfilDirectory").First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.NotFound(c, "Tabarukat not found")
		}

		log.Error().Err(err).Uint64("tabarukat_id", id).Msg("Failed to load tabarukat")

		return handler.ServerError(c)
	}

	return c.JSON(fiber.Map{"data": record})
}

// Create creates a tabarukat.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, "English title is required")
	}

	record := models.Tabarukat{
		TitleEn:           req.TitleEn,
		TitleUr:           req.TitleUr,
		DetailEn:          req.DetailEn,
		DetailUr:          req.DetailUr,
		ImageURL:          req.ImageURL,
		ZoneID:            req.ZoneID,
		MehfilDirectoryID: req.MehfilDirectoryID,
	}

	if err := s.db.Create(&record).Error; err != nil {
		log.Error().Err(err).Msg("Failed to create tabarukat")
		return handler.ServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": record})
}

// Update updates a tabarukat.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid tabarukat id")
	}

	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, "English title is required")
	}

	var record models.Tabarukat

	err = s.db.First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.NotFound(c, "Tabarukat not found")
		}

		log.Error().Err(err).Uint64("tabarukat_id", id).Msg("Failed to load tabarukat")

		return handler.ServerError(c)
	}

	record.TitleEn = req.TitleEn
	record.TitleUr = req.TitleUr
	record.DetailEn = req.DetailEn
	record.DetailUr = req.DetailUr
	record.ImageURL = req.ImageURL
	record.ZoneID = req.ZoneID
	record.MehfilDirectoryID = req.MehfilDirectoryID

	if err := s.db.Save(&record).Error; err != nil {
		log.Error().Err(err).Uint64("tabarukat_id", id).Msg("Failed to update tabarukat")
		return handler.ServerError(c)
	}

	return c.JSON(fiber.Map{"data": record})
}

// Delete deletes a tabarukat.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid tabarukat id")
	}

	result := s.db.Delete(&models.Tabarukat{}, id)
	if result.Error != nil {
		log.Error().Err(result.Error).Uint64("tabarukat_id", id).Msg("Failed to delete tabarukat")
		return handler.ServerError(c)
	}

	if result.RowsAffected == 0 {
		return handler.NotFound(c, "Tabarukat not found")
	}

	return handler.Message(c, fiber.StatusOK, "Tabarukat deleted")
}
