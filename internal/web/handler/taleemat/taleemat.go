// Package taleemat provides the taleemat content endpoints, including the
// publish switch that controls visibility on the public site.
package taleemat

import (
	"errors"
	"time"

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

// Path is the base path of the taleemat collection.
const Path = handler.APIPath + "/taleemats"

// Request is the create/update payload for a taleemat item.
type Request struct {
	TitleEn  string `json:"title_en"  validate:"required,max=255"`
	TitleUr  string `json:"title_ur"  validate:"max=255"`
	Category string `json:"category"  validate:"max=100"`
	AudioURL string `json:"audio_url" validate:"omitempty,url,max=500"`
}

// Service provides CRUD operations for taleemat content.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
	spec      resource.ListSpec[models.Taleemat]
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
	s.spec = resource.ListSpec[models.Taleemat]{
		Searchable:  []string{"title_en", "title_ur", "category"},
		Sortable:    map[string]string{"title": "title_en", "category": "category", "published_at": "published_at", "created_at": "created_at"},
		DefaultSort: "title",
		Filterable:  map[string]string{"category": "category", "published": "published"},
	}

	router.Get(Path, auth.RequirePermission(auth.PermViewTaleemat), s.List)
	router.Get(Path+"/:id", auth.RequirePermission(auth.PermViewTaleemat), s.Get)
	router.Post(Path, auth.RequirePermission(auth.PermManageTaleemat), s.Create)
	router.Put(Path+"/:id", auth.RequirePermission(auth.PermManageTaleemat), s.Update)
	router.Post(Path+"/:id/publish", auth.RequirePermission(auth.PermManageTaleemat), s.Publish)
	router.Post(Path+"/:id/unpublish", auth.RequirePermission(auth.PermManageTaleemat), s.Unpublish)
	router.Delete(Path+"/:id", auth.RequirePermission(auth.PermManageTaleemat), s.Delete)
}

// List returns a page of taleemat items.
func (s *Service) List(c *fiber.Ctx) error {
	env, err := s.spec.List(s.db, handler.ListParams(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list taleemat")
		return handler.ServerError(c)
	}

	return c.JSON(env)
}

// Get returns a single taleemat item.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid taleemat id")
	}

	record, err := s.load(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.NotFound(c, "Taleemat not found")
		}

		log.Error().Err(err).Uint64("taleemat_id", id).Msg("Failed to load taleemat")

		return handler.ServerError(c)
	}

	return c.JSON(fiber.Map{"data": record})
}

// Create creates a taleemat item. New items start unpublished.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, "English title is required")
	}

	record := models.Taleemat{
		TitleEn:  req.TitleEn,
		TitleUr:  req.TitleUr,
		Category: req.Category,
		AudioURL: req.AudioURL,
	}

	if err := s.db.Create(&record).Error; err != nil {
		log.Error().Err(err).Msg("Failed to create taleemat")
		return handler.ServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": record})
}

// Update updates a taleemat item without touching its publish state.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid taleemat id")
	}

	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, "English title is required")
	}

	record, err := s.load(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.NotFound(c, "Taleemat not found")
		}

		log.Error().Err(err).Uint64("taleemat_id", id).Msg("Failed to load taleemat")

		return handler.ServerError(c)
	}

	record.TitleEn = req.TitleEn
	record.TitleUr = req.TitleUr
	record.Category = req.Category
	record.AudioURL = req.AudioURL

	if err := s.db.Save(record).Error; err != nil {
		log.Error().Err(err).Uint64("taleemat_id", id).Msg("Failed to update taleemat")
		return handler.ServerError(c)
	}

	return c.JSON(fiber.Map{"data": record})
}

// Publish makes a taleemat item visible on the public site.
func (s *Service) Publish(c *fiber.Ctx) error {
	return s.setPublished(c, true)
}

// Unpublish hides a taleemat item from the public site.
func (s *Service) Unpublish(c *fiber.Ctx) error {
	return s.setPublished(c, false)
}

// Delete deletes a taleemat item.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid taleemat id")
	}

	result := s.db.Delete(&models.Taleemat{}, id)
	if result.Error != nil {
		log.Error().Err(result.Error).Uint64("taleemat_id", id).Msg("Failed to delete taleemat")
		return handler.ServerError(c)
	}

	if result.RowsAffected == 0 {
		return handler.NotFound(c, "Taleemat not found")
	}

	return handler.Message(c, fiber.StatusOK, "Taleemat deleted")
}

func (s *Service) setPublished(c *fiber.Ctx, published bool) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid taleemat id")
	}

	record, err := s.load(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.NotFound(c, "Taleemat not found")
		}

		log.Error().Err(err).Uint64("taleemat_id", id).Msg("Failed to load taleemat")

		return handler.ServerError(c)
	}

	record.Published = published
	if published {
		now := time.Now().UTC()
		record.PublishedAt = &now
	} else {
		record.PublishedAt = nil
	}

	if err := s.db.Save(record).Error; err != nil {
		log.Error().Err(err).Uint64("taleemat_id", id).Msg("Failed to change publish state")
		return handler.ServerError(c)
	}

	return c.JSON(fiber.Map{"data": record})
}

func (s *Service) load(id uint64) (*models.Taleemat, error) {
	var record models.Taleemat
	if err := s.db.First(&record, id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}
