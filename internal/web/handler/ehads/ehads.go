// Package ehads provides the new ehad collection endpoints.
package ehads

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

// Path is the base path of the new ehad collection.
const Path = handler.APIPath + "/ehads"

// Request is the create/update payload for a new ehad record.
type Request struct {
	NameEn            string `json:"name_en"             validate:"required,max=255"`
	NameUr            string `json:"name_ur"             validate:"max=255"`
	Phone             string `json:"phone"               validate:"max=50"`
	AddressEn         string `json:"address_en"          validate:"max=500"`
	AddressUr         string `json:"address_ur"          validate:"max=500"`
	EhadDate          string `json:"ehad_date"           validate:"required"`
	ZoneID            uint64 `json:"zone_id"             validate:"required"`
	MehfilDirectoryID uint64 `json:"mehfil_directory_id"`
}

// Service provides CRUD operations for new ehad records.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
	spec      resource.ListSpec[models.NewEhad]
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
	s.spec = resource.ListSpec[models.NewEhad]{
		Searchable:  []string{"name_en", "name_ur", "phone"},
		Sortable:    map[string]string{"name": "name_en", "ehad_date": "ehad_date", "created_at": "created_at"},
		DefaultSort: "ehad_date",
		Filterable: map[string]string{
			"zone_id":             "zone_id",
			"mehfil_directory_id": "mehfil_directory_id",
		},
		Preloads: []string{"Zone", "MehfilDirectory"},
	}

	router.Get(Path, auth.RequirePermission(auth.PermViewEhads), s.List)
	router.Get(Path+"/:id", auth.RequirePermission(auth.PermViewEhads), s.Get)
	router.Post(Path, auth.RequirePermission(auth.PermManageEhads), s.Create)
	router.Put(Path+"/:id", auth.RequirePermission(auth.PermManageEhads), s.Update)
	router.Delete(Path+"/:id", auth.RequirePermission(auth.PermManageEhads), s.Delete)
}

// List returns a page of new ehad records.
func (s *Service) List(c *fiber.Ctx) error {
	env, err := s.spec.List(s.db, handler.ListParams(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list ehads")
		return handler.ServerError(c)
	}

	return c.JSON(env)
}

// Get returns a single new ehad record.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid ehad id")
	}

	var record models.NewEhad

	err = s.db.Preload("Zone").Preload("MehfilDirectory").First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.NotFound(c, "Ehad record not found")
		}

		log.Error().Err(err).Uint64("ehad_id", id).Msg("Failed to load ehad record")

		return handler.ServerError(c)
	}

	return c.JSON(fiber.Map{"data": record})
}

// Create creates a new ehad record.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, "English name, ehad date and zone are required")
	}

	ehadDate, err := time.Parse("2006-01-02", req.EhadDate)
	if err != nil {
		return handler.ValidationError(c, "Ehad date must be YYYY-MM-DD")
	}

	record := models.NewEhad{
		NameEn:            req.NameEn,
		NameUr:            req.NameUr,
		Phone:             req.Phone,
		AddressEn:         req.AddressEn,
		AddressUr:         req.AddressUr,
		EhadDate:          ehadDate,
		ZoneID:            req.ZoneID,
		MehfilDirectoryID: req.MehfilDirectoryID,
	}

	if err := s.db.Create(&record).Error; err != nil {
		log.Error().Err(err).Msg("Failed to create ehad record")
		return handler.ServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": record})
}

// Update updates a new ehad record.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid ehad id")
	}

	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, "English name, ehad date and zone are required")
	}

	ehadDate, err := time.Parse("2006-01-02", req.EhadDate)
	if err != nil {
		return handler.ValidationError(c, "Ehad date must be YYYY-MM-DD")
	}

	var record models.NewEhad

	err = s.db.First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.NotFound(c, "Ehad record not found")
		}

		log.Error().Err(err).Uint64("ehad_id", id).Msg("Failed to load ehad record")

		return handler.ServerError(c)
	}

	record.NameEn = req.NameEn
	record.NameUr = req.NameUr
	record.Phone = req.Phone
	record.AddressEn = req.AddressEn
	record.AddressUr = req.AddressUr
	record.EhadDate = ehadDate
	record.ZoneID = req.ZoneID
	record.MehfilDirectoryID = req.MehfilDirectoryID

	if err := s.db.Save(&record).Error; err != nil {
		log.Error().Err(err).Uint64("ehad_id", id).Msg("Failed to update ehad record")
		return handler.ServerError(c)
	}

	return c.JSON(fiber.Map{"data": record})
}

// Delete deletes a new ehad record.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid ehad id")
	}

	result := s.db.Delete(&models.NewEhad{}, id)
	if result.Error != nil {
		log.Error().Err(result.Error).Uint64("ehad_id", id).Msg("Failed to delete ehad record")
		return handler.ServerError(c)
	}

	if result.RowsAffected == 0 {
		return handler.NotFound(c, "Ehad record not found")
	}

	return handler.Message(c, fiber.StatusOK, "Ehad record deleted")
}
