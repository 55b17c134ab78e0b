// Package karkuns provides the karkun collection endpoints.
package karkuns

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

// Path is the base path of the karkun collection.
const Path = handler.APIPath + "/karkuns"

// Request is the create/update payload for a karkun.
type Request struct {
	NameEn            string `json:"name_en"             validate:"required,max=255"`
	NameUr            string `json:"name_ur"             validate:"max=255"`
	Phone             string `json:"phone"               validate:"max=50"`
	Email             string `json:"email"               validate:"omitempty,email"`
	AddressEn         string `json:"address_en"          validate:"max=500"`
	AddressUr         string `json:"address_ur"          validate:"max=500"`
	DutyEn            string `json:"duty_en"             validate:"max=255"`
	DutyUr            string `json:"duty_ur"             validate:"max=255"`
	ZoneID            uint64 `json:"zone_id"             validate:"required"`
	MehfilDirectoryID uint64 `json:"mehfil_directory_id"`
}

// Service provides CRUD operations for karkuns.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
	spec      resource.ListSpec[models.Karkun]
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
	s.spec = resource.ListSpec[models.Karkun]{
		Searchable:  []string{"name_en", "name_ur", "phone", "email", "duty_en"},
		Sortable:    map[string]string{"name": "name_en", "duty": "duty_en", "created_at": "created_at"},
		DefaultSort: "name",
		Filterable: map[string]string{
			"zone_id":             "zone_id",
			"mehfil_directory_id": "mehfil_directory_id",
		},
		Preloads: []string{"Zone", "MehfilDirectory"},
	}

	router.Get(Path, auth.RequirePermission(auth.PermViewKarkuns), s.List)
	router.Get(Path+"/:id", auth.RequirePermission(auth.PermViewKarkuns), s.Get)
	router.Post(Path, auth.RequirePermission(auth.PermManageKarkuns), s.Create)
	router.Put(Path+"/:id", auth.RequirePermission(auth.PermManageKarkuns), s.Update)
	router.Delete(Path+"/:id", auth.RequirePermission(auth.PermManageKarkuns), s.Delete)
}

// List returns a page of karkuns.
func (s *Service) List(c *fiber.Ctx) error {
	env, err := s.spec.List(s.db, handler.ListParams(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list karkuns")
		return handler.ServerError(c)
	}

	return c.JSON(env)
}

// Get returns a single karkun.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid karkun id")
	}

	var record models.Karkun

	err = s.db.Preload("Zone").Preload("MehfilDirectory").First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.NotFound(c, "Karkun not found")
		}

		log.Error().Err(err).Uint64("karkun_id", id).Msg("Failed to load karkun")

		return handler.ServerError(c)
	}

	return c.JSON(fiber.Map{"data": record})
}

// Create creates a karkun. When a mehfil is given it must belong to the
// given zone, mirroring the cascaded selection on the form.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, "English name and zone are required")
	}

	if err := s.checkMehfil(req); err != nil {
		return handler.ValidationError(c, "Mehfil does not belong to the selected zone")
	}

	record := models.Karkun{
		NameEn:            req.NameEn,
		NameUr:            req.NameUr,
		Phone:             req.Phone,
		Email:             req.Email,
		AddressEn:         req.AddressEn,
		AddressUr:         req.AddressUr,
		DutyEn:            req.DutyEn,
		DutyUr:            req.DutyUr,
		ZoneID:            req.ZoneID,
		MehfilDirectoryID: req.MehfilDirectoryID,
	}

	if err := s.db.Create(&record).Error; err != nil {
		log.Error().Err(err).Msg("Failed to create karkun")
		return handler.ServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": record})
}

// Update updates a karkun.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid karkun id")
	}

	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, "English name and zone are required")
	}

	var record models.Karkun

	err = s.db.First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.NotFound(c, "Karkun not found")
		}

		log.Error().Err(err).Uint64("karkun_id", id).Msg("Failed to load karkun")

		return handler.ServerError(c)
	}

	if err := s.checkMehfil(req); err != nil {
		return handler.ValidationError(c, "Mehfil does not belong to the selected zone")
	}

	record.NameEn = req.NameEn
	record.NameUr = req.NameUr
	record.Phone = req.Phone
	record.Email = req.Email
	record.AddressEn = req.AddressEn
	record.AddressUr = req.AddressUr
	record.DutyEn = req.DutyEn
	record.DutyUr = req.DutyUr
	record.ZoneID = req.ZoneID
	record.MehfilDirectoryID = req.MehfilDirectoryID

	if err := s.db.Save(&record).Error; err != nil {
		log.Error().Err(err).Uint64("karkun_id", id).Msg("Failed to update karkun")
		return handler.ServerError(c)
	}

	return c.JSON(fiber.Map{"data": record})
}

// Delete deletes a karkun.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid karkun id")
	}

	result := s.db.Delete(&models.Karkun{}, id)
	if result.Error != nil {
		log.Error().Err(result.Error).Uint64("karkun_id", id).Msg("Failed to delete karkun")
		return handler.ServerError(c)
	}

	if result.RowsAffected == 0 {
		return handler.NotFound(c, "Karkun not found")
	}

	return handler.Message(c, fiber.StatusOK, "Karkun deleted")
}

// checkMehfil verifies the mehfil reference is consistent with the zone.
// A zero mehfil id means no mehfil assignment.
func (s *Service) checkMehfil(req *Request) error {
	if req.MehfilDirectoryID == 0 {
		return nil
	}

	var count int64
	err := s.db.Model(&models.MehfilDirectory{}).
		Where("id = ? AND zone_id = ?", req.MehfilDirectoryID, req.ZoneID).
		Count(&count).Error
	if err != nil {
		return err
	}

	if count == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
