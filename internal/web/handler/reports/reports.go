// Package reports provides the mehfil report collection endpoints.
package reports

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

// Path is the base path of the mehfil report collection.
const Path = handler.APIPath + "/reports"

// Request is the create/update payload for a mehfil report.
type Request struct {
	ReportDate        string `json:"report_date"         validate:"required"`
	KarkunsPresent    int    `json:"karkuns_present"     validate:"min=0"`
	MehfilsHeld       int    `json:"mehfils_held"        validate:"min=0"`
	NewEhadCount      int    `json:"new_ehad_count"      validate:"min=0"`
	RemarksEn         string `json:"remarks_en"          validate:"max=1000"`
	RemarksUr         string `json:"remarks_ur"          validate:"max=1000"`
	ZoneID            uint64 `json:"zone_id"             validate:"required"`
	MehfilDirectoryID uint64 `json:"mehfil_directory_id" validate:"required"`
}

// Service provides CRUD operations for mehfil reports.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
	spec      resource.ListSpec[models.MehfilReport]
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
	s.spec = resource.ListSpec[models.MehfilReport]{
		Searchable:  []string{"remarks_en", "remarks_ur"},
		Sortable:    map[string]string{"report_date": "report_date", "created_at": "created_at"},
		DefaultSort: "report_date",
		Filterable: map[string]string{
			"zone_id":             "zone_id",
			"mehfil_directory_id": "mehfil_directory_id",
		},
		Preloads: []string{"Zone", "MehfilDirectory"},
	}

	router.Get(Path, auth.RequirePermission(auth.PermViewReports), s.List)
	router.Get(Path+"/:id", auth.RequirePermission(auth.PermViewReports), s.Get)
	router.Post(Path, auth.RequirePermission(auth.PermManageReports), s.Create)
	router.Put(Path+"/:id", auth.RequirePermission(auth.PermManageReports), s.Update)
	router.Delete(Path+"/:id", auth.RequirePermission(auth.PermManageReports), s.Delete)
}

// List returns a page of mehfil reports.
func (s *Service) List(c *fiber.Ctx) error {
	env, err := s.spec.List(s.db, handler.ListParams(c))
	if err != nil {
		log.Error().Err(err).Msg("Failed to list reports")
		return handler.ServerError(c)
	}

	return c.JSON(env)
}

// Get returns a single mehfil report.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid report id")
	}

	var record models.MehfilReport

	err = s.db.Preload("Zone").Preload("MehfilDirectory").First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.NotFound(c, "Report not found")
		}

		log.Error().Err(err).Uint64("report_id", id).Msg("Failed to load report")

		return handler.ServerError(c)
	}

	return c.JSON(fiber.Map{"data": record})
}

// Create creates a mehfil report. The mehfil must belong to the zone.
func (s *Service) Create(c *fiber.Ctx) error {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, "Report date, zone and mehfil are required")
	}

	reportDate, err := time.Parse("2006-01-02", req.ReportDate)
	if err != nil {
		return handler.ValidationError(c, "Report date must be YYYY-MM-DD")
	}

	if err := s.checkMehfil(req); err != nil {
		return handler.ValidationError(c, "Mehfil does not belong to the selected zone")
	}

	record := models.MehfilReport{
		ReportDate:        reportDate,
		KarkunsPresent:    req.KarkunsPresent,
		MehfilsHeld:       req.MehfilsHeld,
		NewEhadCount:      req.NewEhadCount,
		RemarksEn:         req.RemarksEn,
		RemarksUr:         req.RemarksUr,
		ZoneID:            req.ZoneID,
		MehfilDirectoryID: req.MehfilDirectoryID,
	}

	if err := s.db.Create(&record).Error; err != nil {
		log.Error().Err(err).Msg("Failed to create report")
		return handler.ServerError(c)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": record})
}

// Update updates a mehfil report.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid report id")
	}

	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, "Report date, zone and mehfil are required")
	}

	reportDate, err := time.Parse("2006-01-02", req.ReportDate)
	if err != nil {
		return handler.ValidationError(c, "Report date must be YYYY-MM-DD")
	}

	var record models.MehfilReport

	err = s.db.First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return handler.NotFound(c, "Report not found")
		}

		log.Error().Err(err).Uint64("report_id", id).Msg("Failed to load report")

		return handler.ServerError(c)
	}

	if err := s.checkMehfil(req); err != nil {
		return handler.ValidationError(c, "Mehfil does not belong to the selected zone")
	}

	record.ReportDate = reportDate
	record.KarkunsPresent = req.KarkunsPresent
	record.MehfilsHeld = req.MehfilsHeld
	record.NewEhadCount = req.NewEhadCount
	record.RemarksEn = req.RemarksEn
	record.RemarksUr = req.RemarksUr
	record.ZoneID = req.ZoneID
	record.MehfilDirectoryID = req.MehfilDirectoryID

	if err := s.db.Save(&record).Error; err != nil {
		log.Error().Err(err).Uint64("report_id", id).Msg("Failed to update report")
		return handler.ServerError(c)
	}

	return c.JSON(fiber.Map{"data": record})
}

// Delete deletes a mehfil report.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := handler.ParamID(c)
	if err != nil {
		return handler.BadRequest(c, "Invalid report id")
	}

	result := s.db.Delete(&models.MehfilReport{}, id)
	if result.Error != nil {
		log.Error().Err(result.Error).Uint64("report_id", id).Msg("Failed to delete report")
		return handler.ServerError(c)
	}

	if result.RowsAffected == 0 {
		return handler.NotFound(c, "Report not found")
	}

	return handler.Message(c, fiber.StatusOK, "Report deleted")
}

func (s *Service) checkMehfil(req *Request) error {
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
