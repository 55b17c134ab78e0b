// Package dashboard provides the summary counters shown on the admin landing page.
package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/silsila-idreesia/portal/authz"
	"github.com/silsila-idreesia/portal/internal/auth"
	"github.com/silsila-idreesia/portal/internal/config"
	"github.com/silsila-idreesia/portal/internal/db/models"
	"github.com/silsila-idreesia/portal/internal/web/handler"
	"github.com/silsila-idreesia/portal/internal/web/navigation"
)

// Path is the dashboard endpoint path.
const Path = handler.APIPath + "/dashboard"

// Counts are the per collection record counts.
type Counts struct {
	Zones     int64 `json:"zones"`
	Mehfils   int64 `json:"mehfils"`
	Karkuns   int64 `json:"karkuns"`
	Ehads     int64 `json:"ehads"`
	Tabarukat int64 `json:"tabarukats"`
	Reports   int64 `json:"reports"`
	Taleemat  int64 `json:"taleemats"`
}

// Data is the dashboard payload: counters plus the menu entries visible
// to the caller.
type Data struct {
	Counts Counts             `json:"counts"`
	Menu   []navigation.Entry `json:"menu"`
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the dashboard handler.
var Handler = Service{}

// Init registers the dashboard route behind the authentication middleware.
// Any authenticated user may load it; the counters only cover collections
// the user could also list.
func (s *Service) Init(router fiber.Router, cfg *config.Config, db *gorm.DB) {
	if router == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db

	router.Get(Path, s.Get)
}

// Get returns the dashboard summary.
func (s *Service) Get(c *fiber.Ctx) error {
	user := auth.CurrentUser(c)
	if user == nil {
		return handler.Message(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var (
		counts Counts
		err    error
	)

	type counter struct {
		permission string
		model      interface{}
		target     *int64
	}

	counters := []counter{
		{auth.PermViewZones, &models.Zone{}, &counts.Zones},
		{auth.PermViewMehfils, &models.MehfilDirectory{}, &counts.Mehfils},
		{auth.PermViewKarkuns, &models.Karkun{}, &counts.Karkuns},
		{auth.PermViewEhads, &models.NewEhad{}, &counts.Ehads},
		{auth.PermViewTabarukats, &models.Tabarukat{}, &counts.Tabarukat},
		{auth.PermViewReports, &models.MehfilReport{}, &counts.Reports},
		{auth.PermViewTaleemat, &models.Taleemat{}, &counts.Taleemat},
	}

	for _, cnt := range counters {
		if !authz.HasPermission(user, cnt.permission) {
			continue
		}

		if err = s.db.Model(cnt.model).Count(cnt.target).Error; err != nil {
			log.Error().Err(err).Msg("Failed to count records for dashboard")
			return handler.ServerError(c)
		}
	}

	return c.JSON(fiber.Map{"data": Data{
		Counts: counts,
		Menu:   navigation.Filter(user),
	}})
}
