// Package public serves the bilingual public pages: the mehfil directory,
// published taleemat and tabarukat highlights, in English and Urdu.
package public

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/silsila-idreesia/portal/internal/config"
	"github.com/silsila-idreesia/portal/internal/db/models"
	"github.com/silsila-idreesia/portal/internal/web/handler"
)

const (
	// PathEn is the English home page.
	PathEn = "/"
	// PathUr is the Urdu home page.
	PathUr = "/ur"

	// TemplateName is the shared home template.
	TemplateName = "public/home"

	// highlightCount bounds each public section.
	highlightCount = 12
)

// labels are the static strings of one language rendition.
type labels struct {
	Mehfils   string
	Taleemat  string
	Tabarukat string
	Empty     string
}

var (
	labelsEn = labels{
		Mehfils:   "Mehfil Directory",
		Taleemat:  "Taleemat",
		Tabarukat: "Tabarukat",
		Empty:     "Nothing here yet",
	}
	labelsUr = labels{
		Mehfils:   "محفل ڈائریکٹری",
		Taleemat:  "تعلیمات",
		Tabarukat: "تبرکات",
		Empty:     "ابھی کچھ موجود نہیں",
	}
)

// Service is the public site handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Handler is the public site handler.
var Handler = Service{}

// Init registers the public routes. They sit outside the authentication
// middleware on purpose.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db

	app.Get(PathEn, s.English)
	app.Get(PathUr, s.Urdu)
}

// English renders the English home page.
func (s *Service) English(c *fiber.Ctx) error {
	return s.render(c, "en")
}

// Urdu renders the Urdu home page.
func (s *Service) Urdu(c *fiber.Ctx) error {
	return s.render(c, "ur")
}

func (s *Service) render(c *fiber.Ctx, lang string) error {
	var (
		mehfils   []models.MehfilDirectory
		taleemat  []models.Taleemat
		tabarukat []models.Tabarukat
	)

	if err := s.db.Order("name_en asc").Limit(highlightCount).Find(&mehfils).Error; err != nil {
		log.Error().Err(err).Msg("Failed to load public mehfils")
		return handler.ServerError(c)
	}

	// only published lessons are ever shown publicly
	err := s.db.Where("published = ?", true).
		Order("published_at desc").
		Limit(highlightCount).
		Find(&taleemat).Error
	if err != nil {
		log.Error().Err(err).Msg("Failed to load public taleemat")
		return handler.ServerError(c)
	}

	if err := s.db.Order("created_at desc").Limit(highlightCount).Find(&tabarukat).Error; err != nil {
		log.Error().Err(err).Msg("Failed to load public tabarukat")
		return handler.ServerError(c)
	}

	title := s.cfg.Title
	pageLabels := labelsEn
	dir := "ltr"

	if lang == "ur" {
		pageLabels = labelsUr
		dir = "rtl"
	}

	return c.Render(TemplateName, fiber.Map{
		"Lang":      lang,
		"Dir":       dir,
		"Title":     title,
		"Labels":    pageLabels,
		"Mehfils":   localizeMehfils(mehfils, lang),
		"Taleemat":  localizeTaleemat(taleemat, lang),
		"Tabarukat": localizeTabarukat(tabarukat, lang),
	}, "layouts/base")
}

// pick returns the Urdu value when requested and present, the English
// value otherwise.
func pick(lang, en, ur string) string {
	if lang == "ur" && ur != "" {
		return ur
	}

	return en
}

func localizeMehfils(items []models.MehfilDirectory, lang string) []fiber.Map {
	out := make([]fiber.Map, 0, len(items))
	for _, item := range items {
		out = append(out, fiber.Map{
			"name":    pick(lang, item.NameEn, item.NameUr),
			"address": pick(lang, item.AddressEn, item.AddressUr),
			"timing":  item.Timing,
		})
	}

	return out
}

func localizeTaleemat(items []models.Taleemat, lang string) []fiber.Map {
	out := make([]fiber.Map, 0, len(items))
	for _, item := range items {
		out = append(out, fiber.Map{
			"title":     pick(lang, item.TitleEn, item.TitleUr),
			"category":  item.Category,
			"audio_url": item.AudioURL,
		})
	}

	return out
}

func localizeTabarukat(items []models.Tabarukat, lang string) []fiber.Map {
	out := make([]fiber.Map, 0, len(items))
	for _, item := range items {
		out = append(out, fiber.Map{
			"title":     pick(lang, item.TitleEn, item.TitleUr),
			"detail":    pick(lang, item.DetailEn, item.DetailUr),
			"image_url": item.ImageURL,
		})
	}

	return out
}
