// Package logout provides the endpoint that revokes the caller's bearer token.
package logout

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/silsila-idreesia/portal/internal/auth"
	"github.com/silsila-idreesia/portal/internal/config"
	"github.com/silsila-idreesia/portal/internal/web/handler"
)

// Path is the logout endpoint path.
const Path = handler.APIPath + "/logout"

// Service is the logout handler service.
type Service struct {
	handler.Service
	cfg    *config.Config
	issuer *auth.TokenIssuer
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler. The route must be registered behind
// the authentication middleware.
func (s *Service) Init(router fiber.Router, cfg *config.Config, issuer *auth.TokenIssuer) {
	if router == nil || cfg == nil || issuer == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.issuer = issuer

	router.Post(Path, s.Post)
}

// Post revokes the presented token. Revoking an already revoked token
// still reports success.
func (s *Service) Post(c *fiber.Ctx) error {
	token, _ := c.Locals("token").(string)
	if token != "" {
		if err := s.issuer.Revoke(token); err != nil {
			log.Error().Err(err).Msg("Failed to revoke token")
			return handler.ServerError(c)
		}
	}

	return handler.Message(c, fiber.StatusOK, "Logged out")
}
