package oidc

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/silsila-idreesia/portal/internal/auth"
	"github.com/silsila-idreesia/portal/internal/config"
	"github.com/silsila-idreesia/portal/internal/web/handler"
)

const (
	// LoginPath is the path to initiate OIDC login.
	LoginPath = handler.APIPath + "/auth/oidc/login"

	// CallbackPath is the path for the OIDC callback.
	CallbackPath = handler.APIPath + "/auth/oidc/callback"

	// stateTTL bounds how long an issued state token stays valid.
	stateTTL = 10 * time.Minute
)

// Service is the OIDC handler service.
type Service struct {
	handler.Service
	cfg      *config.Config
	db       *gorm.DB
	provider *auth.OIDCProvider
	issuer   *auth.TokenIssuer

	mu         sync.Mutex
	stateStore map[string]time.Time
}

// Handler is the OIDC handler.
var Handler = Service{
	stateStore: make(map[string]time.Time),
}

// Init initializes the OIDC handler. When OIDC is disabled the routes
// still exist and answer 404 so the client can probe availability.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, issuer *auth.TokenIssuer) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.cfg = cfg
	s.db = db
	s.issuer = issuer

	if cfg.Auth.OIDC.Enabled {
		oidcConfig := auth.OIDCConfig{
			Enabled:      cfg.Auth.OIDC.Enabled,
			ProviderURL:  cfg.Auth.OIDC.ProviderURL,
			ClientID:     cfg.Auth.OIDC.ClientID,
			ClientSecret: cfg.Auth.OIDC.ClientSecret,
			RedirectURL:  cfg.Auth.OIDC.RedirectURL,
			Scopes:       cfg.Auth.OIDC.Scopes,
			RolesClaim:   cfg.Auth.OIDC.RolesClaim,
		}

		provider, err := auth.NewOIDCProvider(context.Background(), &oidcConfig, db)
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize OIDC provider, SSO disabled")
		} else {
			s.provider = provider
		}
	}

	app.Get(LoginPath, s.Login)
	app.Get(CallbackPath, s.Callback)
}

// Login starts the OIDC flow by redirecting to the provider.
func (s *Service) Login(c *fiber.Ctx) error {
	if s.provider == nil {
		return handler.NotFound(c, "Single sign-on is not enabled")
	}

	state, err := auth.GenerateStateToken()
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate OIDC state")
		return handler.ServerError(c)
	}

	s.rememberState(state)

	return c.Redirect(s.provider.GetAuthURL(state))
}

// Callback finishes the OIDC flow: it validates state, exchanges the code,
// maps the token roles onto portal roles and answers with a bearer token.
func (s *Service) Callback(c *fiber.Ctx) error {
	if s.provider == nil {
		return handler.NotFound(c, "Single sign-on is not enabled")
	}

	state := c.Query("state")
	if !s.consumeState(state) {
		return handler.BadRequest(c, "Invalid or expired state")
	}

	code := c.Query("code")
	if code == "" {
		return handler.BadRequest(c, "Missing authorization code")
	}

	user, roles, err := s.provider.HandleCallback(c.Context(), code)
	if err != nil {
		log.Error().Err(err).Msg("OIDC callback failed")
		return handler.Message(c, fiber.StatusUnauthorized, "Single sign-on failed")
	}

	if !user.Active {
		return handler.Message(c, fiber.StatusForbidden, "Account is disabled")
	}

	if err := s.provider.SyncRoles(user, roles); err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("Failed to sync OIDC roles")
		return handler.ServerError(c)
	}

	token, err := s.issuer.Issue(user, false)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("Failed to issue token")
		return handler.ServerError(c)
	}

	return c.JSON(fiber.Map{
		"message": "Logged in",
		"token":   token,
		"user":    user,
	})
}

func (s *Service) rememberState(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, issued := range s.stateStore {
		if now.Sub(issued) > stateTTL {
			delete(s.stateStore, key)
		}
	}

	s.stateStore[state] = now
}

func (s *Service) consumeState(state string) bool {
	if state == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	issued, ok := s.stateStore[state]
	delete(s.stateStore, state)

	return ok && time.Since(issued) <= stateTTL
}
