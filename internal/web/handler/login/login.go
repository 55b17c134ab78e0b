// Package login provides the JSON login endpoint that exchanges
// credentials for a bearer token.
package login

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
)

const (
	// Path is the login endpoint path.
	Path = handler.APIPath + "/login"
)

// Request is the login request payload.
type Request struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

// Response is the successful login payload. The user carries preloaded
// roles and permissions so the client can resolve authorization locally.
type Response struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
}

// Service is the login handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	provider  *auth.LocalProvider
	issuer    *auth.TokenIssuer
	limiter   *RateLimiter
	validator *validator.Validate
}

// Handler is the login handler.
var Handler = Service{}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, issuer *auth.TokenIssuer) error {
	if app == nil || cfg == nil || db == nil {
		return errors.New("app, cfg or db is nil")
	}

	s.db = db
	s.cfg = cfg
	s.provider = auth.NewLocalProvider(db)
	s.issuer = issuer
	s.limiter = NewRateLimiter()
	s.validator = validator.New()

	app.Post(Path, s.Post)

	return nil
}

// Post handles the login request.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(Request)
	if err := c.BodyParser(req); err != nil {
		return handler.BadRequest(c, "Invalid request body")
	}

	if err := s.validator.Struct(req); err != nil {
		return handler.ValidationError(c, "Email and password are required")
	}

	host := c.IP()

	if !s.limiter.Allowed(req.Email, host) {
		log.Warn().Str("email", req.Email).Str("host", host).
			Msg("Login attempts rate limited")

		return handler.Message(c, fiber.StatusTooManyRequests,
			"Too many failed login attempts, try again later")
	}

	user, err := s.provider.Authenticate(req.Email, req.Password)
	if err != nil {
		s.limiter.Failure(req.Email, host)

		switch {
		case errors.Is(err, auth.ErrUserAccountDisabled):
			return handler.Message(c, fiber.StatusForbidden, "Account is disabled")
		case errors.Is(err, auth.ErrInvalidCredentials):
			return handler.Message(c, fiber.StatusUnauthorized, "Invalid email or password")
		default:
			log.Error().Err(err).Str("email", req.Email).Msg("Login failed")
			return handler.ServerError(c)
		}
	}

	s.limiter.Success(req.Email, host)

	token, err := s.issuer.Issue(user, req.Remember)
	if err != nil {
		log.Error().Err(err).Uint64("user_id", user.ID).Msg("Failed to issue token")
		return handler.ServerError(c)
	}

	return c.JSON(Response{
		Message: "Logged in",
		Token:   token,
		User:    user,
	})
}
