package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/silsila-idreesia/portal/authz"
	"github.com/silsila-idreesia/portal/internal/db/models"
)

const localsUserKey = "user"

// Authenticate creates Fiber middleware that authenticates requests with a
// Bearer token. The verified user is loaded with roles and permissions and
// stored in the request locals for downstream permission checks.
func Authenticate(issuer *TokenIssuer, authService *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c)
		if token == "" {
			return unauthorized(c)
		}

		userID, err := issuer.Verify(token)
		if err != nil {
			log.Debug().Err(err).Msg("Rejected bearer token")
			return unauthorized(c)
		}

		user, err := authService.LoadUser(userID)
		if err != nil {
			log.Error().Err(err).Uint64("user_id", userID).Msg("Failed to load token user")
			return unauthorized(c)
		}

		if !user.Active {
			return unauthorized(c)
		}

		c.Locals(localsUserKey, user)
		c.Locals("token", token)

		return c.Next()
	}
}

// CurrentUser returns the authenticated user stored by Authenticate, or nil
// when the request carries no valid user.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, ok := c.Locals(localsUserKey).(*models.User)
	if !ok {
		return nil
	}

	return user
}

// RequirePermission creates Fiber middleware that requires a specific permission.
// Requests without an authenticated user fail closed.
func RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthorized(c)
		}

		if !authz.HasPermission(user, permission) {
			log.Warn().Uint64("user_id", user.ID).Str("permission", permission).
				Msg("User lacks required permission")

			return forbidden(c)
		}

		return c.Next()
	}
}

// RequireAnyPermission creates Fiber middleware that requires at least one of
// the given permissions.
func RequireAnyPermission(permissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthorized(c)
		}

		if !authz.HasPermission(user, permissions...) {
			log.Warn().Uint64("user_id", user.ID).Strs("permissions", permissions).
				Msg("User lacks required permissions")

			return forbidden(c)
		}

		return c.Next()
	}
}

// RequireAllPermissions creates Fiber middleware that requires all the given permissions.
func RequireAllPermissions(permissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthorized(c)
		}

		if !authz.HasAllPermissions(user, permissions) {
			log.Warn().Uint64("user_id", user.ID).Strs("permissions", permissions).
				Msg("User lacks required permissions")

			return forbidden(c)
		}

		return c.Next()
	}
}

// RequireSuperAdmin creates Fiber middleware that only admits super administrators.
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return unauthorized(c)
		}

		if !authz.IsSuperAdmin(user) {
			return forbidden(c)
		}

		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)

	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}

	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Unauthorized",
	})
}

func forbidden(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"message": "Forbidden",
	})
}
