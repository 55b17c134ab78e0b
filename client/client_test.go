package client_test

import (
	"context"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/silsila-idreesia/portal/client"
	"github.com/silsila-idreesia/portal/internal/auth"
	"github.com/silsila-idreesia/portal/internal/config"
	"github.com/silsila-idreesia/portal/internal/db/models"
	"github.com/silsila-idreesia/portal/internal/web/handler"
	"github.com/silsila-idreesia/portal/internal/web/handler/login"
	"github.com/silsila-idreesia/portal/internal/web/handler/logout"
	"github.com/silsila-idreesia/portal/internal/web/handler/zones"
	"github.com/silsila-idreesia/portal/listing"
)

// startServer runs the login and zone endpoints behind the real
// authentication middleware on an httptest server, returning its base URL.
func startServer(t *testing.T) string {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Role{}, &models.Permission{},
		&models.RolePermission{}, &models.UserRole{},
		&models.Zone{}, &models.MehfilDirectory{},
	))

	admin := models.User{
		Active:       true,
		IsSuperAdmin: true,
		Name:         "Admin",
		Email:        "admin@example.com",
		Password:     models.HashPassword("changeme"),
		AuthSource:   models.AuthSourceLocal,
	}
	require.NoError(t, db.Create(&admin).Error)

	cfg := &config.Config{
		Auth: config.Auth{
			TokenSecret: "test-secret",
			Token:       config.Token{ExpiryTime: time.Hour},
		},
	}

	issuer := auth.NewTokenIssuer(cfg.Auth, auth.NewMemoryStore())
	authService := auth.NewService(db)

	app := fiber.New()
	require.NoError(t, login.Handler.Init(app, cfg, db, issuer))
	app.Use(handler.APIPath, auth.Authenticate(issuer, authService))
	logout.Handler.Init(app, cfg, issuer)
	zones.Handler.Init(app, cfg, db)

	server := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(server.Close)

	return server.URL
}

func loginAdmin(t *testing.T, c *client.Client) {
	t.Helper()

	resp, err := c.Login(context.Background(), client.LoginRequest{
		Email:    "admin@example.com",
		Password: "changeme",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	require.Equal(t, resp.Token, c.Token())
}

type zoneRecord struct {
	ID      uint64 `json:"id"`
	TitleEn string `json:"title_en"`
	TitleUr string `json:"title_ur"`
	CityEn  string `json:"city_en"`
	CityUr  string `json:"city_ur"`
}

type zoneData struct {
	Data zoneRecord `json:"data"`
}

func TestCRUDRoundTrip(t *testing.T) {
	c := client.New(startServer(t))
	loginAdmin(t, c)

	ctx := context.Background()

	var created zoneData
	require.NoError(t, c.Post(ctx, "/api/zones", zones.Request{
		TitleEn: "Karachi Zone",
		TitleUr: "کراچی زون",
		CityEn:  "Karachi",
	}, &created))
	require.NotZero(t, created.Data.ID)

	path := fmt.Sprintf("/api/zones/%d", created.Data.ID)

	var fetched zoneData
	require.NoError(t, c.Get(ctx, path, &fetched))
	assert.Equal(t, "Karachi Zone", fetched.Data.TitleEn)
	assert.Equal(t, "کراچی زون", fetched.Data.TitleUr)

	var updated zoneData
	require.NoError(t, c.Put(ctx, path, zones.Request{
		TitleEn: "Karachi Zone",
		TitleUr: "کراچی زون",
		CityEn:  "Karachi",
		CityUr:  "کراچی",
	}, &updated))
	assert.Equal(t, "کراچی", updated.Data.CityUr)

	env, err := client.List[zoneRecord](ctx, c, "/api/zones", listing.Params{Page: 1})
	require.NoError(t, err)
	require.Len(t, env.Data, 1)
	assert.Equal(t, 1, env.Meta.Total)
	require.NotNil(t, env.Meta.From)
	assert.Equal(t, 1, *env.Meta.From)

	require.NoError(t, c.Delete(ctx, path))

	err = c.Get(ctx, path, &fetched)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "Zone not found", apiErr.Message)
}

func TestValidationErrorCarriesMessage(t *testing.T) {
	c := client.New(startServer(t))
	loginAdmin(t, c)

	err := c.Post(context.Background(), "/api/zones", zones.Request{TitleUr: "بلا عنوان"}, nil)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 422, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}

func TestUnauthorizedClearsTokenAndNotifies(t *testing.T) {
	c := client.New(startServer(t))
	c.SetToken("not-a-valid-token")

	notified := false
	c.OnUnauthorized = func() { notified = true }

	err := c.Get(context.Background(), "/api/zones/1", nil)

	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.True(t, notified)
	assert.Empty(t, c.Token())
}

func TestLoginFailureDoesNotNotifyUnauthorized(t *testing.T) {
	c := client.New(startServer(t))

	notified := false
	c.OnUnauthorized = func() { notified = true }

	_, err := c.Login(context.Background(), client.LoginRequest{
		Email:    "admin@example.com",
		Password: "wrong",
	})

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
	assert.False(t, notified, "a failed login is not a session loss")
}

func TestLoginLimiterBlocksBeforeNetwork(t *testing.T) {
	c := client.New(startServer(t))
	c.Limiter = client.NewRateLimiter()

	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := c.Login(ctx, client.LoginRequest{
			Email:    "admin@example.com",
			Password: "wrong",
		})
		require.Error(t, err)
		require.NotErrorIs(t, err, client.ErrRateLimited)
	}

	// Even the right password is refused locally once the key is blocked.
	_, err := c.Login(ctx, client.LoginRequest{
		Email:    "admin@example.com",
		Password: "changeme",
	})
	require.ErrorIs(t, err, client.ErrRateLimited)

	// Another account on the same host is unaffected.
	_, err = c.Login(ctx, client.LoginRequest{
		Email:    "other@example.com",
		Password: "wrong",
	})
	require.Error(t, err)
	assert.False(t, errors.Is(err, client.ErrRateLimited))
}

func TestLogoutRevokesToken(t *testing.T) {
	c := client.New(startServer(t))
	loginAdmin(t, c)

	ctx := context.Background()
	token := c.Token()

	require.NoError(t, c.Get(ctx, "/api/zones", nil))
	require.NoError(t, c.Logout(ctx))
	assert.Empty(t, c.Token())

	// The revoked token no longer authenticates.
	c.SetToken(token)
	err := c.Get(ctx, "/api/zones", nil)
	require.ErrorIs(t, err, client.ErrUnauthorized)
}
