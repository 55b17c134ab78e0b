package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/storage"
	"github.com/gofiber/template/html/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/silsila-idreesia/portal/internal/auth"
	"github.com/silsila-idreesia/portal/internal/config"
	fiberlogger "github.com/silsila-idreesia/portal/internal/logger/adapter/fiber"
	"github.com/silsila-idreesia/portal/internal/web/handler"
	roleadmin "github.com/silsila-idreesia/portal/internal/web/handler/admin/role"
	useradmin "github.com/silsila-idreesia/portal/internal/web/handler/admin/user"
	oidchandler "github.com/silsila-idreesia/portal/internal/web/handler/auth/oidc"
	"github.com/silsila-idreesia/portal/internal/web/handler/dashboard"
	"github.com/silsila-idreesia/portal/internal/web/handler/ehads"
	"github.com/silsila-idreesia/portal/internal/web/handler/karkuns"
	"github.com/silsila-idreesia/portal/internal/web/handler/login"
	"github.com/silsila-idreesia/portal/internal/web/handler/logout"
	"github.com/silsila-idreesia/portal/internal/web/handler/me"
	"github.com/silsila-idreesia/portal/internal/web/handler/mehfils"
	"github.com/silsila-idreesia/portal/internal/web/handler/public"
	"github.com/silsila-idreesia/portal/internal/web/handler/reports"
	"github.com/silsila-idreesia/portal/internal/web/handler/tabarukat"
	"github.com/silsila-idreesia/portal/internal/web/handler/taleemat"
	"github.com/silsila-idreesia/portal/internal/web/handler/zones"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	authService  *auth.Service
	issuer       *auth.TokenIssuer
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of the portal.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	// Wait interrupt or shutdown request through /shutdown
	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// New creates a new web service with the given configuration. The token
// store backs bearer token revocation and is chosen by the caller to match
// the database driver.
func New(cfg *config.Config, db *gorm.DB, tokenStore storage.Storage) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	httpFS := http.FS(templateEmbedFS{embeddedTemplates})
	templateEngine := html.NewFileSystem(httpFS, ".gohtml")

	// in debug mode, use local filesystem for templates
	if cfg.DevMode {
		templateEngine = html.New("./internal/web/templates", ".gohtml")
		templateEngine.ShouldReload = true

		log.Warn().Msg("debug mode enabled: using local filesystem for templates")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			Views:          templateEngine,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New())
	}

	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: "/healthz",
	}))

	// serve embedded static files
	app.Use("/static",
		filesystem.New(
			filesystem.Config{
				Root:       http.FS(embeddedStaticFiles),
				PathPrefix: "static",
			},
		),
	)

	authService := auth.NewService(db)
	issuer := auth.NewTokenIssuer(cfg.Auth, tokenStore)

	service := &Service{
		cfg:         cfg,
		App:         app,
		db:          db,
		authService: authService,
		issuer:      issuer,
	}
	service.alive.Store(true)

	app.Get("/healthz", service.health)

	// routes open to everyone
	public.Handler.Init(app, cfg, db)
	oidchandler.Handler.Init(app, cfg, db, issuer)

	if err := login.Handler.Init(app, cfg, db, issuer); err != nil {
		log.Fatal().Err(err).Msg("failed to init login handler")
	}

	// every API route registered from here on requires a valid bearer
	// token; login and the OIDC flow stay in front of this middleware
	app.Use(handler.APIPath, auth.Authenticate(issuer, authService))

	logout.Handler.Init(app, cfg, issuer)
	me.Handler.Init(app, cfg, db)
	dashboard.Handler.Init(app, cfg, db)
	zones.Handler.Init(app, cfg, db)
	mehfils.Handler.Init(app, cfg, db)
	karkuns.Handler.Init(app, cfg, db)
	ehads.Handler.Init(app, cfg, db)
	tabarukat.Handler.Init(app, cfg, db)
	reports.Handler.Init(app, cfg, db)
	taleemat.Handler.Init(app, cfg, db)
	useradmin.Handler.Init(app, cfg, db, authService)
	roleadmin.Handler.Init(app, cfg, db, authService)

	return service
}

// health reports liveness; it flips to 503 during graceful shutdown so
// load balancers drain this instance.
func (s *Service) health(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "stopping"})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
