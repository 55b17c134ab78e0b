// Package daemon wires the database, the token store and the web service
// together and runs them.
package daemon

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/storage"
	storagemysql "github.com/gofiber/storage/mysql/v2"
	storagepostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/silsila-idreesia/portal/internal/auth"
	"github.com/silsila-idreesia/portal/internal/config"
	"github.com/silsila-idreesia/portal/internal/db/dsn"
	"github.com/silsila-idreesia/portal/internal/db/models"
	"github.com/silsila-idreesia/portal/internal/web"
)

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the Daemon's web service and blocks until shutdown.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	go d.webService.WaitShutdown()

	return d.webService.Start(addr)
}

// New creates a new Daemon instance with the provided configuration.
func New(cfg *config.Config) *Daemon {
	if cfg == nil {
		log.Fatal().Msg("config is nil")
		return nil
	}

	db, err := gorm.Open(openDialector(cfg), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
		return nil
	}

	if err = db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		&models.UserRole{},
		&models.Zone{},
		&models.MehfilDirectory{},
		&models.Karkun{},
		&models.NewEhad{},
		&models.Tabarukat{},
		&models.MehfilReport{},
		&models.Taleemat{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
		return nil
	}

	seed(cfg, db)

	return &Daemon{
		cfg:        cfg,
		webService: web.New(cfg, db, tokenStore(cfg)),
	}
}

// openDialector picks the gorm driver matching the configured database.
func openDialector(cfg *config.Config) gorm.Dialector {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		return gormpostgres.Open(dsn.Create(cfg))
	case config.DriverMySQL:
		return gormmysql.Open(dsn.Create(cfg))
	default:
		return sqlite.Open(dsn.Create(cfg))
	}
}

// tokenStore picks the bearer token revocation store. The mysql and
// postgres deployments share the database so revocation survives restarts
// and spans instances; sqlite deployments use the in-process store.
func tokenStore(cfg *config.Config) storage.Storage {
	switch cfg.DB.Driver {
	case config.DriverMySQL:
		return storagemysql.New(storagemysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         "auth_tokens",
		})
	case config.DriverPostgres:
		return storagepostgres.New(storagepostgres.Config{
			ConnectionURI: postgresURI(cfg),
			Table:         "auth_tokens",
		})
	default:
		return auth.NewMemoryStore()
	}
}

// postgresURI builds the URI form the postgres storage driver expects.
func postgresURI(cfg *config.Config) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Host,
		cfg.DB.Port,
		cfg.DB.Name,
	)
}
