// Package dsn provides Data Source Name construction utilities for database connections.
package dsn

import (
	"fmt"

	"github.com/silsila-idreesia/portal/internal/config"
)

// Create builds the Data Source Name for the configured database driver.
func Create(cfg *config.Config) string {
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		if cfg.DB.Extras != "" {
			return fmt.Sprintf("%s?%s", cfg.DB.Path, cfg.DB.Extras)
		}

		return cfg.DB.Path
	case config.DriverPostgres:
		out := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s",
			cfg.DB.Host,
			cfg.DB.Port,
			cfg.DB.User,
			cfg.DB.Password,
			cfg.DB.Name,
		)
		if cfg.DB.Extras != "" {
			out += " " + cfg.DB.Extras
		}

		return out
	default: // mysql
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
			cfg.DB.User,
			cfg.DB.Password,
			cfg.DB.Host,
			cfg.DB.Port,
			cfg.DB.Name,
			cfg.DB.Extras,
		)
	}
}
