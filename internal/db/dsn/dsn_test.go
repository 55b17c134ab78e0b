package dsn

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/silsila-idreesia/portal/internal/config"
)

func TestCreate(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      config.Config
		expected string
	}{
		{
			name: "sqlite plain path",
			cfg: config.Config{
				DB: config.DB{Driver: config.DriverSQLite, Path: "portal.sqlite"},
			},
			expected: "portal.sqlite",
		},
		{
			name: "sqlite with extras",
			cfg: config.Config{
				DB: config.DB{Driver: config.DriverSQLite, Path: "portal.sqlite", Extras: "_pragma=busy_timeout(5000)"},
			},
			expected: "portal.sqlite?_pragma=busy_timeout(5000)",
		},
		{
			name: "mysql",
			cfg: config.Config{
				DB: config.DB{
					Driver:   config.DriverMySQL,
					Host:     "db.local",
					Port:     3306,
					User:     "portal",
					Password: "secret",
					Name:     "portal",
					Extras:   "charset=utf8mb4&parseTime=True",
				},
			},
			expected: "portal:secret@tcp(db.local:3306)/portal?charset=utf8mb4&parseTime=True",
		},
		{
			name: "postgres",
			cfg: config.Config{
				DB: config.DB{
					Driver:   config.DriverPostgres,
					Host:     "db.local",
					Port:     5432,
					User:     "portal",
					Password: "secret",
					Name:     "portal",
					Extras:   "sslmode=disable",
				},
			},
			expected: "host=db.local port=5432 user=portal password=secret dbname=portal sslmode=disable",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Create(&tc.cfg))
		})
	}
}
