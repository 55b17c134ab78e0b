package config

// Database driver names accepted in db.driver.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// DB holds the database configuration settings.
type DB struct {
	Driver   string // sqlite, mysql or postgres
	Path     string // database file path, sqlite only
	Extras   string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}
