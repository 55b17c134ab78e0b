package config

import (
	"path/filepath"
	"testing"
)

func TestReadConfig(t *testing.T) {
	var (
		err         error
		projectRoot string
	)

	// Get the project root by going up from internal/config
	projectRoot, err = filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	configPath := filepath.Join(projectRoot, "etc") + string(filepath.Separator)

	var cfg Config

	cfg, err = ReadConfig(configPath)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	// Test basic config fields
	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.Webserver.Port == 0 {
		t.Error("Webserver.Port should not be 0")
	}

	if cfg.Webserver.URL == "" {
		t.Error("Webserver.URL should not be empty")
	}

	if cfg.DB.Driver == "" {
		t.Error("DB.Driver should not be empty")
	}

	if cfg.Auth.TokenSecret == "" {
		t.Error("Auth.TokenSecret should not be empty")
	}
}

func TestReadConfigEnvOverride(t *testing.T) {
	projectRoot, err := filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	configPath := filepath.Join(projectRoot, "etc") + string(filepath.Separator)

	t.Setenv("SILSILA_PORTAL_CONFIG_JSON", `{"Title":"overridden"}`)

	cfg, err := ReadConfig(configPath)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title != "overridden" {
		t.Errorf("Title = %q, want %q", cfg.Title, "overridden")
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		Webserver: Webserver{Port: 8080, URL: "http://localhost:8080"},
		DB:        DB{Driver: DriverSQLite, Path: ":memory:"},
		Auth:      Auth{TokenSecret: "secret"},
	}

	if err := validate(valid); err != nil {
		t.Errorf("validate() on valid config: %v", err)
	}

	noPort := valid
	noPort.Webserver.Port = 0

	if err := validate(noPort); err == nil {
		t.Error("validate() should fail when webserver.port is 0")
	}

	badDriver := valid
	badDriver.DB.Driver = "oracle"

	if err := validate(badDriver); err == nil {
		t.Error("validate() should fail on unknown db driver")
	}

	noSecret := valid
	noSecret.Auth.TokenSecret = ""

	if err := validate(noSecret); err == nil {
		t.Error("validate() should fail when auth.tokenSecret is empty")
	}
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{Title: "Silsila Idreesia"}

	out, err := DumpConfig(cfg)
	if err != nil {
		t.Fatalf("DumpConfig() error = %v", err)
	}

	if out == "" {
		t.Error("DumpConfig() returned empty output")
	}

	j, err := DumpConfigJSON(cfg)
	if err != nil {
		t.Fatalf("DumpConfigJSON() error = %v", err)
	}

	if j == "" {
		t.Error("DumpConfigJSON() returned empty output")
	}
}
