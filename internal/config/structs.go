package config

import (
	"time"

	"github.com/silsila-idreesia/portal/internal/logger"
)

// Token settings for issued bearer tokens.
type Token struct {
	ExpiryTime   time.Duration // lifetime of a regular login token
	RememberTime time.Duration // lifetime when the login asked to be remembered
}

// OIDC holds the optional single-sign-on settings.
type OIDC struct {
	Enabled      bool
	ProviderURL  string // discovery URL, e.g. https://accounts.google.com
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
	RolesClaim   string // ID token claim carrying role names
}

// Auth implements authentication settings.
type Auth struct {
	TokenSecret string // HMAC secret for signed bearer tokens
	Token       Token
	OIDC        OIDC
}

// Config overall data structure.
type Config struct {
	DevMode   bool // enable dev mode for development
	DB        DB
	Log       logger.Log
	Title     string
	Auth      Auth
	Webserver Webserver
}

// Webserver implement webserver settings.
type Webserver struct {
	CacheEnabled   bool   // true = enable cache, false = disable cache
	CleanPath      bool   // use clean path middleware to allow multi slash requests
	DisableRecover bool   // disable recover middleware
	Domain         string // domain name for the webserver
	Port           int    // listening port for the webserver
	ShutDownTime   int    // wait time for shutdown
	URL            string // base url for the webserver
}
