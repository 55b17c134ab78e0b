// Package oidc provides handlers for the OpenID Connect (OIDC) authentication flow.
//
// This package implements the OAuth2/OIDC login and callback handlers,
// supporting user provisioning from external identity providers such as
// Google, Okta, Keycloak, Azure AD, and other OIDC-compliant providers.
//
// The OIDC flow includes:
//   - Login initiation with CSRF protection via state tokens
//   - Authorization callback handling with ID token verification
//   - Automatic user creation/update from OIDC claims
//   - Role synchronization from the configured roles claim
//   - Bearer token issuance on successful callback
//
// Example usage:
//
//	// Initialize OIDC handler
//	oidc.Handler.Init(app, cfg, db, issuer)
//
//	// Users can then access:
//	// GET  /api/auth/oidc/login    - Initiate OIDC login flow
//	// GET  /api/auth/oidc/callback - Handle provider callback
package oidc
