// Package auth provides authentication and authorization functionality for the portal.
//
// Authentication is email/password against the local database with Argon2id
// password hashing, optionally complemented by OpenID Connect single sign-on.
// Successful logins are issued signed bearer tokens; every issued token is
// registered in a revocation store so logout (or a forced logout) invalidates
// it server side even before its expiry.
//
// Authorization follows the portal's permission model, implemented by the
// authz package: users hold admin flags plus one role or a list of roles,
// each role carries permission names, and the effective set is the union
// across held roles. The Service type answers permission questions against
// the database; the Fiber middleware guards routes:
//   - Authenticate: resolve the bearer token to a user and stash it in Locals
//   - RequirePermission: 403 unless the user holds one of the permissions
//   - RequireAllPermissions: 403 unless the user holds all permissions
//
// Example usage:
//
//	issuer := auth.NewTokenIssuer(cfg.Auth, store)
//	app.Use("/api", auth.Authenticate(issuer, db))
//	app.Get("/api/karkuns",
//	    auth.RequirePermission(auth.PermViewKarkuns),
//	    handler,
//	)
package auth
