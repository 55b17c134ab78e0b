package auth

import (
	"strconv"
	"time"

	"github.com/gofiber/storage"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/silsila-idreesia/portal/internal/config"
	"github.com/silsila-idreesia/portal/internal/db/models"
)

// Claims carried by an issued bearer token.
type Claims struct {
	UserID uint64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenIssuer creates and verifies signed bearer tokens.
// Every issued token is registered in the revocation store under its token
// ID; verification requires the entry to still exist, so deleting it (on
// logout or forced logout) invalidates the token before its expiry.
type TokenIssuer struct {
	secret      []byte
	store       storage.Storage
	expiry      time.Duration
	rememberFor time.Duration
}

// NewTokenIssuer creates a token issuer from the auth configuration.
func NewTokenIssuer(cfg config.Auth, store storage.Storage) *TokenIssuer {
	expiry := cfg.Token.ExpiryTime
	if expiry == 0 {
		expiry = 12 * time.Hour
	}

	rememberFor := cfg.Token.RememberTime
	if rememberFor == 0 {
		rememberFor = 30 * 24 * time.Hour
	}

	return &TokenIssuer{
		secret:      []byte(cfg.TokenSecret),
		store:       store,
		expiry:      expiry,
		rememberFor: rememberFor,
	}
}

// Issue creates a bearer token for the user. The remember flag extends the
// token lifetime for "remember me" logins.
func (t *TokenIssuer) Issue(user *models.User, remember bool) (string, error) {
	ttl := t.expiry
	if remember {
		ttl = t.rememberFor
	}

	now := time.Now().UTC()
	claims := Claims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", err
	}

	if err := t.store.Set(claims.ID, []byte(claims.Subject), ttl); err != nil {
		return "", err
	}

	return signed, nil
}

// Verify checks a bearer token and returns the user ID it was issued for.
func (t *TokenIssuer) Verify(tokenString string) (uint64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	// tokens must still be registered; logout removes the entry
	val, err := t.store.Get(claims.ID)
	if err != nil || len(val) == 0 {
		return 0, ErrTokenRevoked
	}

	return claims.UserID, nil
}

// Revoke deletes the token's registration so it can no longer be used.
// Revoking an unknown or already revoked token is not an error.
func (t *TokenIssuer) Revoke(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil
	}

	return t.store.Delete(claims.ID)
}
