package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silsila-idreesia/portal/internal/auth"
	"github.com/silsila-idreesia/portal/internal/config"
	"github.com/silsila-idreesia/portal/internal/db/models"
)

func newTestIssuer(t *testing.T) (*auth.TokenIssuer, *auth.MemoryStore) {
	t.Helper()

	store := auth.NewMemoryStore()
	issuer := auth.NewTokenIssuer(config.Auth{
		TokenSecret: "test-secret",
		Token: config.Token{
			ExpiryTime: time.Hour,
		},
	}, store)

	return issuer, store
}

func TestTokenIssueAndVerify(t *testing.T) {
	issuer, _ := newTestIssuer(t)
	user := &models.User{ID: 42}

	token, err := issuer.Issue(user, false)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), userID)
}

func TestTokenVerifyGarbage(t *testing.T) {
	issuer, _ := newTestIssuer(t)

	_, err := issuer.Verify("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenVerifyWrongSecret(t *testing.T) {
	issuer, store := newTestIssuer(t)

	token, err := issuer.Issue(&models.User{ID: 7}, false)
	require.NoError(t, err)

	other := auth.NewTokenIssuer(config.Auth{
		TokenSecret: "different-secret",
		Token: config.Token{
			ExpiryTime: time.Hour,
		},
	}, store)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenRevoke(t *testing.T) {
	issuer, _ := newTestIssuer(t)

	token, err := issuer.Issue(&models.User{ID: 7}, false)
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	require.NoError(t, err)

	require.NoError(t, issuer.Revoke(token))

	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)

	// revoking again is not an error
	assert.NoError(t, issuer.Revoke(token))
}

func TestTokenRevokeGarbage(t *testing.T) {
	issuer, _ := newTestIssuer(t)

	assert.NoError(t, issuer.Revoke("not-a-token"))
}

func TestTokenStoreResetInvalidatesAll(t *testing.T) {
	issuer, store := newTestIssuer(t)

	first, err := issuer.Issue(&models.User{ID: 1}, false)
	require.NoError(t, err)
	second, err := issuer.Issue(&models.User{ID: 2}, true)
	require.NoError(t, err)

	require.NoError(t, store.Reset())

	_, err = issuer.Verify(first)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)
	_, err = issuer.Verify(second)
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := auth.NewMemoryStore()

	require.NoError(t, store.Set("k", []byte("v"), 10*time.Millisecond))

	val, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), val)

	time.Sleep(20 * time.Millisecond)

	val, err = store.Get("k")
	require.NoError(t, err)
	assert.Nil(t, val)
}
