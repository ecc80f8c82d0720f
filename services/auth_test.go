package services

import (
	"testing"
	"time"

	"campy/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	f := newFixture(t)

	reg, err := f.svc.Auth.Register(f.ctx, "Ada", "ada@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, reg.UserID)
	assert.NotEmpty(t, reg.Token)

	userID, err := f.svc.Auth.Tokens().VerifyToken(reg.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, userID)

	login, err := f.svc.Auth.Authenticate(f.ctx, "ADA@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, reg.UserID, login.UserID)

	_, err = f.svc.Auth.Register(f.ctx, "Ada again", "ada@example.com", "secret123")
	assert.ErrorIs(t, err, utils.ErrConflict)
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Auth.Register(f.ctx, "Ada", "ada@example.com", "secret123")
	require.NoError(t, err)

	for _, tc := range []struct{ email, password string }{
		{"ada@example.com", "wrong-password"},
		{"nobody@example.com", "secret123"},
	} {
		_, err := f.svc.Auth.Authenticate(f.ctx, tc.email, tc.password)
		require.Error(t, err)
		appErr, ok := utils.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, 401, appErr.Status)
		assert.Equal(t, "Invalid email or password", appErr.Message)
	}
}

func TestVerifyTokenRejectsTampering(t *testing.T) {
	tokens := NewTokenManager("secret-a", time.Hour)
	other := NewTokenManager("secret-b", time.Hour)

	token, err := tokens.IssueToken("user-1")
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, utils.ErrAuth)

	_, err = tokens.VerifyToken(token + "x")
	assert.ErrorIs(t, err, utils.ErrAuth)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	tokens := NewTokenManager("secret", time.Hour)
	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := tokens.IssueToken("user-1")
	require.NoError(t, err)

	_, err = tokens.VerifyToken(token)
	assert.ErrorIs(t, err, utils.ErrAuth)
}

func TestVerifyTokenRejectsNonHMAC(t *testing.T) {
	tokens := NewTokenManager("secret", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"userId": "user-1",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tokens.VerifyToken(raw)
	assert.ErrorIs(t, err, utils.ErrAuth)
}

func TestTokenCarriesSevenDayExpiryByDefault(t *testing.T) {
	tokens := NewTokenManager("secret", 7*24*time.Hour)
	raw, err := tokens.IssueToken("user-1")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) { return []byte("secret"), nil })
	require.NoError(t, err)

	exp := int64(claims["exp"].(float64))
	iat := int64(claims["iat"].(float64))
	assert.Equal(t, int64(7*24*60*60), exp-iat)
	assert.Equal(t, "user-1", claims["userId"])
}
