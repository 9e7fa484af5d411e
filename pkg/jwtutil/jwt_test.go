package jwtutil

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_AccessRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 5*time.Minute, time.Hour)

	token, err := m.GenerateAccess(42, "alice")
	require.NoError(t, err)

	claims, err := m.Validate(token, TokenAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "42", claims.Subject)
}

func TestManager_WrongType(t *testing.T) {
	m := NewManager("test-secret", 5*time.Minute, time.Hour)

	refresh, err := m.GenerateRefresh(1, "bob")
	require.NoError(t, err)

	_, err = m.Validate(refresh, TokenAccess)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	_, err = m.Validate(refresh, TokenRefresh)
	assert.NoError(t, err)
}

func TestManager_Expired(t *testing.T) {
	m := NewManager("test-secret", time.Minute, time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := m.GenerateAccess(1, "bob")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Validate(token, TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_WrongSecret(t *testing.T) {
	token, err := NewManager("secret-a", time.Minute, time.Hour).GenerateAccess(1, "bob")
	require.NoError(t, err)

	_, err = NewManager("secret-b", time.Minute, time.Hour).Validate(token, TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsNoneAlgorithm(t *testing.T) {
	claims := UserClaims{UserID: 1, Username: "mallory", TokenType: TokenAccess}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewManager("secret", time.Minute, time.Hour).Validate(token, TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_Garbage(t *testing.T) {
	_, err := NewManager("secret", time.Minute, time.Hour).Validate("not.a.token", TokenAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
