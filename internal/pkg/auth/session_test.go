package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessions(maxAge time.Duration) *SessionService {
	return NewSessionService(SessionConfig{
		SecretKey:  "session-test-secret",
		CookieName: "campusreg_session",
		MaxAge:     maxAge,
	})
}

func TestIssueAndValidateToken(t *testing.T) {
	sessions := newTestSessions(time.Hour)

	token, err := sessions.IssueToken(7, "registrar")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := sessions.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "registrar", claims.Username)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	sessions := newTestSessions(time.Hour)

	_, err := sessions.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = sessions.ValidateToken("")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	sessions := newTestSessions(time.Hour)
	other := NewSessionService(SessionConfig{
		SecretKey:  "another-secret",
		CookieName: "campusreg_session",
		MaxAge:     time.Hour,
	})

	token, err := other.IssueToken(1, "registrar")
	require.NoError(t, err)

	_, err = sessions.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestValidateTokenExpired(t *testing.T) {
	sessions := newTestSessions(-time.Minute)

	token, err := sessions.IssueToken(1, "registrar")
	require.NoError(t, err)

	_, err = sessions.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredSession)
}

func TestCookieSettings(t *testing.T) {
	sessions := NewSessionService(SessionConfig{
		SecretKey:  "s",
		CookieName: "campusreg_session",
		MaxAge:     24 * time.Hour,
		Secure:     true,
	})

	assert.Equal(t, "campusreg_session", sessions.CookieName())
	assert.Equal(t, 86400, sessions.MaxAge())
	assert.True(t, sessions.Secure())
}
