package auth

import (
	"LearnStream/internal/app_errors"
	"LearnStream/internal/models"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", "learnstream", time.Minute)
	user := models.ActingUser{ID: "u1", Username: "alice", Role: models.TeacherRole}

	token, err := m.GenerateAccessToken(user)
	require.NoError(t, err)

	got, err := m.ActingUser(token)
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestActingUserExpired(t *testing.T) {
	m := NewJWTManager("secret", "learnstream", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := m.GenerateAccessToken(models.ActingUser{ID: "u1", Role: models.StudentRole})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ActingUser(token)
	assert.ErrorIs(t, err, app_errors.ErrTokenExpired)
}

func TestActingUserWrongSecret(t *testing.T) {
	issuer := NewJWTManager("secret", "learnstream", time.Minute)
	verifier := NewJWTManager("other", "learnstream", time.Minute)
	token, err := issuer.GenerateAccessToken(models.ActingUser{ID: "u1", Role: models.AdminRole})
	require.NoError(t, err)

	_, err = verifier.ActingUser(token)
	assert.ErrorIs(t, err, app_errors.ErrInvalidToken)
}

func TestActingUserRejectsForeignClaims(t *testing.T) {
	m := NewJWTManager("secret", "learnstream", time.Minute)
	sign := func(c AccessTokenClaims) string {
		c.Issuer = "learnstream"
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Minute))
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("secret"))
		require.NoError(t, err)
		return s
	}

	_, err := m.ActingUser(sign(AccessTokenClaims{TokenType: "refresh", UserID: "u1", Role: models.AdminRole}))
	assert.ErrorIs(t, err, app_errors.ErrInvalidToken)

	_, err = m.ActingUser(sign(AccessTokenClaims{TokenType: AccessTokenType, UserID: "u1", Role: "owner"}))
	assert.ErrorIs(t, err, app_errors.ErrInvalidRole)

	_, err = m.ActingUser(sign(AccessTokenClaims{TokenType: AccessTokenType, Role: models.AdminRole}))
	assert.ErrorIs(t, err, app_errors.ErrInvalidToken)
}

func TestGenerateRejectsUnknownRole(t *testing.T) {
	m := NewJWTManager("secret", "learnstream", time.Minute)
	_, err := m.GenerateAccessToken(models.ActingUser{ID: "u1", Role: "guest"})
	assert.ErrorIs(t, err, app_errors.ErrInvalidRole)
}
