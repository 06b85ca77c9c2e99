package auth

import (
	"LearnStream/internal/app_errors"
	"LearnStream/internal/models"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const AccessTokenType = "access"

var signingMethod = jwt.SigningMethodHS256

type JWTManager struct {
	secretKey []byte
	accessTTL time.Duration
	issuer    string
	now       func() time.Time
}

func NewJWTManager(secretKey, issuer string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{
		secretKey: []byte(secretKey),
		accessTTL: accessTTL,
		issuer:    issuer,
		now:       time.Now,
	}
}

type AccessTokenClaims struct {
	TokenType string `json:"token_type"`
	UserID    string `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

func (j *JWTManager) GenerateAccessToken(user models.ActingUser) (string, error) {
	if !models.ValidRole(user.Role) {
		return "", fmt.Errorf("%w: %q", app_errors.ErrInvalidRole, user.Role)
	}
	now := j.now()
	token := jwt.NewWithClaims(signingMethod, AccessTokenClaims{
		TokenType: AccessTokenType,
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    j.issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})

	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("access token signing failed: %w", err)
	}
	return signed, nil
}

// ActingUser validates an access token and returns the caller it names.
func (j *JWTManager) ActingUser(tokenStr string) (models.ActingUser, error) {
	claims := &AccessTokenClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != signingMethod {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	}, jwt.WithIssuer(j.issuer), jwt.WithTimeFunc(j.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.ActingUser{}, app_errors.ErrTokenExpired
		}
		return models.ActingUser{}, fmt.Errorf("%w: %v", app_errors.ErrInvalidToken, err)
	}

	if claims.TokenType != AccessTokenType {
		return models.ActingUser{}, fmt.Errorf("%w: wrong token type %q", app_errors.ErrInvalidToken, claims.TokenType)
	}
	if claims.UserID == "" {
		return models.ActingUser{}, fmt.Errorf("%w: missing user id", app_errors.ErrInvalidToken)
	}
	if !models.ValidRole(claims.Role) {
		return models.ActingUser{}, fmt.Errorf("%w: %q", app_errors.ErrInvalidRole, claims.Role)
	}

	return models.ActingUser{
		ID:       claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}
