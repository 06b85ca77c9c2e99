package middleware

import (
	"LearnStream/internal/app_errors"
	"LearnStream/internal/models"
	"LearnStream/pkg/logger"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const ActingUserCtx = "acting_user"

type TokenParser interface {
	ActingUser(token string) (models.ActingUser, error)
}

type AuthMiddlewareProvider struct {
	log    logger.Log
	parser TokenParser
}

func NewAuthMiddlewareProvider(log logger.Log, p TokenParser) *AuthMiddlewareProvider {
	return &AuthMiddlewareProvider{
		log:    log,
		parser: p,
	}
}

func (h *AuthMiddlewareProvider) AuthMiddleware(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	var token string
	if parts := strings.Split(authHeader, "Bearer "); len(parts) == 2 {
		token = strings.TrimSpace(parts[1])
	}
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
		return
	}

	user, err := h.parser.ActingUser(token)
	if err != nil {
		h.log.Info("failed to parse token", logger.Err(err))
		if errors.Is(err, app_errors.ErrTokenExpired) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": app_errors.ErrTokenExpired.Error()})
			return
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "cant parse token"})
		return
	}

	c.Set(ActingUserCtx, user)
	c.Next()
}

// ActingUser returns the caller stored by AuthMiddleware.
func ActingUser(c *gin.Context) (models.ActingUser, bool) {
	raw, exists := c.Get(ActingUserCtx)
	if !exists {
		return models.ActingUser{}, false
	}
	user, ok := raw.(models.ActingUser)
	return user, ok
}
