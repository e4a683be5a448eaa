package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bizblocks/bizblocks/internal/infrastructure/auth"
	"github.com/bizblocks/bizblocks/internal/shared/constants"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
	"github.com/bizblocks/bizblocks/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth rejects requests without a valid bearer token.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing or malformed authorization header")
			c.Abort()
			return
		}

		if !m.authenticate(c, token) {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token is present and
// otherwise lets the request through as anonymous.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			m.authenticate(c, token)
		}
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context, token string) bool {
	claims, err := m.jwtService.Verify(token)
	if err != nil {
		m.logger.Warnw("failed to verify token", "error", err, "ip", c.ClientIP())
		return false
	}

	userID, err := claims.UserID()
	if err != nil {
		m.logger.Warnw("token subject is not a user id", "error", err, "ip", c.ClientIP())
		return false
	}

	c.Set(constants.ContextKeyUserID, userID)
	c.Set(constants.ContextKeyUserEmail, claims.Email)
	c.Set(constants.ContextKeyUserRole, string(claims.Role))
	return true
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader(constants.HeaderAuthorization)
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
