package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/bizblocks/bizblocks/internal/shared/constants"
	apperrors "github.com/bizblocks/bizblocks/internal/shared/errors"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
	"github.com/bizblocks/bizblocks/internal/shared/utils"
)

// PolicyEnforcer answers whether subject may perform action on resource.
type PolicyEnforcer interface {
	Enforce(subject, resource, action string) (bool, error)
}

type PermissionMiddleware struct {
	enforcer PolicyEnforcer
	logger   logger.Interface
}

func NewPermissionMiddleware(enforcer PolicyEnforcer, logger logger.Interface) *PermissionMiddleware {
	return &PermissionMiddleware{
		enforcer: enforcer,
		logger:   logger,
	}
}

// RequirePolicy checks the caller's role against the request path and
// method. It must run after RequireAuth.
func (m *PermissionMiddleware) RequirePolicy() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get(constants.ContextKeyUserID)
		if !exists {
			utils.ErrorResponseWithError(c, apperrors.NewUnauthorizedError("user not authenticated"))
			c.Abort()
			return
		}

		role := c.GetString(constants.ContextKeyUserRole)
		resource := c.Request.URL.Path
		action := c.Request.Method

		allowed, err := m.enforcer.Enforce(role, resource, action)
		if err != nil {
			m.logger.Errorw("permission check failed", "error", err, "user_id", userID, "resource", resource, "action", action)
			utils.ErrorResponseWithError(c, apperrors.NewInternalError("permission check failed"))
			c.Abort()
			return
		}

		if !allowed {
			m.logger.Warnw("permission denied", "user_id", userID, "role", role, "resource", resource, "action", action)
			utils.ErrorResponseWithError(c, apperrors.NewForbiddenError("insufficient permissions", "role "+role+" may not "+action+" "+resource))
			c.Abort()
			return
		}

		c.Next()
	}
}
