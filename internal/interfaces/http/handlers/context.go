package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bizblocks/bizblocks/internal/shared/constants"
	"github.com/bizblocks/bizblocks/internal/shared/errors"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

// getUserIDFromContext retrieves the authenticated user id set by the auth
// middleware.
func getUserIDFromContext(c *gin.Context, log logger.Interface) (uint, error) {
	userIDInterface, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, errors.NewUnauthorizedError("user not authenticated")
	}

	userID, ok := userIDInterface.(uint)
	if !ok || userID == 0 {
		log.Warnw("invalid user_id in context", "user_id", userIDInterface, "ip", c.ClientIP())
		return 0, errors.NewInternalError("invalid user ID type")
	}

	return userID, nil
}

// getOptionalUserID returns 0 for anonymous callers.
func getOptionalUserID(c *gin.Context) uint {
	userID, _ := c.Get(constants.ContextKeyUserID)
	id, _ := userID.(uint)
	return id
}
