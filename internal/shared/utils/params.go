package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bizblocks/bizblocks/internal/shared/errors"
)

// ParseUintParam parses a positive integer ID from a URL path parameter.
// entityName is used in error messages (e.g., "subscription", "payment failure").
func ParseUintParam(c *gin.Context, paramName, entityName string) (uint, error) {
	raw := c.Param(paramName)
	if raw == "" {
		return 0, errors.NewValidationError(entityName + " ID is required")
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewValidationError("invalid " + entityName + " ID")
	}

	return uint(id), nil
}

// ParseOptionalUintQuery parses an optional positive integer query parameter.
// Absent parameters yield 0.
func ParseOptionalUintQuery(c *gin.Context, key string) (uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.NewValidationError("invalid " + key)
	}

	return uint(v), nil
}
