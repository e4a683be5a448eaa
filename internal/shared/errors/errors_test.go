package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_StatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code int
	}{
		{"validation", NewValidationError("bad"), http.StatusBadRequest},
		{"not found", NewNotFoundError("missing"), http.StatusNotFound},
		{"conflict", NewConflictError("again"), http.StatusConflict},
		{"upstream", NewUpstreamError("gateway down"), http.StatusBadGateway},
		{"internal", NewInternalError("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestAppError_ErrorIncludesDetails(t *testing.T) {
	err := NewConflictError("reminder cooldown active", "next allowed in 3h")
	assert.Equal(t, "conflict: reminder cooldown active (next allowed in 3h)", err.Error())
}

func TestTypeChecks_SeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("send reminder: %w", NewConflictError("cooldown"))

	assert.True(t, IsConflictError(wrapped))
	assert.False(t, IsNotFoundError(wrapped))
	assert.False(t, IsUpstreamError(wrapped))
	assert.True(t, IsUpstreamError(fmt.Errorf("x: %w", NewUpstreamError("down"))))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(fmt.Errorf("Error 1062: Duplicate entry '1-2' for key")))
	assert.True(t, IsDuplicateError(fmt.Errorf("UNIQUE constraint failed: free_unlocks.user_id")))
	assert.False(t, IsDuplicateError(fmt.Errorf("connection refused")))
	assert.False(t, IsDuplicateError(nil))
}
