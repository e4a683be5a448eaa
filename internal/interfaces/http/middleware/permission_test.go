package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/bizblocks/bizblocks/internal/shared/constants"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

type mockEnforcer struct {
	allowed bool
	err     error

	subject, resource, action string
}

func (m *mockEnforcer) Enforce(subject, resource, action string) (bool, error) {
	m.subject, m.resource, m.action = subject, resource, action
	return m.allowed, m.err
}

func servePolicy(enforcer PolicyEnforcer, authenticated bool, role string) *httptest.ResponseRecorder {
	m := NewPermissionMiddleware(enforcer, logger.NewNopLogger())

	engine := gin.New()
	engine.POST("/admin/subscriptions/sweep", func(c *gin.Context) {
		if authenticated {
			c.Set(constants.ContextKeyUserID, uint(1))
			c.Set(constants.ContextKeyUserRole, role)
		}
		c.Next()
	}, m.RequirePolicy(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/subscriptions/sweep", nil))
	return w
}

func TestRequirePolicy(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		enforcer := &mockEnforcer{allowed: true}
		w := servePolicy(enforcer, true, "admin")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "admin", enforcer.subject)
		assert.Equal(t, "/admin/subscriptions/sweep", enforcer.resource)
		assert.Equal(t, http.MethodPost, enforcer.action)
	})

	t.Run("denied", func(t *testing.T) {
		w := servePolicy(&mockEnforcer{allowed: false}, true, "customer")
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), `"type":"forbidden"`)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		w := servePolicy(&mockEnforcer{allowed: true}, false, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("enforcer error", func(t *testing.T) {
		w := servePolicy(&mockEnforcer{err: errors.New("adapter down")}, true, "admin")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
