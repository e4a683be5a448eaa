package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bizblocks/bizblocks/internal/infrastructure/auth"
	"github.com/bizblocks/bizblocks/internal/infrastructure/config"
	"github.com/bizblocks/bizblocks/internal/infrastructure/persistence/models"
	"github.com/bizblocks/bizblocks/internal/shared/authorization"
	sharedConfig "github.com/bizblocks/bizblocks/internal/shared/config"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

const testCatalog = `blocks:
  - name: website
    category: presence
    subtitle: One page site
  - name: logo
    category: brand
    subtitle: Logo pack
`

func newTestRouter(t *testing.T) (*Router, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	catalogPath := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(catalogPath, []byte(testCatalog), 0o600))

	cfg := &config.Config{
		Server: sharedConfig.ServerConfig{BaseURL: "http://localhost:8080"},
		Auth: sharedConfig.AuthConfig{JWT: sharedConfig.JWTConfig{
			Secret: "router-test-secret", Issuer: "bizblocks", AccessExpMinutes: 15,
		}},
		Billing: sharedConfig.BillingConfig{
			Currency:              "USD",
			GracePeriodDays:       7,
			ReminderCooldownHours: 24,
			WebhookSecret:         "whsec_router",
		},
		Catalog: sharedConfig.CatalogConfig{Path: catalogPath},
		Outbox:  sharedConfig.OutboxConfig{BatchSize: 10, MaxAttempts: 3, PollIntervalSeconds: 5},
	}

	router, err := NewRouter(db, nil, cfg, logger.NewNopLogger())
	require.NoError(t, err)
	router.SetupRoutes()
	return router, cfg
}

func bearer(t *testing.T, cfg *config.Config, role authorization.UserRole) string {
	t.Helper()
	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpMinutes)
	token, err := jwtSvc.Generate(7, "owner@example.com", role)
	require.NoError(t, err)
	return "Bearer " + token
}

func serve(router *Router, method, path, authorization string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.GetEngine().ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestRouter(t)

	w := serve(router, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_ListBlocksAnonymous(t *testing.T) {
	router, _ := newTestRouter(t)

	w := serve(router, http.MethodGet, "/blocks", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    []struct {
			Name  string `json:"name"`
			Owned bool   `json:"owned"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "website", resp.Data[0].Name)
	assert.Equal(t, "logo", resp.Data[1].Name)
	assert.False(t, resp.Data[0].Owned)
}

func TestRouter_CheckoutRequiresAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	w := serve(router, http.MethodPost, "/checkout", "", []byte(`{"business_id":1,"block_names":["logo"]}`))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_AdminRoutesRequireAdminRole(t *testing.T) {
	router, cfg := newTestRouter(t)

	t.Run("anonymous", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/admin/pricing", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("customer", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/admin/pricing", bearer(t, cfg, authorization.RoleCustomer), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/admin/pricing", bearer(t, cfg, authorization.RoleAdmin), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRouter_WebhookRejectsBadSignature(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/payments", bytes.NewReader([]byte(`{"type":"checkout.completed"}`)))
	req.Header.Set("X-Payment-Signature", "not-a-signature")
	w := httptest.NewRecorder()
	router.GetEngine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_SwaggerDocument(t *testing.T) {
	router, _ := newTestRouter(t)

	w := serve(router, http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	paths, ok := doc["paths"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, paths, "/checkout")
	assert.Contains(t, paths, "/admin/payment-failures/{id}/remind")
}
