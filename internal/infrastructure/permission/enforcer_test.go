package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

func newTestEnforcer(t *testing.T) *Enforcer {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	e, err := NewEnforcer(db, logger.NewNopLogger())
	require.NoError(t, err)
	return e
}

func TestEnforcer_DefaultAdminPolicy(t *testing.T) {
	e := newTestEnforcer(t)

	cases := []struct {
		subject, resource, action string
		want                      bool
	}{
		{"admin", "/admin/pricing", "GET", true},
		{"admin", "/admin/pricing/seo", "PUT", true},
		{"admin", "/admin/payment-failures/3/remind", "POST", true},
		{"customer", "/admin/pricing", "GET", false},
		{"", "/admin/pricing", "GET", false},
		{"admin", "/blocks", "GET", false},
	}
	for _, tc := range cases {
		allowed, err := e.Enforce(tc.subject, tc.resource, tc.action)
		require.NoError(t, err)
		assert.Equal(t, tc.want, allowed, "%s %s %s", tc.subject, tc.action, tc.resource)
	}
}

func TestEnforcer_PolicyChanges(t *testing.T) {
	e := newTestEnforcer(t)

	require.NoError(t, e.AddPolicy("support", "/admin/payment-failures", "GET"))
	require.NoError(t, e.AddRoleForUser("user:12", "support"))

	allowed, err := e.Enforce("user:12", "/admin/payment-failures", "GET")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = e.Enforce("user:12", "/admin/pricing", "GET")
	require.NoError(t, err)
	assert.False(t, allowed)

	require.NoError(t, e.RemovePolicy("support", "/admin/payment-failures", "GET"))
	allowed, err = e.Enforce("user:12", "/admin/payment-failures", "GET")
	require.NoError(t, err)
	assert.False(t, allowed)
}
