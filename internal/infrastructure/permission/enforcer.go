// Package permission authorizes admin routes with casbin. Policies live in
// the casbin_rule table through the gorm adapter.
package permission

import (
	"fmt"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"

	"github.com/bizblocks/bizblocks/internal/shared/authorization"
	"github.com/bizblocks/bizblocks/internal/shared/logger"
)

// rbacModel matches a role against a route pattern and HTTP method.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// DefaultPolicies grant admins every admin route.
var DefaultPolicies = [][]string{
	{authorization.RoleAdmin.String(), "/admin/*", "*"},
}

type Enforcer struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   logger.Interface
}

func NewEnforcer(db *gorm.DB, log logger.Interface) (*Enforcer, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("failed to load policy: %w", err)
	}

	e := &Enforcer{
		enforcer: enforcer,
		logger:   log,
	}
	if err := e.seedDefaults(); err != nil {
		return nil, err
	}
	return e, nil
}

// seedDefaults adds DefaultPolicies when the policy table is empty.
func (e *Enforcer) seedDefaults() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	existing, err := e.enforcer.GetPolicy()
	if err != nil {
		return fmt.Errorf("failed to read policies: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	if _, err := e.enforcer.AddPolicies(DefaultPolicies); err != nil {
		return fmt.Errorf("failed to seed default policies: %w", err)
	}
	e.logger.Infow("seeded default authorization policies", "count", len(DefaultPolicies))
	return nil
}

// Enforce reports whether subject (a role or user key) may perform action
// on resource.
func (e *Enforcer) Enforce(subject string, resource string, action string) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	allowed, err := e.enforcer.Enforce(subject, resource, action)
	if err != nil {
		e.logger.Errorw("permission check failed", "error", err, "subject", subject, "resource", resource, "action", action)
		return false, fmt.Errorf("permission check failed: %w", err)
	}

	return allowed, nil
}

func (e *Enforcer) AddPolicy(role string, resource string, action string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddPolicy(role, resource, action); err != nil {
		e.logger.Errorw("failed to add policy", "error", err)
		return fmt.Errorf("failed to add policy: %w", err)
	}
	return nil
}

func (e *Enforcer) RemovePolicy(role string, resource string, action string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.RemovePolicy(role, resource, action); err != nil {
		e.logger.Errorw("failed to remove policy", "error", err)
		return fmt.Errorf("failed to remove policy: %w", err)
	}
	return nil
}

// AddRoleForUser lets a single user act with role's permissions.
func (e *Enforcer) AddRoleForUser(userKey string, role string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.enforcer.AddRoleForUser(userKey, role); err != nil {
		e.logger.Errorw("failed to add role for user", "error", err, "user", userKey, "role", role)
		return fmt.Errorf("failed to add role for user: %w", err)
	}
	return nil
}
