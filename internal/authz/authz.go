// Package authz decides whether a system role holds a permission.
package authz

import (
	"context"
	"fmt"
	"sync"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"go.uber.org/zap"

	m42model "m42hub/internal/model"
)

// ADMIN passes every check; other roles need an explicit role/permission policy.
const modelText = `
[request_definition]
r = sub, act

[policy_definition]
p = sub, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == "ADMIN" || (r.sub == p.sub && r.act == p.act)
`

// RoleSource lists system roles with their permissions.
type RoleSource interface {
	ListWithPermissions(ctx context.Context) ([]m42model.SystemRole, error)
}

type Enforcer struct {
	mu     sync.RWMutex
	e      *casbin.Enforcer
	source RoleSource
	log    *zap.Logger
}

func NewEnforcer(source RoleSource, log *zap.Logger) (*Enforcer, error) {
	e, err := newCasbin()
	if err != nil {
		return nil, err
	}
	return &Enforcer{e: e, source: source, log: log}, nil
}

func newCasbin() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, fmt.Errorf("casbin model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("casbin enforcer: %w", err)
	}
	return e, nil
}

// LoadPolicies rebuilds the policy set from the role tables and swaps it in.
func (a *Enforcer) LoadPolicies(ctx context.Context) error {
	roles, err := a.source.ListWithPermissions(ctx)
	if err != nil {
		return fmt.Errorf("list system roles: %w", err)
	}
	e, err := newCasbin()
	if err != nil {
		return err
	}
	n := 0
	for _, role := range roles {
		for _, perm := range role.Permissions {
			if _, err := e.AddPolicy(role.Name, perm.Name); err != nil {
				return fmt.Errorf("add policy %s/%s: %w", role.Name, perm.Name, err)
			}
			n++
		}
	}

	a.mu.Lock()
	a.e = e
	a.mu.Unlock()

	a.log.Info("authorization policies loaded", zap.Int("roles", len(roles)), zap.Int("policies", n))
	return nil
}

// Allowed reports whether role may perform permission.
func (a *Enforcer) Allowed(role, permission string) bool {
	if role == "" {
		return false
	}
	a.mu.RLock()
	e := a.e
	a.mu.RUnlock()

	ok, err := e.Enforce(role, permission)
	if err != nil {
		a.log.Error("enforce failed", zap.String("role", role), zap.String("permission", permission), zap.Error(err))
		return false
	}
	return ok
}
