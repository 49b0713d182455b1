package rbac

import (
	"context"
	"fmt"

	"github.com/ferrohub/ferrohub/internal/apiserver/database"

	"go.uber.org/zap"
)

// Checker evaluates effective permissions: the union of permissions granted
// through roles a user holds and permissions granted to the user directly.
// It is a pure set-computation over global identity data; company access is
// established separately by the company-context resolver.
type Checker struct {
	db     database.Database
	logger *zap.Logger
}

// NewChecker creates a new permission checker
func NewChecker(db database.Database, logger *zap.Logger) *Checker {
	return &Checker{db: db, logger: logger.Named("rbac")}
}

// HasPermission reports whether the user holds the (resource, action)
// permission through any role or direct grant. Matching is by the
// (resource, action) pair only; two permission rows with the same pair are
// interchangeable. Direct grants are strictly additive.
func (c *Checker) HasPermission(ctx context.Context, userID, resource, action string) (bool, error) {
	if _, err := c.db.GetUserByID(ctx, userID); err != nil {
		return false, err
	}

	roles, err := c.db.GetUserRoles(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("get user roles: %w", err)
	}
	for _, role := range roles {
		permissions, err := c.db.GetRolePermissions(ctx, role.ID)
		if err != nil {
			return false, fmt.Errorf("get role permissions: %w", err)
		}
		if matchAny(permissions, resource, action) {
			return true, nil
		}
	}

	direct, err := c.db.GetUserPermissions(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("get user permissions: %w", err)
	}
	return matchAny(direct, resource, action), nil
}

// EffectivePermissions returns the union of role-derived and direct
// permissions, deduplicated by (resource, action).
func (c *Checker) EffectivePermissions(ctx context.Context, userID string) ([]*database.Permission, error) {
	if _, err := c.db.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var result []*database.Permission

	add := func(permissions []*database.Permission) {
		for _, p := range permissions {
			key := p.Resource + ":" + p.Action
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			result = append(result, p)
		}
	}

	roles, err := c.db.GetUserRoles(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user roles: %w", err)
	}
	for _, role := range roles {
		permissions, err := c.db.GetRolePermissions(ctx, role.ID)
		if err != nil {
			return nil, fmt.Errorf("get role permissions: %w", err)
		}
		add(permissions)
	}

	direct, err := c.db.GetUserPermissions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user permissions: %w", err)
	}
	add(direct)

	return result, nil
}

// PrimaryRole returns the user's oldest role assignment, or nil when the
// user holds no role. Display and token convenience only.
func (c *Checker) PrimaryRole(ctx context.Context, userID string) (*database.Role, error) {
	roles, err := c.db.GetUserRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return nil, nil
	}
	return roles[0], nil
}

func matchAny(permissions []*database.Permission, resource, action string) bool {
	for _, p := range permissions {
		if p.Resource == resource && p.Action == action {
			return true
		}
	}
	return false
}
