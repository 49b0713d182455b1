package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/ferrohub/ferrohub/internal/common/errorx"

	"golang.org/x/crypto/bcrypt"
)

// basePermissions are the permissions every fresh installation starts with.
var basePermissions = []Permission{
	{Name: "users:read", Description: "Read user information", Resource: "users", Action: "read"},
	{Name: "users:create", Description: "Create new users", Resource: "users", Action: "create"},
	{Name: "users:update", Description: "Update user information", Resource: "users", Action: "update"},
	{Name: "users:delete", Description: "Delete users", Resource: "users", Action: "delete"},
	{Name: "roles:read", Description: "Read role information", Resource: "roles", Action: "read"},
	{Name: "roles:create", Description: "Create new roles", Resource: "roles", Action: "create"},
	{Name: "roles:update", Description: "Update role information", Resource: "roles", Action: "update"},
	{Name: "roles:delete", Description: "Delete roles", Resource: "roles", Action: "delete"},
	{Name: "permissions:read", Description: "Read permission information", Resource: "permissions", Action: "read"},
	{Name: "permissions:assign", Description: "Assign permissions to roles", Resource: "permissions", Action: "assign"},
	{Name: "products:manage", Description: "Manage products", Resource: "products", Action: "manage"},
	{Name: "inventory:manage", Description: "Manage inventory", Resource: "inventory", Action: "manage"},
}

// Seed populates an empty database with base permissions, roles, users and
// two demo companies. It is idempotent: when the admin role already exists
// the seed is skipped entirely.
func Seed(ctx context.Context, db Database, adminEmail, adminPassword string) error {
	roles, err := db.ListRoles(ctx)
	if err != nil {
		return err
	}
	for _, role := range roles {
		if role.Name == "admin" {
			return nil
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(ctx, func(ctx context.Context) error {
		permissions := make(map[string]*Permission, len(basePermissions))
		for i := range basePermissions {
			p := basePermissions[i]
			if err := db.CreatePermission(ctx, &p); err != nil {
				return fmt.Errorf("seed permission %s: %w", p.Name, err)
			}
			permissions[p.Name] = &p
		}

		adminRole := &Role{Name: "admin", Description: "Administrator with full access"}
		userRole := &Role{Name: "user", Description: "Regular user with limited access"}
		moderatorRole := &Role{Name: "moderator", Description: "Moderator with user management access"}
		for _, role := range []*Role{adminRole, userRole, moderatorRole} {
			if err := db.CreateRole(ctx, role); err != nil {
				return fmt.Errorf("seed role %s: %w", role.Name, err)
			}
		}

		if err := db.AssignRolePermissions(ctx, adminRole.ID, permissionIDs(permissions,
			"users:read", "users:create", "users:update", "users:delete",
			"roles:read", "roles:create", "roles:update", "roles:delete",
			"permissions:read", "permissions:assign",
			"products:manage", "inventory:manage")); err != nil {
			return err
		}
		if err := db.AssignRolePermissions(ctx, userRole.ID, permissionIDs(permissions,
			"users:read", "permissions:read")); err != nil {
			return err
		}
		if err := db.AssignRolePermissions(ctx, moderatorRole.ID, permissionIDs(permissions,
			"users:read", "users:update", "roles:read", "permissions:read")); err != nil {
			return err
		}

		adminUser := &User{Email: adminEmail, Username: "admin", Name: "Admin User", PasswordHash: string(hash), IsActive: true}
		regularUser := &User{Email: "user@example.com", Username: "user", Name: "Regular User", PasswordHash: string(hash), IsActive: true}
		moderatorUser := &User{Email: "moderator@example.com", Username: "moderator", Name: "Moderator User", PasswordHash: string(hash), IsActive: true}
		for _, user := range []*User{adminUser, regularUser, moderatorUser} {
			if err := db.CreateUser(ctx, user); err != nil {
				// a partially seeded database keeps its existing users; the
				// assignments below must reference the stored id, not the
				// one generated for the rejected insert
				if errors.Is(err, errorx.ErrDuplicateEmail) {
					existing, lookupErr := db.GetUserByEmail(ctx, user.Email)
					if lookupErr != nil {
						return lookupErr
					}
					user.ID = existing.ID
					continue
				}
				return fmt.Errorf("seed user %s: %w", user.Email, err)
			}
		}

		if err := db.AssignRole(ctx, adminUser.ID, adminRole.ID); err != nil {
			return err
		}
		if err := db.AssignRole(ctx, regularUser.ID, userRole.ID); err != nil {
			return err
		}
		if err := db.AssignRole(ctx, moderatorUser.ID, moderatorRole.ID); err != nil {
			return err
		}

		// regular user additionally holds a direct users:read grant
		if err := db.AssignUserPermissions(ctx, regularUser.ID,
			[]string{permissions["users:read"].ID}); err != nil {
			return err
		}

		abc := &Company{
			Name:             "ABC Hardware",
			Code:             "ABC",
			Settings:         CompanySettings{"currency": "USD", "taxRate": 0.08, "invoicePrefix": "ABC-INV"},
			SubscriptionPlan: PlanPremium,
			IsActive:         true,
		}
		xyz := &Company{
			Name:             "XYZ Tools",
			Code:             "XYZ",
			Settings:         CompanySettings{"currency": "USD", "taxRate": 0.07, "invoicePrefix": "XYZ-INV"},
			SubscriptionPlan: PlanBasic,
			IsActive:         true,
		}
		for _, company := range []*Company{abc, xyz} {
			if err := db.CreateCompany(ctx, company); err != nil {
				return fmt.Errorf("seed company %s: %w", company.Code, err)
			}
		}

		links := []*UserCompany{
			{UserID: adminUser.ID, CompanyID: abc.ID, Role: "owner", IsDefault: true},
			{UserID: adminUser.ID, CompanyID: xyz.ID, Role: "owner"},
			{UserID: regularUser.ID, CompanyID: abc.ID, Role: "staff", IsDefault: true},
			{UserID: moderatorUser.ID, CompanyID: abc.ID, Role: "sales", IsDefault: true},
		}
		for _, link := range links {
			if err := db.AddUserToCompany(ctx, link); err != nil {
				return err
			}
		}

		tools := &Category{CompanyID: abc.ID, Name: "Hand Tools"}
		if err := db.CreateCategory(ctx, tools); err != nil {
			return err
		}
		products := []*Product{
			{CompanyID: abc.ID, SKU: "HMR-001", Name: "Claw Hammer 16oz", CategoryID: tools.ID, Price: 14.99, IsActive: true},
			{CompanyID: abc.ID, SKU: "SCR-010", Name: "Screwdriver Set 10pc", CategoryID: tools.ID, Price: 24.50, IsActive: true},
		}
		for _, product := range products {
			if err := db.CreateProduct(ctx, product); err != nil {
				return fmt.Errorf("seed product %s: %w", product.SKU, err)
			}
		}

		return nil
	})
}

func permissionIDs(permissions map[string]*Permission, names ...string) []string {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		if p, ok := permissions[name]; ok {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
