package database

import (
	"context"
)

// ProductFilter narrows product listings within a company.
type ProductFilter struct {
	CategoryID string
	IsActive   *bool
}

// Database defines the methods for identity-store and business-data
// operations. All reads and writes are I/O boundaries and take a context.
type Database interface {
	// Close closes the database connection.
	Close() error

	// Transaction runs fn inside a single transaction; the transaction is
	// carried on the context for every Database call made within fn.
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Users
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
	// DeleteUser removes the user and cascades its role, permission and
	// company links.
	DeleteUser(ctx context.Context, id string) error
	ListUsers(ctx context.Context) ([]*User, error)

	// Roles
	CreateRole(ctx context.Context, role *Role) error
	GetRoleByID(ctx context.Context, id string) (*Role, error)
	UpdateRole(ctx context.Context, role *Role) error
	// DeleteRole removes the role and cascades its permission and user links.
	DeleteRole(ctx context.Context, id string) error
	ListRoles(ctx context.Context) ([]*Role, error)

	// Permissions
	CreatePermission(ctx context.Context, permission *Permission) error
	GetPermissionByID(ctx context.Context, id string) (*Permission, error)
	UpdatePermission(ctx context.Context, permission *Permission) error
	DeletePermission(ctx context.Context, id string) error
	ListPermissions(ctx context.Context) ([]*Permission, error)

	// User-role links. AssignRole is an idempotent upsert; RemoveRole is a
	// no-op when the pair is absent.
	AssignRole(ctx context.Context, userID, roleID string) error
	RemoveRole(ctx context.Context, userID, roleID string) error
	// GetUserRoles returns roles ordered by assignment time, oldest first.
	GetUserRoles(ctx context.Context, userID string) ([]*Role, error)

	// Role-permission links, batch semantics.
	AssignRolePermissions(ctx context.Context, roleID string, permissionIDs []string) error
	RemoveRolePermissions(ctx context.Context, roleID string, permissionIDs []string) error
	GetRolePermissions(ctx context.Context, roleID string) ([]*Permission, error)

	// Direct user-permission grants, batch semantics.
	AssignUserPermissions(ctx context.Context, userID string, permissionIDs []string) error
	RemoveUserPermissions(ctx context.Context, userID string, permissionIDs []string) error
	GetUserPermissions(ctx context.Context, userID string) ([]*Permission, error)

	// Companies. Code comparison is case-sensitive at this level; callers
	// normalize case before calling.
	CreateCompany(ctx context.Context, company *Company) error
	GetCompanyByID(ctx context.Context, id string) (*Company, error)
	GetCompanyByCode(ctx context.Context, code string) (*Company, error)
	UpdateCompany(ctx context.Context, company *Company) error
	DeleteCompany(ctx context.Context, id string) error
	ListCompanies(ctx context.Context) ([]*Company, error)
	UpdateCompanySettings(ctx context.Context, companyID string, settings CompanySettings) error

	// User-company links.
	AddUserToCompany(ctx context.Context, link *UserCompany) error
	RemoveUserFromCompany(ctx context.Context, userID, companyID string) error
	GetUserCompany(ctx context.Context, userID, companyID string) (*UserCompany, error)
	GetUserCompanies(ctx context.Context, userID string) ([]*Company, error)
	// GetDefaultCompany returns the user's default link or nil when none.
	GetDefaultCompany(ctx context.Context, userID string) (*UserCompany, error)
	// SetDefaultCompany marks one link default and unsets the others
	// atomically.
	SetDefaultCompany(ctx context.Context, userID, companyID string) error

	// Categories
	CreateCategory(ctx context.Context, category *Category) error
	GetCategoryByID(ctx context.Context, companyID, id string) (*Category, error)
	ListCategories(ctx context.Context, companyID string) ([]*Category, error)

	// Products. SKU uniqueness is scoped to the company.
	CreateProduct(ctx context.Context, product *Product) error
	GetProductByID(ctx context.Context, companyID, id string) (*Product, error)
	UpdateProduct(ctx context.Context, product *Product) error
	DeleteProduct(ctx context.Context, companyID, id string) error
	ListProducts(ctx context.Context, companyID string, filter ProductFilter) ([]*Product, error)

	// Inventory
	ListInventory(ctx context.Context, companyID string) ([]*InventoryItem, error)
	UpdateInventoryQuantity(ctx context.Context, companyID, productID, location string, quantity int) error
}
