package database

import (
	"context"
	"errors"
	"time"

	"github.com/ferrohub/ferrohub/internal/common/errorx"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store implements the Database interface on top of gorm. The dialector is
// chosen by the per-driver constructors; behavior is identical across them.
type Store struct {
	db *gorm.DB
}

func newStore(gormDB *gorm.DB) (*Store, error) {
	if err := gormDB.AutoMigrate(
		&User{}, &Role{}, &Permission{},
		&UserRole{}, &RolePermission{}, &UserPermission{},
		&Company{}, &UserCompany{},
		&Category{}, &Product{}, &InventoryItem{},
	); err != nil {
		return nil, err
	}
	return &Store{db: gormDB}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction runs fn in a transaction carried on the context
func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if TransactionFromContext(ctx) != nil {
		// already inside a transaction
		return fn(ctx)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ContextWithTransaction(ctx, tx))
	})
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return getDBFromContext(ctx, s.db)
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// ---- Users ----

func (s *Store) CreateUser(ctx context.Context, user *User) error {
	ensureID(&user.ID)
	var count int64
	if err := s.conn(ctx).Model(&User{}).
		Where("email = ? OR username = ?", user.Email, user.Username).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errorx.ErrDuplicateEmail
	}
	return s.conn(ctx).Create(user).Error
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*User, error) {
	var user User
	err := s.conn(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.conn(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *User) error {
	return s.conn(ctx).Save(user).Error
}

// DeleteUser removes the user and its role, permission and company links.
// Referential cleanup is the store's responsibility, not the caller's.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.Transaction(ctx, func(ctx context.Context) error {
		if err := s.conn(ctx).Delete(&UserRole{}, "user_id = ?", id).Error; err != nil {
			return err
		}
		if err := s.conn(ctx).Delete(&UserPermission{}, "user_id = ?", id).Error; err != nil {
			return err
		}
		if err := s.conn(ctx).Delete(&UserCompany{}, "user_id = ?", id).Error; err != nil {
			return err
		}
		return s.conn(ctx).Delete(&User{}, "id = ?", id).Error
	})
}

func (s *Store) ListUsers(ctx context.Context) ([]*User, error) {
	var users []*User
	err := s.conn(ctx).Order("created_at asc").Find(&users).Error
	return users, err
}

// ---- Roles ----

func (s *Store) CreateRole(ctx context.Context, role *Role) error {
	ensureID(&role.ID)
	return s.conn(ctx).Create(role).Error
}

func (s *Store) GetRoleByID(ctx context.Context, id string) (*Role, error) {
	var role Role
	err := s.conn(ctx).Where("id = ?", id).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (s *Store) UpdateRole(ctx context.Context, role *Role) error {
	return s.conn(ctx).Save(role).Error
}

// DeleteRole cascades the role's permission links and user assignments.
func (s *Store) DeleteRole(ctx context.Context, id string) error {
	return s.Transaction(ctx, func(ctx context.Context) error {
		if err := s.conn(ctx).Delete(&RolePermission{}, "role_id = ?", id).Error; err != nil {
			return err
		}
		if err := s.conn(ctx).Delete(&UserRole{}, "role_id = ?", id).Error; err != nil {
			return err
		}
		return s.conn(ctx).Delete(&Role{}, "id = ?", id).Error
	})
}

func (s *Store) ListRoles(ctx context.Context) ([]*Role, error) {
	var roles []*Role
	err := s.conn(ctx).Order("name asc").Find(&roles).Error
	return roles, err
}

// ---- Permissions ----

func (s *Store) CreatePermission(ctx context.Context, permission *Permission) error {
	ensureID(&permission.ID)
	return s.conn(ctx).Create(permission).Error
}

func (s *Store) GetPermissionByID(ctx context.Context, id string) (*Permission, error) {
	var permission Permission
	err := s.conn(ctx).Where("id = ?", id).First(&permission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &permission, nil
}

func (s *Store) UpdatePermission(ctx context.Context, permission *Permission) error {
	return s.conn(ctx).Save(permission).Error
}

func (s *Store) DeletePermission(ctx context.Context, id string) error {
	return s.Transaction(ctx, func(ctx context.Context) error {
		if err := s.conn(ctx).Delete(&RolePermission{}, "permission_id = ?", id).Error; err != nil {
			return err
		}
		if err := s.conn(ctx).Delete(&UserPermission{}, "permission_id = ?", id).Error; err != nil {
			return err
		}
		return s.conn(ctx).Delete(&Permission{}, "id = ?", id).Error
	})
}

func (s *Store) ListPermissions(ctx context.Context) ([]*Permission, error) {
	var permissions []*Permission
	err := s.conn(ctx).Order("name asc").Find(&permissions).Error
	return permissions, err
}

// ---- User-role links ----

// AssignRole is an idempotent upsert on the (user, role) pair.
func (s *Store) AssignRole(ctx context.Context, userID, roleID string) error {
	link := &UserRole{ID: uuid.NewString(), UserID: userID, RoleID: roleID, CreatedAt: time.Now()}
	return s.conn(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "role_id"}},
		DoNothing: true,
	}).Create(link).Error
}

// RemoveRole is a no-op when the pair does not exist.
func (s *Store) RemoveRole(ctx context.Context, userID, roleID string) error {
	return s.conn(ctx).
		Delete(&UserRole{}, "user_id = ? AND role_id = ?", userID, roleID).Error
}

// GetUserRoles returns the user's roles ordered by assignment time. The
// oldest assignment doubles as the user's primary role.
func (s *Store) GetUserRoles(ctx context.Context, userID string) ([]*Role, error) {
	var roles []*Role
	err := s.conn(ctx).Model(&Role{}).
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Order("user_roles.created_at asc").
		Find(&roles).Error
	return roles, err
}

// ---- Role-permission links ----

func (s *Store) AssignRolePermissions(ctx context.Context, roleID string, permissionIDs []string) error {
	return s.Transaction(ctx, func(ctx context.Context) error {
		for _, permissionID := range permissionIDs {
			link := &RolePermission{
				ID:           uuid.NewString(),
				RoleID:       roleID,
				PermissionID: permissionID,
				CreatedAt:    time.Now(),
			}
			if err := s.conn(ctx).Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "role_id"}, {Name: "permission_id"}},
				DoNothing: true,
			}).Create(link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) RemoveRolePermissions(ctx context.Context, roleID string, permissionIDs []string) error {
	if len(permissionIDs) == 0 {
		return nil
	}
	return s.conn(ctx).
		Delete(&RolePermission{}, "role_id = ? AND permission_id IN ?", roleID, permissionIDs).Error
}

func (s *Store) GetRolePermissions(ctx context.Context, roleID string) ([]*Permission, error) {
	var permissions []*Permission
	err := s.conn(ctx).Model(&Permission{}).
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", roleID).
		Order("permissions.name asc").
		Find(&permissions).Error
	return permissions, err
}

// ---- Direct user-permission grants ----

func (s *Store) AssignUserPermissions(ctx context.Context, userID string, permissionIDs []string) error {
	return s.Transaction(ctx, func(ctx context.Context) error {
		for _, permissionID := range permissionIDs {
			link := &UserPermission{
				ID:           uuid.NewString(),
				UserID:       userID,
				PermissionID: permissionID,
				CreatedAt:    time.Now(),
			}
			if err := s.conn(ctx).Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "permission_id"}},
				DoNothing: true,
			}).Create(link).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) RemoveUserPermissions(ctx context.Context, userID string, permissionIDs []string) error {
	if len(permissionIDs) == 0 {
		return nil
	}
	return s.conn(ctx).
		Delete(&UserPermission{}, "user_id = ? AND permission_id IN ?", userID, permissionIDs).Error
}

func (s *Store) GetUserPermissions(ctx context.Context, userID string) ([]*Permission, error) {
	var permissions []*Permission
	err := s.conn(ctx).Model(&Permission{}).
		Joins("JOIN user_permissions ON user_permissions.permission_id = permissions.id").
		Where("user_permissions.user_id = ?", userID).
		Order("permissions.name asc").
		Find(&permissions).Error
	return permissions, err
}

// ---- Companies ----

func (s *Store) CreateCompany(ctx context.Context, company *Company) error {
	ensureID(&company.ID)
	var count int64
	if err := s.conn(ctx).Model(&Company{}).
		Where("code = ?", company.Code).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errorx.ErrDuplicateCompanyCode
	}
	return s.conn(ctx).Create(company).Error
}

func (s *Store) GetCompanyByID(ctx context.Context, id string) (*Company, error) {
	var company Company
	err := s.conn(ctx).Where("id = ?", id).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (s *Store) GetCompanyByCode(ctx context.Context, code string) (*Company, error) {
	var company Company
	err := s.conn(ctx).Where("code = ?", code).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.ErrCompanyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// UpdateCompany re-validates code uniqueness only when the code changed.
func (s *Store) UpdateCompany(ctx context.Context, company *Company) error {
	current, err := s.GetCompanyByID(ctx, company.ID)
	if err != nil {
		return err
	}
	if company.Code != current.Code {
		var count int64
		if err := s.conn(ctx).Model(&Company{}).
			Where("code = ? AND id <> ?", company.Code, company.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errorx.ErrDuplicateCompanyCode
		}
	}
	return s.conn(ctx).Save(company).Error
}

func (s *Store) DeleteCompany(ctx context.Context, id string) error {
	return s.Transaction(ctx, func(ctx context.Context) error {
		if err := s.conn(ctx).Delete(&UserCompany{}, "company_id = ?", id).Error; err != nil {
			return err
		}
		if err := s.conn(ctx).Delete(&InventoryItem{}, "company_id = ?", id).Error; err != nil {
			return err
		}
		if err := s.conn(ctx).Delete(&Product{}, "company_id = ?", id).Error; err != nil {
			return err
		}
		if err := s.conn(ctx).Delete(&Category{}, "company_id = ?", id).Error; err != nil {
			return err
		}
		return s.conn(ctx).Delete(&Company{}, "id = ?", id).Error
	})
}

func (s *Store) ListCompanies(ctx context.Context) ([]*Company, error) {
	var companies []*Company
	err := s.conn(ctx).Order("name asc").Find(&companies).Error
	return companies, err
}

func (s *Store) UpdateCompanySettings(ctx context.Context, companyID string, settings CompanySettings) error {
	result := s.conn(ctx).Model(&Company{}).
		Where("id = ?", companyID).
		Update("settings", settings)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errorx.ErrCompanyNotFound
	}
	return nil
}

// ---- User-company links ----

func (s *Store) AddUserToCompany(ctx context.Context, link *UserCompany) error {
	ensureID(&link.ID)
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now()
	}
	return s.Transaction(ctx, func(ctx context.Context) error {
		if err := s.conn(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "company_id"}},
			DoNothing: true,
		}).Create(link).Error; err != nil {
			return err
		}
		if link.IsDefault {
			return s.SetDefaultCompany(ctx, link.UserID, link.CompanyID)
		}
		return nil
	})
}

func (s *Store) RemoveUserFromCompany(ctx context.Context, userID, companyID string) error {
	return s.conn(ctx).
		Delete(&UserCompany{}, "user_id = ? AND company_id = ?", userID, companyID).Error
}

func (s *Store) GetUserCompany(ctx context.Context, userID, companyID string) (*UserCompany, error) {
	var link UserCompany
	err := s.conn(ctx).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.ErrCompanyAccessDenied
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *Store) GetUserCompanies(ctx context.Context, userID string) ([]*Company, error) {
	var companies []*Company
	err := s.conn(ctx).Model(&Company{}).
		Joins("JOIN user_companies ON user_companies.company_id = companies.id").
		Where("user_companies.user_id = ?", userID).
		Order("companies.name asc").
		Find(&companies).Error
	return companies, err
}

// GetDefaultCompany returns nil without error when the user has no default.
func (s *Store) GetDefaultCompany(ctx context.Context, userID string) (*UserCompany, error) {
	var link UserCompany
	err := s.conn(ctx).
		Where("user_id = ? AND is_default = ?", userID, true).
		Order("created_at asc").
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// SetDefaultCompany unsets other defaults in the same transaction so at
// most one link per user is marked default.
func (s *Store) SetDefaultCompany(ctx context.Context, userID, companyID string) error {
	return s.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.GetUserCompany(ctx, userID, companyID); err != nil {
			return err
		}
		if err := s.conn(ctx).Model(&UserCompany{}).
			Where("user_id = ? AND company_id <> ?", userID, companyID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return s.conn(ctx).Model(&UserCompany{}).
			Where("user_id = ? AND company_id = ?", userID, companyID).
			Update("is_default", true).Error
	})
}

// ---- Categories ----

func (s *Store) CreateCategory(ctx context.Context, category *Category) error {
	ensureID(&category.ID)
	return s.conn(ctx).Create(category).Error
}

func (s *Store) GetCategoryByID(ctx context.Context, companyID, id string) (*Category, error) {
	var category Category
	err := s.conn(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *Store) ListCategories(ctx context.Context, companyID string) ([]*Category, error) {
	var categories []*Category
	err := s.conn(ctx).
		Where("company_id = ?", companyID).
		Order("name asc").
		Find(&categories).Error
	return categories, err
}

// ---- Products ----

// CreateProduct also creates the initial "main" inventory item, matching
// the stock bootstrap every new product gets.
func (s *Store) CreateProduct(ctx context.Context, product *Product) error {
	ensureID(&product.ID)
	return s.Transaction(ctx, func(ctx context.Context) error {
		var count int64
		if err := s.conn(ctx).Model(&Product{}).
			Where("company_id = ? AND sku = ?", product.CompanyID, product.SKU).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errorx.ErrDuplicateSKU
		}
		if err := s.conn(ctx).Create(product).Error; err != nil {
			return err
		}
		item := &InventoryItem{
			ID:        uuid.NewString(),
			CompanyID: product.CompanyID,
			ProductID: product.ID,
			Location:  "main",
		}
		return s.conn(ctx).Create(item).Error
	})
}

func (s *Store) GetProductByID(ctx context.Context, companyID, id string) (*Product, error) {
	var product Product
	err := s.conn(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errorx.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct re-validates SKU uniqueness only when the SKU changed.
func (s *Store) UpdateProduct(ctx context.Context, product *Product) error {
	current, err := s.GetProductByID(ctx, product.CompanyID, product.ID)
	if err != nil {
		return err
	}
	if product.SKU != current.SKU {
		var count int64
		if err := s.conn(ctx).Model(&Product{}).
			Where("company_id = ? AND sku = ? AND id <> ?", product.CompanyID, product.SKU, product.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errorx.ErrDuplicateSKU
		}
	}
	return s.conn(ctx).Save(product).Error
}

func (s *Store) DeleteProduct(ctx context.Context, companyID, id string) error {
	return s.Transaction(ctx, func(ctx context.Context) error {
		if err := s.conn(ctx).
			Delete(&InventoryItem{}, "company_id = ? AND product_id = ?", companyID, id).Error; err != nil {
			return err
		}
		return s.conn(ctx).
			Delete(&Product{}, "company_id = ? AND id = ?", companyID, id).Error
	})
}

func (s *Store) ListProducts(ctx context.Context, companyID string, filter ProductFilter) ([]*Product, error) {
	query := s.conn(ctx).Where("company_id = ?", companyID)
	if filter.CategoryID != "" {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}
	var products []*Product
	err := query.Order("name asc").Find(&products).Error
	return products, err
}

// ---- Inventory ----

func (s *Store) ListInventory(ctx context.Context, companyID string) ([]*InventoryItem, error) {
	var items []*InventoryItem
	err := s.conn(ctx).
		Where("company_id = ?", companyID).
		Order("product_id asc, location asc").
		Find(&items).Error
	return items, err
}

func (s *Store) UpdateInventoryQuantity(ctx context.Context, companyID, productID, location string, quantity int) error {
	result := s.conn(ctx).Model(&InventoryItem{}).
		Where("company_id = ? AND product_id = ? AND location = ?", companyID, productID, location).
		Update("quantity", quantity)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errorx.ErrNotFound
	}
	return nil
}
