package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// SubscriptionPlan represents a company's subscription tier
type SubscriptionPlan string

const (
	PlanBasic      SubscriptionPlan = "basic"
	PlanPremium    SubscriptionPlan = "premium"
	PlanEnterprise SubscriptionPlan = "enterprise"
)

// User represents an account holder
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Username     string    `json:"username" gorm:"type:varchar(50);uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"type:varchar(100)"`
	PasswordHash string    `json:"-" gorm:"not null"` // never exposed in JSON
	IsActive     bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Role represents a named bundle of permissions
type Role struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(50);not null"`
	Description string    `json:"description" gorm:"type:varchar(255)"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Permission represents a grantable (resource, action) pair. The pair is
// the semantic key; name is a denormalized "resource:action" label.
type Permission struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Description string    `json:"description" gorm:"type:varchar(255)"`
	Resource    string    `json:"resource" gorm:"type:varchar(50);not null;index:idx_resource_action"`
	Action      string    `json:"action" gorm:"type:varchar(50);not null;index:idx_resource_action"`
	CreatedAt   time.Time `json:"createdAt"`
}

// UserRole links a user to a role it holds
type UserRole struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:idx_user_role"`
	RoleID    string    `json:"roleId" gorm:"type:varchar(36);not null;uniqueIndex:idx_user_role"`
	CreatedAt time.Time `json:"createdAt"`
}

// RolePermission links a role to a permission it grants
type RolePermission struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RoleID       string    `json:"roleId" gorm:"type:varchar(36);not null;uniqueIndex:idx_role_permission"`
	PermissionID string    `json:"permissionId" gorm:"type:varchar(36);not null;uniqueIndex:idx_role_permission"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserPermission is a direct grant that bypasses roles. Strictly additive;
// there is no deny concept.
type UserPermission struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID       string    `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:idx_user_permission"`
	PermissionID string    `json:"permissionId" gorm:"type:varchar(36);not null;uniqueIndex:idx_user_permission"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CompanySettings holds opaque per-company configuration (currency, tax
// rate, document-number prefixes). Stored as a JSON column.
type CompanySettings map[string]any

// Value implements driver.Valuer
func (s CompanySettings) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner
func (s *CompanySettings) Scan(value any) error {
	if value == nil {
		*s = CompanySettings{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported settings type %T", value)
	}
}

// Company represents a tenant
type Company struct {
	ID               string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name             string           `json:"name" gorm:"type:varchar(100);not null"`
	Code             string           `json:"code" gorm:"type:varchar(20);uniqueIndex;not null"`
	Settings         CompanySettings  `json:"settings" gorm:"type:text"`
	SubscriptionPlan SubscriptionPlan `json:"subscriptionPlan" gorm:"type:varchar(20);not null;default:'basic'"`
	IsActive         bool             `json:"isActive" gorm:"not null;default:true"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

// UserCompany links a user to a tenant it may act on. Role is a free-text
// per-company label, distinct from the global Role entity.
type UserCompany struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);not null;uniqueIndex:idx_user_company"`
	CompanyID string    `json:"companyId" gorm:"type:varchar(36);not null;uniqueIndex:idx_user_company"`
	Role      string    `json:"role" gorm:"type:varchar(50)"`
	IsDefault bool      `json:"isDefault" gorm:"not null;default:false"`
	CreatedAt time.Time `json:"createdAt"`
}

// Category groups products within one company
type Category struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CompanyID string    `json:"companyId" gorm:"type:varchar(36);not null;index"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `json:"createdAt"`
}

// Product is company-scoped; SKU is unique within one company only
type Product struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CompanyID   string    `json:"companyId" gorm:"type:varchar(36);not null;uniqueIndex:idx_company_sku"`
	SKU         string    `json:"sku" gorm:"type:varchar(50);not null;uniqueIndex:idx_company_sku"`
	Name        string    `json:"name" gorm:"type:varchar(200);not null"`
	Description string    `json:"description" gorm:"type:varchar(1000)"`
	CategoryID  string    `json:"categoryId,omitempty" gorm:"type:varchar(36);index"`
	Price       float64   `json:"price"`
	IsActive    bool      `json:"isActive" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// InventoryItem tracks stock of one product at one location
type InventoryItem struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CompanyID    string    `json:"companyId" gorm:"type:varchar(36);not null;index"`
	ProductID    string    `json:"productId" gorm:"type:varchar(36);not null;uniqueIndex:idx_product_location"`
	Location     string    `json:"location" gorm:"type:varchar(50);not null;uniqueIndex:idx_product_location"`
	Quantity     int       `json:"quantity" gorm:"not null;default:0"`
	ReservedQty  int       `json:"reservedQty" gorm:"not null;default:0"`
	ReorderLevel int       `json:"reorderLevel" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
