package dto

// CreateCompanyRequest represents a request to create a company
type CreateCompanyRequest struct {
	Name             string         `json:"name" binding:"required"`
	Code             string         `json:"code" binding:"required,alphanum"`
	SubscriptionPlan string         `json:"subscriptionPlan" binding:"omitempty,oneof=basic premium enterprise"`
	Settings         map[string]any `json:"settings"`
}

// UpdateCompanyRequest represents a request to update a company. Nil fields
// are left unchanged.
type UpdateCompanyRequest struct {
	Name             *string `json:"name,omitempty"`
	Code             *string `json:"code,omitempty" binding:"omitempty,alphanum"`
	SubscriptionPlan *string `json:"subscriptionPlan,omitempty" binding:"omitempty,oneof=basic premium enterprise"`
	IsActive         *bool   `json:"isActive,omitempty"`
}

// UpdateCompanySettingsRequest replaces the resolved company's settings
type UpdateCompanySettingsRequest struct {
	Settings map[string]any `json:"settings" binding:"required"`
}

// AddUserToCompanyRequest links a user to a company
type AddUserToCompanyRequest struct {
	UserID    string `json:"userId" binding:"required"`
	CompanyID string `json:"companyId" binding:"required"`
	Role      string `json:"role"`
	IsDefault bool   `json:"isDefault"`
}
