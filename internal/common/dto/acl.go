package dto

// CreateRoleRequest represents a request to create a role
type CreateRoleRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreatePermissionRequest represents a request to create a permission
type CreatePermissionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Resource    string `json:"resource" binding:"required"`
	Action      string `json:"action" binding:"required"`
}

// AssignRoleRequest assigns or removes one role for one user
type AssignRoleRequest struct {
	UserID string `json:"userId" binding:"required"`
	RoleID string `json:"roleId" binding:"required"`
}

// AssignRolePermissionsRequest assigns or removes permissions of a role
type AssignRolePermissionsRequest struct {
	RoleID        string   `json:"roleId" binding:"required"`
	PermissionIDs []string `json:"permissionIds" binding:"required,min=1"`
}

// AssignUserPermissionsRequest assigns or removes direct user grants
type AssignUserPermissionsRequest struct {
	UserID        string   `json:"userId" binding:"required"`
	PermissionIDs []string `json:"permissionIds" binding:"required,min=1"`
}

// EffectivePermissionsResponse lists a user's effective permissions
type EffectivePermissionsResponse struct {
	UserID      string           `json:"userId"`
	Permissions []PermissionInfo `json:"permissions"`
}

// PermissionInfo represents one grantable permission
type PermissionInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Resource    string `json:"resource"`
	Action      string `json:"action"`
}
