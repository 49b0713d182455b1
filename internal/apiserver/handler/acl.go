package handler

import (
	"net/http"

	"github.com/ferrohub/ferrohub/internal/apiserver/database"
	"github.com/ferrohub/ferrohub/internal/common/dto"
	"github.com/ferrohub/ferrohub/internal/common/errorx"

	"github.com/gin-gonic/gin"
)

// ListPermissions returns all grantable permissions
func (h *Handler) ListPermissions(c *gin.Context) {
	permissions, err := h.db.ListPermissions(c.Request.Context())
	if err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, permissions)
}

// CreatePermission registers a new (resource, action) pair
func (h *Handler) CreatePermission(c *gin.Context) {
	var req dto.CreatePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}

	name := req.Name
	if name == "" {
		name = req.Resource + ":" + req.Action
	}
	permission := &database.Permission{
		Name:        name,
		Description: req.Description,
		Resource:    req.Resource,
		Action:      req.Action,
	}
	if err := h.db.CreatePermission(c.Request.Context(), permission); err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusCreated, permission)
}

// ListRoles returns all roles
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.db.ListRoles(c.Request.Context())
	if err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

// CreateRole creates a role
func (h *Handler) CreateRole(c *gin.Context) {
	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}

	role := &database.Role{Name: req.Name, Description: req.Description}
	if err := h.db.CreateRole(c.Request.Context(), role); err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusCreated, role)
}

// UpdateRole updates a role's name or description
func (h *Handler) UpdateRole(c *gin.Context) {
	var req dto.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}

	ctx := c.Request.Context()
	role, err := h.db.GetRoleByID(ctx, c.Param("id"))
	if err != nil {
		h.errs.JSON(c, err)
		return
	}

	role.Name = req.Name
	role.Description = req.Description
	if err := h.db.UpdateRole(ctx, role); err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

// DeleteRole removes a role and its assignments
func (h *Handler) DeleteRole(c *gin.Context) {
	if err := h.db.DeleteRole(c.Request.Context(), c.Param("id")); err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AssignRole grants a role to a user. Repeating the call is a no-op.
func (h *Handler) AssignRole(c *gin.Context) {
	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}

	if err := h.db.AssignRole(c.Request.Context(), req.UserID, req.RoleID); err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RemoveRole revokes a role from a user. Removing an absent assignment
// succeeds silently.
func (h *Handler) RemoveRole(c *gin.Context) {
	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}

	if err := h.db.RemoveRole(c.Request.Context(), req.UserID, req.RoleID); err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AssignRolePermissions grants a batch of permissions to a role
func (h *Handler) AssignRolePermissions(c *gin.Context) {
	var req dto.AssignRolePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}

	if err := h.db.AssignRolePermissions(c.Request.Context(), req.RoleID, req.PermissionIDs); err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RemoveRolePermissions revokes a batch of permissions from a role
func (h *Handler) RemoveRolePermissions(c *gin.Context) {
	var req dto.AssignRolePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}

	if err := h.db.RemoveRolePermissions(c.Request.Context(), req.RoleID, req.PermissionIDs); err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// AssignUserPermissions grants direct permissions to a user, bypassing roles
func (h *Handler) AssignUserPermissions(c *gin.Context) {
	var req dto.AssignUserPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}

	if err := h.db.AssignUserPermissions(c.Request.Context(), req.UserID, req.PermissionIDs); err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RemoveUserPermissions revokes direct permissions from a user
func (h *Handler) RemoveUserPermissions(c *gin.Context) {
	var req dto.AssignUserPermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}

	if err := h.db.RemoveUserPermissions(c.Request.Context(), req.UserID, req.PermissionIDs); err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetUserRoles lists a user's roles in assignment order
func (h *Handler) GetUserRoles(c *gin.Context) {
	roles, err := h.db.GetUserRoles(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

// GetRolePermissions lists the permissions granted to a role
func (h *Handler) GetRolePermissions(c *gin.Context) {
	permissions, err := h.db.GetRolePermissions(c.Request.Context(), c.Param("roleId"))
	if err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, permissions)
}

// GetUserPermissions lists only the permissions granted to a user directly,
// not the ones derived from roles. Admin UIs diff this list to decide which
// direct grants to add or remove.
func (h *Handler) GetUserPermissions(c *gin.Context) {
	permissions, err := h.db.GetUserPermissions(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, permissions)
}

// GetEffectivePermissions returns a user's effective permissions, the union
// of role-derived and directly granted ones.
func (h *Handler) GetEffectivePermissions(c *gin.Context) {
	userID := c.Param("userId")
	permissions, err := h.checker.EffectivePermissions(c.Request.Context(), userID)
	if err != nil {
		h.errs.JSON(c, err)
		return
	}

	infos := make([]dto.PermissionInfo, 0, len(permissions))
	for _, p := range permissions {
		infos = append(infos, dto.PermissionInfo{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Resource:    p.Resource,
			Action:      p.Action,
		})
	}
	c.JSON(http.StatusOK, dto.EffectivePermissionsResponse{UserID: userID, Permissions: infos})
}
