package handler

import (
	"net/http"

	"github.com/ferrohub/ferrohub/internal/apiserver/database"
	"github.com/ferrohub/ferrohub/internal/common/dto"
	"github.com/ferrohub/ferrohub/internal/common/errorx"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// ListUsers returns all users
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.db.ListUsers(c.Request.Context())
	if err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser returns one user by id
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.db.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser creates a user with a bcrypt-hashed password
func (h *Handler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.errs.JSON(c, err)
		return
	}

	user := &database.User{
		Email:        req.Email,
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := h.db.CreateUser(c.Request.Context(), user); err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// UpdateUser applies a partial update to a user
func (h *Handler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}

	ctx := c.Request.Context()
	user, err := h.db.GetUserByID(ctx, c.Param("id"))
	if err != nil {
		h.errs.JSON(c, err)
		return
	}

	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := h.db.UpdateUser(ctx, user); err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a user and all its assignments
func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.db.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
