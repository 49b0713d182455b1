package handler

import (
	"net/http"

	"github.com/ferrohub/ferrohub/internal/apiserver/middleware"
	"github.com/ferrohub/ferrohub/internal/common/dto"
	"github.com/ferrohub/ferrohub/internal/common/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Login authenticates a user by email and password and issues a token
func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}

	ctx := c.Request.Context()
	user, err := h.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		// do not reveal whether the account exists
		h.errs.JSON(c, errorx.ErrInvalidCredentials)
		return
	}

	if !user.IsActive {
		h.errs.JSON(c, errorx.ErrUserDisabled)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidCredentials)
		return
	}

	roleName := ""
	if role, err := h.checker.PrimaryRole(ctx, user.ID); err == nil && role != nil {
		roleName = role.Name
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Username, user.Email, roleName)
	if err != nil {
		h.logger.Error("failed to generate token", zap.String("userId", user.ID), zap.Error(err))
		h.errs.JSON(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: token,
		User: dto.UserInfo{
			ID:       user.ID,
			Email:    user.Email,
			Username: user.Username,
			Name:     user.Name,
			Role:     roleName,
		},
	})
}

// ChangePassword updates the caller's password after verifying the old one
func (h *Handler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}

	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		h.errs.JSON(c, errorx.ErrUnauthenticated)
		return
	}

	ctx := c.Request.Context()
	user, err := h.db.GetUserByID(ctx, claims.UserID)
	if err != nil {
		h.errs.JSON(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidCredentials)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.errs.JSON(c, err)
		return
	}

	user.PasswordHash = string(hash)
	if err := h.db.UpdateUser(ctx, user); err != nil {
		h.errs.JSON(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ChangePasswordResponse{Success: true})
}
