package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ferrohub/ferrohub/internal/apiserver/database"
	"github.com/ferrohub/ferrohub/internal/common/dto"
	"github.com/ferrohub/ferrohub/internal/common/errorx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const settingsCachePrefix = "company:settings:"

// ListCompanies returns all companies
func (h *Handler) ListCompanies(c *gin.Context) {
	companies, err := h.db.ListCompanies(c.Request.Context())
	if err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

// GetCompany returns one company by id
func (h *Handler) GetCompany(c *gin.Context) {
	company, err := h.db.GetCompanyByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

// CreateCompany creates a company. Codes are stored upper-cased.
func (h *Handler) CreateCompany(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}

	plan := database.SubscriptionPlan(req.SubscriptionPlan)
	if plan == "" {
		plan = database.PlanBasic
	}
	company := &database.Company{
		Name:             req.Name,
		Code:             strings.ToUpper(req.Code),
		SubscriptionPlan: plan,
		Settings:         database.CompanySettings(req.Settings),
		IsActive:         true,
	}
	if err := h.db.CreateCompany(c.Request.Context(), company); err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

// UpdateCompany applies a partial update to a company
func (h *Handler) UpdateCompany(c *gin.Context) {
	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}

	ctx := c.Request.Context()
	company, err := h.db.GetCompanyByID(ctx, c.Param("id"))
	if err != nil {
		h.errs.JSON(c, err)
		return
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.Code != nil {
		company.Code = strings.ToUpper(*req.Code)
	}
	if req.SubscriptionPlan != nil {
		company.SubscriptionPlan = database.SubscriptionPlan(*req.SubscriptionPlan)
	}
	if req.IsActive != nil {
		company.IsActive = *req.IsActive
	}

	if err := h.db.UpdateCompany(ctx, company); err != nil {
		h.errs.JSON(c, err)
		return
	}
	h.invalidateSettings(c, company.ID)
	c.JSON(http.StatusOK, company)
}

// DeleteCompany removes a company and its memberships
func (h *Handler) DeleteCompany(c *gin.Context) {
	id := c.Param("id")
	if err := h.db.DeleteCompany(c.Request.Context(), id); err != nil {
		h.errs.JSON(c, err)
		return
	}
	h.invalidateSettings(c, id)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetCompanySettings returns the resolved company's settings, served from
// cache when warm.
func (h *Handler) GetCompanySettings(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	key := settingsCachePrefix + companyID
	if cached, found, err := h.cache.Get(ctx, key); err == nil && found {
		var settings database.CompanySettings
		if err := json.Unmarshal(cached, &settings); err == nil {
			c.JSON(http.StatusOK, gin.H{"companyId": companyID, "settings": settings})
			return
		}
	}

	company, err := h.db.GetCompanyByID(ctx, companyID)
	if err != nil {
		h.errs.JSON(c, err)
		return
	}

	if data, err := json.Marshal(company.Settings); err == nil {
		if err := h.cache.Set(ctx, key, data, h.cfg.Cache.TTL); err != nil {
			h.logger.Warn("failed to cache company settings",
				zap.String("companyId", companyID), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"companyId": companyID, "settings": company.Settings})
}

// UpdateCompanySettings replaces the resolved company's settings and
// invalidates the cached copy.
func (h *Handler) UpdateCompanySettings(c *gin.Context) {
	var req dto.UpdateCompanySettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}

	companyID, ok := h.companyID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.db.UpdateCompanySettings(ctx, companyID, database.CompanySettings(req.Settings)); err != nil {
		h.errs.JSON(c, err)
		return
	}
	h.invalidateSettings(c, companyID)

	c.JSON(http.StatusOK, gin.H{"companyId": companyID, "settings": req.Settings})
}

// AddUserToCompany links a user to a company
func (h *Handler) AddUserToCompany(c *gin.Context) {
	var req dto.AddUserToCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}

	link := &database.UserCompany{
		UserID:    req.UserID,
		CompanyID: req.CompanyID,
		Role:      req.Role,
		IsDefault: req.IsDefault,
	}
	if err := h.db.AddUserToCompany(c.Request.Context(), link); err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

func (h *Handler) invalidateSettings(c *gin.Context, companyID string) {
	if err := h.cache.Delete(c.Request.Context(), settingsCachePrefix+companyID); err != nil {
		h.logger.Warn("failed to invalidate settings cache",
			zap.String("companyId", companyID), zap.Error(err))
	}
}
