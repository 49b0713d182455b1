package handler

import (
	"net/http"

	"github.com/ferrohub/ferrohub/internal/apiserver/database"
	"github.com/ferrohub/ferrohub/internal/common/dto"
	"github.com/ferrohub/ferrohub/internal/common/errorx"

	"github.com/gin-gonic/gin"
)

// ListProducts returns the resolved company's products
func (h *Handler) ListProducts(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}

	filter := database.ProductFilter{CategoryID: c.Query("categoryId")}
	if v, set := c.GetQuery("isActive"); set {
		active := v == "true"
		filter.IsActive = &active
	}

	products, err := h.db.ListProducts(c.Request.Context(), companyID, filter)
	if err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct returns one product within the resolved company
func (h *Handler) GetProduct(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}

	product, err := h.db.GetProductByID(c.Request.Context(), companyID, c.Param("id"))
	if err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct creates a product in the resolved company. The SKU must be
// unique within that company only.
func (h *Handler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}

	companyID, ok := h.companyID(c)
	if !ok {
		return
	}

	product := &database.Product{
		CompanyID:   companyID,
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		IsActive:    true,
	}
	if err := h.db.CreateProduct(c.Request.Context(), product); err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct applies a partial update to a product
func (h *Handler) UpdateProduct(c *gin.Context) {
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}

	companyID, ok := h.companyID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	product, err := h.db.GetProductByID(ctx, companyID, c.Param("id"))
	if err != nil {
		h.errs.JSON(c, err)
		return
	}

	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.db.UpdateProduct(ctx, product); err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product and its inventory items
func (h *Handler) DeleteProduct(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}

	if err := h.db.DeleteProduct(c.Request.Context(), companyID, c.Param("id")); err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListInventory returns the resolved company's inventory items
func (h *Handler) ListInventory(c *gin.Context) {
	companyID, ok := h.companyID(c)
	if !ok {
		return
	}

	items, err := h.db.ListInventory(c.Request.Context(), companyID)
	if err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// UpdateInventory sets the stock quantity of one product at one location
func (h *Handler) UpdateInventory(c *gin.Context) {
	var req dto.UpdateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errs.JSON(c, errorx.ErrInvalidRequest.WithMessage(err.Error()))
		return
	}

	companyID, ok := h.companyID(c)
	if !ok {
		return
	}

	location := req.Location
	if location == "" {
		location = "main"
	}
	if err := h.db.UpdateInventoryQuantity(c.Request.Context(), companyID, req.ProductID, location, req.Quantity); err != nil {
		h.errs.JSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
