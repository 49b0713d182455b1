package dto

// CreateProductRequest represents a request to create a product in the
// resolved company
type CreateProductRequest struct {
	SKU         string  `json:"sku" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	CategoryID  string  `json:"categoryId"`
	Price       float64 `json:"price" binding:"gte=0"`
}

// UpdateProductRequest represents a request to update a product. Nil fields
// are left unchanged.
type UpdateProductRequest struct {
	SKU         *string  `json:"sku,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	CategoryID  *string  `json:"categoryId,omitempty"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,gte=0"`
	IsActive    *bool    `json:"isActive,omitempty"`
}

// UpdateInventoryRequest adjusts the stock quantity of one inventory item
type UpdateInventoryRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Location  string `json:"location"`
	Quantity  int    `json:"quantity" binding:"gte=0"`
}
