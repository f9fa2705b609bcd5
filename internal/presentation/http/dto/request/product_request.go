package request

import "github.com/google/uuid"

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	CategoryID    *uuid.UUID  `json:"category_id"`
	TaxRateIDs    []uuid.UUID `json:"tax_rate_ids"`
	Name          string      `json:"name" binding:"required,min=2,max=255"`
	Barcode       string      `json:"barcode" binding:"omitempty,max=64"`
	Quantity      int         `json:"quantity" binding:"min=0"`
	QuantityAlert int         `json:"quantity_alert" binding:"min=0"`
	OriginalPrice float64     `json:"original_price" binding:"min=0"`
	Price         float64     `json:"price" binding:"min=0"`
	IsWeighted    bool        `json:"is_weighted"`
	Image         *string     `json:"image"`
	Description   *string     `json:"description"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	CategoryID    *uuid.UUID  `json:"category_id"`
	TaxRateIDs    []uuid.UUID `json:"tax_rate_ids"`
	Name          *string     `json:"name" binding:"omitempty,min=2,max=255"`
	QuantityAlert *int        `json:"quantity_alert" binding:"omitempty,min=0"`
	OriginalPrice *float64    `json:"original_price" binding:"omitempty,min=0"`
	Price         *float64    `json:"price" binding:"omitempty,min=0"`
	IsWeighted    *bool       `json:"is_weighted"`
	IsActive      *bool       `json:"is_active"`
	Image         *string     `json:"image"`
	Description   *string     `json:"description"`
}

// AdjustStockRequest sets a product's on-hand quantity after a stock take
type AdjustStockRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	LowStock   bool   `form:"low_stock"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}

// CreateCategoryRequest represents a category creation request
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}

// CreateTaxRateRequest represents a tax rate creation request
type CreateTaxRateRequest struct {
	Name      string  `json:"name" binding:"required,min=1,max=100"`
	Rate      float64 `json:"rate" binding:"min=0,max=100"`
	IsDefault bool    `json:"is_default"`
}
