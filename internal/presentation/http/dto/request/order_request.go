package request

import "github.com/google/uuid"

// OrderItemRequest is one cart line. It carries no price; the server prices
// every line from the catalog.
type OrderItemRequest struct {
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	Quantity    int       `json:"quantity" binding:"required,min=1"`
	DiscountPct float64   `json:"discount_pct" binding:"min=0,max=100"`
}

// OrderPaymentRequest is one tender entry
type OrderPaymentRequest struct {
	PaymentMethodID uuid.UUID `json:"payment_method_id" binding:"required"`
	Amount          float64   `json:"amount" binding:"required,gt=0"`
	Reference       *string   `json:"reference"`
}

// CreateOrderRequest represents a checkout request
type CreateOrderRequest struct {
	BranchID      *uuid.UUID            `json:"branch_id"`
	CustomerID    *uuid.UUID            `json:"customer_id"`
	DiscountPct   float64               `json:"discount_pct" binding:"min=0,max=100"`
	PromoCode     string                `json:"promo_code"`
	Items         []OrderItemRequest    `json:"items" binding:"required,min=1,dive"`
	Payments      []OrderPaymentRequest `json:"payments" binding:"dive"`
	EwalletAmount float64               `json:"ewallet_amount" binding:"min=0"`
	LoyaltyPoints int64                 `json:"loyalty_points" binding:"min=0"`
	Note          *string               `json:"note"`
}

// HoldOrderRequest parks a cart. Payments are not accepted on a hold.
type HoldOrderRequest struct {
	BranchID    *uuid.UUID         `json:"branch_id"`
	CustomerID  *uuid.UUID         `json:"customer_id"`
	DiscountPct float64            `json:"discount_pct" binding:"min=0,max=100"`
	Items       []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Note        *string            `json:"note"`
}

// CancelOrderRequest represents an order cancellation request
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// OrderFilterRequest represents order filter parameters
type OrderFilterRequest struct {
	Search     string `form:"search"`
	Status     string `form:"status"`
	CustomerID string `form:"customer_id"`
	UserID     string `form:"user_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
	Cursor     string `form:"cursor"`
	Limit      int    `form:"limit"` // For cursor-based pagination
}

// OfflineOrderRequest is one queued offline sale
type OfflineOrderRequest struct {
	ClientKey string             `json:"client_key" binding:"required"`
	Order     CreateOrderRequest `json:"order" binding:"required"`
}

// SyncOrdersRequest represents a batch of offline sales to replay
type SyncOrdersRequest struct {
	Transactions []OfflineOrderRequest `json:"transactions" binding:"required,min=1,dive"`
}
