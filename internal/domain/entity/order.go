package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mwangikib/dukapos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Order represents a sale rung up at the register
type Order struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	StoreID       uuid.UUID        `gorm:"type:uuid;not null;index" json:"store_id"`
	BranchID      *uuid.UUID       `gorm:"type:uuid;index" json:"branch_id,omitempty"`
	UserID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID    *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Status        enum.OrderStatus `gorm:"default:0" json:"status"`
	InvoiceNo     string           `gorm:"size:100;unique;not null" json:"invoice_no"`
	SubTotal      int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	DiscountPct   float64          `gorm:"default:0" json:"discount_pct"`
	DiscountTotal int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	TaxTotal      int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Total         int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	EwalletAmount int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	LoyaltyPoints int64            `gorm:"default:0" json:"loyalty_points"`
	TenderedTotal int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	ChangeDue     int64            `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	IsOnline      bool             `gorm:"default:false" json:"is_online"`
	Note          *string          `gorm:"type:text" json:"note,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Store    Store          `gorm:"foreignKey:StoreID" json:"-"`
	User     User           `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []OrderItem    `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Payments []OrderPayment `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (o Order) MarshalJSON() ([]byte, error) {
	type Alias Order
	return json.Marshal(&struct {
		Alias
		SubTotal      float64 `json:"sub_total"`
		DiscountTotal float64 `json:"discount_total"`
		TaxTotal      float64 `json:"tax_total"`
		Total         float64 `json:"total"`
		EwalletAmount float64 `json:"ewallet_amount"`
		TenderedTotal float64 `json:"tendered_total"`
		ChangeDue     float64 `json:"change_due"`
	}{
		Alias:         Alias(o),
		SubTotal:      float64(o.SubTotal) / 100,
		DiscountTotal: float64(o.DiscountTotal) / 100,
		TaxTotal:      float64(o.TaxTotal) / 100,
		Total:         float64(o.Total) / 100,
		EwalletAmount: float64(o.EwalletAmount) / 100,
		TenderedTotal: float64(o.TenderedTotal) / 100,
		ChangeDue:     float64(o.ChangeDue) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// GetTotalDecimal returns the total as a decimal
func (o *Order) GetTotalDecimal() float64 {
	return float64(o.Total) / 100
}

// TaxRateList stores the tax percentage snapshot for a line item as jsonb
type TaxRateList []float64

// Value serializes the rate list for storage
func (t TaxRateList) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]float64(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan deserializes the rate list from storage
func (t *TaxRateList) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("unsupported type for TaxRateList")
	}
	return json.Unmarshal(b, (*[]float64)(t))
}

// OrderItem represents a line item in an order. Prices and tax rates are
// snapshots from checkout time so later catalog edits never change history.
type OrderItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string         `gorm:"size:255;not null" json:"product_name"`
	Quantity    int            `gorm:"not null" json:"quantity"`
	UnitPrice   int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	DiscountPct float64        `gorm:"default:0" json:"discount_pct"`
	TaxRates    TaxRateList    `gorm:"type:jsonb" json:"tax_rates"`
	SubTotal    int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Tax         int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (oi OrderItem) MarshalJSON() ([]byte, error) {
	type Alias OrderItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
		SubTotal  float64 `json:"sub_total"`
		Tax       float64 `json:"tax"`
	}{
		Alias:     Alias(oi),
		UnitPrice: float64(oi.UnitPrice) / 100,
		SubTotal:  float64(oi.SubTotal) / 100,
		Tax:       float64(oi.Tax) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order item
func (oi *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if oi.ID == uuid.Nil {
		oi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderPayment represents one tender entry against an order
type OrderPayment struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OrderID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"order_id"`
	PaymentMethodID uuid.UUID      `gorm:"type:uuid;not null;index" json:"payment_method_id"`
	MethodName      string         `gorm:"size:100;not null" json:"method_name"`
	Amount          int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Reference       *string        `gorm:"size:255" json:"reference,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Order         Order         `gorm:"foreignKey:OrderID" json:"-"`
	PaymentMethod PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (op OrderPayment) MarshalJSON() ([]byte, error) {
	type Alias OrderPayment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(op),
		Amount: float64(op.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new order payment
func (op *OrderPayment) BeforeCreate(tx *gorm.DB) error {
	if op.ID == uuid.Nil {
		op.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderPayment model
func (OrderPayment) TableName() string {
	return "order_payments"
}
