package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mwangikib/dukapos-api/internal/domain/checkout"
	"gorm.io/gorm"
)

// Product represents a sellable item in the catalog
type Product struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	StoreID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"store_id"`
	CategoryID    *uuid.UUID     `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Slug          string         `gorm:"size:255;not null;index" json:"slug"`
	Barcode       string         `gorm:"size:100;unique;not null" json:"barcode"`
	Quantity      int            `gorm:"default:0" json:"quantity"`
	QuantityAlert int            `gorm:"default:0" json:"quantity_alert"`
	OriginalPrice int64          `gorm:"default:0" json:"original_price"` // Stored in cents
	Price         int64          `gorm:"default:0" json:"price"`          // Stored in cents
	IsWeighted    bool           `gorm:"default:false" json:"is_weighted"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	Image         *string        `gorm:"size:255" json:"image,omitempty"`
	Description   *string        `gorm:"type:text" json:"description,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Store    Store     `gorm:"foreignKey:StoreID" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	TaxRates []TaxRate `gorm:"many2many:product_tax_rates" json:"tax_rates,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetPriceDecimal returns the selling price as a decimal (for display)
func (p *Product) GetPriceDecimal() float64 {
	return float64(p.Price) / 100
}

// GetOriginalPriceDecimal returns the cost price as a decimal (for display)
func (p *Product) GetOriginalPriceDecimal() float64 {
	return float64(p.OriginalPrice) / 100
}

// SetPriceFromDecimal sets the selling price from a decimal value
func (p *Product) SetPriceFromDecimal(price float64) {
	p.Price = checkout.Cents(price)
}

// SetOriginalPriceFromDecimal sets the cost price from a decimal value
func (p *Product) SetOriginalPriceFromDecimal(price float64) {
	p.OriginalPrice = checkout.Cents(price)
}

// TaxRatePercents returns the percentage rates attached to the product
func (p *Product) TaxRatePercents() []float64 {
	rates := make([]float64, 0, len(p.TaxRates))
	for _, r := range p.TaxRates {
		rates = append(rates, r.Rate)
	}
	return rates
}

// IsLowStock reports whether quantity has dropped to the alert threshold
func (p *Product) IsLowStock() bool {
	return p.QuantityAlert > 0 && p.Quantity <= p.QuantityAlert
}

// ProductJSON is a helper struct for JSON marshaling with decimal prices
type ProductJSON struct {
	ID            uuid.UUID  `json:"id"`
	StoreID       uuid.UUID  `json:"store_id"`
	CategoryID    *uuid.UUID `json:"category_id,omitempty"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Barcode       string     `json:"barcode"`
	Quantity      int        `json:"quantity"`
	QuantityAlert int        `json:"quantity_alert"`
	OriginalPrice float64    `json:"original_price"` // Decimal value for JSON
	Price         float64    `json:"price"`          // Decimal value for JSON
	IsWeighted    bool       `json:"is_weighted"`
	IsActive      bool       `json:"is_active"`
	Image         *string    `json:"image,omitempty"`
	Description   *string    `json:"description,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Category      *Category  `json:"category,omitempty"`
	TaxRates      []TaxRate  `json:"tax_rates,omitempty"`
}

// MarshalJSON converts Product to JSON with decimal prices
func (p Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(ProductJSON{
		ID:            p.ID,
		StoreID:       p.StoreID,
		CategoryID:    p.CategoryID,
		Name:          p.Name,
		Slug:          p.Slug,
		Barcode:       p.Barcode,
		Quantity:      p.Quantity,
		QuantityAlert: p.QuantityAlert,
		OriginalPrice: p.GetOriginalPriceDecimal(),
		Price:         p.GetPriceDecimal(),
		IsWeighted:    p.IsWeighted,
		IsActive:      p.IsActive,
		Image:         p.Image,
		Description:   p.Description,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Category:      p.Category,
		TaxRates:      p.TaxRates,
	})
}

// Category represents a product category
type Category struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	StoreID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"store_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;not null;index" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Store    Store     `gorm:"foreignKey:StoreID" json:"-"`
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// TaxRate represents a named tax rate applied per product
type TaxRate struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	StoreID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"store_id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	Rate      float64        `gorm:"not null" json:"rate"` // Percentage, e.g. 16 for 16%
	IsDefault bool           `gorm:"default:false" json:"is_default"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Store Store `gorm:"foreignKey:StoreID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tax rate
func (t *TaxRate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TaxRate model
func (TaxRate) TableName() string {
	return "tax_rates"
}
