package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a registered shopper with loyalty and ewallet balances
type Customer struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	StoreID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"store_id"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	Phone          *string        `gorm:"size:50;index" json:"phone,omitempty"`
	Email          *string        `gorm:"size:255" json:"email,omitempty"`
	Barcode        string         `gorm:"size:100;unique;not null" json:"barcode"`
	LoyaltyPoints  int64          `gorm:"default:0" json:"loyalty_points"`
	EwalletBalance int64          `gorm:"default:0" json:"ewallet_balance"` // Stored in cents
	Address        *string        `gorm:"size:500" json:"address,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Store  Store   `gorm:"foreignKey:StoreID" json:"-"`
	Orders []Order `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// GetEwalletDecimal returns the ewallet balance as a decimal (for display)
func (c *Customer) GetEwalletDecimal() float64 {
	return float64(c.EwalletBalance) / 100
}

// CustomerJSON is a helper struct for JSON marshaling with a decimal balance
type CustomerJSON struct {
	ID             uuid.UUID `json:"id"`
	StoreID        uuid.UUID `json:"store_id"`
	Name           string    `json:"name"`
	Phone          *string   `json:"phone,omitempty"`
	Email          *string   `json:"email,omitempty"`
	Barcode        string    `json:"barcode"`
	LoyaltyPoints  int64     `json:"loyalty_points"`
	EwalletBalance float64   `json:"ewallet_balance"` // Decimal value for JSON
	Address        *string   `json:"address,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MarshalJSON converts Customer to JSON with a decimal ewallet balance
func (c Customer) MarshalJSON() ([]byte, error) {
	return json.Marshal(CustomerJSON{
		ID:             c.ID,
		StoreID:        c.StoreID,
		Name:           c.Name,
		Phone:          c.Phone,
		Email:          c.Email,
		Barcode:        c.Barcode,
		LoyaltyPoints:  c.LoyaltyPoints,
		EwalletBalance: c.GetEwalletDecimal(),
		Address:        c.Address,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	})
}
