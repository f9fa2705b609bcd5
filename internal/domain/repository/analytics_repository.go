package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TopProductResult represents a product's sales performance
type TopProductResult struct {
	ProductID    uuid.UUID
	ProductName  string
	Barcode      string
	QuantitySold int
	Revenue      float64
}

// DailySalesResult represents sales data for a single day
type DailySalesResult struct {
	Date       time.Time
	Revenue    float64
	Profit     float64
	OrderCount int
}

// SalesSummaryResult represents aggregate sales figures for a window
type SalesSummaryResult struct {
	Revenue       float64
	Tax           float64
	Discount      float64
	OrderCount    int
	ItemsSold     int
	AverageTicket float64
}

// AnalyticsRepository defines interface for analytics/aggregation queries
type AnalyticsRepository interface {
	// GetTopProducts returns top selling products by revenue in a window
	GetTopProducts(ctx context.Context, start, end time.Time, limit int) ([]TopProductResult, error)

	// GetDailySales returns per-day sales data for a window
	GetDailySales(ctx context.Context, start, end time.Time) ([]DailySalesResult, error)

	// GetSalesSummary returns aggregate sales figures for a window
	GetSalesSummary(ctx context.Context, start, end time.Time) (*SalesSummaryResult, error)

	// CountOrdersByStatus returns order counts keyed by status name
	CountOrdersByStatus(ctx context.Context) (map[string]int64, error)
}
