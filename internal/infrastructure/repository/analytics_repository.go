package repository

import (
	"context"
	"time"

	"github.com/mwangikib/dukapos-api/internal/domain/enum"
	domainRepo "github.com/mwangikib/dukapos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) GetTopProducts(ctx context.Context, start, end time.Time, limit int) ([]domainRepo.TopProductResult, error) {
	storeID, ok := GetStoreID(ctx)
	if !ok {
		return []domainRepo.TopProductResult{}, nil
	}

	var results []domainRepo.TopProductResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id as product_id,
			p.name as product_name,
			p.barcode as barcode,
			COALESCE(SUM(oi.quantity), 0) as quantity_sold,
			COALESCE(SUM(oi.sub_total + oi.tax), 0) / 100.0 as revenue
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status = ? AND o.store_id = ?
		AND o.created_at >= ? AND o.created_at < ?
		AND o.deleted_at IS NULL AND oi.deleted_at IS NULL
		GROUP BY p.id, p.name, p.barcode
		ORDER BY revenue DESC
		LIMIT ?
	`, enum.OrderStatusCompleted, storeID, start, end, limit).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetDailySales(ctx context.Context, start, end time.Time) ([]domainRepo.DailySalesResult, error) {
	storeID, ok := GetStoreID(ctx)
	if !ok {
		return []domainRepo.DailySalesResult{}, nil
	}

	var results []domainRepo.DailySalesResult

	// Profit uses the cost snapshot on the product row, which is close
	// enough for a daily trend line even after price edits.
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			date_trunc('day', o.created_at) as date,
			COALESCE(SUM(o.total), 0) / 100.0 as revenue,
			COALESCE(SUM(profit.amount), 0) / 100.0 as profit,
			COUNT(o.id) as order_count
		FROM orders o
		LEFT JOIN LATERAL (
			SELECT SUM((oi.unit_price - p.original_price) * oi.quantity) as amount
			FROM order_items oi
			JOIN products p ON p.id = oi.product_id
			WHERE oi.order_id = o.id AND oi.deleted_at IS NULL
		) profit ON true
		WHERE o.status = ? AND o.store_id = ?
		AND o.created_at >= ? AND o.created_at < ?
		AND o.deleted_at IS NULL
		GROUP BY date_trunc('day', o.created_at)
		ORDER BY date ASC
	`, enum.OrderStatusCompleted, storeID, start, end).Scan(&results).Error

	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *analyticsRepository) GetSalesSummary(ctx context.Context, start, end time.Time) (*domainRepo.SalesSummaryResult, error) {
	storeID, ok := GetStoreID(ctx)
	if !ok {
		return &domainRepo.SalesSummaryResult{}, nil
	}

	var result domainRepo.SalesSummaryResult

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(o.total), 0) / 100.0 as revenue,
			COALESCE(SUM(o.tax_total), 0) / 100.0 as tax,
			COALESCE(SUM(o.discount_total), 0) / 100.0 as discount,
			COUNT(o.id) as order_count,
			COALESCE((
				SELECT SUM(oi.quantity)
				FROM order_items oi
				JOIN orders o2 ON o2.id = oi.order_id
				WHERE o2.status = ? AND o2.store_id = ?
				AND o2.created_at >= ? AND o2.created_at < ?
				AND o2.deleted_at IS NULL AND oi.deleted_at IS NULL
			), 0) as items_sold
		FROM orders o
		WHERE o.status = ? AND o.store_id = ?
		AND o.created_at >= ? AND o.created_at < ?
		AND o.deleted_at IS NULL
	`, enum.OrderStatusCompleted, storeID, start, end,
		enum.OrderStatusCompleted, storeID, start, end).Scan(&result).Error

	if err != nil {
		return nil, err
	}

	if result.OrderCount > 0 {
		result.AverageTicket = result.Revenue / float64(result.OrderCount)
	}

	return &result, nil
}

func (r *analyticsRepository) CountOrdersByStatus(ctx context.Context) (map[string]int64, error) {
	storeID, ok := GetStoreID(ctx)
	if !ok {
		return map[string]int64{}, nil
	}

	var rows []struct {
		Status enum.OrderStatus
		Count  int64
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(id) as count
		FROM orders
		WHERE store_id = ? AND deleted_at IS NULL
		GROUP BY status
	`, storeID).Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status.String()] = row.Count
	}

	return counts, nil
}
