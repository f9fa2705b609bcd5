package service

import (
	"context"
	"time"

	"github.com/mwangikib/dukapos-api/internal/domain/repository"
	"github.com/mwangikib/dukapos-api/pkg/apperror"
)

// ReportService produces sales reports and dashboard figures
type ReportService struct {
	analyticsRepo repository.AnalyticsRepository
	productRepo   repository.ProductRepository
	location      *time.Location
}

// NewReportService creates a new report service. Reporting windows are
// interpreted in the store's local timezone, not UTC.
func NewReportService(
	analyticsRepo repository.AnalyticsRepository,
	productRepo repository.ProductRepository,
	timezone string,
) *ReportService {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}
	return &ReportService{
		analyticsRepo: analyticsRepo,
		productRepo:   productRepo,
		location:      loc,
	}
}

// ReportWindow is a half-open [Start, End) reporting interval
type ReportWindow struct {
	Start time.Time
	End   time.Time
}

// ResolveWindow turns a named period or explicit date pair into a concrete
// interval. Supported periods: today, yesterday, week, month.
func (s *ReportService) ResolveWindow(period, startDate, endDate string) (ReportWindow, error) {
	now := time.Now().In(s.location)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)

	if startDate != "" || endDate != "" {
		start, err := time.ParseInLocation("2006-01-02", startDate, s.location)
		if err != nil {
			return ReportWindow{}, apperror.NewBadRequestError("Invalid start_date, expected YYYY-MM-DD")
		}
		end, err := time.ParseInLocation("2006-01-02", endDate, s.location)
		if err != nil {
			return ReportWindow{}, apperror.NewBadRequestError("Invalid end_date, expected YYYY-MM-DD")
		}
		end = end.AddDate(0, 0, 1)
		if !end.After(start) {
			return ReportWindow{}, apperror.NewBadRequestError("end_date must not be before start_date")
		}
		return ReportWindow{Start: start, End: end}, nil
	}

	switch period {
	case "", "today":
		return ReportWindow{Start: midnight, End: midnight.AddDate(0, 0, 1)}, nil
	case "yesterday":
		return ReportWindow{Start: midnight.AddDate(0, 0, -1), End: midnight}, nil
	case "week":
		return ReportWindow{Start: midnight.AddDate(0, 0, -6), End: midnight.AddDate(0, 0, 1)}, nil
	case "month":
		return ReportWindow{Start: midnight.AddDate(0, 0, -29), End: midnight.AddDate(0, 0, 1)}, nil
	default:
		return ReportWindow{}, apperror.NewBadRequestError("Unknown period, expected today, yesterday, week or month")
	}
}

// SalesReport bundles the figures behind the sales report screen
type SalesReport struct {
	Window      ReportWindow                   `json:"window"`
	Summary     *repository.SalesSummaryResult `json:"summary"`
	DailySales  []repository.DailySalesResult  `json:"daily_sales"`
	TopProducts []repository.TopProductResult  `json:"top_products"`
}

// GetSalesReport assembles the full sales report for a window
func (s *ReportService) GetSalesReport(ctx context.Context, window ReportWindow) (*SalesReport, error) {
	summary, err := s.analyticsRepo.GetSalesSummary(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	daily, err := s.analyticsRepo.GetDailySales(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	top, err := s.analyticsRepo.GetTopProducts(ctx, window.Start, window.End, 10)
	if err != nil {
		return nil, err
	}

	return &SalesReport{
		Window:      window,
		Summary:     summary,
		DailySales:  daily,
		TopProducts: top,
	}, nil
}

// DashboardStats bundles the figures shown on the home screen
type DashboardStats struct {
	TodayRevenue    float64          `json:"today_revenue"`
	TodayOrders     int              `json:"today_orders"`
	TodayItemsSold  int              `json:"today_items_sold"`
	AverageTicket   float64          `json:"average_ticket"`
	OrdersByStatus  map[string]int64 `json:"orders_by_status"`
	LowStockCount   int              `json:"low_stock_count"`
	LowStockSamples []string         `json:"low_stock_samples"`
}

// GetDashboardStats assembles today's headline figures plus stock alerts
func (s *ReportService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	window, err := s.ResolveWindow("today", "", "")
	if err != nil {
		return nil, err
	}

	summary, err := s.analyticsRepo.GetSalesSummary(ctx, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.analyticsRepo.CountOrdersByStatus(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.productRepo.GetLowStock(ctx)
	if err != nil {
		return nil, err
	}

	samples := make([]string, 0, 5)
	for _, p := range lowStock {
		if len(samples) == 5 {
			break
		}
		samples = append(samples, p.Name)
	}

	return &DashboardStats{
		TodayRevenue:    summary.Revenue,
		TodayOrders:     summary.OrderCount,
		TodayItemsSold:  summary.ItemsSold,
		AverageTicket:   summary.AverageTicket,
		OrdersByStatus:  byStatus,
		LowStockCount:   len(lowStock),
		LowStockSamples: samples,
	}, nil
}
