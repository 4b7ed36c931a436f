package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/velvetcrumb/velvetcrumb-backend/pkg/config"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/db/models"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/enums"
	"github.com/velvetcrumb/velvetcrumb-backend/pkg/logger"
)

// revenueWindowDays is the trailing window for the revenue chart.
const revenueWindowDays = 7

// DayRevenue is one bucket of the revenue-by-day series.
type DayRevenue struct {
	Date         string `json:"date"`
	RevenueCents int    `json:"revenue_cents"`
	Orders       int    `json:"orders"`
}

// StatusCount is one non-empty bucket of the status distribution.
type StatusCount struct {
	Status enums.OrderStatus `json:"status"`
	Count  int               `json:"count"`
}

// TypeCount is one entry of the popular cake type ranking.
type TypeCount struct {
	CakeTypeID   string `json:"cake_type_id"`
	CakeTypeName string `json:"cake_type_name"`
	Quantity     int    `json:"quantity"`
}

// Dashboard is the full admin analytics payload, recomputed per request.
type Dashboard struct {
	TotalOrders       int           `json:"total_orders"`
	TotalRevenueCents int           `json:"total_revenue_cents"`
	RevenueByDay      []DayRevenue  `json:"revenue_by_day"`
	StatusCounts      []StatusCount `json:"status_counts"`
	PopularTypes      []TypeCount   `json:"popular_types"`
}

// OrderSource supplies the full order set the aggregations run over.
type OrderSource interface {
	All(ctx context.Context) ([]models.Order, error)
}

// Service computes admin dashboard aggregates.
type Service interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type service struct {
	source OrderSource
	loc    *time.Location
	logg   *logger.Logger
	now    func() time.Time
}

// NewService builds the analytics service in the configured display timezone.
func NewService(source OrderSource, cfg config.AnalyticsConfig, logg *logger.Logger) (Service, error) {
	if source == nil {
		return nil, fmt.Errorf("order source is required")
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading analytics timezone %q: %w", cfg.Timezone, err)
	}
	return &service{source: source, loc: loc, logg: logg, now: time.Now}, nil
}

// Dashboard aggregates all orders into the admin metrics. Nothing is cached;
// every call recomputes from the current order set.
func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	orders, err := s.source.All(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{
		TotalOrders:  len(orders),
		RevenueByDay: s.revenueByDay(orders),
		StatusCounts: statusDistribution(orders),
		PopularTypes: popularTypes(orders),
	}
	for _, order := range orders {
		if order.Status != enums.OrderStatusCancelled {
			dashboard.TotalRevenueCents += order.TotalCents
		}
	}
	return dashboard, nil
}

// revenueByDay buckets non-cancelled order totals into the trailing 7 days,
// oldest day first, today included. Empty days still appear with zero revenue
// so the chart axis stays continuous.
func (s *service) revenueByDay(orders []models.Order) []DayRevenue {
	today := s.now().In(s.loc)
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, s.loc).
		AddDate(0, 0, -(revenueWindowDays - 1))

	days := make([]DayRevenue, revenueWindowDays)
	index := make(map[string]int, revenueWindowDays)
	for i := range days {
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		days[i] = DayRevenue{Date: date}
		index[date] = i
	}

	for _, order := range orders {
		if order.Status == enums.OrderStatusCancelled {
			continue
		}
		date := order.CreatedAt.In(s.loc).Format("2006-01-02")
		i, ok := index[date]
		if !ok {
			continue
		}
		days[i].RevenueCents += order.TotalCents
		days[i].Orders++
	}
	return days
}

// statusDistribution counts orders per status, omitting empty buckets.
func statusDistribution(orders []models.Order) []StatusCount {
	counts := map[enums.OrderStatus]int{}
	for _, order := range orders {
		counts[order.Status]++
	}

	distribution := make([]StatusCount, 0, len(counts))
	for _, status := range enums.AllOrderStatuses() {
		if count := counts[status]; count > 0 {
			distribution = append(distribution, StatusCount{Status: status, Count: count})
		}
	}
	return distribution
}

// popularTypes tallies quantity per cake type across all orders and returns
// the top five, highest quantity first.
func popularTypes(orders []models.Order) []TypeCount {
	quantities := map[string]*TypeCount{}
	for _, order := range orders {
		for _, item := range order.Items {
			entry, ok := quantities[item.CakeTypeID]
			if !ok {
				entry = &TypeCount{CakeTypeID: item.CakeTypeID, CakeTypeName: item.CakeTypeName}
				quantities[item.CakeTypeID] = entry
			}
			entry.Quantity += item.Quantity
		}
	}

	ranked := make([]TypeCount, 0, len(quantities))
	for _, entry := range quantities {
		ranked = append(ranked, *entry)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		return ranked[i].CakeTypeID < ranked[j].CakeTypeID
	})
	if len(ranked) > 5 {
		ranked = ranked[:5]
	}
	return ranked
}
