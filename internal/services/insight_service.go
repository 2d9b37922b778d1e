package services

import (
	"context"
	"sort"
	"time"

	"kayoemoeda/internal/apperrors"
	"kayoemoeda/internal/models"
	"kayoemoeda/internal/repositories"

	"github.com/shopspring/decimal"
)

// InsightQuery selects the orders an insight covers. Start is inclusive, End
// exclusive. Months is only used when neither bound is given and counts the
// current calendar month. Top <= 0 keeps every product.
type InsightQuery struct {
	Start  *time.Time
	End    *time.Time
	Months int
	Top    int
}

// MonthlyRevenue is one calendar-month bucket, keyed "YYYY-MM".
type MonthlyRevenue struct {
	Month       string `json:"month"`
	TotalAmount int64  `json:"totalAmount"`
	TotalOrders int    `json:"totalOrders"`
}

// ProductSales sums sold quantity and revenue of one product name.
type ProductSales struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Revenue  int64  `json:"revenue"`
}

// RevenueInsights is the payload of the sales-insight endpoints.
type RevenueInsights struct {
	Start         *time.Time       `json:"startDate,omitempty"`
	End           *time.Time       `json:"endDate,omitempty"`
	Monthly       []MonthlyRevenue `json:"monthly"`
	TotalRevenue  int64            `json:"totalRevenue"`
	TotalOrders   int              `json:"totalOrders"`
	AvgOrderValue float64          `json:"avgOrderValue"`
	TopProducts   []ProductSales   `json:"topProducts"`
}

// InsightService computes read-only revenue summaries.
type InsightService struct {
	orders repositories.OrderRepository
	now    func() time.Time
}

// NewInsightService creates a new InsightService.
func NewInsightService(orders repositories.OrderRepository) *InsightService {
	return &InsightService{orders: orders, now: time.Now}
}

// Sales returns the orders counted as revenue for q, oldest first.
func (s *InsightService) Sales(ctx context.Context, q InsightQuery) ([]models.Order, InsightQuery, error) {
	q, err := s.resolve(q)
	if err != nil {
		return nil, q, err
	}
	orders, err := s.orders.ListSales(ctx, q.Start, q.End)
	if err != nil {
		return nil, q, err
	}
	return orders, q, nil
}

// ComputeRevenueInsights groups sales by calendar month (server-local time)
// and ranks products by sold quantity.
func (s *InsightService) ComputeRevenueInsights(ctx context.Context, q InsightQuery) (*RevenueInsights, error) {
	orders, q, err := s.Sales(ctx, q)
	if err != nil {
		return nil, err
	}
	insights := Aggregate(orders, q.Top)
	insights.Start, insights.End = q.Start, q.End
	return insights, nil
}

func (s *InsightService) resolve(q InsightQuery) (InsightQuery, error) {
	if q.Months < 0 {
		return q, apperrors.Validation("months must not be negative")
	}
	if q.Start != nil && q.End != nil && !q.End.After(*q.Start) {
		return q, apperrors.Validation("endDate must be after startDate")
	}
	if q.Start == nil && q.End == nil && q.Months > 0 {
		now := s.now().In(time.Local)
		start := time.Date(now.Year(), now.Month()-time.Month(q.Months-1), 1, 0, 0, 0, 0, time.Local)
		q.Start = &start
	}
	return q, nil
}

// Aggregate folds sale orders into a RevenueInsights. Exposed for reports.
func Aggregate(orders []models.Order, top int) *RevenueInsights {
	buckets := make(map[string]*MonthlyRevenue)
	products := make(map[string]*ProductSales)
	insights := &RevenueInsights{Monthly: []MonthlyRevenue{}, TopProducts: []ProductSales{}}

	for _, o := range orders {
		key := o.CreatedAt.In(time.Local).Format("2006-01")
		b, ok := buckets[key]
		if !ok {
			b = &MonthlyRevenue{Month: key}
			buckets[key] = b
		}
		b.TotalAmount += o.GrossAmount
		b.TotalOrders++
		insights.TotalRevenue += o.GrossAmount
		insights.TotalOrders++

		for _, it := range o.Items {
			p, ok := products[it.Name]
			if !ok {
				p = &ProductSales{Name: it.Name}
				products[it.Name] = p
			}
			p.Quantity += it.Quantity
			p.Revenue += it.Subtotal()
		}
	}

	for _, b := range buckets {
		insights.Monthly = append(insights.Monthly, *b)
	}
	sort.Slice(insights.Monthly, func(i, j int) bool {
		return insights.Monthly[i].Month < insights.Monthly[j].Month
	})

	for _, p := range products {
		insights.TopProducts = append(insights.TopProducts, *p)
	}
	sort.Slice(insights.TopProducts, func(i, j int) bool {
		a, b := insights.TopProducts[i], insights.TopProducts[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		return a.Name < b.Name
	})
	if top > 0 && len(insights.TopProducts) > top {
		insights.TopProducts = insights.TopProducts[:top]
	}

	if insights.TotalOrders > 0 {
		avg := decimal.NewFromInt(insights.TotalRevenue).
			Div(decimal.NewFromInt(int64(insights.TotalOrders))).
			Round(2)
		insights.AvgOrderValue, _ = avg.Float64()
	}
	return insights
}
