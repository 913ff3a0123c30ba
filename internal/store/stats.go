package store

import (
	"context"

	"github.com/shopspring/decimal"
)

type DashboardStats struct {
	TotalPortfolio     int             `json:"totalPortfolio"`
	TotalProducts      int             `json:"totalProducts"`
	TotalOrders        int             `json:"totalOrders"`
	CashOrders         int             `json:"cashOrders"`
	Revenue            decimal.Decimal `json:"revenue"`
	ProductsByCategory map[string]int  `json:"productsByCategory"`
}

func (s *Store) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		Revenue:            decimal.Zero,
		ProductsByCategory: make(map[string]int),
	}

	// 1. Totals
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM portfolio_items").Scan(&stats.TotalPortfolio); err != nil {
		return nil, err
	}
	if err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&stats.TotalProducts); err != nil {
		return nil, err
	}

	// 2. Products by category
	rows, err := s.DB.QueryContext(ctx, "SELECT category, COUNT(*) FROM products GROUP BY category")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			rows.Close()
			return nil, err
		}
		stats.ProductsByCategory[category] = count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// 3. Orders. Totals are summed as decimals rather than in SQL to avoid float drift.
	orderRows, err := s.DB.QueryContext(ctx, "SELECT total, cash_payment FROM orders")
	if err != nil {
		return nil, err
	}
	defer orderRows.Close()
	for orderRows.Next() {
		var total decimal.Decimal
		var cash bool
		if err := orderRows.Scan(&total, &cash); err != nil {
			return nil, err
		}
		stats.TotalOrders++
		if cash {
			stats.CashOrders++
		}
		stats.Revenue = stats.Revenue.Add(total)
	}

	return stats, orderRows.Err()
}
