package store

import (
	"context"
	"time"

	"github.com/bhushan0206/HeartAndHands/internal/models"
)

// RecordOrder keeps a confirmed checkout for the admin dashboard. Nothing
// outlives the process.
func (s *Store) RecordOrder(ctx context.Context, order models.Order) error {
	query := `
		INSERT INTO orders (order_number, line_count, item_count, subtotal, tax, total, cash_payment, created_at_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.DB.ExecContext(ctx, query, order.OrderNumber, order.LineCount, order.ItemCount,
		order.Subtotal, order.Tax, order.Total, order.CashPayment, order.CreatedAt.UnixMilli())
	return err
}

// ListOrders returns the newest orders first.
func (s *Store) ListOrders(ctx context.Context, limit, offset int) ([]models.Order, error) {
	query := `
		SELECT order_number, line_count, item_count, subtotal, tax, total, cash_payment, created_at_ms
		FROM orders
		ORDER BY created_at_ms DESC, rowid DESC
		LIMIT ? OFFSET ?
	`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var (
			o  models.Order
			ms int64
		)
		if err := rows.Scan(&o.OrderNumber, &o.LineCount, &o.ItemCount, &o.Subtotal, &o.Tax, &o.Total, &o.CashPayment, &ms); err != nil {
			return nil, err
		}
		o.CreatedAt = time.UnixMilli(ms).UTC()
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (s *Store) GetTotalOrdersCount(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders").Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
