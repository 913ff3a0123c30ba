package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bhushan0206/HeartAndHands/internal/models"
	"github.com/google/uuid"
)

const productColumns = `id, title, category, creator, image, description, price, order_type, payment_options, available_dates, custom_instructions, in_stock, created_at`

func scanProduct(row interface{ Scan(...any) error }) (models.Product, error) {
	var (
		p              models.Product
		payment, dates string
	)
	err := row.Scan(&p.ID, &p.Title, &p.Category, &p.Creator, &p.Image, &p.Description,
		&p.Price, &p.OrderType, &payment, &dates, &p.CustomInstructions, &p.InStock, &p.CreatedAt)
	if err != nil {
		return p, err
	}
	p.PaymentOptions = splitList[models.PaymentMethod](payment)
	p.AvailableDates = splitList[string](dates)
	return p, nil
}

// ListProducts returns every product in insertion order.
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct validates and inserts p, assigning an id when it has none.
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	query := `
		INSERT INTO products (id, title, category, creator, image, description, price, order_type, payment_options, available_dates, custom_instructions, in_stock, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	_, err := s.DB.ExecContext(ctx, query, p.ID, p.Title, p.Category, p.Creator, p.Image, p.Description,
		p.Price, string(p.OrderType), joinList(p.PaymentOptions), joinList(p.AvailableDates), p.CustomInstructions, p.InStock)
	return err
}

func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	query := `
		UPDATE products
		SET title = ?, category = ?, creator = ?, image = ?, description = ?, price = ?, order_type = ?,
		    payment_options = ?, available_dates = ?, custom_instructions = ?, in_stock = ?
		WHERE id = ?
	`
	res, err := s.DB.ExecContext(ctx, query, p.Title, p.Category, p.Creator, p.Image, p.Description,
		p.Price, string(p.OrderType), joinList(p.PaymentOptions), joinList(p.AvailableDates), p.CustomInstructions, p.InStock, p.ID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

// Index is a point-in-time price lookup used to total carts.
type Index map[string]models.Product

func NewIndex(products []models.Product) Index {
	idx := make(Index, len(products))
	for _, p := range products {
		idx[p.ID] = p
	}
	return idx
}

func (idx Index) Product(id string) (models.Product, bool) {
	p, ok := idx[id]
	return p, ok
}

// ProductIndex snapshots the current products for price resolution.
func (s *Store) ProductIndex(ctx context.Context) (Index, error) {
	products, err := s.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return NewIndex(products), nil
}
