package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bhushan0206/HeartAndHands/internal/models"
	"github.com/google/uuid"
)

const portfolioColumns = `id, title, category, creator, image, description, display_date, featured, position`

func scanPortfolio(row interface{ Scan(...any) error }) (models.PortfolioItem, error) {
	var p models.PortfolioItem
	err := row.Scan(&p.ID, &p.Title, &p.Category, &p.Creator, &p.Image, &p.Description, &p.Date, &p.Featured, &p.Position)
	return p, err
}

// ListPortfolio returns the gallery in admin display order.
func (s *Store) ListPortfolio(ctx context.Context) ([]models.PortfolioItem, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+portfolioColumns+` FROM portfolio_items ORDER BY position, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.PortfolioItem{}
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (s *Store) GetPortfolioItem(ctx context.Context, id string) (*models.PortfolioItem, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT `+portfolioColumns+` FROM portfolio_items WHERE id = ?`, id)
	p, err := scanPortfolio(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePortfolioItem validates and inserts item, assigning an id when it has none.
func (s *Store) CreatePortfolioItem(ctx context.Context, item *models.PortfolioItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.Position == 0 {
		if err := s.DB.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), 0) + 1 FROM portfolio_items`).Scan(&item.Position); err != nil {
			return err
		}
	}
	query := `
		INSERT INTO portfolio_items (` + portfolioColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := s.DB.ExecContext(ctx, query, item.ID, item.Title, item.Category, item.Creator, item.Image, item.Description, item.Date, item.Featured, item.Position)
	return err
}

func (s *Store) UpdatePortfolioItem(ctx context.Context, item *models.PortfolioItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	query := `
		UPDATE portfolio_items
		SET title = ?, category = ?, creator = ?, image = ?, description = ?, display_date = ?, featured = ?, position = ?
		WHERE id = ?
	`
	res, err := s.DB.ExecContext(ctx, query, item.Title, item.Category, item.Creator, item.Image, item.Description, item.Date, item.Featured, item.Position, item.ID)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

func (s *Store) DeletePortfolioItem(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM portfolio_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}
