package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bhushan0206/HeartAndHands/internal/models"
)

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, name, position, active FROM categories ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Position, &c.Active); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ActiveCategoryIDs is the gallery tab list, in display order.
func (s *Store) ActiveCategoryIDs(ctx context.Context) ([]string, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	ids := []string{}
	for _, c := range categories {
		if c.Active {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

// InactiveCategoryIDs lists the categories an admin has switched off.
func (s *Store) InactiveCategoryIDs(ctx context.Context) ([]string, error) {
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	ids := []string{}
	for _, c := range categories {
		if !c.Active {
			ids = append(ids, c.ID)
		}
	}
	return ids, nil
}

func (s *Store) SetCategoryActive(ctx context.Context, id string, active bool) error {
	res, err := s.DB.ExecContext(ctx, `UPDATE categories SET active = ? WHERE id = ?`, active, id)
	if err != nil {
		return err
	}
	return checkAffected(res)
}

const creatorColumns = `id, name, role, bio, avatar, banner, skills, social, active`

func scanCreator(row interface{ Scan(...any) error }) (models.Creator, error) {
	var (
		c              models.Creator
		skills, social string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Role, &c.Bio, &c.Avatar, &c.Banner, &skills, &social, &c.Active); err != nil {
		return c, err
	}
	c.Skills = splitList[string](skills)
	if err := json.Unmarshal([]byte(social), &c.Social); err != nil {
		return c, fmt.Errorf("creator %s: invalid social links: %w", c.ID, err)
	}
	return c, nil
}

// ListCreators returns every creator profile, active or not, in seed order.
func (s *Store) ListCreators(ctx context.Context) ([]models.Creator, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT `+creatorColumns+` FROM creators ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	creators := []models.Creator{}
	for rows.Next() {
		c, err := scanCreator(rows)
		if err != nil {
			return nil, err
		}
		creators = append(creators, c)
	}
	return creators, rows.Err()
}

// ActiveCreators is the public "meet the makers" list.
func (s *Store) ActiveCreators(ctx context.Context) ([]models.Creator, error) {
	creators, err := s.ListCreators(ctx)
	if err != nil {
		return nil, err
	}
	active := creators[:0]
	for _, c := range creators {
		if c.Active {
			active = append(active, c)
		}
	}
	return active, nil
}

// CreateCreator inserts a profile. Skill names must not contain commas.
func (s *Store) CreateCreator(ctx context.Context, c *models.Creator) error {
	social := c.Social
	if social == nil {
		social = map[string]string{}
	}
	raw, err := json.Marshal(social)
	if err != nil {
		return err
	}
	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO creators (`+creatorColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Role, c.Bio, c.Avatar, c.Banner, joinList(c.Skills), string(raw), c.Active)
	return err
}
