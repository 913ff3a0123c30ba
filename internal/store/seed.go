package store

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"io"
	"log/slog"

	"github.com/bhushan0206/HeartAndHands/internal/models"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

type seedFile struct {
	Categories []models.Category `yaml:"categories"`
	Creators   []models.Creator  `yaml:"creators"`
	Portfolio  []seedPortfolio   `yaml:"portfolio"`
	Products   []seedProduct     `yaml:"products"`
}

type seedPortfolio struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Creator     string `yaml:"creator"`
	Category    string `yaml:"category"`
	Image       string `yaml:"image"`
	Description string `yaml:"description"`
	Date        string `yaml:"date"`
	Featured    bool   `yaml:"featured"`
}

type seedProduct struct {
	ID                 string   `yaml:"id"`
	Title              string   `yaml:"title"`
	Price              string   `yaml:"price"`
	Category           string   `yaml:"category"`
	Creator            string   `yaml:"creator"`
	Image              string   `yaml:"image"`
	Description        string   `yaml:"description"`
	OrderType          string   `yaml:"orderType"`
	PaymentOptions     []string `yaml:"paymentOptions"`
	AvailableDates     []string `yaml:"availableDates"`
	CustomInstructions string   `yaml:"customInstructions"`
	OutOfStock         bool     `yaml:"outOfStock"`
}

func (sp seedProduct) product() (models.Product, error) {
	price, err := decimal.NewFromString(sp.Price)
	if err != nil {
		return models.Product{}, fmt.Errorf("product %s: invalid price %q: %w", sp.ID, sp.Price, err)
	}
	p := models.Product{
		CatalogItem: models.CatalogItem{
			ID:          sp.ID,
			Title:       sp.Title,
			Category:    sp.Category,
			Creator:     sp.Creator,
			Image:       sp.Image,
			Description: sp.Description,
		},
		Price:              price,
		OrderType:          models.OrderType(sp.OrderType),
		AvailableDates:     sp.AvailableDates,
		CustomInstructions: sp.CustomInstructions,
		InStock:            !sp.OutOfStock,
	}
	if p.OrderType == "" {
		p.OrderType = models.OrderStandard
	}
	for _, m := range sp.PaymentOptions {
		p.PaymentOptions = append(p.PaymentOptions, models.PaymentMethod(m))
	}
	return p, nil
}

// SeedDefault loads the bundled catalog unless products already exist.
func (s *Store) SeedDefault(ctx context.Context) error {
	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		slog.Debug("Catalog already seeded", "products", count)
		return nil
	}
	return s.Seed(ctx, bytes.NewReader(defaultSeed))
}

// Seed reads a YAML catalog and inserts every entry. Rows are validated the
// same way admin edits are.
func (s *Store) Seed(ctx context.Context, r io.Reader) error {
	var seed seedFile
	if err := yaml.NewDecoder(r).Decode(&seed); err != nil {
		return fmt.Errorf("failed to decode catalog seed: %w", err)
	}

	for _, c := range seed.Categories {
		if _, err := s.DB.ExecContext(ctx,
			`INSERT INTO categories (id, name, position, active) VALUES (?, ?, ?, ?)`,
			c.ID, c.Name, c.Position, c.Active); err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.ID, err)
		}
	}
	for _, c := range seed.Creators {
		if err := s.CreateCreator(ctx, &c); err != nil {
			return fmt.Errorf("failed to seed creator %s: %w", c.ID, err)
		}
	}
	for i, sp := range seed.Portfolio {
		item := &models.PortfolioItem{
			CatalogItem: models.CatalogItem{
				ID:          sp.ID,
				Title:       sp.Title,
				Category:    sp.Category,
				Creator:     sp.Creator,
				Image:       sp.Image,
				Description: sp.Description,
			},
			Date:     sp.Date,
			Featured: sp.Featured,
			Position: i + 1,
		}
		if err := s.CreatePortfolioItem(ctx, item); err != nil {
			return fmt.Errorf("failed to seed portfolio item %s: %w", sp.ID, err)
		}
	}
	for _, sp := range seed.Products {
		p, err := sp.product()
		if err != nil {
			return err
		}
		if err := s.CreateProduct(ctx, &p); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", sp.ID, err)
		}
	}

	slog.Info("Catalog seeded",
		"categories", len(seed.Categories),
		"creators", len(seed.Creators),
		"portfolio", len(seed.Portfolio),
		"products", len(seed.Products),
	)
	return nil
}
