package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bhushan0206/HeartAndHands/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func seededStore(t *testing.T) *Store {
	t.Helper()
	s := newTestStore(t)
	require.NoError(t, s.SeedDefault(context.Background()))
	return s
}

func TestMigrateIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Migrate(context.Background()))

	var applied int
	require.NoError(t, s.DB.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&applied))
	assert.Equal(t, 3, applied)
}

func TestSeedDefault(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	portfolio, err := s.ListPortfolio(ctx)
	require.NoError(t, err)
	assert.Len(t, portfolio, 10)
	assert.Equal(t, "1", portfolio[0].ID)
	assert.True(t, portfolio[0].Featured)
	assert.Equal(t, "January 15, 2024", portfolio[0].Date)

	products, err := s.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 9)

	nails := products[0]
	assert.Equal(t, models.OrderAppointment, nails.OrderType)
	assert.Equal(t, []models.PaymentMethod{models.PaymentOnline, models.PaymentCash}, nails.PaymentOptions)
	assert.Equal(t, []string{"2024-01-15", "2024-01-16", "2024-01-18", "2024-01-19"}, nails.AvailableDates)
	assert.True(t, nails.Price.Equal(decimal.NewFromInt(35)))
	assert.True(t, nails.InStock)

	// seeding twice does nothing
	require.NoError(t, s.SeedDefault(ctx))
	products, err = s.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 9)
}

func TestSeedRejectsInvalidProduct(t *testing.T) {
	s := newTestStore(t)
	err := s.Seed(context.Background(), strings.NewReader(`
products:
  - id: bad
    title: Free Lunch
    price: "-1"
    category: food
    creator: Sarah
    paymentOptions: [online]
`))
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
}

func TestProductCRUD(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p := &models.Product{
		CatalogItem: models.CatalogItem{
			Title:    "Crochet Plush Toy",
			Category: models.CategoryCrafts,
			Creator:  "Emma",
		},
		Price:          decimal.RequireFromString("24.50"),
		OrderType:      models.OrderStandard,
		PaymentOptions: []models.PaymentMethod{models.PaymentOnline},
		InStock:        true,
	}
	require.NoError(t, s.CreateProduct(ctx, p))
	require.NotEmpty(t, p.ID)

	got, err := s.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Crochet Plush Toy", got.Title)
	assert.Equal(t, "24.5", got.Price.String())
	assert.Nil(t, got.AvailableDates)

	p.Price = decimal.RequireFromString("30")
	p.InStock = false
	require.NoError(t, s.UpdateProduct(ctx, p))
	got, err = s.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "30", got.Price.String())
	assert.False(t, got.InStock)

	require.NoError(t, s.DeleteProduct(ctx, p.ID))
	_, err = s.GetProduct(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.DeleteProduct(ctx, p.ID), ErrNotFound)

	ghost := *p
	ghost.ID = "ghost"
	assert.ErrorIs(t, s.UpdateProduct(ctx, &ghost), ErrNotFound)
}

func TestPortfolioCRUD(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	item := &models.PortfolioItem{CatalogItem: models.CatalogItem{
		Title: "Knitted Scarf", Category: models.CategoryCrafts, Creator: "Sarah",
	}}
	require.NoError(t, s.CreatePortfolioItem(ctx, item))
	assert.Equal(t, 11, item.Position)

	item.Featured = true
	require.NoError(t, s.UpdatePortfolioItem(ctx, item))
	got, err := s.GetPortfolioItem(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, got.Featured)

	require.NoError(t, s.DeletePortfolioItem(ctx, item.ID))
	_, err = s.GetPortfolioItem(ctx, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	bad := &models.PortfolioItem{}
	assert.True(t, models.IsValidation(s.CreatePortfolioItem(ctx, bad)))
}

func TestProductIndex(t *testing.T) {
	s := seededStore(t)
	idx, err := s.ProductIndex(context.Background())
	require.NoError(t, err)

	p, ok := idx.Product("9")
	require.True(t, ok)
	assert.Equal(t, "18.99", p.Price.StringFixed(2))
	_, ok = idx.Product("nope")
	assert.False(t, ok)
}

func TestCategoriesAndCreators(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	ids, err := s.ActiveCategoryIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"nail-art", "stitching", "food", "painting", "crafts"}, ids)

	require.NoError(t, s.SetCategoryActive(ctx, "food", false))
	ids, err = s.ActiveCategoryIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"nail-art", "stitching", "painting", "crafts"}, ids)
	ids, err = s.InactiveCategoryIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"food"}, ids)
	assert.ErrorIs(t, s.SetCategoryActive(ctx, "pottery", true), ErrNotFound)

	creators, err := s.ListCreators(ctx)
	require.NoError(t, err)
	require.Len(t, creators, 2)
	assert.Equal(t, "Emma", creators[0].Name)
}

func TestCreatorProfiles(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	creators, err := s.ListCreators(ctx)
	require.NoError(t, err)
	require.Len(t, creators, 2)
	emma := creators[0]
	assert.Contains(t, emma.Bio, "piano")
	assert.Equal(t, "https://api.dicebear.com/7.x/avataaars/svg?seed=Emma", emma.Avatar)
	assert.NotEmpty(t, emma.Banner)
	assert.Equal(t, []string{"Crafts", "Crochet", "Music", "Ceramics", "Nail Art"}, emma.Skills)
	assert.Equal(t, "emma_crafts", emma.Social["instagram"])
	assert.Equal(t, "EmmasCraftCorner", emma.Social["etsy"])

	require.NoError(t, s.CreateCreator(ctx, &models.Creator{ID: "lea", Name: "Lea", Role: "Potter"}))
	creators, err = s.ListCreators(ctx)
	require.NoError(t, err)
	require.Len(t, creators, 3)
	lea := creators[2]
	assert.Empty(t, lea.Skills)
	assert.Empty(t, lea.Social)
	assert.False(t, lea.Active)

	active, err := s.ActiveCreators(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Sarah", active[1].Name)
}

func TestOrdersAndStats(t *testing.T) {
	ctx := context.Background()
	s := seededStore(t)

	first := models.Order{
		OrderNumber: "ORD-000001", LineCount: 1, ItemCount: 2,
		Subtotal: decimal.RequireFromString("37.98"), Tax: decimal.RequireFromString("3.04"),
		Total: decimal.RequireFromString("41.02"), CreatedAt: time.Now().Add(-time.Minute),
	}
	second := models.Order{
		OrderNumber: "ORD-000002", LineCount: 1, ItemCount: 1,
		Subtotal: decimal.RequireFromString("8.00"), Tax: decimal.RequireFromString("0.64"),
		Total: decimal.RequireFromString("8.64"), CashPayment: true, CreatedAt: time.Now(),
	}
	require.NoError(t, s.RecordOrder(ctx, first))
	require.NoError(t, s.RecordOrder(ctx, second))
	assert.Error(t, s.RecordOrder(ctx, second), "order numbers are unique")

	orders, err := s.ListOrders(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "ORD-000002", orders[0].OrderNumber)
	assert.True(t, orders[0].CashPayment)
	assert.Equal(t, "41.02", orders[1].Total.StringFixed(2))

	count, err := s.GetTotalOrdersCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	stats, err := s.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10, stats.TotalPortfolio)
	assert.Equal(t, 9, stats.TotalProducts)
	assert.Equal(t, 2, stats.TotalOrders)
	assert.Equal(t, 1, stats.CashOrders)
	assert.Equal(t, "49.66", stats.Revenue.StringFixed(2))
	assert.Equal(t, 2, stats.ProductsByCategory["nail-art"])
	assert.Equal(t, 1, stats.ProductsByCategory["crafts"])
}
