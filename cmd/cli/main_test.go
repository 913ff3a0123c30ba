package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("CATALOG_SEED", "")
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestProductsCommand(t *testing.T) {
	out, err := run(t, "products", "--category", "painting")
	require.NoError(t, err)
	assert.Contains(t, out, "Handmade Watercolor Painting")
	assert.Contains(t, out, "Acrylic Painting - Abstract Art")
	assert.NotContains(t, out, "Ceramic Mug")
	assert.Contains(t, out, "2 of 9 products, 1 active filters")
}

func TestProductsCommandBadRange(t *testing.T) {
	_, err := run(t, "products", "--min", "90", "--max", "10")
	assert.ErrorContains(t, err, "price range")
}

func TestPortfolioCommand(t *testing.T) {
	out, err := run(t, "portfolio", "-q", "sarah")
	require.NoError(t, err)
	assert.Contains(t, out, "Embroidered Wall Art")
	assert.NotContains(t, out, "Gel Nail Art")
}

func TestQuoteCommand(t *testing.T) {
	out, err := run(t, "quote", "3:2", "5")
	require.NoError(t, err)
	// 2*35 + 12.50 = 82.50
	assert.Contains(t, out, "Subtotal: 82.50")
	assert.Contains(t, out, "Tax:      6.60")
	assert.Contains(t, out, "Total:    89.10")
	assert.Contains(t, out, "Proceed to Checkout")
}

func TestQuoteCommandErrors(t *testing.T) {
	_, err := run(t, "quote", "nope")
	assert.ErrorContains(t, err, "not found")

	_, err = run(t, "quote", "3:x")
	assert.ErrorContains(t, err, "invalid quantity")

	_, err = run(t, "quote", "3:0")
	assert.ErrorContains(t, err, "quantity must be between 1 and 999")

	_, err = run(t, "quote")
	assert.Error(t, err)
}

func TestSeedFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
products:
  - id: "x1"
    title: Pressed Flower Card
    price: "6.00"
    category: others
    creator: Lea
    orderType: standard
    paymentOptions: [cash]
`), 0o600))

	out, err := run(t, "--seed", path, "quote", "x1:3")
	require.NoError(t, err)
	assert.Contains(t, out, "Subtotal: 18.00")
	assert.Contains(t, out, "Confirm Order (Cash Payment)")
}
