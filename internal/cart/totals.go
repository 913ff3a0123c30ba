package cart

import (
	"log/slog"

	"github.com/bhushan0206/HeartAndHands/internal/models"
	"github.com/shopspring/decimal"
)

// TaxRate is the flat sales tax applied to every cart.
var TaxRate = decimal.RequireFromString("0.08")

// Catalog resolves a line's item id to the current product.
type Catalog interface {
	Product(id string) (models.Product, bool)
}

type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
	// Stale lists item ids that no longer resolve in the catalog.
	Stale []string `json:"stale,omitempty"`
}

// Totals prices the cart against catalog. Lines whose product has been
// removed count as zero.
func (c Cart) Totals(catalog Catalog) Totals {
	t := Totals{Subtotal: decimal.Zero}
	for _, l := range c.Lines() {
		t.ItemCount += l.Quantity
		p, ok := catalog.Product(l.ItemID)
		if !ok {
			slog.Warn("Cart line references missing catalog item", "item_id", l.ItemID)
			t.Stale = append(t.Stale, l.ItemID)
			continue
		}
		t.Subtotal = t.Subtotal.Add(p.Price.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	t.Tax = t.Subtotal.Mul(TaxRate).Round(2)
	t.Total = t.Subtotal.Add(t.Tax)
	return t
}
