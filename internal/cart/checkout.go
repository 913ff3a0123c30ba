package cart

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/bhushan0206/HeartAndHands/internal/models"
)

// OrderNumbers hands out ORD-NNNNNN identifiers from a counter seeded with
// the clock. Numbers repeat only after a million calls.
type OrderNumbers struct {
	counter atomic.Uint64
}

func NewOrderNumbers() *OrderNumbers {
	n := &OrderNumbers{}
	n.counter.Store(uint64(time.Now().UnixMilli()))
	return n
}

func (n *OrderNumbers) Next() string {
	return fmt.Sprintf("ORD-%06d", n.counter.Add(1)%1_000_000)
}

type Confirmation struct {
	OrderNumber   string    `json:"orderNumber"`
	Lines         []Line    `json:"lines"`
	Totals        Totals    `json:"totals"`
	CashPayment   bool      `json:"cashPayment"`
	CheckoutLabel string    `json:"checkoutLabel"`
	PlacedAt      time.Time `json:"placedAt"`
}

// Order converts the confirmation into the record kept by the store.
func (c Confirmation) Order() models.Order {
	return models.Order{
		OrderNumber: c.OrderNumber,
		LineCount:   len(c.Lines),
		ItemCount:   c.Totals.ItemCount,
		Subtotal:    c.Totals.Subtotal,
		Tax:         c.Totals.Tax,
		Total:       c.Totals.Total,
		CashPayment: c.CashPayment,
		CreatedAt:   c.PlacedAt,
	}
}

// Checkout confirms the cart. Payment is taken elsewhere; the caller is
// expected to clear the cart once the confirmation is delivered.
func Checkout(c Cart, catalog Catalog, numbers *OrderNumbers) (Confirmation, error) {
	if c.IsEmpty() {
		return Confirmation{}, ErrEmptyCart
	}
	return Confirmation{
		OrderNumber:   numbers.Next(),
		Lines:         c.Lines(),
		Totals:        c.Totals(catalog),
		CashPayment:   c.CashPayment(),
		CheckoutLabel: c.CheckoutLabel(),
		PlacedAt:      time.Now().UTC(),
	}, nil
}
