package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Known catalog categories. The set is open; anything else is allowed.
const (
	CategoryNailArt   = "nail-art"
	CategoryStitching = "stitching"
	CategoryFood      = "food"
	CategoryPainting  = "painting"
	CategoryCrafts    = "crafts"
)

type OrderType string

const (
	OrderStandard    OrderType = "standard"
	OrderPickup      OrderType = "pickup"
	OrderAppointment OrderType = "appointment"
	OrderDropoff     OrderType = "dropoff"
)

func (t OrderType) Valid() bool {
	switch t {
	case OrderStandard, OrderPickup, OrderAppointment, OrderDropoff:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentOnline PaymentMethod = "online"
	PaymentCash   PaymentMethod = "cash"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentOnline || m == PaymentCash
}

// CatalogItem holds the fields shared by portfolio pieces and products.
type CatalogItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category"`
	Creator     string `json:"creator"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

type PortfolioItem struct {
	CatalogItem
	Date     string `json:"date,omitempty"`
	Featured bool   `json:"featured"`
	Position int    `json:"position"`
}

type Product struct {
	CatalogItem
	Price              decimal.Decimal `json:"price"`
	OrderType          OrderType       `json:"orderType"`
	PaymentOptions     []PaymentMethod `json:"paymentOptions"`
	AvailableDates     []string        `json:"availableDates,omitempty"`
	CustomInstructions string          `json:"customInstructions,omitempty"`
	InStock            bool            `json:"inStock"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// Accepts reports whether the product offers the given payment method.
func (p Product) Accepts(m PaymentMethod) bool {
	for _, opt := range p.PaymentOptions {
		if opt == m {
			return true
		}
	}
	return false
}

// HasDate reports whether date is bookable. Products without a date list accept any date.
func (p Product) HasDate(date string) bool {
	if len(p.AvailableDates) == 0 {
		return true
	}
	for _, d := range p.AvailableDates {
		if d == date {
			return true
		}
	}
	return false
}

type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
	Active   bool   `json:"active"`
}

// Creator is an artisan profile. Social maps a platform such as "instagram"
// or "etsy" to the creator's handle there.
type Creator struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Role   string            `json:"role"`
	Bio    string            `json:"bio"`
	Avatar string            `json:"avatar"`
	Banner string            `json:"banner"`
	Skills []string          `json:"skills"`
	Social map[string]string `json:"social"`
	Active bool              `json:"active"`
}

// Order is the in-memory record of a confirmed checkout.
type Order struct {
	OrderNumber string          `json:"orderNumber"`
	LineCount   int             `json:"lineCount"`
	ItemCount   int             `json:"itemCount"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
	CashPayment bool            `json:"cashPayment"`
	CreatedAt   time.Time       `json:"createdAt"`
}
