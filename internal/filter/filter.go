// Package filter computes the visible slice of the catalog for a given set
// of gallery and shop filters. Everything here is pure: the input slices are
// never modified and the same state always yields the same result.
package filter

import (
	"strings"

	"github.com/bhushan0206/HeartAndHands/internal/models"
	"github.com/shopspring/decimal"
)

// All is the sentinel for "no constraint" on category and creator.
const All = "all"

var (
	PriceFloor   = decimal.Zero
	PriceCeiling = decimal.NewFromInt(100)
)

// PriceRange bounds product prices inclusively. The zero value, with both
// ends at zero, means no price constraint, same as [PriceFloor, PriceCeiling].
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

func (r PriceRange) unset() bool {
	return r.Min.IsZero() && r.Max.IsZero()
}

func (r PriceRange) contains(price decimal.Decimal) bool {
	if r.unset() {
		return true
	}
	return price.GreaterThanOrEqual(r.Min) && price.LessThanOrEqual(r.Max)
}

func (r PriceRange) isDefault() bool {
	return r.unset() || r.Min.LessThanOrEqual(PriceFloor) && r.Max.GreaterThanOrEqual(PriceCeiling)
}

// State is the filter selection owned by the front-end and sent with every query.
type State struct {
	SearchQuery string     `json:"searchQuery"`
	Category    string     `json:"selectedCategory"`
	Creator     string     `json:"selectedCreator"`
	PriceRange  PriceRange `json:"priceRange"`
}

func DefaultState() State {
	return State{
		Category:   All,
		Creator:    All,
		PriceRange: PriceRange{Min: PriceFloor, Max: PriceCeiling},
	}
}

// Reset clears every constraint, including the search text.
func (s State) Reset() State {
	return DefaultState()
}

// ActiveCount is the number of non-default category, creator and price
// constraints. The search text is not counted.
func (s State) ActiveCount() int {
	n := 0
	if !isAll(s.Category) {
		n++
	}
	if !isAll(s.Creator) {
		n++
	}
	if !s.PriceRange.isDefault() {
		n++
	}
	return n
}

// Portfolio filters gallery items by category and by a search over title and creator.
func Portfolio(items []models.PortfolioItem, s State) []models.PortfolioItem {
	q := strings.ToLower(s.SearchQuery)
	out := make([]models.PortfolioItem, 0, len(items))
	for _, item := range items {
		if !matchesValue(s.Category, item.Category) {
			continue
		}
		if !matchesText(q, item.Title, item.Creator) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Products filters shop products by category, creator, price range and a
// search over title and description.
func Products(items []models.Product, s State) []models.Product {
	q := strings.ToLower(s.SearchQuery)
	out := make([]models.Product, 0, len(items))
	for _, p := range items {
		if !matchesValue(s.Category, p.Category) || !matchesValue(s.Creator, p.Creator) {
			continue
		}
		if !s.PriceRange.contains(p.Price) {
			continue
		}
		if !matchesText(q, p.Title, p.Description) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func isAll(v string) bool {
	return v == "" || v == All
}

func matchesValue(selected, actual string) bool {
	return isAll(selected) || selected == actual
}

// matchesText expects q to be lower-cased already.
func matchesText(q string, fields ...string) bool {
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
