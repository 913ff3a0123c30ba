package filter

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/bhushan0206/HeartAndHands/internal/models"
	"github.com/shopspring/decimal"
)

var ErrInvalidPriceRange = errors.New("price range must satisfy 0 <= min <= max <= 100")

// categoryPriority is the order categories appear in the shop's quick filters.
var categoryPriority = []string{
	models.CategoryNailArt,
	models.CategoryStitching,
	models.CategoryFood,
	models.CategoryPainting,
	models.CategoryCrafts,
}

// Categories returns "all" followed by the categories present in products:
// known ones in priority order, then the rest in first-seen order.
func Categories(products []models.Product) []string {
	present := make(map[string]bool)
	var seen []string
	for _, p := range products {
		if !present[p.Category] {
			present[p.Category] = true
			seen = append(seen, p.Category)
		}
	}

	out := []string{All}
	known := make(map[string]bool, len(categoryPriority))
	for _, c := range categoryPriority {
		known[c] = true
		if present[c] {
			out = append(out, c)
		}
	}
	for _, c := range seen {
		if !known[c] {
			out = append(out, c)
		}
	}
	return out
}

// Hide drops hidden values from a facet list, keeping its order. All is never dropped.
func Hide(facet []string, hidden ...string) []string {
	skip := make(map[string]bool, len(hidden))
	for _, h := range hidden {
		if h != All {
			skip[h] = true
		}
	}
	out := make([]string, 0, len(facet))
	for _, v := range facet {
		if !skip[v] {
			out = append(out, v)
		}
	}
	return out
}

// Creators returns "all" followed by each distinct creator in first-seen order.
func Creators(products []models.Product) []string {
	out := []string{All}
	seen := make(map[string]bool)
	for _, p := range products {
		if !seen[p.Creator] {
			seen[p.Creator] = true
			out = append(out, p.Creator)
		}
	}
	return out
}

// ParseState reads q, category, creator, min and max from a query string.
// Missing values fall back to DefaultState.
func ParseState(v url.Values) (State, error) {
	s := DefaultState()
	s.SearchQuery = strings.TrimSpace(v.Get("q"))
	if c := v.Get("category"); c != "" {
		s.Category = c
	}
	if c := v.Get("creator"); c != "" {
		s.Creator = c
	}

	var err error
	if raw := v.Get("min"); raw != "" {
		if s.PriceRange.Min, err = decimal.NewFromString(raw); err != nil {
			return State{}, fmt.Errorf("%w: min %q", ErrInvalidPriceRange, raw)
		}
	}
	if raw := v.Get("max"); raw != "" {
		if s.PriceRange.Max, err = decimal.NewFromString(raw); err != nil {
			return State{}, fmt.Errorf("%w: max %q", ErrInvalidPriceRange, raw)
		}
	}
	if err := s.PriceRange.Validate(); err != nil {
		return State{}, err
	}
	return s, nil
}

func (r PriceRange) Validate() error {
	if r.Min.LessThan(PriceFloor) || r.Max.GreaterThan(PriceCeiling) || r.Min.GreaterThan(r.Max) {
		return fmt.Errorf("%w: got [%s, %s]", ErrInvalidPriceRange, r.Min, r.Max)
	}
	return nil
}
