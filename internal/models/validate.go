package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// validationError marks rule violations in admin input so handlers can answer 400.
type validationError struct {
	message string
}

func (e validationError) Error() string { return e.message }

func newValidationError(msg string) error {
	return validationError{message: msg}
}

// IsValidation distinguishes bad input from store failures.
func IsValidation(err error) bool {
	var v validationError
	return errors.As(err, &v)
}

func (c CatalogItem) validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return newValidationError("title is required")
	}
	if strings.TrimSpace(c.Category) == "" {
		return newValidationError("category is required")
	}
	if strings.TrimSpace(c.Creator) == "" {
		return newValidationError("creator is required")
	}
	return nil
}

func (p PortfolioItem) Validate() error {
	return p.CatalogItem.validate()
}

func (p Product) Validate() error {
	if err := p.CatalogItem.validate(); err != nil {
		return err
	}
	if p.Price.LessThan(decimal.Zero) {
		return newValidationError("price must not be negative")
	}
	if !p.OrderType.Valid() {
		return newValidationError("order type must be one of standard, pickup, appointment, dropoff")
	}
	if len(p.PaymentOptions) == 0 {
		return newValidationError("at least one payment option is required")
	}
	seen := make(map[PaymentMethod]bool, len(p.PaymentOptions))
	for _, m := range p.PaymentOptions {
		if !m.Valid() {
			return newValidationError("payment option must be online or cash")
		}
		if seen[m] {
			return newValidationError("payment options must not repeat")
		}
		seen[m] = true
	}
	return nil
}
