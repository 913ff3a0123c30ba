package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validProduct() Product {
	return Product{
		CatalogItem: CatalogItem{
			ID:       "p1",
			Title:    "Crochet Plush Toy",
			Category: CategoryCrafts,
			Creator:  "Emma",
		},
		Price:          decimal.RequireFromString("24.00"),
		OrderType:      OrderStandard,
		PaymentOptions: []PaymentMethod{PaymentOnline},
		InStock:        true,
	}
}

func TestProductValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Product)
		wantErr bool
	}{
		{name: "valid", mutate: func(p *Product) {}},
		{name: "missing title", mutate: func(p *Product) { p.Title = " " }, wantErr: true},
		{name: "missing creator", mutate: func(p *Product) { p.Creator = "" }, wantErr: true},
		{name: "negative price", mutate: func(p *Product) { p.Price = decimal.NewFromInt(-1) }, wantErr: true},
		{name: "zero price", mutate: func(p *Product) { p.Price = decimal.Zero }},
		{name: "bad order type", mutate: func(p *Product) { p.OrderType = "shipping" }, wantErr: true},
		{name: "no payment options", mutate: func(p *Product) { p.PaymentOptions = nil }, wantErr: true},
		{name: "unknown payment option", mutate: func(p *Product) { p.PaymentOptions = []PaymentMethod{"card"} }, wantErr: true},
		{name: "repeated payment option", mutate: func(p *Product) {
			p.PaymentOptions = []PaymentMethod{PaymentCash, PaymentCash}
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsValidationIgnoresOtherErrors(t *testing.T) {
	assert.False(t, IsValidation(errors.New("disk on fire")))
	assert.False(t, IsValidation(nil))
}

func TestProductAcceptsAndHasDate(t *testing.T) {
	p := validProduct()
	p.PaymentOptions = []PaymentMethod{PaymentOnline, PaymentCash}
	p.AvailableDates = []string{"2024-01-15", "2024-01-16"}

	assert.True(t, p.Accepts(PaymentCash))
	assert.False(t, p.Accepts("card"))
	assert.True(t, p.HasDate("2024-01-16"))
	assert.False(t, p.HasDate("2024-02-01"))

	p.AvailableDates = nil
	assert.True(t, p.HasDate("2030-12-31"))
}
