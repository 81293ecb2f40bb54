package catalog

import "github.com/shopspring/decimal"

// Product is a purchasable catalog entry. Only Image may change after load.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
}

// PriceBook resolves authoritative prices by product id.
type PriceBook interface {
	Price(id string) (decimal.Decimal, bool)
}
