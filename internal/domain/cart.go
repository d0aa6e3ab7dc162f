package domain

import "github.com/shopspring/decimal"

// CartItem is one cart line. It references a product by ID but snapshots
// model, brand, price and image at add-time, so later catalog changes do not
// reprice lines already in the cart.
type CartItem struct {
	ID               string           `json:"id"`
	Model            string           `json:"model"`
	Brand            string           `json:"brand"`
	Price            decimal.Decimal  `json:"price"`
	PromotionalPrice *decimal.Decimal `json:"promotionalPrice,omitempty"`
	Image            string           `json:"image"`
	Quantity         int              `json:"quantity"`
}

// EffectivePrice returns the promotional price when one was captured at
// add-time, otherwise the base price.
func (i *CartItem) EffectivePrice() decimal.Decimal {
	if i.PromotionalPrice != nil {
		return *i.PromotionalPrice
	}
	return i.Price
}

// LineTotal is the effective price multiplied by the quantity.
func (i *CartItem) LineTotal() decimal.Decimal {
	return i.EffectivePrice().Mul(decimal.NewFromInt(int64(i.Quantity)))
}
