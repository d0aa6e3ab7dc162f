package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a frame, sunglass or lens in the catalog. Prices are
// decimal to keep cart arithmetic exact.
type Product struct {
	ID               string            `json:"id"`
	Image            string            `json:"image"`
	HoverImage       string            `json:"hoverImage"`
	Model            string            `json:"model"`
	Brand            string            `json:"brand"`
	Price            decimal.Decimal   `json:"price"`
	PromotionalPrice *decimal.Decimal  `json:"promotionalPrice,omitempty"`
	Category         string            `json:"category"`
	Description      string            `json:"description,omitempty"`
	Specifications   map[string]string `json:"specifications,omitempty"`
	InStock          bool              `json:"inStock"`
	StockQuantity    int               `json:"stockQuantity"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// EffectivePrice returns the promotional price when one is set, otherwise
// the base price.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.PromotionalPrice != nil {
		return *p.PromotionalPrice
	}
	return p.Price
}

// ProductFilters narrows a product listing. Set filters apply conjunctively;
// Search matches model, brand and description case-insensitively.
type ProductFilters struct {
	Category string
	Brand    string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	InStock  *bool
	Search   string
}

// Category represents a product category. ProductCount is denormalized seed
// data; it is not recomputed from actual product membership.
type Category struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  string    `json:"description,omitempty"`
	Image        string    `json:"image,omitempty"`
	IsActive     bool      `json:"isActive"`
	ProductCount int       `json:"productCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
