package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"otica-store/internal/domain"
)

// Seed data standing in for the real backend. Categories carry a
// denormalized productCount that is not recomputed from the product set.

var seededAt = time.Date(2024, time.March, 12, 10, 0, 0, 0, time.UTC)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func promo(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// SeedProducts returns the demo catalog.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:               "1",
			Image:            "/produtos/oculos-1-hover.png",
			HoverImage:       "/produtos/oculos-1.png",
			Model:            "Aviator Classic",
			Brand:            "Ray-Ban",
			Price:            price("450.00"),
			PromotionalPrice: promo("379.90"),
			Category:         "oculos-de-sol",
			Description:      "O clássico atemporal com lentes verdes G-15 e armação dourada.",
			Specifications:   map[string]string{"material": "metal", "lente": "G-15"},
			InStock:          true,
			StockQuantity:    12,
			CreatedAt:        seededAt,
			UpdatedAt:        seededAt,
		},
		{
			ID:            "2",
			Image:         "/produtos/oculos-2.png",
			HoverImage:    "/produtos/oculos-2-hover.png",
			Model:         "Holbrook",
			Brand:         "Oakley",
			Price:         price("520.00"),
			Category:      "oculos-de-sol",
			Description:   "Design inspirado nos anos 40 com lentes Prizm.",
			InStock:       true,
			StockQuantity: 8,
			CreatedAt:     seededAt,
			UpdatedAt:     seededAt,
		},
		{
			ID:               "3",
			Image:            "/produtos/oculos-3.png",
			HoverImage:       "/produtos/oculos-3-hover.png",
			Model:            "Round Metal",
			Brand:            "Ray-Ban",
			Price:            price("480.00"),
			PromotionalPrice: promo("399.00"),
			Category:         "armacoes",
			Description:      "Armação redonda em metal, ícone dos anos 60.",
			InStock:          true,
			StockQuantity:    5,
			CreatedAt:        seededAt,
			UpdatedAt:        seededAt,
		},
		{
			ID:            "4",
			Image:         "/produtos/oculos-4.png",
			HoverImage:    "/produtos/oculos-4-hover.png",
			Model:         "Erika",
			Brand:         "Ray-Ban",
			Price:         price("380.00"),
			Category:      "oculos-de-sol",
			Description:   "Armação arredondada em nylon com acabamento fosco.",
			InStock:       true,
			StockQuantity: 10,
			CreatedAt:     seededAt,
			UpdatedAt:     seededAt,
		},
		{
			ID:            "5",
			Image:         "/produtos/oculos-5.png",
			HoverImage:    "/produtos/oculos-5-hover.png",
			Model:         "Wayfarer",
			Brand:         "Ray-Ban",
			Price:         price("410.00"),
			Category:      "armacoes",
			Description:   "O modelo mais reconhecível da história do design de óculos.",
			InStock:       false,
			StockQuantity: 0,
			CreatedAt:     seededAt,
			UpdatedAt:     seededAt,
		},
	}
}

// SeedStores returns the two shop units.
func SeedStores() []domain.Store {
	return []domain.Store{
		{
			ID:           "1",
			Name:         "Unidade Dr. João Silva F.",
			Address:      "Av. Dr. João Silva Filho, 123",
			Neighborhood: "Piauí",
			City:         "Parnaíba",
			State:        "PI",
			ZipCode:      "64202-000",
			Phone:        "(86) 3321-1234",
			WhatsappLink: "https://wa.me/5586999999999",
			OpeningHours: "Seg-Sex 8h-18h, Sáb 8h-14h",
			Coordinates:  &domain.Coordinates{Lat: -2.9055, Lng: -41.7769},
			IsActive:     true,
			CreatedAt:    seededAt,
			UpdatedAt:    seededAt,
		},
		{
			ID:           "2",
			Name:         "Unidade Loja 02",
			Address:      "Av. São Sebastião, 456",
			Neighborhood: "São Sebastião",
			City:         "Parnaíba",
			State:        "PI",
			ZipCode:      "64207-005",
			WhatsappLink: "https://wa.me/5586988888888",
			OpeningHours: "Seg-Sex 8h-18h, Sáb 8h-14h",
			Coordinates:  &domain.Coordinates{Lat: -2.9196, Lng: -41.7541},
			IsActive:     true,
			CreatedAt:    seededAt,
			UpdatedAt:    seededAt,
		},
	}
}

// SeedCategories returns the category tree with its denormalized counts.
func SeedCategories() []domain.Category {
	return []domain.Category{
		{
			ID:           "1",
			Name:         "Armações",
			Slug:         "armacoes",
			Description:  "Armações de grau para todos os estilos",
			IsActive:     true,
			ProductCount: 2,
			CreatedAt:    seededAt,
			UpdatedAt:    seededAt,
		},
		{
			ID:           "2",
			Name:         "Óculos de Sol",
			Slug:         "oculos-de-sol",
			Description:  "Proteção UV com estilo",
			IsActive:     true,
			ProductCount: 3,
			CreatedAt:    seededAt,
			UpdatedAt:    seededAt,
		},
		{
			ID:           "3",
			Name:         "Lentes de Contato",
			Slug:         "lentes-de-contato",
			Description:  "Lentes gelatinosas e rígidas",
			IsActive:     true,
			ProductCount: 0,
			CreatedAt:    seededAt,
			UpdatedAt:    seededAt,
		},
		{
			ID:           "4",
			Name:         "Acessórios",
			Slug:         "acessorios",
			IsActive:     false,
			ProductCount: 0,
			CreatedAt:    seededAt,
			UpdatedAt:    seededAt,
		},
	}
}

// SeedUsers returns the demo accounts. One is deactivated to exercise the
// inactive-account rejection.
func SeedUsers() []domain.User {
	return []domain.User{
		{
			ID:        "1",
			Name:      "Maria Santos",
			Email:     "maria@exemplo.com",
			Phone:     "(86) 99999-1234",
			IsActive:  true,
			CreatedAt: seededAt,
			UpdatedAt: seededAt,
		},
		{
			ID:        "2",
			Name:      "José Oliveira",
			Email:     "jose@exemplo.com",
			Phone:     "(86) 98888-4321",
			IsActive:  false,
			CreatedAt: seededAt,
			UpdatedAt: seededAt,
		},
	}
}
