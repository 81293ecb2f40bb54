package catalog

import "github.com/shopspring/decimal"

// Seed returns a fresh copy of the built-in catalog.
func Seed() []Product {
	return []Product{
		{
			ID:          "1",
			Name:        "Essence Table Lamp",
			Price:       decimal.RequireFromString("189.00"),
			Category:    "Lighting",
			Image:       "https://picsum.photos/id/210/600/800",
			Description: "A sculptural light fixture crafted from hand-blown glass and brushed brass.",
		},
		{
			ID:          "2",
			Name:        "Nordic Oak Chair",
			Price:       decimal.RequireFromString("450.00"),
			Category:    "Furniture",
			Image:       "https://picsum.photos/id/445/600/800",
			Description: "Minimalist seating design with ergonomic support and natural oil finish.",
		},
		{
			ID:          "3",
			Name:        "Ceramic Tea Set",
			Price:       decimal.RequireFromString("120.00"),
			Category:    "Lifestyle",
			Image:       "https://picsum.photos/id/225/600/800",
			Description: "Hand-thrown stoneware with a matte charcoal glaze. Set of 4 cups and pot.",
		},
		{
			ID:          "4",
			Name:        "Canvas Tote Large",
			Price:       decimal.RequireFromString("65.00"),
			Category:    "Accessories",
			Image:       "https://picsum.photos/id/1060/600/800",
			Description: "Durable heavy-weight cotton canvas with reinforced leather handles.",
		},
		{
			ID:          "5",
			Name:        "Floating Wall Shelf",
			Price:       decimal.RequireFromString("95.00"),
			Category:    "Furniture",
			Image:       "https://picsum.photos/id/163/600/800",
			Description: "Seamless wall-mounted shelving solution in solid walnut wood.",
		},
		{
			ID:          "6",
			Name:        "Geometric Vase",
			Price:       decimal.RequireFromString("78.00"),
			Category:    "Decor",
			Image:       "https://picsum.photos/id/30/600/800",
			Description: "3D-printed architectural vase using eco-friendly bioplastics.",
		},
		{
			ID:          "7",
			Name:        "Linen Bedding Set",
			Price:       decimal.RequireFromString("320.00"),
			Category:    "Lifestyle",
			Image:       "https://picsum.photos/id/103/600/800",
			Description: "Premium European flax linen in a soft off-white hue for ultimate comfort.",
		},
		{
			ID:          "8",
			Name:        "Wireless Desk Charger",
			Price:       decimal.RequireFromString("89.00"),
			Category:    "Tech",
			Image:       "https://picsum.photos/id/0/600/800",
			Description: "Slim profile inductive charging pad wrapped in genuine Italian leather.",
		},
	}
}
