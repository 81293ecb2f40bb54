package catalog

import (
	"sort"

	"github.com/Mansi-10-4/nova/pkg/enums"
)

// AllCategories is the filter value that matches every product.
const AllCategories = "All"

// Browse filters products by exact category (or AllCategories) and orders
// them by mode. Equal prices keep catalog order.
func Browse(products []Product, category string, mode enums.SortMode) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if category == "" || category == AllCategories || p.Category == category {
			out = append(out, p)
		}
	}

	switch mode {
	case enums.SortModePriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case enums.SortModePriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	}
	return out
}

// Categories lists AllCategories followed by each distinct category in the
// order it first appears.
func Categories(products []Product) []string {
	seen := make(map[string]struct{}, len(products))
	out := []string{AllCategories}
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
