package catalog

import "github.com/shopspring/decimal"

// Store is one session's view of the catalog. Products keep their seed order
// and only the image reference can be replaced. Not safe for concurrent use.
type Store struct {
	products []Product
	index    map[string]int
}

// NewStore copies products into a new store.
func NewStore(products []Product) *Store {
	s := &Store{
		products: make([]Product, len(products)),
		index:    make(map[string]int, len(products)),
	}
	copy(s.products, products)
	for i, p := range s.products {
		s.index[p.ID] = i
	}
	return s
}

// All returns a copy of every product in catalog order.
func (s *Store) All() []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// Get looks a product up by id.
func (s *Store) Get(id string) (Product, bool) {
	i, ok := s.index[id]
	if !ok {
		return Product{}, false
	}
	return s.products[i], true
}

// Price implements PriceBook.
func (s *Store) Price(id string) (decimal.Decimal, bool) {
	p, ok := s.Get(id)
	if !ok {
		return decimal.Zero, false
	}
	return p.Price, true
}

// SetImage replaces the image reference of one product. Reports false when
// the id is unknown.
func (s *Store) SetImage(id, image string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.products[i].Image = image
	return true
}

// Len is the number of products.
func (s *Store) Len() int {
	return len(s.products)
}
