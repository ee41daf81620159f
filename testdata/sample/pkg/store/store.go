package store

// Store keeps prices keyed by SKU.
type Store struct {
	prices map[string]int
}

func New() *Store {
	return &Store{prices: map[string]int{}}
}

func (s *Store) Set(sku string, price int) {
	s.prices[sku] = price
}

func (s *Store) Total(skus []string) int {
	total := 0
	for _, sku := range skus {
		if p, ok := s.prices[sku]; ok {
			total += p
		}
	}
	return total
}
