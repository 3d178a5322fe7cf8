package catalog

import (
	"github.com/samber/do"
)

// Service is the fixed symbol-to-model-index table. The table matches the
// embedding order the price model was trained with and never changes at
// runtime; changing it requires retraining the model.
type Service struct {
	indexBySymbol map[string]int
	symbols       []string
}

func New(_ *do.Injector) (*Service, error) {
	indexBySymbol := make(map[string]int, len(tokenTable))
	symbols := make([]string, 0, len(tokenTable))

	for _, entry := range tokenTable {
		indexBySymbol[entry.symbol] = entry.index
		symbols = append(symbols, entry.symbol)
	}

	return &Service{
		indexBySymbol: indexBySymbol,
		symbols:       symbols,
	}, nil
}

// Lookup resolves a symbol to its model index. Matching is exact and
// case-sensitive.
func (s *Service) Lookup(symbol string) (int, bool) {
	index, ok := s.indexBySymbol[symbol]
	return index, ok
}

// Symbols returns all known symbols in presentation order.
func (s *Service) Symbols() []string {
	result := make([]string, len(s.symbols))
	copy(result, s.symbols)

	return result
}
