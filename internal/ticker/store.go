// Package ticker serves the fixed mock quote table behind the
// custom_ticker_info tool.
package ticker

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Record is a single mock quote.
type Record struct {
	Symbol string
	Price  float64
	Change string
	Volume string
}

// Store is a read-only symbol table that keeps insertion order.
type Store struct {
	records []Record
	index   map[string]Record
}

var defaultRecords = []Record{
	{Symbol: "AAPL", Price: 178.50, Change: "+2.3%", Volume: "52M"},
	{Symbol: "GOOGL", Price: 142.30, Change: "-0.8%", Volume: "28M"},
	{Symbol: "MSFT", Price: 385.20, Change: "+1.5%", Volume: "35M"},
	{Symbol: "TSLA", Price: 242.80, Change: "+3.2%", Volume: "98M"},
	{Symbol: "AMZN", Price: 178.25, Change: "+1.1%", Volume: "45M"},
	{Symbol: "META", Price: 512.80, Change: "+2.8%", Volume: "31M"},
}

// NewStore builds a store from records. Later records with an already
// seen symbol are ignored.
func NewStore(records []Record) *Store {
	s := &Store{index: make(map[string]Record, len(records))}
	for _, r := range records {
		symbol := normalize(r.Symbol)
		if _, exists := s.index[symbol]; exists {
			continue
		}
		r.Symbol = symbol
		s.records = append(s.records, r)
		s.index[symbol] = r
	}
	return s
}

// Default returns the store with the six built-in symbols.
func Default() *Store {
	return NewStore(defaultRecords)
}

// Symbols returns the known symbols in table order.
func (s *Store) Symbols() []string {
	return lo.Map(s.records, func(r Record, _ int) string { return r.Symbol })
}

// Get returns the record for symbol after normalization.
func (s *Store) Get(symbol string) (Record, bool) {
	r, ok := s.index[normalize(symbol)]
	return r, ok
}

// Lookup renders the quote for symbol, or a message listing the
// available symbols when it is unknown. It never fails.
func (s *Store) Lookup(symbol string) string {
	normalized := normalize(symbol)

	r, ok := s.index[normalized]
	if !ok {
		return fmt.Sprintf("Mock data not available for %s. Available tickers: %s",
			normalized, strings.Join(s.Symbols(), ", "))
	}

	return fmt.Sprintf("Ticker: %s\nPrice: $%.2f\nChange: %s\nVolume: %s\n(Note: This is mock data for demonstration purposes)",
		r.Symbol, r.Price, r.Change, r.Volume)
}

func normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
