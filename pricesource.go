package rebalance

import "fmt"

// PriceSource resolves ticker symbols to their last trade price.
// Implementations must deduplicate the requested symbols before querying
// anything upstream, and must return an entry for every requested symbol or
// an error. The engine never retries a failed resolution.
type PriceSource interface {
	Resolve(symbols []string) (map[string]Money, error)
}

// StaticPrices is a PriceSource backed by a fixed symbol to price table.
type StaticPrices map[string]Money

// Resolve returns the known prices for the requested symbols. Symbols absent
// from the table make the resolution fail.
func (s StaticPrices) Resolve(symbols []string) (map[string]Money, error) {
	prices := make(map[string]Money, len(symbols))
	for _, symbol := range dedupe(symbols) {
		price, ok := s[symbol]
		if !ok {
			return nil, errNoPrice(symbol)
		}
		prices[symbol] = price
	}
	return prices, nil
}

func errNoPrice(symbol string) error {
	return fmt.Errorf("no price for symbol %q", symbol)
}

// dedupe returns the symbols without duplicates, preserving first-seen order.
func dedupe(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	seen := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
