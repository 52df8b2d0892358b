package rebalance

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultPriceTTL is how long cached quotes stay valid.
const DefaultPriceTTL = time.Hour

// CachedPriceSource is a PriceSource with a file-backed TTL cache in front
// of another source. Only symbols absent from a valid cache entry are
// queried upstream; the merged result is written back with a fresh expiry.
// Caching never changes resolved prices, it only avoids upstream queries.
//
// The cache file is read then written without locking: the CLI is
// single-shot and concurrent runs are not a supported scenario.
type CachedPriceSource struct {
	Path   string
	TTL    time.Duration // zero means DefaultPriceTTL
	Source PriceSource

	now func() time.Time // injectable clock for tests
}

// NewCachedPriceSource creates a cache at path in front of source.
func NewCachedPriceSource(path string, source PriceSource) *CachedPriceSource {
	return &CachedPriceSource{Path: path, Source: source, now: time.Now}
}

// priceCacheFile is the on-disk format of the cache.
type priceCacheFile struct {
	Expires time.Time                  `json:"expires"`
	Prices  map[string]decimal.Decimal `json:"prices"`
}

// Resolve serves unexpired cached prices and queries the underlying source
// only for symbols the cache does not cover.
func (c *CachedPriceSource) Resolve(symbols []string) (map[string]Money, error) {
	symbols = dedupe(symbols)

	cached := c.load()

	var missing []string
	for _, symbol := range symbols {
		if _, ok := cached[symbol]; !ok {
			missing = append(missing, symbol)
		}
	}

	if len(missing) > 0 {
		fetched, err := c.Source.Resolve(missing)
		if err != nil {
			return nil, err
		}
		for symbol, price := range fetched {
			cached[symbol] = price
		}
		c.store(cached)
	}

	prices := make(map[string]Money, len(symbols))
	for _, symbol := range symbols {
		price, ok := cached[symbol]
		if !ok {
			return nil, errNoPrice(symbol)
		}
		prices[symbol] = price
	}
	return prices, nil
}

// load reads the cache file. A missing, unreadable or expired cache is
// simply an empty one.
func (c *CachedPriceSource) load() map[string]Money {
	prices := make(map[string]Money)

	content, err := os.ReadFile(c.Path)
	if err != nil {
		return prices
	}
	var file priceCacheFile
	if err := json.Unmarshal(content, &file); err != nil {
		log.Printf("ignoring unreadable price cache %q: %v", c.Path, err)
		return prices
	}
	if c.clock().After(file.Expires) {
		return prices
	}
	for symbol, value := range file.Prices {
		prices[symbol] = MoneyFromDecimal(value)
	}
	return prices
}

// store writes the merged prices back with a fresh expiry. A write failure
// costs a future upstream query, nothing else.
func (c *CachedPriceSource) store(prices map[string]Money) {
	file := priceCacheFile{
		Expires: c.clock().Add(c.ttl()),
		Prices:  make(map[string]decimal.Decimal, len(prices)),
	}
	for symbol, price := range prices {
		file.Prices[symbol] = price.Decimal()
	}
	content, err := json.Marshal(file)
	if err != nil {
		log.Printf("cache write err (ignored): %v", err)
		return
	}
	if err := os.WriteFile(c.Path, content, 0644); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
}

func (c *CachedPriceSource) ttl() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return DefaultPriceTTL
}

func (c *CachedPriceSource) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}
