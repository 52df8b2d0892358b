package rebalance

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// defaultQuoteURL is the quote endpoint queried for last trade prices.
const defaultQuoteURL = "https://query.yahooapis.com/v1/public/yql/finance/quotes"

// QuoteClient resolves symbols against the upstream quote API.
//
// The upstream response envelope is query.results.quote, which is a single
// object when one symbol is requested and a list when several are. That
// asymmetry is normalized here, at the boundary; the engine only ever sees a
// uniform symbol to price mapping.
type QuoteClient struct {
	// BaseURL overrides the quote endpoint, for tests mostly.
	BaseURL string
	// Client is the HTTP client to use. Defaults to http.DefaultClient.
	Client *http.Client
}

// Resolve queries last trade prices for the deduplicated symbols.
func (c *QuoteClient) Resolve(symbols []string) (map[string]Money, error) {
	symbols = dedupe(symbols)
	if len(symbols) == 0 {
		return map[string]Money{}, nil
	}

	base := c.BaseURL
	if base == "" {
		base = defaultQuoteURL
	}
	addr := base + "?symbols=" + url.QueryEscape(strings.Join(symbols, ","))

	var jobj any
	if err := jwget(c.httpClient(), addr, &jobj); err != nil {
		return nil, fmt.Errorf("quote query for %d symbols: %w", len(symbols), err)
	}

	jval, err := jsonpath.Get("$.query.results.quote", jobj)
	if err != nil {
		return nil, fmt.Errorf("unexpected quote response shape: %w", err)
	}

	// one symbol yields a single quote object, several yield a list
	var quotes []any
	switch v := jval.(type) {
	case []any:
		quotes = v
	case map[string]any:
		quotes = []any{v}
	default:
		return nil, fmt.Errorf("unexpected quote response shape: %T", jval)
	}

	prices := make(map[string]Money, len(quotes))
	for _, q := range quotes {
		quote, ok := q.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unexpected quote entry shape: %T", q)
		}
		symbol, ok := quote["Symbol"].(string)
		if !ok {
			return nil, fmt.Errorf("quote entry has no symbol: %v", quote)
		}
		price, err := quotePrice(quote["LastTradePriceOnly"])
		if err != nil {
			return nil, fmt.Errorf("quote for %q: %w", symbol, err)
		}
		prices[symbol] = price
	}

	for _, symbol := range symbols {
		if _, ok := prices[symbol]; !ok {
			return nil, fmt.Errorf("incomplete quote response: no price for %q", symbol)
		}
	}
	return prices, nil
}

func (c *QuoteClient) httpClient() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return http.DefaultClient
}

// quotePrice coerces the last trade price field, which this API returns
// either as a number or as a string.
func quotePrice(jval any) (Money, error) {
	switch v := jval.(type) {
	case float64:
		return M(v), nil
	case string:
		value, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return Money{}, fmt.Errorf("invalid price %q: %w", v, err)
		}
		return MoneyFromDecimal(value), nil
	default:
		return Money{}, fmt.Errorf("price is neither a number nor a string: %v", jval)
	}
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure.
func jwget(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		resp.Body.Close()
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}
