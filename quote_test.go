package rebalance

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// quoteServer fakes the upstream quote API, answering with the asymmetric
// envelope: a single quote object for one symbol, a list for several.
func quoteServer(t *testing.T, prices map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbols := strings.Split(r.URL.Query().Get("symbols"), ",")

		var quotes []string
		for _, s := range symbols {
			price, ok := prices[s]
			if !ok {
				continue
			}
			quotes = append(quotes, fmt.Sprintf(`{"Symbol": %q, "LastTradePriceOnly": %s}`, s, price))
		}

		var payload string
		if len(quotes) == 1 {
			payload = quotes[0]
		} else {
			payload = "[" + strings.Join(quotes, ",") + "]"
		}
		fmt.Fprintf(w, `{"query": {"results": {"quote": %s}}}`, payload)
	}))
}

func TestQuoteClient_Resolve_multiSymbol(t *testing.T) {
	server := quoteServer(t, map[string]string{
		"VCN.TO": `"31.50"`, // this API sometimes quotes prices as strings
		"ZAG.TO": `15`,
	})
	defer server.Close()

	client := &QuoteClient{BaseURL: server.URL}
	prices, err := client.Resolve([]string{"VCN.TO", "ZAG.TO"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !prices["VCN.TO"].Equal(M(31.50)) {
		t.Errorf("VCN.TO = %v, want $31.50", prices["VCN.TO"])
	}
	if !prices["ZAG.TO"].Equal(M(15)) {
		t.Errorf("ZAG.TO = %v, want $15.00", prices["ZAG.TO"])
	}
}

func TestQuoteClient_Resolve_singleSymbolEnvelope(t *testing.T) {
	server := quoteServer(t, map[string]string{"VCN.TO": `31.50`})
	defer server.Close()

	client := &QuoteClient{BaseURL: server.URL}
	prices, err := client.Resolve([]string{"VCN.TO"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(prices) != 1 || !prices["VCN.TO"].Equal(M(31.50)) {
		t.Errorf("Resolve() = %v, want VCN.TO at $31.50", prices)
	}
}

func TestQuoteClient_Resolve_deduplicates(t *testing.T) {
	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Query().Get("symbols")
		fmt.Fprint(w, `{"query": {"results": {"quote": {"Symbol": "VCN.TO", "LastTradePriceOnly": 30}}}}`)
	}))
	defer server.Close()

	client := &QuoteClient{BaseURL: server.URL}
	if _, err := client.Resolve([]string{"VCN.TO", "VCN.TO", "VCN.TO"}); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if requested != "VCN.TO" {
		t.Errorf("requested symbols = %q, want the deduplicated %q", requested, "VCN.TO")
	}
}

func TestQuoteClient_Resolve_incompleteResponse(t *testing.T) {
	server := quoteServer(t, map[string]string{"VCN.TO": `30`})
	defer server.Close()

	client := &QuoteClient{BaseURL: server.URL}
	_, err := client.Resolve([]string{"VCN.TO", "MISSING.TO"})
	if err == nil {
		t.Fatal("Resolve() with a missing symbol: expected an error")
	}
	if !strings.Contains(err.Error(), "MISSING.TO") {
		t.Errorf("error %q does not name the missing symbol", err)
	}
}

func TestQuoteClient_Resolve_httpError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := &QuoteClient{BaseURL: server.URL}
	if _, err := client.Resolve([]string{"VCN.TO"}); err == nil {
		t.Fatal("Resolve() against a failing API: expected an error")
	}
}

func TestQuoteClient_Resolve_noSymbols(t *testing.T) {
	client := &QuoteClient{BaseURL: "http://invalid.localhost"}
	prices, err := client.Resolve(nil)
	if err != nil {
		t.Fatalf("Resolve(nil) error = %v", err)
	}
	if len(prices) != 0 {
		t.Errorf("Resolve(nil) = %v, want empty", prices)
	}
}
