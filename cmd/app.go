// Package cmd implements the CLI application that computes and displays the
// portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/gfreeau/rebalance"
)

// Register the subcommands. A main package calls Register, then Execute runs
// the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&showCmd{}, "portfolio")
	c.Register(&rebalanceCmd{}, "portfolio")
	c.Register(&pricesCmd{}, "prices")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to
// use global variables.

var configFile = flag.String("config", "config.json", "Path to the portfolio configuration file (JSON)")
var cacheFile = flag.String("price-cache", defaultCachePath(), "Path to the price cache file")

func defaultCachePath() string {
	if dir := os.Getenv("REBAL_CACHE_DIR"); dir != "" {
		return filepath.Join(dir, "prices.json")
	}
	return filepath.Join(os.TempDir(), "rebal-prices.json")
}

// DecodeConfig loads the portfolio configuration from the app config flag.
func DecodeConfig() (*rebalance.Config, error) {
	f, err := os.Open(*configFile)
	if err != nil {
		return nil, fmt.Errorf("cannot open config %q: %w", *configFile, err)
	}
	defer f.Close()
	cfg, err := rebalance.DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("cannot load config %q: %w", *configFile, err)
	}
	return cfg, nil
}

// DecodeRebalanceConfig loads rebalance instructions from the given file.
func DecodeRebalanceConfig(path string) (*rebalance.RebalanceConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open rebalance config %q: %w", path, err)
	}
	defer f.Close()
	cfg, err := rebalance.DecodeRebalanceConfig(f)
	if err != nil {
		return nil, fmt.Errorf("cannot load rebalance config %q: %w", path, err)
	}
	return cfg, nil
}

// DecodePriceOverrides loads a pre-resolved price map from the given file.
func DecodePriceOverrides(path string) (map[string]rebalance.Money, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open prices %q: %w", path, err)
	}
	defer f.Close()
	prices, err := rebalance.DecodePriceOverrides(f)
	if err != nil {
		return nil, fmt.Errorf("cannot load prices %q: %w", path, err)
	}
	return prices, nil
}

// NewPriceSource builds the quote client with the file-backed TTL cache in
// front of it. refresh bypasses the cache file for this run.
func NewPriceSource(refresh bool) rebalance.PriceSource {
	client := &rebalance.QuoteClient{}
	if refresh {
		return client
	}
	return rebalance.NewCachedPriceSource(*cacheFile, client)
}

// printMarkdown renders markdown to the terminal.
func printMarkdown(markdown string) {
	out, err := glamour.Render(markdown, "auto")
	if err != nil {
		// fall back to the raw markdown rather than losing the report
		fmt.Println(markdown)
		return
	}
	fmt.Print(out)
}
