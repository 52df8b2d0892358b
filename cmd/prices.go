package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/google/subcommands"

	"github.com/gfreeau/rebalance/renderer"
)

// pricesCmd holds the flags for the 'prices' subcommand.
type pricesCmd struct {
	refresh bool
}

func (*pricesCmd) Name() string     { return "prices" }
func (*pricesCmd) Synopsis() string { return "resolve and display prices for all catalog symbols" }
func (*pricesCmd) Usage() string {
	return `rebal prices [-refresh]

  Resolves last trade prices for every symbol of the share catalog and
  displays them. Prices come from the cache when it is still valid; use
  -refresh to query the quote API unconditionally.
`
}

func (c *pricesCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.refresh, "refresh", false, "bypass the price cache for this run")
}

func (c *pricesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := DecodeConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	symbols := make([]string, 0, len(cfg.Shares))
	for _, share := range cfg.Shares {
		symbols = append(symbols, share.Symbol)
	}
	sort.Strings(symbols)

	prices, err := NewPriceSource(c.refresh).Resolve(symbols)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving prices: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.PricesMarkdown(symbols, prices))

	return subcommands.ExitSuccess
}
