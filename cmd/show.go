package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/gfreeau/rebalance"
	"github.com/gfreeau/rebalance/renderer"
)

// showCmd holds the flags for the 'show' subcommand.
type showCmd struct {
	pricesFile string
	refresh    bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display the current portfolio state" }
func (*showCmd) Usage() string {
	return `rebal show [-prices <file>] [-refresh]

  Computes the portfolio from the configuration file, resolving prices via
  the quote API (or the given price file), and displays the totals, asset
  class allocations and holdings tables.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.pricesFile, "prices", "", "JSON file of symbol to price overrides; skips the quote API")
	f.BoolVar(&c.refresh, "refresh", false, "bypass the price cache for this run")
}

func (c *showCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := DecodeConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	var overrides map[string]rebalance.Money
	if c.pricesFile != "" {
		overrides, err = DecodePriceOverrides(c.pricesFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
	}

	processor := rebalance.NewProcessor(NewPriceSource(c.refresh))
	portfolio, err := processor.Process(cfg, nil, overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing portfolio: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.TotalsMarkdown(portfolio))
	printMarkdown(renderer.AssetClassesMarkdown(portfolio))
	printMarkdown(renderer.HoldingsMarkdown(portfolio))

	return subcommands.ExitSuccess
}
