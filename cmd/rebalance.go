package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/gfreeau/rebalance"
	"github.com/gfreeau/rebalance/renderer"
)

// rebalanceCmd holds the flags for the 'rebalance' subcommand.
type rebalanceCmd struct {
	rebalanceFile string
	pricesFile    string
	refresh       bool
}

func (*rebalanceCmd) Name() string { return "rebalance" }
func (*rebalanceCmd) Synopsis() string {
	return "simulate a rebalancing transaction and display the resulting portfolio"
}
func (*rebalanceCmd) Usage() string {
	return `rebal rebalance -f <rebalance.json> [-prices <file>] [-refresh]

  Applies the contributions, sells and buys of the rebalance file to the
  configured accounts and displays the portfolio as it would look after the
  trades. Nothing is persisted; this is a simulation.
`
}

func (c *rebalanceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rebalanceFile, "f", "rebalance.json", "Rebalance instructions file (JSON)")
	f.StringVar(&c.pricesFile, "prices", "", "JSON file of symbol to price overrides; skips the quote API")
	f.BoolVar(&c.refresh, "refresh", false, "bypass the price cache for this run")
}

func (c *rebalanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := DecodeConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	reb, err := DecodeRebalanceConfig(c.rebalanceFile)
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
	portfolio, err := processor.Process(cfg, reb, overrides)
	if err != nil {
		var funds *rebalance.NotEnoughFundsError
		if errors.As(err, &funds) {
			fmt.Fprintf(os.Stderr, "Not enough funds: %v\n", funds)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Error computing rebalance: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.TotalsMarkdown(portfolio))
	printMarkdown(renderer.AccountsMarkdown(portfolio))
	printMarkdown(renderer.AssetClassesMarkdown(portfolio))
	printMarkdown(renderer.HoldingsMarkdown(portfolio))

	return subcommands.ExitSuccess
}
