package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openfolio/folio/date"
	"github.com/openfolio/folio/renderer"
)

type holdingsCmd struct {
	date string
}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display open positions and their market value" }
func (*holdingsCmd) Usage() string {
	return `ofl holdings [-d <date>]

  Displays every open position as of the given date (default today):
  units held, break-even price, invested capital and market value.
`
}

func (c *holdingsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "report date, defaults to today")
}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on := date.Today()
	if c.date != "" {
		var err error
		if on, err = date.Parse(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing report date: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading ledger:", err)
		return subcommands.ExitFailure
	}
	market, err := decodeMarket()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading prices:", err)
		return subcommands.ExitFailure
	}

	holdings := make([]renderer.Holding, 0)
	for symbol := range ledger.Symbols() {
		pos, err := ledger.PositionOn(symbol, on)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
		if pos.Units.IsZero() {
			continue
		}
		h := renderer.Holding{Position: pos}
		if price, ok := market.Get(symbol, on); ok {
			h.Market = price.Close.Mul(pos.Units)
		}
		holdings = append(holdings, h)
	}

	printMarkdown(renderer.HoldingsMarkdown(*userID, on, holdings))

	return subcommands.ExitSuccess
}
