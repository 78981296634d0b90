package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openfolio/folio"
	"github.com/openfolio/folio/renderer"
)

type growthCmd struct {
	policy string
	chart  string
	asJSON bool
}

func (*growthCmd) Name() string     { return "growth" }
func (*growthCmd) Synopsis() string { return "reconstruct the day-by-day growth of the account" }
func (*growthCmd) Usage() string {
	return `ofl growth [-policy union|governing] [-chart <file.png>] [-json]

  Replays the ledger against the historical prices and prints the
  day-by-day invested, market and balance totals. -chart additionally
  writes a PNG line chart, -json emits the raw series.
`
}

func (c *growthCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.policy, "policy", "union", "valuation axis policy: union or governing")
	f.StringVar(&c.chart, "chart", "", "write a PNG line chart to this file")
	f.BoolVar(&c.asJSON, "json", false, "emit the raw series as JSON instead of a report")
}

func (c *growthCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	policy, err := folio.ParseAxisPolicy(c.policy)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitUsageError
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

	series, err := folio.GrowthSeries(ledger, account(), market, policy)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	if c.asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(series); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return subcommands.ExitFailure
		}
	} else {
		printMarkdown(renderer.GrowthMarkdown(*userID, series))
	}

	if c.chart != "" {
		png, err := folio.RenderGrowthChart(series)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error rendering chart:", err)
			return subcommands.ExitFailure
		}
		if err := os.WriteFile(c.chart, png, 0644); err != nil {
			fmt.Fprintln(os.Stderr, "Error writing chart:", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Chart written to %s\n", c.chart)
	}

	return subcommands.ExitSuccess
}
