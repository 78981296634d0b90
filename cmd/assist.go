package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"google.golang.org/genai"

	"github.com/openfolio/folio"
	"github.com/openfolio/folio/agent"
	"github.com/openfolio/folio/date"
	"github.com/openfolio/folio/renderer"
)

// assistCmd is the subcommand for the AI analyst.
type assistCmd struct{}

func (*assistCmd) Name() string { return "assist" }
func (*assistCmd) Synopsis() string {
	return "start an interactive session with the portfolio analyst"
}
func (*assistCmd) Usage() string {
	return `ofl assist [initial question]

  Starts an interactive session with an AI analyst grounded with this
  portfolio's transactions, holdings and growth reports.
`
}

func (*assistCmd) SetFlags(_ *flag.FlagSet) {}

func (c *assistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	initialPrompt := ""
	if f.NArg() > 0 {
		initialPrompt = strings.Join(f.Args(), " ")
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

	series, err := folio.GrowthSeries(ledger, account(), market, folio.AxisUnion)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error computing growth:", err)
		return subcommands.ExitFailure
	}

	on := date.Today()
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

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}

	analyst := agent.NewAnalyst(
		renderer.TransactionsMarkdown(*userID, ledger),
		renderer.HoldingsMarkdown(*userID, on, holdings),
		renderer.GrowthMarkdown(*userID, series),
	)
	if err := analyst.Run(ctx, client, os.Stdout, os.Stdin, initialPrompt); err != nil {
		fmt.Fprintln(os.Stderr, "Analyst failed:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
