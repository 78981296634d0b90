package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
	"github.com/openfolio/folio"
	"github.com/openfolio/folio/date"
)

type fetchCmd struct {
	symbols string
	from    string
	to      string
}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download daily close histories into the prices file" }
func (*fetchCmd) Usage() string {
	return `ofl fetch -s <symbol[,symbol...]> -from <date> [-to <date>]

  Downloads end-of-day close histories from EODHD and merges them into
  the prices file. The API token is read from the EODHD_API_TOKEN
  environment variable.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbols, "s", "", "comma-separated symbols to fetch")
	f.StringVar(&c.from, "from", "", "start of the range")
	f.StringVar(&c.to, "to", "", "end of the range, defaults to today")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.symbols == "" || c.from == "" {
		fmt.Fprintln(os.Stderr, "Error: -s and -from are required.")
		return subcommands.ExitUsageError
	}
	apiKey := os.Getenv("EODHD_API_TOKEN")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "Error: EODHD_API_TOKEN is not set.")
		return subcommands.ExitFailure
	}

	from, err := date.Parse(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -from: %v\n", err)
		return subcommands.ExitUsageError
	}
	to := date.Today()
	if c.to != "" {
		if to, err = date.Parse(c.to); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -to: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	market, err := decodeMarket()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading prices:", err)
		return subcommands.ExitFailure
	}

	client := folio.NewEODClient(apiKey)
	for _, symbol := range strings.Split(c.symbols, ",") {
		symbol = strings.TrimSpace(symbol)
		if symbol == "" {
			continue
		}
		n, err := client.FetchDailyCloses(symbol, date.Range{From: from, To: to}, market)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching %s: %v\n", symbol, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Fetched %d closes for %s\n", n, symbol)
	}

	if err := saveMarket(market); err != nil {
		fmt.Fprintln(os.Stderr, "Error saving prices:", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
