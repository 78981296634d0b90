package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openfolio/folio"
	"github.com/openfolio/folio/date"
)

type buyCmd struct {
	symbol     string
	sector     string
	symbolType string
	date       string
	units      float64
	total      float64
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record the purchase of a security" }
func (*buyCmd) Usage() string {
	return `ofl buy -s <symbol> -u <units> [-d <date>] [-total <amount>]

  Prices the trade at the historical close of the given date (or the
  nearest prior close when the market was closed), checks the account's
  cash on demo accounts, and appends the transaction to the ledger.
  -total overrides the historical price with an explicit total value.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "symbol to buy")
	f.StringVar(&c.sector, "sector", "", "sector classification of the symbol")
	f.StringVar(&c.symbolType, "type", "", "symbol type classification, e.g. stock")
	f.StringVar(&c.date, "d", "", "trade date, defaults to today")
	f.Float64Var(&c.units, "u", 0, "number of units to buy")
	f.Float64Var(&c.total, "total", 0, "explicit total value overriding the historical price")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return bookTrade(folio.Buy, c.symbol, c.sector, c.symbolType, c.date, c.units, c.total)
}

// bookTrade is the shared body of the buy and sell commands.
func bookTrade(typ folio.TradeType, symbol, sector, symbolType, dateStr string, units, total float64) subcommands.ExitStatus {
	if symbol == "" {
		fmt.Fprintln(os.Stderr, "Error: -s <symbol> is required.")
		return subcommands.ExitUsageError
	}

	day := date.Today()
	if dateStr != "" {
		var err error
		if day, err = date.Parse(dateStr); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing trade date: %v\n", err)
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

	req := folio.TradeRequest{
		Symbol:     symbol,
		Sector:     sector,
		SymbolType: symbolType,
		Date:       day,
		Type:       typ,
		Units:      folio.Q(units),
	}
	if total != 0 {
		req.CustomTotalValue = folio.M(total, *accountCurrency)
	}

	tx, err := folio.NewTrade(req, account(), ledger, market)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return subcommands.ExitFailure
	}

	return appendTransaction(tx)
}
