package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/openfolio/folio"
)

type sellCmd struct {
	symbol string
	date   string
	units  float64
	total  float64
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record the sale of a security" }
func (*sellCmd) Usage() string {
	return `ofl sell -s <symbol> -u <units> [-d <date>] [-total <amount>]

  Prices the trade at the historical close, computes the realized gain
  against the position's break-even price, and appends the transaction
  to the ledger. Selling more units than held is an error.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "symbol to sell")
	f.StringVar(&c.date, "d", "", "trade date, defaults to today")
	f.Float64Var(&c.units, "u", 0, "number of units to sell")
	f.Float64Var(&c.total, "total", 0, "explicit total value overriding the historical price")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return bookTrade(folio.Sell, c.symbol, "", "", c.date, c.units, c.total)
}
