package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openfolio/folio/renderer"
)

type logCmd struct{}

func (*logCmd) Name() string     { return "log" }
func (*logCmd) Synopsis() string { return "list all transactions in the ledger" }
func (*logCmd) Usage() string {
	return `ofl log

  Lists all transactions in chronological order.
`
}

func (*logCmd) SetFlags(_ *flag.FlagSet) {}

func (c *logCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := decodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading ledger:", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.TransactionsMarkdown(*userID, ledger))

	return subcommands.ExitSuccess
}
