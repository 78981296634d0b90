// Package cmd implements the CLI application to manage a portfolio.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/openfolio/folio"
	"github.com/shopspring/decimal"
)

// Commands lists the subcommands. A main package registers each of them
// on its commander and executes the user-selected one.
var Commands = []subcommands.Command{
	&buyCmd{},
	&sellCmd{},
	&logCmd{},
	&holdingsCmd{},
	&growthCmd{},
	&seedCmd{},
	&fetchCmd{},
	&serveCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "transactions.jsonl", "Path to the ledger file (JSONL format)")
var pricesFile = flag.String("prices-file", "prices.jsonl", "Path to the historical prices file (JSONL format)")
var userID = flag.String("user", "demo", "User the ledger belongs to")
var accountType = flag.String("account-type", string(folio.AccountDemo), "Account type: demo or standard")
var accountCurrency = flag.String("currency", "USD", "Account currency code")
var startingCash = flag.Float64("starting-cash", 10000, "Simulated starting cash of a demo account")
var feeRate = flag.Float64("fee-rate", 0.0005, "Fee fraction of gross charged on demo trades")

// account builds the account the flags describe.
func account() folio.Account {
	return folio.Account{
		UserID:       *userID,
		Type:         folio.AccountType(*accountType),
		Currency:     *accountCurrency,
		StartingCash: folio.M(*startingCash, *accountCurrency),
		FeeRate:      decimal.NewFromFloat(*feeRate),
	}
}

// decodeLedger loads the app ledger file, or an empty ledger when the
// file does not exist yet.
func decodeLedger() (*folio.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, ledger file does not exist, starting with an empty ledger")
		return folio.NewLedger(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return folio.DecodeLedger(f)
}

// decodeMarket loads the app prices file, or an empty market when the
// file does not exist yet.
func decodeMarket() (*folio.Market, error) {
	f, err := os.Open(*pricesFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, prices file does not exist, starting with an empty market")
		return folio.NewMarket(*accountCurrency), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return folio.DecodeMarket(f, *accountCurrency)
}

// appendTransaction appends a single transaction to the app ledger file.
func appendTransaction(tx folio.Transaction) subcommands.ExitStatus {
	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := folio.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", *ledgerFile, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended transaction to %s\n", *ledgerFile)
	return subcommands.ExitSuccess
}

// saveLedger rewrites the whole ledger file in canonical order.
func saveLedger(l *folio.Ledger) error {
	f, err := os.Create(*ledgerFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return folio.EncodeLedger(f, l)
}

// saveMarket rewrites the whole prices file.
func saveMarket(m *folio.Market) error {
	f, err := os.Create(*pricesFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return folio.EncodeMarket(f, m)
}

// printMarkdown renders markdown for the terminal, falling back to the
// raw text when rendering fails (e.g. output is piped).
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Println(md)
		return
	}
	fmt.Print(out)
}
