package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/openfolio/folio"
	"github.com/openfolio/folio/date"
)

type seedCmd struct {
	file string
}

func (*seedCmd) Name() string     { return "seed" }
func (*seedCmd) Synopsis() string { return "bulk-generate trades from a requests file" }
func (*seedCmd) Usage() string {
	return `ofl seed -f <requests.jsonl>

  Reads trade requests (one JSON object per line) and materializes them
  in order against the ledger. A request that cannot be priced or would
  overdraw the account is reported and skipped; the rest of the batch
  proceeds. Typical use: seeding a demo account with a year of trades.

  Request line format:
  {"symbol":"AAPL","type":"BUY","units":10,"date":"2025-01-02"}
`
}

func (c *seedCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "", "requests file (JSONL format)")
}

// seedRequest is the file shape of one trade request.
type seedRequest struct {
	Symbol           string          `json:"symbol"`
	Sector           string          `json:"sector"`
	SymbolType       string          `json:"symbolType"`
	Date             date.Date       `json:"date"`
	Type             folio.TradeType `json:"type"`
	Units            folio.Quantity  `json:"units"`
	CustomTotalValue folio.Money     `json:"customTotalValue"`
}

func (c *seedCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.file == "" {
		fmt.Fprintln(os.Stderr, "Error: -f <requests.jsonl> is required.")
		return subcommands.ExitUsageError
	}

	requests, err := decodeRequests(c.file)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading requests:", err)
		return subcommands.ExitFailure
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

	report := folio.GenerateTrades(requests, account(), ledger, market)

	if err := saveLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, "Error saving ledger:", err)
		return subcommands.ExitFailure
	}

	fmt.Println(report)
	for _, skipped := range report.Skipped {
		fmt.Fprintf(os.Stderr, "skipped %s %s on %s: %v\n",
			skipped.Request.Type, skipped.Request.Symbol, skipped.Request.Date, skipped.Reason)
	}
	return subcommands.ExitSuccess
}

func decodeRequests(filename string) ([]folio.TradeRequest, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	requests := make([]folio.TradeRequest, 0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var req seedRequest
		if err := json.Unmarshal(line, &req); err != nil {
			return nil, fmt.Errorf("could not decode request line %q: %w", string(line), err)
		}
		requests = append(requests, folio.TradeRequest{
			Symbol:           req.Symbol,
			Sector:           req.Sector,
			SymbolType:       req.SymbolType,
			Date:             req.Date,
			Type:             req.Type,
			Units:            req.Units,
			CustomTotalValue: req.CustomTotalValue,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}
