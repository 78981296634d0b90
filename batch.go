package folio

import (
	"fmt"
	"log"
)

// SkippedTrade records one request a batch could not materialize, with
// the reason it was skipped.
type SkippedTrade struct {
	Request TradeRequest
	Reason  error
}

// BatchReport collects the per-item outcome of a bulk trade generation:
// created transactions plus every skipped request with its reason.
// Failures are data, not control flow.
type BatchReport struct {
	Created []Transaction
	Skipped []SkippedTrade
}

func (r BatchReport) String() string {
	return fmt.Sprintf("%d trades created, %d skipped", len(r.Created), len(r.Skipped))
}

// GenerateTrades materializes the requests in order, appending each
// created transaction to the ledger so later requests see earlier ones
// (cash committed, positions). A failing request (typically a missing
// price for one symbol) is logged and skipped; it never aborts the
// rest of the batch.
func GenerateTrades(requests []TradeRequest, account Account, ledger *Ledger, prices PriceSource) BatchReport {
	var report BatchReport
	for _, req := range requests {
		tx, err := NewTrade(req, account, ledger, prices)
		if err != nil {
			log.Printf("skipping %s %s on %s: %v", req.Type, req.Symbol, req.Date, err)
			report.Skipped = append(report.Skipped, SkippedTrade{Request: req, Reason: err})
			continue
		}
		ledger.Append(tx)
		report.Created = append(report.Created, tx)
	}
	return report
}
