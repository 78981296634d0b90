package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/openfolio/folio"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TransactionsMarkdown renders the ledger as a markdown report.
func TransactionsMarkdown(userID string, ledger *folio.Ledger) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Transactions for %s", userID))
	if ledger.Len() == 0 {
		doc.PlainText("The ledger is empty.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Type", "Symbol", "Units", "Unit Price", "Fees", "Realized"},
		Rows:   [][]string{},
	}
	for _, tx := range ledger.Transactions() {
		realized := "-"
		if tx.Type == folio.Sell {
			realized = fmt.Sprintf("%s (%s%%)", tx.ReturnValue, tx.ReturnChange.Mul(hundred))
		}
		table.Rows = append(table.Rows, []string{
			tx.Date.String(),
			string(tx.Type),
			tx.Symbol,
			tx.Units.String(),
			tx.UnitPrice.String(),
			tx.Fees.String(),
			realized,
		})
	}
	doc.Table(table)

	return doc.String()
}
