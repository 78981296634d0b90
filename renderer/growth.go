// Package renderer turns engine outputs into markdown reports.
package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/openfolio/folio"
)

// GrowthMarkdown renders a growth series as a markdown report.
func GrowthMarkdown(userID string, series []folio.GrowthPoint) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Growth for %s", userID))
	if len(series) == 0 {
		doc.PlainText("No growth data: the ledger is empty or no prices are available.")
		return doc.String()
	}

	first, last := series[0], series[len(series)-1]
	doc.PlainText(fmt.Sprintf("%s to %s, %d trading days.",
		first.Date, last.Date, len(series)))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Invested", "Market", "Balance", "Unrealized"},
		Rows:   [][]string{},
	}
	for _, p := range series {
		table.Rows = append(table.Rows, []string{
			p.Date.String(),
			p.Invested.String(),
			p.Market.String(),
			p.Balance.String(),
			p.UnrealizedGain().String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
