package renderer

import (
	"bytes"
	"fmt"

	md "github.com/nao1215/markdown"
	"github.com/openfolio/folio"
	"github.com/openfolio/folio/date"
)

// Holding is one row of the holdings report: a position plus its
// mark-to-market value on the report date.
type Holding struct {
	Position folio.Position
	Market   folio.Money
}

// HoldingsMarkdown renders current positions as a markdown report.
func HoldingsMarkdown(userID string, on date.Date, holdings []Holding) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Holdings for %s on %s", userID, on))
	if len(holdings) == 0 {
		doc.PlainText("No open positions.")
		return doc.String()
	}

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Symbol", "Units", "Break-Even", "Invested", "Market"},
		Rows:   [][]string{},
	}
	for _, h := range holdings {
		table.Rows = append(table.Rows, []string{
			h.Position.Symbol,
			h.Position.Units.String(),
			h.Position.BreakEvenPrice().String(),
			h.Position.Invested.String(),
			h.Market.String(),
		})
	}
	doc.Table(table)

	return doc.String()
}
