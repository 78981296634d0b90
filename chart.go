package folio

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RenderGrowthChart renders a PNG line chart from a growth series.
// Three series: balance (blue solid), market value (green solid) and
// invested capital (gray dashed). Returns raw PNG bytes.
func RenderGrowthChart(series []GrowthPoint) ([]byte, error) {
	if len(series) < 2 {
		return nil, fmt.Errorf("need at least 2 growth points, got %d", len(series))
	}

	xValues := make([]time.Time, len(series))
	balanceY := make([]float64, len(series))
	marketY := make([]float64, len(series))
	investedY := make([]float64, len(series))
	for i, p := range series {
		xValues[i] = p.Date.Time()
		balanceY[i] = p.Balance.InexactFloat64()
		marketY[i] = p.Market.InexactFloat64()
		investedY[i] = p.Invested.InexactFloat64()
	}

	graph := chart.Chart{
		Title:  "Portfolio Growth",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 06")
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Balance",
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("2563eb"),
					StrokeWidth: 2.5,
				},
				XValues: xValues,
				YValues: balanceY,
			},
			chart.TimeSeries{
				Name: "Market Value",
				Style: chart.Style{
					StrokeColor: drawing.ColorFromHex("16a34a"),
					StrokeWidth: 1.5,
				},
				XValues: xValues,
				YValues: marketY,
			},
			chart.TimeSeries{
				Name: "Invested",
				Style: chart.Style{
					StrokeColor:     drawing.ColorFromHex("9ca3af"),
					StrokeWidth:     1.5,
					StrokeDashArray: []float64{5.0, 3.0},
				},
				XValues: xValues,
				YValues: investedY,
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("chart render failed: %w", err)
	}
	return buf.Bytes(), nil
}
