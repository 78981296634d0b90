package folio

import (
	"bytes"
	"testing"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderGrowthChart(t *testing.T) {
	ledger, account, market := growthFixture()
	series, err := GrowthSeries(ledger, account, market, AxisUnion)
	if err != nil {
		t.Fatal(err)
	}

	png, err := RenderGrowthChart(series)
	if err != nil {
		t.Fatalf("RenderGrowthChart() error = %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Error("output is not a PNG")
	}
}

func TestRenderGrowthChart_TooFewPoints(t *testing.T) {
	if _, err := RenderGrowthChart(nil); err == nil {
		t.Error("RenderGrowthChart(nil) succeeded, want error")
	}
}
