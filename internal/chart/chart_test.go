package chart

import (
	"bytes"
	"testing"

	"GoldBoard/internal/calculator"
	"GoldBoard/internal/collector"
	"GoldBoard/internal/model"
)

func TestRender_PNG(t *testing.T) {
	bars := collector.GenerateMockBars(2400, 60)
	frame, err := calculator.ComputeFrame(bars, calculator.DefaultParams())
	if err != nil {
		t.Fatalf("compute frame: %v", err)
	}
	snap := &model.Snapshot{
		Series: model.PriceSeries{Symbol: "XAUUSD", Bars: bars},
		Frame:  frame,
	}

	out, err := NewRenderer(900, 400).Render(snap)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("\x89PNG\r\n\x1a\n")) {
		t.Error("expected PNG output")
	}
}

func TestRender_ShortSeries(t *testing.T) {
	// Fewer bars than the slow window: SMA slow is all-undefined but
	// the chart must still render.
	bars := collector.GenerateMockBars(2400, 10)
	frame, err := calculator.ComputeFrame(bars, calculator.DefaultParams())
	if err != nil {
		t.Fatalf("compute frame: %v", err)
	}
	snap := &model.Snapshot{Frame: frame}

	if _, err := NewRenderer(900, 400).Render(snap); err != nil {
		t.Fatalf("render short series: %v", err)
	}
}

func TestRender_EmptyFrame(t *testing.T) {
	if _, err := NewRenderer(900, 400).Render(&model.Snapshot{}); err == nil {
		t.Error("expected error for nil frame")
	}
}
