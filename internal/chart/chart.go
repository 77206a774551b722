package chart

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/pplcc/plotext"
	"github.com/pplcc/plotext/custplotter"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"GoldBoard/internal/model"
)

var (
	colorUp     = color.RGBA{G: 200, A: 255}
	colorDown   = color.RGBA{R: 220, A: 255}
	colorFast   = color.RGBA{R: 255, G: 165, A: 255} // orange
	colorSlow   = color.RGBA{R: 255, B: 255, A: 255} // magenta
	colorRSI    = color.RGBA{R: 218, G: 165, B: 32, A: 255}
	colorGuides = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// Renderer draws a snapshot as a stacked PNG: a candlestick panel with
// the SMA overlays on top and an RSI panel with 70/30 guides below,
// sharing one time axis.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer creates a renderer with the given pixel dimensions for
// the price panel; the RSI panel takes half that height.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{Width: width, Height: height}
}

// Render produces the PNG bytes for one snapshot.
func (r *Renderer) Render(snap *model.Snapshot) ([]byte, error) {
	frame := snap.Frame
	if frame == nil || len(frame.Bars) == 0 {
		return nil, fmt.Errorf("render chart: empty frame")
	}

	pricePlot, err := r.buildPricePlot(frame)
	if err != nil {
		return nil, err
	}
	rsiPlot, err := r.buildRSIPlot(frame)
	if err != nil {
		return nil, err
	}

	plotext.UniteAxisRanges([]*plot.Axis{&pricePlot.X, &rsiPlot.X})

	tbl := plotext.Table{
		RowHeights: []float64{2, 1},
		ColWidths:  []float64{1},
	}

	totalHeight := float64(r.Height) * 1.5
	img := vgimg.New(vg.Points(float64(r.Width)), vg.Points(totalHeight))
	canvases := tbl.Align([][]*plot.Plot{{pricePlot}, {rsiPlot}}, draw.New(img))
	pricePlot.Draw(canvases[0][0])
	rsiPlot.Draw(canvases[1][0])

	var buf bytes.Buffer
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode chart png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) buildPricePlot(frame *model.IndicatorFrame) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "XAU/USD"
	p.Y.Label.Text = "Price (USD)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "01-02\n15:04"}

	data := make(custplotter.TOHLCVs, len(frame.Bars))
	for i, b := range frame.Bars {
		data[i].T = float64(b.Time.Unix())
		data[i].O = b.Open
		data[i].H = b.High
		data[i].L = b.Low
		data[i].C = b.Close
		data[i].V = b.Volume
	}
	candles, err := custplotter.NewCandlesticks(data)
	if err != nil {
		return nil, fmt.Errorf("build candlesticks: %w", err)
	}
	candles.ColorUp = colorUp
	candles.ColorDown = colorDown
	p.Add(candles)

	if line := seriesLine(frame, frame.SMAFast, colorFast); line != nil {
		p.Add(line)
		p.Legend.Add("SMA fast", line)
	}
	if line := seriesLine(frame, frame.SMASlow, colorSlow); line != nil {
		p.Add(line)
		p.Legend.Add("SMA slow", line)
	}
	p.Legend.Top = true
	return p, nil
}

func (r *Renderer) buildRSIPlot(frame *model.IndicatorFrame) (*plot.Plot, error) {
	p := plot.New()
	p.Y.Label.Text = "RSI"
	p.Y.Min = 0
	p.Y.Max = 100
	p.X.Tick.Marker = plot.TimeTicks{Format: "01-02\n15:04"}

	if line := seriesLine(frame, frame.RSI, colorRSI); line != nil {
		p.Add(line)
	}

	first := float64(frame.Bars[0].Time.Unix())
	last := float64(frame.Bars[len(frame.Bars)-1].Time.Unix())
	for _, level := range []float64{30, 70} {
		guide, err := plotter.NewLine(plotter.XYs{{X: first, Y: level}, {X: last, Y: level}})
		if err != nil {
			return nil, fmt.Errorf("build rsi guide: %w", err)
		}
		guide.Color = colorGuides
		guide.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(guide)
	}
	return p, nil
}

// seriesLine converts an indicator series into a line through its
// defined positions only; nil when nothing is defined.
func seriesLine(frame *model.IndicatorFrame, series []float64, c color.Color) *plotter.Line {
	pts := make(plotter.XYs, 0, len(series))
	for i, v := range series {
		if !model.Defined(v) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(frame.Bars[i].Time.Unix()), Y: v})
	}
	if len(pts) == 0 {
		return nil
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil
	}
	line.Color = c
	line.Width = vg.Points(1.5)
	return line
}
