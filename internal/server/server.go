package server

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"math"
	"net/http"
	"time"

	"GoldBoard/internal/chart"
	"GoldBoard/internal/model"
	"GoldBoard/internal/news"
	"GoldBoard/internal/refresh"
)

//go:embed template.html
var dashboardHTML string

// Server renders the dashboard and exposes the JSON and chart routes.
type Server struct {
	Pipeline *refresh.Pipeline
	Renderer *chart.Renderer
	tmpl     *template.Template
}

// New creates the dashboard server.
func New(p *refresh.Pipeline, r *chart.Renderer) (*Server, error) {
	tmpl, err := template.New("dashboard").Parse(dashboardHTML)
	if err != nil {
		return nil, fmt.Errorf("parse dashboard template: %w", err)
	}
	return &Server{Pipeline: p, Renderer: r, tmpl: tmpl}, nil
}

// Routes returns the HTTP mux with all dashboard routes registered.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /chart.png", s.handleChart)
	mux.HandleFunc("GET /api/snapshot", s.handleSnapshot)
	mux.HandleFunc("POST /refresh", s.handleRefresh)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// pageData is the template payload for one dashboard render.
type pageData struct {
	Symbol      string
	Price       string
	Change      string
	ChangePct   string
	ChangeClass string
	ChangeArrow string
	RSI         string
	RSIClass    string
	DayRange    string
	Stale       bool
	News        []news.Item
	UpdatedAt   string
	RenderedAt  string
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	snap, stale, err := s.Pipeline.Snapshot()
	if err != nil {
		http.Error(w, "failed to fetch market data, try again later", http.StatusServiceUnavailable)
		return
	}

	data := buildPageData(snap, stale, s.Pipeline.Headlines())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, data); err != nil {
		log.Printf("[ERROR] render dashboard: %v", err)
	}
}

func buildPageData(snap *model.Snapshot, stale bool, items []news.Item) pageData {
	data := pageData{
		Symbol:      snap.Series.Symbol,
		Price:       fmt.Sprintf("$%.2f", snap.Price),
		Change:      fmt.Sprintf("$%.2f", math.Abs(snap.Change)),
		ChangePct:   fmt.Sprintf("%.2f%%", math.Abs(snap.ChangePct)),
		ChangeClass: "positive",
		ChangeArrow: "▲",
		RSI:         "-",
		RSIClass:    "gold-text",
		DayRange:    fmt.Sprintf("$%.2f - $%.2f", snap.DayLow, snap.DayHigh),
		Stale:       stale,
		News:        items,
		UpdatedAt:   snap.FetchedAt.Format("2006-01-02 15:04:05"),
		RenderedAt:  time.Now().Format("2006-01-02 15:04:05"),
	}
	if snap.Change < 0 {
		data.ChangeClass = "negative"
		data.ChangeArrow = "▼"
	}
	if model.Defined(snap.RSI) {
		data.RSI = fmt.Sprintf("%.1f", snap.RSI)
		switch {
		case snap.RSI > 70:
			data.RSIClass = "negative"
		case snap.RSI < 30:
			data.RSIClass = "positive"
		}
	}
	return data
}

func (s *Server) handleChart(w http.ResponseWriter, _ *http.Request) {
	snap, _, err := s.Pipeline.Snapshot()
	if err != nil {
		http.Error(w, "no data", http.StatusServiceUnavailable)
		return
	}
	png, err := s.Renderer.Render(snap)
	if err != nil {
		log.Printf("[ERROR] render chart: %v", err)
		http.Error(w, "chart rendering failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// apiSnapshot is the JSON shape of one snapshot. Undefined indicator
// positions are encoded as null.
type apiSnapshot struct {
	Symbol    string      `json:"symbol"`
	Price     float64     `json:"price"`
	Change    float64     `json:"change"`
	ChangePct float64     `json:"change_pct"`
	RSI       *float64    `json:"rsi"`
	DayHigh   float64     `json:"day_high"`
	DayLow    float64     `json:"day_low"`
	Stale     bool        `json:"stale"`
	FetchedAt time.Time   `json:"fetched_at"`
	Bars      []apiBar    `json:"bars"`
	SMAFast   []*float64  `json:"sma_fast"`
	SMASlow   []*float64  `json:"sma_slow"`
	RSISeries []*float64  `json:"rsi_series"`
	News      []news.Item `json:"news"`
}

type apiBar struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	snap, stale, err := s.Pipeline.Snapshot()
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}

	out := apiSnapshot{
		Symbol:    snap.Series.Symbol,
		Price:     snap.Price,
		Change:    snap.Change,
		ChangePct: snap.ChangePct,
		RSI:       fptr(snap.RSI),
		DayHigh:   snap.DayHigh,
		DayLow:    snap.DayLow,
		Stale:     stale,
		FetchedAt: snap.FetchedAt,
		Bars:      make([]apiBar, len(snap.Series.Bars)),
		SMAFast:   fptrs(snap.Frame.SMAFast),
		SMASlow:   fptrs(snap.Frame.SMASlow),
		RSISeries: fptrs(snap.Frame.RSI),
		News:      s.Pipeline.Headlines(),
	}
	for i, b := range snap.Series.Bars {
		out.Bars[i] = apiBar{
			Time: b.Time.Unix(), Open: b.Open, High: b.High,
			Low: b.Low, Close: b.Close, Volume: b.Volume,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func fptr(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func fptrs(series []float64) []*float64 {
	out := make([]*float64, len(series))
	for i, v := range series {
		out[i] = fptr(v)
	}
	return out
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.Pipeline.Invalidate()
	if _, err := s.Pipeline.RefreshData(); err != nil {
		log.Printf("[ERROR] manual refresh: %v", err)
	}
	s.Pipeline.RefreshNews()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Write([]byte("ok"))
}
